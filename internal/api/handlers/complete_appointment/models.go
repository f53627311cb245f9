package complete_appointment

import (
	"time"

	"github.com/BarberLinkDO/BookingService/internal/service/appointments/models"
)

// CompleteRequest HTTP запрос на завершение записи.
// Тело опционально: без него время окончания - момент вызова.
type CompleteRequest struct {
	ActualEndTime *time.Time `json:"actualEndTime,omitempty"`
	NotesBarber   *string    `json:"notesBarber,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в запрос сервиса
func (r *CompleteRequest) ToServiceRequest(userID int64) *models.CompleteAppointmentRequest {
	return &models.CompleteAppointmentRequest{
		UserID:        userID,
		ActualEndTime: r.ActualEndTime,
		NotesBarber:   r.NotesBarber,
	}
}
