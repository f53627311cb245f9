package change_availability

import (
	"github.com/BarberLinkDO/BookingService/internal/domain"
	"github.com/BarberLinkDO/BookingService/pkg/types"
)

// Request модель запроса на изменение доступности барбера.
// Секции Weekly / Breaks / Buffer / DayOff / LeaveEarly опциональны:
// nil означает "оставить как есть". Все переданные изменения применяются
// атомарно вместе с отменой затронутых записей.
type Request struct {
	BarberID int64
	ShopID   int64

	Weekly *domain.WeeklyAvailability
	Breaks *[]domain.BreakWindow
	Buffer *domain.ArrivalBuffer

	DayOff     *DayOffRequest
	LeaveEarly *LeaveEarlyRequest

	// Подтверждение отмены затронутых записей. Без него изменение,
	// задевающее подтвержденные записи, отклоняется со списком.
	ConfirmCancellation bool
}

// DayOffRequest выходной на конкретную дату
type DayOffRequest struct {
	Date  string // YYYY-MM-DD
	Notes *string
}

// LeaveEarlyRequest ранний уход на конкретную дату
type LeaveEarlyRequest struct {
	Date       string // YYYY-MM-DD
	CutoffTime types.TimeString
	Notes      *string
}

// Response результат изменения доступности
type Response struct {
	// Затронутые подтвержденные записи. При ErrAffectedAppointments -
	// список для подтверждения, при успехе - фактически отмененные.
	Affected []AffectedAppointment
	// Применены ли изменения (false, если требуется подтверждение)
	Applied bool
}

// AffectedAppointment запись, не вписывающаяся в новое расписание
type AffectedAppointment struct {
	ID              int64
	ClientID        int64
	Date            string
	StartTime       types.TimeString
	DurationMinutes int
	ServiceName     string
}
