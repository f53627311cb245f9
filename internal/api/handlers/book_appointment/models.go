package book_appointment

import (
	"time"

	bookAppointment "github.com/BarberLinkDO/BookingService/internal/usecase/book_appointment"
	"github.com/BarberLinkDO/BookingService/pkg/types"
)

// CreateRequest HTTP запрос на создание записи.
// Время задается парой date + startTime; поле startDateTime принимается
// от старых клиентов и имеет приоритет, если заполнено.
type CreateRequest struct {
	ShopID    int64 `json:"shopId"`
	BarberID  int64 `json:"barberId"`
	ServiceID int64 `json:"serviceId"`

	Date      string `json:"date,omitempty"`      // YYYY-MM-DD
	StartTime string `json:"startTime,omitempty"` // HH:MM

	StartDateTime string `json:"startDateTime,omitempty"`

	Notes *string `json:"notes,omitempty"`
}

// Response HTTP ответ с созданной записью
type Response struct {
	ID              int64     `json:"id"`
	ClientID        int64     `json:"clientId"`
	ShopID          int64     `json:"shopId"`
	BarberID        int64     `json:"barberId"`
	ServiceID       int64     `json:"serviceId"`
	Date            string    `json:"date"`
	StartTime       string    `json:"startTime"`
	DurationMinutes int       `json:"durationMinutes"`
	Status          string    `json:"status"`
	ServiceName     string    `json:"serviceName"`
	PriceAtBooking  float64   `json:"priceAtBooking"`
	Notes           *string   `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в запрос use case
func (r *CreateRequest) ToUseCaseRequest(clientID int64) *bookAppointment.Request {
	return &bookAppointment.Request{
		ClientID:      clientID,
		ShopID:        r.ShopID,
		BarberID:      r.BarberID,
		ServiceID:     r.ServiceID,
		Date:          r.Date,
		StartTime:     types.TimeString(r.StartTime),
		StartDateTime: r.StartDateTime,
		Notes:         r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP ответ
func FromUseCaseResponse(resp *bookAppointment.Response) *Response {
	return &Response{
		ID:              resp.ID,
		ClientID:        resp.ClientID,
		ShopID:          resp.ShopID,
		BarberID:        resp.BarberID,
		ServiceID:       resp.ServiceID,
		Date:            resp.Date,
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		ServiceName:     resp.ServiceName,
		PriceAtBooking:  resp.PriceAtBooking,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt,
		UpdatedAt:       resp.UpdatedAt,
	}
}
