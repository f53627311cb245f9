package book_appointment

import (
	"time"

	"github.com/BarberLinkDO/BookingService/pkg/types"
)

// Request модель запроса на создание записи.
// Время указывается либо парой Date + StartTime, либо legacy-полем
// StartDateTime (произвольное представление даты-времени из старых клиентов).
type Request struct {
	ClientID  int64
	ShopID    int64
	BarberID  int64
	ServiceID int64

	Date      string           // YYYY-MM-DD
	StartTime types.TimeString // HH:MM

	// Legacy: полная дата-время одним полем; имеет приоритет, если задано
	StartDateTime string

	Notes *string
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64
	ClientID        int64
	ShopID          int64
	BarberID        int64
	ServiceID       int64
	Date            string
	StartTime       types.TimeString
	DurationMinutes int
	Status          string
	ServiceName     string
	PriceAtBooking  float64
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
