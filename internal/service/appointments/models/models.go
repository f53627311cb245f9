package models

import (
	"errors"
	"time"

	"github.com/BarberLinkDO/BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// CancelAppointmentRequest запрос на отмену записи
type CancelAppointmentRequest struct {
	UserID int64 `json:"userId"`
}

// CompleteAppointmentRequest запрос на завершение записи
type CompleteAppointmentRequest struct {
	UserID int64 `json:"userId"`
	// Фактическое время окончания; nil - момент вызова
	ActualEndTime *time.Time `json:"actualEndTime,omitempty"`
	NotesBarber   *string    `json:"notesBarber,omitempty"`
}

// GetClientAppointmentsRequest запрос на историю записей клиента
type GetClientAppointmentsRequest struct {
	ClientID      int64   `json:"clientId"`
	UserID        int64   `json:"userId"`
	Status        *string `json:"status,omitempty"`
	IncludeHidden bool    `json:"includeHidden,omitempty"`
}

// GetShopAppointmentsRequest запрос на записи барбершопа
type GetShopAppointmentsRequest struct {
	ShopID          int64      `json:"shopId"`
	UserID          int64      `json:"userId"`
	BarberID        *int64     `json:"barberId,omitempty"`
	StartDate       *time.Time `json:"startDate,omitempty"`
	EndDate         *time.Time `json:"endDate,omitempty"`
	Status          *string    `json:"status,omitempty"`
	IncludeInactive bool       `json:"includeInactive,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetShopAppointmentsRequest) ToDomainFilter() (domain.AppointmentsFilter, error) {
	filter := domain.AppointmentsFilter{
		ShopID:          r.ShopID,
		BarberID:        r.BarberID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainAppointmentStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID              int64  `json:"id"`
	ClientID        int64  `json:"clientId"`
	BarberID        int64  `json:"barberId"`
	ShopID          int64  `json:"shopId"`
	ServiceID       int64  `json:"serviceId"`
	Date            string `json:"date"`      // "2026-09-07"
	StartTime       string `json:"startTime"` // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`

	// Денормализованные данные услуги
	ServiceName    string  `json:"serviceName"`
	PriceAtBooking float64 `json:"priceAtBooking"`

	Notes       *string `json:"notes,omitempty"`
	NotesBarber *string `json:"notesBarber,omitempty"`

	ActualEndTime *string `json:"actualEndTime,omitempty"` // ISO 8601
	PaymentMethod *string `json:"paymentMethod,omitempty"`
	PaymentStatus *string `json:"paymentStatus,omitempty"`

	CancelledAt     *string `json:"cancelledAt,omitempty"` // ISO 8601
	HiddenForClient bool    `json:"hiddenForClient,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:              a.ID,
		ClientID:        a.ClientID,
		BarberID:        a.BarberID,
		ShopID:          a.ShopID,
		ServiceID:       a.ServiceID,
		Date:            a.Date.Format(domain.DateFormat),
		StartTime:       a.StartTime.String(),
		DurationMinutes: a.DurationMinutes,
		Status:          string(a.Status),
		ServiceName:     a.ServiceName,
		PriceAtBooking:  a.PriceAtBooking,
		Notes:           a.Notes,
		NotesBarber:     a.NotesBarber,
		PaymentMethod:   a.PaymentMethod,
		PaymentStatus:   a.PaymentStatus,
		HiddenForClient: a.HiddenForClient,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}

	if a.ActualEndTime != nil {
		s := a.ActualEndTime.Format(time.RFC3339)
		resp.ActualEndTime = &s
	}
	if a.CancelledAt != nil {
		s := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &s
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}

	for _, a := range appointments {
		if r := FromDomainAppointment(a); r != nil {
			resp.Appointments = append(resp.Appointments, *r)
		}
	}

	return resp
}

// ToDomainAppointmentStatus конвертирует строку в domain.AppointmentStatus.
// Принимает и legacy/локализованные варианты (нормализация на границе).
func ToDomainAppointmentStatus(status string) (domain.AppointmentStatus, error) {
	normalized, ok := domain.NormalizeStatus(status)
	if !ok {
		return "", ErrInvalidStatus
	}
	return normalized, nil
}
