package domain

import (
	"strings"
	"time"

	"github.com/BarberLinkDO/BookingService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusConfirmed         AppointmentStatus = "confirmed"
	StatusCompleted         AppointmentStatus = "completed"
	StatusCancelled         AppointmentStatus = "cancelled"
	StatusCancelledByBarber AppointmentStatus = "cancelled_by_barber"
	StatusCancelledByClient AppointmentStatus = "cancelled_by_client"
	StatusNoShow            AppointmentStatus = "no_show"

	// Синтетические статусы: не настоящие записи, а маркеры исключений
	// в расписании барбера (выходной день / ранний уход)
	StatusDayOff     AppointmentStatus = "day_off"
	StatusLeaveEarly AppointmentStatus = "leave_early"
)

// statusAliases известные legacy/локализованные варианты статусов
// Встречаются в данных, импортированных из старых версий клиента
var statusAliases = map[string]AppointmentStatus{
	"cancelada":           StatusCancelled,
	"cancelado":           StatusCancelled,
	"completada":          StatusCompleted,
	"confirmada":          StatusConfirmed,
	"cancelled_by_shop":   StatusCancelledByBarber,
	"cancelled_by_owner":  StatusCancelledByBarber,
	"cancelled_by_user":   StatusCancelledByClient,
	"cancelled_by_client": StatusCancelledByClient,
	"cancelled_by_barber": StatusCancelledByBarber,
	"no-show":             StatusNoShow,
	"noshow":              StatusNoShow,
	"dayoff":              StatusDayOff,
	"leave-early":         StatusLeaveEarly,
}

// NormalizeStatus приводит сырое строковое значение статуса к enum
// Вызывается ТОЛЬКО на границе хранилища: внутрь доменной логики
// сырые строки не проходят. Неизвестные варианты с префиксом "cancel"
// считаются отменой (совместимость с историческими данными)
func NormalizeStatus(raw string) (AppointmentStatus, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return "", false
	}

	switch AppointmentStatus(s) {
	case StatusConfirmed, StatusCompleted, StatusCancelled,
		StatusCancelledByBarber, StatusCancelledByClient,
		StatusNoShow, StatusDayOff, StatusLeaveEarly:
		return AppointmentStatus(s), true
	}

	if alias, ok := statusAliases[s]; ok {
		return alias, true
	}

	if strings.HasPrefix(s, "cancel") {
		return StatusCancelled, true
	}

	return "", false
}

// IsCancelled returns true for any of the cancelled status variants
func (s AppointmentStatus) IsCancelled() bool {
	return s == StatusCancelled || s == StatusCancelledByBarber || s == StatusCancelledByClient
}

// IsSynthetic returns true for schedule-exception markers (day off, leave early)
func (s AppointmentStatus) IsSynthetic() bool {
	return s == StatusDayOff || s == StatusLeaveEarly
}

// IsTerminal returns true if no further transition is allowed from this status
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusNoShow || s.IsCancelled()
}

// Appointment represents a booked service in the system
type Appointment struct {
	ID        int64
	ClientID  int64
	BarberID  int64
	ShopID    int64
	ServiceID int64

	Date            time.Time // календарная дата записи (без времени)
	StartTime       types.TimeString
	DurationMinutes int
	Status          AppointmentStatus

	// Denormalized data for history
	ServiceName    string
	PriceAtBooking float64

	Notes       *string
	NotesBarber *string

	ActualEndTime *time.Time
	PaymentMethod *string
	PaymentStatus *string

	CancelledAt     *time.Time
	HiddenForClient bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OccupiesSlot returns true if the appointment blocks its minute range
// for conflict checks. Отмененные записи освобождают слот, синтетические
// маркеры обрабатываются отдельно как исключения расписания.
func (a *Appointment) OccupiesSlot() bool {
	return !a.Status.IsCancelled() && !a.Status.IsSynthetic()
}

// CanBeCancelled returns true if the appointment can be cancelled.
// Синтетические маркеры удаляются через ту же отмену.
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusConfirmed || a.Status.IsSynthetic()
}

// CanBeCompleted returns true if the appointment can be marked completed
func (a *Appointment) CanBeCompleted() bool {
	return a.Status == StatusConfirmed
}

// CanBeMarkedNoShow returns true if the appointment can be marked as no-show
func (a *Appointment) CanBeMarkedNoShow() bool {
	return a.Status == StatusConfirmed
}

// CanBeHidden returns true if the client may hide the appointment from history
func (a *Appointment) CanBeHidden() bool {
	return a.Status.IsTerminal()
}

// AppointmentsFilter фильтр для выборки записей
type AppointmentsFilter struct {
	ShopID           int64              // Обязательный параметр
	BarberID         *int64             // Фильтр по барберу (опционально)
	ClientID         *int64             // Фильтр по клиенту (опционально)
	StartDate        *time.Time         // Начало периода (опционально)
	EndDate          *time.Time         // Конец периода (опционально)
	Status           *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeInactive  bool               // Включать ли отмененные записи и no-show
	IncludeSynthetic bool               // Включать ли маркеры day_off / leave_early
}
