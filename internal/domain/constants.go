package domain

// Default scheduling values
const (
	// DefaultFallbackStepMinutes шаг генерации слотов, когда услуга еще не выбрана
	DefaultFallbackStepMinutes = 10

	// DefaultReferenceTimezone часовой пояс для вычисления "какой сегодня день"
	DefaultReferenceTimezone = "America/Santo_Domingo"

	// DefaultNaiveUTCOffset фиксированное смещение для наивных дат без зоны
	DefaultNaiveUTCOffset = "-04:00"
)

// Business validation constants
const (
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 часов
	MinArrivalBufferMinutes   = 0
	MaxArrivalBufferMinutes   = 720 // полдня
	MaxNotesLength            = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// CancelledStatuses статусы, освобождающие занятый слот
var CancelledStatuses = []AppointmentStatus{
	StatusCancelled,
	StatusCancelledByBarber,
	StatusCancelledByClient,
}

// InactiveStatuses статусы, исключаемые из выборок активных записей
var InactiveStatuses = []AppointmentStatus{
	StatusCancelled,
	StatusCancelledByBarber,
	StatusCancelledByClient,
	StatusNoShow,
}

// SyntheticStatuses маркеры исключений расписания
var SyntheticStatuses = []AppointmentStatus{
	StatusDayOff,
	StatusLeaveEarly,
}
