package change_availability

import (
	"context"
	"time"

	"github.com/BarberLinkDO/BookingService/internal/domain"
	"github.com/BarberLinkDO/BookingService/internal/integrations/directory"
	"github.com/BarberLinkDO/BookingService/internal/integrations/notify"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	GetByShopWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	// BatchCancel отменяет набор записей одним запросом
	BatchCancel(ctx context.Context, ids []int64, status domain.AppointmentStatus) error
}

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetBarberSchedule(ctx context.Context, barberID int64) (*domain.BarberSchedule, error)
	SaveWeekly(ctx context.Context, barberID int64, weekly domain.WeeklyAvailability) error
	SaveBreaks(ctx context.Context, barberID int64, breaks []domain.BreakWindow) error
	SaveBuffer(ctx context.Context, barberID int64, buffer domain.ArrivalBuffer) error
}

// DirectoryClient интерфейс клиента DirectoryService
type DirectoryClient interface {
	GetBarber(ctx context.Context, barberID int64) (*directory.Barber, error)
}

// NotifyClient интерфейс клиента NotifyService
type NotifyClient interface {
	SendRescheduleProposal(ctx context.Context, req notify.RescheduleProposalRequest) error
}

// TransactionManager интерфейс для выполнения операций в транзакции
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
