package schedule

import (
	"context"

	"github.com/BarberLinkDO/BookingService/internal/domain"
	"github.com/BarberLinkDO/BookingService/internal/integrations/directory"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetBarberSchedule(ctx context.Context, barberID int64) (*domain.BarberSchedule, error)
}

// DirectoryClient интерфейс клиента DirectoryService
type DirectoryClient interface {
	GetBarber(ctx context.Context, barberID int64) (*directory.Barber, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
