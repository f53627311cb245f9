package get_schedule

import (
	"context"

	"github.com/BarberLinkDO/BookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	GetBarberSchedule(ctx context.Context, barberID int64) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
