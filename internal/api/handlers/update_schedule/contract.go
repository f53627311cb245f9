package update_schedule

import (
	"context"

	changeAvailability "github.com/BarberLinkDO/BookingService/internal/usecase/change_availability"
)

type ChangeAvailabilityUseCase interface {
	Execute(ctx context.Context, req *changeAvailability.Request) (*changeAvailability.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
