package mark_no_show

import (
	"context"
)

type AppointmentService interface {
	MarkNoShow(ctx context.Context, appointmentID int64, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
