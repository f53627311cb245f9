package appointments

import (
	"context"
	"time"

	"github.com/BarberLinkDO/BookingService/internal/domain"
	"github.com/BarberLinkDO/BookingService/internal/integrations/directory"
	"github.com/BarberLinkDO/BookingService/internal/integrations/notify"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByClientID(ctx context.Context, clientID int64, includeHidden bool, status *domain.AppointmentStatus) ([]*domain.Appointment, error)
	GetByShopWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
	Complete(ctx context.Context, id int64, actualEnd time.Time, notesBarber *string) error
	Cancel(ctx context.Context, id int64, status domain.AppointmentStatus) error
	Delete(ctx context.Context, id int64) error
	SetHiddenForClient(ctx context.Context, id int64, hidden bool) error
}

// DirectoryClient интерфейс клиента DirectoryService
type DirectoryClient interface {
	GetBarber(ctx context.Context, barberID int64) (*directory.Barber, error)
	GetShop(ctx context.Context, shopID int64) (*directory.Shop, error)
}

// NotifyClient интерфейс клиента NotifyService
type NotifyClient interface {
	SendReviewPrompt(ctx context.Context, req notify.ReviewPromptRequest) error
	SendRescheduleProposal(ctx context.Context, req notify.RescheduleProposalRequest) error
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
