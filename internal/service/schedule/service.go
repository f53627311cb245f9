package schedule

import (
	"context"
	"errors"
	"fmt"

	directoryClient "github.com/BarberLinkDO/BookingService/internal/integrations/directory"
	"github.com/BarberLinkDO/BookingService/internal/service/schedule/models"
)

// Service сервис чтения расписания барбера.
// Изменения идут через usecase change_availability: запись расписания
// требует симуляции затронутых записей и транзакции.
type Service struct {
	scheduleRepo ScheduleRepository
	directory    DirectoryClient
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	scheduleRepo ScheduleRepository,
	directory DirectoryClient,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		directory:    directory,
		logger:       logger,
	}
}

// GetBarberSchedule получает полное расписание барбера:
// недельные часы, перерывы и буфер до записи
func (s *Service) GetBarberSchedule(ctx context.Context, barberID int64) (*models.ScheduleResponse, error) {
	s.logger.Info("GetBarberSchedule: fetching schedule for barber=%d", barberID)

	if _, err := s.directory.GetBarber(ctx, barberID); err != nil {
		if errors.Is(err, directoryClient.ErrBarberNotFound) {
			s.logger.Warn("GetBarberSchedule: barber id=%d not found", barberID)
			return nil, ErrBarberNotFound
		}
		s.logger.Error("GetBarberSchedule: failed to get barber id=%d: %v", barberID, err)
		return nil, fmt.Errorf("%w: GetBarberSchedule - failed to get barber: %v", ErrInternal, err)
	}

	schedule, err := s.scheduleRepo.GetBarberSchedule(ctx, barberID)
	if err != nil {
		s.logger.Error("GetBarberSchedule: repository error for barber=%d: %v", barberID, err)
		return nil, fmt.Errorf("%w: GetBarberSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetBarberSchedule: fetched schedule for barber=%d (%d weekly entries, %d breaks)",
		barberID, len(schedule.Weekly), len(schedule.Breaks))

	return models.FromDomainSchedule(schedule), nil
}
