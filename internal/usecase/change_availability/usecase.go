package change_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BarberLinkDO/BookingService/internal/domain"
	"github.com/BarberLinkDO/BookingService/internal/integrations/directory"
	"github.com/BarberLinkDO/BookingService/internal/integrations/notify"
	"github.com/BarberLinkDO/BookingService/internal/scheduling"
	"github.com/BarberLinkDO/BookingService/pkg/ptr"
	"github.com/BarberLinkDO/BookingService/pkg/types"
)

// UseCase use case для изменения доступности барбера: недельное расписание,
// перерывы, буфер до записи, выходные и ранние уходы
type UseCase struct {
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRepository
	directoryClient DirectoryClient
	notifyClient    NotifyClient
	txManager       TransactionManager
	clock           *scheduling.Clock
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	directoryClient DirectoryClient,
	notifyClient NotifyClient,
	txManager TransactionManager,
	clock *scheduling.Clock,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		directoryClient: directoryClient,
		notifyClient:    notifyClient,
		txManager:       txManager,
		clock:           clock,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case изменения доступности.
//
// Перед применением будущие подтвержденные записи барбера проверяются
// против нового расписания: запись, не вписывающаяся в новые рабочие часы,
// задетая включенным перерывом или попавшая под выходной/ранний уход,
// считается затронутой. Без ConfirmCancellation изменение отклоняется
// со списком затронутых записей; с подтверждением запись расписания и
// пакетная отмена выполняются в одной сериализуемой транзакции -
// частичное применение исключено.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ChangeAvailability: barber=%d, shop=%d, confirm=%t",
		req.BarberID, req.ShopID, req.ConfirmCancellation)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ChangeAvailability: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Проверяем барбера и его принадлежность барбершопу
	barber, err := uc.directoryClient.GetBarber(ctx, req.BarberID)
	if err != nil {
		if errors.Is(err, directory.ErrBarberNotFound) {
			uc.logger.Warn("ChangeAvailability: barber id=%d not found", req.BarberID)
			return nil, ErrBarberNotFound
		}
		uc.logger.Error("ChangeAvailability: failed to get barber id=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: failed to get barber: %v", ErrInternal, err)
	}
	if !barber.WorksAt(req.ShopID) {
		uc.logger.Warn("ChangeAvailability: barber id=%d does not work at shop id=%d", req.BarberID, req.ShopID)
		return nil, ErrBarberNotInShop
	}

	resp := &Response{Affected: []AffectedAppointment{}}
	var cancelled []*domain.Appointment

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3. Текущее расписание как основа: непереданные секции не меняются
		current, err := uc.scheduleRepo.GetBarberSchedule(txCtx, req.BarberID)
		if err != nil {
			uc.logger.Error("ChangeAvailability: failed to get schedule for barber id=%d: %v", req.BarberID, err)
			return fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
		}

		proposed := *current
		if req.Weekly != nil {
			proposed.Weekly = *req.Weekly
		}
		if req.Breaks != nil {
			proposed.Breaks = *req.Breaks
		}
		if req.Buffer != nil {
			proposed.Buffer = *req.Buffer
		}

		// 4. Будущие подтвержденные записи барбера с блокировкой
		today, err := time.Parse(domain.DateFormat, uc.clock.Today(now))
		if err != nil {
			return fmt.Errorf("%w: failed to resolve current date: %v", ErrInternal, err)
		}

		confirmed := domain.StatusConfirmed
		filter := domain.AppointmentsFilter{
			ShopID:    req.ShopID,
			BarberID:  ptr.Ptr(req.BarberID),
			StartDate: &today,
			Status:    &confirmed,
		}

		appointments, err := uc.appointmentRepo.GetByShopWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("ChangeAvailability: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 5. Симуляция: какие записи не переживут новое расписание
		affected := uc.scanAffected(req, &proposed, appointments, now)

		if len(affected) > 0 && !req.ConfirmCancellation {
			for _, a := range affected {
				resp.Affected = append(resp.Affected, toAffected(a))
			}
			uc.logger.Warn("ChangeAvailability: %d confirmed appointments affected, confirmation required",
				len(affected))
			return ErrAffectedAppointments
		}

		// 6. Применяем изменения
		if req.Weekly != nil {
			if err := uc.scheduleRepo.SaveWeekly(txCtx, req.BarberID, proposed.Weekly); err != nil {
				uc.logger.Error("ChangeAvailability: failed to save weekly: %v", err)
				return fmt.Errorf("%w: failed to save weekly schedule: %v", ErrInternal, err)
			}
		}
		if req.Breaks != nil {
			if err := uc.scheduleRepo.SaveBreaks(txCtx, req.BarberID, proposed.Breaks); err != nil {
				uc.logger.Error("ChangeAvailability: failed to save breaks: %v", err)
				return fmt.Errorf("%w: failed to save breaks: %v", ErrInternal, err)
			}
		}
		if req.Buffer != nil {
			if err := uc.scheduleRepo.SaveBuffer(txCtx, req.BarberID, proposed.Buffer); err != nil {
				uc.logger.Error("ChangeAvailability: failed to save buffer: %v", err)
				return fmt.Errorf("%w: failed to save buffer: %v", ErrInternal, err)
			}
		}

		// 7. Синтетические маркеры исключений
		if req.DayOff != nil {
			if err := uc.createMarker(txCtx, req, domain.StatusDayOff, req.DayOff.Date, "00:00", req.DayOff.Notes); err != nil {
				return err
			}
		}
		if req.LeaveEarly != nil {
			if err := uc.createMarker(txCtx, req, domain.StatusLeaveEarly, req.LeaveEarly.Date, req.LeaveEarly.CutoffTime, req.LeaveEarly.Notes); err != nil {
				return err
			}
		}

		// 8. Пакетная отмена затронутых записей
		if len(affected) > 0 {
			ids := make([]int64, len(affected))
			for i, a := range affected {
				ids[i] = a.ID
				resp.Affected = append(resp.Affected, toAffected(a))
			}
			if err := uc.appointmentRepo.BatchCancel(txCtx, ids, domain.StatusCancelledByBarber); err != nil {
				uc.logger.Error("ChangeAvailability: failed to cancel affected appointments: %v", err)
				return fmt.Errorf("%w: failed to cancel affected appointments: %v", ErrInternal, err)
			}
			cancelled = affected
		}

		resp.Applied = true
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrAffectedAppointments) {
			return resp, err
		}
		return nil, err
	}

	// 9. Уведомления клиентам об отмене: вне транзакции, недоступность
	// NotifyService не откатывает уже примененное изменение
	for _, a := range cancelled {
		notifyErr := uc.notifyClient.SendRescheduleProposal(ctx, notify.RescheduleProposalRequest{
			ClientID:      a.ClientID,
			AppointmentID: a.ID,
			ShopID:        a.ShopID,
			BarberID:      a.BarberID,
			Date:          a.Date.Format(domain.DateFormat),
			StartTime:     a.StartTime.String(),
			Reason:        "schedule_change",
		})
		if notifyErr != nil && !errors.Is(notifyErr, notify.ErrServiceDegraded) {
			uc.logger.Error("ChangeAvailability: failed to notify client=%d: %v", a.ClientID, notifyErr)
		}
	}

	uc.logger.Info("ChangeAvailability: applied for barber=%d, cancelled %d appointments",
		req.BarberID, len(cancelled))

	return resp, nil
}

// scanAffected проверяет будущие подтвержденные записи против нового
// расписания. Сегодняшние записи, чье время уже прошло, не трогаются.
func (uc *UseCase) scanAffected(req *Request, proposed *domain.BarberSchedule, appointments []*domain.Appointment, now time.Time) []*domain.Appointment {
	nowMinutes := uc.clock.MinutesOfDay(now)
	affected := make([]*domain.Appointment, 0)

	for _, a := range appointments {
		if a.Status != domain.StatusConfirmed {
			continue
		}

		dateStr := a.Date.Format(domain.DateFormat)
		start, err := a.StartTime.Minutes()
		if err != nil {
			continue
		}
		if uc.clock.IsToday(dateStr, now) && start < nowMinutes {
			continue
		}

		dayKey, ok := uc.clock.DayKeyFor(dateStr)
		if !ok {
			continue
		}

		work := scheduling.WeeklyRange(proposed.Weekly, dayKey)

		// Новые исключения на конкретную дату
		if req.DayOff != nil && req.DayOff.Date == dateStr {
			work = nil
		}
		if work != nil && req.LeaveEarly != nil && req.LeaveEarly.Date == dateStr {
			work = scheduling.ApplyException(work, &domain.DayException{
				Kind:       domain.ExceptionLeaveEarly,
				CutoffTime: req.LeaveEarly.CutoffTime,
			})
		}

		if work == nil {
			affected = append(affected, a)
			continue
		}

		duration := a.DurationMinutes
		if duration < 0 {
			duration = 0
		}

		breaks := scheduling.BreakIntervals(proposed.Breaks, dayKey)
		if !scheduling.CanPlaceAt(start, duration, *work, breaks, nil) {
			affected = append(affected, a)
		}
	}

	return affected
}

// createMarker создает синтетическую запись-маркер исключения расписания
func (uc *UseCase) createMarker(ctx context.Context, req *Request, status domain.AppointmentStatus, dateStr string, startTime types.TimeString, notes *string) error {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return fmt.Errorf("%w: invalid marker date %q", ErrInvalidInput, dateStr)
	}

	marker := &domain.Appointment{
		ClientID:        req.BarberID, // маркер принадлежит самому барберу
		BarberID:        req.BarberID,
		ShopID:          req.ShopID,
		Date:            date,
		StartTime:       startTime,
		DurationMinutes: 0,
		Status:          status,
		Notes:           notes,
	}

	if _, err := uc.appointmentRepo.Create(ctx, marker); err != nil {
		uc.logger.Error("ChangeAvailability: failed to create %s marker: %v", status, err)
		return fmt.Errorf("%w: failed to create %s marker: %v", ErrInternal, status, err)
	}

	return nil
}

func toAffected(a *domain.Appointment) AffectedAppointment {
	return AffectedAppointment{
		ID:              a.ID,
		ClientID:        a.ClientID,
		Date:            a.Date.Format(domain.DateFormat),
		StartTime:       a.StartTime,
		DurationMinutes: a.DurationMinutes,
		ServiceName:     a.ServiceName,
	}
}
