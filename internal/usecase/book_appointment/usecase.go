package book_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BarberLinkDO/BookingService/internal/domain"
	servicecatalogRepo "github.com/BarberLinkDO/BookingService/internal/infra/storage/servicecatalog"
	"github.com/BarberLinkDO/BookingService/internal/integrations/directory"
	"github.com/BarberLinkDO/BookingService/internal/scheduling"
	"github.com/BarberLinkDO/BookingService/pkg/ptr"
)

// UseCase use case для создания записи к барберу
type UseCase struct {
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRepository
	serviceRepo     ServiceRepository
	directoryClient DirectoryClient
	txManager       TransactionManager
	clock           *scheduling.Clock
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	serviceRepo ServiceRepository,
	directoryClient DirectoryClient,
	txManager TransactionManager,
	clock *scheduling.Clock,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		serviceRepo:     serviceRepo,
		directoryClient: directoryClient,
		txManager:       txManager,
		clock:           clock,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи.
// Проверка конфликтов и вставка выполняются в сериализуемой транзакции
// с блокировкой записей дня (FOR UPDATE): проверка на чтении без блокировки
// не защищает от конкурирующего бронирования того же слота.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookAppointment: client=%d, shop=%d, barber=%d, service=%d, date=%s, time=%s",
		req.ClientID, req.ShopID, req.BarberID, req.ServiceID, req.Date, req.StartTime)

	// 1. Валидация входных данных (разворачивает legacy startDateTime)
	if err := validateRequest(req, uc.clock); err != nil {
		uc.logger.Warn("BookAppointment: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Проверяем барбера и его принадлежность барбершопу
	barber, err := uc.directoryClient.GetBarber(ctx, req.BarberID)
	if err != nil {
		if errors.Is(err, directory.ErrBarberNotFound) {
			uc.logger.Warn("BookAppointment: barber id=%d not found", req.BarberID)
			return nil, ErrBarberNotFound
		}
		uc.logger.Error("BookAppointment: failed to get barber id=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: failed to get barber: %v", ErrInternal, err)
	}
	if !barber.WorksAt(req.ShopID) {
		uc.logger.Warn("BookAppointment: barber id=%d does not work at shop id=%d", req.BarberID, req.ShopID)
		return nil, ErrBarberNotInShop
	}

	// 3. Получаем услугу (для длительности и денормализации)
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, servicecatalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("BookAppointment: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("BookAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Проверки даты и времени, не требующие транзакции
	if uc.clock.IsPastDate(req.Date, now) {
		uc.logger.Warn("BookAppointment: date %s is in the past", req.Date)
		return nil, ErrPastDate
	}

	startMinutes, err := req.StartTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: startTime must be in HH:MM format", ErrInvalidInput)
	}

	dayKey, ok := uc.clock.DayKeyFor(req.Date)
	if !ok {
		return nil, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
	}

	duration := service.DurationOrZero()

	var result *domain.Appointment

	// 5. Повторная проверка доступности и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Расписание читается внутри транзакции: параллельная смена
		// расписания барбером не должна пройти мимо проверки
		schedule, err := uc.scheduleRepo.GetBarberSchedule(txCtx, req.BarberID)
		if err != nil {
			uc.logger.Error("BookAppointment: failed to get schedule for barber id=%d: %v", req.BarberID, err)
			return fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
		}

		// 5.2. Буфер до записи действует только на сегодняшние брони
		if uc.clock.IsToday(req.Date, now) {
			minAllowed := uc.clock.MinutesOfDay(now)
			if schedule.Buffer.Enabled {
				minAllowed += schedule.Buffer.Minutes
			}
			if startMinutes < minAllowed {
				uc.logger.Warn("BookAppointment: start %s is too late to book today (min allowed minute %d)",
					req.StartTime, minAllowed)
				return ErrTooLateToBook
			}
		}

		// 5.3. Записи дня с блокировкой FOR UPDATE
		filter := domain.AppointmentsFilter{
			ShopID:           req.ShopID,
			BarberID:         ptr.Ptr(req.BarberID),
			StartDate:        &date,
			EndDate:          &date,
			IncludeInactive:  true,
			IncludeSynthetic: true,
		}

		appointments, err := uc.appointmentRepo.GetByShopWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("BookAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 5.4. Рабочий интервал с учетом исключений дня
		exception := scheduling.DayExceptionFrom(appointments, req.BarberID, req.ShopID, date)
		work := scheduling.ApplyException(scheduling.WeeklyRange(schedule.Weekly, dayKey), exception)
		if work == nil {
			uc.logger.Warn("BookAppointment: barber id=%d does not work on %s", req.BarberID, req.Date)
			return ErrOutsideWorkingHours
		}

		breaks := scheduling.BreakIntervals(schedule.Breaks, dayKey)
		occupied := scheduling.OccupiedRanges(appointments, req.BarberID, req.ShopID, date)

		// 5.5. Проверка размещения идет до проверки дубля: повтор того же
		// запроса после успешной брони натыкается на собственную запись
		// и получает конфликт слота, а не отказ по дублю услуги. Если слот
		// не проходит даже без учета занятости - время вне рабочих часов.
		if !scheduling.CanPlaceAt(startMinutes, duration, *work, breaks, occupied) {
			if !scheduling.CanPlaceAt(startMinutes, duration, *work, breaks, nil) {
				uc.logger.Warn("BookAppointment: time %s is outside working hours for barber id=%d on %s",
					req.StartTime, req.BarberID, req.Date)
				return ErrOutsideWorkingHours
			}
			uc.logger.Warn("BookAppointment: slot %s conflicts with existing appointment for barber id=%d on %s",
				req.StartTime, req.BarberID, req.Date)
			return ErrSlotConflict
		}

		// 5.6. Дубль услуги: у клиента уже есть подтвержденная запись
		// на эту услугу на эту дату. Отмененные и no_show не считаются -
		// клиент вправе записаться заново.
		for _, a := range appointments {
			if a.ClientID == req.ClientID && a.ServiceID == req.ServiceID &&
				a.Status == domain.StatusConfirmed {
				uc.logger.Warn("BookAppointment: client=%d already has service=%d booked on %s (appointment id=%d)",
					req.ClientID, req.ServiceID, req.Date, a.ID)
				return ErrDuplicateService
			}
		}

		// 5.7. Создаем запись с денормализацией данных услуги
		appt := &domain.Appointment{
			ClientID:        req.ClientID,
			BarberID:        req.BarberID,
			ShopID:          req.ShopID,
			ServiceID:       req.ServiceID,
			Date:            date,
			StartTime:       req.StartTime,
			DurationMinutes: duration,
			Status:          domain.StatusConfirmed,
			ServiceName:     service.Name,
			PriceAtBooking:  service.BasePrice,
			Notes:           req.Notes,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			uc.logger.Error("BookAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("BookAppointment: successfully created appointment id=%d", result.ID)

	return &Response{
		ID:              result.ID,
		ClientID:        result.ClientID,
		ShopID:          result.ShopID,
		BarberID:        result.BarberID,
		ServiceID:       result.ServiceID,
		Date:            result.Date.Format(domain.DateFormat),
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ServiceName:     result.ServiceName,
		PriceAtBooking:  result.PriceAtBooking,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}
