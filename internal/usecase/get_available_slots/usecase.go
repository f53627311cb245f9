package get_available_slots

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

// UseCase use case для получения доступных слотов записи к барберу
type UseCase struct {
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRepository
	serviceRepo     ServiceRepository
	directoryClient DirectoryClient
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
	clock *scheduling.Clock,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		serviceRepo:     serviceRepo,
		directoryClient: directoryClient,
		clock:           clock,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: shop=%d, barber=%d, date=%s",
		req.ShopID, req.BarberID, req.Date)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Проверяем барбера и его принадлежность барбершопу
	barber, err := uc.directoryClient.GetBarber(ctx, req.BarberID)
	if err != nil {
		if errors.Is(err, directory.ErrBarberNotFound) {
			uc.logger.Warn("GetAvailableSlots: barber id=%d not found", req.BarberID)
			return nil, ErrBarberNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get barber id=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: failed to get barber: %v", ErrInternal, err)
	}
	if !barber.WorksAt(req.ShopID) {
		uc.logger.Warn("GetAvailableSlots: barber id=%d does not work at shop id=%d", req.BarberID, req.ShopID)
		return nil, ErrBarberNotInShop
	}

	// 3. Разрешаем услугу в длительность (0, если услуга не выбрана)
	duration := 0
	if req.ServiceID != nil {
		service, err := uc.serviceRepo.GetByID(ctx, *req.ServiceID)
		if err != nil {
			if errors.Is(err, servicecatalogRepo.ErrServiceNotFound) {
				uc.logger.Warn("GetAvailableSlots: service id=%d not found", *req.ServiceID)
				return nil, ErrServiceNotFound
			}
			uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", *req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		duration = service.DurationOrZero()
	}

	// 4. Получаем расписание барбера
	schedule, err := uc.scheduleRepo.GetBarberSchedule(ctx, req.BarberID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get schedule for barber id=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	dayKey, ok := uc.clock.DayKeyFor(req.Date)
	if !ok {
		return nil, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
	}

	// 5. Получаем записи на эту дату: нужны и неактивные (completed / no_show
	// блокируют слот), и синтетические маркеры исключений расписания
	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
	}

	filter := domain.AppointmentsFilter{
		ShopID:           req.ShopID,
		BarberID:         ptr.Ptr(req.BarberID),
		StartDate:        &date,
		EndDate:          &date,
		IncludeInactive:  true,
		IncludeSynthetic: true,
	}

	appointments, err := uc.appointmentRepo.GetByShopWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 6. Собираем контекст дня и генерируем слоты
	exception := scheduling.DayExceptionFrom(appointments, req.BarberID, req.ShopID, date)

	day := scheduling.DayContext{
		Work:      scheduling.WeeklyRange(schedule.Weekly, dayKey),
		Exception: exception,
		Breaks:    scheduling.BreakIntervals(schedule.Breaks, dayKey),
		Occupied:  scheduling.OccupiedRanges(appointments, req.BarberID, req.ShopID, date),
		Buffer:    schedule.Buffer,
	}

	slots := scheduling.GenerateSlots(
		day,
		duration,
		uc.clock.IsPastDate(req.Date, now),
		uc.clock.IsToday(req.Date, now),
		uc.clock.MinutesOfDay(now),
	)

	resp := &Response{
		Date:            req.Date,
		ShopID:          req.ShopID,
		BarberID:        req.BarberID,
		ServiceID:       req.ServiceID,
		DurationMinutes: duration,
		Slots:           slots,
	}
	if exception != nil {
		resp.Exception = &ExceptionInfo{
			Kind:       exception.Kind,
			CutoffTime: exception.CutoffTime,
		}
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for shop=%d, barber=%d, date=%s",
		len(slots), req.ShopID, req.BarberID, req.Date)

	return resp, nil
}
