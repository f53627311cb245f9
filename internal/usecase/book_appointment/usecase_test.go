package book_appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BarberLinkDO/BookingService/internal/domain"
	servicecatalogRepo "github.com/BarberLinkDO/BookingService/internal/infra/storage/servicecatalog"
	"github.com/BarberLinkDO/BookingService/internal/integrations/directory"
	"github.com/BarberLinkDO/BookingService/internal/scheduling"
	"github.com/BarberLinkDO/BookingService/pkg/ptr"
)

// Фейки зависимостей

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
	created      *domain.Appointment
	createErr    error
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	out := *appt
	out.ID = 101
	out.CreatedAt = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	out.UpdatedAt = out.CreatedAt
	f.created = &out
	return &out, nil
}

func (f *fakeAppointmentRepo) GetByShopWithFilter(_ context.Context, _ domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	return f.appointments, nil
}

type fakeScheduleRepo struct {
	schedule *domain.BarberSchedule
}

func (f *fakeScheduleRepo) GetBarberSchedule(_ context.Context, barberID int64) (*domain.BarberSchedule, error) {
	if f.schedule != nil {
		return f.schedule, nil
	}
	return &domain.BarberSchedule{BarberID: barberID}, nil
}

type fakeServiceRepo struct {
	service *domain.Service
	err     error
}

func (f *fakeServiceRepo) GetByID(_ context.Context, _ int64) (*domain.Service, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.service, nil
}

type fakeDirectory struct {
	barber *directory.Barber
	err    error
}

func (f *fakeDirectory) GetBarber(_ context.Context, _ int64) (*directory.Barber, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.barber, nil
}

type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Окружение теста: барбер 7 в барбершопе 3, услуга 5 на 30 минут,
// Пн 09:00-17:00. Текущий момент - за неделю до даты записи.

type env struct {
	appointments *fakeAppointmentRepo
	schedule     *fakeScheduleRepo
	services     *fakeServiceRepo
	directory    *fakeDirectory
	tx           *fakeTxManager
	uc           *UseCase
}

func newEnv(t *testing.T) *env {
	t.Helper()

	clock, err := scheduling.NewClock("UTC", "+00:00")
	require.NoError(t, err)

	e := &env{
		appointments: &fakeAppointmentRepo{},
		schedule: &fakeScheduleRepo{
			schedule: &domain.BarberSchedule{
				BarberID: 7,
				Weekly: domain.WeeklyAvailability{
					{Day: domain.DayMon, StartTime: "09:00", EndTime: "17:00"},
				},
			},
		},
		services: &fakeServiceRepo{
			service: &domain.Service{
				ID:                  5,
				Name:                "Corte clásico",
				BasePrice:           650,
				BaseDurationMinutes: 30,
			},
		},
		directory: &fakeDirectory{
			barber: &directory.Barber{ID: 7, ShopIDs: []int64{3}, IsActive: true},
		},
		tx: &fakeTxManager{},
	}

	e.uc = NewUseCase(e.appointments, e.schedule, e.services, e.directory, e.tx, clock, nopLogger{})
	e.uc.timeProvider = &fixedTime{now: time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)}

	return e
}

func validRequest() *Request {
	return &Request{
		ClientID:  42,
		ShopID:    3,
		BarberID:  7,
		ServiceID: 5,
		Date:      "2026-09-07", // понедельник
		StartTime: "10:00",
	}
}

func TestExecute_Success(t *testing.T) {
	e := newEnv(t)

	resp, err := e.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(101), resp.ID)
	assert.Equal(t, int64(42), resp.ClientID)
	assert.Equal(t, "2026-09-07", resp.Date)
	assert.Equal(t, "10:00", resp.StartTime.String())
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, "Corte clásico", resp.ServiceName)
	assert.Equal(t, 650.0, resp.PriceAtBooking)
	assert.Equal(t, 1, e.tx.calls)

	require.NotNil(t, e.appointments.created)
	assert.Equal(t, domain.StatusConfirmed, e.appointments.created.Status)
}

func TestExecute_LegacyStartDateTime(t *testing.T) {
	e := newEnv(t)

	req := validRequest()
	req.Date = ""
	req.StartTime = ""
	req.StartDateTime = "2026-09-07T10:00:00Z"

	resp, err := e.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "2026-09-07", resp.Date)
	assert.Equal(t, "10:00", resp.StartTime.String())
}

func TestExecute_InvalidInput(t *testing.T) {
	e := newEnv(t)

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"zero client", func(r *Request) { r.ClientID = 0 }},
		{"zero shop", func(r *Request) { r.ShopID = 0 }},
		{"zero barber", func(r *Request) { r.BarberID = -1 }},
		{"zero service", func(r *Request) { r.ServiceID = 0 }},
		{"bad date", func(r *Request) { r.Date = "07.09.2026" }},
		{"bad time", func(r *Request) { r.StartTime = "9am" }},
		{"bad legacy datetime", func(r *Request) { r.StartDateTime = "next tuesday" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := e.uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_BarberNotFound(t *testing.T) {
	e := newEnv(t)
	e.directory.err = directory.ErrBarberNotFound

	_, err := e.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrBarberNotFound)
}

func TestExecute_BarberNotInShop(t *testing.T) {
	e := newEnv(t)
	e.directory.barber.ShopIDs = []int64{99}

	_, err := e.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrBarberNotInShop)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	e := newEnv(t)
	e.services.err = servicecatalogRepo.ErrServiceNotFound

	_, err := e.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_PastDate(t *testing.T) {
	e := newEnv(t)

	req := validRequest()
	req.Date = "2026-08-30"

	_, err := e.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrPastDate)
	assert.Zero(t, e.tx.calls)
}

func TestExecute_TooLateToBookToday(t *testing.T) {
	e := newEnv(t)
	// Сегодня 07.09, сейчас 09:50. Буфер 30 минут: раньше 10:20 не записаться
	e.uc.timeProvider = &fixedTime{now: time.Date(2026, 9, 7, 9, 50, 0, 0, time.UTC)}
	e.schedule.schedule.Buffer = domain.ArrivalBuffer{Enabled: true, Minutes: 30}

	req := validRequest()
	req.StartTime = "10:00"

	_, err := e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTooLateToBook)

	// 10:20 уже проходит
	req = validRequest()
	req.StartTime = "10:20"

	_, err = e.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_BufferIgnoredForFutureDates(t *testing.T) {
	e := newEnv(t)
	e.schedule.schedule.Buffer = domain.ArrivalBuffer{Enabled: true, Minutes: 720}

	_, err := e.uc.Execute(context.Background(), validRequest())

	assert.NoError(t, err)
}

func TestExecute_OutsideWorkingHours(t *testing.T) {
	e := newEnv(t)

	req := validRequest()
	req.StartTime = "18:00"

	_, err := e.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestExecute_NonWorkingDay(t *testing.T) {
	e := newEnv(t)

	req := validRequest()
	req.Date = "2026-09-08" // вторник, расписание только на понедельник

	_, err := e.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestExecute_DayOffMarker(t *testing.T) {
	e := newEnv(t)
	e.appointments.appointments = []*domain.Appointment{
		{
			ID:       9,
			ClientID: 7,
			BarberID: 7,
			ShopID:   3,
			Date:     time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
			Status:   domain.StatusDayOff,
		},
	}

	_, err := e.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestExecute_SlotConflict(t *testing.T) {
	e := newEnv(t)
	e.appointments.appointments = []*domain.Appointment{
		{
			ID:              8,
			ClientID:        55,
			BarberID:        7,
			ShopID:          3,
			Date:            time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
			StartTime:       "10:00",
			DurationMinutes: 30,
			Status:          domain.StatusConfirmed,
		},
	}

	_, err := e.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotConflict)

	// Стык без пересечения допустим
	req := validRequest()
	req.StartTime = "10:30"

	_, err = e.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_CancelledDoesNotBlock(t *testing.T) {
	e := newEnv(t)
	e.appointments.appointments = []*domain.Appointment{
		{
			ID:              8,
			ClientID:        55,
			BarberID:        7,
			ShopID:          3,
			Date:            time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
			StartTime:       "10:00",
			DurationMinutes: 30,
			Status:          domain.StatusCancelledByClient,
		},
	}

	_, err := e.uc.Execute(context.Background(), validRequest())

	assert.NoError(t, err)
}

func TestExecute_DuplicateService(t *testing.T) {
	e := newEnv(t)
	e.appointments.appointments = []*domain.Appointment{
		{
			ID:              8,
			ClientID:        42,
			BarberID:        7,
			ShopID:          3,
			ServiceID:       5,
			Date:            time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
			StartTime:       "14:00",
			DurationMinutes: 30,
			Status:          domain.StatusConfirmed,
		},
	}

	_, err := e.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrDuplicateService)
}

func TestExecute_IdenticalRetryHitsConflict(t *testing.T) {
	// Повтор того же запроса после успешной брони: собственная запись
	// клиента уже занимает слот, поэтому ответ - конфликт слота,
	// а не отказ по дублю услуги
	e := newEnv(t)

	_, err := e.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	e.appointments.appointments = append(e.appointments.appointments, e.appointments.created)

	_, err = e.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.NotErrorIs(t, err, ErrDuplicateService)
}

func TestExecute_DuplicateIgnoresCancelled(t *testing.T) {
	e := newEnv(t)
	e.appointments.appointments = []*domain.Appointment{
		{
			ID:              8,
			ClientID:        42,
			BarberID:        7,
			ShopID:          3,
			ServiceID:       5,
			Date:            time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
			StartTime:       "14:00",
			DurationMinutes: 30,
			Status:          domain.StatusCancelledByClient,
		},
	}

	_, err := e.uc.Execute(context.Background(), validRequest())

	assert.NoError(t, err)
}

func TestExecute_CreateFailure(t *testing.T) {
	e := newEnv(t)
	e.appointments.createErr = errors.New("connection reset")

	_, err := e.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_NotesTooLong(t *testing.T) {
	e := newEnv(t)

	long := make([]byte, domain.MaxNotesLength+1)
	for i := range long {
		long[i] = 'a'
	}

	req := validRequest()
	req.Notes = ptr.Ptr(string(long))

	_, err := e.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_ZeroDurationService(t *testing.T) {
	// Услуга с нулевой длительностью занимает только стартовую минуту
	e := newEnv(t)
	e.services.service.BaseDurationMinutes = 0

	resp, err := e.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, 0, resp.DurationMinutes)
}
