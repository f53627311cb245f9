package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BarberLinkDO/BookingService/internal/domain"
	servicecatalogRepo "github.com/BarberLinkDO/BookingService/internal/infra/storage/servicecatalog"
	"github.com/BarberLinkDO/BookingService/internal/integrations/directory"
	"github.com/BarberLinkDO/BookingService/internal/scheduling"
	"github.com/BarberLinkDO/BookingService/pkg/ptr"
	"github.com/BarberLinkDO/BookingService/pkg/types"
)

// Фейки зависимостей

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
}

func (f *fakeAppointmentRepo) GetByShopWithFilter(_ context.Context, _ domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	return f.appointments, nil
}

type fakeScheduleRepo struct {
	schedule *domain.BarberSchedule
}

func (f *fakeScheduleRepo) GetBarberSchedule(_ context.Context, _ int64) (*domain.BarberSchedule, error) {
	return f.schedule, nil
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

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Окружение: барбер 7 в барбершопе 3, Пн 09:00-12:00,
// услуга 5 на 30 минут. Сейчас Пн 31.08.2026 10:00 UTC.

type env struct {
	appointments *fakeAppointmentRepo
	schedule     *fakeScheduleRepo
	services     *fakeServiceRepo
	directory    *fakeDirectory
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
					{Day: domain.DayMon, StartTime: "09:00", EndTime: "12:00"},
				},
			},
		},
		services: &fakeServiceRepo{
			service: &domain.Service{ID: 5, Name: "Corte clásico", BaseDurationMinutes: 30},
		},
		directory: &fakeDirectory{
			barber: &directory.Barber{ID: 7, ShopIDs: []int64{3}, IsActive: true},
		},
	}

	e.uc = NewUseCase(e.appointments, e.schedule, e.services, e.directory, clock, nopLogger{})
	e.uc.timeProvider = &fixedTime{now: time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)}

	return e
}

func labels(slots []types.TimeString) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.String()
	}
	return out
}

func request() *Request {
	return &Request{
		ShopID:    3,
		BarberID:  7,
		Date:      "2026-09-07", // понедельник
		ServiceID: ptr.Ptr(int64(5)),
	}
}

func TestExecute_FreeDay(t *testing.T) {
	e := newEnv(t)

	resp, err := e.uc.Execute(context.Background(), request())

	require.NoError(t, err)
	assert.Equal(t, "2026-09-07", resp.Date)
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Nil(t, resp.Exception)
	// 09:00-12:00 с шагом 30: последний слот 11:30
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}, labels(resp.Slots))
}

func TestExecute_NoServiceSelected(t *testing.T) {
	e := newEnv(t)

	req := request()
	req.ServiceID = nil

	resp, err := e.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Zero(t, resp.DurationMinutes)
	// Без услуги шаг сетки 10 минут, проверка занятости точечная
	assert.Equal(t, "09:00", resp.Slots[0].String())
	assert.Equal(t, "09:10", resp.Slots[1].String())
	assert.Len(t, resp.Slots, 18)
}

func TestExecute_BookingBlocksSlots(t *testing.T) {
	e := newEnv(t)
	e.appointments.appointments = []*domain.Appointment{
		{
			ID: 8, ClientID: 55, BarberID: 7, ShopID: 3,
			Date:            time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
			StartTime:       "10:00",
			DurationMinutes: 30,
			Status:          domain.StatusConfirmed,
		},
	}

	resp, err := e.uc.Execute(context.Background(), request())

	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30", "10:30", "11:00", "11:30"}, labels(resp.Slots))
}

func TestExecute_PastDateEmpty(t *testing.T) {
	e := newEnv(t)

	req := request()
	req.Date = "2026-08-24"

	resp, err := e.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_NonWorkingDayEmpty(t *testing.T) {
	e := newEnv(t)

	req := request()
	req.Date = "2026-09-08" // вторник, расписание только на понедельник

	resp, err := e.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	assert.Nil(t, resp.Exception)
}

func TestExecute_DayOffException(t *testing.T) {
	e := newEnv(t)
	e.appointments.appointments = []*domain.Appointment{
		{
			ID: 9, ClientID: 7, BarberID: 7, ShopID: 3,
			Date:      time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
			StartTime: "00:00",
			Status:    domain.StatusDayOff,
		},
	}

	resp, err := e.uc.Execute(context.Background(), request())

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	require.NotNil(t, resp.Exception)
	assert.Equal(t, domain.ExceptionDayOff, resp.Exception.Kind)
}

func TestExecute_LeaveEarlyException(t *testing.T) {
	e := newEnv(t)
	e.appointments.appointments = []*domain.Appointment{
		{
			ID: 9, ClientID: 7, BarberID: 7, ShopID: 3,
			Date:      time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
			StartTime: "10:30",
			Status:    domain.StatusLeaveEarly,
		},
	}

	resp, err := e.uc.Execute(context.Background(), request())

	require.NoError(t, err)
	// Рабочий день укорочен до 10:30: последний слот 10:00
	assert.Equal(t, []string{"09:00", "09:30", "10:00"}, labels(resp.Slots))
	require.NotNil(t, resp.Exception)
	assert.Equal(t, domain.ExceptionLeaveEarly, resp.Exception.Kind)
	assert.Equal(t, "10:30", resp.Exception.CutoffTime.String())
}

func TestExecute_TodayBufferShiftsFirstSlot(t *testing.T) {
	e := newEnv(t)
	// Сегодня Пн 31.08, сейчас 09:05, буфер 20 минут: раньше 09:25 не
	// записаться, первый подходящий слот сетки 09:30
	e.uc.timeProvider = &fixedTime{now: time.Date(2026, 8, 31, 9, 5, 0, 0, time.UTC)}
	e.schedule.schedule.Buffer = domain.ArrivalBuffer{Enabled: true, Minutes: 20}

	req := request()
	req.Date = "2026-08-31"

	resp, err := e.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, "09:30", resp.Slots[0].String())
	assert.NotContains(t, labels(resp.Slots), "09:00")
	assert.NotContains(t, labels(resp.Slots), "09:25")
}

func TestExecute_BarberNotFound(t *testing.T) {
	e := newEnv(t)
	e.directory.err = directory.ErrBarberNotFound

	_, err := e.uc.Execute(context.Background(), request())

	assert.ErrorIs(t, err, ErrBarberNotFound)
}

func TestExecute_BarberNotInShop(t *testing.T) {
	e := newEnv(t)
	e.directory.barber.ShopIDs = []int64{99}

	_, err := e.uc.Execute(context.Background(), request())

	assert.ErrorIs(t, err, ErrBarberNotInShop)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	e := newEnv(t)
	e.services.err = servicecatalogRepo.ErrServiceNotFound

	_, err := e.uc.Execute(context.Background(), request())

	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	e := newEnv(t)

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"zero shop", func(r *Request) { r.ShopID = 0 }},
		{"zero barber", func(r *Request) { r.BarberID = 0 }},
		{"negative service", func(r *Request) { r.ServiceID = ptr.Ptr(int64(-1)) }},
		{"bad date", func(r *Request) { r.Date = "07-09-2026" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := request()
			tt.mutate(req)

			_, err := e.uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
