package change_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BarberLinkDO/BookingService/internal/domain"
	"github.com/BarberLinkDO/BookingService/internal/integrations/directory"
	"github.com/BarberLinkDO/BookingService/internal/integrations/notify"
	"github.com/BarberLinkDO/BookingService/internal/scheduling"
	"github.com/BarberLinkDO/BookingService/pkg/ptr"
	"github.com/BarberLinkDO/BookingService/pkg/types"
)

// Фейки зависимостей

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
	markers      []*domain.Appointment
	cancelledIDs []int64
	cancelStatus domain.AppointmentStatus
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	out := *appt
	out.ID = int64(1000 + len(f.markers))
	f.markers = append(f.markers, &out)
	return &out, nil
}

func (f *fakeAppointmentRepo) GetByShopWithFilter(_ context.Context, _ domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	return f.appointments, nil
}

func (f *fakeAppointmentRepo) BatchCancel(_ context.Context, ids []int64, status domain.AppointmentStatus) error {
	f.cancelledIDs = append(f.cancelledIDs, ids...)
	f.cancelStatus = status
	return nil
}

type fakeScheduleRepo struct {
	schedule    *domain.BarberSchedule
	savedWeekly *domain.WeeklyAvailability
	savedBreaks *[]domain.BreakWindow
	savedBuffer *domain.ArrivalBuffer
}

func (f *fakeScheduleRepo) GetBarberSchedule(_ context.Context, _ int64) (*domain.BarberSchedule, error) {
	return f.schedule, nil
}

func (f *fakeScheduleRepo) SaveWeekly(_ context.Context, _ int64, weekly domain.WeeklyAvailability) error {
	f.savedWeekly = &weekly
	return nil
}

func (f *fakeScheduleRepo) SaveBreaks(_ context.Context, _ int64, breaks []domain.BreakWindow) error {
	f.savedBreaks = &breaks
	return nil
}

func (f *fakeScheduleRepo) SaveBuffer(_ context.Context, _ int64, buffer domain.ArrivalBuffer) error {
	f.savedBuffer = &buffer
	return nil
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

type fakeNotify struct {
	proposals []notify.RescheduleProposalRequest
}

func (f *fakeNotify) SendRescheduleProposal(_ context.Context, req notify.RescheduleProposalRequest) error {
	f.proposals = append(f.proposals, req)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
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

// Окружение: барбер 7 в барбершопе 3, Пн и Вт 09:00-17:00.
// Сейчас понедельник 31.08.2026 10:00 UTC.

type env struct {
	appointments *fakeAppointmentRepo
	schedule     *fakeScheduleRepo
	notify       *fakeNotify
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
					{Day: domain.DayMon, StartTime: "09:00", EndTime: "17:00"},
					{Day: domain.DayTue, StartTime: "09:00", EndTime: "17:00"},
				},
			},
		},
		notify: &fakeNotify{},
		directory: &fakeDirectory{
			barber: &directory.Barber{ID: 7, ShopIDs: []int64{3}, IsActive: true},
		},
	}

	e.uc = NewUseCase(e.appointments, e.schedule, e.directory, e.notify, fakeTxManager{}, clock, nopLogger{})
	e.uc.timeProvider = &fixedTime{now: time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)}

	return e
}

// confirmedAppt будущая подтвержденная запись на Пн 07.09.2026
func confirmedAppt(id int64, start string, duration int) *domain.Appointment {
	return &domain.Appointment{
		ID:              id,
		ClientID:        42,
		BarberID:        7,
		ShopID:          3,
		ServiceID:       5,
		Date:            time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString(start),
		DurationMinutes: duration,
		Status:          domain.StatusConfirmed,
		ServiceName:     "Corte clásico",
	}
}

func TestExecute_InvalidInput(t *testing.T) {
	e := newEnv(t)

	tests := []struct {
		name string
		req  *Request
	}{
		{"no sections", &Request{BarberID: 7, ShopID: 3}},
		{"zero barber", &Request{ShopID: 3, Buffer: &domain.ArrivalBuffer{}}},
		{"duplicate weekly day", &Request{BarberID: 7, ShopID: 3, Weekly: &domain.WeeklyAvailability{
			{Day: domain.DayMon, StartTime: "09:00", EndTime: "17:00"},
			{Day: domain.DayMon, StartTime: "10:00", EndTime: "18:00"},
		}}},
		{"start after end", &Request{BarberID: 7, ShopID: 3, Weekly: &domain.WeeklyAvailability{
			{Day: domain.DayMon, StartTime: "17:00", EndTime: "09:00"},
		}}},
		{"unknown day key", &Request{BarberID: 7, ShopID: 3, Weekly: &domain.WeeklyAvailability{
			{Day: "Monday", StartTime: "09:00", EndTime: "17:00"},
		}}},
		{"buffer too large", &Request{BarberID: 7, ShopID: 3, Buffer: &domain.ArrivalBuffer{Enabled: true, Minutes: 1000}}},
		{"bad dayOff date", &Request{BarberID: 7, ShopID: 3, DayOff: &DayOffRequest{Date: "07/09/2026"}}},
		{"bad leaveEarly cutoff", &Request{BarberID: 7, ShopID: 3, LeaveEarly: &LeaveEarlyRequest{Date: "2026-09-07", CutoffTime: "3pm"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_MidnightEndAllowed(t *testing.T) {
	e := newEnv(t)

	req := &Request{BarberID: 7, ShopID: 3, Weekly: &domain.WeeklyAvailability{
		{Day: domain.DayFri, StartTime: "12:00", EndTime: "00:00"},
	}}

	resp, err := e.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.True(t, resp.Applied)
	require.NotNil(t, e.schedule.savedWeekly)
}

func TestExecute_BarberNotFound(t *testing.T) {
	e := newEnv(t)
	e.directory.err = directory.ErrBarberNotFound

	_, err := e.uc.Execute(context.Background(), &Request{
		BarberID: 7, ShopID: 3, Buffer: &domain.ArrivalBuffer{},
	})

	assert.ErrorIs(t, err, ErrBarberNotFound)
}

func TestExecute_BarberNotInShop(t *testing.T) {
	e := newEnv(t)
	e.directory.barber.ShopIDs = []int64{99}

	_, err := e.uc.Execute(context.Background(), &Request{
		BarberID: 7, ShopID: 3, Buffer: &domain.ArrivalBuffer{},
	})

	assert.ErrorIs(t, err, ErrBarberNotInShop)
}

func TestExecute_WeeklyChangeNoAffected(t *testing.T) {
	e := newEnv(t)
	e.appointments.appointments = []*domain.Appointment{confirmedAppt(1, "10:00", 30)}

	// Сужаем день, но запись 10:00-10:30 все еще вписывается
	req := &Request{BarberID: 7, ShopID: 3, Weekly: &domain.WeeklyAvailability{
		{Day: domain.DayMon, StartTime: "10:00", EndTime: "12:00"},
	}}

	resp, err := e.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.True(t, resp.Applied)
	assert.Empty(t, resp.Affected)
	assert.Empty(t, e.appointments.cancelledIDs)
	require.NotNil(t, e.schedule.savedWeekly)
	assert.Len(t, *e.schedule.savedWeekly, 1)
}

func TestExecute_AffectedWithoutConfirmation(t *testing.T) {
	e := newEnv(t)
	e.appointments.appointments = []*domain.Appointment{
		confirmedAppt(1, "10:00", 30),
		confirmedAppt(2, "15:00", 30),
	}

	// Новые часы 09:00-12:00: запись на 15:00 не вписывается
	req := &Request{BarberID: 7, ShopID: 3, Weekly: &domain.WeeklyAvailability{
		{Day: domain.DayMon, StartTime: "09:00", EndTime: "12:00"},
	}}

	resp, err := e.uc.Execute(context.Background(), req)

	require.ErrorIs(t, err, ErrAffectedAppointments)
	require.NotNil(t, resp)
	assert.False(t, resp.Applied)
	require.Len(t, resp.Affected, 1)
	assert.Equal(t, int64(2), resp.Affected[0].ID)
	assert.Equal(t, "2026-09-07", resp.Affected[0].Date)
	assert.Equal(t, "15:00", resp.Affected[0].StartTime.String())

	// Ничего не применено и не отменено
	assert.Nil(t, e.schedule.savedWeekly)
	assert.Empty(t, e.appointments.cancelledIDs)
	assert.Empty(t, e.notify.proposals)
}

func TestExecute_AffectedWithConfirmation(t *testing.T) {
	e := newEnv(t)
	e.appointments.appointments = []*domain.Appointment{
		confirmedAppt(1, "10:00", 30),
		confirmedAppt(2, "15:00", 30),
	}

	req := &Request{
		BarberID: 7, ShopID: 3,
		Weekly: &domain.WeeklyAvailability{
			{Day: domain.DayMon, StartTime: "09:00", EndTime: "12:00"},
		},
		ConfirmCancellation: true,
	}

	resp, err := e.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.True(t, resp.Applied)
	require.Len(t, resp.Affected, 1)

	// Расписание сохранено, затронутая запись отменена барбером
	require.NotNil(t, e.schedule.savedWeekly)
	assert.Equal(t, []int64{2}, e.appointments.cancelledIDs)
	assert.Equal(t, domain.StatusCancelledByBarber, e.appointments.cancelStatus)

	// Клиенту предложен перенос
	require.Len(t, e.notify.proposals, 1)
	assert.Equal(t, int64(42), e.notify.proposals[0].ClientID)
	assert.Equal(t, "schedule_change", e.notify.proposals[0].Reason)
}

func TestExecute_DayOffCreatesMarkerAndCancels(t *testing.T) {
	e := newEnv(t)
	e.appointments.appointments = []*domain.Appointment{confirmedAppt(1, "10:00", 30)}

	req := &Request{
		BarberID: 7, ShopID: 3,
		DayOff:              &DayOffRequest{Date: "2026-09-07", Notes: ptr.Ptr("viaje familiar")},
		ConfirmCancellation: true,
	}

	resp, err := e.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.True(t, resp.Applied)
	assert.Equal(t, []int64{1}, e.appointments.cancelledIDs)

	// Маркер выходного: синтетическая запись на имя барбера
	require.Len(t, e.appointments.markers, 1)
	marker := e.appointments.markers[0]
	assert.Equal(t, domain.StatusDayOff, marker.Status)
	assert.Equal(t, int64(7), marker.ClientID)
	assert.Equal(t, int64(7), marker.BarberID)
	assert.Equal(t, "00:00", marker.StartTime.String())
	assert.Equal(t, 0, marker.DurationMinutes)
	assert.Equal(t, "2026-09-07", marker.Date.Format(domain.DateFormat))
}

func TestExecute_LeaveEarlyCutsTail(t *testing.T) {
	e := newEnv(t)
	e.appointments.appointments = []*domain.Appointment{
		confirmedAppt(1, "10:00", 30), // до среза, остается
		confirmedAppt(2, "14:30", 60), // закончилась бы в 15:30, затронута
	}

	req := &Request{
		BarberID: 7, ShopID: 3,
		LeaveEarly:          &LeaveEarlyRequest{Date: "2026-09-07", CutoffTime: "15:00"},
		ConfirmCancellation: true,
	}

	resp, err := e.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.True(t, resp.Applied)
	assert.Equal(t, []int64{2}, e.appointments.cancelledIDs)
	require.Len(t, resp.Affected, 1)
	assert.Equal(t, int64(2), resp.Affected[0].ID)

	require.Len(t, e.appointments.markers, 1)
	marker := e.appointments.markers[0]
	assert.Equal(t, domain.StatusLeaveEarly, marker.Status)
	assert.Equal(t, "15:00", marker.StartTime.String())
}

func TestExecute_TodayPastAppointmentsSkipped(t *testing.T) {
	e := newEnv(t)
	// Сейчас Пн 31.08 10:00. Запись сегодня в 09:00 уже началась
	past := confirmedAppt(1, "09:00", 30)
	past.Date = time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	e.appointments.appointments = []*domain.Appointment{past}

	req := &Request{
		BarberID: 7, ShopID: 3,
		DayOff: &DayOffRequest{Date: "2026-08-31"},
	}

	resp, err := e.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.True(t, resp.Applied)
	assert.Empty(t, resp.Affected)
	assert.Empty(t, e.appointments.cancelledIDs)
}

func TestExecute_BufferOnlyChange(t *testing.T) {
	e := newEnv(t)
	e.appointments.appointments = []*domain.Appointment{confirmedAppt(1, "10:00", 30)}

	req := &Request{
		BarberID: 7, ShopID: 3,
		Buffer: &domain.ArrivalBuffer{Enabled: true, Minutes: 20},
	}

	resp, err := e.uc.Execute(context.Background(), req)

	// Буфер не влияет на уже созданные записи
	require.NoError(t, err)
	assert.True(t, resp.Applied)
	assert.Empty(t, resp.Affected)
	require.NotNil(t, e.schedule.savedBuffer)
	assert.Equal(t, 20, e.schedule.savedBuffer.Minutes)
	assert.Nil(t, e.schedule.savedWeekly)
	assert.Nil(t, e.schedule.savedBreaks)
}

func TestExecute_BreakChangeAffects(t *testing.T) {
	e := newEnv(t)
	e.appointments.appointments = []*domain.Appointment{confirmedAppt(1, "13:00", 60)}

	// Новый обеденный перерыв накрывает запись 13:00-14:00
	req := &Request{
		BarberID: 7, ShopID: 3,
		Breaks: &[]domain.BreakWindow{
			{Day: domain.DayMon, Type: domain.BreakLunch, StartTime: "13:00", EndTime: "14:00", Enabled: true},
		},
	}

	resp, err := e.uc.Execute(context.Background(), req)

	require.ErrorIs(t, err, ErrAffectedAppointments)
	require.Len(t, resp.Affected, 1)
	assert.Equal(t, int64(1), resp.Affected[0].ID)

	// Выключенный перерыв записи не трогает
	(*req.Breaks)[0].Enabled = false

	resp, err = e.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.True(t, resp.Applied)
	assert.Empty(t, resp.Affected)
}
