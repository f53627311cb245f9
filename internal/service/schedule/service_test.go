package schedule

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BarberLinkDO/BookingService/internal/domain"
	"github.com/BarberLinkDO/BookingService/internal/integrations/directory"
)

// Фейки зависимостей

type fakeScheduleRepo struct {
	schedule *domain.BarberSchedule
	err      error
}

func (f *fakeScheduleRepo) GetBarberSchedule(_ context.Context, _ int64) (*domain.BarberSchedule, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.schedule, nil
}

type fakeDirectory struct {
	err error
}

func (f *fakeDirectory) GetBarber(_ context.Context, barberID int64) (*directory.Barber, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &directory.Barber{ID: barberID, ShopIDs: []int64{3}, IsActive: true}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestGetBarberSchedule(t *testing.T) {
	repo := &fakeScheduleRepo{
		schedule: &domain.BarberSchedule{
			BarberID: 7,
			Weekly: domain.WeeklyAvailability{
				{Day: domain.DayMon, StartTime: "09:00", EndTime: "18:00"},
				{Day: domain.DaySat, StartTime: "10:00", EndTime: "00:00"},
			},
			Breaks: []domain.BreakWindow{
				{Day: domain.DayMon, Type: domain.BreakLunch, StartTime: "13:00", EndTime: "14:00", Enabled: true},
			},
			Buffer: domain.ArrivalBuffer{Enabled: true, Minutes: 30},
		},
	}
	svc := NewService(repo, &fakeDirectory{}, nopLogger{})

	resp, err := svc.GetBarberSchedule(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.BarberID)
	require.Len(t, resp.Weekly, 2)
	assert.Equal(t, "Mon", resp.Weekly[0].Day)
	assert.Equal(t, "09:00", resp.Weekly[0].StartTime)
	// "00:00" в конце смены означает "до полуночи"
	assert.Equal(t, "00:00", resp.Weekly[1].EndTime)
	require.Len(t, resp.Breaks, 1)
	assert.Equal(t, "lunch", resp.Breaks[0].Type)
	assert.True(t, resp.Buffer.Enabled)
	assert.Equal(t, 30, resp.Buffer.Minutes)
}

func TestGetBarberSchedule_EmptySchedule(t *testing.T) {
	repo := &fakeScheduleRepo{schedule: &domain.BarberSchedule{BarberID: 7}}
	svc := NewService(repo, &fakeDirectory{}, nopLogger{})

	resp, err := svc.GetBarberSchedule(context.Background(), 7)

	require.NoError(t, err)
	assert.Empty(t, resp.Weekly)
	assert.Empty(t, resp.Breaks)
	assert.False(t, resp.Buffer.Enabled)
}

func TestGetBarberSchedule_BarberNotFound(t *testing.T) {
	svc := NewService(&fakeScheduleRepo{}, &fakeDirectory{err: directory.ErrBarberNotFound}, nopLogger{})

	_, err := svc.GetBarberSchedule(context.Background(), 404)

	assert.ErrorIs(t, err, ErrBarberNotFound)
}

func TestGetBarberSchedule_RepositoryError(t *testing.T) {
	repo := &fakeScheduleRepo{err: errors.New("connection refused")}
	svc := NewService(repo, &fakeDirectory{}, nopLogger{})

	_, err := svc.GetBarberSchedule(context.Background(), 7)

	assert.ErrorIs(t, err, ErrInternal)
}
