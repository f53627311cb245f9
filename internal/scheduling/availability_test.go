package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BarberLinkDO/BookingService/internal/domain"
	"github.com/BarberLinkDO/BookingService/pkg/types"
)

func TestWeeklyRange(t *testing.T) {
	weekly := domain.WeeklyAvailability{
		{Day: domain.DayMon, StartTime: "09:00", EndTime: "17:00"},
		{Day: domain.DayFri, StartTime: "12:00", EndTime: "00:00"},
		{Day: domain.DaySat, StartTime: "17:00", EndTime: "09:00"},
		{Day: domain.DaySun, StartTime: "oops", EndTime: "17:00"},
	}

	r := WeeklyRange(weekly, domain.DayMon)
	require.NotNil(t, r)
	assert.Equal(t, 9*60, r.StartMinutes)
	assert.Equal(t, 17*60, r.EndMinutes)

	// EndTime "00:00" означает конец суток
	r = WeeklyRange(weekly, domain.DayFri)
	require.NotNil(t, r)
	assert.Equal(t, EndOfDayMinutes, r.EndMinutes)

	// Нерабочий день
	assert.Nil(t, WeeklyRange(weekly, domain.DayTue))
	// start >= end отбрасывается
	assert.Nil(t, WeeklyRange(weekly, domain.DaySat))
	// Неразборчивое время отбрасывается
	assert.Nil(t, WeeklyRange(weekly, domain.DaySun))
}

func TestBreakIntervals_SameDay(t *testing.T) {
	breaks := []domain.BreakWindow{
		{Day: domain.DayMon, Type: domain.BreakLunch, StartTime: "13:00", EndTime: "14:00", Enabled: true},
		{Day: domain.DayMon, Type: domain.BreakBreakfast, StartTime: "10:00", EndTime: "10:15", Enabled: true},
		{Day: domain.DayMon, Type: domain.BreakDinner, StartTime: "18:00", EndTime: "19:00", Enabled: false},
		{Day: domain.DayTue, Type: domain.BreakLunch, StartTime: "12:00", EndTime: "13:00", Enabled: true},
	}

	intervals := BreakIntervals(breaks, domain.DayMon)

	// Выключенные окна и окна других дней не попадают, результат отсортирован
	assert.Equal(t, [][2]int{
		{10 * 60, 10*60 + 15},
		{13 * 60, 14 * 60},
	}, intervals)
}

func TestBreakIntervals_MidnightCrossing(t *testing.T) {
	// Ужин Пн 23:30-00:30 пересекает полночь
	breaks := []domain.BreakWindow{
		{Day: domain.DayMon, Type: domain.BreakDinner, StartTime: "23:30", EndTime: "00:30", Enabled: true},
	}

	// Понедельник получает хвост до полуночи
	monday := BreakIntervals(breaks, domain.DayMon)
	assert.Equal(t, [][2]int{{23*60 + 30, EndOfDayMinutes}}, monday)

	// Вторник получает голову после полуночи
	tuesday := BreakIntervals(breaks, domain.DayTue)
	assert.Equal(t, [][2]int{{0, 30}}, tuesday)

	// Остальные дни не затронуты
	assert.Empty(t, BreakIntervals(breaks, domain.DayWed))
}

func TestBreakIntervals_SundayWrapsToMonday(t *testing.T) {
	breaks := []domain.BreakWindow{
		{Day: domain.DaySun, Type: domain.BreakDinner, StartTime: "23:00", EndTime: "01:00", Enabled: true},
	}

	monday := BreakIntervals(breaks, domain.DayMon)
	assert.Equal(t, [][2]int{{0, 60}}, monday)
}

func TestDayExceptionFrom(t *testing.T) {
	date := mustDate(t, "2026-09-07")

	t.Run("day off wins over leave early", func(t *testing.T) {
		appointments := []*domain.Appointment{
			appt(1, 10, date, "15:00", 0, domain.StatusLeaveEarly),
			appt(1, 10, date, "00:00", 0, domain.StatusDayOff),
		}

		exc := DayExceptionFrom(appointments, 1, 10, date)
		require.NotNil(t, exc)
		assert.Equal(t, domain.ExceptionDayOff, exc.Kind)
	})

	t.Run("leave early carries cutoff", func(t *testing.T) {
		appointments := []*domain.Appointment{
			appt(1, 10, date, "15:00", 0, domain.StatusLeaveEarly),
		}

		exc := DayExceptionFrom(appointments, 1, 10, date)
		require.NotNil(t, exc)
		assert.Equal(t, domain.ExceptionLeaveEarly, exc.Kind)
		assert.Equal(t, types.TimeString("15:00"), exc.CutoffTime)
	})

	t.Run("foreign rows ignored", func(t *testing.T) {
		appointments := []*domain.Appointment{
			appt(2, 10, date, "00:00", 0, domain.StatusDayOff),
			appt(1, 10, mustDate(t, "2026-09-08"), "00:00", 0, domain.StatusDayOff),
			appt(1, 10, date, "10:00", 30, domain.StatusConfirmed),
		}

		assert.Nil(t, DayExceptionFrom(appointments, 1, 10, date))
	})
}

func TestApplyException(t *testing.T) {
	work := &WorkRange{StartMinutes: 9 * 60, EndMinutes: 17 * 60}

	assert.Equal(t, work, ApplyException(work, nil))
	assert.Nil(t, ApplyException(nil, &domain.DayException{Kind: domain.ExceptionDayOff}))
	assert.Nil(t, ApplyException(work, &domain.DayException{Kind: domain.ExceptionDayOff}))

	capped := ApplyException(work, &domain.DayException{Kind: domain.ExceptionLeaveEarly, CutoffTime: "13:00"})
	require.NotNil(t, capped)
	assert.Equal(t, 13*60, capped.EndMinutes)

	// Срез позже конца дня ничего не меняет
	same := ApplyException(work, &domain.DayException{Kind: domain.ExceptionLeaveEarly, CutoffTime: "20:00"})
	assert.Equal(t, work, same)

	// Срез до начала дня убирает день целиком
	assert.Nil(t, ApplyException(work, &domain.DayException{Kind: domain.ExceptionLeaveEarly, CutoffTime: "08:00"}))
}
