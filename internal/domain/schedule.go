package domain

import (
	"time"

	"github.com/BarberLinkDO/BookingService/pkg/types"
)

// DayKey identifies a day of the week in a weekly schedule
type DayKey string

const (
	DayMon DayKey = "Mon"
	DayTue DayKey = "Tue"
	DayWed DayKey = "Wed"
	DayThu DayKey = "Thu"
	DayFri DayKey = "Fri"
	DaySat DayKey = "Sat"
	DaySun DayKey = "Sun"
)

// AllDayKeys дни недели в порядке отображения
var AllDayKeys = []DayKey{DayMon, DayTue, DayWed, DayThu, DayFri, DaySat, DaySun}

// DayKeyFromWeekday converts time.Weekday to a DayKey
func DayKeyFromWeekday(w time.Weekday) DayKey {
	switch w {
	case time.Monday:
		return DayMon
	case time.Tuesday:
		return DayTue
	case time.Wednesday:
		return DayWed
	case time.Thursday:
		return DayThu
	case time.Friday:
		return DayFri
	case time.Saturday:
		return DaySat
	default:
		return DaySun
	}
}

// IsValid returns true for a known day key
func (d DayKey) IsValid() bool {
	switch d {
	case DayMon, DayTue, DayWed, DayThu, DayFri, DaySat, DaySun:
		return true
	}
	return false
}

// Previous returns the preceding day of the week
func (d DayKey) Previous() DayKey {
	for i, day := range AllDayKeys {
		if day == d {
			return AllDayKeys[(i+6)%7]
		}
	}
	return DaySun
}

// WeeklyEntry is one working-hours entry of a barber's weekly schedule.
// EndTime "00:00" - сентинель "до полуночи" (конец суток, минута 1440).
// День без записи означает, что барбер в этот день не работает.
type WeeklyEntry struct {
	Day       DayKey
	StartTime types.TimeString
	EndTime   types.TimeString
}

// WeeklyAvailability is a barber's full weekly schedule, at most one entry per day
type WeeklyAvailability []WeeklyEntry

// EntryFor возвращает запись расписания на указанный день или nil
func (w WeeklyAvailability) EntryFor(day DayKey) *WeeklyEntry {
	for i := range w {
		if w[i].Day == day {
			return &w[i]
		}
	}
	return nil
}

// BreakType identifies a recurring break window kind
type BreakType string

const (
	BreakBreakfast BreakType = "breakfast"
	BreakLunch     BreakType = "lunch"
	BreakDinner    BreakType = "dinner"
)

// IsValid returns true for a known break type
func (b BreakType) IsValid() bool {
	return b == BreakBreakfast || b == BreakLunch || b == BreakDinner
}

// BreakWindow is a recurring daily unavailability interval.
// Если StartTime > EndTime, окно пересекает полночь: часть до полуночи
// относится к Day, часть после полуночи (00:00..EndTime) - к следующему дню.
type BreakWindow struct {
	Day       DayKey
	Type      BreakType
	StartTime types.TimeString
	EndTime   types.TimeString
	Enabled   bool
}

// CrossesMidnight returns true if the window spills into the next day
func (b *BreakWindow) CrossesMidnight() bool {
	return b.StartTime.IsAfter(b.EndTime)
}

// ArrivalBuffer is the minimum advance notice for same-day bookings
type ArrivalBuffer struct {
	Enabled bool
	Minutes int
}

// ExceptionKind вид исключения расписания на конкретную дату
type ExceptionKind string

const (
	ExceptionDayOff     ExceptionKind = "day_off"
	ExceptionLeaveEarly ExceptionKind = "leave_early"
)

// DayException is a one-off schedule override for a single calendar date,
// derived from synthetic appointment records (status day_off / leave_early)
type DayException struct {
	Kind          ExceptionKind
	CutoffTime    types.TimeString // только для leave_early: новый конец рабочего дня
	Notes         *string
	AppointmentID int64 // ID синтетической записи-маркера
}

// BarberSchedule полный snapshot настроек доступности барбера
type BarberSchedule struct {
	BarberID int64
	Weekly   WeeklyAvailability
	Breaks   []BreakWindow
	Buffer   ArrivalBuffer
}
