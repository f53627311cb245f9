package scheduling

import (
	"sort"
	"time"

	"github.com/BarberLinkDO/BookingService/internal/domain"
	"github.com/BarberLinkDO/BookingService/pkg/types"
)

// EndOfDayMinutes конец суток: EndTime "00:00" в недельном расписании
// означает "до полуночи", а не нулевую минуту того же дня
const EndOfDayMinutes = types.MinutesPerDay

// WorkRange рабочий интервал дня в минутах от начала суток, [Start, End)
type WorkRange struct {
	StartMinutes int
	EndMinutes   int
}

// WeeklyRange возвращает рабочий интервал барбера на указанный день недели.
// nil означает, что барбер в этот день не работает (нет записи в расписании
// или запись не разбирается). EndTime "00:00" интерпретируется как минута 1440.
func WeeklyRange(weekly domain.WeeklyAvailability, day domain.DayKey) *WorkRange {
	entry := weekly.EntryFor(day)
	if entry == nil {
		return nil
	}

	start, err := entry.StartTime.Minutes()
	if err != nil {
		return nil
	}

	end := EndOfDayMinutes
	if entry.EndTime != "00:00" {
		end, err = entry.EndTime.Minutes()
		if err != nil {
			return nil
		}
	}

	// Инвариант start < end: некорректные записи исключаются, а не роняют запрос
	if start >= end {
		return nil
	}

	return &WorkRange{StartMinutes: start, EndMinutes: end}
}

// BreakIntervals собирает интервалы перерывов, действующие в указанный день:
// обычные окна этого дня, часть до полуночи у окон этого дня, пересекающих
// полночь, и часть после полуночи у пересекающих окон предыдущего дня.
// Выключенные окна игнорируются. Результат отсортирован по началу.
func BreakIntervals(breaks []domain.BreakWindow, day domain.DayKey) [][2]int {
	prevDay := day.Previous()
	intervals := make([][2]int, 0, len(breaks))

	for i := range breaks {
		w := &breaks[i]
		if !w.Enabled {
			continue
		}

		start, errS := w.StartTime.Minutes()
		end, errE := w.EndTime.Minutes()
		if errS != nil || errE != nil || start == end {
			continue
		}

		switch {
		case w.Day == day && start < end:
			intervals = append(intervals, [2]int{start, end})
		case w.Day == day && start > end:
			// Хвост до полуночи относится к этому дню
			intervals = append(intervals, [2]int{start, EndOfDayMinutes})
		case w.Day == prevDay && start > end:
			// Голова после полуночи переносится со вчерашнего окна
			intervals = append(intervals, [2]int{0, end})
		}
	}

	sort.Slice(intervals, func(i, j int) bool { return intervals[i][0] < intervals[j][0] })
	return intervals
}

// DayExceptionFrom извлекает исключение расписания на дату из синтетических
// записей (day_off / leave_early) барбера. day_off имеет приоритет над
// leave_early, если на одну дату заведены оба маркера.
func DayExceptionFrom(appointments []*domain.Appointment, barberID, shopID int64, date time.Time) *domain.DayException {
	var leaveEarly *domain.DayException

	for _, a := range appointments {
		if !a.Status.IsSynthetic() || a.BarberID != barberID || a.ShopID != shopID {
			continue
		}
		if !sameDate(a.Date, date) {
			continue
		}

		switch a.Status {
		case domain.StatusDayOff:
			return &domain.DayException{
				Kind:          domain.ExceptionDayOff,
				Notes:         a.Notes,
				AppointmentID: a.ID,
			}
		case domain.StatusLeaveEarly:
			leaveEarly = &domain.DayException{
				Kind:          domain.ExceptionLeaveEarly,
				CutoffTime:    a.StartTime,
				Notes:         a.Notes,
				AppointmentID: a.ID,
			}
		}
	}

	return leaveEarly
}

// ApplyException применяет исключение к рабочему интервалу дня.
// day_off убирает день целиком (nil), leave_early ограничивает конец дня.
func ApplyException(work *WorkRange, exception *domain.DayException) *WorkRange {
	if work == nil || exception == nil {
		return work
	}

	switch exception.Kind {
	case domain.ExceptionDayOff:
		return nil
	case domain.ExceptionLeaveEarly:
		cutoff, err := exception.CutoffTime.Minutes()
		if err != nil {
			return work
		}
		if cutoff >= work.EndMinutes {
			return work
		}
		if cutoff <= work.StartMinutes {
			return nil
		}
		return &WorkRange{StartMinutes: work.StartMinutes, EndMinutes: cutoff}
	}

	return work
}

// sameDate сравнивает только календарные компоненты дат
func sameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
