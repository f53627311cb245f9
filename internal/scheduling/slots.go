package scheduling

import (
	"github.com/BarberLinkDO/BookingService/internal/domain"
	"github.com/BarberLinkDO/BookingService/pkg/types"
)

// DayContext snapshot всех данных, влияющих на доступность одного дня.
// Собирается вызывающим из расписания, перерывов и записей - генератор
// не обращается ни к какому хранилищу.
type DayContext struct {
	Work      *WorkRange           // nil = барбер не работает в этот день
	Exception *domain.DayException // day_off / leave_early на эту дату
	Breaks    [][2]int             // интервалы перерывов (BreakIntervals)
	Occupied  [][2]int             // занятые диапазоны (OccupiedRanges)
	Buffer    domain.ArrivalBuffer // минимальное время до записи сегодня
}

// GenerateSlots вычисляет упорядоченный список доступных времен начала.
//
// Генерация двухфазная: сначала поминутным сканом ищется самое раннее
// доступное начало (оно может не лежать на сетке от начала рабочего дня -
// например, после записи, закончившейся в 10:45), затем от найденного
// начала кандидаты идут с шагом stepMinutes, каждый проверяется отдельно,
// так как более поздние слоты могут быть заняты независимо от первого.
//
// Сетка зависит только от расписания, перерывов и занятости. Текущее время
// и буфер до записи на сегодня не сдвигают сетку, а отсекают ранние
// кандидаты: при буфере 20 минут и 14:05 на часах первым предлагается
// слот сетки 14:30, а не произвольное 14:25.
//
// serviceDurationMinutes == 0 означает, что услуга еще не выбрана:
// шаг берется по умолчанию, проверка занятости точечная.
func GenerateSlots(day DayContext, serviceDurationMinutes int, dateInPast, dateIsToday bool, nowMinutes int) []types.TimeString {
	slots := make([]types.TimeString, 0)

	// Прошедшие даты не бронируются
	if dateInPast {
		return slots
	}

	work := ApplyException(day.Work, day.Exception)
	if work == nil {
		return slots
	}

	stepMinutes := serviceDurationMinutes
	if stepMinutes <= 0 {
		stepMinutes = domain.DefaultFallbackStepMinutes
	}

	minAllowedStart := 0
	if dateIsToday {
		minAllowedStart = nowMinutes
		if day.Buffer.Enabled {
			minAllowedStart += day.Buffer.Minutes
		}
	}

	duration := serviceDurationMinutes
	if duration < 0 {
		duration = 0
	}

	// Фаза 1: поминутный скан до первого доступного начала
	firstStart := -1
	for minute := work.StartMinutes; minute < work.EndMinutes; minute++ {
		if CanPlaceAt(minute, duration, *work, day.Breaks, day.Occupied) {
			firstStart = minute
			break
		}
	}

	if firstStart < 0 {
		return slots
	}

	// Фаза 2: от первого начала кандидаты с фиксированным шагом
	for minute := firstStart; minute < work.EndMinutes; minute += stepMinutes {
		if minute < minAllowedStart {
			continue
		}
		if !CanPlaceAt(minute, duration, *work, day.Breaks, day.Occupied) {
			continue
		}
		label, err := types.FromMinutes(minute)
		if err != nil {
			continue
		}
		slots = append(slots, label)
	}

	return slots
}
