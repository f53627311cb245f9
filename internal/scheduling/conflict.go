package scheduling

import (
	"sort"
	"time"

	"github.com/BarberLinkDO/BookingService/internal/domain"
)

// OccupiedRanges возвращает занятые минутные диапазоны [start, start+duration)
// для барбера в барбершопе на дату. Учитываются только записи, блокирующие
// слот (отмененные и синтетические исключаются). Запись с нулевой
// длительностью (неразрешимая услуга) блокирует только свою стартовую минуту
// и представляется диапазоном нулевой ширины. Диапазоны, выходящие за конец
// суток, разбиваются на две части. Результат отсортирован по началу.
func OccupiedRanges(appointments []*domain.Appointment, barberID, shopID int64, date time.Time) [][2]int {
	ranges := make([][2]int, 0, len(appointments))

	for _, a := range appointments {
		if a.BarberID != barberID || a.ShopID != shopID || !a.OccupiesSlot() {
			continue
		}
		if !sameDate(a.Date, date) {
			continue
		}

		start, err := a.StartTime.Minutes()
		if err != nil {
			// Неразборчивое время - запись исключается, а не роняет расчет
			continue
		}

		duration := a.DurationMinutes
		if duration < 0 {
			duration = 0
		}

		ranges = append(ranges, splitDayWrap(start, start+duration)...)
	}

	sort.Slice(ranges, func(i, j int) bool { return ranges[i][0] < ranges[j][0] })
	return ranges
}

// CanPlaceAt проверяет, можно ли начать услугу длительностью duration минут
// в минуту start: услуга целиком помещается в рабочий интервал и не
// пересекает ни перерывы, ни занятые диапазоны. duration == 0 означает
// точечную проверку (услуга еще не выбрана).
func CanPlaceAt(start, duration int, work WorkRange, breaks, occupied [][2]int) bool {
	if start < work.StartMinutes || start >= work.EndMinutes {
		return false
	}
	if start+duration > work.EndMinutes {
		return false
	}

	for _, b := range breaks {
		if rangesConflict(start, start+duration, b[0], b[1]) {
			return false
		}
	}

	for _, occ := range occupied {
		if rangesConflict(start, start+duration, occ[0], occ[1]) {
			return false
		}
	}

	return true
}

// rangesConflict проверяет конфликт полуоткрытых интервалов [aS, aE) и [bS, bE).
// Интервалы нулевой ширины трактуются как точки: точка конфликтует с
// интервалом, если лежит внутри него, и с другой точкой - при совпадении.
func rangesConflict(aStart, aEnd, bStart, bEnd int) bool {
	aPoint := aStart == aEnd
	bPoint := bStart == bEnd

	switch {
	case aPoint && bPoint:
		return aStart == bStart
	case aPoint:
		return bStart <= aStart && aStart < bEnd
	case bPoint:
		return aStart <= bStart && bStart < aEnd
	default:
		// Граничащие интервалы (конец одного == начало другого) не конфликтуют
		return aStart < bEnd && aEnd > bStart
	}
}

// splitDayWrap разбивает диапазон, выходящий за минуту 1440, на две части:
// [start, 1440) и [0, end-1440). Требуется для смен, уходящих за полночь.
func splitDayWrap(start, end int) [][2]int {
	if end <= EndOfDayMinutes {
		return [][2]int{{start, end}}
	}
	return [][2]int{
		{start, EndOfDayMinutes},
		{0, end - EndOfDayMinutes},
	}
}
