// Package scheduling реализует ядро расчета доступности: рабочие интервалы,
// перерывы, занятые диапазоны и генерацию слотов. Все функции чистые и
// работают с минутами от начала суток; состояние (расписание, записи)
// передается явно через аргументы.
package scheduling

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/BarberLinkDO/BookingService/internal/domain"
)

// Clock инкапсулирует часовой пояс сервиса и правило интерпретации
// наивных дат. Все сравнения "какой сегодня день" выполняются в
// референсном поясе, а не в поясе сервера.
type Clock struct {
	ref   *time.Location
	naive *time.Location
}

// NewClock создает Clock с IANA-зоной для календарных сравнений и
// фиксированным смещением для наивных дат без указания зоны
func NewClock(timezone string, naiveUTCOffset string) (*Clock, error) {
	ref, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("scheduling: unknown timezone %q: %w", timezone, err)
	}

	naive, err := parseFixedOffset(naiveUTCOffset)
	if err != nil {
		return nil, err
	}

	return &Clock{ref: ref, naive: naive}, nil
}

// DefaultClock создает Clock с настройками по умолчанию
// (America/Santo_Domingo, -04:00)
func DefaultClock() *Clock {
	clock, err := NewClock(domain.DefaultReferenceTimezone, domain.DefaultNaiveUTCOffset)
	if err != nil {
		// Санто-Доминго не переходит на летнее время, фиксированное
		// смещение эквивалентно IANA-зоне
		offset := time.FixedZone("UTC-04:00", -4*60*60)
		return &Clock{ref: offset, naive: offset}
	}
	return clock
}

// ParseInstant разбирает дату/время из гетерогенных представлений:
// "YYYY-MM-DD", наивные "YYYY-MM-DDTHH:MM[:SS]" (разделитель T или пробел),
// строки с явным смещением или Z. Наивные значения интерпретируются
// в фиксированном смещении naive. Возвращает false для неразборчивого
// ввода - вызывающий исключает запись, никогда не паникует.
func (c *Clock) ParseInstant(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	// Только дата: полночь в наивном смещении
	if t, err := time.ParseInLocation(domain.DateFormat, s, c.naive); err == nil {
		return t, true
	}

	// SQL-стиль с пробелом приводим к ISO
	if len(s) > 10 && s[10] == ' ' {
		s = s[:10] + "T" + s[11:]
	}

	// Явное смещение или Z
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04Z07:00"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	// Наивные варианты
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if t, err := time.ParseInLocation(layout, s, c.naive); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// DayKeyFor возвращает день недели для даты "YYYY-MM-DD".
// Компоненты даты разбираются по отдельности: time.Parse сырой строки
// сдвинул бы день в зонах с отрицательным смещением.
func (c *Clock) DayKeyFor(dateStr string) (domain.DayKey, bool) {
	y, m, d, ok := splitDate(dateStr)
	if !ok {
		return "", false
	}
	// Полдень исключает любые эффекты смены времени на границе суток
	noon := time.Date(y, time.Month(m), d, 12, 0, 0, 0, c.ref)
	return domain.DayKeyFromWeekday(noon.Weekday()), true
}

// Today возвращает сегодняшнюю дату "YYYY-MM-DD" в референсном поясе
func (c *Clock) Today(now time.Time) string {
	return now.In(c.ref).Format(domain.DateFormat)
}

// LocalDate возвращает календарную дату момента в референсном поясе
func (c *Clock) LocalDate(t time.Time) string {
	return t.In(c.ref).Format(domain.DateFormat)
}

// MinutesOfDay возвращает минуту суток момента в референсном поясе
func (c *Clock) MinutesOfDay(t time.Time) int {
	local := t.In(c.ref)
	return local.Hour()*60 + local.Minute()
}

// IsPastDate проверяет, что дата строго раньше сегодняшней
// ISO-даты сравниваются лексикографически
func (c *Clock) IsPastDate(dateStr string, now time.Time) bool {
	return dateStr < c.Today(now)
}

// IsToday проверяет, что дата совпадает с сегодняшней
func (c *Clock) IsToday(dateStr string, now time.Time) bool {
	return dateStr == c.Today(now)
}

// splitDate разбирает "YYYY-MM-DD" на компоненты
func splitDate(dateStr string) (year, month, day int, ok bool) {
	parts := strings.Split(dateStr, "-")
	if len(parts) != 3 {
		return 0, 0, 0, false
	}

	y, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	d, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, 0, 0, false
	}
	if y < 1 || m < 1 || m > 12 || d < 1 || d > 31 {
		return 0, 0, 0, false
	}

	return y, m, d, true
}

// parseFixedOffset разбирает смещение вида "-04:00" или "+05:30"
func parseFixedOffset(offset string) (*time.Location, error) {
	s := strings.TrimSpace(offset)
	if len(s) != 6 || (s[0] != '+' && s[0] != '-') || s[3] != ':' {
		return nil, fmt.Errorf("scheduling: invalid UTC offset %q, expected ±HH:MM", offset)
	}

	hours, err1 := strconv.Atoi(s[1:3])
	minutes, err2 := strconv.Atoi(s[4:6])
	if err1 != nil || err2 != nil || hours > 14 || minutes > 59 {
		return nil, fmt.Errorf("scheduling: invalid UTC offset %q, expected ±HH:MM", offset)
	}

	seconds := (hours*60 + minutes) * 60
	if s[0] == '-' {
		seconds = -seconds
	}

	return time.FixedZone("UTC"+s, seconds), nil
}
