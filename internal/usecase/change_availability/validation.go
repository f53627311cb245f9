package change_availability

import (
	"fmt"
	"time"

	"github.com/BarberLinkDO/BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BarberID <= 0 {
		return fmt.Errorf("%w: barberID must be positive", ErrInvalidInput)
	}
	if req.ShopID <= 0 {
		return fmt.Errorf("%w: shopID must be positive", ErrInvalidInput)
	}

	if req.Weekly == nil && req.Breaks == nil && req.Buffer == nil &&
		req.DayOff == nil && req.LeaveEarly == nil {
		return fmt.Errorf("%w: at least one change section is required", ErrInvalidInput)
	}

	if req.Weekly != nil {
		if err := validateWeekly(*req.Weekly); err != nil {
			return err
		}
	}
	if req.Breaks != nil {
		if err := validateBreaks(*req.Breaks); err != nil {
			return err
		}
	}
	if req.Buffer != nil {
		if req.Buffer.Minutes < domain.MinArrivalBufferMinutes || req.Buffer.Minutes > domain.MaxArrivalBufferMinutes {
			return fmt.Errorf("%w: buffer minutes must be in [%d, %d]",
				ErrInvalidInput, domain.MinArrivalBufferMinutes, domain.MaxArrivalBufferMinutes)
		}
	}

	if req.DayOff != nil {
		if _, err := time.Parse(domain.DateFormat, req.DayOff.Date); err != nil {
			return fmt.Errorf("%w: dayOff date must be in YYYY-MM-DD format", ErrInvalidInput)
		}
	}
	if req.LeaveEarly != nil {
		if _, err := time.Parse(domain.DateFormat, req.LeaveEarly.Date); err != nil {
			return fmt.Errorf("%w: leaveEarly date must be in YYYY-MM-DD format", ErrInvalidInput)
		}
		if err := req.LeaveEarly.CutoffTime.Validate(); err != nil {
			return fmt.Errorf("%w: leaveEarly cutoffTime must be in HH:MM format", ErrInvalidInput)
		}
	}

	return nil
}

// validateWeekly проверяет недельное расписание: известные дни без дублей,
// разборчивые времена, start < end (конец "00:00" означает полночь)
func validateWeekly(weekly domain.WeeklyAvailability) error {
	seen := make(map[domain.DayKey]bool, len(weekly))

	for _, entry := range weekly {
		if !entry.Day.IsValid() {
			return fmt.Errorf("%w: unknown day key %q", ErrInvalidInput, entry.Day)
		}
		if seen[entry.Day] {
			return fmt.Errorf("%w: duplicate weekly entry for %s", ErrInvalidInput, entry.Day)
		}
		seen[entry.Day] = true

		start, err := entry.StartTime.Minutes()
		if err != nil {
			return fmt.Errorf("%w: invalid start time for %s", ErrInvalidInput, entry.Day)
		}
		if err := entry.EndTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid end time for %s", ErrInvalidInput, entry.Day)
		}
		if entry.EndTime != "00:00" {
			end, _ := entry.EndTime.Minutes()
			if start >= end {
				return fmt.Errorf("%w: start must be before end for %s", ErrInvalidInput, entry.Day)
			}
		}
	}

	return nil
}

// validateBreaks проверяет окна перерывов
func validateBreaks(breaks []domain.BreakWindow) error {
	for _, w := range breaks {
		if !w.Day.IsValid() {
			return fmt.Errorf("%w: unknown day key %q in break window", ErrInvalidInput, w.Day)
		}
		if !w.Type.IsValid() {
			return fmt.Errorf("%w: unknown break type %q", ErrInvalidInput, w.Type)
		}
		if err := w.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid break start time for %s", ErrInvalidInput, w.Day)
		}
		if err := w.EndTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid break end time for %s", ErrInvalidInput, w.Day)
		}
	}

	return nil
}
