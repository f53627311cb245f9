package book_appointment

import (
	"fmt"
	"time"

	"github.com/BarberLinkDO/BookingService/internal/domain"
	"github.com/BarberLinkDO/BookingService/internal/scheduling"
	"github.com/BarberLinkDO/BookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса.
// Legacy-поле StartDateTime разворачивается в Date + StartTime до валидации.
func validateRequest(req *Request, clock *scheduling.Clock) error {
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}
	if req.ShopID <= 0 {
		return fmt.Errorf("%w: shopID must be positive", ErrInvalidInput)
	}
	if req.BarberID <= 0 {
		return fmt.Errorf("%w: barberID must be positive", ErrInvalidInput)
	}
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.StartDateTime != "" {
		if err := expandStartDateTime(req, clock); err != nil {
			return err
		}
	}

	if _, err := time.Parse(domain.DateFormat, req.Date); err != nil {
		return fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime must be in HH:MM format", ErrInvalidInput)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// expandStartDateTime разворачивает legacy-поле в Date + StartTime.
// Моменты с явной зоной приводятся к референсному поясу сервиса.
func expandStartDateTime(req *Request, clock *scheduling.Clock) error {
	instant, ok := clock.ParseInstant(req.StartDateTime)
	if !ok {
		return fmt.Errorf("%w: unparseable startDateTime %q", ErrInvalidInput, req.StartDateTime)
	}

	req.Date = clock.LocalDate(instant)
	minutes := clock.MinutesOfDay(instant)

	start, err := types.FromMinutes(minutes)
	if err != nil {
		return fmt.Errorf("%w: unparseable startDateTime %q", ErrInvalidInput, req.StartDateTime)
	}
	req.StartTime = start

	return nil
}
