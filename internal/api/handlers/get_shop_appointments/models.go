package get_shop_appointments

import (
	"fmt"
	"strconv"
	"time"

	"github.com/BarberLinkDO/BookingService/internal/domain"
	"github.com/BarberLinkDO/BookingService/internal/service/appointments/models"
)

// ToServiceRequest собирает запрос сервиса из query параметров.
// date задает точную дату (приоритет), startDate/endDate - диапазон.
func ToServiceRequest(shopID, userID int64, barberIDStr, statusStr, dateStr, startDateStr, endDateStr, includeInactiveStr string) (*models.GetShopAppointmentsRequest, error) {
	req := &models.GetShopAppointmentsRequest{
		ShopID: shopID,
		UserID: userID,
	}

	if barberIDStr != "" {
		barberID, err := strconv.ParseInt(barberIDStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid barberId: %w", err)
		}
		req.BarberID = &barberID
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, fmt.Errorf("invalid date: %w", err)
		}
		req.StartDate = &date
		req.EndDate = &date
	} else {
		if startDateStr != "" {
			startDate, err := time.Parse(domain.DateFormat, startDateStr)
			if err != nil {
				return nil, fmt.Errorf("invalid startDate: %w", err)
			}
			req.StartDate = &startDate
		}
		if endDateStr != "" {
			endDate, err := time.Parse(domain.DateFormat, endDateStr)
			if err != nil {
				return nil, fmt.Errorf("invalid endDate: %w", err)
			}
			req.EndDate = &endDate
		}
	}

	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
