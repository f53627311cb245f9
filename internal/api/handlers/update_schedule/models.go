package update_schedule

import (
	"github.com/BarberLinkDO/BookingService/internal/domain"
	changeAvailability "github.com/BarberLinkDO/BookingService/internal/usecase/change_availability"
	"github.com/BarberLinkDO/BookingService/pkg/types"
)

// UpdateRequest HTTP запрос на изменение доступности барбера.
// Секции опциональны: отсутствующая секция остается без изменений.
type UpdateRequest struct {
	ShopID int64 `json:"shopId"`

	Weekly     *[]WeeklyEntry `json:"weekly,omitempty"`
	Breaks     *[]BreakWindow `json:"breaks,omitempty"`
	Buffer     *ArrivalBuffer `json:"arrivalBuffer,omitempty"`
	DayOff     *DayOff        `json:"dayOff,omitempty"`
	LeaveEarly *LeaveEarly    `json:"leaveEarly,omitempty"`

	ConfirmCancellation bool `json:"confirmCancellation,omitempty"`
}

// WeeklyEntry рабочие часы одного дня недели
type WeeklyEntry struct {
	Day       string `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// BreakWindow окно перерыва
type BreakWindow struct {
	Day       string `json:"day"`
	Type      string `json:"type"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Enabled   bool   `json:"enabled"`
}

// ArrivalBuffer буфер до записи на сегодня
type ArrivalBuffer struct {
	Enabled bool `json:"enabled"`
	Minutes int  `json:"minutes"`
}

// DayOff выходной на конкретную дату
type DayOff struct {
	Date  string  `json:"date"`
	Notes *string `json:"notes,omitempty"`
}

// LeaveEarly ранний уход на конкретную дату
type LeaveEarly struct {
	Date       string  `json:"date"`
	CutoffTime string  `json:"cutoffTime"`
	Notes      *string `json:"notes,omitempty"`
}

// Response результат изменения доступности
type Response struct {
	Applied  bool                  `json:"applied"`
	Affected []AffectedAppointment `json:"affectedAppointments,omitempty"`
}

// AffectedAppointment подтвержденная запись, не вписывающаяся в новое расписание
type AffectedAppointment struct {
	ID              int64  `json:"id"`
	ClientID        int64  `json:"clientId"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	ServiceName     string `json:"serviceName"`
}

// ToUseCaseRequest конвертирует HTTP запрос в запрос use case
func (r *UpdateRequest) ToUseCaseRequest(barberID int64) *changeAvailability.Request {
	req := &changeAvailability.Request{
		BarberID:            barberID,
		ShopID:              r.ShopID,
		ConfirmCancellation: r.ConfirmCancellation,
	}

	if r.Weekly != nil {
		weekly := make(domain.WeeklyAvailability, 0, len(*r.Weekly))
		for _, e := range *r.Weekly {
			weekly = append(weekly, domain.WeeklyEntry{
				Day:       domain.DayKey(e.Day),
				StartTime: types.TimeString(e.StartTime),
				EndTime:   types.TimeString(e.EndTime),
			})
		}
		req.Weekly = &weekly
	}

	if r.Breaks != nil {
		breaks := make([]domain.BreakWindow, 0, len(*r.Breaks))
		for _, b := range *r.Breaks {
			breaks = append(breaks, domain.BreakWindow{
				Day:       domain.DayKey(b.Day),
				Type:      domain.BreakType(b.Type),
				StartTime: types.TimeString(b.StartTime),
				EndTime:   types.TimeString(b.EndTime),
				Enabled:   b.Enabled,
			})
		}
		req.Breaks = &breaks
	}

	if r.Buffer != nil {
		req.Buffer = &domain.ArrivalBuffer{
			Enabled: r.Buffer.Enabled,
			Minutes: r.Buffer.Minutes,
		}
	}

	if r.DayOff != nil {
		req.DayOff = &changeAvailability.DayOffRequest{
			Date:  r.DayOff.Date,
			Notes: r.DayOff.Notes,
		}
	}

	if r.LeaveEarly != nil {
		req.LeaveEarly = &changeAvailability.LeaveEarlyRequest{
			Date:       r.LeaveEarly.Date,
			CutoffTime: types.TimeString(r.LeaveEarly.CutoffTime),
			Notes:      r.LeaveEarly.Notes,
		}
	}

	return req
}

// FromUseCaseResponse конвертирует ответ use case в HTTP ответ
func FromUseCaseResponse(resp *changeAvailability.Response) *Response {
	out := &Response{
		Applied:  resp.Applied,
		Affected: make([]AffectedAppointment, 0, len(resp.Affected)),
	}

	for _, a := range resp.Affected {
		out.Affected = append(out.Affected, AffectedAppointment{
			ID:              a.ID,
			ClientID:        a.ClientID,
			Date:            a.Date,
			StartTime:       a.StartTime.String(),
			DurationMinutes: a.DurationMinutes,
			ServiceName:     a.ServiceName,
		})
	}

	return out
}
