package get_available_slots

import (
	getAvailableSlots "github.com/BarberLinkDO/BookingService/internal/usecase/get_available_slots"
)

// Response HTTP ответ со списком доступных времен начала
type Response struct {
	Date            string         `json:"date"`
	ShopID          int64          `json:"shopId"`
	BarberID        int64          `json:"barberId"`
	ServiceID       *int64         `json:"serviceId,omitempty"`
	DurationMinutes int            `json:"durationMinutes,omitempty"`
	Slots           []string       `json:"slots"`
	Exception       *ExceptionInfo `json:"exception,omitempty"`
}

// ExceptionInfo исключение расписания на запрошенную дату
type ExceptionInfo struct {
	Kind       string `json:"kind"`
	CutoffTime string `json:"cutoffTime,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP ответ
func FromUseCaseResponse(resp *getAvailableSlots.Response) *Response {
	out := &Response{
		Date:            resp.Date,
		ShopID:          resp.ShopID,
		BarberID:        resp.BarberID,
		ServiceID:       resp.ServiceID,
		DurationMinutes: resp.DurationMinutes,
		Slots:           make([]string, 0, len(resp.Slots)),
	}

	for _, slot := range resp.Slots {
		out.Slots = append(out.Slots, slot.String())
	}

	if resp.Exception != nil {
		out.Exception = &ExceptionInfo{
			Kind:       string(resp.Exception.Kind),
			CutoffTime: resp.Exception.CutoffTime.String(),
		}
	}

	return out
}
