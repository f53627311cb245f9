package models

import (
	"github.com/BarberLinkDO/BookingService/internal/domain"
)

// WeeklyEntryResponse рабочие часы одного дня недели
type WeeklyEntryResponse struct {
	Day       string `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"` // "00:00" означает "до полуночи"
}

// BreakWindowResponse окно перерыва
type BreakWindowResponse struct {
	Day       string `json:"day"`
	Type      string `json:"type"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Enabled   bool   `json:"enabled"`
}

// ArrivalBufferResponse буфер до записи
type ArrivalBufferResponse struct {
	Enabled bool `json:"enabled"`
	Minutes int  `json:"minutes"`
}

// ScheduleResponse полное расписание барбера
type ScheduleResponse struct {
	BarberID int64                 `json:"barberId"`
	Weekly   []WeeklyEntryResponse `json:"weekly"`
	Breaks   []BreakWindowResponse `json:"breaks"`
	Buffer   ArrivalBufferResponse `json:"arrivalBuffer"`
}

// FromDomainSchedule конвертирует domain модель в DTO
func FromDomainSchedule(s *domain.BarberSchedule) *ScheduleResponse {
	if s == nil {
		return nil
	}

	resp := &ScheduleResponse{
		BarberID: s.BarberID,
		Weekly:   make([]WeeklyEntryResponse, 0, len(s.Weekly)),
		Breaks:   make([]BreakWindowResponse, 0, len(s.Breaks)),
		Buffer: ArrivalBufferResponse{
			Enabled: s.Buffer.Enabled,
			Minutes: s.Buffer.Minutes,
		},
	}

	for _, e := range s.Weekly {
		resp.Weekly = append(resp.Weekly, WeeklyEntryResponse{
			Day:       string(e.Day),
			StartTime: e.StartTime.String(),
			EndTime:   e.EndTime.String(),
		})
	}

	for _, w := range s.Breaks {
		resp.Breaks = append(resp.Breaks, BreakWindowResponse{
			Day:       string(w.Day),
			Type:      string(w.Type),
			StartTime: w.StartTime.String(),
			EndTime:   w.EndTime.String(),
			Enabled:   w.Enabled,
		})
	}

	return resp
}
