package notify

// ReviewPromptRequest запрос на отправку клиенту предложения оставить отзыв
type ReviewPromptRequest struct {
	ClientID      int64  `json:"client_id"`
	AppointmentID int64  `json:"appointment_id"`
	ShopID        int64  `json:"shop_id"`
	BarberID      int64  `json:"barber_id"`
	ServiceName   string `json:"service_name"`
}

// RescheduleProposalRequest запрос на уведомление клиента об отмене записи
// барбером с предложением перенести визит
type RescheduleProposalRequest struct {
	ClientID      int64  `json:"client_id"`
	AppointmentID int64  `json:"appointment_id"`
	ShopID        int64  `json:"shop_id"`
	BarberID      int64  `json:"barber_id"`
	Date          string `json:"date"`
	StartTime     string `json:"start_time"`
	Reason        string `json:"reason,omitempty"`
}
