package book_appointment

import (
	"errors"
	"net/http"

	"github.com/BarberLinkDO/BookingService/internal/api/handlers"
	"github.com/BarberLinkDO/BookingService/internal/api/middleware"
	bookAppointment "github.com/BarberLinkDO/BookingService/internal/usecase/book_appointment"
)

const (
	msgMissingUserID    = "falta el ID de usuario"
	msgInvalidBody      = "cuerpo de solicitud inválido"
	msgInvalidInput     = "datos de solicitud inválidos"
	msgBarberNotFound   = "barbero no encontrado"
	msgBarberNotInShop  = "el barbero no trabaja en esta barbería"
	msgServiceNotFound  = "servicio no encontrado"
	msgPastDate         = "no se puede reservar en una fecha pasada"
	msgTooLateToBook    = "ya es demasiado tarde para reservar esta hora hoy"
	msgOutsideHours     = "la hora está fuera del horario de trabajo del barbero"
	msgSlotConflict     = "la hora se cruza con otra cita"
	msgDuplicateService = "ya tiene una cita confirmada para este servicio en esta fecha"
)

type Handler struct {
	useCase BookAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase BookAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, bookAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, bookAppointment.ErrBarberNotFound):
			h.logger.Warn("POST /appointments - Barber not found: barber_id=%d", req.BarberID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, bookAppointment.ErrBarberNotInShop):
			h.logger.Warn("POST /appointments - Barber not in shop: shop_id=%d, barber_id=%d",
				req.ShopID, req.BarberID)
			handlers.RespondBadRequest(w, msgBarberNotInShop)

		case errors.Is(err, bookAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, bookAppointment.ErrPastDate):
			h.logger.Warn("POST /appointments - Past date: user_id=%d, date=%s", userID, req.Date)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, bookAppointment.ErrTooLateToBook):
			h.logger.Warn("POST /appointments - Too late to book: user_id=%d, barber_id=%d, time=%s",
				userID, req.BarberID, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgTooLateToBook)

		case errors.Is(err, bookAppointment.ErrOutsideWorkingHours):
			h.logger.Warn("POST /appointments - Outside working hours: user_id=%d, barber_id=%d, time=%s",
				userID, req.BarberID, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgOutsideHours)

		case errors.Is(err, bookAppointment.ErrSlotConflict):
			h.logger.Warn("POST /appointments - Slot conflict: user_id=%d, barber_id=%d, time=%s",
				userID, req.BarberID, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, bookAppointment.ErrDuplicateService):
			h.logger.Warn("POST /appointments - Duplicate service: user_id=%d, service_id=%d, date=%s",
				userID, req.ServiceID, req.Date)
			handlers.RespondError(w, http.StatusConflict, msgDuplicateService)

		default:
			h.logger.Error("POST /appointments - Failed to book: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment booked successfully: id=%d, client_id=%d, barber_id=%d, date=%s, time=%s",
		result.ID, result.ClientID, result.BarberID, result.Date, result.StartTime)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
