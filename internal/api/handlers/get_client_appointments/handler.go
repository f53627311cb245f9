package get_client_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/BarberLinkDO/BookingService/internal/api/handlers"
	"github.com/BarberLinkDO/BookingService/internal/api/middleware"
	"github.com/BarberLinkDO/BookingService/internal/service/appointments"
	"github.com/BarberLinkDO/BookingService/internal/service/appointments/models"
)

const (
	msgInvalidClientID = "ID de cliente inválido"
	msgMissingUserID   = "falta el ID de usuario"
	msgInvalidParams   = "parámetros de solicitud inválidos"
	msgForbidden       = "acceso denegado"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/clients/{clientId}/appointments
// Query params: status, includeHidden (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	clientID, err := strconv.ParseInt(vars["clientId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /clients/{id}/appointments - Invalid client ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClientID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /clients/{id}/appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	serviceReq := &models.GetClientAppointmentsRequest{
		ClientID: clientID,
		UserID:   userID,
	}

	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		serviceReq.Status = &statusStr
	}
	if includeHiddenStr := r.URL.Query().Get("includeHidden"); includeHiddenStr != "" {
		includeHidden, err := strconv.ParseBool(includeHiddenStr)
		if err != nil {
			h.logger.Warn("GET /clients/{id}/appointments - Invalid includeHidden: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		serviceReq.IncludeHidden = includeHidden
	}

	result, err := h.service.GetClientAppointments(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /clients/{id}/appointments - Access denied: client_id=%d, user_id=%d",
				clientID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /clients/{id}/appointments - Invalid parameters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /clients/{id}/appointments - Failed to get appointments: client_id=%d, error=%v",
				clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /clients/{id}/appointments - Appointments retrieved successfully: client_id=%d, count=%d",
		clientID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
