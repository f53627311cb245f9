package get_shop_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/BarberLinkDO/BookingService/internal/api/handlers"
	"github.com/BarberLinkDO/BookingService/internal/api/middleware"
	"github.com/BarberLinkDO/BookingService/internal/service/appointments"
)

const (
	msgInvalidShopID = "ID de barbería inválido"
	msgMissingUserID = "falta el ID de usuario"
	msgInvalidParams = "parámetros de solicitud inválidos"
	msgShopNotFound  = "barbería no encontrada"
	msgForbidden     = "acceso denegado"
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

// Handle GET /api/v1/shops/{shopId}/appointments
// Query params: barberId, status, date, startDate, endDate, includeInactive (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	shopID, err := strconv.ParseInt(vars["shopId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /shops/{id}/appointments - Invalid shop ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidShopID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /shops/{id}/appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()
	serviceReq, err := ToServiceRequest(shopID, userID,
		query.Get("barberId"), query.Get("status"), query.Get("date"),
		query.Get("startDate"), query.Get("endDate"), query.Get("includeInactive"))
	if err != nil {
		h.logger.Warn("GET /shops/{id}/appointments - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.GetShopAppointments(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrShopNotFound):
			h.logger.Warn("GET /shops/{id}/appointments - Shop not found: shop_id=%d", shopID)
			handlers.RespondNotFound(w, msgShopNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /shops/{id}/appointments - Access denied: shop_id=%d, user_id=%d",
				shopID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /shops/{id}/appointments - Invalid parameters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /shops/{id}/appointments - Failed to get appointments: shop_id=%d, error=%v",
				shopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /shops/{id}/appointments - Appointments retrieved successfully: shop_id=%d, count=%d",
		shopID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
