package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/BarberLinkDO/BookingService/internal/api/handlers"
	getAvailableSlots "github.com/BarberLinkDO/BookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidShopID   = "ID de barbería inválido"
	msgInvalidBarberID = "ID de barbero inválido"
	msgInvalidService  = "ID de servicio inválido"
	msgMissingDate     = "la fecha es obligatoria"
	msgInvalidInput    = "parámetros de solicitud inválidos"
	msgBarberNotFound  = "barbero no encontrado"
	msgBarberNotInShop = "el barbero no trabaja en esta barbería"
	msgServiceNotFound = "servicio no encontrado"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/shops/{shopId}/barbers/{barberId}/available-slots
// Query params: date (обязательный, YYYY-MM-DD), serviceId (опциональный)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	shopID, err := strconv.ParseInt(vars["shopId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /shops/{id}/barbers/{id}/available-slots - Invalid shop ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidShopID)
		return
	}

	barberID, err := strconv.ParseInt(vars["barberId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /shops/{id}/barbers/{id}/available-slots - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /shops/{id}/barbers/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// serviceId опционален: без него шаг сетки берется по умолчанию
	var serviceID *int64
	if serviceIDStr := r.URL.Query().Get("serviceId"); serviceIDStr != "" {
		id, err := strconv.ParseInt(serviceIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /shops/{id}/barbers/{id}/available-slots - Invalid service ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidService)
			return
		}
		serviceID = &id
	}

	useCaseReq := &getAvailableSlots.Request{
		ShopID:    shopID,
		BarberID:  barberID,
		Date:      dateStr,
		ServiceID: serviceID,
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /shops/{id}/barbers/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, getAvailableSlots.ErrBarberNotFound):
			h.logger.Warn("GET /shops/{id}/barbers/{id}/available-slots - Barber not found: barber_id=%d", barberID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, getAvailableSlots.ErrBarberNotInShop):
			h.logger.Warn("GET /shops/{id}/barbers/{id}/available-slots - Barber not in shop: shop_id=%d, barber_id=%d",
				shopID, barberID)
			handlers.RespondBadRequest(w, msgBarberNotInShop)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /shops/{id}/barbers/{id}/available-slots - Service not found: shop_id=%d", shopID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		default:
			h.logger.Error("GET /shops/{id}/barbers/{id}/available-slots - Failed to get slots: shop_id=%d, barber_id=%d, error=%v",
				shopID, barberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /shops/{id}/barbers/{id}/available-slots - Slots retrieved successfully: shop_id=%d, barber_id=%d, date=%s, slots_count=%d",
		shopID, barberID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
