package update_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/BarberLinkDO/BookingService/internal/api/handlers"
	"github.com/BarberLinkDO/BookingService/internal/api/middleware"
	changeAvailability "github.com/BarberLinkDO/BookingService/internal/usecase/change_availability"
)

const (
	msgInvalidBarberID = "ID de barbero inválido"
	msgMissingUserID   = "falta el ID de usuario"
	msgInvalidBody     = "cuerpo de solicitud inválido"
	msgInvalidInput    = "datos de solicitud inválidos"
	msgBarberNotFound  = "barbero no encontrado"
	msgBarberNotInShop = "el barbero no trabaja en esta barbería"
	msgForbidden       = "acceso denegado"
)

type Handler struct {
	useCase ChangeAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase ChangeAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/barbers/{barberId}/schedule
// Изменять расписание может только сам барбер. Если изменение задевает
// подтвержденные записи и confirmCancellation не передан, возвращается
// 409 со списком затронутых записей.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	barberID, err := strconv.ParseInt(vars["barberId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /barbers/{id}/schedule - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /barbers/{id}/schedule - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if userID != barberID {
		h.logger.Warn("PUT /barbers/{id}/schedule - Access denied: barber_id=%d, user_id=%d", barberID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	var req UpdateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /barbers/{id}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(barberID))
	if err != nil {
		switch {
		case errors.Is(err, changeAvailability.ErrAffectedAppointments):
			// Response заполнен списком затронутых записей
			h.logger.Info("PUT /barbers/{id}/schedule - Confirmation required: barber_id=%d, affected=%d",
				barberID, len(result.Affected))
			handlers.RespondJSON(w, http.StatusConflict, FromUseCaseResponse(result))

		case errors.Is(err, changeAvailability.ErrInvalidInput):
			h.logger.Warn("PUT /barbers/{id}/schedule - Invalid input: barber_id=%d, error=%v", barberID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, changeAvailability.ErrBarberNotFound):
			h.logger.Warn("PUT /barbers/{id}/schedule - Barber not found: barber_id=%d", barberID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, changeAvailability.ErrBarberNotInShop):
			h.logger.Warn("PUT /barbers/{id}/schedule - Barber not in shop: barber_id=%d, shop_id=%d",
				barberID, req.ShopID)
			handlers.RespondBadRequest(w, msgBarberNotInShop)

		default:
			h.logger.Error("PUT /barbers/{id}/schedule - Failed to update schedule: barber_id=%d, error=%v",
				barberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /barbers/{id}/schedule - Schedule updated successfully: barber_id=%d, cancelled=%d",
		barberID, len(result.Affected))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
