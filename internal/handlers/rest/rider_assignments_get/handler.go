package rider_assignments_get

import (
	"net/http"

	"dispatch/internal/handlers/rest/dto"
	"dispatch/internal/handlers/rest/respond"
	"dispatch/internal/pkg/middlewares/auth"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	return &Handler{
		log:     log.With(),
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	callerID, ok := auth.CallerID(r.Context())
	if !ok {
		respond.Error(w, h.log, auth.ErrMissingToken)
		return
	}

	offers, err := h.service.ListPending(r.Context(), callerID)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}

	res := make([]dto.AssignmentOffer, 0, len(offers))
	for _, offer := range offers {
		res = append(res, dto.NewAssignmentOffer(offer))
	}

	respond.JSON(w, h.log, http.StatusOK, res)
}
