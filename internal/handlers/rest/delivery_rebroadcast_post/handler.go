package delivery_rebroadcast_post

import (
	"encoding/json"
	"fmt"
	"net/http"

	"dispatch/internal/entities"
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

	var req dto.RebroadcastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, h.log, respond.ErrMalformedBody)
		return
	}

	res, err := h.service.Rebroadcast(r.Context(), callerID, req.DeliveryID)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}

	respond.JSON(w, h.log, http.StatusOK, dto.RebroadcastResponse{
		Status:             res.Status.String(),
		AssignmentsCreated: res.AssignmentsCreated,
		PendingCount:       res.PendingCount,
		RiderID:            res.RiderID,
		Message:            message(res),
	})
}

func message(res *entities.RebroadcastResult) string {
	switch res.Status {
	case entities.RebroadcastAlreadyAssigned:
		return "delivery already has a rider"
	case entities.RebroadcastAlreadyActive:
		return fmt.Sprintf("%d offers still pending", res.PendingCount)
	case entities.RebroadcastNoRiders:
		return "no riders available"
	default:
		return fmt.Sprintf("%d riders notified", res.AssignmentsCreated)
	}
}
