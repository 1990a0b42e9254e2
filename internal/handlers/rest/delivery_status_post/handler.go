package delivery_status_post

import (
	"encoding/json"
	"net/http"

	"dispatch/internal/entities"
	"dispatch/internal/handlers/rest/dto"
	"dispatch/internal/handlers/rest/respond"
	"dispatch/internal/pkg/middlewares/auth"
	"dispatch/pkg/logger"
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

	var req dto.DeliveryStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, h.log, respond.ErrMalformedBody)
		return
	}

	res, err := h.service.UpdateStatus(r.Context(), callerID, req.DeliveryID, entities.TripAction(req.Action))
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}

	if res.LedgerEntryCreated {
		h.log.With(
			logger.NewField("delivery", res.DeliveryID.String()),
			logger.NewField("rider", callerID.String()),
		).Info("rider earning recorded")
	}

	respond.JSON(w, h.log, http.StatusOK, dto.DeliveryStatusResponse{
		OK: true,
		Delivery: dto.DeliveryState{
			ID:     res.DeliveryID,
			Status: res.Status.String(),
		},
	})
}
