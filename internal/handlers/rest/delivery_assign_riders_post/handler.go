package delivery_assign_riders_post

import (
	"encoding/json"
	"fmt"
	"net/http"

	"dispatch/internal/handlers/rest/dto"
	"dispatch/internal/handlers/rest/respond"
	"dispatch/internal/pkg/middlewares/auth"
	"dispatch/internal/service/dispatch"
	"dispatch/pkg/geo"
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

	var req dto.AssignRidersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, h.log, respond.ErrMalformedBody)
		return
	}
	if req.PickupLat == nil || req.PickupLng == nil {
		respond.Error(w, h.log, dispatch.ErrInvalidCoordinates)
		return
	}

	res, err := h.service.AssignRiders(r.Context(), callerID, req.DeliveryID, geo.Point{
		Lat: *req.PickupLat,
		Lng: *req.PickupLng,
	})
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}

	message := "no riders available"
	if res.CountAssigned > 0 {
		message = fmt.Sprintf("%d riders notified", res.CountAssigned)
	}

	respond.JSON(w, h.log, http.StatusOK, dto.AssignRidersResponse{
		CountAssigned: res.CountAssigned,
		Message:       message,
	})
}
