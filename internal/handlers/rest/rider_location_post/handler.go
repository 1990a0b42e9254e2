package rider_location_post

import (
	"encoding/json"
	"net/http"

	"dispatch/internal/entities"
	"dispatch/internal/handlers/rest/dto"
	"dispatch/internal/handlers/rest/respond"
	"dispatch/internal/pkg/middlewares/auth"
	"dispatch/internal/service/tracking"
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

	var req dto.LocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, h.log, respond.ErrMalformedBody)
		return
	}
	if req.Lat == nil || req.Lng == nil {
		respond.Error(w, h.log, tracking.ErrInvalidCoordinates)
		return
	}

	snapshot, err := h.service.RecordLocation(r.Context(), callerID, entities.LocationSnapshot{
		OrderID:  req.OrderID,
		Point:    geo.Point{Lat: *req.Lat, Lng: *req.Lng},
		Heading:  req.Heading,
		Speed:    req.Speed,
		Accuracy: req.Accuracy,
	})
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}

	respond.JSON(w, h.log, http.StatusCreated, dto.NewLocation(snapshot))
}
