package eta_calculate_post

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

	var req dto.ETACalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, h.log, respond.ErrMalformedBody)
		return
	}
	if req.CurrentLat == nil || req.CurrentLng == nil {
		respond.Error(w, h.log, tracking.ErrInvalidCoordinates)
		return
	}

	calc, err := h.service.CalculateETA(r.Context(), callerID, toEntity(req))
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}

	respond.JSON(w, h.log, http.StatusOK, dto.ETACalculateResponse{
		ETA: *dto.NewETA(&calc.ETA),
		CalculationDetails: dto.CalculationDetails{
			DistanceKm:    calc.Details.DistanceKm,
			BaseMinutes:   calc.Details.BaseMinutes,
			TrafficFactor: calc.Details.TrafficFactor,
			AvgSpeedKmh:   calc.Details.AvgSpeedKmh,
			TrafficSource: string(calc.Details.TrafficSource),
		},
	})
}

func toEntity(req dto.ETACalculateRequest) entities.ETARequest {
	return entities.ETARequest{
		OrderID:       req.OrderID,
		RiderID:       req.RiderID,
		Current:       geo.Point{Lat: *req.CurrentLat, Lng: *req.CurrentLng},
		Destination:   optionalPoint(req.DestinationLat, req.DestinationLng),
		Pickup:        optionalPoint(req.PickupLat, req.PickupLng),
		AvgSpeedKmh:   req.AvgSpeedKmh,
		TrafficFactor: req.TrafficFactor,
	}
}

// optionalPoint точка задана, только если пришли обе координаты.
func optionalPoint(lat, lng *float64) *geo.Point {
	if lat == nil || lng == nil {
		return nil
	}
	return &geo.Point{Lat: *lat, Lng: *lng}
}
