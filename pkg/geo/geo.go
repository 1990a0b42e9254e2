package geo

import (
	"errors"
	"math"
	"time"
)

const (
	EarthRadiusKm   = 6371.0
	DefaultSpeedKmh = 25.0
)

var ErrInvalidCoordinates = errors.New("invalid coordinates")

type Point struct {
	Lat float64
	Lng float64
}

func (p Point) Validate() error {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lng) || math.IsInf(p.Lat, 0) || math.IsInf(p.Lng, 0) {
		return ErrInvalidCoordinates
	}
	if p.Lat < -90 || p.Lat > 90 || p.Lng < -180 || p.Lng > 180 {
		return ErrInvalidCoordinates
	}
	return nil
}

// Haversine расстояние по большому кругу в километрах.
func Haversine(a, b Point) float64 {
	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(a.Lat))*math.Cos(toRadians(b.Lat))*math.Sin(dLng/2)*math.Sin(dLng/2)
	// ошибки округления могут дать h чуть больше 1
	h = math.Min(1, h)

	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(h))
}

// EstimateMinutes время в пути: distance / speed * 60 * factor.
func EstimateMinutes(distanceKm, speedKmh, trafficFactor float64) float64 {
	if speedKmh <= 0 {
		speedKmh = DefaultSpeedKmh
	}
	if trafficFactor <= 0 {
		trafficFactor = 1
	}
	if distanceKm <= 0 {
		return 0
	}
	return distanceKm / speedKmh * 60 * trafficFactor
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

func minutes(m float64) time.Duration {
	return time.Duration(m * float64(time.Minute))
}
