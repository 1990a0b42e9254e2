package geo

import "time"

// ETAInput входные данные для проекции. Pickup задается, пока заказ не забран:
// тогда маршрут идет через точку забора.
type ETAInput struct {
	Current       Point
	Destination   Point
	Pickup        *Point
	SpeedKmh      float64
	TrafficFactor float64
	Now           time.Time
}

type ETAResult struct {
	EstimatedPickupAt   *time.Time
	EstimatedDeliveryAt time.Time
	DistanceToPickupKm  *float64
	DistanceToDropoffKm float64
	DistanceKm          float64
	BaseMinutes         float64
	TrafficFactor       float64
	SpeedKmh            float64
}

func EstimateETA(in ETAInput) ETAResult {
	speed := in.SpeedKmh
	if speed <= 0 {
		speed = DefaultSpeedKmh
	}
	factor := in.TrafficFactor
	if factor <= 0 {
		factor = DefaultTrafficFactor
	}

	res := ETAResult{
		TrafficFactor: factor,
		SpeedKmh:      speed,
	}

	from := in.Current
	var legMinutes float64
	if in.Pickup != nil {
		toPickup := Haversine(in.Current, *in.Pickup)
		pickupMinutes := EstimateMinutes(toPickup, speed, factor)
		pickupAt := in.Now.Add(minutes(pickupMinutes))

		res.DistanceToPickupKm = &toPickup
		res.EstimatedPickupAt = &pickupAt
		res.DistanceKm += toPickup
		legMinutes = pickupMinutes
		from = *in.Pickup
	}

	toDropoff := Haversine(from, in.Destination)
	res.DistanceToDropoffKm = toDropoff
	res.DistanceKm += toDropoff

	res.BaseMinutes = EstimateMinutes(res.DistanceKm, speed, 1)
	res.EstimatedDeliveryAt = in.Now.Add(minutes(legMinutes + EstimateMinutes(toDropoff, speed, factor)))

	return res
}
