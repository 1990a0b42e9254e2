package rider

const maxServiceRadiusKm = 50

func isValidServiceRadius(radiusKm float64) bool {
	return radiusKm > 0 && radiusKm <= maxServiceRadiusKm
}
