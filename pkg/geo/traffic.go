package geo

import "time"

const (
	PeakTrafficFactor    = 1.5
	MiddayTrafficFactor  = 1.2
	DefaultTrafficFactor = 1.0
)

type window struct {
	from, to int // [from, to) по часам
	factor   float64
}

var trafficWindows = []window{
	{from: 7, to: 10, factor: PeakTrafficFactor},
	{from: 12, to: 14, factor: MiddayTrafficFactor},
	{from: 17, to: 20, factor: PeakTrafficFactor},
}

// TrafficModel коэффициент загруженности по времени суток в заданной зоне.
type TrafficModel struct {
	location *time.Location
}

func NewTrafficModel(location *time.Location) *TrafficModel {
	if location == nil {
		location = time.UTC
	}
	return &TrafficModel{location: location}
}

func (m *TrafficModel) FactorAt(t time.Time) float64 {
	hour := t.In(m.location).Hour()
	for _, w := range trafficWindows {
		if hour >= w.from && hour < w.to {
			return w.factor
		}
	}
	return DefaultTrafficFactor
}
