package ctdf

import "math"

// KilometresPerDegree is the flat-earth scale used when ranking nearby stops.
// Not geodesically exact, only good enough at city scale.
const KilometresPerDegree = 111

const earthRadiusMetres = 6371000

type Location struct {
	Type        string    `json:"-" groups:"basic"`
	Coordinates []float64 `json:"coordinates" groups:"basic"`
}

func NewPoint(latitude float64, longitude float64) *Location {
	return &Location{
		Type:        "Point",
		Coordinates: []float64{longitude, latitude},
	}
}

// Distance returns the great-circle distance in metres
func (l *Location) Distance(other *Location) float64 {
	lat1 := l.Coordinates[1] * math.Pi / 180
	lat2 := other.Coordinates[1] * math.Pi / 180
	dLat := lat2 - lat1
	dLon := (other.Coordinates[0] - l.Coordinates[0]) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMetres * c
}

// DegreeDistanceKm is the planar distance between the two points in degree-space scaled by KilometresPerDegree
func (l *Location) DegreeDistanceKm(other *Location) float64 {
	dLat := l.Coordinates[1] - other.Coordinates[1]
	dLon := l.Coordinates[0] - other.Coordinates[0]

	return math.Sqrt(dLat*dLat+dLon*dLon) * KilometresPerDegree
}
