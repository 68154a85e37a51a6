package ctdf

type Stop struct {
	PrimaryIdentifier string `groups:"basic"`
	PrimaryName       string `groups:"basic"`

	// Parent station identifier when the feed groups platforms under a station
	ParentIdentifier string `groups:"detailed" json:",omitempty"`

	Location *Location `groups:"basic"`
}

// Latitude & Longitude return 0 when the stop has no location
func (s *Stop) Latitude() float64 {
	if s.Location == nil || len(s.Location.Coordinates) < 2 {
		return 0
	}
	return s.Location.Coordinates[1]
}

func (s *Stop) Longitude() float64 {
	if s.Location == nil || len(s.Location.Coordinates) < 2 {
		return 0
	}
	return s.Location.Coordinates[0]
}

func (s *Stop) HasLocation() bool {
	return s.Location != nil && len(s.Location.Coordinates) >= 2
}
