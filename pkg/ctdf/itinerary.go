package ctdf

type ItineraryLegKind string

const (
	ItineraryLegVehicle  ItineraryLegKind = "vehicle"
	ItineraryLegTransfer ItineraryLegKind = "transfer"
)

type Itinerary struct {
	Legs          []ItineraryLeg `groups:"basic"`
	UsedLineNames []string       `groups:"basic"`
}

type ItineraryStop struct {
	Identifier string   `groups:"basic"`
	Name       string   `groups:"basic"`
	Latitude   *float64 `groups:"detailed" json:",omitempty"`
	Longitude  *float64 `groups:"detailed" json:",omitempty"`
}

type ItineraryLeg struct {
	Kind ItineraryLegKind `groups:"basic"`

	From ItineraryStop `groups:"basic"`
	To   ItineraryStop `groups:"basic"`

	// Vehicle legs
	LineName      string `groups:"basic" json:",omitempty"`
	LineColour    string `groups:"detailed" json:",omitempty"`
	DepartureTime string `groups:"basic" json:",omitempty"`
	ArrivalTime   string `groups:"basic" json:",omitempty"`

	// Transfer legs
	MinTransferMinutes int `groups:"basic"`
}

func NewItineraryStop(stop *Stop) ItineraryStop {
	itineraryStop := ItineraryStop{
		Identifier: stop.PrimaryIdentifier,
		Name:       stop.PrimaryName,
	}

	if stop.HasLocation() {
		latitude := stop.Latitude()
		longitude := stop.Longitude()
		itineraryStop.Latitude = &latitude
		itineraryStop.Longitude = &longitude
	}

	return itineraryStop
}

// IsContiguous reports whether every leg starts where the previous one ended
func (i *Itinerary) IsContiguous() bool {
	for index := 1; index < len(i.Legs); index++ {
		if i.Legs[index-1].To.Identifier != i.Legs[index].From.Identifier {
			return false
		}
	}
	return true
}
