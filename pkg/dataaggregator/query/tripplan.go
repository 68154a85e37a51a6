package query

type TripPlan struct {
	OriginStopRef      string
	DestinationStopRef string

	ViaStopRef     string
	ViaStayMinutes int

	DepartureTime string
	MaxTransfers  int
}
