package query

type Stop struct {
	PrimaryIdentifier string
}

type StopsNear struct {
	Latitude  float64
	Longitude float64

	Limit    int
	RadiusKm float64
}

// StopByConnectivity resolves a clicked location to the best connected stop
type StopByConnectivity struct {
	Latitude  float64
	Longitude float64
	Role      string

	OriginStopRef      string
	DestinationStopRef string

	DepartureTime  string
	ViaStayMinutes int
	MaxTransfers   int
}

// CandidateScores is StopByConnectivity returning every ranked candidate
type CandidateScores struct {
	StopByConnectivity
}
