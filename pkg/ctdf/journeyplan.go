package ctdf

import "time"

// JourneyQuery is a single point-to-point request to the journey oracle
type JourneyQuery struct {
	OriginStopRef      string
	DestinationStopRef string

	DepartureTime TimeOfDay

	MaxTransfers    int
	MinTransferTime time.Duration
}
