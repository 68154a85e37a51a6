package journeyplanner

import (
	"math"
	"time"

	"github.com/travigo/viaplanner/pkg/ctdf"
)

const DefaultMinTransferTime = 2 * time.Minute

func BuildQuery(from string, to string, departure ctdf.TimeOfDay, maxTransfers int, minTransferTime time.Duration) ctdf.JourneyQuery {
	return ctdf.JourneyQuery{
		OriginStopRef:      from,
		DestinationStopRef: to,
		DepartureTime:      departure,
		MaxTransfers:       maxTransfers,
		MinTransferTime:    minTransferTime,
	}
}

// TransferCount is one less than the number of rides, a single ride has none
func TransferCount(journey *ctdf.Journey) int {
	return max(0, journey.RideCount()-1)
}

// roundMinutes rounds to the nearest whole minute, never below zero
func roundMinutes(duration time.Duration) int {
	return max(0, int(math.Round(duration.Seconds()/60)))
}
