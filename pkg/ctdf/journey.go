package ctdf

import (
	"math"
	"time"
)

type Line struct {
	Identifier    string
	Name          string
	TransportType TransportType
	Colour        string
}

// JourneyLeg is either a *RideLeg or a *TransferLeg
type JourneyLeg interface {
	OriginStop() *Stop
	DestinationStop() *Stop

	journeyLeg()
}

type RideLeg struct {
	Line Line

	Origin      *Stop
	Destination *Stop

	DepartureTime TimeOfDay
	ArrivalTime   TimeOfDay
}

func (l *RideLeg) OriginStop() *Stop      { return l.Origin }
func (l *RideLeg) DestinationStop() *Stop { return l.Destination }
func (l *RideLeg) journeyLeg()            {}

type TransferLeg struct {
	Origin      *Stop
	Destination *Stop

	MinTransferTime time.Duration
}

func (l *TransferLeg) OriginStop() *Stop      { return l.Origin }
func (l *TransferLeg) DestinationStop() *Stop { return l.Destination }
func (l *TransferLeg) journeyLeg()            {}

// Minutes is the walk rounded up to whole minutes, as it is counted against arrival times
func (l *TransferLeg) Minutes() int {
	return int(math.Ceil(l.MinTransferTime.Minutes()))
}

// Journey is the best route the oracle found for a JourneyQuery
type Journey struct {
	Legs []JourneyLeg

	// Arrival at the final stop, transfer legs included
	Arrival TimeOfDay
}

// DepartureTime is when the rider sets off: the first ride's departure less any walking before it
func (j *Journey) DepartureTime() TimeOfDay {
	walking := 0
	for _, leg := range j.Legs {
		switch leg := leg.(type) {
		case *RideLeg:
			return leg.DepartureTime - TimeOfDay(walking)
		case *TransferLeg:
			walking += leg.Minutes()
		}
	}
	return j.Arrival - TimeOfDay(walking)
}

func (j *Journey) ArrivalTime() TimeOfDay {
	return j.Arrival
}

func (j *Journey) TotalDuration() time.Duration {
	return j.Arrival.Sub(j.DepartureTime())
}

func (j *Journey) RideCount() int {
	count := 0
	for _, leg := range j.Legs {
		if _, ok := leg.(*RideLeg); ok {
			count++
		}
	}
	return count
}
