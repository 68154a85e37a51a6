package journeyplanner

import (
	"errors"
	"fmt"

	"github.com/travigo/viaplanner/pkg/ctdf"
)

var (
	ErrInvalidTimeFormat = ctdf.ErrInvalidTimeFormat
	ErrNoRouteFound      = errors.New("no route found")
	ErrNoCandidateStop   = errors.New("no candidate stop near location")
)

// Leg names which required part of a trip could not be routed
type Leg string

const (
	LegDirect  Leg = "direct"
	LegToVia   Leg = "to_via"
	LegFromVia Leg = "from_via"
)

type NoRouteFoundError struct {
	Leg                Leg
	OriginStopRef      string
	DestinationStopRef string
}

func (e *NoRouteFoundError) Error() string {
	return fmt.Sprintf("no route found from %s to %s (%s leg)", e.OriginStopRef, e.DestinationStopRef, e.Leg)
}

func (e *NoRouteFoundError) Is(target error) bool {
	return target == ErrNoRouteFound
}
