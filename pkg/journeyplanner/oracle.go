package journeyplanner

import (
	"context"

	"github.com/travigo/viaplanner/pkg/ctdf"
)

// Oracle is the point-to-point router the planner is built on
type Oracle interface {
	// Route returns nil with a nil error when no feasible journey exists
	Route(ctx context.Context, query ctdf.JourneyQuery) (*ctdf.Journey, error)

	FindStopsNear(latitude float64, longitude float64, limit int, radiusKm float64) []*ctdf.Stop
	FindStopByID(id string) *ctdf.Stop
}
