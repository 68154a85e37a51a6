package journeyplanner

import (
	"context"
	"reflect"

	"github.com/travigo/viaplanner/pkg/ctdf"
	"github.com/travigo/viaplanner/pkg/dataaggregator/query"
	"github.com/travigo/viaplanner/pkg/dataaggregator/source"
	"github.com/travigo/viaplanner/pkg/journeyplanner"
)

type Source struct {
	Composer *journeyplanner.Composer
}

func (s Source) GetName() string {
	return "Journey Planner"
}

func (s Source) Supports() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf(ctdf.Itinerary{}),
	}
}

func (s Source) Lookup(ctx context.Context, q any) (interface{}, error) {
	switch q := q.(type) {
	case query.TripPlan:
		itinerary, err := s.Composer.ComposeTrip(ctx, journeyplanner.TripRequest{
			OriginStopRef:      q.OriginStopRef,
			DestinationStopRef: q.DestinationStopRef,
			DepartureTime:      q.DepartureTime,
			MaxTransfers:       q.MaxTransfers,
			ViaStopRef:         q.ViaStopRef,
			ViaStayMinutes:     q.ViaStayMinutes,
		})
		if err != nil {
			return nil, err
		}
		return itinerary, nil
	default:
		return nil, source.UnsupportedSourceError
	}
}
