package stopresolver

import (
	"context"
	"reflect"

	"github.com/travigo/viaplanner/pkg/ctdf"
	"github.com/travigo/viaplanner/pkg/dataaggregator/query"
	"github.com/travigo/viaplanner/pkg/dataaggregator/source"
	"github.com/travigo/viaplanner/pkg/journeyplanner"
)

type Source struct {
	Resolver *journeyplanner.Resolver
}

func (s Source) GetName() string {
	return "Connectivity Stop Resolver"
}

func (s Source) Supports() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf(ctdf.Stop{}),
		reflect.TypeOf([]journeyplanner.CandidateScore{}),
	}
}

func (s Source) Lookup(ctx context.Context, q any) (interface{}, error) {
	switch q := q.(type) {
	case query.StopByConnectivity:
		request, err := resolveRequest(q)
		if err != nil {
			return nil, err
		}

		stop, err := s.Resolver.ResolveStopByConnectivity(ctx, request)
		if err != nil {
			return nil, err
		}
		return stop, nil
	case query.CandidateScores:
		request, err := resolveRequest(q.StopByConnectivity)
		if err != nil {
			return nil, err
		}

		scores, err := s.Resolver.ScoreCandidates(ctx, request)
		if err != nil {
			return nil, err
		}
		return scores, nil
	default:
		return nil, source.UnsupportedSourceError
	}
}

func resolveRequest(q query.StopByConnectivity) (journeyplanner.ResolveRequest, error) {
	role, err := journeyplanner.ParseRole(q.Role)
	if err != nil {
		return journeyplanner.ResolveRequest{}, err
	}

	return journeyplanner.ResolveRequest{
		Latitude:           q.Latitude,
		Longitude:          q.Longitude,
		Role:               role,
		OriginStopRef:      q.OriginStopRef,
		DestinationStopRef: q.DestinationStopRef,
		DepartureTime:      q.DepartureTime,
		ViaStayMinutes:     q.ViaStayMinutes,
		MaxTransfers:       q.MaxTransfers,
	}, nil
}
