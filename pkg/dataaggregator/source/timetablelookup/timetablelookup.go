package timetablelookup

import (
	"context"
	"fmt"
	"reflect"

	"github.com/travigo/viaplanner/pkg/ctdf"
	"github.com/travigo/viaplanner/pkg/dataaggregator/query"
	"github.com/travigo/viaplanner/pkg/dataaggregator/source"
	"github.com/travigo/viaplanner/pkg/journeyplanner"
	"github.com/travigo/viaplanner/pkg/timetable"
)

// Source answers stop and metadata lookups straight from the loaded timetable
type Source struct {
	Handle *journeyplanner.Handle
}

type metadataProvider interface {
	Metadata() timetable.Metadata
}

func (s Source) GetName() string {
	return "Timetable Lookup"
}

func (s Source) Supports() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf(ctdf.Stop{}),
		reflect.TypeOf([]*ctdf.Stop{}),
		reflect.TypeOf(timetable.Metadata{}),
	}
}

func (s Source) Lookup(ctx context.Context, q any) (interface{}, error) {
	switch q.(type) {
	case query.Stop, query.StopsNear, query.Metadata:
	default:
		return nil, source.UnsupportedSourceError
	}

	oracle, err := s.Handle.Oracle(ctx)
	if err != nil {
		return nil, err
	}

	switch q := q.(type) {
	case query.Stop:
		stop := oracle.FindStopByID(q.PrimaryIdentifier)
		if stop == nil {
			return nil, fmt.Errorf("%w: stop %s", source.ErrNotFound, q.PrimaryIdentifier)
		}
		return stop, nil
	case query.StopsNear:
		return oracle.FindStopsNear(q.Latitude, q.Longitude, q.Limit, q.RadiusKm), nil
	case query.Metadata:
		provider, ok := oracle.(metadataProvider)
		if !ok {
			return nil, source.UnsupportedSourceError
		}
		metadata := provider.Metadata()
		return &metadata, nil
	}

	return nil, source.UnsupportedSourceError
}
