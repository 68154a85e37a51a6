package journeyplanner

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/travigo/viaplanner/pkg/ctdf"
)

type routeFunc func(query ctdf.JourneyQuery) (*ctdf.Journey, error)

type fakeOracle struct {
	mutex sync.Mutex

	stops  map[string]*ctdf.Stop
	near   []*ctdf.Stop
	routes map[string]routeFunc

	queries   []ctdf.JourneyQuery
	nearCalls int
}

func newFakeOracle(stops ...*ctdf.Stop) *fakeOracle {
	oracle := &fakeOracle{
		stops:  map[string]*ctdf.Stop{},
		routes: map[string]routeFunc{},
	}
	for _, stop := range stops {
		oracle.stops[stop.PrimaryIdentifier] = stop
	}
	return oracle
}

func (f *fakeOracle) on(from string, to string, fn routeFunc) {
	f.routes[from+">"+to] = fn
}

func (f *fakeOracle) Route(ctx context.Context, query ctdf.JourneyQuery) (*ctdf.Journey, error) {
	f.mutex.Lock()
	f.queries = append(f.queries, query)
	fn := f.routes[query.OriginStopRef+">"+query.DestinationStopRef]
	f.mutex.Unlock()

	if fn == nil {
		return nil, nil
	}
	return fn(query)
}

func (f *fakeOracle) FindStopsNear(latitude float64, longitude float64, limit int, radiusKm float64) []*ctdf.Stop {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.nearCalls++
	if len(f.near) > limit {
		return f.near[:limit]
	}
	return f.near
}

func (f *fakeOracle) FindStopByID(id string) *ctdf.Stop {
	return f.stops[id]
}

func (f *fakeOracle) routeCalls() int {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return len(f.queries)
}

func (f *fakeOracle) queriesTo(to string) []ctdf.JourneyQuery {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	var matching []ctdf.JourneyQuery
	for _, query := range f.queries {
		if query.DestinationStopRef == to {
			matching = append(matching, query)
		}
	}
	return matching
}

func stop(id string, name string, latitude float64, longitude float64) *ctdf.Stop {
	return &ctdf.Stop{
		PrimaryIdentifier: id,
		PrimaryName:       name,
		Location:          ctdf.NewPoint(latitude, longitude),
	}
}

func mustTime(t *testing.T, value string) ctdf.TimeOfDay {
	t.Helper()

	parsed, err := ctdf.ParseTimeOfDay(value)
	if err != nil {
		t.Fatalf("parse %s: %v", value, err)
	}
	return parsed
}

func ride(t *testing.T, lineName string, from *ctdf.Stop, to *ctdf.Stop, departure string, arrival string) *ctdf.RideLeg {
	return &ctdf.RideLeg{
		Line: ctdf.Line{
			Identifier:    lineName,
			Name:          lineName,
			TransportType: ctdf.TransportTypeBus,
		},
		Origin:        from,
		Destination:   to,
		DepartureTime: mustTime(t, departure),
		ArrivalTime:   mustTime(t, arrival),
	}
}

func walk(from *ctdf.Stop, to *ctdf.Stop, minutes int) *ctdf.TransferLeg {
	return &ctdf.TransferLeg{
		Origin:          from,
		Destination:     to,
		MinTransferTime: time.Duration(minutes) * time.Minute,
	}
}

// journey arrives with its last ride
func journey(legs ...ctdf.JourneyLeg) *ctdf.Journey {
	built := &ctdf.Journey{Legs: legs}
	for _, leg := range legs {
		if rideLeg, ok := leg.(*ctdf.RideLeg); ok {
			built.Arrival = rideLeg.ArrivalTime
		}
	}
	return built
}

func fixed(j *ctdf.Journey) routeFunc {
	return func(ctdf.JourneyQuery) (*ctdf.Journey, error) {
		return j, nil
	}
}

func newTestComposer(t *testing.T, oracle Oracle) *Composer {
	t.Helper()

	composer, err := NewComposer(NewStaticHandle(oracle), ComposerConfig{})
	if err != nil {
		t.Fatalf("NewComposer: %v", err)
	}
	return composer
}
