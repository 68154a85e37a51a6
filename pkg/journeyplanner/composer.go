package journeyplanner

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/rs/zerolog/log"
	"github.com/travigo/viaplanner/pkg/ctdf"
	"github.com/travigo/viaplanner/pkg/util"
)

const DefaultFallbackLineName = `"Route " + mode`

type ComposerConfig struct {
	// Zero means DefaultMinTransferTime
	MinTransferTime time.Duration

	// expr expression producing a name for lines the feed left unnamed. Has `mode` and `identifier`
	// available. Empty means DefaultFallbackLineName.
	FallbackLineName string
}

// TripRequest is a point-to-point trip, optionally split at a via stop
type TripRequest struct {
	OriginStopRef      string
	DestinationStopRef string
	DepartureTime      string
	MaxTransfers       int

	ViaStopRef     string
	ViaStayMinutes int
}

type Composer struct {
	handle          *Handle
	minTransferTime time.Duration
	fallbackName    *vm.Program
}

type lineNameEnv struct {
	Mode       string `expr:"mode"`
	Identifier string `expr:"identifier"`
}

func NewComposer(handle *Handle, config ComposerConfig) (*Composer, error) {
	composer := &Composer{
		handle:          handle,
		minTransferTime: config.MinTransferTime,
	}
	if composer.minTransferTime <= 0 {
		composer.minTransferTime = DefaultMinTransferTime
	}

	expression := config.FallbackLineName
	if strings.TrimSpace(expression) == "" {
		expression = DefaultFallbackLineName
	}

	program, err := expr.Compile(expression, expr.Env(lineNameEnv{}), expr.AsKind(reflect.String))
	if err != nil {
		return nil, fmt.Errorf("compile fallback line name: %w", err)
	}
	composer.fallbackName = program

	return composer, nil
}

func (c *Composer) Handle() *Handle {
	return c.handle
}

// ComposeTrip plans origin to destination, or origin to via then via to destination when a via stop is given
func (c *Composer) ComposeTrip(ctx context.Context, request TripRequest) (*ctdf.Itinerary, error) {
	departure, err := ctdf.ParseTimeOfDay(request.DepartureTime)
	if err != nil {
		return nil, err
	}

	oracle, err := c.handle.Oracle(ctx)
	if err != nil {
		return nil, err
	}

	builder := &itineraryBuilder{composer: c}

	if request.ViaStopRef == "" {
		journey, err := c.route(ctx, oracle, request.OriginStopRef, request.DestinationStopRef, departure, request.MaxTransfers, LegDirect)
		if err != nil {
			return nil, err
		}

		builder.addJourney(journey)
		return builder.build(), nil
	}

	first, err := c.route(ctx, oracle, request.OriginStopRef, request.ViaStopRef, departure, request.MaxTransfers, LegToVia)
	if err != nil {
		return nil, err
	}

	viaDeparture := first.ArrivalTime()
	if request.ViaStayMinutes > 0 {
		viaDeparture = viaDeparture.Add(time.Duration(request.ViaStayMinutes) * time.Minute)
	}

	second, err := c.route(ctx, oracle, request.ViaStopRef, request.DestinationStopRef, viaDeparture, request.MaxTransfers, LegFromVia)
	if err != nil {
		return nil, err
	}

	builder.addJourney(first)
	if request.ViaStayMinutes > 0 {
		builder.addDwell(dwellStop(oracle, request.ViaStopRef, first, second), request.ViaStayMinutes)
	}
	builder.addJourney(second)

	log.Debug().
		Str("origin", request.OriginStopRef).
		Str("via", request.ViaStopRef).
		Str("destination", request.DestinationStopRef).
		Str("viadeparture", viaDeparture.Format()).
		Msg("Composed via trip")

	return builder.build(), nil
}

// RouteCost is the realized cost of a single oracle journey
type RouteCost struct {
	TotalMinutes int
	Transfers    int
}

// EvaluateRoute is the cost-only variant of a composed leg. The departure is advanced by offsetMinutes
// when positive. Returns nil when there is no feasible journey. Walking before the first ride counts
// towards TotalMinutes.
func (c *Composer) EvaluateRoute(ctx context.Context, oracle Oracle, from string, to string, departure ctdf.TimeOfDay, maxTransfers int, offsetMinutes int) (*RouteCost, error) {
	if offsetMinutes > 0 {
		departure = departure.Add(time.Duration(offsetMinutes) * time.Minute)
	}

	journey, err := oracle.Route(ctx, BuildQuery(from, to, departure, maxTransfers, c.minTransferTime))
	if err != nil {
		return nil, err
	}
	if !isRideable(journey) {
		return nil, nil
	}

	return &RouteCost{
		TotalMinutes: roundMinutes(journey.TotalDuration()),
		Transfers:    TransferCount(journey),
	}, nil
}

func (c *Composer) route(ctx context.Context, oracle Oracle, from string, to string, departure ctdf.TimeOfDay, maxTransfers int, leg Leg) (*ctdf.Journey, error) {
	journey, err := oracle.Route(ctx, BuildQuery(from, to, departure, maxTransfers, c.minTransferTime))
	if err != nil {
		return nil, err
	}

	if !isRideable(journey) {
		return nil, &NoRouteFoundError{
			Leg:                leg,
			OriginStopRef:      from,
			DestinationStopRef: to,
		}
	}

	return journey, nil
}

// isRideable rejects missing journeys and ones that never board a vehicle
func isRideable(journey *ctdf.Journey) bool {
	return journey != nil && journey.RideCount() > 0
}

// LineName is the line's own name, or the fallback for lines without one
func (c *Composer) LineName(line ctdf.Line) string {
	if name := strings.TrimSpace(line.Name); name != "" {
		return name
	}

	output, err := expr.Run(c.fallbackName, lineNameEnv{
		Mode:       string(line.TransportType),
		Identifier: line.Identifier,
	})
	if err != nil {
		log.Error().Err(err).Str("line", line.Identifier).Msg("Failed to evaluate fallback line name")
	} else if name, ok := output.(string); ok && strings.TrimSpace(name) != "" {
		return name
	}

	return "Route " + string(line.TransportType)
}

// dwellStop describes the via stop using the first place the journeys themselves name it
func dwellStop(oracle Oracle, viaStopRef string, first *ctdf.Journey, second *ctdf.Journey) ctdf.ItineraryStop {
	if len(first.Legs) > 0 {
		if stop := first.Legs[len(first.Legs)-1].DestinationStop(); stop != nil {
			return ctdf.NewItineraryStop(stop)
		}
	}
	if len(second.Legs) > 0 {
		if stop := second.Legs[0].OriginStop(); stop != nil {
			return ctdf.NewItineraryStop(stop)
		}
	}
	if stop := oracle.FindStopByID(viaStopRef); stop != nil {
		return ctdf.NewItineraryStop(stop)
	}

	return ctdf.ItineraryStop{Identifier: viaStopRef, Name: viaStopRef}
}

type itineraryBuilder struct {
	composer  *Composer
	legs      []ctdf.ItineraryLeg
	lineNames []string
}

func (b *itineraryBuilder) addJourney(journey *ctdf.Journey) {
	for _, leg := range journey.Legs {
		switch leg := leg.(type) {
		case *ctdf.RideLeg:
			lineName := b.composer.LineName(leg.Line)
			b.lineNames = append(b.lineNames, lineName)

			b.legs = append(b.legs, ctdf.ItineraryLeg{
				Kind:          ctdf.ItineraryLegVehicle,
				From:          ctdf.NewItineraryStop(leg.Origin),
				To:            ctdf.NewItineraryStop(leg.Destination),
				LineName:      lineName,
				LineColour:    ctdf.LineColour(leg.Line),
				DepartureTime: leg.DepartureTime.Format(),
				ArrivalTime:   leg.ArrivalTime.Format(),
			})
		case *ctdf.TransferLeg:
			b.legs = append(b.legs, ctdf.ItineraryLeg{
				Kind:               ctdf.ItineraryLegTransfer,
				From:               ctdf.NewItineraryStop(leg.Origin),
				To:                 ctdf.NewItineraryStop(leg.Destination),
				MinTransferMinutes: roundMinutes(leg.MinTransferTime),
			})
		}
	}
}

func (b *itineraryBuilder) addDwell(stop ctdf.ItineraryStop, minutes int) {
	b.legs = append(b.legs, ctdf.ItineraryLeg{
		Kind:               ctdf.ItineraryLegTransfer,
		From:               stop,
		To:                 stop,
		MinTransferMinutes: minutes,
	})
}

func (b *itineraryBuilder) build() *ctdf.Itinerary {
	return &ctdf.Itinerary{
		Legs:          b.legs,
		UsedLineNames: util.RemoveDuplicateStrings(b.lineNames, nil),
	}
}
