package timetable

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/travigo/viaplanner/pkg/ctdf"
)

var ErrUnknownStop = errors.New("unknown stop identifier")

const unreached = ctdf.TimeOfDay(math.MaxInt32)

type labelKind int

const (
	labelOrigin labelKind = iota
	labelRide
	labelTransfer
)

// label is an immutable step of a partial journey, chained back to the origin
type label struct {
	kind    labelKind
	stop    int
	arrival ctdf.TimeOfDay

	trip        *trip
	boardIndex  int
	alightIndex int

	transferTime time.Duration

	previous *label
}

// readyTime is when a rider at this label can board another vehicle
func (l *label) readyTime(minTransferTime time.Duration) ctdf.TimeOfDay {
	if l.kind == labelRide {
		return l.arrival.Add(minTransferTime)
	}
	return l.arrival
}

func (l *label) hasRide() bool {
	for current := l; current != nil; current = current.previous {
		if current.kind == labelRide {
			return true
		}
	}
	return false
}

// stopLabels keeps the earliest arrival by vehicle and on foot apart. A walk arriving later than a
// ride can still be ready to board sooner once the minimum transfer time is counted.
type stopLabels struct {
	ride *label
	walk *label
}

func (s *stopLabels) earliest() *label {
	if s.walk != nil && (s.ride == nil || s.walk.arrival < s.ride.arrival) {
		return s.walk
	}
	return s.ride
}

func (s *stopLabels) earliestArrival() ctdf.TimeOfDay {
	if best := s.earliest(); best != nil {
		return best.arrival
	}
	return unreached
}

// Router answers earliest-arrival queries over a Timetable with a round per ride (RAPTOR style).
// Safe for concurrent use.
type Router struct {
	Timetable *Timetable
}

func NewRouter(timetable *Timetable) *Router {
	return &Router{Timetable: timetable}
}

func (r *Router) FindStopByID(id string) *ctdf.Stop {
	return r.Timetable.Stops.FindStopByID(id)
}

func (r *Router) FindStopsNear(latitude float64, longitude float64, limit int, radiusKm float64) []*ctdf.Stop {
	return r.Timetable.Stops.FindStopsNear(latitude, longitude, limit, radiusKm)
}

// Route returns the earliest arriving journey with at least one and at most MaxTransfers+1 rides,
// or nil when no journey exists. Ties on arrival go to the journey with fewer rides.
func (r *Router) Route(ctx context.Context, query ctdf.JourneyQuery) (*ctdf.Journey, error) {
	stops := r.Timetable.Stops

	origin, exists := stops.index(query.OriginStopRef)
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStop, query.OriginStopRef)
	}
	destination, exists := stops.index(query.DestinationStopRef)
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStop, query.DestinationStopRef)
	}
	if origin == destination {
		return nil, nil
	}

	maxRides := query.MaxTransfers + 1
	if maxRides < 1 {
		maxRides = 1
	}

	search := &routeSearch{
		router:          r,
		destination:     destination,
		minTransferTime: query.MinTransferTime,
		best:            make([]stopLabels, stops.Count()),
		reach:           map[int]*label{},
	}

	originLabel := &label{kind: labelOrigin, stop: origin, arrival: query.DepartureTime}
	search.best[origin].walk = originLabel
	search.markReachable(originLabel)
	for _, walked := range search.relaxFootpaths(originLabel) {
		search.markReachable(walked)
	}

	for round := 1; round <= maxRides; round++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rides := search.scanTrips()
		if len(rides) == 0 {
			break
		}

		var walks []*label
		for _, rideLabel := range rides {
			// A later trip in the same round may have beaten this label
			if search.best[rideLabel.stop].ride != rideLabel {
				continue
			}
			walks = append(walks, search.relaxFootpaths(rideLabel)...)
		}

		for _, rideLabel := range rides {
			if search.best[rideLabel.stop].ride == rideLabel {
				search.markReachable(rideLabel)
			}
		}
		for _, walked := range walks {
			if search.best[walked.stop].walk == walked {
				search.markReachable(walked)
			}
		}
	}

	final := search.best[destination].earliest()
	if final == nil || !final.hasRide() {
		return nil, nil
	}

	return buildJourney(final, stops), nil
}

type routeSearch struct {
	router          *Router
	destination     int
	minTransferTime time.Duration

	best []stopLabels

	// Per stop, the label a rider can board the next vehicle from soonest
	reach map[int]*label
}

func (s *routeSearch) target() ctdf.TimeOfDay {
	return s.best[s.destination].earliestArrival()
}

func (s *routeSearch) improvesRide(stop int, arrival ctdf.TimeOfDay) bool {
	current := s.best[stop].ride
	return arrival < s.target() && (current == nil || arrival < current.arrival)
}

// A walk only helps where it beats the earlier walk and is ready before the best ride is
func (s *routeSearch) improvesWalk(stop int, arrival ctdf.TimeOfDay) bool {
	if arrival >= s.target() {
		return false
	}
	if walk := s.best[stop].walk; walk != nil && arrival >= walk.arrival {
		return false
	}
	if ride := s.best[stop].ride; ride != nil && arrival >= ride.readyTime(s.minTransferTime) {
		return false
	}
	return true
}

func (s *routeSearch) markReachable(l *label) {
	current, exists := s.reach[l.stop]
	if !exists || l.readyTime(s.minTransferTime) < current.readyTime(s.minTransferTime) {
		s.reach[l.stop] = l
	}
}

// scanTrips rides every trip boardable from the reachable stops, returning the improved ride labels
func (s *routeSearch) scanTrips() []*label {
	// Boarding only uses stops reachable before this round
	reach := make(map[int]*label, len(s.reach))
	for stop, l := range s.reach {
		reach[stop] = l
	}

	var improved []*label

	for _, t := range s.router.Timetable.trips {
		var boardedFrom *label
		boardIndex := -1

		for i, st := range t.stopTimes {
			if boardedFrom != nil && !st.noDropOff && s.improvesRide(st.stop, st.arrival) {
				rideLabel := &label{
					kind:        labelRide,
					stop:        st.stop,
					arrival:     st.arrival,
					trip:        t,
					boardIndex:  boardIndex,
					alightIndex: i,
					previous:    boardedFrom,
				}
				s.best[st.stop].ride = rideLabel
				improved = append(improved, rideLabel)
			}

			if boardedFrom == nil && !st.noPickup && i < len(t.stopTimes)-1 {
				if previous, reachable := reach[st.stop]; reachable && previous.readyTime(s.minTransferTime) <= st.departure {
					boardedFrom = previous
					boardIndex = i
				}
			}
		}
	}

	return improved
}

func (s *routeSearch) relaxFootpaths(from *label) []*label {
	var walked []*label

	for _, path := range s.router.Timetable.footpaths[from.stop] {
		// A journey needs at least one ride, walking straight from the origin never arrives
		if from.kind == labelOrigin && path.to == s.destination {
			continue
		}

		minutes := int(math.Ceil(path.duration.Minutes()))
		arrival := from.arrival + ctdf.TimeOfDay(minutes)

		if !s.improvesWalk(path.to, arrival) {
			continue
		}

		transferLabel := &label{
			kind:         labelTransfer,
			stop:         path.to,
			arrival:      arrival,
			transferTime: path.duration,
			previous:     from,
		}
		s.best[path.to].walk = transferLabel
		walked = append(walked, transferLabel)
	}

	return walked
}

func buildJourney(final *label, stops *StopsIndex) *ctdf.Journey {
	var legs []ctdf.JourneyLeg

	for l := final; l != nil && l.kind != labelOrigin; l = l.previous {
		switch l.kind {
		case labelRide:
			board := l.trip.stopTimes[l.boardIndex]
			alight := l.trip.stopTimes[l.alightIndex]
			legs = append(legs, &ctdf.RideLeg{
				Line:          *l.trip.line,
				Origin:        stops.stops[board.stop],
				Destination:   stops.stops[alight.stop],
				DepartureTime: board.departure,
				ArrivalTime:   alight.arrival,
			})
		case labelTransfer:
			legs = append(legs, &ctdf.TransferLeg{
				Origin:          stops.stops[l.previous.stop],
				Destination:     stops.stops[l.stop],
				MinTransferTime: l.transferTime,
			})
		}
	}

	for i, j := 0, len(legs)-1; i < j; i, j = i+1, j-1 {
		legs[i], legs[j] = legs[j], legs[i]
	}

	return &ctdf.Journey{
		Legs:    legs,
		Arrival: final.arrival,
	}
}

func (r *Router) Metadata() Metadata {
	return r.Timetable.Metadata
}
