package timetable

import (
	"maps"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/viaplanner/pkg/ctdf"
)

type Metadata struct {
	FeedName    string    `groups:"basic"`
	FeedVersion string    `groups:"basic" json:",omitempty"`
	ServiceDate string    `groups:"basic"`
	ValidFrom   string    `groups:"basic" json:",omitempty"`
	ValidTo     string    `groups:"basic" json:",omitempty"`
	StopCount   int       `groups:"detailed"`
	TripCount   int       `groups:"detailed"`
	GeneratedAt time.Time `groups:"basic"`
}

type stopTime struct {
	stop      int
	arrival   ctdf.TimeOfDay
	departure ctdf.TimeOfDay
	noPickup  bool
	noDropOff bool
}

type trip struct {
	id        string
	line      *ctdf.Line
	stopTimes []stopTime
}

type footpath struct {
	to       int
	duration time.Duration
}

// Timetable is the feed reduced to the trips running on a single service day. Immutable once built.
type Timetable struct {
	Stops    *StopsIndex
	Metadata Metadata

	trips     []*trip
	lines     []*ctdf.Line
	footpaths map[int][]footpath
}

// Lines returns every line in route id order. The records are shared with the trips so edits are visible to routing.
func (t *Timetable) Lines() []*ctdf.Line {
	return t.lines
}

// BuildTimetable indexes every trip running on serviceDate
func BuildTimetable(feed *Feed, serviceDate time.Time) *Timetable {
	stops := NewStopsIndex(feed.Stops)
	activeServices := feed.ActiveServices(serviceDate)

	lines := map[string]*ctdf.Line{}
	for _, route := range feed.Routes {
		// Plenty of feeds only fill in route_long_name
		name := strings.TrimSpace(route.ShortName)
		if name == "" {
			name = strings.TrimSpace(route.LongName)
		}

		lines[route.ID] = &ctdf.Line{
			Identifier:    route.ID,
			Name:          name,
			TransportType: ctdf.TransportTypeFromGTFS(route.Type),
			Colour:        route.Colour,
		}
	}

	trips := map[string]*trip{}
	for _, gtfsTrip := range feed.Trips {
		if !activeServices[gtfsTrip.ServiceID] {
			continue
		}

		line, exists := lines[gtfsTrip.RouteID]
		if !exists {
			log.Debug().Str("trip", gtfsTrip.ID).Str("route", gtfsTrip.RouteID).Msg("Trip references unknown route")
			continue
		}
		trips[gtfsTrip.ID] = &trip{id: gtfsTrip.ID, line: line}
	}

	sequences := map[string][]StopTime{}
	for _, gtfsStopTime := range feed.StopTimes {
		if _, exists := trips[gtfsStopTime.TripID]; exists {
			sequences[gtfsStopTime.TripID] = append(sequences[gtfsStopTime.TripID], gtfsStopTime)
		}
	}

	for tripID, sequence := range sequences {
		sort.SliceStable(sequence, func(i, j int) bool {
			return sequence[i].StopSequence < sequence[j].StopSequence
		})

		trips[tripID].stopTimes = convertStopTimes(tripID, sequence, stops)
	}

	orderedTrips := make([]*trip, 0, len(trips))
	for _, tripID := range sortedKeys(trips) {
		if len(trips[tripID].stopTimes) >= 2 {
			orderedTrips = append(orderedTrips, trips[tripID])
		}
	}
	sort.SliceStable(orderedTrips, func(i, j int) bool {
		return orderedTrips[i].stopTimes[0].departure < orderedTrips[j].stopTimes[0].departure
	})

	footpaths := map[int][]footpath{}
	for _, transfer := range feed.Transfers {
		from, fromExists := stops.index(transfer.FromStopID)
		to, toExists := stops.index(transfer.ToStopID)
		// Only walking links between distinct stops with a known time become transfer legs
		if !fromExists || !toExists || from == to || transfer.TransferType != 2 {
			continue
		}

		footpaths[from] = append(footpaths[from], footpath{
			to:       to,
			duration: time.Duration(transfer.MinTransferTime) * time.Second,
		})
	}

	metadata := Metadata{
		ServiceDate: serviceDate.Format("2006-01-02"),
		StopCount:   stops.Count(),
		TripCount:   len(orderedTrips),
		GeneratedAt: time.Now(),
	}
	if len(feed.FeedInfo) > 0 {
		metadata.FeedName = feed.FeedInfo[0].PublisherName
		metadata.FeedVersion = feed.FeedInfo[0].Version
	}
	if metadata.FeedName == "" && len(feed.Agencies) > 0 {
		metadata.FeedName = feed.Agencies[0].Name
	}
	if from, to, found := feed.ValidityRange(); found {
		metadata.ValidFrom = from.Format("2006-01-02")
		metadata.ValidTo = to.Format("2006-01-02")
	}

	orderedLines := make([]*ctdf.Line, 0, len(lines))
	for _, routeID := range sortedKeys(lines) {
		orderedLines = append(orderedLines, lines[routeID])
	}

	return &Timetable{
		Stops:     stops,
		Metadata:  metadata,
		trips:     orderedTrips,
		lines:     orderedLines,
		footpaths: footpaths,
	}
}

func convertStopTimes(tripID string, sequence []StopTime, stops *StopsIndex) []stopTime {
	converted := make([]stopTime, 0, len(sequence))

	for _, gtfsStopTime := range sequence {
		stop, exists := stops.index(gtfsStopTime.StopID)
		if !exists {
			log.Debug().Str("trip", tripID).Str("stop", gtfsStopTime.StopID).Msg("Stop time references unknown stop")
			continue
		}

		arrivalString := gtfsStopTime.ArrivalTime
		departureString := gtfsStopTime.DepartureTime
		if arrivalString == "" {
			arrivalString = departureString
		}
		if departureString == "" {
			departureString = arrivalString
		}

		// Untimed intermediate stops can't be routed through
		arrival, err := ctdf.ParseGTFSTime(arrivalString)
		if err != nil {
			continue
		}
		departure, err := ctdf.ParseGTFSTime(departureString)
		if err != nil {
			continue
		}

		converted = append(converted, stopTime{
			stop:      stop,
			arrival:   arrival,
			departure: departure,
			noPickup:  gtfsStopTime.PickupType == 1,
			noDropOff: gtfsStopTime.DropOffType == 1,
		})
	}

	return converted
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
