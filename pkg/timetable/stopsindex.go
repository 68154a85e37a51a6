package timetable

import (
	"sort"

	"github.com/travigo/viaplanner/pkg/ctdf"
)

// StopsIndex holds every stop of the feed. Only boardable stops are returned by location searches.
type StopsIndex struct {
	stops     []*ctdf.Stop
	boardable []bool
	byID      map[string]int
}

func NewStopsIndex(gtfsStops []Stop) *StopsIndex {
	index := &StopsIndex{
		stops:     make([]*ctdf.Stop, 0, len(gtfsStops)),
		boardable: make([]bool, 0, len(gtfsStops)),
		byID:      make(map[string]int, len(gtfsStops)),
	}

	for _, gtfsStop := range gtfsStops {
		if gtfsStop.ID == "" {
			continue
		}
		if _, exists := index.byID[gtfsStop.ID]; exists {
			continue
		}

		stop := &ctdf.Stop{
			PrimaryIdentifier: gtfsStop.ID,
			PrimaryName:       gtfsStop.Name,
			ParentIdentifier:  gtfsStop.Parent,
		}
		if gtfsStop.Latitude != 0 || gtfsStop.Longitude != 0 {
			stop.Location = ctdf.NewPoint(gtfsStop.Latitude, gtfsStop.Longitude)
		}

		index.byID[gtfsStop.ID] = len(index.stops)
		index.stops = append(index.stops, stop)
		index.boardable = append(index.boardable, gtfsStop.IsBoardable())
	}

	return index
}

func (s *StopsIndex) Count() int {
	return len(s.stops)
}

func (s *StopsIndex) FindStopByID(id string) *ctdf.Stop {
	if i, exists := s.byID[id]; exists {
		return s.stops[i]
	}
	return nil
}

// FindStopsNear returns up to limit boardable stops within radiusKm, nearest first
func (s *StopsIndex) FindStopsNear(latitude float64, longitude float64, limit int, radiusKm float64) []*ctdf.Stop {
	if limit <= 0 {
		return []*ctdf.Stop{}
	}

	point := ctdf.NewPoint(latitude, longitude)
	radiusMetres := radiusKm * 1000

	type nearbyStop struct {
		stop     *ctdf.Stop
		distance float64
	}
	var nearby []nearbyStop

	for i, stop := range s.stops {
		if !s.boardable[i] || !stop.HasLocation() {
			continue
		}

		distance := point.Distance(stop.Location)
		if distance <= radiusMetres {
			nearby = append(nearby, nearbyStop{stop: stop, distance: distance})
		}
	}

	sort.SliceStable(nearby, func(i, j int) bool {
		if nearby[i].distance == nearby[j].distance {
			return nearby[i].stop.PrimaryIdentifier < nearby[j].stop.PrimaryIdentifier
		}
		return nearby[i].distance < nearby[j].distance
	})

	if len(nearby) > limit {
		nearby = nearby[:limit]
	}

	stops := make([]*ctdf.Stop, 0, len(nearby))
	for _, item := range nearby {
		stops = append(stops, item.stop)
	}
	return stops
}

func (s *StopsIndex) index(id string) (int, bool) {
	i, exists := s.byID[id]
	return i, exists
}
