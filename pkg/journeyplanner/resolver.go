package journeyplanner

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/travigo/viaplanner/pkg/ctdf"
	"github.com/travigo/viaplanner/pkg/util"
)

const (
	DefaultMaxCandidates  = 8
	DefaultSearchRadiusKm = 1.2

	UnroutableMinutes      = 9999
	TransferPenaltyMinutes = 10
	DistancePenaltyPerKm   = 5
)

var ErrInvalidRole = errors.New("role must be origin, via or destination")

// Role is which part of the trip a clicked location stands for
type Role string

const (
	RoleOrigin      Role = "origin"
	RoleVia         Role = "via"
	RoleDestination Role = "destination"
)

func ParseRole(value string) (Role, error) {
	switch value {
	case "origin", "from":
		return RoleOrigin, nil
	case "via":
		return RoleVia, nil
	case "destination", "to":
		return RoleDestination, nil
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidRole, value)
}

type ResolverConfig struct {
	MaxCandidates  int
	SearchRadiusKm float64
}

type ResolveRequest struct {
	Latitude  float64
	Longitude float64
	Role      Role

	// The already chosen stops for the other roles, either may be empty
	OriginStopRef      string
	DestinationStopRef string

	DepartureTime  string
	ViaStayMinutes int
	MaxTransfers   int
}

type CandidateScore struct {
	Stop         *ctdf.Stop `groups:"basic"`
	DistanceKm   float64    `groups:"basic"`
	TotalMinutes *int       `groups:"basic"`
	Transfers    *int       `groups:"basic"`
	Score        float64    `groups:"basic"`
}

func (s *CandidateScore) Routable() bool {
	return s.TotalMinutes != nil
}

// Resolver picks the stop near a location that gives the cheapest trip against the other chosen stops
type Resolver struct {
	composer       *Composer
	maxCandidates  int
	searchRadiusKm float64
}

func NewResolver(composer *Composer, config ResolverConfig) *Resolver {
	resolver := &Resolver{
		composer:       composer,
		maxCandidates:  config.MaxCandidates,
		searchRadiusKm: config.SearchRadiusKm,
	}
	if resolver.maxCandidates <= 0 {
		resolver.maxCandidates = DefaultMaxCandidates
	}
	if resolver.searchRadiusKm <= 0 {
		resolver.searchRadiusKm = DefaultSearchRadiusKm
	}

	return resolver
}

func (r *Resolver) ResolveStopByConnectivity(ctx context.Context, request ResolveRequest) (*ctdf.Stop, error) {
	scores, err := r.ScoreCandidates(ctx, request)
	if err != nil {
		return nil, err
	}

	return scores[0].Stop, nil
}

// ScoreCandidates returns every evaluated candidate best first. Routable candidates always rank
// ahead of unroutable ones, each group ordered by score with ties kept in candidate order.
func (r *Resolver) ScoreCandidates(ctx context.Context, request ResolveRequest) ([]CandidateScore, error) {
	departure, err := ctdf.ParseTimeOfDay(request.DepartureTime)
	if err != nil {
		return nil, err
	}
	role, err := ParseRole(string(request.Role))
	if err != nil {
		return nil, err
	}
	request.Role = role

	oracle, err := r.composer.handle.Oracle(ctx)
	if err != nil {
		return nil, err
	}

	candidates := oracle.FindStopsNear(request.Latitude, request.Longitude, r.maxCandidates, r.searchRadiusKm)
	if len(candidates) == 0 {
		return nil, ErrNoCandidateStop
	}

	type evaluation struct {
		score CandidateScore
		err   error
	}
	evaluations := make([]evaluation, len(candidates))

	p := pool.New().WithMaxGoroutines(len(candidates))
	for i, candidate := range candidates {
		p.Go(func() {
			score, err := r.scoreCandidate(ctx, oracle, candidate, request, departure)
			evaluations[i] = evaluation{score: score, err: err}
		})
	}
	p.Wait()

	var errs []error
	util.InPlaceFilter(&evaluations, func(e evaluation) bool {
		if e.err != nil {
			log.Error().Err(e.err).Str("stop", e.score.Stop.PrimaryIdentifier).Msg("Failed to evaluate candidate stop")
			errs = append(errs, e.err)
			return false
		}
		return true
	})
	if len(evaluations) == 0 {
		return nil, errors.Join(errs...)
	}

	scores := make([]CandidateScore, 0, len(evaluations))
	for _, e := range evaluations {
		scores = append(scores, e.score)
	}

	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Routable() != scores[j].Routable() {
			return scores[i].Routable()
		}
		return scores[i].Score < scores[j].Score
	})

	log.Debug().
		Str("role", string(request.Role)).
		Int("candidates", len(candidates)).
		Str("best", scores[0].Stop.PrimaryIdentifier).
		Bool("routable", scores[0].Routable()).
		Msg("Resolved stop by connectivity")

	return scores, nil
}

func (r *Resolver) scoreCandidate(ctx context.Context, oracle Oracle, candidate *ctdf.Stop, request ResolveRequest, departure ctdf.TimeOfDay) (CandidateScore, error) {
	score := CandidateScore{Stop: candidate}
	if candidate.HasLocation() {
		score.DistanceKm = ctdf.NewPoint(request.Latitude, request.Longitude).DegreeDistanceKm(candidate.Location)
	}

	cost, err := r.evaluate(ctx, oracle, candidate.PrimaryIdentifier, request, departure)
	if err != nil {
		return score, err
	}

	minutes := UnroutableMinutes
	penalty := 0
	if cost != nil {
		score.TotalMinutes = &cost.TotalMinutes
		score.Transfers = &cost.Transfers
		minutes = cost.TotalMinutes
		penalty = cost.Transfers * TransferPenaltyMinutes
	}
	score.Score = float64(minutes+penalty) + score.DistanceKm*DistancePenaltyPerKm

	return score, nil
}

// evaluate routes the candidate against whichever fixed stops its role needs. Nil without an error
// means unroutable, including when a needed fixed stop has not been chosen yet.
func (r *Resolver) evaluate(ctx context.Context, oracle Oracle, candidate string, request ResolveRequest, departure ctdf.TimeOfDay) (*RouteCost, error) {
	switch request.Role {
	case RoleOrigin:
		if request.DestinationStopRef == "" {
			return nil, nil
		}
		return r.composer.EvaluateRoute(ctx, oracle, candidate, request.DestinationStopRef, departure, request.MaxTransfers, 0)
	case RoleDestination:
		if request.OriginStopRef == "" {
			return nil, nil
		}
		return r.composer.EvaluateRoute(ctx, oracle, request.OriginStopRef, candidate, departure, request.MaxTransfers, 0)
	case RoleVia:
		if request.OriginStopRef == "" || request.DestinationStopRef == "" {
			return nil, nil
		}

		first, err := r.composer.EvaluateRoute(ctx, oracle, request.OriginStopRef, candidate, departure, request.MaxTransfers, 0)
		if err != nil || first == nil {
			return nil, err
		}
		second, err := r.composer.EvaluateRoute(ctx, oracle, candidate, request.DestinationStopRef, departure, request.MaxTransfers, max(0, request.ViaStayMinutes))
		if err != nil || second == nil {
			return nil, err
		}

		return &RouteCost{
			TotalMinutes: first.TotalMinutes + second.TotalMinutes,
			Transfers:    first.Transfers + second.Transfers,
		}, nil
	}

	return nil, nil
}
