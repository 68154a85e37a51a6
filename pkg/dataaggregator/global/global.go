package global

import (
	"context"

	"github.com/travigo/viaplanner/pkg/config"
	"github.com/travigo/viaplanner/pkg/dataaggregator"
	"github.com/travigo/viaplanner/pkg/dataaggregator/source/journeyplanner"
	"github.com/travigo/viaplanner/pkg/dataaggregator/source/stopresolver"
	"github.com/travigo/viaplanner/pkg/dataaggregator/source/timetablelookup"
	planner "github.com/travigo/viaplanner/pkg/journeyplanner"
	"github.com/travigo/viaplanner/pkg/timetable"
)

// Setup wires the planner for cfg. The timetable itself is loaded on first use.
func Setup(cfg *config.AppConfig) (*dataaggregator.Aggregator, *planner.Handle, error) {
	handle := planner.NewHandle(func(ctx context.Context) (planner.Oracle, error) {
		router, err := timetable.Load(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return router, nil
	})

	aggregator, err := SetupWithHandle(cfg, handle)
	if err != nil {
		return nil, nil, err
	}

	return aggregator, handle, nil
}

func SetupWithHandle(cfg *config.AppConfig, handle *planner.Handle) (*dataaggregator.Aggregator, error) {
	composer, err := planner.NewComposer(handle, planner.ComposerConfig{
		MinTransferTime:  cfg.MinTransferTime(),
		FallbackLineName: cfg.Planner.FallbackLineName,
	})
	if err != nil {
		return nil, err
	}

	resolver := planner.NewResolver(composer, planner.ResolverConfig{
		MaxCandidates:  cfg.Planner.MaxCandidates,
		SearchRadiusKm: cfg.Planner.SearchRadiusKm,
	})

	aggregator := dataaggregator.New()
	aggregator.RegisterSource(journeyplanner.Source{Composer: composer})
	aggregator.RegisterSource(stopresolver.Source{Resolver: resolver})
	aggregator.RegisterSource(timetablelookup.Source{Handle: handle})

	return aggregator, nil
}
