package api

import (
	"github.com/rs/zerolog/log"
	"github.com/travigo/viaplanner/pkg/dataaggregator"
	"github.com/travigo/viaplanner/pkg/journeyplanner"
)

func SetupServer(listen string, aggregator *dataaggregator.Aggregator, handle *journeyplanner.Handle) error {
	webApp := NewApp(aggregator, handle)

	log.Info().Str("listen", listen).Msg("Starting web API")

	return webApp.Listen(listen)
}
