package planner

import (
	"fmt"
	"io"
	"time"

	"github.com/kr/pretty"
	"github.com/travigo/viaplanner/pkg/config"
	"github.com/travigo/viaplanner/pkg/ctdf"
	"github.com/travigo/viaplanner/pkg/dataaggregator"
	"github.com/travigo/viaplanner/pkg/dataaggregator/global"
	"github.com/travigo/viaplanner/pkg/dataaggregator/query"
	"github.com/travigo/viaplanner/pkg/journeyplanner"
	"github.com/urfave/cli/v2"
)

func tripFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Value: config.DefaultPath,
			Usage: "path to the YAML config file",
		},
		&cli.StringFlag{
			Name:  "departure",
			Value: time.Now().Format("15:04"),
			Usage: "departure time as HH:mm",
		},
		&cli.IntFlag{
			Name:  "max-transfers",
			Value: 2,
		},
		&cli.IntFlag{
			Name:  "via-stay",
			Usage: "minutes to stay at the via stop",
		},
		&cli.BoolFlag{
			Name:  "raw",
			Usage: "print the full result structure",
		},
	}
}

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "planner",
		Usage: "Plan trips and resolve stops from the command line",
		Subcommands: []*cli.Command{
			{
				Name:  "plan",
				Usage: "plan a trip between two stops, optionally through a via stop",
				Flags: append(tripFlags(),
					&cli.StringFlag{Name: "origin", Required: true},
					&cli.StringFlag{Name: "destination", Required: true},
					&cli.StringFlag{Name: "via"},
				),
				Action: func(c *cli.Context) error {
					aggregator, err := setup(c)
					if err != nil {
						return err
					}

					itinerary, err := dataaggregator.Lookup[*ctdf.Itinerary](c.Context, aggregator, query.TripPlan{
						OriginStopRef:      c.String("origin"),
						DestinationStopRef: c.String("destination"),
						ViaStopRef:         c.String("via"),
						ViaStayMinutes:     c.Int("via-stay"),
						DepartureTime:      c.String("departure"),
						MaxTransfers:       c.Int("max-transfers"),
					})
					if err != nil {
						return err
					}

					if c.Bool("raw") {
						pretty.Fprintf(c.App.Writer, "%# v\n", itinerary)
						return nil
					}

					PrintItinerary(c.App.Writer, itinerary)
					return nil
				},
			},
			{
				Name:  "resolve",
				Usage: "pick the best connected stop near a location",
				Flags: append(tripFlags(),
					&cli.Float64Flag{Name: "lat", Required: true},
					&cli.Float64Flag{Name: "lon", Required: true},
					&cli.StringFlag{Name: "role", Value: string(journeyplanner.RoleOrigin), Usage: "origin, via or destination"},
					&cli.StringFlag{Name: "origin"},
					&cli.StringFlag{Name: "destination"},
				),
				Action: func(c *cli.Context) error {
					aggregator, err := setup(c)
					if err != nil {
						return err
					}

					scores, err := dataaggregator.Lookup[[]journeyplanner.CandidateScore](c.Context, aggregator, query.CandidateScores{
						StopByConnectivity: query.StopByConnectivity{
							Latitude:           c.Float64("lat"),
							Longitude:          c.Float64("lon"),
							Role:               c.String("role"),
							OriginStopRef:      c.String("origin"),
							DestinationStopRef: c.String("destination"),
							DepartureTime:      c.String("departure"),
							ViaStayMinutes:     c.Int("via-stay"),
							MaxTransfers:       c.Int("max-transfers"),
						},
					})
					if err != nil {
						return err
					}

					if c.Bool("raw") {
						pretty.Fprintf(c.App.Writer, "%# v\n", scores)
						return nil
					}

					PrintCandidates(c.App.Writer, scores)
					return nil
				},
			},
		},
	}
}

func setup(c *cli.Context) (*dataaggregator.Aggregator, error) {
	cfg, err := config.LoadAppConfig(c.String("config"))
	if err != nil {
		return nil, err
	}

	aggregator, _, err := global.Setup(cfg)
	return aggregator, err
}

func PrintItinerary(w io.Writer, itinerary *ctdf.Itinerary) {
	for _, leg := range itinerary.Legs {
		switch leg.Kind {
		case ctdf.ItineraryLegVehicle:
			fmt.Fprintf(w, "%s  %-20s %s -> %s  %s\n", leg.DepartureTime, leg.LineName, leg.From.Name, leg.To.Name, leg.ArrivalTime)
		case ctdf.ItineraryLegTransfer:
			if leg.From.Identifier == leg.To.Identifier {
				fmt.Fprintf(w, "       stay %d min at %s\n", leg.MinTransferMinutes, leg.From.Name)
			} else {
				fmt.Fprintf(w, "       walk %d min %s -> %s\n", leg.MinTransferMinutes, leg.From.Name, leg.To.Name)
			}
		}
	}

	fmt.Fprintf(w, "Lines: %v\n", itinerary.UsedLineNames)
}

func PrintCandidates(w io.Writer, scores []journeyplanner.CandidateScore) {
	for i, score := range scores {
		minutes := "-"
		if score.TotalMinutes != nil {
			minutes = fmt.Sprintf("%d min, %d transfers", *score.TotalMinutes, *score.Transfers)
		}

		fmt.Fprintf(w, "%d. %s %s (%.2f km) %s score %.1f\n", i+1, score.Stop.PrimaryIdentifier, score.Stop.PrimaryName, score.DistanceKm, minutes, score.Score)
	}
}
