package api

import (
	"github.com/rs/zerolog/log"
	"github.com/travigo/viaplanner/pkg/config"
	"github.com/travigo/viaplanner/pkg/dataaggregator/global"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the trip planner web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Usage: "listen target for the web server, overrides the config file",
					},
					&cli.StringFlag{
						Name:  "config",
						Value: config.DefaultPath,
						Usage: "path to the YAML config file",
					},
					&cli.BoolFlag{
						Name:  "preload",
						Value: true,
						Usage: "load the timetable before accepting requests",
					},
				},
				Action: func(c *cli.Context) error {
					cfg, err := config.LoadAppConfig(c.String("config"))
					if err != nil {
						return err
					}
					if c.String("listen") != "" {
						cfg.Server.Listen = c.String("listen")
					}

					aggregator, handle, err := global.Setup(cfg)
					if err != nil {
						return err
					}

					if c.Bool("preload") {
						if _, err := handle.Oracle(c.Context); err != nil {
							return err
						}
					} else {
						log.Info().Msg("Timetable will load on the first request")
					}

					return SetupServer(cfg.Server.Listen, aggregator, handle)
				},
			},
		},
	}
}
