package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/viaplanner/pkg/api/routes"
	"github.com/travigo/viaplanner/pkg/dataaggregator"
	"github.com/travigo/viaplanner/pkg/journeyplanner"
)

func NewApp(aggregator *dataaggregator.Aggregator, handle *journeyplanner.Handle) *fiber.App {
	webApp := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	webApp.Use(NewLogger())

	webApp.Get("version", routes.APIVersion)

	group := webApp.Group("/planner")

	routes.PlannerRouter(group, aggregator, handle)
	routes.StopsRouter(group.Group("/stops"), aggregator)

	return webApp
}
