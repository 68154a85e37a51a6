package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/travigo/viaplanner/pkg/ctdf"
	"github.com/travigo/viaplanner/pkg/dataaggregator"
	"github.com/travigo/viaplanner/pkg/dataaggregator/query"
	"github.com/travigo/viaplanner/pkg/journeyplanner"
	"github.com/travigo/viaplanner/pkg/timetable"
)

const defaultMaxTransfers = 2

func PlannerRouter(router fiber.Router, aggregator *dataaggregator.Aggregator, handle *journeyplanner.Handle) {
	router.Get("/plan", planTrip(aggregator))
	router.Get("/metadata", getMetadata(aggregator))
	router.Post("/reload", reloadTimetable(handle))
}

func planTrip(aggregator *dataaggregator.Aggregator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		origin := c.Query("origin")
		destination := c.Query("destination")
		if origin == "" || destination == "" {
			return badParameter(c, "Parameters origin and destination are required")
		}

		maxTransfers, err := queryInt(c, "max_transfers", defaultMaxTransfers)
		if err != nil || maxTransfers < 0 {
			return badParameter(c, "Parameter max_transfers should be a non-negative integer")
		}
		viaStay, err := queryInt(c, "via_stay", 0)
		if err != nil {
			return badParameter(c, "Parameter via_stay should be an integer number of minutes")
		}

		itinerary, err := dataaggregator.Lookup[*ctdf.Itinerary](c.UserContext(), aggregator, query.TripPlan{
			OriginStopRef:      origin,
			DestinationStopRef: destination,
			ViaStopRef:         c.Query("via"),
			ViaStayMinutes:     viaStay,
			DepartureTime:      c.Query("departure", time.Now().Format("15:04")),
			MaxTransfers:       maxTransfers,
		})
		if err != nil {
			return sendError(c, err)
		}

		return sendReduced(c, itinerary)
	}
}

func getMetadata(aggregator *dataaggregator.Aggregator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		metadata, err := dataaggregator.Lookup[*timetable.Metadata](c.UserContext(), aggregator, query.Metadata{})
		if err != nil {
			return sendError(c, err)
		}

		return sendReduced(c, metadata)
	}
}

// reloadTimetable drops the loaded timetable and loads it again straight away
func reloadTimetable(handle *journeyplanner.Handle) fiber.Handler {
	return func(c *fiber.Ctx) error {
		handle.Reset()

		if _, err := handle.Oracle(c.UserContext()); err != nil {
			return sendError(c, err)
		}

		return c.JSON(fiber.Map{
			"reloaded": true,
		})
	}
}
