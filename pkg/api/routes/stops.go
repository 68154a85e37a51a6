package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"github.com/travigo/viaplanner/pkg/ctdf"
	"github.com/travigo/viaplanner/pkg/dataaggregator"
	"github.com/travigo/viaplanner/pkg/dataaggregator/query"
	"github.com/travigo/viaplanner/pkg/journeyplanner"
)

const (
	defaultNearLimit    = 8
	defaultNearRadiusKm = 1.2
)

type StopResponse struct {
	PrimaryIdentifier string  `groups:"basic"`
	PrimaryName       string  `groups:"basic"`
	ParentIdentifier  string  `groups:"detailed" json:",omitempty"`
	Latitude          float64 `groups:"basic"`
	Longitude         float64 `groups:"basic"`
}

type CandidateResponse struct {
	Stop         StopResponse `groups:"basic" copier:"-"`
	DistanceKm   float64      `groups:"basic"`
	TotalMinutes *int         `groups:"basic"`
	Transfers    *int         `groups:"basic"`
	Score        float64      `groups:"basic"`
}

func newStopResponse(stop *ctdf.Stop) (StopResponse, error) {
	var response StopResponse
	if err := copier.Copy(&response, stop); err != nil {
		return response, err
	}

	response.Latitude = stop.Latitude()
	response.Longitude = stop.Longitude()

	return response, nil
}

func StopsRouter(router fiber.Router, aggregator *dataaggregator.Aggregator) {
	router.Get("/near", listStopsNear(aggregator))
	router.Get("/resolve", resolveStop(aggregator))
	router.Get("/:identifier", getStop(aggregator))
}

func getStop(aggregator *dataaggregator.Aggregator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stop, err := dataaggregator.Lookup[*ctdf.Stop](c.UserContext(), aggregator, query.Stop{
			PrimaryIdentifier: c.Params("identifier"),
		})
		if err != nil {
			return sendError(c, err)
		}

		response, err := newStopResponse(stop)
		if err != nil {
			return sendError(c, err)
		}
		return sendReduced(c, response)
	}
}

func listStopsNear(aggregator *dataaggregator.Aggregator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		latitude, latErr := queryFloat(c, "lat")
		longitude, lonErr := queryFloat(c, "lon")
		if latErr != nil || lonErr != nil {
			return badParameter(c, "Parameters lat and lon should be decimal degrees")
		}

		limit, err := queryInt(c, "limit", defaultNearLimit)
		if err != nil || limit < 0 {
			return badParameter(c, "Parameter limit should be a non-negative integer")
		}

		radius := defaultNearRadiusKm
		if c.Query("radius") != "" {
			radius, err = queryFloat(c, "radius")
			if err != nil || radius <= 0 {
				return badParameter(c, "Parameter radius should be a positive number of kilometres")
			}
		}

		stops, err := dataaggregator.Lookup[[]*ctdf.Stop](c.UserContext(), aggregator, query.StopsNear{
			Latitude:  latitude,
			Longitude: longitude,
			Limit:     limit,
			RadiusKm:  radius,
		})
		if err != nil {
			return sendError(c, err)
		}

		responses := []StopResponse{}
		for _, stop := range stops {
			response, err := newStopResponse(stop)
			if err != nil {
				return sendError(c, err)
			}
			responses = append(responses, response)
		}

		return sendReduced(c, responses)
	}
}

func resolveStop(aggregator *dataaggregator.Aggregator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		latitude, latErr := queryFloat(c, "lat")
		longitude, lonErr := queryFloat(c, "lon")
		if latErr != nil || lonErr != nil {
			return badParameter(c, "Parameters lat and lon should be decimal degrees")
		}

		maxTransfers, err := queryInt(c, "max_transfers", defaultMaxTransfers)
		if err != nil || maxTransfers < 0 {
			return badParameter(c, "Parameter max_transfers should be a non-negative integer")
		}
		viaStay, err := queryInt(c, "via_stay", 0)
		if err != nil {
			return badParameter(c, "Parameter via_stay should be an integer number of minutes")
		}

		resolveQuery := query.StopByConnectivity{
			Latitude:           latitude,
			Longitude:          longitude,
			Role:               c.Query("role"),
			OriginStopRef:      c.Query("origin"),
			DestinationStopRef: c.Query("destination"),
			DepartureTime:      c.Query("departure", time.Now().Format("15:04")),
			ViaStayMinutes:     viaStay,
			MaxTransfers:       maxTransfers,
		}

		if c.QueryBool("explain", false) {
			scores, err := dataaggregator.Lookup[[]journeyplanner.CandidateScore](c.UserContext(), aggregator, query.CandidateScores{
				StopByConnectivity: resolveQuery,
			})
			if err != nil {
				return sendError(c, err)
			}

			responses := []CandidateResponse{}
			for _, score := range scores {
				var response CandidateResponse
				if err := copier.Copy(&response, score); err != nil {
					return sendError(c, err)
				}
				if response.Stop, err = newStopResponse(score.Stop); err != nil {
					return sendError(c, err)
				}
				responses = append(responses, response)
			}

			return sendReduced(c, responses)
		}

		stop, err := dataaggregator.Lookup[*ctdf.Stop](c.UserContext(), aggregator, resolveQuery)
		if err != nil {
			return sendError(c, err)
		}

		response, err := newStopResponse(stop)
		if err != nil {
			return sendError(c, err)
		}
		return sendReduced(c, response)
	}
}
