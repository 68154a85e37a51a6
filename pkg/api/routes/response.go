package routes

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/rs/zerolog/log"
	"github.com/travigo/viaplanner/pkg/dataaggregator"
	"github.com/travigo/viaplanner/pkg/dataaggregator/source"
	"github.com/travigo/viaplanner/pkg/journeyplanner"
)

// sendReduced writes value reduced to the basic group, or basic and detailed with ?detailed=true
func sendReduced(c *fiber.Ctx, value interface{}) error {
	groups := []string{"basic"}
	if c.QueryBool("detailed", false) {
		groups = append(groups, "detailed")
	}

	reduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: groups,
	}, value)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce response",
		})
	}

	return c.JSON(reduced)
}

func sendError(c *fiber.Ctx, err error) error {
	var noRoute *journeyplanner.NoRouteFoundError

	switch {
	case errors.As(err, &noRoute):
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": err.Error(),
			"leg":   noRoute.Leg,
		})
	case errors.Is(err, journeyplanner.ErrInvalidTimeFormat), errors.Is(err, journeyplanner.ErrInvalidRole):
		c.SendStatus(fiber.StatusBadRequest)
	case errors.Is(err, journeyplanner.ErrNoCandidateStop), errors.Is(err, source.ErrNotFound):
		c.SendStatus(fiber.StatusNotFound)
	case errors.Is(err, dataaggregator.ErrNoMatchingSource):
		c.SendStatus(fiber.StatusNotImplemented)
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("Request failed")
		c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.JSON(fiber.Map{
		"error": err.Error(),
	})
}

func badParameter(c *fiber.Ctx, message string) error {
	c.SendStatus(fiber.StatusBadRequest)
	return c.JSON(fiber.Map{
		"error": message,
	})
}

func queryInt(c *fiber.Ctx, name string, fallback int) (int, error) {
	value := c.Query(name)
	if value == "" {
		return fallback, nil
	}
	return strconv.Atoi(value)
}

func queryFloat(c *fiber.Ctx, name string) (float64, error) {
	return strconv.ParseFloat(c.Query(name), 64)
}
