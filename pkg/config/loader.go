package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	iso8601 "github.com/senseyeio/duration"
	"github.com/travigo/viaplanner/pkg/util"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "config.yml"

func Default() AppConfig {
	return AppConfig{
		Server: ServerConfig{
			Listen: ":8080",
		},
		Feed: FeedConfig{
			DownloadTimeout: "PT2M",
			DownloadRetries: 5,
		},
		Planner: PlannerConfig{
			MinTransferTime:  "PT2M",
			MaxCandidates:    8,
			SearchRadiusKm:   1.2,
			FallbackLineName: `"Route " + mode`,
		},
	}
}

// LoadAppConfig reads path on top of the defaults. A missing file is not an error as long as
// the environment supplies a feed.
func LoadAppConfig(path string) (*AppConfig, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if errors.Is(err, os.ErrNotExist) {
		log.Debug().Str("path", path).Msg("No config file, using defaults")
	} else {
		return nil, err
	}

	if err := applyEnvironment(&cfg, util.GetEnvironmentVariables()); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyEnvironment(cfg *AppConfig, env map[string]string) error {
	if env["VIAPLANNER_LISTEN"] != "" {
		cfg.Server.Listen = env["VIAPLANNER_LISTEN"]
	}
	if env["VIAPLANNER_FEED_PATH"] != "" {
		cfg.Feed.Path = env["VIAPLANNER_FEED_PATH"]
	}
	if env["VIAPLANNER_FEED_URL"] != "" {
		cfg.Feed.URL = env["VIAPLANNER_FEED_URL"]
	}
	if env["VIAPLANNER_SERVICE_DATE"] != "" {
		cfg.Feed.ServiceDate = env["VIAPLANNER_SERVICE_DATE"]
	}
	if env["VIAPLANNER_MAX_CANDIDATES"] != "" {
		n, err := strconv.Atoi(env["VIAPLANNER_MAX_CANDIDATES"])
		if err != nil {
			return fmt.Errorf("VIAPLANNER_MAX_CANDIDATES: %w", err)
		}
		cfg.Planner.MaxCandidates = n
	}

	return nil
}

func (cfg *AppConfig) Validate() error {
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return err
	}

	if _, err := ParseDuration(cfg.Planner.MinTransferTime); err != nil {
		return fmt.Errorf("planner.minTransferTime: %w", err)
	}
	if _, err := ParseDuration(cfg.Feed.DownloadTimeout); err != nil {
		return fmt.Errorf("feed.downloadTimeout: %w", err)
	}

	return nil
}

// ParseDuration converts an ISO-8601 duration into a time.Duration. Empty means zero.
func ParseDuration(value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}

	duration, err := iso8601.ParseISO8601(value)
	if err != nil {
		return 0, err
	}

	// Shift from a fixed instant so calendar components resolve deterministically
	base := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	return duration.Shift(base).Sub(base), nil
}

func (cfg *AppConfig) MinTransferTime() time.Duration {
	d, _ := ParseDuration(cfg.Planner.MinTransferTime)
	return d
}

func (cfg *AppConfig) DownloadTimeout() time.Duration {
	d, _ := ParseDuration(cfg.Feed.DownloadTimeout)
	return d
}

// ServiceDate returns the configured service date or the zero time
func (cfg *AppConfig) ServiceDate() (time.Time, error) {
	if cfg.Feed.ServiceDate == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation("2006-01-02", cfg.Feed.ServiceDate, time.Local)
}
