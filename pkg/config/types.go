package config

import "github.com/travigo/viaplanner/pkg/transforms"

// ServerConfig contains web API configuration
type ServerConfig struct {
	Listen string `yaml:"listen" validate:"required"`
}

// FeedConfig points at the GTFS feed the timetable is built from. Exactly one of Path or URL is used,
// Path wins when both are set.
type FeedConfig struct {
	Name string `yaml:"name"`
	Path string `yaml:"path" validate:"required_without=URL"`
	URL  string `yaml:"url" validate:"omitempty,url"`

	// ServiceDate as YYYY-MM-DD. Empty means today clamped to the feed validity
	ServiceDate string `yaml:"serviceDate" validate:"omitempty,datetime=2006-01-02"`

	// ISO-8601 duration, eg PT2M
	DownloadTimeout string `yaml:"downloadTimeout"`
	DownloadRetries int    `yaml:"downloadRetries" validate:"gte=0"`
}

// PlannerConfig tunes the composer and the connectivity resolver
type PlannerConfig struct {
	// ISO-8601 duration, eg PT2M
	MinTransferTime string `yaml:"minTransferTime"`

	MaxCandidates  int     `yaml:"maxCandidates" validate:"gt=0"`
	SearchRadiusKm float64 `yaml:"searchRadiusKm" validate:"gt=0"`

	// expr-lang expression evaluated with `mode` when a line has no usable name
	FallbackLineName string `yaml:"fallbackLineName" validate:"required"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server  ServerConfig  `yaml:"server"`
	Feed    FeedConfig    `yaml:"feed"`
	Planner PlannerConfig `yaml:"planner"`

	// Overrides applied to timetable lines after loading, eg brand colours
	Transforms []transforms.Definition `yaml:"transforms"`
}
