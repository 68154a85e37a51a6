package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  listen: ":9000"
feed:
  name: chiryu
  path: ./data/feed.zip
  serviceDate: "2025-04-01"
planner:
  minTransferTime: PT3M
  maxCandidates: 5
transforms:
  - match:
      Identifier: R1
    data:
      Colour: "#123456"
`)

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig: %v", err)
	}

	if cfg.Server.Listen != ":9000" {
		t.Errorf("expected :9000, got %s", cfg.Server.Listen)
	}
	if cfg.MinTransferTime() != 3*time.Minute {
		t.Errorf("expected 3m, got %s", cfg.MinTransferTime())
	}
	if cfg.Planner.MaxCandidates != 5 {
		t.Errorf("expected 5 candidates, got %d", cfg.Planner.MaxCandidates)
	}
	if cfg.Planner.SearchRadiusKm != 1.2 {
		t.Errorf("expected default radius 1.2, got %v", cfg.Planner.SearchRadiusKm)
	}
	if cfg.Planner.FallbackLineName != `"Route " + mode` {
		t.Errorf("unexpected fallback expression %q", cfg.Planner.FallbackLineName)
	}

	if len(cfg.Transforms) != 1 || cfg.Transforms[0].Match["Identifier"] != "R1" || cfg.Transforms[0].Data["Colour"] != "#123456" {
		t.Errorf("unexpected transforms %+v", cfg.Transforms)
	}

	date, err := cfg.ServiceDate()
	if err != nil {
		t.Fatalf("ServiceDate: %v", err)
	}
	if date.Year() != 2025 || date.Month() != time.April || date.Day() != 1 {
		t.Errorf("unexpected service date %v", date)
	}
}

func TestLoadAppConfigRequiresFeed(t *testing.T) {
	path := writeConfig(t, "server:\n  listen: \":9000\"\n")

	if _, err := LoadAppConfig(path); err == nil {
		t.Error("expected validation error when no feed is configured")
	}
}

func TestLoadAppConfigEnvironmentOverrides(t *testing.T) {
	t.Setenv("VIAPLANNER_FEED_URL", "https://example.com/feed.zip")
	t.Setenv("VIAPLANNER_LISTEN", ":7000")

	cfg, err := LoadAppConfig(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatalf("LoadAppConfig: %v", err)
	}

	if cfg.Feed.URL != "https://example.com/feed.zip" {
		t.Errorf("unexpected feed url %s", cfg.Feed.URL)
	}
	if cfg.Server.Listen != ":7000" {
		t.Errorf("unexpected listen %s", cfg.Server.Listen)
	}
}

func TestLoadAppConfigRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "bad service date", content: "feed:\n  path: feed.zip\n  serviceDate: 01/04/2025\n"},
		{name: "bad duration", content: "feed:\n  path: feed.zip\nplanner:\n  minTransferTime: two minutes\n"},
		{name: "bad url", content: "feed:\n  url: not a url\n"},
		{name: "zero candidates", content: "feed:\n  path: feed.zip\nplanner:\n  maxCandidates: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadAppConfig(writeConfig(t, tt.content)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Duration
	}{
		{input: "", expected: 0},
		{input: "PT2M", expected: 2 * time.Minute},
		{input: "PT1H30M", expected: 90 * time.Minute},
		{input: "PT45S", expected: 45 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParseDuration(tt.input)
			if err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if result != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, result)
			}
		})
	}
}
