package timetable

import (
	"testing"
	"time"
)

func TestActiveServices(t *testing.T) {
	feed := parseFixture(t)

	tests := []struct {
		name     string
		date     time.Time
		expected []string
	}{
		{name: "weekday", date: time.Date(2025, time.April, 1, 14, 30, 0, 0, time.UTC), expected: []string{"WK"}},
		{name: "sunday", date: time.Date(2025, time.April, 6, 0, 0, 0, 0, time.UTC), expected: []string{"WE"}},
		{name: "exception swaps services", date: time.Date(2025, time.April, 29, 0, 0, 0, 0, time.UTC), expected: []string{"WE"}},
		{name: "outside calendar", date: time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC), expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			active := feed.ActiveServices(tt.date)

			if len(active) != len(tt.expected) {
				t.Fatalf("expected %v, got %v", tt.expected, active)
			}
			for _, service := range tt.expected {
				if !active[service] {
					t.Errorf("expected %s to be active", service)
				}
			}
		})
	}
}

func TestActiveServicesWithoutCalendars(t *testing.T) {
	feed := &Feed{Trips: []Trip{{ID: "1", ServiceID: "X"}, {ID: "2", ServiceID: "Y"}}}

	active := feed.ActiveServices(time.Now())
	if !active["X"] || !active["Y"] {
		t.Errorf("expected every service to run, got %v", active)
	}
}

func TestPickServiceDate(t *testing.T) {
	feed := parseFixture(t)

	tests := []struct {
		name      string
		requested time.Time
		now       time.Time
		expected  string
		reason    string
	}{
		{
			name:      "configured wins",
			requested: time.Date(2024, time.June, 3, 12, 0, 0, 0, time.Local),
			now:       time.Date(2025, time.April, 1, 9, 0, 0, 0, time.Local),
			expected:  "2024-06-03",
			reason:    "configured",
		},
		{
			name:     "today inside range",
			now:      time.Date(2025, time.April, 1, 9, 0, 0, 0, time.Local),
			expected: "2025-04-01",
			reason:   "today",
		},
		{
			name:     "before feed start",
			now:      time.Date(2024, time.December, 1, 9, 0, 0, 0, time.Local),
			expected: "2025-01-01",
			reason:   "clamped to feed start",
		},
		{
			name:     "after feed end",
			now:      time.Date(2026, time.October, 16, 9, 0, 0, 0, time.Local),
			expected: "2025-12-31",
			reason:   "clamped to feed end",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, reason := feed.PickServiceDate(tt.requested, tt.now)

			if date.Format("2006-01-02") != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, date.Format("2006-01-02"))
			}
			if reason != tt.reason {
				t.Errorf("expected reason %q, got %q", tt.reason, reason)
			}
		})
	}
}

func TestBuildTimetableMetadata(t *testing.T) {
	timetable := fixtureRouter(t).Timetable

	if timetable.Metadata.FeedName != "Chiryu Minibus" {
		t.Errorf("unexpected feed name %q", timetable.Metadata.FeedName)
	}
	if timetable.Metadata.FeedVersion != "2025.1" {
		t.Errorf("unexpected feed version %q", timetable.Metadata.FeedVersion)
	}
	if timetable.Metadata.ServiceDate != "2025-04-01" {
		t.Errorf("unexpected service date %q", timetable.Metadata.ServiceDate)
	}
	if timetable.Metadata.ValidFrom != "2025-01-01" || timetable.Metadata.ValidTo != "2025-12-31" {
		t.Errorf("unexpected validity %s - %s", timetable.Metadata.ValidFrom, timetable.Metadata.ValidTo)
	}
	if timetable.Metadata.StopCount != 6 {
		t.Errorf("expected 6 stops, got %d", timetable.Metadata.StopCount)
	}
	if timetable.Metadata.TripCount != 5 {
		t.Errorf("expected 5 weekday trips, got %d", timetable.Metadata.TripCount)
	}
}

func TestParseFeedRejectsFeedWithoutStops(t *testing.T) {
	_, err := ParseFeed(buildFeedZip(t, map[string]string{
		"agency.txt": fixtureFiles["agency.txt"],
		"stops.txt":  "",
	}))
	if err == nil {
		t.Error("expected an error for a feed without stops")
	}

	if _, err := ParseFeed([]byte("not a zip")); err == nil {
		t.Error("expected an error for a non zip body")
	}
}
