package ctdf

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidTimeFormat = errors.New("time must be in HH:mm format")

// TimeOfDay is a wall-clock value counted in minutes from the start of the service day.
// Values past 24:00 are allowed as GTFS service days roll over midnight.
type TimeOfDay int

func NewTimeOfDay(hour int, minute int) TimeOfDay {
	return TimeOfDay(hour*60 + minute)
}

// ParseTimeOfDay only accepts zero-padded "HH:mm" with hour 00-23 and minute 00-59
func ParseTimeOfDay(value string) (TimeOfDay, error) {
	if len(value) != 5 || value[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, value)
	}

	hour, ok := parseTwoDigits(value[0:2])
	if !ok || hour > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, value)
	}
	minute, ok := parseTwoDigits(value[3:5])
	if !ok || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, value)
	}

	return NewTimeOfDay(hour, minute), nil
}

// ParseGTFSTime reads the H:MM:SS / HH:MM:SS form used in stop_times.txt. Seconds are truncated.
func ParseGTFSTime(value string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid GTFS time %q", value)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 {
		return 0, fmt.Errorf("invalid GTFS time %q", value)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid GTFS time %q", value)
	}
	second, err := strconv.Atoi(parts[2])
	if err != nil || second < 0 || second > 59 {
		return 0, fmt.Errorf("invalid GTFS time %q", value)
	}

	return NewTimeOfDay(hour, minute), nil
}

func parseTwoDigits(s string) (int, bool) {
	if s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, false
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), true
}

func (t TimeOfDay) Minutes() int {
	return int(t)
}

func (t TimeOfDay) Hour() int {
	return int(t) / 60
}

func (t TimeOfDay) Minute() int {
	return int(t) % 60
}

// Add moves the time forward by whole minutes, anything below a minute is dropped
func (t TimeOfDay) Add(d time.Duration) TimeOfDay {
	return t + TimeOfDay(d/time.Minute)
}

func (t TimeOfDay) Sub(other TimeOfDay) time.Duration {
	return time.Duration(t-other) * time.Minute
}

func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t < other
}

// Format prints HH:mm. Hours past 23 are printed as-is
func (t TimeOfDay) Format() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

func (t TimeOfDay) String() string {
	return t.Format()
}
