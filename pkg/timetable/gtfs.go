package timetable

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
)

type Agency struct {
	ID       string `csv:"agency_id"`
	Name     string `csv:"agency_name"`
	URL      string `csv:"agency_url"`
	Timezone string `csv:"agency_timezone"`
}

type Stop struct {
	ID        string  `csv:"stop_id"`
	Code      string  `csv:"stop_code"`
	Name      string  `csv:"stop_name"`
	Latitude  float64 `csv:"stop_lat"`
	Longitude float64 `csv:"stop_lon"`
	Type      string  `csv:"location_type"`
	Parent    string  `csv:"parent_station"`
}

// IsBoardable is true for stops and platforms, the only location types stop_times may reference
func (s *Stop) IsBoardable() bool {
	return s.Type == "" || s.Type == "0"
}

type Route struct {
	ID        string `csv:"route_id"`
	AgencyID  string `csv:"agency_id"`
	ShortName string `csv:"route_short_name"`
	LongName  string `csv:"route_long_name"`
	Type      int    `csv:"route_type"`
	Colour    string `csv:"route_color"`
}

type Trip struct {
	RouteID   string `csv:"route_id"`
	ServiceID string `csv:"service_id"`
	ID        string `csv:"trip_id"`
	Headsign  string `csv:"trip_headsign"`
}

type StopTime struct {
	TripID        string `csv:"trip_id"`
	ArrivalTime   string `csv:"arrival_time"`
	DepartureTime string `csv:"departure_time"`
	StopID        string `csv:"stop_id"`
	StopSequence  int    `csv:"stop_sequence"`
	PickupType    int8   `csv:"pickup_type"`
	DropOffType   int8   `csv:"drop_off_type"`
}

type Calendar struct {
	ServiceID string `csv:"service_id"`
	Monday    int    `csv:"monday"`
	Tuesday   int    `csv:"tuesday"`
	Wednesday int    `csv:"wednesday"`
	Thursday  int    `csv:"thursday"`
	Friday    int    `csv:"friday"`
	Saturday  int    `csv:"saturday"`
	Sunday    int    `csv:"sunday"`
	Start     string `csv:"start_date"`
	End       string `csv:"end_date"`
}

type CalendarDate struct {
	ServiceID     string `csv:"service_id"`
	Date          string `csv:"date"`
	ExceptionType int    `csv:"exception_type"`
}

type Transfer struct {
	FromStopID      string `csv:"from_stop_id"`
	ToStopID        string `csv:"to_stop_id"`
	TransferType    int    `csv:"transfer_type"`
	MinTransferTime int    `csv:"min_transfer_time"`
}

type FeedInfo struct {
	PublisherName string `csv:"feed_publisher_name"`
	StartDate     string `csv:"feed_start_date"`
	EndDate       string `csv:"feed_end_date"`
	Version       string `csv:"feed_version"`
}

type Feed struct {
	Agencies      []Agency
	Stops         []Stop
	Routes        []Route
	Trips         []Trip
	StopTimes     []StopTime
	Calendars     []Calendar
	CalendarDates []CalendarDate
	Transfers     []Transfer
	FeedInfo      []FeedInfo
}

// ParseFeed reads a zipped GTFS feed
func ParseFeed(body []byte) (*Feed, error) {
	// Allow us to ignore those naughty records that have missing columns
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.FieldsPerRecord = -1
		r.LazyQuotes = true
		return r
	})

	feed := &Feed{}

	fileMap := map[string]interface{}{
		"agency.txt":         &feed.Agencies,
		"stops.txt":          &feed.Stops,
		"routes.txt":         &feed.Routes,
		"trips.txt":          &feed.Trips,
		"stop_times.txt":     &feed.StopTimes,
		"calendar.txt":       &feed.Calendars,
		"calendar_dates.txt": &feed.CalendarDates,
		"transfers.txt":      &feed.Transfers,
		"feed_info.txt":      &feed.FeedInfo,
	}

	archive, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return nil, fmt.Errorf("open gtfs archive: %w", err)
	}

	for _, zipFile := range archive.File {
		fileName := path.Base(zipFile.Name)
		destination, exists := fileMap[fileName]
		if !exists {
			log.Debug().Str("file", zipFile.Name).Msg("Skipping gtfs file")
			continue
		}

		log.Debug().Str("file", fileName).Msg("Loading file")

		if err := unmarshalZipFile(zipFile, destination); err != nil {
			log.Error().Str("file", fileName).Err(err).Msg("Failed to parse csv file")
			return nil, fmt.Errorf("parse %s: %w", fileName, err)
		}
	}

	if len(feed.Stops) == 0 {
		return nil, fmt.Errorf("gtfs feed has no stops.txt records")
	}

	return feed, nil
}

func unmarshalZipFile(zipFile *zip.File, destination interface{}) error {
	fileReader, err := zipFile.Open()
	if err != nil {
		return err
	}
	defer fileReader.Close()

	// Strip a UTF-8 byte order mark, gocsv would otherwise miss the first header
	content, err := io.ReadAll(fileReader)
	if err != nil {
		return err
	}
	content = bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))
	if len(bytes.TrimSpace(content)) == 0 {
		return nil
	}

	return gocsv.UnmarshalBytes(content, destination)
}
