package timetable

import (
	"archive/zip"
	"bytes"
	"testing"
	"time"
)

// A small weekday network:
//
//	T1 Red   A 08:00 -> B 08:20 -> C 08:40
//	T3 Red   A 08:10 -> B 08:30 -> C 08:50
//	T2 Blue  B 08:25 -> D 08:50
//	T4 ---   E 08:30 -> D 08:45   (B -> E is a 3 minute walk)
//	T5 Blue  A 09:00 -> D 09:30
//	T6 Red   A 08:01 -> C 08:05   (weekends only)
var fixtureFiles = map[string]string{
	"agency.txt": "agency_id,agency_name,agency_url,agency_timezone\n" +
		"CB,Chiryu Bus,https://example.com,Asia/Tokyo\n",
	"feed_info.txt": "feed_publisher_name,feed_start_date,feed_end_date,feed_version\n" +
		"Chiryu Minibus,20250101,20251231,2025.1\n",
	"stops.txt": "\xef\xbb\xbfstop_id,stop_name,stop_lat,stop_lon,location_type,parent_station\n" +
		"A,Alpha,35.000,137.000,0,\n" +
		"B,Bravo,35.010,137.000,0,P\n" +
		"C,Charlie,35.020,137.000,0,\n" +
		"D,Delta,35.010,137.010,0,\n" +
		"E,Echo,35.0105,137.0005,0,P\n" +
		"P,Bravo Station,35.0101,137.0001,1,\n",
	"routes.txt": "route_id,agency_id,route_short_name,route_long_name,route_type,route_color\n" +
		"R1,CB,Red,,3,EF4444\n" +
		"R2,CB,,Blue Line,3,\n" +
		"R3,CB,,,0,\n",
	"trips.txt": "route_id,service_id,trip_id,trip_headsign\n" +
		"R1,WK,T1,Charlie\n" +
		"R2,WK,T2,Delta\n" +
		"R1,WK,T3,Charlie\n" +
		"R3,WK,T4,Delta\n" +
		"R2,WK,T5,Delta\n" +
		"R1,WE,T6,Charlie\n",
	"stop_times.txt": "trip_id,arrival_time,departure_time,stop_id,stop_sequence,pickup_type,drop_off_type\n" +
		"T1,08:20:00,08:20:00,B,2,,\n" +
		"T1,08:00:00,08:00:00,A,1,,\n" +
		"T1,08:40:00,08:40:00,C,3,,\n" +
		"T2,08:25:00,08:25:00,B,1,,\n" +
		"T2,08:50:00,08:50:00,D,2,,\n" +
		"T3,08:10:00,08:10:00,A,1,,\n" +
		"T3,08:30:00,08:30:00,B,2,,\n" +
		"T3,08:50:00,08:50:00,C,3,,\n" +
		"T4,08:30:00,08:30:00,E,1,,\n" +
		"T4,08:45:00,08:45:00,D,2,,\n" +
		"T5,09:00:00,09:00:00,A,1,,\n" +
		"T5,09:30:00,09:30:00,D,2,,\n" +
		"T6,08:01:00,08:01:00,A,1,,\n" +
		"T6,08:05:00,08:05:00,C,2,,\n",
	"calendar.txt": "service_id,monday,tuesday,wednesday,thursday,friday,saturday,sunday,start_date,end_date\n" +
		"WK,1,1,1,1,1,0,0,20250101,20251231\n" +
		"WE,0,0,0,0,0,1,1,20250101,20251231\n",
	"calendar_dates.txt": "service_id,date,exception_type\n" +
		"WK,20250429,2\n" +
		"WE,20250429,1\n",
	"transfers.txt": "from_stop_id,to_stop_id,transfer_type,min_transfer_time\n" +
		"B,E,2,180\n" +
		"B,B,2,60\n",
}

func buildFeedZip(t *testing.T, files map[string]string) []byte {
	t.Helper()

	var buffer bytes.Buffer
	writer := zip.NewWriter(&buffer)
	for name, content := range files {
		file, err := writer.Create(name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if _, err := file.Write([]byte(content)); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	return buffer.Bytes()
}

func parseFixture(t *testing.T) *Feed {
	t.Helper()

	feed, err := ParseFeed(buildFeedZip(t, fixtureFiles))
	if err != nil {
		t.Fatalf("ParseFeed: %v", err)
	}
	return feed
}

// 2025-04-01 is a Tuesday
func fixtureRouter(t *testing.T) *Router {
	t.Helper()
	return NewRouter(BuildTimetable(parseFixture(t), time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)))
}
