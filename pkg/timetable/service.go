package timetable

import (
	"time"
)

const gtfsDateFormat = "20060102"

func (c *Calendar) RunsOn(weekday time.Weekday) bool {
	switch weekday {
	case time.Monday:
		return c.Monday == 1
	case time.Tuesday:
		return c.Tuesday == 1
	case time.Wednesday:
		return c.Wednesday == 1
	case time.Thursday:
		return c.Thursday == 1
	case time.Friday:
		return c.Friday == 1
	case time.Saturday:
		return c.Saturday == 1
	case time.Sunday:
		return c.Sunday == 1
	}
	return false
}

// ValidityRange is the earliest and latest date any calendar or calendar date covers
func (f *Feed) ValidityRange() (time.Time, time.Time, bool) {
	var from, to time.Time
	found := false

	extend := func(start time.Time, end time.Time) {
		if !found || start.Before(from) {
			from = start
		}
		if !found || end.After(to) {
			to = end
		}
		found = true
	}

	for _, calendar := range f.Calendars {
		start, err := time.ParseInLocation(gtfsDateFormat, calendar.Start, time.Local)
		if err != nil {
			continue
		}
		end, err := time.ParseInLocation(gtfsDateFormat, calendar.End, time.Local)
		if err != nil {
			continue
		}
		extend(start, end)
	}
	for _, calendarDate := range f.CalendarDates {
		if calendarDate.ExceptionType != 1 {
			continue
		}
		date, err := time.ParseInLocation(gtfsDateFormat, calendarDate.Date, time.Local)
		if err != nil {
			continue
		}
		extend(date, date)
	}

	return from, to, found
}

// PickServiceDate returns requested when set, otherwise now clamped into the feed's validity range
func (f *Feed) PickServiceDate(requested time.Time, now time.Time) (time.Time, string) {
	if !requested.IsZero() {
		return truncateToDate(requested), "configured"
	}

	today := truncateToDate(now)

	from, to, found := f.ValidityRange()
	if !found {
		return today, "today"
	}
	if today.Before(from) {
		return from, "clamped to feed start"
	}
	if today.After(to) {
		return to, "clamped to feed end"
	}
	return today, "today"
}

// ActiveServices lists the service IDs running on date. A feed with no calendars at all runs every service.
func (f *Feed) ActiveServices(date time.Time) map[string]bool {
	active := map[string]bool{}

	if len(f.Calendars) == 0 && len(f.CalendarDates) == 0 {
		for _, trip := range f.Trips {
			active[trip.ServiceID] = true
		}
		return active
	}

	date = truncateToDate(date)
	dateString := date.Format(gtfsDateFormat)

	for _, calendar := range f.Calendars {
		if calendar.Start > dateString || calendar.End < dateString {
			continue
		}
		if calendar.RunsOn(date.Weekday()) {
			active[calendar.ServiceID] = true
		}
	}

	for _, calendarDate := range f.CalendarDates {
		if calendarDate.Date != dateString {
			continue
		}
		switch calendarDate.ExceptionType {
		case 1:
			active[calendarDate.ServiceID] = true
		case 2:
			delete(active, calendarDate.ServiceID)
		}
	}

	return active
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
