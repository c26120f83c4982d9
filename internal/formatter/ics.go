package formatter

import (
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/sioneuhlig/eventscout/internal/models"
	"github.com/sioneuhlig/eventscout/internal/shared"
)

// CalendarProductID identifies exported calendars.
const CalendarProductID = "-//Local Event Discovery//EN"

// ExportToICS renders events as an iCalendar document with one VEVENT each.
//
// Events with a parseable date and time get a timed DTSTART in the local zone; a date alone
// becomes an all-day start; events with neither carry no DTSTART.
func ExportToICS(events []models.Event, now time.Time) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.SetProductId(CalendarProductID)
	cal.SetMethod(ical.MethodPublish)

	for _, e := range events {
		vevent := cal.AddEvent(e.ID + "@eventscout")
		vevent.SetDtStampTime(now)
		vevent.SetSummary(e.Title)
		vevent.SetDescription(e.Description)
		vevent.SetLocation(eventLocation(e))
		if e.URL != "" {
			vevent.SetURL(e.URL)
		}
		if e.Category != "" {
			vevent.AddCategory(string(e.Category))
		}

		if start, err := time.ParseInLocation(shared.DateLayout+" 3:04 PM", e.Date+" "+e.Time, time.Local); err == nil {
			vevent.SetStartAt(start)
		} else if day, err := shared.ParseDate(e.Date, time.Local); err == nil {
			vevent.SetAllDayStartAt(day)
		}
	}

	return []byte(cal.Serialize()), nil
}

func eventLocation(e models.Event) string {
	switch {
	case e.Venue != "" && e.Venue != models.DefaultVenue && e.Location != "":
		return e.Venue + ", " + e.Location
	case e.Location != "":
		return e.Location
	}
	return e.Venue
}
