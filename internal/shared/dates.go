package shared

import (
	"fmt"
	"math"
	"time"
)

// DateLayout is the calendar-date form used for event dates.
const DateLayout = "2006-01-02"

// Today formats now as a calendar date.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD string in now's location.
func ParseDate(date string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q", ErrInvalidInput, date)
	}
	return t, nil
}

// DaysUntil returns the number of calendar days between now and date.
// Past dates are negative.
func DaysUntil(date string, now time.Time) (int, error) {
	t, err := ParseDate(date, now.Location())
	if err != nil {
		return 0, err
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return int(math.Round(t.Sub(today).Hours() / 24)), nil
}

// IsPastDate reports whether date falls before now's calendar day.
// Unparseable dates are treated as not past.
func IsPastDate(date string, now time.Time) bool {
	days, err := DaysUntil(date, now)
	return err == nil && days < 0
}

// RelativeDate renders a short label such as "Today", "In 3 days" or "In 2 weeks".
func RelativeDate(date string, now time.Time) string {
	days, err := DaysUntil(date, now)
	switch {
	case err != nil:
		return date
	case days < 0:
		return "Past"
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days < 7:
		return fmt.Sprintf("In %d days", days)
	case days < 30:
		return fmt.Sprintf("In %d weeks", days/7)
	default:
		return fmt.Sprintf("In %d months", days/30)
	}
}

// Truncate shortens text to max runes, appending "..." when cut.
func Truncate(text string, max int) string {
	r := []rune(text)
	if len(r) <= max {
		return text
	}
	return string(r[:max]) + "..."
}
