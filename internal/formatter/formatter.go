// package formatter exports event lists to various formats (CSV, Markdown, plain text, iCalendar, GeoJSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sioneuhlig/eventscout/internal/models"
	"github.com/sioneuhlig/eventscout/internal/shared"
)

// Export formats understood by [Render] and [WriteExport].
const (
	FormatJSON     = "json"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatText     = "txt"
	FormatICS      = "ics"
	FormatGeoJSON  = "geojson"
)

// Formats lists every export format.
var Formats = []string{FormatJSON, FormatCSV, FormatMarkdown, FormatText, FormatICS, FormatGeoJSON}

// ParseFormat normalises a format name, accepting the aliases md, text and ical.
func ParseFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case FormatJSON, FormatCSV, FormatMarkdown, FormatText, FormatICS, FormatGeoJSON:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	case "text":
		return FormatText, nil
	case "ical", "icalendar":
		return FormatICS, nil
	}
	return "", fmt.Errorf("%w: unknown export format %q (want one of %s)", shared.ErrInvalidFlag, s, strings.Join(Formats, ", "))
}

// ExportToCSV converts events to CSV with columns: ID, Title, Date, Time, Category, Venue, Location, Price, URL
func ExportToCSV(events []models.Event) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Date", "Time", "Category", "Venue", "Location", "Price", "URL"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, e := range events {
		record := []string{
			e.ID,
			e.Title,
			e.Date,
			e.Time,
			string(e.Category),
			e.Venue,
			e.Location,
			e.Price,
			e.URL,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown renders events as a Markdown list under title, with relative date labels as of now.
func ExportToMarkdown(events []models.Event, title string, now time.Time) ([]byte, error) {
	var buf bytes.Buffer

	if title == "" {
		title = "My Events"
	}
	buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	buf.WriteString(fmt.Sprintf("**Events**: %d\n\n", len(events)))

	for i, e := range events {
		buf.WriteString(fmt.Sprintf("%d. **%s** (%s)\n", i+1, e.Title, e.Category))
		buf.WriteString(fmt.Sprintf("   - %s at %s (%s)\n", e.Date, e.Time, shared.RelativeDate(e.Date, now)))
		buf.WriteString(fmt.Sprintf("   - %s, %s\n", e.Venue, e.Location))
		buf.WriteString(fmt.Sprintf("   - %s\n", e.Price))
		if e.URL != "" {
			buf.WriteString(fmt.Sprintf("   - [Tickets](%s)\n", e.URL))
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts events to a plain text list
func ExportToText(events []models.Event, now time.Time) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Events: %d\n\n", len(events)))
	for i, e := range events {
		buf.WriteString(fmt.Sprintf("%d. %s - %s %s (%s)\n", i+1, e.Title, e.Date, e.Time, shared.RelativeDate(e.Date, now)))
		buf.WriteString(fmt.Sprintf("   %s, %s | %s | %s\n", e.Venue, e.Location, e.Category, e.Price))
	}

	return buf.Bytes(), nil
}

// Render produces the export bytes for format.
func Render(events []models.Event, format string, now time.Time) ([]byte, error) {
	switch format {
	case FormatJSON:
		return shared.MarshalJSON(events, true)
	case FormatCSV:
		return ExportToCSV(events)
	case FormatMarkdown:
		return ExportToMarkdown(events, "", now)
	case FormatText:
		return ExportToText(events, now)
	case FormatICS:
		return ExportToICS(events, now)
	case FormatGeoJSON:
		return ExportToGeoJSON(events, NewMarkerPlacer(nil))
	}
	return nil, fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidFlag, format)
}

// DefaultFilename returns the file name used when no output path is given.
func DefaultFilename(format string) string {
	switch format {
	case FormatICS:
		return "my-events.ics"
	case FormatMarkdown:
		return "my-events.md"
	}
	return "my-events." + format
}

// WriteExport writes events in format to path, returning the path written.
//
// Defaults to [DefaultFilename] in the working directory.
func WriteExport(events []models.Event, format, path string) (string, error) {
	format, err := ParseFormat(format)
	if err != nil {
		return "", err
	}
	if path == "" {
		path = DefaultFilename(format)
	}

	data, err := Render(events, format, time.Now())
	if err != nil {
		return "", fmt.Errorf("failed to generate %s: %w", format, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s file: %w", format, err)
	}
	return path, nil
}
