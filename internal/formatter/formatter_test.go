package formatter

import (
	"errors"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/sioneuhlig/eventscout/internal/models"
	"github.com/sioneuhlig/eventscout/internal/shared"
	th "github.com/sioneuhlig/eventscout/internal/testing"
)

func fixtureEvents() []models.Event {
	lat, lng := 32.7894, -96.8016
	return []models.Event{
		{
			ID:          "G5vYZ9",
			Title:       "Jazz on the Lawn",
			Description: "Live jazz, bring a blanket",
			Category:    models.CategoryMusic,
			Date:        "2024-05-02",
			Time:        "7:30 PM",
			Location:    "Dallas, TX",
			Venue:       "Klyde Warren Park",
			Price:       "$20.00",
			URL:         "https://www.ticketmaster.com/event/G5vYZ9",
			Latitude:    &lat,
			Longitude:   &lng,
		},
		{
			ID:       "H7kQ21",
			Title:    "Neighborhood Cleanup, Block 4",
			Category: models.CategoryCommunity,
			Date:     "2024-05-10",
			Time:     "TBD",
			Location: "Dallas, TX",
			Venue:    "TBA",
			Price:    "Free",
		},
	}
}

var fixedNow = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(fixtureEvents())
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		output := string(data)
		if !strings.HasPrefix(output, "ID,Title,Date,Time,Category,Venue,Location,Price,URL\n") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "G5vYZ9,Jazz on the Lawn,2024-05-02,7:30 PM,music") {
			t.Errorf("CSV missing first record, got: %s", output)
		}
		if !strings.Contains(output, `"Neighborhood Cleanup, Block 4"`) {
			t.Errorf("CSV should quote fields with commas, got: %s", output)
		}
		if lines := strings.Count(output, "\n"); lines != 3 {
			t.Errorf("expected 3 lines, got %d", lines)
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown(fixtureEvents(), "Weekend", fixedNow)
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		output := string(data)
		for _, want := range []string{
			"# Weekend",
			"**Events**: 2",
			"1. **Jazz on the Lawn** (music)",
			"(Tomorrow)",
			"(In 1 weeks)",
			"[Tickets](https://www.ticketmaster.com/event/G5vYZ9)",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("Markdown missing %q, got:\n%s", want, output)
			}
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(fixtureEvents(), fixedNow)
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}
		output := string(data)
		if !strings.Contains(output, "Events: 2") || !strings.Contains(output, "2. Neighborhood Cleanup, Block 4") {
			t.Errorf("unexpected text output:\n%s", output)
		}
	})

	t.Run("ExportToICS", func(t *testing.T) {
		data, err := ExportToICS(fixtureEvents(), fixedNow)
		if err != nil {
			t.Fatalf("ExportToICS failed: %v", err)
		}

		output := string(data)
		for _, want := range []string{
			"BEGIN:VCALENDAR",
			"PRODID:-//Local Event Discovery//EN",
			"SUMMARY:Jazz on the Lawn",
			"LOCATION:Klyde Warren Park\\, Dallas\\, TX",
			"DTSTART;VALUE=DATE:20240510",
			"END:VCALENDAR",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("ICS missing %q, got:\n%s", want, output)
			}
		}
		if n := strings.Count(output, "BEGIN:VEVENT"); n != 2 {
			t.Errorf("expected 2 VEVENTs, got %d", n)
		}
	})

	t.Run("ExportToGeoJSON", func(t *testing.T) {
		data, err := ExportToGeoJSON(fixtureEvents(), NewMarkerPlacer(rand.NewPCG(1, 2)))
		if err != nil {
			t.Fatalf("ExportToGeoJSON failed: %v", err)
		}

		var fc FeatureCollection
		if err := json.Unmarshal(data, &fc); err != nil {
			t.Fatalf("invalid GeoJSON: %v", err)
		}
		if fc.Type != "FeatureCollection" || len(fc.Features) != 2 {
			t.Fatalf("unexpected collection %+v", fc)
		}

		venue := fc.Features[0]
		if venue.Geometry.Coordinates != [2]float64{-96.8016, 32.7894} {
			t.Errorf("expected venue coordinates in lng,lat order, got %v", venue.Geometry.Coordinates)
		}
		if venue.Properties["marker-color"] != "#9333EA" {
			t.Errorf("expected music colour, got %v", venue.Properties["marker-color"])
		}

		approx := fc.Features[1].Geometry.Coordinates
		if approx[0] < DefaultLongitude-markerJitter || approx[0] > DefaultLongitude+markerJitter ||
			approx[1] < DefaultLatitude-markerJitter || approx[1] > DefaultLatitude+markerJitter {
			t.Errorf("jittered marker out of range: %v", approx)
		}
		if fc.Features[1].Properties["approximate"] != true {
			t.Error("expected approximate flag")
		}
	})
}

func TestCategoryColor(t *testing.T) {
	tt := map[models.Category]string{
		models.CategoryMusic:     "#9333EA",
		models.CategoryFood:      "#F59E0B",
		models.CategoryArts:      "#EC4899",
		models.CategorySports:    "#10B981",
		models.CategoryCommunity: "#3B82F6",
		"other":                  "#40E0D0",
	}
	for c, want := range tt {
		if got := CategoryColor(c); got != want {
			t.Errorf("CategoryColor(%q) = %q, want %q", c, got, want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tt := map[string]string{"CSV": "csv", "md": "markdown", "text": "txt", "ical": "ics", "geojson": "geojson", " json ": "json"}
	for in, want := range tt {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseFormat("pdf"); !errors.Is(err, shared.ErrInvalidFlag) {
		t.Errorf("expected ErrInvalidFlag, got %v", err)
	}
}

func TestWriteExport(t *testing.T) {
	t.Run("Writes Each Format", func(t *testing.T) {
		dir := t.TempDir()
		for _, format := range Formats {
			path := filepath.Join(dir, "out."+format)
			written, err := WriteExport(fixtureEvents(), format, path)
			if err != nil {
				t.Fatalf("WriteExport(%s) failed: %v", format, err)
			}
			th.AssertFileExists(t, written)
			if content := th.MustReadFile(t, written); !strings.Contains(content, "Jazz on the Lawn") {
				t.Errorf("%s export missing event title", format)
			}
		}
	})

	t.Run("Default Filename", func(t *testing.T) {
		if DefaultFilename(FormatICS) != "my-events.ics" || DefaultFilename(FormatCSV) != "my-events.csv" {
			t.Error("unexpected default filenames")
		}
	})

	t.Run("Invalid Directory", func(t *testing.T) {
		if _, err := WriteExport(fixtureEvents(), "csv", filepath.Join(t.TempDir(), "missing", "out.csv")); err == nil {
			t.Error("expected error for missing directory")
		}
	})

	t.Run("Unknown Format", func(t *testing.T) {
		if _, err := WriteExport(fixtureEvents(), "pdf", ""); !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})
}
