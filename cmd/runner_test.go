package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sioneuhlig/eventscout/internal/models"
	"github.com/sioneuhlig/eventscout/internal/repositories"
	"github.com/sioneuhlig/eventscout/internal/services"
	"github.com/sioneuhlig/eventscout/internal/shared"
	tu "github.com/sioneuhlig/eventscout/internal/testing"
	"github.com/sioneuhlig/eventscout/internal/testing/mocks"
	"github.com/urfave/cli/v3"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// newTestRunner builds a runner on an in-memory Badger store with canned upstream events.
func newTestRunner(t *testing.T) (*Runner, *mocks.MockGateway, *bytes.Buffer) {
	t.Helper()

	logger := shared.NewLogger(io.Discard)
	store, err := repositories.OpenBadgerSlotStore(":memory:", nil)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}

	jazz := mocks.UpstreamEvent("G1", "Jazz Night", "Music", "2024-05-02", 20, 40)
	game := mocks.UpstreamEvent("G2", "Mavericks vs Spurs", "Sports", "2024-05-03", 55, 120)
	gateway := &mocks.MockGateway{
		Result: &services.SearchResult{
			City:   "Dallas",
			Region: "TX",
			Events: []services.UpstreamEvent{jazz, game},
		},
		Events: map[string]*services.UpstreamEvent{"G1": &jazz, "G2": &game},
	}

	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Gateway: gateway,
		Logger:  logger,
		Output:  output,
		Store:   store,
		Now:     tu.Clock(fixedNow),
	})
	t.Cleanup(func() { runner.Close() })

	return runner, gateway, output
}

func run(r *Runner, args ...string) error {
	app := &cli.Command{
		Name:      "scout",
		Commands:  r.register(),
		Writer:    io.Discard,
		ErrWriter: io.Discard,
	}
	return app.Run(context.Background(), append([]string{"scout"}, args...))
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			httpClient := &http.Client{}
			gateway := &mocks.MockGateway{}
			geocoder := &mocks.MockGeocoder{}
			api := &services.APIService{}

			runner := NewRunner(RunnerOpts{
				Config:     config,
				Logger:     logger,
				Output:     output,
				HTTPClient: httpClient,
				Gateway:    gateway,
				Geocoder:   geocoder,
				API:        api,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
			if runner.gateway != gateway {
				t.Error("expected gateway to be set")
			}
			if runner.geocoder != geocoder {
				t.Error("expected geocoder to be set")
			}
			if runner.api != api {
				t.Error("expected api to be set")
			}
		})

		t.Run("with nil options uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
			if runner.httpClient != http.DefaultClient {
				t.Error("expected httpClient to default to http.DefaultClient")
			}
			if runner.normalizer == nil || runner.recommender == nil {
				t.Error("expected normalizer and recommender to be built")
			}
			if runner.now == nil {
				t.Error("expected clock to be set")
			}
		})

		t.Run("with configPath sets field", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{ConfigPath: "/test/path/config.toml"})

			if runner.configPath != "/test/path/config.toml" {
				t.Errorf("expected configPath to be set, got %s", runner.configPath)
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, true); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			expected := `{"key":"value"}` + "\n"
			if output.String() != expected {
				t.Errorf("expected %q, got %q", expected, output.String())
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			err := runner.writeJSON(make(chan int), false)
			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil {
				t.Fatal("expected error writing newline")
			}
			if !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writePlain("hello %s", "world"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if output.String() != "hello world" {
				t.Errorf("expected 'hello world', got %q", output.String())
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writePlain("test")
			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		names := map[string]bool{}
		for i, cmd := range commands {
			if cmd == nil {
				t.Fatalf("command at index %d is nil", i)
			}
			names[cmd.Name] = true
		}

		for _, want := range []string{"setup", "search", "event", "favorites", "history", "prefs", "recommend", "share", "geocode", "serve", "api", "tui"} {
			if !names[want] {
				t.Errorf("expected %q to be registered", want)
			}
		}
	})

	t.Run("engine without gateway", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Logger: shared.NewLogger(io.Discard)})

		_, err := runner.engine(true)
		if !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})
}

func TestSearchCommand(t *testing.T) {
	t.Run("Prints Results And Records History", func(t *testing.T) {
		runner, gateway, output := newTestRunner(t)

		if err := run(runner, "search", "Dallas, TX"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		out := output.String()
		for _, want := range []string{"Events near Dallas, TX (2 of 2)", "Jazz Night", "Mavericks vs Spurs", "Tomorrow"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected output to contain %q, got:\n%s", want, out)
			}
		}
		if len(gateway.Searches) != 1 || gateway.Searches[0] != "Dallas, TX" {
			t.Errorf("expected one upstream search for Dallas, TX, got %v", gateway.Searches)
		}

		entries, err := runner.history.SearchHistory()
		if err != nil {
			t.Fatalf("failed to read history: %v", err)
		}
		if len(entries) != 1 || entries[0].Location != "Dallas, TX" {
			t.Errorf("expected search to be recorded, got %+v", entries)
		}

		location, _ := runner.history.Location("")
		if location != "Dallas, TX" {
			t.Errorf("expected location to be saved, got %q", location)
		}
	})

	t.Run("Filter Flags Narrow Results And Become Preferences", func(t *testing.T) {
		runner, _, output := newTestRunner(t)

		if err := run(runner, "search", "--category", "sports", "Dallas, TX"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		out := output.String()
		if strings.Contains(out, "Jazz Night") || !strings.Contains(out, "Mavericks vs Spurs") {
			t.Errorf("expected only the sports event, got:\n%s", out)
		}

		prefs, err := runner.history.Preferences()
		if err != nil {
			t.Fatalf("failed to read preferences: %v", err)
		}
		if prefs.Category != string(models.CategorySports) {
			t.Errorf("expected sports preference, got %q", prefs.Category)
		}
	})

	t.Run("Uses Stored Location When Omitted", func(t *testing.T) {
		runner, gateway, _ := newTestRunner(t)
		if err := runner.openStore(); err != nil {
			t.Fatal(err)
		}
		if err := runner.history.SetLocation("Austin, TX"); err != nil {
			t.Fatal(err)
		}

		if err := run(runner, "search"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if gateway.Searches[0] != "Austin, TX" {
			t.Errorf("expected stored location, got %q", gateway.Searches[0])
		}
	})

	t.Run("Invalid Filter", func(t *testing.T) {
		runner, gateway, _ := newTestRunner(t)

		if err := run(runner, "search", "--price", "cheap", "Dallas, TX"); err == nil {
			t.Fatal("expected error for unknown price filter")
		}
		if len(gateway.Searches) != 0 {
			t.Error("expected no upstream call")
		}
	})

	t.Run("Upstream Failure", func(t *testing.T) {
		runner, gateway, _ := newTestRunner(t)
		gateway.Result = nil
		gateway.Err = shared.ErrAPIRequest

		err := run(runner, "search", "Dallas, TX")
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})

	t.Run("JSON Output", func(t *testing.T) {
		runner, _, output := newTestRunner(t)

		if err := run(runner, "search", "--json", "Dallas, TX"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.HasPrefix(output.String(), "{") || !strings.Contains(output.String(), "G1") {
			t.Errorf("expected JSON result, got %s", output.String())
		}
	})
}

func TestFavoritesCommand(t *testing.T) {
	t.Run("Add List And Remove", func(t *testing.T) {
		runner, _, output := newTestRunner(t)

		if err := run(runner, "favorites", "add", "G1"); err != nil {
			t.Fatalf("add failed: %v", err)
		}
		if !strings.Contains(output.String(), "Added Jazz Night") {
			t.Errorf("expected add confirmation, got %q", output.String())
		}
		if !runner.favorites.IsFavorite("G1") {
			t.Fatal("expected G1 to be a favorite")
		}

		top, err := runner.history.FavoriteCategories()
		if err != nil {
			t.Fatal(err)
		}
		if len(top) == 0 || top[0] != models.CategoryMusic {
			t.Errorf("expected music to lead favorite categories, got %v", top)
		}

		output.Reset()
		if err := run(runner, "favorites", "list"); err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if !strings.Contains(output.String(), "Favorites (1)") || !strings.Contains(output.String(), "Jazz Night") {
			t.Errorf("expected favorite in list, got:\n%s", output.String())
		}

		if err := run(runner, "favorites", "remove", "G1"); err != nil {
			t.Fatalf("remove failed: %v", err)
		}
		if runner.favorites.IsFavorite("G1") {
			t.Error("expected G1 to be removed")
		}
	})

	t.Run("Remove Unknown", func(t *testing.T) {
		runner, _, _ := newTestRunner(t)

		err := run(runner, "favorites", "remove", "nope")
		if !errors.Is(err, shared.ErrEventNotFound) {
			t.Errorf("expected ErrEventNotFound, got %v", err)
		}
	})

	t.Run("Add Requires Id", func(t *testing.T) {
		runner, _, _ := newTestRunner(t)

		err := run(runner, "favorites", "add")
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("Toggle Twice", func(t *testing.T) {
		runner, gateway, _ := newTestRunner(t)

		if err := run(runner, "favorites", "toggle", "G2"); err != nil {
			t.Fatal(err)
		}
		if !runner.favorites.IsFavorite("G2") {
			t.Fatal("expected G2 to be added")
		}
		if err := run(runner, "favorites", "toggle", "G2"); err != nil {
			t.Fatal(err)
		}
		if runner.favorites.IsFavorite("G2") {
			t.Error("expected G2 to be removed")
		}
		if len(gateway.Gets) != 1 {
			t.Errorf("expected a single upstream fetch, got %d", len(gateway.Gets))
		}
	})

	t.Run("Export And Import Round Trip", func(t *testing.T) {
		runner, _, _ := newTestRunner(t)
		path := filepath.Join(t.TempDir(), "favorites.json")

		if err := run(runner, "favorites", "add", "G1"); err != nil {
			t.Fatal(err)
		}
		if err := run(runner, "favorites", "export", "--output", path); err != nil {
			t.Fatalf("export failed: %v", err)
		}
		tu.AssertFileExists(t, path)
		if exported := tu.MustReadFile(t, path); !strings.Contains(exported, `"G1"`) {
			t.Errorf("expected export keyed by id, got %s", exported)
		}

		other, _, output := newTestRunner(t)
		if err := run(other, "favorites", "import", path); err != nil {
			t.Fatalf("import failed: %v", err)
		}
		if !strings.Contains(output.String(), "Imported 1 favorites") {
			t.Errorf("expected import count, got %q", output.String())
		}
		if !other.favorites.IsFavorite("G1") {
			t.Error("expected G1 after import")
		}
	})

	t.Run("Export Empty In Other Format", func(t *testing.T) {
		runner, _, _ := newTestRunner(t)

		err := run(runner, "favorites", "export", "--format", "csv", "--output", filepath.Join(t.TempDir(), "f.csv"))
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("Stats", func(t *testing.T) {
		runner, _, output := newTestRunner(t)
		for _, id := range []string{"G1", "G2"} {
			if err := run(runner, "favorites", "add", id); err != nil {
				t.Fatal(err)
			}
		}

		output.Reset()
		if err := run(runner, "favorites", "stats"); err != nil {
			t.Fatal(err)
		}
		for _, want := range []string{"Total: 2", "Paid:  2", "music", "sports"} {
			if !strings.Contains(output.String(), want) {
				t.Errorf("expected stats to contain %q, got:\n%s", want, output.String())
			}
		}
	})

	t.Run("Invalid Tab", func(t *testing.T) {
		runner, _, _ := newTestRunner(t)

		err := run(runner, "favorites", "list", "--tab", "soon")
		if !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})
}

func TestHistoryCommand(t *testing.T) {
	t.Run("Clear Requires Confirmation", func(t *testing.T) {
		runner, _, _ := newTestRunner(t)

		err := run(runner, "history", "clear")
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("Clear Keeps Location", func(t *testing.T) {
		runner, _, output := newTestRunner(t)
		if err := run(runner, "search", "Dallas, TX"); err != nil {
			t.Fatal(err)
		}
		if err := run(runner, "favorites", "add", "G1"); err != nil {
			t.Fatal(err)
		}

		if err := run(runner, "history", "clear", "--yes"); err != nil {
			t.Fatalf("clear failed: %v", err)
		}

		if runner.favorites.IsFavorite("G1") {
			t.Error("expected favorites to be cleared")
		}
		entries, _ := runner.history.SearchHistory()
		if len(entries) != 0 {
			t.Errorf("expected search history to be cleared, got %d", len(entries))
		}
		location, _ := runner.history.Location("")
		if location != "Dallas, TX" {
			t.Errorf("expected location to survive, got %q", location)
		}

		output.Reset()
		if err := run(runner, "history", "searches"); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(output.String(), "No searches yet.") {
			t.Errorf("expected empty history, got %q", output.String())
		}
	})

	t.Run("Viewed And Popular", func(t *testing.T) {
		runner, _, output := newTestRunner(t)
		for range 2 {
			if err := run(runner, "event", "G1"); err != nil {
				t.Fatalf("event failed: %v", err)
			}
		}

		output.Reset()
		if err := run(runner, "history", "popular"); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(output.String(), "G1 • 2 views") {
			t.Errorf("expected popularity count, got %q", output.String())
		}

		ids, err := runner.history.RecentlyViewed()
		if err != nil {
			t.Fatal(err)
		}
		if len(ids) != 1 || ids[0] != "G1" {
			t.Errorf("expected deduplicated viewed list, got %v", ids)
		}
	})
}

func TestPrefsCommand(t *testing.T) {
	runner, _, output := newTestRunner(t)

	if err := run(runner, "prefs", "set", "--category", "music", "--price", "free", "--max-distance", "10"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := run(runner, "prefs", "location", "Austin, TX"); err != nil {
		t.Fatalf("location failed: %v", err)
	}

	output.Reset()
	if err := run(runner, "prefs", "show"); err != nil {
		t.Fatalf("show failed: %v", err)
	}

	for _, want := range []string{"Austin, TX", "music", "free", "10 mi"} {
		if !strings.Contains(output.String(), want) {
			t.Errorf("expected prefs to contain %q, got:\n%s", want, output.String())
		}
	}
}

func TestShareCommand(t *testing.T) {
	t.Run("Create Show And List", func(t *testing.T) {
		runner, _, output := newTestRunner(t)
		if err := run(runner, "favorites", "add", "G1"); err != nil {
			t.Fatal(err)
		}

		output.Reset()
		if err := run(runner, "share", "create", "--message", "Come along"); err != nil {
			t.Fatalf("create failed: %v", err)
		}
		ids, err := runner.shares.List()
		if err != nil || len(ids) != 1 {
			t.Fatalf("expected one share, got %v (%v)", ids, err)
		}
		if !strings.Contains(output.String(), ids[0]) {
			t.Errorf("expected share id in output, got %q", output.String())
		}

		output.Reset()
		if err := run(runner, "share", "show", ids[0]); err != nil {
			t.Fatalf("show failed: %v", err)
		}
		if !strings.Contains(output.String(), "Come along") || !strings.Contains(output.String(), "Jazz Night") {
			t.Errorf("expected shared list, got:\n%s", output.String())
		}
	})

	t.Run("Nothing To Share", func(t *testing.T) {
		runner, _, _ := newTestRunner(t)

		err := run(runner, "share", "create")
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestGeocodeCommand(t *testing.T) {
	result := &services.GeocodeResult{
		FormattedAddress: "Austin, TX, USA",
		Lat:              30.2672,
		Lng:              -97.7431,
		Components: []services.AddressComponent{
			{LongName: "Austin", ShortName: "Austin", Types: []string{"locality", "political"}},
			{LongName: "Texas", ShortName: "TX", Types: []string{"administrative_area_level_1", "political"}},
		},
	}

	t.Run("Forward And Save", func(t *testing.T) {
		runner, _, output := newTestRunner(t)
		runner.geocoder = &mocks.MockGeocoder{Result: result}

		if err := run(runner, "geocode", "--save", "austin"); err != nil {
			t.Fatalf("geocode failed: %v", err)
		}
		if !strings.Contains(output.String(), "Search as:   Austin, TX") {
			t.Errorf("expected city and region, got %q", output.String())
		}
		location, _ := runner.history.Location("")
		if location != "Austin, TX" {
			t.Errorf("expected saved location, got %q", location)
		}
	})

	t.Run("Lat Without Lng", func(t *testing.T) {
		runner, _, _ := newTestRunner(t)
		runner.geocoder = &mocks.MockGeocoder{Result: result}

		err := run(runner, "geocode", "--lat", "30.2")
		if !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})

	t.Run("No Results", func(t *testing.T) {
		runner, _, _ := newTestRunner(t)
		runner.geocoder = &mocks.MockGeocoder{Err: shared.ErrNoResults}

		err := run(runner, "geocode", "nowhere")
		if !errors.Is(err, shared.ErrNoResults) {
			t.Errorf("expected ErrNoResults, got %v", err)
		}
	})
}

func TestAPICommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/healthz":
			w.Write([]byte(`{"status":"ok"}`))
		case "/api/events":
			w.Write([]byte(`{"city":"` + r.URL.Query().Get("city") + `"}`))
		default:
			http.Error(w, "nope", http.StatusNotFound)
		}
	}))
	defer srv.Close()

	newRunner := func() (*Runner, *bytes.Buffer) {
		output := &bytes.Buffer{}
		return NewRunner(RunnerOpts{
			API:    services.NewAPIService(srv.URL, nil),
			Logger: shared.NewLogger(io.Discard),
			Output: output,
		}), output
	}

	t.Run("Get With Query", func(t *testing.T) {
		runner, output := newRunner()

		if err := run(runner, "api", "get", "--pretty=false", "-q", "city=Austin", "/api/events"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if output.String() != `{"city":"Austin"}`+"\n" {
			t.Errorf("unexpected output %q", output.String())
		}
	})

	t.Run("Malformed Query", func(t *testing.T) {
		runner, _ := newRunner()

		err := run(runner, "api", "get", "-q", "city", "/api/events")
		if !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})

	t.Run("Error Status", func(t *testing.T) {
		runner, _ := newRunner()

		err := run(runner, "api", "get", "/missing")
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})

	t.Run("Post Rejects Invalid JSON", func(t *testing.T) {
		runner, _ := newRunner()

		err := run(runner, "api", "post", "--data", "{city", "/api/events")
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}
