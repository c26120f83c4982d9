package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/sioneuhlig/eventscout/internal/filter"
	"github.com/sioneuhlig/eventscout/internal/formatter"
	"github.com/sioneuhlig/eventscout/internal/models"
	"github.com/sioneuhlig/eventscout/internal/shared"
	"github.com/sioneuhlig/eventscout/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Search finds events near a location, filters them and records the search.
//
// The location defaults to the last one searched. Filter flags that are set are saved as preferences.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.engine(true)
	if err != nil {
		return err
	}

	location, err := r.resolveLocation(cmd.StringArg("location"))
	if err != nil {
		return err
	}

	prefs, err := r.history.Preferences()
	if err != nil {
		return err
	}
	criteria, changed, err := criteriaFromFlags(cmd, prefs)
	if err != nil {
		return err
	}

	req := tasks.SearchRequest{
		Location: location,
		Criteria: criteria,
		Options: models.SearchOptions{
			Radius:        cmd.String("radius"),
			Size:          cmd.Int("limit"),
			Keyword:       cmd.String("keyword"),
			Segment:       cmd.String("segment"),
			StartDateTime: cmd.String("start"),
			EndDateTime:   cmd.String("end"),
		},
	}

	r.logger.Info("searching events", "location", location, "category", criteria.Category, "sort", criteria.Sort)

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	progress := make(chan tasks.ProgressUpdate, 8)
	done := r.logProgress(progress)
	result, err := engine.Search(ctx, progress, req)
	close(progress)
	<-done
	if err != nil {
		return err
	}

	if err := r.history.SetLocation(location); err != nil {
		r.logger.Warn("failed to save location", "error", err)
	}
	if changed {
		if err := r.history.SavePreferences(criteria); err != nil {
			r.logger.Warn("failed to save preferences", "error", err)
		}
	}

	if cmd.Bool("save") {
		saveFile := "search_results.json"
		data, err := shared.MarshalJSON(result, true)
		if err != nil {
			return err
		}
		if err := os.WriteFile(saveFile, data, 0644); err != nil {
			r.logger.Warn("failed to save results", "error", err)
		} else {
			r.logger.Info("results saved", "file", saveFile)
		}
	}

	if format := cmd.String("export"); format != "" {
		path, err := formatter.WriteExport(result.Events, format, cmd.String("output"))
		if err != nil {
			return err
		}
		r.writePlain("✓ Exported %d events to %s\n", len(result.Events), path)
	}

	if cmd.Bool("json") {
		return r.writeJSON(result, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Events near %s (%d of %d)", location, len(result.Events), result.Fetched))
	if len(result.Events) == 0 {
		r.writePlain("No events found. Try another location or loosen the filters.\n")
		return nil
	}
	r.printEvents(result.Events)
	return nil
}

// resolveLocation falls back to the stored location, then the configured default.
func (r *Runner) resolveLocation(arg string) (string, error) {
	if arg != "" {
		return arg, nil
	}
	return r.history.Location(r.config.Search.Location)
}

// criteriaFromFlags overlays any filter flags that were set onto base.
func criteriaFromFlags(cmd *cli.Command, base models.FilterCriteria) (models.FilterCriteria, bool, error) {
	category, price, sort := base.Category, base.Price, base.Sort
	distance := strconv.Itoa(base.MaxDistance)
	changed := false

	if cmd.IsSet("category") {
		category, changed = cmd.String("category"), true
	}
	if cmd.IsSet("price") {
		price, changed = cmd.String("price"), true
	}
	if cmd.IsSet("max-distance") {
		distance, changed = cmd.String("max-distance"), true
	}
	if cmd.IsSet("sort") {
		sort, changed = cmd.String("sort"), true
	}

	c, err := filter.ParseCriteria(category, price, distance, sort)
	return c, changed, err
}

func (r *Runner) printEvents(events []models.Event) {
	now := r.now()
	for i, e := range events {
		marker := ""
		if r.favorites != nil && r.favorites.IsFavorite(e.ID) {
			marker = "★ "
		}
		r.writePlain("%d. %s%s\n", i+1, marker, e.Title)
		r.writePlain("   %s • %s %s • %s, %s • %s • %d mi\n",
			e.Category, shared.RelativeDate(e.Date, now), e.Time, e.Venue, e.Location, e.Price, e.Distance)
		r.writePlain("   id: %s\n", e.ID)
	}
}

func filterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "category",
			Usage: "Category filter (all, music, food, arts, sports, community)",
		},
		&cli.StringFlag{
			Name:  "price",
			Usage: "Price filter (all, free, paid)",
		},
		&cli.StringFlag{
			Name:  "max-distance",
			Usage: "Maximum distance in miles, or all",
		},
		&cli.StringFlag{
			Name:  "sort",
			Usage: "Sort order (date, popularity, distance)",
		},
	}
}

// searchCommand finds events near a location.
func searchCommand(r *Runner) *cli.Command {
	flags := append(filterFlags(),
		&cli.StringFlag{
			Name:  "radius",
			Usage: "Search radius",
		},
		&cli.IntFlag{
			Name:  "limit",
			Usage: "Maximum number of upstream results (1-200)",
		},
		&cli.StringFlag{
			Name:  "keyword",
			Usage: "Keyword to search for",
		},
		&cli.StringFlag{
			Name:  "segment",
			Usage: "Upstream segment name, e.g. Music or Sports",
		},
		&cli.StringFlag{
			Name:  "start",
			Usage: "Earliest start, e.g. 2025-06-01T00:00:00Z",
		},
		&cli.StringFlag{
			Name:  "end",
			Usage: "Latest start, e.g. 2025-06-30T23:59:59Z",
		},
		&cli.StringFlag{
			Name:  "export",
			Usage: "Also export results (json, csv, markdown, txt, ics, geojson)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Export file path",
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print output",
		},
		&cli.BoolFlag{
			Name:  "save",
			Usage: "Save results to search_results.json",
		},
	)

	return &cli.Command{
		Name:  "search",
		Usage: "Search for events near a location",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "location",
			},
		},
		Flags:  flags,
		Action: r.Search,
	}
}
