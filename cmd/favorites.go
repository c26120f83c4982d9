package main

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/sioneuhlig/eventscout/internal/filter"
	"github.com/sioneuhlig/eventscout/internal/formatter"
	"github.com/sioneuhlig/eventscout/internal/models"
	"github.com/sioneuhlig/eventscout/internal/shared"
	"github.com/sioneuhlig/eventscout/internal/tasks"
	"github.com/urfave/cli/v3"
)

// FavoritesList prints saved favorites on the selected tab.
func (r *Runner) FavoritesList(ctx context.Context, cmd *cli.Command) error {
	events, err := r.favoritesTab(cmd.String("tab"))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(events, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Favorites (%d)", len(events)))
	if len(events) == 0 {
		r.writePlain("No favorites yet. Use 'scout favorites add <id>' to save one.\n")
		return nil
	}
	r.printEvents(events)
	return nil
}

// FavoritesAdd fetches an event and saves it as a favorite.
func (r *Runner) FavoritesAdd(ctx context.Context, cmd *cli.Command) error {
	event, err := r.fetchSnapshot(ctx, cmd.StringArg("id"))
	if err != nil {
		return err
	}
	if err := r.favorites.Add(*event); err != nil {
		return err
	}
	r.syncFavoriteCategories()

	r.logger.Info("favorite added", "id", event.ID)
	r.writePlain("★ Added %s to favorites\n", event.Title)
	return nil
}

// FavoritesRemove deletes a favorite by id.
func (r *Runner) FavoritesRemove(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: event id", shared.ErrMissingArgument)
	}
	if err := r.openStore(); err != nil {
		return err
	}

	removed, err := r.favorites.Remove(id)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("%w: %s is not a favorite", shared.ErrEventNotFound, id)
	}
	r.syncFavoriteCategories()

	r.writePlain("Removed %s from favorites\n", id)
	return nil
}

// FavoritesToggle flips an event's favorite state, fetching a snapshot only when adding.
func (r *Runner) FavoritesToggle(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: event id", shared.ErrMissingArgument)
	}
	if err := r.openStore(); err != nil {
		return err
	}

	var snapshot *models.Event
	if !r.favorites.IsFavorite(id) {
		event, err := r.fetchSnapshot(ctx, id)
		if err != nil {
			return err
		}
		snapshot = event
	}

	added, err := r.favorites.Toggle(id, snapshot)
	if err != nil {
		return err
	}
	r.syncFavoriteCategories()

	if added {
		r.writePlain("★ Added %s to favorites\n", snapshot.Title)
	} else {
		r.writePlain("Removed %s from favorites\n", id)
	}
	return nil
}

// FavoritesClear removes every favorite.
func (r *Runner) FavoritesClear(ctx context.Context, cmd *cli.Command) error {
	if err := r.openStore(); err != nil {
		return err
	}
	if err := r.favorites.Clear(); err != nil {
		return err
	}
	r.syncFavoriteCategories()

	r.writePlain("✓ Favorites cleared\n")
	return nil
}

// FavoritesExport writes favorites in any export format.
//
// The json format is the id→event object accepted by import.
func (r *Runner) FavoritesExport(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	if format == formatter.FormatJSON {
		if err := r.openStore(); err != nil {
			return err
		}
		data, err := r.favorites.Export()
		if err != nil {
			return err
		}
		path := cmd.String("output")
		if path == "" {
			path = "favorites.json"
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write favorites: %w", err)
		}
		r.writePlain("✓ Favorites exported to %s\n", path)
		return nil
	}

	events, err := r.favoritesTab(cmd.String("tab"))
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return fmt.Errorf("%w: no favorites to export", shared.ErrInvalidInput)
	}

	path, err := formatter.WriteExport(events, format, cmd.String("output"))
	if err != nil {
		return err
	}
	r.writePlain("✓ Exported %d favorites to %s\n", len(events), path)
	return nil
}

// FavoritesImport merges favorites from an exported JSON file.
func (r *Runner) FavoritesImport(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("file")
	if path == "" {
		return fmt.Errorf("%w: import file", shared.ErrMissingArgument)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}
	if err := r.openStore(); err != nil {
		return err
	}

	n, err := r.favorites.ImportLegacy(raw)
	if err != nil {
		return err
	}
	r.syncFavoriteCategories()

	r.writePlain("✓ Imported %d favorites\n", n)
	return nil
}

// FavoritesRefresh re-fetches every favorite to update its snapshot.
func (r *Runner) FavoritesRefresh(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.engine(false)
	if err != nil {
		return err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	progress := make(chan tasks.ProgressUpdate, 32)
	done := r.logProgress(progress)
	result, err := engine.RefreshFavorites(ctx, progress, tasks.RefreshOpts{
		NumWorkers: cmd.Int("workers"),
		RateLimit:  cmd.Float("rate"),
	})
	close(progress)
	<-done
	if err != nil {
		return err
	}
	r.syncFavoriteCategories()

	if cmd.Bool("json") {
		return r.writeJSON(result, true)
	}

	r.writePlainHeader("Favorites Refresh")
	r.writePlain("Total:     %d\n", result.Total)
	r.writePlain("Refreshed: %d\n", result.Refreshed)
	r.writePlain("Failed:    %d\n", result.Failed)
	for id, msg := range result.Errors {
		r.writePlain("  • %s: %s\n", id, msg)
	}
	return nil
}

// FavoritesStats summarises favorites by category and price.
func (r *Runner) FavoritesStats(ctx context.Context, cmd *cli.Command) error {
	events, err := r.favoritesTab(cmd.String("tab"))
	if err != nil {
		return err
	}
	summary := filter.Stats(events)

	if cmd.Bool("json") {
		return r.writeJSON(summary, true)
	}

	r.writePlainHeader("Favorite Stats")
	r.writePlain("Total: %d\n", summary.Total)
	r.writePlain("Free:  %d\n", summary.Free)
	r.writePlain("Paid:  %d\n", summary.Paid)
	r.writePlainln("By category:")
	for _, c := range models.Categories {
		if n := summary.ByCategory[c]; n > 0 {
			r.writePlain("  %-10s %d\n", c, n)
		}
	}

	top, err := r.history.FavoriteCategories()
	if err == nil && len(top) > 0 {
		r.writePlain("\nTop categories: %v\n", top)
	}
	return nil
}

func (r *Runner) favoritesTab(tab string) ([]models.Event, error) {
	if err := r.openStore(); err != nil {
		return nil, err
	}
	if !slices.Contains([]string{"", "all", "upcoming", "past"}, tab) {
		return nil, fmt.Errorf("%w: tab must be upcoming, past or all", shared.ErrInvalidFlag)
	}
	events, err := r.favorites.List()
	if err != nil {
		return nil, err
	}
	return filter.Tab(events, tab, r.now()), nil
}

// fetchSnapshot loads the current details of id for storing as a favorite.
func (r *Runner) fetchSnapshot(ctx context.Context, id string) (*models.Event, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: event id", shared.ErrMissingArgument)
	}
	engine, err := r.engine(false)
	if err != nil {
		return nil, err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	return engine.Event(ctx, id)
}

func idArgument() []cli.Argument {
	return []cli.Argument{&cli.StringArg{Name: "id"}}
}

func tabFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "tab",
		Usage: "Which favorites to include (upcoming, past, all)",
		Value: "all",
	}
}

// favoritesCommand manages saved events.
func favoritesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "favorites",
		Aliases: []string{"fav", "favs"},
		Usage:   "Manage favorite events",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List favorites",
				Flags: []cli.Flag{
					tabFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.FavoritesList,
			},
			{
				Name:      "add",
				Usage:     "Save an event as a favorite",
				Arguments: idArgument(),
				Action:    r.FavoritesAdd,
			},
			{
				Name:      "remove",
				Aliases:   []string{"rm"},
				Usage:     "Remove a favorite",
				Arguments: idArgument(),
				Action:    r.FavoritesRemove,
			},
			{
				Name:      "toggle",
				Usage:     "Add or remove a favorite",
				Arguments: idArgument(),
				Action:    r.FavoritesToggle,
			},
			{
				Name:   "clear",
				Usage:  "Remove every favorite",
				Action: r.FavoritesClear,
			},
			{
				Name:  "export",
				Usage: "Export favorites (json, csv, markdown, txt, ics, geojson)",
				Flags: []cli.Flag{
					tabFlag(),
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format",
						Value:   formatter.FormatJSON,
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path",
					},
				},
				Action: r.FavoritesExport,
			},
			{
				Name:      "import",
				Usage:     "Import favorites from an exported JSON file",
				Arguments: []cli.Argument{&cli.StringArg{Name: "file"}},
				Action:    r.FavoritesImport,
			},
			{
				Name:  "refresh",
				Usage: "Re-fetch every favorite from upstream",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent fetches (max 10)",
						Value: 5,
					},
					&cli.FloatFlag{
						Name:  "rate",
						Usage: "Requests per second",
						Value: 5,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.FavoritesRefresh,
			},
			{
				Name:  "stats",
				Usage: "Summarise favorites",
				Flags: []cli.Flag{
					tabFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.FavoritesStats,
			},
		},
	}
}
