package main

import (
	"context"
	"fmt"

	"github.com/sioneuhlig/eventscout/internal/shared"
	"github.com/urfave/cli/v3"
)

// HistorySearches lists recent searches, newest first.
func (r *Runner) HistorySearches(ctx context.Context, cmd *cli.Command) error {
	if err := r.openStore(); err != nil {
		return err
	}
	entries, err := r.history.SearchHistory()
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(entries, true)
	}

	r.writePlainHeader("Recent Searches")
	if len(entries) == 0 {
		r.writePlain("No searches yet.\n")
		return nil
	}
	for i, e := range entries {
		category := e.Category
		if category == "" {
			category = "all"
		}
		r.writePlain("%d. %s (%s) • %s\n", i+1, e.Location, category, e.Timestamp.Local().Format("Jan 2 15:04"))
	}
	return nil
}

// HistoryViewed lists recently viewed event ids, newest first.
func (r *Runner) HistoryViewed(ctx context.Context, cmd *cli.Command) error {
	if err := r.openStore(); err != nil {
		return err
	}
	ids, err := r.history.RecentlyViewed()
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(ids, true)
	}

	r.writePlainHeader("Recently Viewed")
	if len(ids) == 0 {
		r.writePlain("Nothing viewed yet.\n")
		return nil
	}
	for i, id := range ids {
		line := id
		if fav, err := r.favorites.Get(id); err == nil {
			line = fav.Title + " (" + id + ")"
		}
		r.writePlain("%d. %s\n", i+1, line)
	}
	return nil
}

// HistoryPopular lists the most viewed events.
func (r *Runner) HistoryPopular(ctx context.Context, cmd *cli.Command) error {
	if err := r.openStore(); err != nil {
		return err
	}
	popular, err := r.history.Popular(cmd.Int("limit"))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(popular, true)
	}

	r.writePlainHeader("Popular Events")
	for i, p := range popular {
		r.writePlain("%d. %s • %d views\n", i+1, p.ID, p.Views)
	}
	return nil
}

// HistoryClear wipes favorites and browsing history, keeping preferences and location.
func (r *Runner) HistoryClear(ctx context.Context, cmd *cli.Command) error {
	if !cmd.Bool("yes") {
		return fmt.Errorf("%w: pass --yes to clear favorites and history", shared.ErrInvalidArgument)
	}
	if err := r.openStore(); err != nil {
		return err
	}
	if err := r.history.Clear(); err != nil {
		return err
	}
	r.logger.Info("history cleared")
	r.writePlain("✓ Favorites and history cleared\n")
	return nil
}

func jsonFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "json",
		Usage: "Output raw JSON",
	}
}

// historyCommand inspects and clears browsing history.
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Search and viewing history",
		Commands: []*cli.Command{
			{
				Name:   "searches",
				Usage:  "List recent searches",
				Flags:  []cli.Flag{jsonFlag()},
				Action: r.HistorySearches,
			},
			{
				Name:   "viewed",
				Usage:  "List recently viewed events",
				Flags:  []cli.Flag{jsonFlag()},
				Action: r.HistoryViewed,
			},
			{
				Name:  "popular",
				Usage: "List the most viewed events",
				Flags: []cli.Flag{
					jsonFlag(),
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Number of events to show",
						Value: 10,
					},
				},
				Action: r.HistoryPopular,
			},
			{
				Name:  "clear",
				Usage: "Clear favorites, searches and viewed events",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "yes",
						Aliases: []string{"y"},
						Usage:   "Confirm clearing",
					},
				},
				Action: r.HistoryClear,
			},
		},
	}
}
