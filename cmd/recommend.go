package main

import (
	"context"

	"github.com/sioneuhlig/eventscout/internal/filter"
	"github.com/sioneuhlig/eventscout/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Recommend ranks upcoming events near a location against favorites, views and searches.
//
// The search behind it is not added to history.
func (r *Runner) Recommend(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.engine(false)
	if err != nil {
		return err
	}
	location, err := r.resolveLocation(cmd.StringArg("location"))
	if err != nil {
		return err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	result, err := engine.Search(ctx, nil, tasks.SearchRequest{Location: location})
	if err != nil {
		return err
	}

	signals, err := r.signals()
	if err != nil {
		return err
	}

	events := filter.Upcoming(result.Events, r.now())
	picks := r.recommender.Recommend(events, signals, cmd.Int("limit"))

	if cmd.Bool("json") {
		return r.writeJSON(picks, true)
	}

	r.writePlainHeader("Recommended for you near " + location)
	if len(picks) == 0 {
		r.writePlain("No upcoming events to recommend.\n")
		return nil
	}
	for i, p := range picks {
		r.writePlain("%d. %s (score %.1f)\n", i+1, p.Title, p.Score)
		r.writePlain("   %s • %s %s • %s\n", p.Category, p.Date, p.Time, p.Venue)
		r.writePlain("   id: %s\n", p.ID)
	}
	return nil
}

func (r *Runner) signals() (tasks.Signals, error) {
	var s tasks.Signals
	var err error
	if s.FavoriteCategories, err = r.history.FavoriteCategories(); err != nil {
		return s, err
	}
	if s.Viewed, err = r.history.RecentlyViewed(); err != nil {
		return s, err
	}
	if s.Searches, err = r.history.SearchHistory(); err != nil {
		return s, err
	}
	return s, nil
}

// recommendCommand suggests events based on history.
func recommendCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "recommend",
		Aliases:   []string{"rec"},
		Usage:     "Recommend events based on favorites and history",
		Arguments: []cli.Argument{&cli.StringArg{Name: "location"}},
		Flags: []cli.Flag{
			jsonFlag(),
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Number of recommendations",
				Value: tasks.DefaultRecommendations,
			},
		},
		Action: r.Recommend,
	}
}
