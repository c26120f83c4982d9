package main

import (
	"context"
	"fmt"

	"github.com/sioneuhlig/eventscout/internal/models"
	"github.com/sioneuhlig/eventscout/internal/shared"
	"github.com/urfave/cli/v3"
)

// EventShow prints one event, recording the view and its popularity.
//
// When upstream fails, a stored favorite snapshot is shown instead.
func (r *Runner) EventShow(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: event id", shared.ErrMissingArgument)
	}

	engine, err := r.engine(false)
	if err != nil {
		return err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	event, err := engine.Event(ctx, id)
	if err != nil {
		snapshot, ferr := r.favorites.Get(id)
		if ferr != nil {
			return err
		}
		r.logger.Warn("showing saved favorite", "id", id, "error", err)
		event = snapshot
	}

	if err := r.history.RecordView(event.ID); err != nil {
		r.logger.Warn("failed to record view", "error", err)
	}
	if err := r.history.TrackPopular(event.ID); err != nil {
		r.logger.Warn("failed to track popularity", "error", err)
	}

	if cmd.Bool("open") {
		if err := shared.OpenBrowser(event.URL); err != nil {
			r.logger.Warn("failed to open browser", "error", err)
		}
	}

	if cmd.Bool("json") {
		return r.writeJSON(event, cmd.Bool("pretty"))
	}

	r.printEvent(*event)
	return nil
}

func (r *Runner) printEvent(e models.Event) {
	title := e.Title
	if r.favorites.IsFavorite(e.ID) {
		title = "★ " + title
	}
	r.writePlainHeader(title)
	r.writePlain("Category:  %s\n", e.Category)
	r.writePlain("When:      %s %s (%s)\n", e.Date, e.Time, shared.RelativeDate(e.Date, r.now()))
	r.writePlain("Where:     %s, %s\n", e.Venue, e.Location)
	r.writePlain("Price:     %s\n", e.Price)
	r.writePlain("Distance:  %d mi\n", e.Distance)
	r.writePlain("Going:     %d\n", e.Attendees)
	if e.URL != "" {
		r.writePlain("Tickets:   %s\n", e.URL)
	}
	r.writePlainln("%s", e.Description)
}

// eventCommand shows a single event.
func eventCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "event",
		Usage: "Show event details",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "id",
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Open the ticket page in the browser",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.EventShow,
	}
}
