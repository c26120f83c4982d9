package main

import (
	"context"
	"fmt"

	"github.com/sioneuhlig/eventscout/internal/models"
	"github.com/sioneuhlig/eventscout/internal/shared"
	"github.com/urfave/cli/v3"
)

// ShareCreate publishes a snapshot of favorites under a new share id.
//
// With --id only the named favorites are shared.
func (r *Runner) ShareCreate(ctx context.Context, cmd *cli.Command) error {
	if err := r.openStore(); err != nil {
		return err
	}

	events, err := r.favorites.List()
	if err != nil {
		return err
	}
	if ids := cmd.StringSlice("id"); len(ids) > 0 {
		picked := make([]models.Event, 0, len(ids))
		for _, id := range ids {
			e, err := r.favorites.Get(id)
			if err != nil {
				return err
			}
			picked = append(picked, *e)
		}
		events = picked
	}

	list, err := r.shares.Create(cmd.String("message"), events)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(list, true)
	}
	r.writePlain("✓ Shared %d events\n", len(list.Events))
	r.writePlain("Share id: %s\n", list.ID)
	return nil
}

// ShareShow prints a stored share.
func (r *Runner) ShareShow(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: share id", shared.ErrMissingArgument)
	}
	if err := r.openStore(); err != nil {
		return err
	}

	list, err := r.shares.Load(id)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(list, true)
	}

	r.writePlainHeader(fmt.Sprintf("Shared by %s on %s", list.SharedBy, list.SharedOn.Local().Format("Jan 2, 2006")))
	if list.Message != "" {
		r.writePlain("%s\n\n", list.Message)
	}
	for i, e := range list.Events {
		r.writePlain("%d. %s • %s • %s\n", i+1, e.Title, e.Date, e.Category)
	}
	return nil
}

// ShareList prints every stored share id.
func (r *Runner) ShareList(ctx context.Context, cmd *cli.Command) error {
	if err := r.openStore(); err != nil {
		return err
	}
	ids, err := r.shares.List()
	if err != nil {
		return err
	}
	if cmd.Bool("json") {
		return r.writeJSON(ids, false)
	}
	for _, id := range ids {
		r.writePlain("%s\n", id)
	}
	return nil
}

// shareCommand publishes and reads shared lists.
func shareCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "share",
		Usage: "Share favorite events",
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Share favorites under a new id",
				Flags: []cli.Flag{
					jsonFlag(),
					&cli.StringFlag{
						Name:    "message",
						Aliases: []string{"m"},
						Usage:   "Message to include",
					},
					&cli.StringSliceFlag{
						Name:  "id",
						Usage: "Favorite id to include (repeatable; default all)",
					},
				},
				Action: r.ShareCreate,
			},
			{
				Name:      "show",
				Usage:     "Show a shared list",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags:     []cli.Flag{jsonFlag()},
				Action:    r.ShareShow,
			},
			{
				Name:   "list",
				Usage:  "List share ids",
				Flags:  []cli.Flag{jsonFlag()},
				Action: r.ShareList,
			},
		},
	}
}
