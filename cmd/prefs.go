package main

import (
	"context"

	"github.com/sioneuhlig/eventscout/internal/models"
	"github.com/urfave/cli/v3"
)

// PrefsShow prints the saved filter preferences and location.
func (r *Runner) PrefsShow(ctx context.Context, cmd *cli.Command) error {
	if err := r.openStore(); err != nil {
		return err
	}
	prefs, err := r.history.Preferences()
	if err != nil {
		return err
	}
	location, err := r.history.Location(r.config.Search.Location)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(struct {
			Location string                `json:"location"`
			Filters  models.FilterCriteria `json:"filters"`
		}{location, prefs}, true)
	}

	r.writePlainHeader("Preferences")
	r.writePlain("Location:     %s\n", location)
	r.writePlain("Category:     %s\n", orAll(prefs.Category))
	r.writePlain("Price:        %s\n", orAll(prefs.Price))
	if prefs.MaxDistance > 0 {
		r.writePlain("Max distance: %d mi\n", prefs.MaxDistance)
	} else {
		r.writePlain("Max distance: all\n")
	}
	r.writePlain("Sort:         %s\n", orDefault(prefs.Sort, models.SortDate))
	return nil
}

// PrefsSet updates the saved filter preferences from the flags that were given.
func (r *Runner) PrefsSet(ctx context.Context, cmd *cli.Command) error {
	if err := r.openStore(); err != nil {
		return err
	}
	prefs, err := r.history.Preferences()
	if err != nil {
		return err
	}
	criteria, _, err := criteriaFromFlags(cmd, prefs)
	if err != nil {
		return err
	}
	if err := r.history.SavePreferences(criteria); err != nil {
		return err
	}
	r.writePlain("✓ Preferences saved\n")
	return nil
}

// PrefsLocation shows or sets the default search location.
func (r *Runner) PrefsLocation(ctx context.Context, cmd *cli.Command) error {
	if err := r.openStore(); err != nil {
		return err
	}

	location := cmd.StringArg("location")
	if location == "" {
		current, err := r.history.Location(r.config.Search.Location)
		if err != nil {
			return err
		}
		r.writePlain("%s\n", current)
		return nil
	}

	if err := r.history.SetLocation(location); err != nil {
		return err
	}
	r.writePlain("✓ Location set to %s\n", location)
	return nil
}

func orAll(v string) string {
	return orDefault(v, models.FilterAll)
}

func orDefault(v, d string) string {
	if v == "" {
		return d
	}
	return v
}

// prefsCommand manages saved filters and location.
func prefsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "prefs",
		Aliases: []string{"preferences"},
		Usage:   "Saved filter preferences and location",
		Commands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show preferences",
				Flags:  []cli.Flag{jsonFlag()},
				Action: r.PrefsShow,
			},
			{
				Name:   "set",
				Usage:  "Save filter preferences",
				Flags:  filterFlags(),
				Action: r.PrefsSet,
			},
			{
				Name:      "location",
				Usage:     "Show or set the default search location",
				Arguments: []cli.Argument{&cli.StringArg{Name: "location"}},
				Action:    r.PrefsLocation,
			},
		},
	}
}
