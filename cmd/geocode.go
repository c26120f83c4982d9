package main

import (
	"context"
	"fmt"

	"github.com/sioneuhlig/eventscout/internal/services"
	"github.com/sioneuhlig/eventscout/internal/shared"
	"github.com/urfave/cli/v3"
)

// Geocode resolves an address, or coordinates when --lat and --lng are set.
//
// With --save the resolved "City, ST" becomes the default search location.
func (r *Runner) Geocode(ctx context.Context, cmd *cli.Command) error {
	if r.geocoder == nil {
		return fmt.Errorf("%w: geocoder not initialized", shared.ErrServiceUnavailable)
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var (
		result *services.GeocodeResult
		err    error
	)
	switch {
	case cmd.IsSet("lat") || cmd.IsSet("lng"):
		if !cmd.IsSet("lat") || !cmd.IsSet("lng") {
			return fmt.Errorf("%w: --lat and --lng must be given together", shared.ErrInvalidFlag)
		}
		result, err = r.geocoder.Reverse(ctx, cmd.Float("lat"), cmd.Float("lng"))
	default:
		address := cmd.StringArg("address")
		if address == "" {
			return fmt.Errorf("%w: address or --lat/--lng", shared.ErrMissingArgument)
		}
		result, err = r.geocoder.Forward(ctx, address)
	}
	if err != nil {
		return err
	}

	cityRegion := result.CityRegion()
	if cmd.Bool("save") && cityRegion != "" {
		if err := r.openStore(); err != nil {
			return err
		}
		if err := r.history.SetLocation(cityRegion); err != nil {
			return err
		}
		r.logger.Info("location saved", "location", cityRegion)
	}

	if cmd.Bool("json") {
		return r.writeJSON(result, true)
	}

	r.writePlain("%s\n", result.FormattedAddress)
	r.writePlain("Coordinates: %.6f, %.6f\n", result.Lat, result.Lng)
	if cityRegion != "" {
		r.writePlain("Search as:   %s\n", cityRegion)
	}
	return nil
}

// geocodeCommand resolves addresses and coordinates.
func geocodeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "geocode",
		Usage:     "Resolve an address or coordinates to a search location",
		Arguments: []cli.Argument{&cli.StringArg{Name: "address"}},
		Flags: []cli.Flag{
			&cli.FloatFlag{
				Name:  "lat",
				Usage: "Latitude for reverse lookup",
			},
			&cli.FloatFlag{
				Name:  "lng",
				Usage: "Longitude for reverse lookup",
			},
			&cli.BoolFlag{
				Name:  "save",
				Usage: "Save the result as the default location",
			},
			jsonFlag(),
		},
		Action: r.Geocode,
	}
}
