package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sioneuhlig/eventscout/internal/models"
	"github.com/sioneuhlig/eventscout/internal/services"
	"github.com/sioneuhlig/eventscout/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	if err := shared.LoadEnv(".env"); err != nil {
		logger.Warn("failed to load .env", "error", err)
	}

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		} else {
			logger.Warn("failed to load config, using defaults", "error", err)
		}
	}
	config.ApplyEnv()

	if err := config.Validate(); err != nil {
		logger.Fatalf("invalid configuration: %v", err)
	}
	if err := shared.SetLogLevel(logger, config.Log.Level); err != nil {
		logger.Warn("ignoring log level", "error", err)
	}

	tm := config.Credentials.Ticketmaster
	httpClient := &http.Client{}
	if tm.TimeoutSeconds > 0 {
		httpClient.Timeout = time.Duration(tm.TimeoutSeconds) * time.Second
	}

	gateway := services.NewTicketmasterService(services.TicketmasterOpts{
		BaseURL:        tm.BaseURL,
		ProxyURL:       tm.ProxyURL,
		APIKey:         tm.APIKey,
		RateLimit:      tm.RateLimit,
		HTTPClient:     httpClient,
		FallbackRegion: config.Search.FallbackRegion,
		Defaults: models.SearchOptions{
			Radius: config.Search.Radius,
			Unit:   config.Search.Unit,
			Size:   config.Search.Size,
			Sort:   config.Search.Sort,
		},
	})

	google := config.Credentials.Google
	geocoder := services.NewGoogleGeocoder(google.GeocodeURL, google.APIKey, httpClient)

	apiBase := tm.ProxyURL
	if apiBase == "" {
		apiBase = "http://" + config.Server.Addr()
	}

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: "config.toml",
		Gateway:    gateway,
		Geocoder:   geocoder,
		API:        services.NewAPIService(apiBase, httpClient),
		HTTPClient: httpClient,
		Logger:     logger,
	})
	defer runner.Close()

	app := &cli.Command{
		Name:     "scout",
		Usage:    "Discover local events, save favorites and share them",
		Version:  "0.3.0",
		Commands: runner.register(),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("verbose") {
				logger.SetLevel(log.DebugLevel)
			}
			return ctx, nil
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			runner.Close()
			os.Exit(0)
		}
		runner.Close()
		logger.Fatalf("application error: %v", err)
	}
}
