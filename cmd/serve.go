package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sioneuhlig/eventscout/internal/server"
	"github.com/sioneuhlig/eventscout/internal/services"
	"github.com/sioneuhlig/eventscout/internal/shared"
	"github.com/urfave/cli/v3"
)

// Serve runs the event proxy until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	cfg := r.config.Server
	if cmd.IsSet("host") {
		cfg.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		cfg.Port = cmd.Int("port")
	}
	if cmd.IsSet("static") {
		cfg.StaticDir = cmd.String("static")
	}

	apiKey := r.config.Credentials.Ticketmaster.APIKey
	if apiKey == "" {
		r.logger.Warn("no ticketmaster api key configured; every search will fail", "env", shared.EnvTicketmasterKey)
	}
	if cfg.StaticDir != "" {
		if _, err := os.Stat(cfg.StaticDir); err != nil {
			return fmt.Errorf("%w: static dir: %v", shared.ErrInvalidConfig, err)
		}
	}

	logger := shared.WithLogger(r.logger, "component", "proxy")
	router := server.NewProxyRouter(server.ProxyOpts{
		Upstream:  services.NewAPIService(r.config.Credentials.Ticketmaster.BaseURL, r.httpClient),
		APIKey:    apiKey,
		StaticDir: cfg.StaticDir,
		RateLimit: cfg.RateLimit,
		Logger:    logger,
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	r.writePlain("🚀 Proxy running at http://%s\n", cfg.Addr())
	return server.NewServer(cfg.Addr(), router, logger).ListenAndServe(ctx)
}

// serveCommand runs the HTTP proxy.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the event proxy that holds the API key",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Listen host",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Listen port",
			},
			&cli.StringFlag{
				Name:  "static",
				Usage: "Directory of static files to serve at /",
			},
		},
		Action: r.Serve,
	}
}
