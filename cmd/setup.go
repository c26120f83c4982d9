package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sioneuhlig/eventscout/internal/repositories"
	"github.com/sioneuhlig/eventscout/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupDatabase creates the config file if needed, then opens storage and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	var config *shared.Config
	if _, err := os.Stat(configPath); err == nil {
		if config, err = shared.LoadConfig(configPath); err != nil {
			r.logger.Warn("failed to load config, using defaults", "error", err)
			config = shared.DefaultConfig()
		}
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
			config = shared.DefaultConfig()
		} else {
			r.logger.Info("config file created", "path", configPath)
			if config, err = shared.LoadConfig(configPath); err != nil {
				r.logger.Warn("failed to load created config, using defaults", "error", err)
				config = shared.DefaultConfig()
			}
		}
	}
	config.ApplyEnv()
	if err := config.Validate(); err != nil {
		return err
	}

	r.logger.Info("initializing storage", "driver", config.Database.Driver, "path", config.Database.Path)

	store, err := repositories.OpenStore(config.Database, r.logger)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer store.Close()

	r.logger.Infof("setup complete for database: %v", config.Database.Path)
	r.writePlain("✓ Storage ready at %s (%s)\n", config.Database.Path, config.Database.Driver)
	return nil
}

// SetupStatus lists applied migrations and stored slots.
func (r *Runner) SetupStatus(ctx context.Context, cmd *cli.Command) error {
	cfg := r.config.Database
	r.writePlainHeader("Storage Status")
	r.writePlain("Driver: %s\n", cfg.Driver)
	r.writePlain("Path:   %s\n", cfg.Path)

	if err := r.openStore(); err != nil {
		return err
	}

	if sqlStore, ok := r.store.(*repositories.SQLiteSlotStore); ok {
		applied, err := shared.AppliedMigrations(sqlStore.DB())
		if err != nil {
			return err
		}
		r.writePlainln("Migrations:")
		for _, m := range applied {
			r.writePlain("  %04d  applied %s\n", m.Version, m.AppliedAt.Local().Format("2006-01-02 15:04:05"))
		}
	}

	keys, err := r.store.Keys("")
	if err != nil {
		return err
	}
	r.writePlainln("Slots (%d):", len(keys))
	for _, k := range keys {
		r.writePlain("  %s\n", k)
	}
	return nil
}

// SetupRollback reverts the most recent SQLite migration.
func (r *Runner) SetupRollback(ctx context.Context, cmd *cli.Command) error {
	if err := r.openStore(); err != nil {
		return err
	}
	sqlStore, ok := r.store.(*repositories.SQLiteSlotStore)
	if !ok {
		return fmt.Errorf("%w: rollback requires the sqlite driver", shared.ErrUnknownBackend)
	}
	if err := shared.RollbackMigration(sqlStore.DB()); err != nil {
		return err
	}
	r.writePlain("✓ Rolled back the latest migration\n")
	return nil
}

// setupCommand handles setup operations for storage.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Create config, open storage and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
			{
				Name:   "status",
				Usage:  "Show applied migrations and stored slots",
				Action: r.SetupStatus,
			},
			{
				Name:   "rollback",
				Usage:  "Revert the latest migration",
				Action: r.SetupRollback,
			},
		},
	}
}
