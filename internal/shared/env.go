package shared

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables that override config values.
const (
	EnvTicketmasterKey = "TICKETMASTER_API_KEY"
	EnvGoogleKey       = "GOOGLE_MAPS_API_KEY"
	EnvDatabasePath    = "EVENTSCOUT_DB_PATH"
	EnvPort            = "PORT"
)

// LoadEnv reads the given dotenv files into the process environment.
//
// Missing files are ignored; variables already set are never overwritten.
func LoadEnv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// ApplyEnv copies recognised environment variables onto the config.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvTicketmasterKey); v != "" {
		c.Credentials.Ticketmaster.APIKey = v
	}
	if v := os.Getenv(EnvGoogleKey); v != "" {
		c.Credentials.Google.APIKey = v
	}
	if v := os.Getenv(EnvDatabasePath); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv(EnvPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
}
