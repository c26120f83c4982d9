package shared

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Database    DatabaseConfig    `toml:"database"`
	Server      ServerConfig      `toml:"server"`
	Search      SearchConfig      `toml:"search"`
	History     HistoryConfig     `toml:"history"`
	Log         LogConfig         `toml:"log"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	Ticketmaster TicketmasterConfig `toml:"ticketmaster"`
	Google       GoogleConfig       `toml:"google"`
}

// TicketmasterConfig contains Discovery API settings.
type TicketmasterConfig struct {
	APIKey         string  `toml:"api_key"`
	BaseURL        string  `toml:"base_url"`
	ProxyURL       string  `toml:"proxy_url"`
	RateLimit      float64 `toml:"rate_limit"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
}

// GoogleConfig contains Geocoding API settings.
type GoogleConfig struct {
	APIKey     string `toml:"api_key"`
	GeocodeURL string `toml:"geocode_url"`
}

// DatabaseConfig contains storage settings. Driver is "sqlite" or "badger".
type DatabaseConfig struct {
	Driver       string `toml:"driver"`
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ServerConfig contains HTTP proxy settings.
type ServerConfig struct {
	Host      string `toml:"host"`
	Port      int    `toml:"port"`
	StaticDir string `toml:"static_dir"`
	RateLimit int    `toml:"rate_limit"`
}

// Addr returns host:port for [http.Server].
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SearchConfig holds the defaults applied to searches that omit a value.
type SearchConfig struct {
	Location       string `toml:"location"`
	FallbackRegion string `toml:"fallback_region"`
	Radius         string `toml:"radius"`
	Unit           string `toml:"unit"`
	Size           int    `toml:"size"`
	Sort           string `toml:"sort"`
}

// HistoryConfig bounds the persisted history lists.
type HistoryConfig struct {
	SearchCap int `toml:"search_cap"`
	ViewedCap int `toml:"viewed_cap"`
}

// LogConfig controls the logger level.
type LogConfig struct {
	Level string `toml:"level"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the embedded defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrMissingConfig, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks the values the rest of the application relies on.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite", "badger":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Database.Driver)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("%w: database.path is empty", ErrInvalidConfig)
	}
	if c.History.SearchCap <= 0 || c.History.ViewedCap <= 0 {
		return fmt.Errorf("%w: history caps must be positive", ErrInvalidConfig)
	}
	if c.Search.Size <= 0 || c.Search.Size > 200 {
		return fmt.Errorf("%w: search.size must be between 1 and 200", ErrInvalidConfig)
	}
	return nil
}
