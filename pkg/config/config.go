// Package config loads application configuration from a TOML file.
//
// Configuration is optional: every field has a working default, and a
// missing file is not an error. The file location is resolved in order:
//
//  1. The path passed to [Load], when non-empty
//  2. $REGIONTREE_CONFIG
//  3. ~/.config/regiontree/config.toml
//
// Example file:
//
//	[cache]
//	dir = "~/.cache/regiontree"
//	redis_url = "redis://localhost:6379/0"
//
//	[server]
//	addr = ":8080"
//	request_timeout = "30s"
//
//	[store]
//	mongo_uri = "mongodb://localhost:27017"
//	database = "regiontree"
//
//	[partition]
//	resolution = 0.05
//	area_tol = 0.001
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the full application configuration.
type Config struct {
	Cache     CacheConfig     `toml:"cache"`
	Server    ServerConfig    `toml:"server"`
	Store     StoreConfig     `toml:"store"`
	Partition PartitionConfig `toml:"partition"`
}

// CacheConfig configures the pipeline cache backend.
type CacheConfig struct {
	// Dir is the file cache directory. Empty selects the default under
	// the user cache dir.
	Dir string `toml:"dir"`

	// RedisURL selects the Redis backend when non-empty.
	RedisURL string `toml:"redis_url"`

	// Disabled turns caching off entirely.
	Disabled bool `toml:"disabled"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr           string   `toml:"addr"`
	RequestTimeout duration `toml:"request_timeout"`
}

// StoreConfig configures the run store.
type StoreConfig struct {
	MongoURI string `toml:"mongo_uri"`
	Database string `toml:"database"`
}

// PartitionConfig overrides the calibrated partition defaults. Zero
// values keep the defaults.
type PartitionConfig struct {
	Resolution float64 `toml:"resolution"`
	AreaTol    float64 `toml:"area_tol"`
	SideTol    float64 `toml:"side_tol"`
	FlipWindow float64 `toml:"flip_window"`
	SnapWindow float64 `toml:"snap_window"`
	RootID     string  `toml:"root_id"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:           ":8080",
			RequestTimeout: duration{30 * time.Second},
		},
		Store: StoreConfig{
			Database: "regiontree",
		},
	}
}

// Load reads the configuration file at path, or the default location
// when path is empty. A missing file yields [Default] without error; a
// malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("REGIONTREE_CONFIG")
	}
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(home, ".config", "regiontree", "config.toml")
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// CacheDir returns the configured file cache directory, falling back to
// the user cache dir.
func (c Config) CacheDir() string {
	if c.Cache.Dir != "" {
		return c.Cache.Dir
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return ".regiontree-cache"
	}
	return filepath.Join(base, "regiontree")
}

// RequestTimeout returns the server request timeout.
func (c Config) RequestTimeout() time.Duration {
	return c.Server.RequestTimeout.Duration
}

// duration wraps time.Duration for TOML decoding from strings like
// "30s".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}
