// Package appconfig loads server configuration from layered sources: built-in
// defaults, an optional YAML file, environment variables (prefix
// TILESERVER_), and finally CLI flags (spec.md §6, folded in last by the
// caller so they win over everything else).
package appconfig

import (
	"time"

	"github.com/pspoerri/geotiles/internal/tilecache"
)

// Config holds everything the tile server needs to start.
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Cache   CacheConfig   `koanf:"cache"`
	Logging LoggingConfig `koanf:"logging"`
}

// ServerConfig holds HTTP listener and data-source settings.
type ServerConfig struct {
	// DataFolder is the root of the raster tree the catalogue is built from
	// (spec.md §3).
	DataFolder string `koanf:"data_folder"`
	// Port the HTTP server listens on.
	Port int `koanf:"port"`
	// Host the HTTP server binds to.
	Host string `koanf:"host"`
	// ReadTimeout bounds how long a single request may take end to end.
	ReadTimeout time.Duration `koanf:"read_timeout"`
}

// CacheConfig holds tile-cache sizing settings (spec.md §4.7).
type CacheConfig struct {
	// SizeGB is the fixed tile-cache byte budget, in gigabytes. Zero means
	// "auto-size from a fraction of system RAM" (see RAMFraction).
	SizeGB float64 `koanf:"size_gb"`
	// RAMFraction is the fraction of system RAM to budget for the tile
	// cache when SizeGB is zero (internal/tilecache.AutoSizeBytes).
	RAMFraction float64 `koanf:"ram_fraction"`
}

// LoggingConfig controls zerolog output (SPEC_FULL.md §A.1).
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`
	// Console switches to zerolog.ConsoleWriter human-readable output
	// instead of the JSON default.
	Console bool `koanf:"console"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			DataFolder:  "./data",
			Port:        8000,
			Host:        "0.0.0.0",
			ReadTimeout: 30 * time.Second,
		},
		Cache: CacheConfig{
			SizeGB:      2,
			RAMFraction: 0.25,
		},
		Logging: LoggingConfig{
			Level:   "info",
			Console: false,
		},
	}
}

// CacheSizeBytes returns the configured cache byte budget. A zero SizeGB
// auto-sizes from RAMFraction, falling back to tilecache.DefaultMaxBytes
// when RAM detection fails.
func (c *Config) CacheSizeBytes() int64 {
	if c.Cache.SizeGB == 0 {
		if budget, ok := tilecache.AutoSizeBytes(c.Cache.RAMFraction); ok {
			return budget
		}
		return tilecache.DefaultMaxBytes
	}
	return int64(c.Cache.SizeGB * float64(1<<30))
}
