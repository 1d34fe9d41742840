package appconfig

import "fmt"

// Validate checks that the loaded configuration is usable before the
// catalogue scan and HTTP listener start.
func (c *Config) Validate() error {
	if c.Server.DataFolder == "" {
		return fmt.Errorf("server.data_folder must not be empty")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Cache.SizeGB < 0 {
		return fmt.Errorf("cache.size_gb must not be negative, got %v", c.Cache.SizeGB)
	}
	if c.Cache.RAMFraction <= 0 || c.Cache.RAMFraction > 1 {
		return fmt.Errorf("cache.ram_fraction must be in (0, 1], got %v", c.Cache.RAMFraction)
	}
	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of trace|debug|info|warn|error, got %q", c.Logging.Level)
	}
	return nil
}
