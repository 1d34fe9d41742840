package appconfig

// FlagOverrides carries CLI flag values from cmd/tileserver's flag.FlagSet.
// A nil field means the flag was left at its zero value on the command line
// and should not override file/env/defaults (spec.md §6's CLI surface:
// --data-folder, --port, --cache-size-gb).
type FlagOverrides struct {
	DataFolder  *string
	Port        *int
	CacheSizeGB *float64
}

// Apply folds non-nil flag overrides into cfg, giving them the highest
// priority (SPEC_FULL.md §A.2).
func (c *Config) Apply(o FlagOverrides) {
	if o.DataFolder != nil {
		c.Server.DataFolder = *o.DataFolder
	}
	if o.Port != nil {
		c.Server.Port = *o.Port
	}
	if o.CacheSizeGB != nil {
		c.Cache.SizeGB = *o.CacheSizeGB
	}
}
