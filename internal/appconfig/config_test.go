package appconfig

import "testing"

func TestDefaultConfig_PassesValidate(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got: %v", err)
	}
}

func TestValidate_RejectsBadPort(t *testing.T) {
	cfg := defaultConfig()
	cfg.Server.Port = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for port 0")
	}

	cfg.Server.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for port 70000")
	}
}

func TestValidate_RejectsEmptyDataFolder(t *testing.T) {
	cfg := defaultConfig()
	cfg.Server.DataFolder = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty data folder")
	}
}

func TestValidate_RejectsBadLogLevel(t *testing.T) {
	cfg := defaultConfig()
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for bad log level")
	}
}

func TestValidate_RejectsBadRAMFraction(t *testing.T) {
	cfg := defaultConfig()
	cfg.Cache.RAMFraction = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero ram fraction")
	}

	cfg.Cache.RAMFraction = 1.5
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for ram fraction > 1")
	}
}

func TestApply_OverridesOnlySetFlags(t *testing.T) {
	cfg := defaultConfig()
	port := 9000
	cfg.Apply(FlagOverrides{Port: &port})

	if cfg.Server.Port != 9000 {
		t.Errorf("Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Server.DataFolder != "./data" {
		t.Errorf("DataFolder = %q, want unchanged default", cfg.Server.DataFolder)
	}
}

func TestCacheSizeBytes(t *testing.T) {
	cfg := defaultConfig()
	cfg.Cache.SizeGB = 2
	if got, want := cfg.CacheSizeBytes(), int64(2<<30); got != want {
		t.Errorf("CacheSizeBytes() = %d, want %d", got, want)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"server_port", "server.port"},
		{"cache_size_gb", "cache.size_gb"},
		{"logging_level", "logging.level"},
	}
	for _, tt := range tests {
		if got := envTransformFunc(tt.in); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
