package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"karolbroda.com/platter/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	chdir(t, t.TempDir())

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Catalog.URL != config.DefaultCatalogURL {
		t.Errorf("Catalog.URL: got %q, want %q", cfg.Catalog.URL, config.DefaultCatalogURL)
	}
	if cfg.Audio.Driver != config.DriverMPRIS {
		t.Errorf("Audio.Driver: got %q, want %q", cfg.Audio.Driver, config.DriverMPRIS)
	}
	if got := cfg.UI.Frame(); got != 50*time.Millisecond {
		t.Errorf("UI.Frame: got %v", got)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "platter.toml")
	contents := `
[catalog]
url = "http://localhost:9999/search"
http_timeout = 3

[audio]
driver = "silent"
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("PLATTER_LOG_LEVEL", "debug")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Catalog.URL != "http://localhost:9999/search" {
		t.Errorf("Catalog.URL: got %q", cfg.Catalog.URL)
	}
	if got := cfg.Catalog.Timeout(); got != 3*time.Second {
		t.Errorf("Catalog.Timeout: got %v", got)
	}
	if cfg.Audio.Driver != config.DriverSilent {
		t.Errorf("Audio.Driver: got %q", cfg.Audio.Driver)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level: got %q, want debug from env", cfg.Log.Level)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr bool
	}{
		{"defaults", func(*config.Config) {}, false},
		{"silent driver", func(c *config.Config) { c.Audio.Driver = config.DriverSilent }, false},
		{"unknown driver", func(c *config.Config) { c.Audio.Driver = "vinyl" }, true},
		{"mpris without service", func(c *config.Config) { c.Audio.MprisService = "" }, true},
		{"empty catalog url", func(c *config.Config) { c.Catalog.URL = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate: got err=%v, wantErr=%v", err, tt.wantErr)
			}
		})
	}
}

// chdir switches the working directory for the test and restores it on
// cleanup (equivalent of testing.T.Chdir, which needs go1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
