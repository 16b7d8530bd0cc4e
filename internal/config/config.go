package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultCatalogURL   = "https://itunes.apple.com/search"
	DefaultMprisService = "org.mpris.MediaPlayer2.mpv"
	DefaultHTTPTimeout  = 10
	DefaultFrameMillis  = 50

	// SearchLimit is sent with every catalog request; results are never
	// truncated client side.
	SearchLimit = 8

	// PreviewLength is the nominal length of a catalog audio preview.
	PreviewLength = 30 * time.Second

	envPrefix = "PLATTER"
	appName   = "platter"
)

const (
	DriverMPRIS  = "mpris"
	DriverSilent = "silent"
)

type Config struct {
	Catalog CatalogConfig `mapstructure:"catalog"`
	Audio   AudioConfig   `mapstructure:"audio"`
	UI      UIConfig      `mapstructure:"ui"`
	Log     LogConfig     `mapstructure:"log"`
}

type CatalogConfig struct {
	URL         string `mapstructure:"url"`
	HTTPTimeout int    `mapstructure:"http_timeout"` // seconds
}

type AudioConfig struct {
	Driver       string `mapstructure:"driver"`
	MprisService string `mapstructure:"mpris_service"`
}

type UIConfig struct {
	FrameInterval int  `mapstructure:"frame_interval"` // milliseconds
	HideHelp      bool `mapstructure:"hide_help"`
}

type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

func (c *CatalogConfig) Timeout() time.Duration {
	if c.HTTPTimeout <= 0 {
		return DefaultHTTPTimeout * time.Second
	}
	return time.Duration(c.HTTPTimeout) * time.Second
}

func (u *UIConfig) Frame() time.Duration {
	if u.FrameInterval <= 0 {
		return DefaultFrameMillis * time.Millisecond
	}
	return time.Duration(u.FrameInterval) * time.Millisecond
}

func Default() *Config {
	return &Config{
		Catalog: CatalogConfig{
			URL:         DefaultCatalogURL,
			HTTPTimeout: DefaultHTTPTimeout,
		},
		Audio: AudioConfig{
			Driver:       DriverMPRIS,
			MprisService: DefaultMprisService,
		},
		UI: UIConfig{
			FrameInterval: DefaultFrameMillis,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func (c *Config) Validate() error {
	switch c.Audio.Driver {
	case DriverMPRIS:
		if c.Audio.MprisService == "" {
			return errors.New("audio.mpris_service must be set for the mpris driver")
		}
	case DriverSilent:
	default:
		return fmt.Errorf("unknown audio driver %q (want %s or %s)", c.Audio.Driver, DriverMPRIS, DriverSilent)
	}
	if c.Catalog.URL == "" {
		return errors.New("catalog.url must not be empty")
	}
	return nil
}

// Load layers defaults, an optional TOML file and PLATTER_* environment
// variables. An explicit path must exist; the search path may be empty.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("toml")

	defaults := Default()
	v.SetDefault("catalog.url", defaults.Catalog.URL)
	v.SetDefault("catalog.http_timeout", defaults.Catalog.HTTPTimeout)
	v.SetDefault("audio.driver", defaults.Audio.Driver)
	v.SetDefault("audio.mpris_service", defaults.Audio.MprisService)
	v.SetDefault("ui.frame_interval", defaults.UI.FrameInterval)
	v.SetDefault("ui.hide_help", defaults.UI.HideHelp)
	v.SetDefault("log.file", defaults.Log.File)
	v.SetDefault("log.level", defaults.Log.Level)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		if dir := configDirectory(); dir != "" {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func configDirectory() string {
	// xdg config home takes priority
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}
