package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/theirongolddev/upsell/internal/model"
)

// Config holds all upsell configuration.
type Config struct {
	Defaults   model.Input      `toml:"defaults"`
	Appearance AppearanceConfig `toml:"appearance"`
	Report     ReportConfig     `toml:"report"`
	Server     ServerConfig     `toml:"server"`
	Email      EmailConfig      `toml:"email"`
}

// AppearanceConfig holds theme and number formatting settings.
type AppearanceConfig struct {
	Theme    string `toml:"theme" env:"UPSELL_THEME"`
	Locale   string `toml:"locale" env:"UPSELL_LOCALE"`
	Currency string `toml:"currency" env:"UPSELL_CURRENCY"`
}

// ReportConfig controls the exported PDF.
type ReportConfig struct {
	CompanyName string `toml:"company_name" env:"UPSELL_COMPANY_NAME"`
	FileName    string `toml:"file_name" env:"UPSELL_REPORT_FILE"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr           string   `toml:"addr" env:"UPSELL_SERVER_ADDR"`
	AllowedOrigins []string `toml:"allowed_origins,omitempty" env:"UPSELL_ALLOWED_ORIGINS" envSeparator:","`
}

// EmailConfig holds settings for the simulated email delivery.
type EmailConfig struct {
	From            string `toml:"from" env:"UPSELL_EMAIL_FROM"`
	SimulateDelayMS int    `toml:"simulate_delay_ms" env:"UPSELL_EMAIL_DELAY_MS"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Defaults: model.DefaultInput(),
		Appearance: AppearanceConfig{
			Theme:    "evergreen",
			Locale:   "en-IN",
			Currency: "INR",
		},
		Report: ReportConfig{
			CompanyName: "Your Company Name",
			FileName:    "SaaS_Upsell_Analysis.pdf",
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8790",
		},
		Email: EmailConfig{
			From:            "reports@upsell.local",
			SimulateDelayMS: 1500,
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "upsell")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "upsell")
}

// StateDir returns the XDG-compliant directory for runtime files such as
// the server pid file and log.
func StateDir() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "upsell")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "upsell")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist, then
// applies environment overrides.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadDotEnv loads KEY=VALUE pairs from the given files (".env" when none
// are given) into the process environment. Missing files are skipped and
// variables that are already set win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overrides cfg with any UPSELL_* variables that are set.
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
