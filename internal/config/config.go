// internal/config/config.go
package conf

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// HistoryConfig opisuje, gdzie zapisujemy historię uruchomień demo.
type HistoryConfig struct {
	Enabled bool   `json:"enabled"`
	Driver  string `json:"driver"`        // sqlite | sqlite3 | mysql | postgres
	DSN     string `json:"dsn,omitempty"` // puste = plik memlab.db w katalogu aplikacji
}

// Główny config aplikacji
type Config struct {
	Title             string        `json:"title"`
	LogLevel          string        `json:"log_level"`
	LogToConsole      bool          `json:"log_to_console"`
	PauseAfterRun     bool          `json:"pause_after_run"`
	InputCharset      string        `json:"input_charset,omitempty"` // np. "gbk" dla starej konsoli Windows
	RunTimeoutSeconds int           `json:"run_timeout_seconds"`
	History           HistoryConfig `json:"history"`
}

const (
	DefaultTitle  = "Memory Mastery"
	DefaultDriver = "sqlite"
)

func Default() *Config {
	return &Config{
		Title:         DefaultTitle,
		LogLevel:      "info",
		PauseAfterRun: true,
		History: HistoryConfig{
			Enabled: true,
			Driver:  DefaultDriver,
		},
	}
}

func LoadOrCreate(path string) (*Config, bool, error) {
	// upewnij się, że katalog istnieje
	_ = os.MkdirAll(filepath.Dir(path), 0o755)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			if err := Save(path, cfg); err != nil {
				return nil, false, fmt.Errorf("save default config: %w", err)
			}
			return cfg, true, nil
		}
		return nil, false, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	var cfg Config
	if err := json.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, false, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Normalize(); err != nil {
		return nil, false, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, false, nil
}

func Save(path string, cfg *Config) error {
	_ = os.MkdirAll(filepath.Dir(path), 0o755)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(cfg)
}

// Normalize uzupełnia brakujące pola wartościami domyślnymi i odrzuca
// wartości, z którymi aplikacja nie ruszy.
func (c *Config) Normalize() error {
	if c.Title == "" {
		c.Title = DefaultTitle
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.RunTimeoutSeconds < 0 {
		return fmt.Errorf("run_timeout_seconds must be >= 0, got %d", c.RunTimeoutSeconds)
	}
	c.History.Driver = strings.ToLower(strings.TrimSpace(c.History.Driver))
	if c.History.Driver == "" {
		c.History.Driver = DefaultDriver
	}
	switch c.History.Driver {
	case "sqlite", "sqlite3":
	case "mysql", "postgres":
		// serwery nie mają sensownego domyślnego DSN
		if c.History.Enabled && c.History.DSN == "" {
			return fmt.Errorf("history driver %q requires dsn", c.History.Driver)
		}
	default:
		return fmt.Errorf("unknown history driver %q", c.History.Driver)
	}
	return nil
}
