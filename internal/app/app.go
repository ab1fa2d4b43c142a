// Package app wires logger, config, history database, demo registry and runner
// together for both entry points.
package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/bartek5186/memlab/internal/catalog"
	conf "github.com/bartek5186/memlab/internal/config"
	"github.com/bartek5186/memlab/internal/db"
	"github.com/bartek5186/memlab/internal/demos"
	"github.com/bartek5186/memlab/internal/logs"
	"github.com/bartek5186/memlab/internal/runner"
	"github.com/rs/zerolog"
)

const Name = "memlab"

// Options overrides locations and settings normally taken from config.json.
type Options struct {
	AppDir     string // puste = os.UserConfigDir()/memlab
	ConfigPath string // puste = AppDir/config.json
	LogLevel   string // nadpisuje log_level z configu
}

type App struct {
	Log        zerolog.Logger
	Config     *conf.Config
	Dir        string
	ConfigPath string
	LogPath    string
	Registry   *demos.Registry
	Runner     *runner.Runner
	DB         *db.Handle // nil gdy historia wyłączona

	closers []io.Closer
}

// New buduje całą aplikację. Rejestracja demo odbywa się tu, raz, zanim
// ktokolwiek zajrzy do katalogu.
func New(opts Options) (*App, error) {
	dir := opts.AppDir
	if dir == "" {
		var err error
		if dir, err = DefaultDir(); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create app dir: %w", err)
	}

	cfgPath := opts.ConfigPath
	if cfgPath == "" {
		cfgPath = filepath.Join(dir, "config.json")
	}
	cfg, firstRun, err := conf.LoadOrCreate(cfgPath)
	if err != nil {
		return nil, err
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}

	a := &App{Config: cfg, Dir: dir, ConfigPath: cfgPath, LogPath: filepath.Join(dir, "app.log")}

	log, logFile, err := logs.New(a.LogPath, cfg.LogToConsole, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	a.Log = log
	a.closers = append(a.closers, logFile)
	if firstRun {
		a.Log.Info().Str("path", cfgPath).Msg("default config created")
	}

	var store runner.Store
	if cfg.History.Enabled {
		h, err := openHistory(dir, cfg.History)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.DB = h
		a.closers = append([]io.Closer{h}, a.closers...)
		store = h
		a.Log.Info().Str("driver", h.Driver).Msg("history DB ready")
	}

	a.Registry = demos.NewRegistry(a.Log)
	catalog.Load(a.Registry)

	timeout := time.Duration(cfg.RunTimeoutSeconds) * time.Second
	a.Runner = runner.New(a.Log, a.Registry, store, timeout)

	a.Log.Info().Int("demos", a.Registry.Len()).Str("dir", dir).Msg("app ready")
	return a, nil
}

func openHistory(dir string, hc conf.HistoryConfig) (*db.Handle, error) {
	var (
		h   *db.Handle
		err error
	)
	if hc.DSN == "" && (hc.Driver == "sqlite" || hc.Driver == "sqlite3") {
		h, err = db.Open(hc.Driver, filepath.Join(dir, db.FileName))
	} else {
		h, err = db.Open(hc.Driver, hc.DSN)
	}
	if err != nil {
		return nil, fmt.Errorf("DB open error: %w", err)
	}
	if err := h.Migrate(); err != nil {
		_ = h.Close()
		return nil, fmt.Errorf("DB migrate error: %w", err)
	}
	return h, nil
}

// Close releases the database and the log file, in that order.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(base, Name), nil
}
