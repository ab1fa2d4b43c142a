package db

import (
	"fmt"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	sqlite3 "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const FileName = "memlab.db"

type Handle struct {
	DB     *gorm.DB
	Driver string
	Path   string // DSN dla serwerów, ścieżka pliku dla sqlite
}

// OpenAt otwiera domyślną bazę sqlite (czyste Go) w katalogu aplikacji.
func OpenAt(dir string) (*Handle, error) {
	return Open("sqlite", filepath.Join(dir, FileName))
}

// Open wybiera dialektor po nazwie drivera z configu.
func Open(driver, dsn string) (*Handle, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite", "":
		driver = "sqlite"
		dialector = sqlite.Open(dsn)
	case "sqlite3":
		// wymaga cgo (mattn/go-sqlite3)
		dialector = sqlite3.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unknown db driver %q", driver)
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // włącz Info jeśli chcesz verbose SQL
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	return &Handle{DB: gdb, Driver: driver, Path: dsn}, nil
}

func (h *Handle) Close() error {
	sqlDB, err := h.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
