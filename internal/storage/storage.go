// Package storage opens the key-value medium the settings document is kept in.
package storage

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/storage/memory/v2"
	"github.com/gofiber/storage/mysql/v2"
	"github.com/gofiber/storage/postgres/v3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/GoMailComposer/GoMailComposer/internal/config"
	"github.com/GoMailComposer/GoMailComposer/internal/db/dsn"
	"github.com/GoMailComposer/GoMailComposer/internal/db/gormstore"
)

// ErrConfigNil is returned if no config was passed to New.
var ErrConfigNil = errors.New("storage config is nil")

// Storage is the subset of the gofiber storage interface the daemon relies on.
type Storage interface {
	Get(key string) ([]byte, error)
	Set(key string, val []byte, exp time.Duration) error
	Delete(key string) error
	Reset() error
	Close() error
}

// New opens the medium selected by cfg.Storage.Driver.
func New(cfg *config.Config) (Storage, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	var (
		s   Storage
		err error
	)

	switch cfg.Storage.Driver {
	case config.DriverMemory, "":
		s = memory.New()
	case config.DriverMySQL:
		s, err = connect(func() Storage {
			return mysql.New(mysql.Config{
				ConnectionURI: dsn.CreateFor(config.EngineMySQL, cfg.DB),
				Table:         cfg.Storage.Table,
				Reset:         cfg.Storage.Reset,
			})
		})
	case config.DriverPostgres:
		s, err = connect(func() Storage {
			return postgres.New(postgres.Config{
				ConnectionURI: dsn.CreateFor(config.EnginePostgres, cfg.DB),
				Table:         cfg.Storage.Table,
				Reset:         cfg.Storage.Reset,
			})
		})
	case config.DriverGorm:
		s, err = openGorm(cfg)
	default:
		return nil, errors.Wrapf(config.ErrUnknownStorageDriver, "%q", cfg.Storage.Driver)
	}

	if err != nil {
		return nil, err
	}

	log.Info().Str("driver", cfg.Storage.Driver).Msg("settings storage opened")

	return s, nil
}

// connect turns the panics of the gofiber sql storages into errors.
func connect(open func() Storage) (s Storage, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to connect storage: %v", r) //nolint:err113
		}
	}()

	return open(), nil
}

func openGorm(cfg *config.Config) (Storage, error) {
	var dialector gorm.Dialector

	switch cfg.DB.GormEngine {
	case config.EngineSQLite, "":
		dialector = sqlite.Open(dsn.CreateFor(config.EngineSQLite, cfg.DB))
	case config.EngineMySQL:
		dialector = gormmysql.Open(dsn.Create(cfg))
	case config.EnginePostgres:
		dialector = gormpostgres.Open(dsn.Create(cfg))
	default:
		return nil, errors.Wrapf(config.ErrUnknownGormEngine, "%q", cfg.DB.GormEngine)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect database")
	}

	s, err := gormstore.New(db)
	if err != nil {
		return nil, errors.Wrap(err, "failed to migrate database")
	}

	if cfg.Storage.Reset {
		if err = s.Reset(); err != nil {
			return nil, errors.Wrap(err, "failed to reset storage")
		}
	}

	return s, nil
}
