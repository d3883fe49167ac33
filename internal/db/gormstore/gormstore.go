// Package gormstore exposes the settings table as a key-value medium
// compatible with the gofiber storage interface.
package gormstore

import (
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoMailComposer/GoMailComposer/internal/db/controller/setting"
	"github.com/GoMailComposer/GoMailComposer/internal/db/models"
)

// Storage is a gorm backed key-value medium.
type Storage struct {
	db  *gorm.DB
	now func() time.Time
}

// New migrates the settings table and returns a medium on top of db.
func New(db *gorm.DB) (*Storage, error) {
	if db == nil {
		return nil, setting.ErrDBNil
	}

	if err := db.AutoMigrate(&models.Setting{}); err != nil {
		return nil, err
	}

	return &Storage{db: db, now: time.Now}, nil
}

// Get returns the value stored under key.
// Missing and expired keys yield nil without error.
func (s *Storage) Get(key string) ([]byte, error) {
	if len(key) == 0 {
		return nil, nil
	}

	entry, err := setting.Get(s.db, key)
	if err != nil {
		if errors.Is(err, setting.ErrSettingNotFound) {
			return nil, nil
		}

		return nil, err
	}

	if entry.Expired(s.now().Unix()) {
		return nil, nil
	}

	return entry.Value, nil
}

// Set stores val under key. A zero exp means no expiration.
func (s *Storage) Set(key string, val []byte, exp time.Duration) error {
	if len(key) == 0 || len(val) == 0 {
		return nil
	}

	var expiresAt int64
	if exp > 0 {
		expiresAt = s.now().Add(exp).Unix()
	}

	return setting.Set(s.db, key, val, expiresAt)
}

// Delete removes key.
func (s *Storage) Delete(key string) error {
	if len(key) == 0 {
		return nil
	}

	return setting.Delete(s.db, key)
}

// Reset removes all keys.
func (s *Storage) Reset() error {
	return setting.Reset(s.db)
}

// Close purges expired entries and closes the underlying connection pool.
func (s *Storage) Close() error {
	if removed, err := setting.PurgeExpired(s.db, s.now().Unix()); err != nil {
		log.Warn().Err(err).Msg("failed to purge expired settings")
	} else if removed > 0 {
		log.Debug().Int64("removed", removed).Msg("purged expired settings")
	}

	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}
