// Package setting provides the database operations behind the gorm key-value medium.
package setting

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/GoMailComposer/GoMailComposer/internal/db/models"
)

const (
	nameQueryPattern    = "name = ?"
	expiredQueryPattern = "expires_at <> 0 AND expires_at <= ?"
)

var (
	// ErrSettingNotFound is returned when a setting is not found.
	ErrSettingNotFound = errors.New("setting not found")
	// ErrSettingNameEmpty is returned when a setting is accessed with an empty name.
	ErrSettingNameEmpty = errors.New("setting name cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves a setting by its name.
func Get(db *gorm.DB, name string) (*models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if name == "" {
		return nil, ErrSettingNameEmpty
	}

	var setting models.Setting
	result := db.Where(nameQueryPattern, name).First(&setting)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}
		return nil, result.Error
	}

	return &setting, nil
}

// Set creates or replaces a setting by name in a single statement, so a
// failed write leaves the previous value untouched.
func Set(db *gorm.DB, name string, value []byte, expiresAt int64) error {
	if db == nil {
		return ErrDBNil
	}
	if name == "" {
		return ErrSettingNameEmpty
	}

	setting := &models.Setting{
		Name:      name,
		Value:     value,
		ExpiresAt: expiresAt,
	}

	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at", "updated_at"}),
	}).Create(setting)

	return result.Error
}

// Delete deletes a setting by name. Deleting a missing setting is not an error.
func Delete(db *gorm.DB, name string) error {
	if db == nil {
		return ErrDBNil
	}
	if name == "" {
		return ErrSettingNameEmpty
	}

	return db.Where(nameQueryPattern, name).Delete(&models.Setting{}).Error
}

// Reset deletes all settings.
func Reset(db *gorm.DB) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Setting{}).Error
}

// PurgeExpired deletes all settings expired at unix time now and returns how many were removed.
func PurgeExpired(db *gorm.DB, now int64) (int64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	result := db.Where(expiredQueryPattern, now).Delete(&models.Setting{})

	return result.RowsAffected, result.Error
}
