// Package models contains database model definitions.
package models

// Setting is one key-value entry of the persistence medium.
// ExpiresAt is a unix timestamp in seconds; 0 means the entry never expires.
type Setting struct {
	ID        uint64 `gorm:"primaryKey"`
	Name      string `gorm:"size:191;uniqueIndex"`
	Value     []byte
	ExpiresAt int64 `gorm:"index;not null;default:0"`
	UpdatedAt int64 `gorm:"autoUpdateTime"`
}

// Expired reports whether the entry is past its expiry at unix time now.
func (s *Setting) Expired(now int64) bool {
	return s.ExpiresAt != 0 && s.ExpiresAt <= now
}
