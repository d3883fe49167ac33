package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
)

// StorageKey is the key the settings document is stored under.
const StorageKey = "email-composer-settings"

var (
	// ErrPersistence is returned when the settings document could not be written.
	// The underlying cause is logged, not returned.
	ErrPersistence = errors.New("failed to save settings")

	errNotObject = errors.New("stored value is not a JSON object")
	errNoMedium  = errors.New("no storage medium configured")
)

// Medium is the key-value capability the store persists into.
// A missing key must yield a nil value and a nil error.
type Medium interface {
	Get(key string) ([]byte, error)
	Set(key string, val []byte, exp time.Duration) error
	Delete(key string) error
}

// Store reads and writes the settings document.
type Store struct {
	medium Medium
	now    func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces the clock used to stamp documents.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a settings store on top of the given medium.
func New(medium Medium, opts ...Option) *Store {
	s := &Store{
		medium: medium,
		now:    defaultClock,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// defaultClock returns the current UTC time at JSON timestamp precision.
func defaultClock() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// Get returns the stored settings document.
// It never fails: any read or decode problem is logged and a default document
// is returned instead. The default is not written back.
func (s *Store) Get() Settings {
	now := s.now()

	if s.medium == nil {
		recovered(reasonNoMedium, errNoMedium)
		return Default(now)
	}

	raw, err := s.medium.Get(StorageKey)
	if err != nil {
		recovered(reasonRead, err)
		return Default(now)
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		// nothing stored yet, not worth a warning
		readsRecovered.WithLabelValues(reasonMissing).Inc()
		log.Debug().Str("key", StorageKey).Msg("no settings stored, using defaults")

		return Default(now)
	}

	if raw[0] != '{' {
		recovered(reasonDecode, errNotObject)
		return Default(now)
	}

	// decode on top of the defaults so fields missing from older documents are filled
	doc := Default(now)
	if err = json.Unmarshal(raw, &doc); err != nil {
		recovered(reasonDecode, err)
		return Default(now)
	}

	return doc
}

// Save replaces the stored document with candidate, stamped with a fresh UpdatedAt.
// The candidate's own UpdatedAt is ignored. On success the persisted document is returned.
func (s *Store) Save(candidate Settings) (Settings, error) {
	merged := candidate
	merged.UpdatedAt = s.now()

	if s.medium == nil {
		return Settings{}, failed(errNoMedium)
	}

	data, err := json.Marshal(merged)
	if err != nil {
		return Settings{}, failed(err)
	}

	if err = s.medium.Set(StorageKey, data, 0); err != nil {
		return Settings{}, failed(err)
	}

	log.Debug().
		Str("key", StorageKey).
		Str("email_provider", string(merged.EmailProvider)).
		Time("updated_at", merged.UpdatedAt).
		Msg("settings saved")

	return merged, nil
}

func recovered(reason string, err error) {
	readsRecovered.WithLabelValues(reason).Inc()

	log.Warn().
		Err(err).
		Str("key", StorageKey).
		Str("reason", reason).
		Msg("failed to load settings, using defaults")
}

func failed(err error) error {
	saveFailures.Inc()

	log.Error().
		Err(err).
		Str("key", StorageKey).
		Msg("failed to save settings")

	return ErrPersistence
}
