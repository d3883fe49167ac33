package settings

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/gofiber/storage/memory/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errMediumDown = errors.New("medium unavailable")

// fakeMedium is a map backed medium that can be told to fail.
type fakeMedium struct {
	data    map[string][]byte
	getErr  error
	setErr  error
	setCall int
}

func newFakeMedium() *fakeMedium {
	return &fakeMedium{data: map[string][]byte{}}
}

func (m *fakeMedium) Get(key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}

	return m.data[key], nil
}

func (m *fakeMedium) Set(key string, val []byte, _ time.Duration) error {
	m.setCall++
	if m.setErr != nil {
		return m.setErr
	}

	m.data[key] = val

	return nil
}

func (m *fakeMedium) Delete(key string) error {
	delete(m.data, key)
	return nil
}

// fixedClock returns a clock that advances one second per call.
func fixedClock(start time.Time) func() time.Time {
	current := start.Add(-time.Second)

	return func() time.Time {
		current = current.Add(time.Second)
		return current
	}
}

var epoch = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func withoutTimestamps(s Settings) Settings {
	s.CreatedAt = time.Time{}
	s.UpdatedAt = time.Time{}

	return s
}

func TestDefault(t *testing.T) {
	s := Default(epoch)

	assert.Equal(t, ProviderWebhook, s.EmailProvider)
	assert.Empty(t, s.Webhook.URL)
	assert.NotNil(t, s.Webhook.Headers)
	assert.Empty(t, s.Webhook.Headers)
	assert.Equal(t, BodyMapping{Recipients: "to", CCList: "cc", Subject: "subject", HTMLBody: "html"}, s.Webhook.BodyMapping)
	assert.Equal(t, DefaultSMTPPort, s.SMTP.Port)
	assert.False(t, s.SMTP.Secure)
	assert.Empty(t, s.SMTP.Host)
	assert.Empty(t, s.SMTP.Username)
	assert.Empty(t, s.SMTP.Password)
	assert.Empty(t, s.SMTP.FromEmail)
	assert.Empty(t, s.SMTP.FromName)
	assert.Equal(t, epoch, s.CreatedAt)
	assert.Equal(t, s.CreatedAt, s.UpdatedAt)
}

func TestDefault_JSONShape(t *testing.T) {
	data, err := json.Marshal(Default(epoch))
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, "webhook", doc["emailProvider"])
	assert.Equal(t, "2026-03-14T09:26:53Z", doc["createdAt"])

	webhook, ok := doc["webhook"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []any{}, webhook["headers"])
	assert.Contains(t, webhook, "bodyMapping")

	smtp, ok := doc["smtp"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 587, smtp["port"], 0)
	assert.Contains(t, smtp, "fromEmail")
}

func TestStore_Get_Recovers(t *testing.T) {
	testCases := []struct {
		name   string
		stored []byte
		getErr error
	}{
		{name: "missing value"},
		{name: "empty value", stored: []byte{}},
		{name: "whitespace value", stored: []byte("  \n ")},
		{name: "malformed json", stored: []byte("{not json")},
		{name: "truncated json", stored: []byte(`{"emailProvider":"smtp","smtp":{"port":`)},
		{name: "json null", stored: []byte("null")},
		{name: "json array", stored: []byte(`[1,2,3]`)},
		{name: "json string", stored: []byte(`"webhook"`)},
		{name: "wrong field type", stored: []byte(`{"smtp":{"port":"587"}}`)},
		{name: "read error", getErr: errMediumDown},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			medium := newFakeMedium()
			medium.getErr = tc.getErr
			if tc.stored != nil {
				medium.data[StorageKey] = tc.stored
			}

			store := New(medium, WithClock(fixedClock(epoch)))

			got := store.Get()

			assert.Equal(t, withoutTimestamps(Default(epoch)), withoutTimestamps(got))
			assert.Equal(t, epoch, got.CreatedAt)
			assert.Equal(t, got.CreatedAt, got.UpdatedAt)
			assert.Zero(t, medium.setCall, "a read must not persist the default")
		})
	}
}

func TestStore_Get_NilMedium(t *testing.T) {
	store := New(nil)

	got := store.Get()

	assert.Equal(t, ProviderWebhook, got.EmailProvider)
	assert.Equal(t, got.CreatedAt, got.UpdatedAt)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestStore_Get_TwiceOnEmptyMedium(t *testing.T) {
	store := New(newFakeMedium(), WithClock(fixedClock(epoch)))

	first := store.Get()
	second := store.Get()

	assert.Equal(t, withoutTimestamps(first), withoutTimestamps(second))
	assert.True(t, second.CreatedAt.After(first.CreatedAt))
}

func TestStore_Get_FillsMissingFields(t *testing.T) {
	medium := newFakeMedium()
	medium.data[StorageKey] = []byte(`{"emailProvider":"smtp","smtp":{"host":"mail.example.com"},` +
		`"createdAt":"2025-01-02T03:04:05Z","updatedAt":"2025-01-02T03:04:06Z"}`)

	store := New(medium, WithClock(fixedClock(epoch)))

	got := store.Get()

	assert.Equal(t, ProviderSMTP, got.EmailProvider)
	assert.Equal(t, "mail.example.com", got.SMTP.Host)
	assert.Equal(t, DefaultSMTPPort, got.SMTP.Port)
	assert.Equal(t, "to", got.Webhook.BodyMapping.Recipients)
	assert.Equal(t, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), got.CreatedAt)
	assert.Equal(t, time.Date(2025, 1, 2, 3, 4, 6, 0, time.UTC), got.UpdatedAt)
}

func TestStore_Save_RoundTrip(t *testing.T) {
	store := New(memory.New(), WithClock(fixedClock(epoch)))

	candidate := Settings{
		EmailProvider: ProviderSMTP,
		Webhook: Webhook{
			URL: "https://hooks.example.com/mail",
			Headers: []Header{
				{Key: "Authorization", Value: "Bearer abc"},
				{Key: "X-Trace", Value: "1"},
			},
			BodyMapping: BodyMapping{Recipients: "to", CCList: "cc", Subject: "title", HTMLBody: "body"},
		},
		SMTP: SMTP{
			Host:      "smtp.example.com",
			Port:      465,
			Secure:    true,
			Username:  "mailer",
			Password:  "secret",
			FromEmail: "noreply@example.com",
			FromName:  "Mailer",
		},
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	saved, err := store.Save(candidate)
	require.NoError(t, err)

	expected := candidate
	expected.UpdatedAt = epoch

	assert.Equal(t, expected, saved)
	assert.Equal(t, candidate.CreatedAt, saved.CreatedAt, "createdAt must be kept")

	loaded := store.Get()
	assert.Equal(t, saved, loaded)
}

func TestStore_Save_FullReplace(t *testing.T) {
	medium := newFakeMedium()
	store := New(medium, WithClock(fixedClock(epoch)))

	first := store.Get()
	first.Webhook.Headers = []Header{{Key: "X-One", Value: "1"}}
	_, err := store.Save(first)
	require.NoError(t, err)

	second := Default(epoch)
	second.EmailProvider = ProviderSMTP
	_, err = store.Save(second)
	require.NoError(t, err)

	loaded := store.Get()
	assert.Equal(t, ProviderSMTP, loaded.EmailProvider)
	assert.Empty(t, loaded.Webhook.Headers, "save replaces the whole document")
}

func TestStore_Save_Failures(t *testing.T) {
	testCases := []struct {
		name   string
		medium Medium
	}{
		{name: "nil medium", medium: nil},
		{name: "write error", medium: &fakeMedium{data: map[string][]byte{}, setErr: errMediumDown}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := New(tc.medium, WithClock(fixedClock(epoch)))

			saved, err := store.Save(Default(epoch))

			require.Error(t, err)
			require.ErrorIs(t, err, ErrPersistence)
			assert.Equal(t, "failed to save settings", err.Error())
			assert.Equal(t, Settings{}, saved)
		})
	}
}

func TestStore_Save_FailureKeepsPreviousDocument(t *testing.T) {
	medium := newFakeMedium()
	store := New(medium, WithClock(fixedClock(epoch)))

	original := Default(epoch)
	original.Webhook.URL = "https://one.example.com"
	_, err := store.Save(original)
	require.NoError(t, err)

	medium.setErr = errMediumDown

	changed := original
	changed.Webhook.URL = "https://two.example.com"
	_, err = store.Save(changed)
	require.ErrorIs(t, err, ErrPersistence)

	assert.Equal(t, "https://one.example.com", store.Get().Webhook.URL)
}

func TestStore_Save_DoesNotRetry(t *testing.T) {
	medium := &fakeMedium{data: map[string][]byte{}, setErr: errMediumDown}
	store := New(medium)

	_, err := store.Save(Default(epoch))
	require.ErrorIs(t, err, ErrPersistence)
	assert.Equal(t, 1, medium.setCall)
}

func TestStore_Save_PermissiveProviderBranches(t *testing.T) {
	store := New(newFakeMedium(), WithClock(fixedClock(epoch)))

	candidate := Default(epoch)
	candidate.EmailProvider = ProviderWebhook
	candidate.SMTP.Host = "smtp.example.com"

	saved, err := store.Save(candidate)
	require.NoError(t, err)
	assert.Equal(t, "smtp.example.com", saved.SMTP.Host)
	assert.Equal(t, ProviderWebhook, saved.EmailProvider)
}

func TestWithClock_NilKeepsDefault(t *testing.T) {
	store := New(newFakeMedium(), WithClock(nil))
	require.NotNil(t, store.now)

	now := store.now()
	assert.Equal(t, time.UTC, now.Location())
	assert.Equal(t, now, now.Truncate(time.Millisecond))
}
