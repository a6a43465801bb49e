package webclient

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noteleaf/noteleaf/models"
)

func TestFileSessionStore_RoundTrip(t *testing.T) {
	store := NewFileSessionStore(filepath.Join(t.TempDir(), "nested", "session.json"))

	created := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(models.WebSessionRecord{
		PhoneURL:  "http://192.168.1.23:8090",
		Token:     "pairing-token",
		CreatedAt: created,
	}))

	record, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "http://192.168.1.23:8090", record.PhoneURL)
	assert.Equal(t, "pairing-token", record.Token)
	assert.True(t, record.CreatedAt.Equal(created))
}

func TestFileSessionStore_LoadMissing(t *testing.T) {
	store := NewFileSessionStore(filepath.Join(t.TempDir(), "session.json"))

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoStoredSession)
}

func TestFileSessionStore_CorruptFileTreatedAsMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileSessionStore(path).Load()
	assert.ErrorIs(t, err, ErrNoStoredSession)
}

func TestFileSessionStore_IncompleteRecordTreatedAsMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"phoneUrl":"http://x:1"}`), 0o600))

	_, err := NewFileSessionStore(path).Load()
	assert.ErrorIs(t, err, ErrNoStoredSession)
}

func TestFileSessionStore_Wipe(t *testing.T) {
	store := NewFileSessionStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, store.Save(models.WebSessionRecord{PhoneURL: "http://x:1", Token: "tok"}))

	require.NoError(t, store.Wipe())
	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoStoredSession)

	// повторная очистка не ошибка
	assert.NoError(t, store.Wipe())
}
