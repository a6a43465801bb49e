package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── HashPassword / VerifyPassword ─────────────────────────────────────────────

func TestHashPassword_RoundTrip(t *testing.T) {
	svc := NewPasswordService()

	encoded, err := svc.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$"))

	ok, err := svc.VerifyPassword("correct horse battery staple", encoded)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyPassword_WrongPassword(t *testing.T) {
	svc := NewPasswordService()

	encoded, err := svc.HashPassword("right")
	require.NoError(t, err)

	ok, err := svc.VerifyPassword("wrong", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPassword_SaltsDiffer(t *testing.T) {
	svc := NewPasswordService()

	first, err := svc.HashPassword("same password")
	require.NoError(t, err)
	second, err := svc.HashPassword("same password")
	require.NoError(t, err)

	// A fresh random salt per call means identical passwords never share
	// a digest.
	assert.NotEqual(t, first, second)
}

func TestVerifyPassword_MalformedDigest(t *testing.T) {
	svc := NewPasswordService()

	tests := []struct {
		name    string
		encoded string
	}{
		{"empty", ""},
		{"not a digest", "plaintext"},
		{"wrong algorithm", "$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$ZGlnZXN0"},
		{"missing sections", "$argon2id$v=19$m=65536,t=1,p=4"},
		{"bad salt encoding", "$argon2id$v=19$m=65536,t=1,p=4$!!!$ZGlnZXN0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := svc.VerifyPassword("anything", tt.encoded)
			assert.Error(t, err)
			assert.False(t, ok)
		})
	}
}

// ── GeneratePairingToken ──────────────────────────────────────────────────────

func TestGeneratePairingToken_Unique(t *testing.T) {
	svc := NewPasswordService()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := svc.GeneratePairingToken()
		require.NoError(t, err)
		assert.False(t, seen[token], "token collision")
		seen[token] = true
	}
}

func TestGeneratePairingToken_URLSafe(t *testing.T) {
	svc := NewPasswordService()

	token, err := svc.GeneratePairingToken()
	require.NoError(t, err)

	// 32 bytes base64url without padding is 43 characters.
	assert.Len(t, token, 43)
	assert.NotContains(t, token, "+")
	assert.NotContains(t, token, "/")
	assert.NotContains(t, token, "=")
}
