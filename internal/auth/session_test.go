package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndVerify(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, err := m.Sign("admin@empresa.com")
	require.NoError(t, err)

	s, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin@empresa.com", s.Email)
	assert.Equal(t, "admin", s.Role)
}

func TestVerify_RejectsWrongSecret(t *testing.T) {
	token, err := NewManager("secret-a", time.Hour).Sign("admin@empresa.com")
	require.NoError(t, err)

	_, err = NewManager("secret-b", time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestVerify_RejectsExpiredToken(t *testing.T) {
	m := NewManager("test-secret", -time.Minute)

	token, err := m.Sign("admin@empresa.com")
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestVerify_RejectsGarbage(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	_, err := m.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("admin123")
	require.NoError(t, err)

	assert.True(t, CheckPassword(hash, "admin123"))
	assert.False(t, CheckPassword(hash, "other"))
}
