package token

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	xerrors "helios-service/internal/pkg/errors"
)

func newManager(t *testing.T, ttl time.Duration) *Manager {
	t.Helper()
	m, err := NewManager(Config{
		Secret:   "test-secret",
		Issuer:   "helios-service",
		Audience: "helios-admin",
		TTL:      ttl,
	})
	require.NoError(t, err)
	return m
}

func TestNewManager_RequiresSecret(t *testing.T) {
	_, err := NewManager(Config{})
	require.Error(t, err)
}

func TestGenerateVerify_RoundTrip(t *testing.T) {
	m := newManager(t, time.Hour)

	signed, jti, err := m.Generate("admin@helios.local", "Administrator")
	require.NoError(t, err)
	require.NotEmpty(t, jti)

	claims, err := m.Verify(signed)
	require.NoError(t, err)
	require.Equal(t, "admin@helios.local", claims.Email)
	require.Equal(t, "Administrator", claims.Name)
	require.Equal(t, jti, claims.ID)
}

func TestVerify_ExpiredToken(t *testing.T) {
	m := newManager(t, time.Nanosecond)

	signed, _, err := m.Generate("admin@helios.local", "")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = m.Verify(signed)
	require.True(t, errors.Is(err, xerrors.ErrSessionExpired))
}

func TestVerify_WrongSecret(t *testing.T) {
	m := newManager(t, time.Hour)
	other := newManager(t, time.Hour)
	other.secret = []byte("different-secret")

	signed, _, err := m.Generate("admin@helios.local", "")
	require.NoError(t, err)

	_, err = other.Verify(signed)
	require.True(t, errors.Is(err, xerrors.ErrUnauthorized))
}

func TestVerify_Garbage(t *testing.T) {
	m := newManager(t, time.Hour)
	_, err := m.Verify("not.a.token")
	require.True(t, errors.Is(err, xerrors.ErrUnauthorized))
}
