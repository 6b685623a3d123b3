package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("secret"))

	token, exp, err := svc.Issue("op-1", "Line 3", []string{"printer"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(12*time.Hour), exp, time.Minute)

	user, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "op-1", user.Subject)
	assert.Equal(t, "Line 3", user.Name)
	assert.Equal(t, []string{"printer"}, user.Roles)
}

func TestJWTService_RejectsForeignTokens(t *testing.T) {
	issuer := NewJWTService(DefaultJWTConfig("one"))
	token, _, err := issuer.Issue("op-1", "", nil)
	require.NoError(t, err)

	_, err = NewJWTService(DefaultJWTConfig("two")).ValidateToken(token)
	assert.Error(t, err)

	cfg := DefaultJWTConfig("one")
	cfg.Issuer = "someone-else"
	_, err = NewJWTService(cfg).ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_Expired(t *testing.T) {
	cfg := DefaultJWTConfig("secret")
	cfg.TokenTTL = -time.Minute
	svc := NewJWTService(cfg)

	token, _, err := svc.Issue("op-1", "", nil)
	require.NoError(t, err)
	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_EmptySecret(t *testing.T) {
	_, _, err := NewJWTService(DefaultJWTConfig("")).Issue("op", "", nil)
	assert.ErrorIs(t, err, ErrEmptySecret)
}
