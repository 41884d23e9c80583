package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenService_RoundTrip(t *testing.T) {
	svc := NewSessionTokenService("secret", time.Hour)

	id, token, expires, err := svc.Issue()
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, time.Minute)

	got, err := svc.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestSessionTokenService_Expired(t *testing.T) {
	svc := NewSessionTokenService("secret", time.Hour)
	issued := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }

	_, token, _, err := svc.Issue()
	require.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, err = svc.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSessionTokenService_WrongSecret(t *testing.T) {
	_, token, _, err := NewSessionTokenService("one", time.Hour).Issue()
	require.NoError(t, err)

	_, err = NewSessionTokenService("two", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSessionTokenService_Garbage(t *testing.T) {
	_, err := NewSessionTokenService("secret", time.Hour).Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
