package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArowuTest/rsu-vesting/pkg/jwt"
)

func TestSessionService_StartResolve(t *testing.T) {
	svc := NewSessionService(jwt.NewSessionTokenService("secret", time.Hour))

	session, err := svc.Start()
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.NotEmpty(t, session.Token)

	id, err := svc.Resolve(session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.ID, id)
}

func TestSessionService_ResolveInvalid(t *testing.T) {
	svc := NewSessionService(jwt.NewSessionTokenService("secret", time.Hour))

	_, err := svc.Resolve("")
	assert.ErrorIs(t, err, ErrInvalidSession)

	_, err = svc.Resolve("garbage")
	assert.ErrorIs(t, err, ErrInvalidSession)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}
