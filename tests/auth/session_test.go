package auth_test

import (
	"testing"
	"time"

	"github.com/eest6/calendar-api/internal/auth"
	"github.com/eest6/calendar-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessionManager(ttlHours int) *auth.SessionManager {
	return auth.NewSessionManager(&config.AuthConfig{
		AccessPassword: "correct-horse",
		TokenSecret:    "test-secret-key-for-sessions",
		TokenTTL:       ttlHours,
	})
}

func TestSessionManager_CheckPassword(t *testing.T) {
	m := newTestSessionManager(12)

	assert.NoError(t, m.CheckPassword("correct-horse"))
	assert.ErrorIs(t, m.CheckPassword("battery-staple"), auth.ErrWrongPassword)
	assert.ErrorIs(t, m.CheckPassword(""), auth.ErrWrongPassword)
	assert.ErrorIs(t, m.CheckPassword("correct-horse "), auth.ErrWrongPassword)
}

func TestSessionManager_IssueAndValidate(t *testing.T) {
	m := newTestSessionManager(12)

	token, session, err := m.Issue()
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotNil(t, session)
	assert.NotEmpty(t, session.SessionID)
	assert.WithinDuration(t, time.Now().Add(12*time.Hour), session.ExpiresAt, time.Minute)

	parsed, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, session.SessionID, parsed.SessionID)
	assert.WithinDuration(t, session.ExpiresAt, parsed.ExpiresAt, time.Second)
}

func TestSessionManager_Validate_WrongSecret(t *testing.T) {
	issuer := newTestSessionManager(12)
	token, _, err := issuer.Issue()
	require.NoError(t, err)

	verifier := auth.NewSessionManager(&config.AuthConfig{
		AccessPassword: "correct-horse",
		TokenSecret:    "a-different-secret",
		TokenTTL:       12,
	})

	_, err = verifier.Validate(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestSessionManager_Validate_Expired(t *testing.T) {
	// Negative TTL issues a token that is already past its expiry
	m := newTestSessionManager(-1)

	token, _, err := m.Issue()
	require.NoError(t, err)

	_, err = m.Validate(token)
	assert.ErrorIs(t, err, auth.ErrExpiredToken)
}

func TestSessionManager_Validate_Garbage(t *testing.T) {
	m := newTestSessionManager(12)

	_, err := m.Validate("not.a.token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = m.Validate("")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
