package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/eest6/calendar-api/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrWrongPassword = errors.New("wrong password")
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token has expired")
)

// Session is the authenticated state carried by a valid token. The gate has
// no user accounts; a session only proves the holder knew the password.
type Session struct {
	SessionID string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// SessionManager checks the access password and issues/validates the signed
// session tokens that replace it for the rest of the visit.
type SessionManager struct {
	config *config.AuthConfig
	now    func() time.Time
}

// NewSessionManager creates a new session manager
func NewSessionManager(cfg *config.AuthConfig) *SessionManager {
	return &SessionManager{
		config: cfg,
		now:    time.Now,
	}
}

// CheckPassword compares the submitted password against the configured one.
// Constant-time comparison to prevent timing attacks.
func (m *SessionManager) CheckPassword(password string) error {
	if subtle.ConstantTimeCompare([]byte(password), []byte(m.config.AccessPassword)) != 1 {
		return ErrWrongPassword
	}
	return nil
}

// Issue creates a new signed session token.
func (m *SessionManager) Issue() (string, *Session, error) {
	now := m.now()
	session := &Session{
		SessionID: uuid.NewString(),
		IssuedAt:  now,
		ExpiresAt: now.Add(m.config.TokenTTLDuration()),
	}

	claims := jwt.RegisteredClaims{
		ID:        session.SessionID,
		Subject:   "calendar-session",
		IssuedAt:  jwt.NewNumericDate(session.IssuedAt),
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.config.TokenSecret))
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, session, nil
}

// Validate parses and verifies a session token.
func (m *SessionManager) Validate(tokenString string) (*Session, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.config.TokenSecret), nil
	}, jwt.WithTimeFunc(m.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	session := &Session{SessionID: claims.ID}
	if claims.IssuedAt != nil {
		session.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}

	return session, nil
}
