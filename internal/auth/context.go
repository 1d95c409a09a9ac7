package auth

import "context"

type contextKey string

const sessionContextKey contextKey = "sessionContext"

// WithSession adds the session to the context
func WithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, session)
}

// FromContext extracts the session from the context
func FromContext(ctx context.Context) (*Session, bool) {
	session, ok := ctx.Value(sessionContextKey).(*Session)
	return session, ok
}
