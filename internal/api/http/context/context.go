package context

import "context"

type contextKey string

// usernameKey is the context key the authenticated username is stored under.
const usernameKey contextKey = "username"

// Manager passes the authenticated username through request contexts, so
// handlers do not depend on how the middleware stored it.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetUsernameToContext returns a child context carrying the username.
func (m *Manager) SetUsernameToContext(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameKey, username)
}

// GetUsernameFromContext retrieves the username set by the authentication
// middleware. The boolean reports whether one was present.
func (m *Manager) GetUsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(usernameKey).(string)
	if !ok || username == "" {
		return "", false
	}
	return username, true
}
