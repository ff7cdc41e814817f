package model

import "context"

// ContextManager passes the authenticated username through request contexts.
type ContextManager interface {
	SetUsernameToContext(ctx context.Context, username string) context.Context
	GetUsernameFromContext(ctx context.Context) (string, bool)
}
