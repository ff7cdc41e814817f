package model

import (
	"context"
	"io"
)

// Storage persists profile photos. Save returns the reference stored on the
// account: object-storage backends return an absolute URL, the local backend
// returns a file name resolved by the HTTP layer.
type Storage interface {
	Save(ctx context.Context, name string, reader io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, ref string) error
}
