package storage

import (
	"context"
	"errors"
	"io"
)

var (
	// ErrExists is returned by Put when the key is already taken.
	ErrExists = errors.New("object already exists")
	// ErrNotExist is returned by Get for unknown keys.
	ErrNotExist = errors.New("object does not exist")
	// ErrInvalidKey rejects keys that are not a single local path element.
	ErrInvalidKey = errors.New("invalid object key")
)

type Storage interface {
	// Put writes data under key and fails with ErrExists instead of overwriting.
	Put(ctx context.Context, key string, data io.Reader) (int64, error)
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes key; a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	// Location describes where key lives, e.g. an absolute path or s3 URL.
	Location(key string) string
}
