// Package storage holds the media stores submissions upload images and
// videos to.
package storage

import (
	"context"
	"errors"
	"io"
)

var ErrNotFound = errors.New("storage: object not found")

// Object is a stored media object being read back.
type Object struct {
	Body        io.ReadCloser
	ContentType string
}

type Store interface {
	// Put stores body under key and returns the public URL of the object.
	Put(ctx context.Context, key, contentType string, body io.Reader) (string, error)
	Get(ctx context.Context, key string) (Object, error)
	Delete(ctx context.Context, key string) error
}
