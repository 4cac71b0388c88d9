package storage

import (
	"context"
	"errors"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// DiskStore keeps media in a local directory, for development setups
// without a bucket.
type DiskStore struct {
	dir     string
	baseURL string
}

func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *DiskStore) path(key string) (string, error) {
	clean := filepath.Clean("/" + key)
	if clean == "/" {
		return "", errors.New("storage: empty key")
	}
	return filepath.Join(s.dir, filepath.FromSlash(clean)), nil
}

func (s *DiskStore) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	p, err := s.path(key)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return "", err
	}

	f, err := os.Create(p)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(p)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(p)
		return "", err
	}

	return s.baseURL + "/" + strings.TrimLeft(key, "/"), nil
}

func (s *DiskStore) Get(ctx context.Context, key string) (Object, error) {
	p, err := s.path(key)
	if err != nil {
		return Object{}, err
	}

	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Object{}, ErrNotFound
		}
		return Object{}, err
	}

	contentType := mime.TypeByExtension(filepath.Ext(p))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return Object{Body: f, ContentType: contentType}, nil
}

func (s *DiskStore) Delete(ctx context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}

	err = os.Remove(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
