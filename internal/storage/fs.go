// Package storage persists derived artifacts: figures and regression
// tables.
package storage

import (
	"errors"
	"io"
	"os"
	"path/filepath"
)

// ArtifactStore writes pipeline outputs under keys like
// "figures/hits_by_exam_enem2017.png".
type ArtifactStore interface {
	Put(key string, r io.Reader) (string, error) // returns the stored path
	Get(key string) (io.ReadCloser, error)
}

type FSStore struct{ base string }

func NewFSStore(base string) (*FSStore, error) {
	if base == "" {
		return nil, errors.New("empty artifact base dir")
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, err
	}
	return &FSStore{base: base}, nil
}

func (s *FSStore) Put(key string, r io.Reader) (string, error) {
	if key == "" {
		return "", errors.New("empty key")
	}
	dst := filepath.Join(s.base, filepath.Clean(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}
	f, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}
	return dst, nil
}

func (s *FSStore) Get(key string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.base, filepath.Clean(key)))
}
