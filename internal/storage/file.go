package storage

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/gosimple/slug"
	"github.com/pkg/errors"
)

// File stores each key as <dir>/<slug(key)>.json.
type File struct {
	mu  sync.Mutex
	dir string
}

func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create storage dir %s", dir)
	}
	return &File{dir: dir}, nil
}

func (f *File) path(key string) (string, error) {
	name := slug.Make(key)
	if name == "" {
		return "", errors.Errorf("storage: key %q has no usable file name", key)
	}
	return filepath.Join(f.dir, name+".json"), nil
}

func (f *File) Get(_ context.Context, key string) ([]byte, error) {
	p, err := f.path(key)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "read %s", p)
	}
	return data, nil
}

// Set writes to a temp file in the same directory and renames it over the
// target, so a crash mid-write never leaves a half-written entry.
func (f *File) Set(_ context.Context, key string, value []byte) error {
	p, err := f.path(key)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	tmp, err := os.CreateTemp(f.dir, ".slot-*")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrapf(err, "write %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "close %s", tmpName)
	}
	if err := os.Rename(tmpName, p); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "rename into %s", p)
	}
	return nil
}

func (f *File) Delete(_ context.Context, key string) error {
	p, err := f.path(key)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "remove %s", p)
	}
	return nil
}
