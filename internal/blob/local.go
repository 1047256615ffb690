package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

var ErrInvalidKey = errors.New("invalid object key")

// Local stores objects under a directory that is served at publicURL.
type Local struct {
	dir       string
	publicURL string
}

func NewLocal(dir string, publicURL string) (*Local, error) {
	if dir == "" {
		return nil, errors.New("empty local storage dir")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}

	return &Local{dir: dir, publicURL: strings.TrimRight(publicURL, "/")}, nil
}

func (l *Local) Put(ctx context.Context, obj Object) (string, error) {
	target, err := l.pathFor(obj.Key)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := rewind(obj); err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return "", fmt.Errorf("create object dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, obj.Body); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write object: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close object: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return "", fmt.Errorf("move object in place: %w", err)
	}

	return l.publicURL + "/" + path.Clean(obj.Key), nil
}

func (l *Local) Delete(_ context.Context, url string) error {
	key, ok := strings.CutPrefix(url, l.publicURL+"/")
	if !ok {
		return fmt.Errorf("%w: %s is not served by this storage", ErrInvalidKey, url)
	}

	target, err := l.pathFor(key)
	if err != nil {
		return err
	}

	if err := os.Remove(target); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove object: %w", err)
	}
	return nil
}

func (l *Local) pathFor(key string) (string, error) {
	clean := path.Clean("/" + key)
	if key == "" || clean == "/" || clean != "/"+key {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(l.dir, filepath.FromSlash(clean)), nil
}
