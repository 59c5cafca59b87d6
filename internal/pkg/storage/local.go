package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalStorage keeps files on disk below basePath and serves them from baseURL.
type LocalStorage struct {
	basePath string
	baseURL  string // e.g. "http://localhost:8080/uploads"
}

func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage directory: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStorage{
		basePath: abs,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// BasePath is the directory served under baseURL.
func (s *LocalStorage) BasePath() string {
	return s.basePath
}

func (s *LocalStorage) Upload(ctx context.Context, file io.Reader, p string, contentType string) (string, error) {
	rel, fullPath, err := s.resolve(p)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return rel, nil
}

func (s *LocalStorage) Delete(ctx context.Context, p string) error {
	_, fullPath, err := s.resolve(p)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *LocalStorage) GetURL(ctx context.Context, p string) (string, error) {
	rel, _, err := s.resolve(p)
	if err != nil {
		return "", err
	}
	return s.baseURL + "/" + rel, nil
}

// resolve returns the slash-separated relative path and the absolute file
// path, rejecting anything that escapes basePath.
func (s *LocalStorage) resolve(p string) (string, string, error) {
	clean := path.Clean("/" + filepath.ToSlash(p))
	rel := strings.TrimPrefix(clean, "/")
	if rel == "" || rel == "." {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}

	fullPath := filepath.Join(s.basePath, filepath.FromSlash(rel))
	within, err := filepath.Rel(s.basePath, fullPath)
	if err != nil || within == ".." || strings.HasPrefix(within, ".."+string(filepath.Separator)) {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}

	return rel, fullPath, nil
}
