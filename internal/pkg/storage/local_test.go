package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_UploadAndURL(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(dir, "http://localhost:8080/uploads/")
	require.NoError(t, err)

	rel, err := s.Upload(context.Background(), strings.NewReader("photo"), "attendance/2025-06-02/u1.jpg", "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "attendance/2025-06-02/u1.jpg", rel)

	data, err := os.ReadFile(filepath.Join(dir, "attendance", "2025-06-02", "u1.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "photo", string(data))

	url, err := s.GetURL(context.Background(), rel)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/attendance/2025-06-02/u1.jpg", url)

	require.NoError(t, s.Delete(context.Background(), rel))
	require.NoError(t, s.Delete(context.Background(), rel), "deleting twice is fine")
	_, err = os.Stat(filepath.Join(dir, "attendance", "2025-06-02", "u1.jpg"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStorage_StaysInsideBasePath(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(filepath.Join(dir, "uploads"), "http://localhost/uploads")
	require.NoError(t, err)

	rel, err := s.Upload(context.Background(), strings.NewReader("x"), "../../etc/passwd", "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "etc/passwd", rel)
	assert.FileExists(t, filepath.Join(dir, "uploads", "etc", "passwd"))

	_, err = s.Upload(context.Background(), strings.NewReader("x"), "..", "text/plain")
	assert.ErrorIs(t, err, ErrInvalidPath)
}
