package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Storage keeps deliverable artifacts on local disk, one directory per
// deliverable, under uuid file names.
type Storage struct {
	basePath    string
	maxFileSize int64
}

// NewStorage creates the base directory and returns the store.
func NewStorage(basePath string, maxFileSize int64) (*Storage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &Storage{basePath: basePath, maxFileSize: maxFileSize}, nil
}

// SaveFile stores an uploaded artifact and returns its relative path.
func (s *Storage) SaveFile(file *multipart.FileHeader, deliverableID uuid.UUID) (string, error) {
	if file.Size > s.maxFileSize {
		return "", fmt.Errorf("file size exceeds maximum allowed size")
	}

	fileName := uuid.New().String() + filepath.Ext(file.Filename)
	relPath := filepath.Join("deliverables", deliverableID.String(), fileName)
	fullPath := filepath.Join(s.basePath, relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create file directory: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return relPath, nil
}

// Open returns a reader for a stored artifact.
func (s *Storage) Open(relPath string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.basePath, relPath))
}

// DeleteFile removes a stored artifact. A missing file is not an error.
func (s *Storage) DeleteFile(relPath string) error {
	err := os.Remove(filepath.Join(s.basePath, relPath))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
