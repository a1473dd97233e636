package services

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FileStorage persists uploaded image blobs under two local directories, one
// for profile images and one for blog images. Keys are opaque random names;
// the original filename only contributes its extension.
type FileStorage struct {
	ProfileDir string
	BlogDir    string
}

func NewFileStorage(profileDir, blogDir string) FileStorage {
	return FileStorage{
		ProfileDir: profileDir,
		BlogDir:    blogDir,
	}
}

// StoreProfileImage writes a profile image and returns its storage key
func (s FileStorage) StoreProfileImage(content []byte, originalName string) (string, error) {
	return s.Store(content, originalName, s.ProfileDir)
}

// StoreBlogImage writes a blog image and returns its storage key
func (s FileStorage) StoreBlogImage(content []byte, originalName string) (string, error) {
	return s.Store(content, originalName, s.BlogDir)
}

// Store writes content under directory with a collision-free generated name,
// creating the directory on first use. The returned filename keeps the
// original extension so servers and browsers can guess the media type.
func (s FileStorage) Store(content []byte, originalName, directory string) (string, error) {
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return "", fmt.Errorf("creating upload directory %s: %w", directory, err)
	}

	filename := uuid.New().String() + filepath.Ext(originalName)

	target := filepath.Join(directory, filename)
	if err := os.WriteFile(target, content, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", target, err)
	}

	return filename, nil
}

// Delete removes a stored file. A missing file is not an error, so deletes
// are idempotent.
func (s FileStorage) Delete(filename, directory string) error {
	err := os.Remove(filepath.Join(directory, filename))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting %s: %w", filename, err)
	}
	return nil
}

// Resolve composes the on-disk path for a storage key. Pure path math: it
// does not check the file exists, callers must verify readability before
// serving.
func (s FileStorage) Resolve(filename, directory string) string {
	return filepath.Join(directory, filename)
}
