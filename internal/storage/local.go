package storage

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ExportArchive keeps a copy of every generated statement export on the
// local filesystem, organized by year/month.
type ExportArchive struct {
	basePath string
}

// NewExportArchive creates a new archive rooted at basePath
func NewExportArchive(basePath string) (*ExportArchive, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}
	return &ExportArchive{basePath: basePath}, nil
}

// Save writes an export and returns its relative path. The stored name
// is unique so repeated exports of the same statement never collide.
func (a *ExportArchive) Save(data []byte, filename string) (string, error) {
	dir := filepath.Join(a.basePath, time.Now().Format("2006/01"))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	ext := filepath.Ext(filename)
	uniqueFilename := fmt.Sprintf("%s%s", generateID(), ext)
	filePath := filepath.Join(dir, uniqueFilename)

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	relPath, _ := filepath.Rel(a.basePath, filePath)
	return relPath, nil
}

// Open returns an archived export for reading
func (a *ExportArchive) Open(relativePath string) (*os.File, error) {
	return os.Open(filepath.Join(a.basePath, relativePath))
}

// Exists checks if an archived export exists
func (a *ExportArchive) Exists(relativePath string) bool {
	_, err := os.Stat(filepath.Join(a.basePath, relativePath))
	return err == nil
}

// Delete removes an archived export
func (a *ExportArchive) Delete(relativePath string) error {
	return os.Remove(filepath.Join(a.basePath, relativePath))
}

// GetFullPath returns the absolute path for serving files
func (a *ExportArchive) GetFullPath(relativePath string) string {
	return filepath.Join(a.basePath, relativePath)
}

// generateID creates a unique identifier for filenames
func generateID() string {
	bytes := make([]byte, 16)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
