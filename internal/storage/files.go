// Package storage persists binary content fetched from the transport:
// announcement images under the images directory and document files under
// per-category subdirectories. File names carry a timestamp plus a random
// suffix so concurrent uploads never collide.
package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/google/uuid"
)

type FileStore struct {
	imagesDir    string
	documentsDir string
}

func NewFileStore(imagesDir, documentsDir string) *FileStore {
	return &FileStore{imagesDir: imagesDir, documentsDir: documentsDir}
}

// SaveImage decodes photo bytes in any supported format, re-encodes them as
// PNG and writes the result under the images directory. Returns the stored
// path.
func (s *FileStore) SaveImage(data []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	if err := os.MkdirAll(s.imagesDir, 0o755); err != nil {
		return "", fmt.Errorf("create images dir: %w", err)
	}

	name := fmt.Sprintf("image_%s_%s.png", time.Now().Format("20060102_150405"), shortID())
	path := filepath.Join(s.imagesDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("encode image: %w", err)
	}
	return path, nil
}

// SaveDocument writes document bytes under documents/<category>/, keeping the
// original file name but prefixing a random id against collisions.
func (s *FileStore) SaveDocument(category, fileName string, data []byte) (string, error) {
	dir := filepath.Join(s.documentsDir, safeSegment(category))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create documents dir: %w", err)
	}

	path := filepath.Join(dir, shortID()+"_"+safeSegment(fileName))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write document file: %w", err)
	}
	return path, nil
}

// Remove deletes one stored file. A missing file is logged and reported as
// removed anyway; cleanup is best-effort.
func (s *FileStore) Remove(path string) {
	if err := os.Remove(path); err != nil {
		slog.Warn("remove stored file", "path", path, "error", err)
	}
}

func shortID() string {
	return uuid.NewString()[:8]
}

// safeSegment strips path separators so stored names stay inside their
// directory.
func safeSegment(name string) string {
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" {
		name = "file"
	}
	return name
}
