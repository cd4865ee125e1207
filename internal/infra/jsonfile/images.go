package jsonfile

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"tce-quiz-dashboard/internal/domain"
)

// ImagesDir is the directory, relative to the data dir, holding question images.
const ImagesDir = "question_images"

// ImageStore writes uploaded question images under <root>/question_images.
// Files keep the upload's base name, so a later upload with the same name
// replaces the earlier file.
type ImageStore struct {
	root string
}

func NewImageStore(root string) *ImageStore {
	return &ImageStore{root: root}
}

// Dir returns the on-disk directory served as /question_images.
func (s *ImageStore) Dir() string {
	return filepath.Join(s.root, ImagesDir)
}

// Save stores the image and returns the relative path recorded on the question.
func (s *ImageStore) Save(_ context.Context, name string, r io.Reader) (string, error) {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == ".." || base == "/" || base == "" {
		return "", fmt.Errorf("%w: image file name", domain.ErrValidation)
	}
	if err := os.MkdirAll(s.Dir(), 0o755); err != nil {
		return "", fmt.Errorf("create image dir: %w", err)
	}

	f, err := os.Create(filepath.Join(s.Dir(), base))
	if err != nil {
		return "", fmt.Errorf("create image: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return "", fmt.Errorf("write image: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close image: %w", err)
	}
	return path.Join(ImagesDir, base), nil
}
