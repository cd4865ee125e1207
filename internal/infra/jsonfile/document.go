// Package jsonfile persists whole JSON documents on disk. Every write replaces
// the file through a temp file and rename, so a concurrent Load sees either the
// old or the new document, never a partial one. There is no cross-process locking.
package jsonfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"tce-quiz-dashboard/internal/domain"
)

// Load reads the document at path. A missing file yields def without creating
// anything. An empty or malformed file is overwritten with def and the returned
// error wraps domain.ErrStorageCorrupt; def is still returned and usable.
func Load[T any](path string, def T) (T, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return def, nil
	}
	if err != nil {
		return def, fmt.Errorf("read %s: %w", path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return reset(path, def, errors.New("empty file"))
	}

	var doc T
	if err := json.Unmarshal(data, &doc); err != nil {
		return reset(path, def, err)
	}
	return doc, nil
}

// Save writes doc as indented JSON, replacing whatever was at path.
func Save[T any](path string, doc T) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

func reset[T any](path string, def T, cause error) (T, error) {
	log.Printf("invalid JSON in %s, resetting to default: %v", path, cause)
	if err := Save(path, def); err != nil {
		return def, fmt.Errorf("%w: %s: %v (reset failed: %v)", domain.ErrStorageCorrupt, path, cause, err)
	}
	return def, fmt.Errorf("%w: %s reset to default: %v", domain.ErrStorageCorrupt, path, cause)
}
