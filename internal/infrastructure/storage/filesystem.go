package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"NewsRisk/internal/ports"
)

// FileStore persists artifacts as plain files under a base directory.
// Writes overwrite; there is no locking and no atomic rename.
type FileStore struct {
	baseDir string
}

var _ ports.ArtifactStore = (*FileStore)(nil)

// NewFileStore roots the store at baseDir ("." when empty).
func NewFileStore(baseDir string) *FileStore {
	if baseDir == "" {
		baseDir = "."
	}
	return &FileStore{baseDir: baseDir}
}

// Path returns the on-disk location of an artifact.
func (s *FileStore) Path(dir, name string) string {
	return filepath.Join(s.baseDir, dir, name)
}

// EnsureDir creates a stage directory if missing.
func (s *FileStore) EnsureDir(dir string) error {
	if err := os.MkdirAll(filepath.Join(s.baseDir, dir), 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}
	return nil
}

// WriteJSON marshals v compactly and writes it to dir/name.
func (s *FileStore) WriteJSON(dir, name string, v any) (string, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal %s: %w", name, err)
	}
	return s.write(dir, name, payload)
}

// WriteJSONIndent validates raw as JSON and writes it indented by four spaces, key order preserved.
func (s *FileStore) WriteJSONIndent(dir, name string, raw []byte) (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "    "); err != nil {
		return "", fmt.Errorf("indent %s: %w", name, err)
	}
	return s.write(dir, name, buf.Bytes())
}

// WriteText writes text verbatim.
func (s *FileStore) WriteText(dir, name, text string) (string, error) {
	return s.write(dir, name, []byte(text))
}

// ReadText loads a text artifact.
func (s *FileStore) ReadText(dir, name string) (string, error) {
	raw, err := os.ReadFile(s.Path(dir, name))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	return string(raw), nil
}

// ReadJSON decodes a JSON artifact into v.
func (s *FileStore) ReadJSON(dir, name string, v any) error {
	raw, err := os.ReadFile(s.Path(dir, name))
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// List returns regular file names in dir, sorted.
func (s *FileStore) List(dir string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.baseDir, dir))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *FileStore) write(dir, name string, payload []byte) (string, error) {
	if err := s.EnsureDir(dir); err != nil {
		return "", err
	}
	path := s.Path(dir, name)
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return path, nil
}
