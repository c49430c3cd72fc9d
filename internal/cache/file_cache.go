package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/buildy/tablemaker/internal/grid"
	"github.com/buildy/tablemaker/internal/jsonio"
)

// FileCache stores the payload as a JSON file on disk.
type FileCache struct {
	path string
}

// NewFileCache creates a cache backed by the given file path.
func NewFileCache(path string) *FileCache {
	return &FileCache{path: path}
}

func (c *FileCache) Load(_ context.Context) (*jsonio.LegacyPayload, bool, error) {
	data, err := os.ReadFile(c.path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading payload cache: %w", err)
	}
	var p jsonio.LegacyPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, false, &grid.ParseError{Err: err}
	}
	return &p, true, nil
}

func (c *FileCache) Save(_ context.Context, payload *jsonio.LegacyPayload) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding payload cache: %w", err)
	}
	if dir := filepath.Dir(c.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating payload cache dir: %w", err)
		}
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("writing payload cache: %w", err)
	}
	return nil
}
