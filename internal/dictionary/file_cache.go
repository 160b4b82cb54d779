package dictionary

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileCache keeps raw API responses as <rootDir>/<word>.json.
type FileCache struct {
	rootDir string
}

func NewFileCache(cacheDirectory string) *FileCache {
	return &FileCache{
		rootDir: cacheDirectory,
	}
}

func (cache *FileCache) filePath(word string) string {
	return filepath.Join(cache.rootDir, word+".json")
}

// cache returns the cached contents for word, or stores and returns the result of fetch.
func (cache *FileCache) cache(word string, fetch func() ([]byte, error)) ([]byte, error) {
	contents, err := os.ReadFile(cache.filePath(word))
	if err == nil {
		return contents, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("os.ReadFile > %w", err)
	}

	contents, err = fetch()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cache.rootDir, 0755); err != nil {
		return contents, fmt.Errorf("os.MkdirAll > %w", err)
	}
	if err := os.WriteFile(cache.filePath(word), contents, 0644); err != nil {
		return contents, fmt.Errorf("os.WriteFile > %w", err)
	}
	return contents, nil
}
