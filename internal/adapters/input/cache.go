package input

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Cache stores fetched puzzle inputs on disk, one file per day.
// An empty directory disables caching.
type Cache struct {
	dir string
}

// NewCache creates a cache rooted at dir
func NewCache(dir string) *Cache {
	return &Cache{dir: dir}
}

// Enabled reports whether the cache has a directory
func (c *Cache) Enabled() bool {
	return c != nil && c.dir != ""
}

// Path returns the cache file for one puzzle day
func (c *Cache) Path(year, day int) string {
	return filepath.Join(c.dir, fmt.Sprintf("%d-day%02d.txt", year, day))
}

// Get returns the cached input, if any
func (c *Cache) Get(year, day int) (string, bool, error) {
	if !c.Enabled() {
		return "", false, nil
	}
	data, err := os.ReadFile(c.Path(year, day))
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read cached input: %w", err)
	}
	return string(data), true, nil
}

// Put writes the input through a temporary file so readers never see a partial file
func (c *Cache) Put(year, day int, body string) error {
	if !c.Enabled() {
		return nil
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(c.dir, ".input-*")
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	if _, err := tmp.WriteString(body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.Path(year, day)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to store cache file: %w", err)
	}
	return nil
}
