package dictionary

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

type FileCache struct {
	rootDir string
}

func NewFileCache(cacheDirectory string) *FileCache {
	return &FileCache{
		rootDir: cacheDirectory,
	}
}

func (f *FileCache) filePath(word string) string {
	return filepath.Join(f.rootDir, word+".json")
}

func (cache *FileCache) cache(word string, f func() ([]byte, error)) ([]byte, error) {
	localFilePath := cache.filePath(word)
	if _, err := os.Stat(localFilePath); err == nil {
		contents, err := cache.read(word)
		if err != nil {
			return nil, fmt.Errorf("cache.read > %w", err)
		}
		return contents, nil
	}

	contents, err := f()
	if err != nil {
		return nil, fmt.Errorf("fetch dictionary response > %w", err)
	}

	if err := os.MkdirAll(cache.rootDir, 0755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll > %w", err)
	}
	file, err := os.Create(localFilePath)
	if err != nil {
		return nil, fmt.Errorf("os.Create > %w", err)
	}
	defer func() {
		_ = file.Close()
	}()
	if _, err := file.Write(contents); err != nil {
		return contents, fmt.Errorf("file.Write > %w", err)
	}
	return contents, nil
}

func (cache *FileCache) read(word string) ([]byte, error) {
	file, err := os.Open(cache.filePath(word))
	if err != nil {
		return nil, fmt.Errorf("os.Open > %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	contents, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("io.ReadAll > %w", err)
	}
	return contents, nil
}
