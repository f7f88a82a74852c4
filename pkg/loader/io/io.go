package io

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/OFFIS-RIT/coherence/pkg/loader"

	"golang.org/x/sync/singleflight"
)

// FileReader reads artifacts from the local filesystem. Relative artifact
// paths are resolved against BaseDir. Results are cached, concurrent reads
// of the same artifact share one filesystem read.
type FileReader struct {
	baseDir string

	cache   map[string][]byte
	cacheMu sync.RWMutex
	group   singleflight.Group
}

// NewFileReader creates a filesystem reader rooted at baseDir.
func NewFileReader(baseDir string) *FileReader {
	return &FileReader{
		baseDir: baseDir,
		cache:   make(map[string][]byte),
	}
}

// Resolve returns the filesystem path of an artifact.
func (l *FileReader) Resolve(artifact loader.Artifact) string {
	return ResolvePath(l.baseDir, artifact.Path)
}

// ResolvePath joins a relative path onto baseDir. Absolute paths and an
// empty baseDir leave path unchanged.
func ResolvePath(baseDir, path string) string {
	if filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}

// ReadArtifact returns the artifact content. A missing file yields a
// *loader.NotFoundError.
func (l *FileReader) ReadArtifact(ctx context.Context, artifact loader.Artifact) ([]byte, error) {
	key := loader.CacheKey(artifact)

	l.cacheMu.RLock()
	if cached, ok := l.cache[key]; ok {
		l.cacheMu.RUnlock()
		return cached, nil
	}
	l.cacheMu.RUnlock()

	result, err, _ := l.group.Do(key, func() (any, error) {
		l.cacheMu.RLock()
		if cached, ok := l.cache[key]; ok {
			l.cacheMu.RUnlock()
			return cached, nil
		}
		l.cacheMu.RUnlock()

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		path := l.Resolve(artifact)
		content, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, &loader.NotFoundError{Artifact: artifact.Name, Path: path, Err: err}
			}
			return nil, err
		}

		l.cacheMu.Lock()
		l.cache[key] = content
		l.cacheMu.Unlock()

		return content, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]byte), nil
}

// MemReader serves artifacts from memory, keyed by artifact path. It is
// used to run the engine against synthetic artifact sets.
type MemReader map[string][]byte

func (m MemReader) ReadArtifact(ctx context.Context, artifact loader.Artifact) ([]byte, error) {
	content, ok := m[artifact.Path]
	if !ok {
		return nil, &loader.NotFoundError{Artifact: artifact.Name, Path: artifact.Path, Err: fs.ErrNotExist}
	}
	return content, nil
}
