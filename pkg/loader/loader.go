package loader

import (
	"context"
	"errors"
	"fmt"
)

type ArtifactKind string

const (
	ArtifactKindTable      ArtifactKind = "table"
	ArtifactKindStructured ArtifactKind = "structured"
)

// Artifact names one derived file consumed by a run. Path is resolved by the
// ArtifactReader, usually relative to a data directory.
type Artifact struct {
	Name string
	Path string
	Kind ArtifactKind
}

// NewTableArtifact creates an Artifact of kind ArtifactKindTable.
func NewTableArtifact(name, path string) Artifact {
	return Artifact{Name: name, Path: path, Kind: ArtifactKindTable}
}

// NewStructuredArtifact creates an Artifact of kind ArtifactKindStructured.
func NewStructuredArtifact(name, path string) Artifact {
	return Artifact{Name: name, Path: path, Kind: ArtifactKindStructured}
}

// ArtifactReader returns the raw bytes of an artifact. Implementations may
// read from disk or from memory; they must return an error wrapping
// ErrArtifactNotFound when the artifact does not exist.
type ArtifactReader interface {
	ReadArtifact(ctx context.Context, artifact Artifact) ([]byte, error)
}

// CacheKey identifies an artifact in reader caches.
func CacheKey(artifact Artifact) string {
	return string(artifact.Kind) + ":" + artifact.Path
}

var (
	// ErrArtifactNotFound is wrapped by every error caused by a missing artifact.
	ErrArtifactNotFound = errors.New("artifact not found")
	// ErrArtifactParse is wrapped by every error caused by malformed content.
	ErrArtifactParse = errors.New("artifact parse error")
)

// NotFoundError reports a declared artifact whose path does not exist.
type NotFoundError struct {
	Artifact string
	Path     string
	Err      error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("artifact %q not found at %s", e.Artifact, e.Path)
}

func (e *NotFoundError) Unwrap() []error {
	return []error{ErrArtifactNotFound, e.Err}
}

// ParseError reports content that does not match the expected grammar.
// Line and Column are 1-based; zero means unknown.
type ParseError struct {
	Artifact string
	Path     string
	Line     int
	Column   int
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("artifact %q (%s): parse error at line %d, column %d: %v",
		e.Artifact, e.Path, e.Line, e.Column, e.Err)
}

func (e *ParseError) Unwrap() []error {
	return []error{ErrArtifactParse, e.Err}
}
