package structured

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/OFFIS-RIT/coherence/pkg/loader"
)

// Loader reads structured (JSON) artifacts through a base reader.
type Loader struct {
	reader loader.ArtifactReader
}

// NewLoader creates a Loader on top of the given reader.
func NewLoader(reader loader.ArtifactReader) *Loader {
	return &Loader{reader: reader}
}

// ReadStructured retrieves the artifact and decodes it into a value tree.
func (l *Loader) ReadStructured(ctx context.Context, artifact loader.Artifact) (any, error) {
	content, err := l.reader.ReadArtifact(ctx, artifact)
	if err != nil {
		return nil, err
	}

	value, err := ParseStructured(content)
	if err != nil {
		var pe *loader.ParseError
		if errors.As(err, &pe) {
			pe.Artifact = artifact.Name
			pe.Path = artifact.Path
		}
		return nil, err
	}
	return value, nil
}

// ParseStructured decodes a single JSON document into map[string]any,
// []any, json.Number, string, bool or nil. Whitespace-only content decodes
// to nil. Trailing data after the document is an error.
func ParseStructured(content []byte) (any, error) {
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(content))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, newParseError(content, err, dec.InputOffset())
	}

	var extra any
	if err := dec.Decode(&extra); err != io.EOF {
		offset := dec.InputOffset()
		if err == nil {
			err = errors.New("unexpected data after top-level value")
		}
		return nil, newParseError(content, err, offset)
	}

	return value, nil
}

func newParseError(content []byte, err error, fallback int64) *loader.ParseError {
	offset := fallback
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		offset = syntaxErr.Offset
	case errors.As(err, &typeErr):
		offset = typeErr.Offset
	case errors.Is(err, io.ErrUnexpectedEOF):
		offset = int64(len(content))
		err = fmt.Errorf("unexpected end of input: %w", err)
	}

	line, col := position(content, offset)
	return &loader.ParseError{Line: line, Column: col, Err: err}
}

// position converts a byte offset into a 1-based line and column.
func position(content []byte, offset int64) (int, int) {
	if offset > int64(len(content)) {
		offset = int64(len(content))
	}
	if offset < 0 {
		offset = 0
	}
	before := content[:offset]
	line := bytes.Count(before, []byte("\n")) + 1
	col := int(offset) - bytes.LastIndexByte(before, '\n')
	return line, col
}
