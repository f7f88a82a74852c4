package csv

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/OFFIS-RIT/coherence/pkg/common"
	"github.com/OFFIS-RIT/coherence/pkg/loader"
)

var utf8BOM = []byte("\xef\xbb\xbf")

// TableLoader reads tabular artifacts through a base reader and parses them
// into records.
type TableLoader struct {
	reader loader.ArtifactReader
}

// NewTableLoader creates a TableLoader on top of the given reader.
func NewTableLoader(reader loader.ArtifactReader) *TableLoader {
	return &TableLoader{reader: reader}
}

// ReadTable retrieves the artifact and parses it as CSV.
func (l *TableLoader) ReadTable(ctx context.Context, artifact loader.Artifact) ([]common.Record, error) {
	content, err := l.reader.ReadArtifact(ctx, artifact)
	if err != nil {
		return nil, err
	}

	records, err := ParseTable(content)
	if err != nil {
		var pe *loader.ParseError
		if errors.As(err, &pe) {
			pe.Artifact = artifact.Name
			pe.Path = artifact.Path
		}
		return nil, err
	}
	return records, nil
}

// ParseTable parses RFC 4180 CSV content. The first row names the fields.
// Quoted fields may contain commas, doubled quotes and newlines. Rows may be
// shorter or longer than the header. Empty content and a header without rows
// both yield zero records.
//
// Malformed quoting returns a *loader.ParseError carrying line and column;
// the caller fills in the artifact name and path.
func ParseTable(content []byte) ([]common.Record, error) {
	content = bytes.TrimPrefix(content, utf8BOM)
	if len(bytes.TrimSpace(content)) == 0 {
		return []common.Record{}, nil
	}

	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return []common.Record{}, nil
	}
	if err != nil {
		return nil, toParseError(err)
	}

	seen := make(map[string]struct{}, len(header))
	for i, name := range header {
		if _, dup := seen[name]; dup {
			line, _ := reader.FieldPos(i)
			return nil, &loader.ParseError{
				Line:   line,
				Column: 1,
				Err:    fmt.Errorf("duplicate header field %q", name),
			}
		}
		seen[name] = struct{}{}
	}

	records := make([]common.Record, 0)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, toParseError(err)
		}
		if isBlank(row) {
			continue
		}
		records = append(records, common.NewRecord(header, row))
	}

	return records, nil
}

func toParseError(err error) error {
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		return &loader.ParseError{
			Line:   csvErr.Line,
			Column: csvErr.Column,
			Err:    csvErr.Err,
		}
	}
	return &loader.ParseError{Err: err}
}

func isBlank(row []string) bool {
	for _, field := range row {
		if field != "" {
			return false
		}
	}
	return true
}
