package csv

import (
	"context"
	"errors"
	"testing"

	"github.com/OFFIS-RIT/coherence/pkg/loader"
	lio "github.com/OFFIS-RIT/coherence/pkg/loader/io"

	"github.com/google/go-cmp/cmp"
)

func TestParseTable(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []map[string]string
	}{
		{
			name:  "plain rows",
			input: "concept_a,concept_b,count\nagent,bot,50\nagent,human,30\n",
			want: []map[string]string{
				{"concept_a": "agent", "concept_b": "bot", "count": "50"},
				{"concept_a": "agent", "concept_b": "human", "count": "30"},
			},
		},
		{
			name:  "quoted delimiter, quote and newline",
			input: "doc_id,text_excerpt\np1,\"hello, \"\"world\"\"\nsecond line\"\n",
			want: []map[string]string{
				{"doc_id": "p1", "text_excerpt": "hello, \"world\"\nsecond line"},
			},
		},
		{
			name:  "short row leaves trailing fields absent",
			input: "submolt,posts,comments\ngeneral,10\n",
			want: []map[string]string{
				{"submolt": "general", "posts": "10"},
			},
		},
		{
			name:  "bom and crlf",
			input: "\xef\xbb\xbfscope,lang,count\r\nposts,en,3\r\n",
			want: []map[string]string{
				{"scope": "posts", "lang": "en", "count": "3"},
			},
		},
		{
			name:  "header only",
			input: "concept_a,concept_b,count\n",
			want:  []map[string]string{},
		},
		{
			name:  "empty file",
			input: "",
			want:  []map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := ParseTable([]byte(tt.input))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := make([]map[string]string, 0, len(records))
			for _, r := range records {
				got = append(got, r.Values)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("records mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseTableKeepsHeaderOrder(t *testing.T) {
	records, err := ParseTable([]byte("b,a,c\n1,2,3\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"b", "a", "c"}, records[0].Fields); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTableErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		minLine int
	}{
		{name: "unterminated quote", input: "doc_id,text\np1,\"never closed\n", minLine: 2},
		{name: "bare quote", input: "doc_id,text\np1,ab\"c\n", minLine: 2},
		{name: "duplicate header", input: "a,b,a\n1,2,3\n", minLine: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTable([]byte(tt.input))
			if !errors.Is(err, loader.ErrArtifactParse) {
				t.Fatalf("expected parse error, got %v", err)
			}
			var pe *loader.ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *loader.ParseError, got %T", err)
			}
			if pe.Line < tt.minLine || pe.Column < 1 {
				t.Fatalf("position %d:%d, want line >= %d (%v)", pe.Line, pe.Column, tt.minLine, err)
			}
		})
	}
}

func TestReadTableNamesArtifact(t *testing.T) {
	reader := lio.MemReader{"pairs.csv": []byte("a,b\n\"x,1\n")}
	l := NewTableLoader(reader)

	_, err := l.ReadTable(context.Background(), loader.NewTableArtifact("concept_pairs", "pairs.csv"))
	var pe *loader.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *loader.ParseError, got %v", err)
	}
	if pe.Artifact != "concept_pairs" || pe.Path != "pairs.csv" {
		t.Fatalf("parse error does not name artifact: %+v", pe)
	}
}

func TestReadTableNotFound(t *testing.T) {
	l := NewTableLoader(lio.MemReader{})

	_, err := l.ReadTable(context.Background(), loader.NewTableArtifact("submolt_stats", "submolt_stats.csv"))
	if !errors.Is(err, loader.ErrArtifactNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}
