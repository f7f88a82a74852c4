package common

import (
	"fmt"
	"strconv"
	"strings"
)

// Record is one row of a tabular artifact. Fields keeps the header order,
// Values maps a field name to its raw cell text.
//
// Field presence is not guaranteed across rows. Accessors resolve a missing
// or unparseable numeric field to zero and a missing text field to "".
type Record struct {
	Fields []string
	Values map[string]string
}

// NewRecord builds a Record from a header and one row of cells. Cells beyond
// the header are ignored, missing trailing cells are left absent.
func NewRecord(header, cells []string) Record {
	r := Record{
		Fields: header,
		Values: make(map[string]string, len(header)),
	}
	for i, name := range header {
		if i >= len(cells) {
			break
		}
		r.Values[name] = cells[i]
	}
	return r
}

// String returns the field as text, "" when absent.
func (r Record) String(field string) string {
	return r.Values[field]
}

// Float returns the field as a float, 0 when absent or unparseable.
func (r Record) Float(field string) float64 {
	raw := strings.TrimSpace(r.Values[field])
	if raw == "" {
		return 0
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return f
}

// Int returns the field as an integer, 0 when absent or unparseable.
// Producers sometimes write counts as "12.0", so the value is parsed as a
// float first and truncated.
func (r Record) Int(field string) int64 {
	raw := strings.TrimSpace(r.Values[field])
	if raw == "" {
		return 0
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	return int64(r.Float(field))
}

// ConceptPair is an unordered pair of co-occurring concepts and the number
// of documents they share. (A, B) and (B, A) denote the same entity.
type ConceptPair struct {
	A     string `json:"concept_a"`
	B     string `json:"concept_b"`
	Count int64  `json:"count"`
}

// PairKey is the canonical comparison key of a ConceptPair.
type PairKey struct {
	A     string
	B     string
	Count int64
}

func (k PairKey) String() string {
	return fmt.Sprintf("(%s, %s, %d)", k.A, k.B, k.Count)
}

// Key returns the lower-cased concepts and the count.
func (p ConceptPair) Key() PairKey {
	return PairKey{
		A:     strings.ToLower(p.A),
		B:     strings.ToLower(p.B),
		Count: p.Count,
	}
}

// TransmissionSample is one published transmission example. Its identity is
// the (doc_id, created_at, submolt) triple, the rest of the row is payload
// that is carried along but never inspected.
type TransmissionSample struct {
	DocID     string
	CreatedAt string
	Submolt   string
	Payload   Record
}

// SampleKey is the identity triple of a TransmissionSample.
type SampleKey struct {
	DocID     string
	CreatedAt string
	Submolt   string
}

func (k SampleKey) String() string {
	return fmt.Sprintf("(doc_id=%s, created_at=%s, submolt=%s)", k.DocID, k.CreatedAt, k.Submolt)
}

// Key returns the identity triple.
func (s TransmissionSample) Key() SampleKey {
	return SampleKey{DocID: s.DocID, CreatedAt: s.CreatedAt, Submolt: s.Submolt}
}

// LanguageCount is one row of the language distribution: how many documents
// of a scope (posts, comments) were detected in a language.
type LanguageCount struct {
	Scope string
	Lang  string
	Count int64
}

// SubmoltStat holds the activity of one community.
type SubmoltStat struct {
	Submolt  string
	Posts    int64
	Comments int64
}

// CoverageSummary is the decoded coverage document. A nil summary means the
// artifact was empty or null.
type CoverageSummary map[string]any

// MissingKeys returns the keys from want that the summary does not contain,
// in the order given.
func (c CoverageSummary) MissingKeys(want []string) []string {
	missing := make([]string, 0)
	for _, k := range want {
		if _, ok := c[k]; !ok {
			missing = append(missing, k)
		}
	}
	return missing
}

// Totals are the corpus-wide counts derived once per run from the submolt
// stats. They do not depend on any view configuration.
type Totals struct {
	Posts    int64
	Comments int64
	Submolts int
}

// SumSubmolts adds up posts and comments over every submolt row.
func SumSubmolts(stats []SubmoltStat) Totals {
	t := Totals{Submolts: len(stats)}
	for _, s := range stats {
		t.Posts += s.Posts
		t.Comments += s.Comments
	}
	return t
}

// Artifacts is the fully materialized input of a run. Views treat it as
// read-only.
type Artifacts struct {
	ConceptPairs []ConceptPair
	Transmission []TransmissionSample
	Languages    []LanguageCount
	Coverage     CoverageSummary
	Submolts     []SubmoltStat
}

// CheckResult is the outcome of one named coherence check.
type CheckResult struct {
	Name   string `json:"name"`
	OK     bool   `json:"ok"`
	Detail string `json:"detail"`
}
