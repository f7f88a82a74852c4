package common

import "fmt"

// Column names written by the upstream producers.
const (
	FieldConceptA  = "concept_a"
	FieldConceptB  = "concept_b"
	FieldCount     = "count"
	FieldDocID     = "doc_id"
	FieldCreatedAt = "created_at"
	FieldSubmolt   = "submolt"
	FieldScope     = "scope"
	FieldLang      = "lang"
	FieldPosts     = "posts"
	FieldComments  = "comments"
)

// DecodeConceptPairs maps concept-pair rows in producer order. The producer
// already sorts by count descending; the order is not touched here.
func DecodeConceptPairs(rows []Record) []ConceptPair {
	pairs := make([]ConceptPair, 0, len(rows))
	for _, r := range rows {
		pairs = append(pairs, ConceptPair{
			A:     r.String(FieldConceptA),
			B:     r.String(FieldConceptB),
			Count: r.Int(FieldCount),
		})
	}
	return pairs
}

// DecodeTransmission maps transmission rows, keeping each row as payload.
func DecodeTransmission(rows []Record) []TransmissionSample {
	samples := make([]TransmissionSample, 0, len(rows))
	for _, r := range rows {
		samples = append(samples, TransmissionSample{
			DocID:     r.String(FieldDocID),
			CreatedAt: r.String(FieldCreatedAt),
			Submolt:   r.String(FieldSubmolt),
			Payload:   r,
		})
	}
	return samples
}

// DecodeLanguages maps language distribution rows.
func DecodeLanguages(rows []Record) []LanguageCount {
	langs := make([]LanguageCount, 0, len(rows))
	for _, r := range rows {
		langs = append(langs, LanguageCount{
			Scope: r.String(FieldScope),
			Lang:  r.String(FieldLang),
			Count: r.Int(FieldCount),
		})
	}
	return langs
}

// DecodeSubmolts maps submolt stat rows.
func DecodeSubmolts(rows []Record) []SubmoltStat {
	stats := make([]SubmoltStat, 0, len(rows))
	for _, r := range rows {
		stats = append(stats, SubmoltStat{
			Submolt:  r.String(FieldSubmolt),
			Posts:    r.Int(FieldPosts),
			Comments: r.Int(FieldComments),
		})
	}
	return stats
}

// DecodeCoverage accepts a decoded structured value. null decodes to a nil
// summary; anything other than an object is an error.
func DecodeCoverage(v any) (CoverageSummary, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return CoverageSummary(t), nil
	default:
		return nil, fmt.Errorf("coverage summary must be an object, got %T", v)
	}
}
