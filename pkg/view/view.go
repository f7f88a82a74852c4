// Package view builds named snapshots of the derived artifacts under one
// configuration, together with the structural checks that must hold for
// that snapshot.
package view

import (
	"slices"

	"github.com/OFFIS-RIT/coherence/pkg/canon"
	"github.com/OFFIS-RIT/coherence/pkg/common"
)

// Check names, qualified with the view name in every CheckResult.
const (
	CheckNonEmptyCoverage    = "non-empty-coverage"
	CheckLanguageSumsToTotal = "language-distribution-sums-to-total"
	CheckTransmissionUnique  = "transmission-pool-keys-unique"
	CheckCooccurrenceLimit   = "cooccurrence-limit-applied"
)

// Transmission is the transmission sample pool exposed by a view.
type Transmission struct {
	Pool []common.TransmissionSample
}

// View is the result of Build. It owns its slices and is never modified
// after construction.
type View struct {
	Name   string
	Config Config
	Totals common.Totals

	Checks       []common.CheckResult
	Cooccurrence []common.ConceptPair
	Transmission Transmission

	// SourcePairs is the length of the concept-pair list before filtering.
	SourcePairs int
	// DroppedVariants counts pairs removed by canonicalization.
	DroppedVariants int
}

// QualifiedName joins a view name and a check name.
func QualifiedName(view, check string) string {
	return view + "/" + check
}

// Build derives a view from the artifacts. totals are computed once per run
// and passed through unchanged. Build performs no I/O and does not modify
// artifacts.
func Build(artifacts *common.Artifacts, totals common.Totals, cfg Config) View {
	if artifacts == nil {
		artifacts = &common.Artifacts{}
	}

	filtered := canon.FilterPairs(artifacts.ConceptPairs)
	dropped := len(artifacts.ConceptPairs) - len(filtered)
	pairs := truncate(filtered, cfg.CooccurrenceLimit)
	pool := truncate(artifacts.Transmission, cfg.TransmissionLimit)

	v := View{
		Name:            cfg.Name,
		Config:          cfg,
		Totals:          totals,
		Cooccurrence:    pairs,
		Transmission:    Transmission{Pool: pool},
		SourcePairs:     len(artifacts.ConceptPairs),
		DroppedVariants: dropped,
	}

	v.Checks = []common.CheckResult{
		checkCoverage(cfg, artifacts.Coverage),
		checkLanguageSum(cfg, artifacts.Languages, totals),
		checkTransmissionUnique(cfg, pool),
		checkCooccurrenceLimit(cfg, pairs, len(artifacts.ConceptPairs), dropped),
	}

	return v
}

// truncate returns a copy of the first limit elements; limit <= 0 keeps all.
func truncate[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return slices.Clone(items)
}
