package view

import (
	"fmt"
	"math"
	"strings"

	"github.com/OFFIS-RIT/coherence/pkg/common"
)

// maxReportedDuplicates caps how many duplicated keys a detail names.
const maxReportedDuplicates = 3

func result(cfg Config, check string, ok bool, format string, args ...any) common.CheckResult {
	return common.CheckResult{
		Name:   QualifiedName(cfg.Name, check),
		OK:     ok,
		Detail: fmt.Sprintf(format, args...),
	}
}

func checkCoverage(cfg Config, coverage common.CoverageSummary) common.CheckResult {
	if coverage == nil {
		return result(cfg, CheckNonEmptyCoverage, false, "coverage summary is null or empty")
	}
	if len(coverage) == 0 {
		return result(cfg, CheckNonEmptyCoverage, false, "coverage summary has no keys")
	}

	missing := coverage.MissingKeys(cfg.CoverageKeys)
	if len(missing) > 0 {
		return result(cfg, CheckNonEmptyCoverage, false,
			"keys=%d required=%d missing=[%s]", len(coverage), len(cfg.CoverageKeys), strings.Join(missing, ", "))
	}
	return result(cfg, CheckNonEmptyCoverage, true,
		"keys=%d required=%d missing=none", len(coverage), len(cfg.CoverageKeys))
}

// checkLanguageSum compares the language distribution against posts plus
// comments. The relative error |sum-expected|/expected must not exceed the
// configured tolerance. With an expected total of zero only a zero sum
// passes.
func checkLanguageSum(cfg Config, langs []common.LanguageCount, totals common.Totals) common.CheckResult {
	var sum int64
	for _, l := range langs {
		sum += l.Count
	}
	expected := totals.Posts + totals.Comments

	if expected == 0 {
		return result(cfg, CheckLanguageSumsToTotal, sum == 0,
			"sum=%d expected=0 (posts=0 comments=0) rows=%d", sum, len(langs))
	}

	relErr := math.Abs(float64(sum-expected)) / float64(expected)
	return result(cfg, CheckLanguageSumsToTotal, relErr <= cfg.LanguageTolerance,
		"sum=%d expected=%d (posts=%d comments=%d) rows=%d rel_err=%.4f tolerance=%.4f",
		sum, expected, totals.Posts, totals.Comments, len(langs), relErr, cfg.LanguageTolerance)
}

func checkTransmissionUnique(cfg Config, pool []common.TransmissionSample) common.CheckResult {
	counts := make(map[common.SampleKey]int, len(pool))
	order := make([]common.SampleKey, 0)
	for _, s := range pool {
		k := s.Key()
		counts[k]++
		if counts[k] == 2 {
			order = append(order, k)
		}
	}

	if len(order) == 0 {
		return result(cfg, CheckTransmissionUnique, true,
			"pool=%d unique=%d duplicates=0", len(pool), len(counts))
	}

	named := make([]string, 0, maxReportedDuplicates)
	for _, k := range order {
		if len(named) == maxReportedDuplicates {
			break
		}
		named = append(named, fmt.Sprintf("%s x%d", k, counts[k]))
	}
	more := ""
	if len(order) > maxReportedDuplicates {
		more = fmt.Sprintf(" (+%d more)", len(order)-maxReportedDuplicates)
	}
	return result(cfg, CheckTransmissionUnique, false,
		"pool=%d unique=%d duplicates=%d: %s%s",
		len(pool), len(counts), len(order), strings.Join(named, "; "), more)
}

func checkCooccurrenceLimit(cfg Config, pairs []common.ConceptPair, source, dropped int) common.CheckResult {
	return result(cfg, CheckCooccurrenceLimit, len(pairs) <= cfg.CooccurrenceLimit,
		"pairs=%d limit=%d source=%d dropped_variants=%d",
		len(pairs), cfg.CooccurrenceLimit, source, dropped)
}
