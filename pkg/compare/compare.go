// Package compare checks that two views agree on the leading entries of the
// lists they share.
package compare

import (
	"fmt"

	"github.com/OFFIS-RIT/coherence/pkg/common"
	"github.com/OFFIS-RIT/coherence/pkg/view"
)

// List selects which list of a view is compared.
type List string

const (
	ListCooccurrence List = "cooccurrence"
	ListTransmission List = "transmission"
)

// Lists are compared in this order by CompareViews.
var Lists = []List{ListCooccurrence, ListTransmission}

// CheckName returns the qualified name of a prefix comparison.
func CheckName(a, b string, list List) string {
	return fmt.Sprintf("%s~%s/%s-prefix-equal", a, b, list)
}

// PrefixLength is the number of entries two views are expected to share: the
// smaller of their co-occurrence limits.
func PrefixLength(a, b view.View) int {
	return min(a.Config.CooccurrenceLimit, b.Config.CooccurrenceLimit)
}

// Compare asserts that the first n canonical keys of the selected list are
// equal position by position in both views, where n is prefixLength capped
// by both list lengths. A negative prefixLength compares nothing.
func Compare(a, b view.View, list List, prefixLength int) common.CheckResult {
	name := CheckName(a.Name, b.Name, list)

	switch list {
	case ListCooccurrence:
		return comparePrefix(name, pairKeys(a.Cooccurrence), pairKeys(b.Cooccurrence), prefixLength)
	case ListTransmission:
		return comparePrefix(name, sampleKeys(a.Transmission.Pool), sampleKeys(b.Transmission.Pool), prefixLength)
	default:
		return common.CheckResult{
			Name:   name,
			OK:     false,
			Detail: fmt.Sprintf("unknown list %q", list),
		}
	}
}

// CompareViews runs Compare for every list in Lists.
func CompareViews(a, b view.View, prefixLength int) []common.CheckResult {
	results := make([]common.CheckResult, 0, len(Lists))
	for _, list := range Lists {
		results = append(results, Compare(a, b, list, prefixLength))
	}
	return results
}

func comparePrefix[K interface {
	comparable
	fmt.Stringer
}](name string, a, b []K, requested int) common.CheckResult {
	n := max(0, min(requested, len(a), len(b)))

	for i := range n {
		if a[i] != b[i] {
			return common.CheckResult{
				Name: name,
				OK:   false,
				Detail: fmt.Sprintf("first mismatch at position %d of %d: %s != %s",
					i, n, a[i], b[i]),
			}
		}
	}

	return common.CheckResult{
		Name: name,
		OK:   true,
		Detail: fmt.Sprintf("prefix=%d equal (requested=%d len_a=%d len_b=%d)",
			n, requested, len(a), len(b)),
	}
}

func pairKeys(pairs []common.ConceptPair) []common.PairKey {
	keys := make([]common.PairKey, len(pairs))
	for i, p := range pairs {
		keys[i] = p.Key()
	}
	return keys
}

func sampleKeys(pool []common.TransmissionSample) []common.SampleKey {
	keys := make([]common.SampleKey, len(pool))
	for i, s := range pool {
		keys[i] = s.Key()
	}
	return keys
}
