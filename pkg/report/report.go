// Package report renders check results as a plain-text verdict.
package report

import (
	"fmt"
	"io"

	"github.com/OFFIS-RIT/coherence/pkg/common"

	"github.com/charmbracelet/lipgloss"
)

// Exit statuses returned by Report.
const (
	StatusOK     = 0
	StatusFailed = 1
)

type styles struct {
	pass lipgloss.Style
	fail lipgloss.Style
}

// newStyles binds the styles to w. The renderer falls back to plain text
// when w is not a terminal.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		pass: r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		fail: r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
}

// Report writes one line per check in input order followed by a summary line
// and returns StatusOK when every check passed, StatusFailed otherwise.
// An empty check list passes.
func Report(w io.Writer, checks []common.CheckResult) int {
	st := newStyles(w)

	failed := 0
	for _, c := range checks {
		label := st.pass.Render("PASS")
		if !c.OK {
			failed++
			label = st.fail.Render("FAIL")
		}
		fmt.Fprintf(w, "%s  %s  %s\n", label, c.Name, c.Detail)
	}

	if failed > 0 {
		fmt.Fprintf(w, "%s: %d of %d checks failed\n", st.fail.Render("FAILED"), failed, len(checks))
		return StatusFailed
	}
	fmt.Fprintf(w, "%s: all %d checks passed\n", st.pass.Render("OK"), len(checks))
	return StatusOK
}

// Summary counts passed and failed checks.
func Summary(checks []common.CheckResult) (passed, failed int) {
	for _, c := range checks {
		if c.OK {
			passed++
		} else {
			failed++
		}
	}
	return passed, failed
}
