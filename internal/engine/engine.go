// Package engine wires loading, view building, comparison and reporting
// into one run.
package engine

import (
	"context"
	"io"

	"github.com/OFFIS-RIT/coherence/internal/config"
	"github.com/OFFIS-RIT/coherence/internal/timing"
	"github.com/OFFIS-RIT/coherence/pkg/common"
	"github.com/OFFIS-RIT/coherence/pkg/compare"
	"github.com/OFFIS-RIT/coherence/pkg/logger"
	"github.com/OFFIS-RIT/coherence/pkg/report"
	"github.com/OFFIS-RIT/coherence/pkg/view"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Run loads the artifacts, evaluates every configured view and writes the
// report to stdout. It returns the exit status. A load error aborts the run
// before anything is written to stdout and is returned with StatusFailed.
func Run(ctx context.Context, cfg *config.Config, stdout io.Writer) (int, error) {
	runID, _ := gonanoid.New()
	logger.Info("Starting coherence run", "run", runID, "data_dir", cfg.DataDir, "views", len(cfg.Views))

	rec := timing.NewRecorder()
	artifacts, err := load(ctx, cfg, rec)
	if err != nil {
		logger.Error("Failed to load artifacts", "run", runID, "err", err)
		return report.StatusFailed, err
	}
	for _, e := range rec.Entries() {
		logger.Debug("Artifact load time", "run", runID, "artifact", e.Name, "took", e.Duration)
	}
	if slowest, ok := rec.Slowest(); ok {
		logger.Info("Loaded artifacts", "run", runID, "slowest", slowest.Name, "took", slowest.Duration)
	}

	checks := Evaluate(artifacts, cfg.Views)
	status := report.Report(stdout, checks)

	passed, failed := report.Summary(checks)
	logger.Info("Finished coherence run", "run", runID, "status", status, "passed", passed, "failed", failed)
	return status, nil
}

// Evaluate builds one view per config and compares every pair of views in
// config order. Checks are returned per view first, then per pair. Totals
// are derived once from the submolt stats and shared by all views.
func Evaluate(artifacts *common.Artifacts, configs []view.Config) []common.CheckResult {
	var totals common.Totals
	if artifacts != nil {
		totals = common.SumSubmolts(artifacts.Submolts)
	}

	views := make([]view.View, 0, len(configs))
	checks := make([]common.CheckResult, 0)
	for _, cfg := range configs {
		v := view.Build(artifacts, totals, cfg)
		views = append(views, v)
		checks = append(checks, v.Checks...)
	}

	for i := range views {
		for j := i + 1; j < len(views); j++ {
			a, b := views[i], views[j]
			checks = append(checks, compare.CompareViews(a, b, compare.PrefixLength(a, b))...)
		}
	}
	return checks
}
