package view

import (
	"strings"
	"testing"

	"github.com/OFFIS-RIT/coherence/pkg/common"

	"github.com/google/go-cmp/cmp"
)

func fullCoverage() common.CoverageSummary {
	cov := common.CoverageSummary{}
	for _, k := range DefaultCoverageKeys {
		cov[k] = "x"
	}
	return cov
}

func checkByName(t *testing.T, v View, check string) common.CheckResult {
	t.Helper()
	name := QualifiedName(v.Name, check)
	for _, c := range v.Checks {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("check %q not found in %v", name, v.Checks)
	return common.CheckResult{}
}

func TestBuildEmptyArtifacts(t *testing.T) {
	v := Build(&common.Artifacts{}, common.Totals{}, NewConfig("report", 25))

	if len(v.Checks) != 4 {
		t.Fatalf("expected 4 checks, got %d", len(v.Checks))
	}
	if c := checkByName(t, v, CheckNonEmptyCoverage); c.OK {
		t.Fatalf("coverage check should fail on empty input: %+v", c)
	}
	for _, c := range v.Checks {
		if c.Detail == "" {
			t.Fatalf("check %s has no detail", c.Name)
		}
	}
	if !checkByName(t, v, CheckTransmissionUnique).OK {
		t.Fatal("empty pool has unique keys")
	}
	if !checkByName(t, v, CheckCooccurrenceLimit).OK {
		t.Fatal("empty pair list is within limit")
	}
}

func TestBuildNilArtifacts(t *testing.T) {
	v := Build(nil, common.Totals{}, NewConfig("report", 1))
	if checkByName(t, v, CheckNonEmptyCoverage).OK {
		t.Fatal("coverage check should fail on nil artifacts")
	}
}

func TestBuildCanonicalizesAndTruncates(t *testing.T) {
	artifacts := &common.Artifacts{
		ConceptPairs: []common.ConceptPair{
			{A: "Agent", B: "Bot", Count: 50},
			{A: "agent", B: "bot", Count: 30},
			{A: "human", B: "agent", Count: 20},
			{A: "memory", B: "tool", Count: 10},
		},
		Coverage: fullCoverage(),
	}

	v := Build(artifacts, common.Totals{}, NewConfig("report", 2))

	want := []common.ConceptPair{
		{A: "Agent", B: "Bot", Count: 50},
		{A: "human", B: "agent", Count: 20},
	}
	if diff := cmp.Diff(want, v.Cooccurrence); diff != "" {
		t.Fatalf("pair list mismatch (-want +got):\n%s", diff)
	}
	if v.SourcePairs != 4 || v.DroppedVariants != 1 {
		t.Fatalf("source=%d dropped=%d, want 4 and 1", v.SourcePairs, v.DroppedVariants)
	}

	c := checkByName(t, v, CheckCooccurrenceLimit)
	if !c.OK {
		t.Fatalf("limit check failed: %+v", c)
	}
	if c.Detail != "pairs=2 limit=2 source=4 dropped_variants=1" {
		t.Fatalf("unexpected detail %q", c.Detail)
	}

	if len(artifacts.ConceptPairs) != 4 || artifacts.ConceptPairs[1].A != "agent" {
		t.Fatal("artifacts were modified")
	}
}

func TestBuildDetectsDuplicateTransmissionKeys(t *testing.T) {
	header := []string{"doc_id", "created_at", "submolt", "text_excerpt"}
	artifacts := &common.Artifacts{
		Transmission: common.DecodeTransmission([]common.Record{
			common.NewRecord(header, []string{"p1", "2026-02-01T00:00:00+00:00", "general", "first payload"}),
			common.NewRecord(header, []string{"p2", "2026-02-01T00:00:00+00:00", "general", "other"}),
			common.NewRecord(header, []string{"p1", "2026-02-01T00:00:00+00:00", "general", "second payload"}),
		}),
	}

	v := Build(artifacts, common.Totals{}, NewConfig("analysis", 30))
	c := checkByName(t, v, CheckTransmissionUnique)
	if c.OK {
		t.Fatalf("duplicate keys not detected: %+v", c)
	}
	if !strings.Contains(c.Detail, "doc_id=p1") || !strings.Contains(c.Detail, "submolt=general") {
		t.Fatalf("detail does not name the duplicated key: %q", c.Detail)
	}
	if !strings.Contains(c.Detail, "duplicates=1") {
		t.Fatalf("detail does not count duplicates: %q", c.Detail)
	}
}

func TestBuildTransmissionLimit(t *testing.T) {
	header := []string{"doc_id", "created_at", "submolt"}
	artifacts := &common.Artifacts{
		Transmission: common.DecodeTransmission([]common.Record{
			common.NewRecord(header, []string{"p1", "t1", "a"}),
			common.NewRecord(header, []string{"p2", "t2", "a"}),
			common.NewRecord(header, []string{"p1", "t1", "a"}),
		}),
	}

	cfg := NewConfig("report", 5)
	cfg.TransmissionLimit = 2
	v := Build(artifacts, common.Totals{}, cfg)

	if len(v.Transmission.Pool) != 2 {
		t.Fatalf("pool length = %d, want 2", len(v.Transmission.Pool))
	}
	if !checkByName(t, v, CheckTransmissionUnique).OK {
		t.Fatal("duplicate beyond the cutoff must not fail the truncated pool")
	}
}

func TestLanguageSumTolerance(t *testing.T) {
	totals := common.Totals{Posts: 153080, Comments: 704450, Submolts: 2}
	expected := totals.Posts + totals.Comments

	tests := []struct {
		name string
		sum  int64
		tot  common.Totals
		want bool
	}{
		{name: "exact", sum: expected, tot: totals, want: true},
		{name: "within one percent", sum: expected - expected/100, tot: totals, want: true},
		{name: "beyond one percent", sum: expected - expected/50, tot: totals, want: false},
		{name: "above total", sum: expected + expected/20, tot: totals, want: false},
		{name: "zero totals zero sum", sum: 0, tot: common.Totals{}, want: true},
		{name: "zero totals non-zero sum", sum: 3, tot: common.Totals{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			artifacts := &common.Artifacts{
				Languages: []common.LanguageCount{
					{Scope: "posts", Lang: "en", Count: tt.sum / 2},
					{Scope: "comments", Lang: "en", Count: tt.sum - tt.sum/2},
				},
			}
			v := Build(artifacts, tt.tot, NewConfig("report", 25))
			c := checkByName(t, v, CheckLanguageSumsToTotal)
			if c.OK != tt.want {
				t.Fatalf("ok = %v, want %v (%s)", c.OK, tt.want, c.Detail)
			}
			if !strings.Contains(c.Detail, "sum=") || !strings.Contains(c.Detail, "expected=") {
				t.Fatalf("detail lacks measured values: %q", c.Detail)
			}
		})
	}
}

func TestCoverageMissingKeys(t *testing.T) {
	cov := fullCoverage()
	delete(cov, "comments_total")

	v := Build(&common.Artifacts{Coverage: cov}, common.Totals{}, NewConfig("report", 25))
	c := checkByName(t, v, CheckNonEmptyCoverage)
	if c.OK {
		t.Fatalf("coverage check passed without comments_total: %+v", c)
	}
	if !strings.Contains(c.Detail, "missing=[comments_total]") {
		t.Fatalf("unexpected detail %q", c.Detail)
	}

	v = Build(&common.Artifacts{Coverage: fullCoverage()}, common.Totals{}, NewConfig("report", 25))
	if c := checkByName(t, v, CheckNonEmptyCoverage); !c.OK {
		t.Fatalf("complete coverage failed: %+v", c)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "zero limit", mutate: func(c *Config) { c.CooccurrenceLimit = 0 }, wantErr: true},
		{name: "missing name", mutate: func(c *Config) { c.Name = "" }, wantErr: true},
		{name: "negative transmission limit", mutate: func(c *Config) { c.TransmissionLimit = -1 }, wantErr: true},
		{name: "tolerance of one", mutate: func(c *Config) { c.LanguageTolerance = 1 }, wantErr: true},
		{name: "zero tolerance", mutate: func(c *Config) { c.LanguageTolerance = 0 }},
		{name: "no coverage keys", mutate: func(c *Config) { c.CoverageKeys = nil }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig("report", 25)
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
