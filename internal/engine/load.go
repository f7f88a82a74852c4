package engine

import (
	"context"

	"github.com/OFFIS-RIT/coherence/internal/config"
	"github.com/OFFIS-RIT/coherence/internal/timing"
	"github.com/OFFIS-RIT/coherence/pkg/common"
	"github.com/OFFIS-RIT/coherence/pkg/loader"
	"github.com/OFFIS-RIT/coherence/pkg/loader/csv"
	lio "github.com/OFFIS-RIT/coherence/pkg/loader/io"
	"github.com/OFFIS-RIT/coherence/pkg/loader/structured"
	"github.com/OFFIS-RIT/coherence/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// Artifact names used in errors and logs.
const (
	ArtifactConceptPairs = "concept_pairs"
	ArtifactTransmission = "transmission"
	ArtifactLanguages    = "languages"
	ArtifactCoverage     = "coverage"
	ArtifactSubmolts     = "submolts"
)

// ArtifactSet lists the five artifacts a run reads.
type ArtifactSet struct {
	ConceptPairs loader.Artifact
	Transmission loader.Artifact
	Languages    loader.Artifact
	Coverage     loader.Artifact
	Submolts     loader.Artifact
}

// NewArtifactSet builds the artifact set for the given file names. resolve
// maps each artifact to the path reported in errors; nil keeps the names
// as given.
func NewArtifactSet(files config.ArtifactFiles, resolve func(loader.Artifact) string) ArtifactSet {
	set := ArtifactSet{
		ConceptPairs: loader.NewTableArtifact(ArtifactConceptPairs, files.ConceptPairs),
		Transmission: loader.NewTableArtifact(ArtifactTransmission, files.Transmission),
		Languages:    loader.NewTableArtifact(ArtifactLanguages, files.Languages),
		Coverage:     loader.NewStructuredArtifact(ArtifactCoverage, files.Coverage),
		Submolts:     loader.NewTableArtifact(ArtifactSubmolts, files.Submolts),
	}
	if resolve != nil {
		for _, a := range []*loader.Artifact{&set.ConceptPairs, &set.Transmission, &set.Languages, &set.Coverage, &set.Submolts} {
			a.Path = resolve(*a)
		}
	}
	return set
}

// Load reads every artifact from cfg.DataDir.
func Load(ctx context.Context, cfg *config.Config) (*common.Artifacts, error) {
	return load(ctx, cfg, timing.NewRecorder())
}

func load(ctx context.Context, cfg *config.Config, rec *timing.Recorder) (*common.Artifacts, error) {
	// Paths are joined onto the data dir here, so the reader gets no base.
	set := NewArtifactSet(cfg.Artifacts, func(a loader.Artifact) string {
		return lio.ResolvePath(cfg.DataDir, a.Path)
	})
	return LoadFrom(ctx, lio.NewFileReader(""), set, rec)
}

// LoadFrom reads the artifact set concurrently through reader. The first
// failure cancels the remaining reads and is returned unchanged.
func LoadFrom(ctx context.Context, reader loader.ArtifactReader, set ArtifactSet, rec *timing.Recorder) (*common.Artifacts, error) {
	if rec == nil {
		rec = timing.NewRecorder()
	}

	out := &common.Artifacts{}
	tables := csv.NewTableLoader(reader)
	docs := structured.NewLoader(reader)

	eg, gCtx := errgroup.WithContext(ctx)

	table := func(artifact loader.Artifact, decode func([]common.Record)) {
		eg.Go(func() error {
			stop := rec.Start(artifact.Name)
			rows, err := tables.ReadTable(gCtx, artifact)
			elapsed := stop()
			if err != nil {
				return err
			}
			decode(rows)
			logger.Debug("Loaded artifact", "artifact", artifact.Name, "rows", len(rows), "took", elapsed)
			return nil
		})
	}

	table(set.ConceptPairs, func(rows []common.Record) { out.ConceptPairs = common.DecodeConceptPairs(rows) })
	table(set.Transmission, func(rows []common.Record) { out.Transmission = common.DecodeTransmission(rows) })
	table(set.Languages, func(rows []common.Record) { out.Languages = common.DecodeLanguages(rows) })
	table(set.Submolts, func(rows []common.Record) { out.Submolts = common.DecodeSubmolts(rows) })

	eg.Go(func() error {
		stop := rec.Start(set.Coverage.Name)
		value, err := docs.ReadStructured(gCtx, set.Coverage)
		elapsed := stop()
		if err != nil {
			return err
		}
		coverage, err := common.DecodeCoverage(value)
		if err != nil {
			return &loader.ParseError{
				Artifact: set.Coverage.Name,
				Path:     set.Coverage.Path,
				Line:     1,
				Column:   1,
				Err:      err,
			}
		}
		out.Coverage = coverage
		logger.Debug("Loaded artifact", "artifact", set.Coverage.Name, "keys", len(coverage), "took", elapsed)
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
