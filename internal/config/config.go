// Package config resolves the run configuration from defaults, the views
// file, the environment and command line overrides, in increasing order of
// precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/OFFIS-RIT/coherence/internal/util"
	"github.com/OFFIS-RIT/coherence/pkg/view"

	"github.com/go-playground/validator"
	"gopkg.in/yaml.v3"
)

const (
	EnvDataDir   = "COHERENCE_DATA_DIR"
	EnvViewsFile = "COHERENCE_VIEWS_FILE"
	EnvDebug     = "DEBUG"
	EnvLogFormat = "COHERENCE_LOG_FORMAT"

	DefaultDataDir = "data/derived"
)

// ArtifactFiles names the artifact files. Relative names resolve against
// the data directory.
type ArtifactFiles struct {
	ConceptPairs string `yaml:"concept_pairs,omitempty" json:"concept_pairs,omitempty" validate:"required" jsonschema:"description=Ranked concept co-occurrence table"`
	Transmission string `yaml:"transmission,omitempty" json:"transmission,omitempty" validate:"required" jsonschema:"description=Published transmission samples table"`
	Languages    string `yaml:"languages,omitempty" json:"languages,omitempty" validate:"required" jsonschema:"description=Language distribution table"`
	Coverage     string `yaml:"coverage,omitempty" json:"coverage,omitempty" validate:"required" jsonschema:"description=Coverage summary JSON document"`
	Submolts     string `yaml:"submolts,omitempty" json:"submolts,omitempty" validate:"required" jsonschema:"description=Per-submolt post and comment counts"`
}

// DefaultArtifactFiles are the file names written by the analytics pipeline.
func DefaultArtifactFiles() ArtifactFiles {
	return ArtifactFiles{
		ConceptPairs: "ontology_cooccurrence_top.csv",
		Transmission: "public_transmission_samples.csv",
		Languages:    "public_language_distribution.csv",
		Coverage:     "coverage_quality.json",
		Submolts:     "submolt_stats.csv",
	}
}

// ViewSpec is one view as written in the views file.
type ViewSpec struct {
	Name              string   `yaml:"name" json:"name" jsonschema:"minLength=1"`
	CooccurrenceLimit int      `yaml:"cooccurrence_limit" json:"cooccurrence_limit" jsonschema:"minimum=1"`
	TransmissionLimit int      `yaml:"transmission_limit,omitempty" json:"transmission_limit,omitempty" jsonschema:"minimum=0,description=0 keeps the whole pool"`
	LanguageTolerance *float64 `yaml:"language_tolerance,omitempty" json:"language_tolerance,omitempty" jsonschema:"minimum=0,exclusiveMaximum=1,description=Accepted relative error of the language distribution sum (default 0.01)"`
	CoverageKeys      []string `yaml:"coverage_keys,omitempty" json:"coverage_keys,omitempty" jsonschema:"description=Keys the coverage summary must contain"`
}

// File is the schema of the views file.
type File struct {
	DataDir   string        `yaml:"data_dir,omitempty" json:"data_dir,omitempty" jsonschema:"description=Directory holding the artifacts"`
	Artifacts ArtifactFiles `yaml:"artifacts,omitempty" json:"artifacts,omitempty"`
	Views     []ViewSpec    `yaml:"views,omitempty" json:"views,omitempty" jsonschema:"minItems=2"`
}

// Config is the resolved run configuration.
type Config struct {
	DataDir   string `validate:"required"`
	ViewsFile string
	Debug     bool
	// LogFormat selects the console log encoding.
	LogFormat string `validate:"omitempty,oneof=text logfmt json"`

	Artifacts ArtifactFiles
	Views     []view.Config `validate:"min=2,dive"`
}

// Overrides carries command line values. Empty fields leave the lower
// precedence value untouched.
type Overrides struct {
	DataDir   string
	ViewsFile string
	Debug     bool
}

// DefaultViews returns the report view (top 25) and the analysis view
// (top 30).
func DefaultViews() []view.Config {
	return []view.Config{
		view.NewConfig("report", 25),
		view.NewConfig("analysis", 30),
	}
}

var validate = validator.New()

// Load resolves the configuration from the environment alone.
func Load() (*Config, error) {
	return LoadWith(Overrides{})
}

// LoadWith resolves the configuration and applies the overrides on top.
func LoadWith(o Overrides) (*Config, error) {
	cfg := &Config{
		DataDir:   DefaultDataDir,
		ViewsFile: util.GetEnv(EnvViewsFile),
		Debug:     util.GetEnvBool(EnvDebug, false) || o.Debug,
		LogFormat: util.GetEnvString(EnvLogFormat, "text"),
		Artifacts: DefaultArtifactFiles(),
		Views:     DefaultViews(),
	}
	if o.ViewsFile != "" {
		cfg.ViewsFile = o.ViewsFile
	}

	if cfg.ViewsFile != "" {
		file, err := ReadFile(cfg.ViewsFile)
		if err != nil {
			return nil, err
		}
		if err := cfg.apply(file); err != nil {
			return nil, fmt.Errorf("views file %s: %w", cfg.ViewsFile, err)
		}
	}

	cfg.DataDir = util.GetEnvString(EnvDataDir, cfg.DataDir)
	if o.DataDir != "" {
		cfg.DataDir = o.DataDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ReadFile decodes a views file. Unknown keys are rejected and an empty
// file decodes to the zero File.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read views file: %w", err)
	}
	return ParseFile(data)
}

// ParseFile decodes the YAML content of a views file.
func ParseFile(data []byte) (*File, error) {
	var file File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse views file: %w", err)
	}
	return &file, nil
}

func (c *Config) apply(file *File) error {
	if file.DataDir != "" {
		c.DataDir = file.DataDir
	}

	a := file.Artifacts
	for _, o := range []struct {
		dst *string
		src string
	}{
		{&c.Artifacts.ConceptPairs, a.ConceptPairs},
		{&c.Artifacts.Transmission, a.Transmission},
		{&c.Artifacts.Languages, a.Languages},
		{&c.Artifacts.Coverage, a.Coverage},
		{&c.Artifacts.Submolts, a.Submolts},
	} {
		if o.src != "" {
			*o.dst = o.src
		}
	}

	if len(file.Views) == 0 {
		return nil
	}
	views := make([]view.Config, 0, len(file.Views))
	for _, spec := range file.Views {
		views = append(views, spec.ViewConfig())
	}
	c.Views = views
	return nil
}

// ViewConfig converts the file entry to a view.Config, filling defaults for
// omitted optional fields.
func (s ViewSpec) ViewConfig() view.Config {
	cfg := view.NewConfig(s.Name, s.CooccurrenceLimit)
	cfg.TransmissionLimit = s.TransmissionLimit
	if s.LanguageTolerance != nil {
		cfg.LanguageTolerance = *s.LanguageTolerance
	}
	if len(s.CoverageKeys) > 0 {
		cfg.CoverageKeys = append([]string(nil), s.CoverageKeys...)
	}
	return cfg
}

// Validate checks struct constraints and that view names are unique.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	seen := make(map[string]struct{}, len(c.Views))
	for _, v := range c.Views {
		if _, dup := seen[v.Name]; dup {
			return fmt.Errorf("invalid configuration: duplicate view name %q", v.Name)
		}
		seen[v.Name] = struct{}{}
	}
	return nil
}
