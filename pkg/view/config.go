package view

import (
	"github.com/go-playground/validator"
)

// DefaultLanguageTolerance is the relative error accepted between the
// language distribution and the corpus totals. Upstream drops some
// documents (empty bodies) before language detection, so exact equality is
// not expected.
const DefaultLanguageTolerance = 0.01

// DefaultCoverageKeys are the top-level keys every coverage summary must
// carry.
var DefaultCoverageKeys = []string{
	"posts_total",
	"comments_total",
	"posts_created_min",
	"posts_created_max",
	"comments_created_min",
	"comments_created_max",
}

// Config holds the options one view is built with. It is treated as
// immutable once passed to Build.
type Config struct {
	// Name qualifies every check of the view, e.g. "report".
	Name string `validate:"required"`
	// CooccurrenceLimit is the top-K cutoff applied to the filtered
	// concept-pair list.
	CooccurrenceLimit int `validate:"min=1"`
	// TransmissionLimit truncates the transmission pool; 0 keeps it whole.
	TransmissionLimit int `validate:"min=0"`
	// LanguageTolerance is the accepted relative error of the language
	// distribution sum.
	LanguageTolerance float64 `validate:"min=0,lt=1"`
	// CoverageKeys lists the keys the coverage summary must contain.
	CoverageKeys []string `validate:"required,min=1,dive,required"`
}

// NewConfig returns a Config with default tolerance and coverage keys.
func NewConfig(name string, cooccurrenceLimit int) Config {
	return Config{
		Name:              name,
		CooccurrenceLimit: cooccurrenceLimit,
		LanguageTolerance: DefaultLanguageTolerance,
		CoverageKeys:      append([]string(nil), DefaultCoverageKeys...),
	}
}

var validate = validator.New()

// Validate checks the struct constraints of the config.
func (c Config) Validate() error {
	return validate.Struct(c)
}
