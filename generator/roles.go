package generator

import (
	"strings"

	"github.com/ardanlabs/pybindgen/config"
)

// outputSuffix marks hidden output buffer parameters by naming convention.
const outputSuffix = "_out"

// Classifier decides each parameter's semantic role from the curated tables
// plus structural naming and type-shape heuristics.
type Classifier struct {
	cfg *config.Config
}

// NewClassifier wraps the curated configuration.
func NewClassifier(cfg *config.Config) *Classifier {
	return &Classifier{cfg: cfg}
}

// Nullable is a semantic property, never inferred: curated pairs only.
func (c *Classifier) Nullable(function, parameter string) bool {
	return c.cfg.Nullable(function, parameter)
}

// Result reports whether the parameter carries the function's primary value
// back through memory. The result-name convention covers the vast majority
// of the library; deviations are curated.
func (c *Classifier) Result(function, parameter string) bool {
	return parameter == "result" || c.cfg.Result(function, parameter)
}

// Output reports whether the parameter is a secondary output slot: the
// output naming suffix, the pointer-typed count idiom, or curation.
func (c *Classifier) Output(function, parameter, spelling string) bool {
	if strings.HasSuffix(parameter, outputSuffix) {
		return true
	}
	if parameter == "count" && strings.HasSuffix(spelling, "*") {
		return true
	}
	return c.cfg.Output(function, parameter)
}

// Array reports whether the parameter is a sequence: a double-pointer or
// bracket-array spelling, or curation for single-pointer element types.
func (c *Classifier) Array(function, parameter, spelling string) bool {
	if strings.HasSuffix(spelling, "**") || strings.HasSuffix(spelling, "[]") {
		return true
	}
	return c.cfg.Array(function, parameter)
}
