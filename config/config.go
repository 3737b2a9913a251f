// Package config holds the curated lookup tables consumed by the generator:
// per-parameter role curation, function overrides, and function modifiers.
// The tables are loaded once from a YAML document, validated, and passed
// explicitly into generation; nothing here mutates after Load returns.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ParamRef names one parameter of one function.
type ParamRef struct {
	Function  string `yaml:"function"`
	Parameter string `yaml:"parameter"`
}

// Roles is the curated role tables, one list per role.
type Roles struct {
	Nullable []ParamRef `yaml:"nullable"`
	Result   []ParamRef `yaml:"result"`
	Output   []ParamRef `yaml:"output"`
	Array    []ParamRef `yaml:"array"`
}

// SizedSequence collapses a (pointer, length) parameter pair: the wrapper
// takes only the pointer parameter and derives the length argument from it.
type SizedSequence struct {
	Pointer string `yaml:"pointer"`
	Length  string `yaml:"length"`
}

// ElementType rewrites the element type spelling used for one parameter's
// conversion lookup.
type ElementType struct {
	Parameter string `yaml:"parameter"`
	Type      string `yaml:"type"`
}

// Modifier is a structured per-function rewrite applied to the generic
// function model before rendering.
type Modifier struct {
	SizedSequence  *SizedSequence `yaml:"sized_sequence,omitempty"`
	ElementType    *ElementType   `yaml:"element_type,omitempty"`
	DropErrorCheck bool           `yaml:"drop_error_check,omitempty"`
}

// Config is the full curated configuration document.
type Config struct {
	Roles     Roles               `yaml:"roles"`
	Overrides map[string]string   `yaml:"overrides"`
	Modifiers map[string]Modifier `yaml:"modifiers"`

	roles map[ParamRef]roleSet
}

type roleSet struct {
	nullable bool
	result   bool
	output   bool
	array    bool
}

// Load reads and validates a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes a YAML configuration document and builds the typed role
// registry. Curating the same parameter as both result and output, or as
// both nullable and array, is a configuration error.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if err := cfg.index(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns an empty configuration, valid for generation with no
// curated entries.
func Default() *Config {
	cfg := &Config{}
	_ = cfg.index()
	return cfg
}

func (c *Config) index() error {
	c.roles = make(map[ParamRef]roleSet)

	set := func(refs []ParamRef, apply func(*roleSet)) {
		for _, ref := range refs {
			rs := c.roles[ref]
			apply(&rs)
			c.roles[ref] = rs
		}
	}

	set(c.Roles.Nullable, func(rs *roleSet) { rs.nullable = true })
	set(c.Roles.Result, func(rs *roleSet) { rs.result = true })
	set(c.Roles.Output, func(rs *roleSet) { rs.output = true })
	set(c.Roles.Array, func(rs *roleSet) { rs.array = true })

	for ref, rs := range c.roles {
		if rs.result && rs.output {
			return fmt.Errorf("parameter %s.%s curated as both result and output", ref.Function, ref.Parameter)
		}
		if rs.nullable && rs.array {
			return fmt.Errorf("parameter %s.%s curated as both nullable and array", ref.Function, ref.Parameter)
		}
	}

	return nil
}

// Nullable reports whether the pair is curated nullable.
func (c *Config) Nullable(function, parameter string) bool {
	return c.roles[ParamRef{Function: function, Parameter: parameter}].nullable
}

// Result reports whether the pair is curated as a result slot.
func (c *Config) Result(function, parameter string) bool {
	return c.roles[ParamRef{Function: function, Parameter: parameter}].result
}

// Output reports whether the pair is curated as an output slot.
func (c *Config) Output(function, parameter string) bool {
	return c.roles[ParamRef{Function: function, Parameter: parameter}].output
}

// Array reports whether the pair is curated as an array.
func (c *Config) Array(function, parameter string) bool {
	return c.roles[ParamRef{Function: function, Parameter: parameter}].array
}
