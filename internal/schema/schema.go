// Package schema validates ticket metadata against a declarative
// field-to-rule schema. All applicable rules for a field are checked
// independently and violations accumulate, so one validate call surfaces
// every problem with a record.
package schema

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Rule is the set of constraints on one field. Zero-value members are
// inactive. Inside OneOf, Type may also be "null".
type Rule struct {
	Enum      []string `yaml:"enum,omitempty"`
	Pattern   string   `yaml:"pattern,omitempty"`
	Type      string   `yaml:"type,omitempty"` // "array", "string", "number", "null" (oneOf only)
	MinLength int      `yaml:"minLength,omitempty"`
	OneOf     []Rule   `yaml:"oneOf,omitempty"`

	re *regexp.Regexp
}

// Schema is a declarative description of valid ticket metadata.
type Schema struct {
	Required   []string        `yaml:"required"`
	Properties map[string]Rule `yaml:"properties"`
}

// Compile pre-compiles every pattern in the schema. It must be called
// before Validate; Default returns an already-compiled schema.
func (s *Schema) Compile() error {
	for name, rule := range s.Properties {
		if rule.Pattern != "" {
			re, err := regexp.Compile(rule.Pattern)
			if err != nil {
				return fmt.Errorf("field %q: compile pattern: %w", name, err)
			}
			rule.re = re
			s.Properties[name] = rule
		}
	}
	return nil
}

// Load reads a schema override from a YAML file.
func Load(path string) (Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Schema{}, fmt.Errorf("read schema: %w", err)
	}
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Schema{}, fmt.Errorf("parse schema: %w", err)
	}
	if err := s.Compile(); err != nil {
		return Schema{}, err
	}
	return s, nil
}

// Validate checks the flattened metadata record against the schema and
// returns every violation as human-readable text; an empty slice means
// valid. Rules other than required are skipped for absent fields.
func (s Schema) Validate(fields map[string]any) []string {
	var errs []string

	for _, k := range s.Required {
		if _, ok := fields[k]; !ok {
			errs = append(errs, fmt.Sprintf("missing required field '%s'", k))
		}
	}

	for k, rule := range s.Properties {
		v, ok := fields[k]
		if !ok {
			continue
		}
		errs = append(errs, rule.check(k, v)...)
	}
	return errs
}

func (r Rule) check(field string, v any) []string {
	var errs []string

	if len(r.Enum) > 0 && v != nil {
		if s, ok := v.(string); !ok || !contains(r.Enum, s) {
			errs = append(errs, fmt.Sprintf("field '%s' must be one of %v, got %v", field, r.Enum, v))
		}
	}

	if r.re != nil {
		if s, ok := v.(string); ok && !r.re.MatchString(s) {
			errs = append(errs, fmt.Sprintf("field '%s' does not match pattern %s, got %q", field, r.Pattern, s))
		}
	}

	switch r.Type {
	case "array":
		if !isSequence(v) {
			errs = append(errs, fmt.Sprintf("field '%s' must be an array", field))
		}
	case "string":
		s, ok := v.(string)
		if !ok {
			errs = append(errs, fmt.Sprintf("field '%s' must be a string", field))
		} else if r.MinLength > 0 && len(s) < r.MinLength {
			errs = append(errs, fmt.Sprintf("field '%s' too short (min %d)", field, r.MinLength))
		}
	case "number":
		if !isNumber(v) {
			errs = append(errs, fmt.Sprintf("field '%s' must be a number", field))
		}
	}

	if len(r.OneOf) > 0 && !satisfiesOneOf(r.OneOf, v) {
		errs = append(errs, fmt.Sprintf("field '%s' must satisfy oneOf, got %v", field, v))
	}

	return errs
}

// satisfiesOneOf reports whether v matches at least one alternative. Only
// the type constraints used by the ticket schema are supported: "null"
// and "string" with an optional minLength.
func satisfiesOneOf(alts []Rule, v any) bool {
	for _, alt := range alts {
		switch alt.Type {
		case "null":
			if v == nil {
				return true
			}
		case "string":
			if s, ok := v.(string); ok && len(s) >= alt.MinLength {
				return true
			}
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func isSequence(v any) bool {
	switch v.(type) {
	case []string, []any:
		return true
	}
	return false
}

func isNumber(v any) bool {
	switch v.(type) {
	case int, int64, float32, float64:
		return true
	}
	return false
}
