package parser

import (
	"path/filepath"
	"strings"
)

// Format is the encoding of a service description.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FieldFilter excludes a model field. An empty Model matches every model.
type FieldFilter struct {
	Model string `json:"model,omitempty" yaml:"model,omitempty" mapstructure:"model,omitempty"`
	Field string `json:"field" yaml:"field" mapstructure:"field"`
}

// Options control loading a service description.
//
// InFile            – service description to load.
// Format            – json or yaml; inferred from the InFile extension when empty.
// ExcludeDeprecated – drop deprecated fields, enum values and union types.
// ExcludeFields     – fields to drop from models, written "model.field" or "field".
type Options struct {
	InFile            string        `json:"in_file,omitempty" yaml:"in_file,omitempty" mapstructure:"in_file,omitempty"`
	Format            Format        `json:"format,omitempty" yaml:"format,omitempty" mapstructure:"format,omitempty"`
	ExcludeDeprecated bool          `json:"exclude_deprecated,omitempty" yaml:"exclude_deprecated,omitempty" mapstructure:"exclude_deprecated,omitempty"`
	ExcludeFields     []FieldFilter `json:"exclude_fields,omitempty" yaml:"exclude_fields,omitempty" mapstructure:"exclude_fields,omitempty"`
}

func NewOptions() *Options {
	return &Options{
		InFile: "service.json",
	}
}

// Normalize parses "model.field" exclusions, resolves InFile to an absolute
// path and infers Format.
func (o *Options) Normalize(excludeFieldStrings ...string) {
	for _, s := range excludeFieldStrings {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if m, f, ok := strings.Cut(s, "."); ok {
			o.ExcludeFields = append(o.ExcludeFields, FieldFilter{Model: m, Field: f})
		} else {
			o.ExcludeFields = append(o.ExcludeFields, FieldFilter{Field: s})
		}
	}
	if o.InFile != "" && o.InFile != "-" {
		if abs, err := filepath.Abs(o.InFile); err == nil {
			o.InFile = abs
		}
	}
	if o.Format == "" {
		o.Format = formatFromPath(o.InFile)
	}
	o.Format = Format(strings.ToLower(string(o.Format)))
}

func formatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// functional option pattern ---------------------------------------------------

type Option func(*Options)

func WithInFile(f string) Option    { return func(o *Options) { o.InFile = f } }
func WithFormat(f Format) Option    { return func(o *Options) { o.Format = f } }
func WithExcludeDeprecated() Option { return func(o *Options) { o.ExcludeDeprecated = true } }
func WithExcludeField(model, field string) Option {
	return func(o *Options) {
		o.ExcludeFields = append(o.ExcludeFields, FieldFilter{Model: model, Field: field})
	}
}
