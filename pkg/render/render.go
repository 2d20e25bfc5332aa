// Package render writes generated values as JSON, YAML or Go fixture source.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatGo   Format = "go"
)

var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat accepts json, yaml/yml and go, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "go":
		return FormatGo, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Ext returns the file extension, including the dot, for f.
func (f Format) Ext() string {
	switch f {
	case FormatYAML:
		return ".yaml"
	case FormatGo:
		return ".go"
	default:
		return ".json"
	}
}

// Options control rendering.
//
// Format  – output encoding (default json).
// Package – package clause for Go output.
// Name    – variable name for Go output.
// Header  – leading comment for Go output.
type Options struct {
	Format  Format `json:"format,omitempty" yaml:"format,omitempty" mapstructure:"format,omitempty"`
	Package string `json:"package,omitempty" yaml:"package,omitempty" mapstructure:"package,omitempty"`
	Name    string `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name,omitempty"`
	Header  string `json:"header,omitempty" yaml:"header,omitempty" mapstructure:"header,omitempty"`
}

// Render writes v to w according to opts.
func Render(w io.Writer, v any, opts Options) error {
	switch opts.Format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatGo:
		f, err := GoFile(v, opts)
		if err != nil {
			return err
		}
		return f.Render(w)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
	}
}
