// Package parser loads apibuilder service descriptions (service.json, as JSON
// or YAML) and resolves them into the schema object model.
package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cmmoran/apimockgen/internal/model"
	"github.com/cmmoran/apimockgen/pkg/schema"
)

var (
	ErrEmptyPath     = errors.New("empty service path")
	ErrUnknownFormat = errors.New("unknown service format")
	ErrUnknownType   = schema.ErrUnknownType
)

// Parser holds state/results of a parse run.
type Parser struct {
	Opts Options

	Raw     *model.RawService
	Service *schema.Service
}

// New creates a parser with opts applied over NewOptions.
func New(opts ...Option) (*Parser, error) {
	o := NewOptions()
	for _, fn := range opts {
		fn(o)
	}

	return NewWithOpts(o)
}

func NewWithOpts(opts *Options) (*Parser, error) {
	opts.Normalize()

	switch opts.Format {
	case FormatJSON, FormatYAML:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
	}

	return &Parser{Opts: *opts}, nil
}

// Parse reads Opts.InFile ("-" for stdin) and resolves it.
func (p *Parser) Parse() error {
	if p.Opts.InFile == "" {
		return ErrEmptyPath
	}

	var (
		data []byte
		err  error
	)
	if p.Opts.InFile == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(p.Opts.InFile)
	}
	if err != nil {
		return fmt.Errorf("read service: %w", err)
	}

	return p.ParseBytes(data)
}

// ParseBytes decodes data in Opts.Format and resolves it.
func (p *Parser) ParseBytes(data []byte) error {
	raw := &model.RawService{}
	switch p.Opts.Format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, raw); err != nil {
			return fmt.Errorf("unmarshal service: %w", err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(raw); err != nil {
			return fmt.Errorf("unmarshal service: %w", err)
		}
	}

	svc, err := NewBuilder(&p.Opts, raw).Build()
	if err != nil {
		return err
	}
	p.Raw = raw
	p.Service = svc

	slog.With("service", svc.String(),
		"enums", len(svc.Enums), "models", len(svc.Models),
		"unions", len(svc.Unions), "resources", len(svc.Resources),
	).Debug("parsed service")

	return nil
}

// Load parses the service description at path.
func Load(path string, opts ...Option) (*schema.Service, error) {
	p, err := New(append([]Option{WithInFile(path)}, opts...)...)
	if err != nil {
		return nil, err
	}
	if err = p.Parse(); err != nil {
		return nil, err
	}
	return p.Service, nil
}

// Decode parses an in-memory service description.
func Decode(data []byte, format Format, opts ...Option) (*schema.Service, error) {
	o := &Options{Format: format}
	for _, fn := range opts {
		fn(o)
	}
	p, err := NewWithOpts(o)
	if err != nil {
		return nil, err
	}
	if err = p.ParseBytes(data); err != nil {
		return nil, err
	}
	return p.Service, nil
}
