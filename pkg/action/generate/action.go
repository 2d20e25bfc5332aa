package generate

import (
	"bytes"
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cmmoran/apimockgen/pkg/faker"
	"github.com/cmmoran/apimockgen/pkg/generator"
	"github.com/cmmoran/apimockgen/pkg/mock"
	"github.com/cmmoran/apimockgen/pkg/parser"
	"github.com/cmmoran/apimockgen/pkg/render"
	"github.com/cmmoran/apimockgen/pkg/schema"
)

// TargetKind selects which facade call produces the value.
type TargetKind string

const (
	TargetEnum     TargetKind = "enum"
	TargetModel    TargetKind = "model"
	TargetUnion    TargetKind = "union"
	TargetType     TargetKind = "type"
	TargetResponse TargetKind = "response"
)

// Target names what to generate. Name is used by every kind but response,
// which uses Method, Path and Code, and UseDefault to fall back to the
// Default response.
type Target struct {
	Kind       TargetKind
	Name       string
	Method     string
	Path       string
	Code       int
	UseDefault bool
}

func (t Target) String() string {
	if t.Kind == TargetResponse {
		return fmt.Sprintf("%s:%s %s %d", t.Kind, strings.ToUpper(t.Method), t.Path, t.Code)
	}
	return string(t.Kind) + ":" + t.Name
}

// FixtureName is a file-system friendly name for the target.
func (t Target) FixtureName() string {
	var raw string
	if t.Kind == TargetResponse {
		raw = strings.ToLower(t.Method) + "_" + t.Path + "_" + strconv.Itoa(t.Code)
	} else {
		raw = t.Name
	}
	var sb strings.Builder
	lastSep := true
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastSep = false
		case !lastSep:
			sb.WriteByte('_')
			lastSep = true
		}
	}
	return strings.TrimSuffix(sb.String(), "_")
}

// Options control a fixture generation run.
//
// Parser   – how the service description is loaded.
// Generate – generation options for the target.
// Render   – output encoding.
// Seed     – random seed; a fresh one is drawn and reported when nil. Not read
//            from configuration by Unmarshal, see cmd for how it is set.
// OutDir   – directory to write to; with OutFile empty, output goes to the writer.
// OutFile  – file name inside OutDir; defaults to the fixture name plus extension.
type Options struct {
	Parser   parser.Options    `mapstructure:"parser"`
	Generate generator.Options `mapstructure:"generate"`
	Render   render.Options    `mapstructure:"output"`
	Seed     *uint64           `mapstructure:"-"`
	OutDir   string            `mapstructure:"out_dir"`
	OutFile  string            `mapstructure:"out_file"`
}

// Result describes a completed run.
type Result struct {
	Target Target
	Seed   uint64
	Value  any
	// Type is the descriptor Value was generated for; it orders rendered keys.
	Type schema.Type
	// File is the written path, empty when output went to the writer.
	File string
}

// Generate loads the service, generates the target and renders it either to
// OutDir/OutFile or, when neither is set, to w.
func Generate(opts *Options, target Target, w io.Writer) (*Result, error) {
	p, err := parser.NewWithOpts(&opts.Parser)
	if err != nil {
		return nil, err
	}
	if err = p.Parse(); err != nil {
		return nil, err
	}

	res, err := Value(p.Service, opts, target)
	if err != nil {
		return nil, err
	}

	ropts := opts.Render
	if ropts.Name == "" {
		ropts.Name = target.FixtureName()
	}
	if ropts.Format == render.FormatGo && ropts.Package == "" && opts.OutDir != "" {
		ropts.Package = render.InferPackage(opts.OutDir)
	}

	buf := new(bytes.Buffer)
	if err = render.Render(buf, render.Ordered(res.Value, res.Type), ropts); err != nil {
		return nil, err
	}

	if opts.OutDir == "" && opts.OutFile == "" {
		if _, err = io.Copy(w, buf); err != nil {
			return nil, fmt.Errorf("write output: %w", err)
		}
		return res, nil
	}

	outFile := opts.OutFile
	if outFile == "" {
		outFile = target.FixtureName() + ropts.Format.Ext()
	}
	outPath := filepath.Clean(filepath.Join(opts.OutDir, outFile))
	if err = os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	if err = os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("write output: %w", err)
	}
	res.File = outPath

	slog.With("target", target.String(), "file", outPath, "seed", res.Seed).Info("wrote fixture")
	return res, nil
}

// Value generates the target from an already loaded service.
func Value(svc *schema.Service, opts *Options, target Target) (*Result, error) {
	seed := newSeed()
	if opts.Seed != nil {
		seed = *opts.Seed
	}
	m := mock.New(svc, mock.WithSource(faker.New(seed)))
	gopts := []generator.Option{generator.WithOptions(opts.Generate)}

	var (
		v   any
		t   schema.Type
		err error
	)
	switch target.Kind {
	case TargetEnum:
		v, err = m.Enum(target.Name)
	case TargetModel:
		v, err = m.Model(target.Name, gopts...)
	case TargetUnion:
		v, err = m.Union(target.Name, gopts...)
	case TargetType:
		if t, err = svc.ResolveType(target.Name); err == nil {
			v, err = m.Generate(t, gopts...)
		}
	case TargetResponse:
		params := mock.ResponseParams{
			Path:       target.Path,
			Method:     target.Method,
			Code:       target.Code,
			UseDefault: target.UseDefault,
		}
		if t, err = m.ResponseType(params); err == nil {
			v, err = m.Generate(t, gopts...)
		}
	default:
		return nil, fmt.Errorf("unknown target kind %q", target.Kind)
	}
	if err != nil {
		return nil, err
	}
	if t == nil {
		// enum, model and union names resolved above
		t, _ = svc.FindType(target.Name)
	}

	return &Result{Target: target, Seed: seed, Value: v, Type: t}, nil
}

func newSeed() uint64 {
	var b [8]byte
	_, _ = crand.Read(b[:])
	return binary.LittleEndian.Uint64(b[:])
}
