package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/cmmoran/apimockgen/pkg/action/generate"
	"github.com/cmmoran/apimockgen/pkg/manifest"
	"github.com/cmmoran/apimockgen/pkg/render"
)

var ErrNoHistory = errors.New("no current/previous snapshots recorded")

// Generate writes a fixture for target and records it in the manifest under
// name and version. The seed used is recorded so the fixture can be reproduced.
func Generate(opts *generate.Options, target generate.Target, manifestPath, name, version string) (*manifest.Snapshot, error) {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = target.FixtureName()
	}

	runOpts := *opts
	if runOpts.OutDir == "" {
		runOpts.OutDir = filepath.Dir(manifestPath)
	}
	if runOpts.OutFile == "" {
		runOpts.OutFile = name + "_" + version + runOpts.Render.Format.Ext()
	}

	res, err := generate.Generate(&runOpts, target, io.Discard)
	if err != nil {
		return nil, err
	}

	format := runOpts.Render.Format
	if format == "" {
		format = render.FormatJSON
	}
	s := manifest.Snapshot{
		Name:    name,
		Version: version,
		File:    res.File,
		Format:  string(format),
		Target:  target.String(),
		Seed:    res.Seed,
	}
	m.Add(s)
	if m.Service == "" {
		m.Service = runOpts.Parser.InFile
	}

	if err := m.Save(manifestPath); err != nil {
		return nil, err
	}

	return &s, nil
}

// List returns all snapshots recorded in the manifest.
func List(manifestPath string) (*manifest.Manifest, error) {
	return manifest.Load(manifestPath)
}

// Diff loads the manifest, locates the latest and previous snapshot of the
// named fixture and returns a diff of their contents. JSON and YAML fixtures
// are compared structurally, Go fixtures as text.
func Diff(manifestPath, name string) (string, error) {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return "", err
	}

	current, ok := m.Latest(name)
	if !ok {
		return "", fmt.Errorf("%w for %q", ErrNoHistory, name)
	}
	previous, ok := m.Previous(name)
	if !ok {
		return "", fmt.Errorf("%w for %q", ErrNoHistory, name)
	}

	cur, err := readSnapshot(current)
	if err != nil {
		return "", fmt.Errorf("read current snapshot: %w", err)
	}
	prev, err := readSnapshot(previous)
	if err != nil {
		return "", fmt.Errorf("read previous snapshot: %w", err)
	}

	return cmp.Diff(prev, cur), nil
}

func readSnapshot(s manifest.Snapshot) (any, error) {
	data, err := os.ReadFile(s.File)
	if err != nil {
		return nil, err
	}

	format := render.Format(strings.ToLower(s.Format))
	if format == "" {
		format, _ = render.ParseFormat(strings.TrimPrefix(filepath.Ext(s.File), "."))
	}

	var v any
	switch format {
	case render.FormatJSON:
		err = json.Unmarshal(data, &v)
	case render.FormatYAML:
		err = yaml.Unmarshal(data, &v)
	default:
		return string(data), nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}
