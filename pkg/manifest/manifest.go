package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Snapshot is one recorded fixture file.
type Snapshot struct {
	Name    string `yaml:"name" json:"name"`
	Version string `yaml:"version" json:"version"`
	File    string `yaml:"file" json:"file"`
	Format  string `yaml:"format,omitempty" json:"format,omitempty"`
	Target  string `yaml:"target,omitempty" json:"target,omitempty"`
	Seed    uint64 `yaml:"seed,omitempty" json:"seed,omitempty"`
}

// Manifest tracks the fixture snapshots generated for a project, in the order
// they were recorded.
type Manifest struct {
	Service   string     `yaml:"service,omitempty" json:"service,omitempty"`
	Snapshots []Snapshot `yaml:"snapshots" json:"snapshots"`
}

// Load reads a manifest from the provided path. If the file does not exist,
// an empty manifest is returned.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Manifest{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}

	return &m, nil
}

// Save writes the manifest to the provided path, creating parent directories as needed.
func (m *Manifest) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create manifest directory: %w", err)
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	return nil
}

// Add records a snapshot. A snapshot with the same name and version replaces
// the earlier entry and moves to the end, becoming the latest.
func (m *Manifest) Add(s Snapshot) {
	for i := range m.Snapshots {
		if m.Snapshots[i].Name == s.Name && m.Snapshots[i].Version == s.Version {
			m.Snapshots = append(m.Snapshots[:i], m.Snapshots[i+1:]...)
			break
		}
	}

	m.Snapshots = append(m.Snapshots, s)
}

// History returns the snapshots of the named fixture, oldest first.
func (m *Manifest) History(name string) []Snapshot {
	out := make([]Snapshot, 0)
	for _, s := range m.Snapshots {
		if s.Name == name {
			out = append(out, s)
		}
	}
	return out
}

// Latest returns the most recent snapshot of the named fixture.
func (m *Manifest) Latest(name string) (Snapshot, bool) {
	h := m.History(name)
	if len(h) == 0 {
		return Snapshot{}, false
	}
	return h[len(h)-1], true
}

// Previous returns the snapshot recorded before the latest one.
func (m *Manifest) Previous(name string) (Snapshot, bool) {
	h := m.History(name)
	if len(h) < 2 {
		return Snapshot{}, false
	}
	return h[len(h)-2], true
}

// SnapshotFile returns the path recorded for the fixture version, if present.
func (m *Manifest) SnapshotFile(name, version string) string {
	for _, s := range m.Snapshots {
		if s.Name == name && s.Version == version {
			return s.File
		}
	}
	return ""
}
