// Package config reads the agent settings of a Scarb project.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ManifestName is the Scarb manifest file looked up by Load.
const ManifestName = "Scarb.toml"

const (
	DefaultSchema         = "cairo_schema.yaml"
	DefaultPreprocessURL  = "http://localhost:3000/preprocess"
	DefaultPostprocessURL = "http://localhost:3000/postprocess"

	EnvPreprocessURL  = "PREPROCESS_URL"
	EnvPostprocessURL = "POSTPROCESS_URL"
)

// Manifest is the subset of Scarb.toml the agent runner reads.
type Manifest struct {
	Package Package `toml:"package"`
	Tool    Tool    `toml:"tool"`

	// Dir is the directory containing Scarb.toml (set at load time).
	Dir string `toml:"-"`
}

type Package struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

type Tool struct {
	Agent Agent `toml:"agent"`
}

// Agent is the [tool.agent] section.
type Agent struct {
	CairoSchema    string `toml:"cairo_schema"`
	PreprocessURL  string `toml:"preprocess_url"`
	PostprocessURL string `toml:"postprocess_url"`
}

// Load parses Scarb.toml from dir.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}
	return m, nil
}

// Parse decodes manifest text and applies defaults. Dir is left empty.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if _, err := toml.Decode(string(data), &m); err != nil {
		return nil, err
	}
	if m.Tool.Agent.CairoSchema == "" {
		m.Tool.Agent.CairoSchema = DefaultSchema
	}
	return &m, nil
}

// Default is the configuration used when no manifest exists.
func Default(dir string) *Manifest {
	m := &Manifest{Dir: dir}
	m.Tool.Agent.CairoSchema = DefaultSchema
	return m
}

// FindAndLoad walks up from startDir to the nearest Scarb.toml.
// It returns nil when none is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, ManifestName)); err == nil {
			return Load(dir)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}

// SchemaPath returns override when set, otherwise the configured schema file.
// Relative paths resolve against the manifest directory.
func (m *Manifest) SchemaPath(override string) string {
	p := override
	if p == "" {
		p = m.Tool.Agent.CairoSchema
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(m.Dir, p)
}

// PreprocessURL prefers $PREPROCESS_URL, then the manifest, then the default.
func (m *Manifest) PreprocessURL() string {
	return resolveURL(EnvPreprocessURL, m.Tool.Agent.PreprocessURL, DefaultPreprocessURL)
}

// PostprocessURL prefers $POSTPROCESS_URL, then the manifest, then the default.
func (m *Manifest) PostprocessURL() string {
	return resolveURL(EnvPostprocessURL, m.Tool.Agent.PostprocessURL, DefaultPostprocessURL)
}

func resolveURL(env, configured, fallback string) string {
	if v, ok := os.LookupEnv(env); ok && v != "" {
		return v
	}
	if configured != "" {
		return configured
	}
	return fallback
}
