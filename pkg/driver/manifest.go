package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestFileName is the project file looked up by the CLI.
const ManifestFileName = "lox.yml"

// ErrManifestNotFound is returned by FindManifest when no lox.yml exists
// between the start directory and the filesystem root.
var ErrManifestNotFound = errors.New("manifest not found")

// Manifest models a lox.yml project file.
type Manifest struct {
	Path     string
	Name     string
	Main     string
	History  string
	Trace    bool
	Fixtures string
}

type manifestFile struct {
	Name     string `yaml:"name"`
	Main     string `yaml:"main"`
	History  string `yaml:"history"`
	Trace    bool   `yaml:"trace"`
	Fixtures string `yaml:"fixtures"`
}

// LoadManifest parses lox.yml from disk. Unknown keys are rejected.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", absPath)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", absPath, err)
	}

	manifest := &Manifest{
		Path:     absPath,
		Name:     strings.TrimSpace(raw.Name),
		Main:     strings.TrimSpace(raw.Main),
		History:  strings.TrimSpace(raw.History),
		Trace:    raw.Trace,
		Fixtures: strings.TrimSpace(raw.Fixtures),
	}
	if manifest.Name == "" {
		return nil, fmt.Errorf("manifest: %s: name must be provided", absPath)
	}
	return manifest, nil
}

// Resolve interprets rel against the manifest's directory. Empty stays empty.
func (m *Manifest) Resolve(rel string) string {
	if rel == "" || filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(filepath.Dir(m.Path), rel)
}

// FindManifest walks up from start looking for lox.yml.
func FindManifest(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve start directory %q: %w", start, err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	origin := dir
	for {
		candidate := filepath.Join(dir, ManifestFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found from %s upwards: %w", ManifestFileName, origin, ErrManifestNotFound)
		}
		dir = parent
	}
}
