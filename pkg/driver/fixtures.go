package driver

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// FixtureSuite is one YAML file of conformance programs.
type FixtureSuite struct {
	Path     string
	Fixtures []Fixture
}

// Fixture is a Lox program plus its expected observable behaviour.
type Fixture struct {
	Name   string             `yaml:"name"`
	Source string             `yaml:"source"`
	Expect FixtureExpectation `yaml:"expect"`
}

// FixtureExpectation lists expected output lines and exit status.
type FixtureExpectation struct {
	Stdout []string `yaml:"stdout"`
	Stderr []string `yaml:"stderr"`
	Exit   int      `yaml:"exit"`
}

// FixtureOutcome is what a fixture actually did.
type FixtureOutcome struct {
	Stdout []string
	Stderr []string
	Exit   int
}

type fixtureSuiteFile struct {
	Fixtures []Fixture `yaml:"fixtures"`
}

// LoadFixtureSuite parses a fixture file. Unknown keys are rejected.
func LoadFixtureSuite(path string) (*FixtureSuite, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("fixtures: open %s: %w", path, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw fixtureSuiteFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return &FixtureSuite{Path: path}, nil
		}
		return nil, fmt.Errorf("fixtures: parse %s: %w", path, err)
	}
	for idx, fixture := range raw.Fixtures {
		if strings.TrimSpace(fixture.Name) == "" {
			return nil, fmt.Errorf("fixtures: %s: fixtures[%d] must have a name", path, idx)
		}
	}
	return &FixtureSuite{Path: path, Fixtures: raw.Fixtures}, nil
}

// CollectFixtureFiles returns every .yml/.yaml file below root, sorted.
func CollectFixtureFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".yml", ".yaml":
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fixtures: walk %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

// RunFixture executes the fixture in a fresh session.
func RunFixture(fixture Fixture) FixtureOutcome {
	var stdout, stderr bytes.Buffer
	session := NewSession(SessionOptions{Stdout: &stdout, Stderr: &stderr})
	result := session.Run(fixture.Source)
	return FixtureOutcome{
		Stdout: outputLines(stdout.String()),
		Stderr: outputLines(stderr.String()),
		Exit:   result.ExitCode(),
	}
}

// Check compares an outcome with the fixture's expectations.
func (f Fixture) Check(outcome FixtureOutcome) error {
	var problems []string
	if !equalLines(f.Expect.Stdout, outcome.Stdout) {
		problems = append(problems, fmt.Sprintf("stdout = %q, want %q", outcome.Stdout, f.Expect.Stdout))
	}
	if !equalLines(f.Expect.Stderr, outcome.Stderr) {
		problems = append(problems, fmt.Sprintf("stderr = %q, want %q", outcome.Stderr, f.Expect.Stderr))
	}
	if f.Expect.Exit != outcome.Exit {
		problems = append(problems, fmt.Sprintf("exit = %d, want %d", outcome.Exit, f.Expect.Exit))
	}
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%s: %s", f.Name, strings.Join(problems, "; "))
}

func outputLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
