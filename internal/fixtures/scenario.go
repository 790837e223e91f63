package fixtures

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Def is one named, pre-checked binding added to the environment before a
// scenario's checks run (kernel.Environment.Add's own contract: the type
// must already typecheck against the environment prefix present so far).
type Def struct {
	Name string `yaml:"name"`
	Type *Node  `yaml:"type"`
}

// Check is one assertion run against the environment built by a Scenario's
// Defs and Inds: either Expr is expected to infer ExpectType (compared via
// an application-based equality probe, since TypeOf is the only externally
// available equality surface), or it is expected to fail, optionally with a
// specific kernelerrors code.
type Check struct {
	Name        string `yaml:"name"`
	Expr        *Node  `yaml:"expr"`
	ExpectType  *Node  `yaml:"expect_type,omitempty"`
	// Negate flips ExpectType's verdict: the check passes when the
	// equality probe reports the two types NOT definitionally equal
	// (spec §8.4 scenario 6's "Sort Z is not def-eq to Sort (S Z)").
	Negate      bool   `yaml:"negate,omitempty"`
	ExpectError bool   `yaml:"expect_error,omitempty"`
	ExpectCode  string `yaml:"expect_code,omitempty"`
}

// Scenario is one YAML scenario file: a named group of definitions,
// inductive declarations, and checks run against a fresh environment.
type Scenario struct {
	Name        string             `yaml:"name"`
	Description string             `yaml:"description"`
	Defs        []Def              `yaml:"defs"`
	Inds        map[string]IndNode `yaml:"inds"`
	Checks      []Check            `yaml:"checks"`
}

// Load reads and parses a single scenario YAML file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = filepath.Base(path)
	}
	return &s, nil
}

// LoadDir reads every *.yaml file in dir (sorted by filename) as a
// Scenario.
func LoadDir(dir string) ([]*Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read scenario dir %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".yaml" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	scenarios := make([]*Scenario, 0, len(names))
	for _, name := range names {
		s, err := Load(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}
