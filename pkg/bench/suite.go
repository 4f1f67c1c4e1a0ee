package bench

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	apperrors "github.com/lennartvogt/treedom/pkg/errors"
)

// Suite is a named list of decomposition instances to solve.
type Suite struct {
	Name      string     `toml:"name"`
	Instances []Instance `toml:"instance"`

	dir string
}

// Instance is one decomposition file within a suite. Expected is the
// dominating set size the run is checked against; nil means the run is
// recorded without a pass/fail verdict.
type Instance struct {
	Name     string `toml:"name"`
	File     string `toml:"file"`
	Expected *int   `toml:"expected"`
}

// LoadSuite reads and validates a suite from a TOML file. Instance
// paths must be relative; they are resolved against the suite file's
// directory.
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read suite: %w", err)
	}

	var s Suite
	if err := toml.Unmarshal(data, &s); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decode suite %s", path)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if len(s.Instances) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "suite %s lists no instances", path)
	}
	for i, inst := range s.Instances {
		if inst.Name == "" {
			return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "instance %d has no name", i)
		}
		if err := apperrors.ValidateRelPath(inst.File); err != nil {
			return nil, fmt.Errorf("instance %s: %w", inst.Name, err)
		}
	}

	s.dir = filepath.Dir(path)
	return &s, nil
}

// Dir returns the directory instance paths are resolved against.
func (s *Suite) Dir() string { return s.dir }

// Resolve returns the on-disk path of an instance file.
func (s *Suite) Resolve(inst Instance) string {
	return filepath.Join(s.dir, filepath.FromSlash(inst.File))
}
