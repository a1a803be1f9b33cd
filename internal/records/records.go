package records

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	apperrors "git.home.luguber.info/inful/workspacegen/internal/errors"
	"git.home.luguber.info/inful/workspacegen/internal/model"
)

// Set is the materialized record set for one run.
type Set struct {
	Core    []*model.Module `yaml:"core" json:"core"`
	Modules []*model.Module `yaml:"modules" json:"modules"`
	Plugins []*model.Module `yaml:"plugins" json:"plugins"`
}

// Load reads and validates a records file.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, apperrors.RecordsNotFound(path)
	}
	if err != nil {
		return nil, apperrors.RecordsInvalid(path, err)
	}
	set, err := Parse(data)
	if err != nil {
		return nil, apperrors.RecordsInvalid(path, err)
	}
	return set, nil
}

// Parse decodes and validates records. Unknown fields are rejected so parser
// drift shows up as an error rather than silently missing data.
func Parse(data []byte) (*Set, error) {
	var set Set
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&set); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}
	return &set, nil
}

// Validate checks that every record is usable by the pipelines.
func (s *Set) Validate() error {
	lists := []struct {
		name    string
		modules []*model.Module
	}{{"core", s.Core}, {"modules", s.Modules}, {"plugins", s.Plugins}}

	for _, list := range lists {
		for i, m := range list.modules {
			if err := validateModule(m); err != nil {
				return fmt.Errorf("%s[%d]: %w", list.name, i, err)
			}
		}
	}
	return nil
}

func validateModule(m *model.Module) error {
	if m == nil {
		return fmt.Errorf("empty record")
	}
	if m.ModuleName == "" {
		return fmt.Errorf("moduleName is required")
	}
	for _, dep := range m.LibraryDependencies {
		if err := validateDependency(dep, model.TypeLibrary); err != nil {
			return fmt.Errorf("%s: %w", m.ModuleName, err)
		}
	}
	for _, dep := range m.ProjectDependencies {
		if err := validateDependency(dep, model.TypeProject); err != nil {
			return fmt.Errorf("%s: %w", m.ModuleName, err)
		}
	}
	return nil
}

func validateDependency(dep model.Dependency, want string) error {
	if dep.Name == "" {
		return fmt.Errorf("%s dependency without name", want)
	}
	if dep.Type != "" && dep.Type != want {
		return fmt.Errorf("dependency %s has type %q in %s list", dep.Name, dep.Type, want)
	}
	return nil
}

// Clone deep-copies the set so pipelines can rewrite it independently.
func (s *Set) Clone() *Set {
	return &Set{
		Core:    cloneAll(s.Core),
		Modules: cloneAll(s.Modules),
		Plugins: cloneAll(s.Plugins),
	}
}

func cloneAll(modules []*model.Module) []*model.Module {
	if modules == nil {
		return nil
	}
	out := make([]*model.Module, len(modules))
	for i, m := range modules {
		out[i] = m.Clone()
	}
	return out
}

// Len is the total number of records.
func (s *Set) Len() int { return len(s.Core) + len(s.Modules) + len(s.Plugins) }
