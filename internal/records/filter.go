package records

import (
	"fmt"
	"log/slog"
	"path"
	"strings"

	"git.home.luguber.info/inful/workspacegen/internal/logfields"
	"git.home.luguber.info/inful/workspacegen/internal/model"
)

// Filter decides whether modules take part in a run, by module name.
// Patterns use path.Match syntax, including [...] character classes.
type Filter struct {
	include []string
	exclude []string
}

// NewFilter constructs a Filter from glob patterns.
// Empty include slice means include all (unless excluded).
func NewFilter(includeGlobs, excludeGlobs []string) (*Filter, error) {
	compile := func(globs []string) ([]string, error) {
		out := make([]string, 0, len(globs))
		for _, g := range globs {
			if strings.TrimSpace(g) == "" {
				continue
			}
			if _, err := path.Match(g, ""); err != nil {
				return nil, fmt.Errorf("compile glob %s: %w", g, err)
			}
			out = append(out, g)
		}
		return out, nil
	}
	incs, err := compile(includeGlobs)
	if err != nil {
		return nil, err
	}
	excs, err := compile(excludeGlobs)
	if err != nil {
		return nil, err
	}
	return &Filter{include: incs, exclude: excs}, nil
}

// Include reports whether the module passes, with a reason when it does not.
func (f *Filter) Include(module *model.Module) (bool, string) {
	if f == nil {
		return true, ""
	}
	name := module.ModuleName
	for _, g := range f.exclude {
		if matches(g, name) {
			return false, "excluded_by_pattern"
		}
	}
	if len(f.include) == 0 {
		return true, ""
	}
	for _, g := range f.include {
		if matches(g, name) {
			return true, ""
		}
	}
	return false, "not_in_includes"
}

// Apply drops filtered modules from every list of the set in place.
func (f *Filter) Apply(s *Set) int {
	if f == nil || (len(f.include) == 0 && len(f.exclude) == 0) {
		return 0
	}
	dropped := 0
	keep := func(modules []*model.Module) []*model.Module {
		out := modules[:0]
		for _, m := range modules {
			if ok, reason := f.Include(m); !ok {
				slog.Debug("Module filtered", logfields.Module(m.ModuleName), slog.String("reason", reason))
				dropped++
				continue
			}
			out = append(out, m)
		}
		return out
	}
	s.Core = keep(s.Core)
	s.Modules = keep(s.Modules)
	s.Plugins = keep(s.Plugins)
	return dropped
}

// matches reports whether name matches the validated glob g.
func matches(g, name string) bool {
	ok, _ := path.Match(g, name)
	return ok
}
