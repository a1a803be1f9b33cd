package deps

import "git.home.luguber.info/inful/workspacegen/internal/model"

// UniqueLibraries flattens the library dependencies of all modules keeping
// the first occurrence of each dependency key. LibraryName is filled in on
// the returned copies.
func UniqueLibraries(modules ...[]*model.Module) []model.Dependency {
	seen := make(map[string]struct{})
	var out []model.Dependency
	for _, group := range modules {
		for _, m := range group {
			for _, dep := range m.LibraryDependencies {
				key := dep.Key()
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				out = append(out, SetLibraryName(dep))
			}
		}
	}
	return out
}

// SetLibraryName fills in the IDE library table name of dep when missing.
func SetLibraryName(dep model.Dependency) model.Dependency {
	if dep.LibraryName == "" {
		dep.LibraryName = LibraryName(dep)
	}
	return dep
}

// LibraryName is the library table name: the bare name for local jar
// libraries, group:name:version for Maven coordinates.
func LibraryName(dep model.Dependency) string {
	if !dep.HasGroup() {
		return dep.Name
	}
	name := dep.Group + ":" + dep.Name
	if dep.Version != "" {
		name += ":" + dep.Version
	}
	return name
}
