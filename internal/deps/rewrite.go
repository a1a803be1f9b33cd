package deps

import (
	"strings"

	"git.home.luguber.info/inful/workspacegen/internal/model"
)

const liferayGroup = "com.liferay"

// FixLibraryDependencies converts com.liferay* library dependencies that
// resolve to a workspace module into project dependencies. When both sides
// use init JSPs the library edge is kept and only annotated, since those
// modules must see each other on the classpath.
func FixLibraryDependencies(index model.VersionIndex, module *model.Module) *model.Module {
	kept := make([]model.Dependency, 0, len(module.LibraryDependencies))
	var converted []model.Dependency

	for _, dep := range module.LibraryDependencies {
		if !strings.HasPrefix(dep.Group, liferayGroup) {
			kept = append(kept, dep)
			continue
		}
		entry, ok := index.Lookup(dep.Name)
		if !ok {
			kept = append(kept, dep)
			continue
		}
		if module.HasInitJsp && entry.HasInitJsp {
			dep.HasInitJsp = true
			kept = append(kept, dep)
			continue
		}
		converted = append(converted, model.Dependency{
			Type:      model.TypeProject,
			Name:      entry.ProjectName,
			TestScope: dep.TestScope,
		})
	}

	module.LibraryDependencies = kept
	if len(converted) > 0 {
		module.ProjectDependencies = append(module.ProjectDependencies, converted...)
	}
	return module
}

// FixProjectDependencies handles project dependencies of init JSP modules.
// With addAsLibrary unset (POM generation) matching edges are dropped;
// otherwise edges onto other init JSP modules become library dependencies on
// the target bundle.
func FixProjectDependencies(index model.VersionIndex, addAsLibrary bool, module *model.Module) *model.Module {
	if !module.HasInitJsp || len(module.ProjectDependencies) == 0 {
		return module
	}

	kept := make([]model.Dependency, 0, len(module.ProjectDependencies))
	var converted []model.Dependency

	for _, dep := range module.ProjectDependencies {
		entry, ok := index.Lookup(dep.Name)
		if !ok {
			kept = append(kept, dep)
			continue
		}
		if !addAsLibrary {
			continue
		}
		if !entry.HasInitJsp {
			kept = append(kept, dep)
			continue
		}
		version := dep.Version
		if version == "" {
			version = entry.Version
		}
		converted = append(converted, model.Dependency{
			Type:       model.TypeLibrary,
			Group:      liferayGroup,
			Name:       entry.BundleName,
			Version:    version,
			TestScope:  dep.TestScope,
			HasInitJsp: true,
		})
	}

	module.ProjectDependencies = kept
	if len(converted) > 0 {
		module.LibraryDependencies = append(module.LibraryDependencies, converted...)
	}
	return module
}
