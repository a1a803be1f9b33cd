package deps

import (
	"slices"
	"strings"

	"git.home.luguber.info/inful/workspacegen/internal/model"
)

// Pseudo libraries rendered from fixed locations instead of Maven coordinates.
const (
	DevelopmentLibrary = "development"
	GradlewLibrary     = "gradlew"
)

// CheckExportDependencies adds the pseudo libraries test and Gradle plugin
// modules need and marks dependencies of test and third-party modules as
// exported.
func CheckExportDependencies(module *model.Module) *model.Module {
	testModule := strings.Contains(module.ModuleName, "test")

	if testModule && !slices.ContainsFunc(module.LibraryDependencies, isNamed(DevelopmentLibrary)) {
		module.LibraryDependencies = append(module.LibraryDependencies, pseudoLibrary(DevelopmentLibrary))
	}

	// NOTE: no presence check here, so normalizing a gradle- module twice
	// yields two gradlew entries. Callers run this once per loaded record set.
	if strings.HasPrefix(module.ModuleName, "gradle-") {
		module.LibraryDependencies = append(module.LibraryDependencies, pseudoLibrary(GradlewLibrary))
	}

	if !testModule && !isThirdParty(module) {
		return module
	}
	for i := range module.LibraryDependencies {
		module.LibraryDependencies[i].Exported = true
	}
	for i := range module.ProjectDependencies {
		module.ProjectDependencies[i].Exported = true
	}
	return module
}

func isThirdParty(module *model.Module) bool {
	return strings.Contains(module.ModulePath, "sdk") ||
		(strings.Contains(module.ModulePath, "core") && strings.Contains(module.ModuleName, "osgi")) ||
		strings.Contains(module.ModulePath, "third-party")
}

func isNamed(name string) func(model.Dependency) bool {
	return func(d model.Dependency) bool { return d.Name == name }
}

func pseudoLibrary(name string) model.Dependency {
	return model.Dependency{Type: model.TypeLibrary, Name: name, LibraryName: name}
}

// SortModuleAttributes sorts folder lists lexicographically and dependency
// lists by name. Equal names keep their relative order.
func SortModuleAttributes(module *model.Module) *model.Module {
	slices.Sort(module.SourceFolders)
	slices.Sort(module.ResourceFolders)
	slices.Sort(module.TestSourceFolders)
	slices.Sort(module.TestResourceFolders)
	slices.SortStableFunc(module.LibraryDependencies, compareByName)
	slices.SortStableFunc(module.ProjectDependencies, compareByName)
	return module
}

func compareByName(a, b model.Dependency) int { return strings.Compare(a.Name, b.Name) }
