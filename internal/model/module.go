package model

import (
	"path"
	"slices"
)

// Dependency types.
const (
	TypeLibrary = "library"
	TypeProject = "project"
)

// Module is a single IDE module record. Core modules, OSGi modules and plugins
// share this shape; fields a given parser does not know about stay empty.
type Module struct {
	ModuleName          string       `yaml:"moduleName" json:"moduleName"`
	ModulePath          string       `yaml:"modulePath" json:"modulePath"`
	BundleSymbolicName  string       `yaml:"bundleSymbolicName,omitempty" json:"bundleSymbolicName,omitempty"`
	BundleVersion       string       `yaml:"bundleVersion,omitempty" json:"bundleVersion,omitempty"`
	HasInitJsp          bool         `yaml:"hasInitJsp,omitempty" json:"hasInitJsp,omitempty"`
	WebrootFolders      []string     `yaml:"webrootFolders,omitempty" json:"webrootFolders,omitempty"`
	SourceFolders       []string     `yaml:"sourceFolders,omitempty" json:"sourceFolders,omitempty"`
	ResourceFolders     []string     `yaml:"resourceFolders,omitempty" json:"resourceFolders,omitempty"`
	TestSourceFolders   []string     `yaml:"testSourceFolders,omitempty" json:"testSourceFolders,omitempty"`
	TestResourceFolders []string     `yaml:"testResourceFolders,omitempty" json:"testResourceFolders,omitempty"`
	LibraryDependencies []Dependency `yaml:"libraryDependencies,omitempty" json:"libraryDependencies,omitempty"`
	ProjectDependencies []Dependency `yaml:"projectDependencies,omitempty" json:"projectDependencies,omitempty"`
}

// Clone returns a deep copy so independent pipelines can rewrite dependencies
// without observing each other's changes.
func (m *Module) Clone() *Module {
	if m == nil {
		return nil
	}
	c := *m
	c.WebrootFolders = slices.Clone(m.WebrootFolders)
	c.SourceFolders = slices.Clone(m.SourceFolders)
	c.ResourceFolders = slices.Clone(m.ResourceFolders)
	c.TestSourceFolders = slices.Clone(m.TestSourceFolders)
	c.TestResourceFolders = slices.Clone(m.TestResourceFolders)
	c.LibraryDependencies = slices.Clone(m.LibraryDependencies)
	c.ProjectDependencies = slices.Clone(m.ProjectDependencies)
	return &c
}

// HasWebroot reports whether the module declares at least one webroot folder.
func (m *Module) HasWebroot() bool { return len(m.WebrootFolders) > 0 }

// IMLPath is the module descriptor location relative to the project root.
func (m *Module) IMLPath() string {
	return JoinPath(m.ModulePath, m.ModuleName+".iml")
}

// Dependency is a library or project edge of a module.
type Dependency struct {
	Type        string `yaml:"type" json:"type"`
	Name        string `yaml:"name" json:"name"`
	Group       string `yaml:"group,omitempty" json:"group,omitempty"`
	Version     string `yaml:"version,omitempty" json:"version,omitempty"`
	LibraryName string `yaml:"libraryName,omitempty" json:"libraryName,omitempty"`
	TestScope   bool   `yaml:"testScope,omitempty" json:"testScope,omitempty"`
	Exported    bool   `yaml:"exported,omitempty" json:"exported,omitempty"`
	HasInitJsp  bool   `yaml:"hasInitJsp,omitempty" json:"hasInitJsp,omitempty"`
}

// HasGroup reports whether the dependency carries Maven coordinates.
func (d Dependency) HasGroup() bool { return d.Group != "" }

// Key identifies a dependency for deduplication: group and name when a group
// is present, the bare name otherwise.
func (d Dependency) Key() string {
	if d.Group != "" {
		return d.Group + ":" + d.Name
	}
	return d.Name
}

// JoinPath joins slash separated project paths. Artifact paths are always
// slash separated; conversion to OS paths happens at write time.
func JoinPath(elems ...string) string { return path.Join(elems...) }
