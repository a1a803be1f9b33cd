package render

import (
	"encoding/xml"
	"slices"
	"strings"

	"git.home.luguber.info/inful/workspacegen/internal/deps"
	apperrors "git.home.luguber.info/inful/workspacegen/internal/errors"
	"git.home.luguber.info/inful/workspacegen/internal/model"
)

const (
	moduleDirURL   = "file://$MODULE_DIR$"
	projectDirURL  = "file://$PROJECT_DIR$"
	projectDirPath = "$PROJECT_DIR$"

	workspaceFile = ".idea/modules.xml"
)

type component struct {
	XMLName               xml.Name      `xml:"component"`
	Name                  string        `xml:"name,attr"`
	InheritCompilerOutput string        `xml:"inherit-compiler-output,attr,omitempty"`
	ExcludeOutput         *struct{}     `xml:"exclude-output"`
	Content               *contentRoot  `xml:"content"`
	OrderEntries          []orderEntry  `xml:"orderEntry"`
	Facets                []facet       `xml:"facet"`
	Modules               *moduleList   `xml:"modules"`
	Library               *libraryTable `xml:"library"`
}

type contentRoot struct {
	URL     string         `xml:"url,attr"`
	Folders []sourceFolder `xml:"sourceFolder"`
}

type sourceFolder struct {
	URL          string `xml:"url,attr"`
	IsTestSource string `xml:"isTestSource,attr,omitempty"`
	Type         string `xml:"type,attr,omitempty"`
}

type orderEntry struct {
	Attrs []xml.Attr `xml:",any,attr"`
}

type facet struct {
	Type     string   `xml:"type,attr"`
	Name     string   `xml:"name,attr"`
	Webroots []folder `xml:"configuration>webroots>root"`
}

type folder struct {
	URL      string `xml:"url,attr"`
	Relative string `xml:"relative,attr,omitempty"`
}

type moduleList struct {
	Modules []moduleRef `xml:"module"`
}

type moduleRef struct {
	FileURL  string `xml:"fileurl,attr"`
	FilePath string `xml:"filepath,attr"`
}

type moduleDocument struct {
	XMLName    xml.Name    `xml:"module"`
	Type       string      `xml:"type,attr"`
	Version    string      `xml:"version,attr"`
	Components []component `xml:"component"`
}

type projectDocument struct {
	XMLName    xml.Name    `xml:"project"`
	Version    string      `xml:"version,attr"`
	Components []component `xml:"component"`
}

// ModuleXML renders the module descriptor at <modulePath>/<moduleName>.iml.
func (r *Renderer) ModuleXML(module *model.Module) (model.Artifact, error) {
	if module.ModuleName == "" {
		return model.Artifact{}, apperrors.RenderFailed(module.ModulePath, errNoModuleName)
	}
	doc := moduleDocument{
		Type:    "JAVA_MODULE",
		Version: "4",
		Components: []component{
			newModuleRootManager(module),
			facetManager(module),
		},
	}
	path := module.IMLPath()
	content, err := marshalDocument(doc)
	if err != nil {
		return model.Artifact{}, apperrors.RenderFailed(path, err)
	}
	return model.Artifact{Path: path, Content: content}, nil
}

// newModuleRootManager lists order entries in a fixed sequence: the module's
// own roots, Maven libraries, module dependencies, then local jar libraries.
func newModuleRootManager(module *model.Module) component {
	c := component{
		Name:                  "NewModuleRootManager",
		InheritCompilerOutput: "true",
		ExcludeOutput:         &struct{}{},
		Content:               &contentRoot{URL: moduleDirURL},
	}

	for _, f := range module.SourceFolders {
		c.Content.Folders = append(c.Content.Folders, sourceFolder{URL: moduleURL(f), IsTestSource: "false"})
	}
	for _, f := range module.ResourceFolders {
		c.Content.Folders = append(c.Content.Folders, sourceFolder{URL: moduleURL(f), Type: "java-resource"})
	}
	for _, f := range module.TestSourceFolders {
		c.Content.Folders = append(c.Content.Folders, sourceFolder{URL: moduleURL(f), IsTestSource: "true"})
	}
	for _, f := range module.TestResourceFolders {
		c.Content.Folders = append(c.Content.Folders, sourceFolder{URL: moduleURL(f), Type: "java-test-resource"})
	}

	c.OrderEntries = append(c.OrderEntries,
		newOrderEntry("type", "inheritedJdk"),
		newOrderEntry("type", "sourceFolder", "forTests", "false"),
	)
	c.OrderEntries = append(c.OrderEntries, moduleLibraryOrderEntries(module)...)
	c.OrderEntries = append(c.OrderEntries, projectOrderEntries(module)...)
	c.OrderEntries = append(c.OrderEntries, coreLibraryOrderEntries(module)...)
	return c
}

func moduleLibraryOrderEntries(module *model.Module) []orderEntry {
	var out []orderEntry
	for _, dep := range module.LibraryDependencies {
		if !dep.HasGroup() {
			continue
		}
		out = append(out, libraryOrderEntry(dep))
	}
	return out
}

func coreLibraryOrderEntries(module *model.Module) []orderEntry {
	var out []orderEntry
	for _, dep := range module.LibraryDependencies {
		if dep.HasGroup() {
			continue
		}
		out = append(out, libraryOrderEntry(dep))
	}
	return out
}

func libraryOrderEntry(dep model.Dependency) orderEntry {
	e := newOrderEntry("type", "library")
	e = withScope(e, dep)
	name := dep.LibraryName
	if name == "" {
		name = deps.LibraryName(dep)
	}
	e.Attrs = append(e.Attrs, attr("name", name), attr("level", "project"))
	return e
}

func projectOrderEntries(module *model.Module) []orderEntry {
	out := make([]orderEntry, 0, len(module.ProjectDependencies))
	for _, dep := range module.ProjectDependencies {
		e := newOrderEntry("type", "module", "module-name", dep.Name)
		out = append(out, withScope(e, dep))
	}
	return out
}

func withScope(e orderEntry, dep model.Dependency) orderEntry {
	if dep.Exported {
		e.Attrs = append(e.Attrs, attr("exported", ""))
	}
	if dep.TestScope {
		e.Attrs = append(e.Attrs, attr("scope", "TEST"))
	}
	return e
}

func facetManager(module *model.Module) component {
	c := component{Name: "FacetManager"}
	if !module.HasWebroot() {
		return c
	}
	f := facet{Type: "web", Name: "Web"}
	for _, w := range module.WebrootFolders {
		f.Webroots = append(f.Webroots, folder{URL: moduleURL(w), Relative: "/"})
	}
	c.Facets = []facet{f}
	return c
}

// WorkspaceXML renders .idea/modules.xml listing every module by name.
func (r *Renderer) WorkspaceXML(modules []*model.Module) (model.Artifact, error) {
	sorted := slices.Clone(modules)
	slices.SortStableFunc(sorted, func(a, b *model.Module) int {
		return strings.Compare(a.ModuleName, b.ModuleName)
	})

	list := &moduleList{}
	for _, m := range sorted {
		iml := m.IMLPath()
		list.Modules = append(list.Modules, moduleRef{
			FileURL:  projectDirURL + "/" + iml,
			FilePath: projectDirPath + "/" + iml,
		})
	}
	doc := projectDocument{
		Version:    "4",
		Components: []component{{Name: "ProjectModuleManager", Modules: list}},
	}
	content, err := marshalDocument(doc)
	if err != nil {
		return model.Artifact{}, apperrors.RenderFailed(workspaceFile, err)
	}
	return model.Artifact{Path: workspaceFile, Content: content}, nil
}

func moduleURL(folder string) string {
	folder = strings.TrimPrefix(folder, "./")
	if folder == "" || folder == "." {
		return moduleDirURL
	}
	return moduleDirURL + "/" + folder
}

func newOrderEntry(pairs ...string) orderEntry {
	e := orderEntry{Attrs: make([]xml.Attr, 0, len(pairs)/2+3)}
	for i := 0; i+1 < len(pairs); i += 2 {
		e.Attrs = append(e.Attrs, attr(pairs[i], pairs[i+1]))
	}
	return e
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}
