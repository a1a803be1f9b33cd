package render

import (
	"io/fs"
	"path/filepath"
	"regexp"
	"strings"

	"git.home.luguber.info/inful/workspacegen/internal/deps"
	apperrors "git.home.luguber.info/inful/workspacegen/internal/errors"
	"git.home.luguber.info/inful/workspacegen/internal/model"
)

const (
	librariesDir = ".idea/libraries"

	developmentDir = "lib/development"
	bndJar         = "lib/portal/bnd.jar"
	gradleDists    = ".gradle/wrapper/dists"
)

var nonWord = regexp.MustCompile(`\W`)

type libraryTable struct {
	Name           string         `xml:"name,attr"`
	Properties     *struct{}      `xml:"properties"`
	Classes        rootList       `xml:"CLASSES"`
	Javadoc        rootList       `xml:"JAVADOC"`
	Sources        rootList       `xml:"SOURCES"`
	JarDirectories []jarDirectory `xml:"jarDirectory"`
}

type rootList struct {
	Roots []folder `xml:"root"`
}

type jarDirectory struct {
	URL       string `xml:"url,attr"`
	Recursive string `xml:"recursive,attr"`
}

// JarLibraryXML renders the table of a local jar library (one without Maven
// coordinates) at .idea/libraries/<name>.xml.
//
// The development library lists every jar in lib/development plus the
// portal bnd.jar when present; gradlew points at the wrapper distributions;
// anything else is the directory lib/<name>.
func (r *Renderer) JarLibraryXML(library model.Dependency) (model.Artifact, error) {
	path := librariesDir + "/" + library.Name + ".xml"
	table := &libraryTable{Name: library.Name}

	switch library.Name {
	case deps.DevelopmentLibrary:
		roots, err := r.developmentRoots()
		if err != nil {
			return model.Artifact{}, apperrors.RenderFailed(path, err)
		}
		table.Classes.Roots = roots
	case deps.GradlewLibrary:
		url := projectDirURL + "/" + gradleDists
		table.Classes.Roots = []folder{{URL: url}}
		table.JarDirectories = []jarDirectory{{URL: url, Recursive: "true"}}
	default:
		url := projectDirURL + "/lib/" + library.Name
		table.Classes.Roots = []folder{{URL: url}}
		table.JarDirectories = []jarDirectory{{URL: url, Recursive: "false"}}
	}

	return r.libraryArtifact(path, table)
}

// developmentRoots lists lib/development. A missing or unreadable directory
// is fatal: test modules cannot compile without it.
func (r *Renderer) developmentRoots() ([]folder, error) {
	entries, err := fs.ReadDir(r.project, developmentDir)
	if err != nil {
		return nil, err
	}
	var roots []folder
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".jar") {
			continue
		}
		roots = append(roots, libraryRoot(developmentDir+"/"+e.Name()))
	}
	if r.projectFileExists(bndJar) {
		roots = append(roots, libraryRoot(bndJar))
	}
	return roots, nil
}

// LibraryXML renders the table of a Maven-coordinate library at
// .idea/libraries/<libraryName with non-word characters replaced>.xml.
// Source jars are listed when a -sources sibling exists next to the binary.
func (r *Renderer) LibraryXML(library model.Dependency) (model.Artifact, error) {
	library = deps.SetLibraryName(library)
	path := LibraryFileName(library.LibraryName)
	table := &libraryTable{Name: library.LibraryName, Properties: &struct{}{}}

	for _, bin := range r.jars.JarPaths(library) {
		table.Classes.Roots = append(table.Classes.Roots, libraryRoot(bin))
		if src := MavenSourcePath(bin); r.fileExists(src) {
			table.Sources.Roots = append(table.Sources.Roots, libraryRoot(src))
		}
	}

	return r.libraryArtifact(path, table)
}

func (r *Renderer) libraryArtifact(path string, table *libraryTable) (model.Artifact, error) {
	content, err := marshalDocument(component{Name: "libraryTable", Library: table})
	if err != nil {
		return model.Artifact{}, apperrors.RenderFailed(path, err)
	}
	return model.Artifact{Path: path, Content: content}, nil
}

// LibraryFileName is the library table file for a Maven library name.
func LibraryFileName(libraryName string) string {
	return librariesDir + "/" + nonWord.ReplaceAllString(libraryName, "_") + ".xml"
}

// MavenSourcePath splices -sources in front of the last extension:
// foo/bar-1.0.jar becomes foo/bar-1.0-sources.jar. A path without an
// extension gets the suffix appended.
func MavenSourcePath(binaryPath string) string {
	pos := strings.LastIndex(binaryPath, ".")
	if pos < 0 {
		return binaryPath + "-sources"
	}
	return binaryPath[:pos] + "-sources" + binaryPath[pos:]
}

// libraryRoot points at a jar either inside the project (relative paths) or
// anywhere on disk (absolute cache paths).
func libraryRoot(jarPath string) folder {
	if filepath.IsAbs(jarPath) {
		return folder{URL: "jar://" + filepath.ToSlash(jarPath) + "!/"}
	}
	return folder{URL: "jar://" + projectDirPath + "/" + jarPath + "!/"}
}
