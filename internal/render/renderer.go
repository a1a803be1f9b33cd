package render

import (
	"encoding/xml"
	"errors"
	"io/fs"
	"strings"

	"git.home.luguber.info/inful/workspacegen/internal/cache"
	"git.home.luguber.info/inful/workspacegen/internal/model"
)

// JarLocator resolves the binary jars of a Maven-coordinate library.
type JarLocator interface {
	JarPaths(dep model.Dependency) []string
}

type noJars struct{}

func (noJars) JarPaths(model.Dependency) []string { return nil }

// Renderer renders artifacts for one project directory.
type Renderer struct {
	project    fs.FS
	jars       JarLocator
	fileExists func(string) bool
}

// NewRenderer creates a renderer reading local libraries from project and
// resolving Maven libraries through jars. A nil locator resolves nothing.
func NewRenderer(project fs.FS, jars JarLocator) *Renderer {
	if jars == nil {
		jars = noJars{}
	}
	return &Renderer{project: project, jars: jars, fileExists: cache.IsFile}
}

// WithFileCheck overrides the probe used for -sources jars (fluent helper).
func (r *Renderer) WithFileCheck(fn func(string) bool) *Renderer {
	r.fileExists = fn
	return r
}

// projectFileExists reports whether name is a regular file in the project.
func (r *Renderer) projectFileExists(name string) bool {
	info, err := fs.Stat(r.project, name)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

func marshalDocument(v any) (string, error) {
	data, err := xml.MarshalIndent(v, "", "\t")
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.Grow(len(xml.Header) + len(data) + 1)
	b.WriteString(xml.Header)
	b.Write(data)
	b.WriteByte('\n')
	return b.String(), nil
}

var errNoModuleName = errors.New("module has no name")
