package render

import (
	"encoding/xml"
	"net/url"
	"strings"

	apperrors "git.home.luguber.info/inful/workspacegen/internal/errors"
	"git.home.luguber.info/inful/workspacegen/internal/model"
)

const (
	pomNamespace      = "http://maven.apache.org/POM/4.0.0"
	pomXSINamespace   = "http://www.w3.org/2001/XMLSchema-instance"
	pomSchemaLocation = "http://maven.apache.org/POM/4.0.0 http://maven.apache.org/xsd/maven-4.0.0.xsd"
	pomModelVersion   = "4.0.0"
	pomFile           = "pom.xml"

	moduleGroupID     = "com.liferay"
	aggregatorGroupID = "com.liferay.dependencies"
	aggregatorID      = "parent"
	aggregatorVersion = "1.0.0-SNAPSHOT"
)

// MavenDependency is a <dependency> element of a generated POM.
type MavenDependency struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version,omitempty"`
	Type       string `xml:"type,omitempty"`
}

// RepositoryEntry is a <repository> element of a generated POM.
type RepositoryEntry struct {
	ID     string `xml:"id"`
	Name   string `xml:"name"`
	URL    string `xml:"url"`
	Layout string `xml:"layout"`
}

type pomProject struct {
	XMLName        xml.Name         `xml:"project"`
	Xmlns          string           `xml:"xmlns,attr"`
	XmlnsXSI       string           `xml:"xmlns:xsi,attr"`
	SchemaLocation string           `xml:"xsi:schemaLocation,attr"`
	ModelVersion   string           `xml:"modelVersion"`
	GroupID        string           `xml:"groupId"`
	ArtifactID     string           `xml:"artifactId"`
	Version        string           `xml:"version"`
	Packaging      string           `xml:"packaging"`
	Modules        *pomModules      `xml:"modules"`
	Dependencies   *pomDependencies `xml:"dependencies"`
	Repositories   *pomRepositories `xml:"repositories"`
}

// Wrapper elements are pointers so a nil list omits the parent element.
type pomModules struct {
	Module []string `xml:"module"`
}

type pomDependencies struct {
	Dependency []MavenDependency `xml:"dependency"`
}

type pomRepositories struct {
	Repository []RepositoryEntry `xml:"repository"`
}

func newPOM(groupID, artifactID, version string) pomProject {
	return pomProject{
		Xmlns:          pomNamespace,
		XmlnsXSI:       pomXSINamespace,
		SchemaLocation: pomSchemaLocation,
		ModelVersion:   pomModelVersion,
		GroupID:        groupID,
		ArtifactID:     artifactID,
		Version:        version,
		Packaging:      "pom",
	}
}

// MavenProject renders <modulePath>/pom.xml. Only library dependencies with
// Maven coordinates are listed; every repository is included.
func MavenProject(module *model.Module, repositories []model.Repository) (model.Artifact, error) {
	path := model.JoinPath(module.ModulePath, pomFile)
	pom := newPOM(moduleGroupID, module.BundleSymbolicName, module.BundleVersion)
	pom.Dependencies = &pomDependencies{}
	pom.Repositories = &pomRepositories{}

	for _, dep := range module.LibraryDependencies {
		if !dep.HasGroup() {
			continue
		}
		pom.Dependencies.Dependency = append(pom.Dependencies.Dependency, MavenDependencyElement(dep))
	}
	for _, repo := range repositories {
		pom.Repositories.Repository = append(pom.Repositories.Repository, RepositoryXMLEntry(repo))
	}

	content, err := marshalDocument(pom)
	if err != nil {
		return model.Artifact{}, apperrors.RenderFailed(path, err)
	}
	return model.Artifact{Path: path, Content: content}, nil
}

// MavenAggregator renders the root pom.xml listing every module path.
func MavenAggregator(modulePaths []string) (model.Artifact, error) {
	pom := newPOM(aggregatorGroupID, aggregatorID, aggregatorVersion)
	pom.Modules = &pomModules{Module: modulePaths}

	content, err := marshalDocument(pom)
	if err != nil {
		return model.Artifact{}, apperrors.RenderFailed(pomFile, err)
	}
	return model.Artifact{Path: pomFile, Content: content}, nil
}

// MavenDependencyElement maps a library dependency to its POM element.
// shrinkwrap-depchain is published as a POM and must be typed as one.
func MavenDependencyElement(dep model.Dependency) MavenDependency {
	el := MavenDependency{
		GroupID:    dep.Group,
		ArtifactID: dep.Name,
		Version:    dep.Version,
	}
	if dep.Group == "org.jboss.shrinkwrap" && dep.Name == "shrinkwrap-depchain" {
		el.Type = "pom"
	}
	return el
}

// RepositoryXMLEntry maps a repository to its POM element. Credentials are
// percent-encoded into the URL authority when a username is set.
func RepositoryXMLEntry(repo model.Repository) RepositoryEntry {
	auth := ""
	if repo.Username != "" {
		auth = encodeURIComponent(repo.Username) + ":" + encodeURIComponent(repo.Password) + "@"
	}
	return RepositoryEntry{
		ID:     repo.ID,
		Name:   repo.Name,
		URL:    repo.Scheme + "://" + auth + repo.Path,
		Layout: repo.Layout,
	}
}

// uriUnreserved are the marks a URI component leaves unescaped on top of
// what url.QueryEscape keeps.
var uriUnreserved = strings.NewReplacer("+", "%20", "%21", "!", "%27", "'", "%28", "(", "%29", ")", "%2A", "*")

// encodeURIComponent escapes everything except A-Z a-z 0-9 - _ . ! ~ * ' ( ).
func encodeURIComponent(s string) string {
	return uriUnreserved.Replace(url.QueryEscape(s))
}
