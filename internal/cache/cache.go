// Package cache locates Maven artifacts in local Gradle and Maven caches so
// library tables can point at binary and source jars that already exist on
// disk.
package cache

import (
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"git.home.luguber.info/inful/workspacegen/internal/logfields"
	"git.home.luguber.info/inful/workspacegen/internal/model"
)

// Layout distinguishes cache directory structures.
type Layout string

const (
	LayoutGradle Layout = "gradle"
	LayoutMaven  Layout = "maven"
)

var (
	gradleCacheDirs = []string{
		filepath.Join(".gradle", "caches", "modules-2", "files-2.1"),
		filepath.Join("caches", "modules-2", "files-2.1"),
	}
	mavenCacheDirs = []string{
		filepath.Join(".m2", "repository"),
	}
)

// Root is a registered cache directory.
type Root struct {
	Dir    string
	Layout Layout
}

// Locator collects cache roots and resolves jar paths against them.
type Locator struct {
	roots []Root
}

// NewLocator creates an empty locator.
func NewLocator() *Locator { return &Locator{} }

// Roots returns the registered cache roots in registration order.
func (l *Locator) Roots() []Root { return slices.Clone(l.roots) }

// CheckGradleCache registers the Gradle module cache under dir, if any.
func (l *Locator) CheckGradleCache(dir string) bool {
	return l.check(dir, gradleCacheDirs, LayoutGradle)
}

// CheckMavenCache registers the local Maven repository under dir, if any.
func (l *Locator) CheckMavenCache(dir string) bool {
	return l.check(dir, mavenCacheDirs, LayoutMaven)
}

func (l *Locator) check(dir string, candidates []string, layout Layout) bool {
	if dir == "" {
		return false
	}
	for _, c := range candidates {
		root := filepath.Join(dir, c)
		if !isDir(root) {
			continue
		}
		if slices.ContainsFunc(l.roots, func(r Root) bool { return r.Dir == root }) {
			return true
		}
		l.roots = append(l.roots, Root{Dir: root, Layout: layout})
		slog.Debug("Registered artifact cache", logfields.Path(root), slog.String("layout", string(layout)))
		return true
	}
	return false
}

// JarPaths returns the binary jar for dep from the first cache that has it.
// Dependencies without full Maven coordinates never resolve.
func (l *Locator) JarPaths(dep model.Dependency) []string {
	if dep.Group == "" || dep.Name == "" || dep.Version == "" {
		return nil
	}
	jarName := dep.Name + "-" + dep.Version + ".jar"
	for _, root := range l.roots {
		var found string
		switch root.Layout {
		case LayoutGradle:
			found = findGradleJar(root.Dir, dep, jarName)
		case LayoutMaven:
			candidate := filepath.Join(root.Dir, filepath.FromSlash(strings.ReplaceAll(dep.Group, ".", "/")), dep.Name, dep.Version, jarName)
			if isFile(candidate) {
				found = candidate
			}
		}
		if found != "" {
			return []string{found}
		}
	}
	return nil
}

// findGradleJar looks through the hash directories Gradle keeps per version.
func findGradleJar(root string, dep model.Dependency, jarName string) string {
	pattern := filepath.Join(root, dep.Group, dep.Name, dep.Version, "*", jarName)
	matches, err := filepath.Glob(pattern)
	if err != nil || len(matches) == 0 {
		return ""
	}
	slices.Sort(matches)
	for _, m := range matches {
		if isFile(m) {
			return m
		}
	}
	return ""
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}

func isFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}

// IsFile reports whether p names an existing regular file.
func IsFile(p string) bool { return isFile(p) }
