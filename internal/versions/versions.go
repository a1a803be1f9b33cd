// Package versions builds the version index used to rewrite dependency edges.
//
// Core modules contribute an entry only when their bnd.bnd declares a
// Bundle-Version; the key is the bundle symbolic name read from build.xml or
// derived from the module name. OSGi modules always contribute two entries,
// one under their symbolic name and one under their legacy module name.
package versions

import (
	"errors"
	"io/fs"
	"log/slog"
	"regexp"
	"strings"

	apperrors "git.home.luguber.info/inful/workspacegen/internal/errors"
	"git.home.luguber.info/inful/workspacegen/internal/logfields"
	"git.home.luguber.info/inful/workspacegen/internal/model"
)

const (
	bndFile      = "bnd.bnd"
	buildXMLFile = "build.xml"
	bundlePrefix = "com.liferay."
)

var (
	bundleNamePattern    = regexp.MustCompile(`property name="manifest.bundle.symbolic.name" value="([^";]*)`)
	bundleVersionPattern = regexp.MustCompile(`Bundle-Version: ([^\r\n]+)`)
)

// Build runs the core pass followed by the module pass. Module entries win
// on key collisions because they are written last.
func Build(fsys fs.FS, core, modules []*model.Module) (model.VersionIndex, error) {
	index := make(model.VersionIndex, len(core)+2*len(modules))
	for _, m := range core {
		if err := SetCoreBundleVersions(index, fsys, m); err != nil {
			return nil, err
		}
	}
	for _, m := range modules {
		SetModuleBundleVersions(index, m)
	}
	return index, nil
}

// SetCoreBundleVersions adds the entry for a core module, if it has one.
func SetCoreBundleVersions(index model.VersionIndex, fsys fs.FS, module *model.Module) error {
	bndPath := model.JoinPath(module.ModulePath, bndFile)
	bndContent, ok, err := readIfFile(fsys, bndPath)
	if err != nil || !ok {
		return err
	}

	bundleName := DefaultBundleName(module.ModuleName)

	buildXML, ok, err := readIfFile(fsys, model.JoinPath(module.ModulePath, buildXMLFile))
	if err != nil {
		return err
	}
	if ok {
		match := bundleNamePattern.FindSubmatch(buildXML)
		if match == nil {
			slog.Debug("No bundle symbolic name in build.xml", logfields.Module(module.ModuleName))
			return nil
		}
		bundleName = string(match[1])
	}

	match := bundleVersionPattern.FindSubmatch(bndContent)
	if match == nil {
		slog.Debug("No Bundle-Version in bnd.bnd", logfields.Module(module.ModuleName))
		return nil
	}

	index[bundleName] = model.VersionEntry{
		ProjectName: module.ModuleName,
		Version:     string(match[1]),
		BundleName:  bundleName,
	}
	return nil
}

// SetModuleBundleVersions adds the symbolic name and legacy name entries of
// an OSGi module.
func SetModuleBundleVersions(index model.VersionIndex, module *model.Module) {
	entry := model.VersionEntry{
		ProjectName: module.ModuleName,
		Version:     module.BundleVersion,
		BundleName:  module.BundleSymbolicName,
		HasWebroot:  module.HasWebroot(),
		HasInitJsp:  module.HasInitJsp,
	}
	if module.BundleSymbolicName != "" {
		index[module.BundleSymbolicName] = entry
	}
	index[module.ModuleName] = entry
}

// DefaultBundleName derives the symbolic name used when a core module has no
// build.xml: portal-kernel becomes com.liferay.portal.kernel.
func DefaultBundleName(moduleName string) string {
	return bundlePrefix + strings.ReplaceAll(moduleName, "-", ".")
}

// readIfFile returns ok=false when name is missing or a directory. Any other
// failure is fatal for the run.
func readIfFile(fsys fs.FS, name string) ([]byte, bool, error) {
	info, err := fs.Stat(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, apperrors.DescriptorRead(name, err)
	}
	if info.IsDir() {
		return nil, false, nil
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, false, apperrors.DescriptorRead(name, err)
	}
	return data, true, nil
}
