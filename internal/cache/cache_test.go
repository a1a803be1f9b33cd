package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/workspacegen/internal/model"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte("jar"), 0o600))
}

func TestLocatorGradleCache(t *testing.T) {
	home := t.TempDir()
	root := filepath.Join(home, ".gradle", "caches", "modules-2", "files-2.1")
	jar := filepath.Join(root, "com.liferay", "com.liferay.petra.string", "1.0.0", "abc123", "com.liferay.petra.string-1.0.0.jar")
	writeFile(t, jar)
	writeFile(t, filepath.Join(root, "com.liferay", "com.liferay.petra.string", "1.0.0", "def456", "com.liferay.petra.string-1.0.0-sources.jar"))

	l := NewLocator()
	require.True(t, l.CheckGradleCache(home))
	require.True(t, l.CheckGradleCache(home), "re-registration is a no-op")
	require.Len(t, l.Roots(), 1)

	got := l.JarPaths(model.Dependency{Group: "com.liferay", Name: "com.liferay.petra.string", Version: "1.0.0"})
	assert.Equal(t, []string{jar}, got)
	assert.Nil(t, l.JarPaths(model.Dependency{Group: "com.liferay", Name: "com.liferay.petra.string", Version: "2.0.0"}))
	assert.Nil(t, l.JarPaths(model.Dependency{Name: "development"}))
}

func TestLocatorMavenCache(t *testing.T) {
	home := t.TempDir()
	jar := filepath.Join(home, ".m2", "repository", "org", "jboss", "shrinkwrap", "shrinkwrap-api", "1.2.6", "shrinkwrap-api-1.2.6.jar")
	writeFile(t, jar)

	l := NewLocator()
	assert.False(t, l.CheckGradleCache(home))
	require.True(t, l.CheckMavenCache(home))

	got := l.JarPaths(model.Dependency{Group: "org.jboss.shrinkwrap", Name: "shrinkwrap-api", Version: "1.2.6"})
	assert.Equal(t, []string{jar}, got)
}

func TestLocatorFirstRootWins(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	dep := model.Dependency{Group: "junit", Name: "junit", Version: "4.12"}
	firstJar := filepath.Join(first, "caches", "modules-2", "files-2.1", "junit", "junit", "4.12", "h1", "junit-4.12.jar")
	writeFile(t, firstJar)
	writeFile(t, filepath.Join(second, ".m2", "repository", "junit", "junit", "4.12", "junit-4.12.jar"))

	l := NewLocator()
	l.CheckGradleCache(first)
	l.CheckMavenCache(second)

	assert.Equal(t, []string{firstJar}, l.JarPaths(dep))
}

func TestCheckMissingDirectories(t *testing.T) {
	l := NewLocator()
	assert.False(t, l.CheckGradleCache(""))
	assert.False(t, l.CheckMavenCache(filepath.Join(t.TempDir(), "nope")))
	assert.Empty(t, l.Roots())
}
