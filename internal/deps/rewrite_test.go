package deps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/workspacegen/internal/model"
)

func testIndex() model.VersionIndex {
	return model.VersionIndex{
		"com.liferay.journal.api": {ProjectName: "journal-api", BundleName: "com.liferay.journal.api", Version: "2.0.0"},
		"journal-api":             {ProjectName: "journal-api", BundleName: "com.liferay.journal.api", Version: "2.0.0"},
		"com.liferay.taglib.jsp":  {ProjectName: "taglib-jsp", BundleName: "com.liferay.taglib.jsp", Version: "1.4.0", HasInitJsp: true},
		"taglib-jsp":              {ProjectName: "taglib-jsp", BundleName: "com.liferay.taglib.jsp", Version: "1.4.0", HasInitJsp: true},
	}
}

func TestFixLibraryDependencies(t *testing.T) {
	t.Run("converts indexed com.liferay libraries to project dependencies", func(t *testing.T) {
		m := &model.Module{
			ModuleName: "journal-web",
			LibraryDependencies: []model.Dependency{
				{Type: model.TypeLibrary, Group: "com.liferay", Name: "com.liferay.journal.api", Version: "2.0.0", TestScope: true},
				{Type: model.TypeLibrary, Group: "com.liferay.portal", Name: "com.liferay.portal.kernel", Version: "2.0.0"},
				{Type: model.TypeLibrary, Group: "javax.portlet", Name: "com.liferay.journal.api"},
				{Type: model.TypeLibrary, Name: "development"},
			},
			ProjectDependencies: []model.Dependency{{Type: model.TypeProject, Name: "portal-kernel"}},
		}

		FixLibraryDependencies(testIndex(), m)

		names := make([]string, 0, len(m.LibraryDependencies))
		for _, d := range m.LibraryDependencies {
			names = append(names, d.Name)
		}
		assert.Equal(t, []string{"com.liferay.portal.kernel", "com.liferay.journal.api", "development"}, names)
		assert.Equal(t, "javax.portlet", m.LibraryDependencies[1].Group)
		require.Len(t, m.ProjectDependencies, 2)
		assert.Equal(t, model.Dependency{Type: model.TypeProject, Name: "journal-api", TestScope: true}, m.ProjectDependencies[1])
	})

	t.Run("init JSP on both sides keeps the library and annotates it", func(t *testing.T) {
		m := &model.Module{
			ModuleName: "journal-taglib",
			HasInitJsp: true,
			LibraryDependencies: []model.Dependency{
				{Type: model.TypeLibrary, Group: "com.liferay", Name: "com.liferay.taglib.jsp", Version: "1.4.0"},
			},
		}

		FixLibraryDependencies(testIndex(), m)

		require.Len(t, m.LibraryDependencies, 1)
		assert.True(t, m.LibraryDependencies[0].HasInitJsp)
		assert.Empty(t, m.ProjectDependencies)
	})

	t.Run("init JSP module converts libraries whose target has no init JSP", func(t *testing.T) {
		m := &model.Module{
			ModuleName: "journal-taglib",
			HasInitJsp: true,
			LibraryDependencies: []model.Dependency{
				{Type: model.TypeLibrary, Group: "com.liferay", Name: "com.liferay.journal.api", TestScope: true},
			},
		}

		FixLibraryDependencies(testIndex(), m)

		assert.Empty(t, m.LibraryDependencies)
		assert.Equal(t, []model.Dependency{{Type: model.TypeProject, Name: "journal-api", TestScope: true}}, m.ProjectDependencies)
	})

	t.Run("target init JSP alone does not keep the library", func(t *testing.T) {
		m := &model.Module{
			ModuleName: "journal-web",
			LibraryDependencies: []model.Dependency{
				{Type: model.TypeLibrary, Group: "com.liferay", Name: "com.liferay.taglib.jsp"},
			},
		}

		FixLibraryDependencies(testIndex(), m)

		assert.Empty(t, m.LibraryDependencies)
		assert.Equal(t, "taglib-jsp", m.ProjectDependencies[0].Name)
	})
}

func TestFixProjectDependencies(t *testing.T) {
	newModule := func() *model.Module {
		return &model.Module{
			ModuleName: "journal-taglib",
			HasInitJsp: true,
			ProjectDependencies: []model.Dependency{
				{Type: model.TypeProject, Name: "journal-api"},
				{Type: model.TypeProject, Name: "taglib-jsp", TestScope: true},
				{Type: model.TypeProject, Name: "unknown-module"},
			},
		}
	}

	t.Run("addAsLibrary false drops indexed project dependencies", func(t *testing.T) {
		m := FixProjectDependencies(testIndex(), false, newModule())

		assert.Equal(t, []model.Dependency{{Type: model.TypeProject, Name: "unknown-module"}}, m.ProjectDependencies)
		assert.Empty(t, m.LibraryDependencies)
	})

	t.Run("addAsLibrary true converts init JSP targets to libraries", func(t *testing.T) {
		m := FixProjectDependencies(testIndex(), true, newModule())

		require.Len(t, m.ProjectDependencies, 2)
		assert.Equal(t, "journal-api", m.ProjectDependencies[0].Name)
		assert.Equal(t, "unknown-module", m.ProjectDependencies[1].Name)
		assert.Equal(t, []model.Dependency{{
			Type:       model.TypeLibrary,
			Group:      "com.liferay",
			Name:       "com.liferay.taglib.jsp",
			Version:    "1.4.0",
			TestScope:  true,
			HasInitJsp: true,
		}}, m.LibraryDependencies)
	})

	t.Run("dependency version wins over indexed version", func(t *testing.T) {
		m := newModule()
		m.ProjectDependencies[1].Version = "1.5.0"

		FixProjectDependencies(testIndex(), true, m)

		assert.Equal(t, "1.5.0", m.LibraryDependencies[0].Version)
	})

	t.Run("modules without init JSP are untouched", func(t *testing.T) {
		m := newModule()
		m.HasInitJsp = false

		FixProjectDependencies(testIndex(), false, m)

		assert.Len(t, m.ProjectDependencies, 3)
	})
}
