package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "git.home.luguber.info/inful/workspacegen/internal/errors"
	"git.home.luguber.info/inful/workspacegen/internal/metrics"
	"git.home.luguber.info/inful/workspacegen/internal/model"
	"git.home.luguber.info/inful/workspacegen/internal/records"
	"git.home.luguber.info/inful/workspacegen/internal/workspace"
)

type capturingRecorder struct {
	mu       sync.Mutex
	stages   map[string]int
	results  map[string]metrics.ResultLabel
	outcomes map[string]metrics.OutcomeLabel
	kinds    map[string]int
	modules  map[string]int
}

func newCapturingRecorder() *capturingRecorder {
	return &capturingRecorder{
		stages:   map[string]int{},
		results:  map[string]metrics.ResultLabel{},
		outcomes: map[string]metrics.OutcomeLabel{},
		kinds:    map[string]int{},
		modules:  map[string]int{},
	}
}

func (c *capturingRecorder) ObserveStageDuration(pipeline, stage string, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stages[pipeline+"/"+stage]++
}

func (c *capturingRecorder) IncStageResult(pipeline, stage string, result metrics.ResultLabel) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results[pipeline+"/"+stage] = result
}

func (c *capturingRecorder) ObserveRunDuration(string, time.Duration) {}

func (c *capturingRecorder) IncRunOutcome(pipeline string, outcome metrics.OutcomeLabel) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.outcomes[pipeline] = outcome
}

func (c *capturingRecorder) IncArtifact(kind, _ string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.kinds[kind]++
}

func (c *capturingRecorder) SetModules(pipeline string, n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.modules[pipeline] = n
}

type staticRepos []model.Repository

func (s staticRepos) Repositories() []model.Repository { return s }

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
}

func readFile(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err, rel)
	return string(data)
}

// fixture lays out a small portal checkout and a Maven cache in a fake home.
func fixture(t *testing.T) (project, home string, set *records.Set) {
	t.Helper()
	project = t.TempDir()
	home = t.TempDir()

	writeFile(t, project, "portal-kernel/bnd.bnd", "Bundle-Name: Liferay Portal Kernel\nBundle-Version: 2.13.0\n")
	writeFile(t, project, "lib/development/junit.jar", "jar")
	writeFile(t, home, ".m2/repository/javax/portlet/portlet-api/2.0/portlet-api-2.0.jar", "jar")
	writeFile(t, home, ".m2/repository/javax/portlet/portlet-api/2.0/portlet-api-2.0-sources.jar", "jar")

	set = &records.Set{
		Core: []*model.Module{
			{ModuleName: "portal-kernel", ModulePath: "portal-kernel", SourceFolders: []string{"src"}},
		},
		Modules: []*model.Module{
			{
				ModuleName:         "journal-api",
				ModulePath:         "modules/apps/journal/journal-api",
				BundleSymbolicName: "com.liferay.journal.api",
				BundleVersion:      "2.0.0",
				SourceFolders:      []string{"src/main/java"},
				LibraryDependencies: []model.Dependency{
					{Type: model.TypeLibrary, Group: "javax.portlet", Name: "portlet-api", Version: "2.0"},
					{Type: model.TypeLibrary, Group: "com.liferay.portal", Name: "com.liferay.portal.kernel", Version: "2.0.0"},
				},
			},
			{
				ModuleName:         "journal-web",
				ModulePath:         "modules/apps/journal/journal-web",
				BundleSymbolicName: "com.liferay.journal.web",
				BundleVersion:      "1.0.0",
				HasInitJsp:         true,
				WebrootFolders:     []string{"src/main/resources/META-INF/resources"},
				LibraryDependencies: []model.Dependency{
					{Type: model.TypeLibrary, Group: "com.liferay", Name: "com.liferay.journal.api", Version: "2.0.0"},
				},
				ProjectDependencies: []model.Dependency{
					{Type: model.TypeProject, Name: "journal-service"},
				},
			},
			{
				ModuleName: "journal-test",
				ModulePath: "modules/apps/journal/journal-test",
				ProjectDependencies: []model.Dependency{
					{Type: model.TypeProject, Name: "journal-api"},
				},
			},
		},
		Plugins: []*model.Module{
			{ModuleName: "sample-portlet", ModulePath: "plugins/sample-portlet", SourceFolders: []string{"b", "a"}},
		},
	}
	return project, home, set
}

func newTestGenerator(t *testing.T, project, home string) (*Generator, *workspace.Manager, *capturingRecorder) {
	t.Helper()
	sink := workspace.NewManager(project)
	require.NoError(t, sink.Create())
	rec := newCapturingRecorder()
	repos := staticRepos{{ID: "apache", Name: "Apache", Scheme: "http", Path: "repo.maven.apache.org/maven2", Layout: "default"}}
	gen := NewGenerator(Options{ProjectDir: project, HomeDir: home, GradleCacheDirs: []string{"../missing-cache"}}, repos, sink).
		WithRecorder(rec)
	return gen, sink, rec
}

func TestWorkspacePipeline(t *testing.T) {
	project, home, set := fixture(t)
	gen, _, rec := newTestGenerator(t, project, home)

	report, err := gen.Workspace(context.Background(), set)
	require.NoError(t, err)

	assert.Equal(t, metrics.OutcomeSuccess, report.Outcome)
	assert.Equal(t, 5, report.Modules)
	assert.Equal(t, 5, report.Artifacts[KindModule])
	assert.Equal(t, 1, report.Artifacts[KindWorkspace])
	assert.Equal(t, 1, report.Artifacts[KindJarLibrary])
	assert.Equal(t, 1, report.Artifacts[KindLibrary])
	assert.Equal(t, report.Total(), report.Written)

	api := readFile(t, project, "modules/apps/journal/journal-api/journal-api.iml")
	assert.Contains(t, api, `module-name="portal-kernel"`)
	assert.NotContains(t, api, "com.liferay.portal.kernel")
	assert.Contains(t, api, `name="javax.portlet:portlet-api:2.0"`)

	web := readFile(t, project, "modules/apps/journal/journal-web/journal-web.iml")
	assert.Contains(t, web, `module-name="journal-api"`)
	assert.Contains(t, web, `module-name="journal-service"`)
	assert.Contains(t, web, `<facet type="web" name="Web">`)

	test := readFile(t, project, "modules/apps/journal/journal-test/journal-test.iml")
	assert.Contains(t, test, `<orderEntry type="module" module-name="journal-api" exported="">`)
	assert.Contains(t, test, `<orderEntry type="library" exported="" name="development" level="project">`)

	plugin := readFile(t, project, "plugins/sample-portlet/sample-portlet.iml")
	assert.Less(t, strings.Index(plugin, "$MODULE_DIR$/a"), strings.Index(plugin, "$MODULE_DIR$/b"))

	modules := readFile(t, project, ".idea/modules.xml")
	assert.Less(t, strings.Index(modules, "journal-api.iml"), strings.Index(modules, "portal-kernel.iml"))
	assert.Less(t, strings.Index(modules, "portal-kernel.iml"), strings.Index(modules, "sample-portlet.iml"))

	assert.Contains(t, readFile(t, project, ".idea/libraries/development.xml"), "lib/development/junit.jar")

	portlet := readFile(t, project, ".idea/libraries/javax_portlet_portlet_api_2_0.xml")
	assert.Contains(t, portlet, filepath.ToSlash(filepath.Join(home, ".m2/repository/javax/portlet/portlet-api/2.0/portlet-api-2.0.jar")))
	assert.Contains(t, portlet, "portlet-api-2.0-sources.jar")

	assert.Equal(t, 1, rec.stages["workspace/"+StageRenderLibraries])
	assert.Equal(t, metrics.ResultSuccess, rec.results["workspace/"+StageRegisterCaches])
	assert.Equal(t, metrics.OutcomeSuccess, rec.outcomes[PipelineWorkspace])
	assert.Equal(t, 5, rec.modules[PipelineWorkspace])
}

func TestWorkspacePipelineLeavesInputUntouched(t *testing.T) {
	project, home, set := fixture(t)
	gen, _, _ := newTestGenerator(t, project, home)

	_, err := gen.Workspace(context.Background(), set)
	require.NoError(t, err)

	assert.Len(t, set.Modules[0].LibraryDependencies, 2)
	assert.Empty(t, set.Modules[0].ProjectDependencies)
	assert.Empty(t, set.Modules[2].LibraryDependencies)
	assert.Equal(t, []string{"b", "a"}, set.Plugins[0].SourceFolders)
}

func TestWorkspacePipelineIsIdempotentOnDisk(t *testing.T) {
	project, home, set := fixture(t)
	gen, _, _ := newTestGenerator(t, project, home)

	_, err := gen.Workspace(context.Background(), set)
	require.NoError(t, err)

	report, err := gen.Workspace(context.Background(), set)
	require.NoError(t, err)
	assert.Zero(t, report.Written)
	assert.Equal(t, report.Total(), report.Unchanged)
}

func TestProjectObjectModelsPipeline(t *testing.T) {
	project, home, set := fixture(t)
	gen, _, rec := newTestGenerator(t, project, home)

	report, err := gen.ProjectObjectModels(context.Background(), set)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Artifacts[KindPOM])
	assert.Equal(t, 1, report.Artifacts[KindAggregator])

	api := readFile(t, project, "modules/apps/journal/journal-api/pom.xml")
	assert.Contains(t, api, "<artifactId>com.liferay.journal.api</artifactId>")
	assert.Contains(t, api, "<artifactId>portlet-api</artifactId>")
	assert.NotContains(t, api, "com.liferay.portal.kernel")
	assert.Contains(t, api, "<url>http://repo.maven.apache.org/maven2</url>")
	assert.NotContains(t, api, "<modules>")

	root := readFile(t, project, "pom.xml")
	assert.Contains(t, root, "<module>modules/apps/journal/journal-api</module>")
	assert.Contains(t, root, "<module>modules/apps/journal/journal-test</module>")
	assert.NotContains(t, root, "portal-kernel")
	assert.NotContains(t, root, "<dependencies>")
	assert.NotContains(t, root, "<repositories>")

	_, err = os.Stat(filepath.Join(project, ".idea"))
	assert.True(t, os.IsNotExist(err), "POM pipeline writes no IDE files")
	assert.Equal(t, metrics.OutcomeSuccess, rec.outcomes[PipelinePOM])
}

func TestGenerateRunsBothPipelines(t *testing.T) {
	project, home, set := fixture(t)
	gen, _, _ := newTestGenerator(t, project, home)

	reports, err := gen.Generate(context.Background(), set)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, PipelineWorkspace, reports[0].Pipeline)
	assert.Equal(t, PipelinePOM, reports[1].Pipeline)

	// Each pipeline rewrote its own copy; the loaded records are untouched.
	assert.Len(t, set.Modules[1].LibraryDependencies, 1)
	assert.Len(t, set.Modules[1].ProjectDependencies, 1)
	_, err = os.Stat(filepath.Join(project, "modules/apps/journal/journal-web/pom.xml"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(project, "modules/apps/journal/journal-web/journal-web.iml"))
	assert.NoError(t, err)
}

func TestPipelineCanceled(t *testing.T) {
	project, home, set := fixture(t)
	gen, sink, rec := newTestGenerator(t, project, home)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := gen.Workspace(ctx, set)
	require.Error(t, err)
	assert.True(t, apperrors.IsCategory(err, apperrors.CategoryRuntime))
	assert.Equal(t, metrics.OutcomeCanceled, report.Outcome)
	assert.Empty(t, sink.Written())
	assert.Equal(t, metrics.ResultCanceled, rec.results["workspace/"+StageSortPlugins])
}

func TestPipelineFatalRenderError(t *testing.T) {
	project, home, set := fixture(t)
	require.NoError(t, os.RemoveAll(filepath.Join(project, "lib", "development")))
	gen, _, rec := newTestGenerator(t, project, home)

	report, err := gen.Workspace(context.Background(), set)
	require.Error(t, err)
	assert.True(t, apperrors.IsCategory(err, apperrors.CategoryRender))
	assert.Equal(t, metrics.OutcomeFailed, report.Outcome)
	assert.Equal(t, metrics.ResultFatal, rec.results["workspace/"+StageRenderLibraries])

	ce, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, StageRenderLibraries, ce.Context["stage"])
}

func TestPipelineDryRun(t *testing.T) {
	project, home, set := fixture(t)
	sink := workspace.NewManager(project).WithDryRun(true)
	gen := NewGenerator(Options{ProjectDir: project, HomeDir: home}, nil, sink)

	report, err := gen.ProjectObjectModels(context.Background(), set)
	require.NoError(t, err)
	assert.Equal(t, 4, report.Skipped)

	_, err = os.Stat(filepath.Join(project, "pom.xml"))
	assert.True(t, os.IsNotExist(err))
}
