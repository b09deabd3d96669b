package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/config"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/inmemorystore"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/localsession"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/model"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/report"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/runstore"
)

// staticLoader returns a fixed model.
type staticLoader struct {
	model *config.Model
	err   error
}

func (l *staticLoader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	return l.model, l.err
}

func sampleModel() *config.Model {
	return &config.Model{Descriptors: []*config.PackageDescriptor{
		{
			Name:   "Base",
			Type:   model.PackageTypeLibrary,
			Common: config.Section{Defines: []model.Define{{Name: "BASE", Access: model.AccessPublic}}},
			Platforms: map[string]*config.PlatformSection{
				"Windows": {Section: config.Section{Defines: []model.Define{{Name: "WIN32", Access: model.AccessPublic}}}},
				"Ubuntu":  {},
			},
		},
		{
			Name:   "App",
			Type:   model.PackageTypeExecutable,
			Common: config.Section{Dependencies: []model.Dependency{{Name: "Base", Access: model.AccessPublic}}},
		},
		{
			Name: "Tool",
			Type: model.PackageTypeExecutable,
		},
	}}
}

func runApp(t *testing.T, cfg Config, loader config.Loader) (string, string, error) {
	t.Helper()
	validated, err := NewConfig(cfg)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	logs := &bytes.Buffer{}
	a := NewApp(out, logs, validated, loader, &localsession.SessionFactory{})
	err = a.Run(context.Background())
	return out.String(), logs.String(), err
}

func TestApp_Run_ResolvesEveryPlatformInOrder(t *testing.T) {
	cfg := validConfig()
	cfg.Format = "json"
	cfg.LogLevel = "debug"

	out, logs, err := runApp(t, cfg, &staticLoader{model: sampleModel()})

	require.NoError(t, err)
	var docs []report.Document
	require.NoError(t, json.Unmarshal([]byte(out), &docs))
	require.Len(t, docs, 2)
	assert.Equal(t, "Ubuntu", docs[0].Platform)
	assert.Equal(t, "Windows", docs[1].Platform)
	assert.NotEmpty(t, docs[0].RunID)
	assert.Equal(t, []string{"Base", "App", "Tool"}, docs[1].BuildOrder)

	var app report.Package
	for _, p := range docs[1].Packages {
		if p.Name == "App" {
			app = p
		}
	}
	require.Len(t, app.Defines, 2)
	assert.Equal(t, "BASE", app.Defines[0].Name)
	assert.Equal(t, "WIN32", app.Defines[1].Name)
	assert.Contains(t, logs, "App: Platform resolved.")
}

func TestApp_Run_NarrowsToRequestedPackages(t *testing.T) {
	cfg := validConfig()
	cfg.Platforms = []string{"Ubuntu"}
	cfg.Packages = []string{"App"}

	out, _, err := runApp(t, cfg, &staticLoader{model: sampleModel()})

	require.NoError(t, err)
	assert.Contains(t, out, "- Base")
	assert.Contains(t, out, "- App")
	assert.NotContains(t, out, "Tool")
}

func TestApp_Run_UnknownRequestedPackage(t *testing.T) {
	cfg := validConfig()
	cfg.Platforms = []string{"Ubuntu"}
	cfg.Packages = []string{"Ap"}

	_, _, err := runApp(t, cfg, &staticLoader{model: sampleModel()})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "platform 'Ubuntu': requested package 'Ap' not found, did you mean 'App")
}

func TestApp_Run_ReportsEveryFailedPlatform(t *testing.T) {
	m := sampleModel()
	m.Descriptors[1].Common.Dependencies = append(m.Descriptors[1].Common.Dependencies, model.Dependency{Name: "Missing"})

	_, _, err := runApp(t, validConfig(), &staticLoader{model: m})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "platform 'Ubuntu'")
	assert.Contains(t, err.Error(), "platform 'Windows'")
	assert.Contains(t, err.Error(), "dependency to 'Missing' not found")
}

func TestApp_Run_LoaderFailure(t *testing.T) {
	boom := errors.New("boom")

	_, _, err := runApp(t, validConfig(), &staticLoader{err: boom})

	assert.ErrorIs(t, err, boom)
}

func TestApp_Run_NoPlatforms(t *testing.T) {
	_, _, err := runApp(t, validConfig(), &staticLoader{model: &config.Model{}})
	assert.ErrorIs(t, err, ErrNoPlatforms)
}

func TestApp_Run_DotFormat(t *testing.T) {
	cfg := validConfig()
	cfg.Format = "dot"
	cfg.Platforms = []string{"Ubuntu"}

	out, _, err := runApp(t, cfg, &staticLoader{model: sampleModel()})

	require.NoError(t, err)
	assert.Contains(t, out, `digraph "Ubuntu"`)
	assert.Contains(t, out, `"App" -> "Base" [style=solid];`)
}

func TestCollect_ReportsPlatformsWithoutResult(t *testing.T) {
	ctx := context.Background()
	runs := inmemorystore.New()
	require.NoError(t, runs.SetStatus(ctx, "Windows", runstore.StatusResolved))
	require.NoError(t, runs.SetOutcome(ctx, "Windows", runstore.Outcome{RunID: "w"}))
	require.NoError(t, runs.SetStatus(ctx, "Android", runstore.StatusRunning))
	require.NoError(t, runs.SetStatus(ctx, "QNX", runstore.StatusFailed))
	require.NoError(t, runs.SetError(ctx, "QNX", errors.New("platform 'QNX': broken")))

	outcomes, err := collect(ctx, runs)

	require.Error(t, err)
	assert.Nil(t, outcomes)
	assert.Contains(t, err.Error(), "platform 'Android' has no result, status running")
	assert.Contains(t, err.Error(), "platform 'QNX': broken")
}

func TestCollect_ReturnsOutcomesSortedByPlatform(t *testing.T) {
	ctx := context.Background()
	runs := inmemorystore.New()
	for _, platform := range []string{"Yocto", "Android", "Windows"} {
		require.NoError(t, runs.SetStatus(ctx, platform, runstore.StatusResolved))
		require.NoError(t, runs.SetOutcome(ctx, platform, runstore.Outcome{RunID: platform}))
	}

	outcomes, err := collect(ctx, runs)

	require.NoError(t, err)
	require.Len(t, outcomes, 3)
	assert.Equal(t, "Android", outcomes[0].platform)
	assert.Equal(t, "Windows", outcomes[1].platform)
	assert.Equal(t, "Yocto", outcomes[2].RunID)
}
