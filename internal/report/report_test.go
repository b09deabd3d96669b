package report

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/buildorder"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/ctxlog"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/model"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/model/modeltest"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/resolve"
)

func resolvedFixture(t *testing.T) *resolve.Result {
	t.Helper()
	ctx := ctxlog.Discard(context.Background())

	packages := []*model.RawPackage{
		modeltest.Lib("Base").
			Define("BASE", "1", model.AccessPublic).
			External(model.ExternalDependency{
				Name:    "zlib",
				Type:    model.ExternalDynamicLib,
				Access:  model.AccessPublic,
				Version: semver.MustParse("1.2.11"),
			}).
			Build(),
		modeltest.Lib("GLES").Build(),
		modeltest.Lib("Render").Flavor(model.Flavor{Name: "Backend", Options: []model.FlavorOption{
			{Name: "GL", Dependencies: []model.Dependency{{Name: "GLES"}}},
			{Name: "Vulkan"},
		}}).Build(),
		modeltest.Exe("App").
			Dep("Render", model.AccessPublic, modeltest.Pin("Backend", "GL")).
			Dep("Base", model.AccessPrivate).
			Build(),
	}

	order, err := buildorder.Resolve(ctx, packages, buildorder.Options{})
	require.NoError(t, err)
	result, err := resolve.Resolve(ctx, order)
	require.NoError(t, err)
	return result
}

func findPackage(t *testing.T, doc Document, name string) Package {
	t.Helper()
	for _, p := range doc.Packages {
		if p.Name == name {
			return p
		}
	}
	require.Failf(t, "package not found", "%s", name)
	return Package{}
}

func TestBuild(t *testing.T) {
	doc := Build("Ubuntu", resolvedFixture(t))

	assert.Equal(t, "Ubuntu", doc.Platform)
	assert.ElementsMatch(t, []string{"Base", "GLES", "Render", "App"}, doc.BuildOrder)
	assert.Equal(t, "App", doc.BuildOrder[len(doc.BuildOrder)-1])
	assert.NotContains(t, doc.BuildOrder, buildorder.TopLevelName)

	app := findPackage(t, doc, "App")
	assert.Equal(t, "executable", app.Type)
	assert.Equal(t, []Dependency{
		{Name: "Render", Access: "public", Constraints: []string{"Backend=GL"}},
		{Name: "Base", Access: "private"},
	}, app.Dependencies)
	require.Len(t, app.Defines, 1)
	assert.Equal(t, Define{
		Attribute: Attribute{Name: "BASE", Access: "private", IntroducedBy: "Base", ConsumedBy: "Base"},
		Value:     "1",
	}, app.Defines[0])

	base := findPackage(t, doc, "Base")
	require.Len(t, base.ExternalDependencies, 1)
	assert.Equal(t, "1.2.11", base.ExternalDependencies[0].Version)
	assert.Equal(t, "dynamic_lib", base.ExternalDependencies[0].Type)

	render := findPackage(t, doc, "Render")
	assert.Equal(t, []Dependency{{Name: "GLES", Access: "public", Flavor: "Backend=GL"}}, render.Dependencies)
	assert.Equal(t, []Instance{
		{Flavors: []string{"Render/Backend=GL"}, Dependencies: []string{"GLES"}},
		{Flavors: []string{"Render/Backend=Vulkan"}},
	}, render.Instances)

	assert.Equal(t, []Instance{
		{Flavors: []string{"Render/Backend=GL"}, Dependencies: []string{"Render<Render/Backend=GL>", "Base"}},
	}, app.Instances)
	assert.Empty(t, base.Instances)
}

func TestWriteYAML(t *testing.T) {
	doc := Build("Ubuntu", resolvedFixture(t))
	var buf bytes.Buffer

	require.NoError(t, WriteYAML(&buf, doc, Document{Platform: "Windows"}))

	dec := yaml.NewDecoder(&buf)
	var first, second map[string]any
	require.NoError(t, dec.Decode(&first))
	require.NoError(t, dec.Decode(&second))
	assert.Equal(t, "Ubuntu", first["platform"])
	assert.Equal(t, "Windows", second["platform"])

	packages, ok := first["packages"].([]any)
	require.True(t, ok)
	assert.Len(t, packages, 4)
}

func TestWriteJSON(t *testing.T) {
	doc := Build("Ubuntu", resolvedFixture(t))
	var buf bytes.Buffer

	require.NoError(t, WriteJSON(&buf, doc))

	var decoded []Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, doc.BuildOrder, decoded[0].BuildOrder)
	assert.Contains(t, buf.String(), `"introduced_by": "Base"`)
}

func TestWriteJSON_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWriteDOT(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteDOT(&buf, "Ubuntu", resolvedFixture(t)))

	out := buf.String()
	assert.Contains(t, out, `digraph "Ubuntu"`)
	assert.Contains(t, out, `"App" [shape=doubleoctagon, color=black, label="App\nexecutable"];`)
	assert.Contains(t, out, `"App" -> "Render" [style=solid, taillabel="<Backend=GL>"];`)
	assert.Contains(t, out, `"App" -> "Base" [style=dashed];`)
	assert.Contains(t, out, `"Render" -> "GLES" [style=solid, color=orange, taillabel="Backend=GL"];`)
	assert.NotContains(t, out, buildorder.TopLevelName)
}
