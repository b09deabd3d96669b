package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/buildorder"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/model"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/model/modeltest"
)

var backendID = model.FlavorID{Owner: "Y", Name: "Backend"}

// backendLibrary returns Y with a Backend flavor: GL carries a define and an
// external, Vulkan depends on VulkanLoader.
func backendLibrary() *model.RawPackage {
	flavor := modeltest.NormalFlavor("Backend", false, "GL", "Vulkan")
	flavor.Options[0].Defines = []model.Define{{Name: "USE_GL", Value: "1", Access: model.AccessPublic}}
	flavor.Options[0].ExternalDependencies = []model.ExternalDependency{{Name: "GLESv2", Type: model.ExternalDynamicLib, Access: model.AccessPublic}}
	flavor.Options[1].Dependencies = []model.Dependency{{Name: "VulkanLoader", Access: model.AccessPublic}}
	return modeltest.Lib("Y").Flavor(flavor).Build()
}

func selectedOptions(t *testing.T, instances []Instance, id model.FlavorID) []string {
	t.Helper()
	out := []string{}
	for _, inst := range instances {
		option, ok := inst.Selection(id)
		require.True(t, ok, inst.Description())
		out = append(out, option)
	}
	return out
}

func TestResolve_Instances(t *testing.T) {
	t.Run("selected option contributes its content", func(t *testing.T) {
		result := mustResolve(t,
			backendLibrary(),
			modeltest.Lib("VulkanLoader").Build(),
			modeltest.Exe("App").Public("Y").Build(),
		)

		y := mustPackage(t, result, "Y")
		require.Len(t, y.Instances, 2)
		gl, vulkan := y.Instances[0], y.Instances[1]

		assert.Equal(t, "Y/Backend=GL", gl.Description())
		require.Len(t, gl.Defines, 1)
		assert.Equal(t, "USE_GL", gl.Defines[0].Name)
		require.Len(t, gl.ExternalDependencies, 1)
		assert.Equal(t, "GLESv2", gl.ExternalDependencies[0].Name)
		assert.Empty(t, gl.Dependencies)

		assert.Equal(t, "Y/Backend=Vulkan", vulkan.Description())
		assert.Empty(t, vulkan.Defines)
		require.Len(t, vulkan.Dependencies, 1)
		assert.Equal(t, "VulkanLoader", vulkan.Dependencies[0].Target)
		require.NotNil(t, vulkan.Dependencies[0].Flavor)
		assert.Equal(t, backendID, vulkan.Dependencies[0].Flavor.Flavor)

		app := mustPackage(t, result, "App")
		assert.Equal(t, []string{"GL", "Vulkan"}, selectedOptions(t, app.Instances, backendID))
		require.Len(t, app.Instances[0].Dependencies, 1)
		assert.Equal(t, "Y", app.Instances[0].Dependencies[0].Target)
		assert.Equal(t, gl.Selections, app.Instances[0].Dependencies[0].Selections)
		assert.Empty(t, app.Instances[0].Defines, "option content belongs to the owner's instance")
	})

	t.Run("packages without flavors have one empty instance", func(t *testing.T) {
		result := mustResolve(t,
			modeltest.Lib("Base").Build(),
			modeltest.Lib("Mid").Public("Base").Build(),
		)

		mid := mustPackage(t, result, "Mid")
		require.Len(t, mid.Instances, 1)
		assert.Empty(t, mid.Instances[0].Selections)
		assert.Empty(t, mid.Instances[0].Description())
		assert.Empty(t, mustPackage(t, result, buildorder.TopLevelName).Instances)
	})

	t.Run("pin keeps only the pinned configuration", func(t *testing.T) {
		result := mustResolve(t,
			backendLibrary(),
			modeltest.Lib("VulkanLoader").Build(),
			modeltest.Exe("App").Dep("Y", model.AccessPublic, modeltest.Pin("Backend", "GL")).Build(),
		)

		app := mustPackage(t, result, "App")
		assert.Equal(t, []string{"GL"}, selectedOptions(t, app.Instances, backendID))
	})

	t.Run("combined instances agree on shared flavors", func(t *testing.T) {
		result := mustResolve(t,
			backendLibrary(),
			modeltest.Lib("VulkanLoader").Build(),
			modeltest.Lib("Render").Dep("Y", model.AccessPublic, modeltest.Pin("Backend", "Vulkan")).Build(),
			modeltest.Exe("App").Public("Render", "Y").Build(),
		)

		app := mustPackage(t, result, "App")
		require.Len(t, app.Instances, 1)
		assert.Equal(t, []string{"Vulkan"}, selectedOptions(t, app.Instances, backendID))
		require.Len(t, app.Instances[0].Dependencies, 2)
		assert.Equal(t, "Render", app.Instances[0].Dependencies[0].Target)
		assert.Equal(t, "Y", app.Instances[0].Dependencies[1].Target)
	})

	t.Run("independent flavors multiply", func(t *testing.T) {
		result := mustResolve(t,
			backendLibrary(),
			modeltest.Lib("VulkanLoader").Build(),
			modeltest.Lib("Audio").Flavor(modeltest.NormalFlavor("Output", false, "Alsa", "Pulse", "Null")).Build(),
			modeltest.Exe("App").Public("Y", "Audio").Build(),
		)

		assert.Len(t, mustPackage(t, result, "App").Instances, 6)
	})

	t.Run("external constraint narrows the constraint package", func(t *testing.T) {
		result, err := resolvePackages(t, buildorder.Options{
			ExternalConstraints: model.ExternalConstraints{
				"App": {{Owner: "Y", Flavor: "Backend", Option: "Vulkan"}},
			},
		},
			backendLibrary(),
			modeltest.Lib("VulkanLoader").Build(),
			modeltest.Exe("App").Public("Y").Build(),
		)
		require.NoError(t, err)

		assert.Len(t, mustPackage(t, result, "App").Instances, 2)
		constraint := mustPackage(t, result, "SYS_EXTERNAL_FLAVOR_CONSTRAINT_ON_App")
		assert.Equal(t, []string{"Vulkan"}, selectedOptions(t, constraint.Instances, backendID))
	})

	t.Run("flavor extension applies its option content", func(t *testing.T) {
		ext := model.FlavorExtension{Owner: "P", Name: "Color", Options: modeltest.Options("Red")}
		ext.Options[0].Defines = []model.Define{{Name: "RED_FROM_Q", Value: "1"}}

		result := mustResolve(t,
			modeltest.Lib("P").Flavor(modeltest.NormalFlavor("Color", true, "Red", "Green")).Build(),
			modeltest.Lib("Q").Public("P").Extend(ext).Build(),
		)

		q := mustPackage(t, result, "Q")
		colorID := model.FlavorID{Owner: "P", Name: "Color"}
		assert.Equal(t, []string{"Red", "Green"}, selectedOptions(t, q.Instances, colorID))
		require.Len(t, q.Instances[0].Defines, 1)
		assert.Equal(t, "RED_FROM_Q", q.Instances[0].Defines[0].Name)
		assert.Empty(t, q.Instances[1].Defines)
	})
}

func TestResolve_NotSupportedFollowsInstances(t *testing.T) {
	t.Run("unsupported option dependency only marks its instances", func(t *testing.T) {
		result := mustResolve(t,
			backendLibrary(),
			modeltest.Lib("VulkanLoader").NotSupported().Build(),
			modeltest.Exe("App").Public("Y").Build(),
		)

		y := mustPackage(t, result, "Y")
		assert.False(t, y.NotSupported)
		require.Len(t, y.Instances, 2)
		assert.False(t, y.Instances[0].NotSupported)
		assert.True(t, y.Instances[1].NotSupported)

		app := mustPackage(t, result, "App")
		assert.False(t, app.NotSupported)
		assert.True(t, app.Instances[1].NotSupported)
	})

	t.Run("package is unsupported when every instance is", func(t *testing.T) {
		result := mustResolve(t,
			backendLibrary(),
			modeltest.Lib("VulkanLoader").NotSupported().Build(),
			modeltest.Exe("App").Dep("Y", model.AccessPublic, modeltest.Pin("Backend", "Vulkan")).Build(),
		)

		assert.False(t, mustPackage(t, result, "Y").NotSupported)
		app := mustPackage(t, result, "App")
		assert.True(t, app.NotSupported)
		assert.False(t, app.DirectNotSupported)
	})
}

func TestInstanceErrors(t *testing.T) {
	assert.EqualError(t, &NoInstanceError{Package: "App"}, "package 'App' has no valid flavor configuration")
	assert.EqualError(t, &InstanceLimitError{Package: "App", Limit: MaxInstancesPerPackage},
		"package 'App' has more than 4096 flavor configurations")
}
