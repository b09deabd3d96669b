package node

import (
	"testing"

	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNode_SealPreventsMutation(t *testing.T) {
	n := New(&model.RawPackage{Name: "App", Type: model.PackageTypeExecutable})
	require.NoError(t, n.AddDependency(Dependency{Target: "Base"}))

	n.Seal()

	assert.True(t, n.IsSealed())
	err := n.AddDependency(Dependency{Target: "Other"})
	assert.ErrorIs(t, err, ErrSealed)
	assert.Equal(t, []string{"Base"}, n.DependencyNames())
}

func TestNode_DependencyNamesAreDistinctAndSorted(t *testing.T) {
	n := New(&model.RawPackage{Name: "App"})
	tag := &FlavorTag{Flavor: model.FlavorID{Owner: "App", Name: "Backend"}, Option: "GL"}
	require.NoError(t, n.AddDependency(Dependency{Target: "zlib"}))
	require.NoError(t, n.AddDependency(Dependency{Target: "Base"}))
	require.NoError(t, n.AddDependency(Dependency{Target: "zlib", Flavor: tag}))

	assert.Equal(t, []string{"Base", "zlib"}, n.DependencyNames())
	assert.Len(t, n.Dependencies(), 3)
	assert.Len(t, n.PlainDependencies(), 2)
	assert.Equal(t, "Backend=GL", tag.String())
}

func TestNode_DependenciesReturnsCopy(t *testing.T) {
	n := New(&model.RawPackage{Name: "App"})
	require.NoError(t, n.AddDependency(Dependency{Target: "Base"}))

	deps := n.Dependencies()
	deps[0].Target = "Changed"

	assert.Equal(t, "Base", n.Dependencies()[0].Target)
}
