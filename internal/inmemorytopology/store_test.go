package inmemorytopology

import (
	"context"
	"testing"

	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/model"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/node"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/topologystore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNode(name string) *node.Node {
	return node.New(&model.RawPackage{Name: name, Type: model.PackageTypeLibrary})
}

func TestAddAndGetNode(t *testing.T) {
	s := New()
	ctx := context.Background()
	testNode := newNode("Base")

	err := s.AddNode(ctx, testNode)
	require.NoError(t, err)

	retrievedNode, ok := s.GetNode(ctx, "Base")
	require.True(t, ok)
	assert.Same(t, testNode, retrievedNode)

	_, ok = s.GetNode(ctx, "Missing")
	assert.False(t, ok)
}

func TestAddNode_DuplicateNameFails(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.AddNode(ctx, newNode("Base")))

	err := s.AddNode(ctx, newNode("Base"))

	var dupErr *topologystore.DuplicateNodeError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, "Base", dupErr.Name)
	assert.EqualError(t, err, "package 'Base' defined multiple times")
}

func TestDependencies(t *testing.T) {
	s := New()
	ctx := context.Background()
	for _, name := range []string{"app", "Zlib", "base"} {
		require.NoError(t, s.AddNode(ctx, newNode(name)))
	}

	require.NoError(t, s.AddDependency(ctx, "Zlib", "app"))
	require.NoError(t, s.AddDependency(ctx, "base", "app"))
	require.NoError(t, s.AddDependency(ctx, "base", "app"))

	deps, err := s.DependenciesOf(ctx, "app")
	require.NoError(t, err)
	assert.Equal(t, []string{"base", "Zlib"}, deps)

	deps, err = s.DependenciesOf(ctx, "base")
	require.NoError(t, err)
	assert.Empty(t, deps)
}

func TestDependencies_UnknownNodes(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.AddNode(ctx, newNode("app")))

	assert.Error(t, s.AddDependency(ctx, "ghost", "app"))
	assert.Error(t, s.AddDependency(ctx, "app", "ghost"))
	_, err := s.DependenciesOf(ctx, "ghost")
	assert.Error(t, err)
}

func TestAllNodes_Sorted(t *testing.T) {
	s := New()
	ctx := context.Background()
	for _, name := range []string{"gamma", "Alpha", "beta"} {
		require.NoError(t, s.AddNode(ctx, newNode(name)))
	}

	var names []string
	for _, n := range s.AllNodes(ctx) {
		names = append(names, n.Name())
	}
	assert.Equal(t, []string{"Alpha", "beta", "gamma"}, names)
}
