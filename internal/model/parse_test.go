package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePackageType(t *testing.T) {
	for _, tc := range []struct {
		in     string
		expect PackageType
	}{
		{"library", PackageTypeLibrary},
		{"Executable", PackageTypeExecutable},
		{"external_library", PackageTypeExternalLibrary},
		{"header_library", PackageTypeHeaderLibrary},
		{"tool_recipe", PackageTypeToolRecipe},
	} {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParsePackageType(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.expect, got)
		})
	}

	t.Run("synthetic types can not be declared", func(t *testing.T) {
		_, err := ParsePackageType("top_level")
		assert.Error(t, err)
		_, err = ParsePackageType("external_flavor_constraint")
		assert.Error(t, err)
	})
}

func TestPackageType_CanBeDependedOn(t *testing.T) {
	assert.True(t, PackageTypeLibrary.CanBeDependedOn())
	assert.True(t, PackageTypeExternalLibrary.CanBeDependedOn())
	assert.True(t, PackageTypeHeaderLibrary.CanBeDependedOn())
	assert.True(t, PackageTypeToolRecipe.CanBeDependedOn())
	assert.False(t, PackageTypeExecutable.CanBeDependedOn())
	assert.False(t, PackageTypeTopLevel.CanBeDependedOn())
	assert.False(t, PackageTypeExternalFlavorConstraint.CanBeDependedOn())
}

func TestAccessType(t *testing.T) {
	access, err := ParseAccessType("")
	require.NoError(t, err)
	assert.Equal(t, AccessPublic, access)

	access, err = ParseAccessType("Link")
	require.NoError(t, err)
	assert.Equal(t, AccessLink, access)

	_, err = ParseAccessType("protected")
	assert.Error(t, err)

	assert.True(t, AccessPublic.MoreOpenThan(AccessPrivate))
	assert.True(t, AccessPrivate.MoreOpenThan(AccessLink))
	assert.False(t, AccessPrivate.MoreOpenThan(AccessPrivate))
}

func TestRawPackage_IsVirtual(t *testing.T) {
	assert.False(t, (&RawPackage{Type: PackageTypeLibrary}).IsVirtual())
	assert.True(t, (&RawPackage{Type: PackageTypeLibrary, Virtual: true}).IsVirtual())
	assert.True(t, (&RawPackage{Type: PackageTypeTopLevel}).IsVirtual())
}

func TestParseExternalDependencyType(t *testing.T) {
	got, err := ParseExternalDependencyType("")
	require.NoError(t, err)
	assert.Equal(t, ExternalStaticLib, got)

	got, err = ParseExternalDependencyType("dynamic_lib")
	require.NoError(t, err)
	assert.True(t, ExternalDependency{Type: got}.ProducesDynamicLib())

	_, err = ParseExternalDependencyType("framework")
	assert.Error(t, err)
}
