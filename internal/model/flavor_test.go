package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func colorFlavor() Flavor {
	return Flavor{
		Name:        "Color",
		AllowExtend: true,
		Options: []FlavorOption{
			{Name: "Red", Defines: []Define{{Name: "COLOR_RED", Value: "1"}}},
			{Name: "Green"},
		},
	}
}

func TestFlavor_Extend(t *testing.T) {
	t.Run("extension with existing option keeps every base option", func(t *testing.T) {
		ext := FlavorExtension{
			Owner: "P",
			Name:  "Color",
			Options: []FlavorOption{
				{Name: "Red", Dependencies: []Dependency{{Name: "RedHelper"}}, Defines: []Define{{Name: "RED_EXTRA"}}},
			},
		}

		merged, err := colorFlavor().Extend("P", "Q", ext)

		require.NoError(t, err)
		assert.Equal(t, []string{"Red", "Green"}, merged.OptionNames())
		red, ok := merged.Option("Red")
		require.True(t, ok)
		assert.Equal(t, []Dependency{{Name: "RedHelper"}}, red.Dependencies)
		assert.Len(t, red.Defines, 2)
	})

	t.Run("extension can not introduce new options", func(t *testing.T) {
		ext := FlavorExtension{Owner: "P", Name: "Color", Options: []FlavorOption{{Name: "Blue"}}}

		_, err := colorFlavor().Extend("P", "Q", ext)

		var newOptions *NewOptionsError
		require.ErrorAs(t, err, &newOptions)
		assert.Equal(t, []string{"Blue"}, newOptions.Options)
		assert.ErrorContains(t, err, "can not introduce new options: Blue")
	})

	t.Run("flavor not marked for extend", func(t *testing.T) {
		base := colorFlavor()
		base.AllowExtend = false

		_, err := base.Extend("P", "Q", FlavorExtension{Owner: "P", Name: "Color"})

		var notExtensible *NotExtensibleError
		require.ErrorAs(t, err, &notExtensible)
		assert.Equal(t, "Q", notExtensible.Extender)
	})

	t.Run("merge does not alias the base", func(t *testing.T) {
		base := colorFlavor()
		ext := FlavorExtension{Owner: "P", Name: "Color", Options: []FlavorOption{{Name: "Red", Defines: []Define{{Name: "X"}}}}}

		_, err := base.Extend("P", "Q", ext)

		require.NoError(t, err)
		red, _ := base.Option("Red")
		assert.Len(t, red.Defines, 1)
	})
}

func TestFlavor_Validate(t *testing.T) {
	assert.NoError(t, colorFlavor().Validate())
	assert.Error(t, Flavor{Name: "Empty"}.Validate())
	assert.Error(t, Flavor{Name: "V", Type: OptionGroupVirtual, Options: []FlavorOption{{Name: "a"}, {Name: "b"}}}.Validate())
	assert.Error(t, Flavor{Name: "D", Options: []FlavorOption{{Name: "a"}, {Name: "a"}}}.Validate())
}

func TestFlavorSelection_ID(t *testing.T) {
	assert.Equal(t, FlavorID{Owner: "Target", Name: "Backend"}, FlavorSelection{Flavor: "Backend", Option: "GL"}.ID("Target"))
	assert.Equal(t, FlavorID{Owner: "Other", Name: "Backend"}, FlavorSelection{Owner: "Other", Flavor: "Backend"}.ID("Target"))
	assert.Equal(t, "'Backend'='GL'", FlavorSelection{Flavor: "Backend", Option: "GL"}.String())
}

func TestExternalConstraints_HasConstraints(t *testing.T) {
	assert.False(t, ExternalConstraints(nil).HasConstraints())
	assert.False(t, ExternalConstraints{"App": nil}.HasConstraints())
	assert.True(t, ExternalConstraints{"App": {{Flavor: "Backend", Option: "GL"}}}.HasConstraints())
}
