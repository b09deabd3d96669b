package buildorder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggest(t *testing.T) {
	testCases := []struct {
		name       string
		target     string
		candidates []string
		expected   []string
	}{
		{
			name:       "limited to five",
			target:     "x",
			candidates: []string{"a", "b", "c", "d", "e", "f", "g"},
			expected:   []string{"a", "b", "c", "d", "e"},
		},
		{
			name:       "no candidates",
			target:     "x",
			candidates: nil,
			expected:   []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Suggest(tc.target, tc.candidates))
		})
	}
}

func TestSuggest_ClosestNameRankedFirst(t *testing.T) {
	got := Suggest("Consol.ConsoleMinimal", []string{"Base", "Console.ConsoleMinimal", "Console.Console", "ConsoleMinimal"})

	assert.Len(t, got, 4)
	assert.Equal(t, "Console.ConsoleMinimal", got[0])
	assert.Equal(t, "Base", got[3])
}

func TestLocalNamer(t *testing.T) {
	n := newLocalNamer()
	assert.Equal(t, "SYS_A", n.SyntheticName("SYS_A"))
	assert.Equal(t, "SYS_A_2", n.SyntheticName("SYS_A"))
	assert.Equal(t, "SYS_B", n.SyntheticName("SYS_B"))
}
