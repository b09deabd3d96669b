// internal/pkgname/name_test.go
package pkgname

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestName_String(t *testing.T) {
	assert.Equal(t, "FslBase.UnitTest", New("FslBase", "UnitTest").String())

	var nilName *Name
	assert.Equal(t, "", nilName.String())
}

func TestName_RoundTrip(t *testing.T) {
	for _, raw := range []string{"FslBase", "FslGraphics3D.API", "Recipe.zlib_1_2_11"} {
		t.Run(raw, func(t *testing.T) {
			assert.Equal(t, raw, MustParse(raw).String())
		})
	}
}

func TestName_Namespace(t *testing.T) {
	assert.Equal(t, "", MustParse("FslBase").Namespace())
	assert.Equal(t, "FslBase", MustParse("FslBase.UnitTest").Namespace())
	assert.Equal(t, "A.B", MustParse("A.B.C").Namespace())
}

func TestName_HasPrefix(t *testing.T) {
	testCases := []struct {
		name   string
		full   string
		prefix string
		expect bool
	}{
		{name: "direct parent", full: "FslBase.UnitTest", prefix: "FslBase", expect: true},
		{name: "grand parent", full: "A.B.C", prefix: "A", expect: true},
		{name: "not segment aligned", full: "FslBaseX.UnitTest", prefix: "FslBase", expect: false},
		{name: "equal names are not a proper prefix", full: "FslBase", prefix: "FslBase", expect: false},
		{name: "longer prefix", full: "A", prefix: "A.B", expect: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, MustParse(tc.full).HasPrefix(MustParse(tc.prefix)))
		})
	}
}

func TestSort_IsCaseInsensitiveAndStable(t *testing.T) {
	names := []string{"beta", "Alpha", "alpha", "Gamma", "ALPHA"}
	Sort(names)
	assert.Equal(t, []string{"ALPHA", "Alpha", "alpha", "beta", "Gamma"}, names)
}

func TestSorted_DoesNotMutateInput(t *testing.T) {
	in := []string{"b", "a"}
	out := Sorted(in)
	assert.Equal(t, []string{"b", "a"}, in)
	assert.Equal(t, []string{"a", "b"}, out)
}
