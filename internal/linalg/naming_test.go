package linalg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dimla-ml/dimla/internal/named"
	"github.com/dimla-ml/dimla/internal/tensor"
)

func TestMintFreeBase(t *testing.T) {
	a := array(t, make([]float64, 6), tensor.Shape{2, 3}, []string{"row", "col"})
	m := newMinter(a)

	assert.Equal(t, "inner", m.mint("inner"))
}

func TestMintCollision(t *testing.T) {
	a := array(t, make([]float64, 6), tensor.Shape{2, 3}, []string{"inner", "col"})
	m := newMinter(a)

	assert.Equal(t, "inner2", m.mint("inner"))
}

func TestMintCascadingCollision(t *testing.T) {
	a := array(t, make([]float64, 24), tensor.Shape{2, 3, 4}, []string{"inner", "inner2", "col"})
	m := newMinter(a)

	assert.Equal(t, "inner3", m.mint("inner"))
}

func TestMintSiblingsShareName(t *testing.T) {
	a := array(t, make([]float64, 6), tensor.Shape{2, 3}, []string{"row", "col"})
	m := newMinter(a)

	first := m.mint("inner")
	second := m.mint("inner")
	assert.Equal(t, first, second, "minting the same base twice names one shared dimension")
}

func TestMintDistinctBases(t *testing.T) {
	a := array(t, make([]float64, 6), tensor.Shape{2, 3}, []string{"row", "col"})
	m := newMinter(a)

	assert.Equal(t, "u", m.mint("u"))
	assert.Equal(t, "s", m.mint("s"))
	assert.Equal(t, "vh", m.mint("vh"))
}

func TestOpContextMintedRespectsOverride(t *testing.T) {
	a := array(t, make([]float64, 6), tensor.Shape{2, 3}, []string{"row", "col"})
	cfg := newConfig([]Option{WithNewDimName("inner", "latent")})
	c := opContext{cfg: cfg, mint: newMinter(a)}

	assert.Equal(t, "latent", c.minted("inner"))
}

func TestOpContextMintedOverrideStillCollides(t *testing.T) {
	a := array(t, make([]float64, 6), tensor.Shape{2, 3}, []string{"row", "latent"})
	cfg := newConfig([]Option{WithNewDimName("inner", "latent")})
	c := opContext{cfg: cfg, mint: newMinter(a)}

	assert.Equal(t, "latent2", c.minted("inner"))
}

func TestCoordsFor(t *testing.T) {
	a := array(t, make([]float64, 6), tensor.Shape{2, 3}, []string{"row", "col"},
		named.WithCoords("col", []any{"a", "b", "c"}))

	// Name kept and length unchanged: coords carry over
	coords := coordsFor(a, []string{"row", "col"}, []int{2, 3})
	require.Contains(t, coords, "col")
	assert.Equal(t, []any{"a", "b", "c"}, coords["col"])

	// Length changed: coords dropped
	coords = coordsFor(a, []string{"row", "col"}, []int{2, 2})
	assert.NotContains(t, coords, "col")

	// Fresh name never has input coords
	coords = coordsFor(a, []string{"inner", "col"}, []int{2, 3})
	assert.NotContains(t, coords, "inner")
}
