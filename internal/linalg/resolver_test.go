package linalg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dimla-ml/dimla/internal/backend/gonum"
	"github.com/dimla-ml/dimla/internal/named"
	"github.com/dimla-ml/dimla/internal/tensor"
)

const tol = 1e-9

func array(t *testing.T, data []float64, shape tensor.Shape, dims []string, opts ...named.Option) *named.Array {
	t.Helper()
	a, err := named.FromFloat64(data, shape, dims, gonum.New(), opts...)
	require.NoError(t, err)
	return a
}

func TestResolveDimsExplicit(t *testing.T) {
	dims := []string{"chain", "row", "col"}

	roles, err := resolveDims(dims, []string{"row", "col"}, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"row", "col"}, roles)

	// Role order follows the request, not the array
	roles, err = resolveDims(dims, []string{"col", "row"}, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"col", "row"}, roles)
}

func TestResolveDimsDefaults(t *testing.T) {
	roles, err := resolveDims([]string{"x", "y", "z"}, nil, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"y", "z"}, roles)

	roles, err = resolveDims([]string{"x", "y", "z"}, nil, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"z"}, roles)
}

func TestResolveDimsErrors(t *testing.T) {
	dims := []string{"row", "col"}

	_, err := resolveDims(dims, []string{"row", "missing"}, 2)
	assert.ErrorIs(t, err, ErrDimensionNotFound)

	_, err = resolveDims(dims, []string{"row", "row"}, 2)
	assert.ErrorIs(t, err, ErrDuplicateRole)

	_, err = resolveDims(dims, []string{"row"}, 2)
	assert.Error(t, err)

	_, err = resolveDims([]string{"only"}, nil, 2)
	assert.ErrorIs(t, err, ErrAmbiguousDefault)
}

func TestBatchDims(t *testing.T) {
	batch := batchDims([]string{"chain", "draw", "row", "col"}, []string{"row", "col"})
	assert.Equal(t, []string{"chain", "draw"}, batch)

	batch = batchDims([]string{"row", "col"}, []string{"row", "col"})
	assert.Empty(t, batch)
}

func TestGetDefaultDims(t *testing.T) {
	a := array(t, make([]float64, 24), tensor.Shape{2, 3, 4}, []string{"x", "y", "z"})

	dims, err := GetDefaultDims(a, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"y", "z"}, dims)

	dims, err = GetDefaultDims(a, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"z"}, dims)

	_, err = GetDefaultDims(a, 3)
	assert.Error(t, err)

	scalarish := array(t, make([]float64, 2), tensor.Shape{2}, []string{"x"})
	_, err = GetDefaultDims(scalarish, 2)
	assert.ErrorIs(t, err, ErrAmbiguousDefault)
}

func TestCheckSharedDim(t *testing.T) {
	a := array(t, make([]float64, 6), tensor.Shape{2, 3}, []string{"row", "col"})
	b := array(t, make([]float64, 3), tensor.Shape{3}, []string{"col"})
	assert.NoError(t, checkSharedDim(a, b, "col"))

	short := array(t, make([]float64, 2), tensor.Shape{2}, []string{"col"})
	err := checkSharedDim(a, short, "col")
	assert.ErrorIs(t, err, ErrIncompatibleDimension)

	err = checkSharedDim(a, b, "missing")
	assert.ErrorIs(t, err, ErrDimensionNotFound)
}

func TestCheckSharedDimCoords(t *testing.T) {
	a := array(t, make([]float64, 3), tensor.Shape{3}, []string{"col"},
		named.WithCoords("col", []any{"a", "b", "c"}))
	same := array(t, make([]float64, 3), tensor.Shape{3}, []string{"col"},
		named.WithCoords("col", []any{"a", "b", "c"}))
	diff := array(t, make([]float64, 3), tensor.Shape{3}, []string{"col"},
		named.WithCoords("col", []any{"x", "y", "z"}))
	bare := array(t, make([]float64, 3), tensor.Shape{3}, []string{"col"})

	assert.NoError(t, checkSharedDim(a, same, "col"))
	assert.ErrorIs(t, checkSharedDim(a, diff, "col"), ErrIncompatibleDimension)

	// One-sided coords are fine
	assert.NoError(t, checkSharedDim(a, bare, "col"))
}
