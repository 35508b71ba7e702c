package gonum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dimla-ml/dimla/internal/tensor"
)

func TestEinsumMatmul(t *testing.T) {
	b := New()
	x := raw(t, []float64{1, 2, 3, 4}, 2, 2)
	y := raw(t, []float64{5, 6, 7, 8}, 2, 2)

	out, err := b.Einsum("ij,jk->ik", x, y)
	require.NoError(t, err)
	require.Equal(t, tensor.Shape{2, 2}, out.Shape())
	assert.InDelta(t, 19, out.At(0, 0), tol)
	assert.InDelta(t, 22, out.At(0, 1), tol)
	assert.InDelta(t, 43, out.At(1, 0), tol)
	assert.InDelta(t, 50, out.At(1, 1), tol)
}

func TestEinsumTrace(t *testing.T) {
	b := New()
	x := raw(t, []float64{1, 2, 3, 4}, 2, 2)

	out, err := b.Einsum("ii->", x)
	require.NoError(t, err)
	require.Equal(t, tensor.Shape{}, out.Shape())
	assert.InDelta(t, 5, out.Float64s()[0], tol)
}

func TestEinsumDiagonal(t *testing.T) {
	b := New()
	x := raw(t, []float64{1, 2, 3, 4}, 2, 2)

	out, err := b.Einsum("ii->i", x)
	require.NoError(t, err)
	require.Equal(t, tensor.Shape{2}, out.Shape())
	assert.InDelta(t, 1, out.At(0), tol)
	assert.InDelta(t, 4, out.At(1), tol)
}

func TestEinsumTranspose(t *testing.T) {
	b := New()
	x := raw(t, []float64{1, 2, 3, 4, 5, 6}, 2, 3)

	out, err := b.Einsum("ij->ji", x)
	require.NoError(t, err)
	require.Equal(t, tensor.Shape{3, 2}, out.Shape())
	assert.InDelta(t, 2, out.At(1, 0), tol)
	assert.InDelta(t, 4, out.At(0, 1), tol)
}

func TestEinsumSum(t *testing.T) {
	b := New()
	x := raw(t, []float64{1, 2, 3, 4, 5, 6}, 2, 3)

	rows, err := b.Einsum("ij->i", x)
	require.NoError(t, err)
	assert.InDelta(t, 6, rows.At(0), tol)
	assert.InDelta(t, 15, rows.At(1), tol)

	all, err := b.Einsum("ij->", x)
	require.NoError(t, err)
	assert.InDelta(t, 21, all.Float64s()[0], tol)
}

func TestEinsumBatchedMatmul(t *testing.T) {
	b := New()
	x := raw(t, []float64{
		1, 0, 0, 1,
		2, 0, 0, 2,
	}, 2, 2, 2)
	y := raw(t, []float64{
		1, 2, 3, 4,
		5, 6, 7, 8,
	}, 2, 2, 2)

	out, err := b.Einsum("bij,bjk->bik", x, y)
	require.NoError(t, err)
	require.Equal(t, tensor.Shape{2, 2, 2}, out.Shape())
	assert.InDelta(t, 1, out.At(0, 0, 0), tol)
	assert.InDelta(t, 4, out.At(0, 1, 1), tol)
	assert.InDelta(t, 10, out.At(1, 0, 0), tol)
	assert.InDelta(t, 16, out.At(1, 1, 1), tol)
}

func TestEinsumOuterProduct(t *testing.T) {
	b := New()
	x := raw(t, []float64{1, 2}, 2)
	y := raw(t, []float64{3, 4, 5}, 3)

	out, err := b.Einsum("i,j->ij", x, y)
	require.NoError(t, err)
	require.Equal(t, tensor.Shape{2, 3}, out.Shape())
	assert.InDelta(t, 3, out.At(0, 0), tol)
	assert.InDelta(t, 10, out.At(1, 2), tol)
}

func TestEinsumBroadcastExtent1(t *testing.T) {
	b := New()
	x := raw(t, []float64{2}, 1)
	y := raw(t, []float64{1, 2, 3}, 3)

	// x's extent-1 axis broadcasts against y's length 3
	out, err := b.Einsum("i,i->", x, y)
	require.NoError(t, err)
	assert.InDelta(t, 12, out.Float64s()[0], tol)
}

func TestEinsumErrors(t *testing.T) {
	b := New()
	x := raw(t, []float64{1, 2, 3, 4}, 2, 2)

	_, err := b.Einsum("ij", x)
	assert.ErrorContains(t, err, "->")

	_, err = b.Einsum("ijk->i", x)
	assert.Error(t, err, "subscript rank mismatch")

	_, err = b.Einsum("ij,jk->ik", x)
	assert.Error(t, err, "operand count mismatch")

	_, err = b.Einsum("ij->ii", x)
	assert.Error(t, err, "repeated output symbol")

	_, err = b.Einsum("ij->iq", x)
	assert.Error(t, err, "unknown output symbol")

	y := raw(t, []float64{1, 2, 3, 4, 5, 6}, 2, 3)
	_, err = b.Einsum("ij,ji->", x, y)
	assert.Error(t, err, "incompatible symbol extents")
}

func TestEinsumPath(t *testing.T) {
	b := New()
	x := raw(t, []float64{1, 2, 3, 4}, 2, 2)
	y := raw(t, []float64{5, 6, 7, 8}, 2, 2)
	z := raw(t, []float64{1, 0, 0, 1}, 2, 2)

	info, err := b.EinsumPath("ij,jk,kl->il", x, y, z)
	require.NoError(t, err)
	assert.Equal(t, "ij,jk,kl->il", info.Subscripts)
	assert.Len(t, info.Path, 2)
	assert.Greater(t, info.NaiveFLOPs, 0.0)
	assert.Greater(t, info.OptimizedFLOPs, 0.0)
	assert.NotEmpty(t, info.Report)
}

func TestEinsumPathSingleOperand(t *testing.T) {
	b := New()
	x := raw(t, []float64{1, 2, 3, 4}, 2, 2)

	info, err := b.EinsumPath("ij->ji", x)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0}}, info.Path)
}
