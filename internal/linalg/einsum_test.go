package linalg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dimla-ml/dimla/internal/named"
	"github.com/dimla-ml/dimla/internal/tensor"
)

func TestEinsumContraction(t *testing.T) {
	a := array(t, []float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, []string{"i", "j"})
	b := array(t, []float64{1, 0, 0, 1, 1, 1}, tensor.Shape{3, 2}, []string{"j", "k"})

	out, err := Einsum([][]string{{"j"}, {"j"}}, []*named.Array{a, b})
	require.NoError(t, err)

	// Unmentioned dims i and k broadcast by name: the result is the matmul
	assert.Equal(t, []string{"i", "k"}, out.Dims())
	assert.InDelta(t, 4, out.At(0, 0), tol)
	assert.InDelta(t, 5, out.At(0, 1), tol)
	assert.InDelta(t, 10, out.At(1, 0), tol)
	assert.InDelta(t, 11, out.At(1, 1), tol)
}

func TestEinsumElementwiseSharedBatch(t *testing.T) {
	a := array(t, []float64{1, 2, 3}, tensor.Shape{3}, []string{"x"})
	b := array(t, []float64{4, 5, 6}, tensor.Shape{3}, []string{"x"})

	// x is named nowhere, so it is a batch dimension shared by name
	out, err := Einsum([][]string{{}, {}}, []*named.Array{a, b})
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, out.Dims())
	assert.InDelta(t, 4, out.At(0), tol)
	assert.InDelta(t, 10, out.At(1), tol)
	assert.InDelta(t, 18, out.At(2), tol)
}

func TestEinsumStorageOrderIndependent(t *testing.T) {
	a := array(t, []float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, []string{"i", "j"})
	b := array(t, []float64{1, 0, 0, 1, 1, 1}, tensor.Shape{3, 2}, []string{"j", "k"})
	bT, err := b.Transpose("k", "j")
	require.NoError(t, err)

	out1, err := Einsum([][]string{{"j"}, {"j"}}, []*named.Array{a, b})
	require.NoError(t, err)
	out2, err := Einsum([][]string{{"j"}, {"j"}}, []*named.Array{a, bT})
	require.NoError(t, err)

	require.Equal(t, out1.Dims(), out2.Dims())
	for i := 0; i < 2; i++ {
		for k := 0; k < 2; k++ {
			assert.InDelta(t, out1.At(i, k), out2.At(i, k), tol)
		}
	}
}

func TestEinsumExplicitOutput(t *testing.T) {
	a := array(t, []float64{1, 2, 3, 4}, tensor.Shape{2, 2}, []string{"i", "j"})

	// Scalar: contract everything
	out, err := Einsum([][]string{{"i", "j"}, {}}, []*named.Array{a})
	require.NoError(t, err)
	assert.Equal(t, 0, out.Rank())
	assert.InDelta(t, 10, out.Raw().Float64s()[0], tol)

	// Reorder: transpose via explicit output
	out, err = Einsum([][]string{{"i", "j"}, {"j", "i"}}, []*named.Array{a})
	require.NoError(t, err)
	assert.Equal(t, []string{"j", "i"}, out.Dims())
	assert.InDelta(t, 2, out.At(1, 0), tol)
	assert.InDelta(t, 3, out.At(0, 1), tol)
}

func TestEinsumKeepDims(t *testing.T) {
	a := array(t, []float64{1, 2}, tensor.Shape{2}, []string{"t"})
	b := array(t, []float64{3, 4}, tensor.Shape{2}, []string{"t"})

	// Kept dimensions stay per occurrence: the result is the outer product,
	// with the repeated output name renamed.
	out, err := Einsum([][]string{{}, {}}, []*named.Array{a, b}, KeepDims("t"))
	require.NoError(t, err)
	assert.Equal(t, []string{"t", "t2"}, out.Dims())
	assert.InDelta(t, 3, out.At(0, 0), tol)
	assert.InDelta(t, 8, out.At(1, 1), tol)
}

func TestEinsumOutAppendPattern(t *testing.T) {
	a := array(t, []float64{1, 2}, tensor.Shape{2}, []string{"t"})
	b := array(t, []float64{3, 4}, tensor.Shape{2}, []string{"t"})

	out, err := Einsum([][]string{{}, {}}, []*named.Array{a, b},
		KeepDims("t"), OutAppend("_copy%d"))
	require.NoError(t, err)
	assert.Equal(t, []string{"t", "t_copy2"}, out.Dims())
}

func TestEinsumBatchCoordsCarried(t *testing.T) {
	labels := []any{"a", "b"}
	a := array(t, []float64{1, 2, 3, 4}, tensor.Shape{2, 2}, []string{"batch", "j"},
		named.WithCoords("batch", labels))
	b := array(t, []float64{1, 1}, tensor.Shape{2}, []string{"j"})

	out, err := Einsum([][]string{{"j"}, {"j"}}, []*named.Array{a, b})
	require.NoError(t, err)
	assert.Equal(t, []string{"batch"}, out.Dims())
	assert.Equal(t, labels, out.Coords("batch"))
	assert.InDelta(t, 3, out.At(0), tol)
	assert.InDelta(t, 7, out.At(1), tol)
}

func TestEinsumIncompatibleLengths(t *testing.T) {
	a := array(t, []float64{1, 2, 3}, tensor.Shape{3}, []string{"j"})
	b := array(t, []float64{1, 2, 3, 4}, tensor.Shape{4}, []string{"j"})

	_, err := Einsum([][]string{{"j"}, {"j"}}, []*named.Array{a, b})
	assert.ErrorIs(t, err, ErrIncompatibleDimension)
}

func TestEinsumErrors(t *testing.T) {
	a := array(t, []float64{1, 2, 3, 4}, tensor.Shape{2, 2}, []string{"i", "j"})

	_, err := Einsum([][]string{{"missing"}}, []*named.Array{a})
	assert.ErrorIs(t, err, ErrDimensionNotFound)

	_, err = Einsum([][]string{{"i", "i"}}, []*named.Array{a})
	assert.ErrorIs(t, err, ErrDuplicateRole)

	_, err = Einsum([][]string{{"i"}, {"i"}, {"j"}, {"j"}}, []*named.Array{a})
	assert.Error(t, err, "dimension list count mismatch")

	_, err = Einsum(nil, nil)
	assert.Error(t, err, "no operands")

	_, err = Einsum([][]string{{"i", "j"}, {"i", "i"}}, []*named.Array{a})
	assert.ErrorIs(t, err, ErrDuplicateRole, "repeated name in explicit output")

	_, err = Einsum([][]string{{"i"}, {"q"}}, []*named.Array{a})
	assert.ErrorIs(t, err, ErrDimensionNotFound, "output name absent from inputs")
}

func TestPlanEinsumSubscripts(t *testing.T) {
	a := array(t, []float64{1, 2, 3, 4}, tensor.Shape{2, 2}, []string{"i", "j"})
	b := array(t, []float64{1, 2, 3, 4}, tensor.Shape{2, 2}, []string{"j", "k"})

	plan, err := planEinsum([][]string{{"j"}, {"j"}}, []*named.Array{a, b}, newConfig(nil))
	require.NoError(t, err)
	assert.Contains(t, plan.subscripts, "->")
	assert.Equal(t, []string{"i", "k"}, plan.outDims)
	assert.Equal(t, []int{2, 2}, plan.outLengths)
}

func TestPlanEinsumSkipsDimensionNameLetters(t *testing.T) {
	// A dimension literally named "z" must not collide with the symbol "z"
	a := array(t, []float64{1, 2, 3, 4}, tensor.Shape{2, 2}, []string{"z", "j"})
	b := array(t, []float64{1, 2}, tensor.Shape{2}, []string{"j"})

	plan, err := planEinsum([][]string{{"j"}, {"j"}}, []*named.Array{a, b}, newConfig(nil))
	require.NoError(t, err)

	parts := strings.Split(plan.subscripts, "->")
	require.Len(t, parts, 2)
	assert.NotContains(t, plan.subscripts, "z")
	assert.Equal(t, []string{"z"}, plan.outDims)
}

func TestRawEinsum(t *testing.T) {
	a := array(t, []float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, []string{"chain", "param"})
	b := array(t, []float64{1, 0, 0, 1, 1, 1}, tensor.Shape{3, 2}, []string{"param", "param2"})

	out, err := RawEinsum("chain param, param param2 -> chain param2", []*named.Array{a, b})
	require.NoError(t, err)
	assert.Equal(t, []string{"chain", "param2"}, out.Dims())
	assert.InDelta(t, 4, out.At(0, 0), tol)

	_, err = RawEinsum("chain param", []*named.Array{a, b})
	assert.Error(t, err, "operand count mismatch")
}

func TestEinsumPathReport(t *testing.T) {
	a := array(t, []float64{1, 2, 3, 4}, tensor.Shape{2, 2}, []string{"i", "j"})
	b := array(t, []float64{1, 2, 3, 4}, tensor.Shape{2, 2}, []string{"j", "k"})

	info, err := EinsumPath([][]string{{"j"}, {"j"}}, []*named.Array{a, b})
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.NotEmpty(t, info.Path)
	assert.Greater(t, info.NaiveFLOPs, 0.0)
	assert.NotEmpty(t, info.Report)
}
