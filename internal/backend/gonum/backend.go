// Package gonum implements the linear-algebra kernel set on top of
// gonum.org/v1/gonum. Each kernel operates on the trailing one or two axes
// of its input and loops over the flattened leading (batch) axes; the
// factorizations and solves themselves are gonum calls.
package gonum

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/dimla-ml/dimla/internal/parallel"
	"github.com/dimla-ml/dimla/internal/tensor"
)

// Verify that Backend implements the kernel contract.
var _ tensor.Backend = (*Backend)(nil)

// Backend computes kernels with gonum. The zero value is ready to use and
// safe for concurrent use; it runs batch loops sequentially.
type Backend struct {
	par parallel.Config
}

// New creates a gonum backend that spreads batch elements over the
// available CPUs.
func New() *Backend {
	return &Backend{par: parallel.DefaultConfig()}
}

// forEach runs one kernel invocation per batch element. f must only touch
// the output block of its own element.
func (b *Backend) forEach(count int, f func(i int) error) error {
	return parallel.ForErr(count, f, b.par)
}

func (b *Backend) forEachNoErr(count int, f func(i int)) {
	parallel.For(count, f, b.par)
}

// Name returns the backend name.
func (b *Backend) Name() string {
	return "gonum"
}

// batched2D views a as a stack of count m-by-n matrices over its trailing
// two axes.
func batched2D(op string, a *tensor.RawTensor) (batch tensor.Shape, m, n, count int, err error) {
	if a == nil {
		return nil, 0, 0, 0, fmt.Errorf("%s: input tensor is nil", op)
	}
	if a.DType() != tensor.Float64 {
		return nil, 0, 0, 0, fmt.Errorf("%s: requires float64 input, got %s", op, a.DType())
	}
	shape := a.Shape()
	if len(shape) < 2 {
		return nil, 0, 0, 0, fmt.Errorf("%s: requires at least 2 dimensions, got shape %v", op, shape)
	}
	batch = shape[:len(shape)-2].Clone()
	m, n = shape[len(shape)-2], shape[len(shape)-1]
	return batch, m, n, batch.NumElements(), nil
}

// batched1D views a as a stack of count length-n vectors over its trailing
// axis.
func batched1D(op string, a *tensor.RawTensor) (batch tensor.Shape, n, count int, err error) {
	if a == nil {
		return nil, 0, 0, fmt.Errorf("%s: input tensor is nil", op)
	}
	if a.DType() != tensor.Float64 {
		return nil, 0, 0, fmt.Errorf("%s: requires float64 input, got %s", op, a.DType())
	}
	shape := a.Shape()
	if len(shape) < 1 {
		return nil, 0, 0, fmt.Errorf("%s: requires at least 1 dimension, got a scalar", op)
	}
	batch = shape[:len(shape)-1].Clone()
	n = shape[len(shape)-1]
	return batch, n, batch.NumElements(), nil
}

func requireSquare(op string, m, n int) error {
	if m != n {
		return fmt.Errorf("%s: trailing matrix must be square, got %dx%d", op, m, n)
	}
	return nil
}

// denseAt copies batch element i into a gonum matrix. Batch axes lead and
// data is row-major, so each matrix is one contiguous block.
func denseAt(a *tensor.RawTensor, i, m, n int) *mat.Dense {
	block := a.Float64s()[i*m*n : (i+1)*m*n]
	return mat.NewDense(m, n, append([]float64(nil), block...))
}

// storeDense writes a gonum matrix into batch element i of dst.
func storeDense(dst *tensor.RawTensor, i int, src mat.Matrix) {
	m, n := src.Dims()
	out := dst.Float64s()[i*m*n : (i+1)*m*n]
	for r := 0; r < m; r++ {
		for c := 0; c < n; c++ {
			out[r*n+c] = src.At(r, c)
		}
	}
}

// newBatched allocates an output with the given batch prefix and trailing
// matrix/vector dimensions.
func newBatched(batch tensor.Shape, dtype tensor.DataType, trailing ...int) (*tensor.RawTensor, error) {
	shape := append(batch.Clone(), trailing...)
	return tensor.NewRaw(shape, dtype)
}

// symAt builds the full symmetric matrix from the triangle of batch element
// i selected by uplo.
func symAt(a *tensor.RawTensor, i, n int, uplo tensor.UPLO) *mat.SymDense {
	block := a.Float64s()[i*n*n : (i+1)*n*n]
	data := make([]float64, n*n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			var v float64
			if uplo == tensor.Upper {
				if r <= c {
					v = block[r*n+c]
				} else {
					v = block[c*n+r]
				}
			} else {
				if r >= c {
					v = block[r*n+c]
				} else {
					v = block[c*n+r]
				}
			}
			data[r*n+c] = v
		}
	}
	return mat.NewSymDense(n, data)
}
