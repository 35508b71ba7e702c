package gonum

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/dimla-ml/dimla/internal/tensor"
)

// Solve solves a x = b for each batch element. A vector right-hand side is
// signaled by b having one fewer trailing axis than a.
func (b *Backend) Solve(a, rhs *tensor.RawTensor) (*tensor.RawTensor, error) {
	batch, n, count, err := squareBatch("solve", a)
	if err != nil {
		return nil, err
	}
	if rhs.DType() != tensor.Float64 {
		return nil, fmt.Errorf("solve: unsupported dtype %s", rhs.DType())
	}
	vectorRHS := rhs.Rank() == a.Rank()-1
	var cols int
	if vectorRHS {
		if rhs.Rank() < 1 || rhs.Shape()[rhs.Rank()-1] != n {
			return nil, fmt.Errorf("solve: rhs vector length mismatch, want %d got shape %v", n, rhs.Shape())
		}
		cols = 1
	} else {
		if rhs.Rank() != a.Rank() {
			return nil, fmt.Errorf("solve: rhs rank %d incompatible with lhs rank %d", rhs.Rank(), a.Rank())
		}
		if rhs.Shape()[rhs.Rank()-2] != n {
			return nil, fmt.Errorf("solve: rhs has %d rows, want %d", rhs.Shape()[rhs.Rank()-2], n)
		}
		cols = rhs.Shape()[rhs.Rank()-1]
	}
	if !batch.Equal(rhs.Shape()[:rhs.Rank()-1]) && vectorRHS ||
		!vectorRHS && !batch.Equal(rhs.Shape()[:rhs.Rank()-2]) {
		return nil, fmt.Errorf("solve: batch shape mismatch between lhs %v and rhs %v", a.Shape(), rhs.Shape())
	}

	var outShape tensor.Shape
	if vectorRHS {
		outShape = append(batch.Clone(), n)
	} else {
		outShape = append(batch.Clone(), n, cols)
	}
	out, err := tensor.NewRaw(outShape, tensor.Float64)
	if err != nil {
		return nil, err
	}
	err = b.forEach(count, func(i int) error {
		lhs := denseAt(a, i, n, n)
		if vectorRHS {
			v := mat.NewVecDense(n, rhs.Float64s()[i*n:(i+1)*n])
			var x mat.VecDense
			if err := x.SolveVec(lhs, v); err != nil {
				return fmt.Errorf("solve: matrix %d is singular: %v", i, err)
			}
			copy(out.Float64s()[i*n:(i+1)*n], x.RawVector().Data)
		} else {
			bm := denseAt(rhs, i, n, cols)
			var x mat.Dense
			if err := x.Solve(lhs, bm); err != nil {
				return fmt.Errorf("solve: matrix %d is singular: %v", i, err)
			}
			storeDense(out, i, &x)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Inv inverts each trailing matrix.
func (b *Backend) Inv(a *tensor.RawTensor) (*tensor.RawTensor, error) {
	batch, n, count, err := squareBatch("inv", a)
	if err != nil {
		return nil, err
	}
	out, err := tensor.NewRaw(append(batch.Clone(), n, n), tensor.Float64)
	if err != nil {
		return nil, err
	}
	err = b.forEach(count, func(i int) error {
		var inv mat.Dense
		if err := inv.Inverse(denseAt(a, i, n, n)); err != nil {
			return fmt.Errorf("inv: matrix %d is singular: %v", i, err)
		}
		storeDense(out, i, &inv)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// MatrixPower raises each trailing matrix to the integer power p by repeated
// squaring. Negative powers invert first.
func (b *Backend) MatrixPower(a *tensor.RawTensor, p int) (*tensor.RawTensor, error) {
	batch, n, count, err := squareBatch("matrix_power", a)
	if err != nil {
		return nil, err
	}
	out, err := tensor.NewRaw(append(batch.Clone(), n, n), tensor.Float64)
	if err != nil {
		return nil, err
	}
	err = b.forEach(count, func(i int) error {
		base := denseAt(a, i, n, n)
		exp := p
		if exp < 0 {
			var inv mat.Dense
			if err := inv.Inverse(base); err != nil {
				return fmt.Errorf("matrix_power: matrix %d is singular: %v", i, err)
			}
			base = &inv
			exp = -exp
		}
		storeDense(out, i, matPow(base, n, exp))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func matPow(base *mat.Dense, n, exp int) *mat.Dense {
	result := identity(n)
	sq := mat.DenseCopyOf(base)
	for exp > 0 {
		if exp&1 == 1 {
			var next mat.Dense
			next.Mul(result, sq)
			result = &next
		}
		exp >>= 1
		if exp > 0 {
			var next mat.Dense
			next.Mul(sq, sq)
			sq = &next
		}
	}
	return result
}

func identity(n int) *mat.Dense {
	d := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		d.Set(i, i, 1)
	}
	return d
}
