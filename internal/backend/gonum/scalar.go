package gonum

import (
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/dimla-ml/dimla/internal/tensor"
)

// Det returns the determinant of each trailing matrix.
func (b *Backend) Det(a *tensor.RawTensor) (*tensor.RawTensor, error) {
	batch, n, count, err := squareBatch("det", a)
	if err != nil {
		return nil, err
	}
	out, err := tensor.NewRaw(batch, tensor.Float64)
	if err != nil {
		return nil, err
	}
	b.forEachNoErr(count, func(i int) {
		out.Float64s()[i] = mat.Det(denseAt(a, i, n, n))
	})
	return out, nil
}

// Slogdet returns the sign and natural log of the absolute determinant of
// each trailing matrix.
func (b *Backend) Slogdet(a *tensor.RawTensor) (sign, logabsdet *tensor.RawTensor, err error) {
	batch, n, count, err := squareBatch("slogdet", a)
	if err != nil {
		return nil, nil, err
	}
	sign, err = tensor.NewRaw(batch, tensor.Float64)
	if err != nil {
		return nil, nil, err
	}
	logabsdet, err = tensor.NewRaw(batch, tensor.Float64)
	if err != nil {
		return nil, nil, err
	}
	b.forEachNoErr(count, func(i int) {
		logabs, sgn := mat.LogDet(denseAt(a, i, n, n))
		sign.Float64s()[i] = sgn
		logabsdet.Float64s()[i] = logabs
	})
	return sign, logabsdet, nil
}

// MatrixRank counts singular values above tol for each trailing matrix.
// A non-positive tol selects max(m, n) * eps * sigma_max. With hermitian,
// the input must be square symmetric and absolute eigenvalues replace the
// singular values, reading only the lower triangle.
func (b *Backend) MatrixRank(a *tensor.RawTensor, tol float64, hermitian bool) (*tensor.RawTensor, error) {
	if hermitian {
		return b.hermitianRank(a, tol)
	}
	batch, m, n, count, err := batched2D("matrix_rank", a)
	if err != nil {
		return nil, err
	}
	out, err := tensor.NewRaw(batch, tensor.Float64)
	if err != nil {
		return nil, err
	}
	long := m
	if n > m {
		long = n
	}
	err = b.forEach(count, func(i int) error {
		var svd mat.SVD
		if ok := svd.Factorize(denseAt(a, i, m, n), mat.SVDNone); !ok {
			return fmt.Errorf("matrix_rank: svd failed to converge on matrix %d", i)
		}
		values := svd.Values(nil)
		t := tol
		if t <= 0 {
			smax := 0.0
			if len(values) > 0 {
				smax = values[0]
			}
			t = float64(long) * eps * smax
		}
		rank := 0
		for _, s := range values {
			if s > t {
				rank++
			}
		}
		out.Float64s()[i] = float64(rank)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (b *Backend) hermitianRank(a *tensor.RawTensor, tol float64) (*tensor.RawTensor, error) {
	batch, n, count, err := squareBatch("matrix_rank", a)
	if err != nil {
		return nil, err
	}
	out, err := tensor.NewRaw(batch, tensor.Float64)
	if err != nil {
		return nil, err
	}
	err = b.forEach(count, func(i int) error {
		var es mat.EigenSym
		if ok := es.Factorize(symAt(a, i, n, tensor.Lower), false); !ok {
			return fmt.Errorf("matrix_rank: eigendecomposition failed to converge on matrix %d", i)
		}
		values := es.Values(nil)
		t := tol
		if t <= 0 {
			amax := 0.0
			for _, v := range values {
				if av := math.Abs(v); av > amax {
					amax = av
				}
			}
			t = float64(n) * eps * amax
		}
		rank := 0
		for _, v := range values {
			if math.Abs(v) > t {
				rank++
			}
		}
		out.Float64s()[i] = float64(rank)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

const eps = 2.220446049250313e-16

// Norm computes a matrix norm (axes == 2) or vector norm (axes == 1) over
// the trailing axes of each batch element.
func (b *Backend) Norm(a *tensor.RawTensor, ord tensor.NormOrder, axes int) (*tensor.RawTensor, error) {
	switch axes {
	case 1:
		return b.vectorNorm(a, ord)
	case 2:
		return b.matrixNorm(a, ord)
	default:
		return nil, fmt.Errorf("norm: axes must be 1 or 2, got %d", axes)
	}
}

func (b *Backend) matrixNorm(a *tensor.RawTensor, ord tensor.NormOrder) (*tensor.RawTensor, error) {
	batch, m, n, count, err := batched2D("norm", a)
	if err != nil {
		return nil, err
	}
	out, err := tensor.NewRaw(batch, tensor.Float64)
	if err != nil {
		return nil, err
	}
	for i := 0; i < count; i++ {
		d := denseAt(a, i, m, n)
		var v float64
		switch ord {
		case tensor.NormDefault, tensor.NormFro:
			v = mat.Norm(d, 2) // gonum's matrix 2-norm is Frobenius
		case tensor.NormNuc:
			v, err = singularSum(d, sumAll)
		case "1":
			v = mat.Norm(d, 1)
		case "-1":
			v = extremeAxisSum(d, false, true)
		case "2":
			v, err = singularSum(d, maxOf)
		case "-2":
			v, err = singularSum(d, minOf)
		case tensor.NormInf:
			v = mat.Norm(d, math.Inf(1))
		case tensor.NormNegInf:
			v = extremeAxisSum(d, true, true)
		default:
			return nil, fmt.Errorf("norm: invalid matrix norm order %q", ord)
		}
		if err != nil {
			return nil, err
		}
		out.Float64s()[i] = v
	}
	return out, nil
}

func (b *Backend) vectorNorm(a *tensor.RawTensor, ord tensor.NormOrder) (*tensor.RawTensor, error) {
	batch, n, count, err := batched1D("norm", a)
	if err != nil {
		return nil, err
	}
	out, err := tensor.NewRaw(batch, tensor.Float64)
	if err != nil {
		return nil, err
	}
	for i := 0; i < count; i++ {
		v := a.Float64s()[i*n : (i+1)*n]
		var result float64
		switch ord {
		case tensor.NormDefault, "2":
			result = floats.Norm(v, 2)
		case "1":
			result = floats.Norm(v, 1)
		case tensor.NormInf:
			result = floats.Norm(v, math.Inf(1))
		case tensor.NormNegInf:
			result = math.Inf(1)
			for _, x := range v {
				result = math.Min(result, math.Abs(x))
			}
		case "0":
			for _, x := range v {
				if x != 0 {
					result++
				}
			}
		default:
			p, perr := strconv.ParseFloat(string(ord), 64)
			if perr != nil {
				return nil, fmt.Errorf("norm: invalid vector norm order %q", ord)
			}
			if p > 0 {
				result = floats.Norm(v, p)
			} else {
				for _, x := range v {
					result += math.Pow(math.Abs(x), p)
				}
				result = math.Pow(result, 1/p)
			}
		}
		out.Float64s()[i] = result
	}
	return out, nil
}

// Cond returns the condition number of each trailing matrix with respect to
// the norm order p (default 2-norm).
func (b *Backend) Cond(a *tensor.RawTensor, p tensor.NormOrder) (*tensor.RawTensor, error) {
	batch, n, m, count, err := condDims(a)
	if err != nil {
		return nil, err
	}
	out, err := tensor.NewRaw(batch, tensor.Float64)
	if err != nil {
		return nil, err
	}
	for i := 0; i < count; i++ {
		d := denseAt(a, i, m, n)
		var v float64
		switch p {
		case tensor.NormDefault, "2":
			v, err = singularRatio(d)
		case "1":
			v, err = condViaNorm(b, d, "1")
		case tensor.NormInf:
			v, err = condViaNorm(b, d, tensor.NormInf)
		case "-1", "-2", tensor.NormNegInf, tensor.NormFro:
			v, err = condViaNorm(b, d, p)
		default:
			return nil, fmt.Errorf("cond: invalid norm order %q", p)
		}
		if err != nil {
			return nil, fmt.Errorf("cond: %w", err)
		}
		out.Float64s()[i] = v
	}
	return out, nil
}

// Trace sums the offset-th diagonal of each trailing matrix.
func (b *Backend) Trace(a *tensor.RawTensor, offset int) (*tensor.RawTensor, error) {
	batch, m, n, count, err := batched2D("trace", a)
	if err != nil {
		return nil, err
	}
	out, err := tensor.NewRaw(batch, tensor.Float64)
	if err != nil {
		return nil, err
	}
	b.forEachNoErr(count, func(i int) {
		block := a.Float64s()[i*m*n : (i+1)*m*n]
		sum := 0.0
		for r := 0; r < m; r++ {
			c := r + offset
			if c >= 0 && c < n {
				sum += block[r*n+c]
			}
		}
		out.Float64s()[i] = sum
	})
	return out, nil
}

func condDims(a *tensor.RawTensor) (batch tensor.Shape, n, m, count int, err error) {
	batch, m, n, count, err = batched2D("cond", a)
	if err != nil {
		return nil, 0, 0, 0, err
	}
	if err = requireSquare("cond", m, n); err != nil {
		return nil, 0, 0, 0, err
	}
	return batch, n, m, count, nil
}

func singularValues(d *mat.Dense) ([]float64, error) {
	var svd mat.SVD
	if ok := svd.Factorize(d, mat.SVDNone); !ok {
		return nil, fmt.Errorf("svd failed to converge")
	}
	return svd.Values(nil), nil
}

func singularSum(d *mat.Dense, combine func([]float64) float64) (float64, error) {
	values, err := singularValues(d)
	if err != nil {
		return 0, fmt.Errorf("norm: %w", err)
	}
	return combine(values), nil
}

func singularRatio(d *mat.Dense) (float64, error) {
	values, err := singularValues(d)
	if err != nil {
		return 0, err
	}
	smin := minOf(values)
	if smin == 0 {
		return math.Inf(1), nil
	}
	return maxOf(values) / smin, nil
}

func condViaNorm(b *Backend, d *mat.Dense, p tensor.NormOrder) (float64, error) {
	var inv mat.Dense
	if err := inv.Inverse(d); err != nil {
		return math.Inf(1), nil // singular matrix has infinite condition number
	}
	na, err := denseNorm(b, d, p)
	if err != nil {
		return 0, err
	}
	ni, err := denseNorm(b, &inv, p)
	if err != nil {
		return 0, err
	}
	return na * ni, nil
}

func denseNorm(b *Backend, d *mat.Dense, p tensor.NormOrder) (float64, error) {
	m, n := d.Dims()
	raw, err := tensor.FromFloat64(flatten(d), tensor.Shape{m, n})
	if err != nil {
		return 0, err
	}
	out, err := b.matrixNorm(raw, p)
	if err != nil {
		return 0, err
	}
	return out.Float64s()[0], nil
}

func flatten(d *mat.Dense) []float64 {
	m, n := d.Dims()
	out := make([]float64, m*n)
	for r := 0; r < m; r++ {
		for c := 0; c < n; c++ {
			out[r*n+c] = d.At(r, c)
		}
	}
	return out
}

// extremeAxisSum returns the min (or max) absolute sum over rows or columns.
func extremeAxisSum(d *mat.Dense, overRows, min bool) float64 {
	m, n := d.Dims()
	outer, inner := n, m
	if overRows {
		outer, inner = m, n
	}
	best := math.Inf(1)
	if !min {
		best = math.Inf(-1)
	}
	for i := 0; i < outer; i++ {
		sum := 0.0
		for j := 0; j < inner; j++ {
			if overRows {
				sum += math.Abs(d.At(i, j))
			} else {
				sum += math.Abs(d.At(j, i))
			}
		}
		if min && sum < best || !min && sum > best {
			best = sum
		}
	}
	return best
}

func sumAll(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum
}

func maxOf(values []float64) float64 {
	best := math.Inf(-1)
	for _, v := range values {
		if v > best {
			best = v
		}
	}
	return best
}

func minOf(values []float64) float64 {
	best := math.Inf(1)
	for _, v := range values {
		if v < best {
			best = v
		}
	}
	return best
}
