package gonum

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/dimla-ml/dimla/internal/tensor"
)

// Eig returns eigenvalues and right eigenvectors of each trailing matrix.
// Outputs are complex: general real matrices have complex eigenpairs.
func (b *Backend) Eig(a *tensor.RawTensor) (vals, vecs *tensor.RawTensor, err error) {
	batch, n, count, err := squareBatch("eig", a)
	if err != nil {
		return nil, nil, err
	}
	vals, err = newBatched(batch, tensor.Complex128, n)
	if err != nil {
		return nil, nil, err
	}
	vecs, err = newBatched(batch, tensor.Complex128, n, n)
	if err != nil {
		return nil, nil, err
	}
	err = b.forEach(count, func(i int) error {
		var eig mat.Eigen
		if ok := eig.Factorize(denseAt(a, i, n, n), mat.EigenRight); !ok {
			return fmt.Errorf("eig: failed to converge on matrix %d", i)
		}
		copy(vals.Complex128s()[i*n:(i+1)*n], eig.Values(nil))
		var cv mat.CDense
		eig.VectorsTo(&cv)
		out := vecs.Complex128s()[i*n*n : (i+1)*n*n]
		for r := 0; r < n; r++ {
			for c := 0; c < n; c++ {
				out[r*n+c] = cv.At(r, c)
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return vals, vecs, nil
}

// Eigvals returns only the (complex) eigenvalues of each trailing matrix.
func (b *Backend) Eigvals(a *tensor.RawTensor) (*tensor.RawTensor, error) {
	batch, n, count, err := squareBatch("eigvals", a)
	if err != nil {
		return nil, err
	}
	vals, err := newBatched(batch, tensor.Complex128, n)
	if err != nil {
		return nil, err
	}
	err = b.forEach(count, func(i int) error {
		var eig mat.Eigen
		if ok := eig.Factorize(denseAt(a, i, n, n), mat.EigenNone); !ok {
			return fmt.Errorf("eigvals: failed to converge on matrix %d", i)
		}
		copy(vals.Complex128s()[i*n:(i+1)*n], eig.Values(nil))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return vals, nil
}

// Eigh returns eigenvalues (ascending) and eigenvectors of each trailing
// symmetric matrix, reading only the uplo triangle.
func (b *Backend) Eigh(a *tensor.RawTensor, uplo tensor.UPLO) (vals, vecs *tensor.RawTensor, err error) {
	batch, n, count, err := squareBatch("eigh", a)
	if err != nil {
		return nil, nil, err
	}
	vals, err = newBatched(batch, tensor.Float64, n)
	if err != nil {
		return nil, nil, err
	}
	vecs, err = newBatched(batch, tensor.Float64, n, n)
	if err != nil {
		return nil, nil, err
	}
	err = b.forEach(count, func(i int) error {
		var es mat.EigenSym
		if ok := es.Factorize(symAt(a, i, n, uplo), true); !ok {
			return fmt.Errorf("eigh: failed to converge on matrix %d", i)
		}
		copy(vals.Float64s()[i*n:(i+1)*n], es.Values(nil))
		var ev mat.Dense
		es.VectorsTo(&ev)
		storeDense(vecs, i, &ev)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return vals, vecs, nil
}

// Eigvalsh returns only the eigenvalues of each trailing symmetric matrix.
func (b *Backend) Eigvalsh(a *tensor.RawTensor, uplo tensor.UPLO) (*tensor.RawTensor, error) {
	batch, n, count, err := squareBatch("eigvalsh", a)
	if err != nil {
		return nil, err
	}
	vals, err := newBatched(batch, tensor.Float64, n)
	if err != nil {
		return nil, err
	}
	err = b.forEach(count, func(i int) error {
		var es mat.EigenSym
		if ok := es.Factorize(symAt(a, i, n, uplo), false); !ok {
			return fmt.Errorf("eigvalsh: failed to converge on matrix %d", i)
		}
		copy(vals.Float64s()[i*n:(i+1)*n], es.Values(nil))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return vals, nil
}

func squareBatch(op string, a *tensor.RawTensor) (tensor.Shape, int, int, error) {
	batch, m, n, count, err := batched2D(op, a)
	if err != nil {
		return nil, 0, 0, err
	}
	if err := requireSquare(op, m, n); err != nil {
		return nil, 0, 0, err
	}
	return batch, n, count, nil
}
