package gonum

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/dimla-ml/dimla/internal/tensor"
)

// Cholesky returns the lower-triangular factor of each trailing matrix.
func (b *Backend) Cholesky(a *tensor.RawTensor) (*tensor.RawTensor, error) {
	batch, m, n, count, err := batched2D("cholesky", a)
	if err != nil {
		return nil, err
	}
	if err := requireSquare("cholesky", m, n); err != nil {
		return nil, err
	}
	out, err := newBatched(batch, tensor.Float64, n, n)
	if err != nil {
		return nil, err
	}
	err = b.forEach(count, func(i int) error {
		var ch mat.Cholesky
		if ok := ch.Factorize(symAt(a, i, n, tensor.Lower)); !ok {
			return fmt.Errorf("cholesky: matrix %d is not positive definite", i)
		}
		var tri mat.TriDense
		ch.LTo(&tri)
		storeDense(out, i, &tri)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// QR factorizes each trailing matrix. Q is nil for tensor.QRModeR.
func (b *Backend) QR(a *tensor.RawTensor, mode tensor.QRMode) (q, r *tensor.RawTensor, err error) {
	batch, m, n, count, err := batched2D("qr", a)
	if err != nil {
		return nil, nil, err
	}
	k := m
	if n < m {
		k = n
	}

	qRows, qCols, rRows := m, k, k
	switch mode {
	case tensor.QRReduced, "":
	case tensor.QRComplete:
		qCols, rRows = m, m
	case tensor.QRModeR:
		qRows, qCols = 0, 0
	default:
		return nil, nil, fmt.Errorf("qr: mode %q not recognized", mode)
	}

	if qCols > 0 {
		q, err = newBatched(batch, tensor.Float64, qRows, qCols)
		if err != nil {
			return nil, nil, err
		}
	}
	r, err = newBatched(batch, tensor.Float64, rRows, n)
	if err != nil {
		return nil, nil, err
	}

	b.forEachNoErr(count, func(i int) {
		var qr mat.QR
		qr.Factorize(denseAt(a, i, m, n))
		var rFull mat.Dense
		qr.RTo(&rFull)
		storeDense(r, i, rFull.Slice(0, rRows, 0, n))
		if q != nil {
			var qFull mat.Dense
			qr.QTo(&qFull)
			storeDense(q, i, qFull.Slice(0, qRows, 0, qCols))
		}
	})
	return q, r, nil
}

// SVD decomposes each trailing matrix into u, s, vh.
func (b *Backend) SVD(a *tensor.RawTensor, fullMatrices bool) (u, s, vh *tensor.RawTensor, err error) {
	batch, m, n, count, err := batched2D("svd", a)
	if err != nil {
		return nil, nil, nil, err
	}
	k := m
	if n < m {
		k = n
	}

	kind := mat.SVDThin
	uCols, vhRows := k, k
	if fullMatrices {
		kind = mat.SVDFull
		uCols, vhRows = m, n
	}

	u, err = newBatched(batch, tensor.Float64, m, uCols)
	if err != nil {
		return nil, nil, nil, err
	}
	s, err = newBatched(batch, tensor.Float64, k)
	if err != nil {
		return nil, nil, nil, err
	}
	vh, err = newBatched(batch, tensor.Float64, vhRows, n)
	if err != nil {
		return nil, nil, nil, err
	}

	err = b.forEach(count, func(i int) error {
		var svd mat.SVD
		if ok := svd.Factorize(denseAt(a, i, m, n), kind); !ok {
			return fmt.Errorf("svd: failed to converge on matrix %d", i)
		}
		copy(s.Float64s()[i*k:(i+1)*k], svd.Values(nil))
		var ud, vd mat.Dense
		svd.UTo(&ud)
		storeDense(u, i, &ud)
		svd.VTo(&vd)
		storeDense(vh, i, vd.T())
		return nil
	})
	if err != nil {
		return nil, nil, nil, err
	}
	return u, s, vh, nil
}

// SVDValues returns only the singular values of each trailing matrix.
func (b *Backend) SVDValues(a *tensor.RawTensor) (*tensor.RawTensor, error) {
	batch, m, n, count, err := batched2D("svdvals", a)
	if err != nil {
		return nil, err
	}
	k := m
	if n < m {
		k = n
	}
	out, err := newBatched(batch, tensor.Float64, k)
	if err != nil {
		return nil, err
	}
	err = b.forEach(count, func(i int) error {
		var svd mat.SVD
		if ok := svd.Factorize(denseAt(a, i, m, n), mat.SVDNone); !ok {
			return fmt.Errorf("svdvals: failed to converge on matrix %d", i)
		}
		copy(out.Float64s()[i*k:(i+1)*k], svd.Values(nil))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
