package tensor

import (
	"math"
	"strconv"
)

// QRMode selects which factors a QR kernel returns and their shapes.
type QRMode string

// QR factorization modes. For an m-by-n input with k = min(m, n):
//   - QRReduced: Q is m-by-k, R is k-by-n.
//   - QRComplete: Q is m-by-m, R is m-by-n.
//   - QRModeR: only R (k-by-n) is returned.
const (
	QRReduced  QRMode = "reduced"
	QRComplete QRMode = "complete"
	QRModeR    QRMode = "r"
)

// UPLO selects which triangle of a symmetric matrix a kernel reads.
type UPLO string

// Triangle selectors for the symmetric eigendecomposition kernels.
const (
	Lower UPLO = "L"
	Upper UPLO = "U"
)

// NormOrder identifies the order of a matrix or vector norm.
//
// Matrix orders: NormFro (default), NormNuc, "1", "-1", "2", "-2", NormInf,
// NormNegInf. Vector orders: "1", "2" (default), NormInf, NormNegInf, "0",
// or any float p via NormP.
type NormOrder string

// Named norm orders.
const (
	NormDefault NormOrder = ""
	NormFro     NormOrder = "fro"
	NormNuc     NormOrder = "nuc"
	NormInf     NormOrder = "inf"
	NormNegInf  NormOrder = "-inf"
)

// PathInfo is the informational result of the contraction-path optimizer.
// It is passed through to the caller unchanged and never rewrapped as a
// labeled array.
type PathInfo struct {
	// Subscripts is the resolved positional contraction expression.
	Subscripts string
	// Path lists, per contraction step, the operand indices contracted at
	// that step (indices refer to the remaining operand list, as in
	// numpy.einsum_path).
	Path [][]int
	// NaiveFLOPs estimates the cost of a single all-at-once contraction.
	NaiveFLOPs float64
	// OptimizedFLOPs estimates the cost along Path.
	OptimizedFLOPs float64
	// Report is a human-readable summary.
	Report string
}

// Backend is the numerical kernel set consumed by the named-dimension
// adapter. Every method is a pure function operating on the trailing one or
// two axes of its inputs, broadcasting over all leading (batch) axes.
//
// The adapter core never interprets numerical configuration (mode, uplo,
// ord, tol, offset); it passes it through verbatim. Kernel failures
// (singular matrix, non-convergence) must be reported as errors, never
// masked.
//
// Implementations must be safe for concurrent use by multiple goroutines.
type Backend interface {
	// Cholesky returns the lower-triangular factor L with a = L Lᵀ.
	Cholesky(a *RawTensor) (*RawTensor, error)

	// QR factorizes the trailing matrix of a. Q is nil for QRModeR.
	QR(a *RawTensor, mode QRMode) (q, r *RawTensor, err error)

	// SVD returns u, s, vh with a = u · diag(s) · vh. With fullMatrices,
	// u is m-by-m and vh is n-by-n; otherwise both are thin (k = min(m, n)).
	SVD(a *RawTensor, fullMatrices bool) (u, s, vh *RawTensor, err error)

	// SVDValues returns only the singular values.
	SVDValues(a *RawTensor) (*RawTensor, error)

	// Eig returns eigenvalues and right eigenvectors of a general matrix.
	// Both outputs are Complex128.
	Eig(a *RawTensor) (vals, vecs *RawTensor, err error)

	// Eigvals returns only the (complex) eigenvalues of a general matrix.
	Eigvals(a *RawTensor) (*RawTensor, error)

	// Eigh returns eigenvalues and eigenvectors of a symmetric matrix,
	// reading only the triangle selected by uplo. Outputs are Float64,
	// eigenvalues in ascending order.
	Eigh(a *RawTensor, uplo UPLO) (vals, vecs *RawTensor, err error)

	// Eigvalsh returns only the eigenvalues of a symmetric matrix.
	Eigvalsh(a *RawTensor, uplo UPLO) (*RawTensor, error)

	// Det returns the determinant of each trailing matrix.
	Det(a *RawTensor) (*RawTensor, error)

	// Slogdet returns the sign and the log of the absolute determinant.
	Slogdet(a *RawTensor) (sign, logabsdet *RawTensor, err error)

	// MatrixRank counts singular values above tol. A non-positive tol
	// selects the default max(m, n) * eps * sigma_max. With hermitian,
	// the input is read as symmetric and absolute eigenvalues replace
	// the singular values.
	MatrixRank(a *RawTensor, tol float64, hermitian bool) (*RawTensor, error)

	// Norm computes a matrix norm (axes == 2) or vector norm (axes == 1)
	// over the trailing axes.
	Norm(a *RawTensor, ord NormOrder, axes int) (*RawTensor, error)

	// Cond returns the condition number with respect to the given norm
	// order (default: 2-norm).
	Cond(a *RawTensor, p NormOrder) (*RawTensor, error)

	// Trace sums the offset-th diagonal of each trailing matrix.
	Trace(a *RawTensor, offset int) (*RawTensor, error)

	// Solve solves a·x = b. b holds either a trailing vector
	// (rank(b) == rank(a)-1) or a trailing matrix of stacked right-hand
	// sides (rank(b) == rank(a)).
	Solve(a, b *RawTensor) (*RawTensor, error)

	// Inv returns the inverse of each trailing matrix.
	Inv(a *RawTensor) (*RawTensor, error)

	// MatrixPower raises each trailing square matrix to the n-th integer
	// power; negative n inverts first.
	MatrixPower(a *RawTensor, n int) (*RawTensor, error)

	// Einsum evaluates a generalized contraction over positional
	// subscripts, e.g. "ab,bc->ac". Subscripts shared between operands
	// bind axes together (size-1 axes broadcast); subscripts repeated
	// within one operand read the diagonal; subscripts absent from the
	// output are summed.
	Einsum(subscripts string, operands ...*RawTensor) (*RawTensor, error)

	// EinsumPath reports a contraction order for the expression without
	// performing it.
	EinsumPath(subscripts string, operands ...*RawTensor) (*PathInfo, error)

	// Name returns the backend name.
	Name() string
}

// NormP returns the NormOrder for an arbitrary vector p-norm.
// Integral orders render as "1", "-2", etc.
func NormP(p float64) NormOrder {
	if p == math.Trunc(p) && !math.IsInf(p, 0) {
		return NormOrder(strconv.FormatInt(int64(p), 10))
	}
	return NormOrder(strconv.FormatFloat(p, 'g', -1, 64))
}
