// Copyright 2026 Dimla ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package linalg

import (
	"github.com/dimla-ml/dimla/internal/linalg"
	"github.com/dimla-ml/dimla/named"
	"github.com/dimla-ml/dimla/tensor"
)

// Sentinel errors returned (wrapped) by operations in this package. Match
// them with errors.Is.
var (
	// ErrDimensionNotFound reports a requested dimension name absent from
	// an input array.
	ErrDimensionNotFound = linalg.ErrDimensionNotFound
	// ErrAmbiguousDefault reports that dims were omitted but the array has
	// too few dimensions to pick defaults from.
	ErrAmbiguousDefault = linalg.ErrAmbiguousDefault
	// ErrDuplicateRole reports the same dimension name requested for two
	// roles of one operation.
	ErrDuplicateRole = linalg.ErrDuplicateRole
	// ErrIncompatibleDimension reports two arrays disagreeing on the
	// length or coordinates of a shared dimension.
	ErrIncompatibleDimension = linalg.ErrIncompatibleDimension
	// ErrComputation wraps a numerical kernel failure such as a singular
	// matrix or non-convergence.
	ErrComputation = linalg.ErrComputation
	// ErrInternalShapeMismatch reports a kernel result whose shape does
	// not match what the operation promised. It indicates a backend bug.
	ErrInternalShapeMismatch = linalg.ErrInternalShapeMismatch
)

// Option adjusts result dimension naming.
type Option = linalg.Option

// WithNewDimName renames the freshly minted result dimension that would
// otherwise be called defaultBase.
func WithNewDimName(defaultBase, name string) Option {
	return linalg.WithNewDimName(defaultBase, name)
}

// KeepDims marks einsum dimensions that are kept per-occurrence instead of
// being contracted by name.
func KeepDims(dims ...string) Option {
	return linalg.KeepDims(dims...)
}

// OutAppend sets the numbering pattern for repeated output dimension names
// in einsum, for example "%d_copy". The default appends the bare number.
func OutAppend(pattern string) Option {
	return linalg.OutAppend(pattern)
}

// GetDefaultDims returns the dimension names an operation of the given
// arity (1 for vector, 2 for matrix) would select when dims is nil: the
// trailing names of the array.
func GetDefaultDims(a *named.Array, arity int) ([]string, error) {
	return linalg.GetDefaultDims(a, arity)
}

// Cholesky computes the lower-triangular Cholesky factor of each symmetric
// positive-definite matrix slice.
func Cholesky(a *named.Array, dims []string, opts ...Option) (*named.Array, error) {
	return linalg.Cholesky(a, dims, opts...)
}

// Inv inverts each matrix slice.
func Inv(a *named.Array, dims []string, opts ...Option) (*named.Array, error) {
	return linalg.Inv(a, dims, opts...)
}

// MatrixPower raises each matrix slice to the integer power n. Negative
// powers invert first.
func MatrixPower(a *named.Array, n int, dims []string, opts ...Option) (*named.Array, error) {
	return linalg.MatrixPower(a, n, dims, opts...)
}

// QR factorizes each matrix slice as q @ r. The dimension shared between q
// and r is freshly named (default "inner"). With mode QRModeR only r is
// returned and q is nil.
func QR(a *named.Array, dims []string, mode tensor.QRMode, opts ...Option) (q, r *named.Array, err error) {
	return linalg.QR(a, dims, mode, opts...)
}

// SVD computes the singular value decomposition of each matrix slice.
// With fullMatrices, u and vh are square and carry distinct fresh
// dimensions (defaults "u" and "vh") while s gets its own (default "s");
// otherwise all three outputs share one fresh dimension of length
// min(rows, cols).
func SVD(a *named.Array, dims []string, fullMatrices bool, opts ...Option) (u, s, vh *named.Array, err error) {
	return linalg.SVD(a, dims, fullMatrices, opts...)
}

// SVDValues returns only the singular values of each matrix slice.
func SVDValues(a *named.Array, dims []string, opts ...Option) (*named.Array, error) {
	return linalg.SVDValues(a, dims, opts...)
}

// Eig computes eigenvalues and right eigenvectors of each matrix slice.
// Results are complex valued. Both outputs share a fresh index dimension
// (default "eig"); vectors keep the row dimension of the input.
func Eig(a *named.Array, dims []string, opts ...Option) (vals, vecs *named.Array, err error) {
	return linalg.Eig(a, dims, opts...)
}

// Eigvals computes only the eigenvalues of each matrix slice.
func Eigvals(a *named.Array, dims []string, opts ...Option) (*named.Array, error) {
	return linalg.Eigvals(a, dims, opts...)
}

// Eigh computes eigenvalues and eigenvectors of each symmetric matrix
// slice, reading only the triangle selected by uplo (default Lower).
// Eigenvalues are real and ascending.
func Eigh(a *named.Array, dims []string, uplo tensor.UPLO, opts ...Option) (vals, vecs *named.Array, err error) {
	return linalg.Eigh(a, dims, uplo, opts...)
}

// Eigvalsh computes only the eigenvalues of each symmetric matrix slice.
func Eigvalsh(a *named.Array, dims []string, uplo tensor.UPLO, opts ...Option) (*named.Array, error) {
	return linalg.Eigvalsh(a, dims, uplo, opts...)
}

// Det computes the determinant of each matrix slice.
func Det(a *named.Array, dims []string, opts ...Option) (*named.Array, error) {
	return linalg.Det(a, dims, opts...)
}

// Slogdet computes the sign and natural log of the absolute determinant of
// each matrix slice.
func Slogdet(a *named.Array, dims []string, opts ...Option) (sign, logabsdet *named.Array, err error) {
	return linalg.Slogdet(a, dims, opts...)
}

// MatrixRank counts singular values above tol for each matrix slice. A
// non-positive tol selects the usual machine-precision threshold. With
// hermitian, the slice is read as symmetric and ranked by absolute
// eigenvalues, which is cheaper and more accurate for symmetric input.
func MatrixRank(a *named.Array, dims []string, tol float64, hermitian bool, opts ...Option) (*named.Array, error) {
	return linalg.MatrixRank(a, dims, tol, hermitian, opts...)
}

// Norm computes a matrix norm over two dims or a vector norm over one.
func Norm(a *named.Array, dims []string, ord tensor.NormOrder, opts ...Option) (*named.Array, error) {
	return linalg.Norm(a, dims, ord, opts...)
}

// Cond computes the condition number of each matrix slice with respect to
// the norm order p.
func Cond(a *named.Array, dims []string, p tensor.NormOrder, opts ...Option) (*named.Array, error) {
	return linalg.Cond(a, dims, p, opts...)
}

// Trace sums the offset-th diagonal of each matrix slice.
func Trace(a *named.Array, dims []string, offset int, opts ...Option) (*named.Array, error) {
	return linalg.Trace(a, dims, offset, opts...)
}

// Solve solves a @ x = b for each batch element. With two dims, b supplies
// a vector right-hand side over dims[0]; with three dims, b is a matrix
// over one of the first two names and dims[2]. Batch dimensions of a and b
// broadcast by name.
func Solve(a, b *named.Array, dims []string, opts ...Option) (*named.Array, error) {
	return linalg.Solve(a, b, dims, opts...)
}

// Einsum contracts the operands over the listed dimension names. Names
// shared between sublists are contracted together; dimensions absent from
// an operand's sublist broadcast by name as batch dimensions. An extra
// trailing sublist names the output dimensions explicitly.
func Einsum(dims [][]string, operands []*named.Array, opts ...Option) (*named.Array, error) {
	return linalg.Einsum(dims, operands, opts...)
}

// RawEinsum contracts operands given a textual expression where commas
// separate operands and spaces separate dimension names, for example
// "chain param, param param2 -> chain param2".
func RawEinsum(subscripts string, operands []*named.Array, opts ...Option) (*named.Array, error) {
	return linalg.RawEinsum(subscripts, operands, opts...)
}

// EinsumPath reports the contraction order and cost estimates for an
// einsum expression without evaluating it.
func EinsumPath(dims [][]string, operands []*named.Array, opts ...Option) (*tensor.PathInfo, error) {
	return linalg.EinsumPath(dims, operands, opts...)
}
