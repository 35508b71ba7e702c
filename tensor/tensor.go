// Copyright 2026 Dimla ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/dimla-ml/dimla/internal/tensor"
)

// DataType identifies the element type of a tensor buffer.
type DataType = tensor.DataType

// Data type constants.
const (
	Float64    DataType = tensor.Float64
	Complex128 DataType = tensor.Complex128
)

// Shape describes the extent of each axis of a tensor.
// Example: Shape{2, 3, 4} is a 3-dimensional tensor with 24 elements.
type Shape = tensor.Shape

// RawTensor is a dense row-major buffer with a shape and a data type. It
// carries no dimension names; the named package adds those.
type RawTensor = tensor.RawTensor

// NewRaw allocates a zero-filled tensor.
func NewRaw(shape Shape, dtype DataType) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype)
}

// FromFloat64 wraps a float64 slice as a tensor of the given shape.
func FromFloat64(data []float64, shape Shape) (*RawTensor, error) {
	return tensor.FromFloat64(data, shape)
}

// FromComplex128 wraps a complex128 slice as a tensor of the given shape.
func FromComplex128(data []complex128, shape Shape) (*RawTensor, error) {
	return tensor.FromComplex128(data, shape)
}

// BroadcastShapes returns the shape two shapes broadcast to, aligning from
// the right with the extent-1 rule.
func BroadcastShapes(a, b Shape) (Shape, error) {
	return tensor.BroadcastShapes(a, b)
}

// Backend is the numerical kernel contract. Every method operates on the
// trailing one or two axes of its inputs and broadcasts over the leading
// batch axes.
type Backend = tensor.Backend

// QRMode selects the output form of the QR factorization.
type QRMode = tensor.QRMode

// QR mode constants.
const (
	QRReduced  QRMode = tensor.QRReduced
	QRComplete QRMode = tensor.QRComplete
	QRModeR    QRMode = tensor.QRModeR
)

// UPLO selects which triangle of a symmetric matrix kernels read.
type UPLO = tensor.UPLO

// Triangle constants.
const (
	Lower UPLO = tensor.Lower
	Upper UPLO = tensor.Upper
)

// NormOrder selects a matrix or vector norm variant.
type NormOrder = tensor.NormOrder

// Norm order constants.
const (
	NormDefault NormOrder = tensor.NormDefault
	NormFro     NormOrder = tensor.NormFro
	NormNuc     NormOrder = tensor.NormNuc
	NormInf     NormOrder = tensor.NormInf
	NormNegInf  NormOrder = tensor.NormNegInf
)

// NormP builds the order for a p-norm with an arbitrary float p.
func NormP(p float64) NormOrder {
	return tensor.NormP(p)
}

// PathInfo is the informational result of the contraction-path optimizer.
type PathInfo = tensor.PathInfo
