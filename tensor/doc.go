// Copyright 2026 Dimla ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the positional data layer of dimla.
//
// # Overview
//
// This package contains:
//   - RawTensor: a dense row-major buffer with a shape and a data type
//   - Shape: per-axis extents with NumPy-style broadcasting rules
//   - Backend: the interface numerical kernel sets implement
//   - The enumerations kernels share (QRMode, UPLO, NormOrder)
//
// Most users never touch this package directly; the named and linalg
// packages wrap it with dimension labels. It is public so that alternative
// kernel backends can be written outside this module.
//
// # Basic Usage
//
//	import "github.com/dimla-ml/dimla/tensor"
//
//	raw, err := tensor.FromFloat64(
//	    []float64{1, 2, 3, 4, 5, 6},
//	    tensor.Shape{2, 3},
//	)
//
// # Data Types
//
// Buffers hold Float64 or Complex128 elements. Factorization kernels take
// Float64 inputs; the general eigendecomposition produces Complex128
// outputs.
//
// # Broadcasting
//
// BroadcastShapes follows NumPy rules: shapes align on trailing axes, and
// an axis of length 1 stretches to match the other operand.
package tensor
