// Copyright 2026 Dimla ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package linalg applies linear-algebra operations to named arrays.
//
// # Overview
//
// This package contains:
//   - Factorizations: Cholesky, QR, SVD, SVDValues
//   - Eigendecompositions: Eig, Eigvals, Eigh, Eigvalsh
//   - Reductions: Det, Slogdet, MatrixRank, Norm, Cond, Trace
//   - Solvers: Solve, Inv, MatrixPower
//   - Contractions: Einsum, RawEinsum, EinsumPath
//
// Every operation takes the dimension names that play the matrix (or
// vector) roles; all other dimensions of the array are treated as batch
// dimensions and broadcast over by name. Passing nil dims selects the
// trailing dimensions. Outputs are named arrays again, with result
// dimensions named by a deterministic policy that never collides with
// existing names.
//
// # Basic Usage
//
//	import (
//	    "github.com/dimla-ml/dimla/backend/gonum"
//	    "github.com/dimla-ml/dimla/linalg"
//	    "github.com/dimla-ml/dimla/named"
//	    "github.com/dimla-ml/dimla/tensor"
//	)
//
//	backend := gonum.New()
//	a, _ := named.FromFloat64(data, tensor.Shape{5, 3, 3},
//	    []string{"chain", "param", "param2"}, backend)
//
//	// Inverts 5 matrices, one per "chain" position.
//	inv, err := linalg.Inv(a, []string{"param", "param2"})
//
// # Result Dimension Naming
//
// Operations that create new dimensions (the shared dimension of a QR, the
// singular-value index of an SVD, the eigenvalue index) mint a fresh name:
// "inner", "s", "u", "vh" or "eig" by default, suffixed with a number when
// the input already uses the name. WithNewDimName overrides the default
// per call.
//
// # Errors
//
// All failures are reported synchronously through a small set of sentinel
// errors; match them with errors.Is. Numerical failures inside a kernel
// (a singular matrix, a non-positive-definite input) come wrapped in
// ErrComputation.
package linalg
