// Package linalg applies linear-algebra operations to labeled,
// named-dimension arrays. It locates the dimensions playing the matrix
// row/column (or vector) roles, moves them to the trailing axes the
// positional kernels expect, dispatches to the kernel backend, and rebuilds
// labeled results, minting collision-free names for any axes a kernel
// introduces. It performs no numerical computation itself.
package linalg

import "errors"

// Error taxonomy. Every operation either fully succeeds with a correctly
// labeled result or fails with one of these, synchronously; there is no
// partial-result mode.
var (
	// ErrDimensionNotFound reports a requested dimension name absent from
	// the input array.
	ErrDimensionNotFound = errors.New("dimension not found")

	// ErrAmbiguousDefault reports an array of insufficient rank to infer
	// the default operation dimensions.
	ErrAmbiguousDefault = errors.New("ambiguous default dimensions")

	// ErrDuplicateRole reports the same dimension name supplied for two
	// distinct roles.
	ErrDuplicateRole = errors.New("duplicate dimension role")

	// ErrIncompatibleDimension reports paired arrays whose shared dimension
	// disagrees in length or coordinate labels.
	ErrIncompatibleDimension = errors.New("incompatible dimension")

	// ErrComputation reports a kernel failure (singular matrix,
	// non-convergence). The kernel diagnostic is preserved in the message;
	// the failure is never retried or masked.
	ErrComputation = errors.New("computation failed")

	// ErrInternalShapeMismatch reports a shape/name-count disagreement while
	// rewrapping a kernel result. It indicates a bug in this package, never
	// invalid caller input.
	ErrInternalShapeMismatch = errors.New("internal shape mismatch")
)
