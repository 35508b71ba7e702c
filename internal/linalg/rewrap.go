package linalg

import (
	"fmt"

	"github.com/dimla-ml/dimla/internal/named"
	"github.com/dimla-ml/dimla/internal/tensor"
)

// wrap reassembles a kernel output into a labeled array: the batch
// dimensions recorded in the restore plan come first with their original
// names and coordinates, followed by the operation dimensions assigned by
// the naming policy.
//
// Shape disagreements here mean a bug in the resolver/transposer/namer
// pipeline, never bad caller input, and surface as ErrInternalShapeMismatch.
func wrap(raw *tensor.RawTensor, plan restorePlan, out outputSpec, coords map[string][]any, b tensor.Backend) (*named.Array, error) {
	dims := make([]string, 0, len(plan.batch)+len(out.dims))
	dims = append(dims, plan.batch...)
	dims = append(dims, out.dims...)

	if len(dims) != raw.Rank() {
		return nil, fmt.Errorf("rewrap: %w: %d dimension names for kernel output of rank %d",
			ErrInternalShapeMismatch, len(dims), raw.Rank())
	}
	shape := raw.Shape()
	for i := range plan.batch {
		if shape[i] != plan.batchShape[i] {
			return nil, fmt.Errorf("rewrap: %w: batch dimension %q expected length %d, kernel output has %d",
				ErrInternalShapeMismatch, plan.batch[i], plan.batchShape[i], shape[i])
		}
	}
	for i, d := range out.dims {
		if out.lengths != nil && shape[len(plan.batch)+i] != out.lengths[i] {
			return nil, fmt.Errorf("rewrap: %w: output dimension %q expected length %d, kernel output has %d",
				ErrInternalShapeMismatch, d, out.lengths[i], shape[len(plan.batch)+i])
		}
	}

	opts := make([]named.Option, 0, len(plan.coords)+len(coords))
	for d, labels := range plan.coords {
		opts = append(opts, named.WithCoords(d, labels))
	}
	for d, labels := range coords {
		if contains(out.dims, d) {
			opts = append(opts, named.WithCoords(d, labels))
		}
	}
	arr, err := named.New(raw, dims, b, opts...)
	if err != nil {
		return nil, fmt.Errorf("rewrap: %w: %v", ErrInternalShapeMismatch, err)
	}
	return arr, nil
}
