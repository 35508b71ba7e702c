package linalg

import (
	"fmt"

	"github.com/dimla-ml/dimla/internal/named"
	"github.com/dimla-ml/dimla/internal/tensor"
)

// restorePlan records what the Rewrapper needs to reattach batch dimensions
// to a kernel output: their names in original relative order, their lengths,
// and their coordinate labels.
type restorePlan struct {
	batch      []string
	batchShape tensor.Shape
	coords     map[string][]any
}

// toPositional reorders the array so the role dimensions become the trailing
// axes (row before column, single vector axis last) and every other
// dimension moves to the front as a batch axis, keeping its original
// relative order.
func toPositional(a *named.Array, roles []string) (*tensor.RawTensor, restorePlan, error) {
	batch := batchDims(a.Dims(), roles)
	order := append(append([]string(nil), batch...), roles...)

	axes := make([]int, len(order))
	for i, d := range order {
		axis, ok := a.AxisOf(d)
		if !ok {
			return nil, restorePlan{}, fmt.Errorf("transpose: %w: %q", ErrDimensionNotFound, d)
		}
		axes[i] = axis
	}
	raw, err := tensor.TransposeAxes(a.Raw(), axes...)
	if err != nil {
		return nil, restorePlan{}, fmt.Errorf("transpose: %w", err)
	}

	plan := restorePlan{
		batch:      batch,
		batchShape: raw.Shape()[:len(batch)].Clone(),
		coords:     make(map[string][]any),
	}
	for _, d := range batch {
		if labels := a.Coords(d); labels != nil {
			plan.coords[d] = labels
		}
	}
	return raw, plan, nil
}

// alignPair prepares two arrays for a binary kernel: each array's role
// dimensions move to its trailing axes, and the batch dimensions are merged
// by NAME — the union of both arrays' batch dimension names (left operand
// order first, then names only the right has), with size-1 axes inserted
// where a name is missing and broadcast to the union length.
//
// A batch dimension present in both arrays must agree in length (or be 1 on
// one side); when both sides carry coordinate labels for it and neither side
// is being broadcast, the labels must be equal.
func alignPair(a, b *named.Array, aRoles, bRoles []string) (ra, rb *tensor.RawTensor, plan restorePlan, err error) {
	aBatch := batchDims(a.Dims(), aRoles)
	bBatch := batchDims(b.Dims(), bRoles)

	union := append([]string(nil), aBatch...)
	for _, d := range bBatch {
		if !contains(union, d) {
			union = append(union, d)
		}
	}

	unionShape := make(tensor.Shape, len(union))
	coords := make(map[string][]any)
	for i, d := range union {
		la, lb := 1, 1
		if contains(aBatch, d) {
			la, _ = a.DimLen(d)
		}
		if contains(bBatch, d) {
			lb, _ = b.DimLen(d)
		}
		switch {
		case la == lb:
			unionShape[i] = la
		case la == 1:
			unionShape[i] = lb
		case lb == 1:
			unionShape[i] = la
		default:
			return nil, nil, restorePlan{}, fmt.Errorf("transpose: %w: batch dimension %q has length %d in one array and %d in the other",
				ErrIncompatibleDimension, d, la, lb)
		}

		ca, cb := a.Coords(d), b.Coords(d)
		if ca != nil && len(ca) == unionShape[i] && cb != nil && len(cb) == unionShape[i] && !named.CoordsEqual(ca, cb) {
			return nil, nil, restorePlan{}, fmt.Errorf("transpose: %w: coordinate labels of batch dimension %q differ between arrays",
				ErrIncompatibleDimension, d)
		}
		if ca != nil && len(ca) == unionShape[i] {
			coords[d] = ca
		} else if cb != nil && len(cb) == unionShape[i] {
			coords[d] = cb
		}
	}

	ra, err = toUnion(a, aRoles, union, unionShape)
	if err != nil {
		return nil, nil, restorePlan{}, err
	}
	rb, err = toUnion(b, bRoles, union, unionShape)
	if err != nil {
		return nil, nil, restorePlan{}, err
	}

	plan = restorePlan{batch: union, batchShape: unionShape, coords: coords}
	return ra, rb, plan, nil
}

// toUnion transposes one array to [union-batch..., roles...] order, treating
// union batch dimensions the array lacks as size 1, and broadcasts them to
// the union lengths.
func toUnion(a *named.Array, roles, union []string, unionShape tensor.Shape) (*tensor.RawTensor, error) {
	// Own dims ordered as: batch dims in union order, then roles.
	order := make([]string, 0, a.Rank())
	for _, d := range union {
		if a.HasDim(d) {
			order = append(order, d)
		}
	}
	order = append(order, roles...)

	axes := make([]int, len(order))
	for i, d := range order {
		axis, ok := a.AxisOf(d)
		if !ok {
			return nil, fmt.Errorf("transpose: %w: %q", ErrDimensionNotFound, d)
		}
		axes[i] = axis
	}
	raw, err := tensor.TransposeAxes(a.Raw(), axes...)
	if err != nil {
		return nil, fmt.Errorf("transpose: %w", err)
	}

	// Insert size-1 axes for union dims this array lacks.
	padded := make(tensor.Shape, 0, len(union)+len(roles))
	next := 0
	for _, d := range union {
		if a.HasDim(d) {
			padded = append(padded, raw.Shape()[next])
			next++
		} else {
			padded = append(padded, 1)
		}
	}
	padded = append(padded, raw.Shape()[next:]...)
	raw, err = tensor.Reshape(raw, padded)
	if err != nil {
		return nil, fmt.Errorf("transpose: %w", err)
	}

	target := append(unionShape.Clone(), raw.Shape()[len(union):]...)
	raw, err = tensor.BroadcastTo(raw, target)
	if err != nil {
		return nil, fmt.Errorf("transpose: %w", err)
	}
	return raw, nil
}
