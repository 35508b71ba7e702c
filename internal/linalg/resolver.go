package linalg

import (
	"fmt"

	"github.com/dimla-ml/dimla/internal/named"
)

// resolveDims decides which named dimensions play the operation roles.
//
// requested may be nil/empty (defaults to the last arity dimension names,
// operating on the innermost axes) or exactly arity names. Role order is
// canonical: for matrix operations the first name is the row dimension and
// the second the column dimension; vector operations take a single name.
func resolveDims(arrayDims []string, requested []string, arity int) ([]string, error) {
	if len(requested) == 0 {
		return defaultDims(arrayDims, arity)
	}
	if len(requested) != arity {
		return nil, fmt.Errorf("resolve: got %d dimension names, operation takes %d", len(requested), arity)
	}
	roles := make([]string, 0, arity)
	for _, d := range requested {
		if !contains(arrayDims, d) {
			return nil, fmt.Errorf("resolve: %w: %q not among array dimensions %v", ErrDimensionNotFound, d, arrayDims)
		}
		if contains(roles, d) {
			return nil, fmt.Errorf("resolve: %w: %q supplied for two roles", ErrDuplicateRole, d)
		}
		roles = append(roles, d)
	}
	return roles, nil
}

func defaultDims(arrayDims []string, arity int) ([]string, error) {
	if len(arrayDims) < arity {
		return nil, fmt.Errorf("resolve: %w: array has %d dimensions, operation needs %d",
			ErrAmbiguousDefault, len(arrayDims), arity)
	}
	out := make([]string, arity)
	copy(out, arrayDims[len(arrayDims)-arity:])
	return out, nil
}

// batchDims returns the array dimensions not playing a role, in their
// original relative order.
func batchDims(arrayDims, roles []string) []string {
	batch := make([]string, 0, len(arrayDims)-len(roles))
	for _, d := range arrayDims {
		if !contains(roles, d) {
			batch = append(batch, d)
		}
	}
	return batch
}

// checkSharedDim validates the dimension contracted between two arrays of a
// binary operation: lengths must match, and when both arrays carry
// coordinate labels for it, the label sequences must be equal in order and
// values.
func checkSharedDim(a, b *named.Array, dim string) error {
	la, err := a.DimLen(dim)
	if err != nil {
		return fmt.Errorf("resolve: %w: %q not among array dimensions %v", ErrDimensionNotFound, dim, a.Dims())
	}
	lb, err := b.DimLen(dim)
	if err != nil {
		return fmt.Errorf("resolve: %w: %q not among array dimensions %v", ErrDimensionNotFound, dim, b.Dims())
	}
	if la != lb {
		return fmt.Errorf("resolve: %w: dimension %q has length %d in one array and %d in the other",
			ErrIncompatibleDimension, dim, la, lb)
	}
	ca, cb := a.Coords(dim), b.Coords(dim)
	if ca != nil && cb != nil && !named.CoordsEqual(ca, cb) {
		return fmt.Errorf("resolve: %w: coordinate labels of dimension %q differ between arrays",
			ErrIncompatibleDimension, dim)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// GetDefaultDims returns the dimension names an operation of the given role
// arity (1 for vector operations, 2 for matrix operations) would pick when
// no dims are supplied: the last arity names of the array.
func GetDefaultDims(a *named.Array, arity int) ([]string, error) {
	if arity != 1 && arity != 2 {
		return nil, fmt.Errorf("GetDefaultDims: role arity must be 1 or 2, got %d", arity)
	}
	return defaultDims(a.Dims(), arity)
}
