// Package named provides the labeled-array container: a raw tensor whose
// axes carry unique dimension names and optional coordinate labels.
package named

import (
	"fmt"

	"github.com/dimla-ml/dimla/internal/tensor"
)

// Array is a multi-dimensional buffer with named, ordered dimensions.
//
// Dimension name order defines the canonical shape: dims[i] names axis i of
// the underlying raw tensor. Each dimension may carry a coordinate label
// sequence of the same length as the axis. The array also carries the kernel
// backend used by linear-algebra operations on it.
type Array struct {
	raw     *tensor.RawTensor
	dims    []string
	coords  map[string][]any
	backend tensor.Backend
}

// Option configures an Array at construction time.
type Option func(*Array) error

// WithCoords attaches coordinate labels to a dimension.
func WithCoords(dim string, labels []any) Option {
	return func(a *Array) error {
		axis, ok := a.AxisOf(dim)
		if !ok {
			return fmt.Errorf("coords for unknown dimension %q", dim)
		}
		if len(labels) != a.raw.Shape()[axis] {
			return fmt.Errorf("coords for dimension %q have length %d, axis has length %d",
				dim, len(labels), a.raw.Shape()[axis])
		}
		a.coords[dim] = append([]any(nil), labels...)
		return nil
	}
}

// New creates an Array from a raw tensor, its dimension names and a kernel
// backend. The number of names must equal the tensor rank and names must be
// unique and non-empty.
func New(raw *tensor.RawTensor, dims []string, b tensor.Backend, opts ...Option) (*Array, error) {
	if raw == nil {
		return nil, fmt.Errorf("named.New: raw tensor is nil")
	}
	if b == nil {
		return nil, fmt.Errorf("named.New: backend is nil")
	}
	if len(dims) != raw.Rank() {
		return nil, fmt.Errorf("named.New: %d dimension names for tensor of rank %d", len(dims), raw.Rank())
	}
	seen := make(map[string]struct{}, len(dims))
	for _, d := range dims {
		if d == "" {
			return nil, fmt.Errorf("named.New: empty dimension name")
		}
		if _, dup := seen[d]; dup {
			return nil, fmt.Errorf("named.New: duplicate dimension name %q", d)
		}
		seen[d] = struct{}{}
	}
	a := &Array{
		raw:     raw,
		dims:    append([]string(nil), dims...),
		coords:  make(map[string][]any),
		backend: b,
	}
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, fmt.Errorf("named.New: %w", err)
		}
	}
	return a, nil
}

// FromFloat64 creates a Float64 Array from a flat slice.
func FromFloat64(data []float64, shape tensor.Shape, dims []string, b tensor.Backend, opts ...Option) (*Array, error) {
	raw, err := tensor.FromFloat64(data, shape)
	if err != nil {
		return nil, fmt.Errorf("named.FromFloat64: %w", err)
	}
	return New(raw, dims, b, opts...)
}

// Dims returns the ordered dimension names.
func (a *Array) Dims() []string {
	return append([]string(nil), a.dims...)
}

// Shape returns the array's shape, ordered like Dims.
func (a *Array) Shape() tensor.Shape {
	return a.raw.Shape().Clone()
}

// Rank returns the number of dimensions.
func (a *Array) Rank() int {
	return len(a.dims)
}

// HasDim reports whether the array has a dimension with the given name.
func (a *Array) HasDim(dim string) bool {
	_, ok := a.AxisOf(dim)
	return ok
}

// AxisOf returns the positional axis of the named dimension.
func (a *Array) AxisOf(dim string) (int, bool) {
	for i, d := range a.dims {
		if d == dim {
			return i, true
		}
	}
	return 0, false
}

// DimLen returns the length of the named dimension.
func (a *Array) DimLen(dim string) (int, error) {
	axis, ok := a.AxisOf(dim)
	if !ok {
		return 0, fmt.Errorf("unknown dimension %q", dim)
	}
	return a.raw.Shape()[axis], nil
}

// Coords returns the coordinate labels of the named dimension, or nil when
// the dimension carries none.
func (a *Array) Coords(dim string) []any {
	labels, ok := a.coords[dim]
	if !ok {
		return nil
	}
	return append([]any(nil), labels...)
}

// CoordMap returns a copy of all coordinate labels keyed by dimension name.
func (a *Array) CoordMap() map[string][]any {
	out := make(map[string][]any, len(a.coords))
	for d, labels := range a.coords {
		out[d] = append([]any(nil), labels...)
	}
	return out
}

// Raw returns the underlying raw tensor.
func (a *Array) Raw() *tensor.RawTensor {
	return a.raw
}

// Backend returns the kernel backend this array is bound to.
func (a *Array) Backend() tensor.Backend {
	return a.backend
}

// DType returns the element type.
func (a *Array) DType() tensor.DataType {
	return a.raw.DType()
}

// At returns the float64 element at the given index, ordered like Dims.
func (a *Array) At(indices ...int) float64 {
	return a.raw.At(indices...)
}

// Transpose returns a new Array with its dimensions reordered to the given
// name order. All current dimension names must be listed exactly once.
func (a *Array) Transpose(dims ...string) (*Array, error) {
	if len(dims) != len(a.dims) {
		return nil, fmt.Errorf("Transpose: %d names for array of rank %d", len(dims), len(a.dims))
	}
	axes := make([]int, len(dims))
	for i, d := range dims {
		axis, ok := a.AxisOf(d)
		if !ok {
			return nil, fmt.Errorf("Transpose: unknown dimension %q", d)
		}
		axes[i] = axis
	}
	raw, err := tensor.TransposeAxes(a.raw, axes...)
	if err != nil {
		return nil, fmt.Errorf("Transpose: %w", err)
	}
	out, err := New(raw, dims, a.backend)
	if err != nil {
		return nil, err
	}
	for d, labels := range a.coords {
		out.coords[d] = append([]any(nil), labels...)
	}
	return out, nil
}

// CoordsEqual reports whether two coordinate label sequences are equal in
// order and values. Labels are compared with ==; callers are expected to use
// comparable label types (strings, numbers, times).
func CoordsEqual(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
