// Package tensor provides the raw multi-dimensional buffer layer and the
// kernel capability contract consumed by the named-dimension adapter.
package tensor

import "fmt"

// RawTensor is the low-level, dtype-tagged tensor representation.
// Data is stored flat in row-major order.
type RawTensor struct {
	shape  Shape
	stride []int
	dtype  DataType
	f64    []float64
	c128   []complex128
}

// NewRaw creates a zero-initialized RawTensor with the given shape and type.
func NewRaw(shape Shape, dtype DataType) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	r := &RawTensor{
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
	}
	switch dtype {
	case Float64:
		r.f64 = make([]float64, shape.NumElements())
	case Complex128:
		r.c128 = make([]complex128, shape.NumElements())
	default:
		return nil, fmt.Errorf("unsupported dtype %v", dtype)
	}
	return r, nil
}

// FromFloat64 creates a Float64 RawTensor from a flat slice.
// The slice is copied.
func FromFloat64(data []float64, shape Shape) (*RawTensor, error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}
	r, err := NewRaw(shape, Float64)
	if err != nil {
		return nil, err
	}
	copy(r.f64, data)
	return r, nil
}

// FromComplex128 creates a Complex128 RawTensor from a flat slice.
// The slice is copied.
func FromComplex128(data []complex128, shape Shape) (*RawTensor, error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}
	r, err := NewRaw(shape, Complex128)
	if err != nil {
		return nil, err
	}
	copy(r.c128, data)
	return r, nil
}

// Shape returns the tensor's shape.
func (r *RawTensor) Shape() Shape {
	return r.shape
}

// Strides returns the tensor's row-major memory strides.
func (r *RawTensor) Strides() []int {
	return r.stride
}

// DType returns the tensor's element type.
func (r *RawTensor) DType() DataType {
	return r.dtype
}

// NumElements returns the total number of elements.
func (r *RawTensor) NumElements() int {
	return r.shape.NumElements()
}

// Rank returns the number of dimensions.
func (r *RawTensor) Rank() int {
	return len(r.shape)
}

// Float64s returns the flat float64 buffer.
// Panics when the tensor is not Float64.
func (r *RawTensor) Float64s() []float64 {
	if r.dtype != Float64 {
		panic(fmt.Sprintf("Float64s: tensor dtype is %v", r.dtype))
	}
	return r.f64
}

// Complex128s returns the flat complex128 buffer.
// Panics when the tensor is not Complex128.
func (r *RawTensor) Complex128s() []complex128 {
	if r.dtype != Complex128 {
		panic(fmt.Sprintf("Complex128s: tensor dtype is %v", r.dtype))
	}
	return r.c128
}

// At returns the float64 element at the given multi-dimensional index.
// Panics on rank mismatch, out-of-range indices, or a non-Float64 tensor.
func (r *RawTensor) At(indices ...int) float64 {
	return r.f64[r.flatIndex(indices)]
}

// CAt returns the complex128 element at the given multi-dimensional index.
func (r *RawTensor) CAt(indices ...int) complex128 {
	return r.c128[r.flatIndex(indices)]
}

func (r *RawTensor) flatIndex(indices []int) int {
	if len(indices) != len(r.shape) {
		panic(fmt.Sprintf("index rank %d does not match tensor rank %d", len(indices), len(r.shape)))
	}
	flat := 0
	for i, idx := range indices {
		if idx < 0 || idx >= r.shape[i] {
			panic(fmt.Sprintf("index %d out of range [0, %d) for axis %d", idx, r.shape[i], i))
		}
		flat += idx * r.stride[i]
	}
	return flat
}

// Clone returns a deep copy.
func (r *RawTensor) Clone() *RawTensor {
	out := &RawTensor{
		shape:  r.shape.Clone(),
		stride: append([]int(nil), r.stride...),
		dtype:  r.dtype,
	}
	if r.f64 != nil {
		out.f64 = append([]float64(nil), r.f64...)
	}
	if r.c128 != nil {
		out.c128 = append([]complex128(nil), r.c128...)
	}
	return out
}
