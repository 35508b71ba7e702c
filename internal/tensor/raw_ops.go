package tensor

import "fmt"

// TransposeAxes transposes dimensions according to the given permutation.
// An empty permutation reverses all dimensions.
func TransposeAxes(x *RawTensor, axes ...int) (*RawTensor, error) {
	if x == nil {
		return nil, fmt.Errorf("TransposeAxes: input tensor is nil")
	}

	ndim := len(x.shape)

	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}

	if len(axes) != ndim {
		return nil, fmt.Errorf("TransposeAxes: axes length %d must match tensor dimensions %d", len(axes), ndim)
	}

	seen := make([]bool, ndim)
	newShape := make(Shape, ndim)
	for i, ax := range axes {
		if ax < 0 || ax >= ndim {
			return nil, fmt.Errorf("TransposeAxes: axis %d out of range [0, %d)", ax, ndim)
		}
		if seen[ax] {
			return nil, fmt.Errorf("TransposeAxes: axis %d repeated in permutation %v", ax, axes)
		}
		seen[ax] = true
		newShape[i] = x.shape[ax]
	}

	result, err := NewRaw(newShape, x.dtype)
	if err != nil {
		return nil, fmt.Errorf("TransposeAxes: %w", err)
	}

	oldStrides := x.stride
	newStrides := newShape.ComputeStrides()
	total := newShape.NumElements()

	idx := make([]int, ndim)
	for i := 0; i < total; i++ {
		tmp := i
		for j := ndim - 1; j >= 0; j-- {
			idx[j] = tmp % newShape[j]
			tmp /= newShape[j]
		}

		oldFlat := 0
		newFlat := 0
		for j := 0; j < ndim; j++ {
			oldFlat += idx[j] * oldStrides[axes[j]]
			newFlat += idx[j] * newStrides[j]
		}

		switch x.dtype {
		case Float64:
			result.f64[newFlat] = x.f64[oldFlat]
		case Complex128:
			result.c128[newFlat] = x.c128[oldFlat]
		}
	}
	return result, nil
}

// Reshape returns a tensor with the same data and a new shape.
// The element counts must match.
func Reshape(x *RawTensor, newShape Shape) (*RawTensor, error) {
	if x == nil {
		return nil, fmt.Errorf("Reshape: input tensor is nil")
	}
	if newShape.NumElements() != x.NumElements() {
		return nil, fmt.Errorf("Reshape: cannot reshape %d elements to shape %v (%d elements)",
			x.NumElements(), newShape, newShape.NumElements())
	}
	if err := newShape.Validate(); err != nil {
		return nil, fmt.Errorf("Reshape: %w", err)
	}

	result := x.Clone()
	result.shape = newShape.Clone()
	result.stride = newShape.ComputeStrides()
	return result, nil
}

// BroadcastTo expands the tensor to the target shape under standard
// broadcasting rules: the target must have at least as many dimensions,
// aligned from the right, with every source dimension equal to the target
// dimension or 1.
func BroadcastTo(x *RawTensor, target Shape) (*RawTensor, error) {
	if x == nil {
		return nil, fmt.Errorf("BroadcastTo: input tensor is nil")
	}
	if len(target) < len(x.shape) {
		return nil, fmt.Errorf("BroadcastTo: target shape %v has fewer dimensions than input shape %v", target, x.shape)
	}
	offset := len(target) - len(x.shape)
	for i, d := range x.shape {
		if d != 1 && d != target[offset+i] {
			return nil, fmt.Errorf("BroadcastTo: cannot expand dimension %d from %d to %d", i, d, target[offset+i])
		}
	}

	result, err := NewRaw(target, x.dtype)
	if err != nil {
		return nil, fmt.Errorf("BroadcastTo: %w", err)
	}

	ndim := len(target)
	total := target.NumElements()
	idx := make([]int, ndim)
	for i := 0; i < total; i++ {
		tmp := i
		for j := ndim - 1; j >= 0; j-- {
			idx[j] = tmp % target[j]
			tmp /= target[j]
		}

		srcFlat := 0
		for j := 0; j < len(x.shape); j++ {
			k := idx[offset+j]
			if x.shape[j] == 1 {
				k = 0
			}
			srcFlat += k * x.stride[j]
		}
		switch x.dtype {
		case Float64:
			result.f64[i] = x.f64[srcFlat]
		case Complex128:
			result.c128[i] = x.c128[srcFlat]
		}
	}
	return result, nil
}
