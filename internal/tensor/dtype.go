package tensor

// DataType represents the element type of a RawTensor.
//
// The linear-algebra kernels operate on real matrices; Complex128 exists
// because general (non-symmetric) eigendecomposition produces complex
// eigenvalues and eigenvectors even for real input.
type DataType int

// Supported element types.
const (
	Float64 DataType = iota
	Complex128
)

// String returns a human-readable type name.
func (d DataType) String() string {
	switch d {
	case Float64:
		return "float64"
	case Complex128:
		return "complex128"
	default:
		return "unknown"
	}
}

// Size returns the element size in bytes.
func (d DataType) Size() int {
	switch d {
	case Float64:
		return 8
	case Complex128:
		return 16
	default:
		return 0
	}
}
