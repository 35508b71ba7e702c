package tensor

import (
	"testing"
)

func TestNewRawZeroFilled(t *testing.T) {
	raw, err := NewRaw(Shape{2, 3}, Float64)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}
	data := raw.Float64s()
	if len(data) != 6 {
		t.Errorf("Float64s length = %d, want 6", len(data))
	}
	for i, v := range data {
		if v != 0 {
			t.Errorf("element %d = %v, want 0", i, v)
		}
	}
}

func TestNewRawScalar(t *testing.T) {
	raw, err := NewRaw(Shape{}, Float64)
	if err != nil {
		t.Fatalf("NewRaw scalar: %v", err)
	}
	if raw.NumElements() != 1 {
		t.Errorf("scalar NumElements = %d, want 1", raw.NumElements())
	}
	if raw.Rank() != 0 {
		t.Errorf("scalar Rank = %d, want 0", raw.Rank())
	}
}

func TestFromFloat64(t *testing.T) {
	raw, err := FromFloat64([]float64{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	if err != nil {
		t.Fatalf("FromFloat64: %v", err)
	}
	if got := raw.At(1, 2); got != 6 {
		t.Errorf("At(1,2) = %v, want 6", got)
	}
	if got := raw.At(0, 1); got != 2 {
		t.Errorf("At(0,1) = %v, want 2", got)
	}
}

func TestFromFloat64LengthMismatch(t *testing.T) {
	if _, err := FromFloat64([]float64{1, 2, 3}, Shape{2, 2}); err == nil {
		t.Error("FromFloat64 with 3 elements for 2x2 shape should fail")
	}
}

func TestFromComplex128(t *testing.T) {
	raw, err := FromComplex128([]complex128{1 + 2i, 3, 4i, 5}, Shape{2, 2})
	if err != nil {
		t.Fatalf("FromComplex128: %v", err)
	}
	if raw.DType() != Complex128 {
		t.Errorf("DType = %v, want Complex128", raw.DType())
	}
	if got := raw.CAt(0, 0); got != 1+2i {
		t.Errorf("CAt(0,0) = %v, want 1+2i", got)
	}
}

func TestTransposeAxes(t *testing.T) {
	// [[1, 2, 3], [4, 5, 6]] -> [[1, 4], [2, 5], [3, 6]]
	raw, _ := FromFloat64([]float64{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	tr, err := TransposeAxes(raw, 1, 0)
	if err != nil {
		t.Fatalf("TransposeAxes: %v", err)
	}
	if !tr.Shape().Equal(Shape{3, 2}) {
		t.Fatalf("transposed shape = %v, want [3 2]", tr.Shape())
	}
	if got := tr.At(2, 0); got != 3 {
		t.Errorf("At(2,0) = %v, want 3", got)
	}
	if got := tr.At(1, 1); got != 5 {
		t.Errorf("At(1,1) = %v, want 5", got)
	}
}

func TestTransposeAxesDefaultReverses(t *testing.T) {
	raw, _ := FromFloat64(make([]float64, 24), Shape{2, 3, 4})
	tr, err := TransposeAxes(raw)
	if err != nil {
		t.Fatalf("TransposeAxes: %v", err)
	}
	if !tr.Shape().Equal(Shape{4, 3, 2}) {
		t.Errorf("transposed shape = %v, want [4 3 2]", tr.Shape())
	}
}

func TestTransposeAxesBadPermutation(t *testing.T) {
	raw, _ := FromFloat64(make([]float64, 6), Shape{2, 3})
	if _, err := TransposeAxes(raw, 0, 0); err == nil {
		t.Error("repeated axis should fail")
	}
	if _, err := TransposeAxes(raw, 0, 2); err == nil {
		t.Error("out-of-range axis should fail")
	}
}

func TestReshape(t *testing.T) {
	raw, _ := FromFloat64([]float64{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	re, err := Reshape(raw, Shape{3, 2})
	if err != nil {
		t.Fatalf("Reshape: %v", err)
	}
	// Row-major data order is preserved
	if got := re.At(0, 1); got != 2 {
		t.Errorf("At(0,1) = %v, want 2", got)
	}
	if _, err := Reshape(raw, Shape{4, 2}); err == nil {
		t.Error("Reshape to wrong element count should fail")
	}
}

func TestBroadcastTo(t *testing.T) {
	// [1, 2, 3] broadcast to 2x3 repeats the row
	raw, _ := FromFloat64([]float64{1, 2, 3}, Shape{3})
	br, err := BroadcastTo(raw, Shape{2, 3})
	if err != nil {
		t.Fatalf("BroadcastTo: %v", err)
	}
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			if got := br.At(i, j); got != float64(j+1) {
				t.Errorf("At(%d,%d) = %v, want %d", i, j, got, j+1)
			}
		}
	}
}

func TestBroadcastToSize1Axis(t *testing.T) {
	raw, _ := FromFloat64([]float64{10, 20}, Shape{2, 1})
	br, err := BroadcastTo(raw, Shape{2, 3})
	if err != nil {
		t.Fatalf("BroadcastTo: %v", err)
	}
	if got := br.At(1, 2); got != 20 {
		t.Errorf("At(1,2) = %v, want 20", got)
	}
}

func TestBroadcastToIncompatible(t *testing.T) {
	raw, _ := FromFloat64(make([]float64, 6), Shape{2, 3})
	if _, err := BroadcastTo(raw, Shape{2, 4}); err == nil {
		t.Error("BroadcastTo incompatible shape should fail")
	}
}

func TestClone(t *testing.T) {
	raw, _ := FromFloat64([]float64{1, 2}, Shape{2})
	c := raw.Clone()
	c.Float64s()[0] = 99
	if raw.At(0) != 1 {
		t.Error("Clone should not share the data buffer")
	}
}
