package tensor

import (
	"testing"
)

func TestShapeNumElements(t *testing.T) {
	tests := []struct {
		shape Shape
		want  int
	}{
		{Shape{2, 3}, 6},
		{Shape{4}, 4},
		{Shape{2, 3, 4}, 24},
		{Shape{}, 1}, // scalar
	}
	for _, tt := range tests {
		if got := tt.shape.NumElements(); got != tt.want {
			t.Errorf("NumElements(%v) = %d, want %d", tt.shape, got, tt.want)
		}
	}
}

func TestShapeValidate(t *testing.T) {
	if err := (Shape{2, 3}).Validate(); err != nil {
		t.Errorf("Validate(2,3) = %v, want nil", err)
	}
	if err := (Shape{2, 0}).Validate(); err == nil {
		t.Error("Validate(2,0) = nil, want error")
	}
	if err := (Shape{-1}).Validate(); err == nil {
		t.Error("Validate(-1) = nil, want error")
	}
}

func TestShapeEqual(t *testing.T) {
	if !(Shape{2, 3}).Equal(Shape{2, 3}) {
		t.Error("equal shapes reported unequal")
	}
	if (Shape{2, 3}).Equal(Shape{3, 2}) {
		t.Error("different shapes reported equal")
	}
	if (Shape{2, 3}).Equal(Shape{2, 3, 1}) {
		t.Error("different ranks reported equal")
	}
}

func TestShapeClone(t *testing.T) {
	s := Shape{2, 3}
	c := s.Clone()
	c[0] = 99
	if s[0] != 2 {
		t.Error("Clone should not share backing storage")
	}
}

func TestComputeStrides(t *testing.T) {
	strides := Shape{2, 3, 4}.ComputeStrides()
	want := []int{12, 4, 1}
	for i := range want {
		if strides[i] != want[i] {
			t.Errorf("ComputeStrides(2,3,4) = %v, want %v", strides, want)
			break
		}
	}
	if got := (Shape{}).ComputeStrides(); len(got) != 0 {
		t.Errorf("ComputeStrides() on scalar = %v, want empty", got)
	}
}

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		a, b Shape
		want Shape
	}{
		{Shape{2, 3}, Shape{2, 3}, Shape{2, 3}},
		{Shape{2, 1}, Shape{2, 3}, Shape{2, 3}},
		{Shape{3}, Shape{2, 3}, Shape{2, 3}},
		{Shape{4, 1, 3}, Shape{2, 3}, Shape{4, 2, 3}},
		{Shape{}, Shape{2, 3}, Shape{2, 3}},
	}
	for _, tt := range tests {
		got, err := BroadcastShapes(tt.a, tt.b)
		if err != nil {
			t.Errorf("BroadcastShapes(%v, %v) error: %v", tt.a, tt.b, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("BroadcastShapes(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestBroadcastShapesIncompatible(t *testing.T) {
	if _, err := BroadcastShapes(Shape{2, 3}, Shape{2, 4}); err == nil {
		t.Error("BroadcastShapes(2x3, 2x4) = nil error, want mismatch")
	}
}
