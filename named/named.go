// Copyright 2026 Dimla ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package named

import (
	"github.com/dimla-ml/dimla/internal/named"
	"github.com/dimla-ml/dimla/internal/tensor"
)

// Array is a tensor with named dimensions and optional coordinate labels.
type Array = named.Array

// Option configures an Array at construction time.
type Option = named.Option

// WithCoords attaches coordinate labels to one dimension. The label slice
// length must match the dimension length.
func WithCoords(dim string, labels []any) Option {
	return named.WithCoords(dim, labels)
}

// New wraps a raw tensor with dimension names. The number of names must
// match the tensor rank and every name must be unique and non-empty.
func New(raw *tensor.RawTensor, dims []string, b tensor.Backend, opts ...Option) (*Array, error) {
	return named.New(raw, dims, b, opts...)
}

// FromFloat64 builds an Array directly from a float64 slice.
func FromFloat64(data []float64, shape tensor.Shape, dims []string, b tensor.Backend, opts ...Option) (*Array, error) {
	return named.FromFloat64(data, shape, dims, b, opts...)
}

// CoordsEqual reports whether two coordinate label slices are equal.
func CoordsEqual(a, b []any) bool {
	return named.CoordsEqual(a, b)
}
