// Copyright 2026 Dimla ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package named provides arrays whose axes are addressed by name rather
// than position.
//
// # Overview
//
// A named.Array pairs a tensor.RawTensor with:
//   - a list of unique, non-empty dimension names, one per axis
//   - optional per-dimension coordinate labels
//   - the kernel backend used by operations on it
//
// Operations in the linalg package select axes by these names, so callers
// never track axis order. Transposing an array moves names and coordinate
// labels together with the data.
//
// # Basic Usage
//
//	import (
//	    "github.com/dimla-ml/dimla/backend/gonum"
//	    "github.com/dimla-ml/dimla/named"
//	    "github.com/dimla-ml/dimla/tensor"
//	)
//
//	backend := gonum.New()
//	a, err := named.FromFloat64(data, tensor.Shape{4, 3, 3},
//	    []string{"batch", "row", "col"}, backend,
//	    named.WithCoords("batch", []any{"a", "b", "c", "d"}))
//
// # Coordinates
//
// Coordinate labels are arbitrary comparable values attached to a
// dimension, one per position. Operations carry them through to outputs
// whenever the dimension survives, and reject inputs whose shared
// dimensions disagree on labels.
package named
