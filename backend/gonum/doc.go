// Copyright 2026 Dimla ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package gonum provides the default kernel backend, implemented with
// gonum.org/v1/gonum.
//
// # Overview
//
// The backend implements tensor.Backend: every factorization, reduction
// and contraction kernel the linalg package dispatches to. Kernels operate
// on raw positional tensors; each trailing matrix of a batched input is
// handed to gonum's mat package and the results are assembled back into
// one output buffer. Batches above a small threshold are processed on a
// worker pool.
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
//	a, _ := named.FromFloat64(data, tensor.Shape{3, 3},
//	    []string{"row", "col"}, backend)
package gonum
