// Copyright 2026 Dimla ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package gonum

import (
	internalgonum "github.com/dimla-ml/dimla/internal/backend/gonum"
	"github.com/dimla-ml/dimla/tensor"
)

// Backend computes linear-algebra kernels with gonum. The zero value is
// ready to use and safe for concurrent use.
type Backend = internalgonum.Backend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a gonum backend with the default worker-pool configuration.
func New() *Backend {
	return internalgonum.New()
}
