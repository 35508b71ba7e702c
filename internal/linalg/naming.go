package linalg

import (
	"strconv"

	"github.com/dimla-ml/dimla/internal/named"
)

// minter produces fresh output dimension names guaranteed not to collide
// with any input dimension, batch dimension, or sibling output dimension.
// Minting a base twice returns the same name, so sibling outputs (Q and R,
// or U, S and Vh) share their new dimension.
type minter struct {
	taken  map[string]struct{}
	minted map[string]string
}

func newMinter(inputs ...*named.Array) *minter {
	m := &minter{
		taken:  make(map[string]struct{}),
		minted: make(map[string]string),
	}
	for _, a := range inputs {
		for _, d := range a.Dims() {
			m.taken[d] = struct{}{}
		}
	}
	return m
}

// mint returns base when it is free, otherwise appends the smallest numeric
// suffix >= 2 that avoids every taken name. Deterministic: the same inputs
// always mint the same name.
func (m *minter) mint(base string) string {
	if name, ok := m.minted[base]; ok {
		return name
	}
	name := base
	for suffix := 2; ; suffix++ {
		if _, clash := m.taken[name]; !clash {
			break
		}
		name = base + strconv.Itoa(suffix)
	}
	m.taken[name] = struct{}{}
	m.minted[base] = name
	return name
}

// coordsFor gathers coordinate labels for output dimensions that keep an
// input dimension's name, provided the axis length is unchanged. Freshly
// minted dimensions carry no coordinates.
func coordsFor(a *named.Array, dims []string, lengths []int) map[string][]any {
	out := make(map[string][]any)
	for i, d := range dims {
		labels := a.Coords(d)
		if labels == nil {
			continue
		}
		if n, err := a.DimLen(d); err == nil && n == lengths[i] {
			out[d] = labels
		}
	}
	return out
}
