package linalg

import (
	"fmt"
	"strings"

	"github.com/dimla-ml/dimla/internal/named"
	"github.com/dimla-ml/dimla/internal/tensor"
)

// einsumPlan is the resolved name-to-symbol translation of one einsum call:
// the positional subscript expression for the contraction kernel, plus the
// names, lengths and coordinates of the output dimensions.
type einsumPlan struct {
	subscripts string
	outDims    []string
	outLengths []int
	outCoords  map[string][]any
}

// symbolPool hands out subscript symbols z, y, x, ... skipping letters that
// are themselves dimension names of the call (a dimension literally named
// "i" must not be confused with the symbol "i" while debugging).
type symbolPool struct {
	letters []byte
}

func newSymbolPool(reserved map[string]struct{}) *symbolPool {
	p := &symbolPool{}
	for c := byte('z'); c >= 'a'; c-- {
		if _, taken := reserved[string(c)]; !taken {
			p.letters = append(p.letters, c)
		}
	}
	return p
}

func (p *symbolPool) pop() (byte, error) {
	if len(p.letters) == 0 {
		return 0, fmt.Errorf("einsum: too many distinct dimensions (at most 26 subscript symbols)")
	}
	c := p.letters[0]
	p.letters = p.letters[1:]
	return c, nil
}

// planEinsum resolves a named contraction to positional subscripts.
//
// dims has one name list per operand, optionally followed by one more list
// naming the output. Each operand resolves its own dimension names to
// symbols independently, in its own axis order, so two operands may store a
// shared dimension at different positions.
//
// Dimension classification, per operand axis:
//   - listed in the operand's own sublist: contracted (or kept, when also in
//     the output) under a symbol shared by name across all operands;
//   - named anywhere else in the call (another sublist, the output list, or
//     KeepDims) but not in this operand's sublist: kept for this operand
//     alone under a fresh symbol — in implied-output mode it becomes an
//     output dimension, in explicit-output mode it is summed;
//   - named nowhere: a batch dimension, broadcast by NAME across operands
//     and always prepended to the output.
func planEinsum(dims [][]string, operands []*named.Array, cfg *opConfig) (*einsumPlan, error) {
	if len(operands) == 0 {
		return nil, fmt.Errorf("einsum: no operands")
	}
	var explicitOut []string
	explicit := false
	switch {
	case len(dims) == len(operands):
	case len(dims) == len(operands)+1:
		explicitOut = dims[len(dims)-1]
		explicit = true
		dims = dims[:len(dims)-1]
	default:
		return nil, fmt.Errorf("einsum: got %d dimension lists for %d operands (want equal, or one more for the output)",
			len(dims), len(operands))
	}

	// Every name mentioned in the call, in first-appearance order.
	var allDims []string
	allSet := make(map[string]struct{})
	note := func(d string) {
		if _, ok := allSet[d]; !ok {
			allSet[d] = struct{}{}
			allDims = append(allDims, d)
		}
	}
	for _, sublist := range dims {
		for _, d := range sublist {
			note(d)
		}
	}
	for _, d := range explicitOut {
		note(d)
	}

	potentialOut := make(map[string]struct{}, len(allSet)+len(cfg.keep))
	for d := range allSet {
		potentialOut[d] = struct{}{}
	}
	for d := range cfg.keep {
		potentialOut[d] = struct{}{}
	}

	reserved := make(map[string]struct{}, len(potentialOut))
	for d := range potentialOut {
		reserved[d] = struct{}{}
	}
	for _, a := range operands {
		if a == nil {
			continue
		}
		for _, d := range a.Dims() {
			reserved[d] = struct{}{}
		}
	}

	pool := newSymbolPool(reserved)
	dimSym := make(map[string]byte, len(allDims))
	for _, d := range allDims {
		c, err := pool.pop()
		if err != nil {
			return nil, err
		}
		dimSym[d] = c
	}

	type outDim struct {
		name   string
		sym    byte
		length int
		coords []any
	}
	var batchOut []outDim // broadcast-by-name dims, output-leading
	var keptOut []outDim  // implied-mode kept dims, per occurrence
	batchSym := make(map[string]byte)
	batchIdx := make(map[string]int)

	inSubs := make([]string, len(operands))
	symLen := make(map[byte]int) // symbol extents (max across operands)

	bindLen := func(sym byte, n int) error {
		prev, ok := symLen[sym]
		switch {
		case !ok, prev == 1:
			symLen[sym] = n
		case n == 1, n == prev:
		default:
			return fmt.Errorf("einsum: %w: lengths %d and %d bound to one subscript", ErrIncompatibleDimension, prev, n)
		}
		return nil
	}

	for i, a := range operands {
		if a == nil {
			return nil, fmt.Errorf("einsum: operand %d is nil", i)
		}
		sublist := dims[i]
		seen := make(map[string]struct{}, len(sublist))
		for _, d := range sublist {
			if !a.HasDim(d) {
				return nil, fmt.Errorf("einsum: %w: %q not among operand %d dimensions %v",
					ErrDimensionNotFound, d, i, a.Dims())
			}
			if _, dup := seen[d]; dup {
				return nil, fmt.Errorf("einsum: %w: %q repeated in operand %d subscript", ErrDuplicateRole, d, i)
			}
			seen[d] = struct{}{}
		}

		var sub strings.Builder
		for _, d := range a.Dims() {
			n, _ := a.DimLen(d)
			var sym byte
			switch {
			case contains(sublist, d):
				sym = dimSym[d]
			case inSet(potentialOut, d):
				if explicit && contains(explicitOut, d) {
					// Bound by name across operands.
					sym = dimSym[d]
				} else {
					c, err := pool.pop()
					if err != nil {
						return nil, err
					}
					sym = c
					if !explicit {
						keptOut = append(keptOut, outDim{name: d, sym: sym, length: n, coords: a.Coords(d)})
					}
				}
			default:
				c, ok := batchSym[d]
				if !ok {
					var err error
					c, err = pool.pop()
					if err != nil {
						return nil, err
					}
					batchSym[d] = c
					batchIdx[d] = len(batchOut)
					batchOut = append(batchOut, outDim{name: d, sym: c, length: n, coords: a.Coords(d)})
				} else if prev := &batchOut[batchIdx[d]]; n > prev.length {
					prev.length = n
					prev.coords = a.Coords(d)
				} else if n == prev.length && prev.coords == nil {
					prev.coords = a.Coords(d)
				}
				sym = c
			}
			if err := bindLen(sym, n); err != nil {
				return nil, fmt.Errorf("%w (dimension %q)", err, d)
			}
			sub.WriteByte(sym)
		}
		inSubs[i] = sub.String()
	}

	// Assemble the output: batch dimensions first, then the kept or
	// explicitly requested dimensions.
	joined := strings.Join(inSubs, ",")
	var out []outDim
	out = append(out, batchOut...)
	if explicit {
		outSeen := make(map[string]struct{}, len(explicitOut))
		for _, d := range explicitOut {
			if _, dup := outSeen[d]; dup {
				return nil, fmt.Errorf("einsum: %w: %q repeated in output", ErrDuplicateRole, d)
			}
			outSeen[d] = struct{}{}
			sym := dimSym[d]
			if !strings.ContainsRune(joined, rune(sym)) {
				return nil, fmt.Errorf("einsum: %w: output dimension %q does not appear in any input",
					ErrDimensionNotFound, d)
			}
			od := outDim{name: d, sym: sym, length: symLen[sym]}
			for _, a := range operands {
				if labels := a.Coords(d); labels != nil && len(labels) == od.length {
					od.coords = labels
					break
				}
			}
			out = append(out, od)
		}
	} else {
		out = append(out, keptOut...)
	}

	// Rename repeated output names; the first occurrence keeps the name and
	// its coordinates.
	pattern := cfg.appendPattern()
	counts := make(map[string]int, len(out))
	for _, od := range out {
		counts[od.name]++
	}
	running := make(map[string]int, len(out))
	plan := &einsumPlan{outCoords: make(map[string][]any)}
	var outSub strings.Builder
	for _, od := range out {
		running[od.name]++
		name := od.name
		if counts[od.name] > 1 && running[od.name] > 1 && pattern != "" {
			name = od.name + fmt.Sprintf(pattern, running[od.name])
			od.coords = nil
		}
		plan.outDims = append(plan.outDims, name)
		plan.outLengths = append(plan.outLengths, symLen[od.sym])
		if od.coords != nil && len(od.coords) == symLen[od.sym] {
			plan.outCoords[name] = od.coords
		}
		outSub.WriteByte(od.sym)
	}

	plan.subscripts = joined + "->" + outSub.String()
	return plan, nil
}

func inSet(set map[string]struct{}, d string) bool {
	_, ok := set[d]
	return ok
}

// Einsum contracts the operands along named dimensions.
//
// dims lists, per operand, the dimension names to contract for that operand;
// an optional extra list names the output dimensions (an empty list requests
// a scalar). Without it, the output consists of every operand dimension
// mentioned in the call but not consumed for that operand, in encounter
// order. Dimensions named nowhere broadcast by name and are prepended to the
// output with their coordinates.
func Einsum(dims [][]string, operands []*named.Array, opts ...Option) (*named.Array, error) {
	cfg := newConfig(opts)
	plan, err := planEinsum(dims, operands, cfg)
	if err != nil {
		return nil, err
	}

	raws := make([]*tensor.RawTensor, len(operands))
	for i, a := range operands {
		raws[i] = a.Raw()
	}
	b := operands[0].Backend()
	raw, err := b.Einsum(plan.subscripts, raws...)
	if err != nil {
		return nil, fmt.Errorf("einsum: %w: %v", ErrComputation, err)
	}

	nopts := make([]named.Option, 0, len(plan.outCoords))
	for d, labels := range plan.outCoords {
		nopts = append(nopts, named.WithCoords(d, labels))
	}
	res, err := named.New(raw, plan.outDims, b, nopts...)
	if err != nil {
		return nil, fmt.Errorf("einsum: %w: %v", ErrInternalShapeMismatch, err)
	}
	return res, nil
}

// RawEinsum contracts the operands using a subscript string of dimension
// names: commas separate operands, spaces separate the dimensions of one
// operand, and an optional "->" part names the output, e.g.
// "batch row, batch row col -> batch col".
func RawEinsum(subscripts string, operands []*named.Array, opts ...Option) (*named.Array, error) {
	dims, err := parseSubscripts(subscripts, len(operands))
	if err != nil {
		return nil, err
	}
	return Einsum(dims, operands, opts...)
}

// EinsumPath resolves the named contraction to positional subscripts and
// returns the kernel's contraction-order report unchanged.
func EinsumPath(dims [][]string, operands []*named.Array, opts ...Option) (*tensor.PathInfo, error) {
	cfg := newConfig(opts)
	plan, err := planEinsum(dims, operands, cfg)
	if err != nil {
		return nil, err
	}
	raws := make([]*tensor.RawTensor, len(operands))
	for i, a := range operands {
		raws[i] = a.Raw()
	}
	info, err := operands[0].Backend().EinsumPath(plan.subscripts, raws...)
	if err != nil {
		return nil, fmt.Errorf("einsum_path: %w: %v", ErrComputation, err)
	}
	return info, nil
}

func parseSubscripts(subscripts string, noperands int) ([][]string, error) {
	inPart := subscripts
	outPart := ""
	hasOut := false
	if idx := strings.Index(subscripts, "->"); idx >= 0 {
		inPart, outPart = subscripts[:idx], subscripts[idx+2:]
		hasOut = true
	}

	split := func(s string) []string {
		var names []string
		for _, tok := range strings.Fields(s) {
			if tok = strings.Trim(tok, ", "); tok != "" {
				names = append(names, tok)
			}
		}
		return names
	}

	var dims [][]string
	for _, part := range strings.Split(inPart, ",") {
		dims = append(dims, split(part))
	}
	if len(dims) != noperands {
		return nil, fmt.Errorf("einsum: subscripts name %d operands, got %d", len(dims), noperands)
	}
	if hasOut {
		dims = append(dims, split(outPart))
	}
	return dims, nil
}
