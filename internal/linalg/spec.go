package linalg

import (
	"github.com/dimla-ml/dimla/internal/tensor"
)

// Operation identities. The naming policy for every operation is a static
// lookup on these, never a function of array contents.
type opID string

const (
	opCholesky    opID = "cholesky"
	opQR          opID = "qr"
	opSVD         opID = "svd"
	opSVDValues   opID = "svdvals"
	opEig         opID = "eig"
	opEigvals     opID = "eigvals"
	opEigh        opID = "eigh"
	opEigvalsh    opID = "eigvalsh"
	opDet         opID = "det"
	opSlogdet     opID = "slogdet"
	opMatrixRank  opID = "matrix_rank"
	opNorm        opID = "norm"
	opCond        opID = "cond"
	opTrace       opID = "trace"
	opSolve       opID = "solve"
	opInv         opID = "inv"
	opMatrixPower opID = "matrix_power"
)

// Default bases for freshly minted output dimension names. Callers override
// them per call with WithNewDimName; collision resolution appends a numeric
// suffix either way.
const (
	baseInner = "inner" // shared Q/R dimension
	baseU     = "u"     // U's second dimension in a full-matrices SVD
	baseS     = "s"     // singular-value index, shared across a thin SVD
	baseVh    = "vh"    // Vh's first dimension in a full-matrices SVD
	baseEig   = "eig"   // eigenvalue index
)

// opContext carries everything a naming rule may consult: the resolved role
// dimensions, their lengths, the operation flags that change output shapes,
// and the collision-free name minter. Note it never sees array contents.
type opContext struct {
	roles []string
	m, n  int
	mode  tensor.QRMode
	full  bool
	cfg   *opConfig
	mint  *minter
}

func (c opContext) minted(def string) string {
	return c.mint.mint(c.cfg.base(def))
}

func (c opContext) k() int {
	if c.m < c.n {
		return c.m
	}
	return c.n
}

// outputSpec describes one kernel output: its operation dimension names (the
// batch dimensions are reattached in front by the Rewrapper) and their
// lengths.
type outputSpec struct {
	dims    []string
	lengths []int
}

// opSpec is the per-operation descriptor: how many role dimensions the
// operation consumes and, given the caller's flags, how many outputs the
// kernel returns and how each is named. The output count is known before the
// kernel runs.
type opSpec struct {
	arity   int
	outputs func(c opContext) []outputSpec
}

func sameMatrix(c opContext) []outputSpec {
	return []outputSpec{{dims: c.roles, lengths: []int{c.m, c.n}}}
}

func scalarPerBatch(n int) func(opContext) []outputSpec {
	return func(opContext) []outputSpec {
		out := make([]outputSpec, n)
		for i := range out {
			out[i] = outputSpec{}
		}
		return out
	}
}

func eigPair(c opContext) []outputSpec {
	e := c.minted(baseEig)
	return []outputSpec{
		{dims: []string{e}, lengths: []int{c.n}},
		{dims: []string{c.roles[0], e}, lengths: []int{c.m, c.n}},
	}
}

func eigValuesOnly(c opContext) []outputSpec {
	return []outputSpec{{dims: []string{c.minted(baseEig)}, lengths: []int{c.n}}}
}

var opTable = map[opID]opSpec{
	opCholesky:    {arity: 2, outputs: sameMatrix},
	opInv:         {arity: 2, outputs: sameMatrix},
	opMatrixPower: {arity: 2, outputs: sameMatrix},

	opQR: {arity: 2, outputs: func(c opContext) []outputSpec {
		inner := c.minted(baseInner)
		k := c.k()
		if c.mode == tensor.QRComplete {
			k = c.m
		}
		if c.mode == tensor.QRModeR {
			return []outputSpec{
				{dims: []string{inner, c.roles[1]}, lengths: []int{k, c.n}},
			}
		}
		return []outputSpec{
			{dims: []string{c.roles[0], inner}, lengths: []int{c.m, k}},
			{dims: []string{inner, c.roles[1]}, lengths: []int{k, c.n}},
		}
	}},

	opSVD: {arity: 2, outputs: func(c opContext) []outputSpec {
		k := c.k()
		if c.full {
			return []outputSpec{
				{dims: []string{c.roles[0], c.minted(baseU)}, lengths: []int{c.m, c.m}},
				{dims: []string{c.minted(baseS)}, lengths: []int{k}},
				{dims: []string{c.minted(baseVh), c.roles[1]}, lengths: []int{c.n, c.n}},
			}
		}
		s := c.minted(baseS)
		return []outputSpec{
			{dims: []string{c.roles[0], s}, lengths: []int{c.m, k}},
			{dims: []string{s}, lengths: []int{k}},
			{dims: []string{s, c.roles[1]}, lengths: []int{k, c.n}},
		}
	}},

	opSVDValues: {arity: 2, outputs: func(c opContext) []outputSpec {
		return []outputSpec{{dims: []string{c.minted(baseS)}, lengths: []int{c.k()}}}
	}},

	opEig:      {arity: 2, outputs: eigPair},
	opEigh:     {arity: 2, outputs: eigPair},
	opEigvals:  {arity: 2, outputs: eigValuesOnly},
	opEigvalsh: {arity: 2, outputs: eigValuesOnly},

	opDet:        {arity: 2, outputs: scalarPerBatch(1)},
	opSlogdet:    {arity: 2, outputs: scalarPerBatch(2)},
	opMatrixRank: {arity: 2, outputs: scalarPerBatch(1)},
	opCond:       {arity: 2, outputs: scalarPerBatch(1)},
	opTrace:      {arity: 2, outputs: scalarPerBatch(1)},
	// Norm's arity is 1 or 2 depending on the dims supplied; resolved in
	// the operation entry point. Output is scalar-per-batch regardless.
	opNorm: {arity: 2, outputs: scalarPerBatch(1)},

	// Solve's outputs mirror b's operation dimensions; handled in Solve.
	opSolve: {arity: 2},
}
