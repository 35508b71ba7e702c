package linalg

import (
	"fmt"

	"github.com/dimla-ml/dimla/internal/named"
	"github.com/dimla-ml/dimla/internal/tensor"
)

// unary runs the full pipeline for a single-input operation: resolve roles,
// build the output template (count and names are fixed before the kernel
// runs), transpose to the kernel's trailing-axis convention, dispatch, and
// rewrap every output.
func unary(op opID, a *named.Array, dims []string, kc kernelConfig, cfg *opConfig) ([]*named.Array, error) {
	spec, ok := opTable[op]
	if !ok || spec.outputs == nil {
		return nil, fmt.Errorf("%s: no operation spec", op)
	}
	return unaryWithArity(op, spec.arity, a, dims, kc, cfg)
}

func unaryWithArity(op opID, arity int, a *named.Array, dims []string, kc kernelConfig, cfg *opConfig) ([]*named.Array, error) {
	roles, err := resolveDims(a.Dims(), dims, arity)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	m, _ := a.DimLen(roles[0])
	n := m
	if len(roles) > 1 {
		n, _ = a.DimLen(roles[1])
	}

	ctx := opContext{
		roles: roles,
		m:     m,
		n:     n,
		mode:  kc.mode,
		full:  kc.full,
		cfg:   cfg,
		mint:  newMinter(a),
	}
	outs := opTable[op].outputs(ctx)

	raw, plan, err := toPositional(a, roles)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	raws, err := dispatch(a.Backend(), op, raw, kc)
	if err != nil {
		return nil, err
	}
	if len(raws) != len(outs) {
		return nil, fmt.Errorf("%s: %w: kernel returned %d outputs, expected %d",
			op, ErrInternalShapeMismatch, len(raws), len(outs))
	}

	results := make([]*named.Array, len(raws))
	for i := range raws {
		coords := coordsFor(a, outs[i].dims, outs[i].lengths)
		results[i], err = wrap(raws[i], plan, outs[i], coords, a.Backend())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	return results, nil
}

// Cholesky computes the lower-triangular Cholesky factor over the two named
// matrix dimensions (default: the last two). The result keeps the input's
// row and column dimension names.
func Cholesky(a *named.Array, dims []string, opts ...Option) (*named.Array, error) {
	out, err := unary(opCholesky, a, dims, kernelConfig{}, newConfig(opts))
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// Inv computes the matrix inverse; the result keeps the input's row and
// column dimension names.
func Inv(a *named.Array, dims []string, opts ...Option) (*named.Array, error) {
	out, err := unary(opInv, a, dims, kernelConfig{}, newConfig(opts))
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// MatrixPower raises the matrix to the n-th integer power; negative powers
// invert first.
func MatrixPower(a *named.Array, n int, dims []string, opts ...Option) (*named.Array, error) {
	out, err := unary(opMatrixPower, a, dims, kernelConfig{power: n}, newConfig(opts))
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// QR computes the QR decomposition. Q is labeled [row, inner] and R
// [inner, col], where "inner" is a freshly minted dimension shared by both
// outputs (renamed to avoid any collision with existing dimensions, or via
// WithNewDimName). For mode QRModeR only R is returned and q is nil.
func QR(a *named.Array, dims []string, mode tensor.QRMode, opts ...Option) (q, r *named.Array, err error) {
	switch mode {
	case "":
		mode = tensor.QRReduced
	case tensor.QRReduced, tensor.QRComplete, tensor.QRModeR:
	default:
		return nil, nil, fmt.Errorf("qr: mode %q not recognized", mode)
	}
	out, err := unary(opQR, a, dims, kernelConfig{mode: mode}, newConfig(opts))
	if err != nil {
		return nil, nil, err
	}
	if mode == tensor.QRModeR {
		return nil, out[0], nil
	}
	return out[0], out[1], nil
}

// SVD computes the singular value decomposition. Without fullMatrices the
// three outputs share one freshly minted dimension: U is [row, s], S is [s]
// and Vh is [s, col]. With fullMatrices, U, S and Vh each get their own
// fresh dimension ("u", "s", "vh" by default).
func SVD(a *named.Array, dims []string, fullMatrices bool, opts ...Option) (u, s, vh *named.Array, err error) {
	out, err := unary(opSVD, a, dims, kernelConfig{full: fullMatrices}, newConfig(opts))
	if err != nil {
		return nil, nil, nil, err
	}
	return out[0], out[1], out[2], nil
}

// SVDValues computes only the singular values, labeled with a freshly
// minted dimension ("s" by default).
func SVDValues(a *named.Array, dims []string, opts ...Option) (*named.Array, error) {
	out, err := unary(opSVDValues, a, dims, kernelConfig{}, newConfig(opts))
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// Eig computes eigenvalues and right eigenvectors of a general matrix.
// Both outputs are complex. The eigenvalue-index dimension is freshly
// minted ("eig" by default) and shared: values are labeled [eig],
// vectors [row, eig].
func Eig(a *named.Array, dims []string, opts ...Option) (vals, vecs *named.Array, err error) {
	out, err := unary(opEig, a, dims, kernelConfig{}, newConfig(opts))
	if err != nil {
		return nil, nil, err
	}
	return out[0], out[1], nil
}

// Eigvals computes only the (complex) eigenvalues, labeled with the freshly
// minted eigenvalue-index dimension.
func Eigvals(a *named.Array, dims []string, opts ...Option) (*named.Array, error) {
	out, err := unary(opEigvals, a, dims, kernelConfig{}, newConfig(opts))
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// Eigh computes eigenvalues and eigenvectors of a symmetric matrix, reading
// the triangle selected by uplo (default Lower). Output labeling matches
// Eig, with real outputs and ascending eigenvalues.
func Eigh(a *named.Array, dims []string, uplo tensor.UPLO, opts ...Option) (vals, vecs *named.Array, err error) {
	out, err := unary(opEigh, a, dims, kernelConfig{uplo: defaultUPLO(uplo)}, newConfig(opts))
	if err != nil {
		return nil, nil, err
	}
	return out[0], out[1], nil
}

// Eigvalsh computes only the eigenvalues of a symmetric matrix.
func Eigvalsh(a *named.Array, dims []string, uplo tensor.UPLO, opts ...Option) (*named.Array, error) {
	out, err := unary(opEigvalsh, a, dims, kernelConfig{uplo: defaultUPLO(uplo)}, newConfig(opts))
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

func defaultUPLO(uplo tensor.UPLO) tensor.UPLO {
	if uplo == "" {
		return tensor.Lower
	}
	return uplo
}

// Det computes the determinant, leaving one scalar per batch element.
func Det(a *named.Array, dims []string, opts ...Option) (*named.Array, error) {
	out, err := unary(opDet, a, dims, kernelConfig{}, newConfig(opts))
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// Slogdet computes the sign and the natural log of the absolute determinant.
func Slogdet(a *named.Array, dims []string, opts ...Option) (sign, logabsdet *named.Array, err error) {
	out, err := unary(opSlogdet, a, dims, kernelConfig{}, newConfig(opts))
	if err != nil {
		return nil, nil, err
	}
	return out[0], out[1], nil
}

// MatrixRank counts singular values above tol (non-positive tol selects the
// kernel's default tolerance). With hermitian, the matrix is read as
// symmetric and ranked by absolute eigenvalues instead.
func MatrixRank(a *named.Array, dims []string, tol float64, hermitian bool, opts ...Option) (*named.Array, error) {
	out, err := unary(opMatrixRank, a, dims, kernelConfig{tol: tol, hermitian: hermitian}, newConfig(opts))
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// Norm computes a matrix norm over two named dimensions or a vector norm
// over one, depending on how many names are supplied. With nil dims the
// last two dimensions are used (the last one for rank-1 arrays).
func Norm(a *named.Array, dims []string, ord tensor.NormOrder, opts ...Option) (*named.Array, error) {
	arity := 2
	if len(dims) == 1 || (len(dims) == 0 && a.Rank() == 1) {
		arity = 1
	}
	out, err := unaryWithArity(opNorm, arity, a, dims, kernelConfig{ord: ord, normAxes: arity}, newConfig(opts))
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// Cond computes the condition number with respect to the norm order p
// (default: 2-norm).
func Cond(a *named.Array, dims []string, p tensor.NormOrder, opts ...Option) (*named.Array, error) {
	out, err := unary(opCond, a, dims, kernelConfig{ord: p}, newConfig(opts))
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// Trace sums the offset-th diagonal over the two named dimensions.
func Trace(a *named.Array, dims []string, offset int, opts ...Option) (*named.Array, error) {
	out, err := unary(opTrace, a, dims, kernelConfig{offset: offset}, newConfig(opts))
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// Solve solves a·x = b over named dimensions.
//
// dims takes two or three names. With [row, col] (or nil, defaulting to a's
// last two dimensions), b is a vector over row. With [row, col, extra], b is
// a matrix over (row or col, whichever b has) and extra. The result carries
// b's operation dimension names, and batch dimensions of a and b are merged
// by name.
func Solve(a, b *named.Array, dims []string, opts ...Option) (*named.Array, error) {
	var err error
	if len(dims) == 0 {
		dims, err = defaultDims(a.Dims(), 2)
		if err != nil {
			return nil, fmt.Errorf("solve: %w", err)
		}
	}

	var aRoles, bRoles []string
	switch len(dims) {
	case 2:
		aRoles, err = resolveDims(a.Dims(), dims, 2)
		if err != nil {
			return nil, fmt.Errorf("solve: %w", err)
		}
		bRoles = []string{aRoles[0]}
	case 3:
		aRoles, err = resolveDims(a.Dims(), dims[:2], 2)
		if err != nil {
			return nil, fmt.Errorf("solve: %w", err)
		}
		if dims[2] == dims[0] || dims[2] == dims[1] {
			return nil, fmt.Errorf("solve: %w: %q supplied for two roles", ErrDuplicateRole, dims[2])
		}
		bDim := dims[0]
		if !b.HasDim(bDim) {
			bDim = dims[1]
		}
		bRoles = []string{bDim, dims[2]}
	default:
		return nil, fmt.Errorf("solve: dims takes 2 or 3 dimension names, got %d", len(dims))
	}
	for _, d := range bRoles {
		if !b.HasDim(d) {
			return nil, fmt.Errorf("solve: %w: %q not among array dimensions %v", ErrDimensionNotFound, d, b.Dims())
		}
	}
	if err := checkSharedDim(a, b, bRoles[0]); err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}

	ra, rb, plan, err := alignPair(a, b, aRoles, bRoles)
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}
	raw, err := a.Backend().Solve(ra, rb)
	if err != nil {
		return nil, kernelErr(opSolve, err)
	}

	lengths := make([]int, len(bRoles))
	for i, d := range bRoles {
		lengths[i], _ = b.DimLen(d)
	}
	out := outputSpec{dims: bRoles, lengths: lengths}
	coords := coordsFor(b, bRoles, lengths)
	res, err := wrap(raw, plan, out, coords, a.Backend())
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}
	return res, nil
}
