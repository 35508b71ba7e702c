package linalg

import (
	"fmt"

	"github.com/dimla-ml/dimla/internal/tensor"
)

// kernelConfig is the operation-specific configuration forwarded verbatim to
// the kernel. The adapter never interprets the numerical meaning of these
// fields.
type kernelConfig struct {
	mode      tensor.QRMode
	full      bool
	uplo      tensor.UPLO
	ord       tensor.NormOrder
	normAxes  int
	tol       float64
	hermitian bool
	offset    int
	power     int
}

// dispatch invokes the positional kernel for a unary operation and returns
// its outputs as a slice ordered like the operation's output spec. The
// output count is decided by the operation identity and the caller's flags —
// the same rule the naming policy uses — not by inspecting what the kernel
// happened to return.
func dispatch(b tensor.Backend, op opID, raw *tensor.RawTensor, kc kernelConfig) ([]*tensor.RawTensor, error) {
	switch op {
	case opCholesky:
		out, err := b.Cholesky(raw)
		return one(op, out, err)
	case opInv:
		out, err := b.Inv(raw)
		return one(op, out, err)
	case opMatrixPower:
		out, err := b.MatrixPower(raw, kc.power)
		return one(op, out, err)
	case opQR:
		q, r, err := b.QR(raw, kc.mode)
		if err != nil {
			return nil, kernelErr(op, err)
		}
		if kc.mode == tensor.QRModeR {
			return []*tensor.RawTensor{r}, nil
		}
		return []*tensor.RawTensor{q, r}, nil
	case opSVD:
		u, s, vh, err := b.SVD(raw, kc.full)
		if err != nil {
			return nil, kernelErr(op, err)
		}
		return []*tensor.RawTensor{u, s, vh}, nil
	case opSVDValues:
		s, err := b.SVDValues(raw)
		return one(op, s, err)
	case opEig:
		vals, vecs, err := b.Eig(raw)
		if err != nil {
			return nil, kernelErr(op, err)
		}
		return []*tensor.RawTensor{vals, vecs}, nil
	case opEigh:
		vals, vecs, err := b.Eigh(raw, kc.uplo)
		if err != nil {
			return nil, kernelErr(op, err)
		}
		return []*tensor.RawTensor{vals, vecs}, nil
	case opEigvals:
		vals, err := b.Eigvals(raw)
		return one(op, vals, err)
	case opEigvalsh:
		vals, err := b.Eigvalsh(raw, kc.uplo)
		return one(op, vals, err)
	case opDet:
		out, err := b.Det(raw)
		return one(op, out, err)
	case opSlogdet:
		sign, logdet, err := b.Slogdet(raw)
		if err != nil {
			return nil, kernelErr(op, err)
		}
		return []*tensor.RawTensor{sign, logdet}, nil
	case opMatrixRank:
		out, err := b.MatrixRank(raw, kc.tol, kc.hermitian)
		return one(op, out, err)
	case opNorm:
		out, err := b.Norm(raw, kc.ord, kc.normAxes)
		return one(op, out, err)
	case opCond:
		out, err := b.Cond(raw, kc.ord)
		return one(op, out, err)
	case opTrace:
		out, err := b.Trace(raw, kc.offset)
		return one(op, out, err)
	default:
		return nil, fmt.Errorf("dispatch: unknown operation %q", op)
	}
}

func one(op opID, out *tensor.RawTensor, err error) ([]*tensor.RawTensor, error) {
	if err != nil {
		return nil, kernelErr(op, err)
	}
	return []*tensor.RawTensor{out}, nil
}

// kernelErr classifies a kernel failure. The kernel's own diagnostic is kept
// verbatim; nothing is retried.
func kernelErr(op opID, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrComputation, err)
}
