package interpolate

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/phil-mansfield/approx/math/mat"
)

// DefaultMaxCondition is the condition number above which SolveCoeffs warns
// that its coefficients may be inaccurate.
const DefaultMaxCondition = 1e12

// ErrNoSamples is returned when a polynomial is requested through zero points.
var ErrNoSamples = errors.New("interpolate: no sample points")

type options struct {
	logger  *zap.Logger
	maxCond float64
}

// Option configures SolveCoeffs and Approximate.
type Option func(*options)

// Logger sets the logger that ill-conditioned solves are reported to. The
// default discards everything.
func Logger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// MaxCondition sets the condition number above which a warning is logged.
func MaxCondition(c float64) Option {
	return func(o *options) { o.maxCond = c }
}

func newOptions(opts []Option) *options {
	o := &options{logger: zap.NewNop(), maxCond: DefaultMaxCondition}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Polynomial is a polynomial in the monomial basis. Coefficients are ordered
// from degree 0 upwards.
type Polynomial struct {
	coeffs []float64
}

// NewPolynomial creates a polynomial with the given coefficients. coeffs is
// copied.
func NewPolynomial(coeffs []float64) *Polynomial {
	p := &Polynomial{coeffs: make([]float64, len(coeffs))}
	copy(p.coeffs, coeffs)
	return p
}

// Coeffs returns a copy of the polynomial's coefficients, w[0] through
// w[k-1].
func (p *Polynomial) Coeffs() []float64 {
	out := make([]float64, len(p.coeffs))
	copy(out, p.coeffs)
	return out
}

// Degree returns the maximum degree the polynomial can have, one less than the
// number of coefficients.
func (p *Polynomial) Degree() int { return len(p.coeffs) - 1 }

// Eval returns sum_n w[n] * x^n.
func (p *Polynomial) Eval(x float64) float64 {
	y := 0.0
	for n := len(p.coeffs) - 1; n >= 0; n-- {
		y = y*x + p.coeffs[n]
	}
	return y
}

// EvalAll evaluates the polynomial at all the given x values. If an output
// array is given, the output is written to that array (the array is still
// returned as a convenience).
//
// If more than one output array is provided, only the first is used.
func (p *Polynomial) EvalAll(xs []float64, out ...[]float64) []float64 {
	if len(out) == 0 {
		out = [][]float64{make([]float64, len(xs))}
	}
	for i, x := range xs {
		out[0][i] = p.Eval(x)
	}
	return out[0]
}

// CoeffMatrix returns the Vandermonde matrix of xs: row i is
// [xs[i]^0, xs[i]^1, ..., xs[i]^(k-1)]. Duplicate points are not checked for
// here; they make the matrix singular.
func CoeffMatrix(xs []float64) *mat.Matrix {
	k := len(xs)
	vals := make([]float64, k*k)
	for i, x := range xs {
		pow := 1.0
		for n := 0; n < k; n++ {
			vals[i*k+n] = pow
			pow *= x
		}
	}
	return mat.NewMatrix(vals, k, k)
}

// ValueVector returns f evaluated at every point in xs. f is called exactly
// once per point, in order.
func ValueVector(xs []float64, f Func) []float64 {
	vals := make([]float64, len(xs))
	for i, x := range xs {
		vals[i] = f(x)
	}
	return vals
}

// SolveCoeffs finds the unique polynomial of degree len(xs) - 1 which passes
// through (xs[i], f(xs[i])) for every i. If xs contains duplicates the
// returned error wraps mat.ErrSingular.
func SolveCoeffs(xs []float64, f Func, opts ...Option) (*Polynomial, error) {
	if len(xs) == 0 {
		return nil, ErrNoSamples
	}
	o := newOptions(opts)

	m := CoeffMatrix(xs)
	b := ValueVector(xs, f)

	luf, err := m.LU()
	if err != nil {
		return nil, fmt.Errorf(
			"interpolate: %d sample points do not define a unique polynomial: %w",
			len(xs), err,
		)
	}

	if ce := o.logger.Check(zap.WarnLevel, "ill-conditioned Vandermonde system"); ce != nil {
		if cond := luf.Condition(m.NormInf()); cond > o.maxCond {
			ce.Write(
				zap.Int("points", len(xs)),
				zap.Float64("condition", cond),
				zap.Float64("max_condition", o.maxCond),
			)
		}
	}

	coeffs := luf.SolveVector(b, make([]float64, len(b)))
	return &Polynomial{coeffs: coeffs}, nil
}

// Approximate evaluates, at every point in x, the polynomial passing through
// f at the sample points xs.
func Approximate(f Func, xs, x []float64, opts ...Option) ([]float64, error) {
	p, err := SolveCoeffs(xs, f, opts...)
	if err != nil {
		return nil, err
	}
	return p.EvalAll(x), nil
}

// ApproximateAt is Approximate for a single evaluation point.
func ApproximateAt(f Func, xs []float64, x float64, opts ...Option) (float64, error) {
	p, err := SolveCoeffs(xs, f, opts...)
	if err != nil {
		return 0, err
	}
	return p.Eval(x), nil
}
