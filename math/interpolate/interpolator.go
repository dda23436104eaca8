/*package interpolate contains one-dimensional interpolators. The only one
currently is Polynomial, the unique polynomial passing through a set of
sampled points of some function.
*/
package interpolate

// Interpolator is a function approximated from a finite set of samples.
type Interpolator interface {
	Eval(x float64) float64
	EvalAll(xs []float64, out ...[]float64) []float64
}

var (
	_ Interpolator = &Polynomial{}
)

// Func is a real-valued function of one variable.
type Func func(float64) float64
