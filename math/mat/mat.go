/*mat contains routines for executing operations on dense matrices. Operations
are split into easy to use methods which allocate as they go and slightly less
easy to use methods which require explicitly managing the LU decomposition.

Pretty much everything only works on square matrices because that's all a
Vandermonde solve needs.
*/
package mat

import (
	"errors"
	"math"
)

// ErrSingular is returned when a matrix has no unique inverse, i.e. some
// pivot column is entirely zero during decomposition.
var ErrSingular = errors.New("mat: matrix is singular")

// Matrix represents a row-major matrix of float64 values.
type Matrix struct {
	Vals          []float64
	Width, Height int
}

// LUFactors contains data fields neccessary for a number of matrix operations.
// Exporting this type allows calling routines to better manage their memory
// consumption and to prevent recomputing the same decomposition many times.
type LUFactors struct {
	lu    Matrix
	pivot []int
	d     float64
}

// NewMatrix creates a matrix with the specified values and dimensions.
func NewMatrix(vals []float64, width, height int) *Matrix {
	if width <= 0 {
		panic("width must be positive.")
	} else if height <= 0 {
		panic("height must be positive.")
	} else if width*height != len(vals) {
		panic("height * width must equal len(vals).")
	}

	return &Matrix{Vals: vals, Width: width, Height: height}
}

// At returns the element in row i and column j.
func (m *Matrix) At(i, j int) float64 { return m.Vals[i*m.Width+j] }

// Mult multiplies two matrices together.
func (m1 *Matrix) Mult(m2 *Matrix) *Matrix {
	h, w := m1.Height, m2.Width
	out := NewMatrix(make([]float64, h*w), w, h)
	return m1.MultAt(m2, out)
}

// MultAt multiplies two matrices together and writes the result to the
// specified matrix.
func (m1 *Matrix) MultAt(m2, out *Matrix) *Matrix {
	if m1.Width != m2.Height {
		panic("Multiplication of incompatible matrix sizes.")
	} else if out.Height != m1.Height || out.Width != m2.Width {
		panic("out matrix has the wrong dimensions.")
	}

	for i := range out.Vals {
		out.Vals[i] = 0
	}
	for i := 0; i < m1.Height; i++ {
		off := i * m1.Width
		outOff := i * out.Width
		for j := 0; j < m2.Width; j++ {
			outIdx := outOff + j
			for k := 0; k < m1.Width; k++ {
				out.Vals[outIdx] += m1.Vals[off+k] * m2.Vals[k*m2.Width+j]
			}
		}
	}

	return out
}

// MultVector computes m * xs.
func (m *Matrix) MultVector(xs []float64) []float64 {
	if m.Width != len(xs) {
		panic("len(xs) != m.Width")
	}

	out := make([]float64, m.Height)
	for i := range out {
		off := i * m.Width
		sum := 0.0
		for j, x := range xs {
			sum += m.Vals[off+j] * x
		}
		out[i] = sum
	}
	return out
}

// NormInf returns the infinity norm of m, the largest absolute row sum.
func (m *Matrix) NormInf() float64 {
	max := 0.0
	for i := 0; i < m.Height; i++ {
		sum := 0.0
		for _, v := range m.Vals[i*m.Width : (i+1)*m.Width] {
			sum += math.Abs(v)
		}
		if sum > max {
			max = sum
		}
	}
	return max
}

// Invert computes the inverse of a matrix.
func (m *Matrix) Invert() (*Matrix, error) {
	lu, err := m.LU()
	if err != nil {
		return nil, err
	}
	inv := NewMatrix(make([]float64, len(m.Vals)), m.Width, m.Height)
	return lu.InvertAt(inv), nil
}

// Determinant computes the determinant of a matrix. Singular matrices have a
// determinant of zero.
func (m *Matrix) Determinant() float64 {
	lu, err := m.LU()
	if err != nil {
		return 0
	}
	return lu.Determinant()
}

// SolveVector solves the equation m * xs = bs for xs.
func (m *Matrix) SolveVector(bs []float64) ([]float64, error) {
	lu, err := m.LU()
	if err != nil {
		return nil, err
	}
	xs := make([]float64, len(bs))
	return lu.SolveVector(bs, xs), nil
}

// SolveMatrix solves the equation m * x = b for x.
func (m *Matrix) SolveMatrix(b *Matrix) (*Matrix, error) {
	lu, err := m.LU()
	if err != nil {
		return nil, err
	}
	x := NewMatrix(make([]float64, len(m.Vals)), m.Width, m.Height)
	return lu.SolveMatrix(b, x), nil
}

// NewLUFactors creates an LUFactors instance of the requested dimensions.
func NewLUFactors(n int) *LUFactors {
	luf := new(LUFactors)

	luf.lu.Vals, luf.lu.Width, luf.lu.Height = make([]float64, n*n), n, n
	luf.pivot = make([]int, n)
	luf.d = 1

	return luf
}

// LU returns the LU decomposition of a matrix.
func (m *Matrix) LU() (*LUFactors, error) {
	if m.Width != m.Height {
		panic("m is non-square.")
	}

	lu := NewLUFactors(m.Width)
	if err := m.LUFactorsAt(lu); err != nil {
		return nil, err
	}
	return lu, nil
}

// LUFactorsAt stores the LU decomposition of a matrix at the specified
// location. Rows are pivoted on their largest element relative to the row's
// scale. ErrSingular is returned if any pivot is exactly zero, in which case
// the contents of luf are unspecified.
func (m *Matrix) LUFactorsAt(luf *LUFactors) error {
	if luf.lu.Width != m.Width || luf.lu.Height != m.Height {
		panic("luf has different dimenstions than m.")
	}

	n := m.Width
	scale := make([]float64, n)
	lu := luf.lu.Vals
	luf.d = 1
	copy(lu, m.Vals)

	for i := 0; i < n; i++ {
		max := 0.0
		for _, v := range lu[i*n : (i+1)*n] {
			if tmp := math.Abs(v); tmp > max {
				max = tmp
			}
		}
		if max == 0 {
			return ErrSingular
		}
		scale[i] = 1 / max
	}

	for k := 0; k < n; k++ {
		maxi := findPivotRow(n, lu, scale, k)
		if maxi < 0 {
			return ErrSingular
		}

		if k != maxi {
			swapRows(k, maxi, n, lu)
			luf.d = -luf.d
			scale[maxi] = scale[k]
		}
		luf.pivot[k] = maxi

		kOffset := k * n
		for i := k + 1; i < n; i++ {
			iOffset := i * n
			lu[iOffset+k] /= lu[kOffset+k]
			tmp := lu[iOffset+k]
			for j := k + 1; j < n; j++ {
				lu[iOffset+j] -= tmp * lu[kOffset+j]
			}
		}
	}

	return nil
}

// findPivotRow returns the row at or below col with the largest scaled value
// in column col, or -1 if every candidate is zero.
func findPivotRow(n int, lu, scale []float64, col int) int {
	max, maxRow := 0.0, -1
	for i := col; i < n; i++ {
		val := scale[i] * math.Abs(lu[i*n+col])
		if val > max {
			max = val
			maxRow = i
		}
	}
	return maxRow
}

func swapRows(i1, i2, n int, lu []float64) {
	i1Offset, i2Offset := n*i1, n*i2
	for j := 0; j < n; j++ {
		idx1, idx2 := i1Offset+j, i2Offset+j
		lu[idx1], lu[idx2] = lu[idx2], lu[idx1]
	}
}

// SolveVector solves M * xs = bs for xs.
//
// bs and xs may point to the same physical memory.
func (luf *LUFactors) SolveVector(bs, xs []float64) []float64 {
	n := luf.lu.Width
	if n != len(bs) {
		panic("len(b) != luf.Width")
	} else if n != len(xs) {
		panic("len(x) != luf.Width")
	}

	// A x = b -> (L U) x = b -> L (U x) = b -> L y = b
	copy(xs, bs)
	lu := luf.lu.Vals

	// Solve L * y = b for y.
	forwardSubst(n, luf.pivot, lu, xs)
	// Solve U * x = y for x.
	backSubst(n, lu, xs)

	return xs
}

// Solves L * y = b for y in place, undoing the row pivots as it goes.
// y_i = b_i - sum_j=0^i-1 (alpha_ij y_j)
func forwardSubst(n int, pivot []int, lu, ys []float64) {
	for i := 0; i < n; i++ {
		piv := pivot[i]
		sum := ys[piv]
		ys[piv] = ys[i]

		iOffset := i * n
		for j := 0; j < i; j++ {
			sum -= lu[iOffset+j] * ys[j]
		}
		ys[i] = sum
	}
}

// Solves U * x = y for x in place.
// x_i = (y_i - sum_j=i+1^N-1 (beta_ij x_j)) / beta_ii
func backSubst(n int, lu, xs []float64) {
	for i := n - 1; i >= 0; i-- {
		sum := xs[i]
		iOffset := n * i
		for j := i + 1; j < n; j++ {
			sum -= lu[iOffset+j] * xs[j]
		}
		xs[i] = sum / lu[iOffset+i]
	}
}

// SolveMatrix solves the equation m * x = b.
//
// x and b may point to the same physical memory.
func (luf *LUFactors) SolveMatrix(b, x *Matrix) *Matrix {
	n := luf.lu.Width

	if b.Width != b.Height {
		panic("b matrix is non-square.")
	} else if x.Width != x.Height {
		panic("x matrix is non-square.")
	} else if n != b.Width {
		panic("b matrix different size than m matrix.")
	} else if n != x.Width {
		panic("x matrix different size than m matrix.")
	}

	col := make([]float64, n)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			col[i] = b.Vals[i*n+j]
		}
		luf.SolveVector(col, col)
		for i := 0; i < n; i++ {
			x.Vals[i*n+j] = col[i]
		}
	}

	return x
}

// InvertAt inverts the matrix represented by the given LU decomposition
// and writes the results into the specified out matrix.
func (luf *LUFactors) InvertAt(out *Matrix) *Matrix {
	n := luf.lu.Width
	if out.Width != out.Height {
		panic("out matrix is non-square.")
	} else if n != out.Width {
		panic("out matrix different size than m matrix.")
	}

	for i := range out.Vals {
		out.Vals[i] = 0
	}
	for i := 0; i < n; i++ {
		out.Vals[i*n+i] = 1
	}

	return luf.SolveMatrix(out, out)
}

// Determinant computes the determinant of the matrix represented by the
// given LU decomposition.
func (luf *LUFactors) Determinant() float64 {
	d := luf.d
	lu := luf.lu.Vals
	n := luf.lu.Width

	for i := 0; i < n; i++ {
		d *= lu[i*n+i]
	}
	return d
}

// Condition returns the infinity-norm condition number of the decomposed
// matrix, given that matrix's infinity norm.
func (luf *LUFactors) Condition(normInf float64) float64 {
	n := luf.lu.Width
	inv := NewMatrix(make([]float64, n*n), n, n)
	return normInf * luf.InvertAt(inv).NormInf()
}
