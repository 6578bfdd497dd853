package density

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/phil-mansfield/gphist/math/calc"
	"github.com/phil-mansfield/gphist/math/sort"
)

// EquationOfState calculates the dark energy equation of state w(z) for
// each row of de, a dark energy density tabulated on z (any normalization
// which is proportional to rho_phi(z) gives the same result).
//
// 1 + w = -(1/3) dln(rho)/dln(a). The derivative is taken in order of
// increasing scale factor with central differences in the interior and
// one-sided differences at the two ends of the grid. Non-positive densities
// give non-finite values of w rather than an error.
func EquationOfState(z []float64, de mat.Matrix) (*mat.Dense, error) {
	if err := checkShapes(z, de); err != nil {
		return nil, err
	} else if len(z) < 2 {
		return nil, fmt.Errorf("%w: w(z) needs at least 2 redshifts, got %d",
			ErrShape, len(z))
	}

	n := len(z)
	lna := make([]float64, n)
	for j := range z {
		lna[j] = -math.Log1p(z[j])
	}
	sort.Reverse(lna)

	r, _ := de.Dims()
	w := mat.NewDense(r, n, nil)
	lnrho := make([]float64, n)
	for i := 0; i < r; i++ {
		for j := range lnrho {
			lnrho[j] = math.Log(de.At(i, j))
		}
		sort.Reverse(lnrho)

		row := w.RawRowView(i)
		calc.Gradient(lna, lnrho, calc.Out(row))
		sort.Reverse(row)
		for j := range row {
			row[j] = -1 - row[j]/3
		}
	}
	return w, nil
}
