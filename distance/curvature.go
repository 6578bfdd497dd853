// Package distance converts expansion histories into distance functions.
package distance

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ApplyCurvature converts the comoving distances DC(z) in dc into
// angular-diameter distances DA(z) for curvature omegaK, in place.
//
// dh and dc both have shape (samples, redshifts) and column 0 is z = 0. Only
// the z = 0 column of dh is used: each sample's curvature radius is
// DH(0)/sqrt(|omegaK|). dc is consumed: on success it holds DA values and is
// also returned. On error dc is left untouched. A NaN or infinite omegaK
// returns ErrCurvature.
func ApplyCurvature(dh, dc *mat.Dense, omegaK float64) (*mat.Dense, error) {
	if err := checkCurvatureShapes(dh, dc); err != nil {
		return nil, err
	}

	var f func(float64) float64
	switch {
	case math.IsNaN(omegaK) || math.IsInf(omegaK, 0):
		return nil, fmt.Errorf("%w: omegaK = %g", ErrCurvature, omegaK)
	case omegaK == 0:
		return dc, nil
	case omegaK < 0:
		f = math.Sin
	default:
		f = math.Sinh
	}

	nSample, nz := dc.Dims()
	sqrtK := math.Sqrt(math.Abs(omegaK))
	for i := 0; i < nSample; i++ {
		w := dh.At(i, 0) / sqrtK
		row := dc.RawRowView(i)
		for j := 0; j < nz; j++ {
			row[j] = w * f(row[j]/w)
		}
	}
	return dc, nil
}

// CurvatureCopy is ApplyCurvature without the side effect on dc: the
// angular-diameter distances are written to a newly allocated matrix.
func CurvatureCopy(dh, dc mat.Matrix, omegaK float64) (*mat.Dense, error) {
	if isNil(dh) || isNil(dc) {
		return nil, fmt.Errorf("%w: nil distance array", ErrShape)
	}
	da := mat.DenseCopyOf(dc)
	return ApplyCurvature(mat.DenseCopyOf(dh), da, omegaK)
}

func checkCurvatureShapes(dh, dc *mat.Dense) error {
	if dh == nil || dc == nil {
		return fmt.Errorf("%w: nil distance array", ErrShape)
	}
	hr, hc := dh.Dims()
	cr, cc := dc.Dims()
	if hr != cr || hc != cc {
		return fmt.Errorf("%w: DH has shape (%d, %d) but DC has shape "+
			"(%d, %d)", ErrShape, hr, hc, cr, cc)
	}
	return nil
}

func isNil(m mat.Matrix) bool {
	if m == nil {
		return true
	}
	d, ok := m.(*mat.Dense)
	return ok && d == nil
}
