// Package ensemble summarizes sample ensembles column by column.
//
// An ensemble is a matrix with one row per sample and one column per redshift.
// Every summary reduces the rows of each column independently and returns one
// value per redshift.
package ensemble

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/phil-mansfield/gphist/math/sort"
)

// ErrLevel is returned for confidence levels outside (0, 1).
var ErrLevel = errors.New("ensemble: invalid confidence level")

// Median returns the median of every column of m.
func Median(m mat.Matrix) []float64 {
	out, _ := Percentile(m, 0.5)
	return out
}

// Percentile returns the p-th quantile, p in [0, 1], of every column of m.
// Values between samples are linearly interpolated.
func Percentile(m mat.Matrix, p float64) ([]float64, error) {
	if !(p >= 0 && p <= 1) {
		return nil, fmt.Errorf("%w: percentile %g is not in [0, 1]",
			ErrLevel, p)
	}
	r, c := m.Dims()
	out := make([]float64, c)
	col, buf := make([]float64, r), make([]float64, r)
	for j := range out {
		mat.Col(col, j, m)
		out[j] = sort.Percentile(col, p, buf)
	}
	return out, nil
}

// MeanStdDev returns the mean and unbiased standard deviation of every
// column of m.
func MeanStdDev(m mat.Matrix) (mean, std []float64) {
	r, c := m.Dims()
	mean, std = make([]float64, c), make([]float64, c)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, m)
		mean[j], std[j] = stat.MeanStdDev(col, nil)
	}
	return mean, std
}

// Band is a symmetric confidence interval around the median.
type Band struct {
	// Level is the fraction of samples enclosed, e.g. 0.68.
	Level float64
	Lo, Hi []float64
}

// Summary holds the median and confidence bands of an ensemble.
type Summary struct {
	Median []float64
	Bands  []Band
}

// Summarize computes the median of m and a band for every confidence level
// in levels. Each level must lie strictly between 0 and 1.
func Summarize(m mat.Matrix, levels ...float64) (*Summary, error) {
	s := &Summary{Median: Median(m), Bands: make([]Band, len(levels))}
	for i, level := range levels {
		if !(level > 0 && level < 1) || math.IsNaN(level) {
			return nil, fmt.Errorf("%w: %g", ErrLevel, level)
		}
		lo, err := Percentile(m, (1-level)/2)
		if err != nil {
			return nil, err
		}
		hi, err := Percentile(m, (1+level)/2)
		if err != nil {
			return nil, err
		}
		s.Bands[i] = Band{Level: level, Lo: lo, Hi: hi}
	}
	return s, nil
}
