// Package rand provides seedable pseudo random number generators for building
// synthetic sample ensembles.
//
//	// A single value
//	gen := New(Xorshift, 1337)
//	x := gen.Uniform(3, 7)
//
//	// Many values at once
//	xs := make([]float64, 100)
//	gen.UniformAt(3, 7, xs)
//
//	// Gaussian deviates
//	gen.NormalAt(0, 0.1, xs)
//
// Two generators are provided. Xorshift is very fast and is fully determined
// by its seed. PCG wraps the standard library's permuted congruential
// generator. A Generator is a math/rand/v2 Source, so it can drive any gonum
// distribution.
package rand

import (
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// generatorBackend is an interface which is used by the generators to supply
// the functionality needed for top-level functions like Uniform().
type generatorBackend interface {
	Init(seed uint64)
	Uint64() uint64
}

// Generator is a random number generator.
type Generator struct {
	backend generatorBackend
}

var _ rand.Source = &Generator{}

// GeneratorType is a flag used to indicate the desired algorithm for a
// random number generator.
type GeneratorType uint8

const (
	Xorshift GeneratorType = iota
	PCG
)

// NewTimeSeed returns a new random number generator that uses the current
// time as the seed.
func NewTimeSeed(gt GeneratorType) *Generator {
	return New(gt, uint64(time.Now().UnixNano()))
}

// New returns a new random number generator.
func New(gt GeneratorType, seed uint64) *Generator {
	var backend generatorBackend

	switch gt {
	case Xorshift:
		backend = new(xorshiftGenerator)
	case PCG:
		backend = new(pcgGenerator)
	default:
		panic("Unrecognized GeneratorType")
	}

	backend.Init(seed)
	return &Generator{backend: backend}
}

// Uint64 returns 64 uniformly distributed random bits.
func (gen *Generator) Uint64() uint64 { return gen.backend.Uint64() }

// next returns a float uniformly at random within [0, 1).
func (gen *Generator) next() float64 {
	return float64(gen.backend.Uint64()>>11) * 0x1p-53
}

// UniformInt returns an integer uniformly at random within in the
// range [low, high).
func (gen *Generator) UniformInt(low, high int) int {
	return low + int(float64(high-low)*gen.next())
}

// Uniform returns a float uniformly at random within the range [low, high).
func (gen *Generator) Uniform(low, high float64) float64 {
	return gen.next()*(high-low) + low
}

// UniformAt writes floats generated uniformly at random in the range
// [low, high) to every element in a target slice.
func (gen *Generator) UniformAt(low, high float64, target []float64) {
	for i := range target {
		target[i] = gen.next()*(high-low) + low
	}
}

// Normal returns a Gaussian deviate with mean mu and standard deviation
// sigma.
func (gen *Generator) Normal(mu, sigma float64) float64 {
	return distuv.Normal{Mu: mu, Sigma: sigma, Src: gen}.Rand()
}

// NormalAt writes Gaussian deviates with mean mu and standard deviation
// sigma to every element of target.
func (gen *Generator) NormalAt(mu, sigma float64, target []float64) {
	dist := distuv.Normal{Mu: mu, Sigma: sigma, Src: gen}
	for i := range target {
		target[i] = dist.Rand()
	}
}

// NormalDense returns an r x c matrix of Gaussian deviates. Used to build
// synthetic ensembles of log-space expansion history perturbations.
func (gen *Generator) NormalDense(r, c int, mu, sigma float64) *mat.Dense {
	m := mat.NewDense(r, c, nil)
	gen.NormalAt(mu, sigma, m.RawMatrix().Data)
	return m
}
