package rand

import (
	"math/rand/v2"
)

// Arbitrary odd constant used to derive PCG's second seed word.
const pcgStream = 0xda3e39cb94b95bdb

type pcgGenerator struct {
	src *rand.PCG
}

func (gen *pcgGenerator) Init(seed uint64) {
	gen.src = rand.NewPCG(seed, seed^pcgStream)
}

func (gen *pcgGenerator) Uint64() uint64 { return gen.src.Uint64() }
