package rand

// Marsaglia's xor128. Each call to Uint64 consumes two 32-bit outputs.
type xorshiftGenerator struct {
	w, x, y, z uint32
}

func (gen *xorshiftGenerator) Init(seed uint64) {
	gen.x = 123456789
	gen.y = 362436069
	gen.z = 521288629
	gen.w = uint32(seed) ^ uint32(seed>>32)
}

func (gen *xorshiftGenerator) step() uint32 {
	t := gen.x ^ (gen.x << 11)
	gen.x, gen.y, gen.z = gen.y, gen.z, gen.w
	gen.w = gen.w ^ (gen.w >> 19) ^ (t ^ (t >> 8))
	return gen.w
}

func (gen *xorshiftGenerator) Uint64() uint64 {
	hi := uint64(gen.step())
	return hi<<32 | uint64(gen.step())
}
