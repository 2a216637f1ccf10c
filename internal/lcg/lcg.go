// Package lcg implements the deterministic pseudorandom generator spec.md §6
// specifies for the benchmark driver: a 64-bit linear congruential generator
// with Donald Knuth's MMIX constants, seeded to the multiplier itself so the
// stream is reproducible across runs and languages.
package lcg

const (
	// a is Knuth's MMIX multiplier.
	a uint64 = 6364136223846793005
	// c is Knuth's MMIX increment.
	c uint64 = 1442695040888963407
)

// Generator is one LCG stream, advanced by x ← x*a + c (mod 2⁶⁴).
type Generator struct {
	x uint64
}

// New returns a Generator seeded to x₀ = a, per spec.md §6.
func New() Generator {
	return Generator{x: a}
}

// Next returns the current value and advances the generator.
func (g *Generator) Next() uint64 {
	ret := g.x
	g.x = ret*a + c
	return ret
}

// NextOwning returns the current value together with the advanced
// generator, leaving g itself untouched. This is the value-receiver
// counterpart to Next, useful for producing a reproducible sequence without
// sharing mutable state across goroutines.
func (g Generator) NextOwning() (uint64, Generator) {
	ret := g.x
	return ret, Generator{x: ret*a + c}
}

// Fill advances g once per element of dst, writing the stream into dst in
// order.
func (g *Generator) Fill(dst []uint64) {
	for i := range dst {
		dst[i] = g.Next()
	}
}
