package ff

import (
	"math/big"

	"github.com/cypherix/ecmath/internal/nat"
)

// newField wires up one field descriptor. Called only from package init with
// known-good constants.
func newField(name string, limbs int, pHex string, reduce func(f *Field, z, w []uint32), sqrtChain func(f *Field, z, x []uint32)) *Field {
	p, ok := new(big.Int).SetString(pHex, 16)
	if !ok {
		panic("ff: invalid prime " + pHex)
	}
	v, ok := nat.FromBig(limbs, p)
	if !ok {
		panic("ff: prime does not fit limb count " + name)
	}
	return &Field{
		Name:      name,
		Bits:      p.BitLen(),
		limbs:     limbs,
		p:         v,
		pBig:      p,
		reduce:    reduce,
		sqrtChain: sqrtChain,
	}
}

// propagateSigned folds the signed per-word accumulators into z and returns
// the (possibly negative) carry out of the top word. uint32 truncation and
// the arithmetic right shift keep two's-complement word values consistent.
func propagateSigned(z []uint32, s []int64) int64 {
	var c int64
	for i := range s {
		t := s[i] + c
		z[i] = uint32(t)
		c = t >> 32
	}
	return c
}

// foldSigned adds c times the sparse vector (coefficient, word position)
// into z, re-propagating, and returns the new carry. Used to fold the carry
// word of a Solinas reduction back in via 2^(32L) ≡ Σ coef·2^(32·pos).
func foldSigned(z []uint32, c int64, vec []foldTerm) int64 {
	s := make([]int64, len(z))
	for i := range z {
		s[i] = int64(z[i])
	}
	for _, t := range vec {
		s[t.pos] += int64(t.coef) * c
	}
	return propagateSigned(z, s)
}

type foldTerm struct {
	coef int8
	pos  int
}

// finishReduce brings z into [0, p) after carry folding.
func finishReduce(z, p []uint32) {
	for nat.Gte(z, p) {
		nat.SubFrom(z, p)
	}
}

// sqrNMul sets z = x^(2^n) * y, one step of a square-root addition chain.
// z may alias x but not y.
func (f *Field) sqrNMul(z, x []uint32, n int, y []uint32) {
	f.sqrN(z, x, n)
	f.mul(z, z, y)
}

// addU64At adds x at limb position pos of z, propagating to the top, and
// returns the overflow beyond the top limb.
func addU64At(z []uint32, x uint64, pos int) uint64 {
	c := x
	for i := pos; i < len(z) && c != 0; i++ {
		c += uint64(z[i])
		z[i] = uint32(c)
		c >>= 32
	}
	return c
}
