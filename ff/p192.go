package ff

import "github.com/cypherix/ecmath/internal/nat"

// P192 is the base field of secp192r1, p = 2^192 - 2^64 - 1.
var P192 = newField(
	"secp192r1", 6,
	"fffffffffffffffffffffffffffffffeffffffffffffffff",
	reduceP192, sqrtP192,
)

// reduceP192 folds the 12-word product w into z modulo p using the
// congruences of 2^(32k) for k = 6..11, which for this prime have only +1
// coefficients:
//
//	2^192 ≡ 2^64  + 1
//	2^224 ≡ 2^96  + 2^32
//	2^256 ≡ 2^128 + 2^64
//	2^288 ≡ 2^160 + 2^96
//	2^320 ≡ 2^128 + 2^64 + 1
//	2^352 ≡ 2^160 + 2^96 + 2^32
func reduceP192(f *Field, z, w []uint32) {
	var s [6]uint64
	s[0] = uint64(w[0]) + uint64(w[6]) + uint64(w[10])
	s[1] = uint64(w[1]) + uint64(w[7]) + uint64(w[11])
	s[2] = uint64(w[2]) + uint64(w[6]) + uint64(w[8]) + uint64(w[10])
	s[3] = uint64(w[3]) + uint64(w[7]) + uint64(w[9]) + uint64(w[11])
	s[4] = uint64(w[4]) + uint64(w[8]) + uint64(w[10])
	s[5] = uint64(w[5]) + uint64(w[9]) + uint64(w[11])

	var c uint64
	for i := 0; i < 6; i++ {
		t := s[i] + c
		z[i] = uint32(t)
		c = t >> 32
	}
	for c != 0 {
		c = addU64At(z, c, 0) + addU64At(z, c, 2)
	}
	finishReduce(z, f.p)
}

// sqrtP192 computes x^((p+1)/4) with (p+1)/4 = 2^62 * (2^128 - 1).
func sqrtP192(f *Field, z, x []uint32) {
	l := f.limbs
	r2 := nat.Create(l)
	f.sqrNMul(r2, x, 1, x)
	r4 := nat.Create(l)
	f.sqrNMul(r4, r2, 2, r2)
	r8 := nat.Create(l)
	f.sqrNMul(r8, r4, 4, r4)
	r16 := nat.Create(l)
	f.sqrNMul(r16, r8, 8, r8)
	r32 := nat.Create(l)
	f.sqrNMul(r32, r16, 16, r16)
	r64 := nat.Create(l)
	f.sqrNMul(r64, r32, 32, r32)
	r128 := nat.Create(l)
	f.sqrNMul(r128, r64, 64, r64)

	f.sqrN(z, r128, 62)
}
