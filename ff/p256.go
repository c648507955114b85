package ff

import "github.com/cypherix/ecmath/internal/nat"

// P256 is the base field of secp256r1, p = 2^256 - 2^224 + 2^192 + 2^96 - 1.
var P256 = newField(
	"secp256r1", 8,
	"ffffffff00000001000000000000000000000000ffffffffffffffffffffffff",
	reduceP256, sqrtP256,
)

// 2^256 mod p, used to fold the reduction carry back in.
var p256Fold = []foldTerm{{+1, 0}, {-1, 3}, {-1, 6}, {+1, 7}}

// reduceP256 folds the 16-word product w into z. Each per-word signed sum
// below is the column of the Solinas matrix for this prime: the aggregate of
// the FIPS 186 terms t + 2s1 + 2s2 + s3 + s4 - d1 - d2 - d3 - d4, collected
// per output word so a single signed accumulator pass replaces the nine
// intermediate vectors.
func reduceP256(f *Field, z, w []uint32) {
	i := func(k int) int64 { return int64(w[k]) }

	var s [8]int64
	s[0] = i(0) + i(8) + i(9) - i(11) - i(12) - i(13) - i(14)
	s[1] = i(1) + i(9) + i(10) - i(12) - i(13) - i(14) - i(15)
	s[2] = i(2) + i(10) + i(11) - i(13) - i(14) - i(15)
	s[3] = i(3) - i(8) - i(9) + 2*i(11) + 2*i(12) + i(13) - i(15)
	s[4] = i(4) - i(9) - i(10) + 2*i(12) + 2*i(13) + i(14)
	s[5] = i(5) - i(10) - i(11) + 2*i(13) + 2*i(14) + i(15)
	s[6] = i(6) - i(8) - i(9) + i(13) + 3*i(14) + 2*i(15)
	s[7] = i(7) + i(8) - i(10) - i(11) - i(12) - i(13) + 3*i(15)

	c := propagateSigned(z, s[:])
	for c != 0 {
		c = foldSigned(z, c, p256Fold)
	}
	finishReduce(z, f.p)
}

// sqrtP256 computes x^((p+1)/4) with
// (p+1)/4 = 2^254 - 2^222 + 2^190 + 2^94.
func sqrtP256(f *Field, z, x []uint32) {
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

	f.sqrNMul(z, r32, 32, x) // 2^64 - 2^32 + 1
	f.sqrNMul(z, z, 96, x)   // 2^160 - 2^128 + 2^96 + 1
	f.sqrN(z, z, 94)
}
