package ff

import "github.com/cypherix/ecmath/internal/nat"

// P384 is the base field of secp384r1, p = 2^384 - 2^128 - 2^96 + 2^32 - 1.
var P384 = newField(
	"secp384r1", 12,
	"fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffeffffffff0000000000000000ffffffff",
	reduceP384, sqrtP384,
)

// 2^384 mod p, used to fold the reduction carry back in.
var p384Fold = []foldTerm{{+1, 0}, {-1, 1}, {+1, 3}, {+1, 4}}

// reduceP384 folds the 24-word product w into z. As in reduceP256, each sum
// is one column of the Solinas matrix, the per-word aggregate of the FIPS 186
// terms t + 2s1 + s2 + s3 + s4 + s5 + s6 - d1 - d2 - d3.
func reduceP384(f *Field, z, w []uint32) {
	i := func(k int) int64 { return int64(w[k]) }

	var s [12]int64
	s[0] = i(0) + i(12) + i(20) + i(21) - i(23)
	s[1] = i(1) - i(12) + i(13) - i(20) + i(22) + i(23)
	s[2] = i(2) - i(13) + i(14) - i(21) + i(23)
	s[3] = i(3) + i(12) - i(14) + i(15) + i(20) + i(21) - i(22) - i(23)
	s[4] = i(4) + i(12) + i(13) - i(15) + i(16) + i(20) + 2*i(21) + i(22) - 2*i(23)
	s[5] = i(5) + i(13) + i(14) - i(16) + i(17) + i(21) + 2*i(22) + i(23)
	s[6] = i(6) + i(14) + i(15) - i(17) + i(18) + i(22) + 2*i(23)
	s[7] = i(7) + i(15) + i(16) - i(18) + i(19) + i(23)
	s[8] = i(8) + i(16) + i(17) - i(19) + i(20)
	s[9] = i(9) + i(17) + i(18) - i(20) + i(21)
	s[10] = i(10) + i(18) + i(19) - i(21) + i(22)
	s[11] = i(11) + i(19) + i(20) - i(22) + i(23)

	c := propagateSigned(z, s[:])
	for c != 0 {
		c = foldSigned(z, c, p384Fold)
	}
	finishReduce(z, f.p)
}

// sqrtP384 computes x^((p+1)/4) with
// (p+1)/4 = 2^382 - 2^126 - 2^94 + 2^30.
func sqrtP384(f *Field, z, x []uint32) {
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
	r192 := nat.Create(l)
	f.sqrNMul(r192, r128, 64, r64)
	r224 := nat.Create(l)
	f.sqrNMul(r224, r192, 32, r32)
	r240 := nat.Create(l)
	f.sqrNMul(r240, r224, 16, r16)
	r248 := nat.Create(l)
	f.sqrNMul(r248, r240, 8, r8)
	r252 := nat.Create(l)
	f.sqrNMul(r252, r248, 4, r4)
	r254 := nat.Create(l)
	f.sqrNMul(r254, r252, 2, r2)
	r255 := nat.Create(l)
	f.sqrNMul(r255, r254, 1, x)

	f.sqrN(z, r255, 1)
	f.sqrNMul(z, z, 32, r32)
	f.sqrNMul(z, z, 64, x)
	f.sqrN(z, z, 30)
}
