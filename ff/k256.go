package ff

import "github.com/cypherix/ecmath/internal/nat"

// K256 is the base field of secp256k1, p = 2^256 - 2^32 - 977.
var K256 = newField(
	"secp256k1", 8,
	"fffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f",
	reduceK256, sqrtK256,
)

// reduceK256 folds the 16-word product w into z using
// 2^256 ≡ 2^32 + 977 (mod p): the high half is multiplied by the small
// constant and shifted by one word, then the overflow is folded the same way
// until it vanishes.
func reduceK256(f *Field, z, w []uint32) {
	var s [8]uint64
	for i := 0; i < 8; i++ {
		s[i] = uint64(w[i]) + 977*uint64(w[8+i])
	}
	for i := 0; i < 7; i++ {
		s[i+1] += uint64(w[8+i])
	}

	var c uint64
	for i := 0; i < 8; i++ {
		t := s[i] + c
		z[i] = uint32(t)
		c = t >> 32
	}
	c += uint64(w[15])
	for c != 0 {
		c = addU64At(z, 977*c, 0) + addU64At(z, c, 1)
	}
	finishReduce(z, f.p)
}

// sqrtK256 computes x^((p+1)/4). Written MSB first the exponent is a run of
// 223 ones, a zero, a run of 22 ones, then 00001100; the chain builds the
// two long runs by doubling shorter ones.
func sqrtK256(f *Field, z, x []uint32) {
	l := f.limbs
	r2 := nat.Create(l)
	f.sqrNMul(r2, x, 1, x)
	r3 := nat.Create(l)
	f.sqrNMul(r3, r2, 1, x)
	r6 := nat.Create(l)
	f.sqrNMul(r6, r3, 3, r3)
	r9 := nat.Create(l)
	f.sqrNMul(r9, r6, 3, r3)
	r11 := nat.Create(l)
	f.sqrNMul(r11, r9, 2, r2)
	r22 := nat.Create(l)
	f.sqrNMul(r22, r11, 11, r11)
	r44 := nat.Create(l)
	f.sqrNMul(r44, r22, 22, r22)
	r88 := nat.Create(l)
	f.sqrNMul(r88, r44, 44, r44)
	r176 := nat.Create(l)
	f.sqrNMul(r176, r88, 88, r88)
	r220 := nat.Create(l)
	f.sqrNMul(r220, r176, 44, r44)
	r223 := nat.Create(l)
	f.sqrNMul(r223, r220, 3, r3)

	f.sqrNMul(z, r223, 23, r22)
	f.sqrNMul(z, z, 5, x)
	f.sqrNMul(z, z, 1, x)
	f.sqrN(z, z, 2)
}
