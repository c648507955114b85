// Package nat implements arithmetic on fixed-width natural numbers stored as
// little-endian slices of 32-bit limbs.
//
// All operations work on caller-supplied buffers and never allocate in the
// hot path. Lengths are fixed by the caller: binary operations require equal
// lengths, products require a double-length output buffer. Carries and
// borrows are returned as values for the caller to propagate or assert
// against.
package nat

import "math/big"

const (
	// BitsPerLimb is the width of one limb.
	BitsPerLimb = 32

	limbMask = 0xFFFFFFFF
)

// Create returns a zeroed limb slice of length n.
func Create(n int) []uint32 {
	return make([]uint32, n)
}

// Copy returns a fresh copy of x.
func Copy(x []uint32) []uint32 {
	z := make([]uint32, len(x))
	copy(z, x)
	return z
}

// Set copies x into z.
func Set(z, x []uint32) {
	copy(z, x)
}

// Add sets z = x + y and returns the carry limb (0 or 1).
func Add(z, x, y []uint32) uint32 {
	var c uint64
	for i := range x {
		c += uint64(x[i]) + uint64(y[i])
		z[i] = uint32(c)
		c >>= 32
	}
	return uint32(c)
}

// AddTo sets z += x and returns the carry limb (0 or 1).
func AddTo(z, x []uint32) uint32 {
	var c uint64
	for i := range x {
		c += uint64(z[i]) + uint64(x[i])
		z[i] = uint32(c)
		c >>= 32
	}
	return uint32(c)
}

// AddWordTo sets z += x and returns the carry limb (0 or 1).
func AddWordTo(z []uint32, x uint32) uint32 {
	c := uint64(x)
	for i := range z {
		if c == 0 {
			return 0
		}
		c += uint64(z[i])
		z[i] = uint32(c)
		c >>= 32
	}
	return uint32(c)
}

// Sub sets z = x - y and returns the borrow limb (0 or 1).
func Sub(z, x, y []uint32) uint32 {
	var b int64
	for i := range x {
		b += int64(x[i]) - int64(y[i])
		z[i] = uint32(b)
		b >>= 32
	}
	return uint32(-b)
}

// SubFrom sets z -= x and returns the borrow limb (0 or 1).
func SubFrom(z, x []uint32) uint32 {
	var b int64
	for i := range x {
		b += int64(z[i]) - int64(x[i])
		z[i] = uint32(b)
		b >>= 32
	}
	return uint32(-b)
}

// Mul sets zz = x * y. zz must have length len(x)+len(y) and is overwritten.
func Mul(zz, x, y []uint32) {
	for i := range zz {
		zz[i] = 0
	}
	for i := range x {
		var c uint64
		xi := uint64(x[i])
		for j := range y {
			t := uint64(zz[i+j]) + xi*uint64(y[j]) + c
			zz[i+j] = uint32(t)
			c = t >> 32
		}
		zz[i+len(y)] = uint32(c)
	}
}

// Sqr sets zz = x * x, exploiting the symmetry of the cross products.
// zz must have length 2*len(x) and is overwritten.
func Sqr(zz, x []uint32) {
	n := len(x)
	for i := range zz {
		zz[i] = 0
	}

	// off-diagonal products, each counted once
	for i := 0; i < n; i++ {
		var c uint64
		xi := uint64(x[i])
		for j := i + 1; j < n; j++ {
			t := uint64(zz[i+j]) + xi*uint64(x[j]) + c
			zz[i+j] = uint32(t)
			c = t >> 32
		}
		zz[i+n] = uint32(c)
	}

	// double them; the total fits in 2n limbs so the final carry is zero
	ShiftUpBit(zz, zz, 0)

	// diagonal terms
	var c uint64
	for i := 0; i < n; i++ {
		t := uint64(x[i]) * uint64(x[i])
		s0 := uint64(zz[2*i]) + (t & limbMask) + c
		zz[2*i] = uint32(s0)
		s1 := uint64(zz[2*i+1]) + (t >> 32) + (s0 >> 32)
		zz[2*i+1] = uint32(s1)
		c = s1 >> 32
	}
}

// ShiftUpBit sets z = x << 1 | cIn and returns the bit shifted out.
// cIn must be 0 or 1. z may alias x.
func ShiftUpBit(z, x []uint32, cIn uint32) uint32 {
	c := cIn & 1
	for i := range x {
		w := x[i]
		z[i] = w<<1 | c
		c = w >> 31
	}
	return c
}

// ShiftUpBits sets z = x << bits, filling the vacated low bits with the low
// bits of cIn. bits must be in [0, 31]; 0 is a plain copy. The bits shifted
// out of the top are returned in the low bits of the result. z may alias x.
func ShiftUpBits(z, x []uint32, bits uint, cIn uint32) uint32 {
	if bits == 0 {
		copy(z, x)
		return 0
	}
	c := cIn & (1<<bits - 1)
	for i := range x {
		w := x[i]
		z[i] = w<<bits | c
		c = w >> (32 - bits)
	}
	return c
}

// ShiftDownBit sets z = x >> 1 with cIn (0 or 1) entering at the top, and
// returns the bit shifted out. z may alias x.
func ShiftDownBit(z, x []uint32, cIn uint32) uint32 {
	c := cIn & 1
	for i := len(x) - 1; i >= 0; i-- {
		w := x[i]
		z[i] = w>>1 | c<<31
		c = w & 1
	}
	return c
}

// ShiftDownBits sets z = x >> bits with the low bits of cIn entering at the
// top. bits must be in [0, 31]; 0 is a plain copy. The bits shifted out of
// the bottom are returned in the low bits of the result. z may alias x.
func ShiftDownBits(z, x []uint32, bits uint, cIn uint32) uint32 {
	if bits == 0 {
		copy(z, x)
		return 0
	}
	mask := uint32(1)<<bits - 1
	c := cIn & mask
	for i := len(x) - 1; i >= 0; i-- {
		w := x[i]
		z[i] = w>>bits | c<<(32-bits)
		c = w & mask
	}
	return c
}

// ShiftDownWord sets z = x >> 32 with cIn entering as the new top limb, and
// returns the limb shifted out. z may alias x.
func ShiftDownWord(z, x []uint32, cIn uint32) uint32 {
	out := x[0]
	copy(z, x[1:])
	z[len(x)-1] = cIn
	return out
}

// Cmp compares x and y as integers, returning -1, 0 or +1.
func Cmp(x, y []uint32) int {
	for i := len(x) - 1; i >= 0; i-- {
		if x[i] < y[i] {
			return -1
		}
		if x[i] > y[i] {
			return 1
		}
	}
	return 0
}

// Gte reports whether x >= y.
func Gte(x, y []uint32) bool {
	return Cmp(x, y) >= 0
}

// IsZero reports whether x == 0.
func IsZero(x []uint32) bool {
	for _, w := range x {
		if w != 0 {
			return false
		}
	}
	return true
}

// IsOne reports whether x == 1.
func IsOne(x []uint32) bool {
	if x[0] != 1 {
		return false
	}
	for _, w := range x[1:] {
		if w != 0 {
			return false
		}
	}
	return true
}

// IsEven reports whether the low bit of x is clear.
func IsEven(x []uint32) bool {
	return x[0]&1 == 0
}

// GetBit returns bit i of x (0 or 1). Out-of-range bits are 0.
func GetBit(x []uint32, i int) uint32 {
	if i < 0 || i>>5 >= len(x) {
		return 0
	}
	return x[i>>5] >> (uint(i) & 31) & 1
}

// BitLen returns the minimal number of bits needed to represent x.
func BitLen(x []uint32) int {
	for i := len(x) - 1; i >= 0; i-- {
		if x[i] != 0 {
			w := x[i]
			n := 0
			for w != 0 {
				w >>= 1
				n++
			}
			return i*32 + n
		}
	}
	return 0
}

// TrailingZeroBits returns the number of trailing zero bits of x.
// It returns 32*len(x) for x == 0.
func TrailingZeroBits(x []uint32) int {
	for i := range x {
		if x[i] != 0 {
			w := x[i]
			n := 0
			for w&1 == 0 {
				w >>= 1
				n++
			}
			return i*32 + n
		}
	}
	return len(x) * 32
}

// FromBig converts a non-negative big integer into an n-limb slice.
// It reports false if v is negative or does not fit in n limbs.
func FromBig(n int, v *big.Int) ([]uint32, bool) {
	if v.Sign() < 0 || v.BitLen() > n*32 {
		return nil, false
	}
	z, _ := FromBytes(n, v.Bytes())
	return z, true
}

// ToBig converts x into a big integer.
func ToBig(x []uint32) *big.Int {
	return new(big.Int).SetBytes(Bytes(x))
}

// Bytes returns the big-endian byte encoding of x, 4*len(x) bytes long.
func Bytes(x []uint32) []byte {
	out := make([]byte, 4*len(x))
	for i, w := range x {
		off := len(out) - 4*(i+1)
		out[off] = byte(w >> 24)
		out[off+1] = byte(w >> 16)
		out[off+2] = byte(w >> 8)
		out[off+3] = byte(w)
	}
	return out
}

// FromBytes parses a big-endian byte string into an n-limb slice.
// It reports false if the value does not fit in n limbs.
func FromBytes(n int, b []byte) ([]uint32, bool) {
	z := make([]uint32, n)
	for i := 0; i < len(b); i++ {
		bit := (len(b) - 1 - i) * 8
		if bit >= n*32 {
			if b[i] != 0 {
				return nil, false
			}
			continue
		}
		z[bit>>5] |= uint32(b[i]) << (uint(bit) & 31)
	}
	return z, true
}
