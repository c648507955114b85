// Package mod implements generic arithmetic modulo an odd modulus on top of
// the nat limb kernel: binary-GCD inversion, modular addition and
// subtraction, and uniform residue sampling.
//
// The modulus is supplied per call as a limb slice; all inputs must have the
// modulus' length and be fully reduced.
package mod

import (
	"errors"
	"io"

	"github.com/cypherix/ecmath/internal/nat"
)

// ErrNotInvertible is returned when inverting the zero element.
var ErrNotInvertible = errors.New("not invertible")

// Add sets z = x + y (mod m). z may alias x or y.
func Add(z, x, y, m []uint32) {
	c := nat.Add(z, x, y)
	if c != 0 || nat.Gte(z, m) {
		nat.SubFrom(z, m)
	}
}

// Sub sets z = x - y (mod m). z may alias x or y.
func Sub(z, x, y, m []uint32) {
	b := nat.Sub(z, x, y)
	if b != 0 {
		nat.AddTo(z, m)
	}
}

// Invert computes the inverse of x modulo the odd modulus m using the
// extended binary GCD, without any division. It maintains two
// remainder/coefficient pairs (u,a) and (v,b), strips trailing zero bits of
// the remainders (whole words first, then single bits) while halving the
// coefficient modulo m, and subtracts the smaller remainder from the larger,
// mirroring the subtraction onto the coefficients. The pair whose remainder
// reaches 1 holds the inverse.
//
// Inverting zero returns ErrNotInvertible.
func Invert(m, x []uint32) ([]uint32, error) {
	if nat.IsZero(x) {
		return nil, ErrNotInvertible
	}

	u := nat.Copy(x)
	v := nat.Copy(m)
	a := nat.Create(len(m))
	a[0] = 1
	b := nat.Create(len(m))

	for {
		divOutTrailingZeros(u, a, m)
		if nat.IsOne(u) {
			return a, nil
		}
		divOutTrailingZeros(v, b, m)
		if nat.IsOne(v) {
			return b, nil
		}

		if nat.Gte(u, v) {
			nat.SubFrom(u, v)
			Sub(a, a, b, m)
			if nat.IsZero(u) {
				// gcd(x, m) > 1; cannot happen for prime m and 0 < x < m
				return nil, ErrNotInvertible
			}
		} else {
			nat.SubFrom(v, u)
			Sub(b, b, a, m)
			if nat.IsZero(v) {
				return nil, ErrNotInvertible
			}
		}
	}
}

// divOutTrailingZeros removes the trailing zero bits of u and divides the
// coefficient a by the same power of two modulo m.
func divOutTrailingZeros(u, a, m []uint32) {
	tz := nat.TrailingZeroBits(u)
	if tz == 0 {
		return
	}
	for w := tz >> 5; w > 0; w-- {
		nat.ShiftDownWord(u, u, 0)
	}
	nat.ShiftDownBits(u, u, uint(tz&31), 0)
	for i := 0; i < tz; i++ {
		halve(a, m)
	}
}

// halve sets a = a/2 (mod m) for odd m, adding m first when a is odd.
func halve(a, m []uint32) {
	var c uint32
	if !nat.IsEven(a) {
		c = nat.AddTo(a, m)
	}
	nat.ShiftDownBit(a, a, c)
}

// Random returns a uniformly distributed residue in [0, m) by rejection
// sampling fixed-width draws from r, masking the draw to the bit length of m
// so the expected number of rounds stays below two.
func Random(r io.Reader, m []uint32) ([]uint32, error) {
	bits := nat.BitLen(m)
	buf := make([]byte, 4*len(m))
	topLimb := (bits - 1) >> 5
	topMask := uint32(1)<<(uint(bits-1)&31+1) - 1

	for {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		z, _ := nat.FromBytes(len(m), buf)
		for i := topLimb + 1; i < len(z); i++ {
			z[i] = 0
		}
		z[topLimb] &= topMask
		if nat.Cmp(z, m) < 0 {
			return z, nil
		}
	}
}
