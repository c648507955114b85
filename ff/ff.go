// Package ff implements prime-field arithmetic for the supported curves.
//
// A single Element type serves every field; the per-prime specifics
// (specialized reduction of double-width products, square-root addition
// chain) are carried by the Field descriptor. Elements are value-like:
// every operation returns a new Element, and the limbs of a returned
// element are always in canonical [0, p) form.
package ff

import (
	"errors"
	"io"
	"math/big"

	"github.com/cypherix/ecmath/debug"
	"github.com/cypherix/ecmath/internal/mod"
	"github.com/cypherix/ecmath/internal/nat"
)

var (
	// ErrInvalidValue is returned when constructing an element from an
	// integer outside [0, p).
	ErrInvalidValue = errors.New("ff: value out of range")

	// ErrNotInvertible is returned when inverting or dividing by zero.
	ErrNotInvertible = mod.ErrNotInvertible

	// ErrNoSquareRoot is returned by Sqrt for quadratic non-residues.
	ErrNoSquareRoot = errors.New("ff: no square root")
)

// Field describes one prime field. The exported descriptors (P192, P256,
// K256, P384) are the only instances; they are immutable after package
// initialization.
type Field struct {
	Name string // SEC 2 curve name the field belongs to
	Bits int    // bit length of the prime

	limbs int
	p     []uint32
	pBig  *big.Int

	// reduce sets z = w mod p where w is a double-width product of two
	// reduced operands.
	reduce func(f *Field, z, w []uint32)

	// sqrtChain writes x^((p+1)/4) into z. The candidate is verified by
	// Element.Sqrt; the chain itself carries no residue check.
	sqrtChain func(f *Field, z, x []uint32)
}

// Modulus returns the field prime as a fresh big integer.
func (f *Field) Modulus() *big.Int {
	return new(big.Int).Set(f.pBig)
}

// NbLimbs returns the number of 32-bit limbs of one element.
func (f *Field) NbLimbs() int {
	return f.limbs
}

// Element is one value of a prime field, always reduced to [0, p).
// The zero value of the type is not usable; elements are created through a
// Field descriptor.
type Element struct {
	f *Field
	v []uint32
}

// Zero returns the additive identity.
func (f *Field) Zero() Element {
	return Element{f, nat.Create(f.limbs)}
}

// One returns the multiplicative identity.
func (f *Field) One() Element {
	v := nat.Create(f.limbs)
	v[0] = 1
	return Element{f, v}
}

// FromBig constructs an element from an integer in [0, p).
func (f *Field) FromBig(x *big.Int) (Element, error) {
	v, ok := nat.FromBig(f.limbs, x)
	if !ok || nat.Gte(v, f.p) {
		return Element{}, ErrInvalidValue
	}
	return Element{f, v}, nil
}

// FromUint64 constructs an element from a small integer. The value must be
// below the prime, which holds for every caller in this module.
func (f *Field) FromUint64(x uint64) Element {
	v := nat.Create(f.limbs)
	v[0] = uint32(x)
	v[1] = uint32(x >> 32)
	return Element{f, v}
}

// MustFromHex constructs an element from a big-endian hex string, panicking
// on malformed or out-of-range input. It is meant for compile-time curve
// constants.
func (f *Field) MustFromHex(s string) Element {
	x, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("ff: invalid hex constant " + s)
	}
	e, err := f.FromBig(x)
	if err != nil {
		panic("ff: constant out of range " + s)
	}
	return e
}

// Random returns a uniformly distributed element, rejection-sampling draws
// from r.
func (f *Field) Random(r io.Reader) (Element, error) {
	v, err := mod.Random(r, f.p)
	if err != nil {
		return Element{}, err
	}
	return Element{f, v}, nil
}

// Field returns the descriptor the element belongs to.
func (x Element) Field() *Field {
	return x.f
}

func (x Element) checkCompat(y Element) {
	debug.Assert(x.f == y.f, "ff: mixing elements of %s and %s", x.f.Name, y.f.Name)
}

// IsZero reports whether x is the additive identity.
func (x Element) IsZero() bool {
	return nat.IsZero(x.v)
}

// IsOne reports whether x is the multiplicative identity.
func (x Element) IsOne() bool {
	return nat.IsOne(x.v)
}

// Bit0 returns the low bit of the canonical representation, the parity used
// by point compression.
func (x Element) Bit0() uint32 {
	return x.v[0] & 1
}

// Equal reports whether x and y are the same field element.
func (x Element) Equal(y Element) bool {
	x.checkCompat(y)
	return nat.Cmp(x.v, y.v) == 0
}

// Add returns x + y.
func (x Element) Add(y Element) Element {
	x.checkCompat(y)
	z := nat.Create(x.f.limbs)
	mod.Add(z, x.v, y.v, x.f.p)
	return Element{x.f, z}
}

// Sub returns x - y.
func (x Element) Sub(y Element) Element {
	x.checkCompat(y)
	z := nat.Create(x.f.limbs)
	mod.Sub(z, x.v, y.v, x.f.p)
	return Element{x.f, z}
}

// Neg returns -x.
func (x Element) Neg() Element {
	z := nat.Create(x.f.limbs)
	if !nat.IsZero(x.v) {
		nat.Sub(z, x.f.p, x.v)
	}
	return Element{x.f, z}
}

// Double returns 2x.
func (x Element) Double() Element {
	return x.Add(x)
}

// Mul returns x * y.
func (x Element) Mul(y Element) Element {
	x.checkCompat(y)
	z := nat.Create(x.f.limbs)
	x.f.mul(z, x.v, y.v)
	return Element{x.f, z}
}

// Square returns x².
func (x Element) Square() Element {
	z := nat.Create(x.f.limbs)
	x.f.sqr(z, x.v)
	return Element{x.f, z}
}

// Invert returns x⁻¹, or ErrNotInvertible for the zero element.
func (x Element) Invert() (Element, error) {
	v, err := mod.Invert(x.f.p, x.v)
	if err != nil {
		return Element{}, err
	}
	return Element{x.f, v}, nil
}

// Div returns x / y, failing under the same condition as Invert.
func (x Element) Div(y Element) (Element, error) {
	x.checkCompat(y)
	yInv, err := y.Invert()
	if err != nil {
		return Element{}, err
	}
	return x.Mul(yInv), nil
}

// Sqrt returns an element whose square is x, or ErrNoSquareRoot if none
// exists. The candidate root produced by the per-prime addition chain is
// verified by squaring before it is returned, so a non-residue can never
// yield a wrong value.
func (x Element) Sqrt() (Element, error) {
	f := x.f
	z := nat.Create(f.limbs)
	f.sqrtChain(f, z, x.v)

	chk := nat.Create(f.limbs)
	f.sqr(chk, z)
	if nat.Cmp(chk, x.v) != 0 {
		return Element{}, ErrNoSquareRoot
	}
	return Element{f, z}, nil
}

// BigInt returns the canonical integer value of x.
func (x Element) BigInt() *big.Int {
	return nat.ToBig(x.v)
}

// Bytes returns the fixed-width big-endian encoding of x.
func (x Element) Bytes() []byte {
	return nat.Bytes(x.v)
}

// String returns the decimal representation of x.
func (x Element) String() string {
	return x.BigInt().String()
}

// mul sets z = x*y mod p. z must not alias the double-width scratch, but may
// alias x or y.
func (f *Field) mul(z, x, y []uint32) {
	w := nat.Create(2 * f.limbs)
	nat.Mul(w, x, y)
	f.reduce(f, z, w)
}

// sqr sets z = x² mod p.
func (f *Field) sqr(z, x []uint32) {
	w := nat.Create(2 * f.limbs)
	nat.Sqr(w, x)
	f.reduce(f, z, w)
}

// sqrN sets z = x^(2^n), squaring in place. z may alias x.
func (f *Field) sqrN(z, x []uint32, n int) {
	nat.Set(z, x)
	for i := 0; i < n; i++ {
		f.sqr(z, z)
	}
}
