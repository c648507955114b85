package ecc

import (
	"errors"
	"fmt"
	"io"
	"math/big"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/cypherix/ecmath/ff"
	"github.com/cypherix/ecmath/internal/mod"
	"github.com/cypherix/ecmath/internal/nat"
	"github.com/cypherix/ecmath/logger"
)

var (
	// ErrInvalidCompression is returned when decompressing an x coordinate
	// that is not on the curve, or whose root parity cannot match the
	// requested sign bit.
	ErrInvalidCompression = errors.New("ecc: invalid point compression")

	// ErrScalarTooLarge is returned when a scalar exceeds the bit length the
	// recoding or comb engine supports.
	ErrScalarTooLarge = errors.New("ecc: scalar exceeds supported bit length")
)

// Curve describes one supported curve y² = x³ + ax + b over a prime field.
// Descriptors are read-only after construction except for the precomputation
// cache, which is guarded separately.
type Curve struct {
	id   ID
	name string

	field *ff.Field
	a, b  ff.Element
	n     *big.Int
	h     *big.Int

	// doubling fast paths
	aIsZero   bool
	aIsMinus3 bool

	g        *Point
	infinity *Point

	nLimbs []uint32

	precompMu sync.RWMutex
	precomp   map[precompKey]any
	precompSF singleflight.Group
}

func newCurve(id ID, field *ff.Field, aHex, bHex, gxHex, gyHex, nHex string) *Curve {
	n, ok := new(big.Int).SetString(nHex, 16)
	if !ok {
		panic("ecc: invalid order " + nHex)
	}
	nLimbs, ok := nat.FromBig(field.NbLimbs(), n)
	if !ok {
		panic("ecc: order does not fit field limbs")
	}

	c := &Curve{
		id:      id,
		name:    id.String(),
		field:   field,
		a:       field.MustFromHex(aHex),
		b:       field.MustFromHex(bHex),
		n:       n,
		h:       big.NewInt(1),
		nLimbs:  nLimbs,
		precomp: make(map[precompKey]any),
	}
	c.aIsZero = c.a.IsZero()
	c.aIsMinus3 = c.a.Equal(c.field.FromUint64(3).Neg())
	c.infinity = &Point{curve: c, x: field.Zero(), y: field.Zero(), z: field.Zero(), inf: true}
	c.g = &Point{curve: c, x: field.MustFromHex(gxHex), y: field.MustFromHex(gyHex), z: field.One()}

	log := logger.Logger()
	log.Debug().Str("curve", c.name).Msg("curve initialized")
	return c
}

func newSecp192r1() *Curve {
	return newCurve(SECP192R1, ff.P192,
		"fffffffffffffffffffffffffffffffefffffffffffffffc",
		"64210519e59c80e70fa7e9ab72243049feb8deecc146b9b1",
		"188da80eb03090f67cbf20eb43a18800f4ff0afd82ff1012",
		"07192b95ffc8da78631011ed6b24cdd573f977a11e794811",
		"ffffffffffffffffffffffff99def836146bc9b1b4d22831",
	)
}

func newSecp256r1() *Curve {
	return newCurve(SECP256R1, ff.P256,
		"ffffffff00000001000000000000000000000000fffffffffffffffffffffffc",
		"5ac635d8aa3a93e7b3ebbd55769886bc651d06b0cc53b0f63bce3c3e27d2604b",
		"6b17d1f2e12c4247f8bce6e563a440f277037d812deb33a0f4a13945d898c296",
		"4fe342e2fe1a7f9b8ee7eb4a7c0f9e162bce33576b315ececbb6406837bf51f5",
		"ffffffff00000000ffffffffffffffffbce6faada7179e84f3b9cac2fc632551",
	)
}

func newSecp256k1() *Curve {
	return newCurve(SECP256K1, ff.K256,
		"0",
		"7",
		"79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798",
		"483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8",
		"fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141",
	)
}

func newSecp384r1() *Curve {
	return newCurve(SECP384R1, ff.P384,
		"fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffeffffffff0000000000000000fffffffc",
		"b3312fa7e23ee7e4988e056be3f82d19181d9c6efe8141120314088f5013875ac656398d8a2ed19d2a85c8edd3ec2aef",
		"aa87ca22be8b05378eb1c71ef320ad746e1d3b628ba79b9859f741e082542a385502f25dbf55296c3a545e3872760ab7",
		"3617de4a96262c6f5d9e98bf9292dc29f8f41dbd289a147ce9da3113b5f0b8c00a60b1ce1d7e819d7a431d7c90ea0e5f",
		"ffffffffffffffffffffffffffffffffffffffffffffffffc7634d81f4372ddf581a0db248b0a77aecec196accc52973",
	)
}

// ID returns the curve identifier.
func (c *Curve) ID() ID { return c.id }

// Name returns the SEC 2 curve name.
func (c *Curve) Name() string { return c.name }

// Field returns the descriptor of the base field.
func (c *Curve) Field() *ff.Field { return c.field }

// A returns the curve coefficient a.
func (c *Curve) A() ff.Element { return c.a }

// B returns the curve coefficient b.
func (c *Curve) B() ff.Element { return c.b }

// Order returns the order of the group generated by the base point.
func (c *Curve) Order() *big.Int { return new(big.Int).Set(c.n) }

// Cofactor returns the curve cofactor, 1 for every supported curve.
func (c *Curve) Cofactor() *big.Int { return new(big.Int).Set(c.h) }

// Generator returns the base point.
func (c *Curve) Generator() *Point { return c.g }

// Infinity returns the point at infinity.
func (c *Curve) Infinity() *Point { return c.infinity }

// FieldElement constructs a base-field element from an integer in [0, p).
func (c *Curve) FieldElement(x *big.Int) (ff.Element, error) {
	return c.field.FromBig(x)
}

// NewPoint constructs the affine point (x, y). Coordinates are range-checked
// against the field; the point is not checked against the curve equation,
// use IsOnCurve or DecompressPoint for untrusted input.
func (c *Curve) NewPoint(x, y *big.Int) (*Point, error) {
	xe, err := c.field.FromBig(x)
	if err != nil {
		return nil, err
	}
	ye, err := c.field.FromBig(y)
	if err != nil {
		return nil, err
	}
	return &Point{curve: c, x: xe, y: ye, z: c.field.One()}, nil
}

// DecompressPoint recovers the point with the given x coordinate whose y
// parity matches the low bit of yBit. The candidate y² = x³ + ax + b must
// have a square root or ErrInvalidCompression is returned; the same error
// covers the unresolvable case y = 0 with yBit = 1.
func (c *Curve) DecompressPoint(yBit uint, x *big.Int) (*Point, error) {
	xe, err := c.field.FromBig(x)
	if err != nil {
		return nil, err
	}

	alpha := xe.Square().Add(c.a).Mul(xe).Add(c.b)
	beta, err := alpha.Sqrt()
	if err != nil {
		return nil, fmt.Errorf("%w: x is not on %s", ErrInvalidCompression, c.name)
	}
	if beta.IsZero() {
		if yBit&1 == 1 {
			return nil, fmt.Errorf("%w: no odd root of zero", ErrInvalidCompression)
		}
	} else if beta.Bit0() != uint32(yBit&1) {
		beta = beta.Neg()
	}
	return &Point{curve: c, x: xe, y: beta, z: c.field.One()}, nil
}

// RandomScalar returns a uniformly distributed scalar in [0, n).
func (c *Curve) RandomScalar(r io.Reader) (*big.Int, error) {
	v, err := mod.Random(r, c.nLimbs)
	if err != nil {
		return nil, err
	}
	return nat.ToBig(v), nil
}

// ScalarBaseMult returns k·G for the curve generator, reducing k modulo the
// group order and using the fixed-point comb.
func (c *Curve) ScalarBaseMult(k *big.Int) (*Point, error) {
	return FixedPointCombMultiplier{}.Multiply(c.g, new(big.Int).Mod(k, c.n))
}
