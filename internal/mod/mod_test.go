package mod_test

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/cypherix/ecmath/internal/mod"
	"github.com/cypherix/ecmath/internal/nat"
)

// the secp256r1 prime, as a representative odd modulus
const modulusHex = "ffffffff00000001000000000000000000000000ffffffffffffffffffffffff"

func modulus(t *testing.T) ([]uint32, *big.Int) {
	m, ok := new(big.Int).SetString(modulusHex, 16)
	require.True(t, ok)
	ml, ok := nat.FromBig(8, m)
	require.True(t, ok)
	return ml, m
}

// genResidue draws a uniform-ish residue below m.
func genResidue(m *big.Int) gopter.Gen {
	return gen.SliceOfN(8, gen.UInt32()).Map(func(ws []uint32) *big.Int {
		return new(big.Int).Mod(nat.ToBig(ws), m)
	})
}

func TestModAddSub(t *testing.T) {
	ml, m := modulus(t)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("Add matches big.Int", prop.ForAll(
		func(xb, yb *big.Int) bool {
			x, _ := nat.FromBig(8, xb)
			y, _ := nat.FromBig(8, yb)
			z := nat.Create(8)
			mod.Add(z, x, y, ml)
			want := new(big.Int).Add(xb, yb)
			want.Mod(want, m)
			return nat.ToBig(z).Cmp(want) == 0
		},
		genResidue(m), genResidue(m),
	))

	properties.Property("Sub matches big.Int", prop.ForAll(
		func(xb, yb *big.Int) bool {
			x, _ := nat.FromBig(8, xb)
			y, _ := nat.FromBig(8, yb)
			z := nat.Create(8)
			mod.Sub(z, x, y, ml)
			want := new(big.Int).Sub(xb, yb)
			want.Mod(want, m)
			return nat.ToBig(z).Cmp(want) == 0
		},
		genResidue(m), genResidue(m),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestInvert(t *testing.T) {
	ml, m := modulus(t)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("x * invert(x) == 1 mod m", prop.ForAll(
		func(xb *big.Int) bool {
			if xb.Sign() == 0 {
				return true
			}
			x, _ := nat.FromBig(8, xb)
			a, err := mod.Invert(ml, x)
			if err != nil {
				return false
			}
			prod := new(big.Int).Mul(xb, nat.ToBig(a))
			prod.Mod(prod, m)
			return prod.Cmp(big.NewInt(1)) == 0
		},
		genResidue(m),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestInvertEdges(t *testing.T) {
	ml, _ := modulus(t)

	_, err := mod.Invert(ml, nat.Create(8))
	require.ErrorIs(t, err, mod.ErrNotInvertible)

	one := nat.Create(8)
	one[0] = 1
	a, err := mod.Invert(ml, one)
	require.NoError(t, err)
	require.True(t, nat.IsOne(a))

	// m - 1 is its own inverse
	mMinus1 := nat.Copy(ml)
	nat.SubFrom(mMinus1, one)
	a, err = mod.Invert(ml, mMinus1)
	require.NoError(t, err)
	require.Equal(t, 0, nat.Cmp(a, mMinus1))
}

func TestRandom(t *testing.T) {
	ml, m := modulus(t)
	for i := 0; i < 100; i++ {
		z, err := mod.Random(rand.Reader, ml)
		require.NoError(t, err)
		require.True(t, nat.ToBig(z).Cmp(m) < 0)
	}

	// a tiny modulus forces the masking and rejection paths
	small, ok := nat.FromBig(2, big.NewInt(5))
	require.True(t, ok)
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		z, err := mod.Random(rand.Reader, small)
		require.NoError(t, err)
		v := nat.ToBig(z)
		require.True(t, v.Cmp(big.NewInt(5)) < 0)
		seen[v.String()] = true
	}
	require.Len(t, seen, 5)
}
