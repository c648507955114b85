package ecc_test

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/cypherix/ecmath/ecc"
)

// genScalar draws a uniform-ish scalar in [0, n).
func genScalar(c *ecc.Curve) gopter.Gen {
	limbs := c.Field().NbLimbs() + 1
	return gen.SliceOfN(limbs, gen.UInt32()).Map(func(ws []uint32) *big.Int {
		v := new(big.Int)
		for i := len(ws) - 1; i >= 0; i-- {
			v.Lsh(v, 32)
			v.Or(v, new(big.Int).SetUint64(uint64(ws[i])))
		}
		return v.Mod(v, c.Order())
	})
}

func TestGroupLaws(t *testing.T) {
	for _, id := range ecc.Implemented() {
		c := ecc.GetCurve(id)
		t.Run(c.Name(), func(t *testing.T) {
			parameters := gopter.DefaultTestParameters()
			parameters.MinSuccessfulTests = 10
			properties := gopter.NewProperties(parameters)

			genPoint := gen.Int64Range(1, 1<<62).Map(func(k int64) *ecc.Point {
				r, err := ecc.ReferenceMultiplier{}.Multiply(c.Generator(), big.NewInt(k))
				if err != nil {
					panic(err)
				}
				return r
			})

			properties.Property("group laws hold", prop.ForAll(
				func(p, q, r *ecc.Point) bool {
					if !p.Add(q).Equal(q.Add(p)) {
						return false
					}
					if !p.Add(q).Add(r).Equal(p.Add(q.Add(r))) {
						return false
					}
					if !p.Add(c.Infinity()).Equal(p) {
						return false
					}
					if !c.Infinity().Add(p).Equal(p) {
						return false
					}
					if !p.Add(p.Neg()).IsInfinity() {
						return false
					}
					if !p.Sub(q).Add(q).Equal(p) {
						return false
					}
					return p.Add(q).IsOnCurve()
				},
				genPoint, genPoint, genPoint,
			))

			properties.Property("composite operations agree with add", prop.ForAll(
				func(p, q *ecc.Point) bool {
					if !p.Twice().Equal(p.Add(p.Normalize())) {
						return false
					}
					if !p.TwicePlus(q).Equal(p.Twice().Add(q)) {
						return false
					}
					if !p.ThreeTimes().Equal(p.Twice().Add(p)) {
						return false
					}
					return p.TimesPow2(6).Equal(
						p.Twice().Twice().Twice().Twice().Twice().Twice())
				},
				genPoint, genPoint,
			))

			properties.TestingRun(t, gopter.ConsoleReporter(false))
		})
	}
}

func TestStrategyAgreement(t *testing.T) {
	for _, id := range ecc.Implemented() {
		c := ecc.GetCurve(id)
		t.Run(c.Name(), func(t *testing.T) {
			parameters := gopter.DefaultTestParameters()
			parameters.MinSuccessfulTests = 10
			properties := gopter.NewProperties(parameters)

			properties.Property("all strategies produce the same point", prop.ForAll(
				func(k, j *big.Int) bool {
					ref := ecc.ReferenceMultiplier{}
					p, err := ref.Multiply(c.Generator(), j)
					if err != nil {
						return false
					}
					want, err := ref.Multiply(p, k)
					if err != nil {
						return false
					}

					strategies := []ecc.Multiplier{
						ecc.NafMultiplier{},
						ecc.WNafMultiplier{},
						ecc.WNafMultiplier{Width: 2},
						ecc.WNafMultiplier{Width: 3},
						ecc.WNafMultiplier{Width: 5},
						ecc.WNafMultiplier{Width: 7},
					}
					for _, s := range strategies {
						got, err := s.Multiply(p, k)
						if err != nil || !got.Equal(want) {
							return false
						}
					}
					return true
				},
				genScalar(c), genScalar(c),
			))

			properties.TestingRun(t, gopter.ConsoleReporter(false))
		})
	}
}

func TestScalarBaseMult(t *testing.T) {
	for _, id := range ecc.Implemented() {
		c := ecc.GetCurve(id)
		t.Run(c.Name(), func(t *testing.T) {
			parameters := gopter.DefaultTestParameters()
			parameters.MinSuccessfulTests = 10
			properties := gopter.NewProperties(parameters)

			properties.Property("comb agrees with the reference ladder", prop.ForAll(
				func(k *big.Int) bool {
					want, err := ecc.ReferenceMultiplier{}.Multiply(c.Generator(), k)
					if err != nil {
						return false
					}
					got, err := c.ScalarBaseMult(k)
					if err != nil {
						return false
					}
					if !got.Equal(want) {
						return false
					}
					// the comb reduces modulo the order, so -k maps to n-k
					gotNeg, err := c.ScalarBaseMult(new(big.Int).Neg(k))
					return err == nil && gotNeg.Equal(want.Neg())
				},
				genScalar(c),
			))

			properties.TestingRun(t, gopter.ConsoleReporter(false))
		})
	}
}

func TestDistributivity(t *testing.T) {
	for _, id := range ecc.Implemented() {
		c := ecc.GetCurve(id)
		t.Run(c.Name(), func(t *testing.T) {
			parameters := gopter.DefaultTestParameters()
			parameters.MinSuccessfulTests = 10
			properties := gopter.NewProperties(parameters)

			properties.Property("(a+b)P == aP + bP", prop.ForAll(
				func(a, b *big.Int) bool {
					g := c.Generator()
					sum, err := g.Multiply(new(big.Int).Add(a, b))
					if err != nil {
						return false
					}
					aP, err := g.Multiply(a)
					if err != nil {
						return false
					}
					bP, err := g.Multiply(b)
					if err != nil {
						return false
					}
					return sum.Equal(aP.Add(bP))
				},
				genScalar(c), genScalar(c),
			))

			properties.TestingRun(t, gopter.ConsoleReporter(false))
		})
	}
}

func TestSumOfTwoMultiplies(t *testing.T) {
	for _, id := range ecc.Implemented() {
		c := ecc.GetCurve(id)
		t.Run(c.Name(), func(t *testing.T) {
			parameters := gopter.DefaultTestParameters()
			parameters.MinSuccessfulTests = 10
			properties := gopter.NewProperties(parameters)

			g := c.Generator()
			q := mustMulInt(t, g, 0x1F2F3F4F5F)

			// small pairs whose joint sparse form carries negative digits
			for _, tc := range [][2]int64{{3, 1}, {1, 3}, {7, 5}, {191, 223}} {
				want := mustMulInt(t, g, tc[0]).Add(mustMulInt(t, q, tc[1]))
				got, err := ecc.SumOfTwoMultiplies(g, big.NewInt(tc[0]), q, big.NewInt(tc[1]))
				require.NoError(t, err)
				require.True(t, got.Equal(want), "k=%d l=%d", tc[0], tc[1])
			}

			properties.Property("kP + lQ via Shamir's trick", prop.ForAll(
				func(k, l *big.Int) bool {
					want := mustMul(t, g, k).Add(mustMul(t, q, l))
					got, err := ecc.SumOfTwoMultiplies(g, k, q, l)
					if err != nil || !got.Equal(want) {
						return false
					}
					// negative scalars fold into negated points
					gotNeg, err := ecc.SumOfTwoMultiplies(g, new(big.Int).Neg(k), q, l)
					wantNeg := mustMul(t, g, k).Neg().Add(mustMul(t, q, l))
					return err == nil && gotNeg.Equal(wantNeg)
				},
				genScalar(c), genScalar(c),
			))

			properties.TestingRun(t, gopter.ConsoleReporter(false))
		})
	}
}

func TestMultiplyBoundaries(t *testing.T) {
	for _, id := range ecc.Implemented() {
		c := ecc.GetCurve(id)
		g := c.Generator()

		require.True(t, mustMulInt(t, g, 0).IsInfinity())
		require.True(t, mustMulInt(t, c.Infinity(), 12345).IsInfinity())
		require.True(t, mustMulInt(t, g, 1).Equal(g))
		require.True(t, mustMulInt(t, g, -5).Equal(mustMulInt(t, g, 5).Neg()))

		for _, m := range []ecc.Multiplier{
			ecc.ReferenceMultiplier{}, ecc.NafMultiplier{},
			ecc.WNafMultiplier{}, ecc.FixedPointCombMultiplier{},
		} {
			r, err := m.Multiply(g, big.NewInt(0))
			require.NoError(t, err)
			require.True(t, r.IsInfinity())
		}
	}
}

func TestScalarTooLarge(t *testing.T) {
	c := ecc.GetCurve(ecc.SECP256R1)
	g := c.Generator()

	huge := new(big.Int).Lsh(big.NewInt(1), 1<<16)
	_, err := ecc.NafMultiplier{}.Multiply(g, huge)
	require.ErrorIs(t, err, ecc.ErrScalarTooLarge)
	_, err = g.Multiply(huge)
	require.ErrorIs(t, err, ecc.ErrScalarTooLarge)

	overComb := new(big.Int).Lsh(big.NewInt(1), uint(c.Order().BitLen()))
	_, err = ecc.FixedPointCombMultiplier{}.Multiply(g, overComb)
	require.ErrorIs(t, err, ecc.ErrScalarTooLarge)

	// ScalarBaseMult reduces modulo the order first and must accept it
	r, err := c.ScalarBaseMult(overComb)
	require.NoError(t, err)
	want, err := ecc.ReferenceMultiplier{}.Multiply(g, new(big.Int).Mod(overComb, c.Order()))
	require.NoError(t, err)
	require.True(t, r.Equal(want))
}
