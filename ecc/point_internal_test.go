package ecc

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cypherix/ecmath/ff"
)

// scaleZ rebuilds p with the Jacobian representation (λ²x, λ³y, λ).
func scaleZ(t *testing.T, p *Point, lambda ff.Element) *Point {
	t.Helper()
	require.False(t, p.inf)
	n := p.Normalize()
	l2 := lambda.Square()
	return &Point{
		curve: p.curve,
		x:     n.x.Mul(l2),
		y:     n.y.Mul(l2.Mul(lambda)),
		z:     lambda,
	}
}

func mulRef(t *testing.T, p *Point, k int64) *Point {
	t.Helper()
	r, err := ReferenceMultiplier{}.Multiply(p, big.NewInt(k))
	require.NoError(t, err)
	return r
}

func TestAddSharedZBranch(t *testing.T) {
	for _, id := range Implemented() {
		c := GetCurve(id)
		g := c.Generator()
		p := mulRef(t, g, 5)
		q := mulRef(t, g, 9)

		lambda := c.field.FromUint64(0xDEADBEEF)
		ps := scaleZ(t, p, lambda)
		qs := scaleZ(t, q, lambda)
		require.True(t, ps.z.Equal(qs.z))
		require.False(t, ps.z.IsOne())

		require.True(t, ps.Add(qs).Equal(mulRef(t, g, 14)), id.String())

		// same affine point under a shared Z falls through to doubling
		require.True(t, ps.Add(scaleZ(t, p, lambda)).Equal(p.Twice()))

		// mutual negatives under a shared Z give infinity
		require.True(t, ps.Add(scaleZ(t, p.Neg(), lambda)).IsInfinity())
	}
}

func TestAddMixedRepresentations(t *testing.T) {
	for _, id := range Implemented() {
		c := GetCurve(id)
		g := c.Generator()
		p := mulRef(t, g, 11)
		q := mulRef(t, g, 31)
		want := mulRef(t, g, 42)

		lp := c.field.FromUint64(3)
		lq := c.field.FromUint64(7)
		reprsP := []*Point{p, p.Normalize(), scaleZ(t, p, lp)}
		reprsQ := []*Point{q, q.Normalize(), scaleZ(t, q, lq)}
		for _, pp := range reprsP {
			for _, qq := range reprsQ {
				require.True(t, pp.Add(qq).Equal(want))
				require.True(t, qq.Add(pp).Equal(want))
			}
		}
	}
}

func TestTimesPow2MatchesRepeatedTwice(t *testing.T) {
	for _, id := range Implemented() {
		c := GetCurve(id)
		p := mulRef(t, c.Generator(), 7)
		ps := scaleZ(t, p, c.field.FromUint64(12345))

		for _, e := range []int{0, 1, 2, 5, 8} {
			want := ps
			for i := 0; i < e; i++ {
				want = want.Twice()
			}
			require.True(t, ps.TimesPow2(e).Equal(want))
		}
		require.True(t, c.infinity.TimesPow2(10).IsInfinity())
	}
}

func TestTwiceFastPaths(t *testing.T) {
	// the curve set covers the a = -3 and a = 0 doubling branches
	for _, id := range Implemented() {
		c := GetCurve(id)
		g := c.Generator()

		// affine and projective inputs double to the same point
		p := mulRef(t, g, 13)
		require.True(t, p.Twice().Equal(p.Normalize().Twice()))
		require.True(t, p.Twice().Equal(mulRef(t, g, 26)))

		require.True(t, c.infinity.Twice().IsInfinity())
		require.True(t, g.ThreeTimes().Equal(mulRef(t, g, 3)))
		require.True(t, g.TwicePlus(p).Equal(mulRef(t, g, 15)))
		require.True(t, g.TwicePlus(g).Equal(mulRef(t, g, 3)))
	}
}
