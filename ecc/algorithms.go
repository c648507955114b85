package ecc

import (
	"math/big"

	"github.com/cypherix/ecmath/debug"
	"github.com/cypherix/ecmath/ff"
)

// BatchInvert inverts every element of xs at the cost of a single field
// inversion and 3(n-1) multiplications (Montgomery's trick). It fails with
// ff.ErrNotInvertible if any element is zero.
func BatchInvert(xs []ff.Element) ([]ff.Element, error) {
	if len(xs) == 0 {
		return nil, nil
	}

	acc := make([]ff.Element, len(xs))
	acc[0] = xs[0]
	for i := 1; i < len(xs); i++ {
		acc[i] = acc[i-1].Mul(xs[i])
	}

	u, err := acc[len(xs)-1].Invert()
	if err != nil {
		return nil, err
	}

	inv := make([]ff.Element, len(xs))
	for i := len(xs) - 1; i > 0; i-- {
		inv[i] = u.Mul(acc[i-1])
		u = u.Mul(xs[i])
	}
	inv[0] = u
	return inv, nil
}

// NormalizeAll replaces every finite entry of points with its affine (Z = 1)
// equivalent, sharing one field inversion across the whole slice. The slice
// is mutated, the points themselves are not.
func NormalizeAll(points []*Point) {
	idx := make([]int, 0, len(points))
	zs := make([]ff.Element, 0, len(points))
	for i, p := range points {
		if p == nil || p.inf || p.z.IsOne() {
			continue
		}
		idx = append(idx, i)
		zs = append(zs, p.z)
	}
	if len(zs) == 0 {
		return
	}

	zInvs, err := BatchInvert(zs)
	debug.Assert(err == nil, "ecc: finite point with zero z")
	if err != nil {
		return
	}
	for j, i := range idx {
		points[i] = points[i].normalizeWithZInv(zInvs[j])
	}
}

// SumOfTwoMultiplies computes k·p + l·q in a single pass with Shamir's trick
// over the joint sparse form of the two scalars.
func SumOfTwoMultiplies(p *Point, k *big.Int, q *Point, l *big.Int) (*Point, error) {
	p.checkCurve(q)

	// fold signs into the points so the recoding sees non-negative scalars
	if k.Sign() < 0 {
		p, k = p.Neg(), new(big.Int).Neg(k)
	}
	if l.Sign() < 0 {
		q, l = q.Neg(), new(big.Int).Neg(l)
	}
	if p.inf || k.Sign() == 0 {
		return q.Multiply(l)
	}
	if q.inf || l.Sign() == 0 {
		return p.Multiply(k)
	}
	return shamirsTrickJSF(p, k, q, l), nil
}

// shamirsTrickJSF interleaves the two multiplications: per JSF position one
// combined double-and-add against a 3x3 table of ±{Q, P-Q, P, P+Q} and
// infinity.
func shamirsTrickJSF(p *Point, k *big.Int, q *Point, l *big.Int) *Point {
	inf := p.curve.infinity

	pts := []*Point{q, p.Sub(q), p, p.Add(q)}
	NormalizeAll(pts)
	table := []*Point{
		pts[3].Neg(), pts[2].Neg(), pts[1].Neg(),
		pts[0].Neg(), inf, pts[0],
		pts[1], pts[2], pts[3],
	}

	jsf := GenerateJSF(k, l)
	r := inf
	for i := len(jsf) - 1; i >= 0; i-- {
		// sign-extend the packed nibbles; the shifts must run at 32 bits
		ji := int32(jsf[i])
		kDigit := int((ji << 24) >> 28)
		lDigit := int((ji << 28) >> 28)
		r = r.TwicePlus(table[4+3*kDigit+lDigit])
	}
	return r
}
