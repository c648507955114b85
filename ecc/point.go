package ecc

import (
	"math/big"

	"github.com/cypherix/ecmath/debug"
	"github.com/cypherix/ecmath/ff"
)

// Point is a point on one of the supported curves in Jacobian projective
// coordinates: (X, Y, Z) with Z ≠ 0 corresponds to affine (X/Z², Y/Z³).
// Points are value-like, every operation returns a new point; the point at
// infinity is the per-curve singleton carrying the inf flag.
type Point struct {
	curve   *Curve
	x, y, z ff.Element
	inf     bool
}

// Curve returns the descriptor the point belongs to.
func (p *Point) Curve() *Curve { return p.curve }

// IsInfinity reports whether p is the point at infinity.
func (p *Point) IsInfinity() bool { return p.inf }

// Mixing points of different curves is a programming error, caught by a
// pointer identity check on the descriptor.
func (p *Point) checkCurve(q *Point) {
	if p.curve != q.curve {
		panic("ecc: mixing points of " + p.curve.name + " and " + q.curve.name)
	}
}

// Affine returns the affine coordinates of p, or (nil, nil) for infinity.
func (p *Point) Affine() (x, y *big.Int) {
	if p.inf {
		return nil, nil
	}
	n := p.Normalize()
	return n.x.BigInt(), n.y.BigInt()
}

// Normalize returns the point rescaled to Z = 1.
func (p *Point) Normalize() *Point {
	if p.inf || p.z.IsOne() {
		return p
	}
	zInv, err := p.z.Invert()
	debug.Assert(err == nil, "ecc: finite point with zero z on %s", p.curve.name)
	return p.normalizeWithZInv(zInv)
}

func (p *Point) normalizeWithZInv(zInv ff.Element) *Point {
	zInv2 := zInv.Square()
	return &Point{
		curve: p.curve,
		x:     p.x.Mul(zInv2),
		y:     p.y.Mul(zInv2.Mul(zInv)),
		z:     p.curve.field.One(),
	}
}

// Neg returns -p.
func (p *Point) Neg() *Point {
	if p.inf {
		return p
	}
	return &Point{curve: p.curve, x: p.x, y: p.y.Neg(), z: p.z}
}

// Sub returns p - q.
func (p *Point) Sub(q *Point) *Point {
	if q.inf {
		return p
	}
	return p.Add(q.Neg())
}

// small multiples of field elements, named as in the doubling formulas
func two(x ff.Element) ff.Element   { return x.Double() }
func three(x ff.Element) ff.Element { return x.Double().Add(x) }
func four(x ff.Element) ff.Element  { return x.Double().Double() }
func eight(x ff.Element) ff.Element { return four(x).Double() }

// Add returns p + q.
func (p *Point) Add(q *Point) *Point {
	if p.inf {
		return q
	}
	if q.inf {
		return p
	}
	if p == q {
		return p.Twice()
	}
	p.checkCurve(q)

	x1, y1, z1 := p.x, p.y, p.z
	x2, y2, z2 := q.x, q.y, q.z

	z1IsOne := z1.IsOne()
	z2IsOne := z2.IsOne()

	if !z1IsOne && !z2IsOne && z1.Equal(z2) {
		// shared Z coordinate; co-Z addition skips the U/S rescalings
		dx := x1.Sub(x2)
		dy := y1.Sub(y2)
		if dx.IsZero() {
			if dy.IsZero() {
				return p.Twice()
			}
			return p.curve.infinity
		}

		c := dx.Square()
		w1 := x1.Mul(c)
		w2 := x2.Mul(c)
		a1 := w1.Sub(w2).Mul(y1)

		x3 := dy.Square().Sub(w1).Sub(w2)
		y3 := w1.Sub(x3).Mul(dy).Sub(a1)
		z3 := dx.Mul(z1)
		return &Point{curve: p.curve, x: x3, y: y3, z: z3}
	}

	var u1, s1 ff.Element
	if z2IsOne {
		u1, s1 = x1, y1
	} else {
		z2Sq := z2.Square()
		u1 = x1.Mul(z2Sq)
		s1 = y1.Mul(z2Sq.Mul(z2))
	}
	var u2, s2 ff.Element
	if z1IsOne {
		u2, s2 = x2, y2
	} else {
		z1Sq := z1.Square()
		u2 = x2.Mul(z1Sq)
		s2 = y2.Mul(z1Sq.Mul(z1))
	}

	h := u1.Sub(u2)
	r := s1.Sub(s2)
	if h.IsZero() {
		if r.IsZero() {
			// same affine point
			return p.Twice()
		}
		// mutual negatives
		return p.curve.infinity
	}

	hSq := h.Square()
	g := hSq.Mul(h)
	v := hSq.Mul(u1)

	x3 := r.Square().Add(g).Sub(two(v))
	y3 := v.Sub(x3).Mul(r).Sub(s1.Mul(g))
	z3 := h
	if !z1IsOne {
		z3 = z3.Mul(z1)
	}
	if !z2IsOne {
		z3 = z3.Mul(z2)
	}
	return &Point{curve: p.curve, x: x3, y: y3, z: z3}
}

// Twice returns 2p.
func (p *Point) Twice() *Point {
	if p.inf {
		return p
	}
	if p.y.IsZero() {
		return p.curve.infinity
	}

	x1, y1, z1 := p.x, p.y, p.z
	z1IsOne := z1.IsOne()

	y1Sq := y1.Square()
	t := y1Sq.Square()

	var m, s ff.Element
	if p.curve.aIsMinus3 {
		z1Sq := z1
		if !z1IsOne {
			z1Sq = z1.Square()
		}
		m = three(x1.Add(z1Sq).Mul(x1.Sub(z1Sq)))
		s = four(y1Sq.Mul(x1))
	} else {
		m = three(x1.Square())
		if !p.curve.aIsZero {
			aZ4 := p.curve.a
			if !z1IsOne {
				aZ4 = aZ4.Mul(z1.Square().Square())
			}
			m = m.Add(aZ4)
		}
		s = four(x1.Mul(y1Sq))
	}

	x3 := m.Square().Sub(two(s))
	y3 := s.Sub(x3).Mul(m).Sub(eight(t))
	z3 := two(y1).Mul(z1)
	return &Point{curve: p.curve, x: x3, y: y3, z: z3}
}

// TwicePlus returns 2p + q.
func (p *Point) TwicePlus(q *Point) *Point {
	if p == q {
		return p.ThreeTimes()
	}
	if p.inf {
		return q
	}
	if q.inf {
		return p.Twice()
	}
	if p.y.IsZero() {
		return q
	}
	return p.Twice().Add(q)
}

// ThreeTimes returns 3p.
func (p *Point) ThreeTimes() *Point {
	if p.inf || p.y.IsZero() {
		return p
	}
	return p.Twice().Add(p)
}

// TimesPow2 returns 2^e · p, iterating the doubling formulas while tracking
// W = a·Z⁴ so each round costs no more than a plain doubling.
func (p *Point) TimesPow2(e int) *Point {
	if e < 0 {
		panic("ecc: negative doubling count")
	}
	if e == 0 || p.inf {
		return p
	}
	if e == 1 {
		return p.Twice()
	}

	x1, y1, z1 := p.x, p.y, p.z
	w1 := p.curve.a
	if !w1.IsZero() && !z1.IsOne() {
		w1 = w1.Mul(z1.Square().Square())
	}

	for i := 0; i < e; i++ {
		if y1.IsZero() {
			return p.curve.infinity
		}
		m := three(x1.Square())
		twoY1 := two(y1)
		twoY1Sq := twoY1.Mul(y1)
		s := two(x1.Mul(twoY1Sq))
		fourT := twoY1Sq.Square()
		eightT := two(fourT)
		if !w1.IsZero() {
			m = m.Add(w1)
			w1 = two(eightT.Mul(w1))
		}
		x1 = m.Square().Sub(two(s))
		y1 = m.Mul(s.Sub(x1)).Sub(eightT)
		z1 = z1.Mul(twoY1)
	}
	return &Point{curve: p.curve, x: x1, y: y1, z: z1}
}

// Equal reports whether p and q represent the same affine point, comparing
// cross-multiplied coordinates so no inversion is needed.
func (p *Point) Equal(q *Point) bool {
	if p == q {
		return true
	}
	if p.inf || q.inf {
		return p.inf && q.inf
	}
	p.checkCurve(q)

	z1Sq := p.z.Square()
	z2Sq := q.z.Square()
	if !p.x.Mul(z2Sq).Equal(q.x.Mul(z1Sq)) {
		return false
	}
	return p.y.Mul(z2Sq.Mul(q.z)).Equal(q.y.Mul(z1Sq.Mul(p.z)))
}

// IsOnCurve reports whether p satisfies the curve equation. Infinity is on
// every curve.
func (p *Point) IsOnCurve() bool {
	if p.inf {
		return true
	}
	n := p.Normalize()
	lhs := n.y.Square()
	rhs := n.x.Square().Add(p.curve.a).Mul(n.x).Add(p.curve.b)
	return lhs.Equal(rhs)
}

// Multiply returns k·p using the default windowed-NAF strategy. Negative
// scalars are accepted as k·p = -(|k|·p).
func (p *Point) Multiply(k *big.Int) (*Point, error) {
	return WNafMultiplier{}.Multiply(p, k)
}
