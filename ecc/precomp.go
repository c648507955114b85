package ecc

import (
	"fmt"

	"github.com/cypherix/ecmath/logger"
)

// The precomputation cache lives on the curve as a side map keyed by point
// identity and algorithm name, so unrelated points never collide and points
// stay immutable. Tables only ever grow; a reader holding a smaller stale
// table computes a correct, merely slower, result.

type precompKey struct {
	point *Point
	name  string
}

const (
	wnafPrecompName = "wnaf"
	combPrecompName = "fixed_point_comb"
)

func (c *Curve) lookupPrecomp(p *Point, name string) any {
	c.precompMu.RLock()
	defer c.precompMu.RUnlock()
	return c.precomp[precompKey{p, name}]
}

func (c *Curve) storePrecomp(p *Point, name string, v any) {
	c.precompMu.Lock()
	c.precomp[precompKey{p, name}] = v
	c.precompMu.Unlock()
}

// storeWNafTable publishes t unless a concurrent build already stored a
// wider table; tables grow, never shrink.
func (c *Curve) storeWNafTable(p *Point, t *WNafTable) *WNafTable {
	c.precompMu.Lock()
	defer c.precompMu.Unlock()
	k := precompKey{p, wnafPrecompName}
	if cur, _ := c.precomp[k].(*WNafTable); cur.covers(len(t.preComp), t.preCompNeg != nil) {
		return cur
	}
	c.precomp[k] = t
	return t
}

// WNafTable holds the shared precomputation for windowed-NAF multiplication
// of one point: the affine odd multiples P, 3P, 5P, ..., optionally their
// negations, and the cached 2P used to extend the table.
type WNafTable struct {
	width      int
	preComp    []*Point
	preCompNeg []*Point
	twiceP     *Point
}

// Width returns the window width the table was last requested for.
func (t *WNafTable) Width() int { return t.width }

// PreComp returns the odd multiples; entry i is (2i+1)·P.
func (t *WNafTable) PreComp() []*Point { return t.preComp }

// PreCompNeg returns the negated odd multiples, or nil if never requested.
func (t *WNafTable) PreCompNeg() []*Point { return t.preCompNeg }

func (t *WNafTable) covers(reqLen int, includeNegated bool) bool {
	return t != nil && len(t.preComp) >= reqLen &&
		(!includeNegated || len(t.preCompNeg) >= reqLen)
}

// WNafPrecompute returns the odd-multiple table of p for a width-window NAF
// multiplication, building or extending the cached table when it is not wide
// enough yet. Concurrent requests for the same point share one build.
func WNafPrecompute(p *Point, width int, includeNegated bool) (*WNafTable, error) {
	c := p.curve
	reqLen := 1
	if width > 2 {
		reqLen = 1 << uint(width-2)
	}

	if t, _ := c.lookupPrecomp(p, wnafPrecompName).(*WNafTable); t.covers(reqLen, includeNegated) {
		return t, nil
	}

	key := fmt.Sprintf("%s/%p/%d/%t", wnafPrecompName, p, reqLen, includeNegated)
	v, err, _ := c.precompSF.Do(key, func() (any, error) {
		old, _ := c.lookupPrecomp(p, wnafPrecompName).(*WNafTable)
		if old.covers(reqLen, includeNegated) {
			return old, nil
		}
		t := extendWNafTable(p, old, reqLen, includeNegated)
		t.width = width
		return c.storeWNafTable(p, t), nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*WNafTable), nil
}

// extendWNafTable builds a fresh table reusing every entry of old, so
// readers of old are never disturbed. Only the new tail is computed and
// batch-normalized.
func extendWNafTable(p *Point, old *WNafTable, reqLen int, includeNegated bool) *WNafTable {
	t := &WNafTable{}
	iniLen := 0
	if old != nil {
		iniLen = len(old.preComp)
		t.twiceP = old.twiceP
	}

	preComp := make([]*Point, reqLen)
	if old != nil {
		copy(preComp, old.preComp)
	}

	if iniLen < reqLen {
		if reqLen == 1 {
			preComp[0] = p.Normalize()
		} else {
			cur := iniLen
			if cur == 0 {
				preComp[0] = p
				cur = 1
			}
			if reqLen == 2 {
				preComp[1] = preComp[0].ThreeTimes()
			} else {
				if t.twiceP == nil {
					t.twiceP = preComp[0].Twice()
				}
				last := preComp[cur-1]
				for cur < reqLen {
					last = last.Add(t.twiceP)
					preComp[cur] = last
					cur++
				}
			}
			NormalizeAll(preComp[iniLen:])
		}
	}
	t.preComp = preComp

	if includeNegated {
		pos := 0
		neg := make([]*Point, reqLen)
		if old != nil {
			pos = copy(neg, old.preCompNeg)
		}
		for ; pos < reqLen; pos++ {
			neg[pos] = preComp[pos].Neg()
		}
		t.preCompNeg = neg
	}

	log := logger.Logger()
	log.Debug().
		Str("curve", p.curve.name).
		Int("from", iniLen).
		Int("to", reqLen).
		Msg("extended wnaf table")
	return t
}
