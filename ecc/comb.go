package ecc

import (
	"fmt"
	"math/big"

	"github.com/bits-and-blooms/bitset"
	"github.com/cypherix/ecmath/logger"
)

// CombTable is the fixed-point comb precomputation of one base point. For
// comb width w and section length d, entry i of the lookup table is
// Σ_j bit_j(i)·2^(j·d)·P: one lookup resolves a whole column of the comb.
type CombTable struct {
	width  int
	d      int
	lookup []*Point
}

// Width returns the comb width of the table.
func (t *CombTable) Width() int { return t.width }

// combSize is the number of scalar bits the comb covers, the bit length of
// the group order.
func (c *Curve) combSize() int { return c.n.BitLen() }

// CombPrecompute builds, or returns the cached, comb lookup table of p.
func CombPrecompute(p *Point) (*CombTable, error) {
	c := p.curve
	bits := c.combSize()
	width := 5
	if bits > 250 {
		width = 6
	}

	if t, _ := c.lookupPrecomp(p, combPrecompName).(*CombTable); t != nil && t.width >= width {
		return t, nil
	}

	key := fmt.Sprintf("%s/%p", combPrecompName, p)
	v, err, _ := c.precompSF.Do(key, func() (any, error) {
		if t, _ := c.lookupPrecomp(p, combPrecompName).(*CombTable); t != nil && t.width >= width {
			return t, nil
		}
		t := buildCombTable(p, width, bits)
		c.storePrecomp(p, combPrecompName, t)
		return t, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*CombTable), nil
}

func buildCombTable(p *Point, width, bits int) *CombTable {
	d := (bits + width - 1) / width

	// the comb teeth 2^(j·d)·P
	pow2 := make([]*Point, width)
	pow2[0] = p
	for j := 1; j < width; j++ {
		pow2[j] = pow2[j-1].TimesPow2(d)
	}
	NormalizeAll(pow2)

	// all 2^width tooth combinations, built by doubling the filled prefix
	lookup := make([]*Point, 1<<uint(width))
	lookup[0] = p.curve.infinity
	for j := 0; j < width; j++ {
		step := 1 << uint(j)
		for i := 0; i < step; i++ {
			lookup[step+i] = pow2[j].Add(lookup[i])
		}
	}
	NormalizeAll(lookup[1:])

	log := logger.Logger()
	log.Debug().
		Str("curve", p.curve.name).
		Int("width", width).
		Int("entries", len(lookup)).
		Msg("built fixed-point comb table")
	return &CombTable{width: width, d: d, lookup: lookup}
}

// FixedPointCombMultiplier multiplies a fixed, reused base point through its
// comb table: after the one-time precomputation each call costs d doublings
// and d additions regardless of the scalar. Scalars wider than the comb are
// rejected.
type FixedPointCombMultiplier struct{}

func (m FixedPointCombMultiplier) Multiply(p *Point, k *big.Int) (*Point, error) {
	return multiplyWithSign(p, k, combMultiplyPositive)
}

func combMultiplyPositive(p *Point, k *big.Int) (*Point, error) {
	c := p.curve
	if k.BitLen() > c.combSize() {
		return nil, fmt.Errorf("%w: fixed-point comb covers %d bits", ErrScalarTooLarge, c.combSize())
	}

	table, err := CombPrecompute(p)
	if err != nil {
		return nil, err
	}
	d := table.d

	kBits := bitset.New(uint(k.BitLen()))
	for i := 0; i < k.BitLen(); i++ {
		if k.Bit(i) != 0 {
			kBits.Set(uint(i))
		}
	}

	r := c.infinity
	for i := d - 1; i >= 0; i-- {
		idx := 0
		for j := table.width - 1; j >= 0; j-- {
			idx <<= 1
			if kBits.Test(uint(j*d + i)) {
				idx |= 1
			}
		}
		r = r.TwicePlus(table.lookup[idx])
	}
	return r, nil
}
