package ecc

import "math/big"

// Multiplier computes k·p. All strategies agree on the result point; they
// differ in scalar recoding and precomputation. k = 0 or p at infinity give
// infinity, negative scalars are accepted as k·p = -(|k|·p).
type Multiplier interface {
	Multiply(p *Point, k *big.Int) (*Point, error)
}

// multiplyWithSign hoists the shared sign and zero handling out of the
// strategies, which only see a positive scalar and a finite point.
func multiplyWithSign(p *Point, k *big.Int, positive func(p *Point, k *big.Int) (*Point, error)) (*Point, error) {
	if k.Sign() == 0 || p.IsInfinity() {
		return p.curve.infinity, nil
	}
	r, err := positive(p, new(big.Int).Abs(k))
	if err != nil {
		return nil, err
	}
	if k.Sign() < 0 {
		r = r.Neg()
	}
	return r, nil
}

// ReferenceMultiplier is the plain right-to-left double-and-add ladder. It
// needs no recoding or tables and serves as the correctness oracle for the
// other strategies.
type ReferenceMultiplier struct{}

func (ReferenceMultiplier) Multiply(p *Point, k *big.Int) (*Point, error) {
	return multiplyWithSign(p, k, func(p *Point, k *big.Int) (*Point, error) {
		r := p.curve.infinity
		q := p
		for i, n := 0, k.BitLen(); i < n; i++ {
			if k.Bit(i) != 0 {
				r = r.Add(q)
			}
			q = q.Twice()
		}
		return r, nil
	})
}

// NafMultiplier scans the compact non-adjacent form of the scalar from the
// most significant digit down, folding each digit's zero run into a single
// multi-doubling.
type NafMultiplier struct{}

func (NafMultiplier) Multiply(p *Point, k *big.Int) (*Point, error) {
	return multiplyWithSign(p, k, nafMultiplyPositive)
}

func nafMultiplyPositive(p *Point, k *big.Int) (*Point, error) {
	naf, err := GenerateCompactNaf(k)
	if err != nil {
		return nil, err
	}

	addP := p.Normalize()
	subP := addP.Neg()

	r := p.curve.infinity
	for i := len(naf) - 1; i >= 0; i-- {
		ni := naf[i]
		if ni>>16 < 0 {
			r = r.TwicePlus(subP)
		} else {
			r = r.TwicePlus(addP)
		}
		r = r.TimesPow2(int(ni & 0xFFFF))
	}
	return r, nil
}

// WNafMultiplier is the default strategy: windowed NAF with a width chosen
// from the scalar's bit length, consuming the cached odd multiples of the
// point.
type WNafMultiplier struct {
	// Width forces the window width when in [2, 16]; 0 selects it from the
	// scalar size.
	Width int
}

func (m WNafMultiplier) Multiply(p *Point, k *big.Int) (*Point, error) {
	return multiplyWithSign(p, k, m.multiplyPositive)
}

func (m WNafMultiplier) multiplyPositive(p *Point, k *big.Int) (*Point, error) {
	width := m.Width
	if width < 2 || width > 16 {
		width = min(16, max(2, WindowSize(k.BitLen())))
	}

	table, err := WNafPrecompute(p, width, true)
	if err != nil {
		return nil, err
	}
	wnaf, err := GenerateCompactWindowNaf(width, k)
	if err != nil {
		return nil, err
	}

	r := p.curve.infinity
	for i := len(wnaf) - 1; i >= 0; i-- {
		wi := wnaf[i]
		digit := int(wi >> 16)
		tab := table.preComp
		if digit < 0 {
			digit = -digit
			tab = table.preCompNeg
		}
		r = r.TwicePlus(tab[digit>>1])
		r = r.TimesPow2(int(wi & 0xFFFF))
	}
	return r, nil
}
