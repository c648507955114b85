package ecc

import "math/big"

// Scalars below cutoff[i] bits use window width i+2; wider windows only pay
// off once the precomputation amortizes over enough doublings.
var windowSizeCutoffs = []int{13, 41, 121, 337, 897, 2305}

// WindowSize returns the wNAF window width for a scalar of the given bit
// length.
func WindowSize(bits int) int {
	w := 0
	for w < len(windowSizeCutoffs) && bits >= windowSizeCutoffs[w] {
		w++
	}
	return w + 2
}

// low32 returns the low 32 bits of the non-negative k.
func low32(k *big.Int) uint32 {
	if len(k.Bits()) == 0 {
		return 0
	}
	return uint32(k.Bits()[0])
}

func carryBit(carry bool) uint {
	if carry {
		return 1
	}
	return 0
}

// GenerateNaf recodes the non-negative scalar k into non-adjacent form, one
// signed digit in {-1, 0, 1} per entry, least significant first. The digit
// positions are the set bits of 3k XOR k.
func GenerateNaf(k *big.Int) []int8 {
	if k.Sign() == 0 {
		return nil
	}

	k3 := new(big.Int).Lsh(k, 1)
	k3.Add(k3, k)
	digits := k3.BitLen() - 1
	naf := make([]int8, digits)

	diff := new(big.Int).Xor(k3, k)
	for i := 1; i < digits; i++ {
		if diff.Bit(i) != 0 {
			if k.Bit(i) != 0 {
				naf[i-1] = -1
			} else {
				naf[i-1] = 1
			}
			i++
		}
	}
	naf[digits-1] = 1
	return naf
}

// GenerateCompactNaf recodes the non-negative scalar k into non-adjacent
// form, packing each signed digit with the length of the zero run below it
// into one int32 as digit<<16 | zeroes, least significant digit first.
// Scalars of 2^16 bits or more do not fit the packing and are rejected.
func GenerateCompactNaf(k *big.Int) ([]int32, error) {
	if k.BitLen()>>16 != 0 {
		return nil, ErrScalarTooLarge
	}
	if k.Sign() == 0 {
		return nil, nil
	}

	k3 := new(big.Int).Lsh(k, 1)
	k3.Add(k3, k)
	bits := k3.BitLen()
	naf := make([]int32, 0, bits>>1)

	diff := new(big.Int).Xor(k3, k)
	highBit := bits - 1
	zeroes := int32(0)
	for i := 1; i < highBit; i++ {
		if diff.Bit(i) == 0 {
			zeroes++
			continue
		}
		digit := int32(1)
		if k.Bit(i) != 0 {
			digit = -1
		}
		naf = append(naf, digit<<16|zeroes)
		zeroes = 1
		i++
	}
	naf = append(naf, 1<<16|zeroes)
	return naf, nil
}

// GenerateWindowNaf recodes the non-negative scalar k into width-w NAF: odd
// signed digits |d| < 2^(w-1), at least w-1 zero positions between nonzero
// digits, one digit per entry, least significant first. width must be in
// [2, 8] for the byte digit form.
func GenerateWindowNaf(width int, k *big.Int) []int8 {
	if width == 2 {
		return GenerateNaf(k)
	}
	if width < 2 || width > 8 {
		panic("ecc: window width must be in [2, 8]")
	}
	if k.Sign() == 0 {
		return nil
	}

	wnaf := make([]int8, k.BitLen()+1)
	pow2 := 1 << uint(width)
	mask := pow2 - 1
	sign := pow2 >> 1

	kk := new(big.Int).Set(k)
	carry := false
	length := 0
	pos := 0
	for pos <= kk.BitLen() {
		if kk.Bit(pos) == carryBit(carry) {
			pos++
			continue
		}
		kk.Rsh(kk, uint(pos))

		digit := int(low32(kk)) & mask
		if carry {
			digit++
		}
		carry = digit&sign != 0
		if carry {
			digit -= pow2
		}

		if length > 0 {
			length += pos - 1
		} else {
			length += pos
		}
		wnaf[length] = int8(digit)
		length++
		pos = width
	}
	return wnaf[:length]
}

// GenerateCompactWindowNaf recodes the non-negative scalar k into width-w
// NAF with the digit<<16 | zeroes packing of GenerateCompactNaf. width must
// be in [2, 16].
func GenerateCompactWindowNaf(width int, k *big.Int) ([]int32, error) {
	if width == 2 {
		return GenerateCompactNaf(k)
	}
	if width < 2 || width > 16 {
		panic("ecc: window width must be in [2, 16]")
	}
	if k.BitLen()>>16 != 0 {
		return nil, ErrScalarTooLarge
	}
	if k.Sign() == 0 {
		return nil, nil
	}

	wnaf := make([]int32, 0, k.BitLen()/width+1)
	pow2 := int32(1) << uint(width)
	mask := int32(pow2 - 1)
	sign := pow2 >> 1

	kk := new(big.Int).Set(k)
	carry := false
	pos := 0
	for pos <= kk.BitLen() {
		if kk.Bit(pos) == carryBit(carry) {
			pos++
			continue
		}
		kk.Rsh(kk, uint(pos))

		digit := int32(low32(kk)) & mask
		if carry {
			digit++
		}
		carry = digit&sign != 0
		if carry {
			digit -= pow2
		}

		zeroes := int32(pos)
		if len(wnaf) > 0 {
			zeroes--
		}
		wnaf = append(wnaf, digit<<16|zeroes)
		pos = width
	}
	return wnaf, nil
}

// GenerateJSF recodes the pair of non-negative scalars (g, h) into joint
// sparse form: per position one digit pair (u0, u1) in {-1, 0, 1}², packed
// as u0<<4 | u1&0xF, least significant position first. The joint weight is
// minimal, which is what makes Shamir's trick cheap.
func GenerateJSF(g, h *big.Int) []int8 {
	digits := max(g.BitLen(), h.BitLen()) + 1
	jsf := make([]int8, 0, digits)

	k0 := new(big.Int).Set(g)
	k1 := new(big.Int).Set(h)
	var d0, d1 int
	offset := 0
	for d0|d1 != 0 || k0.BitLen() > offset || k1.BitLen() > offset {
		n0 := (int(low32(k0)>>uint(offset)) + d0) & 7
		n1 := (int(low32(k1)>>uint(offset)) + d1) & 7

		u0 := n0 & 1
		if u0 != 0 {
			u0 -= n0 & 2
			if n0+u0 == 4 && n1&3 == 2 {
				u0 = -u0
			}
		}
		u1 := n1 & 1
		if u1 != 0 {
			u1 -= n1 & 2
			if n1+u1 == 4 && n0&3 == 2 {
				u1 = -u1
			}
		}

		if d0<<1 == 1+u0 {
			d0 ^= 1
		}
		if d1<<1 == 1+u1 {
			d1 ^= 1
		}
		offset++
		if offset == 30 {
			offset = 0
			k0.Rsh(k0, 30)
			k1.Rsh(k1, 30)
		}

		jsf = append(jsf, int8(u0<<4|(u1&0xF)))
	}
	return jsf
}
