// Package ecc implements the supported short-Weierstrass curves over the
// prime fields of package ff: curve descriptors, Jacobian-coordinate points
// and the group law, scalar-multiplication strategies (double-and-add, NAF,
// windowed NAF, fixed-point comb) and the per-point precomputation cache
// they share.
package ecc

import (
	"fmt"
	"sync"
)

// ID identifies one of the supported curves.
type ID uint16

const (
	UNKNOWN ID = iota
	SECP192R1
	SECP256R1
	SECP256K1
	SECP384R1
)

// Implemented returns the list of supported curves.
func Implemented() []ID {
	return []ID{SECP192R1, SECP256R1, SECP256K1, SECP384R1}
}

// String returns the SEC 2 name of the curve.
func (id ID) String() string {
	switch id {
	case SECP192R1:
		return "secp192r1"
	case SECP256R1:
		return "secp256r1"
	case SECP256K1:
		return "secp256k1"
	case SECP384R1:
		return "secp384r1"
	default:
		return "unknown"
	}
}

var (
	secp192r1Once, secp256r1Once, secp256k1Once, secp384r1Once sync.Once

	secp192r1Curve, secp256r1Curve, secp256k1Curve, secp384r1Curve *Curve
)

// GetCurve returns the descriptor for id. Descriptors are lazily initialized
// process-wide singletons; the same pointer is returned on every call.
func GetCurve(id ID) *Curve {
	switch id {
	case SECP192R1:
		secp192r1Once.Do(func() { secp192r1Curve = newSecp192r1() })
		return secp192r1Curve
	case SECP256R1:
		secp256r1Once.Do(func() { secp256r1Curve = newSecp256r1() })
		return secp256r1Curve
	case SECP256K1:
		secp256k1Once.Do(func() { secp256k1Curve = newSecp256k1() })
		return secp256k1Curve
	case SECP384R1:
		secp384r1Once.Do(func() { secp384r1Curve = newSecp384r1() })
		return secp384r1Curve
	default:
		panic("ecc: unknown curve id")
	}
}

// CurveByName returns the descriptor for a SEC 2 curve name.
func CurveByName(name string) (*Curve, error) {
	for _, id := range Implemented() {
		if id.String() == name {
			return GetCurve(id), nil
		}
	}
	return nil, fmt.Errorf("ecc: unknown curve %q", name)
}
