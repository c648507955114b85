// Package ecmath implements arithmetic for short-Weierstrass elliptic curves
// over prime fields, as used by ECDSA and ECDH style primitives.
//
// The building blocks, leaf to root:
//   - internal/nat: fixed-width multi-limb integer kernel
//   - internal/mod: generic modular inversion and residue sampling
//   - ff: prime-field elements with per-curve specialized reduction
//   - ecc: curve descriptors, Jacobian points, scalar multiplication and
//     precomputation caches
//
// ecmath supports the following curves:
//   - secp192r1
//   - secp256r1
//   - secp256k1
//   - secp384r1
package ecmath
