// Package field implements the scalar-field arithmetic (component A of the
// verifier) used throughout the rollup core: addition, subtraction,
// multiplication, inversion, canonical-integer comparison, and bit/byte
// decomposition over the BN254 scalar field F_r.
//
// Every function takes and returns *big.Int, always reduced to the
// canonical representative in [0, r). Internally each operation is carried
// out by converting to fr.Element (gnark-crypto's BN254 Fr implementation)
// and back, mirroring the conversion discipline already used elsewhere in
// this repository's Poseidon2 call sites (see pkg/poseidon2hash).
package field

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// ErrNotInvertible is returned by Inverse for the zero element.
var ErrNotInvertible = errors.New("field: zero element has no multiplicative inverse")

// ErrBitOverflow is returned by LeBits when the value does not fit in the
// requested number of bits.
var ErrBitOverflow = errors.New("field: value does not fit in requested bit width")

// Modulus is the BN254 scalar field prime r.
var Modulus = fr.Modulus()

func toFr(x *big.Int) fr.Element {
	var e fr.Element
	e.SetBigInt(x)
	return e
}

func toBig(e *fr.Element) *big.Int {
	var b big.Int
	e.BigInt(&b)
	return &b
}

// Canonical reduces x modulo r into [0, r).
func Canonical(x *big.Int) *big.Int {
	e := toFr(x)
	return toBig(&e)
}

// Zero returns the additive identity.
func Zero() *big.Int { return big.NewInt(0) }

// One returns the multiplicative identity.
func One() *big.Int { return big.NewInt(1) }

// IsZero reports whether x is congruent to zero mod r.
func IsZero(x *big.Int) bool {
	e := toFr(x)
	return e.IsZero()
}

// Equal reports whether a and b are congruent mod r.
func Equal(a, b *big.Int) bool {
	ea, eb := toFr(a), toFr(b)
	return ea.Equal(&eb)
}

// Add returns a+b mod r.
func Add(a, b *big.Int) *big.Int {
	ea, eb := toFr(a), toFr(b)
	var res fr.Element
	res.Add(&ea, &eb)
	return toBig(&res)
}

// Sub returns a-b mod r.
func Sub(a, b *big.Int) *big.Int {
	ea, eb := toFr(a), toFr(b)
	var res fr.Element
	res.Sub(&ea, &eb)
	return toBig(&res)
}

// Mul returns a*b mod r.
func Mul(a, b *big.Int) *big.Int {
	ea, eb := toFr(a), toFr(b)
	var res fr.Element
	res.Mul(&ea, &eb)
	return toBig(&res)
}

// Neg returns -a mod r.
func Neg(a *big.Int) *big.Int {
	ea := toFr(a)
	var res fr.Element
	res.Neg(&ea)
	return toBig(&res)
}

// Inverse returns the multiplicative inverse of a mod r, or ErrNotInvertible
// if a is zero.
func Inverse(a *big.Int) (*big.Int, error) {
	ea := toFr(a)
	if ea.IsZero() {
		return nil, ErrNotInvertible
	}
	var res fr.Element
	res.Inverse(&ea)
	return toBig(&res), nil
}

// Sqrt returns a square root of a mod r (either root — callers that need a
// specific one also check -result), or ok=false if a is not a quadratic
// residue.
func Sqrt(a *big.Int) (result *big.Int, ok bool) {
	ea := toFr(a)
	var res fr.Element
	if res.Sqrt(&ea) == nil {
		return nil, false
	}
	return toBig(&res), true
}

// Lt reports whether a < b, comparing the canonical integer representatives
// in [0, r) rather than performing modular/wraparound comparison.
func Lt(a, b *big.Int) bool {
	ea, eb := toFr(a), toFr(b)
	return ea.Cmp(&eb) < 0
}

// LeBits returns the little-endian bit decomposition of x (canonicalized
// first) using exactly n bits, bit 0 being the least-significant. It fails
// with ErrBitOverflow if the canonical representative of x needs more than
// n bits.
func LeBits(x *big.Int, n int) ([]bool, error) {
	c := Canonical(x)
	if c.BitLen() > n {
		return nil, fmt.Errorf("%w: %d bits needed, %d allowed", ErrBitOverflow, c.BitLen(), n)
	}
	bits := make([]bool, n)
	for i := 0; i < n; i++ {
		bits[i] = c.Bit(i) == 1
	}
	return bits, nil
}

// FromLeBits reconstructs a field element from a little-endian bit slice:
// sum(b_i * 2^i).
func FromLeBits(bits []bool) *big.Int {
	acc := new(big.Int)
	for i := len(bits) - 1; i >= 0; i-- {
		acc.Lsh(acc, 1)
		if bits[i] {
			acc.SetBit(acc, 0, 1)
		}
	}
	return Canonical(acc)
}

// Trim takes the low n bits of x, i.e. x mod 2^n.
func Trim(x *big.Int, n int) *big.Int {
	c := Canonical(x)
	mask := new(big.Int).Lsh(big.NewInt(1), uint(n))
	mask.Sub(mask, big.NewInt(1))
	return new(big.Int).And(c, mask)
}

// BeBytes32 serializes x to exactly 32 big-endian bytes, left-padded with
// zero — the canonical field encoding used for hashing and public inputs.
func BeBytes32(x *big.Int) [32]byte {
	e := toFr(x)
	return e.Bytes()
}

// FromBeBytes32 parses 32 big-endian bytes into a canonical field element.
func FromBeBytes32(b [32]byte) *big.Int {
	var e fr.Element
	e.SetBytes(b[:])
	return toBig(&e)
}
