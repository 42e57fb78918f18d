// Package babyjub implements the Baby Jubjub twisted Edwards curve
// operations and the subgroup-decompression-from-x algorithm used to turn
// an account's stored x-coordinate back into a full curve point (component
// C of the verifier).
//
// Curve arithmetic itself (point add, scalar multiplication, on-curve
// checks, the canonical base point B8 and group orders) is delegated to
// github.com/iden3/go-iden3-crypto/babyjub, the same library this
// ecosystem's identity tooling uses (see other_examples' iden3 issuer
// code). Only the x-coordinate decompression — which that library does not
// provide, since its own Point.Compress/Decompress encode the sign bit of
// x alongside y, not the reverse — is implemented here.
package babyjub

import (
	"errors"
	"math/big"

	"github.com/iden3/go-iden3-crypto/babyjub"

	"github.com/MuriData/rollup-verifier/pkg/field"
)

// ErrNotOnCurve is returned when a witnessed y does not satisfy the curve
// equation for the given x.
var ErrNotOnCurve = errors.New("babyjub: point is not on the curve")

// ErrNotInSubgroup is returned when neither candidate root lies in the
// prime-order subgroup generated by B8.
var ErrNotInSubgroup = errors.New("babyjub: no candidate y lies in the prime-order subgroup")

// ErrXMismatch is returned when the recovered subgroup point's x does not
// match the requested x (step 3 of §4.C).
var ErrXMismatch = errors.New("babyjub: recovered point's x does not match input x")

// Point is a Baby Jubjub curve point, affine coordinates.
type Point = babyjub.Point

// A and D are the twisted-Edwards curve coefficients: a*x^2 + y^2 = 1 + d*x^2*y^2.
var A = babyjub.A
var D = babyjub.D

// Order is the full curve group order (8 * SubOrder); SubOrder is the
// prime order of the subgroup generated by B8.
var Order = babyjub.Order
var SubOrder = babyjub.SubOrder

// B8 is the standard Baby Jubjub generator of the prime-order subgroup.
var B8 = babyjub.B8

// Identity is the curve's neutral element (0, 1).
func Identity() *Point {
	return &Point{X: big.NewInt(0), Y: big.NewInt(1)}
}

// Add returns p+q.
func Add(p, q *Point) *Point {
	r := babyjub.NewPoint()
	return r.Add(p, q)
}

// Mul returns [s]*p.
func Mul(s *big.Int, p *Point) *Point {
	r := babyjub.NewPoint()
	return r.Mul(s, p)
}

// InCurve reports whether p satisfies the curve equation.
func InCurve(p *Point) bool {
	return p.InCurve()
}

// Equal reports whether p and q are the same affine point.
func Equal(p, q *Point) bool {
	return p.X.Cmp(q.X) == 0 && p.Y.Cmp(q.Y) == 0
}

// yCandidates solves a*x^2 + y^2 = 1 + d*x^2*y^2 for y given x, returning
// both roots {y, -y} when x corresponds to a point on the curve.
func yCandidates(x *big.Int) (*big.Int, *big.Int, error) {
	x2 := field.Mul(x, x)
	num := field.Sub(field.One(), field.Mul(A, x2))
	den := field.Sub(field.One(), field.Mul(D, x2))
	if field.IsZero(den) {
		return nil, nil, ErrNotOnCurve
	}
	denInv, err := field.Inverse(den)
	if err != nil {
		return nil, nil, ErrNotOnCurve
	}
	y2 := field.Mul(num, denInv)
	y, ok := field.Sqrt(y2)
	if !ok {
		return nil, nil, ErrNotOnCurve
	}
	return y, field.Neg(y), nil
}

// DecompressX recovers the unique prime-order-subgroup point whose
// x-coordinate is x, per §4.C:
//
//  1. solve the curve equation for the two candidate y values;
//  2. keep the candidate that is on the curve AND annihilated by
//     [SubOrder] (i.e. lies in the prime-order subgroup generated by B8);
//  3. return that candidate directly.
//
// The spec's literal step 3 ("output [8]*candidate, check the resulting x
// matches the input x") does not hold for a generic prime-order point —
// scalar multiplication by 8 changes the x-coordinate of a point whose
// order is coprime with 8, which every point in the SubOrder-l subgroup
// is. Testable property #3 (decompressing x([k]*B8) must yield [k]*B8
// itself, unscaled) is only satisfiable by returning the subgroup-checked
// candidate as-is, so that is what this function does.
func DecompressX(x *big.Int) (*Point, error) {
	y1, y2, err := yCandidates(x)
	if err != nil {
		return nil, err
	}
	for _, y := range []*big.Int{y1, y2} {
		candidate := &Point{X: new(big.Int).Set(field.Canonical(x)), Y: y}
		if !candidate.InCurve() {
			continue
		}
		check := Mul(SubOrder, candidate)
		if check.X.Sign() == 0 && field.Equal(check.Y, field.One()) {
			if candidate.X.Cmp(field.Canonical(x)) != 0 {
				return nil, ErrXMismatch
			}
			return candidate, nil
		}
	}
	return nil, ErrNotInSubgroup
}
