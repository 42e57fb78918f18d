package babyjub

import (
	"math/big"

	"github.com/iden3/go-iden3-crypto/poseidon"
)

// SignaturePacked is the witnessed EdDSA signature together with the
// signer's claimed public key x-coordinate, as carried in every
// transaction's asset bundle (§3). A signature with A == 0 is the "blank"
// sentinel: the slot carries no transaction and every rule must skip its
// checks entirely.
type SignaturePacked struct {
	A  *big.Int // signer's public key x-coordinate
	S  *big.Int // scalar
	R8 *big.Int // nonce commitment x-coordinate
}

// IsBlank reports whether this signature is the empty-slot sentinel. A
// nil A (an under-filled witness slot that never set a signature at all)
// counts as blank too, rather than panicking.
func (sig *SignaturePacked) IsBlank() bool {
	return sig.A == nil || sig.A.Sign() == 0
}

// Verify checks the EdDSA-Poseidon signature over msg: the challenge
// h = Poseidon(r8.x, r8.y, a.x, a.y, msg) (state width 6, five inputs, per
// §4.C — not Poseidon2), then the curve equation
// [8*s]*B8 = [8]*R8 + [8*h]*A.
func (sig *SignaturePacked) Verify(msg *big.Int) (bool, error) {
	a, err := DecompressX(sig.A)
	if err != nil {
		return false, err
	}
	r8, err := DecompressX(sig.R8)
	if err != nil {
		return false, err
	}

	h, err := poseidon.Hash([]*big.Int{r8.X, r8.Y, a.X, a.Y, msg})
	if err != nil {
		return false, err
	}

	eight := big.NewInt(8)
	lhs := Mul(sig.S, B8)

	eightH := new(big.Int).Mul(eight, h)
	rhs := Add(r8, Mul(eightH, a))

	return Equal(lhs, rhs), nil
}
