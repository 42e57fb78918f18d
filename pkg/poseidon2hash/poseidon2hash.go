// Package poseidon2hash provides the Poseidon2 hashing used for Merkle
// nodes and record hashing (component B of the verifier).
//
// There is deliberately no domain separation tag: §4.B requires hashing to
// be "deterministic and domain-independent across call sites" so that
// Merkle siblings and record fields share the same permutation: both
// Compress2 (used by pkg/merkle) and HashN build on
// poseidon2.NewMerkleDamgardHasher. Do not add a tag here without revisiting every
// call site (§9 "No domain separation in Poseidon2").
package poseidon2hash

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/poseidon2"
)

// Compress2 is the 2-to-1 Merkle compression function H2(a,b), used to fold
// a Merkle path level and to hash Root records.
func Compress2(a, b *big.Int) *big.Int {
	h := poseidon2.NewMerkleDamgardHasher()

	var ea, eb fr.Element
	ea.SetBigInt(a)
	eb.SetBigInt(b)
	ba, bb := ea.Bytes(), eb.Bytes()
	h.Write(ba[:])
	h.Write(bb[:])

	return new(big.Int).SetBytes(h.Sum(nil))
}

// HashN hashes an arbitrary-arity input vector (k in {1,2,3,4,5} as used
// in this protocol: the mining index hash is arity 1, a Root and the mining
// difficulty hash are arity 2, a File and the mining brute-force hash are
// arity 3, an Account is arity 4, and transaction hashes are arity 4 or 5
// depending on the rule).
func HashN(inputs []*big.Int) *big.Int {
	h := poseidon2.NewMerkleDamgardHasher()

	var e fr.Element
	for _, in := range inputs {
		e.SetBigInt(in)
		b := e.Bytes()
		h.Write(b[:])
	}

	return new(big.Int).SetBytes(h.Sum(nil))
}
