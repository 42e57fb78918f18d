// Package pubinput implements the public-input hash (component I): the
// single Keccak-256 digest that binds (old_root, new_root, now, oracle) as
// the on-chain-committed value every block must reproduce.
package pubinput

import (
	"math/big"

	"golang.org/x/crypto/sha3"

	"github.com/MuriData/rollup-verifier/pkg/field"
	"github.com/MuriData/rollup-verifier/state"
)

// Public is the public-input tuple (old_root, new_root, now, oracle).
type Public struct {
	OldRoot *big.Int
	NewRoot *big.Int
	Now     *big.Int
	Oracle  state.RandomOracle
}

// Hash serializes (old_root, new_root, now, oracle.offset, oracle.data[0..S))
// — 4+S = 20 field elements — as 32-byte big-endian words (640 bytes total),
// Keccak-256 hashes the concatenation, and reinterprets the 32-byte digest
// big-endian as a field element reduced mod r. This digest is the single
// value committed on-chain (§4.I) — its byte layout is Ethereum-compatible
// and must never change.
func (p Public) Hash() *big.Int {
	h := sha3.NewLegacyKeccak256()

	elements := make([]*big.Int, 0, 4+state.RandomOracleSize)
	elements = append(elements, p.OldRoot, p.NewRoot, p.Now, p.Oracle.Offset)
	for i := 0; i < state.RandomOracleSize; i++ {
		elements = append(elements, p.Oracle.Data[i])
	}

	for _, e := range elements {
		b := field.BeBytes32(e)
		h.Write(b[:])
	}

	digest := h.Sum(nil)
	var out [32]byte
	copy(out[:], digest)
	return field.FromBeBytes32(out)
}
