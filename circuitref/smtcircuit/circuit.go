// Package smtcircuit is a reference in-circuit arithmetization of the
// account-tree Merkle proof (component D), showing how this predicate
// would be wired into the out-of-scope zk proving backend. It is not part
// of the verifier's execution path — verify() runs entirely out-of-circuit
// — but keeps this repository's gnark frontend/groth16 stack exercised by
// something concrete rather than orphaned.
//
// Grounded on the BoundaryMerkleProof gadget of the teacher repository's
// circuits/fsp/merkle.go (not part of this tree), generalized from that
// package's fixed file-proof depth to the account tree's depth (10).
package smtcircuit

import (
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash"
	"github.com/consensys/gnark/std/permutation/poseidon2"
)

// Depth is the account tree depth (§6: ACCOUNT_TREE_DEPTH = 10).
const Depth = 10

// MerkleProofCircuit proves that LeafHash, folded up Directions/ProofPath,
// equals the public RootHash — the in-circuit counterpart of
// merkle.Proof.Root in this repository's pkg/merkle.
type MerkleProofCircuit struct {
	RootHash frontend.Variable `gnark:",public"`

	LeafHash   frontend.Variable
	ProofPath  [Depth]frontend.Variable
	Directions [Depth]frontend.Variable // 0 = sibling on the right, 1 = sibling on the left
}

// Define implements frontend.Circuit.
func (c *MerkleProofCircuit) Define(api frontend.API) error {
	perm, err := poseidon2.NewPoseidon2FromParameters(api, 2, 6, 50)
	if err != nil {
		return err
	}
	hasher := hash.NewMerkleDamgardHasher(api, perm, 0)

	current := c.LeafHash
	for i := 0; i < Depth; i++ {
		sibling := c.ProofPath[i]
		direction := c.Directions[i]

		hasher.Reset()
		left := api.Select(direction, sibling, current)
		right := api.Select(direction, current, sibling)
		hasher.Write(left, right)
		current = hasher.Sum()
	}

	api.AssertIsEqual(current, c.RootHash)
	return nil
}
