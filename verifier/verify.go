// Package verifier implements the top-level entry point (component J):
// verify(pub_hash, witness) -> accept/reject. Every check is a hard assert;
// the first failure rejects the whole block (§4.J, §7).
package verifier

import (
	"errors"
	"math/big"

	"github.com/MuriData/rollup-verifier/block"
	"github.com/MuriData/rollup-verifier/pubinput"
	"github.com/MuriData/rollup-verifier/state"
)

// ErrPublicInputMismatch is returned when the recomputed public-input
// digest does not equal the supplied pub_hash.
var ErrPublicInputMismatch = errors.New("verifier: computed public-input digest does not match pub_hash")

// ErrRootRecordMismatch is returned when the witnessed Root records do not
// hash to the public old_root/new_root.
var ErrRootRecordMismatch = errors.New("verifier: root record does not hash to the claimed root")

// RollupInput is the full witness for one block verification: the public
// tuple, the old/new Root records it commits to, and the three sub-blocks.
type RollupInput struct {
	Public      pubinput.Public
	OldRootRec  state.Root
	NewRootRec  state.Root
	TransferBlk block.TransferBlock
	FileBlk     block.FileBlock
	MiningBlk   block.MiningBlock
}

// Verify recomputes the public-input hash and checks it against pub_hash;
// checks the witnessed Root records hash to the public old_root/new_root;
// applies the block in order (transfer -> file -> mining); and checks the
// resulting roots equal the witnessed new roots. Any failure rejects the
// whole block.
func Verify(pubHash *big.Int, witness RollupInput) (bool, error) {
	if witness.Public.Hash().Cmp(pubHash) != 0 {
		return false, ErrPublicInputMismatch
	}
	if witness.OldRootRec.Hash().Cmp(witness.Public.OldRoot) != 0 {
		return false, ErrRootRecordMismatch
	}
	if witness.NewRootRec.Hash().Cmp(witness.Public.NewRoot) != 0 {
		return false, ErrRootRecordMismatch
	}

	miningBlk := witness.MiningBlk
	for i := range miningBlk {
		miningBlk[i].RandomOracle = witness.Public.Oracle
	}

	newAcc, newData, err := block.Apply(
		witness.TransferBlk, witness.FileBlk, miningBlk,
		witness.OldRootRec.Acc, witness.OldRootRec.Data, witness.Public.Now,
	)
	if err != nil {
		return false, err
	}

	if newAcc.Cmp(witness.NewRootRec.Acc) != 0 || newData.Cmp(witness.NewRootRec.Data) != 0 {
		return false, errors.New("verifier: resulting roots do not match the witnessed new roots")
	}

	return true, nil
}
