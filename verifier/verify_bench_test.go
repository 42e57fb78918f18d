package verifier_test

import (
	"math/big"
	"testing"

	"github.com/MuriData/rollup-verifier/block"
	"github.com/MuriData/rollup-verifier/internal/testutil"
	"github.com/MuriData/rollup-verifier/pubinput"
	"github.com/MuriData/rollup-verifier/rules"
	"github.com/MuriData/rollup-verifier/state"
	"github.com/MuriData/rollup-verifier/verifier"
)

// BenchmarkVerify measures Verify on an all-blank block. Every blank slot
// returns before any signature or Merkle work, so this times the
// public-input hash, the two Root-record hashes and the slot dispatch.
func BenchmarkVerify(b *testing.B) {
	accTree := testutil.NewSparseTree(3, map[int]*big.Int{}, state.ZeroAccount().Hash())
	dataTree := testutil.NewSparseTree(3, map[int]*big.Int{}, state.ZeroFile().Hash())

	var transferBlk block.TransferBlock
	for i := range transferBlk {
		transferBlk[i] = rules.TransferSlot{
			Tx:              rules.TransferTx{SenderIndex: big.NewInt(0), ReceiverIndex: big.NewInt(1), ReceiverKey: big.NewInt(0), Amount: big.NewInt(0), Nonce: big.NewInt(0)},
			ProofSender:     accTree.Proof(0),
			ProofReceiver:   accTree.Proof(1),
			AccountSender:   state.ZeroAccount(),
			AccountReceiver: state.ZeroAccount(),
			Signature:       blankSig(),
		}
	}
	var fileBlk block.FileBlock
	for i := range fileBlk {
		fileBlk[i] = rules.FileSlot{
			Tx:            rules.FileTx{SenderIndex: big.NewInt(0), DataIndex: big.NewInt(0), TimeInterval: big.NewInt(0), Data: big.NewInt(0), Nonce: big.NewInt(0)},
			ProofSender:   accTree.Proof(0),
			ProofFile:     dataTree.Proof(0),
			AccountSender: state.ZeroAccount(),
			File:          state.ZeroFile(),
			Signature:     blankSig(),
		}
	}
	var miningBlk block.MiningBlock
	for i := range miningBlk {
		miningBlk[i] = rules.MiningSlot{
			Tx:                rules.MiningTx{SenderIndex: big.NewInt(0), Nonce: big.NewInt(0), RandomOracleNonce: big.NewInt(0), MiningNonce: big.NewInt(0)},
			ProofSender:       accTree.Proof(0),
			AccountSender:     state.ZeroAccount(),
			ProofFile:         dataTree.Proof(0),
			File:              state.ZeroFile(),
			ProofDataInFile:   dataTree.Proof(0),
			DataInFile:        big.NewInt(0),
			RandomOracleValue: big.NewInt(0),
			Signature:         blankSig(),
		}
	}

	oldRoot := state.Root{Acc: accTree.Root(), Data: dataTree.Root()}
	var oracle state.RandomOracle
	oracle.Offset = big.NewInt(0)
	for i := range oracle.Data {
		oracle.Data[i] = big.NewInt(0)
	}
	public := pubinput.Public{OldRoot: oldRoot.Hash(), NewRoot: oldRoot.Hash(), Now: big.NewInt(1), Oracle: oracle}
	pubHash := public.Hash()

	witness := verifier.RollupInput{
		Public: public, OldRootRec: oldRoot, NewRootRec: oldRoot,
		TransferBlk: transferBlk, FileBlk: fileBlk, MiningBlk: miningBlk,
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := verifier.Verify(pubHash, witness); err != nil {
			b.Fatalf("Verify: %v", err)
		}
	}
}
