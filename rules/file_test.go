package rules_test

import (
	"math/big"
	"testing"

	"github.com/MuriData/rollup-verifier/internal/testutil"
	"github.com/MuriData/rollup-verifier/pkg/babyjub"
	"github.com/MuriData/rollup-verifier/rules"
	"github.com/MuriData/rollup-verifier/state"
)

func TestFileFeeDeterminism(t *testing.T) {
	senderKey := newTestKey(10)
	senderPub := senderKey.Public()
	senderAcc := state.Account{Key: senderPub.X, Balance: big.NewInt(1000), Nonce: big.NewInt(0), RandomOracleNonce: big.NewInt(0)}
	f := state.File{ExpirationTime: big.NewInt(5), Owner: big.NewInt(0), Data: big.NewInt(777)}

	accTree := testutil.NewSparseTree(3, map[int]*big.Int{0: senderAcc.Hash()}, state.ZeroAccount().Hash())
	dataTree := testutil.NewSparseTree(3, map[int]*big.Int{0: f.Hash()}, state.ZeroFile().Hash())

	timeInterval := big.NewInt(30)
	now := big.NewInt(100)
	tx := rules.FileTx{
		SenderIndex:  big.NewInt(0),
		DataIndex:    big.NewInt(0),
		TimeInterval: timeInterval,
		Data:         big.NewInt(0), // preserve existing contents
		Nonce:        big.NewInt(0),
	}
	sig := signPacked(senderKey, tx.Hash())

	slot := rules.FileSlot{
		Tx: tx, ProofSender: accTree.Proof(0), ProofFile: dataTree.Proof(0),
		AccountSender: senderAcc, File: f, Signature: sig,
	}

	newAccRoot, newDataRoot, err := rules.ApplyFile(slot, accTree.Root(), dataTree.Root(), now)
	if err != nil {
		t.Fatalf("ApplyFile: %v", err)
	}

	newSender := senderAcc
	newSender.Balance = big.NewInt(1000 - 30)
	newSender.Nonce = big.NewInt(1)
	wantAccTree := testutil.NewSparseTree(3, map[int]*big.Int{0: newSender.Hash()}, state.ZeroAccount().Hash())
	if newAccRoot.Cmp(wantAccTree.Root()) != 0 {
		t.Fatal("sender should be charged exactly time_interval as fee")
	}

	newFile := state.File{ExpirationTime: big.NewInt(130), Owner: senderPub.X, Data: big.NewInt(777)}
	wantDataTree := testutil.NewSparseTree(3, map[int]*big.Int{0: newFile.Hash()}, state.ZeroFile().Hash())
	if newDataRoot.Cmp(wantDataTree.Root()) != 0 {
		t.Fatal("expiration should be max(old, now) + time_interval, and data preserved when tx.data == 0")
	}
}

func TestFileRejectsWhenNotWriteable(t *testing.T) {
	senderKey := newTestKey(11)
	senderPub := senderKey.Public()
	senderAcc := state.Account{Key: senderPub.X, Balance: big.NewInt(1000), Nonce: big.NewInt(0), RandomOracleNonce: big.NewInt(0)}
	otherOwner := big.NewInt(424242)
	f := state.File{ExpirationTime: big.NewInt(1000), Owner: otherOwner, Data: big.NewInt(1)}

	accTree := testutil.NewSparseTree(3, map[int]*big.Int{0: senderAcc.Hash()}, state.ZeroAccount().Hash())
	dataTree := testutil.NewSparseTree(3, map[int]*big.Int{0: f.Hash()}, state.ZeroFile().Hash())

	tx := rules.FileTx{SenderIndex: big.NewInt(0), DataIndex: big.NewInt(0), TimeInterval: big.NewInt(5), Data: big.NewInt(0), Nonce: big.NewInt(0)}
	sig := signPacked(senderKey, tx.Hash())

	slot := rules.FileSlot{Tx: tx, ProofSender: accTree.Proof(0), ProofFile: dataTree.Proof(0), AccountSender: senderAcc, File: f, Signature: sig}

	if _, _, err := rules.ApplyFile(slot, accTree.Root(), dataTree.Root(), big.NewInt(10)); err == nil {
		t.Fatal("expected rejection: file not expired and owned by someone else")
	}
}

func TestFileBlankSlotLeavesRootsUnchanged(t *testing.T) {
	accTree := testutil.NewSparseTree(3, map[int]*big.Int{}, state.ZeroAccount().Hash())
	dataTree := testutil.NewSparseTree(3, map[int]*big.Int{}, state.ZeroFile().Hash())

	slot := rules.FileSlot{
		Tx:            rules.FileTx{SenderIndex: big.NewInt(0), DataIndex: big.NewInt(0), TimeInterval: big.NewInt(0), Data: big.NewInt(0), Nonce: big.NewInt(0)},
		ProofSender:   accTree.Proof(0),
		ProofFile:     dataTree.Proof(0),
		AccountSender: state.ZeroAccount(),
		File:          state.ZeroFile(),
		Signature:     babyjub.SignaturePacked{A: big.NewInt(0), S: big.NewInt(0), R8: big.NewInt(0)},
	}

	accRoot, dataRoot, err := rules.ApplyFile(slot, accTree.Root(), dataTree.Root(), big.NewInt(1))
	if err != nil {
		t.Fatalf("ApplyFile(blank): %v", err)
	}
	if accRoot.Cmp(accTree.Root()) != 0 || dataRoot.Cmp(dataTree.Root()) != 0 {
		t.Fatal("blank slot should leave both roots unchanged")
	}
}
