// Package rules implements the three state-transition rules — transfer,
// file storage payment, and mining (components E, F, G) — each a pure
// function from a witnessed slot and the current roots to the next roots,
// or a rejection.
package rules

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/MuriData/rollup-verifier/pkg/babyjub"
	"github.com/MuriData/rollup-verifier/pkg/field"
	"github.com/MuriData/rollup-verifier/pkg/merkle"
	"github.com/MuriData/rollup-verifier/pkg/poseidon2hash"
	"github.com/MuriData/rollup-verifier/state"
)

// ErrRejected is wrapped by every rule-specific failure so callers (the
// block driver) can treat any of them uniformly as "reject the block".
var ErrRejected = errors.New("rules: slot rejected")

func reject(reason string) error {
	return fmt.Errorf("rules: %s: %w", reason, ErrRejected)
}

// TransferTx is the witnessed transfer transaction body (§4.E).
type TransferTx struct {
	SenderIndex   *big.Int
	ReceiverIndex *big.Int
	ReceiverKey   *big.Int
	Amount        *big.Int
	Nonce         *big.Int
}

// Hash returns Poseidon2([sender_index, receiver_index, receiver_key, amount, nonce]).
func (tx TransferTx) Hash() *big.Int {
	return poseidon2hash.HashN([]*big.Int{tx.SenderIndex, tx.ReceiverIndex, tx.ReceiverKey, tx.Amount, tx.Nonce})
}

// TransferSlot is one of the M_tx fixed slots in a transfer block.
type TransferSlot struct {
	Tx              TransferTx
	ProofSender     *merkle.Proof
	ProofReceiver   *merkle.Proof
	AccountSender   state.Account
	AccountReceiver state.Account
	Signature       babyjub.SignaturePacked
}

// ApplyTransfer checks slot against accRoot and, if it is non-blank and
// valid, returns the updated account root. A blank slot (signature.a == 0)
// returns accRoot unchanged and no error regardless of every other field
// (§8 property 5).
func ApplyTransfer(slot TransferSlot, accRoot *big.Int) (*big.Int, error) {
	if slot.Signature.IsBlank() {
		return accRoot, nil
	}

	ok, err := slot.Signature.Verify(slot.Tx.Hash())
	if err != nil {
		return nil, reject("transfer signature decompression failed")
	}
	if !ok {
		return nil, reject("transfer signature invalid")
	}
	if field.Lt(slot.AccountSender.Balance, slot.Tx.Amount) {
		return nil, reject("transfer insufficient balance")
	}
	newReceiverBalance := field.Add(slot.AccountReceiver.Balance, slot.Tx.Amount)
	if field.Lt(newReceiverBalance, slot.AccountReceiver.Balance) {
		return nil, reject("transfer receiver balance wraps")
	}
	keyMatches := field.Equal(slot.AccountReceiver.Key, slot.Tx.ReceiverKey) || field.IsZero(slot.AccountReceiver.Key)
	if !keyMatches {
		return nil, reject("transfer receiver key mismatch")
	}
	if !field.Equal(slot.AccountSender.Key, slot.Signature.A) {
		return nil, reject("transfer sender key does not match signature")
	}
	if slot.Tx.SenderIndex.Cmp(new(big.Int).SetUint64(slot.ProofSender.Index())) != 0 {
		return nil, reject("transfer sender index/proof mismatch")
	}
	if slot.Tx.ReceiverIndex.Cmp(new(big.Int).SetUint64(slot.ProofReceiver.Index())) != 0 {
		return nil, reject("transfer receiver index/proof mismatch")
	}
	if field.Equal(slot.Tx.SenderIndex, slot.Tx.ReceiverIndex) {
		return nil, reject("self-transfer")
	}
	if !field.Equal(slot.AccountSender.Nonce, slot.Tx.Nonce) {
		return nil, reject("transfer nonce mismatch")
	}

	newSender := slot.AccountSender
	newSender.Balance = field.Sub(slot.AccountSender.Balance, slot.Tx.Amount)
	if field.IsZero(newSender.Balance) {
		newSender.Key = field.Zero()
		newSender.Nonce = field.Zero()
		newSender.RandomOracleNonce = field.Zero()
	} else {
		newSender.Nonce = field.Add(slot.Tx.Nonce, field.One())
	}

	newReceiver := state.Account{
		Key:               slot.Tx.ReceiverKey,
		Balance:           newReceiverBalance,
		Nonce:             slot.AccountReceiver.Nonce,
		RandomOracleNonce: slot.AccountReceiver.RandomOracleNonce,
	}

	afterSender, err := slot.ProofSender.Update(slot.AccountSender.Hash(), newSender.Hash(), accRoot)
	if err != nil {
		return nil, reject("transfer sender proof update failed")
	}
	afterReceiver, err := slot.ProofReceiver.Update(slot.AccountReceiver.Hash(), newReceiver.Hash(), afterSender)
	if err != nil {
		return nil, reject("transfer receiver proof update failed")
	}
	return afterReceiver, nil
}
