package rules

import (
	"math/big"

	"github.com/MuriData/rollup-verifier/pkg/babyjub"
	"github.com/MuriData/rollup-verifier/pkg/field"
	"github.com/MuriData/rollup-verifier/pkg/merkle"
	"github.com/MuriData/rollup-verifier/pkg/poseidon2hash"
	"github.com/MuriData/rollup-verifier/rollup/params"
	"github.com/MuriData/rollup-verifier/state"
)

// Price re-exports the per-unit-time-interval storage fee from
// rollup/params (§6: PRICE = 1).
var Price = params.Price

// FileTx is the witnessed file-storage-payment transaction body (§4.F).
type FileTx struct {
	SenderIndex  *big.Int
	DataIndex    *big.Int
	TimeInterval *big.Int
	Data         *big.Int
	Nonce        *big.Int
}

// Hash returns Poseidon2([sender_index, data_index, time_interval, data, nonce]).
func (tx FileTx) Hash() *big.Int {
	return poseidon2hash.HashN([]*big.Int{tx.SenderIndex, tx.DataIndex, tx.TimeInterval, tx.Data, tx.Nonce})
}

// Fee returns PRICE * time_interval.
func (tx FileTx) Fee() *big.Int {
	return field.Mul(Price, tx.TimeInterval)
}

// FileSlot is one of the M_file fixed slots in a file block.
type FileSlot struct {
	Tx            FileTx
	ProofSender   *merkle.Proof
	ProofFile     *merkle.Proof
	AccountSender state.Account
	File          state.File
	Signature     babyjub.SignaturePacked
}

// ApplyFile checks slot against (accRoot, dataRoot, now) and, if it is
// non-blank and valid, returns the updated (acc_root, data_root). A blank
// slot is a no-op (§8 property 5).
func ApplyFile(slot FileSlot, accRoot, dataRoot, now *big.Int) (*big.Int, *big.Int, error) {
	if slot.Signature.IsBlank() {
		return accRoot, dataRoot, nil
	}

	ok, err := slot.Signature.Verify(slot.Tx.Hash())
	if err != nil {
		return nil, nil, reject("file signature decompression failed")
	}
	if !ok {
		return nil, nil, reject("file signature invalid")
	}
	fee := slot.Tx.Fee()
	if field.Lt(slot.AccountSender.Balance, fee) {
		return nil, nil, reject("file insufficient balance for fee")
	}
	if !field.Equal(slot.AccountSender.Key, slot.Signature.A) {
		return nil, nil, reject("file sender key does not match signature")
	}
	if slot.Tx.SenderIndex.Cmp(new(big.Int).SetUint64(slot.ProofSender.Index())) != 0 {
		return nil, nil, reject("file sender index/proof mismatch")
	}
	if !field.Equal(slot.AccountSender.Nonce, slot.Tx.Nonce) {
		return nil, nil, reject("file nonce mismatch")
	}
	if !slot.File.IsWriteable(now, slot.AccountSender.Key) {
		return nil, nil, reject("file is not writeable")
	}
	if slot.Tx.DataIndex.Cmp(new(big.Int).SetUint64(slot.ProofFile.Index())) != 0 {
		return nil, nil, reject("file data index/proof mismatch")
	}

	newSender := slot.AccountSender
	newSender.Balance = field.Sub(slot.AccountSender.Balance, fee)
	if field.IsZero(newSender.Balance) {
		newSender.Key = field.Zero()
		newSender.Nonce = field.Zero()
		newSender.RandomOracleNonce = field.Zero()
	} else {
		newSender.Nonce = field.Add(slot.Tx.Nonce, field.One())
	}

	newExpiration := slot.File.ExpirationTime
	if field.Lt(newExpiration, now) {
		newExpiration = now
	}
	newExpiration = field.Add(newExpiration, slot.Tx.TimeInterval)

	newData := slot.Tx.Data
	if field.IsZero(newData) {
		newData = slot.File.Data
	}
	newFile := state.File{ExpirationTime: newExpiration, Owner: slot.AccountSender.Key, Data: newData}

	afterAcc, err := slot.ProofSender.Update(slot.AccountSender.Hash(), newSender.Hash(), accRoot)
	if err != nil {
		return nil, nil, reject("file sender proof update failed")
	}
	afterData, err := slot.ProofFile.Update(slot.File.Hash(), newFile.Hash(), dataRoot)
	if err != nil {
		return nil, nil, reject("file proof update failed")
	}
	return afterAcc, afterData, nil
}
