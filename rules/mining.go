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

// MiningReward and RevDifficulty re-export the protocol constants from
// rollup/params (§6/§4.G) for convenient access from this package.
var (
	MiningReward  = params.MiningReward
	RevDifficulty = params.RevDifficulty
)

// MiningTx is the witnessed mining transaction body (§4.G).
type MiningTx struct {
	SenderIndex       *big.Int
	Nonce             *big.Int
	RandomOracleNonce *big.Int
	MiningNonce       *big.Int
}

// Hash returns Poseidon2([sender_index, nonce, random_oracle_nonce, mining_nonce]).
func (tx MiningTx) Hash() *big.Int {
	return poseidon2hash.HashN([]*big.Int{tx.SenderIndex, tx.Nonce, tx.RandomOracleNonce, tx.MiningNonce})
}

// MiningSlot is the single M_mine slot in a mining block.
type MiningSlot struct {
	Tx                MiningTx
	ProofSender       *merkle.Proof
	AccountSender     state.Account
	RandomOracleValue *big.Int
	RandomOracle      state.RandomOracle
	ProofFile         *merkle.Proof
	File              state.File
	ProofDataInFile   *merkle.Proof
	DataInFile        *big.Int
	Signature         babyjub.SignaturePacked
}

// ApplyMining checks slot against (accRoot, dataRoot) and, if it is
// non-blank and valid, returns the updated account root. A blank slot
// returns accRoot unchanged; an invalid slot returns an error wrapping
// ErrRejected.
//
// The reference implementation this protocol was distilled from returns
// the pre-update root for a non-blank slot and the post-update root for a
// blank one — backwards from what every other rule does. This
// implementation returns the corrected semantics recommended by the spec:
// new_acc_root when the slot is applied, acc_root unchanged when blank.
func ApplyMining(slot MiningSlot, accRoot, dataRoot *big.Int) (*big.Int, error) {
	if slot.Signature.IsBlank() {
		return accRoot, nil
	}

	ok, err := slot.Signature.Verify(slot.Tx.Hash())
	if err != nil {
		return nil, reject("mining signature decompression failed")
	}
	if !ok {
		return nil, reject("mining signature invalid")
	}
	newBalance := field.Add(slot.AccountSender.Balance, MiningReward)
	if field.Lt(newBalance, slot.AccountSender.Balance) {
		return nil, reject("mining reward wraps sender balance")
	}
	if !field.Equal(slot.AccountSender.Key, slot.Signature.A) {
		return nil, reject("mining sender key does not match signature")
	}
	if slot.Tx.SenderIndex.Cmp(new(big.Int).SetUint64(slot.ProofSender.Index())) != 0 {
		return nil, reject("mining sender index/proof mismatch")
	}
	if !field.Equal(slot.AccountSender.Nonce, slot.Tx.Nonce) {
		return nil, reject("mining nonce mismatch")
	}
	if !field.Equal(slot.RandomOracle.GetNonce(slot.RandomOracleValue), slot.Tx.RandomOracleNonce) {
		return nil, reject("mining oracle value/nonce mismatch")
	}
	if !field.Lt(slot.AccountSender.RandomOracleNonce, slot.Tx.RandomOracleNonce) {
		return nil, reject("mining oracle nonce not strictly increasing")
	}
	fileRoot, err := slot.ProofFile.Root(slot.File.Hash())
	if err != nil {
		return nil, reject("mining file proof malformed")
	}
	if fileRoot.Cmp(dataRoot) != 0 {
		return nil, reject("mining file is not in the data tree")
	}
	chunkRoot, err := slot.ProofDataInFile.Root(slot.DataInFile)
	if err != nil {
		return nil, reject("mining chunk proof malformed")
	}
	if chunkRoot.Cmp(slot.File.Data) != 0 {
		return nil, reject("mining chunk is not inside the opened file")
	}

	bruteforceHash := poseidon2hash.HashN([]*big.Int{slot.Signature.A, slot.RandomOracleValue, slot.Tx.MiningNonce})
	indexHash := poseidon2hash.HashN([]*big.Int{bruteforceHash})

	k := new(big.Int).Lsh(big.NewInt(1), params.FileTreeDepth)
	index := new(big.Int).Add(
		new(big.Int).SetUint64(slot.ProofDataInFile.Index()),
		new(big.Int).Mul(k, new(big.Int).SetUint64(slot.ProofFile.Index())),
	)
	if !field.Equal(index, field.Trim(indexHash, params.AccountTreeDepth+params.FileTreeDepth)) {
		return nil, reject("mining PoW index does not match opened proofs")
	}
	difficultyHash := poseidon2hash.HashN([]*big.Int{bruteforceHash, slot.DataInFile})
	if !field.Lt(difficultyHash, RevDifficulty) {
		return nil, reject("mining difficulty target not met")
	}

	newSender := slot.AccountSender
	newSender.Balance = newBalance
	newSender.Nonce = field.Add(slot.Tx.Nonce, field.One())
	newSender.RandomOracleNonce = slot.Tx.RandomOracleNonce

	newAccRoot, err := slot.ProofSender.Update(slot.AccountSender.Hash(), newSender.Hash(), accRoot)
	if err != nil {
		return nil, reject("mining sender proof update failed")
	}
	return newAccRoot, nil
}
