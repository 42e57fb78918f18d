// Package state holds the record types shared by every rule (transfer,
// file, mining) and by the Merkle trees that commit them: Account, File,
// Root and RandomOracle (§3). It is a leaf package precisely because the
// transfer, file and mining rules all need the same record shapes — giving
// them their own shared module avoids a cyclic import between the three
// rule packages.
package state

import (
	"math/big"

	"github.com/MuriData/rollup-verifier/pkg/field"
	"github.com/MuriData/rollup-verifier/pkg/poseidon2hash"
	"github.com/MuriData/rollup-verifier/rollup/params"
)

// Account is a leaf of the account tree: {key, balance, nonce, random_oracle_nonce}.
// key == 0 marks an uninitialized slot (the zero account, whose hash is the
// hash of all-zero fields).
type Account struct {
	Key               *big.Int
	Balance           *big.Int
	Nonce             *big.Int
	RandomOracleNonce *big.Int
}

// ZeroAccount returns the empty-slot account (all fields zero).
func ZeroAccount() Account {
	return Account{Key: field.Zero(), Balance: field.Zero(), Nonce: field.Zero(), RandomOracleNonce: field.Zero()}
}

// IsZero reports whether this is an uninitialized slot.
func (a Account) IsZero() bool {
	return field.IsZero(a.Key)
}

// Hash returns Poseidon2([key, balance, nonce, random_oracle_nonce]).
func (a Account) Hash() *big.Int {
	return poseidon2hash.HashN([]*big.Int{a.Key, a.Balance, a.Nonce, a.RandomOracleNonce})
}

// File is a leaf of the data tree: {expiration_time, owner, data}. owner
// == 0 marks an erased/empty slot. data is the root of a separate,
// unmaterialized per-file content tree of depth K.
type File struct {
	ExpirationTime *big.Int
	Owner          *big.Int
	Data           *big.Int
}

// ZeroFile returns the empty-slot file (all fields zero).
func ZeroFile() File {
	return File{ExpirationTime: field.Zero(), Owner: field.Zero(), Data: field.Zero()}
}

// IsEmpty reports whether this slot is erased/unowned.
func (f File) IsEmpty() bool {
	return field.IsZero(f.Owner)
}

// Hash returns Poseidon2([expiration_time, owner, data]).
func (f File) Hash() *big.Int {
	return poseidon2hash.HashN([]*big.Int{f.ExpirationTime, f.Owner, f.Data})
}

// IsWriteable implements §4.F's writeability predicate: a file can be
// (re)written by sender if it has already expired, is unowned, or is
// already owned by sender.
func (f File) IsWriteable(now *big.Int, sender *big.Int) bool {
	expired := field.Lt(f.ExpirationTime, now)
	unowned := field.IsZero(f.Owner)
	ownedBySender := field.Equal(f.Owner, sender)
	return expired || unowned || ownedBySender
}

// Root is the pair {acc, data} committing the account and data trees.
type Root struct {
	Acc  *big.Int
	Data *big.Int
}

// Hash returns Poseidon2([acc, data]).
func (r Root) Hash() *big.Int {
	return poseidon2hash.Compress2(r.Acc, r.Data)
}

// RandomOracleSize re-exports the fixed window size S (§6) from rollup/params.
const RandomOracleSize = params.RandomOracleSize

// RandomOracle is a contiguous window of RandomOracleSize valid oracle
// values, whose nonces are offset, offset+1, ..., offset+S-1.
type RandomOracle struct {
	Offset *big.Int
	Data   [RandomOracleSize]*big.Int
}

// NoMatch is the sentinel nonce (r-1, i.e. -1 in the field) GetNonce
// returns when no entry in the window equals v.
func NoMatch() *big.Int {
	return field.Neg(field.One())
}

// GetNonce returns the unique offset+i with Data[i] == v, scanning every
// entry (so that, per §9, in the dishonest-multiple-match case the last
// match wins), or NoMatch() if none match.
func (o RandomOracle) GetNonce(v *big.Int) *big.Int {
	result := NoMatch()
	for i := 0; i < RandomOracleSize; i++ {
		if field.Equal(o.Data[i], v) {
			result = field.Add(o.Offset, big.NewInt(int64(i)))
		}
	}
	return result
}
