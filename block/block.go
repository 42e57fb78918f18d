// Package block implements the top-level block driver (component H):
// applying a block's fixed-capacity transfer, file and mining slot arrays
// in order, threading the account and data roots through each.
package block

import (
	"math/big"

	"github.com/MuriData/rollup-verifier/rollup/params"
	"github.com/MuriData/rollup-verifier/rules"
)

// Capacities for the three sub-blocks, re-exported from rollup/params (§6).
const (
	MaxTxPerBlock     = params.MaxTxPerBlock
	MaxFilePerBlock   = params.MaxFilePerBlock
	MaxMiningPerBlock = params.MaxMiningPerBlock
)

// TransferBlock is the fixed-capacity array of transfer slots.
type TransferBlock [MaxTxPerBlock]rules.TransferSlot

// FileBlock is the fixed-capacity array of file slots.
type FileBlock [MaxFilePerBlock]rules.FileSlot

// MiningBlock is the fixed-capacity array of mining slots (capacity 1, but
// kept as a slice-friendly array to mirror the other two blocks).
type MiningBlock [MaxMiningPerBlock]rules.MiningSlot

// Apply applies transferBlock, then fileBlock, then miningBlock, in index
// order within each, threading (accRoot, dataRoot) per §4.H:
//
//	acc  <- transferBlock.apply(old.acc)
//	(acc, data) <- fileBlock.apply(acc, old.data, now)
//	acc  <- miningBlock.apply(acc, data, oracle)
//
// The oracle a mining slot is checked against is the one carried in its
// MiningSlot.RandomOracle field; verifier.Verify sets that field to the
// public oracle before calling Apply.
//
// Any slot rejection aborts the whole block: Apply returns the error from
// the first failing slot and no roots.
func Apply(transferBlock TransferBlock, fileBlock FileBlock, miningBlock MiningBlock, accRoot, dataRoot, now *big.Int) (*big.Int, *big.Int, error) {
	acc := accRoot

	for i := range transferBlock {
		next, err := rules.ApplyTransfer(transferBlock[i], acc)
		if err != nil {
			return nil, nil, err
		}
		acc = next
	}

	data := dataRoot
	for i := range fileBlock {
		nextAcc, nextData, err := rules.ApplyFile(fileBlock[i], acc, data, now)
		if err != nil {
			return nil, nil, err
		}
		acc, data = nextAcc, nextData
	}

	for i := range miningBlock {
		next, err := rules.ApplyMining(miningBlock[i], acc, data)
		if err != nil {
			return nil, nil, err
		}
		acc = next
	}

	return acc, data, nil
}
