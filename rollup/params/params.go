// Package params holds the protocol's fixed parameters (§6), mirroring
// the teacher's config package (config/constants.go,
// circuits/poi/config.go, circuits/fsp/config.go): exported Go constants,
// not a parsed configuration file. These are part of the protocol itself —
// changing any of them is a hard fork, not a runtime option.
package params

import "math/big"

// Tree depths and block capacities.
const (
	AccountTreeDepth  = 10
	FileTreeDepth     = 10
	RandomOracleSize  = 16
	MaxTxPerBlock     = 8
	MaxFilePerBlock   = 8
	MaxMiningPerBlock = 1
)

// Price is the per-unit-time-interval storage fee (PRICE = 1).
var Price = big.NewInt(1)

// MiningReward is the fixed reward credited to a successful miner.
var MiningReward = big.NewInt(1024)

// MaxMiningNonceBits is the bit width of the brute-force search space (2^20), enforced
// implicitly via trim width rather than an explicit range check.
const MaxMiningNonceBits = 20

// RevDifficulty is 2^(254-10) = 2^244: a mined chunk's difficulty hash
// must fall strictly below this bound.
var RevDifficulty = new(big.Int).Lsh(big.NewInt(1), 244)
