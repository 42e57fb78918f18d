// Package testutil builds small sparse Merkle trees of field-element
// leaves for use in property tests across the rules and block packages
// (§8 items 4, 6, 9, 10, 11 all need a handcrafted depth-2/3 tree to
// extract a merkle.Proof from).
//
// This is an adaptation of this repository's original full-file
// sparse-Merkle-tree builder: the chunk-hashing and disk persistence it
// used for storage proofs are gone (this predicate never materializes or
// persists a tree — see §9 "no live-tree node"), but the bottom-up,
// zero-hash-padded construction is the same shape, now over arbitrary
// field-element leaves instead of file chunks.
package testutil

import (
	"math/big"

	"github.com/MuriData/rollup-verifier/pkg/merkle"
	"github.com/MuriData/rollup-verifier/pkg/poseidon2hash"
)

// SparseTree is a fixed-depth, zero-padded Merkle tree held entirely in
// memory, built once per test from a small set of real leaves.
type SparseTree struct {
	Depth      int
	Levels     []map[int]*big.Int
	ZeroHashes []*big.Int
}

// PrecomputeZeroHashes builds the zero-subtree hash chain:
//
//	zeroHashes[0] = zeroLeaf
//	zeroHashes[i] = Compress2(zeroHashes[i-1], zeroHashes[i-1])
func PrecomputeZeroHashes(depth int, zeroLeaf *big.Int) []*big.Int {
	zh := make([]*big.Int, depth+1)
	zh[0] = new(big.Int).Set(zeroLeaf)
	for i := 1; i <= depth; i++ {
		zh[i] = poseidon2hash.Compress2(zh[i-1], zh[i-1])
	}
	return zh
}

// NewSparseTree builds a depth-deep tree from the given (index -> leaf
// hash) assignments; every other position uses the zero-subtree hash
// chain rooted at zeroLeaf.
func NewSparseTree(depth int, leaves map[int]*big.Int, zeroLeaf *big.Int) *SparseTree {
	zeroHashes := PrecomputeZeroHashes(depth, zeroLeaf)

	levels := make([]map[int]*big.Int, depth+1)
	for i := range levels {
		levels[i] = make(map[int]*big.Int)
	}
	for idx, h := range leaves {
		levels[0][idx] = h
	}

	for lvl := 0; lvl < depth; lvl++ {
		parents := make(map[int]bool)
		for idx := range levels[lvl] {
			parents[idx/2] = true
		}
		for parentIdx := range parents {
			leftIdx, rightIdx := parentIdx*2, parentIdx*2+1
			left, ok := levels[lvl][leftIdx]
			if !ok {
				left = zeroHashes[lvl]
			}
			right, ok := levels[lvl][rightIdx]
			if !ok {
				right = zeroHashes[lvl]
			}
			levels[lvl+1][parentIdx] = poseidon2hash.Compress2(left, right)
		}
	}

	return &SparseTree{Depth: depth, Levels: levels, ZeroHashes: zeroHashes}
}

// Root returns the tree's root hash.
func (t *SparseTree) Root() *big.Int {
	if r, ok := t.Levels[t.Depth][0]; ok {
		return r
	}
	return t.ZeroHashes[t.Depth]
}

// LeafHash returns the hash at leafIndex, or the zero-leaf hash if unset.
func (t *SparseTree) LeafHash(leafIndex int) *big.Int {
	if h, ok := t.Levels[0][leafIndex]; ok {
		return h
	}
	return t.ZeroHashes[0]
}

// Proof extracts a merkle.Proof for leafIndex: IndexBits[0] is the
// least-significant bit, i.e. the sibling closest to the leaf.
func (t *SparseTree) Proof(leafIndex int) *merkle.Proof {
	bits := make([]bool, t.Depth)
	path := make([]*big.Int, t.Depth)

	idx := leafIndex
	for lvl := 0; lvl < t.Depth; lvl++ {
		var siblingIdx int
		if idx%2 == 0 {
			siblingIdx = idx + 1
			bits[lvl] = false
		} else {
			siblingIdx = idx - 1
			bits[lvl] = true
		}
		sib, ok := t.Levels[lvl][siblingIdx]
		if !ok {
			sib = t.ZeroHashes[lvl]
		}
		path[lvl] = sib
		idx /= 2
	}

	return &merkle.Proof{IndexBits: bits, HashPath: path}
}
