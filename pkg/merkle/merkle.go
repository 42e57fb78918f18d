// Package merkle implements the fixed-depth Merkle proof verification and
// update used by the account and file trees (component D of the verifier).
//
// Unlike a live tree node, this package never materializes a tree: every
// operation takes a witnessed path (index bits + sibling hashes) and folds
// it with Poseidon2, matching the account/file tree shapes in §6 (depth 10)
// and the generic depth-N proof in §3. Building whole trees for tests lives
// in internal/testutil, which adapts this package's predecessor's
// sparse-tree builder.
package merkle

import (
	"errors"
	"math/big"

	"github.com/MuriData/rollup-verifier/pkg/poseidon2hash"
)

// ErrDepthMismatch is returned when IndexBits and HashPath have different
// lengths. A Proof's depth is not compared with any configured tree depth.
var ErrDepthMismatch = errors.New("merkle: index_bits and hash_path length mismatch")

// ErrRootMismatch is returned by Update when the witnessed old_leaf does
// not fold to old_root along this proof's path.
var ErrRootMismatch = errors.New("merkle: old_leaf does not fold to the supplied old_root")

// Proof is a depth-N Merkle authentication path, per §3: IndexBits[0] is
// the least-significant bit, i.e. the sibling closest to the leaf.
type Proof struct {
	IndexBits []bool
	HashPath  []*big.Int
}

// Depth returns the proof's depth (len(IndexBits)).
func (p *Proof) Depth() int {
	return len(p.IndexBits)
}

// valid reports whether IndexBits and HashPath have matching length (a
// zero-length proof is accepted and folds to the leaf itself).
func (p *Proof) valid() bool {
	return len(p.IndexBits) == len(p.HashPath)
}

// Root folds leaf up the path: at level i, if IndexBits[i] is false the
// current node is the left child (hash(current, sibling)); if true it is
// the right child (hash(sibling, current)).
func (p *Proof) Root(leaf *big.Int) (*big.Int, error) {
	if !p.valid() {
		return nil, ErrDepthMismatch
	}
	current := leaf
	for i := 0; i < len(p.IndexBits); i++ {
		sibling := p.HashPath[i]
		if p.IndexBits[i] {
			current = poseidon2hash.Compress2(sibling, current)
		} else {
			current = poseidon2hash.Compress2(current, sibling)
		}
	}
	return current, nil
}

// Update verifies root(old_leaf) == old_root, then returns root(new_leaf)
// computed along the same path and index bits. The siblings are presumed
// unchanged — sound only under the honest-witness discipline documented in
// §4.D (no two slots in one block touch overlapping paths).
func (p *Proof) Update(oldLeaf, newLeaf, oldRoot *big.Int) (*big.Int, error) {
	gotOldRoot, err := p.Root(oldLeaf)
	if err != nil {
		return nil, err
	}
	if gotOldRoot.Cmp(oldRoot) != 0 {
		return nil, ErrRootMismatch
	}
	return p.Root(newLeaf)
}

// Index reconstructs the leaf's integer index from its bits (bit 0 is the
// least-significant bit of the index, matching IndexBits).
func (p *Proof) Index() uint64 {
	var idx uint64
	for i := len(p.IndexBits) - 1; i >= 0; i-- {
		idx <<= 1
		if p.IndexBits[i] {
			idx |= 1
		}
	}
	return idx
}
