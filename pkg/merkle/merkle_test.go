package merkle_test

import (
	"math/big"
	"testing"

	"github.com/MuriData/rollup-verifier/pkg/merkle"
	"github.com/MuriData/rollup-verifier/pkg/poseidon2hash"
)

// buildDepth3Proof constructs a depth-3 proof for leafIndex within an
// 8-leaf tree of the given leaves, returning the proof and the true root.
func buildDepth3Proof(t *testing.T, leaves []*big.Int, leafIndex int) (*merkle.Proof, *big.Int) {
	t.Helper()
	if len(leaves) != 8 {
		t.Fatalf("expected 8 leaves, got %d", len(leaves))
	}

	level0 := leaves
	level1 := make([]*big.Int, 4)
	for i := 0; i < 4; i++ {
		level1[i] = poseidon2hash.Compress2(level0[2*i], level0[2*i+1])
	}
	level2 := make([]*big.Int, 2)
	for i := 0; i < 2; i++ {
		level2[i] = poseidon2hash.Compress2(level1[2*i], level1[2*i+1])
	}
	root := poseidon2hash.Compress2(level2[0], level2[1])

	idx := leafIndex
	bits := make([]bool, 3)
	path := make([]*big.Int, 3)

	bits[0] = idx%2 == 1
	if bits[0] {
		path[0] = level0[idx-1]
	} else {
		path[0] = level0[idx+1]
	}
	idx /= 2

	bits[1] = idx%2 == 1
	if bits[1] {
		path[1] = level1[idx-1]
	} else {
		path[1] = level1[idx+1]
	}
	idx /= 2

	bits[2] = idx%2 == 1
	if bits[2] {
		path[2] = level2[idx-1]
	} else {
		path[2] = level2[idx+1]
	}

	return &merkle.Proof{IndexBits: bits, HashPath: path}, root
}

func TestRootMatchesManuallyComputedTree(t *testing.T) {
	leaves := make([]*big.Int, 8)
	for i := range leaves {
		leaves[i] = big.NewInt(int64(i + 1))
	}
	proof, wantRoot := buildDepth3Proof(t, leaves, 5)

	gotRoot, err := proof.Root(leaves[5])
	if err != nil {
		t.Fatalf("Root: %v", err)
	}
	if gotRoot.Cmp(wantRoot) != 0 {
		t.Fatalf("Root() = %s, want %s", gotRoot, wantRoot)
	}
}

func TestUpdateRoundTrip(t *testing.T) {
	leaves := make([]*big.Int, 8)
	for i := range leaves {
		leaves[i] = big.NewInt(int64(i * 11))
	}
	proof, root := buildDepth3Proof(t, leaves, 2)

	newLeaf := big.NewInt(999)
	gotNewRoot, err := proof.Update(leaves[2], newLeaf, root)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	wantNewRoot, err := proof.Root(newLeaf)
	if err != nil {
		t.Fatalf("Root: %v", err)
	}
	if gotNewRoot.Cmp(wantNewRoot) != 0 {
		t.Fatalf("Update() = %s, want root(new_leaf) = %s", gotNewRoot, wantNewRoot)
	}
}

func TestUpdateRejectsWrongOldRoot(t *testing.T) {
	leaves := make([]*big.Int, 8)
	for i := range leaves {
		leaves[i] = big.NewInt(int64(i))
	}
	proof, _ := buildDepth3Proof(t, leaves, 0)

	_, err := proof.Update(leaves[0], big.NewInt(42), big.NewInt(1))
	if err != merkle.ErrRootMismatch {
		t.Fatalf("Update error = %v, want ErrRootMismatch", err)
	}
}

func TestIndexReconstruction(t *testing.T) {
	leaves := make([]*big.Int, 8)
	for i := range leaves {
		leaves[i] = big.NewInt(int64(i))
	}
	proof, _ := buildDepth3Proof(t, leaves, 5)
	if got := proof.Index(); got != 5 {
		t.Fatalf("Index() = %d, want 5", got)
	}
}
