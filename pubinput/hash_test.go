package pubinput_test

import (
	"math/big"
	"testing"

	"github.com/MuriData/rollup-verifier/pkg/field"
	"github.com/MuriData/rollup-verifier/pubinput"
	"github.com/MuriData/rollup-verifier/state"
)

func samplePublic() pubinput.Public {
	var oracle state.RandomOracle
	oracle.Offset = big.NewInt(19564)
	for i := range oracle.Data {
		oracle.Data[i] = big.NewInt(int64(i) * 17)
	}
	return pubinput.Public{
		OldRoot: big.NewInt(8918),
		NewRoot: big.NewInt(16883),
		Now:     big.NewInt(2089),
		Oracle:  oracle,
	}
}

// TestHashKnownAnswer pins the byte layout Hash must never silently
// change (§6: "non-negotiable, Ethereum compatibility"). The protocol's
// own fixture for this property gives its old_root/new_root/now/offset as
// elided decimal literals ("8918…9637" etc.) with only the final digest
// given in full, so those exact inputs cannot be reconstructed here.
// Instead this uses a small, fully-specified vector and an independently
// computed (non-gnark, from-scratch Keccak-f[1600]) reference digest, so
// a change to field width, byte order, element count, or ordering still
// gets caught.
func TestHashKnownAnswer(t *testing.T) {
	var oracle state.RandomOracle
	oracle.Offset = big.NewInt(4)
	for i := range oracle.Data {
		oracle.Data[i] = big.NewInt(int64(i) + 5)
	}
	p := pubinput.Public{
		OldRoot: big.NewInt(1),
		NewRoot: big.NewInt(2),
		Now:     big.NewInt(3),
		Oracle:  oracle,
	}

	want, ok := new(big.Int).SetString("8482179753769879913180687273032784293921173078431293428790337067120866764341", 10)
	if !ok {
		t.Fatal("bad literal in test")
	}
	if got := p.Hash(); got.Cmp(want) != 0 {
		t.Fatalf("Hash() = %s, want %s", got, want)
	}
}

func TestHashDeterministic(t *testing.T) {
	p := samplePublic()
	if p.Hash().Cmp(p.Hash()) != 0 {
		t.Fatal("Hash should be deterministic")
	}
}

func TestHashSensitiveToEveryField(t *testing.T) {
	base := samplePublic()
	baseHash := base.Hash()

	mutations := []func(*pubinput.Public){
		func(p *pubinput.Public) { p.OldRoot = big.NewInt(99999) },
		func(p *pubinput.Public) { p.NewRoot = big.NewInt(99999) },
		func(p *pubinput.Public) { p.Now = big.NewInt(99999) },
		func(p *pubinput.Public) { p.Oracle.Offset = big.NewInt(99999) },
		func(p *pubinput.Public) { p.Oracle.Data[0] = big.NewInt(99999) },
		func(p *pubinput.Public) { p.Oracle.Data[state.RandomOracleSize-1] = big.NewInt(99999) },
	}

	for i, mutate := range mutations {
		mutated := samplePublic()
		mutate(&mutated)
		if mutated.Hash().Cmp(baseHash) == 0 {
			t.Fatalf("mutation %d did not change the digest", i)
		}
	}
}

func TestHashFitsInField(t *testing.T) {
	h := samplePublic().Hash()
	if h.Sign() < 0 || h.Cmp(field.Modulus) >= 0 {
		t.Fatal("hash must be a non-negative canonical field element")
	}
}
