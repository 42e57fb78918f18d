// Command verify reads a JSON-encoded RollupInput witness plus a pub_hash
// and runs the top-level verifier against it, printing accept/reject.
package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"math/big"
	"os"
	"strings"

	"github.com/MuriData/rollup-verifier/block"
	"github.com/MuriData/rollup-verifier/pkg/babyjub"
	"github.com/MuriData/rollup-verifier/pkg/merkle"
	"github.com/MuriData/rollup-verifier/pubinput"
	"github.com/MuriData/rollup-verifier/rules"
	"github.com/MuriData/rollup-verifier/state"
	"github.com/MuriData/rollup-verifier/verifier"
)

// hexField encodes one BN254 scalar field element as a 0x-prefixed hex
// string of its canonical 32-byte big-endian form.
type hexField big.Int

func (h hexField) MarshalJSON() ([]byte, error) {
	buf := make([]byte, 32)
	(*big.Int)(&h).FillBytes(buf)
	return json.Marshal("0x" + hex.EncodeToString(buf))
}

func (h *hexField) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	s = strings.TrimPrefix(s, "0x")
	if s == "" {
		(*big.Int)(h).SetInt64(0)
		return nil
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("hexField: %w", err)
	}
	(*big.Int)(h).SetBytes(b)
	return nil
}

func (h hexField) big() *big.Int {
	return new(big.Int).Set((*big.Int)(&h))
}

// witnessFile is the on-disk JSON shape for a verification request.
type witnessFile struct {
	PubHash hexField `json:"pub_hash"`
	Public  struct {
		OldRoot hexField   `json:"old_root"`
		NewRoot hexField   `json:"new_root"`
		Now     hexField   `json:"now"`
		Oracle  oracleJSON `json:"oracle"`
	} `json:"public"`
	OldRootRec  rootJSON           `json:"old_root_record"`
	NewRootRec  rootJSON           `json:"new_root_record"`
	TransferBlk []transferSlotJSON `json:"transfer_block"`
	FileBlk     []fileSlotJSON     `json:"file_block"`
	MiningBlk   []miningSlotJSON   `json:"mining_block"`
}

type oracleJSON struct {
	Offset hexField   `json:"offset"`
	Data   []hexField `json:"data"`
}

type rootJSON struct {
	Acc  hexField `json:"acc"`
	Data hexField `json:"data"`
}

type proofJSON struct {
	IndexBits []bool     `json:"index_bits"`
	HashPath  []hexField `json:"hash_path"`
}

type accountJSON struct {
	Key               hexField `json:"key"`
	Balance           hexField `json:"balance"`
	Nonce             hexField `json:"nonce"`
	RandomOracleNonce hexField `json:"random_oracle_nonce"`
}

type fileJSON struct {
	ExpirationTime hexField `json:"expiration_time"`
	Owner          hexField `json:"owner"`
	Data           hexField `json:"data"`
}

type signatureJSON struct {
	A  hexField `json:"a"`
	S  hexField `json:"s"`
	R8 hexField `json:"r8"`
}

type transferSlotJSON struct {
	SenderIndex     hexField      `json:"sender_index"`
	ReceiverIndex   hexField      `json:"receiver_index"`
	ReceiverKey     hexField      `json:"receiver_key"`
	Amount          hexField      `json:"amount"`
	Nonce           hexField      `json:"nonce"`
	ProofSender     proofJSON     `json:"proof_sender"`
	ProofReceiver   proofJSON     `json:"proof_receiver"`
	AccountSender   accountJSON   `json:"account_sender"`
	AccountReceiver accountJSON   `json:"account_receiver"`
	Signature       signatureJSON `json:"signature"`
}

type fileSlotJSON struct {
	SenderIndex   hexField      `json:"sender_index"`
	DataIndex     hexField      `json:"data_index"`
	TimeInterval  hexField      `json:"time_interval"`
	Data          hexField      `json:"data"`
	Nonce         hexField      `json:"nonce"`
	ProofSender   proofJSON     `json:"proof_sender"`
	ProofFile     proofJSON     `json:"proof_file"`
	AccountSender accountJSON   `json:"account_sender"`
	File          fileJSON      `json:"file"`
	Signature     signatureJSON `json:"signature"`
}

type miningSlotJSON struct {
	SenderIndex       hexField      `json:"sender_index"`
	Nonce             hexField      `json:"nonce"`
	RandomOracleNonce hexField      `json:"random_oracle_nonce"`
	MiningNonce       hexField      `json:"mining_nonce"`
	ProofSender       proofJSON     `json:"proof_sender"`
	AccountSender     accountJSON   `json:"account_sender"`
	RandomOracleValue hexField      `json:"random_oracle_value"`
	ProofFile         proofJSON     `json:"proof_file"`
	File              fileJSON      `json:"file"`
	ProofDataInFile   proofJSON     `json:"proof_data_in_file"`
	DataInFile        hexField      `json:"data_in_file"`
	Signature         signatureJSON `json:"signature"`
}

func toProof(p proofJSON) *merkle.Proof {
	path := make([]*big.Int, len(p.HashPath))
	for i, h := range p.HashPath {
		path[i] = h.big()
	}
	return &merkle.Proof{IndexBits: p.IndexBits, HashPath: path}
}

func toAccount(a accountJSON) state.Account {
	return state.Account{
		Key:               a.Key.big(),
		Balance:           a.Balance.big(),
		Nonce:             a.Nonce.big(),
		RandomOracleNonce: a.RandomOracleNonce.big(),
	}
}

func toFile(f fileJSON) state.File {
	return state.File{ExpirationTime: f.ExpirationTime.big(), Owner: f.Owner.big(), Data: f.Data.big()}
}

func toSignature(sig signatureJSON) babyjub.SignaturePacked {
	return babyjub.SignaturePacked{A: sig.A.big(), S: sig.S.big(), R8: sig.R8.big()}
}

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: verify <witness.json>")
		os.Exit(1)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatalf("reading witness file: %v", err)
	}

	var wf witnessFile
	if err := json.Unmarshal(data, &wf); err != nil {
		log.Fatalf("parsing witness file: %v", err)
	}

	input := buildRollupInput(wf)
	accepted, err := verifier.Verify(wf.PubHash.big(), input)
	if err != nil {
		fmt.Printf("reject: %v\n", err)
		os.Exit(1)
	}
	if !accepted {
		fmt.Println("reject")
		os.Exit(1)
	}
	fmt.Println("accept")
}

func buildRollupInput(wf witnessFile) verifier.RollupInput {
	var oracle state.RandomOracle
	oracle.Offset = wf.Public.Oracle.Offset.big()
	for i := range oracle.Data {
		oracle.Data[i] = big.NewInt(0)
	}
	for i := 0; i < state.RandomOracleSize && i < len(wf.Public.Oracle.Data); i++ {
		oracle.Data[i] = wf.Public.Oracle.Data[i].big()
	}

	public := pubinput.Public{
		OldRoot: wf.Public.OldRoot.big(),
		NewRoot: wf.Public.NewRoot.big(),
		Now:     wf.Public.Now.big(),
		Oracle:  oracle,
	}

	oldRoot := state.Root{Acc: wf.OldRootRec.Acc.big(), Data: wf.OldRootRec.Data.big()}
	newRoot := state.Root{Acc: wf.NewRootRec.Acc.big(), Data: wf.NewRootRec.Data.big()}

	var transferBlk block.TransferBlock
	for i := 0; i < block.MaxTxPerBlock && i < len(wf.TransferBlk); i++ {
		s := wf.TransferBlk[i]
		transferBlk[i] = rules.TransferSlot{
			Tx: rules.TransferTx{
				SenderIndex: s.SenderIndex.big(), ReceiverIndex: s.ReceiverIndex.big(),
				ReceiverKey: s.ReceiverKey.big(), Amount: s.Amount.big(), Nonce: s.Nonce.big(),
			},
			ProofSender:     toProof(s.ProofSender),
			ProofReceiver:   toProof(s.ProofReceiver),
			AccountSender:   toAccount(s.AccountSender),
			AccountReceiver: toAccount(s.AccountReceiver),
			Signature:       toSignature(s.Signature),
		}
	}

	var fileBlk block.FileBlock
	for i := 0; i < block.MaxFilePerBlock && i < len(wf.FileBlk); i++ {
		s := wf.FileBlk[i]
		fileBlk[i] = rules.FileSlot{
			Tx: rules.FileTx{
				SenderIndex: s.SenderIndex.big(), DataIndex: s.DataIndex.big(),
				TimeInterval: s.TimeInterval.big(), Data: s.Data.big(), Nonce: s.Nonce.big(),
			},
			ProofSender:   toProof(s.ProofSender),
			ProofFile:     toProof(s.ProofFile),
			AccountSender: toAccount(s.AccountSender),
			File:          toFile(s.File),
			Signature:     toSignature(s.Signature),
		}
	}

	var miningBlk block.MiningBlock
	for i := 0; i < block.MaxMiningPerBlock && i < len(wf.MiningBlk); i++ {
		s := wf.MiningBlk[i]
		miningBlk[i] = rules.MiningSlot{
			Tx: rules.MiningTx{
				SenderIndex:       s.SenderIndex.big(),
				Nonce:             s.Nonce.big(),
				RandomOracleNonce: s.RandomOracleNonce.big(),
				MiningNonce:       s.MiningNonce.big(),
			},
			ProofSender:       toProof(s.ProofSender),
			AccountSender:     toAccount(s.AccountSender),
			RandomOracleValue: s.RandomOracleValue.big(),
			ProofFile:         toProof(s.ProofFile),
			File:              toFile(s.File),
			ProofDataInFile:   toProof(s.ProofDataInFile),
			DataInFile:        s.DataInFile.big(),
			Signature:         toSignature(s.Signature),
		}
	}

	return verifier.RollupInput{
		Public: public, OldRootRec: oldRoot, NewRootRec: newRoot,
		TransferBlk: transferBlk, FileBlk: fileBlk, MiningBlk: miningBlk,
	}
}
