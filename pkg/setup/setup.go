// Package setup compiles gnark circuits into constraint systems. The
// verifier itself never touches a circuit (it recomputes the state
// transition directly over field elements), but circuitref/smtcircuit keeps
// a reference Merkle-proof gadget alive, and this is the one piece of the
// original compile/ceremony tooling that gadget's test needs.
package setup

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
)

// CompileCircuit compiles a gnark circuit into an R1CS constraint system
// over the BN254 scalar field.
func CompileCircuit(circuit frontend.Circuit) (constraint.ConstraintSystem, error) {
	ccs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, circuit)
	if err != nil {
		return nil, fmt.Errorf("compile circuit: %w", err)
	}
	return ccs, nil
}
