package zkengine

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"idproof/src/circuits"

	"github.com/consensys/gnark/backend/groth16"
	"github.com/near/borsh-go"
)

type proofEnvelope struct {
	CircuitType string `borsh:"circuit_type"`
	Proof       []byte `borsh:"proof"`
}

// EncodeProofBlob wraps a proof into the opaque base64 blob clients submit.
func EncodeProofBlob(circuitType circuits.CircuitType, proof groth16.Proof) (string, error) {
	var proofBuf bytes.Buffer
	if _, err := proof.WriteTo(&proofBuf); err != nil {
		return "", fmt.Errorf("serialize proof: %w", err)
	}

	raw, err := borsh.Serialize(proofEnvelope{
		CircuitType: string(circuitType),
		Proof:       proofBuf.Bytes(),
	})
	if err != nil {
		return "", fmt.Errorf("borsh serialize: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// DecodeProofBlob unwraps a submitted blob and checks it carries a proof for
// the expected circuit.
func DecodeProofBlob(blob string, expected circuits.CircuitType) (groth16.Proof, error) {
	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return nil, fmt.Errorf("decode blob: %w", err)
	}

	var envelope proofEnvelope
	if err := borsh.Deserialize(&envelope, raw); err != nil {
		return nil, fmt.Errorf("borsh deserialize: %w", err)
	}
	if envelope.CircuitType != string(expected) {
		return nil, fmt.Errorf("blob carries circuit %q, expected %q", envelope.CircuitType, expected)
	}

	proof := groth16.NewProof(circuits.EllipticCurveID)
	if _, err := proof.ReadFrom(bytes.NewReader(envelope.Proof)); err != nil {
		return nil, fmt.Errorf("read proof: %w", err)
	}
	return proof, nil
}
