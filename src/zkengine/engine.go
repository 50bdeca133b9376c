package zkengine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"idproof/src/circuits"

	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/frontend"
)

// ErrArtifactsUnavailable marks a proving or verification attempt that failed
// because the circuit artifacts could not be produced. Distinct from an
// invalid proof: callers must fail closed, never treat it as "not verified".
var ErrArtifactsUnavailable = errors.New("circuit artifacts unavailable")

// ProofResult is the client-side output of one proving run.
type ProofResult struct {
	CircuitType      circuits.CircuitType
	Blob             string
	PublicSignals    []string
	GenerationTimeMs int64
}

type Prover interface {
	Prove(ctx context.Context, circuitType circuits.CircuitType, assignment frontend.Circuit) (*ProofResult, error)
}

type Verifier interface {
	Verify(ctx context.Context, circuitType circuits.CircuitType, blob string, publicSignals []string) error
}

// GnarkEngine proves and verifies with Groth16 over BN254.
type GnarkEngine struct {
	Artifacts *ArtifactManager
}

func NewGnarkEngine(artifacts *ArtifactManager) *GnarkEngine {
	return &GnarkEngine{Artifacts: artifacts}
}

func (e *GnarkEngine) Prove(ctx context.Context, circuitType circuits.CircuitType, assignment frontend.Circuit) (*ProofResult, error) {
	artifacts, err := e.Artifacts.Get(circuitType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArtifactsUnavailable, err)
	}

	fullWitness, err := frontend.NewWitness(assignment, circuits.EllipticCurveID.ScalarField())
	if err != nil {
		return nil, fmt.Errorf("new witness: %w", err)
	}
	publicSignals, err := PublicSignalsFromWitness(fullWitness)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	type proveResult struct {
		proof groth16.Proof
		err   error
	}
	done := make(chan proveResult, 1)
	go func() {
		proof, err := groth16.Prove(artifacts.ConstraintSystem, artifacts.ProvingKey, fullWitness)
		done <- proveResult{proof: proof, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case result := <-done:
		if result.err != nil {
			return nil, fmt.Errorf("groth16 prove: %w", result.err)
		}
		blob, err := EncodeProofBlob(circuitType, result.proof)
		if err != nil {
			return nil, err
		}
		return &ProofResult{
			CircuitType:      circuitType,
			Blob:             blob,
			PublicSignals:    publicSignals,
			GenerationTimeMs: time.Since(started).Milliseconds(),
		}, nil
	}
}

func (e *GnarkEngine) Verify(ctx context.Context, circuitType circuits.CircuitType, blob string, publicSignals []string) error {
	artifacts, err := e.Artifacts.Get(circuitType)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrArtifactsUnavailable, err)
	}

	proof, err := DecodeProofBlob(blob, circuitType)
	if err != nil {
		return err
	}
	publicWitness, err := WitnessFromSignals(publicSignals)
	if err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		done <- groth16.Verify(proof, artifacts.VerifyingKey, publicWitness)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return fmt.Errorf("groth16 verify: %w", err)
		}
		return nil
	}
}
