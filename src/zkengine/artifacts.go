package zkengine

import (
	"fmt"
	"sync"

	"idproof/src/circuits"

	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
)

// Artifacts holds the compiled constraint system and Groth16 keys of one
// circuit.
type Artifacts struct {
	ConstraintSystem constraint.ConstraintSystem
	ProvingKey       groth16.ProvingKey
	VerifyingKey     groth16.VerifyingKey
}

type artifactEntry struct {
	once      sync.Once
	artifacts *Artifacts
	err       error
}

// ArtifactManager compiles and caches circuit artifacts, once per circuit
// type. A failed compilation stays failed; callers must treat that as an
// unavailable prover, not as proof invalidity.
type ArtifactManager struct {
	mu      sync.Mutex
	entries map[circuits.CircuitType]*artifactEntry
}

func NewArtifactManager() *ArtifactManager {
	return &ArtifactManager{entries: make(map[circuits.CircuitType]*artifactEntry)}
}

func (m *ArtifactManager) Get(circuitType circuits.CircuitType) (*Artifacts, error) {
	m.mu.Lock()
	entry, ok := m.entries[circuitType]
	if !ok {
		entry = &artifactEntry{}
		m.entries[circuitType] = entry
	}
	m.mu.Unlock()

	entry.once.Do(func() {
		entry.artifacts, entry.err = buildArtifacts(circuitType)
	})
	return entry.artifacts, entry.err
}

// WarmUp compiles every registered circuit up front so the first request does
// not pay the setup cost.
func (m *ArtifactManager) WarmUp() error {
	for _, circuitType := range circuits.GenerationOrder {
		if _, err := m.Get(circuitType); err != nil {
			return fmt.Errorf("warm up %s: %w", circuitType, err)
		}
	}
	return nil
}

func buildArtifacts(circuitType circuits.CircuitType) (*Artifacts, error) {
	prototype, err := circuits.Prototype(circuitType)
	if err != nil {
		return nil, err
	}

	ccs, err := frontend.Compile(
		circuits.EllipticCurveID.ScalarField(),
		r1cs.NewBuilder,
		prototype,
	)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", circuitType, err)
	}

	pk, vk, err := groth16.Setup(ccs)
	if err != nil {
		return nil, fmt.Errorf("setup %s: %w", circuitType, err)
	}

	return &Artifacts{
		ConstraintSystem: ccs,
		ProvingKey:       pk,
		VerifyingKey:     vk,
	}, nil
}
