package circuits

import (
	"errors"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/frontend"
)

const EllipticCurveID = ecc.BN254

type CircuitType string

const (
	AgeV1         CircuitType = "age_v1"
	DocValidityV1 CircuitType = "doc_validity_v1"
	MembershipV1  CircuitType = "nationality_membership_v1"
	FaceMatchV1   CircuitType = "face_match_v1"
	BindingV1     CircuitType = "identity_binding_v1"
)

// MembershipTreeDepth fixes the accumulator depth: 2^8 leaves per group.
const MembershipTreeDepth = 8

var ErrUnknownCircuit = errors.New("unknown circuit type")

// CircuitSpec pins the public-signal layout of a shipped circuit. Layouts are
// immutable; a change must ship as a new circuit type. ClaimHashIndex is -1
// for circuits that do not open a stored commitment (the binding circuit
// opens the user id hash instead).
type CircuitSpec struct {
	Type            CircuitType
	MinPublicInputs int
	ResultIndex     int
	NonceIndex      int
	ClaimHashIndex  int
}

var registry = map[CircuitType]CircuitSpec{
	AgeV1:         {Type: AgeV1, MinPublicInputs: 5, ResultIndex: 3, NonceIndex: 2, ClaimHashIndex: 4},
	DocValidityV1: {Type: DocValidityV1, MinPublicInputs: 5, ResultIndex: 3, NonceIndex: 2, ClaimHashIndex: 4},
	MembershipV1:  {Type: MembershipV1, MinPublicInputs: 5, ResultIndex: 3, NonceIndex: 2, ClaimHashIndex: 4},
	FaceMatchV1:   {Type: FaceMatchV1, MinPublicInputs: 5, ResultIndex: 3, NonceIndex: 2, ClaimHashIndex: 4},
	BindingV1:     {Type: BindingV1, MinPublicInputs: 4, ResultIndex: 3, NonceIndex: 2, ClaimHashIndex: -1},
}

// GenerationOrder is the fixed sequence the orchestrator proves in.
var GenerationOrder = []CircuitType{
	AgeV1,
	DocValidityV1,
	MembershipV1,
	FaceMatchV1,
	BindingV1,
}

func SpecFor(t CircuitType) (CircuitSpec, error) {
	spec, ok := registry[t]
	if !ok {
		return CircuitSpec{}, ErrUnknownCircuit
	}
	return spec, nil
}

// Prototype returns an empty circuit instance for compilation.
func Prototype(t CircuitType) (frontend.Circuit, error) {
	switch t {
	case AgeV1:
		return &AgeCircuit{}, nil
	case DocValidityV1:
		return &DocValidityCircuit{}, nil
	case MembershipV1:
		return &MembershipCircuit{}, nil
	case FaceMatchV1:
		return &FaceMatchCircuit{}, nil
	case BindingV1:
		return &BindingCircuit{}, nil
	default:
		return nil, ErrUnknownCircuit
	}
}
