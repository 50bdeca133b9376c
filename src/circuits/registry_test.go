package circuits

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
	"github.com/consensys/gnark/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hashFields(t *testing.T, values ...*big.Int) *big.Int {
	t.Helper()
	h := mimc.NewMiMC()
	for _, v := range values {
		var e fr.Element
		e.SetBigInt(v)
		b := e.Bytes()
		_, err := h.Write(b[:])
		require.NoError(t, err)
	}
	return new(big.Int).SetBytes(h.Sum(nil))
}

func TestSpecForKnownCircuits(t *testing.T) {
	for _, circuitType := range GenerationOrder {
		spec, err := SpecFor(circuitType)
		require.NoError(t, err)
		assert.Equal(t, circuitType, spec.Type)
		assert.GreaterOrEqual(t, spec.MinPublicInputs, 4)
		assert.Equal(t, 2, spec.NonceIndex)
		assert.Equal(t, 3, spec.ResultIndex)
		assert.Less(t, spec.ResultIndex, spec.MinPublicInputs)
		if circuitType == BindingV1 {
			assert.Equal(t, -1, spec.ClaimHashIndex)
		} else {
			assert.Equal(t, 4, spec.ClaimHashIndex)
			assert.Less(t, spec.ClaimHashIndex, spec.MinPublicInputs)
		}
	}
}

func TestSpecForUnknownCircuit(t *testing.T) {
	_, err := SpecFor("age_v2")
	assert.ErrorIs(t, err, ErrUnknownCircuit)
}

func TestPrototypeCoversRegistry(t *testing.T) {
	for _, circuitType := range GenerationOrder {
		proto, err := Prototype(circuitType)
		require.NoError(t, err)
		assert.NotNil(t, proto)
	}

	_, err := Prototype("age_v2")
	assert.ErrorIs(t, err, ErrUnknownCircuit)
}

func TestAgeCircuitSolves(t *testing.T) {
	dob := big.NewInt(10957) // 2000-01-01
	docHash := big.NewInt(424242)
	claimHash := hashFields(t, dob, docHash)
	nonce := big.NewInt(777)

	assignment := AgeAssignment(2026, 18, nonce, claimHash, dob, docHash)
	err := test.IsSolved(&AgeCircuit{}, assignment, EllipticCurveID.ScalarField())
	assert.NoError(t, err)
}

func TestAgeCircuitRejectsWrongCommitment(t *testing.T) {
	dob := big.NewInt(10957)
	docHash := big.NewInt(424242)
	claimHash := hashFields(t, dob, big.NewInt(999))
	nonce := big.NewInt(777)

	assignment := AgeAssignment(2026, 18, nonce, claimHash, dob, docHash)
	err := test.IsSolved(&AgeCircuit{}, assignment, EllipticCurveID.ScalarField())
	assert.Error(t, err)
}

func TestAgeCircuitUnderage(t *testing.T) {
	dob := big.NewInt(19000) // 2022-01-09
	docHash := big.NewInt(424242)
	claimHash := hashFields(t, dob, docHash)
	nonce := big.NewInt(777)

	assignment := AgeAssignment(2026, 18, nonce, claimHash, dob, docHash)
	err := test.IsSolved(&AgeCircuit{}, assignment, EllipticCurveID.ScalarField())
	assert.NoError(t, err)

	circuit := assignment.(*AgeCircuit)
	assert.Equal(t, int64(0), circuit.IsOverMin)
}

func TestDocValidityCircuitSolves(t *testing.T) {
	expiry := big.NewInt(21000)
	docHash := big.NewInt(424242)
	claimHash := hashFields(t, expiry, docHash)
	nonce := big.NewInt(777)

	assignment := DocValidityAssignment(2026, 20690, nonce, claimHash, expiry, docHash)
	err := test.IsSolved(&DocValidityCircuit{}, assignment, EllipticCurveID.ScalarField())
	assert.NoError(t, err)
}

func TestFaceMatchCircuitThreshold(t *testing.T) {
	score := big.NewInt(8700)
	docHash := big.NewInt(424242)
	claimHash := hashFields(t, score, docHash)
	nonce := big.NewInt(777)

	assignment := FaceMatchAssignment(2026, 6000, nonce, claimHash, score, docHash)
	err := test.IsSolved(&FaceMatchCircuit{}, assignment, EllipticCurveID.ScalarField())
	assert.NoError(t, err)

	below := FaceMatchAssignment(2026, 6000, nonce,
		hashFields(t, big.NewInt(5000), docHash), big.NewInt(5000), docHash)
	assert.Equal(t, int64(0), below.(*FaceMatchCircuit).IsMatch)
}

func TestBindingCircuitSolves(t *testing.T) {
	secret := big.NewInt(123456789)
	userIdHash := hashFields(t, secret)
	nonce := big.NewInt(777)

	assignment := BindingAssignment(2026, nonce, userIdHash, secret)
	err := test.IsSolved(&BindingCircuit{}, assignment, EllipticCurveID.ScalarField())
	assert.NoError(t, err)
}
