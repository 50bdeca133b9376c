package zkengine

import (
	"context"
	"math/big"
	"testing"

	"idproof/src/circuits"
	"idproof/src/claims"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNonceFieldRoundTrip(t *testing.T) {
	nonceHex := "0a1b2c3d4e5f60718293a4b5c6d7e8f9"

	field, err := NonceToField(nonceHex)
	require.NoError(t, err)

	back, err := FieldToNonce(field.String())
	require.NoError(t, err)
	assert.Equal(t, nonceHex, back)
}

func TestNonceFieldLeadingZeros(t *testing.T) {
	nonceHex := "0000000000000000000000000000002a"

	field, err := NonceToField(nonceHex)
	require.NoError(t, err)
	assert.Equal(t, int64(42), field.Int64())

	back, err := FieldToNonce(field.String())
	require.NoError(t, err)
	assert.Equal(t, nonceHex, back)
}

func TestNonceToFieldRejectsBadInput(t *testing.T) {
	_, err := NonceToField("abcd")
	assert.Error(t, err)

	_, err = NonceToField("zz1b2c3d4e5f60718293a4b5c6d7e8f9")
	assert.Error(t, err)
}

func TestFieldToNonceRejectsOversized(t *testing.T) {
	tooBig := new(big.Int).Lsh(big.NewInt(1), 128)
	_, err := FieldToNonce(tooBig.String())
	assert.Error(t, err)

	_, err = FieldToNonce("not a number")
	assert.Error(t, err)
}

func TestWitnessFromSignalsRejectsGarbage(t *testing.T) {
	_, err := WitnessFromSignals([]string{"2026", "xyz"})
	assert.Error(t, err)
}

func TestProveAndVerifyAge(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping groth16 setup in short mode")
	}

	engine := NewGnarkEngine(NewArtifactManager())
	ctx := context.Background()

	dob := big.NewInt(10957)
	docHash := big.NewInt(424242)
	claimHash, err := claims.ComputeClaimHash(dob, docHash)
	require.NoError(t, err)
	nonce, err := NonceToField("0a1b2c3d4e5f60718293a4b5c6d7e8f9")
	require.NoError(t, err)

	assignment := circuits.AgeAssignment(2026, 18, nonce, claimHash, dob, docHash)
	result, err := engine.Prove(ctx, circuits.AgeV1, assignment)
	require.NoError(t, err)

	assert.Len(t, result.PublicSignals, 5)
	assert.Equal(t, "2026", result.PublicSignals[0])
	assert.Equal(t, "18", result.PublicSignals[1])
	assert.Equal(t, nonce.String(), result.PublicSignals[2])
	assert.Equal(t, "1", result.PublicSignals[3])
	assert.Equal(t, claimHash.String(), result.PublicSignals[4])

	err = engine.Verify(ctx, circuits.AgeV1, result.Blob, result.PublicSignals)
	assert.NoError(t, err)

	// Tampering with a public signal breaks verification.
	tampered := append([]string{}, result.PublicSignals...)
	tampered[3] = "0"
	err = engine.Verify(ctx, circuits.AgeV1, result.Blob, tampered)
	assert.Error(t, err)
}

func TestVerifyRejectsMismatchedCircuit(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping groth16 setup in short mode")
	}

	engine := NewGnarkEngine(NewArtifactManager())
	ctx := context.Background()

	secret := big.NewInt(123456789)
	userIdHash, err := claims.HashFields(secret)
	require.NoError(t, err)
	nonce := big.NewInt(777)

	assignment := circuits.BindingAssignment(2026, nonce, userIdHash, secret)
	result, err := engine.Prove(ctx, circuits.BindingV1, assignment)
	require.NoError(t, err)

	err = engine.Verify(ctx, circuits.AgeV1, result.Blob, result.PublicSignals)
	assert.Error(t, err)
}
