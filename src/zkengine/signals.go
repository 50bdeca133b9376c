package zkengine

import (
	"fmt"
	"math/big"

	"idproof/src/circuits"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark/backend/witness"
)

// NonceByteLength is the size of a challenge nonce before field encoding.
const NonceByteLength = 16

// PublicSignalsFromWitness extracts the public inputs of a full witness as
// decimal strings, in circuit declaration order.
func PublicSignalsFromWitness(fullWitness witness.Witness) ([]string, error) {
	public, err := fullWitness.Public()
	if err != nil {
		return nil, fmt.Errorf("public witness: %w", err)
	}
	vector, ok := public.Vector().(fr.Vector)
	if !ok {
		return nil, fmt.Errorf("unexpected witness vector type %T", public.Vector())
	}
	signals := make([]string, len(vector))
	for i := range vector {
		signals[i] = vector[i].String()
	}
	return signals, nil
}

// WitnessFromSignals rebuilds a public witness from decimal signal strings.
func WitnessFromSignals(signals []string) (witness.Witness, error) {
	values := make(chan any, len(signals))
	for i, s := range signals {
		v, ok := new(big.Int).SetString(s, 10)
		if !ok {
			close(values)
			return nil, fmt.Errorf("public signal %d is not a decimal integer", i)
		}
		values <- v
	}
	close(values)

	w, err := witness.New(circuits.EllipticCurveID.ScalarField())
	if err != nil {
		return nil, err
	}
	if err := w.Fill(len(signals), 0, values); err != nil {
		return nil, fmt.Errorf("fill public witness: %w", err)
	}
	return w, nil
}

// NonceToField converts a hex nonce into the field element the circuits see.
func NonceToField(nonceHex string) (*big.Int, error) {
	if len(nonceHex) != NonceByteLength*2 {
		return nil, fmt.Errorf("nonce must be %d hex characters", NonceByteLength*2)
	}
	v, ok := new(big.Int).SetString(nonceHex, 16)
	if !ok {
		return nil, fmt.Errorf("nonce is not valid hex")
	}
	return v, nil
}

// FieldToNonce recovers the hex nonce from its public-signal form.
func FieldToNonce(signal string) (string, error) {
	v, ok := new(big.Int).SetString(signal, 10)
	if !ok || v.Sign() < 0 || v.BitLen() > NonceByteLength*8 {
		return "", fmt.Errorf("signal does not encode a %d-byte nonce", NonceByteLength)
	}
	return fmt.Sprintf("%032x", v), nil
}
