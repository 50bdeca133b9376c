package claims

import (
	"crypto/sha256"
	"errors"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
)

var ErrValueOutOfField = errors.New("claim value outside the scalar field")

// HashFields absorbs the values in order and returns the MiMC digest as a
// field element. The same primitive runs inside the circuits, so commitments
// computed here open under circuit constraints.
func HashFields(values ...*big.Int) (*big.Int, error) {
	h := mimc.NewMiMC()
	for _, v := range values {
		if v == nil || v.Sign() < 0 || v.Cmp(fr.Modulus()) >= 0 {
			return nil, ErrValueOutOfField
		}
		var e fr.Element
		e.SetBigInt(v)
		b := e.Bytes()
		if _, err := h.Write(b[:]); err != nil {
			return nil, err
		}
	}
	return new(big.Int).SetBytes(h.Sum(nil)), nil
}

// ComputeClaimHash binds a claim value to its source document as
// MiMC(value, documentHash).
func ComputeClaimHash(value, documentHash *big.Int) (*big.Int, error) {
	return HashFields(value, documentHash)
}

// DocumentHashField maps raw document bytes into the scalar field: SHA-256
// of the bytes, reduced modulo the field order.
func DocumentHashField(documentBytes []byte) *big.Int {
	digest := sha256.Sum256(documentBytes)
	v := new(big.Int).SetBytes(digest[:])
	return v.Mod(v, fr.Modulus())
}

// ParseFieldElement parses a decimal string into a field element, rejecting
// values outside the field.
func ParseFieldElement(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok || v.Sign() < 0 || v.Cmp(fr.Modulus()) >= 0 {
		return nil, ErrValueOutOfField
	}
	return v, nil
}
