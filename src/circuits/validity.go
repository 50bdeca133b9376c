package circuits

import (
	"math/big"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash/mimc"
)

// DocValidityCircuit proves a document expiry date lies in the future without
// revealing it. Public signal layout:
// [currentYear, currentEpochDays, nonce, isValid, claimHash].
type DocValidityCircuit struct {
	CurrentYear      frontend.Variable `gnark:",public"`
	CurrentEpochDays frontend.Variable `gnark:",public"`
	Nonce            frontend.Variable `gnark:",public"`
	IsValid          frontend.Variable `gnark:",public"`
	ClaimHash        frontend.Variable `gnark:",public"`

	ExpiryDays   frontend.Variable `gnark:",secret"`
	DocumentHash frontend.Variable `gnark:",secret"`
}

// Define implements the frontend.Circuit interface
func (c *DocValidityCircuit) Define(api frontend.API) error {
	h, err := mimc.NewMiMC(api)
	if err != nil {
		return err
	}
	h.Write(c.ExpiryDays, c.DocumentHash)
	api.AssertIsEqual(h.Sum(), c.ClaimHash)

	// Valid when the current day has not passed the expiry day.
	isValid := isLessOrEqual(api, c.CurrentEpochDays, c.ExpiryDays)
	api.AssertIsEqual(c.IsValid, isValid)

	api.AssertIsEqual(api.Mul(c.Nonce, 1), c.Nonce)
	return nil
}

func DocValidityAssignment(
	currentYear, currentEpochDays int64,
	nonce, claimHash, expiryDays, documentHash *big.Int,
) frontend.Circuit {
	isValid := int64(0)
	if big.NewInt(currentEpochDays).Cmp(expiryDays) <= 0 {
		isValid = 1
	}
	return &DocValidityCircuit{
		CurrentYear:      currentYear,
		CurrentEpochDays: currentEpochDays,
		Nonce:            nonce,
		IsValid:          isValid,
		ClaimHash:        claimHash,
		ExpiryDays:       expiryDays,
		DocumentHash:     documentHash,
	}
}
