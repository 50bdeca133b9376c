package circuits

import (
	"math/big"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash/mimc"
)

// AgeCircuit proves date-of-birth is old enough for MinAge without revealing
// it. Public signal layout: [currentYear, minAge, nonce, isOverMin, claimHash].
type AgeCircuit struct {
	CurrentYear frontend.Variable `gnark:",public"`
	MinAge      frontend.Variable `gnark:",public"`
	Nonce       frontend.Variable `gnark:",public"`
	IsOverMin   frontend.Variable `gnark:",public"`
	ClaimHash   frontend.Variable `gnark:",public"`

	DateOfBirthDays frontend.Variable `gnark:",secret"`
	DocumentHash    frontend.Variable `gnark:",secret"`
}

// Define implements the frontend.Circuit interface
func (c *AgeCircuit) Define(api frontend.API) error {
	h, err := mimc.NewMiMC(api)
	if err != nil {
		return err
	}
	h.Write(c.DateOfBirthDays, c.DocumentHash)
	api.AssertIsEqual(h.Sum(), c.ClaimHash)

	// Anyone born on or before the cutoff day is at least MinAge years old.
	// 365-day years; the server's staleness window absorbs the leap-day drift.
	cutoffDays := api.Mul(api.Sub(c.CurrentYear, c.MinAge, 1970), 365)
	isOver := isLessOrEqual(api, c.DateOfBirthDays, cutoffDays)
	api.AssertIsEqual(c.IsOverMin, isOver)

	api.AssertIsEqual(api.Mul(c.Nonce, 1), c.Nonce)
	return nil
}

func AgeAssignment(
	currentYear, minAge int64,
	nonce, claimHash, dateOfBirthDays, documentHash *big.Int,
) frontend.Circuit {
	isOver := int64(0)
	cutoff := (currentYear - minAge - 1970) * 365
	if dateOfBirthDays.Cmp(big.NewInt(cutoff)) <= 0 {
		isOver = 1
	}
	return &AgeCircuit{
		CurrentYear:     currentYear,
		MinAge:          minAge,
		Nonce:           nonce,
		IsOverMin:       isOver,
		ClaimHash:       claimHash,
		DateOfBirthDays: dateOfBirthDays,
		DocumentHash:    documentHash,
	}
}
