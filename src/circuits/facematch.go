package circuits

import (
	"math/big"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash/mimc"
)

// FaceMatchCircuit proves a biometric similarity score clears a public
// threshold without revealing the score. Scores are fixed-point with four
// decimal places, so 0.87 travels as 8700. Public signal layout:
// [currentYear, thresholdFixed, nonce, isMatch, claimHash].
type FaceMatchCircuit struct {
	CurrentYear    frontend.Variable `gnark:",public"`
	ThresholdFixed frontend.Variable `gnark:",public"`
	Nonce          frontend.Variable `gnark:",public"`
	IsMatch        frontend.Variable `gnark:",public"`
	ClaimHash      frontend.Variable `gnark:",public"`

	ScoreFixed   frontend.Variable `gnark:",secret"`
	DocumentHash frontend.Variable `gnark:",secret"`
}

// Define implements the frontend.Circuit interface
func (c *FaceMatchCircuit) Define(api frontend.API) error {
	h, err := mimc.NewMiMC(api)
	if err != nil {
		return err
	}
	h.Write(c.ScoreFixed, c.DocumentHash)
	api.AssertIsEqual(h.Sum(), c.ClaimHash)

	isMatch := isLessOrEqual(api, c.ThresholdFixed, c.ScoreFixed)
	api.AssertIsEqual(c.IsMatch, isMatch)

	api.AssertIsEqual(api.Mul(c.Nonce, 1), c.Nonce)
	return nil
}

func FaceMatchAssignment(
	currentYear, thresholdFixed int64,
	nonce, claimHash, scoreFixed, documentHash *big.Int,
) frontend.Circuit {
	isMatch := int64(0)
	if scoreFixed.Cmp(big.NewInt(thresholdFixed)) >= 0 {
		isMatch = 1
	}
	return &FaceMatchCircuit{
		CurrentYear:    currentYear,
		ThresholdFixed: thresholdFixed,
		Nonce:          nonce,
		IsMatch:        isMatch,
		ClaimHash:      claimHash,
		ScoreFixed:     scoreFixed,
		DocumentHash:   documentHash,
	}
}
