package circuits

import (
	"math/big"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash/mimc"
)

// BindingCircuit proves knowledge of the secret behind a user identity hash,
// tying a proof session to its wallet. Public signal layout:
// [currentYear, userIdHash, nonce, isBound].
type BindingCircuit struct {
	CurrentYear frontend.Variable `gnark:",public"`
	UserIdHash  frontend.Variable `gnark:",public"`
	Nonce       frontend.Variable `gnark:",public"`
	IsBound     frontend.Variable `gnark:",public"`

	BindingSecret frontend.Variable `gnark:",secret"`
}

// Define implements the frontend.Circuit interface
func (c *BindingCircuit) Define(api frontend.API) error {
	h, err := mimc.NewMiMC(api)
	if err != nil {
		return err
	}
	h.Write(c.BindingSecret)
	api.AssertIsEqual(h.Sum(), c.UserIdHash)

	api.AssertIsEqual(c.IsBound, 1)

	api.AssertIsEqual(api.Mul(c.Nonce, 1), c.Nonce)
	return nil
}

func BindingAssignment(
	currentYear int64,
	nonce, userIdHash, bindingSecret *big.Int,
) frontend.Circuit {
	return &BindingCircuit{
		CurrentYear:   currentYear,
		UserIdHash:    userIdHash,
		Nonce:         nonce,
		IsBound:       1,
		BindingSecret: bindingSecret,
	}
}
