package circuits

import (
	"math/big"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash/mimc"
)

// MembershipCircuit proves the hidden nationality code is a leaf of the
// Merkle tree committed to by MerkleRoot. Public signal layout:
// [currentYear, merkleRoot, nonce, isMember, claimHash].
type MembershipCircuit struct {
	CurrentYear frontend.Variable `gnark:",public"`
	MerkleRoot  frontend.Variable `gnark:",public"`
	Nonce       frontend.Variable `gnark:",public"`
	IsMember    frontend.Variable `gnark:",public"`
	ClaimHash   frontend.Variable `gnark:",public"`

	NationalityCode frontend.Variable                      `gnark:",secret"`
	DocumentHash    frontend.Variable                      `gnark:",secret"`
	PathElements    [MembershipTreeDepth]frontend.Variable `gnark:",secret"`
	PathIndices     [MembershipTreeDepth]frontend.Variable `gnark:",secret"`
}

// Define implements the frontend.Circuit interface
func (c *MembershipCircuit) Define(api frontend.API) error {
	h, err := mimc.NewMiMC(api)
	if err != nil {
		return err
	}
	h.Write(c.NationalityCode, c.DocumentHash)
	api.AssertIsEqual(h.Sum(), c.ClaimHash)

	// Leaf is the hash of the code alone, matching the accumulator layout.
	h.Reset()
	h.Write(c.NationalityCode)
	node := h.Sum()

	for i := 0; i < MembershipTreeDepth; i++ {
		api.AssertIsBoolean(c.PathIndices[i])
		// index bit 0 means the node is the left child at this level.
		left := api.Select(c.PathIndices[i], c.PathElements[i], node)
		right := api.Select(c.PathIndices[i], node, c.PathElements[i])
		h.Reset()
		h.Write(left, right)
		node = h.Sum()
	}

	isMember := api.IsZero(api.Sub(node, c.MerkleRoot))
	api.AssertIsEqual(c.IsMember, isMember)

	api.AssertIsEqual(api.Mul(c.Nonce, 1), c.Nonce)
	return nil
}

func MembershipAssignment(
	currentYear int64,
	merkleRoot, nonce, claimHash, nationalityCode, documentHash *big.Int,
	pathElements []*big.Int, pathIndices []int,
) frontend.Circuit {
	a := &MembershipCircuit{
		CurrentYear:     currentYear,
		MerkleRoot:      merkleRoot,
		Nonce:           nonce,
		IsMember:        1,
		ClaimHash:       claimHash,
		NationalityCode: nationalityCode,
		DocumentHash:    documentHash,
	}
	for i := 0; i < MembershipTreeDepth; i++ {
		a.PathElements[i] = pathElements[i]
		a.PathIndices[i] = pathIndices[i]
	}
	return a
}
