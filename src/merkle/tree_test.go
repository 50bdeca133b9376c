package merkle

import (
	"math/big"
	"testing"

	"idproof/src/circuits"
	"idproof/src/claims"

	"github.com/consensys/gnark/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTreeDeterministic(t *testing.T) {
	first, err := BuildTreeFromCodes(Groups["EU"])
	require.NoError(t, err)
	second, err := BuildTreeFromCodes(Groups["EU"])
	require.NoError(t, err)

	assert.Equal(t, 0, first.Root().Cmp(second.Root()))
}

func TestGroupRootsDiffer(t *testing.T) {
	acc := NewAccumulator()

	euRoot, err := acc.RootFor("EU")
	require.NoError(t, err)
	latamRoot, err := acc.RootFor("LATAM")
	require.NoError(t, err)

	assert.NotEqual(t, 0, euRoot.Cmp(latamRoot))
}

func TestRootForCaches(t *testing.T) {
	acc := NewAccumulator()

	first, err := acc.TreeFor("SCHENGEN")
	require.NoError(t, err)
	second, err := acc.TreeFor("SCHENGEN")
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestUnknownGroup(t *testing.T) {
	acc := NewAccumulator()
	_, err := acc.RootFor("ASEAN")
	assert.ErrorIs(t, err, ErrUnknownGroup)
}

func TestProveAndVerifyMembership(t *testing.T) {
	acc := NewAccumulator()

	proof, err := acc.ProveMembership("EU", DEU)
	require.NoError(t, err)
	assert.Len(t, proof.PathElements, circuits.MembershipTreeDepth)
	assert.Len(t, proof.PathIndices, circuits.MembershipTreeDepth)

	root, err := acc.RootFor("EU")
	require.NoError(t, err)

	ok, err := VerifyProof(root, DEU, proof)
	require.NoError(t, err)
	assert.True(t, ok)

	// The same path does not open a different leaf.
	ok, err = VerifyProof(root, FRA, proof)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProveNonMember(t *testing.T) {
	acc := NewAccumulator()
	_, err := acc.ProveMembership("EU", MEX)
	assert.ErrorIs(t, err, ErrNotAMember)
}

func TestSmallGroupPadsWithSentinel(t *testing.T) {
	tree, err := BuildTreeFromCodes([]int64{DEU, FRA, ITA})
	require.NoError(t, err)

	for _, code := range []int64{DEU, FRA, ITA} {
		proof, err := tree.Prove(code)
		require.NoError(t, err)
		ok, err := VerifyProof(tree.Root(), code, proof)
		require.NoError(t, err)
		assert.True(t, ok)
	}

	_, err = tree.Prove(ESP)
	assert.ErrorIs(t, err, ErrNotAMember)
}

func TestGroupTooLarge(t *testing.T) {
	codes := make([]int64, (1<<circuits.MembershipTreeDepth)+1)
	for i := range codes {
		codes[i] = int64(i + 1)
	}
	_, err := BuildTreeFromCodes(codes)
	assert.ErrorIs(t, err, ErrGroupTooLarge)
}

func TestMembershipProofSolvesCircuit(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping circuit solve in short mode")
	}

	acc := NewAccumulator()
	proof, err := acc.ProveMembership("EU", DEU)
	require.NoError(t, err)
	root, err := acc.RootFor("EU")
	require.NoError(t, err)

	docHash := big.NewInt(424242)
	claimHash, err := claims.ComputeClaimHash(big.NewInt(DEU), docHash)
	require.NoError(t, err)

	assignment := circuits.MembershipAssignment(
		2026, root, big.NewInt(777), claimHash,
		big.NewInt(DEU), docHash,
		proof.PathElements, proof.PathIndices,
	)
	err = test.IsSolved(&circuits.MembershipCircuit{}, assignment, circuits.EllipticCurveID.ScalarField())
	assert.NoError(t, err)
}
