package claims

import (
	"math/big"
	"testing"

	"idproof/src/database"
	"idproof/src/model"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeClaimHashDeterministic(t *testing.T) {
	value := big.NewInt(10957)
	docHash := big.NewInt(424242)

	first, err := ComputeClaimHash(value, docHash)
	require.NoError(t, err)
	second, err := ComputeClaimHash(value, docHash)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.True(t, first.Cmp(fr.Modulus()) < 0)
}

func TestComputeClaimHashBindsDocument(t *testing.T) {
	value := big.NewInt(10957)

	a, err := ComputeClaimHash(value, big.NewInt(1))
	require.NoError(t, err)
	b, err := ComputeClaimHash(value, big.NewInt(2))
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestComputeClaimHashRejectsOutOfField(t *testing.T) {
	_, err := ComputeClaimHash(big.NewInt(-1), big.NewInt(1))
	assert.ErrorIs(t, err, ErrValueOutOfField)

	_, err = ComputeClaimHash(fr.Modulus(), big.NewInt(1))
	assert.ErrorIs(t, err, ErrValueOutOfField)
}

func TestParseFieldElement(t *testing.T) {
	v, err := ParseFieldElement("424242")
	require.NoError(t, err)
	assert.Equal(t, int64(424242), v.Int64())

	_, err = ParseFieldElement("not a number")
	assert.ErrorIs(t, err, ErrValueOutOfField)

	_, err = ParseFieldElement("-5")
	assert.ErrorIs(t, err, ErrValueOutOfField)
}

func TestDocumentHashFieldInField(t *testing.T) {
	v := DocumentHashField([]byte("passport bytes"))
	assert.True(t, v.Sign() >= 0)
	assert.True(t, v.Cmp(fr.Modulus()) < 0)
}

func TestIngestClaimsReplacesExisting(t *testing.T) {
	db := database.NewTestDatabase(t)
	service := NewService(NewRepository(db))

	req := IngestRequest{
		DocumentId:   "doc-1",
		DocumentHash: "424242",
		Claims: []ClaimInput{
			{SemanticType: model.SemanticAge, Value: "10957"},
			{SemanticType: model.SemanticNationality, Value: "276"},
		},
	}

	stored, err := service.IngestClaims("user-1", req)
	require.NoError(t, err)
	assert.Len(t, stored, 2)

	req.Claims[0].Value = "11000"
	_, err = service.IngestClaims("user-1", req)
	require.NoError(t, err)

	commitments, err := service.Repo.ListByDocument("user-1", "doc-1")
	require.NoError(t, err)
	assert.Len(t, commitments, 2)

	ageCommitment, err := service.GetCommitment("user-1", "doc-1", model.SemanticAge)
	require.NoError(t, err)
	expected, err := ComputeClaimHash(big.NewInt(11000), big.NewInt(424242))
	require.NoError(t, err)
	assert.Equal(t, expected.String(), ageCommitment.ClaimHash)
}

func TestIngestClaimsRejectsUnknownType(t *testing.T) {
	db := database.NewTestDatabase(t)
	service := NewService(NewRepository(db))

	_, err := service.IngestClaims("user-1", IngestRequest{
		DocumentId:   "doc-1",
		DocumentHash: "424242",
		Claims:       []ClaimInput{{SemanticType: "shoe_size", Value: "42"}},
	})
	assert.Error(t, err)
}
