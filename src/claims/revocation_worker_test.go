package claims

import (
	"testing"

	"idproof/src/database"
	"idproof/src/model"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCommitment(t *testing.T, repo Repository, userId, documentId string, semanticType model.SemanticType) {
	t.Helper()
	require.NoError(t, repo.Upsert(&model.ClaimCommitment{
		UserId:            userId,
		DocumentId:        documentId,
		SemanticType:      semanticType,
		ClaimHash:         "12345",
		DocumentHashField: "67890",
	}))
}

func TestRevocationDeletesDocumentCommitments(t *testing.T) {
	db := database.NewTestDatabase(t)
	repo := NewRepository(db)
	worker := &RevocationWorker{repository: repo}

	seedCommitment(t, repo, "user-1", "doc-1", model.SemanticAge)
	seedCommitment(t, repo, "user-1", "doc-1", model.SemanticNationality)
	seedCommitment(t, repo, "user-1", "doc-2", model.SemanticAge)

	worker.HandleDelivery(amqp.Delivery{
		Body: []byte(`{"user_id":"user-1","document_id":"doc-1","reason":"reported lost"}`),
	})

	remaining, err := repo.ListByDocument("user-1", "doc-1")
	require.NoError(t, err)
	assert.Empty(t, remaining)

	kept, err := repo.ListByDocument("user-1", "doc-2")
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}

func TestRevocationIgnoresMalformedEvents(t *testing.T) {
	db := database.NewTestDatabase(t)
	repo := NewRepository(db)
	worker := &RevocationWorker{repository: repo}

	seedCommitment(t, repo, "user-1", "doc-1", model.SemanticAge)

	worker.HandleDelivery(amqp.Delivery{Body: []byte(`not json`)})
	worker.HandleDelivery(amqp.Delivery{Body: []byte(`{"reason":"no owner or document"}`)})

	kept, err := repo.ListByDocument("user-1", "doc-1")
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}

func TestRevocationScopedToOwner(t *testing.T) {
	db := database.NewTestDatabase(t)
	repo := NewRepository(db)
	worker := &RevocationWorker{repository: repo}

	seedCommitment(t, repo, "user-1", "doc-1", model.SemanticAge)

	// A revocation naming another owner must not touch user-1's rows.
	worker.HandleDelivery(amqp.Delivery{
		Body: []byte(`{"user_id":"user-2","document_id":"doc-1"}`),
	})

	kept, err := repo.ListByDocument("user-1", "doc-1")
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}
