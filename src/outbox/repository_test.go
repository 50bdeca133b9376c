package outbox

import (
	"testing"

	"idproof/src/database"
	"idproof/src/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingSkipsExhaustedEvents(t *testing.T) {
	db := database.NewTestDatabase(t)
	repo := NewRepository(db)

	require.NoError(t, db.Create(&model.OutboxEvent{EventId: "evt-1", ProofRecordId: "rec-1"}).Error)
	require.NoError(t, db.Create(&model.OutboxEvent{EventId: "evt-2", ProofRecordId: "rec-2", Retry: maxRetries}).Error)

	pending, err := repo.GetPending()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "evt-1", pending[0].EventId)
}

func TestMarkPublishedDeletesRow(t *testing.T) {
	db := database.NewTestDatabase(t)
	repo := NewRepository(db)

	require.NoError(t, db.Create(&model.OutboxEvent{EventId: "evt-1", ProofRecordId: "rec-1"}).Error)
	require.NoError(t, repo.MarkPublished("evt-1"))

	pending, err := repo.GetPending()
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestBumpRetry(t *testing.T) {
	db := database.NewTestDatabase(t)
	repo := NewRepository(db)

	event := model.OutboxEvent{EventId: "evt-1", ProofRecordId: "rec-1"}
	require.NoError(t, db.Create(&event).Error)

	require.NoError(t, repo.BumpRetry(event))

	var reloaded model.OutboxEvent
	require.NoError(t, db.Where("event_id = ?", "evt-1").First(&reloaded).Error)
	assert.Equal(t, 1, reloaded.Retry)
}
