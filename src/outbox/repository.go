package outbox

import (
	"idproof/src/model"

	"gorm.io/gorm"
)

const maxRetries = 5

type Repository interface {
	GetPending() ([]model.OutboxEvent, error)
	MarkPublished(eventId string) error
	BumpRetry(event model.OutboxEvent) error
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) GetPending() ([]model.OutboxEvent, error) {
	var events []model.OutboxEvent
	err := r.db.Where("retry < ?", maxRetries).Order("id ASC").Find(&events).Error
	return events, err
}

// MarkPublished removes the row; delivery is at-least-once, duplicates are
// the consumer's problem.
func (r *gormRepository) MarkPublished(eventId string) error {
	return r.db.Where("event_id = ?", eventId).Delete(&model.OutboxEvent{}).Error
}

// BumpRetry increments the attempt counter. Rows that reach maxRetries stop
// being picked up and need manual inspection.
func (r *gormRepository) BumpRetry(event model.OutboxEvent) error {
	return r.db.Model(&model.OutboxEvent{}).
		Where("event_id = ?", event.EventId).
		Update("retry", event.Retry+1).Error
}
