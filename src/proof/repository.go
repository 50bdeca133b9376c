package proof

import (
	"idproof/src/model"

	"gorm.io/gorm"
)

type Repository interface {
	CreateRecord(record *model.ProofRecord) error
	CreateFailure(failure *model.ProofFailure) error
	LatestRecord(userId, documentId, circuitType string) (*model.ProofRecord, error)
	CreateOutboxEvent(event *model.OutboxEvent) error
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) CreateRecord(record *model.ProofRecord) error {
	return r.db.Create(record).Error
}

func (r *gormRepository) CreateFailure(failure *model.ProofFailure) error {
	return r.db.Create(failure).Error
}

// LatestRecord returns the newest record for the tuple; records are
// append-only, so the latest generation wins.
func (r *gormRepository) LatestRecord(userId, documentId, circuitType string) (*model.ProofRecord, error) {
	var record model.ProofRecord
	err := r.db.Where("user_id = ? AND document_id = ? AND circuit_type = ?",
		userId, documentId, circuitType).
		Order("id DESC").
		First(&record).Error
	return &record, err
}

func (r *gormRepository) CreateOutboxEvent(event *model.OutboxEvent) error {
	return r.db.Create(event).Error
}
