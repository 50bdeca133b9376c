package claims

import (
	"idproof/src/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Upsert(commitment *model.ClaimCommitment) error
	GetByOwner(userId, documentId string, semanticType model.SemanticType) (*model.ClaimCommitment, error)
	ListByDocument(userId, documentId string) ([]model.ClaimCommitment, error)
	DeleteByDocument(userId, documentId string) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Upsert(commitment *model.ClaimCommitment) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "document_id"}, {Name: "semantic_type"}},
		DoUpdates: clause.AssignmentColumns([]string{"claim_hash", "document_hash_field"}),
	}).Create(commitment).Error
}

func (r *gormRepository) GetByOwner(userId, documentId string, semanticType model.SemanticType) (*model.ClaimCommitment, error) {
	var commitment model.ClaimCommitment
	err := r.db.Where("user_id = ? AND document_id = ? AND semantic_type = ?",
		userId, documentId, semanticType).First(&commitment).Error
	return &commitment, err
}

func (r *gormRepository) ListByDocument(userId, documentId string) ([]model.ClaimCommitment, error) {
	var commitments []model.ClaimCommitment
	err := r.db.Where("user_id = ? AND document_id = ?", userId, documentId).
		Find(&commitments).Error
	return commitments, err
}

// DeleteByDocument drops every commitment of a revoked document. Proofs
// already recorded stay append-only; new submissions fail the commitment
// lookup once the rows are gone.
func (r *gormRepository) DeleteByDocument(userId, documentId string) (int64, error) {
	result := r.db.Where("user_id = ? AND document_id = ?", userId, documentId).
		Delete(&model.ClaimCommitment{})
	return result.RowsAffected, result.Error
}
