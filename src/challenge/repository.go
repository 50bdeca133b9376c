package challenge

import (
	"errors"
	"time"

	"idproof/src/model"

	"gorm.io/gorm"
)

var (
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrChallengeConsumed = errors.New("challenge already consumed")
	ErrChallengeExpired  = errors.New("challenge expired")
)

type Repository interface {
	Create(challenge *model.Challenge) error
	GetByNonce(nonce string) (*model.Challenge, error)
	ConsumeAtomic(nonce, userId, circuitType string, now time.Time) error
	DeleteExpired(now time.Time) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(challenge *model.Challenge) error {
	return r.db.Create(challenge).Error
}

func (r *gormRepository) GetByNonce(nonce string) (*model.Challenge, error) {
	var challenge model.Challenge
	err := r.db.Where("nonce = ?", nonce).First(&challenge).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrChallengeNotFound
	}
	return &challenge, err
}

// ConsumeAtomic marks a nonce consumed with a single conditional update. The
// row guard makes the operation linearizable: of two racing calls, exactly
// one sees RowsAffected == 1.
func (r *gormRepository) ConsumeAtomic(nonce, userId, circuitType string, now time.Time) error {
	result := r.db.Model(&model.Challenge{}).
		Where("nonce = ? AND user_id = ? AND circuit_type = ? AND consumed_at IS NULL AND expires_at > ?",
			nonce, userId, circuitType, now).
		Update("consumed_at", now)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 1 {
		return nil
	}

	// Diagnose why the guard failed. A nonce issued to another user or
	// circuit reports not-found rather than leaking its state.
	challenge, err := r.GetByNonce(nonce)
	if err != nil {
		return err
	}
	if challenge.UserId != userId || challenge.CircuitType != circuitType {
		return ErrChallengeNotFound
	}
	if challenge.ConsumedAt != nil {
		return ErrChallengeConsumed
	}
	return ErrChallengeExpired
}

func (r *gormRepository) DeleteExpired(now time.Time) (int64, error) {
	result := r.db.Where("expires_at <= ?", now).Delete(&model.Challenge{})
	return result.RowsAffected, result.Error
}
