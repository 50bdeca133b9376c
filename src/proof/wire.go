package proof

import (
	"idproof/src/challenge"
	"idproof/src/claims"
	"idproof/src/merkle"
	"idproof/src/zkengine"

	"gorm.io/gorm"
)

func Build(db *gorm.DB, challenges *challenge.Service, verifier zkengine.Verifier, accumulator *merkle.Accumulator, policy Policy) *Handler {
	repo := NewRepository(db)
	service := NewService(repo, claims.NewRepository(db), challenges, verifier, accumulator, policy)
	return NewHandler(service)
}
