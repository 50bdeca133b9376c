package model

import "time"

type SemanticType string

const (
	SemanticAge         SemanticType = "age"
	SemanticDocValidity SemanticType = "doc_validity"
	SemanticNationality SemanticType = "nationality"
	SemanticFaceMatch   SemanticType = "face_match"
)

// ClaimCommitment binds a private attribute value to a verified document.
// Only the commitment hash is stored; the raw value never reaches the table.
type ClaimCommitment struct {
	Id                int          `gorm:"primaryKey;autoIncrement"`
	UserId            string       `gorm:"uniqueIndex:idx_claim_owner;not null"`
	DocumentId        string       `gorm:"uniqueIndex:idx_claim_owner;not null"`
	SemanticType      SemanticType `gorm:"uniqueIndex:idx_claim_owner;not null"`
	ClaimHash         string       `gorm:"not null"` // decimal field element
	DocumentHashField string       `gorm:"not null"` // decimal field element
	CreatedAt         time.Time
}
