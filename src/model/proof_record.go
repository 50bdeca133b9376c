package model

import "time"

// ProofRecord is the durable, append-only result of a successful server-side
// verification. Downstream credential issuance reads these rows, never the
// submitted proofs directly.
type ProofRecord struct {
	Id                 int    `gorm:"primaryKey;autoIncrement"`
	RecordId           string `gorm:"uniqueIndex;type:uuid;not null"`
	UserId             string `gorm:"index:idx_proof_lookup;not null"`
	DocumentId         string `gorm:"index:idx_proof_lookup;not null"`
	CircuitType        string `gorm:"index:idx_proof_lookup;not null"`
	ProofBlob          []byte
	PublicSignals      string // JSON array of decimal field elements
	Verified           bool
	Result             bool
	GenerationTimeMs   int64
	VerificationTimeMs int64
	CreatedAt          time.Time
}

type ProofFailure struct {
	Id          int `gorm:"primaryKey;autoIncrement"`
	UserId      string
	CircuitType string
	RequestBody []byte
	Error       string
	ReasonCode  string
	CreatedAt   time.Time
}
