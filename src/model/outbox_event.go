package model

import (
	"time"

	"idproof/pkg/utilities"
)

// OutboxEvent parks a verified-proof notification until the cron worker
// publishes it to the broker. At-least-once: rows are deleted only after a
// successful publish.
type OutboxEvent struct {
	Id            int    `gorm:"primaryKey;autoIncrement"`
	EventId       string `gorm:"uniqueIndex;not null"`
	ProofRecordId string `gorm:"not null"`
	UserId        string
	DocumentId    string
	CircuitType   string
	Result        bool
	Retry         int
	CreatedAt     time.Time
}

func (oe OutboxEvent) MapToProofVerifiedEvent() ProofVerifiedEvent {
	return ProofVerifiedEvent{
		EventId:       oe.EventId,
		ProofRecordId: oe.ProofRecordId,
		UserId:        oe.UserId,
		DocumentId:    oe.DocumentId,
		CircuitType:   oe.CircuitType,
		Result:        oe.Result,
	}
}

// ProofVerifiedEvent is the queue DTO consumed by credential-issuance and
// attestation collaborators.
type ProofVerifiedEvent struct {
	EventId       string `json:"event_id"`
	ProofRecordId string `json:"proof_record_id"`
	UserId        string `json:"user_id"`
	DocumentId    string `json:"document_id"`
	CircuitType   string `json:"circuit_type"`
	Result        bool   `json:"result"`
}

func (e ProofVerifiedEvent) Serialize() ([]byte, error) {
	return utilities.Serialize[ProofVerifiedEvent](e)
}
