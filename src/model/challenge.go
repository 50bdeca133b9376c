package model

import "time"

// Challenge is a one-time nonce issued for a single proof generation.
// The unique index on Nonce plus the conditional update in the repository
// make consumption linearizable.
type Challenge struct {
	Id          int    `gorm:"primaryKey;autoIncrement"`
	Nonce       string `gorm:"uniqueIndex;not null"` // hex, 128 bits
	UserId      string `gorm:"index;not null"`
	CircuitType string `gorm:"not null"`
	IssuedAt    time.Time
	ExpiresAt   time.Time `gorm:"index"`
	ConsumedAt  *time.Time
}

func (c Challenge) Live(now time.Time) bool {
	return c.ConsumedAt == nil && now.Before(c.ExpiresAt)
}
