package challenge

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"idproof/pkg/utilities"
	"idproof/src/model"
	"idproof/src/zkengine"
)

// DefaultTTL bounds how long an issued nonce stays provable.
const DefaultTTL = 5 * time.Minute

type Service struct {
	Repo Repository
	TTL  time.Duration
}

func NewService(repo Repository, ttl time.Duration) *Service {
	return &Service{
		Repo: repo,
		TTL:  utilities.Ternary(ttl > 0, ttl, DefaultTTL),
	}
}

// Issue creates a fresh single-use nonce bound to a user and circuit type.
func (s *Service) Issue(userId, circuitType string) (*model.Challenge, error) {
	raw := make([]byte, zkengine.NonceByteLength)
	if _, err := rand.Read(raw); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	challenge := &model.Challenge{
		Nonce:       hex.EncodeToString(raw),
		UserId:      userId,
		CircuitType: circuitType,
		IssuedAt:    now,
		ExpiresAt:   now.Add(s.TTL),
	}
	if err := s.Repo.Create(challenge); err != nil {
		return nil, err
	}
	return challenge, nil
}

// Consume retires a nonce issued for this user and circuit. It succeeds at
// most once per nonce; all later calls report the reason the nonce is no
// longer live.
func (s *Service) Consume(nonce, userId, circuitType string) error {
	return s.Repo.ConsumeAtomic(nonce, userId, circuitType, time.Now().UTC())
}

// Peek inspects a nonce without consuming it.
func (s *Service) Peek(nonce string) (*model.Challenge, error) {
	return s.Repo.GetByNonce(nonce)
}
