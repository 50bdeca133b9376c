package challenge

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"idproof/src/database"
	"idproof/src/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueChallenge(t *testing.T) {
	db := database.NewTestDatabase(t)
	service := NewService(NewRepository(db), 0)

	challenge, err := service.Issue("user-1", "age_v1")
	require.NoError(t, err)

	assert.Len(t, challenge.Nonce, 32)
	assert.Equal(t, "user-1", challenge.UserId)
	assert.True(t, challenge.ExpiresAt.After(challenge.IssuedAt))
	assert.True(t, challenge.Live(time.Now().UTC()))
}

func TestIssueGeneratesUniqueNonces(t *testing.T) {
	db := database.NewTestDatabase(t)
	service := NewService(NewRepository(db), 0)

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		challenge, err := service.Issue("user-1", "age_v1")
		require.NoError(t, err)
		assert.False(t, seen[challenge.Nonce])
		seen[challenge.Nonce] = true
	}
}

func TestConsumeIsSingleUse(t *testing.T) {
	db := database.NewTestDatabase(t)
	service := NewService(NewRepository(db), 0)

	challenge, err := service.Issue("user-1", "age_v1")
	require.NoError(t, err)

	require.NoError(t, service.Consume(challenge.Nonce, "user-1", "age_v1"))

	err = service.Consume(challenge.Nonce, "user-1", "age_v1")
	assert.ErrorIs(t, err, ErrChallengeConsumed)
}

func TestConsumeForeignNonce(t *testing.T) {
	db := database.NewTestDatabase(t)
	service := NewService(NewRepository(db), 0)

	challenge, err := service.Issue("user-1", "age_v1")
	require.NoError(t, err)

	err = service.Consume(challenge.Nonce, "user-2", "age_v1")
	assert.ErrorIs(t, err, ErrChallengeNotFound)

	err = service.Consume(challenge.Nonce, "user-1", "face_match_v1")
	assert.ErrorIs(t, err, ErrChallengeNotFound)

	// The failed attempts did not burn the nonce.
	require.NoError(t, service.Consume(challenge.Nonce, "user-1", "age_v1"))
}

func TestConsumeExpired(t *testing.T) {
	db := database.NewTestDatabase(t)
	repo := NewRepository(db)
	service := NewService(repo, 0)

	expired := &model.Challenge{
		Nonce:       "00112233445566778899aabbccddeeff",
		UserId:      "user-1",
		CircuitType: "age_v1",
		IssuedAt:    time.Now().UTC().Add(-10 * time.Minute),
		ExpiresAt:   time.Now().UTC().Add(-5 * time.Minute),
	}
	require.NoError(t, repo.Create(expired))

	err := service.Consume(expired.Nonce, "user-1", "age_v1")
	assert.ErrorIs(t, err, ErrChallengeExpired)
}

func TestConsumeRaceHasSingleWinner(t *testing.T) {
	db := database.NewTestDatabase(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	service := NewService(NewRepository(db), 0)
	issued, err := service.Issue("user-1", "age_v1")
	require.NoError(t, err)

	const racers = 8
	var (
		waitGroup sync.WaitGroup
		successes int32
		replays   int32
	)
	for i := 0; i < racers; i++ {
		waitGroup.Add(1)
		go func() {
			defer waitGroup.Done()
			switch err := service.Consume(issued.Nonce, "user-1", "age_v1"); err {
			case nil:
				atomic.AddInt32(&successes, 1)
			case ErrChallengeConsumed:
				atomic.AddInt32(&replays, 1)
			}
		}()
	}
	waitGroup.Wait()

	assert.EqualValues(t, 1, successes)
	assert.EqualValues(t, racers-1, replays)
}

func TestConsumeUnknownNonce(t *testing.T) {
	db := database.NewTestDatabase(t)
	service := NewService(NewRepository(db), 0)

	err := service.Consume("ffffffffffffffffffffffffffffffff", "user-1", "age_v1")
	assert.ErrorIs(t, err, ErrChallengeNotFound)
}

func TestDeleteExpiredKeepsLiveChallenges(t *testing.T) {
	db := database.NewTestDatabase(t)
	repo := NewRepository(db)
	service := NewService(repo, 0)

	live, err := service.Issue("user-1", "age_v1")
	require.NoError(t, err)

	expired := &model.Challenge{
		Nonce:       "00112233445566778899aabbccddeeff",
		UserId:      "user-1",
		CircuitType: "age_v1",
		IssuedAt:    time.Now().UTC().Add(-10 * time.Minute),
		ExpiresAt:   time.Now().UTC().Add(-5 * time.Minute),
	}
	require.NoError(t, repo.Create(expired))

	deleted, err := repo.DeleteExpired(time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = repo.GetByNonce(live.Nonce)
	assert.NoError(t, err)
}
