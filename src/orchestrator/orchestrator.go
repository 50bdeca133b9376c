package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"idproof/pkg/utilities/timeutil"
	"idproof/src/circuits"
	"idproof/src/claims"
	"idproof/src/merkle"
	"idproof/src/proof"
	"idproof/src/zkengine"

	"github.com/consensys/gnark/frontend"
)

// Typed preconditions so a caller can redirect the user to regenerate the
// specific missing upstream artifact.
var (
	ErrMissingAgeClaim         = errors.New("missing age claim value")
	ErrMissingExpiryClaim      = errors.New("missing document expiry claim value")
	ErrMissingNationalityClaim = errors.New("missing nationality claim value")
	ErrMissingFaceMatchClaim   = errors.New("missing face-match claim value")
	ErrMissingBindingSecret    = errors.New("missing binding secret")
	ErrMissingDocumentHash     = errors.New("missing document hash")
	ErrNationalityNotInGroup   = errors.New("nationality is not in the requested group")
)

type ChallengeSource interface {
	FetchChallenge(ctx context.Context, circuitType string) (string, error)
}

type ProofSink interface {
	SubmitProof(ctx context.Context, req proof.SubmitRequest) error
}

// ClaimBundle carries the client-side private values of one verification
// session. BindingSecret is wiped when the session ends, on every path.
type ClaimBundle struct {
	DocumentId      string
	DocumentHash    *big.Int
	DateOfBirthDays *big.Int
	ExpiryDays      *big.Int
	NationalityCode *big.Int
	FaceScoreFixed  *big.Int
	BindingSecret   *big.Int
	UserIdHash      *big.Int
	Group           string
}

// SessionPolicy fixes the thresholds the client proves against. They must be
// at least as strong as the server's policy or the proofs will be rejected.
type SessionPolicy struct {
	MinimumAge         int64
	FaceMatchThreshold int64
}

func DefaultSessionPolicy() SessionPolicy {
	return SessionPolicy{MinimumAge: 18, FaceMatchThreshold: 6000}
}

// Orchestrator drives one full proving session: challenges fetched in
// parallel, proofs generated sequentially, persistence only after the whole
// batch succeeded.
type Orchestrator struct {
	Challenges  ChallengeSource
	Prover      zkengine.Prover
	Sink        ProofSink
	Accumulator *merkle.Accumulator
	Policy      SessionPolicy
	Now         func() time.Time
}

func New(challenges ChallengeSource, prover zkengine.Prover, sink ProofSink, accumulator *merkle.Accumulator, policy SessionPolicy) *Orchestrator {
	return &Orchestrator{
		Challenges:  challenges,
		Prover:      prover,
		Sink:        sink,
		Accumulator: accumulator,
		Policy:      policy,
		Now:         func() time.Time { return time.Now().UTC() },
	}
}

// Run executes the session. Any missing claim, missing inclusion proof or
// prover failure aborts the whole batch before anything is submitted;
// partial proof sets are never persisted.
func (o *Orchestrator) Run(ctx context.Context, bundle *ClaimBundle) (results []*zkengine.ProofResult, err error) {
	defer func() {
		if bundle.BindingSecret != nil {
			bundle.BindingSecret.SetInt64(0)
		}
	}()

	if err := validateBundle(bundle); err != nil {
		return nil, err
	}

	nonces, err := o.fetchChallenges(ctx)
	if err != nil {
		return nil, err
	}

	// Proving is CPU-bound; circuits run one at a time in a fixed order.
	for _, circuitType := range circuits.GenerationOrder {
		assignment, genErr := o.buildAssignment(circuitType, bundle, nonces[circuitType])
		if genErr != nil {
			return nil, genErr
		}
		result, proveErr := o.Prover.Prove(ctx, circuitType, assignment)
		if proveErr != nil {
			return nil, fmt.Errorf("prove %s: %w", circuitType, proveErr)
		}
		results = append(results, result)
	}

	// The storage boundary is a single-writer resource; submissions stay
	// sequential and happen only after every proof exists.
	for _, result := range results {
		submitErr := o.Sink.SubmitProof(ctx, proof.SubmitRequest{
			CircuitType:      string(result.CircuitType),
			DocumentId:       bundle.DocumentId,
			ProofBlob:        result.Blob,
			PublicSignals:    result.PublicSignals,
			GenerationTimeMs: result.GenerationTimeMs,
		})
		if submitErr != nil {
			return nil, fmt.Errorf("submit %s: %w", result.CircuitType, submitErr)
		}
	}

	return results, nil
}

func validateBundle(bundle *ClaimBundle) error {
	switch {
	case bundle.DocumentHash == nil:
		return ErrMissingDocumentHash
	case bundle.DateOfBirthDays == nil:
		return ErrMissingAgeClaim
	case bundle.ExpiryDays == nil:
		return ErrMissingExpiryClaim
	case bundle.NationalityCode == nil:
		return ErrMissingNationalityClaim
	case bundle.FaceScoreFixed == nil:
		return ErrMissingFaceMatchClaim
	case bundle.BindingSecret == nil || bundle.UserIdHash == nil:
		return ErrMissingBindingSecret
	}
	return nil
}

// fetchChallenges is I/O-bound, so all circuits fetch concurrently and join
// at the batch boundary.
func (o *Orchestrator) fetchChallenges(ctx context.Context) (map[circuits.CircuitType]*big.Int, error) {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		nonces   = make(map[circuits.CircuitType]*big.Int, len(circuits.GenerationOrder))
		firstErr error
	)

	for _, circuitType := range circuits.GenerationOrder {
		wg.Add(1)
		go func(ct circuits.CircuitType) {
			defer wg.Done()
			nonceHex, err := o.Challenges.FetchChallenge(ctx, string(ct))
			if err == nil {
				var field *big.Int
				field, err = zkengine.NonceToField(nonceHex)
				if err == nil {
					mu.Lock()
					nonces[ct] = field
					mu.Unlock()
					return
				}
			}
			mu.Lock()
			if firstErr == nil {
				firstErr = fmt.Errorf("challenge %s: %w", ct, err)
			}
			mu.Unlock()
		}(circuitType)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return nonces, nil
}

func (o *Orchestrator) buildAssignment(circuitType circuits.CircuitType, bundle *ClaimBundle, nonce *big.Int) (frontend.Circuit, error) {
	now := o.Now()
	currentYear := int64(now.Year())

	switch circuitType {
	case circuits.AgeV1:
		claimHash, err := claims.ComputeClaimHash(bundle.DateOfBirthDays, bundle.DocumentHash)
		if err != nil {
			return nil, err
		}
		return circuits.AgeAssignment(currentYear, o.Policy.MinimumAge, nonce, claimHash,
			bundle.DateOfBirthDays, bundle.DocumentHash), nil

	case circuits.DocValidityV1:
		claimHash, err := claims.ComputeClaimHash(bundle.ExpiryDays, bundle.DocumentHash)
		if err != nil {
			return nil, err
		}
		return circuits.DocValidityAssignment(currentYear, timeutil.EpochDays(now), nonce, claimHash,
			bundle.ExpiryDays, bundle.DocumentHash), nil

	case circuits.MembershipV1:
		inclusion, err := o.Accumulator.ProveMembership(bundle.Group, bundle.NationalityCode.Int64())
		if errors.Is(err, merkle.ErrNotAMember) {
			return nil, fmt.Errorf("%w: group %s", ErrNationalityNotInGroup, bundle.Group)
		}
		if err != nil {
			return nil, err
		}
		root, err := o.Accumulator.RootFor(bundle.Group)
		if err != nil {
			return nil, err
		}
		claimHash, err := claims.ComputeClaimHash(bundle.NationalityCode, bundle.DocumentHash)
		if err != nil {
			return nil, err
		}
		return circuits.MembershipAssignment(currentYear, root, nonce, claimHash,
			bundle.NationalityCode, bundle.DocumentHash,
			inclusion.PathElements, inclusion.PathIndices), nil

	case circuits.FaceMatchV1:
		claimHash, err := claims.ComputeClaimHash(bundle.FaceScoreFixed, bundle.DocumentHash)
		if err != nil {
			return nil, err
		}
		return circuits.FaceMatchAssignment(currentYear, o.Policy.FaceMatchThreshold, nonce, claimHash,
			bundle.FaceScoreFixed, bundle.DocumentHash), nil

	case circuits.BindingV1:
		return circuits.BindingAssignment(currentYear, nonce, bundle.UserIdHash, bundle.BindingSecret), nil

	default:
		return nil, circuits.ErrUnknownCircuit
	}
}
