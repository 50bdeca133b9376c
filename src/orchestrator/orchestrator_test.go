package orchestrator

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"testing"

	"idproof/src/circuits"
	"idproof/src/merkle"
	"idproof/src/proof"
	"idproof/src/zkengine"

	"github.com/consensys/gnark/frontend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChallengeSource struct {
	mu      sync.Mutex
	issued  int
	failFor string
}

func (f *fakeChallengeSource) FetchChallenge(ctx context.Context, circuitType string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if circuitType == f.failFor {
		return "", fmt.Errorf("challenge endpoint down")
	}
	f.issued++
	return fmt.Sprintf("%032x", f.issued), nil
}

type fakeProver struct {
	order   []circuits.CircuitType
	failFor circuits.CircuitType
}

func (f *fakeProver) Prove(ctx context.Context, circuitType circuits.CircuitType, assignment frontend.Circuit) (*zkengine.ProofResult, error) {
	f.order = append(f.order, circuitType)
	if circuitType == f.failFor {
		return nil, fmt.Errorf("constraint system unsatisfied")
	}
	return &zkengine.ProofResult{
		CircuitType:   circuitType,
		Blob:          "blob-" + string(circuitType),
		PublicSignals: []string{"2026", "18", "1", "1", "2"},
	}, nil
}

type fakeSink struct {
	submitted []proof.SubmitRequest
	failFor   string
}

func (f *fakeSink) SubmitProof(ctx context.Context, req proof.SubmitRequest) error {
	if req.CircuitType == f.failFor {
		return fmt.Errorf("server rejected")
	}
	f.submitted = append(f.submitted, req)
	return nil
}

func fullBundle() *ClaimBundle {
	return &ClaimBundle{
		DocumentId:      "doc-1",
		DocumentHash:    big.NewInt(424242),
		DateOfBirthDays: big.NewInt(10957),
		ExpiryDays:      big.NewInt(21000),
		NationalityCode: big.NewInt(merkle.DEU),
		FaceScoreFixed:  big.NewInt(8700),
		BindingSecret:   big.NewInt(123456789),
		UserIdHash:      big.NewInt(987654321),
		Group:           "EU",
	}
}

func newTestOrchestrator(source ChallengeSource, prover zkengine.Prover, sink ProofSink) *Orchestrator {
	return New(source, prover, sink, merkle.NewAccumulator(), DefaultSessionPolicy())
}

func TestRunProvesEveryCircuitInOrder(t *testing.T) {
	prover := &fakeProver{}
	sink := &fakeSink{}
	o := newTestOrchestrator(&fakeChallengeSource{}, prover, sink)

	results, err := o.Run(context.Background(), fullBundle())
	require.NoError(t, err)

	assert.Len(t, results, len(circuits.GenerationOrder))
	assert.Equal(t, circuits.GenerationOrder, prover.order)
	assert.Len(t, sink.submitted, len(circuits.GenerationOrder))
	for i, req := range sink.submitted {
		assert.Equal(t, string(circuits.GenerationOrder[i]), req.CircuitType)
		assert.Equal(t, "doc-1", req.DocumentId)
	}
}

func TestRunWipesBindingSecret(t *testing.T) {
	bundle := fullBundle()
	o := newTestOrchestrator(&fakeChallengeSource{}, &fakeProver{}, &fakeSink{})

	_, err := o.Run(context.Background(), bundle)
	require.NoError(t, err)
	assert.Equal(t, int64(0), bundle.BindingSecret.Int64())
}

func TestRunWipesBindingSecretOnFailure(t *testing.T) {
	bundle := fullBundle()
	o := newTestOrchestrator(&fakeChallengeSource{}, &fakeProver{failFor: circuits.AgeV1}, &fakeSink{})

	_, err := o.Run(context.Background(), bundle)
	require.Error(t, err)
	assert.Equal(t, int64(0), bundle.BindingSecret.Int64())
}

func TestRunMissingClaims(t *testing.T) {
	o := newTestOrchestrator(&fakeChallengeSource{}, &fakeProver{}, &fakeSink{})

	cases := []struct {
		mutate func(*ClaimBundle)
		want   error
	}{
		{func(b *ClaimBundle) { b.DateOfBirthDays = nil }, ErrMissingAgeClaim},
		{func(b *ClaimBundle) { b.ExpiryDays = nil }, ErrMissingExpiryClaim},
		{func(b *ClaimBundle) { b.NationalityCode = nil }, ErrMissingNationalityClaim},
		{func(b *ClaimBundle) { b.FaceScoreFixed = nil }, ErrMissingFaceMatchClaim},
		{func(b *ClaimBundle) { b.BindingSecret = nil }, ErrMissingBindingSecret},
		{func(b *ClaimBundle) { b.DocumentHash = nil }, ErrMissingDocumentHash},
	}
	for _, tc := range cases {
		bundle := fullBundle()
		tc.mutate(bundle)
		_, err := o.Run(context.Background(), bundle)
		assert.ErrorIs(t, err, tc.want)
	}
}

func TestRunAbortsBatchOnProverFailure(t *testing.T) {
	sink := &fakeSink{}
	o := newTestOrchestrator(&fakeChallengeSource{}, &fakeProver{failFor: circuits.MembershipV1}, sink)

	_, err := o.Run(context.Background(), fullBundle())
	require.Error(t, err)

	// Nothing reaches the server when any proof in the batch fails.
	assert.Empty(t, sink.submitted)
}

func TestRunAbortsOnChallengeFailure(t *testing.T) {
	prover := &fakeProver{}
	o := newTestOrchestrator(&fakeChallengeSource{failFor: "face_match_v1"}, prover, &fakeSink{})

	_, err := o.Run(context.Background(), fullBundle())
	require.Error(t, err)
	assert.Empty(t, prover.order)
}

func TestRunNonMemberNationality(t *testing.T) {
	sink := &fakeSink{}
	o := newTestOrchestrator(&fakeChallengeSource{}, &fakeProver{}, sink)

	bundle := fullBundle()
	bundle.NationalityCode = big.NewInt(merkle.MEX)

	_, err := o.Run(context.Background(), bundle)
	assert.ErrorIs(t, err, ErrNationalityNotInGroup)
	assert.Empty(t, sink.submitted)
}
