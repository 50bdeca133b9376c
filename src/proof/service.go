package proof

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"idproof/pkg/logger"
	"idproof/pkg/reasoncodes"
	"idproof/pkg/utilities/timeutil"
	"idproof/src/challenge"
	"idproof/src/circuits"
	"idproof/src/claims"
	"idproof/src/merkle"
	"idproof/src/model"
	"idproof/src/zkengine"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// commitmentSemantic maps each circuit to the stored commitment it must open.
// The binding circuit opens the user id hash instead of a claim commitment.
var commitmentSemantic = map[circuits.CircuitType]model.SemanticType{
	circuits.AgeV1:         model.SemanticAge,
	circuits.DocValidityV1: model.SemanticDocValidity,
	circuits.MembershipV1:  model.SemanticNationality,
	circuits.FaceMatchV1:   model.SemanticFaceMatch,
}

// Policy holds the server-side minimums a proof must have been generated
// against. A proof proving a weaker threshold is rejected even when it
// verifies.
type Policy struct {
	MinimumAge         int64
	FaceMatchThreshold int64
	ApprovedGroup      string
	YearTolerance      int64
	EpochDayTolerance  int64
}

func DefaultPolicy() Policy {
	return Policy{
		MinimumAge:         18,
		FaceMatchThreshold: 6000,
		ApprovedGroup:      "EU",
		YearTolerance:      1,
		EpochDayTolerance:  2,
	}
}

type SubmitRequest struct {
	CircuitType      string   `json:"circuit_type"`
	DocumentId       string   `json:"document_id"`
	ProofBlob        string   `json:"proof_blob"`
	PublicSignals    []string `json:"public_signals"`
	GenerationTimeMs int64    `json:"generation_time_ms"`
}

// VerifiedClaim is the caller-visible outcome of an accepted submission.
type VerifiedClaim struct {
	RecordId           string `json:"record_id"`
	CircuitType        string `json:"circuit_type"`
	Result             bool   `json:"result"`
	VerificationTimeMs int64  `json:"verification_time_ms"`
}

type Service struct {
	Repo        Repository
	Claims      claims.Repository
	Challenges  *challenge.Service
	Verifier    zkengine.Verifier
	Accumulator *merkle.Accumulator
	Policy      Policy
	Now         func() time.Time
}

func NewService(repo Repository, claimStore claims.Repository, challenges *challenge.Service, verifier zkengine.Verifier, accumulator *merkle.Accumulator, policy Policy) *Service {
	return &Service{
		Repo:        repo,
		Claims:      claimStore,
		Challenges:  challenges,
		Verifier:    verifier,
		Accumulator: accumulator,
		Policy:      policy,
		Now:         func() time.Time { return time.Now().UTC() },
	}
}

// SubmitProof runs the full acceptance pipeline. Validation and policy run
// before the cryptographic check; the nonce is consumed only after every
// check passed, so a client hitting a transient failure can retry with the
// same challenge. Nothing is persisted for rejected submissions except the
// failure row.
func (s *Service) SubmitProof(ctx context.Context, userId string, req SubmitRequest) (*VerifiedClaim, *ProofError) {
	claim, perr := s.submit(ctx, userId, req)
	if perr != nil {
		s.recordFailure(userId, req, perr)
	}
	return claim, perr
}

func (s *Service) submit(ctx context.Context, userId string, req SubmitRequest) (*VerifiedClaim, *ProofError) {
	circuitType := circuits.CircuitType(req.CircuitType)
	spec, err := circuits.SpecFor(circuitType)
	if err != nil {
		return nil, validationError("unknown circuit type", err)
	}
	if len(req.PublicSignals) < spec.MinPublicInputs {
		return nil, validationError(
			fmt.Sprintf("expected at least %d public signals, got %d", spec.MinPublicInputs, len(req.PublicSignals)), nil)
	}

	if perr := s.checkCommitmentBinding(userId, circuitType, spec, req); perr != nil {
		return nil, perr
	}
	if perr := s.checkStaleness(req.PublicSignals[0]); perr != nil {
		return nil, perr
	}
	if perr := s.checkPolicyThreshold(circuitType, req.PublicSignals); perr != nil {
		return nil, perr
	}

	verifyStarted := s.Now()
	if err := s.Verifier.Verify(ctx, circuitType, req.ProofBlob, req.PublicSignals); err != nil {
		if errors.Is(err, zkengine.ErrArtifactsUnavailable) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, upstreamError("verifier unavailable", err)
		}
		return nil, cryptographicError("proof verification failed", err)
	}
	verificationTimeMs := time.Since(verifyStarted).Milliseconds()

	// The verified proof's own output is the only source of truth for the
	// result; client-supplied fields never decide it.
	result, perr := parseResultBit(req.PublicSignals[spec.ResultIndex])
	if perr != nil {
		return nil, perr
	}

	nonce, err := zkengine.FieldToNonce(req.PublicSignals[spec.NonceIndex])
	if err != nil {
		return nil, validationError("malformed nonce signal", err)
	}
	if err := s.Challenges.Consume(nonce, userId, req.CircuitType); err != nil {
		return nil, replayError("challenge not consumable", err)
	}

	record := &model.ProofRecord{
		RecordId:           uuid.New().String(),
		UserId:             userId,
		DocumentId:         req.DocumentId,
		CircuitType:        req.CircuitType,
		ProofBlob:          []byte(req.ProofBlob),
		PublicSignals:      serializeSignals(req.PublicSignals),
		Verified:           true,
		Result:             result,
		GenerationTimeMs:   req.GenerationTimeMs,
		VerificationTimeMs: verificationTimeMs,
	}
	if err := s.Repo.CreateRecord(record); err != nil {
		return nil, &ProofError{Reason: reasoncodes.ErrPersistence, Msg: "could not persist proof record", Err: err}
	}

	event := &model.OutboxEvent{
		EventId:       uuid.New().String(),
		ProofRecordId: record.RecordId,
		UserId:        userId,
		DocumentId:    req.DocumentId,
		CircuitType:   req.CircuitType,
		Result:        result,
	}
	if err := s.Repo.CreateOutboxEvent(event); err != nil {
		logger.Default().Error(err, "Could not park proof-verified event")
	}

	return &VerifiedClaim{
		RecordId:           record.RecordId,
		CircuitType:        req.CircuitType,
		Result:             result,
		VerificationTimeMs: verificationTimeMs,
	}, nil
}

// checkCommitmentBinding ties the submitted proof to the commitment the
// ingest path stored for (user, document, semantic type). A proof opening any
// other value is rejected before the cryptographic check; a record keyed by a
// document id is only ever written for commitments that document produced.
func (s *Service) checkCommitmentBinding(userId string, circuitType circuits.CircuitType, spec circuits.CircuitSpec, req SubmitRequest) *ProofError {
	semanticType, opensCommitment := commitmentSemantic[circuitType]
	if !opensCommitment {
		return nil
	}

	commitment, err := s.Claims.GetByOwner(userId, req.DocumentId, semanticType)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return validationError(
			fmt.Sprintf("no %s commitment stored for document %s", semanticType, req.DocumentId), err)
	}
	if err != nil {
		return &ProofError{Reason: reasoncodes.ErrPersistence, Msg: "could not load claim commitment", Err: err}
	}
	if req.PublicSignals[spec.ClaimHashIndex] != commitment.ClaimHash {
		return policyError("claim-hash signal does not open the stored commitment")
	}
	return nil
}

// checkStaleness rejects proofs whose embedded year drifted too far from the
// server clock, even when they verify.
func (s *Service) checkStaleness(yearSignal string) *ProofError {
	year, err := strconv.ParseInt(yearSignal, 10, 64)
	if err != nil {
		return validationError("malformed year signal", err)
	}
	serverYear := int64(s.Now().Year())
	drift := year - serverYear
	if drift < 0 {
		drift = -drift
	}
	if drift > s.Policy.YearTolerance {
		return policyError(fmt.Sprintf("embedded year %d outside tolerance of server year %d", year, serverYear))
	}
	return nil
}

// checkPolicyThreshold compares the threshold the prover asserted against the
// server's own minimum. Proving against a weaker threshold never passes.
func (s *Service) checkPolicyThreshold(circuitType circuits.CircuitType, signals []string) *ProofError {
	switch circuitType {
	case circuits.AgeV1:
		minAge, err := strconv.ParseInt(signals[1], 10, 64)
		if err != nil {
			return validationError("malformed minimum-age signal", err)
		}
		if minAge < s.Policy.MinimumAge {
			return policyError(fmt.Sprintf("proof asserts minimum age %d, policy requires %d", minAge, s.Policy.MinimumAge))
		}
	case circuits.FaceMatchV1:
		threshold, err := strconv.ParseInt(signals[1], 10, 64)
		if err != nil {
			return validationError("malformed threshold signal", err)
		}
		if threshold < s.Policy.FaceMatchThreshold {
			return policyError(fmt.Sprintf("proof asserts match threshold %d, policy requires %d", threshold, s.Policy.FaceMatchThreshold))
		}
	case circuits.MembershipV1:
		root, err := s.Accumulator.RootFor(s.Policy.ApprovedGroup)
		if err != nil {
			return upstreamError("approved group root unavailable", err)
		}
		if signals[1] != root.String() {
			return policyError(fmt.Sprintf("proof root does not match the %s group", s.Policy.ApprovedGroup))
		}
	case circuits.DocValidityV1:
		epochDays, err := strconv.ParseInt(signals[1], 10, 64)
		if err != nil {
			return validationError("malformed epoch-days signal", err)
		}
		serverDays := timeutil.EpochDays(s.Now())
		drift := epochDays - serverDays
		if drift < 0 {
			drift = -drift
		}
		if drift > s.Policy.EpochDayTolerance {
			return policyError(fmt.Sprintf("embedded day %d outside tolerance of server day %d", epochDays, serverDays))
		}
	case circuits.BindingV1:
		// Signal 1 is the user id hash; there is no threshold to compare.
	}
	return nil
}

func parseResultBit(signal string) (bool, *ProofError) {
	switch signal {
	case "1":
		return true, nil
	case "0":
		return false, nil
	default:
		return false, validationError("result signal is not a boolean bit", nil)
	}
}

func serializeSignals(signals []string) string {
	raw, err := json.Marshal(signals)
	if err != nil {
		return "[]"
	}
	return string(raw)
}

func (s *Service) recordFailure(userId string, req SubmitRequest, perr *ProofError) {
	rawBody, err := json.Marshal(req)
	if err != nil {
		rawBody = []byte(serializeSignals(req.PublicSignals))
	}
	failure := &model.ProofFailure{
		UserId:      userId,
		CircuitType: req.CircuitType,
		RequestBody: rawBody,
		Error:       perr.Error(),
		ReasonCode:  string(perr.Reason),
	}
	if err := s.Repo.CreateFailure(failure); err != nil {
		logger.Default().Error(err, "Could not persist proof failure")
	}
}

// RecordStatus reports the latest verification outcome for a document and
// circuit.
func (s *Service) RecordStatus(userId, documentId, circuitType string) (*model.ProofRecord, error) {
	return s.Repo.LatestRecord(userId, documentId, circuitType)
}
