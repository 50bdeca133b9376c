package claims

import (
	"fmt"

	"idproof/src/model"
)

// ClaimInput is one attribute of a verified document, carried as a decimal
// field element. Raw values are hashed into commitments and discarded.
type ClaimInput struct {
	SemanticType model.SemanticType `json:"semantic_type"`
	Value        string             `json:"value"`
}

type IngestRequest struct {
	DocumentId   string       `json:"document_id"`
	DocumentHash string       `json:"document_hash"`
	Claims       []ClaimInput `json:"claims"`
}

var knownSemanticTypes = map[model.SemanticType]bool{
	model.SemanticAge:         true,
	model.SemanticDocValidity: true,
	model.SemanticNationality: true,
	model.SemanticFaceMatch:   true,
}

type Service struct {
	Repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{Repo: repo}
}

// IngestClaims commits every claim of the request under the caller's user id.
// Existing commitments for the same document and semantic type are replaced.
func (s *Service) IngestClaims(userId string, req IngestRequest) ([]model.ClaimCommitment, error) {
	docHash, err := ParseFieldElement(req.DocumentHash)
	if err != nil {
		return nil, fmt.Errorf("document_hash: %w", err)
	}

	commitments := make([]model.ClaimCommitment, 0, len(req.Claims))
	for _, claim := range req.Claims {
		if !knownSemanticTypes[claim.SemanticType] {
			return nil, fmt.Errorf("unknown semantic type %q", claim.SemanticType)
		}
		value, err := ParseFieldElement(claim.Value)
		if err != nil {
			return nil, fmt.Errorf("claim %s: %w", claim.SemanticType, err)
		}
		claimHash, err := ComputeClaimHash(value, docHash)
		if err != nil {
			return nil, fmt.Errorf("claim %s: %w", claim.SemanticType, err)
		}
		commitments = append(commitments, model.ClaimCommitment{
			UserId:            userId,
			DocumentId:        req.DocumentId,
			SemanticType:      claim.SemanticType,
			ClaimHash:         claimHash.String(),
			DocumentHashField: docHash.String(),
		})
	}

	for i := range commitments {
		if err := s.Repo.Upsert(&commitments[i]); err != nil {
			return nil, err
		}
	}
	return commitments, nil
}

func (s *Service) GetCommitment(userId, documentId string, semanticType model.SemanticType) (*model.ClaimCommitment, error) {
	return s.Repo.GetByOwner(userId, documentId, semanticType)
}
