package claims

import (
	"net/http"

	"idproof/pkg/utilities"
	"idproof/src/model"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

// IngestClaims godoc
// @Summary      Register claim commitments
// @Description  Hashes document claims into commitments and stores them for the authenticated user
// @Tags         Claims
// @Accept       json
// @Produce      json
// @Param        body  body      claims.IngestRequest  true  "Document claims"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /v1/claims [post]
func (h *Handler) IngestClaims(c *gin.Context) {
	userId := c.GetString("user_id")
	if userId == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing user identity"})
		return
	}

	var req IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.DocumentId == "" || len(req.Claims) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	commitments, err := h.Service.IngestClaims(userId, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"document_id": req.DocumentId,
		"stored":      len(commitments),
	})
}

// ListCommitments godoc
// @Summary      List claim commitments for a document
// @Tags         Claims
// @Produce      json
// @Param        document_id  path  string  true  "Document ID"
// @Success      200  {array}   model.ClaimCommitment
// @Failure      401  {object}  map[string]string
// @Router       /v1/claims/{document_id} [get]
func (h *Handler) ListCommitments(c *gin.Context) {
	userId := c.GetString("user_id")
	if userId == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing user identity"})
		return
	}

	commitments, err := h.Service.Repo.ListByDocument(userId, c.Param("document_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load commitments"})
		return
	}

	c.JSON(http.StatusOK, utilities.Map(commitments, func(commitment model.ClaimCommitment) gin.H {
		return gin.H{
			"semantic_type": commitment.SemanticType,
			"claim_hash":    commitment.ClaimHash,
			"created_at":    commitment.CreatedAt,
		}
	}))
}

// RevokeDocument godoc
// @Summary      Revoke the claim commitments of a document
// @Description  Removes every commitment stored for the document; later proof submissions against it are rejected
// @Tags         Claims
// @Produce      json
// @Param        document_id  path  string  true  "Document ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/claims/{document_id} [delete]
func (h *Handler) RevokeDocument(c *gin.Context) {
	userId := c.GetString("user_id")
	if userId == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing user identity"})
		return
	}

	deleted, err := h.Service.Repo.DeleteByDocument(userId, c.Param("document_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not revoke commitments"})
		return
	}
	if deleted == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No commitments for document"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"revoked": deleted})
}
