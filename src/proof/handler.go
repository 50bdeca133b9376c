package proof

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	Service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

// SubmitProof godoc
// @Summary      Submit a proof for verification
// @Description  Verifies a zero-knowledge proof, enforces policy, consumes the challenge nonce and persists the record
// @Tags         Proof
// @Accept       json
// @Produce      json
// @Param        body  body      proof.SubmitRequest  true  "Proof submission"
// @Success      201  {object}  proof.VerifiedClaim
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /v1/proof [post]
func (h *Handler) SubmitProof(c *gin.Context) {
	userId := c.GetString("user_id")
	if userId == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing user identity"})
		return
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	claim, perr := h.Service.SubmitProof(c.Request.Context(), userId, req)
	if perr != nil {
		c.JSON(perr.HttpStatus(), gin.H{
			"error":       perr.Msg,
			"reason_code": string(perr.Reason),
		})
		return
	}

	c.JSON(http.StatusCreated, claim)
}

// GetProofStatus godoc
// @Summary      Latest verification status
// @Description  Returns the newest proof record for a document and circuit
// @Tags         Proof
// @Produce      json
// @Param        document_id   path  string  true  "Document ID"
// @Param        circuit_type  path  string  true  "Circuit type"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /v1/proof/{document_id}/{circuit_type}/status [get]
func (h *Handler) GetProofStatus(c *gin.Context) {
	userId := c.GetString("user_id")
	if userId == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing user identity"})
		return
	}

	record, err := h.Service.RecordStatus(userId, c.Param("document_id"), c.Param("circuit_type"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "No proof record"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load proof record"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"record_id":            record.RecordId,
		"circuit_type":         record.CircuitType,
		"verified":             record.Verified,
		"result":               record.Result,
		"generation_time_ms":   record.GenerationTimeMs,
		"verification_time_ms": record.VerificationTimeMs,
		"created_at":           record.CreatedAt,
	})
}
