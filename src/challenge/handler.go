package challenge

import (
	"net/http"

	"idproof/src/circuits"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

// IssueChallenge godoc
// @Summary      Issue a proof challenge
// @Description  Returns a fresh single-use nonce for the requested circuit
// @Tags         Challenge
// @Accept       json
// @Produce      json
// @Param        body  body      object{circuit_type=string}  true  "Circuit type"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /v1/proof-challenge [post]
func (h *Handler) IssueChallenge(c *gin.Context) {
	userId := c.GetString("user_id")
	if userId == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing user identity"})
		return
	}

	var req struct {
		CircuitType string `json:"circuit_type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	if _, err := circuits.SpecFor(circuits.CircuitType(req.CircuitType)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown circuit type"})
		return
	}

	challenge, err := h.Service.Issue(userId, req.CircuitType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not issue challenge"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"nonce":      challenge.Nonce,
		"expires_at": challenge.ExpiresAt,
	})
}
