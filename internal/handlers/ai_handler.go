package handlers

import (
	"net/http"
	"os"

	"go-smartstore/internal/ai"
	"go-smartstore/internal/store"

	"github.com/gin-gonic/gin"
)

type AskRequest struct {
	Message string `json:"message" binding:"required"`
}

// AskAI runs the shop assistant. Needs GEMINI_API_KEY in .env.
func AskAI(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AskRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
			return
		}

		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI assistant is not configured"})
			return
		}

		response, err := ai.RunAgent(req.Message, apiKey, st)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"reply": response})
	}
}
