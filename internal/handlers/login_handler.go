package handlers

import (
	"net/http"
	"os"

	"go-smartstore/internal/auth"
	"go-smartstore/internal/models"
	"go-smartstore/internal/store"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	StoreID    string `json:"storeId" binding:"required"`
	LicenseKey string `json:"licenseKey" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// Login checks the store credentials and opens a session.
//
// This is a static credential check against the configured values, not a
// security boundary — one shop, one operator. Demo defaults keep a fresh
// install usable: demo / KEY-2024 / admin.
func Login(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginRequest
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		if input.StoreID != envOr("STORE_ID", "demo") ||
			input.LicenseKey != envOr("STORE_LICENSE_KEY", "KEY-2024") ||
			!checkPassword(input.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials. Please check your details."})
			return
		}

		user := models.StoreUser{
			StoreID: input.StoreID,
			Name:    envOr("STORE_NAME", "Demo Store"),
		}

		// Persist the session marker record
		if err := st.Login(user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
			return
		}

		token, err := auth.GenerateToken(user.StoreID, user.Name)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"token": token,
			"user":  user,
		})
	}
}

// Logout clears the session marker record.
func Logout(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := st.Logout(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear session"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}

// checkPassword prefers a bcrypt hash when one is configured, so the real
// password never has to sit in the .env file.
func checkPassword(password string) bool {
	if hash := os.Getenv("STORE_PASSWORD_HASH"); hash != "" {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
	}
	return password == envOr("STORE_PASSWORD", "admin")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
