package handlers

import (
	"errors"
	"net/http"

	"go-smartstore/internal/models"
	"go-smartstore/internal/store"

	"github.com/gin-gonic/gin"
)

// --- GET: List the catalog ---
func GetProducts(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, st.Products())
	}
}

// --- POST: Add a product (no id), PUT: edit one (id in URL) ---
func SaveProduct(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form models.Product
		if err := c.ShouldBindJSON(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}
		// The edit route wins over whatever id the body carries
		if id := c.Param("id"); id != "" {
			form.ID = id
		}

		product, err := st.SaveProduct(form)
		if err != nil {
			respondStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// --- DELETE: Remove a product ---
// Old purchases and sales keep their line references; only the catalog
// entry disappears.
func DeleteProduct(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := st.DeleteProduct(c.Param("id")); err != nil {
			respondStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}

// respondStoreError maps the store's error types onto HTTP statuses.
func respondStoreError(c *gin.Context, err error) {
	var vErr *store.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message, "field": vErr.Field})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
