package handlers

import (
	"net/http"

	"go-smartstore/internal/store"

	"github.com/gin-gonic/gin"
)

// --- GET: List purchases, newest first ---
func GetPurchases(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, st.Purchases())
	}
}

// --- POST: Record a purchase ---
// Stock goes UP for every line, totals and the PUR-YYYY-NNNN invoice id are
// derived by the store. There is no stock rejection on the way in.
func CreatePurchase(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input store.PurchaseInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		purchase, err := st.CreatePurchase(input)
		if err != nil {
			respondStoreError(c, err)
			return
		}
		c.JSON(http.StatusCreated, purchase)
	}
}

// --- PUT: Edit a purchase ---
// Totals are recomputed from the new lines; stock is NOT reconciled for
// edits (see Store.UpdatePurchase).
func UpdatePurchase(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input store.PurchaseInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		purchase, err := st.UpdatePurchase(c.Param("id"), input)
		if err != nil {
			respondStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, purchase)
	}
}

// --- DELETE: Remove a purchase (stock stays as-is) ---
func DeletePurchase(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := st.DeletePurchase(c.Param("id")); err != nil {
			respondStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Purchase deleted. Stock was not reverted."})
	}
}
