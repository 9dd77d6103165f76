package handlers

import (
	"errors"
	"net/http"

	"go-smartstore/internal/ledger"
	"go-smartstore/internal/store"

	"github.com/gin-gonic/gin"
)

// --- GET: List sales, newest first ---
func GetSales(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, st.Sales())
	}
}

// --- POST: Record a sale ---
// The one path that can be rejected: if any line asks for more than is in
// stock the whole sale is aborted — no document, no stock change — and the
// frontend gets a 409 to show the operator.
func CreateSale(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input store.SaleInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		sale, err := st.CreateSale(input)
		if err != nil {
			var stockErr *ledger.InsufficientStockError
			if errors.As(err, &stockErr) {
				c.JSON(http.StatusConflict, gin.H{
					"error":     "Not enough stock for some items. Sale aborted.",
					"productId": stockErr.ProductID,
					"requested": stockErr.Requested,
					"available": stockErr.Available,
				})
				return
			}
			respondStoreError(c, err)
			return
		}
		c.JSON(http.StatusCreated, sale)
	}
}

// --- PUT: Edit a sale ---
// Totals recomputed, stock untouched — same deliberate gap as purchases.
func UpdateSale(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input store.SaleInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		sale, err := st.UpdateSale(c.Param("id"), input)
		if err != nil {
			respondStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, sale)
	}
}

// --- DELETE: Remove a sale (stock stays as-is) ---
func DeleteSale(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := st.DeleteSale(c.Param("id")); err != nil {
			respondStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Sale deleted. Stock was not reverted."})
	}
}
