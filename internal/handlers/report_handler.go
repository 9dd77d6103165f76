package handlers

import (
	"net/http"

	"go-smartstore/internal/store"

	"github.com/gin-gonic/gin"
)

// --- GET: /api/reports ---
// Dashboard numbers: today's sales total, catalog size, low-stock alerts
// and the recent purchases/sales panels.
func GetDashboard(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, st.Dashboard())
	}
}

// --- GET: /api/reports/valuation ---
// GetStockValuation prices the entire inventory at cost, grouped by
// category, with a grand total at the bottom.
func GetStockValuation(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, st.StockValuation())
	}
}
