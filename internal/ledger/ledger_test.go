package ledger

import (
	"testing"

	"go-smartstore/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalog() []models.Product {
	return []models.Product{
		{ID: "p1", Name: "Rice 5kg", Stock: 12, CostPrice: 250, SellPrice: 300, Reorder: 5},
		{ID: "p2", Name: "Notebook", Stock: 40, CostPrice: 20, SellPrice: 35, Reorder: 10},
	}
}

func TestApplyPurchaseIncreasesStock(t *testing.T) {
	products := catalog()

	got := ApplyPurchase(products, []models.LineItem{
		{ProductID: "p1", Qty: 10, Price: 240},
		{ProductID: "p2", Qty: 5, Price: 18},
	})

	assert.Equal(t, 22.0, got[0].Stock)
	assert.Equal(t, 45.0, got[1].Stock)
	// input untouched
	assert.Equal(t, 12.0, products[0].Stock)
}

func TestApplyPurchaseSkipsUnknownProducts(t *testing.T) {
	products := catalog()

	got := ApplyPurchase(products, []models.LineItem{
		{ProductID: "ghost", Qty: 99},
		{ProductID: "p2", Qty: 5},
	})

	// Unknown reference ignored, known one applied, no error anywhere
	assert.Equal(t, 12.0, got[0].Stock)
	assert.Equal(t, 45.0, got[1].Stock)
}

func TestApplySaleDecrementsStockAndSoldCounter(t *testing.T) {
	// Product with stock 12, sell 5 -> stock 7
	products := catalog()

	got, err := ApplySale(products, []models.LineItem{{ProductID: "p1", Qty: 5, Price: 300}})
	require.NoError(t, err)

	assert.Equal(t, 7.0, got[0].Stock)
	assert.Equal(t, 5.0, got[0].Sold)
	assert.Equal(t, 12.0, products[0].Stock)
}

func TestApplySaleRejectsInsufficientStock(t *testing.T) {
	// Stock 3, ask for 5 -> the whole sale is rejected
	products := []models.Product{{ID: "p1", Stock: 3, SellPrice: 90}}

	got, err := ApplySale(products, []models.LineItem{{ProductID: "p1", Qty: 5, Price: 90}})

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "p1", stockErr.ProductID)
	assert.Equal(t, 5.0, stockErr.Requested)
	assert.Equal(t, 3.0, stockErr.Available)
	assert.Nil(t, got)
	assert.Equal(t, 3.0, products[0].Stock)
}

func TestApplySaleExactStockIsAllowed(t *testing.T) {
	products := []models.Product{{ID: "p1", Stock: 5}}

	got, err := ApplySale(products, []models.LineItem{{ProductID: "p1", Qty: 5}})
	require.NoError(t, err)
	assert.Equal(t, 0.0, got[0].Stock)
}

func TestApplySaleIsAllOrNothing(t *testing.T) {
	products := catalog()

	// First line fine, second line over stock: nothing may change
	_, err := ApplySale(products, []models.LineItem{
		{ProductID: "p2", Qty: 1},
		{ProductID: "p1", Qty: 100},
	})

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "p1", stockErr.ProductID)
	assert.Equal(t, 40.0, products[1].Stock)
	assert.Equal(t, 0.0, products[1].Sold)
}

func TestApplySaleRejectsUnknownProduct(t *testing.T) {
	products := catalog()

	_, err := ApplySale(products, []models.LineItem{{ProductID: "ghost", Qty: 1}})

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "ghost", stockErr.ProductID)
}

func TestApplySaleFloorsStockAtZeroForDuplicateLines(t *testing.T) {
	// Two lines for the same product each pass the per-line check; the
	// floor keeps stock from going negative.
	products := []models.Product{{ID: "p1", Stock: 10}}

	got, err := ApplySale(products, []models.LineItem{
		{ProductID: "p1", Qty: 7},
		{ProductID: "p1", Qty: 7},
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, got[0].Stock)
	assert.Equal(t, 14.0, got[0].Sold)
}

func TestResolveSaleLinesFallsBackToSellPrice(t *testing.T) {
	products := catalog()

	got := ResolveSaleLines(products, []models.LineItem{
		{ProductID: "p1", Qty: 2},            // no override -> sell price
		{ProductID: "p2", Qty: 1, Price: 30}, // explicit override stays
		{ProductID: "ghost", Qty: 1},         // unknown -> stays 0
	})

	assert.Equal(t, 300.0, got[0].Price)
	assert.Equal(t, 30.0, got[1].Price)
	assert.Equal(t, 0.0, got[2].Price)
}

func TestResolvePurchaseLinesFallsBackToCostPrice(t *testing.T) {
	products := catalog()

	got := ResolvePurchaseLines(products, []models.LineItem{{ProductID: "p1", Qty: 2}})
	assert.Equal(t, 250.0, got[0].Price)
}
