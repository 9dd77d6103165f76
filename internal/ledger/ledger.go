// Package ledger holds the stock-mutation rules: what happens to product
// stock when a purchase or sale is committed. All functions work on copies
// and return the updated slice, so a rejected commit leaves the caller's
// products untouched.
package ledger

import (
	"fmt"
	"math"

	"go-smartstore/internal/models"
)

// InsufficientStockError - a sale asked for more units than we have (or
// referenced a product that doesn't exist). The whole sale is rejected.
type InsufficientStockError struct {
	ProductID string
	Requested float64
	Available float64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %v, available %v",
		e.ProductID, e.Requested, e.Available)
}

// ApplyPurchase adds each line's quantity to the referenced product's stock.
// Lines pointing at unknown product ids are silently skipped. A purchase
// commit never fails.
func ApplyPurchase(products []models.Product, lines []models.LineItem) []models.Product {
	out := clone(products)
	idx := indexByID(out)

	for _, ln := range lines {
		i, ok := idx[ln.ProductID]
		if !ok {
			continue
		}
		out[i].Stock += ln.Qty
	}
	return out
}

// ApplySale deducts each line's quantity from the referenced product's stock
// and bumps its sold counter. The check runs over ALL lines before anything
// is touched: one bad line rejects the entire sale (all-or-nothing), so a
// returned error means no product changed at all.
func ApplySale(products []models.Product, lines []models.LineItem) ([]models.Product, error) {
	idx := indexByID(products)

	// Check first...
	for _, ln := range lines {
		i, ok := idx[ln.ProductID]
		if !ok {
			return nil, &InsufficientStockError{ProductID: ln.ProductID, Requested: ln.Qty}
		}
		if ln.Qty > products[i].Stock {
			return nil, &InsufficientStockError{
				ProductID: ln.ProductID,
				Requested: ln.Qty,
				Available: products[i].Stock,
			}
		}
	}

	// ...then mutate. The max(0, ...) floor is a safety net for duplicate
	// lines on the same product, which each pass the per-line check above.
	out := clone(products)
	for _, ln := range lines {
		i := idx[ln.ProductID]
		out[i].Stock = math.Max(0, out[i].Stock-ln.Qty)
		out[i].Sold += ln.Qty
	}
	return out, nil
}

// ResolveSaleLines fills in missing line prices from the product's sell price.
// This happens once, at commit time — the resolved price is then frozen into
// the document so later catalog price changes don't rewrite history.
func ResolveSaleLines(products []models.Product, lines []models.LineItem) []models.LineItem {
	return resolve(products, lines, func(p models.Product) float64 { return p.SellPrice })
}

// ResolvePurchaseLines is the purchase-side twin: missing prices come from
// the product's cost price.
func ResolvePurchaseLines(products []models.Product, lines []models.LineItem) []models.LineItem {
	return resolve(products, lines, func(p models.Product) float64 { return p.CostPrice })
}

func resolve(products []models.Product, lines []models.LineItem, price func(models.Product) float64) []models.LineItem {
	idx := indexByID(products)

	out := make([]models.LineItem, len(lines))
	for i, ln := range lines {
		if ln.Price == 0 {
			if j, ok := idx[ln.ProductID]; ok {
				ln.Price = price(products[j])
			}
		}
		out[i] = ln
	}
	return out
}

func clone(products []models.Product) []models.Product {
	out := make([]models.Product, len(products))
	copy(out, products)
	return out
}

func indexByID(products []models.Product) map[string]int {
	idx := make(map[string]int, len(products))
	for i, p := range products {
		idx[p.ID] = i
	}
	return idx
}
