package store

import (
	"sort"
	"time"

	"go-smartstore/internal/models"
)

// DashboardStats feeds the dashboard cards and the recent-activity panel.
type DashboardStats struct {
	TodaysSales     float64           `json:"todaysSales"`
	TotalProducts   int               `json:"totalProducts"`
	LowStock        []models.Product  `json:"lowStock"`
	RecentPurchases []models.Purchase `json:"recentPurchases"`
	RecentSales     []models.Sale     `json:"recentSales"`
}

// defaultReorder kicks in for products saved without a threshold.
const defaultReorder = 5

// Dashboard computes today's sales total, the catalog size and the low-stock
// alert list, plus the six most recent documents of each kind.
func (s *Store) Dashboard() DashboardStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.now().Format("2006-01-02")

	stats := DashboardStats{TotalProducts: len(s.products)}

	for _, sl := range s.sales {
		if sl.Date.Format("2006-01-02") == today {
			stats.TodaysSales += sl.Total
		}
	}

	for _, p := range s.products {
		reorder := p.Reorder
		if reorder == 0 {
			reorder = defaultReorder
		}
		if p.Stock <= reorder {
			stats.LowStock = append(stats.LowStock, p)
		}
	}

	stats.RecentPurchases = clonePurchases(firstN(s.purchases, 6))
	stats.RecentSales = cloneSales(firstN(s.sales, 6))
	return stats
}

// SalesBetween sums sale totals whose date falls in [start, end]. Used by the
// AI assistant's report tool.
func (s *Store) SalesBetween(start, end time.Time) (revenue float64, count int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sl := range s.sales {
		if sl.Date.Before(start) || sl.Date.After(end) {
			continue
		}
		revenue += sl.Total
		count++
	}
	return revenue, count
}

// ---------- Stock valuation ----------

// ValuationItem is one row of the valuation table.
type ValuationItem struct {
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	CostPrice float64 `json:"costPrice"`
	TotalCost float64 `json:"totalCost"` // Quantity * CostPrice
}

// CategoryGroup is one table section (e.g. "Grocery") with its subtotal.
type CategoryGroup struct {
	CategoryName string          `json:"categoryName"`
	Items        []ValuationItem `json:"items"`
	Subtotal     float64         `json:"subtotal"`
}

// Valuation is the full stock valuation payload.
type Valuation struct {
	Categories []CategoryGroup `json:"categories"`
	GrandTotal float64         `json:"grandTotal"`
}

// StockValuation values the whole inventory at cost price, grouped by
// category. Products without a category land under "Uncategorized".
func (s *Store) StockValuation() Valuation {
	s.mu.Lock()
	defer s.mu.Unlock()

	grouped := make(map[string]*CategoryGroup)
	var v Valuation

	for _, p := range s.products {
		cat := p.Category
		if cat == "" {
			cat = "Uncategorized"
		}

		group, ok := grouped[cat]
		if !ok {
			group = &CategoryGroup{CategoryName: cat}
			grouped[cat] = group
		}

		itemTotal := p.Stock * p.CostPrice
		group.Items = append(group.Items, ValuationItem{
			Name:      p.Name,
			Quantity:  p.Stock,
			CostPrice: p.CostPrice,
			TotalCost: itemTotal,
		})
		group.Subtotal += itemTotal
		v.GrandTotal += itemTotal
	}

	for _, group := range grouped {
		v.Categories = append(v.Categories, *group)
	}
	// Stable order for the frontend (map iteration isn't)
	sort.Slice(v.Categories, func(i, j int) bool {
		return v.Categories[i].CategoryName < v.Categories[j].CategoryName
	})
	return v
}

func firstN[T any](in []T, n int) []T {
	if len(in) < n {
		n = len(in)
	}
	return in[:n]
}
