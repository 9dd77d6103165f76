package invoice

import (
	"testing"
	"time"

	"go-smartstore/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotalsDiscountBeforeTax(t *testing.T) {
	// subtotal 1000, 10% discount, 5% tax on the discounted amount
	lines := []models.LineItem{
		{ProductID: "p1", Qty: 4, Price: 150},
		{ProductID: "p2", Qty: 8, Price: 50},
	}

	got := ComputeTotals(lines, 10, 5)

	assert.InDelta(t, 1000.0, got.Subtotal, 1e-9)
	assert.InDelta(t, 100.0, got.Discount, 1e-9)
	assert.InDelta(t, 45.0, got.Tax, 1e-9)
	assert.InDelta(t, 945.0, got.Total, 1e-9)
}

func TestComputeTotalsNoDiscountNoTax(t *testing.T) {
	lines := []models.LineItem{
		{ProductID: "p1", Qty: 3, Price: 99.5},
	}

	got := ComputeTotals(lines, 0, 0)

	assert.InDelta(t, got.Subtotal, got.Total, 1e-9)
	assert.Zero(t, got.Discount)
	assert.Zero(t, got.Tax)
}

func TestComputeTotalsFormula(t *testing.T) {
	// total == (subtotal - subtotal*d/100) * (1 + t/100) for a spread of inputs
	cases := []struct {
		name     string
		lines    []models.LineItem
		discount float64
		tax      float64
	}{
		{"plain", []models.LineItem{{Qty: 5, Price: 300}}, 0, 0},
		{"tax only", []models.LineItem{{Qty: 2, Price: 35}, {Qty: 1, Price: 90}}, 0, 18},
		{"discount only", []models.LineItem{{Qty: 10, Price: 12.5}}, 7.5, 0},
		{"both", []models.LineItem{{Qty: 3, Price: 250}, {Qty: 0.5, Price: 300}}, 12, 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeTotals(tc.lines, tc.discount, tc.tax)
			want := (got.Subtotal - got.Subtotal*tc.discount/100) * (1 + tc.tax/100)
			assert.InDelta(t, want, got.Total, 1e-9)
		})
	}
}

func TestComputeTotalsZeroValueLinesContributeNothing(t *testing.T) {
	// Missing quantities or prices arrive as zero values and must never
	// break the calculation. That leniency is a contract the forms rely on.
	lines := []models.LineItem{
		{ProductID: "p1", Qty: 0, Price: 300},
		{ProductID: "p2", Qty: 5},
		{ProductID: "p3"},
		{ProductID: "p4", Qty: 2, Price: 50},
	}

	got := ComputeTotals(lines, 0, 0)
	assert.InDelta(t, 100.0, got.Subtotal, 1e-9)
}

func TestComputeTotalsIsPure(t *testing.T) {
	lines := []models.LineItem{{ProductID: "p1", Qty: 2, Price: 35}}

	first := ComputeTotals(lines, 5, 12)
	second := ComputeTotals(lines, 5, 12)
	assert.Equal(t, first, second)
}

func TestNextIDFirstOfYear(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "PUR-2024-0001", NextID(nil, "PUR", now))
	assert.Equal(t, "PUR-2024-0002", NextID([]string{"PUR-2024-0001"}, "PUR", now))
}

func TestNextIDTakesTheMaximumNotTheLatest(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	ids := []string{"SAL-2024-0002", "SAL-2024-0007", "SAL-2024-0003"}
	assert.Equal(t, "SAL-2024-0008", NextID(ids, "SAL", now))
}

func TestNextIDResetsPerYearAndPrefix(t *testing.T) {
	now := time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC)

	// Last year's ids and the other document type don't count
	ids := []string{"SAL-2024-0009", "PUR-2025-0004"}
	assert.Equal(t, "SAL-2025-0001", NextID(ids, "SAL", now))
}

func TestNextIDIgnoresMalformedSuffixes(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	ids := []string{"PUR-2024-abcd", "PUR-2024-0002", "PUR-2024-"}
	assert.Equal(t, "PUR-2024-0003", NextID(ids, "PUR", now))
}
