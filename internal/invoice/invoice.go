package invoice

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go-smartstore/internal/models"
)

// Totals holds the four derived monetary fields of a document.
// Discount is applied on the subtotal BEFORE tax, so:
//
//	total = (subtotal - discount) + tax
//
// No rounding happens here. The frontend rounds for display only.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// ComputeTotals sums qty * price over the lines and derives discount, tax and
// total. Lines with missing quantities or prices simply contribute zero —
// malformed numeric input never makes this blow up, which the forms rely on.
// Percentages are taken as-is; clamping to [0,100] is the caller's job.
func ComputeTotals(lines []models.LineItem, discountPercent, taxPercent float64) Totals {
	var t Totals
	for _, ln := range lines {
		t.Subtotal += ln.Qty * ln.Price
	}
	t.Discount = t.Subtotal * discountPercent / 100
	taxed := t.Subtotal - t.Discount
	t.Tax = taxed * taxPercent / 100
	t.Total = taxed + t.Tax
	return t
}

// NextID generates the next sequential invoice number for one document type,
// e.g. "PUR-2024-0007". It scans the existing ids for the current year, takes
// the highest numeric suffix and adds one. The sequence restarts at 0001 every
// calendar year. Ids with a non-numeric suffix are skipped, not errors.
//
// "now" is passed in so tests can pin the year.
func NextID(ids []string, prefix string, now time.Time) string {
	head := fmt.Sprintf("%s-%d-", prefix, now.Year())

	last := 0
	for _, id := range ids {
		if !strings.HasPrefix(id, head) {
			continue
		}
		seq, err := strconv.Atoi(id[strings.LastIndex(id, "-")+1:])
		if err != nil {
			continue
		}
		if seq > last {
			last = seq
		}
	}

	return fmt.Sprintf("%s%04d", head, last+1)
}
