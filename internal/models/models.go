package models

import (
	"time"
)

// Product - The Inventory
// Stock and quantities are float64 because some units (kg, litres) are sold
// in fractions. Stock never goes below zero.
type Product struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Unit      string  `json:"unit"` // 'kg', 'pcs', 'ltr'...
	Stock     float64 `json:"stock"`
	CostPrice float64 `json:"costPrice"`
	SellPrice float64 `json:"sellPrice"`
	Reorder   float64 `json:"reorder"`   // low-stock alert threshold
	Sold      float64 `json:"soldToday"` // running counter of units sold
}

// LineItem - one product reference inside a purchase or sale.
// A zero Price means "resolve it from the product at commit time".
type LineItem struct {
	ProductID string  `json:"productId"`
	Qty       float64 `json:"qty"`
	Price     float64 `json:"price"`
}

// Purchase - stock coming IN from a supplier
type Purchase struct {
	PurchaseID      string     `json:"purchaseId"` // e.g. PUR-2024-0001
	SupplierName    string     `json:"supplierName"`
	BillNo          string     `json:"billNo"`
	Date            time.Time  `json:"date"`
	Lines           []LineItem `json:"lines"`
	TaxPercent      float64    `json:"taxPercent"`
	DiscountPercent float64    `json:"discountPercent"`
	Subtotal        float64    `json:"subtotal"`
	Discount        float64    `json:"discount"`
	Tax             float64    `json:"tax"`
	Total           float64    `json:"total"`
	Notes           string     `json:"notes"`
}

// Sale - stock going OUT to a customer
type Sale struct {
	SaleID          string     `json:"saleId"` // e.g. SAL-2024-0001
	CustomerName    string     `json:"customerName"`
	Date            time.Time  `json:"date"`
	Lines           []LineItem `json:"lines"`
	TaxPercent      float64    `json:"taxPercent"`
	DiscountPercent float64    `json:"discountPercent"`
	Subtotal        float64    `json:"subtotal"`
	Discount        float64    `json:"discount"`
	Tax             float64    `json:"tax"`
	Total           float64    `json:"total"`
	Notes           string     `json:"notes"`
}

// StoreUser - the logged-in session marker. Not a security boundary:
// one store, one operator, checked against the configured credentials.
type StoreUser struct {
	StoreID string `json:"storeId"`
	Name    string `json:"name"`
}
