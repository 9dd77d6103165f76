// Package store is the application core: it owns the three persisted
// collections (products, purchases, sales) plus the session marker, and
// exposes the create/update/delete operations the frontend calls. Every
// successful mutation is written through to the injected Persister before
// the caller sees the result.
package store

import (
	"fmt"
	"sync"
	"time"

	"go-smartstore/internal/invoice"
	"go-smartstore/internal/ledger"
	"go-smartstore/internal/models"
)

// Record keys. These match the keys the original SmartStore frontend used,
// so exported data stays readable across versions.
const (
	KeyProducts  = "smartstore_products"
	KeyPurchases = "smartstore_purchases"
	KeySales     = "smartstore_sales"
	KeyUser      = "smartstore_user"
)

// Persister is one keyed record slot per collection. Read reports false when
// the key is missing or the stored value is corrupt, so the caller keeps its
// default instead of failing. Write replaces the whole record.
type Persister interface {
	Read(key string, out interface{}) bool
	Write(key string, val interface{}) error
}

// Store serializes all commits behind one mutex: the sale path is a classic
// check-then-act (stock check, then deduct) and must never interleave.
type Store struct {
	mu  sync.Mutex
	db  Persister
	now func() time.Time

	products  []models.Product
	purchases []models.Purchase // newest first
	sales     []models.Sale     // newest first
	user      *models.StoreUser
}

type Option func(*Store)

// WithClock pins the store's idea of "now". Used by tests to get
// reproducible invoice ids and dates.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Open loads the collections from the persister. Missing or corrupt records
// fall back to defaults: a small demo catalog for products, empty lists for
// documents, no session.
func Open(db Persister, opts ...Option) *Store {
	s := &Store{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	if !s.db.Read(KeyProducts, &s.products) {
		s.products = seedProducts()
	}
	s.db.Read(KeyPurchases, &s.purchases)
	s.db.Read(KeySales, &s.sales)
	s.db.Read(KeyUser, &s.user)

	return s
}

// seedProducts is the starter catalog a brand-new store opens with.
func seedProducts() []models.Product {
	return []models.Product{
		{ID: "p1", Name: "Rice 5kg", Category: "Grocery", Unit: "kg", Stock: 12, CostPrice: 250, SellPrice: 300, Reorder: 5},
		{ID: "p2", Name: "Notebook", Category: "Stationery", Unit: "pcs", Stock: 40, CostPrice: 20, SellPrice: 35, Reorder: 10},
		{ID: "p3", Name: "Toothpaste", Category: "Personal Care", Unit: "pcs", Stock: 6, CostPrice: 60, SellPrice: 90, Reorder: 5},
	}
}

// ---------- Inputs ----------

// PurchaseInput is what the purchase form submits.
type PurchaseInput struct {
	SupplierName    string            `json:"supplierName"`
	BillNo          string            `json:"billNo"`
	Date            time.Time         `json:"date"`
	Lines           []models.LineItem `json:"lines"`
	TaxPercent      float64           `json:"taxPercent"`
	DiscountPercent float64           `json:"discountPercent"`
	Notes           string            `json:"notes"`
}

// SaleInput is what the sales form submits.
type SaleInput struct {
	CustomerName    string            `json:"customerName"`
	Date            time.Time         `json:"date"`
	Lines           []models.LineItem `json:"lines"`
	TaxPercent      float64           `json:"taxPercent"`
	DiscountPercent float64           `json:"discountPercent"`
	Notes           string            `json:"notes"`
}

// ---------- Purchases ----------

// CreatePurchase commits a new purchase: totals, invoice id, stock increase
// and persistence happen as one operation. It only fails on bad input or a
// storage error — there is no stock rejection on the way IN.
func (s *Store) CreatePurchase(in PurchaseInput) (models.Purchase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := validateDocument("supplierName", in.SupplierName, in.Lines); err != nil {
		return models.Purchase{}, err
	}

	lines := ledger.ResolvePurchaseLines(s.products, in.Lines)
	totals := invoice.ComputeTotals(lines, in.DiscountPercent, in.TaxPercent)

	date := in.Date
	if date.IsZero() {
		date = s.now()
	}

	purchase := models.Purchase{
		PurchaseID:      invoice.NextID(s.purchaseIDs(), "PUR", s.now()),
		SupplierName:    in.SupplierName,
		BillNo:          in.BillNo,
		Date:            date,
		Lines:           lines,
		TaxPercent:      in.TaxPercent,
		DiscountPercent: in.DiscountPercent,
		Subtotal:        totals.Subtotal,
		Discount:        totals.Discount,
		Tax:             totals.Tax,
		Total:           totals.Total,
		Notes:           in.Notes,
	}

	purchases := append([]models.Purchase{purchase}, s.purchases...)
	products := ledger.ApplyPurchase(s.products, lines)

	if err := s.persistDocumentsAndStock(KeyPurchases, purchases, products); err != nil {
		return models.Purchase{}, err
	}
	s.purchases = purchases
	s.products = products
	return purchase, nil
}

// UpdatePurchase replaces the editable fields of an existing purchase and
// re-derives its totals from the new lines and percentages.
//
// Stock is deliberately NOT reconciled on edit: reverting the old lines and
// applying the new ones needs a stored diff we don't keep, so an edited
// document can leave the ledger out of sync with physical stock.
func (s *Store) UpdatePurchase(id string, in PurchaseInput) (models.Purchase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := validateDocument("supplierName", in.SupplierName, in.Lines); err != nil {
		return models.Purchase{}, err
	}

	for i, p := range s.purchases {
		if p.PurchaseID != id {
			continue
		}

		totals := invoice.ComputeTotals(in.Lines, in.DiscountPercent, in.TaxPercent)

		p.SupplierName = in.SupplierName
		p.BillNo = in.BillNo
		if !in.Date.IsZero() {
			p.Date = in.Date
		}
		p.Lines = in.Lines
		p.TaxPercent = in.TaxPercent
		p.DiscountPercent = in.DiscountPercent
		p.Subtotal = totals.Subtotal
		p.Discount = totals.Discount
		p.Tax = totals.Tax
		p.Total = totals.Total
		p.Notes = in.Notes

		purchases := clonePurchases(s.purchases)
		purchases[i] = p
		if err := s.persist(KeyPurchases, purchases); err != nil {
			return models.Purchase{}, err
		}
		s.purchases = purchases
		return p, nil
	}
	return models.Purchase{}, ErrNotFound
}

// DeletePurchase removes a purchase by id. The stock that purchase added
// stays — deleting a document does not revert its ledger effects.
func (s *Store) DeletePurchase(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	purchases := make([]models.Purchase, 0, len(s.purchases))
	found := false
	for _, p := range s.purchases {
		if p.PurchaseID == id {
			found = true
			continue
		}
		purchases = append(purchases, p)
	}
	if !found {
		return ErrNotFound
	}

	if err := s.persist(KeyPurchases, purchases); err != nil {
		return err
	}
	s.purchases = purchases
	return nil
}

// ---------- Sales ----------

// CreateSale commits a new sale. This is the one core failure path: if ANY
// line asks for more than is in stock (or names an unknown product), the
// whole sale is rejected with *ledger.InsufficientStockError — no document
// is appended and no stock changes.
func (s *Store) CreateSale(in SaleInput) (models.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := validateDocument("customerName", in.CustomerName, in.Lines); err != nil {
		return models.Sale{}, err
	}

	lines := ledger.ResolveSaleLines(s.products, in.Lines)

	products, err := ledger.ApplySale(s.products, lines)
	if err != nil {
		return models.Sale{}, err
	}

	totals := invoice.ComputeTotals(lines, in.DiscountPercent, in.TaxPercent)

	date := in.Date
	if date.IsZero() {
		date = s.now()
	}

	sale := models.Sale{
		SaleID:          invoice.NextID(s.saleIDs(), "SAL", s.now()),
		CustomerName:    in.CustomerName,
		Date:            date,
		Lines:           lines,
		TaxPercent:      in.TaxPercent,
		DiscountPercent: in.DiscountPercent,
		Subtotal:        totals.Subtotal,
		Discount:        totals.Discount,
		Tax:             totals.Tax,
		Total:           totals.Total,
		Notes:           in.Notes,
	}

	sales := append([]models.Sale{sale}, s.sales...)

	if err := s.persistDocumentsAndStock(KeySales, sales, products); err != nil {
		return models.Sale{}, err
	}
	s.sales = sales
	s.products = products
	return sale, nil
}

// UpdateSale mirrors UpdatePurchase: fields replaced, totals re-derived,
// stock deliberately untouched (see UpdatePurchase).
func (s *Store) UpdateSale(id string, in SaleInput) (models.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := validateDocument("customerName", in.CustomerName, in.Lines); err != nil {
		return models.Sale{}, err
	}

	for i, sl := range s.sales {
		if sl.SaleID != id {
			continue
		}

		totals := invoice.ComputeTotals(in.Lines, in.DiscountPercent, in.TaxPercent)

		sl.CustomerName = in.CustomerName
		if !in.Date.IsZero() {
			sl.Date = in.Date
		}
		sl.Lines = in.Lines
		sl.TaxPercent = in.TaxPercent
		sl.DiscountPercent = in.DiscountPercent
		sl.Subtotal = totals.Subtotal
		sl.Discount = totals.Discount
		sl.Tax = totals.Tax
		sl.Total = totals.Total
		sl.Notes = in.Notes

		sales := cloneSales(s.sales)
		sales[i] = sl
		if err := s.persist(KeySales, sales); err != nil {
			return models.Sale{}, err
		}
		s.sales = sales
		return sl, nil
	}
	return models.Sale{}, ErrNotFound
}

// DeleteSale removes a sale by id without restoring the stock it deducted.
func (s *Store) DeleteSale(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sales := make([]models.Sale, 0, len(s.sales))
	found := false
	for _, sl := range s.sales {
		if sl.SaleID == id {
			found = true
			continue
		}
		sales = append(sales, sl)
	}
	if !found {
		return ErrNotFound
	}

	if err := s.persist(KeySales, sales); err != nil {
		return err
	}
	s.sales = sales
	return nil
}

// ---------- Products ----------

// SaveProduct upserts a catalog entry. An empty id means "new product" and
// gets a generated one.
func (s *Store) SaveProduct(form models.Product) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if form.Name == "" {
		return models.Product{}, &ValidationError{Field: "name", Message: "product name is required"}
	}

	products := make([]models.Product, len(s.products))
	copy(products, s.products)

	if form.ID == "" {
		form.ID = fmt.Sprintf("p%d", s.now().UnixMilli())
		products = append(products, form)
	} else {
		found := false
		for i, p := range products {
			if p.ID == form.ID {
				products[i] = form
				found = true
				break
			}
		}
		if !found {
			return models.Product{}, ErrNotFound
		}
	}

	if err := s.persist(KeyProducts, products); err != nil {
		return models.Product{}, err
	}
	s.products = products
	return form, nil
}

// DeleteProduct removes a catalog entry by id. Past documents keep their
// line references; sales against the deleted product will simply be
// rejected as unknown.
func (s *Store) DeleteProduct(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	products := make([]models.Product, 0, len(s.products))
	found := false
	for _, p := range s.products {
		if p.ID == id {
			found = true
			continue
		}
		products = append(products, p)
	}
	if !found {
		return ErrNotFound
	}

	if err := s.persist(KeyProducts, products); err != nil {
		return err
	}
	s.products = products
	return nil
}

// ---------- Session ----------

// Login persists the session marker record.
func (s *Store) Login(user models.StoreUser) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist(KeyUser, &user); err != nil {
		return err
	}
	s.user = &user
	return nil
}

// Logout clears the session marker record.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist(KeyUser, nil); err != nil {
		return err
	}
	s.user = nil
	return nil
}

// CurrentUser returns the session marker, or nil when nobody is logged in.
func (s *Store) CurrentUser() *models.StoreUser {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// ---------- Read accessors ----------

func (s *Store) Products() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *Store) Purchases() []models.Purchase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clonePurchases(s.purchases)
}

func (s *Store) Sales() []models.Sale {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneSales(s.sales)
}

// ---------- internals ----------

func validateDocument(counterpartyField, counterparty string, lines []models.LineItem) error {
	if counterparty == "" {
		return &ValidationError{Field: counterpartyField, Message: counterpartyField + " is required"}
	}
	if len(lines) == 0 {
		return &ValidationError{Field: "lines", Message: "at least one line item is required"}
	}
	for _, ln := range lines {
		if ln.ProductID == "" {
			return &ValidationError{Field: "lines", Message: "every line must reference a product"}
		}
	}
	return nil
}

// persistDocumentsAndStock writes the document collection and the mutated
// products together; the in-memory state only flips after both records are
// durable, so a storage failure never leaves memory half-committed.
func (s *Store) persistDocumentsAndStock(docKey string, docs interface{}, products []models.Product) error {
	if err := s.persist(docKey, docs); err != nil {
		return err
	}
	return s.persist(KeyProducts, products)
}

func (s *Store) persist(key string, val interface{}) error {
	if err := s.db.Write(key, val); err != nil {
		return fmt.Errorf("persist %s: %w", key, err)
	}
	return nil
}

func (s *Store) purchaseIDs() []string {
	ids := make([]string, len(s.purchases))
	for i, p := range s.purchases {
		ids[i] = p.PurchaseID
	}
	return ids
}

func (s *Store) saleIDs() []string {
	ids := make([]string, len(s.sales))
	for i, sl := range s.sales {
		ids[i] = sl.SaleID
	}
	return ids
}

func clonePurchases(in []models.Purchase) []models.Purchase {
	out := make([]models.Purchase, len(in))
	copy(out, in)
	return out
}

func cloneSales(in []models.Sale) []models.Sale {
	out := make([]models.Sale, len(in))
	copy(out, in)
	return out
}
