package service

// In-memory repository stubs. DB() returns nil, which makes runTx call the
// transaction body directly — service logic runs unchanged against the maps.

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/DareDevilStudios/sharon-billing/internal/dto"
	"github.com/DareDevilStudios/sharon-billing/internal/model"
	"github.com/DareDevilStudios/sharon-billing/internal/repository"
)

var errStubNotFound = errors.New("record not found")

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// ── MaterialRepository stub ──────────────────────────────────────────────────

type stubMaterialRepo struct {
	materials map[uuid.UUID]*model.RawMaterial
}

func newStubMaterialRepo() *stubMaterialRepo {
	return &stubMaterialRepo{materials: make(map[uuid.UUID]*model.RawMaterial)}
}

func (r *stubMaterialRepo) seed(name string, stock, threshold int) uuid.UUID {
	m := &model.RawMaterial{ID: uuid.New(), Name: name, Stock: stock, Threshold: threshold}
	r.materials[m.ID] = m
	return m.ID
}

func (r *stubMaterialRepo) Create(_ context.Context, m *model.RawMaterial) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	cloned := *m
	r.materials[m.ID] = &cloned
	return nil
}

func (r *stubMaterialRepo) FindByID(_ context.Context, id uuid.UUID) (*model.RawMaterial, error) {
	m, ok := r.materials[id]
	if !ok {
		return nil, errStubNotFound
	}
	cloned := *m
	return &cloned, nil
}

func (r *stubMaterialRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]model.RawMaterial, error) {
	var out []model.RawMaterial
	for _, id := range ids {
		if m, ok := r.materials[id]; ok {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *stubMaterialRepo) List(_ context.Context) ([]model.RawMaterial, error) {
	out := make([]model.RawMaterial, 0, len(r.materials))
	for _, m := range r.materials {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubMaterialRepo) UpdateTx(_ *gorm.DB, m *model.RawMaterial) error {
	existing, ok := r.materials[m.ID]
	if !ok {
		return errStubNotFound
	}
	existing.Name = m.Name
	existing.Threshold = m.Threshold
	return nil
}

func (r *stubMaterialRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.materials, id)
	return nil
}

func (r *stubMaterialRepo) UpdateStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	m, ok := r.materials[id]
	if !ok {
		return errStubNotFound
	}
	m.Stock += delta
	return nil
}

func (r *stubMaterialRepo) DB() *gorm.DB { return nil }

var _ repository.MaterialRepository = (*stubMaterialRepo)(nil)

// ── ProductRepository stub ───────────────────────────────────────────────────

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) seed(name string, price string, stock int) uuid.UUID {
	p := &model.Product{ID: uuid.New(), Name: name, SalesPrice: mustDecimal(price), StockQuantity: stock}
	r.products[p.ID] = p
	return p.ID
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cloned := *p
	r.products[p.ID] = &cloned
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, errStubNotFound
	}
	cloned := *p
	return &cloned, nil
}

func (r *stubProductRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]model.Product, error) {
	var out []model.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) List(_ context.Context) ([]model.Product, error) {
	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubProductRepo) UpdateTx(_ *gorm.DB, p *model.Product) error {
	existing, ok := r.products[p.ID]
	if !ok {
		return errStubNotFound
	}
	existing.Name = p.Name
	existing.SalesPrice = p.SalesPrice
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) UpdateStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	p, ok := r.products[id]
	if !ok {
		return errStubNotFound
	}
	p.StockQuantity += delta
	return nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// ── Party stubs ──────────────────────────────────────────────────────────────

type stubCustomerRepo struct {
	customers map[uuid.UUID]*model.Customer
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{customers: make(map[uuid.UUID]*model.Customer)}
}

func (r *stubCustomerRepo) seed(name, address string) uuid.UUID {
	c := &model.Customer{ID: uuid.New(), Name: name, Address: address}
	r.customers[c.ID] = c
	return c.ID
}

func (r *stubCustomerRepo) Create(_ context.Context, c *model.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	cloned := *c
	r.customers[c.ID] = &cloned
	return nil
}

func (r *stubCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, errStubNotFound
	}
	return c, nil
}

func (r *stubCustomerRepo) List(_ context.Context) ([]model.Customer, error) {
	out := make([]model.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		out = append(out, *c)
	}
	return out, nil
}

var _ repository.CustomerRepository = (*stubCustomerRepo)(nil)

type stubSupplierRepo struct {
	suppliers map[uuid.UUID]*model.Supplier
}

func newStubSupplierRepo() *stubSupplierRepo {
	return &stubSupplierRepo{suppliers: make(map[uuid.UUID]*model.Supplier)}
}

func (r *stubSupplierRepo) seed(name, address string) uuid.UUID {
	s := &model.Supplier{ID: uuid.New(), Name: name, Address: address}
	r.suppliers[s.ID] = s
	return s.ID
}

func (r *stubSupplierRepo) Create(_ context.Context, s *model.Supplier) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	cloned := *s
	r.suppliers[s.ID] = &cloned
	return nil
}

func (r *stubSupplierRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Supplier, error) {
	s, ok := r.suppliers[id]
	if !ok {
		return nil, errStubNotFound
	}
	return s, nil
}

func (r *stubSupplierRepo) List(_ context.Context) ([]model.Supplier, error) {
	out := make([]model.Supplier, 0, len(r.suppliers))
	for _, s := range r.suppliers {
		out = append(out, *s)
	}
	return out, nil
}

var _ repository.SupplierRepository = (*stubSupplierRepo)(nil)

// ── PurchaseRepository stub ──────────────────────────────────────────────────

type stubPurchaseRepo struct {
	purchases map[uuid.UUID]*model.Purchase
}

func newStubPurchaseRepo() *stubPurchaseRepo {
	return &stubPurchaseRepo{purchases: make(map[uuid.UUID]*model.Purchase)}
}

func (r *stubPurchaseRepo) CreateTx(_ *gorm.DB, p *model.Purchase) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	cloned := *p
	r.purchases[p.ID] = &cloned
	return nil
}

func (r *stubPurchaseRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Purchase, error) {
	p, ok := r.purchases[id]
	if !ok {
		return nil, errStubNotFound
	}
	cloned := *p
	return &cloned, nil
}

func (r *stubPurchaseRepo) List(_ context.Context, _ dto.PurchaseFilter) ([]model.Purchase, int64, error) {
	out := make([]model.Purchase, 0, len(r.purchases))
	for _, p := range r.purchases {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, int64(len(out)), nil
}

func (r *stubPurchaseRepo) ListRange(_ context.Context, from, to string) ([]model.Purchase, error) {
	var out []model.Purchase
	for _, p := range r.purchases {
		if p.Date >= from && p.Date <= to {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubPurchaseRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.purchases, id)
	return nil
}

func (r *stubPurchaseRepo) DB() *gorm.DB { return nil }

var _ repository.PurchaseRepository = (*stubPurchaseRepo)(nil)

// ── SaleRepository stub ──────────────────────────────────────────────────────

type stubSaleRepo struct {
	sales map[uuid.UUID]*model.Sale
}

func newStubSaleRepo() *stubSaleRepo {
	return &stubSaleRepo{sales: make(map[uuid.UUID]*model.Sale)}
}

func (r *stubSaleRepo) CreateTx(_ *gorm.DB, s *model.Sale) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.CreatedAt = time.Now()
	for i := range s.Items {
		if s.Items[i].ID == uuid.Nil {
			s.Items[i].ID = uuid.New()
		}
		s.Items[i].SaleID = s.ID
	}
	cloned := *s
	cloned.Items = append([]model.SaleItem(nil), s.Items...)
	r.sales[s.ID] = &cloned
	return nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, errStubNotFound
	}
	cloned := *s
	cloned.Items = append([]model.SaleItem(nil), s.Items...)
	return &cloned, nil
}

func (r *stubSaleRepo) List(_ context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error) {
	var out []model.Sale
	for _, s := range r.sales {
		switch filter.Cancelled {
		case "true":
			if !s.IsCancelled {
				continue
			}
		case "false":
			if s.IsCancelled {
				continue
			}
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, int64(len(out)), nil
}

func (r *stubSaleRepo) ListRange(_ context.Context, from, to string) ([]model.Sale, error) {
	var out []model.Sale
	for _, s := range r.sales {
		if s.Date >= from && s.Date <= to {
			cloned := *s
			cloned.Items = append([]model.SaleItem(nil), s.Items...)
			out = append(out, cloned)
		}
	}
	return out, nil
}

func (r *stubSaleRepo) ReplaceTx(_ *gorm.DB, s *model.Sale) error {
	for i := range s.Items {
		if s.Items[i].ID == uuid.Nil {
			s.Items[i].ID = uuid.New()
		}
		s.Items[i].SaleID = s.ID
	}
	cloned := *s
	cloned.Items = append([]model.SaleItem(nil), s.Items...)
	r.sales[s.ID] = &cloned
	return nil
}

func (r *stubSaleRepo) UpdateItemReturnedTx(_ *gorm.DB, itemID uuid.UUID, returnedQuantity int) error {
	for _, s := range r.sales {
		for i := range s.Items {
			if s.Items[i].ID == itemID {
				s.Items[i].ReturnedQuantity = returnedQuantity
				return nil
			}
		}
	}
	return errStubNotFound
}

func (r *stubSaleRepo) SetCancelledTx(_ *gorm.DB, id uuid.UUID) error {
	s, ok := r.sales[id]
	if !ok {
		return errStubNotFound
	}
	s.IsCancelled = true
	return nil
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

// ── ManufacturingRepository stub ─────────────────────────────────────────────

type stubManufacturingRepo struct {
	records map[uuid.UUID]*model.ManufacturingRecord
}

func newStubManufacturingRepo() *stubManufacturingRepo {
	return &stubManufacturingRepo{records: make(map[uuid.UUID]*model.ManufacturingRecord)}
}

func (r *stubManufacturingRepo) CreateTx(_ *gorm.DB, rec *model.ManufacturingRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	rec.CreatedAt = time.Now()
	cloned := *rec
	r.records[rec.ID] = &cloned
	return nil
}

func (r *stubManufacturingRepo) FindByID(_ context.Context, id uuid.UUID) (*model.ManufacturingRecord, error) {
	rec, ok := r.records[id]
	if !ok {
		return nil, errStubNotFound
	}
	cloned := *rec
	return &cloned, nil
}

func (r *stubManufacturingRepo) List(_ context.Context) ([]model.ManufacturingRecord, error) {
	out := make([]model.ManufacturingRecord, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (r *stubManufacturingRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.records, id)
	return nil
}

func (r *stubManufacturingRepo) DB() *gorm.DB { return nil }

var _ repository.ManufacturingRepository = (*stubManufacturingRepo)(nil)

// ── ExpenseRepository stub ───────────────────────────────────────────────────

type stubExpenseRepo struct {
	expenses map[uuid.UUID]*model.Expense
}

func newStubExpenseRepo() *stubExpenseRepo {
	return &stubExpenseRepo{expenses: make(map[uuid.UUID]*model.Expense)}
}

func (r *stubExpenseRepo) Create(_ context.Context, e *model.Expense) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	e.CreatedAt = time.Now()
	cloned := *e
	r.expenses[e.ID] = &cloned
	return nil
}

func (r *stubExpenseRepo) List(_ context.Context) ([]model.Expense, error) {
	out := make([]model.Expense, 0, len(r.expenses))
	for _, e := range r.expenses {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (r *stubExpenseRepo) ListRange(_ context.Context, from, to string) ([]model.Expense, error) {
	var out []model.Expense
	for _, e := range r.expenses {
		if e.Date >= from && e.Date <= to {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *stubExpenseRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.expenses, id)
	return nil
}

var _ repository.ExpenseRepository = (*stubExpenseRepo)(nil)

// ── StockMovementRepository stub ─────────────────────────────────────────────

type stubMovementRepo struct {
	movements []model.StockMovement
	createErr error // when set, CreateTx fails with it
}

func newStubMovementRepo() *stubMovementRepo { return &stubMovementRepo{} }

func (r *stubMovementRepo) CreateTx(_ *gorm.DB, m *model.StockMovement) error {
	if r.createErr != nil {
		return r.createErr
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	r.movements = append(r.movements, *m)
	return nil
}

func (r *stubMovementRepo) ListByEntity(_ context.Context, kind string, id uuid.UUID) ([]model.StockMovement, error) {
	var out []model.StockMovement
	for _, m := range r.movements {
		if m.EntityKind == kind && m.EntityID == id {
			out = append(out, m)
		}
	}
	return out, nil
}

var _ repository.StockMovementRepository = (*stubMovementRepo)(nil)

// byType counts recorded movements of a given type.
func (r *stubMovementRepo) byType(movType string) int {
	n := 0
	for _, m := range r.movements {
		if m.Type == movType {
			n++
		}
	}
	return n
}
