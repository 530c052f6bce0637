package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/DareDevilStudios/sharon-billing/internal/dto"
	"github.com/DareDevilStudios/sharon-billing/internal/ledger"
	"github.com/DareDevilStudios/sharon-billing/internal/model"
	"github.com/DareDevilStudios/sharon-billing/internal/repository"
)

const dayBookCacheTTL = 5 * time.Minute

type ReportService interface {
	DayBook(ctx context.Context, filter dto.DateRangeFilter) (*dto.DayBookResponse, error)
	Invoice(ctx context.Context, saleID uuid.UUID) (*dto.InvoiceResponse, error)
	LowStock(ctx context.Context) ([]dto.LowStockItem, error)
	SalesInRange(ctx context.Context, from, to string) ([]model.Sale, error)
	PurchasesInRange(ctx context.Context, from, to string) ([]model.Purchase, error)
}

type reportService struct {
	saleRepo     repository.SaleRepository
	purchaseRepo repository.PurchaseRepository
	expenseRepo  repository.ExpenseRepository
	materialRepo repository.MaterialRepository
	customerRepo repository.CustomerRepository
	rdb          *redis.Client
}

func NewReportService(
	saleRepo repository.SaleRepository,
	purchaseRepo repository.PurchaseRepository,
	expenseRepo repository.ExpenseRepository,
	materialRepo repository.MaterialRepository,
	customerRepo repository.CustomerRepository,
	rdb *redis.Client,
) ReportService {
	return &reportService{
		saleRepo:     saleRepo,
		purchaseRepo: purchaseRepo,
		expenseRepo:  expenseRepo,
		materialRepo: materialRepo,
		customerRepo: customerRepo,
		rdb:          rdb,
	}
}

// DayBook aggregates sales, purchases and expenses per calendar day over the
// range. Cancelled sales contribute zero. Results are cached briefly in redis;
// cache failures only log, they never fail the report.
func (s *reportService) DayBook(ctx context.Context, filter dto.DateRangeFilter) (*dto.DayBookResponse, error) {
	cacheKey := fmt.Sprintf("daybook:%s:%s", filter.From, filter.To)
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var cached dto.DayBookResponse
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return &cached, nil
			}
		}
	}

	sales, err := s.saleRepo.ListRange(ctx, filter.From, filter.To)
	if err != nil {
		return nil, err
	}
	purchases, err := s.purchaseRepo.ListRange(ctx, filter.From, filter.To)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.ListRange(ctx, filter.From, filter.To)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]*dto.DayBookEntry)
	entry := func(date string) *dto.DayBookEntry {
		e, ok := byDate[date]
		if !ok {
			e = &dto.DayBookEntry{
				Date:           date,
				SalesTotal:     decimal.Zero,
				PurchasesTotal: decimal.Zero,
				ExpensesTotal:  decimal.Zero,
			}
			byDate[date] = e
		}
		return e
	}

	for _, sale := range sales {
		if sale.IsCancelled {
			continue
		}
		e := entry(sale.Date)
		e.SalesTotal = e.SalesTotal.Add(effectiveSaleTotal(&sale))
	}
	for _, p := range purchases {
		e := entry(p.Date)
		e.PurchasesTotal = e.PurchasesTotal.Add(p.Subtotal)
	}
	for _, ex := range expenses {
		e := entry(ex.Date)
		e.ExpensesTotal = e.ExpensesTotal.Add(ex.Amount)
	}

	resp := &dto.DayBookResponse{
		From:           filter.From,
		To:             filter.To,
		Entries:        make([]dto.DayBookEntry, 0, len(byDate)),
		SalesTotal:     decimal.Zero,
		PurchasesTotal: decimal.Zero,
		ExpensesTotal:  decimal.Zero,
	}
	for _, e := range byDate {
		e.Net = e.SalesTotal.Sub(e.PurchasesTotal).Sub(e.ExpensesTotal)
		resp.Entries = append(resp.Entries, *e)
		resp.SalesTotal = resp.SalesTotal.Add(e.SalesTotal)
		resp.PurchasesTotal = resp.PurchasesTotal.Add(e.PurchasesTotal)
		resp.ExpensesTotal = resp.ExpensesTotal.Add(e.ExpensesTotal)
	}
	sort.Slice(resp.Entries, func(i, j int) bool {
		return resp.Entries[i].Date > resp.Entries[j].Date
	})
	resp.Net = resp.SalesTotal.Sub(resp.PurchasesTotal).Sub(resp.ExpensesTotal)

	if s.rdb != nil {
		if raw, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, cacheKey, raw, dayBookCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Str("key", cacheKey).Msg("daybook cache write failed")
			}
		}
	}
	return resp, nil
}

// effectiveSaleTotal is the sale's revenue after returns: the sum of each
// line's effective quantity times price, minus the discount. It can go
// negative when returns exceed what the discount assumed; it is reported
// as-is.
func effectiveSaleTotal(sale *model.Sale) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range sale.Items {
		eff := decimal.NewFromInt(int64(ledger.EffectiveQuantity(it)))
		sum = sum.Add(it.Price.Mul(eff))
	}
	return sum.Sub(sale.Discount)
}

// Invoice derives the printable view of a sale with per-line effective
// figures. It is computed fresh on every call so returns are always
// reflected.
func (s *reportService) Invoice(ctx context.Context, saleID uuid.UUID) (*dto.InvoiceResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, fmt.Errorf("%w: sale %s", ledger.ErrNotFound, saleID)
	}

	address := ""
	if customer, err := s.customerRepo.FindByID(ctx, sale.CustomerID); err == nil {
		address = customer.Address
	}

	items := make([]dto.InvoiceItem, 0, len(sale.Items))
	subtotal := decimal.Zero
	for _, it := range sale.Items {
		eff := ledger.EffectiveQuantity(it)
		lineTotal := it.Price.Mul(decimal.NewFromInt(int64(eff)))
		subtotal = subtotal.Add(lineTotal)
		items = append(items, dto.InvoiceItem{
			ProductName:       it.ProductName,
			Quantity:          it.Quantity,
			ReturnedQuantity:  it.ReturnedQuantity,
			EffectiveQuantity: eff,
			Price:             it.Price,
			EffectiveTotal:    lineTotal,
		})
	}

	return &dto.InvoiceResponse{
		SaleID:          sale.ID.String(),
		InvoiceNumber:   sale.InvoiceNumber,
		Date:            sale.Date,
		CustomerName:    sale.CustomerName,
		CustomerAddress: address,
		VehicleNumber:   sale.VehicleNumber,
		Items:           items,
		Subtotal:        subtotal,
		Discount:        sale.Discount,
		Total:           subtotal.Sub(sale.Discount),
		IsCancelled:     sale.IsCancelled,
	}, nil
}

// LowStock lists materials whose stock has fallen below their threshold.
func (s *reportService) LowStock(ctx context.Context) ([]dto.LowStockItem, error) {
	materials, err := s.materialRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LowStockItem, 0)
	for _, m := range materials {
		if m.Stock < m.Threshold {
			items = append(items, dto.LowStockItem{
				MaterialID: m.ID.String(),
				Name:       m.Name,
				Stock:      m.Stock,
				Threshold:  m.Threshold,
			})
		}
	}
	return items, nil
}

func (s *reportService) SalesInRange(ctx context.Context, from, to string) ([]model.Sale, error) {
	return s.saleRepo.ListRange(ctx, from, to)
}

func (s *reportService) PurchasesInRange(ctx context.Context, from, to string) ([]model.Purchase, error) {
	return s.purchaseRepo.ListRange(ctx, from, to)
}
