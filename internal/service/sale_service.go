package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/DareDevilStudios/sharon-billing/internal/dto"
	"github.com/DareDevilStudios/sharon-billing/internal/ledger"
	"github.com/DareDevilStudios/sharon-billing/internal/model"
	"github.com/DareDevilStudios/sharon-billing/internal/repository"
	"github.com/DareDevilStudios/sharon-billing/internal/worker"
)

type SaleService interface {
	Create(ctx context.Context, req dto.CreateSaleRequest) (*model.Sale, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateSaleRequest) (*model.Sale, error)
	ReturnItems(ctx context.Context, id uuid.UUID, req dto.ReturnSaleRequest) (*model.Sale, error)
	Cancel(ctx context.Context, id uuid.UUID) error
}

type saleService struct {
	repo         repository.SaleRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	movementRepo repository.StockMovementRepository
	dispatcher   *worker.Dispatcher
}

func NewSaleService(
	repo repository.SaleRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	movementRepo repository.StockMovementRepository,
	dispatcher *worker.Dispatcher,
) SaleService {
	return &saleService{
		repo:         repo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		movementRepo: movementRepo,
		dispatcher:   dispatcher,
	}
}

// resolveItems builds sale items from the request, pricing each line from the
// product's current sales price, and returns the stock/name snapshots the
// ledger validates against. A product may appear on one line only — returned
// quantities are tracked per product, so duplicate lines would make that
// bookkeeping ambiguous.
func (s *saleService) resolveItems(ctx context.Context, reqItems []dto.SaleItemRequest) (
	[]model.SaleItem, map[uuid.UUID]int, map[uuid.UUID]string, error,
) {
	items := make([]model.SaleItem, 0, len(reqItems))
	stock := make(map[uuid.UUID]int, len(reqItems))
	names := make(map[uuid.UUID]string, len(reqItems))

	for _, it := range reqItems {
		productID, err := uuid.Parse(it.ProductID)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("%w: invalid product id", ledger.ErrValidation)
		}
		if _, dup := names[productID]; dup {
			return nil, nil, nil, fmt.Errorf("%w: product %s appears on more than one line", ledger.ErrValidation, names[productID])
		}
		product, err := s.productRepo.FindByID(ctx, productID)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("%w: product %s", ledger.ErrNotFound, it.ProductID)
		}
		stock[productID] = product.StockQuantity
		names[productID] = product.Name
		total := product.SalesPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
		items = append(items, model.SaleItem{
			ProductID:   productID,
			ProductName: product.Name,
			Quantity:    it.Quantity,
			Price:       product.SalesPrice,
			Total:       total,
		})
	}
	return items, stock, names, nil
}

func subtotalOf(items []model.SaleItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Total)
	}
	return sum
}

// Create validates the full sale against current product stock before any
// mutation. On insufficient stock nothing is decremented and no record is
// written.
func (s *saleService) Create(ctx context.Context, req dto.CreateSaleRequest) (*model.Sale, error) {
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid customer id", ledger.ErrValidation)
	}
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("%w: customer %s", ledger.ErrNotFound, req.CustomerID)
	}

	items, stock, names, err := s.resolveItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	delta := ledger.SaleDelta(items)
	if err := ledger.Validate(stock, names, delta, ledger.ErrInsufficientStock); err != nil {
		return nil, err
	}

	subtotal := subtotalOf(items)
	sale := &model.Sale{
		InvoiceNumber: req.InvoiceNumber,
		CustomerID:    customer.ID,
		CustomerName:  customer.Name,
		Date:          req.Date,
		Discount:      req.Discount,
		Subtotal:      subtotal,
		Total:         subtotal.Sub(req.Discount),
		VehicleNumber: req.VehicleNumber,
		Items:         items,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, sale); err != nil {
			return err
		}
		ref := sale.ID
		reason := fmt.Sprintf("Sale #%s", sale.InvoiceNumber)
		return applyProductDelta(ctx, tx, s.productRepo, s.movementRepo, delta,
			model.MovementSale, reason, &ref)
	})
	if txErr != nil {
		return nil, txErr
	}

	// Invoice PDF generation is async and best-effort — the sale stands even
	// if the queue is unavailable.
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueInvoicePDF(ctx, worker.InvoicePDFJobPayload{SaleID: sale.ID.String()})
	}
	return sale, nil
}

func (s *saleService) Get(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: sale %s", ledger.ErrNotFound, id)
	}
	return sale, nil
}

func (s *saleService) List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	return s.repo.List(ctx, filter)
}

// Update is rollback-then-reapply, never an item diff: the original items'
// un-returned remainder is restored, then the new item set is validated and
// deducted against the restored stock. Both halves land in one transaction,
// so a failed edit leaves the original sale and stock untouched.
func (s *saleService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateSaleRequest) (*model.Sale, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: sale %s", ledger.ErrNotFound, id)
	}
	if sale.IsCancelled {
		return nil, fmt.Errorf("%w: sale #%s cannot be edited", ledger.ErrSaleCancelled, sale.InvoiceNumber)
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid customer id", ledger.ErrValidation)
	}
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("%w: customer %s", ledger.ErrNotFound, req.CustomerID)
	}

	newItems, stock, names, err := s.resolveItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	// Returned units stay attached to their product line across an edit. A
	// quantity below what was already returned would make the effective
	// quantity negative.
	returnedByProduct := make(map[uuid.UUID]int, len(sale.Items))
	for _, it := range sale.Items {
		returnedByProduct[it.ProductID] = it.ReturnedQuantity
	}
	for i := range newItems {
		carried := returnedByProduct[newItems[i].ProductID]
		if carried > newItems[i].Quantity {
			return nil, fmt.Errorf("%w: %s already has %d returned, quantity cannot be below that",
				ledger.ErrValidation, newItems[i].ProductName, carried)
		}
		newItems[i].ReturnedQuantity = carried
	}

	// The stock snapshot must cover products that only appear in the original
	// item set (they get restored, not re-deducted).
	for _, it := range sale.Items {
		if _, ok := stock[it.ProductID]; !ok {
			p, err := s.productRepo.FindByID(ctx, it.ProductID)
			if err != nil {
				return nil, fmt.Errorf("%w: product %s", ledger.ErrNotFound, it.ProductID)
			}
			stock[it.ProductID] = p.StockQuantity
			names[it.ProductID] = p.Name
		}
	}

	rollback := ledger.SaleRollbackDelta(sale.Items)
	reapply := ledger.Negate(ledger.SaleRollbackDelta(newItems))
	combined := ledger.Merge(rollback, reapply)
	if err := ledger.Validate(stock, names, combined, ledger.ErrInsufficientStock); err != nil {
		return nil, err
	}

	subtotal := subtotalOf(newItems)
	sale.InvoiceNumber = req.InvoiceNumber
	sale.CustomerID = customer.ID
	sale.CustomerName = customer.Name
	sale.Date = req.Date
	sale.Discount = req.Discount
	sale.VehicleNumber = req.VehicleNumber
	sale.Subtotal = subtotal
	sale.Total = subtotal.Sub(req.Discount)
	sale.Items = newItems

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		ref := sale.ID
		reason := fmt.Sprintf("Edit sale #%s", sale.InvoiceNumber)
		if err := applyProductDelta(ctx, tx, s.productRepo, s.movementRepo, combined,
			model.MovementSaleEdit, reason, &ref); err != nil {
			return err
		}
		return s.repo.ReplaceTx(tx, sale)
	})
	if txErr != nil {
		return nil, txErr
	}
	return sale, nil
}

// ReturnItems accumulates per-item returned quantities and restores the
// returned units to product stock. A request whose lines are all zero is a
// no-op: nothing is mutated or persisted.
func (s *saleService) ReturnItems(ctx context.Context, id uuid.UUID, req dto.ReturnSaleRequest) (*model.Sale, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: sale %s", ledger.ErrNotFound, id)
	}
	if sale.IsCancelled {
		return nil, fmt.Errorf("%w: sale #%s cannot accept returns", ledger.ErrSaleCancelled, sale.InvoiceNumber)
	}

	returns := make([]ledger.Return, 0, len(req.Items))
	for _, it := range req.Items {
		productID, err := uuid.Parse(it.ProductID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid product id", ledger.ErrValidation)
		}
		returns = append(returns, ledger.Return{ProductID: productID, Quantity: it.Quantity})
	}

	if err := ledger.ValidateReturn(sale.Items, returns); err != nil {
		return nil, err
	}

	delta := ledger.ReturnDelta(returns)
	if len(delta) == 0 {
		return sale, nil
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for i := range sale.Items {
			add := delta[sale.Items[i].ProductID]
			if add == 0 {
				continue
			}
			sale.Items[i].ReturnedQuantity += add
			if err := s.repo.UpdateItemReturnedTx(tx, sale.Items[i].ID, sale.Items[i].ReturnedQuantity); err != nil {
				return err
			}
		}
		ref := sale.ID
		reason := fmt.Sprintf("Return on sale #%s", sale.InvoiceNumber)
		return applyProductDelta(ctx, tx, s.productRepo, s.movementRepo, delta,
			model.MovementReturn, reason, &ref)
	})
	if txErr != nil {
		return nil, txErr
	}
	return sale, nil
}

// Cancel restores the un-returned remainder of every item and marks the sale
// cancelled. Cancelling an already-cancelled sale fails rather than silently
// succeeding — the caller should know the state it acted on was stale.
func (s *saleService) Cancel(ctx context.Context, id uuid.UUID) error {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: sale %s", ledger.ErrNotFound, id)
	}
	if sale.IsCancelled {
		return fmt.Errorf("%w: sale #%s is already cancelled", ledger.ErrSaleCancelled, sale.InvoiceNumber)
	}

	restore := ledger.SaleRollbackDelta(sale.Items)
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		ref := sale.ID
		reason := fmt.Sprintf("Cancel sale #%s", sale.InvoiceNumber)
		if err := applyProductDelta(ctx, tx, s.productRepo, s.movementRepo, restore,
			model.MovementCancellation, reason, &ref); err != nil {
			return err
		}
		return s.repo.SetCancelledTx(tx, sale.ID)
	})
}
