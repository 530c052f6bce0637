package worker

// Generates the invoice PDF for a completed sale in the background and, when
// the customer has an email on file, queues the invoice for delivery.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/DareDevilStudios/sharon-billing/internal/infra"
	"github.com/DareDevilStudios/sharon-billing/internal/repository"
)

// InvoicePDFJobPayload is the job envelope sent to QueueInvoicePDF.
type InvoicePDFJobPayload struct {
	SaleID string `json:"sale_id"`
}

type InvoicePDFWorker struct {
	saleRepo       repository.SaleRepository
	customerRepo   repository.CustomerRepository
	dispatcher     *Dispatcher
	pdfStoragePath string
	businessName   string
}

func NewInvoicePDFWorker(
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
	dispatcher *Dispatcher,
	pdfStoragePath string,
	businessName string,
) *InvoicePDFWorker {
	return &InvoicePDFWorker{
		saleRepo:       saleRepo,
		customerRepo:   customerRepo,
		dispatcher:     dispatcher,
		pdfStoragePath: pdfStoragePath,
		businessName:   businessName,
	}
}

func (w *InvoicePDFWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload InvoicePDFJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("invoice_worker: invalid payload")
		return nil // malformed payloads are not retryable
	}

	saleID, err := uuid.Parse(payload.SaleID)
	if err != nil {
		log.Error().Str("sale_id", payload.SaleID).Msg("invoice_worker: invalid sale_id")
		return nil
	}

	sale, err := w.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return fmt.Errorf("invoice_worker: sale %s: %w", payload.SaleID, err)
	}

	customer, err := w.customerRepo.FindByID(ctx, sale.CustomerID)
	if err != nil {
		return fmt.Errorf("invoice_worker: customer %s: %w", sale.CustomerID, err)
	}

	var pdfPath string
	genErr := withRetry(ctx, maxJobAttempts, func(attempt int) error {
		path, err := infra.GenerateInvoicePDF(sale, customer.Address, w.businessName, w.pdfStoragePath)
		if err != nil {
			log.Warn().Err(err).Int("attempt", attempt+1).
				Str("sale_id", payload.SaleID).
				Msg("invoice_worker: PDF generation failed, retrying")
			return err
		}
		pdfPath = path
		return nil
	})
	if genErr != nil {
		return fmt.Errorf("invoice_worker: pdf for sale %s: %w", payload.SaleID, genErr)
	}
	log.Info().Str("pdf", pdfPath).Str("sale_id", payload.SaleID).Msg("invoice_worker: PDF generated")

	if customer.Email != nil && *customer.Email != "" {
		emailJob := EmailJobPayload{
			ToEmail: *customer.Email,
			Subject: fmt.Sprintf("Invoice #%s — %s", sale.InvoiceNumber, w.businessName),
			Body:    fmt.Sprintf("Please find your invoice attached.\nTotal: Rs. %s", sale.Total.StringFixed(2)),
			PDFPath: pdfPath,
		}
		if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
			log.Warn().Err(err).Str("email", *customer.Email).Msg("invoice_worker: failed to enqueue email")
		}
	}
	return nil
}
