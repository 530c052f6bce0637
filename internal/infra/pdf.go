package infra

// A4 invoice and history-export generation using go-pdf/fpdf. Invoices show
// per-line effective quantities (sold minus returned); a cancelled sale is
// stamped CANCELLED and totals to zero lines of active stock effect, but the
// document still prints for audit.

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/DareDevilStudios/sharon-billing/internal/model"
)

const currencyPrefix = "Rs. "

// GenerateInvoicePDF writes the invoice for a sale to storagePath and returns
// the file path. The file name is derived from the sale id, so regeneration
// after a return or edit overwrites the stale copy.
func GenerateInvoicePDF(sale *model.Sale, customerAddress, businessName, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("invoice_%s.pdf", sale.ID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// Header
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(contentW, 10, businessName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, "Tax Invoice", "", 1, "C", false, 0, "")
	if sale.IsCancelled {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetTextColor(200, 0, 0)
		pdf.CellFormat(contentW, 7, "CANCELLED", "", 1, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}
	pdf.Ln(4)

	// Invoice meta
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW/2, 6, fmt.Sprintf("Invoice #%s", sale.InvoiceNumber), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW/2, 6, "Date: "+sale.Date, "", 1, "R", false, 0, "")

	pdf.CellFormat(contentW/2, 6, "Billed to: "+sale.CustomerName, "", 0, "L", false, 0, "")
	if sale.VehicleNumber != nil && *sale.VehicleNumber != "" {
		pdf.CellFormat(contentW/2, 6, "Vehicle: "+*sale.VehicleNumber, "", 1, "R", false, 0, "")
	} else {
		pdf.Ln(6)
	}
	if customerAddress != "" {
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(contentW, 5, customerAddress, "", "L", false)
	}
	pdf.Ln(4)

	// Items table
	col1 := contentW * 0.40 // product
	col2 := contentW * 0.12 // qty
	col3 := contentW * 0.12 // returned
	col4 := contentW * 0.16 // price
	col5 := contentW * 0.20 // amount

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 7, "Product", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 7, "Qty", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 7, "Returned", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col4, 7, "Price", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col5, 7, "Amount", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	subtotal := decimal.Zero
	for _, it := range sale.Items {
		eff := it.Quantity - it.ReturnedQuantity
		amount := it.Price.Mul(decimal.NewFromInt(int64(eff)))
		subtotal = subtotal.Add(amount)

		name := it.ProductName
		if len(name) > 40 {
			name = name[:39] + "…"
		}
		pdf.CellFormat(col1, 6, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, fmt.Sprintf("%d", it.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 6, fmt.Sprintf("%d", it.ReturnedQuantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(col4, 6, currencyPrefix+it.Price.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col5, 6, currencyPrefix+amount.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	// Totals
	labelW := col1 + col2 + col3 + col4
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(labelW, 6, "Subtotal:", "", 0, "R", false, 0, "")
	pdf.CellFormat(col5, 6, currencyPrefix+subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	if !sale.Discount.IsZero() {
		pdf.CellFormat(labelW, 6, "Discount:", "", 0, "R", false, 0, "")
		pdf.CellFormat(col5, 6, "-"+currencyPrefix+sale.Discount.StringFixed(2), "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(labelW, 8, "TOTAL:", "", 0, "R", false, 0, "")
	pdf.CellFormat(col5, 8, currencyPrefix+subtotal.Sub(sale.Discount).StringFixed(2), "", 1, "R", false, 0, "")

	// Footer
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 5, "Thank you for your business!", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

// GenerateSalesHistoryPDF writes a tabular export of sales between from and to.
func GenerateSalesHistoryPDF(sales []model.Sale, from, to, businessName, storagePath string) (string, error) {
	rows := make([][]string, 0, len(sales))
	total := decimal.Zero
	for _, s := range sales {
		status := ""
		if s.IsCancelled {
			status = "cancelled"
		} else {
			total = total.Add(s.Total)
		}
		rows = append(rows, []string{s.Date, s.InvoiceNumber, s.CustomerName, currencyPrefix + s.Total.StringFixed(2), status})
	}
	return generateHistoryPDF(
		"Sales History", from, to, businessName, storagePath,
		[]string{"Date", "Invoice", "Customer", "Total", ""},
		rows, total,
		fmt.Sprintf("sales_%s_%s.pdf", from, to),
	)
}

// GeneratePurchaseHistoryPDF writes a tabular export of purchases between from and to.
func GeneratePurchaseHistoryPDF(purchases []model.Purchase, from, to, businessName, storagePath string) (string, error) {
	rows := make([][]string, 0, len(purchases))
	total := decimal.Zero
	for _, p := range purchases {
		total = total.Add(p.Subtotal)
		rows = append(rows, []string{p.Date, p.InvoiceNumber, p.SupplierName, currencyPrefix + p.Subtotal.StringFixed(2), ""})
	}
	return generateHistoryPDF(
		"Purchase History", from, to, businessName, storagePath,
		[]string{"Date", "Invoice", "Supplier", "Total", ""},
		rows, total,
		fmt.Sprintf("purchases_%s_%s.pdf", from, to),
	)
}

func generateHistoryPDF(title, from, to, businessName, storagePath string, headers []string, rows [][]string, total decimal.Decimal, fileName string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, businessName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(contentW, 6, title, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("%s to %s  (generated %s)", from, to, time.Now().Format("2006-01-02")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	widths := []float64{contentW * 0.16, contentW * 0.20, contentW * 0.32, contentW * 0.18, contentW * 0.14}

	pdf.SetFont("Helvetica", "B", 9)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "B", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > 30 {
				cell = cell[:29] + "…"
			}
			pdf.CellFormat(widths[i], 6, cell, "", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(widths[0]+widths[1]+widths[2], 7, "TOTAL:", "", 0, "R", false, 0, "")
	pdf.CellFormat(widths[3], 7, currencyPrefix+total.StringFixed(2), "", 1, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
