package infra

import (
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DareDevilStudios/sharon-billing/internal/model"
)

func testSale() *model.Sale {
	vehicle := "KL-07-AB-1234"
	return &model.Sale{
		ID:            uuid.New(),
		InvoiceNumber: "INV-042",
		CustomerName:  "Kochi Hardware",
		Date:          "2025-03-10",
		Discount:      decimal.NewFromInt(20),
		Subtotal:      decimal.NewFromInt(500),
		Total:         decimal.NewFromInt(480),
		VehicleNumber: &vehicle,
		Items: []model.SaleItem{{
			ProductID:        uuid.New(),
			ProductName:      "Hollow Block",
			Quantity:         10,
			ReturnedQuantity: 2,
			Price:            decimal.NewFromInt(50),
			Total:            decimal.NewFromInt(500),
		}},
	}
}

func TestGenerateInvoicePDF(t *testing.T) {
	dir := t.TempDir()
	sale := testSale()

	path, err := GenerateInvoicePDF(sale, "MG Road, Kochi", "Sharon Industries", dir)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	// regeneration overwrites the same file
	again, err := GenerateInvoicePDF(sale, "MG Road, Kochi", "Sharon Industries", dir)
	require.NoError(t, err)
	assert.Equal(t, path, again)
}

func TestGenerateSalesHistoryPDF(t *testing.T) {
	dir := t.TempDir()

	path, err := GenerateSalesHistoryPDF([]model.Sale{*testSale()},
		"2025-03-01", "2025-03-31", "Sharon Industries", dir)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
