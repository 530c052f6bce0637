package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DareDevilStudios/sharon-billing/internal/apierror"
	"github.com/DareDevilStudios/sharon-billing/internal/config"
	"github.com/DareDevilStudios/sharon-billing/internal/dto"
	"github.com/DareDevilStudios/sharon-billing/internal/infra"
	"github.com/DareDevilStudios/sharon-billing/internal/service"
)

type ReportsHandler struct {
	svc     service.ReportService
	saleSvc service.SaleService
	cfg     *config.Config
}

func NewReportsHandler(svc service.ReportService, saleSvc service.SaleService, cfg *config.Config) *ReportsHandler {
	return &ReportsHandler{svc: svc, saleSvc: saleSvc, cfg: cfg}
}

// DayBook aggregates sales, purchases and expenses per day over a date range.
func (h *ReportsHandler) DayBook(c *gin.Context) {
	var filter dto.DateRangeFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	if err := validate.Struct(&filter); err != nil {
		c.JSON(http.StatusUnprocessableEntity, apierror.New("from and to must be YYYY-MM-DD dates"))
		return
	}
	resp, err := h.svc.DayBook(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LowStock lists materials below their reorder threshold.
func (h *ReportsHandler) LowStock(c *gin.Context) {
	resp, err := h.svc.LowStock(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Invoice returns the derived invoice view of a sale, with per-line effective
// quantities after returns.
func (h *ReportsHandler) Invoice(c *gin.Context) {
	id, ok := parseID(c, "saleID")
	if !ok {
		return
	}
	resp, err := h.svc.Invoice(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// InvoicePDF renders the invoice to PDF on demand and streams the file. The
// document is regenerated each time so returns are always reflected.
func (h *ReportsHandler) InvoicePDF(c *gin.Context) {
	id, ok := parseID(c, "saleID")
	if !ok {
		return
	}
	sale, err := h.saleSvc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	inv, err := h.svc.Invoice(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	path, err := infra.GenerateInvoicePDF(sale, inv.CustomerAddress, h.cfg.BusinessName, h.cfg.PDFStoragePath)
	if err != nil {
		respondError(c, err)
		return
	}
	c.FileAttachment(path, "invoice_"+sale.InvoiceNumber+".pdf")
}

// Export writes a sales or purchase history PDF for a date range and streams
// the file.
func (h *ReportsHandler) Export(c *gin.Context) {
	var req dto.ExportRequest
	if !bindAndValidate(c, &req) {
		return
	}

	var path string
	var err error
	switch req.Kind {
	case "sales":
		sales, listErr := h.svc.SalesInRange(c.Request.Context(), req.From, req.To)
		if listErr != nil {
			respondError(c, listErr)
			return
		}
		path, err = infra.GenerateSalesHistoryPDF(sales, req.From, req.To, h.cfg.BusinessName, h.cfg.PDFStoragePath)
	case "purchases":
		purchases, listErr := h.svc.PurchasesInRange(c.Request.Context(), req.From, req.To)
		if listErr != nil {
			respondError(c, listErr)
			return
		}
		path, err = infra.GeneratePurchaseHistoryPDF(purchases, req.From, req.To, h.cfg.BusinessName, h.cfg.PDFStoragePath)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.FileAttachment(path, req.Kind+"_"+req.From+"_"+req.To+".pdf")
}
