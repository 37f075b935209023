package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/acme-dashboard/internal/dto"
	"github.com/yukikurage/acme-dashboard/internal/services"
	"github.com/yukikurage/acme-dashboard/internal/utils"
)

// InvoiceHandler serves the dashboard, invoice and customer views.
type InvoiceHandler struct {
	invoiceService *services.InvoiceService
}

func NewInvoiceHandler(invoiceService *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// CardData returns the four dashboard summary cards
func (h *InvoiceHandler) CardData(c *gin.Context) {
	cards, err := h.invoiceService.CardData(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cards)
}

func (h *InvoiceHandler) Revenue(c *gin.Context) {
	revenue, err := h.invoiceService.Revenue(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"revenue": revenue})
}

func (h *InvoiceHandler) LatestInvoices(c *gin.Context) {
	latest, err := h.invoiceService.LatestInvoices(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoices": latest})
}

// ListInvoices returns one page of invoices matching ?query=
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	page, err := h.invoiceService.SearchInvoices(c.Request.Context(), c.Query("query"), utils.GetPageParam(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.InvoicePageDTO{Invoices: page.Invoices, Page: page.Page})
}

func (h *InvoiceHandler) InvoicePages(c *gin.Context) {
	pages, err := h.invoiceService.InvoicePages(c.Request.Context(), c.Query("query"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total_pages": pages})
}

func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func (h *InvoiceHandler) ListCustomers(c *gin.Context) {
	customers, err := h.invoiceService.Customers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": customers})
}

// CustomerTable returns customers matching ?query= with invoice totals
func (h *InvoiceHandler) CustomerTable(c *gin.Context) {
	customers, err := h.invoiceService.CustomerTable(c.Request.Context(), c.Query("query"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": customers})
}
