package services

import (
	"context"
	"errors"
	"strings"

	"github.com/yukikurage/acme-dashboard/internal/constants"
	"github.com/yukikurage/acme-dashboard/internal/models"
	"github.com/yukikurage/acme-dashboard/internal/repository"
)

var ErrInvoiceNotFound = errors.New("invoice not found")

// InvoiceService serves the dashboard, invoice and customer views.
type InvoiceService struct {
	dashboardRepo repository.DashboardRepository
	invoiceRepo   repository.InvoiceRepository
	customerRepo  repository.CustomerRepository
}

func NewInvoiceService(dashboardRepo repository.DashboardRepository, invoiceRepo repository.InvoiceRepository, customerRepo repository.CustomerRepository) *InvoiceService {
	return &InvoiceService{
		dashboardRepo: dashboardRepo,
		invoiceRepo:   invoiceRepo,
		customerRepo:  customerRepo,
	}
}

func (s *InvoiceService) CardData(ctx context.Context) (models.CardData, error) {
	return s.dashboardRepo.FetchCardData(ctx)
}

func (s *InvoiceService) Revenue(ctx context.Context) ([]models.Revenue, error) {
	return s.dashboardRepo.FetchRevenue(ctx)
}

func (s *InvoiceService) LatestInvoices(ctx context.Context) ([]models.LatestInvoice, error) {
	return s.dashboardRepo.FetchLatestInvoices(ctx)
}

// InvoicePage is one page of the invoice table.
type InvoicePage struct {
	Invoices []models.InvoicesTable
	Page     int
}

// SearchInvoices returns the requested page of invoices matching query.
// Pages below the first are served as the first.
func (s *InvoiceService) SearchInvoices(ctx context.Context, query string, page int) (InvoicePage, error) {
	if page < constants.MinPage {
		page = constants.MinPage
	}
	invoices, err := s.invoiceRepo.FetchFilteredInvoices(ctx, strings.TrimSpace(query), page)
	if err != nil {
		return InvoicePage{}, err
	}
	return InvoicePage{Invoices: invoices, Page: page}, nil
}

func (s *InvoiceService) InvoicePages(ctx context.Context, query string) (int, error) {
	return s.invoiceRepo.FetchInvoicesPages(ctx, strings.TrimSpace(query))
}

// GetInvoice returns the edit form data for an invoice.
func (s *InvoiceService) GetInvoice(ctx context.Context, id string) (*models.InvoiceForm, error) {
	invoice, found, err := s.invoiceRepo.FetchInvoiceByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrInvoiceNotFound
	}
	return &invoice, nil
}

func (s *InvoiceService) Customers(ctx context.Context) ([]models.CustomerField, error) {
	return s.customerRepo.FetchCustomers(ctx)
}

func (s *InvoiceService) CustomerTable(ctx context.Context, query string) ([]models.FormattedCustomersTable, error) {
	return s.customerRepo.FetchFilteredCustomers(ctx, strings.TrimSpace(query))
}
