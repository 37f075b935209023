package repository

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yukikurage/acme-dashboard/internal/constants"
	"github.com/yukikurage/acme-dashboard/internal/models"
	"github.com/yukikurage/acme-dashboard/internal/utils"
)

// invoiceSearchPredicate matches the search text against the customer and
// the invoice's own columns. It takes five copies of the pattern.
const invoiceSearchPredicate = `
	customers.name ILIKE ? OR
	customers.email ILIKE ? OR
	invoices.amount::text ILIKE ? OR
	invoices.date::text ILIKE ? OR
	invoices.status ILIKE ?`

// GormInvoiceRepository is a GORM implementation of InvoiceRepository
type GormInvoiceRepository struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

// NewInvoiceRepository creates a new InvoiceRepository
func NewInvoiceRepository(db *gorm.DB, log *zap.SugaredLogger) InvoiceRepository {
	return &GormInvoiceRepository{db: db, log: log}
}

// FetchFilteredInvoices returns page (1-based) of the invoices matching query
func (r *GormInvoiceRepository) FetchFilteredInvoices(ctx context.Context, query string, page int) ([]models.InvoicesTable, error) {
	offset := utils.Offset(page, constants.InvoicesPerPage)

	args := append(searchPatterns(query, 5), constants.InvoicesPerPage, offset)

	invoices := make([]models.InvoicesTable, 0)
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			invoices.id,
			invoices.customer_id,
			invoices.amount,
			invoices.date,
			invoices.status,
			customers.name,
			customers.email,
			customers.image_url
		FROM invoices
		JOIN customers ON invoices.customer_id = customers.id
		WHERE`+invoiceSearchPredicate+`
		ORDER BY invoices.date DESC
		LIMIT ? OFFSET ?`, args...).Scan(&invoices).Error
	if err != nil {
		return nil, failure(r.log, "FetchFilteredInvoices", err, ErrFetchInvoices)
	}
	return invoices, nil
}

// FetchInvoicesPages counts matching invoices and converts the count to pages
func (r *GormInvoiceRepository) FetchInvoicesPages(ctx context.Context, query string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM invoices
		JOIN customers ON invoices.customer_id = customers.id
		WHERE`+invoiceSearchPredicate, searchPatterns(query, 5)...).Scan(&count).Error
	if err != nil {
		return 0, failure(r.log, "FetchInvoicesPages", err, ErrFetchInvoicePages)
	}

	return utils.TotalPages(count, constants.InvoicesPerPage), nil
}

type invoiceFormRow struct {
	ID         string
	CustomerID string
	Amount     int64
	Status     models.InvoiceStatus
}

// FetchInvoiceByID finds an invoice by ID
func (r *GormInvoiceRepository) FetchInvoiceByID(ctx context.Context, id string) (models.InvoiceForm, bool, error) {
	var rows []invoiceFormRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			invoices.id,
			invoices.customer_id,
			invoices.amount,
			invoices.status
		FROM invoices
		WHERE invoices.id = ?`, id).Scan(&rows).Error
	if err != nil {
		return models.InvoiceForm{}, false, failure(r.log, "FetchInvoiceByID", err, ErrFetchInvoice)
	}
	if len(rows) == 0 {
		return models.InvoiceForm{}, false, nil
	}

	row := rows[0]
	return models.InvoiceForm{
		ID:         row.ID,
		CustomerID: row.CustomerID,
		Amount:     utils.CentsToDollars(row.Amount),
		Status:     row.Status,
	}, true, nil
}

// searchPatterns wraps query as a substring pattern, repeated n times for
// predicates that test several columns.
func searchPatterns(query string, n int) []interface{} {
	pattern := "%" + query + "%"
	args := make([]interface{}, n)
	for i := range args {
		args[i] = pattern
	}
	return args
}
