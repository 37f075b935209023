package repository

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yukikurage/acme-dashboard/internal/models"
	"github.com/yukikurage/acme-dashboard/internal/utils"
)

// GormCustomerRepository is a GORM implementation of CustomerRepository
type GormCustomerRepository struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

// NewCustomerRepository creates a new CustomerRepository
func NewCustomerRepository(db *gorm.DB, log *zap.SugaredLogger) CustomerRepository {
	return &GormCustomerRepository{db: db, log: log}
}

// FetchCustomers lists customers for select inputs
func (r *GormCustomerRepository) FetchCustomers(ctx context.Context) ([]models.CustomerField, error) {
	customers := make([]models.CustomerField, 0)
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name
		FROM customers
		ORDER BY name ASC`).Scan(&customers).Error
	if err != nil {
		return nil, failure(r.log, "FetchCustomers", err, ErrFetchCustomers)
	}
	return customers, nil
}

type customerTableRow struct {
	ID            string
	Name          string
	Email         string
	ImageURL      string
	TotalInvoices int64
	TotalPending  *int64
	TotalPaid     *int64
}

// FetchFilteredCustomers aggregates invoice totals per matching customer.
// Customers without invoices are included with zero totals.
func (r *GormCustomerRepository) FetchFilteredCustomers(ctx context.Context, query string) ([]models.FormattedCustomersTable, error) {
	args := []interface{}{string(models.InvoiceStatusPending), string(models.InvoiceStatusPaid)}
	args = append(args, searchPatterns(query, 2)...)

	var rows []customerTableRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			customers.id,
			customers.name,
			customers.email,
			customers.image_url,
			COUNT(invoices.id) AS total_invoices,
			SUM(CASE WHEN invoices.status = ? THEN invoices.amount ELSE 0 END) AS total_pending,
			SUM(CASE WHEN invoices.status = ? THEN invoices.amount ELSE 0 END) AS total_paid
		FROM customers
		LEFT JOIN invoices ON customers.id = invoices.customer_id
		WHERE
			customers.name ILIKE ? OR
			customers.email ILIKE ?
		GROUP BY customers.id, customers.name, customers.email, customers.image_url
		ORDER BY customers.name ASC`, args...).Scan(&rows).Error
	if err != nil {
		return nil, failure(r.log, "FetchFilteredCustomers", err, ErrFetchCustomerTable)
	}

	customers := make([]models.FormattedCustomersTable, len(rows))
	for i, row := range rows {
		customers[i] = models.FormattedCustomersTable{
			ID:            row.ID,
			Name:          row.Name,
			Email:         row.Email,
			ImageURL:      row.ImageURL,
			TotalInvoices: row.TotalInvoices,
			TotalPending:  utils.FormatCurrency(valueOrZero(row.TotalPending)),
			TotalPaid:     utils.FormatCurrency(valueOrZero(row.TotalPaid)),
		}
	}
	return customers, nil
}
