package repository

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yukikurage/acme-dashboard/internal/constants"
	"github.com/yukikurage/acme-dashboard/internal/models"
	"github.com/yukikurage/acme-dashboard/internal/utils"
)

// GormDashboardRepository is a GORM implementation of DashboardRepository
type GormDashboardRepository struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

// NewDashboardRepository creates a new DashboardRepository
func NewDashboardRepository(db *gorm.DB, log *zap.SugaredLogger) DashboardRepository {
	return &GormDashboardRepository{db: db, log: log}
}

// FetchRevenue returns every row of the revenue table
func (r *GormDashboardRepository) FetchRevenue(ctx context.Context) ([]models.Revenue, error) {
	revenue := make([]models.Revenue, 0)
	if err := r.db.WithContext(ctx).Raw(`SELECT month, revenue FROM revenue`).Scan(&revenue).Error; err != nil {
		return nil, failure(r.log, "FetchRevenue", err, ErrFetchRevenue)
	}
	return revenue, nil
}

type latestInvoiceRow struct {
	ID       string
	Name     string
	ImageURL string
	Email    string
	Amount   int64
}

// FetchLatestInvoices returns the newest invoices joined with their customer
func (r *GormDashboardRepository) FetchLatestInvoices(ctx context.Context) ([]models.LatestInvoice, error) {
	var rows []latestInvoiceRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT invoices.amount, customers.name, customers.image_url, customers.email, invoices.id
		FROM invoices
		JOIN customers ON invoices.customer_id = customers.id
		ORDER BY invoices.date DESC
		LIMIT ?`, constants.LatestInvoicesLimit).Scan(&rows).Error
	if err != nil {
		return nil, failure(r.log, "FetchLatestInvoices", err, ErrFetchLatestInvoices)
	}

	latest := make([]models.LatestInvoice, len(rows))
	for i, row := range rows {
		latest[i] = models.LatestInvoice{
			ID:       row.ID,
			Name:     row.Name,
			ImageURL: row.ImageURL,
			Email:    row.Email,
			Amount:   utils.FormatCurrency(row.Amount),
		}
	}
	return latest, nil
}

type invoiceStatusTotals struct {
	Paid    *int64
	Pending *int64
}

// FetchCardData issues its three aggregate reads in parallel. They are
// independent reads, so no ordering is imposed between them.
func (r *GormDashboardRepository) FetchCardData(ctx context.Context) (models.CardData, error) {
	var (
		invoiceCount  int64
		customerCount int64
		totals        invoiceStatusTotals
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.db.WithContext(gctx).Raw(`SELECT COUNT(*) FROM invoices`).Scan(&invoiceCount).Error
	})
	g.Go(func() error {
		return r.db.WithContext(gctx).Raw(`SELECT COUNT(*) FROM customers`).Scan(&customerCount).Error
	})
	g.Go(func() error {
		return r.db.WithContext(gctx).Raw(`
			SELECT
				SUM(CASE WHEN status = ? THEN amount ELSE 0 END) AS paid,
				SUM(CASE WHEN status = ? THEN amount ELSE 0 END) AS pending
			FROM invoices`, string(models.InvoiceStatusPaid), string(models.InvoiceStatusPending)).Scan(&totals).Error
	})

	if err := g.Wait(); err != nil {
		return models.CardData{}, failure(r.log, "FetchCardData", err, ErrFetchCardData)
	}

	return models.CardData{
		NumberOfCustomers:    customerCount,
		NumberOfInvoices:     invoiceCount,
		TotalPaidInvoices:    utils.FormatCurrency(valueOrZero(totals.Paid)),
		TotalPendingInvoices: utils.FormatCurrency(valueOrZero(totals.Pending)),
	}, nil
}

func valueOrZero(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}
