package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedInvoices(t *testing.T, db *gorm.DB) {
	t.Helper()

	require.NoError(t, db.Exec(`INSERT INTO customers (id, name, email, image_url) VALUES
		('c1', 'Delba de Oliveira', 'delba@oliveira.com', '/customers/delba.png'),
		('c2', 'Lee Robinson', 'lee@robinson.com', '/customers/lee.png'),
		('c3', 'Amy Burns', 'amy@burns.com', '/customers/amy.png')`).Error)

	invoices := []struct {
		id, customer, date, status string
		amount                     int64
	}{
		{"i1", "c1", "2023-12-06", "pending", 15795},
		{"i2", "c2", "2023-11-14", "pending", 20348},
		{"i3", "c1", "2023-10-29", "paid", 3040},
		{"i4", "c2", "2023-09-10", "paid", 44800},
		{"i5", "c1", "2023-08-05", "pending", 34577},
		{"i6", "c2", "2023-07-16", "paid", 54246},
	}
	for _, inv := range invoices {
		require.NoError(t, db.Exec(`INSERT INTO invoices (id, customer_id, amount, date, status) VALUES (?, ?, ?, ?, ?)`,
			inv.id, inv.customer, inv.amount, inv.date, inv.status).Error)
	}
}

func TestDashboardRepository_FetchRevenue(t *testing.T) {
	db := newTestDB(t)
	repo := NewDashboardRepository(db, testLogger(t))

	for i, month := range []string{"Jan", "Feb", "Mar"} {
		require.NoError(t, db.Exec(`INSERT INTO revenue (month, revenue) VALUES (?, ?)`, month, (i+1)*1000).Error)
	}

	revenue, err := repo.FetchRevenue(context.Background())
	require.NoError(t, err)
	require.Len(t, revenue, 3)

	byMonth := map[string]int64{}
	for _, r := range revenue {
		byMonth[r.Month] = r.Revenue
	}
	assert.Equal(t, map[string]int64{"Jan": 1000, "Feb": 2000, "Mar": 3000}, byMonth)
}

func TestDashboardRepository_FetchLatestInvoices(t *testing.T) {
	db := newTestDB(t)
	seedInvoices(t, db)
	repo := NewDashboardRepository(db, testLogger(t))

	latest, err := repo.FetchLatestInvoices(context.Background())
	require.NoError(t, err)
	require.Len(t, latest, 5)

	assert.Equal(t, "i1", latest[0].ID)
	assert.Equal(t, "Delba de Oliveira", latest[0].Name)
	assert.Equal(t, "$157.95", latest[0].Amount)
	assert.Equal(t, "$448.00", latest[3].Amount)
	assert.Equal(t, "i5", latest[4].ID)
}

func TestDashboardRepository_FetchCardData(t *testing.T) {
	db := newTestDB(t)
	seedInvoices(t, db)
	repo := NewDashboardRepository(db, testLogger(t))

	cards, err := repo.FetchCardData(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(6), cards.NumberOfInvoices)
	assert.Equal(t, int64(3), cards.NumberOfCustomers)
	assert.Equal(t, "$1,020.86", cards.TotalPaidInvoices)
	assert.Equal(t, "$707.20", cards.TotalPendingInvoices)
}

func TestDashboardRepository_FetchCardData_Empty(t *testing.T) {
	db := newTestDB(t)
	repo := NewDashboardRepository(db, testLogger(t))

	cards, err := repo.FetchCardData(context.Background())
	require.NoError(t, err)

	assert.Zero(t, cards.NumberOfInvoices)
	assert.Zero(t, cards.NumberOfCustomers)
	assert.Equal(t, "$0.00", cards.TotalPaidInvoices)
	assert.Equal(t, "$0.00", cards.TotalPendingInvoices)
}

func TestDashboardRepository_FetchCardData_QueryFails(t *testing.T) {
	db, mock := newMockDB(t)
	mock.MatchExpectationsInOrder(false)
	repo := NewDashboardRepository(db, testLogger(t))

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM invoices`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(6))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM customers`).
		WillReturnError(fmt.Errorf("connection refused"))
	mock.ExpectQuery(`SUM\(CASE WHEN status = \$1`).
		WithArgs("paid", "pending").
		WillReturnRows(sqlmock.NewRows([]string{"paid", "pending"}).AddRow(100, 200))

	cards, err := repo.FetchCardData(context.Background())
	assert.Equal(t, ErrFetchCardData, err)
	assert.Zero(t, cards)
}

func TestDashboardRepository_FetchLatestInvoices_Error(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDashboardRepository(db, testLogger(t))

	mock.ExpectQuery(`ORDER BY invoices.date DESC\s+LIMIT \$1`).
		WithArgs(5).
		WillReturnError(assert.AnError)

	latest, err := repo.FetchLatestInvoices(context.Background())
	assert.Equal(t, ErrFetchLatestInvoices, err)
	assert.Nil(t, latest)
	require.NoError(t, mock.ExpectationsWereMet())
}
