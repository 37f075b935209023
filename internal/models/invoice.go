package models

import "time"

type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
)

func (s InvoiceStatus) IsValid() bool {
	return s == InvoiceStatusPending || s == InvoiceStatusPaid
}

type Customer struct {
	ID       string `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"type:varchar(255);not null" json:"name"`
	Email    string `gorm:"type:varchar(255);not null" json:"email"`
	ImageURL string `gorm:"type:varchar(255);not null" json:"image_url"`
}

// Invoice amounts are integer cents.
type Invoice struct {
	ID         string        `gorm:"primaryKey" json:"id"`
	CustomerID string        `gorm:"not null;index" json:"customer_id"`
	Amount     int64         `gorm:"type:integer;not null" json:"amount"`
	Date       time.Time     `gorm:"type:date;not null;index" json:"date"`
	Status     InvoiceStatus `gorm:"type:varchar(255);not null" json:"status"`

	// Relations
	Customer Customer `gorm:"foreignKey:CustomerID" json:"-"`
}

type Revenue struct {
	Month   string `gorm:"type:varchar(4);primaryKey" json:"month"`
	Revenue int64  `gorm:"not null" json:"revenue"`
}

func (Revenue) TableName() string {
	return "revenue"
}

// LatestInvoice is a dashboard row with the amount already formatted.
type LatestInvoice struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
	Email    string `json:"email"`
	Amount   string `json:"amount"`
}

// InvoicesTable is one row of the searchable invoice table. Amount stays in cents.
type InvoicesTable struct {
	ID         string        `json:"id"`
	CustomerID string        `json:"customer_id"`
	Name       string        `json:"name"`
	Email      string        `json:"email"`
	ImageURL   string        `json:"image_url"`
	Date       time.Time     `json:"date"`
	Amount     int64         `json:"amount"`
	Status     InvoiceStatus `json:"status"`
}

// InvoiceForm feeds the invoice edit form. Amount is in dollars.
type InvoiceForm struct {
	ID         string        `json:"id"`
	CustomerID string        `json:"customer_id"`
	Amount     float64       `json:"amount"`
	Status     InvoiceStatus `json:"status"`
}

type CustomerField struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FormattedCustomersTable is one row of the customer table with per-customer
// invoice totals formatted for display.
type FormattedCustomersTable struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	ImageURL      string `json:"image_url"`
	TotalInvoices int64  `json:"total_invoices"`
	TotalPending  string `json:"total_pending"`
	TotalPaid     string `json:"total_paid"`
}

type CardData struct {
	NumberOfCustomers    int64  `json:"number_of_customers"`
	NumberOfInvoices     int64  `json:"number_of_invoices"`
	TotalPaidInvoices    string `json:"total_paid_invoices"`
	TotalPendingInvoices string `json:"total_pending_invoices"`
}
