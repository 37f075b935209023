package repository

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/yukikurage/acme-dashboard/internal/models"
)

// Every method issues a single parameterized statement unless noted
// otherwise. Database failures are logged with their cause and reported as
// the operation's generic Err* value. By-id lookups return found=false with a
// nil error when no row matches.

// DashboardRepository serves the overview page.
type DashboardRepository interface {
	// FetchRevenue returns the monthly revenue rows
	FetchRevenue(ctx context.Context) ([]models.Revenue, error)

	// FetchLatestInvoices returns the five newest invoices with formatted amounts
	FetchLatestInvoices(ctx context.Context) ([]models.LatestInvoice, error)

	// FetchCardData runs the invoice count, customer count and status totals
	// concurrently and combines them
	FetchCardData(ctx context.Context) (models.CardData, error)
}

// InvoiceRepository defines the interface for invoice data access
type InvoiceRepository interface {
	// FetchFilteredInvoices returns one page of invoices matching query, newest first
	FetchFilteredInvoices(ctx context.Context, query string, page int) ([]models.InvoicesTable, error)

	// FetchInvoicesPages counts the pages FetchFilteredInvoices can return for query
	FetchInvoicesPages(ctx context.Context, query string) (int, error)

	// FetchInvoiceByID returns the invoice form data with the amount in dollars
	FetchInvoiceByID(ctx context.Context, id string) (models.InvoiceForm, bool, error)
}

// CustomerRepository defines the interface for customer data access
type CustomerRepository interface {
	// FetchCustomers lists every customer's id and name ordered by name
	FetchCustomers(ctx context.Context) ([]models.CustomerField, error)

	// FetchFilteredCustomers returns customers matching query with invoice totals
	FetchFilteredCustomers(ctx context.Context, query string) ([]models.FormattedCustomersTable, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	CreateUser(ctx context.Context, name, email, passwordHash string) (string, error)
	FetchUserByID(ctx context.Context, id string) (models.User, bool, error)
	FetchUserByEmail(ctx context.Context, email string) (models.User, bool, error)
}

// CompanyRepository covers companies, their members and ownership lookups
type CompanyRepository interface {
	CreateCompany(ctx context.Context, name, createdBy string) (string, error)

	// CreateCompanyWithManager creates the company and gives its creator the
	// Manager role within a single transaction.
	CreateCompanyWithManager(ctx context.Context, name, createdBy string) (string, error)

	FetchCompanies(ctx context.Context) ([]models.Company, error)
	FetchCompanyByID(ctx context.Context, id string) (models.Company, bool, error)

	AddUserToCompany(ctx context.Context, userID, companyID string, role models.Role) (string, error)
	FetchUserRoles(ctx context.Context, userID string) ([]models.UserRole, error)
	FetchUserRole(ctx context.Context, userID, companyID string) (models.UserRole, bool, error)

	// Owning company lookups for nested resources
	FindCompanyIDByProject(ctx context.Context, projectID string) (string, bool, error)
	FindCompanyIDByRecord(ctx context.Context, recordID string) (string, bool, error)
	FindCompanyIDByTask(ctx context.Context, taskID string) (string, bool, error)
}

// ProjectRepository defines the interface for project and record data access
type ProjectRepository interface {
	CreateProject(ctx context.Context, companyID, name, description string) (string, error)
	FetchProjects(ctx context.Context, companyID string) ([]models.Project, error)

	CreateRecord(ctx context.Context, projectID, name, description string) (string, error)
	FetchRecords(ctx context.Context, projectID string) ([]models.Record, error)
	FetchRecordByID(ctx context.Context, id string) (models.Record, bool, error)
}

// TaskRepository defines the interface for task and comment data access
type TaskRepository interface {
	// CreateTask stores a new task in the To Do column
	CreateTask(ctx context.Context, recordID, name, description string, assignedTo *string, dueDate *time.Time) (string, error)
	FetchTasks(ctx context.Context, recordID string) ([]models.Task, error)

	CreateComment(ctx context.Context, taskID, userID, content string) (string, error)
	FetchComments(ctx context.Context, taskID string) ([]models.Comment, error)
}

// InvitationRepository defines the interface for invitation data access
type InvitationRepository interface {
	// CreateInvitation stores a Pending invitation
	CreateInvitation(ctx context.Context, companyID, email, token string, expiresAt time.Time) (string, error)
	FetchInvitations(ctx context.Context, companyID string) ([]models.Invitation, error)
	FetchInvitationByToken(ctx context.Context, token string) (models.Invitation, bool, error)
}

// failure logs the cause of a failed operation and returns the generic error
// exposed to callers.
func failure(log *zap.SugaredLogger, op string, err error, generic error) error {
	log.Errorw("database error", "op", op, "error", err)
	return generic
}
