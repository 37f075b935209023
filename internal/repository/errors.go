package repository

// Error is a data-access failure. Its message is generic and safe to return
// to clients; the underlying database error is only logged.
type Error struct {
	msg string
}

func (e *Error) Error() string { return e.msg }

func newError(msg string) error {
	return &Error{msg: msg}
}

var (
	ErrFetchRevenue        = newError("failed to fetch revenue data")
	ErrFetchLatestInvoices = newError("failed to fetch the latest invoices")
	ErrFetchCardData       = newError("failed to fetch card data")

	ErrFetchInvoices     = newError("failed to fetch invoices")
	ErrFetchInvoicePages = newError("failed to fetch total number of invoices")
	ErrFetchInvoice      = newError("failed to fetch invoice")

	ErrFetchCustomers     = newError("failed to fetch all customers")
	ErrFetchCustomerTable = newError("failed to fetch customer table")

	ErrCreateUser     = newError("failed to create user")
	ErrFetchUser      = newError("failed to fetch user")
	ErrDuplicateEmail = newError("email already registered")

	ErrCreateCompany    = newError("failed to create company")
	ErrFetchCompanies   = newError("failed to fetch companies")
	ErrFetchCompany     = newError("failed to fetch company")
	ErrAddUserToCompany = newError("failed to add user to company")
	ErrFetchUserRoles   = newError("failed to fetch user roles")

	ErrCreateProject = newError("failed to create project")
	ErrFetchProjects = newError("failed to fetch projects")
	ErrCreateRecord  = newError("failed to create record")
	ErrFetchRecords  = newError("failed to fetch records")
	ErrFetchRecord   = newError("failed to fetch record")

	ErrCreateTask    = newError("failed to create task")
	ErrFetchTasks    = newError("failed to fetch tasks")
	ErrCreateComment = newError("failed to create comment")
	ErrFetchComments = newError("failed to fetch comments")

	ErrCreateInvitation = newError("failed to create invitation")
	ErrFetchInvitations = newError("failed to fetch invitations")
	ErrFetchInvitation  = newError("failed to fetch invitation")
)
