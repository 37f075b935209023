package constants

// Session and context keys
const (
	SessionCookieName = "acme_session"
	ContextKeyUserID  = "user_id"
	ContextKeyCompany = "company"
	ContextKeyRole    = "user_role"
)

// Authentication
const (
	MinPasswordLength = 6
)

// Pagination
const (
	InvoicesPerPage     = 6
	LatestInvoicesLimit = 5
	MinPage             = 1
)

// Task suggestions
const (
	MaxSuggestedTasks = 20
)
