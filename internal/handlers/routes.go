package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yukikurage/acme-dashboard/internal/middleware"
	"github.com/yukikurage/acme-dashboard/internal/services"
)

// Handlers groups everything RegisterRoutes needs.
type Handlers struct {
	Auth      *AuthHandler
	Invoices  *InvoiceHandler
	Companies *CompanyHandler
	Workspace *WorkspaceHandler

	// CompanyService backs the company access checks
	CompanyService *services.CompanyService
}

// RegisterRoutes mounts the API under /api.
func RegisterRoutes(r gin.IRouter, h Handlers) {
	useJSONFieldNames()

	api := r.Group("/api")

	// Auth routes (public)
	auth := api.Group("/auth")
	{
		auth.POST("/signup", h.Auth.Signup)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/logout", h.Auth.Logout)
		auth.GET("/me", middleware.RequireAuth(), h.Auth.GetCurrentUser)
	}

	protected := api.Group("")
	protected.Use(middleware.RequireAuth())

	// Dashboard, invoices and customers
	dashboard := protected.Group("/dashboard")
	{
		dashboard.GET("/cards", h.Invoices.CardData)
		dashboard.GET("/revenue", h.Invoices.Revenue)
		dashboard.GET("/latest-invoices", h.Invoices.LatestInvoices)
	}
	protected.GET("/invoices", h.Invoices.ListInvoices)
	protected.GET("/invoices/pages", h.Invoices.InvoicePages)
	protected.GET("/invoices/:id", h.Invoices.GetInvoice)
	protected.GET("/customers", h.Invoices.ListCustomers)
	protected.GET("/customers/table", h.Invoices.CustomerTable)

	// Companies
	svc := h.CompanyService
	companyAccess := middleware.RequireCompanyAccess(svc, middleware.CompanyParam)
	manager := middleware.RequireCompanyManager()

	protected.GET("/users/me/roles", h.Companies.ListMyRoles)
	protected.GET("/invitations/verify", h.Companies.VerifyInvitation)

	companies := protected.Group("/companies")
	{
		companies.POST("", h.Companies.CreateCompany)
		companies.GET("", h.Companies.ListCompanies)
		companies.GET("/:id", companyAccess, h.Companies.GetCompany)
		companies.POST("/:id/members", companyAccess, manager, h.Companies.AddMember)
		companies.GET("/:id/invitations", companyAccess, manager, h.Companies.ListInvitations)
		companies.POST("/:id/invitations", companyAccess, manager, h.Companies.CreateInvitation)
		companies.GET("/:id/projects", companyAccess, h.Workspace.ListProjects)
		companies.POST("/:id/projects", companyAccess, h.Workspace.CreateProject)
	}

	// Nested workspace resources resolve their company through :id
	projectAccess := middleware.RequireCompanyAccess(svc, svc.CompanyIDForProject)
	recordAccess := middleware.RequireCompanyAccess(svc, svc.CompanyIDForRecord)
	taskAccess := middleware.RequireCompanyAccess(svc, svc.CompanyIDForTask)

	protected.GET("/projects/:id/records", projectAccess, h.Workspace.ListRecords)
	protected.POST("/projects/:id/records", projectAccess, h.Workspace.CreateRecord)
	protected.GET("/records/:id/tasks", recordAccess, h.Workspace.ListTasks)
	protected.POST("/records/:id/tasks", recordAccess, h.Workspace.CreateTask)
	protected.POST("/records/:id/tasks/suggest", recordAccess, h.Workspace.SuggestTasks)
	protected.GET("/tasks/:id/comments", taskAccess, h.Workspace.ListComments)
	protected.POST("/tasks/:id/comments", taskAccess, h.Workspace.CreateComment)
}
