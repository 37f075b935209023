package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/acme-dashboard/internal/dto"
	"github.com/yukikurage/acme-dashboard/internal/middleware"
	"github.com/yukikurage/acme-dashboard/internal/services"
)

// WorkspaceHandler serves projects, records, tasks and comments. Every route
// sits behind RequireCompanyAccess, so :id is known to exist.
type WorkspaceHandler struct {
	workspaceService *services.WorkspaceService
}

func NewWorkspaceHandler(workspaceService *services.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{workspaceService: workspaceService}
}

type nameDescriptionRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
}

// CreateProject creates a project in the company :id
func (h *WorkspaceHandler) CreateProject(c *gin.Context) {
	companyID, _ := middleware.GetCompanyID(c)

	var req nameDescriptionRequest
	if !bindJSON(c, &req) {
		return
	}

	id, err := h.workspaceService.CreateProject(c.Request.Context(), companyID, req.Name, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CreatedDTO{ID: id})
}

func (h *WorkspaceHandler) ListProjects(c *gin.Context) {
	companyID, _ := middleware.GetCompanyID(c)
	projects, err := h.workspaceService.ListProjects(c.Request.Context(), companyID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

// CreateRecord creates a record in the project :id
func (h *WorkspaceHandler) CreateRecord(c *gin.Context) {
	var req nameDescriptionRequest
	if !bindJSON(c, &req) {
		return
	}

	id, err := h.workspaceService.CreateRecord(c.Request.Context(), c.Param("id"), req.Name, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CreatedDTO{ID: id})
}

func (h *WorkspaceHandler) ListRecords(c *gin.Context) {
	records, err := h.workspaceService.ListRecords(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}

// CreateTask creates a task in the record :id
func (h *WorkspaceHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		Name        string     `json:"name" binding:"required,max=255"`
		Description string     `json:"description"`
		AssignedTo  *string    `json:"assigned_to"`
		DueDate     *time.Time `json:"due_date"`
	}

	var req CreateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	id, err := h.workspaceService.CreateTask(c.Request.Context(), services.CreateTaskInput{
		RecordID:    c.Param("id"),
		Name:        req.Name,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		DueDate:     req.DueDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CreatedDTO{ID: id})
}

func (h *WorkspaceHandler) ListTasks(c *gin.Context) {
	tasks, err := h.workspaceService.ListTasks(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// SuggestTasks proposes tasks for the record :id from free text
func (h *WorkspaceHandler) SuggestTasks(c *gin.Context) {
	type SuggestRequest struct {
		Text string `json:"text" binding:"required,max=10000"`
	}

	var req SuggestRequest
	if !bindJSON(c, &req) {
		return
	}

	tasks, err := h.workspaceService.SuggestTasks(c.Request.Context(), c.Param("id"), req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// CreateComment adds a comment by the current user to the task :id
func (h *WorkspaceHandler) CreateComment(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	type CreateCommentRequest struct {
		Content string `json:"content" binding:"required"`
	}

	var req CreateCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	id, err := h.workspaceService.CreateComment(c.Request.Context(), c.Param("id"), userID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CreatedDTO{ID: id})
}

func (h *WorkspaceHandler) ListComments(c *gin.Context) {
	comments, err := h.workspaceService.ListComments(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}
