package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/acme-dashboard/internal/constants"
	"github.com/yukikurage/acme-dashboard/internal/models"
	"github.com/yukikurage/acme-dashboard/internal/repository"
)

var (
	ErrNameRequired           = errors.New("name is required")
	ErrContentRequired        = errors.New("content is required")
	ErrRecordNotFound         = errors.New("record not found")
	ErrInvalidTaskAssignee    = errors.New("assignee is not a member of the company")
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAINoTasksGenerated     = errors.New("AI did not generate any tasks")
	ErrAINoValidTasks         = errors.New("no valid tasks could be created from AI output")
)

// WorkspaceService handles projects, records, tasks and comments
type WorkspaceService struct {
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
	companyRepo repository.CompanyRepository
	aiService   *AIService
}

// NewWorkspaceService creates a new WorkspaceService. aiService may be nil.
func NewWorkspaceService(projectRepo repository.ProjectRepository, taskRepo repository.TaskRepository, companyRepo repository.CompanyRepository, aiService *AIService) *WorkspaceService {
	return &WorkspaceService{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		companyRepo: companyRepo,
		aiService:   aiService,
	}
}

func (s *WorkspaceService) CreateProject(ctx context.Context, companyID, name, description string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNameRequired
	}
	return s.projectRepo.CreateProject(ctx, companyID, name, description)
}

func (s *WorkspaceService) ListProjects(ctx context.Context, companyID string) ([]models.Project, error) {
	return s.projectRepo.FetchProjects(ctx, companyID)
}

func (s *WorkspaceService) CreateRecord(ctx context.Context, projectID, name, description string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNameRequired
	}
	return s.projectRepo.CreateRecord(ctx, projectID, name, description)
}

func (s *WorkspaceService) ListRecords(ctx context.Context, projectID string) ([]models.Record, error) {
	return s.projectRepo.FetchRecords(ctx, projectID)
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	RecordID    string
	Name        string
	Description string
	AssignedTo  *string
	DueDate     *time.Time
}

// CreateTask creates a task in the To Do column. An assignee must belong to
// the company that owns the record.
func (s *WorkspaceService) CreateTask(ctx context.Context, input CreateTaskInput) (string, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return "", ErrNameRequired
	}

	if input.AssignedTo != nil {
		if err := s.ensureAssignable(ctx, input.RecordID, *input.AssignedTo); err != nil {
			return "", err
		}
	}

	return s.taskRepo.CreateTask(ctx, input.RecordID, name, input.Description, input.AssignedTo, input.DueDate)
}

func (s *WorkspaceService) ListTasks(ctx context.Context, recordID string) ([]models.Task, error) {
	return s.taskRepo.FetchTasks(ctx, recordID)
}

func (s *WorkspaceService) CreateComment(ctx context.Context, taskID, userID, content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", ErrContentRequired
	}
	return s.taskRepo.CreateComment(ctx, taskID, userID, content)
}

func (s *WorkspaceService) ListComments(ctx context.Context, taskID string) ([]models.Comment, error) {
	return s.taskRepo.FetchComments(ctx, taskID)
}

// SuggestTasks asks the AI service for tasks that would fit a record.
// Suggestions are returned to the caller and never stored.
func (s *WorkspaceService) SuggestTasks(ctx context.Context, recordID, text string) ([]GeneratedTask, error) {
	if s.aiService == nil {
		return nil, ErrAIServiceNotConfigured
	}

	record, found, err := s.projectRepo.FetchRecordByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrRecordNotFound
	}

	aiTasks, err := s.aiService.GenerateTasksFromText(ctx, record.Name, text)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tasks: %w", err)
	}

	if len(aiTasks) == 0 {
		return nil, ErrAINoTasksGenerated
	}
	if len(aiTasks) > constants.MaxSuggestedTasks {
		aiTasks = aiTasks[:constants.MaxSuggestedTasks]
	}

	validTasks := make([]GeneratedTask, 0, len(aiTasks))
	cutoff := time.Now().Add(-24 * time.Hour)
	for _, aiTask := range aiTasks {
		if strings.TrimSpace(aiTask.Name) == "" {
			continue
		}
		if aiTask.DueDate != nil && aiTask.DueDate.Before(cutoff) {
			aiTask.DueDate = nil
		}
		validTasks = append(validTasks, aiTask)
	}

	if len(validTasks) == 0 {
		return nil, ErrAINoValidTasks
	}

	return validTasks, nil
}

func (s *WorkspaceService) ensureAssignable(ctx context.Context, recordID, userID string) error {
	companyID, found, err := s.companyRepo.FindCompanyIDByRecord(ctx, recordID)
	if err != nil {
		return err
	}
	if !found {
		return ErrRecordNotFound
	}

	if _, found, err := s.companyRepo.FetchUserRole(ctx, userID, companyID); err != nil {
		return err
	} else if !found {
		return ErrInvalidTaskAssignee
	}
	return nil
}
