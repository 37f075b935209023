package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yukikurage/acme-dashboard/internal/models"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB, log *zap.SugaredLogger) ProjectRepository {
	return &GormProjectRepository{db: db, log: log}
}

// CreateProject inserts a project and returns the generated ID
func (r *GormProjectRepository) CreateProject(ctx context.Context, companyID, name, description string) (string, error) {
	id := uuid.NewString()
	err := r.db.WithContext(ctx).Exec(`
		INSERT INTO projects (id, company_id, name, description, created_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)`, id, companyID, name, description).Error
	if err != nil {
		return "", failure(r.log, "CreateProject", err, ErrCreateProject)
	}
	return id, nil
}

// FetchProjects lists a company's projects, newest first
func (r *GormProjectRepository) FetchProjects(ctx context.Context, companyID string) ([]models.Project, error) {
	projects := make([]models.Project, 0)
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&projects).Error
	if err != nil {
		return nil, failure(r.log, "FetchProjects", err, ErrFetchProjects)
	}
	return projects, nil
}

// CreateRecord inserts a record and returns the generated ID
func (r *GormProjectRepository) CreateRecord(ctx context.Context, projectID, name, description string) (string, error) {
	id := uuid.NewString()
	err := r.db.WithContext(ctx).Exec(`
		INSERT INTO records (id, project_id, name, description, created_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)`, id, projectID, name, description).Error
	if err != nil {
		return "", failure(r.log, "CreateRecord", err, ErrCreateRecord)
	}
	return id, nil
}

// FetchRecords lists a project's records, newest first
func (r *GormProjectRepository) FetchRecords(ctx context.Context, projectID string) ([]models.Record, error) {
	records := make([]models.Record, 0)
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, failure(r.log, "FetchRecords", err, ErrFetchRecords)
	}
	return records, nil
}

// FetchRecordByID finds a record by ID
func (r *GormProjectRepository) FetchRecordByID(ctx context.Context, id string) (models.Record, bool, error) {
	var record models.Record
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Record{}, false, nil
		}
		return models.Record{}, false, failure(r.log, "FetchRecordByID", err, ErrFetchRecord)
	}
	return record, true, nil
}
