package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yukikurage/acme-dashboard/internal/models"
)

const (
	insertCompanySQL = `
		INSERT INTO companies (id, name, created_by, created_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)`

	insertUserRoleSQL = `
		INSERT INTO user_roles (id, user_id, company_id, role, joined_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)`
)

// GormCompanyRepository is a GORM implementation of CompanyRepository
type GormCompanyRepository struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

// NewCompanyRepository creates a new CompanyRepository
func NewCompanyRepository(db *gorm.DB, log *zap.SugaredLogger) CompanyRepository {
	return &GormCompanyRepository{db: db, log: log}
}

// CreateCompany inserts a company and returns the generated ID
func (r *GormCompanyRepository) CreateCompany(ctx context.Context, name, createdBy string) (string, error) {
	id := uuid.NewString()
	if err := r.db.WithContext(ctx).Exec(insertCompanySQL, id, name, createdBy).Error; err != nil {
		return "", failure(r.log, "CreateCompany", err, ErrCreateCompany)
	}
	return id, nil
}

// CreateCompanyWithManager creates the company and the creator's Manager role atomically
func (r *GormCompanyRepository) CreateCompanyWithManager(ctx context.Context, name, createdBy string) (string, error) {
	companyID := uuid.NewString()
	roleID := uuid.NewString()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(insertCompanySQL, companyID, name, createdBy).Error; err != nil {
			return err
		}
		return tx.Exec(insertUserRoleSQL, roleID, createdBy, companyID, string(models.RoleManager)).Error
	})
	if err != nil {
		return "", failure(r.log, "CreateCompanyWithManager", err, ErrCreateCompany)
	}
	return companyID, nil
}

// FetchCompanies lists all companies by name
func (r *GormCompanyRepository) FetchCompanies(ctx context.Context) ([]models.Company, error) {
	companies := make([]models.Company, 0)
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&companies).Error; err != nil {
		return nil, failure(r.log, "FetchCompanies", err, ErrFetchCompanies)
	}
	return companies, nil
}

// FetchCompanyByID finds a company by ID
func (r *GormCompanyRepository) FetchCompanyByID(ctx context.Context, id string) (models.Company, bool, error) {
	var company models.Company
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Company{}, false, nil
		}
		return models.Company{}, false, failure(r.log, "FetchCompanyByID", err, ErrFetchCompany)
	}
	return company, true, nil
}

// AddUserToCompany grants a role in a company and returns the membership ID
func (r *GormCompanyRepository) AddUserToCompany(ctx context.Context, userID, companyID string, role models.Role) (string, error) {
	id := uuid.NewString()
	if err := r.db.WithContext(ctx).Exec(insertUserRoleSQL, id, userID, companyID, string(role)).Error; err != nil {
		return "", failure(r.log, "AddUserToCompany", err, ErrAddUserToCompany)
	}
	return id, nil
}

// FetchUserRoles lists the user's memberships
func (r *GormCompanyRepository) FetchUserRoles(ctx context.Context, userID string) ([]models.UserRole, error) {
	roles := make([]models.UserRole, 0)
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&roles).Error; err != nil {
		return nil, failure(r.log, "FetchUserRoles", err, ErrFetchUserRoles)
	}
	return roles, nil
}

// FetchUserRole finds the user's membership in one company
func (r *GormCompanyRepository) FetchUserRole(ctx context.Context, userID, companyID string) (models.UserRole, bool, error) {
	var roles []models.UserRole
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND company_id = ?", userID, companyID).
		Order("joined_at ASC").
		Limit(1).
		Find(&roles).Error
	if err != nil {
		return models.UserRole{}, false, failure(r.log, "FetchUserRole", err, ErrFetchUserRoles)
	}
	if len(roles) == 0 {
		return models.UserRole{}, false, nil
	}
	return roles[0], true, nil
}

// FindCompanyIDByProject returns the company owning a project
func (r *GormCompanyRepository) FindCompanyIDByProject(ctx context.Context, projectID string) (string, bool, error) {
	return r.findCompanyID(ctx, "FindCompanyIDByProject", `
		SELECT projects.company_id
		FROM projects
		WHERE projects.id = ?`, projectID)
}

// FindCompanyIDByRecord returns the company owning a record
func (r *GormCompanyRepository) FindCompanyIDByRecord(ctx context.Context, recordID string) (string, bool, error) {
	return r.findCompanyID(ctx, "FindCompanyIDByRecord", `
		SELECT projects.company_id
		FROM records
		JOIN projects ON records.project_id = projects.id
		WHERE records.id = ?`, recordID)
}

// FindCompanyIDByTask returns the company owning a task
func (r *GormCompanyRepository) FindCompanyIDByTask(ctx context.Context, taskID string) (string, bool, error) {
	return r.findCompanyID(ctx, "FindCompanyIDByTask", `
		SELECT projects.company_id
		FROM tasks
		JOIN records ON tasks.record_id = records.id
		JOIN projects ON records.project_id = projects.id
		WHERE tasks.id = ?`, taskID)
}

func (r *GormCompanyRepository) findCompanyID(ctx context.Context, op, query string, id string) (string, bool, error) {
	var ids []string
	if err := r.db.WithContext(ctx).Raw(query, id).Scan(&ids).Error; err != nil {
		return "", false, failure(r.log, op, err, ErrFetchCompany)
	}
	if len(ids) == 0 {
		return "", false, nil
	}
	return ids[0], true, nil
}
