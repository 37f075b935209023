package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yukikurage/acme-dashboard/internal/models"
	"github.com/yukikurage/acme-dashboard/internal/utils"
)

// GormInvitationRepository is a GORM implementation of InvitationRepository
type GormInvitationRepository struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

// NewInvitationRepository creates a new InvitationRepository
func NewInvitationRepository(db *gorm.DB, log *zap.SugaredLogger) InvitationRepository {
	return &GormInvitationRepository{db: db, log: log}
}

// CreateInvitation inserts a Pending invitation and returns the generated ID
func (r *GormInvitationRepository) CreateInvitation(ctx context.Context, companyID, email, token string, expiresAt time.Time) (string, error) {
	id := uuid.NewString()
	err := r.db.WithContext(ctx).Exec(`
		INSERT INTO invitations (id, company_id, email, token, expires_at, status)
		VALUES (?, ?, ?, ?, ?, ?)`,
		id, companyID, email, token, utils.FormatTimestamp(expiresAt), string(models.InvitationPending)).Error
	if err != nil {
		return "", failure(r.log, "CreateInvitation", err, ErrCreateInvitation)
	}
	return id, nil
}

// FetchInvitations lists a company's invitations, latest expiry first
func (r *GormInvitationRepository) FetchInvitations(ctx context.Context, companyID string) ([]models.Invitation, error) {
	invitations := make([]models.Invitation, 0)
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("expires_at DESC").
		Find(&invitations).Error
	if err != nil {
		return nil, failure(r.log, "FetchInvitations", err, ErrFetchInvitations)
	}
	return invitations, nil
}

// FetchInvitationByToken finds an invitation by its token
func (r *GormInvitationRepository) FetchInvitationByToken(ctx context.Context, token string) (models.Invitation, bool, error) {
	var invitation models.Invitation
	if err := r.db.WithContext(ctx).Where("token = ?", token).Take(&invitation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Invitation{}, false, nil
		}
		return models.Invitation{}, false, failure(r.log, "FetchInvitationByToken", err, ErrFetchInvitation)
	}
	return invitation, true, nil
}
