package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/yukikurage/acme-dashboard/internal/auth"
	"github.com/yukikurage/acme-dashboard/internal/models"
	"github.com/yukikurage/acme-dashboard/internal/repository"
)

var (
	ErrCompanyNotFound       = errors.New("company not found")
	ErrNotCompanyMember      = errors.New("user is not a member of the company")
	ErrAlreadyCompanyMember  = errors.New("user is already a member of this company")
	ErrInvalidRole           = errors.New("invalid role")
	ErrResourceNotFound      = errors.New("resource not found")
	ErrInvitationNotFound    = errors.New("invitation not found")
	ErrInvitationNotPending  = errors.New("invitation is no longer pending")
	ErrInvalidInvitation     = errors.New("invalid invitation token")
	ErrInvitationUnavailable = errors.New("invitation tokens are not configured")
)

// CompanyService provides business logic for companies, memberships and invitations.
type CompanyService struct {
	companyRepo    repository.CompanyRepository
	userRepo       repository.UserRepository
	invitationRepo repository.InvitationRepository
	signer         *auth.InvitationSigner
	validate       *validator.Validate
	now            func() time.Time
}

// NewCompanyService creates a new CompanyService. signer may be nil, in
// which case invitations cannot be created but stored ones still verify.
func NewCompanyService(companyRepo repository.CompanyRepository, userRepo repository.UserRepository, invitationRepo repository.InvitationRepository, signer *auth.InvitationSigner) *CompanyService {
	return &CompanyService{
		companyRepo:    companyRepo,
		userRepo:       userRepo,
		invitationRepo: invitationRepo,
		signer:         signer,
		validate:       validator.New(),
		now:            time.Now,
	}
}

// CreateCompany creates a company and makes its creator a Manager.
func (s *CompanyService) CreateCompany(ctx context.Context, name, creatorID string) (*models.Company, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	id, err := s.companyRepo.CreateCompanyWithManager(ctx, name, creatorID)
	if err != nil {
		return nil, err
	}

	company, found, err := s.companyRepo.FetchCompanyByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrCompanyNotFound
	}
	return &company, nil
}

func (s *CompanyService) ListCompanies(ctx context.Context) ([]models.Company, error) {
	return s.companyRepo.FetchCompanies(ctx)
}

func (s *CompanyService) GetCompany(ctx context.Context, id string) (*models.Company, error) {
	company, found, err := s.companyRepo.FetchCompanyByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrCompanyNotFound
	}
	return &company, nil
}

// ListUserRoles returns every company role held by the user.
func (s *CompanyService) ListUserRoles(ctx context.Context, userID string) ([]models.UserRole, error) {
	return s.companyRepo.FetchUserRoles(ctx, userID)
}

// Membership returns the user's role in the company.
func (s *CompanyService) Membership(ctx context.Context, userID, companyID string) (*models.UserRole, error) {
	role, found, err := s.companyRepo.FetchUserRole(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotCompanyMember
	}
	return &role, nil
}

// AddMemberInput adds an existing user to a company with a role.
type AddMemberInput struct {
	CompanyID string
	UserID    string
	Role      models.Role
}

// AddMember validates the role and the user before adding the membership.
func (s *CompanyService) AddMember(ctx context.Context, input AddMemberInput) (string, error) {
	if !input.Role.IsValid() {
		return "", ErrInvalidRole
	}

	if _, found, err := s.userRepo.FetchUserByID(ctx, input.UserID); err != nil {
		return "", err
	} else if !found {
		return "", ErrUserNotFound
	}

	if _, found, err := s.companyRepo.FetchUserRole(ctx, input.UserID, input.CompanyID); err != nil {
		return "", err
	} else if found {
		return "", ErrAlreadyCompanyMember
	}

	return s.companyRepo.AddUserToCompany(ctx, input.UserID, input.CompanyID, input.Role)
}

// CompanyIDForProject, CompanyIDForRecord and CompanyIDForTask resolve the
// owning company of a nested resource.
func (s *CompanyService) CompanyIDForProject(ctx context.Context, projectID string) (string, error) {
	return resolved(s.companyRepo.FindCompanyIDByProject(ctx, projectID))
}

func (s *CompanyService) CompanyIDForRecord(ctx context.Context, recordID string) (string, error) {
	return resolved(s.companyRepo.FindCompanyIDByRecord(ctx, recordID))
}

func (s *CompanyService) CompanyIDForTask(ctx context.Context, taskID string) (string, error) {
	return resolved(s.companyRepo.FindCompanyIDByTask(ctx, taskID))
}

func resolved(id string, found bool, err error) (string, error) {
	if err != nil {
		return "", err
	}
	if !found {
		return "", ErrResourceNotFound
	}
	return id, nil
}

// CreateInvitationInput describes an invitation to a company. An empty Token
// asks the service to mint a signed one.
type CreateInvitationInput struct {
	CompanyID string
	Email     string
	Token     string
}

// CreateInvitation stores a Pending invitation and returns it with its token.
func (s *CompanyService) CreateInvitation(ctx context.Context, input CreateInvitationInput) (*models.Invitation, error) {
	email := strings.TrimSpace(input.Email)
	if s.validate.Var(email, "required,email") != nil {
		return nil, ErrInvalidEmail
	}
	if s.signer == nil {
		return nil, ErrInvitationUnavailable
	}

	expiresAt := s.now().Add(s.signer.TTL()).UTC().Truncate(time.Millisecond)
	token := strings.TrimSpace(input.Token)
	if token == "" {
		signed, err := s.signer.Sign(input.CompanyID, email, expiresAt)
		if err != nil {
			return nil, err
		}
		token = signed
	}

	id, err := s.invitationRepo.CreateInvitation(ctx, input.CompanyID, email, token, expiresAt)
	if err != nil {
		return nil, err
	}

	return &models.Invitation{
		ID:        id,
		CompanyID: input.CompanyID,
		Email:     email,
		Token:     token,
		ExpiresAt: expiresAt,
		Status:    models.InvitationPending,
	}, nil
}

// ListInvitations returns the company's invitations with expiry applied.
func (s *CompanyService) ListInvitations(ctx context.Context, companyID string) ([]models.Invitation, error) {
	invitations, err := s.invitationRepo.FetchInvitations(ctx, companyID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	for i := range invitations {
		invitations[i].Status = invitations[i].EffectiveStatus(now)
	}
	return invitations, nil
}

// VerifyInvitation looks up a token and reports whether it can still be used.
// Signed tokens must also carry a valid signature matching the stored row.
func (s *CompanyService) VerifyInvitation(ctx context.Context, token string) (*models.Invitation, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInvalidInvitation
	}

	invitation, found, err := s.invitationRepo.FetchInvitationByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrInvitationNotFound
	}

	status := invitation.EffectiveStatus(s.now())
	invitation.Status = status
	if status != models.InvitationPending {
		return &invitation, ErrInvitationNotPending
	}

	if s.signer != nil && strings.Count(token, ".") == 2 {
		claims, err := s.signer.Parse(token)
		if err != nil || claims.CompanyID != invitation.CompanyID || claims.Email != invitation.Email {
			return nil, ErrInvalidInvitation
		}
	}

	return &invitation, nil
}
