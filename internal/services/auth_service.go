package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/yukikurage/acme-dashboard/internal/auth"
	"github.com/yukikurage/acme-dashboard/internal/constants"
	"github.com/yukikurage/acme-dashboard/internal/models"
	"github.com/yukikurage/acme-dashboard/internal/repository"
)

var (
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidEmail         = errors.New("invalid email address")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// Credentials is the untrusted login payload.
type Credentials struct {
	Email    string
	Password string
}

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo repository.UserRepository
	validate *validator.Validate
	log      *zap.SugaredLogger
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, log *zap.SugaredLogger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		validate: validator.New(),
		log:      log,
	}
}

func (s *AuthService) validEmail(email string) bool {
	return s.validate.Var(email, "required,email") == nil
}

func (s *AuthService) validPassword(pw string) bool {
	return s.validate.Var(pw, fmt.Sprintf("required,min=%d", constants.MinPasswordLength)) == nil
}

// Authorize checks credentials and returns the reduced identity on success.
//
// A nil identity with a nil error is a rejection: malformed input, unknown
// email, missing hash or wrong password. A non-nil error means the user
// lookup itself failed.
func (s *AuthService) Authorize(ctx context.Context, creds Credentials) (*models.Identity, error) {
	if !s.validEmail(creds.Email) || !s.validPassword(creds.Password) {
		s.log.Debugw("rejected malformed credentials")
		return nil, nil
	}

	user, found, err := s.userRepo.FetchUserByEmail(ctx, creds.Email)
	if err != nil {
		return nil, err
	}
	if !found || user.PasswordHash == "" {
		auth.BurnComparison(creds.Password)
		s.log.Infow("login rejected", "reason", "unknown user")
		return nil, nil
	}

	if err := auth.CheckPassword(user.PasswordHash, creds.Password); err != nil {
		s.log.Infow("login rejected", "reason", "password mismatch", "user_id", user.ID)
		return nil, nil
	}

	identity := user.Identity()
	return &identity, nil
}

// SignupInput represents the required information to create a new user.
type SignupInput struct {
	Name     string
	Email    string
	Password string
}

// Signup creates a new user and returns its identity.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*models.Identity, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if !s.validEmail(input.Email) {
		return nil, ErrInvalidEmail
	}
	if !s.validPassword(input.Password) {
		return nil, ErrPasswordTooShort
	}

	if _, found, err := s.userRepo.FetchUserByEmail(ctx, input.Email); err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	} else if found {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	// The lookup above can race with a concurrent signup; the unique index
	// on email decides.
	id, err := s.userRepo.CreateUser(ctx, name, input.Email, hash)
	if errors.Is(err, repository.ErrDuplicateEmail) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, err
	}

	return &models.Identity{ID: id, Name: name, Email: input.Email}, nil
}

// GetIdentity retrieves a user's identity by ID.
func (s *AuthService) GetIdentity(ctx context.Context, id string) (*models.Identity, error) {
	user, found, err := s.userRepo.FetchUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrUserNotFound
	}
	identity := user.Identity()
	return &identity, nil
}
