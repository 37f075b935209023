package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yukikurage/acme-dashboard/internal/models"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB, log *zap.SugaredLogger) UserRepository {
	return &GormUserRepository{db: db, log: log}
}

// CreateUser inserts a user and returns the generated ID
func (r *GormUserRepository) CreateUser(ctx context.Context, name, email, passwordHash string) (string, error) {
	id := uuid.NewString()
	err := r.db.WithContext(ctx).Exec(`
		INSERT INTO users (id, name, email, password_hash, created_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)`, id, name, email, passwordHash).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		r.log.Infow("email already registered", "op", "CreateUser")
		return "", ErrDuplicateEmail
	}
	if err != nil {
		return "", failure(r.log, "CreateUser", err, ErrCreateUser)
	}
	return id, nil
}

// FetchUserByID finds a user by ID
func (r *GormUserRepository) FetchUserByID(ctx context.Context, id string) (models.User, bool, error) {
	return r.take(ctx, "FetchUserByID", "id = ?", id)
}

// FetchUserByEmail finds a user by exact email match
func (r *GormUserRepository) FetchUserByEmail(ctx context.Context, email string) (models.User, bool, error) {
	return r.take(ctx, "FetchUserByEmail", "email = ?", email)
}

func (r *GormUserRepository) take(ctx context.Context, op, cond string, arg interface{}) (models.User, bool, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where(cond, arg).Take(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, false, nil
		}
		return models.User{}, false, failure(r.log, op, err, ErrFetchUser)
	}
	return user, true, nil
}
