package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/academy-api/internal/models"
	"github.com/noah-isme/academy-api/internal/repository"
	appErrors "github.com/noah-isme/academy-api/pkg/errors"
)

type userRepository interface {
	FindAll(ctx context.Context, filter models.UserFilter) ([]models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, id int64, update models.UserUpdate) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// CreateUserRequest represents payload for creating users.
type CreateUserRequest struct {
	Name     string          `json:"name" validate:"required"`
	Email    string          `json:"email" validate:"required,email"`
	Login    string          `json:"login" validate:"required"`
	Password string          `json:"password" validate:"required,min=6"`
	Type     models.UserType `json:"type" validate:"required,oneof=aluno professor admin"`
}

// UpdateUserRequest payload for updating users. Absent fields are kept.
type UpdateUserRequest struct {
	Name     *string          `json:"name" validate:"omitempty,min=1"`
	Email    *string          `json:"email" validate:"omitempty,email"`
	Login    *string          `json:"login" validate:"omitempty,min=1"`
	Password *string          `json:"password" validate:"omitempty,min=6"`
	Type     *models.UserType `json:"type" validate:"omitempty,oneof=aluno professor admin"`
}

// UserService handles user management workflows.
type UserService struct {
	repo       userRepository
	cache      *CacheService
	profileTTL time.Duration
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewUserService creates an instance of UserService.
func NewUserService(repo userRepository, cache *CacheService, profileTTL time.Duration, validate *validator.Validate, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &UserService{repo: repo, cache: cache, profileTTL: profileTTL, validator: validate, logger: logger}
}

// List returns users, optionally filtered by type.
func (s *UserService) List(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	if filter.Type != nil && !filter.Type.Valid() {
		return nil, appErrors.Validation("invalid user type")
	}
	users, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, appErrors.Dependency(err, "failed to list users")
	}
	return users, nil
}

// Get returns a user by ID.
func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, appErrors.Dependency(err, fmt.Sprintf("failed to load user %d", id))
	}
	return user, nil
}

// ResolveProfile returns the user's profile, reading through the cache.
func (s *UserService) ResolveProfile(ctx context.Context, id int64) (*models.UserProfile, error) {
	key := UserProfileKey(id)
	var cached models.UserProfile
	if res := s.cache.Get(ctx, key, &cached); res.Found {
		return &cached, nil
	}

	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	profile := user.Profile()
	s.cache.Set(ctx, key, profile, s.profileTTL)
	return &profile, nil
}

// Create adds a new user of any type.
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid create user payload")
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Login:        strings.TrimSpace(req.Login),
		PasswordHash: hash,
		Type:         req.Type,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, userWriteError(err, "failed to create user")
	}
	s.logger.Info("user created", zap.Int64("user_id", user.ID), zap.String("type", string(user.Type)))
	return user, nil
}

// Update modifies the supplied attributes and drops the cached profile.
func (s *UserService) Update(ctx context.Context, id int64, req UpdateUserRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid update payload")
	}

	update := models.UserUpdate{Name: req.Name, Login: req.Login, Type: req.Type}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		update.Email = &email
	}
	if req.Password != nil {
		hash, err := hashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		update.PasswordHash = &hash
	}
	if update.Empty() {
		return nil, appErrors.Validation("at least one field must be provided")
	}

	affected, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return nil, userWriteError(err, fmt.Sprintf("failed to update user %d", id))
	}
	if affected == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}
	s.cache.Delete(ctx, UserProfileKey(id))
	return s.Get(ctx, id)
}

// Delete removes a user, their enrollments and the cached profile.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return appErrors.Dependency(err, fmt.Sprintf("failed to delete user %d", id))
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}
	s.cache.Delete(ctx, UserProfileKey(id))
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}
	return string(hash), nil
}

func userWriteError(err error, message string) error {
	if errors.Is(err, repository.ErrUniqueViolation) {
		return appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "login or email already in use")
	}
	return appErrors.Dependency(err, message)
}
