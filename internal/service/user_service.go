package service

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"taskhub/internal/auth"
	"taskhub/internal/errors"
	"taskhub/internal/model"
	"taskhub/internal/pagination"
	"taskhub/internal/repository"
)

// UserService exposes user domain operations.
type UserService interface {
	Create(ctx context.Context, input model.UserCreate) (*model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context, params pagination.Params) (pagination.Page[model.User], error)
	Update(ctx context.Context, id uuid.UUID, input model.UserUpdate) (*model.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	repo   repository.UserRepository
	logger zerolog.Logger
}

// NewUserService builds a UserService.
func NewUserService(repo repository.UserRepository, logger zerolog.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

// Create validates input, hashes the password, and persists a new user.
// Uniqueness violations surface as Validation errors, never raw storage
// errors.
func (s *userService) Create(ctx context.Context, input model.UserCreate) (*model.User, error) {
	if strings.TrimSpace(input.Username) == "" {
		return nil, errors.NewValidation("username must not be empty", "username")
	}
	if strings.TrimSpace(input.Email) == "" {
		return nil, errors.NewValidation("email must not be empty", "email")
	}
	role := input.Role
	if role == "" {
		role = model.RoleUser
	}
	if !role.Valid() {
		return nil, errors.NewValidation("role must be admin or user", "role")
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.NewValidation("username or email already taken", "")
		}
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID.String()).Str("username", user.Username).Msg("created user")
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFound("User", id.String())
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFound("User", username)
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) List(ctx context.Context, params pagination.Params) (pagination.Page[model.User], error) {
	users, total, err := s.repo.List(ctx, params)
	if err != nil {
		return pagination.Page[model.User]{}, err
	}
	return pagination.NewPage(users, total, params), nil
}

// Update applies a partial merge: nil input fields are left untouched.
func (s *userService) Update(ctx context.Context, id uuid.UUID, input model.UserUpdate) (*model.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Username != nil {
		if strings.TrimSpace(*input.Username) == "" {
			return nil, errors.NewValidation("username must not be empty", "username")
		}
		user.Username = *input.Username
	}
	if input.Email != nil {
		if strings.TrimSpace(*input.Email) == "" {
			return nil, errors.NewValidation("email must not be empty", "email")
		}
		user.Email = *input.Email
	}
	if input.Password != nil {
		hash, err := auth.HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if input.Role != nil {
		if !input.Role.Valid() {
			return nil, errors.NewValidation("role must be admin or user", "role")
		}
		user.Role = *input.Role
	}

	if err := s.repo.Update(ctx, user); err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.NewValidation("username or email already taken", "")
		}
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID.String()).Msg("updated user")
	return user, nil
}

// Delete removes a user permanently. The existence check precedes removal so
// a second delete of the same id fails NotFound.
func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	existed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !existed {
		return errors.NewNotFound("User", id.String())
	}

	s.logger.Info().Str("user_id", id.String()).Msg("deleted user")
	return nil
}
