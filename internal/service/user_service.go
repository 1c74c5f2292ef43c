package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"placehub/internal/domain/user"
	interfaces "placehub/internal/interfaces/infrastructure"
	serviceInterfaces "placehub/internal/interfaces/service"
	"placehub/pkg/logger"
	"placehub/pkg/validator"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrRegisterNumberUsed = errors.New("register number already registered")
)

var _ serviceInterfaces.UserService = (*UserService)(nil)

// UserService handles self-registration and login. Students register
// themselves; the admin account is provisioned by seeding.
type UserService struct {
	userRepo interfaces.UserRepository
}

func NewUserService(userRepo interfaces.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

func (s *UserService) Register(ctx context.Context, req *user.RegisterRequest) (*user.User, error) {
	if err := validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	existing, err = s.userRepo.GetByRegisterNumber(ctx, req.RegisterNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrRegisterNumberUsed
	}

	u, err := user.NewUser(req.Username, req.Email, req.RegisterNumber, req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	logger.Info("Registered student account %s (register number %s)", u.Username, u.RegisterNumber)
	return u, nil
}

// Authenticate checks credentials against the stored digest. The requested
// role must match the account's role, so a student cannot log in on the
// admin form and vice versa.
func (s *UserService) Authenticate(ctx context.Context, req *user.LoginRequest) (*user.AuthData, error) {
	if err := validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	u, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.CheckPassword(req.Password) || u.Role != req.Role {
		return nil, ErrInvalidCredentials
	}

	return &user.AuthData{
		IsAuthenticated: true,
		Role:            u.Role,
		Username:        u.Username,
		UserID:          u.ID,
		LoginTime:       time.Now(),
	}, nil
}

func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, errors.New("user not found")
	}
	return u, nil
}
