package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/turrs/bank-skd/internal/domain/users"
	"github.com/turrs/bank-skd/internal/pkg/logger"
)

// authService implements the AuthService interface for self service account operations
type authService struct {
	userRepo   users.UserRepository
	issuer     users.TokenIssuer
	bcryptCost int
	logger     logger.Logger
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(userRepo users.UserRepository, issuer users.TokenIssuer, bcryptCost int, logger logger.Logger) (users.AuthService, error) {
	return &authService{
		userRepo:   userRepo,
		issuer:     issuer,
		bcryptCost: bcryptCost,
		logger:     logger,
	}, nil
}

// Register creates an account with the user role
func (s *authService) Register(ctx context.Context, email, password, fullName, phone string) (*users.User, error) {
	user := users.NewUser(email, fullName, phone)
	if err := user.SetPassword(password, s.bcryptCost); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByEmail(ctx, user.Email); err == nil {
		return nil, users.ErrEmailTaken
	} else if !errors.Is(err, users.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info("Registered user ", user.ID)
	return user, nil
}

// Login verifies credentials, stamps the login time and issues a token
func (s *authService) Login(ctx context.Context, email, password string) (*users.AuthToken, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, users.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !user.CheckPassword(password) {
		return nil, users.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, users.ErrAccountDeactivated
	}

	now := time.Now().UTC()
	user.LastLoginAt = &now
	if err := s.userRepo.UpdateByID(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}

	token, expiresAt, err := s.issuer.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &users.AuthToken{AccessToken: token, ExpiresAt: expiresAt, User: user}, nil
}

// GetProfile returns the caller's account
func (s *authService) GetProfile(ctx context.Context, userID string) (*users.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateProfile changes name and phone
func (s *authService) UpdateProfile(ctx context.Context, userID, fullName, phone string) (*users.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.FullName = strings.TrimSpace(fullName)
	user.Phone = strings.TrimSpace(phone)
	if err := s.userRepo.UpdateByID(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

// ChangePassword replaces the password after checking the current one
func (s *authService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.CheckPassword(oldPassword) {
		return users.ErrWrongPassword
	}
	if err := user.SetPassword(newPassword, s.bcryptCost); err != nil {
		return err
	}
	if err := s.userRepo.UpdateByID(ctx, user); err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}

	s.logger.Info("Changed password of user ", userID)
	return nil
}

// userAdminService implements the UserAdminService interface
type userAdminService struct {
	userRepo   users.UserRepository
	bcryptCost int
	logger     logger.Logger
}

// NewUserAdminService creates a new instance of UserAdminService
func NewUserAdminService(userRepo users.UserRepository, bcryptCost int, logger logger.Logger) (users.UserAdminService, error) {
	return &userAdminService{
		userRepo:   userRepo,
		bcryptCost: bcryptCost,
		logger:     logger,
	}, nil
}

// List returns accounts matching the query
func (s *userAdminService) List(ctx context.Context, query *users.UserQuery) ([]*users.User, error) {
	return s.userRepo.List(ctx, query)
}

// SetRole changes the role of another account
func (s *userAdminService) SetRole(ctx context.Context, actor users.Actor, userID, role string) (*users.User, error) {
	if actor.UserID == userID {
		return nil, users.ErrSelfDemotion
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Role = role
	if err := s.userRepo.UpdateByID(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to set role: %w", err)
	}

	s.logger.Info("User ", userID, " now has role ", role)
	return user, nil
}

// SetActive activates or deactivates another account
func (s *userAdminService) SetActive(ctx context.Context, actor users.Actor, userID string, active bool) (*users.User, error) {
	if actor.UserID == userID {
		return nil, users.ErrSelfDemotion
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.IsActive = active
	if err := s.userRepo.UpdateByID(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to set active flag: %w", err)
	}
	return user, nil
}

// DeleteByID removes another account
func (s *userAdminService) DeleteByID(ctx context.Context, actor users.Actor, userID string) error {
	if actor.UserID == userID {
		return users.ErrSelfDemotion
	}
	return s.userRepo.DeleteByID(ctx, userID)
}

// EnsureAdmin creates an admin account or promotes and re-passwords an existing one
func (s *userAdminService) EnsureAdmin(ctx context.Context, email, password, fullName string) (*users.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, users.ErrNotFound):
		user = users.NewUser(email, fullName, "")
		user.Role = users.RoleAdmin
		if err := user.SetPassword(password, s.bcryptCost); err != nil {
			return nil, err
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to create admin: %w", err)
		}
		s.logger.Info("Created admin ", user.ID)
		return user, nil
	case err != nil:
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	user.Role = users.RoleAdmin
	user.IsActive = true
	if err := user.SetPassword(password, s.bcryptCost); err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdateByID(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to promote admin: %w", err)
	}

	s.logger.Info("Promoted user ", user.ID, " to admin")
	return user, nil
}
