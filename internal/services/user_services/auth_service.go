// File: internal/services/user_services/auth_service.go
package user_services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dresai/dresai/internal/auth"
	"github.com/dresai/dresai/internal/domain"
	"github.com/dresai/dresai/internal/repository/user"
	"github.com/dresai/dresai/internal/services"
)

type AuthService struct {
	userRepo     user.UserRepository
	jwtSecretKey string
	adminEmail   string
	logger       services.Logger
}

func NewAuthService(userRepo user.UserRepository, jwtSecretKey, adminEmail string, logger services.Logger) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		jwtSecretKey: jwtSecretKey,
		adminEmail:   adminEmail,
		logger:       logger,
	}
}

// Register creates a new account. The configured admin email gets the admin
// flag at creation time.
func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	newUser := &domain.User{Email: email}
	if err := newUser.IsValid(); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, errors.New("an account with this email already exists")
	} else if !errors.Is(err, user.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}

	if err := newUser.HashPassword(password); err != nil {
		return nil, err
	}
	if s.adminEmail != "" && email == strings.ToLower(s.adminEmail) {
		newUser.IsAdmin = true
	}

	created, err := s.userRepo.Create(ctx, newUser)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered", "user_id", created.ID)
	return created, nil
}

// Login authenticates a user and returns a signed session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if email == "" || password == "" {
		return nil, "", errors.New("email and password are required")
	}

	found, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Warn("login failed - user not found", "error", "user_not_found")
		return nil, "", errors.New("invalid credentials")
	}
	if err := found.ValidatePassword(password); err != nil {
		s.logger.Warn("login failed - invalid password", "user_id", found.ID)
		return nil, "", errors.New("invalid credentials")
	}

	token, err := auth.GenerateJWT(found.ID, []byte(s.jwtSecretKey))
	if err != nil {
		s.logger.Error("JWT token generation failed", "user_id", found.ID, "error", err.Error())
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return found, token, nil
}

// ValidateToken checks a session token and returns the user ID it carries.
func (s *AuthService) ValidateToken(token string) (uint, error) {
	return auth.ValidateToken(token, []byte(s.jwtSecretKey))
}

// FindByID loads a user by id.
func (s *AuthService) FindByID(ctx context.Context, userID uint) (*domain.User, error) {
	found, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return found, nil
}
