// File: internal/services/admin_services/admin_service.go
package admin_services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dresai/dresai/internal/domain"
	"github.com/dresai/dresai/internal/repository/user"
	"github.com/dresai/dresai/internal/services/plan"
)

// AdminService provides functionalities for administrative tasks.
type AdminService struct {
	userRepo user.UserRepository
	plans    *plan.Service
}

func NewAdminService(userRepo user.UserRepository, plans *plan.Service) *AdminService {
	return &AdminService{userRepo: userRepo, plans: plans}
}

// GetAllUsers retrieves a list of all users in the system.
func (s *AdminService) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all users: %w", err)
	}
	return users, nil
}

// GrantCredits adds analysis credits to a user's balance, the manual
// counterpart of a webhook top-up.
func (s *AdminService) GrantCredits(ctx context.Context, userID uint, amount int) error {
	if amount <= 0 {
		return errors.New("amount to add must be a positive number")
	}
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return fmt.Errorf("failed to find user with ID %d: %w", userID, err)
	}
	if err := s.plans.AddCredits(ctx, userID, amount); err != nil {
		return fmt.Errorf("failed to grant credits: %w", err)
	}
	return nil
}
