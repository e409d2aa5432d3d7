package user

import (
	"context"
	"errors"

	"github.com/dresai/dresai/internal/domain"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository handles user data operations.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	FindAll(ctx context.Context) ([]domain.User, error)
}
