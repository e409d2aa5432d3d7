package credit

import (
	"context"
	"errors"

	"github.com/dresai/dresai/internal/domain"
)

var ErrBalanceNotFound = errors.New("credit balance not found")

// CreditRepository handles per-user analysis credit balances. Consume is the
// only way a balance decreases; it must be atomic at the database so two
// concurrent attempts cannot both succeed on the last credit.
type CreditRepository interface {
	FindByUser(ctx context.Context, userID uint) (*domain.CreditBalance, error)
	// Consume lazily creates the balance with domain.TrialCredits when absent,
	// then decrements by one iff credits > 0. Returns false when no credit was
	// available; the balance is never over-drawn.
	Consume(ctx context.Context, userID uint) (bool, error)
	// Add credits the user, creating the balance row when absent.
	Add(ctx context.Context, userID uint, amount int) error
}
