// File: internal/services/user_services/auth_service_test.go
package user_services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dresai/dresai/internal/domain"
	"github.com/dresai/dresai/internal/repository/user"
	"github.com/dresai/dresai/internal/services"
)

type memUserRepo struct {
	byEmail map[string]*domain.User
	nextID  uint
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byEmail: make(map[string]*domain.User)}
}

func (m *memUserRepo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	m.nextID++
	u.ID = m.nextID
	m.byEmail[u.Email] = u
	return u, nil
}

func (m *memUserRepo) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (m *memUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, user.ErrUserNotFound
}

func (m *memUserRepo) Update(ctx context.Context, u *domain.User) error { return nil }

func (m *memUserRepo) FindAll(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	for _, u := range m.byEmail {
		out = append(out, *u)
	}
	return out, nil
}

func newAuthService(repo *memUserRepo) *AuthService {
	return NewAuthService(repo, "test-secret", "admin@dresai.app", services.NopLogger{})
}

func TestRegister_CreatesUserWithHashedPassword(t *testing.T) {
	repo := newMemUserRepo()
	svc := newAuthService(repo)

	created, err := svc.Register(context.Background(), "Style@Example.com", "correct-horse")

	require.NoError(t, err)
	assert.Equal(t, "style@example.com", created.Email)
	assert.NotEqual(t, "correct-horse", created.Password)
	assert.False(t, created.IsAdmin)
	assert.NoError(t, created.ValidatePassword("correct-horse"))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newMemUserRepo()
	svc := newAuthService(repo)

	_, err := svc.Register(context.Background(), "a@b.com", "password-one")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "a@b.com", "password-two")
	assert.Error(t, err)
}

func TestRegister_AdminEmailGetsAdminFlag(t *testing.T) {
	svc := newAuthService(newMemUserRepo())

	created, err := svc.Register(context.Background(), "Admin@DresAI.app", "super-secret")

	require.NoError(t, err)
	assert.True(t, created.IsAdmin)
}

func TestLogin_RoundTripThroughToken(t *testing.T) {
	svc := newAuthService(newMemUserRepo())
	created, err := svc.Register(context.Background(), "a@b.com", "correct-horse")
	require.NoError(t, err)

	loggedIn, token, err := svc.Login(context.Background(), "a@b.com", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, created.ID, loggedIn.ID)

	userID, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, userID)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newAuthService(newMemUserRepo())
	_, err := svc.Register(context.Background(), "a@b.com", "correct-horse")
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "a@b.com", "wrong-horse")
	assert.Error(t, err)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc := newAuthService(newMemUserRepo())

	_, _, err := svc.Login(context.Background(), "ghost@b.com", "whatever")
	assert.Error(t, err)
}

func TestValidateToken_RejectsGarbage(t *testing.T) {
	svc := newAuthService(newMemUserRepo())

	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}
