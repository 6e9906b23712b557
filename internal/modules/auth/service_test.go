package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoshop/internal/database"
	"autoshop/internal/domain"
	jwtsvc "autoshop/internal/pkg/jwt"
	"autoshop/internal/repository"
)

func setupTest(t *testing.T) *Service {
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	j := jwtsvc.New("test_secret_key_32_characters_min", time.Hour)
	return NewService(repository.NewUserRepository(db), j)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := setupTest(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, RegisterRequest{
		Name:     "Sara Frontdesk",
		Email:    "sara@autoshop.local",
		Password: "password123",
		Role:     domain.RoleReceptionist,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, domain.RoleReceptionist, res.User.Role)
	assert.True(t, res.User.Active)
	assert.NotEqual(t, "password123", res.User.PasswordHash, "password must be hashed")

	login, err := svc.Login(ctx, LoginRequest{Email: "sara@autoshop.local", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, res.User.ID, login.User.ID)
}

func TestRegister_EmailTaken(t *testing.T) {
	svc := setupTest(t)
	ctx := context.Background()

	req := RegisterRequest{Name: "A", Email: "dup@autoshop.local", Password: "password123", Role: domain.RoleManager}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_InvalidRole(t *testing.T) {
	svc := setupTest(t)
	_, err := svc.Register(context.Background(), RegisterRequest{
		Name: "A", Email: "a@autoshop.local", Password: "password123", Role: domain.Role("OWNER"),
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := setupTest(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Name: "A", Email: "a@autoshop.local", Password: "password123", Role: domain.RoleAdmin})
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginRequest{Email: "a@autoshop.local", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, LoginRequest{Email: "nobody@autoshop.local", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_DeactivatedUser(t *testing.T) {
	svc := setupTest(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, RegisterRequest{Name: "A", Email: "a@autoshop.local", Password: "password123", Role: domain.RoleTechnician})
	require.NoError(t, err)

	require.NoError(t, svc.SetUserActive(ctx, res.User.ID, false))

	_, err = svc.Login(ctx, LoginRequest{Email: "a@autoshop.local", Password: "password123"})
	assert.ErrorIs(t, err, ErrUserInactive)

	require.NoError(t, svc.SetUserActive(ctx, res.User.ID, true))
	_, err = svc.Login(ctx, LoginRequest{Email: "a@autoshop.local", Password: "password123"})
	assert.NoError(t, err)
}

func TestSetUserActive_Unknown(t *testing.T) {
	svc := setupTest(t)
	assert.ErrorIs(t, svc.SetUserActive(context.Background(), 999, false), ErrUserNotFound)
}
