package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aferchichi/stockshop/app/models"
	"github.com/aferchichi/stockshop/app/web"
	"github.com/aferchichi/stockshop/config"
	"github.com/aferchichi/stockshop/pkg/auth"
	"github.com/aferchichi/stockshop/pkg/database"
	"github.com/aferchichi/stockshop/pkg/session"
	"github.com/aferchichi/stockshop/pkg/testkit"
)

func authFixtures(t *testing.T) (*AuthService, *web.State) {
	t.Helper()
	testkit.SetupDB(t, &models.Admin{}, &models.Client{})
	return NewAuthService(), web.Over(session.NewDetached())
}

func seedClient(t *testing.T, email, password string) models.Client {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	client := models.Client{Person: models.Person{
		Name: "Ada", Surname: "Lovelace", Email: email, Password: hash,
	}}
	require.NoError(t, database.DB.Create(&client).Error)
	return client
}

func seedAdmin(t *testing.T, email, password string, super bool) models.Admin {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	admin := models.Admin{
		Person:     models.Person{Name: "Grace", Surname: "Hopper", Email: email, Password: hash},
		Superadmin: super,
	}
	require.NoError(t, database.DB.Create(&admin).Error)
	return admin
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, state := authFixtures(t)

	_, err := svc.Login(state, "nobody@example.com", "whatever")

	assert.ErrorIs(t, err, ErrEmailNotFound)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, state := authFixtures(t)
	seedClient(t, "ada@example.com", "correct-horse")

	_, err := svc.Login(state, "ada@example.com", "wrong")

	assert.ErrorIs(t, err, ErrBadPassword)
}

func TestLoginClientSuccess(t *testing.T) {
	svc, state := authFixtures(t)
	client := seedClient(t, "ada@example.com", "correct-horse")

	identity, err := svc.Login(state, "ada@example.com", "correct-horse")

	require.NoError(t, err)
	assert.Equal(t, models.RoleClient, identity.Role)
	require.NotNil(t, identity.Client)
	assert.Equal(t, client.ID, identity.Client.ID)
}

func TestLoginPrefersAdminOverClient(t *testing.T) {
	svc, state := authFixtures(t)
	seedAdmin(t, "boss@example.com", "admin-pass", false)

	identity, err := svc.Login(state, "boss@example.com", "admin-pass")

	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, identity.Role)
	require.NotNil(t, identity.Admin)
}

func TestLoginLockoutSurvivesCorrectPassword(t *testing.T) {
	svc, state := authFixtures(t)
	seedClient(t, "ada@example.com", "correct-horse")

	attempts := config.MaxLoginAttempts()
	for i := 0; i < attempts; i++ {
		_, err := svc.Login(state, "ada@example.com", "wrong")
		require.Error(t, err)
	}

	// The identifier is now locked; even the right password is refused.
	_, err := svc.Login(state, "ada@example.com", "correct-horse")
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestLoginLockoutIsPerIdentifier(t *testing.T) {
	svc, state := authFixtures(t)
	seedClient(t, "ada@example.com", "correct-horse")
	seedClient(t, "bob@example.com", "hunter2hunter2")

	for i := 0; i < config.MaxLoginAttempts(); i++ {
		_, _ = svc.Login(state, "ada@example.com", "wrong")
	}

	_, err := svc.Login(state, "bob@example.com", "hunter2hunter2")
	assert.NoError(t, err, "another identifier must not be locked")
}

func TestLoginSuccessResetsFailures(t *testing.T) {
	svc, state := authFixtures(t)
	seedClient(t, "ada@example.com", "correct-horse")

	for i := 0; i < config.MaxLoginAttempts()-1; i++ {
		_, _ = svc.Login(state, "ada@example.com", "wrong")
	}
	_, err := svc.Login(state, "ada@example.com", "correct-horse")
	require.NoError(t, err)

	// The counter was reset, so new failures start from zero.
	_, err = svc.Login(state, "ada@example.com", "wrong")
	assert.ErrorIs(t, err, ErrBadPassword)
}

func TestSignUpRejectsTakenEmail(t *testing.T) {
	svc, _ := authFixtures(t)
	seedClient(t, "ada@example.com", "correct-horse")

	_, err := svc.SignUp(SignUpInput{
		Name: "Ada", Surname: "Lovelace",
		Email: "ada@example.com", Password: "password123",
	})

	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignUpHashesPassword(t *testing.T) {
	svc, _ := authFixtures(t)

	client, err := svc.SignUp(SignUpInput{
		Name: "Ada", Surname: "Lovelace",
		Email: "new@example.com", Password: "password123",
	})

	require.NoError(t, err)
	assert.NotEqual(t, "password123", client.Password)
	assert.True(t, auth.CheckPassword(client.Password, "password123"))
}

func TestAdminTokenRoles(t *testing.T) {
	svc, _ := authFixtures(t)
	seedAdmin(t, "boss@example.com", "admin-pass", true)

	access, refresh, err := svc.AdminToken("boss@example.com", "admin-pass")
	require.NoError(t, err)
	require.NotEmpty(t, refresh)

	claims, err := auth.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, "superadmin", claims.Role)
}
