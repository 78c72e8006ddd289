package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/aferchichi/stockshop/app/models"
	"github.com/aferchichi/stockshop/app/repositories"
	"github.com/aferchichi/stockshop/app/web"
	"github.com/aferchichi/stockshop/pkg/auth"
	"github.com/aferchichi/stockshop/pkg/logger"
	"github.com/aferchichi/stockshop/pkg/metrics"
)

// Identity is a successful login result: an admin xor a client.
type Identity struct {
	Role   string
	Admin  *models.Admin
	Client *models.Client
}

// AuthService signs users in and up. Failure counters live in the session,
// keyed per identifier, so lockout follows the browser that is hammering
// the form.
type AuthService struct {
	admins  *repositories.AdminRepository
	clients *repositories.ClientRepository
}

func NewAuthService() *AuthService {
	return &AuthService{
		admins:  repositories.NewAdminRepository(),
		clients: repositories.NewClientRepository(),
	}
}

// signinScope is the counter namespace for the storefront sign-in form.
const signinScope = "signin"

// Login authenticates email+password against admins first, then clients.
// Errors are the sentinel values ErrRateLimited, ErrEmailNotFound, and
// ErrBadPassword; anything else is a store failure.
//
// The lockout check runs before any lookup, so a locked identifier stays
// rejected for the full window even when the password is correct.
func (s *AuthService) Login(state *web.State, email, password string) (Identity, error) {
	if locked, remaining := state.IsLockedOut(signinScope, email); locked {
		logger.SecurityLog().Warn("login rate-limited",
			"email", email, "remaining_seconds", remaining)
		return Identity{}, fmt.Errorf("%w: retry in %ds", ErrRateLimited, remaining)
	}

	admin, err := s.admins.FindByEmail(email)
	switch {
	case err == nil:
		if !auth.CheckPassword(admin.Password, password) {
			return Identity{}, s.fail(state, email, models.RoleAdmin)
		}
		state.ResetLoginFailures(signinScope, email)
		return Identity{Role: models.RoleAdmin, Admin: &admin}, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return Identity{}, fmt.Errorf("services: admin lookup: %w", err)
	}

	client, err := s.clients.FindByEmail(email)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		logger.SecurityLog().Info("login unknown email", "email", email)
		return Identity{}, ErrEmailNotFound
	case err != nil:
		return Identity{}, fmt.Errorf("services: client lookup: %w", err)
	}

	if !auth.CheckPassword(client.Password, password) {
		return Identity{}, s.fail(state, email, models.RoleClient)
	}
	state.ResetLoginFailures(signinScope, email)
	return Identity{Role: models.RoleClient, Client: &client}, nil
}

// fail records a wrong-password attempt and reports whether the identifier
// just crossed into lockout.
func (s *AuthService) fail(state *web.State, email, role string) error {
	count := state.RegisterLoginFailure(signinScope, email)
	logger.SecurityLog().Warn("login bad password",
		"email", email, "role", role, "failures", count)

	if locked, remaining := state.IsLockedOut(signinScope, email); locked {
		metrics.LoginLockouts.WithLabelValues(role).Inc()
		logger.SecurityLog().Warn("login lockout started",
			"email", email, "role", role)
		return fmt.Errorf("%w: retry in %ds", ErrRateLimited, remaining)
	}
	return ErrBadPassword
}

// SignUpInput is the registration form payload.
type SignUpInput struct {
	Name                 string `form:"name"                  validate:"required,max=100"`
	Surname              string `form:"surname"               validate:"required,max=100"`
	Email                string `form:"email"                 validate:"required,email"`
	Password             string `form:"password"              validate:"required,min=8,confirmed"`
	PasswordConfirmation string `form:"password_confirmation" json:"password_confirmation"`
	Phone                string `form:"phone"                 validate:"nullable,digits=10"`
}

// SignUp registers a new client. Field-level validation has already run;
// this enforces email uniqueness and hashes the password.
func (s *AuthService) SignUp(input SignUpInput) (models.Client, error) {
	taken, err := s.clients.EmailTaken(input.Email)
	if err != nil {
		return models.Client{}, fmt.Errorf("services: email check: %w", err)
	}
	if taken {
		return models.Client{}, ErrEmailTaken
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return models.Client{}, fmt.Errorf("services: hash password: %w", err)
	}

	client := models.Client{Person: models.Person{
		Name:     input.Name,
		Surname:  input.Surname,
		Email:    input.Email,
		Password: hash,
		Phone:    input.Phone,
	}}
	if err := s.clients.Create(&client); err != nil {
		return models.Client{}, fmt.Errorf("services: create client: %w", err)
	}

	logger.SecurityLog().Info("client registered", "client_id", client.ID, "email", client.Email)
	return client, nil
}

// AdminToken validates admin credentials for the API and issues a JWT pair.
// The role claim is "admin", or "superadmin" for admins who may manage
// other admins.
func (s *AuthService) AdminToken(email, password string) (access, refresh string, err error) {
	admin, err := s.admins.FindByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", "", ErrEmailNotFound
	}
	if err != nil {
		return "", "", fmt.Errorf("services: admin lookup: %w", err)
	}

	if !auth.CheckPassword(admin.Password, password) {
		logger.SecurityLog().Warn("admin api bad password", "email", email)
		return "", "", ErrBadPassword
	}

	role := models.RoleAdmin
	if admin.Superadmin {
		role = "superadmin"
	}

	access, err = auth.GenerateToken(admin.ID, role)
	if err != nil {
		return "", "", fmt.Errorf("services: sign token: %w", err)
	}
	refresh, err = auth.GenerateRefreshToken(admin.ID, role)
	if err != nil {
		return "", "", fmt.Errorf("services: sign refresh token: %w", err)
	}
	return access, refresh, nil
}
