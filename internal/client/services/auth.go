package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/mybank/internal/client/client"
	"github.com/dmitrijs2005/mybank/internal/client/models"
	"github.com/dmitrijs2005/mybank/internal/client/session"
	"github.com/dmitrijs2005/mybank/internal/client/views"
	"github.com/dmitrijs2005/mybank/internal/logging"
)

const loginFallback = "Login failed."

// LoginError is a login rejected by the backend or unusable session data.
type LoginError struct {
	Message string
	Err     error
}

func (e *LoginError) Error() string {
	return "Login failed: " + e.Message
}

func (e *LoginError) Unwrap() error { return e.Err }

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: validate credentials locally, post them to /<role>/login and
//     persist the returned session only on success.
//   - Logout: drop the stored session of the role.
//   - Current: the stored session, or session.ErrNoSession.
type AuthService interface {
	Login(ctx context.Context, role models.Role, email, password string) (*models.Session, error)
	Logout(ctx context.Context, role models.Role) error
	Current(ctx context.Context, role models.Role) (*models.Session, error)
}

type authService struct {
	client client.Client
	gate   *session.Gate
	log    logging.Logger
}

func NewAuthService(c client.Client, gate *session.Gate, log logging.Logger) AuthService {
	return &authService{client: c, gate: gate, log: log}
}

func validateCredentials(role models.Role, email, password string) error {
	if role == models.RoleCustomer {
		if !views.ValidEmail(email) {
			return &views.ValidationError{Field: "email", Message: "Enter a valid email."}
		}
		if password == "" {
			return &views.ValidationError{Field: "password", Message: "Password is required."}
		}
		return nil
	}
	if email == "" || strings.TrimSpace(password) == "" {
		return &views.ValidationError{Message: "Please enter both email and password."}
	}
	return nil
}

func (a *authService) Login(ctx context.Context, role models.Role, email, password string) (*models.Session, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("login as %q: unknown role", role)
	}
	email = strings.TrimSpace(email)
	if role != models.RoleCustomer {
		password = strings.TrimSpace(password)
	}
	if err := validateCredentials(role, email, password); err != nil {
		return nil, err
	}

	res := a.client.Post(ctx, "/"+string(role)+"/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if !res.OK() {
		a.log.Warn(ctx, "login rejected", "role", role, "error", res.Err())
		return nil, &LoginError{Message: res.Display(loginFallback), Err: res.Err()}
	}

	s, err := a.gate.Save(ctx, role, res.Data)
	if errors.Is(err, session.ErrInvalidSession) {
		a.log.Warn(ctx, "login returned no usable session", "role", role)
		return nil, &LoginError{Message: loginFallback, Err: err}
	}
	if err != nil {
		return nil, err
	}

	a.log.Info(ctx, "logged in", "role", role, "userId", s.UserID)
	return s, nil
}

func (a *authService) Logout(ctx context.Context, role models.Role) error {
	if err := a.gate.Clear(ctx, role); err != nil {
		return err
	}
	a.log.Info(ctx, "logged out", "role", role)
	return nil
}

func (a *authService) Current(ctx context.Context, role models.Role) (*models.Session, error) {
	return a.gate.Check(ctx, role)
}
