package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/mybank/internal/client/client"
	"github.com/dmitrijs2005/mybank/internal/client/models"
	"github.com/dmitrijs2005/mybank/internal/client/session"
	"github.com/dmitrijs2005/mybank/internal/client/views"
	"github.com/dmitrijs2005/mybank/internal/client/views/viewstest"
	"github.com/dmitrijs2005/mybank/internal/logging"
)

func newAuth(t *testing.T) (AuthService, *viewstest.Client) {
	t.Helper()
	c := viewstest.NewClient()
	gate := session.NewGate(newStore(t), logging.Discard())
	return NewAuthService(c, gate, logging.Discard()), c
}

func TestLogin_ValidationSendsNothing(t *testing.T) {
	tests := []struct {
		name     string
		role     models.Role
		email    string
		password string
		message  string
	}{
		{"customer bad email", models.RoleCustomer, "ann", "pw", "Enter a valid email."},
		{"customer no password", models.RoleCustomer, "ann@bank.test", "", "Password is required."},
		{"admin empty", models.RoleAdmin, "", "pw", "Please enter both email and password."},
		{"teller blank password", models.RoleTeller, "t@bank.test", "   ", "Please enter both email and password."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth, c := newAuth(t)

			_, err := auth.Login(context.Background(), tt.role, tt.email, tt.password)

			var ve *views.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.message, ve.Message)
			assert.Empty(t, c.Calls())
		})
	}
}

func TestLogin_SuccessStoresSession(t *testing.T) {
	auth, c := newAuth(t)
	c.Reply("POST", "/teller/login", client.Ok([]byte(`{"userId":9,"firstName":"Dana","branchName":"Downtown"}`)))

	s, err := auth.Login(context.Background(), models.RoleTeller, " dana@bank.test ", " secret ")
	require.NoError(t, err)
	assert.Equal(t, int64(9), s.UserID)

	calls := c.CallsTo("/teller/login")
	require.Len(t, calls, 1)
	assert.JSONEq(t, `{"email":"dana@bank.test","password":"secret"}`, calls[0].JSON())

	current, err := auth.Current(context.Background(), models.RoleTeller)
	require.NoError(t, err)
	assert.Equal(t, "Downtown", current.BranchName)

	require.NoError(t, auth.Logout(context.Background(), models.RoleTeller))
	_, err = auth.Current(context.Background(), models.RoleTeller)
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestLogin_CustomerPasswordNotTrimmed(t *testing.T) {
	auth, c := newAuth(t)
	c.Reply("POST", "/customer/login", client.Ok([]byte(`{"userId":1}`)))

	_, err := auth.Login(context.Background(), models.RoleCustomer, "ann@bank.test", " pw ")
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"ann@bank.test","password":" pw "}`, c.Calls()[0].JSON())
}

func TestLogin_FailuresStoreNothing(t *testing.T) {
	tests := []struct {
		name    string
		result  client.Result
		message string
		target  error
	}{
		{"rejected", client.Rejected("Invalid credentials"), "Login failed: Invalid credentials", client.ErrRejected},
		{"rejected no message", client.Rejected(""), "Login failed: Login failed.", client.ErrRejected},
		{"network", client.Unreachable(errors.New("refused")), "Login failed: Network error.", client.ErrUnavailable},
		{"no user id", client.Ok([]byte(`{"email":"x@y.z"}`)), "Login failed: Login failed.", session.ErrInvalidSession},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth, c := newAuth(t)
			c.Reply("POST", "/admin/login", tt.result)

			_, err := auth.Login(context.Background(), models.RoleAdmin, "root@bank.test", "pw")
			require.ErrorIs(t, err, tt.target)
			assert.EqualError(t, err, tt.message)

			_, err = auth.Current(context.Background(), models.RoleAdmin)
			assert.ErrorIs(t, err, session.ErrNoSession)
		})
	}
}

func TestLogin_UnknownRole(t *testing.T) {
	auth, c := newAuth(t)
	_, err := auth.Login(context.Background(), models.Role("manager"), "a@b.c", "pw")
	require.Error(t, err)
	assert.Empty(t, c.Calls())
}
