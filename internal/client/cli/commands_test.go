package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/mybank/internal/client/client"
	"github.com/dmitrijs2005/mybank/internal/client/dashboards"
	"github.com/dmitrijs2005/mybank/internal/client/models"
	"github.com/dmitrijs2005/mybank/internal/client/views"
	"github.com/dmitrijs2005/mybank/internal/client/views/viewstest"
	"github.com/dmitrijs2005/mybank/internal/common"
)

// exec runs one command line the way the REPL would.
func (ta *testApp) exec(t *testing.T, name string, args ...string) error {
	t.Helper()
	c, ok := lookup(ta.commands(), name)
	require.True(t, ok, "command %q not available", name)
	return c.run(context.Background(), args)
}

func names(cmds []command) []string {
	out := make([]string, len(cmds))
	for i, c := range cmds {
		out[i] = c.name
	}
	return out
}

func TestCommands_Guest(t *testing.T) {
	customer := newTestApp(t, models.RoleCustomer, "")
	assert.Equal(t, []string{"login", "forgot", "register", "applications"}, names(customer.commands()))

	for _, role := range []models.Role{models.RoleAdmin, models.RoleTeller} {
		ta := newTestApp(t, role, "")
		assert.Equal(t, []string{"login"}, names(ta.commands()), role)
	}
}

func newAdminApp(t *testing.T, input string) *testApp {
	t.Helper()
	ta := newTestApp(t, models.RoleAdmin, input)
	ta.client.Reply("GET", "/admin/all_branches", viewstest.OkJSON([]models.Branch{
		{BranchID: 1, BranchName: "Downtown", City: "Toronto"},
		{BranchID: 2, BranchName: "Uptown"},
	}))
	ta.client.Reply("GET", "/admin/all_customers", viewstest.OkJSON([]any{}))
	ta.openAs(t, &models.Session{UserID: 1})
	return ta
}

func TestCommands_GoAndPages(t *testing.T) {
	ta := newAdminApp(t, "")

	require.NoError(t, ta.exec(t, "go", dashboards.AdminBranches))
	assert.Equal(t, dashboards.AdminBranches, ta.board.Router().Active())

	require.Error(t, ta.exec(t, "go", "nowhere"))
	assert.Contains(t, ta.out.String(), "Unknown page: nowhere")

	require.NoError(t, ta.exec(t, "pages"))
	assert.Contains(t, ta.out.String(), "home, customers, edit-customer, tellers")
}

func TestCommands_AdminSearchCustomersSendsOneRequest(t *testing.T) {
	ta := newAdminApp(t, lines("ann", "2", "#9"))

	require.NoError(t, ta.exec(t, "search-customers"))

	calls := ta.client.CallsTo("/admin/all_customers")
	require.Len(t, calls, 1)
	assert.Equal(t, "ann", calls[0].Query.Get("search"))
	assert.Equal(t, "2", calls[0].Query.Get("branchId"))
	assert.Equal(t, "9", calls[0].Query.Get("accountId"))
	assert.Equal(t, dashboards.AdminCustomers, ta.board.Router().Active())
	assert.Contains(t, ta.out.String(), "  All Branches\n  1) Downtown\n  2) Uptown\n")
}

func TestCommands_AdminEditBranch(t *testing.T) {
	ta := newAdminApp(t, lines(
		"",          // branch name kept
		"2 King St", // address
		"",          // city kept
		"-",         // province cleared
		"", "",
	))
	ta.client.Reply("POST", "/admin/update_branch", viewstest.OkJSON(nil))

	require.NoError(t, ta.exec(t, "edit-branch", "1"))

	calls := ta.client.CallsTo("/admin/update_branch")
	require.Len(t, calls, 1)
	assert.JSONEq(t, `{
		"branchId": 1,
		"branchName": "Downtown",
		"address": "2 King St",
		"city": "Toronto",
		"province": null,
		"postalCode": null,
		"phoneNumber": null
	}`, calls[0].JSON())

	status, ok := ta.renderer.LastStatus(dashboards.AdminEditBranch)
	require.True(t, ok)
	assert.Equal(t, "Branch updated successfully!", status.Message)

	require.Equal(t, 1, ta.sched.Fire())
	assert.Equal(t, dashboards.AdminBranches, ta.board.Router().Active())
}

func TestCommands_AdminEditUnknownRecord(t *testing.T) {
	ta := newAdminApp(t, "")

	err := ta.exec(t, "edit-branch", "99")
	require.ErrorIs(t, err, views.ErrNotFound)
	assert.Contains(t, ta.out.String(), "Could not open branch 99.")
	assert.Empty(t, ta.client.CallsTo("/admin/update_branch"))
}

func TestCommands_AdminDeleteTeller(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		want   int
	}{
		{name: "confirmed", answer: "y", want: 1},
		{name: "declined", answer: "n", want: 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ta := newAdminApp(t, lines(tc.answer))
			ta.client.Reply("POST", "/admin/remove_teller", viewstest.OkJSON(nil))
			ta.client.Reply("GET", "/admin/all_tellers", viewstest.OkJSON([]any{}))

			_ = ta.exec(t, "delete-teller", "4")

			calls := ta.client.CallsTo("/admin/remove_teller")
			require.Len(t, calls, tc.want)
			if tc.want > 0 {
				assert.JSONEq(t, `{"userId": 4}`, calls[0].JSON())
			}
			assert.Contains(t, ta.out.String(), "Are you sure you want to delete teller 4?")
		})
	}
}

func newCustomerApp(t *testing.T, input string) *testApp {
	t.Helper()
	ta := newTestApp(t, models.RoleCustomer, input)
	ta.client.Reply("POST", "/customer/account_details", viewstest.OkJSON([]models.Account{
		{AccountID: 10, UserID: 5, AccountType: "CHECKING"},
	}))
	ta.client.Reply("POST", "/customer/balance", viewstest.OkJSON(map[string]any{"balance": 50.0}))
	ta.openAs(t, &models.Session{UserID: 5, FirstName: "Ann"})
	return ta
}

func TestCommands_CustomerDepositKeepsAccount(t *testing.T) {
	ta := newCustomerApp(t, lines("10", "$25.50", "", "3"))
	ta.client.Reply("POST", "/customer/deposit", viewstest.OkJSON(nil))

	require.NoError(t, ta.exec(t, "deposit"))
	require.NoError(t, ta.exec(t, "deposit"))

	calls := ta.client.CallsTo("/customer/deposit")
	require.Len(t, calls, 2)
	assert.JSONEq(t, `{"accountId": 10, "amount": 25.5}`, calls[0].JSON())
	assert.JSONEq(t, `{"accountId": 10, "amount": 3}`, calls[1].JSON())
	assert.Equal(t, views.Form{"accountId": "10"}, ta.forms[dashboards.AreaDeposit])
	assert.Contains(t, ta.sched.Delays(), 2*time.Second)
}

func TestCommands_CustomerDepositRejected(t *testing.T) {
	ta := newCustomerApp(t, lines("10", "1000"))
	ta.client.Reply("POST", "/customer/deposit", client.Rejected("Daily limit exceeded"))

	require.Error(t, ta.exec(t, "deposit"))

	status, ok := ta.renderer.LastStatus(dashboards.AreaDeposit)
	require.True(t, ok)
	assert.Equal(t, views.Status{Kind: views.StatusError, Message: "Daily limit exceeded"}, status)
	assert.Equal(t, views.Form{"accountId": "10", "amount": "1000"}, ta.forms[dashboards.AreaDeposit])
}

func TestCommands_CustomerDepositRejectsUnusableAccount(t *testing.T) {
	ta := newCustomerApp(t, lines("10", "5", "abc", "20"))
	ta.client.Reply("POST", "/customer/deposit", viewstest.OkJSON(nil))

	require.NoError(t, ta.exec(t, "deposit"))
	require.ErrorIs(t, ta.exec(t, "deposit"), views.ErrValidation)

	assert.Len(t, ta.client.CallsTo("/customer/deposit"), 1)
	assert.Contains(t, ta.out.String(), "Please enter a valid account\n")
	assert.Equal(t, views.Form{"accountId": "10"}, ta.forms[dashboards.AreaDeposit])
}

func TestCommands_CustomerEditProfile(t *testing.T) {
	ta := newCustomerApp(t, lines("", "Smith", "", "-", ""))
	ta.client.Reply("POST", "/customer/profile", viewstest.OkJSON(models.Customer{
		FirstName:   "Ann",
		LastName:    "Lee",
		Email:       "ann@example.com",
		PhoneNumber: "416-555-0100",
		Address:     "1 Main St",
	}))
	ta.client.Reply("POST", "/customer/update_profile", viewstest.OkJSON(nil))

	require.NoError(t, ta.exec(t, "edit-profile"))

	calls := ta.client.CallsTo("/customer/update_profile")
	require.Len(t, calls, 1)
	assert.JSONEq(t, `{
		"userId": 5,
		"firstName": "Ann",
		"lastName": "Smith",
		"email": "ann@example.com",
		"phoneNumber": "",
		"address": "1 Main St"
	}`, calls[0].JSON())
}

func TestCommands_CustomerPasswordIsNotKept(t *testing.T) {
	ta := newCustomerApp(t, "")
	stubPasswords(t, "old", "abcdef", "abcdeg")

	require.ErrorIs(t, ta.exec(t, "password"), views.ErrValidation)

	status, ok := ta.renderer.LastStatus(dashboards.CustomerPassword)
	require.True(t, ok)
	assert.Equal(t, "New passwords do not match.", status.Message)
	assert.Empty(t, ta.forms[dashboards.CustomerPassword])
	assert.Empty(t, ta.client.CallsTo("/customer/change_password"))
}

func newTellerApp(t *testing.T, input string) *testApp {
	t.Helper()
	ta := newTestApp(t, models.RoleTeller, input)
	ta.client.Reply("GET", "/teller/branches", viewstest.OkJSON([]models.Branch{{BranchID: 1, BranchName: "Downtown"}}))
	ta.client.Reply("GET", "/teller/processed_transactions", viewstest.OkJSON([]any{}))
	ta.openAs(t, &models.Session{UserID: 12, FirstName: "Tess", BranchName: "Downtown"})
	return ta
}

func TestCommands_TellerCreateAccount(t *testing.T) {
	ta := newTellerApp(t, lines("7", "SAVINGS", "150"))
	ta.client.Reply("POST", "/teller/create_account", viewstest.OkJSON(map[string]any{"accountId": 33}))

	require.NoError(t, ta.exec(t, "create-account"))

	calls := ta.client.CallsTo("/teller/create_account")
	require.Len(t, calls, 1)
	assert.JSONEq(t, `{"customerId": 7, "accountType": "SAVINGS", "initialDeposit": 150}`, calls[0].JSON())

	status, ok := ta.renderer.LastStatus(dashboards.TellerCreateAccount)
	require.True(t, ok)
	assert.Equal(t, "Account created successfully (ID: 33)", status.Message)
}

func TestCommands_TellerDepositRefreshesProcessedOnHome(t *testing.T) {
	ta := newTellerApp(t, lines("10", "20"))
	ta.client.Reply("POST", "/teller/deposit", viewstest.OkJSON(nil))
	before := len(ta.client.CallsTo("/teller/processed_transactions"))

	require.NoError(t, ta.exec(t, "deposit"))

	calls := ta.client.CallsTo("/teller/deposit")
	require.Len(t, calls, 1)
	assert.JSONEq(t, `{"accountId": 10, "amount": 20, "tellerId": 12}`, calls[0].JSON())
	assert.Equal(t, common.DefaultPage, ta.board.Router().Active())
	assert.Len(t, ta.client.CallsTo("/teller/processed_transactions"), before+1)
}

func TestCommands_TellerDetails(t *testing.T) {
	ta := newTellerApp(t, "")

	require.NoError(t, ta.exec(t, "details"))

	v, ok := ta.renderer.LastView(dashboards.TellerDetails)
	require.True(t, ok)
	assert.Contains(t, v.Table.Rows, []string{"Name", "Tess"})
	assert.Contains(t, v.Table.Rows, []string{"Teller ID", "12"})
}
