package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/mybank/internal/client/models"
	"github.com/dmitrijs2005/mybank/internal/client/services"
	"github.com/dmitrijs2005/mybank/internal/client/views"
	"github.com/dmitrijs2005/mybank/internal/common"
)

// Login prompts for credentials, stores the session returned by the
// backend and opens the role dashboard.
//
// Validation and backend failures are printed and returned; the password
// byte slice is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		fmt.Fprintln(a.out, "Already logged in. Type 'logout' first.")
		return nil
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.auth.Login(ctx, a.role, email, string(password))
	if err != nil {
		a.report(err)
		return err
	}
	return a.open(ctx, s)
}

// Logout asks for confirmation, drops the stored session and closes the
// dashboard.
func (a *App) Logout(ctx context.Context) error {
	if !a.confirm("Are you sure you want to logout?") {
		return common.ErrorCancelled
	}
	if err := a.auth.Logout(ctx, a.role); err != nil {
		a.report(err)
		return err
	}
	a.closeBoard()
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// Forgot records a password reset request locally.
func (a *App) Forgot(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter your email", a.out)
	if err != nil {
		return err
	}
	if err := a.recovery.Request(ctx, email); err != nil {
		a.report(err)
		return err
	}
	fmt.Fprintln(a.out, services.ForgotRecordedMsg)
	return nil
}

// Register collects a registration application, shows its summary and
// keeps it locally after confirmation.
func (a *App) Register(ctx context.Context) error {
	form, err := a.fillForm(services.ApplicationFields, nil)
	defer clear(form)
	if err != nil {
		return err
	}

	summary, err := a.registration.Preview(form)
	if err != nil {
		a.report(err)
		return err
	}
	fmt.Fprintln(a.out, summary)
	if !a.confirm("Submit application?") {
		return common.ErrorCancelled
	}

	path, err := a.registration.Submit(ctx, form)
	if err != nil {
		a.report(err)
		return err
	}
	fmt.Fprintln(a.out, services.ApplicationReceived)
	fmt.Fprintf(a.out, "A copy was saved to %s\n", path)
	return nil
}

// Applications lists the registration drafts kept on this machine.
func (a *App) Applications(ctx context.Context) error {
	apps, err := a.registration.Applications(ctx)
	if err != nil {
		a.report(err)
		return err
	}
	if len(apps) == 0 {
		fmt.Fprintln(a.out, "No applications saved.")
		return nil
	}
	t := views.Table{Headers: []string{"Created", "Name", "Email", "Account", "Branch"}}
	for _, ap := range apps {
		t.Rows = append(t.Rows, []string{
			ap.CreatedAt.Format("2006-01-02 15:04"),
			strings.TrimSpace(ap.FirstName + " " + ap.LastName),
			models.Text(ap.Email),
			ap.AccountType,
			ap.BranchID,
		})
	}
	writeTable(a.out, t)
	return nil
}

// WhoAmI prints the signed-in user.
func (a *App) WhoAmI(context.Context) error {
	s := a.board.Session()
	fmt.Fprintf(a.out, "%s (%s), user ID %d\n", s.DisplayName(a.role), a.role.Title(), s.UserID)
	return nil
}

// report prints err the way the user should see it: validation failures
// one message per line, anything else as is.
func (a *App) report(err error) {
	if err == nil || errors.Is(err, common.ErrorCancelled) {
		return
	}
	for _, msg := range messages(err) {
		fmt.Fprintln(a.out, msg)
	}
}

func messages(err error) []string {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []string
		for _, e := range joined.Unwrap() {
			out = append(out, messages(e)...)
		}
		return out
	}
	return []string{views.UserMessage(err)}
}
