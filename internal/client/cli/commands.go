package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/mybank/internal/client/dashboards"
	"github.com/dmitrijs2005/mybank/internal/client/models"
	"github.com/dmitrijs2005/mybank/internal/client/views"
	"github.com/dmitrijs2005/mybank/internal/common"
)

func (a *App) commands() []command {
	if !a.isLoggedIn() {
		return a.guestCommands()
	}

	cmds := []command{
		{name: "go", usage: "<page>", help: "open a page", run: a.goPage},
		{name: "pages", help: "list the pages of this dashboard", run: a.listPages},
		{name: "whoami", help: "show the signed-in user", run: func(ctx context.Context, _ []string) error { return a.WhoAmI(ctx) }},
		{name: "logout", help: "sign out", run: func(ctx context.Context, _ []string) error { return a.Logout(ctx) }},
	}
	switch d := a.board.(type) {
	case *dashboards.Admin:
		cmds = append(cmds, a.adminCommands(d)...)
	case *dashboards.Customer:
		cmds = append(cmds, a.customerCommands(d)...)
	case *dashboards.Teller:
		cmds = append(cmds, a.tellerCommands(d)...)
	}
	return cmds
}

func (a *App) guestCommands() []command {
	cmds := []command{
		{name: "login", help: "sign in", run: func(ctx context.Context, _ []string) error { return a.Login(ctx) }},
	}
	if a.role == models.RoleCustomer {
		cmds = append(cmds,
			command{name: "forgot", help: "request a password reset", run: func(ctx context.Context, _ []string) error { return a.Forgot(ctx) }},
			command{name: "register", help: "apply for an account", run: func(ctx context.Context, _ []string) error { return a.Register(ctx) }},
			command{name: "applications", help: "list saved applications", run: func(ctx context.Context, _ []string) error { return a.Applications(ctx) }},
		)
	}
	return cmds
}

func (a *App) goPage(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: go <page>")
		return nil
	}
	if err := a.board.Router().Switch(ctx, args[0]); err != nil {
		fmt.Fprintln(a.out, "Unknown page:", args[0])
		return err
	}
	return nil
}

func (a *App) listPages(context.Context, []string) error {
	fmt.Fprintln(a.out, strings.Join(a.board.Router().Pages(), ", "))
	return nil
}

// page returns a command body that switches to page.
func (a *App) page(page string) func(context.Context, []string) error {
	return func(ctx context.Context, _ []string) error {
		return a.board.Router().Switch(ctx, page)
	}
}

// submit prompts for the fields of h and submits them. The kept form of the
// action supplies defaults and keeps whatever the action does not clear.
func (a *App) submit(h *views.ActionHandler, prepare func(ctx context.Context) error) func(context.Context, []string) error {
	return func(ctx context.Context, _ []string) error {
		if prepare != nil {
			if err := prepare(ctx); err != nil {
				a.report(err)
				return err
			}
		}
		act := h.Action()
		form, err := a.fillForm(act.Fields, a.form(act.Name))
		defer dropSecrets(form, act.Fields)
		if err != nil {
			return err
		}
		return h.Submit(ctx, form)
	}
}

// dropSecrets removes passwords from a kept form whatever the outcome.
func dropSecrets(form views.Form, fields []views.Field) {
	for _, f := range fields {
		if f.Kind == views.KindSecret {
			delete(form, f.Name)
		}
	}
}

// search asks for list filters and shows the list page with them.
func search[T any](a *App, p *views.Panel[T], branches *views.Select) func(context.Context, []string) error {
	return func(ctx context.Context, args []string) error {
		var f views.Filters
		var err error
		if f.Search, err = getSimpleText(a.reader, "Search (name or email)", a.out); err != nil {
			return err
		}
		if branches != nil {
			field := views.Field{Name: "branchId", Label: "Branch", Select: branches}
			if f.BranchID, err = a.promptField(field, ""); err != nil {
				return err
			}
		}
		if f.AccountID, err = getSimpleText(a.reader, "Account ID", a.out); err != nil {
			return err
		}
		f.AccountID = views.SanitizeDigits(f.AccountID)

		p.SetFilters(f)
		page := p.Schema().ListPage
		if a.board.Router().IsActive(page) {
			return p.Reload(ctx)
		}
		return a.board.Router().Switch(ctx, page)
	}
}

// edit opens a record, prompts for changes and submits them.
func edit[T any](a *App, p *views.Panel[T]) func(context.Context, []string) error {
	return func(ctx context.Context, args []string) error {
		s := p.Schema()
		id, err := a.argID(args, s.Entity)
		if err != nil {
			return err
		}
		form, err := p.Edit(ctx, id)
		if err != nil {
			fmt.Fprintf(a.out, "Could not open %s %d.\n", s.Entity, id)
			return err
		}
		form, err = a.fillForm(s.Fields, form, s.IDField)
		if err != nil {
			return err
		}
		return p.Update(ctx, form)
	}
}

// remove deletes a record after confirmation.
func remove[T any](a *App, p *views.Panel[T]) func(context.Context, []string) error {
	return func(ctx context.Context, args []string) error {
		id, err := a.argID(args, p.Schema().Entity)
		if err != nil {
			return err
		}
		return p.Delete(ctx, id, a.confirm)
	}
}

func (a *App) adminCommands(d *dashboards.Admin) []command {
	return []command{
		{name: "home", help: "dashboard home", run: a.page(common.DefaultPage)},
		{name: "customers", help: "list customers", run: a.page(dashboards.AdminCustomers)},
		{name: "search-customers", help: "list customers by name, branch or account", run: search(a, d.Customers, d.CustomerBranchFilter)},
		{name: "edit-customer", usage: "<id>", help: "edit a customer", run: edit(a, d.Customers)},
		{name: "delete-customer", usage: "<id>", help: "delete a customer", run: remove(a, d.Customers)},
		{name: "tellers", help: "list tellers", run: a.page(dashboards.AdminTellers)},
		{name: "edit-teller", usage: "<id>", help: "edit a teller", run: edit(a, d.Tellers)},
		{name: "delete-teller", usage: "<id>", help: "delete a teller", run: remove(a, d.Tellers)},
		{name: "create-teller", help: "create a teller", run: a.submit(d.CreateTeller, nil)},
		{name: "branches", help: "list branches", run: a.page(dashboards.AdminBranches)},
		{name: "edit-branch", usage: "<id>", help: "edit a branch", run: edit(a, d.BranchList)},
		{name: "delete-branch", usage: "<id>", help: "delete a branch", run: remove(a, d.BranchList)},
		{name: "create-branch", help: "create a branch", run: a.submit(d.CreateBranch, nil)},
		{name: "transactions", help: "list every transaction", run: a.page(dashboards.AdminTransactions)},
	}
}

func (a *App) customerCommands(d *dashboards.Customer) []command {
	return []command{
		{name: "home", help: "accounts and balances", run: a.page(common.DefaultPage)},
		{name: "profile", help: "show your profile", run: a.page(dashboards.CustomerProfile)},
		{name: "edit-profile", help: "change your contact details", run: a.editProfile(d)},
		{name: "deposit", help: "deposit into an account", run: a.submit(d.Deposit, d.LoadBanking)},
		{name: "withdraw", help: "withdraw from an account", run: a.submit(d.Withdraw, d.LoadBanking)},
		{name: "transfer", help: "transfer between accounts", run: a.submit(d.Transfer, d.LoadBanking)},
		{name: "transactions", help: "transaction history of all accounts", run: a.page(dashboards.CustomerTransactions)},
		{name: "password", help: "change your password", run: a.submit(d.ChangePassword, nil)},
	}
}

func (a *App) editProfile(d *dashboards.Customer) func(context.Context, []string) error {
	return func(ctx context.Context, _ []string) error {
		current, err := d.LoadProfile(ctx)
		if err != nil {
			return err
		}
		h := d.UpdateProfile
		form, err := a.fillForm(h.Action().Fields, current)
		if err != nil {
			return err
		}
		return h.Submit(ctx, form)
	}
}

func (a *App) tellerCommands(d *dashboards.Teller) []command {
	return []command{
		{name: "home", help: "your processed transactions", run: a.page(common.DefaultPage)},
		{name: "processed", help: "your processed transactions", run: a.page(dashboards.TellerProcessed)},
		{name: "customers", help: "list customers", run: a.page(dashboards.TellerCustomers)},
		{name: "search", help: "find customers by name, branch or account", run: search(a, d.Customers, d.CustomerBranchFilter)},
		{name: "edit-customer", usage: "<id>", help: "edit a customer", run: edit(a, d.Customers)},
		{name: "deposit", help: "deposit into an account", run: a.submit(d.Deposit, nil)},
		{name: "withdraw", help: "withdraw from an account", run: a.submit(d.Withdraw, nil)},
		{name: "transfer", help: "transfer between accounts", run: a.submit(d.Transfer, nil)},
		{name: "create-customer", help: "register a new customer", run: a.submit(d.CreateCustomer, nil)},
		{name: "create-account", help: "open an account for a customer", run: a.submit(d.CreateAccount, nil)},
		{name: "details", help: "your teller details", run: a.page(dashboards.TellerDetails)},
	}
}
