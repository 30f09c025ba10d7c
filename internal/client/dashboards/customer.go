package dashboards

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/mybank/internal/client/client"
	"github.com/dmitrijs2005/mybank/internal/client/models"
	"github.com/dmitrijs2005/mybank/internal/client/views"
	"github.com/dmitrijs2005/mybank/internal/common"
)

// Customer pages and areas.
const (
	CustomerProfile      = "profile"
	CustomerBanking      = "banking"
	CustomerTransactions = "transactions"
	CustomerPassword     = "password"

	AreaAccounts = "accounts"
	AreaDeposit  = "deposit"
	AreaWithdraw = "withdraw"
	AreaTransfer = "transfer"
)

// balanceFanOut bounds the concurrent balance requests of one home load.
const balanceFanOut = 4

// Customer is the customer dashboard.
type Customer struct {
	base

	Accounts *views.ReferenceCache[models.Account]

	DepositAccount  *views.Select
	WithdrawAccount *views.Select
	TransferFrom    *views.Select

	Deposit        *views.ActionHandler
	Withdraw       *views.ActionHandler
	Transfer       *views.ActionHandler
	UpdateProfile  *views.ActionHandler
	ChangePassword *views.ActionHandler

	homeGen    views.Generation
	historyGen views.Generation
	profileGen views.Generation
}

func NewCustomer(s *models.Session, env Env) *Customer {
	c := &Customer{base: newBase(models.RoleCustomer, s, env)}

	c.Accounts = views.NewReferenceCache("accounts", c.fetchAccounts, accountID, accountLabel, c.log())
	c.DepositAccount = c.Accounts.Register(views.NewSelect("depositAccountId", "Select account..."))
	c.WithdrawAccount = c.Accounts.Register(views.NewSelect("withdrawAccountId", "Select account..."))
	c.TransferFrom = c.Accounts.Register(views.NewSelect("transferFromAccountId", "Select account..."))

	refreshHome := []func(context.Context){func(ctx context.Context) { _ = c.LoadAccounts(ctx) }}

	c.Deposit = views.NewActionHandler(views.Action{
		Name: AreaDeposit,
		Path: "/customer/deposit",
		Fields: []views.Field{
			{Name: "accountId", Label: "Account", Kind: views.KindInt, Required: true, Select: c.DepositAccount},
			{Name: "amount", Label: "Amount", Kind: views.KindAmount, Required: true, OneShot: true},
		},
		Success:      views.Message("Deposit successful!"),
		Fallback:     "Deposit failed.",
		Refresh:      refreshHome,
		RefreshDelay: c.delays.Refresh,
	}, c.deps)

	c.Withdraw = views.NewActionHandler(views.Action{
		Name: AreaWithdraw,
		Path: "/customer/withdraw",
		Fields: []views.Field{
			{Name: "accountId", Label: "Account", Kind: views.KindInt, Required: true, Select: c.WithdrawAccount},
			{Name: "amount", Label: "Amount", Kind: views.KindAmount, Required: true, OneShot: true},
		},
		Success:      views.Message("Withdrawal successful!"),
		Fallback:     "Withdrawal failed.",
		Refresh:      refreshHome,
		RefreshDelay: c.delays.Refresh,
	}, c.deps)

	c.Transfer = views.NewActionHandler(views.Action{
		Name: AreaTransfer,
		Path: "/customer/transfer",
		Fields: []views.Field{
			{Name: "fromAccountId", Label: "From account", Kind: views.KindInt, Required: true, Select: c.TransferFrom},
			{Name: "toAccountId", Label: "To account", Kind: views.KindInt, Required: true, OneShot: true},
			{Name: "amount", Label: "Amount", Kind: views.KindAmount, Required: true, OneShot: true},
			{Name: "description", Label: "Description", OneShot: true, Skip: true},
		},
		Extra: func(_ context.Context, form views.Form) (map[string]any, error) {
			desc := form.Get("description")
			if desc == "" {
				desc = "Transfer"
			}
			return map[string]any{"description": desc}, nil
		},
		Success:      views.Message("Transfer successful!"),
		Fallback:     "Transfer failed.",
		Refresh:      refreshHome,
		RefreshDelay: c.delays.Refresh,
	}, c.deps)

	c.UpdateProfile = views.NewActionHandler(views.Action{
		Name: CustomerProfile,
		Path: "/customer/update_profile",
		Fields: []views.Field{
			{Name: "firstName", Label: "First name", SendEmpty: true},
			{Name: "lastName", Label: "Last name", SendEmpty: true},
			{Name: "email", Label: "Email", SendEmpty: true},
			{Name: "phoneNumber", Label: "Phone", SendEmpty: true},
			{Name: "address", Label: "Address", SendEmpty: true},
		},
		Extra:        c.withUserID,
		Processing:   "Saving...",
		Success:      views.Message("Profile updated successfully!"),
		Fallback:     "Failed to update profile.",
		Refresh:      []func(context.Context){func(ctx context.Context) { _, _ = c.LoadProfile(ctx) }},
		RefreshDelay: c.delays.Refresh,
	}, c.deps)

	c.ChangePassword = views.NewActionHandler(views.Action{
		Name: CustomerPassword,
		Path: "/customer/change_password",
		Fields: []views.Field{
			{Name: "oldPassword", Label: "Current password", Kind: views.KindSecret, Required: true},
			{Name: "newPassword", Label: "New password", Kind: views.KindSecret, Required: true},
			{Name: "confirmPassword", Label: "Confirm password", Kind: views.KindSecret, Required: true, Skip: true},
		},
		Rules: []views.Rule{
			views.Matches("newPassword", "confirmPassword", "New passwords do not match."),
			views.MinLength("newPassword", views.ChangePasswordLen, "Password must be at least 6 characters."),
		},
		Extra:        c.withUserID,
		Processing:   "Changing password...",
		Success:      views.Message("Password changed successfully!"),
		Fallback:     "Failed to change password.",
		ClearAll:     true,
		RefreshDelay: c.delays.Refresh,
	}, c.deps)

	c.router.Register(common.DefaultPage, func(ctx context.Context) { _ = c.LoadAccounts(ctx) })
	c.router.Register(CustomerProfile, func(ctx context.Context) { _, _ = c.LoadProfile(ctx) })
	c.router.Register(CustomerBanking, func(ctx context.Context) { _ = c.LoadBanking(ctx) })
	c.router.Register(CustomerTransactions, func(ctx context.Context) { _ = c.LoadTransactions(ctx) })
	c.router.Register(CustomerPassword, nil)
	return c
}

func (c *Customer) Start(ctx context.Context) error {
	return c.router.Start(ctx)
}

func (c *Customer) withUserID(context.Context, views.Form) (map[string]any, error) {
	return map[string]any{"userId": c.userID()}, nil
}

func (c *Customer) fetchAccounts(ctx context.Context) client.Result {
	return c.client().Post(ctx, "/customer/account_details", map[string]any{"userId": c.userID()})
}

// LoadAccounts renders the account cards of the home page. Balances are
// fetched concurrently; an account whose balance cannot be read shows a
// placeholder.
func (c *Customer) LoadAccounts(ctx context.Context) error {
	tok := c.homeGen.Next()
	c.render().RenderView(AreaAccounts, views.Loading("Loading accounts..."))

	res := c.fetchAccounts(ctx)
	accounts, err := client.DecodeList[models.Account](res)
	if err == nil {
		c.Accounts.Replace(accounts)
		c.fetchBalances(ctx, accounts)
	}
	if ctx.Err() != nil || !c.homeGen.Current(tok) {
		c.log().Debug(ctx, "dropping superseded accounts response")
		return nil
	}

	if err != nil {
		c.log().Warn(ctx, "accounts load failed", "error", err)
		c.render().RenderView(AreaAccounts, views.Failed("Error loading accounts: "+res.Display("Unable to load accounts.")))
		return err
	}
	if len(accounts) == 0 {
		c.render().RenderView(AreaAccounts, views.Empty("No accounts found. Please contact a teller to create an account."))
		return nil
	}

	t := views.Table{Headers: []string{"Account", "Type", "Balance"}}
	for _, a := range accounts {
		t.Rows = append(t.Rows, []string{"Account #" + int64s(a.AccountID), models.Text(a.AccountType), models.Money(a.Balance)})
	}
	c.render().RenderView(AreaAccounts, views.Rows(t))
	return nil
}

// fetchBalances fills the Balance of every account in place.
func (c *Customer) fetchBalances(ctx context.Context, accounts []models.Account) {
	var g errgroup.Group
	g.SetLimit(balanceFanOut)
	for i := range accounts {
		i := i
		g.Go(func() error {
			accounts[i].Balance = c.balance(ctx, accounts[i].AccountID)
			return nil
		})
	}
	_ = g.Wait()
}

func (c *Customer) balance(ctx context.Context, id int64) *float64 {
	res := c.client().Post(ctx, "/customer/balance", map[string]any{"userId": c.userID(), "accountId": id})
	var out struct {
		Balance *float64 `json:"balance"`
	}
	if err := res.Decode(&out); err != nil {
		c.log().Warn(ctx, "balance load failed", "accountId", id, "error", err)
		return nil
	}
	return out.Balance
}

// LoadProfile fills the profile form from the backend and returns it.
func (c *Customer) LoadProfile(ctx context.Context) (views.Form, error) {
	tok := c.profileGen.Next()
	res := c.client().Post(ctx, "/customer/profile", map[string]any{"userId": c.userID()})
	if ctx.Err() != nil || !c.profileGen.Current(tok) {
		return nil, ctx.Err()
	}

	var p models.Customer
	if err := res.Decode(&p); err != nil {
		c.log().Warn(ctx, "profile load failed", "error", err)
		c.render().RenderStatus(CustomerProfile, views.Status{Kind: views.StatusError, Message: res.Display("Unable to load profile.")})
		return nil, err
	}
	form := views.Form{
		"firstName":   p.FirstName,
		"lastName":    p.LastName,
		"email":       p.Email,
		"phoneNumber": p.PhoneNumber,
		"address":     p.Address,
		"dateOfBirth": p.DateOfBirth,
		"sin":         optInt(p.SIN),
	}
	c.render().RenderForm(CustomerProfile, form)
	return form, nil
}

// LoadBanking makes sure the account selects have something to offer.
func (c *Customer) LoadBanking(ctx context.Context) error {
	if c.Accounts.Len() > 0 {
		return nil
	}
	return c.Accounts.Load(ctx)
}

// LoadTransactions merges the histories of every account, newest first.
// An account whose history fails is skipped.
func (c *Customer) LoadTransactions(ctx context.Context) error {
	tok := c.historyGen.Next()
	c.render().RenderView(CustomerTransactions, views.Loading("Loading transactions..."))

	res := c.fetchAccounts(ctx)
	accounts, err := client.DecodeList[models.Account](res)
	var merged []models.Transaction
	if err == nil {
		merged = c.histories(ctx, accounts)
	}
	if ctx.Err() != nil || !c.historyGen.Current(tok) {
		c.log().Debug(ctx, "dropping superseded history response")
		return nil
	}

	switch {
	case err != nil:
		c.log().Warn(ctx, "accounts load failed", "error", err)
		c.render().RenderView(CustomerTransactions, views.Failed("Error loading transactions: "+res.Display("Unable to load transactions.")))
		return err
	case len(accounts) == 0:
		c.render().RenderView(CustomerTransactions, views.Empty("No accounts found."))
		return nil
	case len(merged) == 0:
		c.render().RenderView(CustomerTransactions, views.Empty("No transactions found."))
		return nil
	}

	models.SortNewestFirst(merged)
	t := views.Table{Headers: []string{
		"Account", "Transaction Type", "Account Type", "Amount", "Date & Time", "Description", "Processed By",
	}}
	for _, tx := range merged {
		acct := models.Account{AccountID: tx.AccountID, AccountType: tx.AccountType}
		kind := tx.AccountType
		if kind == "" {
			kind = "Account"
		}
		t.Rows = append(t.Rows, []string{
			acct.Label(),
			models.Text(tx.Type),
			kind,
			models.SignedAmount(tx, tx.AccountID),
			models.Timestamp(tx.Timestamp),
			models.Text(tx.Description),
			models.Text(tx.TellerName),
		})
	}
	c.render().RenderView(CustomerTransactions, views.Rows(t))
	return nil
}

func (c *Customer) histories(ctx context.Context, accounts []models.Account) []models.Transaction {
	per := make([][]models.Transaction, len(accounts))
	var g errgroup.Group
	g.SetLimit(balanceFanOut)
	for i, a := range accounts {
		i, a := i, a
		g.Go(func() error {
			res := c.client().Post(ctx, "/customer/transaction_history", map[string]any{
				"userId":    c.userID(),
				"accountId": a.AccountID,
			})
			txs, err := client.DecodeList[models.Transaction](res)
			if err != nil {
				c.log().Warn(ctx, "history load failed", "accountId", a.AccountID, "error", err)
				return nil
			}
			for j := range txs {
				txs[j].AccountID = a.AccountID
				txs[j].AccountType = a.AccountType
			}
			per[i] = txs
			return nil
		})
	}
	_ = g.Wait()

	var merged []models.Transaction
	for _, txs := range per {
		merged = append(merged, txs...)
	}
	return merged
}
