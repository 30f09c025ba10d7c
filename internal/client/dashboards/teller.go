package dashboards

import (
	"context"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/mybank/internal/client/client"
	"github.com/dmitrijs2005/mybank/internal/client/models"
	"github.com/dmitrijs2005/mybank/internal/client/views"
	"github.com/dmitrijs2005/mybank/internal/common"
)

// Teller pages and areas.
const (
	TellerProcessed      = "processed-transactions"
	TellerCustomers      = "customers"
	TellerEditCustomer   = "edit-customer"
	TellerBanking        = "banking"
	TellerCreateCustomer = "create-customer"
	TellerCreateAccount  = "create-account"
	TellerDetails        = "teller-details"
)

// Teller is the teller dashboard.
type Teller struct {
	base

	Branches *views.ReferenceCache[models.Branch]

	NewCustomerBranch    *views.Select
	EditCustomerBranch   *views.Select
	CustomerBranchFilter *views.Select

	Processed *views.Panel[models.Transaction]
	Customers *views.Panel[models.Customer]

	Deposit        *views.ActionHandler
	Withdraw       *views.ActionHandler
	Transfer       *views.ActionHandler
	CreateCustomer *views.ActionHandler
	CreateAccount  *views.ActionHandler
}

func NewTeller(s *models.Session, env Env) *Teller {
	t := &Teller{base: newBase(models.RoleTeller, s, env)}

	t.Branches = views.NewReferenceCache("branches",
		func(ctx context.Context) client.Result {
			return t.client().Get(ctx, "/teller/branches", nil)
		},
		branchID, branchLabel, t.log())
	t.NewCustomerBranch = t.Branches.Register(views.NewSelect("newCustBranchId", "Select branch..."))
	t.EditCustomerBranch = t.Branches.Register(views.NewSelect("editCustBranchId", "Select branch..."))
	t.CustomerBranchFilter = t.Branches.Register(views.NewSelect("customerBranchFilter", "All Branches"))

	t.Processed = views.NewPanel(t.processedSchema(), t.deps)
	t.Customers = views.NewPanel(t.customerSchema(), t.deps)

	t.Deposit = views.NewActionHandler(t.cashAction(AreaDeposit, "/teller/deposit", "Deposit"), t.deps)
	t.Withdraw = views.NewActionHandler(t.cashAction(AreaWithdraw, "/teller/withdraw", "Withdrawal"), t.deps)
	t.Transfer = views.NewActionHandler(t.transferAction(), t.deps)
	t.CreateCustomer = views.NewActionHandler(t.createCustomerAction(), t.deps)
	t.CreateAccount = views.NewActionHandler(t.createAccountAction(), t.deps)

	reload := func(ctx context.Context) { _ = t.Processed.Reload(ctx) }
	t.router.Register(common.DefaultPage, reload)
	t.Processed.Mount(t.router)
	t.Customers.Mount(t.router)
	t.router.Register(TellerBanking, nil)
	t.router.Register(TellerCreateCustomer, nil)
	t.router.Register(TellerCreateAccount, nil)
	t.router.Register(TellerDetails, func(context.Context) { t.RenderDetails() })
	return t
}

// Start loads the branches for the selects and enters home. A failed
// branch load leaves the selects empty and is not fatal.
func (t *Teller) Start(ctx context.Context) error {
	_ = t.Branches.Load(ctx)
	return t.router.Start(ctx)
}

func (t *Teller) tellerID() map[string]any {
	return map[string]any{"tellerId": t.userID()}
}

// RenderDetails shows the signed-in teller from the session record.
func (t *Teller) RenderDetails() {
	s := t.session
	t.render().RenderView(TellerDetails, views.Rows(views.Table{
		Headers: []string{"Field", "Value"},
		Rows: [][]string{
			{"Name", models.Text(s.FullName())},
			{"Email", models.Text(s.Email)},
			{"Branch", models.Text(s.BranchName)},
			{"Teller ID", int64s(s.UserID)},
		},
	}))
}

// processedAmount shows a missing amount as zero dollars.
func processedAmount(tx models.Transaction) string {
	if tx.Amount == nil {
		return "$0.00"
	}
	return models.Money(tx.Amount)
}

func (t *Teller) processedSchema() views.Schema[models.Transaction] {
	return views.Schema[models.Transaction]{
		Entity:   "transaction",
		Area:     TellerProcessed,
		ListPage: TellerProcessed,
		ListPath: "/teller/processed_transactions",
		ExtraQuery: func() url.Values {
			return url.Values{"tellerId": []string{int64s(t.userID())}}
		},
		ID: func(tx models.Transaction) int64 { return tx.TransactionID },
		Columns: []views.Column[models.Transaction]{
			{Header: "Transaction ID", Value: func(tx models.Transaction) string { return int64s(tx.TransactionID) }},
			{Header: "Type", Value: func(tx models.Transaction) string { return tx.Type }},
			{Header: "From Account", Value: func(tx models.Transaction) string { return optInt(tx.FromAccountID) }},
			{Header: "To Account", Value: func(tx models.Transaction) string { return optInt(tx.ToAccountID) }},
			{Header: "Amount", Value: processedAmount},
			{Header: "Description", Value: func(tx models.Transaction) string { return tx.Description }},
			{Header: "Timestamp", Value: func(tx models.Transaction) string { return models.Timestamp(tx.Timestamp) }},
		},
		LoadingMessage: "Loading transactions...",
		EmptyMessage:   "No processed transactions found.",
		LoadFallback:   "Unable to load transactions.",
	}
}

func (t *Teller) customerSchema() views.Schema[models.Customer] {
	return views.Schema[models.Customer]{
		Entity:         "customer",
		Area:           TellerCustomers,
		ListPage:       TellerCustomers,
		EditPage:       TellerEditCustomer,
		ListPath:       "/teller/search_customers",
		EditSourcePath: "/teller/customers",
		UpdatePath:     "/teller/update_customer",
		ID:             func(c models.Customer) int64 { return c.UserID },
		Columns: []views.Column[models.Customer]{
			{Header: "User ID", Value: func(c models.Customer) string { return int64s(c.UserID) }},
			{Header: "First Name", Value: func(c models.Customer) string { return c.FirstName }},
			{Header: "Last Name", Value: func(c models.Customer) string { return c.LastName }},
			{Header: "Email", Value: func(c models.Customer) string { return c.Email }},
			{Header: "Phone", Value: func(c models.Customer) string { return c.PhoneNumber }},
			{Header: "Branch", Value: func(c models.Customer) string { return branchCell(t.Branches, c.BranchID, "") }},
		},
		FormOf: func(c models.Customer) views.Form {
			return views.Form{
				"customerId":  int64s(c.UserID),
				"firstName":   c.FirstName,
				"lastName":    c.LastName,
				"email":       c.Email,
				"phoneNumber": c.PhoneNumber,
				"address":     c.Address,
				"dateOfBirth": c.DateOfBirth,
				"sin":         optInt(c.SIN),
				"branchId":    offered(t.EditCustomerBranch, c.BranchID),
			}
		},
		IDField: "customerId",
		Fields: []views.Field{
			{Name: "customerId", Label: "Customer ID", Kind: views.KindInt, Required: true},
			{Name: "firstName", Label: "First name"},
			{Name: "lastName", Label: "Last name"},
			{Name: "email", Label: "Email"},
			{Name: "phoneNumber", Label: "Phone"},
			{Name: "address", Label: "Address"},
			{Name: "dateOfBirth", Label: "Date of birth", Kind: views.KindDate},
			{Name: "sin", Label: "SIN", Kind: views.KindDigits},
			{Name: "branchId", Label: "Branch", Kind: views.KindInt, Select: t.EditCustomerBranch},
		},
		LoadingMessage: "Loading customers...",
		EmptyMessage:   "No customers found.",
		LoadFallback:   "Unable to load customers.",
		UpdateSuccess:  "Customer updated successfully!",
		UpdateFallback: "Failed to update customer.",
		UpdateDelay:    t.delays.Update,
	}
}

// refreshProcessed reloads the processed transactions when they are on
// screen.
func (t *Teller) refreshProcessed(ctx context.Context) {
	if t.router.IsActive(common.DefaultPage, TellerProcessed) {
		_ = t.Processed.Reload(ctx)
	}
}

func (t *Teller) withTellerID(context.Context, views.Form) (map[string]any, error) {
	return t.tellerID(), nil
}

func (t *Teller) cashAction(name, path, what string) views.Action {
	return views.Action{
		Name: name,
		Path: path,
		Fields: []views.Field{
			{Name: "accountId", Label: "Account ID", Kind: views.KindInt, Required: true},
			{Name: "amount", Label: "Amount", Kind: views.KindAmount, Required: true},
		},
		Extra:    t.withTellerID,
		Success:  views.Message(what + " successful!"),
		Fallback: what + " failed.",
		ClearAll: true,
		Refresh:  []func(context.Context){t.refreshProcessed},
	}
}

func (t *Teller) transferAction() views.Action {
	return views.Action{
		Name: AreaTransfer,
		Path: "/teller/transfer",
		Fields: []views.Field{
			{Name: "fromAccountId", Label: "From account", Kind: views.KindInt, Required: true},
			{Name: "toAccountId", Label: "To account", Kind: views.KindInt, Required: true},
			{Name: "amount", Label: "Amount", Kind: views.KindAmount, Required: true},
			{Name: "description", Label: "Description"},
		},
		Extra:    t.withTellerID,
		Success:  views.Message("Transfer successful!"),
		Fallback: "Transfer failed.",
		ClearAll: true,
		Refresh:  []func(context.Context){t.refreshProcessed},
	}
}

func (t *Teller) createCustomerAction() views.Action {
	return views.Action{
		Name: TellerCreateCustomer,
		Path: "/teller/create_customer",
		Fields: []views.Field{
			{Name: "firstName", Label: "First name", Required: true, OneShot: true},
			{Name: "lastName", Label: "Last name", Required: true, OneShot: true},
			{Name: "email", Label: "Email", Required: true, OneShot: true},
			{Name: "password", Label: "Password", Kind: views.KindSecret, Required: true},
			{Name: "phoneNumber", Label: "Phone", OmitEmpty: true, OneShot: true},
			{Name: "dateOfBirth", Label: "Date of birth", Kind: views.KindDate, OmitEmpty: true, OneShot: true},
			{Name: "sin", Label: "SIN", Kind: views.KindDigits, OmitEmpty: true, OneShot: true},
			{Name: "address", Label: "Address", OmitEmpty: true, OneShot: true},
			{Name: "branchId", Label: "Branch", Kind: views.KindInt, OmitEmpty: true, Select: t.NewCustomerBranch},
		},
		Processing: "Creating customer...",
		Success:    views.CreatedWithID("Customer created successfully", "userId"),
		Fallback:   "Failed to create customer.",
	}
}

// initialDeposit reads the optional opening amount. Anything that is not a
// positive number means no deposit.
func initialDeposit(form views.Form) (float64, bool) {
	raw := views.SanitizeAmount(form.Get("initialDeposit"))
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

func (t *Teller) createAccountAction() views.Action {
	return views.Action{
		Name: TellerCreateAccount,
		Path: "/teller/create_account",
		Fields: []views.Field{
			{Name: "customerId", Label: "Customer ID", Kind: views.KindInt, Required: true, OneShot: true},
			{Name: "accountType", Label: "Account type", Required: true, OneShot: true},
			{Name: "initialDeposit", Label: "Initial deposit", Skip: true, OneShot: true},
		},
		Extra: func(_ context.Context, form views.Form) (map[string]any, error) {
			if v, ok := initialDeposit(form); ok {
				return map[string]any{"initialDeposit": v}, nil
			}
			return nil, nil
		},
		Processing: "Creating account...",
		Success:    views.CreatedWithID("Account created successfully", "accountId"),
		Fallback:   "Failed to create account.",
	}
}

