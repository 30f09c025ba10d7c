package dashboards

import (
	"context"
	"strconv"

	"github.com/dmitrijs2005/mybank/internal/client/client"
	"github.com/dmitrijs2005/mybank/internal/client/models"
	"github.com/dmitrijs2005/mybank/internal/client/views"
	"github.com/dmitrijs2005/mybank/internal/common"
)

// Admin pages.
const (
	AdminCustomers    = "customers"
	AdminEditCustomer = "edit-customer"
	AdminTellers      = "tellers"
	AdminEditTeller   = "edit-teller"
	AdminCreateTeller = "create-teller"
	AdminBranches     = "branches"
	AdminEditBranch   = "edit-branch"
	AdminCreateBranch = "create-branch"
	AdminTransactions = "transactions"
)

// Admin is the administrator dashboard.
type Admin struct {
	base

	Branches *views.ReferenceCache[models.Branch]

	CustomerBranchFilter *views.Select
	EditCustomerBranch   *views.Select
	EditTellerBranch     *views.Select
	NewTellerBranch      *views.Select

	Customers    *views.Panel[models.Customer]
	Tellers      *views.Panel[models.Teller]
	BranchList   *views.Panel[models.Branch]
	Transactions *views.Panel[models.Transaction]

	CreateTeller *views.ActionHandler
	CreateBranch *views.ActionHandler
}

func NewAdmin(s *models.Session, env Env) *Admin {
	a := &Admin{base: newBase(models.RoleAdmin, s, env)}

	a.Branches = views.NewReferenceCache("branches",
		func(ctx context.Context) client.Result {
			return a.client().Get(ctx, "/admin/all_branches", nil)
		},
		branchID, branchLabel, a.log())

	a.CustomerBranchFilter = a.Branches.Register(views.NewSelect("adminCustomerBranchFilter", "All Branches"))
	a.EditCustomerBranch = a.Branches.Register(views.NewSelect("adminEditCustBranchId", "Select branch..."))
	a.EditTellerBranch = a.Branches.Register(views.NewSelect("adminEditTellerBranchId", "Select branch..."))
	a.NewTellerBranch = a.Branches.Register(views.NewSelect("newTellerBranchId", "Select branch..."))

	a.Customers = views.NewPanel(a.customerSchema(), a.deps)
	a.Tellers = views.NewPanel(a.tellerSchema(), a.deps)
	a.BranchList = views.NewPanel(a.branchSchema(), a.deps)
	a.Transactions = views.NewPanel(a.transactionSchema(), a.deps)

	a.CreateTeller = views.NewActionHandler(a.createTellerAction(), a.deps)
	a.CreateBranch = views.NewActionHandler(a.createBranchAction(), a.deps)

	a.router.Register(common.DefaultPage, nil)
	a.Customers.Mount(a.router)
	a.Tellers.Mount(a.router)
	a.router.Register(AdminCreateTeller, nil)
	a.BranchList.Mount(a.router)
	a.router.Register(AdminCreateBranch, nil)
	a.Transactions.Mount(a.router)
	return a
}

// Start loads the branches for the selects and enters home. A failed
// branch load leaves the selects empty and is not fatal.
func (a *Admin) Start(ctx context.Context) error {
	_ = a.Branches.Load(ctx)
	return a.router.Start(ctx)
}

func (a *Admin) customerSchema() views.Schema[models.Customer] {
	return views.Schema[models.Customer]{
		Entity:     "customer",
		Area:       AdminCustomers,
		ListPage:   AdminCustomers,
		EditPage:   AdminEditCustomer,
		ListPath:   "/admin/all_customers",
		RemovePath: "/admin/remove_customer",
		RemoveKey:  "userId",
		UpdatePath: "/admin/update_customer",
		ID:         func(c models.Customer) int64 { return c.UserID },
		Columns: []views.Column[models.Customer]{
			{Header: "User ID", Value: func(c models.Customer) string { return int64s(c.UserID) }},
			{Header: "First Name", Value: func(c models.Customer) string { return c.FirstName }},
			{Header: "Last Name", Value: func(c models.Customer) string { return c.LastName }},
			{Header: "Email", Value: func(c models.Customer) string { return c.Email }},
			{Header: "Phone", Value: func(c models.Customer) string { return c.PhoneNumber }},
			{Header: "Address", Value: func(c models.Customer) string { return c.Address }},
			{Header: "Branch", Value: func(c models.Customer) string { return branchCell(a.Branches, c.BranchID, "") }},
		},
		FormOf:  a.customerForm,
		IDField: "customerId",
		Fields: []views.Field{
			{Name: "customerId", Label: "Customer ID", Kind: views.KindInt, Required: true},
			{Name: "firstName", Label: "First name"},
			{Name: "lastName", Label: "Last name"},
			{Name: "email", Label: "Email"},
			{Name: "phoneNumber", Label: "Phone"},
			{Name: "address", Label: "Address"},
			{Name: "dateOfBirth", Label: "Date of birth", Kind: views.KindDate},
			{Name: "sin", Label: "SIN", Kind: views.KindInt},
			{Name: "branchId", Label: "Branch", Kind: views.KindInt, Select: a.EditCustomerBranch},
		},
		LoadingMessage: "Loading customers...",
		EmptyMessage:   "No customers found.",
		LoadFallback:   "Unable to load customers.",
		RemoveSuccess:  "Customer deleted successfully!",
		RemoveFallback: "Failed to delete customer.",
		UpdateSuccess:  "Customer updated successfully!",
		UpdateFallback: "Failed to update customer.",
		UpdateDelay:    a.delays.Update,
	}
}

// customerForm fills the edit form. A branch the select does not offer is
// left blank.
func (a *Admin) customerForm(c models.Customer) views.Form {
	return views.Form{
		"customerId":  int64s(c.UserID),
		"firstName":   c.FirstName,
		"lastName":    c.LastName,
		"email":       c.Email,
		"phoneNumber": c.PhoneNumber,
		"address":     c.Address,
		"dateOfBirth": c.DateOfBirth,
		"sin":         optInt(c.SIN),
		"branchId":    offered(a.EditCustomerBranch, c.BranchID),
	}
}

func (a *Admin) tellerSchema() views.Schema[models.Teller] {
	return views.Schema[models.Teller]{
		Entity:     "teller",
		Area:       AdminTellers,
		ListPage:   AdminTellers,
		EditPage:   AdminEditTeller,
		ListPath:   "/admin/all_tellers",
		RemovePath: "/admin/remove_teller",
		RemoveKey:  "userId",
		UpdatePath: "/admin/update_teller",
		ID:         func(t models.Teller) int64 { return t.UserID },
		Columns: []views.Column[models.Teller]{
			{Header: "Teller ID", Value: func(t models.Teller) string { return int64s(t.UserID) }},
			{Header: "First Name", Value: func(t models.Teller) string { return t.FirstName }},
			{Header: "Last Name", Value: func(t models.Teller) string { return t.LastName }},
			{Header: "Email", Value: func(t models.Teller) string { return t.Email }},
			{Header: "Branch", Value: func(t models.Teller) string { return branchCell(a.Branches, t.BranchID, t.BranchName) }},
		},
		FormOf: func(t models.Teller) views.Form {
			return views.Form{
				"tellerId":   int64s(t.UserID),
				"firstName":  t.FirstName,
				"lastName":   t.LastName,
				"email":      t.Email,
				"branchName": t.BranchName,
				"branchId":   offered(a.EditTellerBranch, t.BranchID),
			}
		},
		IDField: "tellerId",
		Fields: []views.Field{
			{Name: "tellerId", Label: "Teller ID", Kind: views.KindInt, Required: true},
			{Name: "firstName", Label: "First name"},
			{Name: "lastName", Label: "Last name"},
			{Name: "email", Label: "Email"},
			{Name: "branchName", Label: "Branch name"},
			{Name: "branchId", Label: "Branch", Kind: views.KindInt, Select: a.EditTellerBranch},
		},
		LoadingMessage: "Loading tellers...",
		EmptyMessage:   "No tellers found.",
		LoadFallback:   "Unable to load tellers.",
		RemoveSuccess:  "Teller deleted successfully!",
		RemoveFallback: "Failed to delete teller.",
		UpdateSuccess:  "Teller updated successfully!",
		UpdateFallback: "Failed to update teller.",
		UpdateDelay:    a.delays.Update,
	}
}

func (a *Admin) branchSchema() views.Schema[models.Branch] {
	return views.Schema[models.Branch]{
		Entity:     "branch",
		Area:       AdminBranches,
		ListPage:   AdminBranches,
		EditPage:   AdminEditBranch,
		ListPath:   "/admin/all_branches",
		RemovePath: "/admin/remove_branch",
		RemoveKey:  "branchId",
		UpdatePath: "/admin/update_branch",
		ID:         branchID,
		Columns: []views.Column[models.Branch]{
			{Header: "Branch ID", Value: func(b models.Branch) string { return int64s(b.BranchID) }},
			{Header: "Branch Name", Value: func(b models.Branch) string { return b.BranchName }},
			{Header: "Address", Value: models.Branch.FullAddress},
			{Header: "Postal Code", Value: func(b models.Branch) string { return b.PostalCode }},
			{Header: "Phone", Value: func(b models.Branch) string { return b.PhoneNumber }},
		},
		AfterLoad: func(_ context.Context, items []models.Branch) { a.Branches.Replace(items) },
		FormOf: func(b models.Branch) views.Form {
			return views.Form{
				"branchId":    int64s(b.BranchID),
				"branchName":  b.BranchName,
				"address":     b.Address,
				"city":        b.City,
				"province":    b.Province,
				"postalCode":  b.PostalCode,
				"phoneNumber": b.PhoneNumber,
			}
		},
		IDField: "branchId",
		Fields: []views.Field{
			{Name: "branchId", Label: "Branch ID", Kind: views.KindInt, Required: true},
			{Name: "branchName", Label: "Branch name", Required: true},
			{Name: "address", Label: "Address"},
			{Name: "city", Label: "City"},
			{Name: "province", Label: "Province"},
			{Name: "postalCode", Label: "Postal code"},
			{Name: "phoneNumber", Label: "Phone"},
		},
		LoadingMessage: "Loading branches...",
		EmptyMessage:   "No branches found.",
		LoadFallback:   "Unable to load branches.",
		RemoveSuccess:  "Branch deleted successfully!",
		RemoveFallback: "Failed to delete branch.",
		UpdateSuccess:  "Branch updated successfully!",
		UpdateFallback: "Failed to update branch.",
		UpdateDelay:    a.delays.Update,
	}
}

func (a *Admin) transactionSchema() views.Schema[models.Transaction] {
	return views.Schema[models.Transaction]{
		Entity:   "transaction",
		Area:     AdminTransactions,
		ListPage: AdminTransactions,
		ListPath: "/admin/all_transactions",
		ID:       func(t models.Transaction) int64 { return t.TransactionID },
		Sort:     models.SortNewestFirst,
		Columns: []views.Column[models.Transaction]{
			{Header: "Transaction ID", Value: func(t models.Transaction) string { return int64s(t.TransactionID) }},
			{Header: "Type", Value: func(t models.Transaction) string { return t.Type }},
			{Header: "From Account", Value: func(t models.Transaction) string { return optInt(t.FromAccountID) }},
			{Header: "To Account", Value: func(t models.Transaction) string { return optInt(t.ToAccountID) }},
			{Header: "Amount", Value: func(t models.Transaction) string { return models.Money(t.Amount) }},
			{Header: "Processed By", Value: models.ProcessedBy},
			{Header: "Date & Time", Value: func(t models.Transaction) string { return models.Timestamp(t.Timestamp) }},
			{Header: "Description", Value: func(t models.Transaction) string { return t.Description }},
		},
		LoadingMessage: "Loading transactions...",
		EmptyMessage:   "No transactions found.",
		LoadFallback:   "Unable to load transactions.",
	}
}

func (a *Admin) createTellerAction() views.Action {
	return views.Action{
		Name: AdminCreateTeller,
		Path: "/admin/create_teller",
		Fields: []views.Field{
			{Name: "firstName", Label: "First name", Required: true},
			{Name: "lastName", Label: "Last name", Required: true},
			{Name: "email", Label: "Email", Required: true},
			{Name: "password", Label: "Password", Kind: views.KindSecret, Required: true},
			{Name: "branchId", Label: "Branch", Kind: views.KindInt, Required: true, Select: a.NewTellerBranch},
		},
		Extra: func(_ context.Context, form views.Form) (map[string]any, error) {
			id, _ := strconv.ParseInt(form.Get("branchId"), 10, 64)
			br, ok := a.Branches.Find(id)
			if !ok {
				return nil, nil
			}
			return map[string]any{"branchName": br.BranchName}, nil
		},
		Processing:   "Creating teller...",
		Success:      views.CreatedWithID("Teller created successfully", "userId"),
		Fallback:     "Failed to create teller.",
		ClearAll:     true,
		Refresh:      []func(context.Context){func(ctx context.Context) { _ = a.Tellers.Reload(ctx) }},
		RefreshDelay: a.delays.Create,
	}
}

func (a *Admin) createBranchAction() views.Action {
	return views.Action{
		Name: AdminCreateBranch,
		Path: "/admin/create_branch",
		Fields: []views.Field{
			{Name: "branchName", Label: "Branch name", Required: true},
			{Name: "address", Label: "Address", OmitEmpty: true},
			{Name: "city", Label: "City", OmitEmpty: true},
			{Name: "province", Label: "Province", OmitEmpty: true},
			{Name: "postalCode", Label: "Postal code", OmitEmpty: true},
			{Name: "phoneNumber", Label: "Phone", OmitEmpty: true},
		},
		Processing:   "Creating branch...",
		Success:      views.CreatedWithID("Branch created successfully", "branchId"),
		Fallback:     "Failed to create branch.",
		ClearAll:     true,
		Refresh:      []func(context.Context){func(ctx context.Context) { _ = a.BranchList.Reload(ctx) }},
		RefreshDelay: a.delays.Create,
	}
}
