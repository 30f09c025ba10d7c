package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/mybank/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/mybank/internal/client/views"
	"github.com/dmitrijs2005/mybank/internal/common"
	"github.com/dmitrijs2005/mybank/internal/filex"
	"github.com/dmitrijs2005/mybank/internal/logging"
)

const (
	ApplicationsKey     = "applications"
	ApplicationFile     = "mybank-application.json"
	ApplicationReceived = "Your application has been received. Please visit a branch to finalize the account."
)

// ApplicationFields lists the registration form in prompt order.
var ApplicationFields = []views.Field{
	{Name: "accountType", Label: "Account type (CHEQUING/SAVINGS)"},
	{Name: "branchId", Label: "Branch ID"},
	{Name: "initialDeposit", Label: "Initial deposit", Kind: views.KindAmount},
	{Name: "firstName", Label: "First name"},
	{Name: "lastName", Label: "Last name"},
	{Name: "dateOfBirth", Label: "Date of birth (YYYY-MM-DD)", Kind: views.KindDate},
	{Name: "sin", Label: "SIN", Kind: views.KindDigits},
	{Name: "email", Label: "Email"},
	{Name: "phoneNumber", Label: "Phone"},
	{Name: "street", Label: "Street"},
	{Name: "city", Label: "City"},
	{Name: "province", Label: "Province"},
	{Name: "postal", Label: "Postal code"},
	{Name: "password", Label: "Password", Kind: views.KindSecret},
	{Name: "confirm", Label: "Confirm password", Kind: views.KindSecret},
	{Name: "consent", Label: "I accept the terms (y/n)"},
}

var requiredApplicationFields = []struct{ field, msg string }{
	{"accountType", "Select account type."},
	{"branchId", "Select a branch."},
	{"firstName", "First name required."},
	{"lastName", "Last name required."},
	{"dateOfBirth", "Date of birth required."},
	{"phoneNumber", "Phone required."},
	{"street", "Street required."},
	{"city", "City required."},
	{"province", "Province required."},
	{"postal", "Postal code required."},
}

// Application is a registration draft. The password never leaves the
// form: drafts are stored and exported without it.
type Application struct {
	AccountType    string    `json:"accountType"`
	BranchID       string    `json:"branchId"`
	InitialDeposit string    `json:"initialDeposit"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	DateOfBirth    string    `json:"dateOfBirth"`
	SIN            string    `json:"sin"`
	Email          string    `json:"email"`
	PhoneNumber    string    `json:"phoneNumber"`
	Address        string    `json:"address"`
	Street         string    `json:"street"`
	City           string    `json:"city"`
	Province       string    `json:"province"`
	Postal         string    `json:"postal"`
	Consent        bool      `json:"consent"`
	CreatedAt      time.Time `json:"createdAt,omitzero"`
}

// ApplicationFromForm normalises the raw registration form.
func ApplicationFromForm(form views.Form) Application {
	a := Application{
		AccountType:    form.Get("accountType"),
		BranchID:       form.Get("branchId"),
		InitialDeposit: form.Get("initialDeposit"),
		FirstName:      form.Get("firstName"),
		LastName:       form.Get("lastName"),
		DateOfBirth:    form.Get("dateOfBirth"),
		SIN:            views.SanitizeDigits(form.Get("sin")),
		Email:          form.Get("email"),
		PhoneNumber:    form.Get("phoneNumber"),
		Street:         form.Get("street"),
		City:           form.Get("city"),
		Province:       form.Get("province"),
		Postal:         form.Get("postal"),
		Consent:        views.Checked("consent", "")(form) == nil,
	}

	var parts []string
	for _, p := range []string{a.Street, a.City, a.Province, a.Postal} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	a.Address = strings.Join(parts, ", ")
	return a
}

// Summary is the preview shown before submission.
func (a Application) Summary() string {
	deposit := a.InitialDeposit
	if deposit == "" {
		deposit = common.Placeholder
	}
	return strings.Join([]string{
		fmt.Sprintf("Account: %s  |  Branch: %s  |  Initial Deposit: %s", a.AccountType, a.BranchID, deposit),
		fmt.Sprintf("Name: %s %s", a.FirstName, a.LastName),
		fmt.Sprintf("DOB: %s  |  SIN: %s", a.DateOfBirth, a.SIN),
		fmt.Sprintf("Email: %s  |  Phone: %s", a.Email, a.PhoneNumber),
		fmt.Sprintf("Address: %s", a.Address),
	}, "\n")
}

// ValidateApplication reports every problem of the form at once. The
// result matches views.ErrValidation and unwraps to the individual
// *views.ValidationError values.
func ValidateApplication(form views.Form, now time.Time) error {
	var errs []error
	for _, r := range requiredApplicationFields {
		if form.Get(r.field) == "" {
			errs = append(errs, &views.ValidationError{Field: r.field, Message: r.msg})
		}
	}

	clock := func() time.Time { return now }
	sanitized := form.Clone()
	sanitized["sin"] = views.SanitizeDigits(form.Get("sin"))

	rules := []views.Rule{
		views.SIN("sin"),
		views.Email("email"),
		views.StrongPassword("password"),
		views.Matches("password", "confirm", "Passwords do not match."),
		views.Checked("consent", "You must accept the terms."),
	}
	if form.Get("dateOfBirth") != "" {
		rules = append(rules, views.Adult("dateOfBirth", clock))
	}
	if form.Get("initialDeposit") != "" {
		rules = append(rules, func(f views.Form) error {
			_, err := views.Field{Name: "initialDeposit", Kind: views.KindAmount}.Convert(f.Get("initialDeposit"))
			return err
		})
	}
	for _, rule := range rules {
		if err := rule(sanitized); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RegistrationService keeps registration drafts locally. The backend has
// no self-registration endpoint; a teller opens the account in a branch.
type RegistrationService struct {
	store   metadata.Repository
	dataDir string
	log     logging.Logger
	now     func() time.Time
}

func NewRegistrationService(store metadata.Repository, dataDir string, log logging.Logger) *RegistrationService {
	return &RegistrationService{store: store, dataDir: dataDir, log: log, now: time.Now}
}

// Preview validates form and returns the summary of the draft.
func (s *RegistrationService) Preview(form views.Form) (string, error) {
	if err := ValidateApplication(form, s.now()); err != nil {
		return "", err
	}
	return ApplicationFromForm(form).Summary(), nil
}

// Submit validates form, appends the draft to the local applications list
// and exports it to the data directory. It returns the export path.
func (s *RegistrationService) Submit(ctx context.Context, form views.Form) (string, error) {
	if err := ValidateApplication(form, s.now()); err != nil {
		return "", err
	}

	app := ApplicationFromForm(form)
	app.CreatedAt = s.now().UTC()

	if err := appendRecord(ctx, s.store, ApplicationsKey, app); err != nil {
		return "", err
	}

	path, err := filex.WriteJSON(s.dataDir, ApplicationFile, app)
	if err != nil {
		return "", fmt.Errorf("export application: %w", err)
	}

	s.log.Info(ctx, "application recorded", "file", path)
	return path, nil
}

// Applications returns the stored drafts, oldest first.
func (s *RegistrationService) Applications(ctx context.Context) ([]Application, error) {
	return readRecords[Application](ctx, s.store, ApplicationsKey)
}
