package models

import (
	"strconv"
)

// Branch is reference data: read once per page session and used to fill
// selects and to resolve branch ids to names.
type Branch struct {
	BranchID    int64  `json:"branchId"`
	BranchName  string `json:"branchName"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Province    string `json:"province"`
	PostalCode  string `json:"postalCode"`
	PhoneNumber string `json:"phoneNumber"`
}

// Label is the select option text for the branch.
func (b Branch) Label() string {
	if b.BranchName != "" {
		return b.BranchName
	}
	return "Branch " + strconv.FormatInt(b.BranchID, 10)
}

// FullAddress joins address, city and province.
func (b Branch) FullAddress() string {
	return joinNonEmpty(", ", b.Address, b.City, b.Province)
}

type Customer struct {
	UserID      int64  `json:"userId"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
	DateOfBirth string `json:"dateOfBirth"`
	SIN         *int64 `json:"sin"`
	BranchID    *int64 `json:"branchId"`
}

type Teller struct {
	UserID     int64  `json:"userId"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	BranchName string `json:"branchName"`
	BranchID   *int64 `json:"branchId"`
}

type Account struct {
	AccountID   int64    `json:"accountId"`
	UserID      int64    `json:"userId"`
	AccountType string   `json:"accountType"`
	Balance     *float64 `json:"balance"`
}

// Label is the select option text for the account.
func (a Account) Label() string {
	kind := a.AccountType
	if kind == "" {
		kind = "Account"
	}
	return kind + " #" + strconv.FormatInt(a.AccountID, 10)
}

// Transaction types as sent by the backend.
const (
	TxDeposit  = "DEPOSIT"
	TxWithdraw = "WITHDRAW"
	TxTransfer = "TRANSFER"
)

type Transaction struct {
	TransactionID int64    `json:"transactionId"`
	FromAccountID *int64   `json:"fromAccountId"`
	ToAccountID   *int64   `json:"toAccountId"`
	Amount        *float64 `json:"amount"`
	Timestamp     string   `json:"timestamp"`
	Type          string   `json:"type"`
	Description   string   `json:"description"`
	TellerID      *int64   `json:"tellerId"`
	TellerName    string   `json:"tellerName"`

	// Set client-side when histories of several accounts are merged.
	AccountID   int64  `json:"-"`
	AccountType string `json:"-"`
}
