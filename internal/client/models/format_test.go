package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrijs2005/mybank/internal/common"
)

func i64(v int64) *int64     { return &v }
func f64(v float64) *float64 { return &v }

func TestMoney(t *testing.T) {
	assert.Equal(t, common.Placeholder, Money(nil))
	assert.Equal(t, "$0.00", Money(f64(0)))
	assert.Equal(t, "$1250.50", Money(f64(1250.5)))
}

func TestTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", common.Placeholder},
		{"2025-03-04T09:05:00", "Mar 4, 2025, 09:05 AM"},
		{"2025-03-04T21:05:00.123456", "Mar 4, 2025, 09:05 PM"},
		{"2025-03-04T21:05:00Z", "Mar 4, 2025, 09:05 PM"},
		{"yesterday", "yesterday"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Timestamp(tt.in), tt.in)
	}
}

func TestSignedAmount(t *testing.T) {
	tests := []struct {
		name    string
		tx      Transaction
		account int64
		want    string
	}{
		{name: "deposit", tx: Transaction{Type: TxDeposit, Amount: f64(50)}, account: 1, want: "+$50.00"},
		{name: "withdraw", tx: Transaction{Type: TxWithdraw, Amount: f64(20)}, account: 1, want: "-$20.00"},
		{name: "incoming transfer", tx: Transaction{Type: TxTransfer, Amount: f64(5.5), FromAccountID: i64(2), ToAccountID: i64(1)}, account: 1, want: "+$5.50"},
		{name: "outgoing transfer", tx: Transaction{Type: TxTransfer, Amount: f64(5.5), FromAccountID: i64(1), ToAccountID: i64(2)}, account: 1, want: "-$5.50"},
		{name: "negative stored amount", tx: Transaction{Type: TxWithdraw, Amount: f64(-7)}, account: 1, want: "-$7.00"},
		{name: "missing amount", tx: Transaction{Type: TxDeposit}, account: 1, want: common.Placeholder},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SignedAmount(tt.tx, tt.account))
		})
	}
}

func TestProcessedBy(t *testing.T) {
	assert.Equal(t, "Dana Fox (ID: 4)", ProcessedBy(Transaction{TellerName: "Dana Fox", TellerID: i64(4)}))
	assert.Equal(t, "Teller #4", ProcessedBy(Transaction{TellerID: i64(4)}))
	assert.Equal(t, "Customer", ProcessedBy(Transaction{}))
}

func TestSortNewestFirst(t *testing.T) {
	txs := []Transaction{
		{TransactionID: 1, Timestamp: "2025-01-01T10:00:00"},
		{TransactionID: 2, Timestamp: ""},
		{TransactionID: 3, Timestamp: "2025-02-01T10:00:00"},
		{TransactionID: 4, Timestamp: "2025-01-15T10:00:00"},
	}

	SortNewestFirst(txs)

	var ids []int64
	for _, tx := range txs {
		ids = append(ids, tx.TransactionID)
	}
	assert.Equal(t, []int64{3, 4, 1, 2}, ids)
}

func TestSessionDisplayName(t *testing.T) {
	var nilSession *Session
	assert.Equal(t, "Teller", nilSession.DisplayName(RoleTeller))
	assert.Equal(t, "ann@bank.test", (&Session{Email: "ann@bank.test"}).DisplayName(RoleAdmin))
	assert.Equal(t, "Ann Lee", (&Session{FirstName: "Ann", LastName: " Lee ", Email: "x"}).DisplayName(RoleAdmin))
	assert.Equal(t, "Administrator", (&Session{}).DisplayName(RoleAdmin))
}

func TestRoleStorageKeys(t *testing.T) {
	assert.Equal(t, "adminSession", RoleAdmin.StorageKey())
	assert.Equal(t, "authUser", RoleCustomer.StorageKey())
	assert.Equal(t, "tellerSession", RoleTeller.StorageKey())
	assert.True(t, RoleTeller.Valid())
	assert.False(t, Role("manager").Valid())
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Downtown", Branch{BranchID: 1, BranchName: "Downtown"}.Label())
	assert.Equal(t, "Branch 7", Branch{BranchID: 7}.Label())
	assert.Equal(t, "12 Main St, Toronto, ON", Branch{Address: "12 Main St", City: "Toronto", Province: "ON"}.FullAddress())
	assert.Equal(t, "SAVINGS #3", Account{AccountID: 3, AccountType: "SAVINGS"}.Label())
	assert.Equal(t, "Account #3", Account{AccountID: 3}.Label())
}
