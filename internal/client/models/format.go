package models

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/dmitrijs2005/mybank/internal/common"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

const displayTimeLayout = "Jan 2, 2006, 03:04 PM"

// Text returns s, or the placeholder when s is empty.
func Text(s string) string {
	if s == "" {
		return common.Placeholder
	}
	return s
}

// Int formats an optional integer.
func Int(v *int64) string {
	if v == nil {
		return common.Placeholder
	}
	return strconv.FormatInt(*v, 10)
}

// Money formats an optional amount as dollars with two decimals.
func Money(v *float64) string {
	if v == nil {
		return common.Placeholder
	}
	return fmt.Sprintf("$%.2f", *v)
}

// ParseTimestamp accepts the timestamp shapes the backend emits (with or
// without zone and fraction).
func ParseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Timestamp formats a backend timestamp for tables. Unparsable values are
// shown as received.
func Timestamp(s string) string {
	if s == "" {
		return common.Placeholder
	}
	t, ok := ParseTimestamp(s)
	if !ok {
		return s
	}
	return t.Format(displayTimeLayout)
}

// SignedAmount formats a transaction amount from the point of view of
// accountID: deposits and transfers into the account are positive, every
// other movement negative.
func SignedAmount(tx Transaction, accountID int64) string {
	if tx.Amount == nil || *tx.Amount == 0 {
		return common.Placeholder
	}
	sign := "-"
	if tx.Type == TxDeposit || (tx.Type == TxTransfer && tx.ToAccountID != nil && *tx.ToAccountID == accountID) {
		sign = "+"
	}
	return fmt.Sprintf("%s$%.2f", sign, math.Abs(*tx.Amount))
}

// ProcessedBy names whoever executed the transaction.
func ProcessedBy(tx Transaction) string {
	switch {
	case tx.TellerName != "" && tx.TellerID != nil:
		return fmt.Sprintf("%s (ID: %d)", tx.TellerName, *tx.TellerID)
	case tx.TellerName != "":
		return tx.TellerName
	case tx.TellerID != nil:
		return fmt.Sprintf("Teller #%d", *tx.TellerID)
	default:
		return "Customer"
	}
}

// SortNewestFirst orders transactions by timestamp, newest first. Entries
// without a parsable timestamp go last, keeping their relative order.
func SortNewestFirst(txs []Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		ti, _ := ParseTimestamp(txs[i].Timestamp)
		tj, _ := ParseTimestamp(txs[j].Timestamp)
		return ti.After(tj)
	})
}
