// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction (expense or income).
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// Category is one label from the fixed, closed category set.
type Category string

// The fixed category set, in declaration order. Order matters: the keyword
// classifier returns the first matching category in this order.
const (
	CategoryFood          Category = "Food"
	CategoryUtilities     Category = "Utilities"
	CategoryTransport     Category = "Transport"
	CategoryEntertainment Category = "Entertainment"
	CategoryShopping      Category = "Shopping"
	CategoryHealth        Category = "Health"
	CategorySubscriptions Category = "Subscriptions"
	CategoryIncome        Category = "Income"
	CategoryOther         Category = "Other"
)

// Categories returns the fixed category set in declaration order.
func Categories() []Category {
	return []Category{
		CategoryFood,
		CategoryUtilities,
		CategoryTransport,
		CategoryEntertainment,
		CategoryShopping,
		CategoryHealth,
		CategorySubscriptions,
		CategoryIncome,
		CategoryOther,
	}
}

// IsValidCategory reports whether c belongs to the fixed category set.
func IsValidCategory(c Category) bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Transaction represents one financial event. The ID is assigned by whichever
// store creates the record: a millisecond-timestamp string for the local
// store, a store-generated UUID string for the remote store.
type Transaction struct {
	ID        string
	Title     string
	Amount    decimal.Decimal
	Type      TransactionType
	Category  Category
	Comment   string
	Date      string // original user-supplied calendar date (YYYY-MM-DD), may be empty
	CreatedAt time.Time
}

// TransactionDraft carries the caller-supplied fields of a transaction prior
// to id assignment and date resolution by a store.
type TransactionDraft struct {
	Title    string
	Amount   decimal.Decimal
	Type     TransactionType
	Category Category
	Comment  string
	Date     string // optional calendar date, YYYY-MM-DD
}

// ResolveCreatedAt derives the effective date-time of a transaction from a
// user-supplied calendar date, anchored at local noon so that time-zone
// conversion cannot shift the calendar day. An empty or unparseable date
// resolves to now.
func ResolveCreatedAt(date string, now time.Time) time.Time {
	if strings.TrimSpace(date) == "" {
		return now
	}
	parsed, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return now
	}
	return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 12, 0, 0, 0, time.Local)
}

// IsValidTransactionType reports whether t is expense or income.
func IsValidTransactionType(t TransactionType) bool {
	return t == TransactionTypeExpense || t == TransactionTypeIncome
}
