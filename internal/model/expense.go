package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a single recorded expense attributed to a calendar day and a list.
type Expense struct {
	Date      time.Time
	CreatedAt time.Time
	ID        string
	Details   string
	CatID     string // references Category.ID; empty for legacy records
	List      string // references List.Name; empty means orphaned
	Amount    decimal.Decimal
}

// Orphaned reports whether the expense lacks a list and is eligible for pruning.
func (e *Expense) Orphaned() bool {
	return e.List == ""
}

// Day returns the expense date truncated to the start of its calendar day
// in the local timezone. Time-of-day carries no meaning for expenses.
func (e *Expense) Day() time.Time {
	return StartOfDay(e.Date)
}

// StartOfDay truncates t to midnight in the local timezone.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
