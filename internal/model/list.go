package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AllExpensesList is the distinguished virtual list spanning every expense
// regardless of list membership. It always exists once the store has been
// initialized and cannot be deleted.
const AllExpensesList = "All Expenses"

// List is a user-defined named bucket for grouping expenses. The name is the
// key: expenses reference lists by name, not by a surrogate id.
type List struct {
	Created time.Time
	Name    string

	// Total is a display cache recomputed on demand from live expense data.
	// It may go stale between recomputations and is never authoritative.
	Total decimal.Decimal
}

// IsDefault reports whether the list is the protected "All Expenses" list.
func (l *List) IsDefault() bool {
	return l.Name == AllExpensesList
}
