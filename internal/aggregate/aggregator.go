// Package aggregate computes per-list and per-date expense totals.
package aggregate

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vyay-app/vyay/internal/service"
)

// Aggregator sums expense amounts straight from live records. The totals
// cached on list rows are never trusted; they exist only so list overviews
// can render without a full recompute.
type Aggregator struct {
	store service.Storage
}

// NewAggregator creates an aggregator over the given store.
func NewAggregator(store service.Storage) *Aggregator {
	return &Aggregator{store: store}
}

// TotalForList sums the amounts of every expense in listName, optionally
// restricted to the calendar day containing onDate. The "All Expenses" list
// sums every expense regardless of list membership. An empty result set
// yields zero, not an error.
func (a *Aggregator) TotalForList(ctx context.Context, listName string, onDate *time.Time) (decimal.Decimal, error) {
	filter := service.ExpenseFilter{List: listName, OnDate: onDate}

	expenses, err := a.store.GetExpenses(ctx, filter)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to fetch expenses for total: %w", err)
	}

	total := decimal.Zero
	for _, expense := range expenses {
		total = total.Add(expense.Amount)
	}
	return total, nil
}

// RefreshListTotal recomputes a list's overall total and writes it back into
// the list row as a display cache.
func (a *Aggregator) RefreshListTotal(ctx context.Context, listName string) (decimal.Decimal, error) {
	total, err := a.TotalForList(ctx, listName, nil)
	if err != nil {
		return decimal.Zero, err
	}

	if err := a.store.UpdateListTotal(ctx, listName, total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// RefreshAllListTotals recomputes the cached total of every list, including
// the "All Expenses" aggregate.
func (a *Aggregator) RefreshAllListTotals(ctx context.Context) error {
	lists, err := a.store.GetLists(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch lists: %w", err)
	}

	for _, list := range lists {
		if _, err := a.RefreshListTotal(ctx, list.Name); err != nil {
			return fmt.Errorf("failed to refresh total for list %q: %w", list.Name, err)
		}
	}
	return nil
}
