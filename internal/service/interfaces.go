// Package service defines the interfaces for all application services.
//
// Components receive a Storage handle through their constructors rather than
// reaching for process-wide singletons, so tests can substitute doubles.
package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vyay-app/vyay/internal/model"
)

// ExpenseFilter defines filtering options for expense queries.
// Zero values mean "no filter" for the corresponding field.
type ExpenseFilter struct {
	// OnDate restricts results to the calendar day containing the given
	// instant, in the local timezone.
	OnDate *time.Time

	// List restricts results to a single list by name. The distinguished
	// "All Expenses" list bypasses this filter entirely.
	List string

	// Details restricts results to expenses whose details contain the
	// given substring, case-insensitively.
	Details string
}

// Storage defines the contract for the persistence layer.
//
// All mutating operations commit durably before returning nil; on failure the
// store is left in its pre-operation state and an error wrapping
// common.ErrPersistence is returned.
type Storage interface {
	// Category operations
	CreateCategory(ctx context.Context, name string) (*model.Category, error)
	GetCategories(ctx context.Context) ([]model.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*model.Category, error)
	GetCategoryByID(ctx context.Context, id string) (*model.Category, error)
	SearchCategories(ctx context.Context, name string) ([]model.Category, error)
	RenameCategory(ctx context.Context, id, newName string) error
	DeleteCategory(ctx context.Context, id string) error

	// List operations
	CreateList(ctx context.Context, name string) (*model.List, error)
	GetLists(ctx context.Context) ([]model.List, error)
	GetListByName(ctx context.Context, name string) (*model.List, error)
	SearchLists(ctx context.Context, name string) ([]model.List, error)
	// DeleteList removes a list and all expenses belonging to it in a
	// single transaction. Deleting "All Expenses" is rejected.
	DeleteList(ctx context.Context, name string) error
	UpdateListTotal(ctx context.Context, name string, total decimal.Decimal) error
	// EnsureDefaultLists seeds the protected "All Expenses" list and the
	// starter lists on first run.
	EnsureDefaultLists(ctx context.Context) error

	// Expense operations
	CreateExpense(ctx context.Context, expense *model.Expense) error
	GetExpenses(ctx context.Context, filter ExpenseFilter) ([]model.Expense, error)
	GetExpenseByID(ctx context.Context, id string) (*model.Expense, error)
	UpdateExpense(ctx context.Context, expense *model.Expense) error
	DeleteExpense(ctx context.Context, id string) error
	PruneOrphanedExpenses(ctx context.Context) (int64, error)

	// Preference operations (small key/value settings, e.g. the active
	// list name and the currency symbol override)
	GetPreference(ctx context.Context, key string) (string, error)
	SetPreference(ctx context.Context, key, value string) error

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}
