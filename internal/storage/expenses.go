package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"github.com/vyay-app/vyay/internal/common"
	"github.com/vyay-app/vyay/internal/model"
	"github.com/vyay-app/vyay/internal/service"
)

const expenseColumns = `id, details, amount, cat_id, date, list, created_at`

func scanExpense(row interface{ Scan(...any) error }) (*model.Expense, error) {
	var expense model.Expense
	var amount string
	var catID sql.NullString
	if err := row.Scan(&expense.ID, &expense.Details, &amount, &catID, &expense.Date, &expense.List, &expense.CreatedAt); err != nil {
		return nil, err
	}

	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q for expense %s: %w", amount, expense.ID, err)
	}
	expense.Amount = parsed
	expense.CatID = catID.String
	return &expense, nil
}

// buildExpenseQuery translates an ExpenseFilter into a WHERE clause. The
// "All Expenses" list bypasses the list filter; a date filters by calendar
// day in the local timezone.
func buildExpenseQuery(filter service.ExpenseFilter) (string, []any) {
	query := `SELECT ` + expenseColumns + ` FROM expenses`
	var conditions []string
	var args []any

	if filter.List != "" && filter.List != model.AllExpensesList {
		conditions = append(conditions, `list = ?`)
		args = append(args, filter.List)
	}
	if filter.OnDate != nil {
		start := model.StartOfDay(*filter.OnDate)
		end := start.AddDate(0, 0, 1)
		conditions = append(conditions, `date >= ? AND date < ?`)
		args = append(args, start, end)
	}
	if filter.Details != "" {
		conditions = append(conditions, `details LIKE '%' || ? || '%' COLLATE NOCASE`)
		args = append(args, filter.Details)
	}

	for i, cond := range conditions {
		if i == 0 {
			query += ` WHERE ` + cond
		} else {
			query += ` AND ` + cond
		}
	}

	// Most recent first; creation order then id break same-date ties so
	// listings are deterministic.
	query += ` ORDER BY date DESC, created_at DESC, id`
	return query, args
}

// GetExpenses returns expenses matching the filter, most recent first.
func (s *SQLiteStorage) GetExpenses(ctx context.Context, filter service.ExpenseFilter) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query, args := buildExpenseQuery(filter)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []model.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, *expense)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses: %w", err)
	}

	slog.Debug("retrieved expenses", "count", len(expenses), "list", filter.List)
	return expenses, nil
}

// GetExpenseByID returns a single expense, or nil when it does not exist.
func (s *SQLiteStorage) GetExpenseByID(ctx context.Context, id string) (*model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = ?`
	expense, err := scanExpense(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query expense: %w", err)
	}

	return expense, nil
}

// CreateExpense persists a new expense.
func (s *SQLiteStorage) CreateExpense(ctx context.Context, expense *model.Expense) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateExpense(expense); err != nil {
		return err
	}

	insertQuery := `
		INSERT INTO expenses (id, details, amount, cat_id, date, list, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	catID := sql.NullString{String: expense.CatID, Valid: expense.CatID != ""}
	if _, err := s.db.ExecContext(ctx, insertQuery,
		expense.ID,
		expense.Details,
		expense.Amount.String(),
		catID,
		expense.Date,
		expense.List,
		expense.CreatedAt,
	); err != nil {
		return fmt.Errorf("%w: failed to create expense: %v", common.ErrPersistence, err)
	}

	slog.Info("created expense",
		"id", expense.ID,
		"details", expense.Details,
		"amount", expense.Amount.String(),
		"list", expense.List)
	return nil
}

// UpdateExpense rewrites every mutable field of an existing expense.
func (s *SQLiteStorage) UpdateExpense(ctx context.Context, expense *model.Expense) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateExpense(expense); err != nil {
		return err
	}

	updateQuery := `
		UPDATE expenses
		SET details = ?, amount = ?, cat_id = ?, date = ?, list = ?
		WHERE id = ?`

	catID := sql.NullString{String: expense.CatID, Valid: expense.CatID != ""}
	result, err := s.db.ExecContext(ctx, updateQuery,
		expense.Details,
		expense.Amount.String(),
		catID,
		expense.Date,
		expense.List,
		expense.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: failed to update expense: %v", common.ErrPersistence, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: expense %s", common.ErrNotFound, expense.ID)
	}

	return nil
}

// DeleteExpense removes a single expense.
func (s *SQLiteStorage) DeleteExpense(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%w: failed to delete expense: %v", common.ErrPersistence, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: expense %s", common.ErrNotFound, id)
	}

	return nil
}

// PruneOrphanedExpenses deletes expenses that lost their list value and
// reports how many were removed.
func (s *SQLiteStorage) PruneOrphanedExpenses(ctx context.Context) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE list IS NULL OR list = ''`)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to prune expenses: %v", common.ErrPersistence, err)
	}

	pruned, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}

	if pruned > 0 {
		slog.Info("pruned orphaned expenses", "count", pruned)
	}
	return pruned, nil
}
