package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vyay-app/vyay/internal/common"
	"github.com/vyay-app/vyay/internal/model"
)

// Starter lists seeded the first time the store comes up with no lists at all.
var defaultLists = []string{"Groceries", "Work", "Travel", "Personal"}

func scanList(row interface{ Scan(...any) error }) (*model.List, error) {
	var list model.List
	var total string
	if err := row.Scan(&list.Name, &list.Created, &total); err != nil {
		return nil, err
	}

	parsed, err := decimal.NewFromString(total)
	if err != nil {
		return nil, fmt.Errorf("invalid cached total %q for list %q: %w", total, list.Name, err)
	}
	list.Total = parsed
	return &list, nil
}

// GetLists returns all lists, the default "All Expenses" list first, the rest
// in creation order.
func (s *SQLiteStorage) GetLists(ctx context.Context) ([]model.List, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT name, created, total
		FROM lists
		ORDER BY CASE WHEN name = ? THEN 0 ELSE 1 END, created, name`

	rows, err := s.db.QueryContext(ctx, query, model.AllExpensesList)
	if err != nil {
		return nil, fmt.Errorf("failed to query lists: %w", err)
	}
	defer rows.Close()

	var lists []model.List
	for rows.Next() {
		list, err := scanList(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan list: %w", err)
		}
		lists = append(lists, *list)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lists: %w", err)
	}

	return lists, nil
}

// GetListByName returns a list by case-insensitive exact name match, or nil
// when no list matches.
func (s *SQLiteStorage) GetListByName(ctx context.Context, name string) (*model.List, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	query := `
		SELECT name, created, total
		FROM lists
		WHERE name = ? COLLATE NOCASE`

	list, err := scanList(s.db.QueryRowContext(ctx, query, name))
	if err == sql.ErrNoRows {
		return nil, nil // List not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query list: %w", err)
	}

	return list, nil
}

// SearchLists returns lists whose name contains the given substring,
// case-insensitively.
func (s *SQLiteStorage) SearchLists(ctx context.Context, name string) ([]model.List, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	query := `
		SELECT name, created, total
		FROM lists
		WHERE name LIKE '%' || ? || '%' COLLATE NOCASE
		ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("failed to search lists: %w", err)
	}
	defer rows.Close()

	var lists []model.List
	for rows.Next() {
		list, err := scanList(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan list: %w", err)
		}
		lists = append(lists, *list)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lists: %w", err)
	}

	return lists, nil
}

// CreateList creates a new list with a zero total.
func (s *SQLiteStorage) CreateList(ctx context.Context, name string) (*model.List, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	existing, err := s.GetListByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing list: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("list %q already exists", existing.Name)
	}

	list := &model.List{
		Name:    name,
		Created: time.Now(),
		Total:   decimal.Zero,
	}

	insertQuery := `
		INSERT INTO lists (name, created, total)
		VALUES (?, ?, ?)`

	if _, err := s.db.ExecContext(ctx, insertQuery, list.Name, list.Created, list.Total.String()); err != nil {
		return nil, fmt.Errorf("%w: failed to create list: %v", common.ErrPersistence, err)
	}

	slog.Info("created new list", "name", name)
	return list, nil
}

// DeleteList removes a list together with every expense belonging to it, in a
// single transaction. The "All Expenses" list is protected and cannot be
// deleted.
func (s *SQLiteStorage) DeleteList(ctx context.Context, name string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(name, "name"); err != nil {
		return err
	}
	if name == model.AllExpensesList {
		return common.ErrProtectedList
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, `DELETE FROM lists WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("%w: failed to delete list: %v", common.ErrPersistence, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: list %q", common.ErrNotFound, name)
	}

	expResult, err := tx.ExecContext(ctx, `DELETE FROM expenses WHERE list = ?`, name)
	if err != nil {
		return fmt.Errorf("%w: failed to delete expenses for list: %v", common.ErrPersistence, err)
	}
	deleted, _ := expResult.RowsAffected()

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit list deletion: %v", common.ErrPersistence, err)
	}

	slog.Info("deleted list", "name", name, "expenses_removed", deleted)
	return nil
}

// UpdateListTotal writes a recomputed total back into the list row. The value
// is a display cache only; totals are always recomputed from expense data.
func (s *SQLiteStorage) UpdateListTotal(ctx context.Context, name string, total decimal.Decimal) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(name, "name"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `UPDATE lists SET total = ? WHERE name = ?`, total.String(), name)
	if err != nil {
		return fmt.Errorf("%w: failed to update list total: %v", common.ErrPersistence, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: list %q", common.ErrNotFound, name)
	}

	return nil
}

// EnsureDefaultLists guarantees the protected "All Expenses" list exists and
// seeds the starter lists the first time the store comes up empty.
func (s *SQLiteStorage) EnsureDefaultLists(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	lists, err := s.GetLists(ctx)
	if err != nil {
		return err
	}

	hasDefault := false
	for _, list := range lists {
		if list.IsDefault() {
			hasDefault = true
			break
		}
	}

	if !hasDefault {
		if _, err := s.CreateList(ctx, model.AllExpensesList); err != nil {
			return fmt.Errorf("failed to create default list: %w", err)
		}
	}

	if len(lists) == 0 {
		for _, name := range defaultLists {
			if _, err := s.CreateList(ctx, name); err != nil {
				return fmt.Errorf("failed to seed list %q: %w", name, err)
			}
		}
		slog.Info("seeded starter lists", "count", len(defaultLists))
	}

	return nil
}
