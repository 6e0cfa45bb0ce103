package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vyay-app/vyay/internal/common"
)

// Preference keys used across the application.
const (
	PrefActiveList     = "active_list"
	PrefCurrencySymbol = "currency_symbol"
)

// GetPreference returns the stored value for key, or the empty string when
// the preference has never been set.
func (s *SQLiteStorage) GetPreference(ctx context.Context, key string) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}
	if err := validateString(key, "key"); err != nil {
		return "", err
	}

	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query preference: %w", err)
	}

	return value, nil
}

// SetPreference stores or replaces the value for key.
func (s *SQLiteStorage) SetPreference(ctx context.Context, key, value string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(key, "key"); err != nil {
		return err
	}

	query := `
		INSERT INTO preferences (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	if _, err := s.db.ExecContext(ctx, query, key, value, time.Now()); err != nil {
		return fmt.Errorf("%w: failed to set preference: %v", common.ErrPersistence, err)
	}

	return nil
}
