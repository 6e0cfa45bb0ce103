package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/viper"

	"github.com/vyay-app/vyay/internal/config"
	"github.com/vyay-app/vyay/internal/llm"
	"github.com/vyay-app/vyay/internal/service"
	"github.com/vyay-app/vyay/internal/storage"
)

// initStorage opens the store, runs migrations and guarantees the default
// lists exist.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/vyay/vyay.db"
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	if err := store.EnsureDefaultLists(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to ensure default lists: %w", err)
	}

	return store, nil
}

// newLLMClient builds the extraction client from configuration. The API key
// may come from config, a VYAY_* environment variable or the .env file.
func newLLMClient() (llm.Client, error) {
	provider := viper.GetString("llm.provider")
	if provider == "" {
		provider = "openai"
	}

	return llm.NewClient(llm.Config{
		Provider:    provider,
		APIKey:      viper.GetString("llm.api_key"),
		Model:       viper.GetString("llm.model"),
		Temperature: viper.GetFloat64("llm.temperature"),
		MaxTokens:   viper.GetInt("llm.max_tokens"),
		Timeout:     viper.GetDuration("llm.timeout"),
	})
}

// resolveListName canonicalizes a user-supplied list name. Expenses reference
// lists by exact name while lookups are case-insensitive, so a case-variant
// spelling must map to the stored name before anything is written or compared.
func resolveListName(ctx context.Context, store service.Storage, name string) (string, error) {
	list, err := store.GetListByName(ctx, name)
	if err != nil {
		return "", fmt.Errorf("failed to look up list: %w", err)
	}
	if list == nil {
		return "", fmt.Errorf("list %q does not exist", name)
	}
	return list.Name, nil
}

// currencySymbol returns the user's preferred display symbol, seeding it from
// the locale on first use.
func currencySymbol(ctx context.Context, store service.Storage) string {
	symbol, err := store.GetPreference(ctx, storage.PrefCurrencySymbol)
	if err == nil && symbol != "" {
		return symbol
	}

	symbol = config.DefaultCurrencySymbol()
	if err := store.SetPreference(ctx, storage.PrefCurrencySymbol, symbol); err != nil {
		slog.Debug("failed to persist currency symbol", "error", err)
	}
	return symbol
}

// parseDateFlag parses a --date value in YYYY-MM-DD form, defaulting to today.
func parseDateFlag(value string) (time.Time, error) {
	if value == "" {
		return time.Now(), nil
	}
	date, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return date, nil
}
