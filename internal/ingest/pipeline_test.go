package ingest

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vyay-app/vyay/internal/common"
	"github.com/vyay-app/vyay/internal/llm"
	"github.com/vyay-app/vyay/internal/model"
	"github.com/vyay-app/vyay/internal/service"
	"github.com/vyay-app/vyay/internal/storage"
)

// stubClient is a canned llm.Client for pipeline tests.
type stubClient struct {
	err    error
	parsed llm.ParsedExpense
	calls  int
}

func (c *stubClient) ExtractExpense(_ context.Context, _ string) (llm.ParsedExpense, error) {
	c.calls++
	if c.err != nil {
		return llm.ParsedExpense{}, c.err
	}
	return c.parsed, nil
}

func newTestStore(t *testing.T) *storage.SQLiteStorage {
	t.Helper()
	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, store.EnsureDefaultLists(ctx))
	return store
}

func countExpenses(t *testing.T, store service.Storage) int {
	t.Helper()
	expenses, err := store.GetExpenses(context.Background(), service.ExpenseFilter{List: model.AllExpensesList})
	require.NoError(t, err)
	return len(expenses)
}

func TestPipeline_Ingest(t *testing.T) {
	day := model.StartOfDay(time.Now())

	t.Run("successful ingestion", func(t *testing.T) {
		store := newTestStore(t)
		client := &stubClient{parsed: llm.ParsedExpense{
			Category: "food",
			Item:     "pizza",
			Cost:     decimal.RequireFromString("12.5"),
		}}

		pipeline := NewPipeline(store, client, nil)
		expense, err := pipeline.Ingest(context.Background(), "pizza 12.50", "Groceries", day)
		require.NoError(t, err)

		assert.Equal(t, "pizza", expense.Details)
		assert.Equal(t, "12.5", expense.Amount.String())
		assert.Equal(t, "Groceries", expense.List)
		assert.True(t, expense.Date.Equal(day))
		assert.NotEmpty(t, expense.ID)

		// The extracted lowercase category lands capitalized.
		category, err := store.GetCategoryByID(context.Background(), expense.CatID)
		require.NoError(t, err)
		require.NotNil(t, category)
		assert.Equal(t, "Food", category.Name)

		// And the record is actually persisted.
		stored, err := store.GetExpenseByID(context.Background(), expense.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
	})

	t.Run("reuses existing category regardless of case", func(t *testing.T) {
		store := newTestStore(t)
		existing, err := store.CreateCategory(context.Background(), "Food")
		require.NoError(t, err)

		client := &stubClient{parsed: llm.ParsedExpense{
			Category: "food",
			Item:     "pizza",
			Cost:     decimal.RequireFromString("12.5"),
		}}

		pipeline := NewPipeline(store, client, nil)
		expense, err := pipeline.Ingest(context.Background(), "pizza 12.50", "Groceries", day)
		require.NoError(t, err)
		assert.Equal(t, existing.ID, expense.CatID)

		categories, err := store.GetCategories(context.Background())
		require.NoError(t, err)
		assert.Len(t, categories, 1)
	})

	t.Run("empty input short-circuits before the model call", func(t *testing.T) {
		store := newTestStore(t)
		client := &stubClient{}

		pipeline := NewPipeline(store, client, nil)
		for _, input := range []string{"", "   ", "\t\n"} {
			_, err := pipeline.Ingest(context.Background(), input, "Groceries", day)
			require.Error(t, err)
			assert.Equal(t, "Please enter expense details.", common.UserMessage(err))
			assert.True(t, errors.Is(err, common.ErrInput), "expected input error, got %v", err)
		}
		assert.Zero(t, client.calls, "model must not be called for empty input")
	})

	t.Run("missing list is an input failure", func(t *testing.T) {
		store := newTestStore(t)
		client := &stubClient{}

		pipeline := NewPipeline(store, client, nil)
		_, err := pipeline.Ingest(context.Background(), "pizza 12.50", "", day)
		require.Error(t, err)
		assert.Equal(t, "Failed to add expense.", common.UserMessage(err))
		assert.True(t, errors.Is(err, common.ErrInput), "expected input error, got %v", err)
		assert.Zero(t, client.calls)
	})

	t.Run("upstream failure asks the user to rephrase", func(t *testing.T) {
		store := newTestStore(t)
		client := &stubClient{err: fmt.Errorf("%w: status 500", common.ErrUpstream)}

		pipeline := NewPipeline(store, client, nil)
		_, err := pipeline.Ingest(context.Background(), "pizza 12.50", "Groceries", day)
		require.Error(t, err)
		assert.Equal(t, "Please describe your expense correctly.", common.UserMessage(err))
		assert.True(t, errors.Is(err, common.ErrUpstream), "expected upstream error, got %v", err)
		assert.Zero(t, countExpenses(t, store), "failed ingestion must not persist anything")
	})

	t.Run("validation failure asks the user to rephrase", func(t *testing.T) {
		store := newTestStore(t)
		client := &stubClient{err: fmt.Errorf("%w: missing cost", common.ErrValidation)}

		pipeline := NewPipeline(store, client, nil)
		_, err := pipeline.Ingest(context.Background(), "pizza 12.50", "Groceries", day)
		require.Error(t, err)
		assert.Equal(t, "Please describe your expense correctly.", common.UserMessage(err))
		assert.True(t, errors.Is(err, common.ErrValidation), "expected validation error, got %v", err)
		assert.Zero(t, countExpenses(t, store))
	})

	t.Run("persistence failure surfaces the add-failed message", func(t *testing.T) {
		store := newTestStore(t)
		client := &stubClient{parsed: llm.ParsedExpense{
			Category: "food",
			Item:     "pizza",
			Cost:     decimal.RequireFromString("12.5"),
		}}

		// Closing the store makes the final insert fail.
		require.NoError(t, store.Close())

		pipeline := NewPipeline(store, client, nil)
		_, err := pipeline.Ingest(context.Background(), "pizza 12.50", "Groceries", day)
		require.Error(t, err)
		assert.Equal(t, "Failed to add expense.", common.UserMessage(err))
	})

	t.Run("each ingestion gets a fresh id", func(t *testing.T) {
		store := newTestStore(t)
		client := &stubClient{parsed: llm.ParsedExpense{
			Category: "food",
			Item:     "pizza",
			Cost:     decimal.RequireFromString("12.5"),
		}}

		pipeline := NewPipeline(store, client, nil)
		first, err := pipeline.Ingest(context.Background(), "pizza 12.50", "Groceries", day)
		require.NoError(t, err)
		second, err := pipeline.Ingest(context.Background(), "pizza 12.50", "Groceries", day)
		require.NoError(t, err)

		assert.NotEqual(t, first.ID, second.ID)
		assert.Equal(t, 2, countExpenses(t, store))
	})
}
