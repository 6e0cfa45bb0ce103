// Package ingest converts free-text expense descriptions into persisted
// expense records via the external language model.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vyay-app/vyay/internal/common"
	"github.com/vyay-app/vyay/internal/llm"
	"github.com/vyay-app/vyay/internal/model"
	"github.com/vyay-app/vyay/internal/service"
)

// User-facing messages for pipeline failures. Upstream and validation
// failures share one message on purpose: the user's remedy is the same
// either way, rephrase the expense.
const (
	msgEmptyInput    = "Please enter expense details."
	msgDescribeAgain = "Please describe your expense correctly."
	msgAddFailed     = "Failed to add expense."
)

// Pipeline runs the linear free-text → structured expense flow: validate
// input, call the model, validate the extraction, resolve the category and
// persist. There is no retrying and no backtracking; every failure leaves the
// expense table untouched.
type Pipeline struct {
	store    service.Storage
	client   llm.Client
	resolver *CategoryResolver
	logger   *slog.Logger
}

// NewPipeline creates an ingestion pipeline over the given store and client.
func NewPipeline(store service.Storage, client llm.Client, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		store:    store,
		client:   client,
		resolver: NewCategoryResolver(store),
		logger:   logger,
	}
}

// Ingest turns input into a persisted expense attributed to the given list
// and calendar date. The date is whatever the user has navigated to, not
// necessarily today.
func (p *Pipeline) Ingest(ctx context.Context, input, listName string, date time.Time) (*model.Expense, error) {
	if strings.TrimSpace(input) == "" {
		return nil, common.NewUserError(msgEmptyInput, common.ErrInput)
	}
	if listName == "" {
		return nil, common.NewUserError(msgAddFailed, fmt.Errorf("%w: no active list", common.ErrInput))
	}

	parsed, err := p.client.ExtractExpense(ctx, input)
	if err != nil {
		p.logger.Warn("expense extraction failed", "error", err)
		return nil, common.NewUserError(msgDescribeAgain, err)
	}

	category, err := p.resolver.Resolve(ctx, parsed.Category)
	if err != nil {
		p.logger.Error("category resolution failed", "category", parsed.Category, "error", err)
		return nil, common.NewUserError(msgAddFailed, err)
	}

	expense := &model.Expense{
		ID:        uuid.NewString(),
		Details:   parsed.Item,
		Amount:    parsed.Cost,
		CatID:     category.ID,
		Date:      date,
		List:      listName,
		CreatedAt: time.Now(),
	}

	if err := p.store.CreateExpense(ctx, expense); err != nil {
		p.logger.Error("failed to persist expense", "details", expense.Details, "error", err)
		return nil, common.NewUserError(msgAddFailed, err)
	}

	p.logger.Info("ingested expense",
		"details", expense.Details,
		"amount", expense.Amount.String(),
		"category", category.Name,
		"list", expense.List,
		"date", expense.Date.Format("2006-01-02"))

	return expense, nil
}
