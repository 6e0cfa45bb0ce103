// Package llm provides clients for the external language model used to turn
// free-text expense descriptions into structured records.
package llm

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Client defines the interface for LLM providers.
type Client interface {
	// ExtractExpense sends one free-text expense description to the model
	// and returns the structured extraction. The call is a single
	// request/response exchange; no retries are attempted.
	ExtractExpense(ctx context.Context, input string) (ParsedExpense, error)
}

// ParsedExpense is the validated result of an extraction call.
type ParsedExpense struct {
	Category string
	Item     string
	Cost     decimal.Decimal
}

// Config holds configuration for an LLM client.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	Timeout     time.Duration
	Temperature float64
	MaxTokens   int
}
