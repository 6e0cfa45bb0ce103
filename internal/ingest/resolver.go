package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vyay-app/vyay/internal/model"
	"github.com/vyay-app/vyay/internal/service"
)

// CategoryResolver finds an existing category by case-insensitive name match
// or creates one. Find-or-create is safe for the single active pipeline this
// application runs; parallel ingestion would need an atomic check-and-insert.
type CategoryResolver struct {
	store service.Storage
}

// NewCategoryResolver creates a resolver over the given store.
func NewCategoryResolver(store service.Storage) *CategoryResolver {
	return &CategoryResolver{store: store}
}

// Resolve returns the category matching nameCandidate, creating it with a
// capitalized display name when no match exists.
func (r *CategoryResolver) Resolve(ctx context.Context, nameCandidate string) (*model.Category, error) {
	existing, err := r.store.GetCategoryByName(ctx, nameCandidate)
	if err != nil {
		return nil, fmt.Errorf("failed to look up category: %w", err)
	}
	if existing != nil {
		slog.Debug("using existing category", "name", existing.Name, "id", existing.ID)
		return existing, nil
	}

	category, err := r.store.CreateCategory(ctx, model.CapitalizeName(nameCandidate))
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}
