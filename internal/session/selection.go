// Package session tracks which list and date are active for the current
// session: the filter context expenses are displayed under and attributed to.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vyay-app/vyay/internal/model"
	"github.com/vyay-app/vyay/internal/service"
	"github.com/vyay-app/vyay/internal/storage"
)

// Selection holds the active list and date. The list choice is persisted
// across restarts; the date is session-only and starts at today's midnight
// so that two reads in the same session agree.
type Selection struct {
	store      service.Storage
	activeList *model.List
	activeDate time.Time
}

// NewSelection loads the persisted list choice, validates it, and anchors the
// active date to the start of today.
func NewSelection(ctx context.Context, store service.Storage) (*Selection, error) {
	s := &Selection{
		store:      store,
		activeDate: model.StartOfDay(time.Now()),
	}

	savedName, err := store.GetPreference(ctx, storage.PrefActiveList)
	if err != nil {
		return nil, fmt.Errorf("failed to load saved list: %w", err)
	}

	if savedName != "" {
		list, err := store.GetListByName(ctx, savedName)
		if err != nil {
			return nil, fmt.Errorf("failed to look up saved list: %w", err)
		}
		s.activeList = list
	}

	if s.activeList == nil {
		if err := s.fallback(ctx); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// ActiveList returns the currently active list, or nil in the empty state
// where no lists exist at all.
func (s *Selection) ActiveList() *model.List {
	return s.activeList
}

// SetActiveList switches the active list and persists the choice.
func (s *Selection) SetActiveList(ctx context.Context, list *model.List) error {
	if list == nil {
		return fmt.Errorf("list cannot be nil")
	}
	if err := s.store.SetPreference(ctx, storage.PrefActiveList, list.Name); err != nil {
		return fmt.Errorf("failed to persist active list: %w", err)
	}
	s.activeList = list
	return nil
}

// ActiveDate returns the currently active calendar date.
func (s *Selection) ActiveDate() time.Time {
	return s.activeDate
}

// SetActiveDate switches the active date, truncating to the start of day.
func (s *Selection) SetActiveDate(date time.Time) {
	s.activeDate = model.StartOfDay(date)
}

// Validate re-checks that the active list still exists; lists can be deleted
// by other flows between reads. A vanished list falls back to "All Expenses",
// then the first list in store order, then the empty state.
func (s *Selection) Validate(ctx context.Context) error {
	if s.activeList == nil {
		return s.fallback(ctx)
	}

	list, err := s.store.GetListByName(ctx, s.activeList.Name)
	if err != nil {
		return fmt.Errorf("failed to validate active list: %w", err)
	}
	if list != nil {
		s.activeList = list
		return nil
	}

	slog.Info("active list no longer exists, falling back", "name", s.activeList.Name)
	return s.fallback(ctx)
}

func (s *Selection) fallback(ctx context.Context) error {
	lists, err := s.store.GetLists(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch lists for fallback: %w", err)
	}

	s.activeList = nil
	for i := range lists {
		if lists[i].IsDefault() {
			s.activeList = &lists[i]
			break
		}
	}
	if s.activeList == nil && len(lists) > 0 {
		s.activeList = &lists[0]
	}

	if s.activeList != nil {
		if err := s.store.SetPreference(ctx, storage.PrefActiveList, s.activeList.Name); err != nil {
			return fmt.Errorf("failed to persist fallback list: %w", err)
		}
	}
	return nil
}
