// Package catalog filters, searches and paginates the published startups.
// Every view is recomputed from the canonical collection on each call.
package catalog

import (
	"context"
	"strings"

	"github.com/startuphub/startuphub/internal/models"
	"github.com/startuphub/startuphub/internal/state"
)

const (
	PageSize       = 12
	MinQueryLength = 2
)

// Result is one page of the filtered catalog.
type Result struct {
	Items      []*models.Startup
	Page       int
	TotalPages int
	Total      int
}

// Matches reports whether s passes the cursor's criteria. Pins are ignored.
func Matches(s *models.Startup, c state.Cursor) bool {
	if s.IsDraft {
		return false
	}
	if c.Query != "" {
		return matchesQuery(s, strings.ToLower(c.Query))
	}
	if c.Category != models.All && c.Category != "" && s.Category != c.Category {
		return false
	}
	if c.Stage != models.All && c.Stage != "" && s.Stage != c.Stage {
		return false
	}
	return true
}

func matchesQuery(s *models.Startup, q string) bool {
	for _, f := range []string{s.Name, s.Goal, s.Description, s.Category} {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// Filter returns the full filtered view: pinned startups first in pin
// order, then every other match in canonical order.
func Filter(st *state.State) []*models.Startup {
	return FilterBy(st, st.Catalog())
}

// FilterBy is Filter for an arbitrary cursor.
func FilterBy(st *state.State, c state.Cursor) []*models.Startup {
	out := make([]*models.Startup, 0, len(st.Startups()))
	pinned := make(map[int64]bool, len(c.Pinned))
	for _, id := range c.Pinned {
		if s, ok := st.Find(id); ok && !s.IsDraft && !pinned[id] {
			out = append(out, s)
			pinned[id] = true
		}
	}
	for _, s := range st.Startups() {
		if !pinned[s.ID] && Matches(s, c) {
			out = append(out, s)
		}
	}
	return out
}

func totalPages(n int) int {
	return (n + PageSize - 1) / PageSize
}

// Current returns the page the cursor points at. The page number is clamped
// into range when deletions shrank the list under it.
func Current(st *state.State) Result {
	return PageOf(st, st.Catalog())
}

// PageOf resolves the page c points at without touching the stored cursor.
func PageOf(st *state.State, c state.Cursor) Result {
	all := FilterBy(st, c)
	pages := totalPages(len(all))
	page := c.Page
	if page > pages {
		page = pages
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * PageSize
	end := min(start+PageSize, len(all))
	var items []*models.Startup
	if start < end {
		items = all[start:end]
	}
	return Result{Items: items, Page: page, TotalPages: pages, Total: len(all)}
}

// Service applies cursor changes through the state store.
type Service struct {
	store *state.Store
}

func NewService(s *state.Store) *Service {
	return &Service{store: s}
}

func (s *Service) update(ctx context.Context, fn func(c *state.Cursor) bool) (bool, error) {
	changed := false
	err := s.store.Update(ctx, func(st *state.State) (state.Change, error) {
		c := st.Catalog()
		changed = fn(&c)
		st.SetCatalog(c)
		return state.Change{Kind: state.ChangeCatalog}, nil
	})
	return changed, err
}

// ApplyFilter sets both axes, clears the search query and pins, and goes
// back to page 1. Unknown values fall back to the wildcard.
func (s *Service) ApplyFilter(ctx context.Context, category, stage string) error {
	if !models.ValidCategory(category) {
		category = models.All
	}
	if !models.ValidStage(stage) {
		stage = models.All
	}
	_, err := s.update(ctx, func(c *state.Cursor) bool {
		*c = state.Cursor{Category: category, Stage: stage, Page: 1}
		return true
	})
	return err
}

// Search matches the query against name, goal, description and category.
// Queries shorter than two characters reset to the full list.
func (s *Service) Search(ctx context.Context, query string) error {
	q := strings.TrimSpace(query)
	if len([]rune(q)) < MinQueryLength {
		q = ""
	}
	_, err := s.update(ctx, func(c *state.Cursor) bool {
		*c = state.NewCursor()
		c.Query = q
		return true
	})
	return err
}

func (s *Service) ResetFilters(ctx context.Context) error {
	_, err := s.update(ctx, func(c *state.Cursor) bool {
		*c = state.NewCursor()
		return true
	})
	return err
}

// ChangePage moves by delta pages. It returns false and leaves the cursor
// alone when the target is outside [1, TotalPages].
func (s *Service) ChangePage(ctx context.Context, delta int) (bool, error) {
	var moved bool
	err := s.store.Update(ctx, func(st *state.State) (state.Change, error) {
		moved = moveTo(st, Current(st).Page+delta)
		return state.Change{Kind: state.ChangeCatalog}, nil
	})
	return moved, err
}

// GoToPage jumps to page n with the same bounds as ChangePage.
func (s *Service) GoToPage(ctx context.Context, n int) (bool, error) {
	var moved bool
	err := s.store.Update(ctx, func(st *state.State) (state.Change, error) {
		moved = moveTo(st, n)
		return state.Change{Kind: state.ChangeCatalog}, nil
	})
	return moved, err
}

func moveTo(st *state.State, n int) bool {
	pages := totalPages(len(Filter(st)))
	if n < 1 || n > pages {
		return false
	}
	c := st.Catalog()
	c.Page = n
	st.SetCatalog(c)
	return true
}
