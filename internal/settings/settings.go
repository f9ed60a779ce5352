// Package settings changes the persisted display preferences.
package settings

import (
	"context"

	"github.com/startuphub/startuphub/internal/models"
	"github.com/startuphub/startuphub/internal/state"
)

type Service struct {
	store *state.Store
}

func NewService(s *state.Store) *Service {
	return &Service{store: s}
}

func (s *Service) update(ctx context.Context, fn func(*models.Settings) error) (models.Settings, error) {
	var out models.Settings
	err := s.store.Update(ctx, func(st *state.State) (state.Change, error) {
		set := st.Settings()
		if err := fn(&set); err != nil {
			return state.Change{}, err
		}
		st.SetSettings(set)
		out = set
		return state.Change{Kind: state.ChangeSettings, Persist: state.ScopeSettings}, nil
	})
	return out, err
}

func (s *Service) SetTheme(ctx context.Context, theme string) (models.Settings, error) {
	return s.update(ctx, func(set *models.Settings) error {
		if theme != models.ThemeDark && theme != models.ThemeLight {
			return &models.ValidationError{Fields: []string{"theme"}}
		}
		set.Theme = theme
		return nil
	})
}

// ToggleTheme switches between dark and light.
func (s *Service) ToggleTheme(ctx context.Context) (models.Settings, error) {
	return s.update(ctx, func(set *models.Settings) error {
		if set.Theme == models.ThemeDark {
			set.Theme = models.ThemeLight
		} else {
			set.Theme = models.ThemeDark
		}
		return nil
	})
}

func (s *Service) SetLanguage(ctx context.Context, lang string) (models.Settings, error) {
	return s.update(ctx, func(set *models.Settings) error {
		if !models.ValidLanguage(lang) {
			return &models.ValidationError{Fields: []string{"language"}}
		}
		set.Language = lang
		return nil
	})
}

func (s *Service) ToggleSidebar(ctx context.Context) (models.Settings, error) {
	return s.update(ctx, func(set *models.Settings) error {
		set.SidebarCollapsed = !set.SidebarCollapsed
		return nil
	})
}
