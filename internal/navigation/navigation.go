// Package navigation switches the active page.
package navigation

import (
	"context"
	"errors"

	"github.com/startuphub/startuphub/internal/models"
	"github.com/startuphub/startuphub/internal/state"
)

var ErrUnknownPage = errors.New("unknown page")

var Pages = []string{
	state.PageHome,
	state.PageCatalog,
	state.PagePublish,
	state.PageInvestors,
	state.PageLearning,
	state.PageDashboard,
}

// Result is where navigation landed. LoginPrompt is set when a protected
// page was requested without a user and home was shown instead.
type Result struct {
	Page        string
	LoginPrompt bool
}

func Known(page string) bool {
	for _, p := range Pages {
		if p == page {
			return true
		}
	}
	return false
}

func protected(page string) bool {
	return page == state.PagePublish || page == state.PageDashboard
}

// Go applies navigation to st. It must run inside a store update.
func Go(st *state.State, page string) (Result, error) {
	if !Known(page) {
		return Result{}, ErrUnknownPage
	}
	res := Result{Page: page}
	if protected(page) && !st.SignedIn() {
		res = Result{Page: state.PageHome, LoginPrompt: true}
	}
	st.SetPage(res.Page)
	c := st.Catalog()
	c.Page = 1
	st.SetCatalog(c)
	return res, nil
}

type Service struct {
	store *state.Store
}

func NewService(s *state.Store) *Service {
	return &Service{store: s}
}

func (s *Service) Navigate(ctx context.Context, page string) (Result, error) {
	var res Result
	err := s.store.Update(ctx, func(st *state.State) (state.Change, error) {
		var err error
		res, err = Go(st, page)
		return state.Change{Kind: state.ChangeNavigate}, err
	})
	return res, err
}

var titles = map[string]map[string]string{
	state.PageHome:      {models.LangRU: "Главная", models.LangKZ: "Басты бет", models.LangEN: "Home"},
	state.PageCatalog:   {models.LangRU: "Каталог стартапов", models.LangKZ: "Стартаптар каталогы", models.LangEN: "Startup Catalog"},
	state.PagePublish:   {models.LangRU: "Опубликовать стартап", models.LangKZ: "Стартап жариялау", models.LangEN: "Publish Startup"},
	state.PageInvestors: {models.LangRU: "Инвесторам", models.LangKZ: "Инвесторларға", models.LangEN: "For Investors"},
	state.PageLearning:  {models.LangRU: "Стартап-обучение", models.LangKZ: "Стартап-оқыту", models.LangEN: "Startup Learning"},
	state.PageDashboard: {models.LangRU: "Личный кабинет", models.LangKZ: "Жеке кабинет", models.LangEN: "Personal Account"},
}

// Title is the localized page heading, falling back to Russian.
func Title(page, lang string) string {
	t, ok := titles[page]
	if !ok {
		return page
	}
	if v, ok := t[lang]; ok {
		return v
	}
	return t[models.LangRU]
}

// SearchVisible reports whether the header search box is shown on page.
func SearchVisible(page string) bool {
	switch page {
	case state.PagePublish, state.PageDashboard, state.PageLearning:
		return false
	}
	return true
}
