package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/startuphub/startuphub/internal/kv"
	"github.com/startuphub/startuphub/internal/models"
	"github.com/startuphub/startuphub/internal/render"
	"github.com/startuphub/startuphub/internal/state"
	"github.com/startuphub/startuphub/internal/tokens"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) (*gin.Engine, *state.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	mem := kv.NewMemoryStore()
	require.NoError(t, mem.Set(context.Background(), state.KeyFirstRun, "true"))
	s := state.NewStore(mem, state.WithClock(func() time.Time { return testNow }))
	s.Load(context.Background())

	r, err := render.New()
	require.NoError(t, err)
	conf, err := tokens.NewConfirmer("test-secret-0123456789abcdef", time.Minute)
	require.NoError(t, err)

	g := gin.New()
	RegisterRoutes(g, Deps{Store: s, Renderer: r, Confirmer: conf})
	return g, s
}

func seed(s *state.Store, list ...*models.Startup) {
	s.Read(func(st *state.State) {
		for i := len(list) - 1; i >= 0; i-- {
			st.InsertStartup(list[i])
		}
		st.SetCatalog(state.NewCursor())
	})
}

func get(g *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func post(g *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	g.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, g *gin.Engine) {
	t.Helper()
	w := post(g, "/auth/login", url.Values{"email": {"ann@example.com"}, "password": {"secret1"}})
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Вход выполнен успешно!")
}

func publishForm() url.Values {
	return url.Values{
		"name":            {"Acme"},
		"goal":            {"Ship rockets"},
		"description":     {"We ship **rockets**"},
		"category":        {"AI"},
		"stage":           {"mvp"},
		"contactEmail":    {"team@acme.io"},
		"telegramContact": {"@acme"},
		"investmentAsked": {"1000"},
	}
}

func TestHomeRendersPage(t *testing.T) {
	g, _ := newTestServer(t)
	w := get(g, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, htmlContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "<html")
}

func TestNavigate(t *testing.T) {
	g, s := newTestServer(t)

	w := get(g, "/pages/dashboard")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "auth-modal open")
	s.Read(func(st *state.State) { assert.Equal(t, state.PageHome, st.CurrentPage()) })

	w = get(g, "/pages/catalog")
	require.Equal(t, http.StatusOK, w.Code)
	s.Read(func(st *state.State) { assert.Equal(t, state.PageCatalog, st.CurrentPage()) })

	assert.Equal(t, http.StatusNotFound, get(g, "/pages/nowhere").Code)
}

func TestPublishFlow(t *testing.T) {
	g, s := newTestServer(t)

	w := post(g, "/startups", publishForm())
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "auth-modal open")

	login(t, g)

	w = post(g, "/startups", url.Values{"name": {"Half"}})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Заполните обязательные поля")

	w = post(g, "/startups", publishForm())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Стартап успешно опубликован!")
	s.Read(func(st *state.State) {
		require.Len(t, st.Published(), 1)
		assert.Equal(t, state.PageCatalog, st.CurrentPage())
	})

	w = get(g, "/api/v1/startups")
	require.Equal(t, http.StatusOK, w.Code)
	var list listResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "Acme", list.Items[0].Name)
}

func TestMalformedBodyRejected(t *testing.T) {
	g, s := newTestServer(t)
	login(t, g)

	for _, path := range []string{"/startups", "/drafts", "/auth/register", "/profile"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader("{not json"))
		req.Header.Set("Content-Type", "application/json")
		g.ServeHTTP(w, req)
		require.Equal(t, http.StatusBadRequest, w.Code, path)
		assert.Contains(t, w.Body.String(), "Не удалось прочитать данные формы", path)
	}
	s.Read(func(st *state.State) {
		assert.Empty(t, st.Startups())
		assert.Empty(t, st.Drafts())
	})
}

func TestSaveDraft(t *testing.T) {
	g, s := newTestServer(t)
	login(t, g)
	w := post(g, "/drafts", url.Values{"goal": {"later"}})
	require.Equal(t, http.StatusOK, w.Code)
	s.Read(func(st *state.State) {
		require.Len(t, st.Drafts(), 1)
		assert.Empty(t, st.Published())
	})
}

func TestLikeToggle(t *testing.T) {
	g, s := newTestServer(t)
	seed(s, &models.Startup{ID: 1, Name: "Acme", Category: "AI", Stage: "idea", Likes: 2})

	require.Equal(t, http.StatusUnauthorized, post(g, "/startups/1/like", nil).Code)

	login(t, g)
	w := post(g, "/startups/1/like", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Стартап понравился!")

	w = post(g, "/startups/1/like", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Лайк удален")
	s.Read(func(st *state.State) {
		su, _ := st.Find(1)
		assert.Equal(t, int64(2), su.Likes)
	})

	assert.Equal(t, http.StatusNotFound, post(g, "/startups/99/like", nil).Code)
}

var tokenRe = regexp.MustCompile(`name="token" value="([^"]+)"`)

func TestDeleteNeedsConfirmation(t *testing.T) {
	g, s := newTestServer(t)
	seed(s, &models.Startup{ID: 1, Name: "Acme"}, &models.Startup{ID: 2, Name: "Other"})

	w := post(g, "/startups/1/delete", url.Values{"token": {"forged"}})
	require.Equal(t, http.StatusForbidden, w.Code)
	s.Read(func(st *state.State) { require.Len(t, st.Startups(), 2) })

	w = get(g, "/startups/1/delete")
	require.Equal(t, http.StatusOK, w.Code)
	m := tokenRe.FindStringSubmatch(w.Body.String())
	require.Len(t, m, 2)

	// a token for startup 1 does not delete startup 2
	require.Equal(t, http.StatusForbidden, post(g, "/startups/2/delete", url.Values{"token": {m[1]}}).Code)

	w = post(g, "/startups/1/delete", url.Values{"token": {m[1]}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Стартап удален")
	assert.Equal(t, http.StatusNotFound, get(g, "/api/v1/startups/1").Code)
	assert.Equal(t, http.StatusOK, get(g, "/api/v1/startups/2").Code)
}

func TestConfirmFragment(t *testing.T) {
	g, s := newTestServer(t)
	seed(s, &models.Startup{ID: 1, Name: "Acme"})
	w := get(g, "/startups/1/delete?fragment=1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "<html")
	assert.Regexp(t, tokenRe, w.Body.String())
}

func TestDetailCountsViews(t *testing.T) {
	g, s := newTestServer(t)
	seed(s, &models.Startup{ID: 1, Name: "Acme", Description: "Hello <script>alert(1)</script> **world**", Views: 4})

	w := get(g, "/startups/1?fragment=1")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.NotContains(t, body, "<html")
	assert.Contains(t, body, "<strong>world</strong>")
	assert.NotContains(t, body, "<script>")

	require.Equal(t, http.StatusOK, get(g, "/startups/1").Code)
	s.Read(func(st *state.State) {
		su, _ := st.Find(1)
		assert.Equal(t, int64(6), su.Views)
	})
	assert.Equal(t, http.StatusNotFound, get(g, "/startups/abc").Code)
}

func TestContact(t *testing.T) {
	g, s := newTestServer(t)
	seed(s, &models.Startup{ID: 1, Name: "Acme", ContactEmail: "a@b.c", TelegramContact: "@acme"})
	w := get(g, "/startups/1/contact")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "a@b.c, Telegram: @acme")
}

func TestCatalogActions(t *testing.T) {
	g, s := newTestServer(t)
	list := make([]*models.Startup, 13)
	for i := range list {
		list[i] = &models.Startup{ID: int64(i + 1), Name: fmt.Sprintf("S%d", i+1), Category: "IT", Stage: "idea"}
	}
	list[0].Category = "AI"
	seed(s, list...)

	require.Equal(t, http.StatusOK, post(g, "/catalog/page", url.Values{"delta": {"1"}}).Code)
	s.Read(func(st *state.State) { assert.Equal(t, 2, st.Catalog().Page) })

	require.Equal(t, http.StatusOK, post(g, "/catalog/page", url.Values{"page": {"9"}}).Code)
	s.Read(func(st *state.State) { assert.Equal(t, 2, st.Catalog().Page) })

	require.Equal(t, http.StatusOK, post(g, "/catalog/filter", url.Values{"category": {"AI"}, "stage": {"all"}}).Code)
	s.Read(func(st *state.State) {
		assert.Equal(t, "AI", st.Catalog().Category)
		assert.Equal(t, 1, st.Catalog().Page)
	})

	require.Equal(t, http.StatusOK, post(g, "/catalog/search", url.Values{"q": {"S1"}}).Code)
	s.Read(func(st *state.State) {
		assert.Equal(t, "S1", st.Catalog().Query)
		assert.Equal(t, models.All, st.Catalog().Category)
	})

	w := post(g, "/catalog/reset", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Фильтры сброшены")
	s.Read(func(st *state.State) { assert.Equal(t, state.NewCursor().Category, st.Catalog().Category) })

	w = get(g, "/catalog/grid")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "<html")
	assert.Contains(t, w.Body.String(), `href="/startups/1"`)
}

func TestSettings(t *testing.T) {
	g, s := newTestServer(t)

	require.Equal(t, http.StatusOK, post(g, "/settings/language", url.Values{"language": {"en"}}).Code)
	require.Equal(t, http.StatusBadRequest, post(g, "/settings/language", url.Values{"language": {"de"}}).Code)
	require.Equal(t, http.StatusOK, post(g, "/settings/theme", url.Values{"theme": {models.ThemeLight}}).Code)
	require.Equal(t, http.StatusOK, post(g, "/settings/sidebar", nil).Code)

	s.Read(func(st *state.State) {
		set := st.Settings()
		assert.Equal(t, "en", set.Language)
		assert.Equal(t, models.ThemeLight, set.Theme)
		assert.True(t, set.SidebarCollapsed)
	})

	require.Equal(t, http.StatusOK, post(g, "/settings/theme", nil).Code)
	s.Read(func(st *state.State) { assert.Equal(t, models.ThemeDark, st.Settings().Theme) })
}

func TestAuthErrors(t *testing.T) {
	g, _ := newTestServer(t)

	w := post(g, "/auth/login", url.Values{"email": {"ann@example.com"}})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Заполните все поля")

	w = post(g, "/auth/register", url.Values{"name": {"Ann"}, "email": {"a@b.c"}, "password": {"secret1"}, "confirm": {"secret2"}, "role": {models.RoleFounder}})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Пароли не совпадают")

	w = post(g, "/auth/register", url.Values{"name": {"Ann"}, "email": {"a@b.c"}, "password": {"secret1"}, "confirm": {"secret1"}, "role": {models.RoleFounder}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Регистрация прошла успешно!")

	w = post(g, "/profile/telegram", url.Values{"telegram": {"nohandle"}})
	require.Equal(t, http.StatusBadRequest, w.Code)
	w = post(g, "/profile/telegram", url.Values{"telegram": {"@ann_dev"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Telegram @ann_dev успешно привязан")

	w = post(g, "/auth/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Вы вышли из системы")
}

func TestCoursesAndMentors(t *testing.T) {
	g, s := newTestServer(t)

	w := get(g, "/courses?lang=xx")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Курсы не найдены")
	s.Read(func(st *state.State) { assert.Equal(t, state.PageLearning, st.CurrentPage()) })

	s.Read(func(st *state.State) { st.SetMentors([]*models.Mentor{{ID: 3, Name: "Dana"}}) })
	require.Equal(t, http.StatusUnauthorized, get(g, "/mentors/3/contact").Code)
	login(t, g)
	w = get(g, "/mentors/3/contact")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Свяжитесь с Dana")
	assert.Equal(t, http.StatusNotFound, get(g, "/mentors/4/contact").Code)
}

func TestAPI(t *testing.T) {
	g, s := newTestServer(t)
	ask := int64(250)
	seed(s,
		&models.Startup{ID: 1, Name: "Alpha", Category: "AI", Stage: "idea", InvestmentAsked: &ask},
		&models.Startup{ID: 2, Name: "Beta", Category: "IT", Stage: "mvp", InvestmentAsked: &ask},
		&models.Startup{ID: 3, Name: "Gamma", Category: "AI", Stage: "mvp"},
	)
	s.Read(func(st *state.State) { st.AppendDraft(&models.Startup{ID: 4, Name: "Draft", IsDraft: true}) })

	var list listResponse
	w := get(g, "/api/v1/startups?category=AI")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, 2, list.Total)

	w = get(g, "/api/v1/startups?q=gam")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Equal(t, 1, list.Total)
	assert.Equal(t, int64(3), list.Items[0].ID)
	s.Read(func(st *state.State) { assert.Empty(t, st.Catalog().Query) })

	assert.Equal(t, http.StatusBadRequest, get(g, "/api/v1/startups/x").Code)
	assert.Equal(t, http.StatusNotFound, get(g, "/api/v1/startups/4").Code)

	w = get(g, "/api/v1/stats")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"startups":3,"mentors":0,"deals":0,"investmentAsked":500}`, w.Body.String())
}
