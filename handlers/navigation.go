package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/startuphub/startuphub/internal/courses"
	"github.com/startuphub/startuphub/internal/mentors"
	"github.com/startuphub/startuphub/internal/navigation"
	"github.com/startuphub/startuphub/internal/settings"
	"github.com/startuphub/startuphub/internal/state"
	"github.com/startuphub/startuphub/internal/view"
)

// NavigationHandler switches pages and serves the learning and settings actions.
type NavigationHandler struct {
	*Pages
	nav      *navigation.Service
	mentors  *mentors.Service
	settings *settings.Service
}

func NewNavigationHandler(p *Pages, n *navigation.Service, m *mentors.Service, s *settings.Service) *NavigationHandler {
	return &NavigationHandler{Pages: p, nav: n, mentors: m, settings: s}
}

func (h *NavigationHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/", h.Home)
	rg.GET("/pages/:page", h.Navigate)
	rg.GET("/courses", h.Courses)
	rg.GET("/mentors/:id/contact", h.ContactMentor)

	s := rg.Group("/settings")
	s.POST("/theme", h.Theme)
	s.POST("/language", h.Language)
	s.POST("/sidebar", h.Sidebar)
}

// Navigate shows home with the login prompt when a protected page was
// requested anonymously.
func (h *NavigationHandler) Navigate(c *gin.Context) {
	res, err := h.nav.Navigate(c.Request.Context(), c.Param("page"))
	if err != nil {
		h.fail(c, err)
		return
	}
	flash := view.Flash{LoginPrompt: res.LoginPrompt}
	if res.LoginPrompt {
		flash.Notification = view.Notify(view.NotifyError, view.T(h.lang(), "notify.signInRequired"))
	}
	h.render(c, http.StatusOK, flash)
}

// Courses opens the learning page with the catalog narrowed to ?lang.
func (h *NavigationHandler) Courses(c *gin.Context) {
	if _, err := h.nav.Navigate(c.Request.Context(), state.PageLearning); err != nil {
		h.fail(c, err)
		return
	}
	var a view.App
	h.store.Read(func(st *state.State) { a = view.Build(st, h.store.Now(), view.Flash{}) })
	a.Courses = view.CourseCards(courses.Filter(c.Query("lang")))
	a.CoursesEmpty = ""
	if len(a.Courses) == 0 {
		a.CoursesEmpty = view.T(a.Lang, "empty.courses")
	}
	h.write(c, http.StatusOK, func(buf *bytes.Buffer) error { return h.renderer.App(buf, a) })
}

func (h *NavigationHandler) ContactMentor(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		h.fail(c, mentors.ErrNotFound)
		return
	}
	name, err := h.mentors.Contact(id)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.notify(c, view.NotifyInfo, "notify.mentorContact", name)
}

// Theme sets the posted theme, or toggles when none is posted.
func (h *NavigationHandler) Theme(c *gin.Context) {
	var err error
	if t := c.PostForm("theme"); t != "" {
		_, err = h.settings.SetTheme(c.Request.Context(), t)
	} else {
		_, err = h.settings.ToggleTheme(c.Request.Context())
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, view.Flash{})
}

func (h *NavigationHandler) Language(c *gin.Context) {
	if _, err := h.settings.SetLanguage(c.Request.Context(), c.PostForm("language")); err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, view.Flash{})
}

func (h *NavigationHandler) Sidebar(c *gin.Context) {
	if _, err := h.settings.ToggleSidebar(c.Request.Context()); err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, view.Flash{})
}
