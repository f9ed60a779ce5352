package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/startuphub/startuphub/internal/mentors"
	"github.com/startuphub/startuphub/internal/models"
	"github.com/startuphub/startuphub/internal/navigation"
	"github.com/startuphub/startuphub/internal/render"
	"github.com/startuphub/startuphub/internal/startups"
	"github.com/startuphub/startuphub/internal/state"
	"github.com/startuphub/startuphub/internal/tokens"
	"github.com/startuphub/startuphub/internal/users"
	"github.com/startuphub/startuphub/internal/view"
	"github.com/startuphub/startuphub/pkg/logger"
)

const htmlContentType = "text/html; charset=utf-8"

var errBadRequest = errors.New("malformed request")

// Pages renders the application page after every HTML action.
type Pages struct {
	store    *state.Store
	renderer *render.Renderer
}

func NewPages(s *state.Store, r *render.Renderer) *Pages {
	return &Pages{store: s, renderer: r}
}

func (p *Pages) lang() string {
	var l string
	p.store.Read(func(st *state.State) { l = st.Settings().Language })
	return l
}

// render projects the current state and writes the full page.
func (p *Pages) render(c *gin.Context, status int, flash view.Flash) {
	var a view.App
	p.store.Read(func(st *state.State) { a = view.Build(st, p.store.Now(), flash) })
	p.write(c, status, func(buf *bytes.Buffer) error { return p.renderer.App(buf, a) })
}

func (p *Pages) write(c *gin.Context, status int, fn func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		logger.Errorf("render: %v", err)
		c.String(http.StatusInternalServerError, "render failed")
		return
	}
	c.Data(status, htmlContentType, buf.Bytes())
}

func (p *Pages) notify(c *gin.Context, kind, key string, args ...any) {
	text := view.T(p.lang(), key)
	if len(args) > 0 {
		text = fmt.Sprintf(text, args...)
	}
	p.render(c, http.StatusOK, view.Flash{Notification: view.Notify(kind, text)})
}

// fail maps a service error to a status and an error notification.
func (p *Pages) fail(c *gin.Context, err error) {
	status, flash := p.describe(err)
	p.render(c, status, flash)
}

func (p *Pages) describe(err error) (int, view.Flash) {
	lang := p.lang()
	msg := func(key string) *view.Notification { return view.Notify(view.NotifyError, view.T(lang, key)) }

	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		text := fmt.Sprintf(view.T(lang, "notify.missing"), view.FieldLabels(lang, verr.Fields))
		return http.StatusBadRequest, view.Flash{Notification: view.Notify(view.NotifyError, text)}
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest, view.Flash{Notification: msg("notify.badRequest")}
	case errors.Is(err, state.ErrNotSignedIn):
		return http.StatusUnauthorized, view.Flash{Notification: msg("notify.signInRequired"), LoginPrompt: true}
	case errors.Is(err, state.ErrNotFound), errors.Is(err, mentors.ErrNotFound), errors.Is(err, navigation.ErrUnknownPage):
		return http.StatusNotFound, view.Flash{Notification: msg("notify.notFound")}
	case errors.Is(err, startups.ErrNotConfirmed), errors.Is(err, tokens.ErrInvalidToken):
		return http.StatusForbidden, view.Flash{Notification: msg("notify.confirmDelete")}
	case errors.Is(err, users.ErrMissingFields):
		return http.StatusBadRequest, view.Flash{Notification: msg("notify.allFields")}
	case errors.Is(err, users.ErrPasswordMismatch):
		return http.StatusBadRequest, view.Flash{Notification: msg("notify.passwordMismatch")}
	case errors.Is(err, users.ErrPasswordTooShort):
		return http.StatusBadRequest, view.Flash{Notification: msg("notify.passwordShort")}
	case errors.Is(err, users.ErrTelegramRequired):
		return http.StatusBadRequest, view.Flash{Notification: msg("notify.telegramRequired")}
	case errors.Is(err, users.ErrTelegramFormat):
		return http.StatusBadRequest, view.Flash{Notification: msg("notify.telegramFormat")}
	}
	logger.Errorf("request failed: %v", err)
	return http.StatusInternalServerError, view.Flash{Notification: msg("notify.internal")}
}

// Home renders whatever page the state currently shows.
func (p *Pages) Home(c *gin.Context) {
	p.render(c, http.StatusOK, view.Flash{})
}

// bind decodes the request into obj and renders a 400 when it cannot.
func (p *Pages) bind(c *gin.Context, obj any) bool {
	if err := c.ShouldBind(obj); err != nil {
		p.fail(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return false
	}
	return true
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil
}

// fragment reports whether the client asked for a partial instead of the page.
func fragment(c *gin.Context) bool {
	return c.Query("fragment") == "1"
}
