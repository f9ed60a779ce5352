package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/startuphub/startuphub/internal/startups"
	"github.com/startuphub/startuphub/internal/state"
	"github.com/startuphub/startuphub/internal/tokens"
	"github.com/startuphub/startuphub/internal/view"
	"github.com/startuphub/startuphub/pkg/logger"
)

// StartupHandler serves publishing, drafts and the per-startup actions.
type StartupHandler struct {
	*Pages
	startups  *startups.Service
	confirmer *tokens.Confirmer
}

func NewStartupHandler(p *Pages, s *startups.Service, conf *tokens.Confirmer) *StartupHandler {
	return &StartupHandler{Pages: p, startups: s, confirmer: conf}
}

func (h *StartupHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/startups", h.Publish)
	rg.POST("/drafts", h.SaveDraft)
	rg.GET("/startups/:id", h.Detail)
	rg.POST("/startups/:id/like", h.Like)
	rg.GET("/startups/:id/contact", h.Contact)
	rg.GET("/startups/:id/delete", h.ConfirmDelete)
	rg.POST("/startups/:id/delete", h.Delete)
}

func (h *StartupHandler) Publish(c *gin.Context) {
	var in startups.PublishInput
	if !h.bind(c, &in) {
		return
	}
	if _, err := h.startups.Publish(c.Request.Context(), in); err != nil {
		h.fail(c, err)
		return
	}
	h.notify(c, view.NotifySuccess, "notify.published")
}

func (h *StartupHandler) SaveDraft(c *gin.Context) {
	var in startups.PublishInput
	if !h.bind(c, &in) {
		return
	}
	if _, err := h.startups.SaveDraft(c.Request.Context(), in); err != nil {
		h.fail(c, err)
		return
	}
	h.notify(c, view.NotifySuccess, "notify.draftSaved")
}

// Detail counts a view and shows the startup over the current page.
func (h *StartupHandler) Detail(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		h.fail(c, state.ErrNotFound)
		return
	}
	s, err := h.startups.View(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	d := view.NewDetail(&s, h.lang(), h.store.Now())
	if fragment(c) {
		h.write(c, http.StatusOK, func(buf *bytes.Buffer) error { return h.renderer.Detail(buf, d) })
		return
	}
	h.render(c, http.StatusOK, view.Flash{Detail: &d})
}

func (h *StartupHandler) Like(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		h.fail(c, state.ErrNotFound)
		return
	}
	liked, err := h.startups.ToggleLike(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	if liked {
		h.notify(c, view.NotifySuccess, "notify.liked")
		return
	}
	h.notify(c, view.NotifyInfo, "notify.unliked")
}

func (h *StartupHandler) Contact(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		h.fail(c, state.ErrNotFound)
		return
	}
	ct, err := h.startups.Contact(id)
	if err != nil {
		h.fail(c, err)
		return
	}
	text := view.ContactText(h.lang(), ct.Email, ct.Telegram)
	h.render(c, http.StatusOK, view.Flash{Notification: view.Notify(view.NotifyInfo, text)})
}

// ConfirmDelete issues a short-lived token and asks for confirmation.
func (h *StartupHandler) ConfirmDelete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		h.fail(c, state.ErrNotFound)
		return
	}
	s, err := h.startups.Get(id)
	if err != nil {
		h.fail(c, err)
		return
	}
	token, err := h.confirmer.Issue(tokens.ActionDelete, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	conf := view.Confirm{StartupID: id, Name: s.Name, Question: view.T(h.lang(), "notify.confirmDelete"), Token: token}
	if fragment(c) {
		h.write(c, http.StatusOK, func(buf *bytes.Buffer) error { return h.renderer.ConfirmDelete(buf, conf) })
		return
	}
	h.render(c, http.StatusOK, view.Flash{Confirm: &conf})
}

// Delete removes the startup only when the posted token confirms it.
func (h *StartupHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		h.fail(c, state.ErrNotFound)
		return
	}
	confirmed := true
	if err := h.confirmer.Verify(c.PostForm("token"), tokens.ActionDelete, id); err != nil {
		logger.Debugf("delete %d: %v", id, err)
		confirmed = false
	}
	if err := h.startups.Delete(c.Request.Context(), id, confirmed); err != nil {
		h.fail(c, err)
		return
	}
	h.notify(c, view.NotifySuccess, "notify.deleted")
}
