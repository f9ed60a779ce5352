package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/startuphub/startuphub/internal/users"
	"github.com/startuphub/startuphub/internal/view"
)

// AuthHandler serves the simulated sign-in and the profile forms.
type AuthHandler struct {
	*Pages
	users *users.Service
}

func NewAuthHandler(p *Pages, u *users.Service) *AuthHandler {
	return &AuthHandler{Pages: p, users: u}
}

// Register routes under /auth and /profile
func (h *AuthHandler) Register(rg *gin.RouterGroup) {
	a := rg.Group("/auth")
	a.POST("/login", h.Login)
	a.POST("/register", h.SignUp)
	a.POST("/logout", h.Logout)

	rg.POST("/profile", h.UpdateProfile)
	rg.POST("/profile/telegram", h.LinkTelegram)
}

func (h *AuthHandler) Login(c *gin.Context) {
	if _, err := h.users.Login(c.Request.Context(), c.PostForm("email"), c.PostForm("password")); err != nil {
		h.fail(c, err)
		return
	}
	h.notify(c, view.NotifySuccess, "notify.loggedIn")
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	var in users.RegisterInput
	if !h.bind(c, &in) {
		return
	}
	if _, err := h.users.Register(c.Request.Context(), in); err != nil {
		h.fail(c, err)
		return
	}
	h.notify(c, view.NotifySuccess, "notify.registered")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.users.Logout(c.Request.Context()); err != nil {
		h.fail(c, err)
		return
	}
	h.notify(c, view.NotifyInfo, "notify.loggedOut")
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var in users.ProfileInput
	if !h.bind(c, &in) {
		return
	}
	if err := h.users.UpdateProfile(c.Request.Context(), in); err != nil {
		h.fail(c, err)
		return
	}
	h.notify(c, view.NotifySuccess, "notify.profileSaved")
}

func (h *AuthHandler) LinkTelegram(c *gin.Context) {
	handle, err := h.users.LinkTelegram(c.Request.Context(), c.PostForm("telegram"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.notify(c, view.NotifySuccess, "notify.telegramLinked", handle)
}
