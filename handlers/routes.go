package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/startuphub/startuphub/internal/catalog"
	"github.com/startuphub/startuphub/internal/mentors"
	"github.com/startuphub/startuphub/internal/navigation"
	"github.com/startuphub/startuphub/internal/render"
	"github.com/startuphub/startuphub/internal/settings"
	"github.com/startuphub/startuphub/internal/startups"
	"github.com/startuphub/startuphub/internal/state"
	"github.com/startuphub/startuphub/internal/tokens"
	"github.com/startuphub/startuphub/internal/users"
)

// Deps are the shared pieces every handler is built from.
type Deps struct {
	Store     *state.Store
	Renderer  *render.Renderer
	Confirmer *tokens.Confirmer
}

// RegisterRoutes mounts the HTML actions, the JSON API and the Swagger docs.
func RegisterRoutes(r *gin.Engine, d Deps) {
	rg := &r.RouterGroup
	s := d.Store
	pages := NewPages(s, d.Renderer)
	svc := startups.NewService(s)

	NewNavigationHandler(pages, navigation.NewService(s), mentors.NewService(s), settings.NewService(s)).Register(rg)
	NewAuthHandler(pages, users.NewService(s)).Register(rg)
	NewStartupHandler(pages, svc, d.Confirmer).Register(rg)
	NewCatalogHandler(pages, catalog.NewService(s)).Register(rg)
	NewAPIHandler(s, svc).Register(rg)
	RegisterSwagger(r)
}
