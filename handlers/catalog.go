package handlers

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/startuphub/startuphub/internal/catalog"
	"github.com/startuphub/startuphub/internal/render"
	"github.com/startuphub/startuphub/internal/state"
	"github.com/startuphub/startuphub/internal/view"
)

// CatalogHandler serves the catalog filter, search and pagination forms.
type CatalogHandler struct {
	*Pages
	catalog *catalog.Service
}

func NewCatalogHandler(p *Pages, c *catalog.Service) *CatalogHandler {
	return &CatalogHandler{Pages: p, catalog: c}
}

func (h *CatalogHandler) Register(rg *gin.RouterGroup) {
	cg := rg.Group("/catalog")
	cg.GET("/grid", h.Grid)
	cg.POST("/filter", h.Filter)
	cg.POST("/search", h.Search)
	cg.POST("/reset", h.Reset)
	cg.POST("/page", h.Page)
}

// Grid renders only the current catalog page.
func (h *CatalogHandler) Grid(c *gin.Context) {
	var g render.GridData
	h.store.Read(func(st *state.State) {
		cv := view.Build(st, h.store.Now(), view.Flash{}).Catalog
		g = render.GridData{Cards: cv.Cards, Empty: cv.Empty}
	})
	h.write(c, http.StatusOK, func(buf *bytes.Buffer) error { return h.renderer.Grid(buf, g) })
}

func (h *CatalogHandler) Filter(c *gin.Context) {
	if err := h.catalog.ApplyFilter(c.Request.Context(), c.PostForm("category"), c.PostForm("stage")); err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, view.Flash{})
}

func (h *CatalogHandler) Search(c *gin.Context) {
	if err := h.catalog.Search(c.Request.Context(), c.PostForm("q")); err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, view.Flash{})
}

func (h *CatalogHandler) Reset(c *gin.Context) {
	if err := h.catalog.ResetFilters(c.Request.Context()); err != nil {
		h.fail(c, err)
		return
	}
	h.notify(c, view.NotifyInfo, "notify.filtersReset")
}

// Page accepts either a relative "delta" or an absolute "page". Out of range
// moves are ignored.
func (h *CatalogHandler) Page(c *gin.Context) {
	var err error
	if n, perr := strconv.Atoi(c.PostForm("page")); perr == nil {
		_, err = h.catalog.GoToPage(c.Request.Context(), n)
	} else if d, derr := strconv.Atoi(c.PostForm("delta")); derr == nil {
		_, err = h.catalog.ChangePage(c.Request.Context(), d)
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, view.Flash{})
}
