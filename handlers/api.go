package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/startuphub/startuphub/internal/catalog"
	"github.com/startuphub/startuphub/internal/models"
	"github.com/startuphub/startuphub/internal/startups"
	"github.com/startuphub/startuphub/internal/state"
)

// APIHandler exposes read-only JSON views of the catalog.
type APIHandler struct {
	store    *state.Store
	startups *startups.Service
}

func NewAPIHandler(s *state.Store, svc *startups.Service) *APIHandler {
	return &APIHandler{store: s, startups: svc}
}

// Register routes under /api/v1
func (h *APIHandler) Register(rg *gin.RouterGroup) {
	v1 := rg.Group("/api/v1")
	v1.GET("/startups", h.ListStartups)
	v1.GET("/startups/:id", h.GetStartup)
	v1.GET("/stats", h.Stats)
}

type listResponse struct {
	Items      []models.Startup `json:"items"`
	Page       int              `json:"page"`
	TotalPages int              `json:"totalPages"`
	Total      int              `json:"total"`
}

// ListStartups pages through published startups with the same matching
// rules as the catalog, without moving the catalog cursor.
func (h *APIHandler) ListStartups(c *gin.Context) {
	cur := state.NewCursor()
	if v := c.Query("category"); models.ValidCategory(v) {
		cur.Category = v
	}
	if v := c.Query("stage"); models.ValidStage(v) {
		cur.Stage = v
	}
	if q := c.Query("q"); len([]rune(q)) >= catalog.MinQueryLength {
		cur.Query = q
	}
	if p, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		cur.Page = p
	}

	var resp listResponse
	h.store.Read(func(st *state.State) {
		r := catalog.PageOf(st, cur)
		resp = listResponse{Items: make([]models.Startup, 0, len(r.Items)), Page: r.Page, TotalPages: r.TotalPages, Total: r.Total}
		for _, s := range r.Items {
			resp.Items = append(resp.Items, *s)
		}
	})
	c.JSON(http.StatusOK, resp)
}

func (h *APIHandler) GetStartup(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	s, err := h.startups.Get(id)
	if err != nil || s.IsDraft {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *APIHandler) Stats(c *gin.Context) {
	var out startups.Stats
	h.store.Read(func(st *state.State) { out = startups.PlatformStats(st) })
	c.JSON(http.StatusOK, out)
}
