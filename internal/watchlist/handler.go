package watchlist

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"anilistbot/internal/auth"
)

type Handler struct {
	Store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/watchlist", h.list)
	rg.GET("/watchlist/:anime_id", h.getOne)
	rg.DELETE("/watchlist/:anime_id", h.remove)
}

func (h *Handler) list(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	items, err := h.Store.List(c.Request.Context(), claims.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total": len(items),
		"items": items,
	})
}

func (h *Handler) getOne(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	animeID, ok := parseAnimeID(c)
	if !ok {
		return
	}

	it, err := h.Store.Get(c.Request.Context(), claims.UserID, animeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}
	if it == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, it)
}

func (h *Handler) remove(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	animeID, ok := parseAnimeID(c)
	if !ok {
		return
	}

	removed, err := h.Store.Remove(c.Request.Context(), claims.UserID, animeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if removed == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "deleted", "item": removed})
}

func parseAnimeID(c *gin.Context) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(c.Param("anime_id")))
	if err != nil || n <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "anime_id must be a positive integer"})
		return 0, false
	}
	return n, true
}
