package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Tokens TokenService
}

func NewHandler(tokens TokenService) *Handler {
	return &Handler{Tokens: tokens}
}

// RegisterRoutes mounts token introspection. Tokens themselves are minted by
// the bot's /dashboard command, never over HTTP.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", AuthMiddleware(h.Tokens), h.me)
}

func (h *Handler) me(c *gin.Context) {
	claims := MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	resp := gin.H{
		"user_id":  claims.UserID,
		"username": claims.Username,
	}
	if claims.ExpiresAt != nil {
		resp["expires_at"] = claims.ExpiresAt.Time.UTC()
	}
	c.JSON(http.StatusOK, resp)
}
