package sync

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"anilistbot/internal/auth"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // dashboards are served from anywhere
	},
}

// WSHandler streams the caller's own watchlist events. It must run behind
// auth.AuthMiddleware.
func WSHandler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := auth.MustGetClaims(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}

		// the hub owns writes once the conn is registered
		if err := ws.WriteMessage(
			websocket.TextMessage,
			[]byte(`{"type":"welcome","transport":"websocket"}`+"\n"),
		); err != nil {
			_ = ws.Close()
			return
		}
		hub.AddWS(ws, claims.UserID)
		hub.logger.Info("client connected",
			zap.String("remote", c.Request.RemoteAddr),
			zap.String("user_id", claims.UserID))

		// incoming messages are ignored; the loop only watches for disconnects
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				break
			}
		}

		hub.RemoveWS(ws)
		hub.logger.Info("client disconnected", zap.String("remote", c.Request.RemoteAddr))
	}
}
