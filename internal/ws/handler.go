package ws

import (
	"net/http"

	"prime31/internal/logger"
	"prime31/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// HandleWS upgrades the request and serves the relay protocol on it. A
// ?token= query parameter, when present, must be a valid JWT and logs the
// connection in as its subject.
func HandleWS(hub *Hub, allowedOrigin string, sendBuffer int) gin.HandlerFunc {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if allowedOrigin == "" {
				return true
			}
			return r.Header.Get("Origin") == allowedOrigin
		},
	}

	return func(c *gin.Context) {
		var username string
		if token := c.Query("token"); token != "" {
			u, err := service.ParseJWT(token)
			if err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
				return
			}
			username = u
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("ws upgrade error", "error", err)
			return
		}

		client := NewClient(conn, hub, sendBuffer)
		if username != "" {
			client.WithToken(username)
		}
		go client.Run()
	}
}
