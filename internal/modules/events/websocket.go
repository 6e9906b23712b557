package events

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	jwtsvc "autoshop/internal/pkg/jwt"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,

	// Origin is enforced by the CORS layer for the REST surface; the
	// socket carries its own token auth.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WSHandler struct {
	hub *Hub
	jwt *jwtsvc.Service
}

func NewWSHandler(hub *Hub, jwt *jwtsvc.Service) *WSHandler {
	return &WSHandler{hub: hub, jwt: jwt}
}

func (h *WSHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/events/ws", h.HandleWebSocket)
}

// HandleWebSocket upgrades the connection and keeps it registered until
// the client goes away. Auth comes in as ?token= because browsers do
// not send headers on websocket upgrades.
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Token is required. Use ?token=YOUR_JWT_TOKEN",
			},
		})
		return
	}

	claims, err := h.jwt.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Invalid token",
			},
		})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	h.hub.Register(claims.UserID, conn)
	defer h.hub.Unregister(claims.UserID)

	// Drain control frames; the server only pushes.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
