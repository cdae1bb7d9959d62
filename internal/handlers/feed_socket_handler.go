package handlers

import (
	"strings"

	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/ogc16/FitnessApp/internal/middleware"
	feedws "github.com/ogc16/FitnessApp/internal/websocket"
	"github.com/ogc16/FitnessApp/pkg/utils"
)

type FeedSocketHandler struct {
	hub       *feedws.Hub
	jwtSecret string
}

func NewFeedSocketHandler(hub *feedws.Hub, jwtSecret string) *FeedSocketHandler {
	return &FeedSocketHandler{hub: hub, jwtSecret: jwtSecret}
}

// WebSocketAuth runs before the upgrade. Browsers cannot set headers on
// websocket requests, so ?token= is accepted as well.
func (h *FeedSocketHandler) WebSocketAuth(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return errorJSON(c, fiber.StatusUpgradeRequired, "WebSocket upgrade required")
	}

	tokenString := strings.TrimSpace(c.Query("token"))
	if tokenString == "" {
		tokenString = middleware.BearerToken(c)
	}
	if tokenString == "" {
		return errorJSON(c, fiber.StatusUnauthorized, "Invalid or expired token")
	}

	claims, err := utils.ValidateToken(tokenString, h.jwtSecret)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Invalid or expired token")
	}

	c.Locals("user_id", claims.UserID)
	return c.Next()
}

func (h *FeedSocketHandler) HandleWebSocket(conn *websocket.Conn) {
	userID, _ := conn.Locals("user_id").(string)
	client := feedws.NewClient(h.hub, conn, userID)

	h.hub.Register(client)
	go client.WritePump()
	client.ReadPump()
}
