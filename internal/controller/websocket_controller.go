package controller

import (
	"strings"

	"stylista-be/internal/pkg/logger"
	"stylista-be/internal/pkg/serverutils"
	internalWS "stylista-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type IWebsocketController interface {
	RegisterRoutes(r fiber.Router)
	ServeWs(ctx *fiber.Ctx) error
}

type websocketController struct {
	hub       *internalWS.Hub
	jwtSecret string
	logger    logger.ILogger
}

func NewWebsocketController(hub *internalWS.Hub, jwtSecret string, log logger.ILogger) IWebsocketController {
	return &websocketController{
		hub:       hub,
		jwtSecret: jwtSecret,
		logger:    log,
	}
}

// RegisterRoutes must run before the chat routes so "ws" is not taken as a
// session id.
func (c *websocketController) RegisterRoutes(r fiber.Router) {
	r.Get("/chat/v1/ws", c.ServeWs)
}

// ServeWs authenticates the handshake itself: browsers cannot set headers on
// websocket requests, so the token may come as ?token=.
func (c *websocketController) ServeWs(ctx *fiber.Ctx) error {
	tokenStr := ctx.Query("token")
	if tokenStr == "" {
		tokenStr = strings.TrimPrefix(ctx.Get("Authorization"), "Bearer ")
	}
	if tokenStr == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "Missing token (query 'token' or header 'Authorization')")
	}

	claims, err := serverutils.ParseToken(tokenStr, c.jwtSecret)
	if err != nil {
		c.logger.Warn("WEBSOCKET", "Invalid token in handshake", map[string]interface{}{"error": err.Error()})
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
	}
	userID, _, err := serverutils.IdentityFromClaims(claims)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
	}

	if !websocket.IsWebSocketUpgrade(ctx) {
		return fiber.ErrUpgradeRequired
	}
	return websocket.New(func(conn *websocket.Conn) {
		c.logger.Info("WEBSOCKET", "Session started", map[string]interface{}{"user_id": userID.String()})
		internalWS.ServeWs(c.hub, conn, userID)
		c.logger.Info("WEBSOCKET", "Session ended", map[string]interface{}{"user_id": userID.String()})
	})(ctx)
}
