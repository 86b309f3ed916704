package controller

import (
	"noter-be/internal/pkg/logger"
	"noter-be/internal/pkg/serverutils"
	internalWS "noter-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const liveViewerKey = "live_viewer"

type ILiveController interface {
	RegisterRoutes(r fiber.Router)
}

type liveController struct {
	hub    *internalWS.Hub
	guard  serverutils.AuthGuard
	logger logger.ILogger
}

func NewLiveController(hub *internalWS.Hub, guard serverutils.AuthGuard, log logger.ILogger) ILiveController {
	return &liveController{
		hub:    hub,
		guard:  guard,
		logger: log,
	}
}

// RegisterRoutes exposes a server-to-client stream of content changes.
// Browsers cannot set headers on a websocket handshake, so ?token= is accepted too.
func (c *liveController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/live/v1")
	h.Get("", c.queryToken, c.guard.Optional, c.Handshake, websocket.New(c.Stream))
}

func (c *liveController) queryToken(ctx *fiber.Ctx) error {
	if token := ctx.Query("token"); token != "" && ctx.Get(fiber.HeaderAuthorization) == "" {
		ctx.Request().Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	return ctx.Next()
}

func (c *liveController) Handshake(ctx *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(ctx) {
		return fiber.ErrUpgradeRequired
	}
	ctx.Locals(liveViewerKey, serverutils.CallerID(ctx))
	return ctx.Next()
}

func (c *liveController) Stream(conn *websocket.Conn) {
	viewer, _ := conn.Locals(liveViewerKey).(*uuid.UUID)
	c.logger.Info("LIVE", "Session started", map[string]interface{}{"authenticated": viewer != nil})
	internalWS.ServeWs(c.hub, conn, viewer)
	c.logger.Info("LIVE", "Session ended", map[string]interface{}{"authenticated": viewer != nil})
}
