package handler

import (
	"net/http"

	"firebase.google.com/go/v4/auth"
	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	ws "github.com/Hari-385/bookbridge-ai-connect/internal/infrastructure/websocket"
	"github.com/Hari-385/bookbridge-ai-connect/pkg/errors"
	"github.com/Hari-385/bookbridge-ai-connect/pkg/logger"
)

type WebSocketHandler struct {
	wsManager    *ws.Manager
	eventHandler *ws.EventHandler
	authClient   *auth.Client
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // You should restrict this in production
	},
}

func NewWebSocketHandler(wsManager *ws.Manager, eventHandler *ws.EventHandler, authClient *auth.Client) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager:    wsManager,
		eventHandler: eventHandler,
		authClient:   authClient,
	}
}

// HandleWebSocket upgrades the connection and attaches the client to the
// chat event stream. Browsers cannot set headers on WebSocket dials, so
// the ID token arrives as a query parameter instead.
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	idToken := c.QueryParam("token")
	if idToken == "" {
		return errors.Unauthorized("Authentication token is required", nil)
	}

	token, err := h.authClient.VerifyIDToken(c.Request().Context(), idToken)
	if err != nil {
		return errors.Unauthorized("Invalid or expired token", err)
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return errors.Internal("Failed to upgrade connection", err)
	}

	client := &ws.Client{
		UserID: token.UID,
		Conn:   conn,
		Send:   make(chan []byte, 256),
	}

	h.wsManager.Register <- client
	logger.Debug("WebSocket client connected: %s", client.UserID)

	go client.ReadPump(h.wsManager, h.eventHandler)
	go client.WritePump()

	return nil
}
