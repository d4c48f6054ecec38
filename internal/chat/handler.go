package chat

import (
	"net/http"
	"strings"

	"github.com/askforum/backend/internal/middleware"
	"github.com/askforum/backend/internal/repositories"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Handler upgrades authenticated requests into chat clients.
type Handler struct {
	hub            *Hub
	userRepository repositories.UserRepository
	jwtSecret      string
}

// NewHandler creates a new chat Handler.
func NewHandler(hub *Hub, userRepo repositories.UserRepository, jwtSecret string) *Handler {
	return &Handler{
		hub:            hub,
		userRepository: userRepo,
		jwtSecret:      jwtSecret,
	}
}

// ServeWS authenticates the token query parameter and joins the caller to
// the relay. Anonymous callers are rejected before the upgrade.
func (h *Handler) ServeWS(c echo.Context) error {
	token := strings.TrimPrefix(c.QueryParam("token"), "Bearer ")
	if token == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "token query parameter required")
	}
	user, err := middleware.AuthenticateToken(token, h.userRepository, h.jwtSecret)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	client := &Client{
		hub:      h.hub,
		conn:     conn,
		send:     make(chan []byte, 16),
		username: user.Username,
	}
	h.hub.register <- client
	h.hub.announce(user.Username, "connected to the chat")

	go client.writePump()
	go client.readPump()
	return nil
}
