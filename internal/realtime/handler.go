package realtime

import (
	"net/http"
	"strings"

	"gymbooking/internal/middleware"
	"gymbooking/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type Handler struct {
	hub      *Hub
	tokens   *jwt.Service
	upgrader websocket.Upgrader
}

// NewHandler accepts upgrades from the given origins; an empty list accepts
// any origin.
func NewHandler(hub *Hub, tokens *jwt.Service, allowedOrigins []string) *Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			allowed[o] = true
		}
	}
	return &Handler{
		hub:    hub,
		tokens: tokens,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return len(allowed) == 0 || origin == "" || allowed[origin]
			},
		},
	}
}

// RegisterRoutes mounts GET /ws/slots?token=JWT[&store_id=...].
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ws/slots", middleware.QueryTokenAuth(h.tokens), middleware.AdminOnly(), h.Slots)
}

func (h *Handler) Slots(c *gin.Context) {
	p, ok := middleware.MustPrincipal(c)
	if !ok {
		return
	}

	var stores []uuid.UUID
	for _, raw := range c.QueryArray("store_id") {
		if id, err := uuid.Parse(raw); err == nil {
			stores = append(stores, id)
		}
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.hub.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	h.hub.Serve(conn, p.ID, stores)
}
