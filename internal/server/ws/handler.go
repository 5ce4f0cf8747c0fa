package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/gin-gonic/gin"

	"github.com/wassalha/wassalha/internal/observability"
	"github.com/wassalha/wassalha/internal/realtime"
	"github.com/wassalha/wassalha/internal/server/http/middleware"
)

const writeTimeout = 5 * time.Second

// command is a room membership instruction sent by the client.
type command struct {
	Action    string `json:"action"`
	Namespace string `json:"namespace"`
	Room      int64  `json:"room"`
}

// outboundEvent is the JSON frame pushed to connected clients.
type outboundEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Handler upgrades authenticated clients to WebSocket and bridges hub
// rooms to the connection.
type Handler struct {
	hub     *realtime.Hub
	parser  middleware.TokenParser
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewHandler constructs Handler.
func NewHandler(hub *realtime.Hub, parser middleware.TokenParser, metrics *observability.Metrics, logger *slog.Logger) *Handler {
	return &Handler{hub: hub, parser: parser, metrics: metrics, logger: logger}
}

// Serve handles GET /ws. The client authenticates with its bearer token,
// is auto-joined to its own notifications room and may join or leave
// process rooms and the processTrack lobby with {action, namespace, room}
// frames.
func (h *Handler) Serve(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		token = bearerToken(c.GetHeader("Authorization"))
	}
	if token == "" {
		c.Status(http.StatusUnauthorized)
		return
	}
	userID, err := h.parser.ParseToken(token)
	if err != nil {
		c.Status(http.StatusUnauthorized)
		return
	}

	conn, err := websocket.Accept(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket accept failed", slog.String("error", err.Error()))
		return
	}
	defer conn.CloseNow()

	if h.metrics != nil {
		h.metrics.ClientConnected()
		defer h.metrics.ClientDisconnected()
	}

	sub := h.hub.NewSubscriber()
	defer h.hub.LeaveAll(sub)
	h.hub.Join(realtime.NamespaceNotifications, userID, sub)

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	go h.writePump(ctx, cancel, conn, sub)
	h.readPump(ctx, conn, userID, sub)

	conn.Close(websocket.StatusNormalClosure, "")
}

func (h *Handler) readPump(ctx context.Context, conn *websocket.Conn, userID int64, sub *realtime.Subscriber) {
	for {
		var cmd command
		if err := wsjson.Read(ctx, conn, &cmd); err != nil {
			return
		}
		ns, ok := parseNamespace(cmd.Namespace)
		if !ok {
			continue
		}
		room := cmd.Room
		if room == 0 && ns == realtime.NamespaceNotifications {
			room = userID
		}
		if room < 0 {
			continue
		}
		// Room zero is only meaningful as the processTrack lobby.
		if room == realtime.LobbyRoom && ns != realtime.NamespaceProcessTrack {
			continue
		}

		switch cmd.Action {
		case "join":
			h.hub.Join(ns, room, sub)
		case "leave":
			h.hub.Leave(ns, room, sub)
		}
	}
}

func (h *Handler) writePump(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, sub *realtime.Subscriber) {
	defer cancel()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sub.Events():
			if !ok {
				return
			}
			writeCtx, writeCancel := context.WithTimeout(ctx, writeTimeout)
			err := wsjson.Write(writeCtx, conn, outboundEvent{Event: string(ev.Kind), Data: ev.Payload})
			writeCancel()
			if err != nil {
				return
			}
		}
	}
}

func parseNamespace(raw string) (realtime.Namespace, bool) {
	switch realtime.Namespace(raw) {
	case realtime.NamespaceProcessTrack, realtime.NamespaceNotifications, realtime.NamespaceChat:
		return realtime.Namespace(raw), true
	case "":
		return realtime.NamespaceProcessTrack, true
	}
	return "", false
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && header[:len(prefix)] == prefix {
		return header[len(prefix):]
	}
	return ""
}
