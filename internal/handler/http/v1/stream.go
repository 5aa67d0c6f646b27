package v1

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// newUpgrader строит Upgrader с проверкой Origin.
// Без списка действует проверка gorilla по умолчанию: Origin должен совпадать с Host.
// "*" в списке открывает поток для любого Origin.
func newUpgrader(allowedOrigins []string) websocket.Upgrader {
	u := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
	if len(allowedOrigins) == 0 {
		return u
	}

	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		if origin == "*" {
			u.CheckOrigin = func(*http.Request) bool { return true }
			return u
		}
		allowed[strings.ToLower(strings.TrimRight(origin, "/"))] = struct{}{}
	}
	u.CheckOrigin = func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if _, ok := allowed[strings.ToLower(origin)]; ok {
			return true
		}
		return sameOrigin(origin, r.Host)
	}
	return u
}

func sameOrigin(origin, host string) bool {
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, host)
}

// @Summary Subscribe to session events
// @Description WebSocket stream of status_changed, coordinate, contacts_changed and error events of the current user.
// @Tags Stream
// @Security BearerAuth
// @Param access_token query string false "Bearer token for clients that cannot set headers"
// @Success 101 "Switching Protocols"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 "Origin not allowed"
// @Router /stream [get]
func (h *Handler) streamEvents(c *gin.Context) {
	id := identityFrom(c)
	log := h.logger.WithField("method", "streamEvents").WithField("user_id", id.UserID)
	if !id.Authenticated() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	// при отказе по Origin Upgrade сам отвечает 403
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.WithError(err).Warn("Failed to upgrade connection")
		return
	}
	defer conn.Close()

	client := h.hub.Register(id.UserID)
	defer h.hub.Unregister(client)
	log.Info("Stream client connected")

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer conn.Close()
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case msg, ok := <-client.Send:
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if !ok {
					_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
					return
				}
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					return
				}
			case <-ticker.C:
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	// клиент ничего не присылает, чтение нужно для pong и закрытия
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.hub.Unregister(client)
	<-done
	log.Info("Stream client disconnected")
}
