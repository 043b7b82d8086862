package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// client is one WebSocket subscriber to a session's snapshots.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

// serveWS upgrades the request and pushes a snapshot after every change to
// the session, timer fires included. Client messages are ignored.
func (s *Server) serveWS(c *gin.Context) {
	e, err := s.lookup(c.Param("id"))
	if err != nil {
		s.handleError(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		e.log.Warn("Failed to upgrade connection", zap.Error(err))
		return
	}
	cl := &client{conn: conn, send: make(chan []byte, 16)}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "session closed"))
		_ = conn.Close()
		return
	}
	first, err := json.Marshal(e.render(e.ctrl.Snapshot(), nil))
	if err == nil {
		cl.send <- first
	}
	e.subscribeLocked(cl)
	e.touch()
	e.mu.Unlock()

	e.log.Info("WebSocket connection established")
	go cl.writePump(e.log)
	go cl.readPump(e)
}

func (cl *client) readPump(e *entry) {
	defer func() {
		e.unsubscribe(cl)
		_ = cl.conn.Close()
	}()
	cl.conn.SetReadLimit(maxMessageSize)
	_ = cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		return cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				e.log.Warn("WebSocket read error", zap.Error(err))
			}
			return
		}
	}
}

func (cl *client) writePump(log *zap.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = cl.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-cl.send:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = cl.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := cl.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Debug("WebSocket write failed", zap.Error(err))
				return
			}
		case <-ticker.C:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
