package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/kalhintz/opinion-auto-trade/pkg/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The control plane is operator-local; origin checks add nothing here.
	CheckOrigin: func(r *http.Request) bool { return true },
}

const (
	logStreamBuffer = 256
	writeTimeout    = 10 * time.Second
)

// handleLogStream upgrades to a websocket and forwards the live log event
// stream until the client disconnects.
func (s *Server) handleLogStream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warnf("log stream upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	sub := s.bus.Subscribe(logStreamBuffer)
	defer s.bus.Unsubscribe(sub)

	// Reader goroutine: the client sends nothing meaningful, but reading is
	// how we notice the peer closing the connection.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case ev, ok := <-sub:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
