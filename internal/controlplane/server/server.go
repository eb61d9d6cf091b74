package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kalhintz/opinion-auto-trade/internal/config"
	"github.com/kalhintz/opinion-auto-trade/internal/events"
	"github.com/kalhintz/opinion-auto-trade/internal/executor"
	"github.com/kalhintz/opinion-auto-trade/opinion/client"
)

// Server is the operator-facing control plane: topic listing, batch execution,
// config inspection/update, and the live log stream. It owns no trading state
// of its own; everything is delegated to the executor and the runtime store.
type Server struct {
	cfg     *config.Config
	runtime *config.Runtime
	venue   *client.Client
	exec    *executor.Executor
	bus     *events.Bus
}

// New wires a control-plane server.
func New(cfg *config.Config, runtime *config.Runtime, venue *client.Client, exec *executor.Executor, bus *events.Bus) *Server {
	return &Server{cfg: cfg, runtime: runtime, venue: venue, exec: exec, bus: bus}
}

// Router builds the HTTP handler.
func (s *Server) Router() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })

	api := r.Group("/api")
	api.GET("/topics", s.handleListTopics)
	api.POST("/trade/execute", s.handleExecute)
	api.GET("/config", s.handleGetConfig)
	api.PUT("/config", s.handleUpdateConfig)

	r.GET("/ws/logs", s.handleLogStream)

	return r
}
