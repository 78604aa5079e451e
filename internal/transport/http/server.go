// Package http hosts the chat core behind a gin engine. It extracts bytes
// from incoming requests, hands them to the router, and maps dispatch
// outcomes onto HTTP status codes.
package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/parlorchat/parlor/internal/config"
	"github.com/parlorchat/parlor/internal/router"
)

// NewServer builds the HTTP server around the request router. All chat
// routes flow through the bridge; gin only handles health checks directly.
func NewServer(rt *router.Router, cfg *config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(LoggerMiddleware(logger))
	engine.GET("/health", healthHandler)

	bridge := NewBridge(rt, cfg.MaxBodyBytes, logger)
	engine.NoRoute(bridge.Handle)

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           engine,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}
