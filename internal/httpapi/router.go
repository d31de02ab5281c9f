package httpapi

import (
	"log/slog"

	"call-middleware/internal/telephony"
	"call-middleware/pkg/logger"

	"github.com/gin-gonic/gin"
)

// NewRouter composes middleware and routes into a gin engine.
// Everything it needs is passed in; nothing is registered globally.
func NewRouter(log *slog.Logger, provider telephony.Provider, events logger.EventLogger) *gin.Engine {
	if events == nil {
		events = logger.NewSlogEvents(log)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))
	r.Use(CORS())

	h := Handlers{Provider: provider, Events: events}
	r.GET("/health", h.Health)
	r.HEAD("/health", h.Health)
	r.GET("/test", h.Test)
	r.POST("/call", h.Call)

	return r
}
