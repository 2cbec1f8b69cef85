package router

import (
	"context"
	"io/fs"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/handler"
	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/middleware"
)

// Setup sets up all routes
func Setup(
	h *server.Hertz,
	formHandler *handler.FormHandler,
	healthHandler *handler.HealthHandler,
	static fs.FS,
) {
	// Global middleware
	h.Use(middleware.Recovery())
	h.Use(middleware.Logger())
	h.Use(middleware.CORS())

	// Health check routes
	h.GET("/ping", healthHandler.Ping)
	h.GET("/health/ready", healthHandler.Readiness)
	h.GET("/health/live", healthHandler.Liveness)

	// Page assets
	h.GET("/static/style.css", serveEmbedded(static, "style.css", "text/css; charset=utf-8"))
	h.GET("/static/app.js", serveEmbedded(static, "app.js", "application/javascript; charset=utf-8"))

	// Form page; plain HTML forms post here
	h.GET("/", formHandler.Page)
	h.POST("/select", formHandler.Select)
	h.POST("/submit", formHandler.Submit)
	h.POST("/reset", formHandler.Reset)

	// API v1 routes used by the page script
	apiV1 := h.Group("/api/v1")
	{
		apiV1.GET("/form", formHandler.State)
		apiV1.POST("/form/fields", formHandler.UpdateField)
	}
}

// serveEmbedded writes one embedded file with the given content type. The
// file is read once at startup.
func serveEmbedded(assets fs.FS, name, contentType string) app.HandlerFunc {
	data, err := fs.ReadFile(assets, name)
	return func(ctx context.Context, c *app.RequestContext) {
		if err != nil {
			c.String(consts.StatusNotFound, "file not found: %s", name)
			return
		}
		c.Data(consts.StatusOK, contentType, data)
	}
}
