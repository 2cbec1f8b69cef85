package middleware

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/google/uuid"

	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/pkg/logger"
)

// RequestIDKey is the header carrying the request ID
const RequestIDKey = "X-Request-ID"

// Logger logs every request and stores a request scoped logger in ctx
func Logger() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		start := time.Now()
		path := string(c.Path())

		// Generate or reuse request ID
		requestID := string(c.Request.Header.Peek(RequestIDKey))
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Response.Header.Set(RequestIDKey, requestID)

		log := logger.WithRequestID(slog.Default(), requestID).With(
			"method", string(c.Method()),
			"path", path,
		)
		ctx = logger.WithContext(ctx, log)

		if skipLogging(path) {
			c.Next(ctx)
			return
		}

		log = log.With("client_ip", c.ClientIP())
		log.Debug("request started")

		c.Next(ctx)

		latency := time.Since(start)
		statusCode := c.Response.StatusCode()

		log = log.With(
			"status", statusCode,
			"latency", latency.String(),
			"latency_ms", latency.Milliseconds(),
		)

		if statusCode >= 500 {
			log.Error("request completed with server error")
		} else if statusCode >= 400 {
			log.Warn("request completed with client error")
		} else {
			log.Info("request completed successfully")
		}
	}
}

// skipLogging reports probes and static assets
func skipLogging(path string) bool {
	return path == "/ping" ||
		strings.HasPrefix(path, "/health/") ||
		strings.HasPrefix(path, "/static/")
}

// GetRequestID returns the request ID of the current request
func GetRequestID(c *app.RequestContext) string {
	return string(c.Response.Header.Peek(RequestIDKey))
}
