package middleware

import (
	"context"
	"log/slog"
	"testing"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/config"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/cloudwego/hertz/pkg/route"
	"github.com/stretchr/testify/assert"

	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/pkg/logger"
)

func newEngine() *route.Engine {
	engine := route.NewEngine(config.NewOptions(nil))
	engine.Use(Recovery(), Logger(), CORS())
	return engine
}

func TestLoggerRequestID(t *testing.T) {
	engine := newEngine()

	var sawLogger bool
	engine.GET("/x", func(ctx context.Context, c *app.RequestContext) {
		sawLogger = logger.FromContext(ctx) != slog.Default()
		c.String(consts.StatusOK, "ok")
	})

	w := ut.PerformRequest(engine, consts.MethodGet, "/x", nil)
	assert.NotEmpty(t, string(w.Result().Header.Peek(RequestIDKey)))
	assert.True(t, sawLogger)

	w = ut.PerformRequest(engine, consts.MethodGet, "/x", nil, ut.Header{Key: RequestIDKey, Value: "req-1"})
	assert.Equal(t, "req-1", string(w.Result().Header.Peek(RequestIDKey)))
}

func TestRecovery(t *testing.T) {
	engine := newEngine()
	engine.GET("/panic", func(ctx context.Context, c *app.RequestContext) {
		panic("boom")
	})

	w := ut.PerformRequest(engine, consts.MethodGet, "/panic", nil)
	resp := w.Result()
	assert.Equal(t, consts.StatusInternalServerError, resp.StatusCode())
	assert.Contains(t, string(resp.Body()), "INTERNAL_ERROR")
}

func TestCORSPreflight(t *testing.T) {
	engine := newEngine()
	engine.OPTIONS("/api/v1/form", func(ctx context.Context, c *app.RequestContext) {
		c.String(consts.StatusOK, "unreachable")
	})

	w := ut.PerformRequest(engine, consts.MethodOptions, "/api/v1/form", nil)
	resp := w.Result()
	assert.Equal(t, consts.StatusNoContent, resp.StatusCode())
	assert.Equal(t, "GET, POST, OPTIONS", string(resp.Header.Peek("Access-Control-Allow-Methods")))
}

func TestSkipLogging(t *testing.T) {
	assert.True(t, skipLogging("/ping"))
	assert.True(t, skipLogging("/health/ready"))
	assert.True(t, skipLogging("/static/app.js"))
	assert.False(t, skipLogging("/submit"))
}
