package router

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"testing/fstest"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/domain/mocks"
	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/handler"
	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/usecase"
	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/web"
)

func TestSetupRoutes(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	backend := &mocks.MockEncoderBackend{
		ListLogsFunc: func(ctx context.Context) ([]string, error) {
			return []string{"helpdesk"}, nil
		},
	}

	tmpl, err := web.Templates(nil)
	require.NoError(t, err)

	uc := usecase.NewFormSessionUsecase(backend, time.Hour, logger)
	formHandler := handler.NewFormHandler(uc, tmpl, handler.FormHandlerOptions{SessionTTL: time.Hour}, logger)

	h := server.New(server.WithHostPorts("127.0.0.1:0"))
	Setup(h, formHandler, handler.NewHealthHandler(backend), web.Static())

	tests := []struct {
		method      string
		path        string
		status      int
		contentType string
	}{
		{consts.MethodGet, "/", consts.StatusOK, "text/html"},
		{consts.MethodGet, "/api/v1/form", consts.StatusOK, "application/json"},
		{consts.MethodGet, "/static/style.css", consts.StatusOK, "text/css"},
		{consts.MethodGet, "/static/app.js", consts.StatusOK, "application/javascript"},
		{consts.MethodGet, "/ping", consts.StatusOK, "application/json"},
		{consts.MethodGet, "/health/ready", consts.StatusOK, "application/json"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := ut.PerformRequest(h.Engine, tt.method, tt.path, nil)
			resp := w.Result()
			assert.Equal(t, tt.status, resp.StatusCode())
			assert.Contains(t, string(resp.Header.ContentType()), tt.contentType)
		})
	}
}

func TestServeEmbeddedMissingFile(t *testing.T) {
	h := server.New(server.WithHostPorts("127.0.0.1:0"))
	h.GET("/missing.js", serveEmbedded(fstest.MapFS{}, "missing.js", "application/javascript"))

	w := ut.PerformRequest(h.Engine, consts.MethodGet, "/missing.js", nil)
	assert.Equal(t, consts.StatusNotFound, w.Result().StatusCode())
}
