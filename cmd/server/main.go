package main

import (
	"context"
	"html/template"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/network/netpoll"
	"github.com/spf13/cobra"

	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/config"
	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/handler"
	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/infrastructure/backend"
	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/router"
	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/usecase"
	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/pkg/logger"
	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/web"
)

var (
	cfgFile string
	version = "0.1.0"
)

var rootCmd = &cobra.Command{
	Use:   "eloader-server",
	Short: "Web form for preparing event logs",
	Long: `eloader-server serves the event log preparation form over HTTP.
Users pick an event log known to the encoding backend, adjust its encoding
parameters and download the encoded archive.`,
	Version: version,
	Run:     runServer,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to config file (default: configs/config.yaml if present)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func runServer(cmd *cobra.Command, args []string) {
	// Load configuration
	cfg, err := config.Load(cfgFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Setup(cfg.Log); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	slog.Info("eloader server starting...",
		"version", version,
		"config", cfgFile,
		"backend", cfg.Backend.BaseURL,
	)

	// Setup Hertz to use slog
	hlog.SetLogger(logger.NewHertzSlogAdapter(slog.Default()))
	if cfg.Server.Mode == "debug" {
		hlog.SetLevel(hlog.LevelDebug)
	} else {
		hlog.SetLevel(hlog.LevelInfo)
	}

	// Reload the log level when the config file changes
	cfg.Watch(func(next *config.Config) {
		if err := logger.SetLevel(next.Log.Level); err != nil {
			slog.Warn("ignoring log level from reloaded config", "error", err)
		}
	})

	// Encoding backend
	backendClient, err := backend.NewAPIClient(cfg.Backend.BaseURL, backend.Options{
		DialTimeout: cfg.Backend.DialTimeout,
	}, slog.Default())
	if err != nil {
		slog.Error("failed to create backend client", "error", err)
		os.Exit(1)
	}

	// Check backend connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if logs, err := backendClient.ListLogs(ctx); err != nil {
		slog.Warn("encoding backend not reachable, the form will retry on each page load", "error", err)
	} else {
		slog.Info("encoding backend reachable", "event_logs", len(logs))
	}
	cancel()

	tmpl, err := web.Templates(template.FuncMap{})
	if err != nil {
		slog.Error("failed to parse page templates", "error", err)
		os.Exit(1)
	}

	sessionUsecase := usecase.NewFormSessionUsecase(backendClient, cfg.Session.TTL, slog.Default())
	formHandler := handler.NewFormHandler(sessionUsecase, tmpl, handler.FormHandlerOptions{
		CookieName:    cfg.Session.CookieName,
		SessionTTL:    cfg.Session.TTL,
		EncodeTimeout: cfg.Backend.EncodeTimeout,
		Server:        backendClient.Server(),
	}, slog.Default())
	healthHandler := handler.NewHealthHandler(backendClient)

	h := server.Default(
		server.WithHostPorts(cfg.GetServerAddr()),
		server.WithReadTimeout(cfg.GetReadTimeout()),
		server.WithWriteTimeout(cfg.GetWriteTimeout()),
		server.WithMaxRequestBodySize(cfg.Server.MaxRequestBodySize),
		server.WithTransport(netpoll.NewTransporter),
	)

	// Setup routes
	router.Setup(h, formHandler, healthHandler, web.Static())

	slog.Info("server started successfully",
		"address", cfg.GetServerAddr(),
		"mode", cfg.Server.Mode,
	)

	// Graceful shutdown
	go func() {
		if err := h.Run(); err != nil {
			slog.Error("server run failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := h.Shutdown(ctx); err != nil {
		slog.Error("server shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully", "open_sessions", sessionUsecase.Count())
}
