package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// HertzSlogAdapter routes Hertz framework logs into slog. Messages logged
// with a request context go to the request logger stored by WithContext.
type HertzSlogAdapter struct {
	logger *slog.Logger
	min    atomic.Int32
}

var _ hlog.FullLogger = (*HertzSlogAdapter)(nil)

// NewHertzSlogAdapter creates a Hertz logger writing to logger
func NewHertzSlogAdapter(logger *slog.Logger) *HertzSlogAdapter {
	a := &HertzSlogAdapter{
		logger: logger.With("component", "hertz"),
	}
	a.min.Store(int32(hlog.LevelTrace))
	return a
}

// slogLevel maps a Hertz level onto slog; trace folds into debug and
// notice into info. Fatal is logged as error, the process is not stopped.
func slogLevel(level hlog.Level) slog.Level {
	switch {
	case level <= hlog.LevelDebug:
		return slog.LevelDebug
	case level <= hlog.LevelNotice:
		return slog.LevelInfo
	case level == hlog.LevelWarn:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

func (h *HertzSlogAdapter) log(ctx context.Context, level hlog.Level, msg string) {
	if level < hlog.Level(h.min.Load()) {
		return
	}
	logger := h.logger
	if reqLogger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		logger = reqLogger.With("component", "hertz")
	}
	logger.Log(ctx, slogLevel(level), msg)
}

func (h *HertzSlogAdapter) Trace(v ...interface{})  { h.log(context.Background(), hlog.LevelTrace, sprint(v...)) }
func (h *HertzSlogAdapter) Debug(v ...interface{})  { h.log(context.Background(), hlog.LevelDebug, sprint(v...)) }
func (h *HertzSlogAdapter) Info(v ...interface{})   { h.log(context.Background(), hlog.LevelInfo, sprint(v...)) }
func (h *HertzSlogAdapter) Notice(v ...interface{}) { h.log(context.Background(), hlog.LevelNotice, sprint(v...)) }
func (h *HertzSlogAdapter) Warn(v ...interface{})   { h.log(context.Background(), hlog.LevelWarn, sprint(v...)) }
func (h *HertzSlogAdapter) Error(v ...interface{})  { h.log(context.Background(), hlog.LevelError, sprint(v...)) }
func (h *HertzSlogAdapter) Fatal(v ...interface{})  { h.log(context.Background(), hlog.LevelFatal, sprint(v...)) }

func (h *HertzSlogAdapter) Tracef(format string, v ...interface{}) {
	h.log(context.Background(), hlog.LevelTrace, fmt.Sprintf(format, v...))
}

func (h *HertzSlogAdapter) Debugf(format string, v ...interface{}) {
	h.log(context.Background(), hlog.LevelDebug, fmt.Sprintf(format, v...))
}

func (h *HertzSlogAdapter) Infof(format string, v ...interface{}) {
	h.log(context.Background(), hlog.LevelInfo, fmt.Sprintf(format, v...))
}

func (h *HertzSlogAdapter) Noticef(format string, v ...interface{}) {
	h.log(context.Background(), hlog.LevelNotice, fmt.Sprintf(format, v...))
}

func (h *HertzSlogAdapter) Warnf(format string, v ...interface{}) {
	h.log(context.Background(), hlog.LevelWarn, fmt.Sprintf(format, v...))
}

func (h *HertzSlogAdapter) Errorf(format string, v ...interface{}) {
	h.log(context.Background(), hlog.LevelError, fmt.Sprintf(format, v...))
}

func (h *HertzSlogAdapter) Fatalf(format string, v ...interface{}) {
	h.log(context.Background(), hlog.LevelFatal, fmt.Sprintf(format, v...))
}

func (h *HertzSlogAdapter) CtxTracef(ctx context.Context, format string, v ...interface{}) {
	h.log(ctx, hlog.LevelTrace, fmt.Sprintf(format, v...))
}

func (h *HertzSlogAdapter) CtxDebugf(ctx context.Context, format string, v ...interface{}) {
	h.log(ctx, hlog.LevelDebug, fmt.Sprintf(format, v...))
}

func (h *HertzSlogAdapter) CtxInfof(ctx context.Context, format string, v ...interface{}) {
	h.log(ctx, hlog.LevelInfo, fmt.Sprintf(format, v...))
}

func (h *HertzSlogAdapter) CtxNoticef(ctx context.Context, format string, v ...interface{}) {
	h.log(ctx, hlog.LevelNotice, fmt.Sprintf(format, v...))
}

func (h *HertzSlogAdapter) CtxWarnf(ctx context.Context, format string, v ...interface{}) {
	h.log(ctx, hlog.LevelWarn, fmt.Sprintf(format, v...))
}

func (h *HertzSlogAdapter) CtxErrorf(ctx context.Context, format string, v ...interface{}) {
	h.log(ctx, hlog.LevelError, fmt.Sprintf(format, v...))
}

func (h *HertzSlogAdapter) CtxFatalf(ctx context.Context, format string, v ...interface{}) {
	h.log(ctx, hlog.LevelFatal, fmt.Sprintf(format, v...))
}

// SetLevel drops Hertz messages below level; slog's own level still applies
func (h *HertzSlogAdapter) SetLevel(level hlog.Level) {
	h.min.Store(int32(level))
}

// SetOutput is a no-op; the output is owned by Setup
func (h *HertzSlogAdapter) SetOutput(writer io.Writer) {}

func sprint(v ...interface{}) string {
	if len(v) == 1 {
		if s, ok := v[0].(string); ok {
			return s
		}
	}
	return fmt.Sprint(v...)
}
