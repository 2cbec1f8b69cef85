// Package backend talks to the event log encoding service over HTTP.
package backend

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/common/config"
	"github.com/cloudwego/hertz/pkg/network/standard"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/domain"
	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/domain/entity"
)

// DefaultServer is the address the encoding backend listens on by default
const DefaultServer = "http://127.0.0.1:8000"

// logListResponse is the body of the catalog endpoint
type logListResponse struct {
	Logs []string `json:"logs"`
}

// logPropertiesResponse is the body of the properties endpoint
type logPropertiesResponse struct {
	EventLogName string                `json:"event_log_name"`
	Properties   *entity.LogProperties `json:"properties"`
}

// Options tunes the HTTP client
type Options struct {
	DialTimeout         time.Duration
	MaxIdleConnDuration time.Duration
}

// APIClient wraps the Hertz client for the encoding backend
type APIClient struct {
	client *client.Client
	server string
	logger *slog.Logger
}

var _ domain.EncoderBackend = (*APIClient)(nil)

// NewAPIClient creates a new backend client
func NewAPIClient(server string, opts Options, logger *slog.Logger) (*APIClient, error) {
	normalizedServer, err := NormalizeServerURL(server)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}

	if opts.DialTimeout <= 0 {
		opts.DialTimeout = 10 * time.Second
	}
	if opts.MaxIdleConnDuration <= 0 {
		opts.MaxIdleConnDuration = 60 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	// No read timeout here: encoding can run for minutes. Each request is
	// bounded by its context in do.
	c, err := client.NewClient(
		client.WithDialTimeout(opts.DialTimeout),
		client.WithMaxIdleConnDuration(opts.MaxIdleConnDuration),
		client.WithDialer(standard.NewDialer()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	return &APIClient{
		client: c,
		server: normalizedServer,
		logger: logger.With("component", "backend", "server", normalizedServer),
	}, nil
}

// Server returns the normalized base address
func (c *APIClient) Server() string {
	return c.server
}

// NormalizeServerURL ensures the address has a scheme and no path or trailing slash
func NormalizeServerURL(server string) (string, error) {
	server = strings.TrimSpace(server)
	if server == "" {
		return "", fmt.Errorf("empty server URL")
	}

	if !strings.Contains(server, "://") {
		server = "http://" + server
	}

	u, err := url.Parse(server)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("invalid server URL")
	}

	return fmt.Sprintf("%s://%s", u.Scheme, u.Host), nil
}

// ListLogs returns the identifiers of all event logs known to the backend
func (c *APIClient) ListLogs(ctx context.Context) ([]string, error) {
	req := protocol.AcquireRequest()
	req.SetMethod(consts.MethodGet)
	req.SetRequestURI(c.server + endpointLogs)

	var listResp logListResponse
	err := c.do(ctx, req, maxRedirects, func(resp *protocol.Response) error {
		if resp.StatusCode() != consts.StatusOK {
			return fmt.Errorf("failed to list event logs (HTTP %d)", resp.StatusCode())
		}
		if err := sonic.Unmarshal(resp.Body(), &listResp); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if listResp.Logs == nil {
		return []string{}, nil
	}
	return listResp.Logs, nil
}

// GetLogProperties returns the default property record of one event log
func (c *APIClient) GetLogProperties(ctx context.Context, name string) (*entity.LogProperties, error) {
	req := protocol.AcquireRequest()
	req.SetMethod(consts.MethodGet)
	req.SetRequestURI(c.server + fmt.Sprintf(endpointLogProperties, url.PathEscape(name)))

	var propsResp logPropertiesResponse
	err := c.do(ctx, req, maxRedirects, func(resp *protocol.Response) error {
		switch resp.StatusCode() {
		case consts.StatusOK:
		case consts.StatusNotFound:
			return domain.NewNotFoundError("event log", name)
		default:
			return fmt.Errorf("failed to get properties of %q (HTTP %d)", name, resp.StatusCode())
		}
		if err := sonic.Unmarshal(resp.Body(), &propsResp); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if propsResp.Properties == nil {
		return nil, fmt.Errorf("response for %q carries no properties", name)
	}

	return propsResp.Properties, nil
}

// EncodeEventLog sends the encoding request and returns the archive bytes
func (c *APIClient) EncodeEventLog(ctx context.Context, encodeReq *entity.EncodeRequest) ([]byte, error) {
	bodyBytes, err := sonic.Marshal(encodeReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req := protocol.AcquireRequest()
	req.SetMethod(consts.MethodPost)
	req.SetRequestURI(c.server + endpointEncodeEventLog)
	req.Header.SetContentTypeBytes([]byte("application/json"))
	req.SetBody(bodyBytes)

	start := time.Now()
	var data []byte
	err = c.do(ctx, req, 0, func(resp *protocol.Response) error {
		statusCode := resp.StatusCode()
		if statusCode < 200 || statusCode >= 300 {
			return fmt.Errorf("encode failed with HTTP status: %d, body: %s", statusCode, truncate(resp.Body(), 512))
		}
		// The body belongs to the pooled response.
		body := resp.Body()
		data = make([]byte, len(body))
		copy(data, body)
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Debug("encoding response received",
		"event_log", encodeReq.EventLogName,
		"bytes", len(data),
		"latency_ms", time.Since(start).Milliseconds(),
	)
	return data, nil
}

// do sends req and hands the response to read. It takes ownership of req.
// The call returns once ctx is done even if the backend has not answered;
// the abandoned exchange releases its buffers when it completes.
func (c *APIClient) do(ctx context.Context, req *protocol.Request, redirects int, read func(*protocol.Response) error) error {
	resp := protocol.AcquireResponse()
	release := func() {
		protocol.ReleaseRequest(req)
		protocol.ReleaseResponse(resp)
	}

	if err := ctx.Err(); err != nil {
		release()
		return domain.NewBackendUnavailableError(err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		req.SetOptions(config.WithRequestTimeout(time.Until(deadline)))
	}

	done := make(chan error, 1)
	go func() {
		if redirects > 0 {
			done <- c.client.DoRedirects(ctx, req, resp, redirects)
			return
		}
		done <- c.client.Do(ctx, req, resp)
	}()

	select {
	case err := <-done:
		defer release()
		if err != nil {
			return domain.NewBackendUnavailableError(err)
		}
		return read(resp)
	case <-ctx.Done():
		go func() {
			<-done
			release()
		}()
		c.logger.Debug("request abandoned", "error", ctx.Err())
		return domain.NewBackendUnavailableError(ctx.Err())
	}
}

func truncate(body []byte, limit int) string {
	if len(body) <= limit {
		return string(body)
	}
	return string(body[:limit]) + "..."
}
