package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/staffdesk/console/domain"
	appLogger "github.com/staffdesk/console/pkg/logger"
)

// TokenSource supplies the current bearer credential. Empty string means
// anonymous; no Authorization header is sent.
type TokenSource func() string

// Client is a thin JSON transport over fasthttp shared by all gateways.
type Client struct {
	baseURL string
	http    *fasthttp.Client
	timeout time.Duration
	token   TokenSource
	logger  *zap.Logger
}

// Options tunes the underlying fasthttp client.
type Options struct {
	RequestTimeout  time.Duration
	MaxConnsPerHost int
}

// NewClient creates a REST client rooted at baseURL (including the /api prefix).
func NewClient(baseURL string, token TokenSource, opts Options, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 10 * time.Second
	}
	if opts.MaxConnsPerHost <= 0 {
		opts.MaxConnsPerHost = 64
	}
	return &Client{
		baseURL: baseURL,
		http: &fasthttp.Client{
			MaxConnsPerHost: opts.MaxConnsPerHost,
			ReadTimeout:     opts.RequestTimeout,
			WriteTimeout:    opts.RequestTimeout,
		},
		timeout: opts.RequestTimeout,
		token:   token,
		logger:  logger,
	}
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Ping performs an unauthenticated GET against the API root and reports
// whether the upstream answered at all. Any HTTP status counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL)
	req.Header.SetMethod(fasthttp.MethodGet)

	return c.http.DoDeadline(req, resp, c.deadline(ctx))
}

// do executes an authenticated JSON request and decodes the response into out.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	return c.send(ctx, method, path, body, out, true)
}

// doAnonymous executes a request without the Authorization header; used by
// login and register, which run before a credential exists.
func (c *Client) doAnonymous(ctx context.Context, method, path string, body, out interface{}) error {
	return c.send(ctx, method, path, body, out, false)
}

func (c *Client) send(ctx context.Context, method, path string, body, out interface{}, authenticated bool) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(method)
	req.Header.SetContentType("application/json")

	correlationID := appLogger.CorrelationID(ctx)
	if correlationID == "" {
		correlationID = uuid.NewString()
	}
	req.Header.Set("X-Request-ID", correlationID)

	if authenticated && c.token != nil {
		if bearer := c.token(); bearer != "" {
			req.Header.Set("Authorization", "Bearer "+bearer)
		}
	}

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return domain.WrapError(domain.ErrCodeInvalid, "cannot encode request body", err)
		}
		req.SetBody(payload)
	}

	if err := c.http.DoDeadline(req, resp, c.deadline(ctx)); err != nil {
		c.logger.Warn("api request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("correlation_id", correlationID),
			zap.Error(err))
		return domain.WrapError(domain.ErrCodeFetchFailed, "api unreachable", err)
	}

	status := resp.StatusCode()
	if status >= http.StatusBadRequest {
		return mapStatus(method, status, resp.Body())
	}

	if out != nil && len(resp.Body()) > 0 {
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			return domain.WrapError(domain.ErrCodeFetchFailed, "cannot decode api response", err)
		}
	}
	return nil
}

func (c *Client) deadline(ctx context.Context) time.Time {
	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	return deadline
}

// serverMessage is the error body shape produced by the remote API.
type serverMessage struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// mapStatus converts an HTTP failure into a domain error, keeping the
// server-provided explanation so callers can render it verbatim.
func mapStatus(method string, status int, body []byte) error {
	message := extractMessage(body)
	if message == "" {
		message = fmt.Sprintf("unexpected status %d", status)
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return domain.NewError(domain.ErrCodeAuthFailed, message)
	case status == http.StatusNotFound:
		return domain.NewError(domain.ErrCodeNotFound, message)
	case method == fasthttp.MethodDelete:
		// Deletes are rejected with referential-integrity explanations
		// (e.g. a department that still has employees assigned).
		return domain.NewError(domain.ErrCodeDeleteRejected, message)
	case status == http.StatusConflict,
		status == http.StatusBadRequest,
		status == http.StatusUnprocessableEntity:
		return domain.NewError(domain.ErrCodeInvalid, message)
	default:
		return domain.NewError(domain.ErrCodeFetchFailed, message)
	}
}

func extractMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var payload serverMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}
