// Package wsapi talks to the workspace service over HTTP.
//
// Every response is an envelope {code, msg, data}. A non-2xx status or a
// body that does not decode is a transport failure and comes back as an
// error; a decoded envelope with a non-zero code is a logical failure and,
// for the action calls, comes back as a workspace.Result for the caller to
// judge.
package wsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"studiodash/internal/jsonutil"
	"studiodash/internal/logging"
	"studiodash/internal/trace"
	"studiodash/internal/workspace"
)

// maxBody caps how much of a response body is read.
const maxBody = 4 << 20

// ClientConfig holds configuration for creating a Client.
type ClientConfig struct {
	// BaseURL is the API root, e.g. "https://studio.dev.tencent.com/api".
	BaseURL string
	// HTTPClient is used for all requests. If nil, one with Timeout is built.
	HTTPClient *http.Client
	// Timeout bounds each request when HTTPClient is nil.
	Timeout time.Duration
	// GlobalKey, when set, is sent as X-Global-Key.
	GlobalKey string
	Logger    *slog.Logger
}

// Client is the workspace API client. It implements workspace.API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	globalKey  string
	logger     *slog.Logger
}

var _ workspace.API = (*Client)(nil)

// NewClient validates cfg and returns a Client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("wsapi: BaseURL is required")
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("wsapi: invalid BaseURL %q: %w", cfg.BaseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("wsapi: BaseURL %q must be absolute", cfg.BaseURL)
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: hc,
		globalKey:  cfg.GlobalKey,
		logger:     logger,
	}, nil
}

// BaseURL returns the API root without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListWorkspaces fetches the caller's workspaces.
func (c *Client) ListWorkspaces(ctx context.Context) (Listing, error) {
	env, err := c.do(ctx, "list", http.MethodGet, "/workspaces", "")
	if err != nil {
		return Listing{}, err
	}
	if env.Code != 0 {
		return Listing{}, &APIError{Op: "list", Code: env.Code, Msg: env.Msg}
	}
	var data listJSON
	if len(env.Data) > 0 {
		if err := jsonutil.UnmarshalWithContext(env.Data, &data, "wsapi: decode workspace list"); err != nil {
			return Listing{}, err
		}
	}
	out := Listing{OpenedSpaceKey: data.OpenedSpaceKey}
	for _, w := range data.Workspaces {
		out.Workspaces = append(out.Workspaces, w.model())
	}
	return out, nil
}

// QuitWorkspace stops spaceKey.
func (c *Client) QuitWorkspace(ctx context.Context, spaceKey string) (workspace.Result, error) {
	return c.action(ctx, "quit", http.MethodPost, "/workspaces/"+url.PathEscape(spaceKey)+"/quit", spaceKey)
}

// DeleteWorkspace moves spaceKey to the recycle bin.
func (c *Client) DeleteWorkspace(ctx context.Context, spaceKey string) (workspace.Result, error) {
	return c.action(ctx, "delete", http.MethodDelete, "/workspaces/"+url.PathEscape(spaceKey), spaceKey)
}

// RestoreWorkspace brings spaceKey back from the recycle bin.
func (c *Client) RestoreWorkspace(ctx context.Context, spaceKey string) (workspace.Result, error) {
	return c.action(ctx, "restore", http.MethodPost, "/workspaces/"+url.PathEscape(spaceKey)+"/restore", spaceKey)
}

func (c *Client) action(ctx context.Context, op, method, path, key string) (workspace.Result, error) {
	env, err := c.do(ctx, op, method, path, key)
	if err != nil {
		return workspace.Result{}, err
	}
	return workspace.Result{Code: env.Code, Msg: env.Msg}, nil
}

func (c *Client) do(ctx context.Context, op, method, path, key string) (env envelope, err error) {
	attrs := []attribute.KeyValue{trace.AttrHTTPRoute.String(method + " " + path)}
	if key != "" {
		attrs = append(attrs, trace.AttrWorkspaceKey.String(key))
	}
	ctx, span := trace.Start(ctx, "wsapi."+op, attrs...)
	defer func() {
		span.SetAttributes(trace.AttrAPICode.Int(env.Code))
		trace.End(span, err)
	}()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return envelope{}, fmt.Errorf("wsapi: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.globalKey != "" {
		req.Header.Set("X-Global-Key", c.globalKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return envelope{}, fmt.Errorf("wsapi: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return envelope{}, fmt.Errorf("wsapi: read response body: %w", err)
	}
	c.logger.Debug("workspace api call", "op", op, "method", method, "path", path,
		"status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		se := &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
		var failed envelope
		if json.Unmarshal(body, &failed) == nil {
			se.Msg = failed.Msg
		}
		return envelope{}, se
	}
	if err := jsonutil.UnmarshalWithContext(body, &env, "wsapi: decode "+op+" response"); err != nil {
		return envelope{}, err
	}
	return env, nil
}
