package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/KirkDiggler/rpg-fitness/internal/errors"
)

// DefaultTimeout bounds one gateway round-trip
const DefaultTimeout = 30 * time.Second

const maxErrorBody = 4096

// Config configures the HTTP gateway client
type Config struct {
	// URL receives the JSON request by POST
	URL string
	// APIKey is sent as a bearer token when set
	APIKey     string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Validate ensures the endpoint is set
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if strings.TrimSpace(c.URL) == "" {
		vb.RequiredField("URL")
	}

	return vb.Build()
}

type httpClient struct {
	url    string
	apiKey string
	client *http.Client
}

// NewHTTPClient creates a Client that posts requests as JSON
func NewHTTPClient(cfg *Config) (Client, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid gateway config")
	}

	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	return &httpClient{
		url:    strings.TrimSpace(cfg.URL),
		apiKey: strings.TrimSpace(cfg.APIKey),
		client: client,
	}, nil
}

func (c *httpClient) Generate(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, errors.InvalidArgument("request is required")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to encode gateway request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to build gateway request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "gateway request failed").
			WithMeta(errors.MetaIntent, string(req.Intent))
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		return nil, errors.Unavailablef("gateway returned status %d: %s", res.StatusCode, strings.TrimSpace(string(msg))).
			WithMeta(errors.MetaIntent, string(req.Intent)).
			WithMeta("status", res.StatusCode)
	}

	var out Response
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "gateway returned an unreadable response").
			WithMeta(errors.MetaIntent, string(req.Intent))
	}
	if strings.TrimSpace(out.Text) == "" && len(out.FunctionCalls) == 0 {
		return nil, errors.Unavailable("gateway returned an empty response").WithMeta(errors.MetaIntent, string(req.Intent))
	}

	slog.DebugContext(ctx, "gateway response",
		"intent", req.Intent,
		"function_calls", len(out.FunctionCalls),
		"duration", time.Since(start))
	return &out, nil
}
