package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tenacious-integration/deskctl/internal/logging"
)

// RequestIDHeader carries the per-call correlation id.
const RequestIDHeader = "X-Request-ID"

// Gateway is the uniform call mechanism used by the typed client.
type Gateway interface {
	Call(ctx context.Context, procedure string, args Args) (*Envelope, error)
	CallDoc(ctx context.Context, doctype, name, method string, args Args) (*Envelope, error)
	GetDoc(ctx context.Context, doctype, name string) (map[string]any, error)
	UpdateDoc(ctx context.Context, doctype, name string, fields map[string]any) (map[string]any, error)
	SetCredentials(apiKey, apiSecret string)
}

// HTTPGateway talks to the server over its HTTP API.
type HTTPGateway struct {
	baseURL *url.URL
	http    *http.Client
	logger  logging.Logger

	mu        sync.RWMutex
	apiKey    string
	apiSecret string
}

type Option func(*HTTPGateway)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(g *HTTPGateway) { g.http = c }
}

// WithTimeout sets the transport timeout of the default client.
func WithTimeout(d time.Duration) Option {
	return func(g *HTTPGateway) { g.http.Timeout = d }
}

// WithCredentials sets the API key/secret used for token auth.
func WithCredentials(apiKey, apiSecret string) Option {
	return func(g *HTTPGateway) { g.apiKey, g.apiSecret = apiKey, apiSecret }
}

// NewHTTPGateway builds a gateway for the site at siteURL.
func NewHTTPGateway(siteURL string, logger logging.Logger, opts ...Option) (*HTTPGateway, error) {
	u, err := url.Parse(strings.TrimRight(siteURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse site url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("site url %q must include scheme and host", siteURL)
	}

	g := &HTTPGateway{
		baseURL: u,
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// SetCredentials swaps the API token. Calls already in flight keep the
// token they started with.
func (g *HTTPGateway) SetCredentials(apiKey, apiSecret string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.apiKey, g.apiSecret = apiKey, apiSecret
}

func (g *HTTPGateway) authHeader() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.apiKey == "" && g.apiSecret == "" {
		return ""
	}
	return "token " + g.apiKey + ":" + g.apiSecret
}

func (g *HTTPGateway) endpoint(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return g.baseURL.String() + "/" + strings.Join(escaped, "/")
}

// Call posts args to /api/method/<procedure>.
func (g *HTTPGateway) Call(ctx context.Context, procedure string, args Args) (*Envelope, error) {
	form, err := args.Encode()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", procedure, err)
	}

	body, err := g.do(ctx, procedure, http.MethodPost, g.endpoint("api", "method", procedure),
		"application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}

	env, err := parseEnvelope(procedure, body)
	if err != nil {
		return nil, &TransportError{Procedure: procedure, Kind: ErrBadResponse, Err: err}
	}
	recordNotice(ctx, procedure, env.ServerMessages, env.Exc != "")
	if env.Exc != "" {
		return nil, &TransportError{
			Procedure:      procedure,
			Kind:           ErrServerException,
			ExcType:        env.ExcType,
			ServerMessages: env.ServerMessages,
		}
	}
	return env, nil
}

// CallDoc runs a whitelisted method on the document doctype/name.
func (g *HTTPGateway) CallDoc(ctx context.Context, doctype, name, method string, args Args) (*Envelope, error) {
	if _, err := args.Encode(); err != nil {
		return nil, fmt.Errorf("%s.%s: %w", doctype, method, err)
	}

	if args == nil {
		args = Args{}
	}
	payload, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("%s.%s: %w", doctype, method, err)
	}

	env, err := g.Call(ctx, "run_doc_method", Args{
		"dt":     doctype,
		"dn":     name,
		"method": method,
		"args":   string(payload),
	})
	if env != nil {
		env.Procedure = doctype + "." + method
	}
	var te *TransportError
	if errors.As(err, &te) {
		te.Procedure = doctype + "." + method
	}
	return env, err
}

// GetDoc fetches a document through the resource API.
func (g *HTTPGateway) GetDoc(ctx context.Context, doctype, name string) (map[string]any, error) {
	label := "get " + doctype
	body, err := g.do(ctx, label, http.MethodGet, g.endpoint("api", "resource", doctype, name), "", nil)
	if err != nil {
		return nil, err
	}
	return decodeResource(label, body)
}

// UpdateDoc writes fields to doctype/name and returns the saved document.
func (g *HTTPGateway) UpdateDoc(ctx context.Context, doctype, name string, fields map[string]any) (map[string]any, error) {
	label := "update " + doctype
	payload, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", label, err)
	}

	body, err := g.do(ctx, label, http.MethodPut, g.endpoint("api", "resource", doctype, name),
		"application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	return decodeResource(label, body)
}

func decodeResource(label string, body []byte) (map[string]any, error) {
	var res struct {
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, &TransportError{Procedure: label, Kind: ErrBadResponse, Err: err}
	}
	if res.Data == nil {
		return nil, &TransportError{Procedure: label, Kind: ErrBadResponse, Err: errors.New("no data in response")}
	}
	return res.Data, nil
}

func (g *HTTPGateway) do(ctx context.Context, label, method, target, contentType string, body io.Reader) ([]byte, error) {
	requestID := uuid.NewString()
	log := g.logger.With("procedure", label, "request_id", requestID)

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, &TransportError{Procedure: label, Kind: ErrUnavailable, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if auth := g.authHeader(); auth != "" {
		req.Header.Set("Authorization", auth)
	}

	start := time.Now()
	resp, err := g.http.Do(req)
	if err != nil {
		log.Warn(ctx, "rpc transport failure", "error", err)
		return nil, &TransportError{Procedure: label, Kind: ErrUnavailable, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn(ctx, "rpc read failure", "error", err)
		return nil, &TransportError{Procedure: label, StatusCode: resp.StatusCode, Kind: ErrUnavailable, Err: err}
	}

	log.Debug(ctx, "rpc call", "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return data, nil
	}

	te := &TransportError{Procedure: label, StatusCode: resp.StatusCode, Kind: kindForStatus(resp.StatusCode)}
	if env, perr := parseEnvelope(label, data); perr == nil {
		te.ExcType = env.ExcType
		te.ServerMessages = env.ServerMessages
		recordNotice(ctx, label, env.ServerMessages, true)
	}
	log.Warn(ctx, "rpc failed", "status", resp.StatusCode, "exc_type", te.ExcType)
	return nil, te
}

func kindForStatus(code int) error {
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return ErrUnavailable
	default:
		return ErrServerException
	}
}

// Close releases idle keep-alive connections.
func (g *HTTPGateway) Close() error {
	g.http.CloseIdleConnections()
	return nil
}
