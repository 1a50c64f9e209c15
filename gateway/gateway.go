package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/jrsteele09/recyclemate/internal/errors"
	"github.com/jrsteele09/recyclemate/internal/utils"
	"github.com/jrsteele09/recyclemate/sessions"
)

// DefaultLoginRoute is where a rejected session is sent
const DefaultLoginRoute = "/login"

var allowedMethods = map[string]struct{}{
	http.MethodGet:    {},
	http.MethodPost:   {},
	http.MethodPatch:  {},
	http.MethodDelete: {},
}

// Client is the single chokepoint for backend calls. Every request passes the same
// middleware chain: logging, request id, 401 teardown, bearer injection, transport.
type Client struct {
	sessions   sessions.Repo
	httpClient *http.Client
	navigator  Navigator
	loginRoute string
	env        string
	extra      []Middleware

	mu       sync.RWMutex
	baseURL  string
	once     sync.Once
	pipeline Doer
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the transport timeout on a copy of the current http.Client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		hc := *c.httpClient
		hc.Timeout = timeout
		c.httpClient = &hc
	}
}

func WithNavigator(n Navigator) Option {
	return func(c *Client) { c.navigator = n }
}

func WithLoginRoute(route string) Option {
	return func(c *Client) { c.loginRoute = route }
}

func WithEnv(env string) Option {
	return func(c *Client) { c.env = env }
}

// WithMiddleware adds interceptors that run after the built-in ones, closest to the transport.
func WithMiddleware(mw ...Middleware) Option {
	return func(c *Client) { c.extra = append(c.extra, mw...) }
}

func New(repo sessions.Repo, opts ...Option) *Client {
	c := &Client{
		sessions:   repo,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		navigator:  logNavigator{},
		loginRoute: DefaultLoginRoute,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configure sets the backend origin. The interceptor chain is built on the first call only,
// so configuring again just swaps the origin.
func (c *Client) Configure(baseURL string) error {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.Wrapf(errors.ErrInvalidBaseURL, "[Client Configure] %q", baseURL)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.once.Do(func() {
		mw := []Middleware{
			Logging(c.env),
			RequestID,
			UnauthorizedTeardown(c.sessions, c.navigator, c.loginRoute),
			BearerAuth(c.sessions),
		}
		mw = append(mw, c.extra...)
		c.pipeline = ChainMiddleware(c.httpClient, mw...)
	})
	c.baseURL = strings.TrimRight(u.String(), "/")
	return nil
}

func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// Sessions exposes the store the client reads credentials from
func (c *Client) Sessions() sessions.Repo {
	return c.sessions
}

// Navigator exposes the navigator used on session teardown
func (c *Client) Navigator() Navigator {
	return c.navigator
}

type requestOptions struct {
	public bool
	header http.Header
}

type RequestOption func(*requestOptions)

// Public marks an auth endpoint (login, signup): no credential is attached and a 401
// means bad credentials rather than an expired session.
func Public() RequestOption {
	return func(o *requestOptions) { o.public = true }
}

func WithHeader(key, value string) RequestOption {
	return func(o *requestOptions) {
		if o.header == nil {
			o.header = make(http.Header)
		}
		o.header.Set(key, value)
	}
}

// Response is a successful (2xx) backend response
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Decode unmarshals the JSON body into v. An empty body leaves v untouched.
func (r *Response) Decode(v any) error {
	if len(bytes.TrimSpace(r.Body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("[Response Decode] %w", err)
	}
	return nil
}

// DecodeKey unmarshals the value nested under key, as in {"users": [...]}.
func (r *Response) DecodeKey(key string, v any) error {
	var envelope map[string]json.RawMessage
	if err := r.Decode(&envelope); err != nil {
		return err
	}
	raw, ok := envelope[key]
	if !ok {
		return fmt.Errorf("[Response DecodeKey] missing %q in response: %w", key, errors.ErrNotFound)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("[Response DecodeKey] %s: %w", key, err)
	}
	return nil
}

// Request issues method path with an optional JSON body.
// Errors are *NetworkError when no response arrived and *HTTPError for non-2xx statuses.
func (c *Client) Request(ctx context.Context, method, path string, body any, opts ...RequestOption) (*Response, error) {
	c.mu.RLock()
	baseURL, pipeline := c.baseURL, c.pipeline
	c.mu.RUnlock()
	if pipeline == nil {
		return nil, errors.ErrNotConfigured
	}

	method = strings.ToUpper(method)
	if _, ok := allowedMethods[method]; !ok {
		return nil, errors.Wrapf(errors.ErrInvalidMethod, "[Client Request] %s", method)
	}
	if err := c.validatePath(path); err != nil {
		return nil, err
	}

	var ro requestOptions
	for _, opt := range opts {
		opt(&ro)
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("[Client Request] encode body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	if ro.public {
		ctx = withPublic(ctx)
	}
	req, err := http.NewRequestWithContext(ctx, method, utils.JoinPath(baseURL, path), reader)
	if err != nil {
		return nil, fmt.Errorf("[Client Request] %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range ro.header {
		req.Header[k] = v
	}

	resp, err := pipeline.Do(req)
	if err != nil {
		return nil, &NetworkError{Method: method, URL: req.URL.String(), Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Method: method, URL: req.URL.String(), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newHTTPError(req, resp.StatusCode, data)
	}
	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: data}, nil
}

func (c *Client) validatePath(path string) error {
	if path == "" || strings.Contains(path, "://") || strings.HasPrefix(path, "//") {
		return errors.Wrapf(errors.ErrInvalidPath, "[Client Request] %q", path)
	}
	u, err := url.Parse(path)
	if err != nil {
		return errors.Wrapf(errors.ErrInvalidPath, "[Client Request] %q", path)
	}
	if session, err := c.sessions.Get(); err == nil && carriesToken(u, session.Token) {
		return errors.ErrCredentialInPath
	}
	return nil
}

// carriesToken reports whether a path segment or query value is the token itself.
// Ids that merely contain the token's characters are fine.
func carriesToken(u *url.URL, token string) bool {
	for _, segment := range strings.Split(u.Path, "/") {
		if segment == token {
			return true
		}
	}
	for _, values := range u.Query() {
		for _, v := range values {
			if v == token {
				return true
			}
		}
	}
	return false
}

// Do issues a request and decodes the response body into T.
func Do[T any](ctx context.Context, c *Client, method, path string, body any, opts ...RequestOption) (T, error) {
	var out T
	resp, err := c.Request(ctx, method, path, body, opts...)
	if err != nil {
		return out, err
	}
	if err := resp.Decode(&out); err != nil {
		return out, err
	}
	return out, nil
}

// DoKey issues a request and decodes the value nested under key into T.
func DoKey[T any](ctx context.Context, c *Client, method, path, key string, body any, opts ...RequestOption) (T, error) {
	var out T
	resp, err := c.Request(ctx, method, path, body, opts...)
	if err != nil {
		return out, err
	}
	if err := resp.DecodeKey(key, &out); err != nil {
		return out, err
	}
	return out, nil
}
