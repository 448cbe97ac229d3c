// Package http implements the request executor: it issues one outbound call
// against the Libs backend with auth headers, a per-call deadline, a local
// body-size clamp, read-through response caching, and write-path cache
// invalidation, and normalizes every failure through the typed error
// classifier.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/libshub/libs-client/internal/constants"
	"github.com/libshub/libs-client/pkg/libs"
)

// Logger interface for HTTP client logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Request represents an API request.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Headers map[string]string
	Body    interface{}

	// SkipCache bypasses the read-through cache for a GET.
	SkipCache bool

	// CacheTTL overrides the cache's default TTL for this response.
	CacheTTL time.Duration

	// CacheExtras are caller-supplied disambiguators mixed into the cache key.
	CacheExtras map[string]string

	// Timeout overrides the client's per-call deadline.
	Timeout time.Duration
}

// Response represents an API response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client executes requests against the backend.
type Client struct {
	baseURL    string
	token      string
	httpClient *retryablehttp.Client
	userAgent  string
	debug      bool
	logger     Logger
	cache      *libs.MemoryCache
	cacheTTL   time.Duration
	timeout    time.Duration
}

// Option configures the client.
type Option func(*Client)

// WithLogger sets a structured logger.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the default User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRetryConfig opts in to transport retries for transient failures.
// Without it every call is a single attempt.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// WithCache attaches a response cache with the given default TTL.
func WithCache(cache *libs.MemoryCache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = cache
		c.cacheTTL = ttl
	}
}

// WithTimeout sets the default per-call deadline.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// NewClient creates a new API client. The token is attached as a Bearer
// credential on every request.
func NewClient(baseURL, token string, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.Logger = nil
	// Surface the final response instead of a "giving up" error, so non-2xx
	// statuses reach the typed classifier with their body intact.
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	client := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		token:      token,
		httpClient: retryClient,
		timeout:    constants.DefaultRequestTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Do executes a request and returns the response. Failures are always one of
// the typed errors of pkg/libs, never raw transport errors.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	bodyBytes, err := c.marshalBody(req)
	if err != nil {
		return nil, err
	}

	headers := c.effectiveHeaders(req)
	fullURL := c.buildURL(req)

	cacheKey := ""
	cacheable := req.Method == http.MethodGet && c.cache != nil && !req.SkipCache

	if cacheable {
		cacheKey = libs.BuildCacheKey(req.Method, req.Path, req.Query, headers, req.CacheExtras)
		if cached, ok := c.cache.Get(cacheKey); ok {
			if c.debug && c.logger != nil {
				c.logger.Debug("Cache hit", map[string]interface{}{
					"method": req.Method,
					"path":   req.Path,
				})
			}

			return &Response{StatusCode: constants.HTTPStatusOK, Body: cached}, nil
		}
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = c.timeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := c.send(ctx, req, fullURL, headers, bodyBytes, timeout)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= constants.HTTPStatusBadRequest {
		return resp, c.upstreamError(req, resp)
	}

	if cacheable {
		c.cache.Set(cacheKey, resp.Body, req.CacheTTL)
	}

	if req.Method != http.MethodGet && c.cache != nil {
		// A successful mutation drops the whole resource family's cached
		// reads, lists and details alike.
		c.cache.InvalidatePrefix("GET:" + collectionPath(req.Path))
	}

	return resp, nil
}

// marshalBody serializes the request body and applies the local size clamp.
func (c *Client) marshalBody(req *Request) ([]byte, error) {
	if req.Body == nil {
		return nil, nil
	}

	bodyBytes, err := json.Marshal(req.Body)
	if err != nil {
		return nil, libs.Classify(fmt.Errorf("marshaling request body: %w", err), nil)
	}

	if len(bodyBytes) > constants.MaxRequestBodyBytes {
		return nil, &libs.APIError{
			StatusCode: constants.HTTPStatusPayloadTooLarge,
			Message:    fmt.Sprintf("Request body exceeds %d bytes", constants.MaxRequestBodyBytes),
			Context:    map[string]any{"bodySize": len(bodyBytes)},
		}
	}

	return bodyBytes, nil
}

func (c *Client) effectiveHeaders(req *Request) map[string]string {
	headers := map[string]string{
		"Accept":       "application/json",
		"Content-Type": "application/json",
	}

	if c.token != "" {
		headers["Authorization"] = "Bearer " + c.token
	}

	if c.userAgent != "" {
		headers["User-Agent"] = c.userAgent
	}

	// Caller overrides win.
	for name, value := range req.Headers {
		headers[name] = value
	}

	return headers
}

func (c *Client) buildURL(req *Request) string {
	fullURL := c.baseURL + req.Path
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	return fullURL
}

func (c *Client) send(ctx context.Context, req *Request, fullURL string, headers map[string]string, body []byte, timeout time.Duration) (*Response, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, bodyReader)
	if err != nil {
		return nil, libs.Classify(fmt.Errorf("building request: %w", err), nil)
	}

	for name, value := range headers {
		httpReq.Header.Set(name, value)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    fullURL,
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, libs.Classify(err, &libs.ClassifyContext{
			Timeout: timeout,
			Fields:  map[string]any{"method": req.Method, "path": req.Path},
		})
	}

	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, libs.Classify(fmt.Errorf("reading response body: %w", err), &libs.ClassifyContext{Timeout: timeout})
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"method":      req.Method,
			"url":         fullURL,
			"status_code": httpResp.StatusCode,
		})
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
	}, nil
}

// upstreamError turns a non-success response into a typed APIError, using the
// structured upstream message when one is parseable.
func (c *Client) upstreamError(req *Request, resp *Response) error {
	message, ok := libs.ParseErrorMessage(resp.Body)
	if !ok {
		message = fmt.Sprintf("HTTP error! status: %d", resp.StatusCode)
	}

	return libs.Classify(
		fmt.Errorf("%s, status: %d", message, resp.StatusCode),
		&libs.ClassifyContext{
			Fields: map[string]any{
				"method": req.Method,
				"path":   req.Path,
				"body":   string(resp.Body),
			},
		},
	)
}

// collectionPath reduces a resource path to its collection root, so a
// mutation of "/departments/7" invalidates everything under "/departments".
func collectionPath(path string) string {
	trimmed := strings.TrimPrefix(path, "/")
	if idx := strings.Index(trimmed, "/"); idx > 0 {
		trimmed = trimmed[:idx]
	}

	return "/" + trimmed
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put performs a PUT request.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Patch performs a PATCH request.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}
