// Package client implements the concrete libs.Client: alias resolution,
// rate-limit admission, merge-on-update for term-managed resources, and
// generic resource operations over the request executor.
package client

import (
	"errors"

	"github.com/libshub/libs-client/internal/constants"
	"github.com/libshub/libs-client/internal/http"
	"github.com/libshub/libs-client/pkg/libs"
)

// Static errors for err113 compliance.
var (
	ErrBaseURLRequired = errors.New("base URL is required")
	ErrConfigRequired  = errors.New("config is required")
)

// DefaultCallerID identifies clients that do not configure their own
// rate-limit identity.
const DefaultCallerID = "default"

// Client implements the libs.Client interface. The cache and the rate
// limiter are owned by the client instance: tests construct fresh instances
// per case instead of sharing process-wide state.
type Client struct {
	httpClient      *http.Client
	limiter         *libs.RateLimiter
	cache           *libs.MemoryCache
	callerID        string
	shortProjection bool
	logger          libs.Logger
}

// New creates a client from configuration. Zero-valued tunables fall back to
// the package defaults.
func New(config *libs.Config) (*Client, error) {
	if config == nil {
		return nil, ErrConfigRequired
	}

	if config.BaseURL == "" {
		return nil, ErrBaseURLRequired
	}

	cacheSize := config.CacheSize
	if cacheSize <= 0 {
		cacheSize = constants.DefaultCacheSize
	}

	cacheTTL := config.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = constants.DefaultCacheTTL
	}

	rateMax := config.RateLimitMax
	if rateMax <= 0 {
		rateMax = constants.DefaultRateLimitMax
	}

	rateWindow := config.RateLimitWindow
	if rateWindow <= 0 {
		rateWindow = constants.DefaultRateLimitWindow
	}

	timeout := config.RequestTimeout
	if timeout <= 0 {
		timeout = constants.DefaultRequestTimeout
	}

	callerID := config.CallerID
	if callerID == "" {
		callerID = DefaultCallerID
	}

	cache := libs.NewMemoryCache(cacheSize, cacheTTL)

	httpOpts := []http.Option{
		http.WithCache(cache, cacheTTL),
		http.WithTimeout(timeout),
	}

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	return &Client{
		httpClient:      http.NewClient(config.BaseURL, config.Token, httpOpts...),
		limiter:         libs.NewRateLimiter(rateMax, rateWindow),
		cache:           cache,
		callerID:        callerID,
		shortProjection: config.ShortProjection,
		logger:          config.Logger,
	}, nil
}

// CacheStats implements libs.Client.CacheStats.
func (c *Client) CacheStats() libs.CacheStats {
	return c.cache.Stats()
}

// RateLimitStats implements libs.Client.RateLimitStats.
func (c *Client) RateLimitStats(callerID string) libs.RateLimiterStats {
	if callerID == "" {
		return c.limiter.TotalStats()
	}

	return c.limiter.Stats(callerID)
}

// admit passes the rate limiter; a rejection becomes a RateLimitError with a
// retry hint and causes no network I/O.
func (c *Client) admit() error {
	if c.limiter.Allow(c.callerID) {
		return nil
	}

	return &libs.RateLimitError{
		RetryAfter: c.limiter.RetryAfter(c.callerID),
		Message:    "Rate limit exceeded",
	}
}

// loggerAdapter adapts libs.Logger to http.Logger.
type loggerAdapter struct {
	logger libs.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}
