package libs

import (
	"context"
	"encoding/json"
	"time"
)

// Client is the uniform call interface over the Libs reference-data API.
// Every operation accepts a resource name or alias, passes the rate limiter,
// and returns either a JSON result or one of the typed errors of this
// package. Nothing is retried silently; each call produces a single-attempt
// typed outcome.
type Client interface {
	// List fetches a page of the resource's collection.
	List(ctx context.Context, resource string, params *ListParams) (json.RawMessage, error)

	// Get fetches one resource by id. Options select the reduced-field
	// projection or bypass the cache.
	Get(ctx context.Context, resource, id string, opts *GetOptions) (json.RawMessage, error)

	// Create posts a new resource representation as-is.
	Create(ctx context.Context, resource string, payload *ResourcePayload) (json.RawMessage, error)

	// Update applies a partial update. Term-managed resources are first
	// merged with their current representation so untouched terms survive.
	Update(ctx context.Context, resource, id string, payload *ResourcePayload) (json.RawMessage, error)

	// Delete removes one resource by id.
	Delete(ctx context.Context, resource, id string) error

	// FindTerms queries the resource's existing terms by value.
	FindTerms(ctx context.Context, resource, value string) (json.RawMessage, error)

	// CacheStats reports cache occupancy.
	CacheStats() CacheStats

	// RateLimitStats reports admission counts for one caller, or aggregate
	// counts when callerID is empty.
	RateLimitStats(callerID string) RateLimiterStats
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a libs.Client.
//
// Only BaseURL and Token are required. Zero values elsewhere select the
// defaults in internal/constants: 30 s request timeout, 1000-entry cache
// with a 5 minute TTL, and 60 requests per minute per caller. Retries are
// off unless RetryMax is set; the core produces single-attempt outcomes by
// default and leaves backoff policy to callers who opt in.
type Config struct {
	// BaseURL is the backend API root (e.g. "https://libs.example.com/api").
	BaseURL string

	// Token is the static bearer credential attached to every request.
	Token string

	// CallerID identifies this client to the rate limiter. Defaults to
	// "default".
	CallerID string

	// RequestTimeout is the per-call deadline.
	RequestTimeout time.Duration

	// CacheSize bounds the number of resident cache entries.
	CacheSize int

	// CacheTTL is the default time-to-live for cached reads.
	CacheTTL time.Duration

	// RateLimitMax admits this many requests per caller per window.
	RateLimitMax int

	// RateLimitWindow is the rolling admission lookback.
	RateLimitWindow time.Duration

	// ShortProjection switches the client into reduced-field mode: every Get
	// returns only identity and name fields unless overridden per call.
	ShortProjection bool

	// RetryMax enables transport retries for transient failures when > 0.
	RetryMax int

	// RetryWaitMin is the minimum backoff between opted-in retries.
	RetryWaitMin time.Duration

	// RetryWaitMax is the maximum backoff between opted-in retries.
	RetryWaitMax time.Duration

	// Debug enables verbose HTTP request/response logging when a Logger is set.
	Debug bool

	// Logger is an optional structured logger used by the HTTP layer.
	Logger Logger

	// UserAgent overrides the default User-Agent header.
	UserAgent string
}
