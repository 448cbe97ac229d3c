package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultRequestTimeout is the default per-call deadline for outbound requests.
	DefaultRequestTimeout = 30 * time.Second

	// ShortRequestTimeout is used for quick operations.
	ShortRequestTimeout = 10 * time.Second
)

// Request body limits.
const (
	// MaxRequestBodyBytes is the largest serialized body accepted before a
	// request is sent. Larger payloads fail locally with a 413.
	MaxRequestBodyBytes = 100 * 1024
)

// Cache tuning.
const (
	// DefaultCacheSize is the maximum number of resident cache entries.
	DefaultCacheSize = 1000

	// DefaultCacheTTL is the default time-to-live for cached responses.
	DefaultCacheTTL = 5 * time.Minute
)

// Rate limiting.
const (
	// DefaultRateLimitMax is the number of requests admitted per caller per window.
	DefaultRateLimitMax = 60

	// DefaultRateLimitWindow is the rolling lookback used for admission.
	DefaultRateLimitWindow = time.Minute
)

// Retry tuning. Retries are disabled unless a caller opts in.
const (
	// DefaultRetryWaitMin is the minimum backoff between opted-in retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum backoff between opted-in retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// HTTP status codes commonly used.
const (
	// HTTPStatusOK represents a successful HTTP response.
	HTTPStatusOK = 200

	// HTTPStatusBadRequest represents a client error.
	HTTPStatusBadRequest = 400

	// HTTPStatusPayloadTooLarge represents a body over the local size limit.
	HTTPStatusPayloadTooLarge = 413

	// HTTPStatusInternalServerError represents server errors.
	HTTPStatusInternalServerError = 500
)
