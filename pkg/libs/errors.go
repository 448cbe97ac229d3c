package libs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// ErrorKind is the machine-readable discriminator carried by every typed
// error surfaced to callers.
type ErrorKind string

const (
	// KindAPI marks upstream or local validation failures.
	KindAPI ErrorKind = "API_ERROR"

	// KindTimeout marks a locally enforced deadline expiry.
	KindTimeout ErrorKind = "TIMEOUT_ERROR"

	// KindRateLimit marks an admission rejection by the rate limiter.
	KindRateLimit ErrorKind = "RATE_LIMIT_ERROR"
)

// Static errors for err113 compliance.
var (
	ErrEmptyResourceName = errors.New("resource name is empty")
)

// APIError represents an upstream HTTP failure or a local validation failure.
// It is immutable once constructed.
type APIError struct {
	StatusCode int            `json:"statusCode"        yaml:"statusCode"`
	Message    string         `json:"message"           yaml:"message"`
	Context    map[string]any `json:"context,omitempty" yaml:"context,omitempty"`

	cause error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s (status: %d)", e.Message, e.StatusCode)
}

// Kind returns the taxonomy discriminator.
func (e *APIError) Kind() ErrorKind {
	return KindAPI
}

// Unwrap returns the underlying cause, if any.
func (e *APIError) Unwrap() error {
	return e.cause
}

// Is reports whether target is an APIError with the same status code.
func (e *APIError) Is(target error) bool {
	other, ok := target.(*APIError)
	if !ok {
		return false
	}

	return e.StatusCode == other.StatusCode
}

// TimeoutError indicates the per-call deadline elapsed before the upstream
// responded. Budget is the timeout that was configured for the call.
type TimeoutError struct {
	Budget  time.Duration  `json:"budget"            yaml:"budget"`
	Message string         `json:"message"           yaml:"message"`
	Context map[string]any `json:"context,omitempty" yaml:"context,omitempty"`
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s (budget: %s)", e.Message, e.Budget)
}

// Kind returns the taxonomy discriminator.
func (e *TimeoutError) Kind() ErrorKind {
	return KindTimeout
}

// RateLimitError indicates the caller was rejected before any network I/O.
// RetryAfter is a hint; callers decide their own backoff policy.
type RateLimitError struct {
	RetryAfter time.Duration `json:"retryAfter" yaml:"retryAfter"`
	Message    string        `json:"message"    yaml:"message"`
}

// Error implements the error interface.
func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s (retry after: %s)", e.Message, e.RetryAfter)
}

// Kind returns the taxonomy discriminator.
func (e *RateLimitError) Kind() ErrorKind {
	return KindRateLimit
}

// IsNotFound checks if the error is an upstream 404.
func IsNotFound(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 404
	}

	return false
}

// IsTimeout checks if the error is a locally enforced timeout.
func IsTimeout(err error) bool {
	timeoutErr := &TimeoutError{}

	return errors.As(err, &timeoutErr)
}

// IsRateLimited checks if the error is a rate-limit rejection.
func IsRateLimited(err error) bool {
	rlErr := &RateLimitError{}

	return errors.As(err, &rlErr)
}

// ClassifyContext carries classification inputs: the configured timeout
// budget and free-form diagnostic fields attached to the resulting error.
type ClassifyContext struct {
	Timeout time.Duration
	Fields  map[string]any
}

var statusPattern = regexp.MustCompile(`status:\s*(\d+)`)

// Classify normalizes any failure into the typed taxonomy. Already-typed
// errors pass through unchanged, so classification is idempotent.
func Classify(err error, cctx *ClassifyContext) error {
	if err == nil {
		return nil
	}

	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr
	}

	timeoutErr := &TimeoutError{}
	if errors.As(err, &timeoutErr) {
		return timeoutErr
	}

	rlErr := &RateLimitError{}
	if errors.As(err, &rlErr) {
		return rlErr
	}

	if cctx == nil {
		cctx = &ClassifyContext{}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		budget := cctx.Timeout
		if budget == 0 {
			budget = 30 * time.Second
		}

		return &TimeoutError{
			Budget:  budget,
			Message: err.Error(),
			Context: cctx.Fields,
		}
	}

	message := err.Error()

	if match := statusPattern.FindStringSubmatch(message); match != nil {
		status, _ := strconv.Atoi(match[1])

		switch status {
		case 401:
			message = "Authentication failed"
		case 403:
			message = "Access forbidden"
		}

		return &APIError{
			StatusCode: status,
			Message:    message,
			Context:    cctx.Fields,
		}
	}

	fields := map[string]any{"originalError": message}
	for key, value := range cctx.Fields {
		fields[key] = value
	}

	return &APIError{
		StatusCode: 500,
		Message:    message,
		Context:    fields,
	}
}

// upstreamErrorBody is the error shape returned by the backend.
type upstreamErrorBody struct {
	Message string `json:"message"`
}

// ParseErrorMessage extracts the structured message from an upstream error
// body. Returns false when the body is not parseable as `{message}` JSON.
func ParseErrorMessage(body []byte) (string, bool) {
	var parsed upstreamErrorBody

	err := json.Unmarshal(body, &parsed)
	if err != nil || parsed.Message == "" {
		return "", false
	}

	return parsed.Message, true
}
