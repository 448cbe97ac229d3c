// Package libsclient provides the main entry point for creating Libs API clients
package libsclient

import (
	"errors"
	"fmt"
	"strings"

	"github.com/libshub/libs-client/internal/client"
	"github.com/libshub/libs-client/pkg/libs"
)

// Static errors for err113 compliance.
var (
	ErrConfigRequired  = errors.New("config is required")
	ErrBaseURLRequired = errors.New("base URL is required")
)

// New creates a new Libs API client from configuration.
func New(config *libs.Config) (libs.Client, error) {
	if config == nil {
		return nil, ErrConfigRequired
	}

	if config.BaseURL == "" {
		return nil, ErrBaseURLRequired
	}

	// Normalize the base URL
	baseURL := strings.TrimSuffix(config.BaseURL, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	config.BaseURL = baseURL

	// Use the internal client implementation
	libsClient, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return libsClient, nil
}
