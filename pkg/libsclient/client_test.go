package libsclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/libshub/libs-client/pkg/libs"
	"github.com/libshub/libs-client/pkg/libsclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()
	t.Run("nil config is rejected", func(t *testing.T) {
		t.Parallel()

		client, err := libsclient.New(nil)
		require.ErrorIs(t, err, libsclient.ErrConfigRequired)
		assert.Nil(t, client)
	})

	t.Run("base URL is required", func(t *testing.T) {
		t.Parallel()

		client, err := libsclient.New(&libs.Config{Token: "token"})
		require.ErrorIs(t, err, libsclient.ErrBaseURLRequired)
		assert.Nil(t, client)
	})

	t.Run("schemeless base URL gets https", func(t *testing.T) {
		t.Parallel()

		config := &libs.Config{BaseURL: "libs.example.com/api", Token: "token"}

		client, err := libsclient.New(config)
		require.NoError(t, err)
		require.NotNil(t, client)
		assert.True(t, strings.HasPrefix(config.BaseURL, "https://"))
	})

	t.Run("trailing slash is trimmed", func(t *testing.T) {
		t.Parallel()

		config := &libs.Config{BaseURL: "https://libs.example.com/api/", Token: "token"}

		_, err := libsclient.New(config)
		require.NoError(t, err)
		assert.Equal(t, "https://libs.example.com/api", config.BaseURL)
	})

	t.Run("client performs end to end requests", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/languages", request.URL.Path)
			assert.Equal(t, "Bearer token", request.Header.Get("Authorization"))
			_, _ = writer.Write([]byte(`[{"id": 1, "mainTerm": {"value": "English"}}]`))
		}))
		defer server.Close()

		client, err := libsclient.New(&libs.Config{BaseURL: server.URL, Token: "token"})
		require.NoError(t, err)

		result, err := client.List(context.Background(), "languages", nil)
		require.NoError(t, err)
		assert.Contains(t, string(result), "English")
	})
}
