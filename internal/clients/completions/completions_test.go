package completions

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL string) *Client {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(log, serverURL, "test-key", "test-model", time.Second)
}

func TestComplete(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the first choice content", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/chat/completions", r.URL.Path)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

			var req chatRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "test-model", req.Model)
			require.Len(t, req.Messages, 2)
			assert.Equal(t, "user", req.Messages[1].Role)

			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, `{"choices":[{"message":{"content":"Heat\nRonin"}}]}`)
		}))
		defer server.Close()

		content, err := newTestClient(server.URL).Complete(ctx, "recommend something")
		require.NoError(t, err)
		assert.Equal(t, "Heat\nRonin", content)
	})

	t.Run("429 maps to ErrRateLimited", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).Complete(ctx, "prompt")
		assert.ErrorIs(t, err, ErrRateLimited)
	})

	t.Run("non-200 is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "bad key", http.StatusUnauthorized)
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).Complete(ctx, "prompt")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "401")
	})

	t.Run("empty choices is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"choices":[]}`)
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).Complete(ctx, "prompt")
		assert.Error(t, err)
	})
}
