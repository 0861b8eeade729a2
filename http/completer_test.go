package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fwojciec/supplier"
	suphttp "github.com/fwojciec/supplier/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ supplier.Completer = (*suphttp.Completer)(nil)

func TestCompleter_Complete(t *testing.T) {
	t.Parallel()

	messages := []supplier.Message{
		{Role: supplier.RoleSystem, Content: "system prompt"},
		{Role: supplier.RoleUser, Content: "user prompt"},
	}

	t.Run("posts messages with headers", func(t *testing.T) {
		t.Parallel()

		var gotHeaders http.Header
		var gotMethod string
		var gotBody struct {
			Messages []supplier.Message `json:"messages"`
		}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotHeaders = r.Header.Clone()
			_ = json.NewDecoder(r.Body).Decode(&gotBody)
			_, _ = w.Write([]byte(`{"message": {"content": "{\"Company_Name\": \"Acme\"}"}}`))
		}))
		defer server.Close()

		c := suphttp.NewCompleter(server.URL, "secret", "gpt-test")
		content, err := c.Complete(context.Background(), messages)

		require.NoError(t, err)
		assert.Equal(t, `{"Company_Name": "Acme"}`, content)
		assert.Equal(t, http.MethodPost, gotMethod)
		assert.Equal(t, "secret", gotHeaders.Get("access-key"))
		assert.Equal(t, "gpt-test", gotHeaders.Get("model"))
		assert.Equal(t, "application/json", gotHeaders.Get("Content-Type"))
		assert.Equal(t, messages, gotBody.Messages)
	})

	t.Run("returns structured content as raw JSON", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"message": {"content": {"Company_Name": "Acme"}}}`))
		}))
		defer server.Close()

		c := suphttp.NewCompleter(server.URL, "secret", "gpt-test")
		content, err := c.Complete(context.Background(), messages)

		require.NoError(t, err)
		assert.JSONEq(t, `{"Company_Name": "Acme"}`, content)
	})

	t.Run("returns error when content is missing", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"message": {}}`))
		}))
		defer server.Close()

		c := suphttp.NewCompleter(server.URL, "secret", "gpt-test")
		_, err := c.Complete(context.Background(), messages)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no content")
	})

	t.Run("returns error with status for non-2xx", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte("bad access key"))
		}))
		defer server.Close()

		c := suphttp.NewCompleter(server.URL, "wrong", "gpt-test")
		_, err := c.Complete(context.Background(), messages)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "401")
		assert.Contains(t, err.Error(), "bad access key")
	})

	t.Run("returns error for malformed response", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>gateway</html>`))
		}))
		defer server.Close()

		c := suphttp.NewCompleter(server.URL, "secret", "gpt-test")
		_, err := c.Complete(context.Background(), messages)

		require.Error(t, err)
	})

	t.Run("rejects missing endpoint", func(t *testing.T) {
		t.Parallel()

		c := suphttp.NewCompleter("", "secret", "gpt-test")
		_, err := c.Complete(context.Background(), messages)

		require.Error(t, err)
		assert.Equal(t, supplier.EINVALID, supplier.ErrorCode(err))
	})
}
