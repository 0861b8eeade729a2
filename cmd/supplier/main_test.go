package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/supplier"
	main "github.com/fwojciec/supplier/cmd/supplier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testContext returns a background context for tests.
func testContext() context.Context {
	return context.Background()
}

// testConfig returns a browser-free configuration backed by a temporary
// database.
func testConfig(t *testing.T) *main.Config {
	t.Helper()
	return &main.Config{
		Provider:         "http",
		Endpoint:         "http://127.0.0.1:1/unused",
		Renderer:         "static",
		Extractor:        "goquery",
		Headless:         true,
		RenderTimeout:    10 * time.Second,
		LoadTimeout:      5 * time.Second,
		FetchTimeout:     5 * time.Second,
		AggregateTimeout: 10 * time.Second,
		ExtractTimeout:   10 * time.Second,
		DBPath:           filepath.Join(t.TempDir(), "test.db"),
		LogLevel:         slog.LevelError,
	}
}

func newMain(cfg *main.Config) *main.Main {
	m := main.NewMain()
	m.Config = cfg
	return m
}

func TestRun_HelpFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{"--help flag", []string{"--help"}},
		{"-h flag", []string{"-h"}},
		{"help command", []string{"help"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := newMain(testConfig(t))

			stdout := &bytes.Buffer{}
			stderr := &bytes.Buffer{}

			err := m.Run(testContext(), tt.args, stdout, stderr)

			require.NoError(t, err)
			assert.Contains(t, stdout.String(), "Usage: supplier")
			assert.Contains(t, stdout.String(), "Commands:")
			assert.Empty(t, stderr.String())
		})
	}
}

func TestRun_NoArgs(t *testing.T) {
	t.Parallel()

	m := newMain(testConfig(t))

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(testContext(), []string{}, stdout, stderr)

	require.Error(t, err)
	assert.Contains(t, stdout.String(), "Usage: supplier")
}

func TestRun_HelpWithoutCreatingDB(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	m := newMain(cfg)

	err := m.Run(testContext(), []string{"--help"}, &bytes.Buffer{}, &bytes.Buffer{})

	require.NoError(t, err)
	_, statErr := os.Stat(cfg.DBPath)
	assert.True(t, os.IsNotExist(statErr), "database file should not be created for --help")
}

func TestRun_ListEmptyDatabase(t *testing.T) {
	t.Parallel()

	m := newMain(testConfig(t))
	stdout := &bytes.Buffer{}

	err := m.Run(testContext(), []string{"list"}, stdout, &bytes.Buffer{})

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "No profiles found")
}

func TestRun_IngestRejectsUnknownComponents(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*main.Config)
		want   string
	}{
		{"renderer", func(c *main.Config) { c.Renderer = "webkit" }, "unknown renderer"},
		{"extractor", func(c *main.Config) { c.Extractor = "boilerpipe" }, "unknown extractor"},
		{"provider", func(c *main.Config) { c.Provider = "openai" }, "unknown provider"},
		{"missing endpoint", func(c *main.Config) { c.Endpoint = "" }, "END_POINT not set"},
		{"missing gemini key", func(c *main.Config) { c.Provider = "gemini" }, "GEMINI_API_KEY not set"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := testConfig(t)
			tt.modify(cfg)
			m := newMain(cfg)

			err := m.Run(testContext(), []string{"ingest", "--url", "https://acme.example"}, &bytes.Buffer{}, &bytes.Buffer{})

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRun_IngestRejectsEmptyRequestBeforeSetup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{"no flags", []string{"ingest"}},
		{"save only", []string{"ingest", "--save"}},
		{"blank flags", []string{"ingest", "--name", "", "--url", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// Neither a renderer nor a completer can be built from this
			// configuration, so reaching either would fail differently.
			cfg := testConfig(t)
			cfg.Renderer = "webkit"
			cfg.Endpoint = ""
			stdout := &bytes.Buffer{}
			stderr := &bytes.Buffer{}

			err := newMain(cfg).Run(testContext(), tt.args, stdout, stderr)

			require.Error(t, err)
			assert.Equal(t, supplier.EINVALID, supplier.ErrorCode(err))
			assert.JSONEq(t, `{"error": "Please provide a URL or Name in the request body."}`, stdout.String())
			assert.NotContains(t, stderr.String(), "Hint:")
			assert.NotContains(t, err.Error(), "unknown renderer")
			assert.NotContains(t, err.Error(), "END_POINT")

			_, statErr := os.Stat(cfg.DBPath)
			assert.True(t, os.IsNotExist(statErr), "database should not be opened for an invalid request")
		})
	}

	t.Run("writes the error result to the output file", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig(t)
		out := filepath.Join(t.TempDir(), "result.json")

		err := newMain(cfg).Run(testContext(), []string{"ingest", "--out", out}, &bytes.Buffer{}, &bytes.Buffer{})

		require.Error(t, err)
		data, readErr := os.ReadFile(out)
		require.NoError(t, readErr)
		assert.JSONEq(t, `{"error": "Please provide a URL or Name in the request body."}`, string(data))
	})
}

// newSite serves a small company website.
func newSite(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `<html><head><title>Acme</title></head><body>
			<h1>Acme Corp</h1>
			<a href="/about">About</a>
			<a href="/contact">Contact</a>
			<a href="https://www.facebook.com/acme">Facebook</a>
			<a href="mailto:sales@acme.example">Email</a>
		</body></html>`)
	})
	mux.HandleFunc("/about", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><head><title>About Acme</title></head><body><p>Precision sheet metal since 1962.</p></body></html>`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// newCompletionServer returns a canned profile and records the system
// prompt it received.
func newCompletionServer(t *testing.T, prompt *atomic.Value) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("access-key"))

		var req struct {
			Messages []supplier.Message `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		for _, m := range req.Messages {
			if m.Role == supplier.RoleSystem {
				prompt.Store(m.Content)
			}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"message": map[string]any{
				"content": `{"Company_Name": "ACME", "Location": {"Headquarters": "Austin, Texas, USA"}, "Expertise_Summary": "Sheet metal.", "Industry": ["Manufacturing"]}`,
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRun_Ingest(t *testing.T) {
	t.Parallel()

	t.Run("prints the profile built from the site", func(t *testing.T) {
		t.Parallel()

		var prompt atomic.Value
		site := newSite(t)
		completion := newCompletionServer(t, &prompt)

		cfg := testConfig(t)
		cfg.Endpoint = completion.URL
		cfg.AccessKey = "secret"

		stdout := &bytes.Buffer{}
		err := newMain(cfg).Run(testContext(), []string{"ingest", "--name", "Acme Corp", "--url", site.URL}, stdout, &bytes.Buffer{})

		require.NoError(t, err)

		var result supplier.Result
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &result))
		require.NotNil(t, result.Summary)
		assert.Equal(t, "Acme Corp", result.Summary.CompanyName)
		assert.Equal(t, "Austin, Texas, USA", result.Summary.Location.Headquarters)

		got, _ := prompt.Load().(string)
		assert.Contains(t, got, "About Acme Precision sheet metal since 1962.")
		assert.NotContains(t, got, supplier.TemplateMarker)

		_, statErr := os.Stat(cfg.DBPath)
		assert.True(t, os.IsNotExist(statErr), "database should not be opened without --save")
	})

	t.Run("reports a name-only request as a render failure", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig(t)
		stdout := &bytes.Buffer{}

		err := newMain(cfg).Run(testContext(), []string{"ingest", "--name", "Acme Corp"}, stdout, &bytes.Buffer{})

		require.Error(t, err)
		assert.Equal(t, supplier.ERENDER, supplier.ErrorCode(err))
		assert.JSONEq(t, `{"error": "company URL required"}`, stdout.String())
	})

	t.Run("saves, lists, shows and deletes a profile", func(t *testing.T) {
		t.Parallel()

		var prompt atomic.Value
		site := newSite(t)
		completion := newCompletionServer(t, &prompt)

		cfg := testConfig(t)
		cfg.Endpoint = completion.URL
		cfg.AccessKey = "secret"
		out := filepath.Join(t.TempDir(), "acme.json")

		stderr := &bytes.Buffer{}
		err := newMain(cfg).Run(testContext(), []string{"ingest", "--name", "Acme Corp", "--url", site.URL, "--save", "--out", out}, &bytes.Buffer{}, stderr)
		require.NoError(t, err)

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"Company_Name": "Acme Corp"`)

		var id string
		for _, line := range strings.Split(stderr.String(), "\n") {
			if rest, ok := strings.CutPrefix(line, "Saved profile "); ok {
				id = strings.TrimSpace(rest)
			}
		}
		require.NotEmpty(t, id)

		stdout := &bytes.Buffer{}
		require.NoError(t, newMain(cfg).Run(testContext(), []string{"list"}, stdout, &bytes.Buffer{}))
		assert.Contains(t, stdout.String(), id)
		assert.Contains(t, stdout.String(), site.URL)

		stdout.Reset()
		require.NoError(t, newMain(cfg).Run(testContext(), []string{"show", id}, stdout, &bytes.Buffer{}))
		var record supplier.ProfileRecord
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &record))
		assert.Equal(t, 2, record.LinkCount)
		assert.Positive(t, record.CorpusLength)
		assert.Len(t, record.CorpusHash, 16)

		stdout.Reset()
		require.NoError(t, newMain(cfg).Run(testContext(), []string{"delete", id, "--force"}, stdout, &bytes.Buffer{}))
		assert.Contains(t, stdout.String(), "Deleted profile")

		err = newMain(cfg).Run(testContext(), []string{"show", id}, &bytes.Buffer{}, &bytes.Buffer{})
		require.Error(t, err)
		assert.Equal(t, supplier.ENOTFOUND, supplier.ErrorCode(err))
	})
}
