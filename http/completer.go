package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/supplier"
)

// DefaultCompletionTimeout bounds a single completion request.
const DefaultCompletionTimeout = 120 * time.Second

// Ensure Completer implements supplier.Completer at compile time.
var _ supplier.Completer = (*Completer)(nil)

// Completer posts chat messages to a completion endpoint that authenticates
// with an access-key header and selects the model with a model header.
type Completer struct {
	client    *http.Client
	endpoint  string
	accessKey string
	model     string
}

// CompleterOption configures a Completer.
type CompleterOption func(*Completer)

// WithHTTPClient replaces the HTTP client used for requests.
func WithHTTPClient(c *http.Client) CompleterOption {
	return func(cc *Completer) {
		cc.client = c
	}
}

// NewCompleter creates a Completer for endpoint.
func NewCompleter(endpoint, accessKey, model string, opts ...CompleterOption) *Completer {
	c := &Completer{
		client:    &http.Client{Timeout: DefaultCompletionTimeout},
		endpoint:  endpoint,
		accessKey: accessKey,
		model:     model,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type completionRequest struct {
	Messages []supplier.Message `json:"messages"`
}

type completionResponse struct {
	Message struct {
		Content json.RawMessage `json:"content"`
	} `json:"message"`
}

// Complete sends messages and returns the reply content. A textual content
// is returned as is; structured content is returned as its raw JSON.
func (c *Completer) Complete(ctx context.Context, messages []supplier.Message) (string, error) {
	if c.endpoint == "" {
		return "", supplier.Errorf(supplier.EINVALID, "completion endpoint is not configured")
	}

	body, err := json.Marshal(completionRequest{Messages: messages})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("access-key", c.accessKey)
	req.Header.Set("model", c.model)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("completion request failed: %s - %s", resp.Status, bytes.TrimSpace(b))
	}

	var parsed completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decoding completion response: %w", err)
	}

	raw := bytes.TrimSpace(parsed.Message.Content)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", fmt.Errorf("no content in completion response")
	}

	if raw[0] == '"' {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return "", fmt.Errorf("decoding completion content: %w", err)
		}
		return text, nil
	}
	return string(raw), nil
}
