// Package gemini implements supplier capabilities on Google Gemini.
package gemini

import (
	"context"

	"github.com/fwojciec/supplier"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Completer implements supplier.Completer at compile time.
var _ supplier.Completer = (*Completer)(nil)

// Completer implements supplier.Completer using Google Gemini.
type Completer struct {
	client *genai.Client
	model  string
}

// NewCompleter creates a new Completer.
func NewCompleter(client *genai.Client, model string) *Completer {
	if model == "" {
		model = DefaultModel
	}
	return &Completer{client: client, model: model}
}

// Complete sends messages to Gemini and returns the reply text. System
// messages become the system instruction; the reply is requested as JSON.
func (c *Completer) Complete(ctx context.Context, messages []supplier.Message) (string, error) {
	contents, config := BuildRequest(messages)
	if len(contents) == 0 {
		return "", supplier.Errorf(supplier.EINVALID, "at least one user message required")
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", supplier.Errorf(supplier.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildRequest splits messages into Gemini contents and a config carrying
// the system instruction.
func BuildRequest(messages []supplier.Message) ([]*genai.Content, *genai.GenerateContentConfig) {
	temp := float32(0.2)
	config := &genai.GenerateContentConfig{
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
	}

	var system []*genai.Part
	var contents []*genai.Content
	for _, m := range messages {
		if m.Role == supplier.RoleSystem {
			system = append(system, &genai.Part{Text: m.Content})
			continue
		}
		contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
	}
	if len(system) > 0 {
		config.SystemInstruction = &genai.Content{Parts: system}
	}

	return contents, config
}
