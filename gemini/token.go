package gemini

import (
	"context"

	"github.com/fwojciec/supplier"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

// DefaultTokenizerModel is the model whose vocabulary is used to estimate
// corpus size when no other model is configured.
const DefaultTokenizerModel = "gemini-2.0-flash"

var _ supplier.TokenCounter = (*TokenCounter)(nil)

// TokenCounter counts tokens locally with the Gemini tokenizer. It never
// calls the API.
type TokenCounter struct {
	tok *tokenizer.LocalTokenizer
}

// NewTokenCounter creates a new TokenCounter for the given model.
func NewTokenCounter(model string) (*TokenCounter, error) {
	if model == "" {
		model = DefaultTokenizerModel
	}
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, err
	}
	return &TokenCounter{tok: tok}, nil
}

// CountTokens counts the number of tokens in the given text.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}
	return tc.count([]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)})
}

// CountMessages counts the tokens of a whole extraction prompt.
func (tc *TokenCounter) CountMessages(ctx context.Context, messages []supplier.Message) (int, error) {
	contents, config := BuildRequest(messages)
	if config.SystemInstruction != nil {
		contents = append(contents, config.SystemInstruction)
	}
	if len(contents) == 0 {
		return 0, nil
	}
	return tc.count(contents)
}

func (tc *TokenCounter) count(contents []*genai.Content) (int, error) {
	result, err := tc.tok.CountTokens(contents, nil)
	if err != nil {
		return 0, err
	}
	return int(result.TotalTokens), nil
}
