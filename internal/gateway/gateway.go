// Package gateway sends instructions to a hosted generative model and returns
// its text reply. Every call is a single attempt.
package gateway

import (
	"context"
	"fmt"
	"strings"
)

// Provider names accepted by New.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderMock   = "mock"
)

// Gateway is the text-in, text-out boundary to the model service.
// Implementations hold no per-request state and are safe for concurrent use.
type Gateway interface {
	Name() string
	Invoke(ctx context.Context, instruction string) (string, error)
}

// Options configures a gateway.
type Options struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}

// New builds the gateway for opts.Provider. A missing API key is not an
// error here; it surfaces from Invoke.
func New(opts Options) (Gateway, error) {
	switch strings.ToLower(opts.Provider) {
	case "", ProviderGemini:
		return NewGenAI(opts), nil
	case ProviderOpenAI:
		return NewOpenAI(opts), nil
	case ProviderMock:
		return NewMock(nil), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", opts.Provider)
	}
}
