package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/sprite-ai/codelens/internal/model"
)

const genaiDefaultModel = "gemini-2.5-flash"

// GenAI calls Google's Gemini API.
type GenAI struct {
	client  *genai.Client
	initErr error
	model   string
}

// NewGenAI creates the Gemini gateway. Client construction errors, such as a
// missing API key, are kept and reported by every Invoke.
func NewGenAI(opts Options) *GenAI {
	m := opts.Model
	if m == "" {
		m = genaiDefaultModel
	}

	cc := &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if opts.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	client, err := genai.NewClient(context.Background(), cc)
	return &GenAI{client: client, initErr: err, model: m}
}

func (g *GenAI) Name() string {
	return fmt.Sprintf("%s:%s", ProviderGemini, g.model)
}

func (g *GenAI) Invoke(ctx context.Context, instruction string) (string, error) {
	if g.initErr != nil {
		return "", &model.GatewayError{Provider: ProviderGemini, Err: fmt.Errorf("create client: %w", g.initErr)}
	}

	contents := []*genai.Content{
		genai.NewContentFromText(instruction, genai.RoleUser),
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", &model.GatewayError{Provider: ProviderGemini, Err: err}
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", &model.GatewayError{Provider: ProviderGemini, Err: errors.New("empty response content")}
	}
	return text, nil
}
