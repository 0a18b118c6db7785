package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/sprite-ai/codelens/internal/model"
)

const openaiDefaultModel = "gpt-4o-mini"

// OpenAI calls any OpenAI-compatible chat completions endpoint.
type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI creates the OpenAI gateway. BaseURL overrides the API root,
// e.g. for a local compatible server.
func NewOpenAI(opts Options) *OpenAI {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	m := opts.Model
	if m == "" {
		m = openaiDefaultModel
	}
	return &OpenAI{client: openai.NewClientWithConfig(cfg), model: m}
}

func (o *OpenAI) Name() string {
	return fmt.Sprintf("%s:%s", ProviderOpenAI, o.model)
}

func (o *OpenAI) Invoke(ctx context.Context, instruction string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: instruction},
		},
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", &model.GatewayError{Provider: ProviderOpenAI, Err: err}
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", &model.GatewayError{Provider: ProviderOpenAI, Err: errors.New("empty response content")}
	}
	return resp.Choices[0].Message.Content, nil
}
