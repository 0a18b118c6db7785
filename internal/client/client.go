// Package client calls the codelens HTTP API. Every failure comes back as a
// *model.TransportError whose message is ready to show to the user.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sprite-ai/codelens/internal/model"
)

// Client talks to one codelens server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the server at baseURL. A nil httpClient uses
// http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

type requestBody struct {
	Code           string `json:"code"`
	SourceLanguage string `json:"sourceLanguage,omitempty"`
	TargetLanguage string `json:"targetLanguage,omitempty"`
}

// Run posts req to the endpoint for its operation and returns the result
// field contracted for that operation. It makes exactly one HTTP call.
func (c *Client) Run(ctx context.Context, req model.Request) (model.Result, error) {
	op := req.Operation
	fail := func(status int, msg string, err error) (model.Result, error) {
		if msg == "" {
			msg = model.FallbackMessage(op)
		}
		return model.Result{}, &model.TransportError{Operation: op, Status: status, Message: msg, Err: err}
	}

	body, err := json.Marshal(requestBody{
		Code:           req.Code,
		SourceLanguage: req.SourceLanguage,
		TargetLanguage: req.TargetLanguage,
	})
	if err != nil {
		return fail(0, "", fmt.Errorf("marshal request: %w", err))
	}

	url := c.baseURL + "/api/" + op.String()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fail(0, "", fmt.Errorf("create request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fail(0, "", fmt.Errorf("request: %w", err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fail(resp.StatusCode, "", fmt.Errorf("read response: %w", err))
	}

	var fields map[string]any
	decodeErr := json.Unmarshal(raw, &fields)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := fields["error"].(string)
		return fail(resp.StatusCode, msg, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
	if decodeErr != nil {
		return fail(resp.StatusCode, "", fmt.Errorf("decode response: %w", decodeErr))
	}

	text, ok := fields[op.ResultField()].(string)
	if !ok {
		return fail(resp.StatusCode, "", fmt.Errorf("response has no %s field", op.ResultField()))
	}
	return model.Result{Operation: op, Text: text}, nil
}

// Health checks that the server is up and returns its provider name.
func (c *Client) Health(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return "", err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("health: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("health: unexpected status %d", resp.StatusCode)
	}
	var body struct {
		Provider string `json:"provider"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("health: decode: %w", err)
	}
	return body.Provider, nil
}
