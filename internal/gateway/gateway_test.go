package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprite-ai/codelens/internal/model"
)

func TestNewSelectsProvider(t *testing.T) {
	tests := []struct {
		provider string
		want     string
	}{
		{"", "gemini:gemini-2.5-flash"},
		{"gemini", "gemini:gemini-2.5-flash"},
		{"OpenAI", "openai:gpt-4o-mini"},
		{"mock", "mock"},
	}
	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			gw, err := New(Options{Provider: tt.provider, APIKey: "test-key"})
			require.NoError(t, err)
			assert.Equal(t, tt.want, gw.Name())
		})
	}

	_, err := New(Options{Provider: "bard"})
	assert.Error(t, err)
}

func TestOpenAIInvoke(t *testing.T) {
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"c1","object":"chat.completion","model":"gpt-4o-mini",
			"choices":[{"index":0,"message":{"role":"assistant","content":"## Review\nLooks fine."},"finish_reason":"stop"}]}`))
	}))
	defer ts.Close()

	gw := NewOpenAI(Options{APIKey: "sk-test", BaseURL: ts.URL + "/v1"})
	got, err := gw.Invoke(context.Background(), "review this")
	require.NoError(t, err)
	assert.Equal(t, "## Review\nLooks fine.", got)
	assert.EqualValues(t, 1, hits.Load())
}

func TestOpenAIErrorIsGatewayError(t *testing.T) {
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"message":"upstream exploded","type":"server_error"}}`))
	}))
	defer ts.Close()

	gw := NewOpenAI(Options{APIKey: "sk-test", BaseURL: ts.URL + "/v1"})
	_, err := gw.Invoke(context.Background(), "review this")

	var gerr *model.GatewayError
	require.True(t, errors.As(err, &gerr), "expected GatewayError, got %v", err)
	assert.Equal(t, ProviderOpenAI, gerr.Provider)
	assert.EqualValues(t, 1, hits.Load(), "gateway must not retry")
}

func TestOpenAIEmptyChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"c1","object":"chat.completion","choices":[]}`))
	}))
	defer ts.Close()

	gw := NewOpenAI(Options{APIKey: "sk-test", BaseURL: ts.URL + "/v1"})
	_, err := gw.Invoke(context.Background(), "x")
	var gerr *model.GatewayError
	assert.True(t, errors.As(err, &gerr))
}

func TestGenAIInvoke(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "models/gemini-2.5-flash:generateContent"), r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"O(n) time"}]},"finishReason":"STOP"}]}`))
	}))
	defer ts.Close()

	gw := NewGenAI(Options{APIKey: "g-test", BaseURL: ts.URL})
	got, err := gw.Invoke(context.Background(), "analyze")
	require.NoError(t, err)
	assert.Equal(t, "O(n) time", got)
}

func TestGenAIFailureIsGatewayError(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"code":401,"message":"API key not valid","status":"UNAUTHENTICATED"}}`))
	}))
	defer ts.Close()

	// No key: depending on the client this fails at construction or at the
	// call. Both must surface from Invoke as a GatewayError.
	gw := NewGenAI(Options{BaseURL: ts.URL})
	_, err := gw.Invoke(context.Background(), "analyze")

	var gerr *model.GatewayError
	require.True(t, errors.As(err, &gerr), "expected GatewayError, got %v", err)
	assert.Equal(t, ProviderGemini, gerr.Provider)
}

func TestMock(t *testing.T) {
	m := NewMock(func(instruction string) (string, error) {
		return "reply to " + instruction, nil
	})
	got, err := m.Invoke(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "reply to hello", got)
	assert.Equal(t, 1, m.Calls())
	assert.Equal(t, "hello", m.LastInstruction())
}

func TestMockDefaultEcho(t *testing.T) {
	m := NewMock(nil)
	got, err := m.Invoke(context.Background(), "Code:\nx := 1")
	require.NoError(t, err)
	assert.Equal(t, "```\nx := 1\n```", got)
}

func TestMockErrorsAreGatewayErrors(t *testing.T) {
	m := NewMock(func(string) (string, error) { return "", errors.New("quota") })
	_, err := m.Invoke(context.Background(), "x")
	var gerr *model.GatewayError
	require.True(t, errors.As(err, &gerr))
	assert.Equal(t, "mock: quota", gerr.Error())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = m.Invoke(ctx, "x")
	assert.True(t, errors.As(err, &gerr))
	assert.ErrorIs(t, err, context.Canceled)
}
