package anthropic

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Noodieknoodie/AI-HELPER/internal/models"
	"github.com/Noodieknoodie/AI-HELPER/internal/providers/fixtures"
	"github.com/Noodieknoodie/AI-HELPER/internal/providers/progress"
)

type capturedRequest struct {
	header http.Header
	body   map[string]any
}

func newServer(t *testing.T, status int, fixture string) (*httptest.Server, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		captured.header = r.Header.Clone()
		data, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(data, &captured.body))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write(fixtures.MustRead(fixture))
	}))
	t.Cleanup(srv.Close)
	return srv, captured
}

func sonnetCall() models.Call {
	return models.Call{
		Provider: models.Provider{Name: "anthropic"},
		Model:    "claude-3-7-sonnet-20250219",
		APIKey:   "sk-ant-test",
		Prompt:   "Summarise the diff",
		Parameters: map[string]any{
			"temperature": 0.7,
			"max_tokens":  8192,
			"model":       "should-be-overridden",
		},
		Capabilities: models.Capabilities{
			MaxTokensDefault:         8192,
			MaxTokensExtended:        64000,
			SupportsExtendedThinking: true,
			SupportsLongOutput:       true,
		},
	}
}

func TestSendConcatenatesTextBlocks(t *testing.T) {
	srv, captured := newServer(t, http.StatusOK, "anthropic_mixed_content.json")
	adapter, err := New(Options{URL: srv.URL, HTTPClient: srv.Client()})
	require.NoError(t, err)

	var seen []int
	result, err := adapter.Send(context.Background(), sonnetCall(), func(p int) { seen = append(seen, p) })
	require.NoError(t, err)

	assert.Equal(t, "AB", result.Text)
	require.NotNil(t, result.Usage)
	assert.Equal(t, models.Usage{PromptTokens: 12, CompletionTokens: 3, TotalTokens: 15}, *result.Usage)
	assert.Equal(t, []int{progress.Prepared, progress.Dispatched, progress.Received, progress.Done}, seen)

	assert.Equal(t, "sk-ant-test", captured.header.Get("x-api-key"))
	assert.Equal(t, defaultVersion, captured.header.Get("anthropic-version"))
	assert.Equal(t, "application/json", captured.header.Get("Content-Type"))
	assert.Equal(t, longOutputBeta, captured.header.Get("anthropic-beta"))
	assert.Equal(t, "claude-3-7-sonnet-20250219", captured.body["model"])
	assert.EqualValues(t, 8192, captured.body["max_tokens"])
	assert.EqualValues(t, 0.7, captured.body["temperature"])
	assert.NotContains(t, captured.body, "thinking")
	assert.Equal(t, []any{map[string]any{"role": "user", "content": "Summarise the diff"}}, captured.body["messages"])
}

func TestSendAddsThinkingWhenEnabled(t *testing.T) {
	srv, captured := newServer(t, http.StatusOK, "anthropic_thinking_content.json")
	adapter, err := New(Options{URL: srv.URL, Version: "2024-10-22", HTTPClient: srv.Client()})
	require.NoError(t, err)

	call := sonnetCall()
	call.Modes.ExtendedThinking = &models.ExtendedThinking{Enabled: true, Budget: 32000}
	result, err := adapter.Send(context.Background(), call, nil)
	require.NoError(t, err)

	assert.Equal(t, "The refactor touches three packages.", result.Text)
	assert.Equal(t, "2024-10-22", captured.header.Get("anthropic-version"))
	assert.Equal(t, map[string]any{"type": "enabled", "budget_tokens": float64(32000)}, captured.body["thinking"])
}

func TestSendOmitsBetaHeaderWithoutLongOutput(t *testing.T) {
	srv, captured := newServer(t, http.StatusOK, "anthropic_mixed_content.json")
	adapter, err := New(Options{URL: srv.URL, HTTPClient: srv.Client()})
	require.NoError(t, err)

	call := sonnetCall()
	call.Model = "claude-3-haiku-20240307"
	call.Capabilities = models.Capabilities{MaxTokensDefault: 4096}
	call.Modes.ExtendedThinking = &models.ExtendedThinking{Enabled: true, Budget: 1000}
	_, err = adapter.Send(context.Background(), call, nil)
	require.NoError(t, err)

	assert.Empty(t, captured.header.Get("anthropic-beta"))
	assert.NotContains(t, captured.body, "thinking")
}

func TestSendEmptyContent(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, "anthropic_empty_content.json")
	adapter, err := New(Options{URL: srv.URL, HTTPClient: srv.Client()})
	require.NoError(t, err)

	var seen []int
	_, err = adapter.Send(context.Background(), sonnetCall(), func(p int) { seen = append(seen, p) })
	require.ErrorIs(t, err, models.ErrEmptyResponse)
	assert.Equal(t, []int{progress.Prepared, progress.Dispatched, progress.Received}, seen)
}

func TestSendNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"rate_limit_error","message":"slow down"}}`))
	}))
	defer srv.Close()

	adapter, err := New(Options{URL: srv.URL, HTTPClient: srv.Client()})
	require.NoError(t, err)

	_, err = adapter.Send(context.Background(), sonnetCall(), nil)
	var statusErr *models.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
	assert.Equal(t, "API returned status code 429\n"+`{"type":"error","error":{"type":"rate_limit_error","message":"slow down"}}`, err.Error())
}

func TestBuildRequestBodyFallsBackToDefaultMaxTokens(t *testing.T) {
	call := sonnetCall()
	call.Parameters = nil
	call.Capabilities.MaxTokensDefault = 0

	body := BuildRequestBody(call)
	assert.Equal(t, fallbackMaxTokens, body["max_tokens"])
}

func TestParseResponseRejectsMalformedBody(t *testing.T) {
	_, err := ParseResponse([]byte(`not json`))
	require.ErrorIs(t, err, models.ErrEmptyResponse)
}

func TestNewRejectsInvalidURL(t *testing.T) {
	_, err := New(Options{URL: "::not a url"})
	require.Error(t, err)

	adapter, err := New(Options{})
	require.NoError(t, err)
	assert.Equal(t, defaultURL, adapter.url)
	assert.Equal(t, defaultVersion, adapter.version)
}
