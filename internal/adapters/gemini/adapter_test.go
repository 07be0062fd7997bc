package gemini

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Noodieknoodie/AI-HELPER/internal/models"
	"github.com/Noodieknoodie/AI-HELPER/internal/providers/fixtures"
	"github.com/Noodieknoodie/AI-HELPER/internal/providers/progress"
)

type countingTransport struct {
	calls atomic.Int32
}

func (c *countingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	c.calls.Add(1)
	return nil, io.ErrUnexpectedEOF
}

type recorded struct {
	path   string
	header http.Header
	body   generateRequest
}

func newServer(t *testing.T, status int, fixture string) (*httptest.Server, *recorded) {
	t.Helper()
	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.path = r.URL.Path
		rec.header = r.Header.Clone()
		data, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(data, &rec.body))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write(fixtures.MustRead(fixture))
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func flashCall() models.Call {
	return models.Call{
		Provider:     models.Provider{Name: "gemini"},
		Model:        "gemini-2.0-flash",
		APIKey:       "AIza-test",
		Prompt:       "Name one Go proverb",
		Parameters:   map[string]any{"temperature": 0.7, "max_output_tokens": 4096},
		Capabilities: models.Capabilities{OutputTokenLimit: 8192},
	}
}

func TestSendAPIKeyMode(t *testing.T) {
	srv, rec := newServer(t, http.StatusOK, "gemini_generate_response.json")
	adapter := New(Options{URL: srv.URL + "/v1beta/models", HTTPClient: srv.Client()})

	var seen []int
	result, err := adapter.Send(context.Background(), flashCall(), func(p int) { seen = append(seen, p) })
	require.NoError(t, err)

	assert.Equal(t, "Gemini says hello.", result.Text)
	require.NotNil(t, result.Usage)
	assert.Equal(t, models.Usage{PromptTokens: 8, CompletionTokens: 4, TotalTokens: 12}, *result.Usage)
	assert.Equal(t, []int{progress.Prepared, progress.Dispatched, progress.Received, progress.Done}, seen)
	assert.Equal(t, StateReady, adapter.State())

	assert.Equal(t, "/v1beta/models/gemini-2.0-flash:generateContent", rec.path)
	assert.Equal(t, "AIza-test", rec.header.Get("x-goog-api-key"))
	cfg := rec.body.GenerationConfig
	require.NotNil(t, cfg.Temperature)
	assert.InDelta(t, 0.7, *cfg.Temperature, 1e-9)
	assert.Equal(t, 4096, cfg.MaxOutputTokens)
	assert.Equal(t, 1.0, cfg.TopP)
	assert.Equal(t, 32, cfg.TopK)
	assert.Nil(t, cfg.ThinkingConfig)
	require.Len(t, rec.body.Contents, 1)
	assert.Equal(t, "Name one Go proverb", rec.body.Contents[0].Parts[0].Text)
}

func TestSendThinkingSkipsThoughtParts(t *testing.T) {
	srv, rec := newServer(t, http.StatusOK, "gemini_thinking_response.json")
	adapter := New(Options{URL: srv.URL, HTTPClient: srv.Client()})

	call := flashCall()
	call.Model = "gemini-2.5-pro-preview-03-25"
	call.Parameters = map[string]any{"top_k": "40", "top_p": 0.5}
	call.Capabilities = models.Capabilities{OutputTokenLimit: 65536, SupportsThinking: true}
	call.Modes.Thinking = &models.Thinking{Enabled: true}

	result, err := adapter.Send(context.Background(), call, nil)
	require.NoError(t, err)

	assert.Equal(t, "Use a mutex.", result.Text)
	assert.Equal(t, int64(75), result.Usage.TotalTokens)
	cfg := rec.body.GenerationConfig
	require.NotNil(t, cfg.ThinkingConfig)
	assert.True(t, cfg.ThinkingConfig.IncludeThoughts)
	assert.Nil(t, cfg.Temperature)
	assert.Equal(t, fallbackMaxOutputTokens, cfg.MaxOutputTokens)
	assert.Equal(t, 40, cfg.TopK)
	assert.Equal(t, 0.5, cfg.TopP)
}

func TestThinkingIgnoredWithoutCapability(t *testing.T) {
	call := flashCall()
	call.Modes.Thinking = &models.Thinking{Enabled: true}
	assert.Nil(t, buildGenerateRequest(call).GenerationConfig.ThinkingConfig)
}

func TestSendAPIErrorIsClientError(t *testing.T) {
	srv, _ := newServer(t, http.StatusBadRequest, "gemini_error.json")
	adapter := New(Options{URL: srv.URL, HTTPClient: srv.Client()})

	_, err := adapter.Send(context.Background(), flashCall(), nil)
	var clientErr *models.ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Contains(t, clientErr.Err.Error(), "API key not valid")
	assert.Equal(t, StateReady, adapter.State())
}

func TestSendBlockedPrompt(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, "gemini_blocked_response.json")
	adapter := New(Options{URL: srv.URL, HTTPClient: srv.Client()})

	_, err := adapter.Send(context.Background(), flashCall(), nil)
	var clientErr *models.ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, "prompt blocked: safety", clientErr.Err.Error())
}

func TestFailedStateSkipsNetworkUntilReset(t *testing.T) {
	transport := &countingTransport{}
	adapter := New(Options{HTTPClient: &http.Client{Transport: transport}})

	call := flashCall()
	call.APIKey = `{"type": "authorized_user"`
	var seen []int
	for i := 0; i < 2; i++ {
		_, err := adapter.Send(context.Background(), call, func(p int) { seen = append(seen, p) })
		var unavailable *models.UnavailableError
		require.ErrorAs(t, err, &unavailable)
		assert.Contains(t, unavailable.Reason, "service account")
	}
	assert.Equal(t, StateFailed, adapter.State())
	assert.Zero(t, transport.calls.Load())
	assert.Empty(t, seen)

	adapter.Reset()
	assert.Equal(t, StateUninitialized, adapter.State())
}

func TestCredentialChangeReinitialises(t *testing.T) {
	srv, rec := newServer(t, http.StatusOK, "gemini_generate_response.json")
	adapter := New(Options{URL: srv.URL, HTTPClient: srv.Client()})

	bad := flashCall()
	bad.APIKey = "   "
	_, err := adapter.Send(context.Background(), bad, nil)
	require.Error(t, err)
	require.Equal(t, StateFailed, adapter.State())

	_, err = adapter.Send(context.Background(), flashCall(), nil)
	require.NoError(t, err)
	assert.Equal(t, StateReady, adapter.State())
	assert.Equal(t, "AIza-test", rec.header.Get("x-goog-api-key"))

	next := flashCall()
	next.APIKey = "AIza-rotated"
	_, err = adapter.Send(context.Background(), next, nil)
	require.NoError(t, err)
	assert.Equal(t, "AIza-rotated", rec.header.Get("x-goog-api-key"))
}

func TestVertexServiceAccountMode(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)
	pemKey := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})

	var generatePath, authHeader string
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"vertex-token","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/v1/", func(w http.ResponseWriter, r *http.Request) {
		generatePath = r.URL.Path
		authHeader = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(fixtures.MustRead("gemini_generate_response.json"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	account, err := json.Marshal(map[string]string{
		"type":           "service_account",
		"project_id":     "helper-project",
		"private_key_id": "kid-1",
		"private_key":    string(pemKey),
		"client_email":   "helper@helper-project.iam.gserviceaccount.com",
		"client_id":      "1234567890",
		"token_uri":      srv.URL + "/token",
	})
	require.NoError(t, err)

	adapter := New(Options{VertexURL: srv.URL + "/v1", Location: "europe-west4", HTTPClient: srv.Client()})
	call := flashCall()
	call.APIKey = string(account)

	result, err := adapter.Send(context.Background(), call, nil)
	require.NoError(t, err)
	assert.Equal(t, "Gemini says hello.", result.Text)
	assert.Equal(t, "/v1/projects/helper-project/locations/europe-west4/publishers/google/models/gemini-2.0-flash:generateContent", generatePath)
	assert.Equal(t, "Bearer vertex-token", authHeader)
}

func TestServiceAccountJSONAcceptsBase64(t *testing.T) {
	raw := `{"type":"service_account","project_id":"p"}`
	_, ok := serviceAccountJSON(raw)
	assert.True(t, ok)

	_, ok = serviceAccountJSON("eyJ0eXBlIjoic2VydmljZV9hY2NvdW50IiwicHJvamVjdF9pZCI6InAifQ==")
	assert.True(t, ok)

	_, ok = serviceAccountJSON("AIzaSyD-plain-api-key")
	assert.False(t, ok)
}

func TestFloatParam(t *testing.T) {
	params := map[string]any{"a": 3, "b": "0.25", "c": json.Number("7"), "d": true, "e": nil}
	v, ok := floatParam(params, "a")
	assert.True(t, ok)
	assert.Equal(t, 3.0, v)
	v, ok = floatParam(params, "b")
	assert.True(t, ok)
	assert.Equal(t, 0.25, v)
	v, ok = floatParam(params, "c")
	assert.True(t, ok)
	assert.Equal(t, 7.0, v)
	_, ok = floatParam(params, "d")
	assert.False(t, ok)
	_, ok = floatParam(params, "e")
	assert.False(t, ok)
	_, ok = floatParam(params, "missing")
	assert.False(t, ok)
}
