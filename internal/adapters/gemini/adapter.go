package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Noodieknoodie/AI-HELPER/internal/models"
	"github.com/Noodieknoodie/AI-HELPER/internal/providers/progress"
)

const (
	defaultURL   = "https://generativelanguage.googleapis.com/v1beta/models"
	providerName = "Gemini"
	apiName      = "Gemini API"
)

// Options configure the Gemini adapter.
type Options struct {
	URL        string
	ProjectID  string
	Location   string
	VertexURL  string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Adapter calls generateContent through a client that is created lazily
// from the call credential and kept until Reset or a credential change.
type Adapter struct {
	opts Options

	mu      sync.Mutex
	state   State
	client  *client
	reason  string
	boundTo string
}

func New(opts Options) *Adapter {
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 300 * time.Second}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Adapter{opts: opts}
}

// State reports the client lifecycle state.
func (a *Adapter) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Reset drops the client so the next Send initialises it again.
func (a *Adapter) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state = StateUninitialized
	a.client = nil
	a.reason = ""
	a.boundTo = ""
}

func (a *Adapter) Send(ctx context.Context, call models.Call, report progress.Func) (models.Result, error) {
	c, err := a.ensureClient(call.APIKey)
	if err != nil {
		return models.Result{}, err
	}
	report.Report(progress.Prepared)

	body, err := json.Marshal(buildGenerateRequest(call))
	if err != nil {
		return models.Result{}, fmt.Errorf("encode gemini request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.generateURL(call.Model), bytes.NewReader(body))
	if err != nil {
		return models.Result{}, &models.ClientError{Provider: apiName, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-goog-api-key", c.apiKey)
	}

	report.Report(progress.Dispatched)
	resp, err := c.http.Do(req)
	if err != nil {
		return models.Result{}, &models.ClientError{Provider: apiName, Err: err}
	}
	defer resp.Body.Close()
	report.Report(progress.Received)

	if resp.StatusCode >= 300 {
		return models.Result{}, &models.ClientError{Provider: apiName, Err: decodeAPIError(resp)}
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return models.Result{}, &models.ClientError{Provider: apiName, Err: fmt.Errorf("decode response: %w", err)}
	}
	result, err := extractResult(parsed)
	if err != nil {
		return models.Result{}, err
	}
	report.Report(progress.Done)
	return result, nil
}

func (a *Adapter) ensureClient(credential string) (*client, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state != StateUninitialized && a.boundTo != credential {
		a.state = StateUninitialized
		a.client = nil
		a.reason = ""
	}

	switch a.state {
	case StateReady:
		return a.client, nil
	case StateFailed:
		return nil, &models.UnavailableError{Provider: providerName, Reason: a.reason}
	}

	a.boundTo = credential
	c, err := newClient(a.opts, credential)
	if err != nil {
		var ie *initError
		if !errors.As(err, &ie) {
			ie = &initError{reason: err.Error()}
		}
		a.state = StateFailed
		a.reason = ie.reason
		a.opts.Logger.Warn("gemini client initialisation failed", slog.String("reason", ie.reason))
		return nil, &models.UnavailableError{Provider: providerName, Reason: ie.reason}
	}
	a.state = StateReady
	a.client = c
	a.opts.Logger.Debug("gemini client ready", slog.String("mode", c.mode))
	return c, nil
}

func extractResult(resp generateResponse) (models.Result, error) {
	first := resp.FirstCandidate()
	if first == nil {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return models.Result{}, &models.ClientError{
				Provider: apiName,
				Err:      fmt.Errorf("prompt blocked: %s", strings.ToLower(resp.PromptFeedback.BlockReason)),
			}
		}
		return models.Result{}, models.ErrEmptyResponse
	}
	text := first.Content.Text()
	if text == "" {
		return models.Result{}, models.ErrEmptyResponse
	}
	return models.Result{Text: text, Usage: convertUsage(resp.UsageMetadata)}, nil
}
