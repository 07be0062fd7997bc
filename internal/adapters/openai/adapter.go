package openai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/Noodieknoodie/AI-HELPER/internal/models"
	"github.com/Noodieknoodie/AI-HELPER/internal/providers/progress"
)

const (
	defaultURL   = "https://api.openai.com/v1/chat/completions"
	maxErrorBody = 1 << 20
)

// Options configure the chat completions adapter.
type Options struct {
	URL        string
	HTTPClient *http.Client
	Logger     *slog.Logger
	Extra      []option.RequestOption
}

// Adapter wraps the official OpenAI SDK transport. Request bodies are built
// by hand so free-form parameters pass through untouched.
type Adapter struct {
	client *openai.Client
	url    string
	logger *slog.Logger
}

// New creates an adapter posting to the configured chat completions URL.
// The credential is supplied per call.
func New(opts Options) (*Adapter, error) {
	if strings.TrimSpace(opts.URL) == "" {
		opts.URL = defaultURL
	}
	if _, err := url.ParseRequestURI(opts.URL); err != nil {
		return nil, fmt.Errorf("openai: invalid url %q: %w", opts.URL, err)
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 300 * time.Second}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	requestOpts := []option.RequestOption{
		option.WithHTTPClient(opts.HTTPClient),
		option.WithMaxRetries(0),
	}
	requestOpts = append(requestOpts, opts.Extra...)
	client := openai.NewClient(requestOpts...)

	return &Adapter{client: &client, url: strings.TrimSpace(opts.URL), logger: opts.Logger}, nil
}

// Send performs one non-streaming chat completion.
func (a *Adapter) Send(ctx context.Context, call models.Call, report progress.Func) (models.Result, error) {
	body := BuildRequestBody(call)

	var statusErr *models.StatusError
	capture := option.WithMiddleware(func(req *http.Request, next option.MiddlewareNext) (*http.Response, error) {
		resp, err := next(req)
		if err != nil {
			return resp, err
		}
		report.Report(progress.Received)
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp, nil
		}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		resp.Body.Close()
		resp.Body = io.NopCloser(bytes.NewReader(raw))
		statusErr = &models.StatusError{StatusCode: resp.StatusCode, Body: string(raw)}
		return resp, nil
	})
	report.Report(progress.Prepared)

	var completion openai.ChatCompletion
	report.Report(progress.Dispatched)
	err := a.client.Post(ctx, a.url, body, &completion, option.WithAPIKey(call.APIKey), capture)
	if err != nil {
		if statusErr != nil {
			return models.Result{}, statusErr
		}
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return models.Result{}, &models.StatusError{StatusCode: apiErr.StatusCode, Body: apiErr.RawJSON()}
		}
		return models.Result{}, err
	}

	result, err := extractResult(completion)
	if err != nil {
		a.logger.Debug("openai response without choices", slog.String("model", call.Model))
		return models.Result{}, err
	}
	report.Report(progress.Done)
	return result, nil
}

// BuildRequestBody assembles the chat completions payload. At most one of
// max_tokens and max_completion_tokens is present in the result, and
// reasoning_effort only appears for reasoning models.
func BuildRequestBody(call models.Call) map[string]any {
	body := make(map[string]any, len(call.Parameters)+3)
	for k, v := range call.Parameters {
		body[k] = v
	}
	body["model"] = call.Model
	body["messages"] = []message{{Role: "user", Content: call.Prompt}}

	if call.Capabilities.SupportsReasoning {
		if v, ok := body["max_tokens"]; ok {
			body["max_completion_tokens"] = v
			delete(body, "max_tokens")
		}
		body["reasoning_effort"] = string(reasoningEffort(call))
		return body
	}

	delete(body, "reasoning_effort")
	if _, ok := body["max_tokens"]; ok {
		delete(body, "max_completion_tokens")
	}
	return body
}

func reasoningEffort(call models.Call) models.ReasoningEffort {
	if call.Modes.ReasoningEffort != nil {
		return *call.Modes.ReasoningEffort
	}
	if raw, ok := call.Parameters["reasoning_effort"].(string); ok {
		if effort, ok := models.ParseReasoningEffort(raw); ok {
			return effort
		}
	}
	return models.ReasoningMedium
}

func extractResult(resp openai.ChatCompletion) (models.Result, error) {
	if len(resp.Choices) == 0 {
		return models.Result{}, models.ErrEmptyResponse
	}
	result := models.Result{Text: resp.Choices[0].Message.Content}
	if resp.JSON.Usage.Valid() {
		result.Usage = &models.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		}
	}
	return result, nil
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
