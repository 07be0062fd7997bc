package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Noodieknoodie/AI-HELPER/internal/models"
	"github.com/Noodieknoodie/AI-HELPER/internal/providers/progress"
)

const (
	defaultURL     = "https://api.anthropic.com/v1/messages"
	defaultVersion = "2023-06-01"
	longOutputBeta = "output-128k-2025-02-19"

	fallbackMaxTokens = 8192
	maxErrorBody      = 1 << 20
)

// Options configures the native Anthropic adapter.
type Options struct {
	URL        string
	Version    string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

type Adapter struct {
	client  *http.Client
	url     string
	version string
	logger  *slog.Logger
}

func New(opts Options) (*Adapter, error) {
	if strings.TrimSpace(opts.URL) == "" {
		opts.URL = defaultURL
	}
	if _, err := url.ParseRequestURI(opts.URL); err != nil {
		return nil, fmt.Errorf("anthropic: invalid url %q: %w", opts.URL, err)
	}
	if strings.TrimSpace(opts.Version) == "" {
		opts.Version = defaultVersion
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 300 * time.Second}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Adapter{
		client:  opts.HTTPClient,
		url:     strings.TrimSpace(opts.URL),
		version: strings.TrimSpace(opts.Version),
		logger:  opts.Logger,
	}, nil
}

func (a *Adapter) Send(ctx context.Context, call models.Call, report progress.Func) (models.Result, error) {
	body, err := json.Marshal(BuildRequestBody(call))
	if err != nil {
		return models.Result{}, fmt.Errorf("encode anthropic request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.url, bytes.NewReader(body))
	if err != nil {
		return models.Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-api-key", call.APIKey)
	req.Header.Set("anthropic-version", a.version)
	if call.Capabilities.SupportsLongOutput {
		req.Header.Set("anthropic-beta", longOutputBeta)
	}
	report.Report(progress.Prepared)

	report.Report(progress.Dispatched)
	resp, err := a.client.Do(req)
	if err != nil {
		return models.Result{}, err
	}
	defer resp.Body.Close()
	report.Report(progress.Received)

	if resp.StatusCode != http.StatusOK {
		return models.Result{}, decodeAPIError(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.Result{}, fmt.Errorf("read anthropic response: %w", err)
	}
	result, err := ParseResponse(data)
	if err != nil {
		a.logger.Debug("anthropic response without text", slog.String("error", err.Error()))
		return models.Result{}, err
	}
	report.Report(progress.Done)
	return result, nil
}

// BuildRequestBody assembles the Messages API payload. Free-form parameters
// go in first so model, messages and thinking always win.
func BuildRequestBody(call models.Call) map[string]any {
	body := make(map[string]any, len(call.Parameters)+3)
	for k, v := range call.Parameters {
		body[k] = v
	}
	if _, ok := body["max_tokens"]; !ok {
		body["max_tokens"] = models.Or(call.Capabilities.MaxTokensDefault, fallbackMaxTokens)
	}
	body["model"] = call.Model
	body["messages"] = []message{{Role: "user", Content: call.Prompt}}

	if et := call.Modes.ExtendedThinking; et != nil && et.Enabled && call.Capabilities.SupportsExtendedThinking {
		body["thinking"] = thinking{Type: "enabled", BudgetTokens: et.Budget}
	}
	return body
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type thinking struct {
	Type         string `json:"type"`
	BudgetTokens int    `json:"budget_tokens"`
}

type messageResponse struct {
	ID         string         `json:"id"`
	Content    []contentBlock `json:"content"`
	StopReason string         `json:"stop_reason"`
	Usage      *usage         `json:"usage"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type usage struct {
	InputTokens  int64 `json:"input_tokens"`
	OutputTokens int64 `json:"output_tokens"`
}

// JoinText concatenates the text blocks in order, skipping thinking, image
// and tool blocks.
func (r messageResponse) JoinText() string {
	var b strings.Builder
	for _, c := range r.Content {
		if c.Type == "text" {
			b.WriteString(c.Text)
		}
	}
	return b.String()
}

func (r messageResponse) Result() (models.Result, error) {
	text := r.JoinText()
	if text == "" {
		return models.Result{}, models.ErrEmptyResponse
	}
	result := models.Result{Text: text}
	if r.Usage != nil {
		result.Usage = &models.Usage{
			PromptTokens:     r.Usage.InputTokens,
			CompletionTokens: r.Usage.OutputTokens,
			TotalTokens:      r.Usage.InputTokens + r.Usage.OutputTokens,
		}
	}
	return result, nil
}

// ParseResponse extracts the reply from a raw Messages API success body.
func ParseResponse(data []byte) (models.Result, error) {
	var parsed messageResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return models.Result{}, errors.Join(models.ErrEmptyResponse, err)
	}
	return parsed.Result()
}

func decodeAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &models.StatusError{StatusCode: resp.StatusCode, Body: string(body)}
}
