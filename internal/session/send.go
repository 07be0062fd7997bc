package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"time"

	"github.com/google/uuid"

	"github.com/Noodieknoodie/AI-HELPER/internal/models"
	"github.com/Noodieknoodie/AI-HELPER/internal/observability"
	"github.com/Noodieknoodie/AI-HELPER/internal/providers"
	"github.com/Noodieknoodie/AI-HELPER/internal/providers/progress"
)

// Replies returned for failed preconditions.
const (
	ReplyNoAPIKey = "Error: API key not provided"
	ReplyNoModel  = "Error: No model selected"
)

// Send dispatches prompt to the active provider and returns the reply text.
// Every failure, including a panic inside an adapter, is returned as a
// string starting with "Error". onProgress may be nil; it is called on the
// calling goroutine with increasing values and is never called when a
// precondition fails.
func (s *Session) Send(ctx context.Context, prompt string, onProgress progress.Func) (reply string) {
	start := time.Now()
	logger := s.logger.With(slog.String("request_id", uuid.NewString()))
	provider, model := "", ""

	defer func() {
		if r := recover(); r != nil {
			reply = fmt.Sprintf("Error: %v", r)
			logger.Error("send panicked", slog.Any("panic", r))
			s.metrics.RecordRequest(provider, model, observability.OutcomeError, time.Since(start))
		}
	}()

	call, adapter, rejected := s.prepare(prompt)
	provider, model = call.Provider.Name, call.Model
	logger = logger.With(slog.String("provider", provider), slog.String("model", model))
	if rejected != "" {
		logger.Warn("send rejected", slog.String("reason", rejected))
		s.metrics.RecordRequest(provider, model, observability.OutcomePrecondition, 0)
		return rejected
	}

	reporter := progress.NewReporter(onProgress)
	reporter.Report(progress.Started)

	result, err := adapter.Send(ctx, call, reporter.Func())
	duration := time.Since(start)
	if err != nil {
		reply = errorReply(err)
		logger.Error("send failed", slog.Duration("duration", duration), slog.String("error", err.Error()))
		s.metrics.RecordRequest(provider, model, observability.OutcomeError, duration)
		return reply
	}

	if result.Usage != nil {
		s.mu.Lock()
		s.lastUsage = result.Usage
		s.mu.Unlock()
		s.metrics.RecordTokens(provider, model, *result.Usage)
	}
	reporter.Report(progress.Done)

	attrs := []any{slog.Duration("duration", duration), slog.Int("chars", len(result.Text))}
	if result.Usage != nil {
		attrs = append(attrs, slog.Int64("total_tokens", result.Usage.TotalTokens))
	}
	logger.Info("send finished", attrs...)
	s.metrics.RecordRequest(provider, model, observability.OutcomeSuccess, duration)
	return result.Text
}

// prepare checks the preconditions and snapshots everything the adapter
// needs so the lock is not held during network I/O.
func (s *Session) prepare(prompt string) (models.Call, providers.Adapter, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, _ := s.registry.Provider(s.provider)
	if p.Name == "" {
		p.Name = s.provider
	}
	call := models.Call{
		Provider:     p,
		Model:        s.modelID,
		APIKey:       s.apiKey,
		Prompt:       prompt,
		Parameters:   maps.Clone(s.parameters),
		Capabilities: s.registry.Lookup(s.provider, s.modelID),
		Modes: models.Modes{
			ExtendedThinking: clonePtr(s.extendedThinking),
			Thinking:         clonePtr(s.thinking),
			ReasoningEffort:  clonePtr(s.reasoningEffort),
		},
	}

	switch {
	case s.apiKey == "":
		return call, nil, ReplyNoAPIKey
	case s.modelID == "":
		return call, nil, ReplyNoModel
	case !s.factory.Supports(s.provider):
		return call, nil, fmt.Sprintf("Error: Unsupported provider %s", s.provider)
	}

	adapter, ok := s.adapters[s.provider]
	if !ok {
		built, err := s.factory.Build(p)
		if err != nil {
			return call, nil, "Error: " + err.Error()
		}
		s.adapters[s.provider] = built
		adapter = built
	}
	return call, adapter, ""
}

func errorReply(err error) string {
	var (
		statusErr   *models.StatusError
		unavailable *models.UnavailableError
		clientErr   *models.ClientError
	)
	switch {
	case errors.Is(err, models.ErrEmptyResponse):
		return "Error: " + models.ErrEmptyResponse.Error()
	case errors.As(err, &statusErr):
		return "Error: " + statusErr.Error()
	case errors.As(err, &unavailable):
		return "Error: " + unavailable.Error()
	case errors.As(err, &clientErr):
		return fmt.Sprintf("Error from %s: %v", clientErr.Provider, clientErr.Err)
	default:
		return "Error: " + err.Error()
	}
}
