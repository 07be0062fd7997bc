package session

import (
	"github.com/Noodieknoodie/AI-HELPER/internal/catalog"
	"github.com/Noodieknoodie/AI-HELPER/internal/models"
	"github.com/Noodieknoodie/AI-HELPER/internal/providers"
)

// Fallbacks used when a model does not report a limit.
const (
	anthropicMaxTokens       = 8192
	anthropicThinkingBudget  = 64000
	openAIReasoningMaxTokens = 16000
	openAIMaxTokens          = 16384
	geminiMaxOutputTokens    = 8192
)

// SetProvider switches to name, resets the model to the provider default
// and re-derives parameters and modes. It returns false and leaves the
// session untouched when name is not configured.
func (s *Session) SetProvider(name string) bool {
	p, ok := s.registry.Provider(name)
	if !ok {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.provider = p.Name
	s.modelID = p.DefaultModel
	s.resetAdaptersLocked()

	key, known := s.keys[p.Name]
	if !known && s.credentials != nil {
		key = s.credentials.Load(p.Name)
		if key != "" {
			s.keys[p.Name] = key
		}
	}
	s.apiKey = key

	s.configureForModel(false)
	s.logger.Debug("provider selected", "provider", s.provider, "model", s.modelID)
	return true
}

// SetModel selects id without checking the catalogue and re-derives
// parameters and modes.
func (s *Session) SetModel(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modelID = id
	s.configureForModel(false)
}

// SetAPIKey stores the credential for the active provider and drops any
// client bound to the previous one.
func (s *Session) SetAPIKey(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apiKey = key
	s.keys[s.provider] = key
	if r, ok := s.adapters[s.provider].(providers.Resetter); ok {
		r.Reset()
	}
}

// SetParameter stores a raw generation parameter. Builders ignore keys
// their provider does not understand.
func (s *Session) SetParameter(name string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parameters[name] = value
	delete(s.derived, name)
}

// SetExtendedThinking toggles extended thinking. The optional budget is
// clamped to the model's extended token limit.
func (s *Session) SetExtendedThinking(enabled bool, budget ...int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	caps := s.registry.Lookup(s.provider, s.modelID)
	if !caps.SupportsExtendedThinking {
		return false
	}
	limit := models.Or(caps.MaxTokensExtended, anthropicThinkingBudget)
	if s.extendedThinking == nil {
		s.extendedThinking = &models.ExtendedThinking{Budget: limit}
	}
	s.extendedThinking.Enabled = enabled
	if len(budget) > 0 {
		s.extendedThinking.Budget = min(max(budget[0], 0), limit)
	}
	return true
}

// SetThinking toggles Gemini thinking.
func (s *Session) SetThinking(enabled bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.registry.Lookup(s.provider, s.modelID).SupportsThinking {
		return false
	}
	s.thinking = &models.Thinking{Enabled: enabled}
	return true
}

// SetReasoningEffort accepts low, medium or high on reasoning models.
func (s *Session) SetReasoningEffort(effort string) bool {
	parsed, ok := models.ParseReasoningEffort(effort)
	if !ok {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.registry.Lookup(s.provider, s.modelID).SupportsReasoning {
		return false
	}
	s.reasoningEffort = &parsed
	return true
}

// configureForModel clears every mode and derives provider defaults from the
// active model's capabilities. During construction parameters supplied by
// the caller win; afterwards previously derived keys are replaced. Callers
// hold s.mu or own s exclusively.
func (s *Session) configureForModel(initial bool) {
	caps := s.registry.Lookup(s.provider, s.modelID)

	s.extendedThinking = nil
	s.thinking = nil
	s.reasoningEffort = nil

	if !initial {
		for key := range s.derived {
			delete(s.parameters, key)
		}
	}
	s.derived = map[string]struct{}{}

	derive := func(key string, value int) {
		if initial {
			if _, set := s.parameters[key]; set {
				return
			}
		}
		s.parameters[key] = value
		s.derived[key] = struct{}{}
	}

	switch catalog.NormalizeProviderSlug(s.provider) {
	case "anthropic":
		derive("max_tokens", models.Or(caps.MaxTokensDefault, anthropicMaxTokens))
		if caps.SupportsExtendedThinking {
			s.extendedThinking = &models.ExtendedThinking{
				Enabled: false,
				Budget:  models.Or(caps.MaxTokensExtended, anthropicThinkingBudget),
			}
		}
	case "openai":
		if caps.SupportsReasoning {
			derive("max_tokens", models.Or(caps.MaxTokensDefault, openAIReasoningMaxTokens))
			effort := models.ReasoningMedium
			s.reasoningEffort = &effort
		} else {
			derive("max_tokens", models.Or(caps.MaxTokensDefault, openAIMaxTokens))
		}
	case "gemini":
		derive("max_output_tokens", models.Or(caps.OutputTokenLimit, geminiMaxOutputTokens))
		if caps.SupportsThinking {
			s.thinking = &models.Thinking{Enabled: false}
		}
	}
}

func (s *Session) resetAdaptersLocked() {
	for _, adapter := range s.adapters {
		if r, ok := adapter.(providers.Resetter); ok {
			r.Reset()
		}
	}
}
