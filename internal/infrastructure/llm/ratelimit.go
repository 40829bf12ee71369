package llm

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"NewsRisk/internal/config"
	"NewsRisk/internal/domain"
	"NewsRisk/internal/ports"
)

// PacedCompleter spaces out completion calls client-side. It never retries.
type PacedCompleter struct {
	next    ports.Completer
	limiter *rate.Limiter
}

var _ ports.Completer = (*PacedCompleter)(nil)

// NewPacedCompleter allows at most perMinute calls per minute through next.
func NewPacedCompleter(next ports.Completer, perMinute int) *PacedCompleter {
	return &PacedCompleter{
		next:    next,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1),
	}
}

// Complete waits for a token then delegates.
func (p *PacedCompleter) Complete(ctx context.Context, messages []domain.Message) (string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("pace completion: %w", err)
	}
	return p.next.Complete(ctx, messages)
}

// New builds the completer for the configured provider.
func New(ctx context.Context, cfg config.LLMConfig) (ports.Completer, error) {
	var (
		completer ports.Completer
		err       error
	)

	switch cfg.Provider {
	case config.ProviderOpenAI:
		completer = NewOpenAIClient(cfg.OpenAI)
	case config.ProviderGemini:
		completer, err = NewGeminiClient(ctx, cfg.Gemini)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}

	if cfg.RequestsPerMinute > 0 {
		completer = NewPacedCompleter(completer, cfg.RequestsPerMinute)
	}
	return completer, nil
}
