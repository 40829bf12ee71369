package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"NewsRisk/internal/config"
	"NewsRisk/internal/domain"
	"NewsRisk/internal/ports"
)

// GeminiClient implements ports.Completer on top of the Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  string
}

var _ ports.Completer = (*GeminiClient)(nil)

// NewGeminiClient creates a genai client for the configured model.
func NewGeminiClient(ctx context.Context, cfg config.GeminiConfig) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}

	clientCfg := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: timeout},
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiClient{client: client, model: model}, nil
}

// Complete maps system messages to the system instruction and user messages to contents.
func (g *GeminiClient) Complete(ctx context.Context, messages []domain.Message) (string, error) {
	contents, genCfg := buildGeminiRequest(messages)

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, genCfg)
	if err != nil {
		return "", classifyGeminiError(err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", domain.NewCollaboratorError(collaboratorName, domain.KindMalformed, errors.New("no candidates returned"))
	}

	return resp.Text(), nil
}

func buildGeminiRequest(messages []domain.Message) ([]*genai.Content, *genai.GenerateContentConfig) {
	var (
		system   []string
		contents []*genai.Content
	)
	for _, m := range messages {
		if m.Role == domain.RoleSystem {
			system = append(system, m.Content)
			continue
		}
		contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
	}

	genCfg := &genai.GenerateContentConfig{}
	if len(system) > 0 {
		genCfg.SystemInstruction = genai.NewContentFromText(strings.Join(system, "\n\n"), genai.RoleUser)
	}
	return contents, genCfg
}

func classifyGeminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		kind := domain.KindStatus
		if apiErr.Code == http.StatusTooManyRequests {
			kind = domain.KindRateLimit
		}
		return &domain.CollaboratorError{
			Collaborator: collaboratorName,
			Kind:         kind,
			StatusCode:   apiErr.Code,
			Err:          err,
		}
	}
	return domain.NewCollaboratorError(collaboratorName, domain.KindTransport, err)
}
