package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"NewsRisk/internal/config"
	"NewsRisk/internal/domain"
	"NewsRisk/internal/ports"
)

const collaboratorName = "completion"

// OpenAIClient implements ports.Completer backed by OpenAI-compatible chat APIs.
type OpenAIClient struct {
	endpoint   string
	model      string
	apiKey     string
	httpClient *http.Client
}

var _ ports.Completer = (*OpenAIClient)(nil)

// NewOpenAIClient builds a client from configuration.
func NewOpenAIClient(cfg config.OpenAIConfig) *OpenAIClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &OpenAIClient{
		endpoint: cfg.Endpoint,
		model:    cfg.Model,
		apiKey:   cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete posts the messages and returns the first choice's content unmodified.
func (c *OpenAIClient) Complete(ctx context.Context, messages []domain.Message) (string, error) {
	if c == nil {
		return "", fmt.Errorf("openai client is nil")
	}
	if c.apiKey == "" || c.endpoint == "" || c.model == "" {
		return "", fmt.Errorf("openai client misconfigured")
	}

	body, err := json.Marshal(chatRequest{Model: c.model, Messages: toChatMessages(messages)})
	if err != nil {
		return "", fmt.Errorf("marshal openai payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", domain.NewCollaboratorError(collaboratorName, domain.KindTransport, fmt.Errorf("new request: %w", err))
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", domain.NewCollaboratorError(collaboratorName, domain.KindTransport, fmt.Errorf("send completion: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		kind := domain.KindStatus
		if resp.StatusCode == http.StatusTooManyRequests {
			kind = domain.KindRateLimit
		}
		return "", &domain.CollaboratorError{
			Collaborator: collaboratorName,
			Kind:         kind,
			StatusCode:   resp.StatusCode,
			Err:          fmt.Errorf("openai error %s: %s", resp.Status, strings.TrimSpace(string(payload))),
		}
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", domain.NewCollaboratorError(collaboratorName, domain.KindMalformed, fmt.Errorf("decode response: %w", err))
	}
	if decoded.Error != nil {
		return "", domain.NewCollaboratorError(collaboratorName, domain.KindMalformed, fmt.Errorf("api error: %s", decoded.Error.Message))
	}
	if len(decoded.Choices) == 0 {
		return "", domain.NewCollaboratorError(collaboratorName, domain.KindMalformed, errors.New("no completion returned"))
	}

	return decoded.Choices[0].Message.Content, nil
}

func toChatMessages(messages []domain.Message) []chatMessage {
	out := make([]chatMessage, 0, len(messages))
	for _, m := range messages {
		role := string(m.Role)
		if role == "" {
			role = string(domain.RoleUser)
		}
		out = append(out, chatMessage{Role: role, Content: m.Content})
	}
	return out
}
