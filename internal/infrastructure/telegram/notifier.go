package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"NewsRisk/internal/domain"
	"NewsRisk/internal/ports"
)

const (
	collaboratorName = "telegram"
	defaultAPIBase   = "https://api.telegram.org"
	maxMessageLen    = 4096
)

// Notifier delivers run digests to one chat through the Bot API.
type Notifier struct {
	apiBase  string
	botToken string
	chatID   string
	client   *http.Client
}

var _ ports.Notifier = (*Notifier)(nil)

// NewNotifier builds a notifier for a single chat.
func NewNotifier(botToken, chatID string) *Notifier {
	return &Notifier{
		apiBase:  defaultAPIBase,
		botToken: botToken,
		chatID:   chatID,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code"`
	Description string `json:"description"`
}

// PublishDigest sends digest as plain text. Digests longer than one Telegram
// message are split on line boundaries and sent in order; the first failed
// part stops delivery.
func (n *Notifier) PublishDigest(ctx context.Context, digest string) error {
	if n.botToken == "" || n.chatID == "" || n.client == nil {
		return fmt.Errorf("telegram notifier misconfigured")
	}

	for i, part := range splitMessage(digest, maxMessageLen) {
		if err := n.send(ctx, part); err != nil {
			return fmt.Errorf("send digest part %d: %w", i+1, err)
		}
	}
	return nil
}

func (n *Notifier) send(ctx context.Context, text string) error {
	body, err := json.Marshal(sendMessageRequest{ChatID: n.chatID, Text: text, DisableWebPagePreview: true})
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	endpoint := strings.TrimSuffix(n.apiBase, "/") + "/bot" + n.botToken + "/sendMessage"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return domain.NewCollaboratorError(collaboratorName, domain.KindTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return domain.NewCollaboratorError(collaboratorName, domain.KindTransport, err)
	}
	defer resp.Body.Close()

	var decoded apiResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&decoded)

	if resp.StatusCode != http.StatusOK || !decoded.OK {
		kind := domain.KindStatus
		if resp.StatusCode == http.StatusTooManyRequests || decoded.ErrorCode == http.StatusTooManyRequests {
			kind = domain.KindRateLimit
		}
		reason := decoded.Description
		if reason == "" {
			reason = resp.Status
		}
		return &domain.CollaboratorError{
			Collaborator: collaboratorName,
			Kind:         kind,
			StatusCode:   resp.StatusCode,
			Err:          fmt.Errorf("sendMessage rejected: %s", reason),
		}
	}
	if decodeErr != nil {
		return domain.NewCollaboratorError(collaboratorName, domain.KindMalformed, decodeErr)
	}
	return nil
}

// splitMessage cuts text into chunks of at most limit runes, preferring to
// break after a newline.
func splitMessage(text string, limit int) []string {
	runes := []rune(text)
	if len(runes) <= limit {
		return []string{text}
	}

	var parts []string
	for len(runes) > limit {
		cut := limit
		for i := limit - 1; i > limit/2; i-- {
			if runes[i] == '\n' {
				cut = i + 1
				break
			}
		}
		parts = append(parts, string(runes[:cut]))
		runes = runes[cut:]
	}
	if len(runes) > 0 {
		parts = append(parts, string(runes))
	}
	return parts
}
