package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"NewsRisk/internal/domain"
	"NewsRisk/internal/infrastructure/storage"
)

type completerFunc func(messages []domain.Message) (string, error)

// recordingCompleter records every request and answers through respond.
type recordingCompleter struct {
	mu      sync.Mutex
	calls   [][]domain.Message
	respond completerFunc
}

func (r *recordingCompleter) Complete(_ context.Context, messages []domain.Message) (string, error) {
	r.mu.Lock()
	r.calls = append(r.calls, messages)
	r.mu.Unlock()
	if r.respond == nil {
		return "ok", nil
	}
	return r.respond(messages)
}

func (r *recordingCompleter) Calls() [][]domain.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]domain.Message(nil), r.calls...)
}

type fakeSearch struct {
	results domain.SearchResultSet
	err     error
	got     domain.SearchRequest
}

func (f *fakeSearch) Search(_ context.Context, req domain.SearchRequest) (domain.SearchResultSet, error) {
	f.got = req
	return f.results, f.err
}

type fakeNotifier struct {
	digests []string
	err     error
}

func (f *fakeNotifier) PublishDigest(_ context.Context, digest string) error {
	f.digests = append(f.digests, digest)
	return f.err
}

var errCollaborator = domain.NewCollaboratorError("completion", domain.KindTransport, errors.New("connection reset"))

func fixedClock() time.Time {
	return time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)
}

func newStore(t *testing.T) *storage.FileStore {
	t.Helper()
	return storage.NewFileStore(t.TempDir())
}

func wellFormed(link, title, description string) json.RawMessage {
	payload, _ := json.Marshal(map[string]any{
		"link": link,
		"pagemap": map[string]any{
			"metatags": []map[string]any{{"og:title": title, "og:description": description}},
		},
	})
	return payload
}

func lastUserContent(messages []domain.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == domain.RoleUser {
			return messages[i].Content
		}
	}
	return ""
}

// stageResponder answers by recognising which stage issued the call.
func stageResponder(summary, points string, fulfill completerFunc) completerFunc {
	return func(messages []domain.Message) (string, error) {
		switch {
		case messages[0].Content == defaultSummaryPrompt:
			return summary, nil
		case len(messages) == 2 && messages[1].Content == defaultActionPointsPrompt:
			return points, nil
		case strings.HasPrefix(messages[0].Content, "Produce a project plan"):
			if fulfill != nil {
				return fulfill(messages)
			}
			return "plan for " + lastUserContent(messages), nil
		}
		return "", errors.New("unexpected request")
	}
}
