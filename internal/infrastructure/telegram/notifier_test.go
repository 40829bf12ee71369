package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"NewsRisk/internal/domain"
)

func newTestNotifier(t *testing.T, handler http.HandlerFunc) *Notifier {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	n := NewNotifier("token", "chat-1")
	n.apiBase = server.URL
	return n
}

func TestPublishDigest(t *testing.T) {
	t.Parallel()

	var gotPath string
	var got sendMessageRequest
	n := newTestNotifier(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"ok":true,"result":{}}`))
	})

	if err := n.PublishDigest(context.Background(), "summary"); err != nil {
		t.Fatalf("PublishDigest error: %v", err)
	}
	if gotPath != "/bottoken/sendMessage" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	if got.ChatID != "chat-1" || got.Text != "summary" || !got.DisableWebPagePreview {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestPublishDigestSplitsLongMessages(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var texts []string
	n := newTestNotifier(t, func(w http.ResponseWriter, r *http.Request) {
		var req sendMessageRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		mu.Lock()
		texts = append(texts, req.Text)
		mu.Unlock()
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	line := strings.Repeat("x", 99) + "\n"
	digest := strings.Repeat(line, 60)
	if err := n.PublishDigest(context.Background(), digest); err != nil {
		t.Fatalf("PublishDigest error: %v", err)
	}
	if len(texts) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(texts))
	}
	if strings.Join(texts, "") != digest {
		t.Fatalf("parts do not reassemble the digest")
	}
}

func TestPublishDigestRejected(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		status int
		body   string
		kind   domain.ErrorKind
	}{
		{"bad request", http.StatusBadRequest, `{"ok":false,"error_code":400,"description":"chat not found"}`, domain.KindStatus},
		{"rate limited", http.StatusTooManyRequests, `{"ok":false,"error_code":429,"description":"Too Many Requests"}`, domain.KindRateLimit},
		{"ok status but not ok", http.StatusOK, `{"ok":false,"description":"nope"}`, domain.KindStatus},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			n := newTestNotifier(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})
			err := n.PublishDigest(context.Background(), "x")
			if err == nil {
				t.Fatalf("expected error")
			}
			if kind, _ := domain.KindOf(err); kind != tc.kind {
				t.Fatalf("expected %s, got %s", tc.kind, kind)
			}
		})
	}
}

func TestPublishDigestMisconfigured(t *testing.T) {
	t.Parallel()

	if err := NewNotifier("", "").PublishDigest(context.Background(), "x"); err == nil {
		t.Fatalf("expected misconfiguration error")
	}
}

func TestSplitMessage(t *testing.T) {
	t.Parallel()

	if got := splitMessage("short", maxMessageLen); len(got) != 1 || got[0] != "short" {
		t.Fatalf("short strings must pass through, got %q", got)
	}

	long := strings.Repeat("é", maxMessageLen+10)
	parts := splitMessage(long, maxMessageLen)
	if len(parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(parts))
	}
	if utf8.RuneCountInString(parts[0]) != maxMessageLen || utf8.RuneCountInString(parts[1]) != 10 {
		t.Fatalf("unexpected part sizes %d/%d", utf8.RuneCountInString(parts[0]), utf8.RuneCountInString(parts[1]))
	}
}
