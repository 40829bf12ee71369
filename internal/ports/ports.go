package ports

import (
	"context"
	"time"

	"NewsRisk/internal/domain"
)

// SearchClient queries the web search service.
type SearchClient interface {
	Search(ctx context.Context, req domain.SearchRequest) (domain.SearchResultSet, error)
}

// Completer sends a role-tagged message list to a language model.
type Completer interface {
	Complete(ctx context.Context, messages []domain.Message) (string, error)
}

// ArtifactStore reads and writes named files under stage directories.
type ArtifactStore interface {
	Path(dir, name string) string
	EnsureDir(dir string) error
	WriteJSON(dir, name string, v any) (string, error)
	WriteJSONIndent(dir, name string, raw []byte) (string, error)
	WriteText(dir, name, text string) (string, error)
	ReadText(dir, name string) (string, error)
	ReadJSON(dir, name string, v any) error
	List(dir string) ([]string, error)
}

// TextExtractor pulls plain text out of a binary document.
type TextExtractor interface {
	ExtractText(path string) (string, error)
}

// Notifier streams run digests to Telegram or other channels.
type Notifier interface {
	PublishDigest(ctx context.Context, digest string) error
}

// Scheduler controls when pipelines execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
