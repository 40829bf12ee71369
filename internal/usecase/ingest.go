package usecase

import (
	"context"
	"log/slog"
	"time"

	"NewsRisk/internal/domain"
	"NewsRisk/internal/ports"
)

// SnapshotLayout names search snapshots by run timestamp.
const SnapshotLayout = "2006-01-02-15-04-05"

// SearchIngester runs the topic query and snapshots the raw results.
type SearchIngester struct {
	client  ports.SearchClient
	store   ports.ArtifactStore
	dir     string
	request domain.SearchRequest
	now     func() time.Time
	logger  *slog.Logger
}

// NewSearchIngester wires the search client with its snapshot directory.
func NewSearchIngester(client ports.SearchClient, store ports.ArtifactStore, dir string, req domain.SearchRequest, now func() time.Time, logger *slog.Logger) *SearchIngester {
	if now == nil {
		now = time.Now
	}
	return &SearchIngester{
		client:  client,
		store:   store,
		dir:     dir,
		request: req,
		now:     now,
		logger:  orDiscard(logger),
	}
}

// Ingest returns the raw result set and the snapshot name ("" when nothing was written).
// Search failures degrade to an empty set; they are never returned to the caller.
func (s *SearchIngester) Ingest(ctx context.Context) (domain.SearchResultSet, string) {
	results, err := s.client.Search(ctx, s.request)
	if err != nil {
		kind, _ := domain.KindOf(err)
		s.logger.Error("search failed, continuing without articles", "kind", kind.String(), "error", err)
		return domain.SearchResultSet{}, ""
	}

	name := s.now().Format(SnapshotLayout) + ".json"
	if _, err := s.store.WriteJSON(s.dir, name, results); err != nil {
		s.logger.Error("persist search snapshot", "name", name, "error", err)
		return results, ""
	}

	s.logger.Info("search completed", "results", len(results), "snapshot", name)
	return results, name
}
