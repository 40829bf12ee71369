package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"NewsRisk/internal/domain"
	"NewsRisk/internal/ports"
)

// SummaryArtifact is the fixed name of the summary file.
const SummaryArtifact = "summary.txt"

// SummaryGenerator asks the model for a Board-readable risk summary.
type SummaryGenerator struct {
	completer   ports.Completer
	store       ports.ArtifactStore
	dir         string
	instruction string
	logger      *slog.Logger
}

// NewSummaryGenerator wires the completer, save location and analyst instruction.
func NewSummaryGenerator(completer ports.Completer, store ports.ArtifactStore, dir, instruction string, logger *slog.Logger) *SummaryGenerator {
	return &SummaryGenerator{
		completer:   completer,
		store:       store,
		dir:         dir,
		instruction: orDefault(instruction, defaultSummaryPrompt),
		logger:      orDiscard(logger),
	}
}

// Generate always issues exactly one completion, even for an empty record list.
func (g *SummaryGenerator) Generate(ctx context.Context, records []domain.ArticleRecord) (string, error) {
	messages := []domain.Message{
		domain.SystemMessage(g.instruction),
		domain.UserMessage(JoinArticles(records)),
	}

	summary, err := g.completer.Complete(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("summary completion: %w", err)
	}

	if _, err := g.store.WriteText(g.dir, SummaryArtifact, summary); err != nil {
		return "", fmt.Errorf("persist summary: %w", err)
	}

	g.logger.Info("summary produced", "articles", len(records), "chars", len(summary))
	return summary, nil
}

// JoinArticles renders one "title: description" line per record.
func JoinArticles(records []domain.ArticleRecord) string {
	lines := make([]string, len(records))
	for i, r := range records {
		lines[i] = r.Title + ": " + r.Description
	}
	return strings.Join(lines, "\n")
}
