package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"NewsRisk/internal/domain"
	"NewsRisk/internal/ports"
)

// ActionPointsArtifact is the fixed name of the planner output file.
const ActionPointsArtifact = "action_points.txt"

// ActionPlanner turns the summary into prioritized action points.
type ActionPlanner struct {
	completer   ports.Completer
	store       ports.ArtifactStore
	dir         string
	instruction string
	logger      *slog.Logger
}

// NewActionPlanner wires the completer, save location and follow-up instruction.
func NewActionPlanner(completer ports.Completer, store ports.ArtifactStore, dir, instruction string, logger *slog.Logger) *ActionPlanner {
	return &ActionPlanner{
		completer:   completer,
		store:       store,
		dir:         dir,
		instruction: orDefault(instruction, defaultActionPointsPrompt),
		logger:      orDiscard(logger),
	}
}

// Plan returns the raw model output; it neither validates nor truncates the list.
func (p *ActionPlanner) Plan(ctx context.Context, summary string) (string, error) {
	messages := []domain.Message{
		domain.UserMessage(summary),
		domain.UserMessage(p.instruction),
	}

	points, err := p.completer.Complete(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("action points completion: %w", err)
	}

	if _, err := p.store.WriteText(p.dir, ActionPointsArtifact, points); err != nil {
		return "", fmt.Errorf("persist action points: %w", err)
	}

	p.logger.Info("action points produced", "chars", len(points))
	return points, nil
}
