package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"NewsRisk/internal/domain"
	"NewsRisk/internal/ports"
)

// FulfillmentArtifact names the artifact of the action item at index.
func FulfillmentArtifact(index int) string {
	return fmt.Sprintf("action_%d.txt", index)
}

// ActionFulfiller requests a project plan for every action item.
type ActionFulfiller struct {
	completer   ports.Completer
	store       ports.ArtifactStore
	dir         string
	instruction string
	concurrency int
	logger      *slog.Logger
}

// NewActionFulfiller wires the completer and save location.
// concurrency <= 1 processes items strictly one at a time in index order.
func NewActionFulfiller(completer ports.Completer, store ports.ArtifactStore, dir, instruction string, concurrency int, logger *slog.Logger) *ActionFulfiller {
	if concurrency < 1 {
		concurrency = 1
	}
	return &ActionFulfiller{
		completer:   completer,
		store:       store,
		dir:         dir,
		instruction: orDefault(instruction, defaultFulfillmentPrompt),
		concurrency: concurrency,
		logger:      orDiscard(logger),
	}
}

// Fulfill splits the raw action points on line breaks and attempts every item, blank ones included.
// A failing item is recorded in its outcome and never stops the others.
func (f *ActionFulfiller) Fulfill(ctx context.Context, actionPoints string) []domain.Fulfillment {
	items := domain.SplitActionItems(actionPoints)
	outcomes := make([]domain.Fulfillment, len(items))

	if f.concurrency == 1 {
		for _, item := range items {
			outcomes[item.Index] = f.fulfillOne(ctx, item)
		}
		return outcomes
	}

	var g errgroup.Group
	g.SetLimit(f.concurrency)
	for _, item := range items {
		g.Go(func() error {
			outcomes[item.Index] = f.fulfillOne(ctx, item)
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

func (f *ActionFulfiller) fulfillOne(ctx context.Context, item domain.ActionItem) domain.Fulfillment {
	outcome := domain.Fulfillment{Index: item.Index, Text: item.Text}

	messages := []domain.Message{
		domain.SystemMessage(f.instruction),
		domain.UserMessage(item.Text),
	}

	plan, err := f.completer.Complete(ctx, messages)
	if err != nil {
		kind, _ := domain.KindOf(err)
		f.logger.Error("action failed", "index", item.Index, "kind", kind.String(), "error", err)
		outcome.Err = fmt.Errorf("action %d completion: %w", item.Index, err)
		return outcome
	}

	name := FulfillmentArtifact(item.Index)
	if _, err := f.store.WriteText(f.dir, name, plan); err != nil {
		f.logger.Error("persist action", "index", item.Index, "error", err)
		outcome.Err = fmt.Errorf("persist %s: %w", name, err)
		return outcome
	}

	outcome.Artifact = name
	f.logger.Info("action processed", "index", item.Index)
	return outcome
}
