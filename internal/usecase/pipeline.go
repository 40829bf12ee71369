package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"NewsRisk/internal/domain"
	"NewsRisk/internal/ports"
)

// PipelineDeps wires all stages and driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Ingester   *SearchIngester
	Extractor  *FieldExtractor
	Summarizer *SummaryGenerator
	Planner    *ActionPlanner
	Fulfiller  *ActionFulfiller
	Notifier   ports.Notifier
	Logger     *slog.Logger
	Now        func() time.Time
	NewRunID   func() string
}

// Pipeline implements the news-risk workflow:
// search, extract, summarize, plan, then fulfill every action item.
type Pipeline struct {
	ingester   *SearchIngester
	extractor  *FieldExtractor
	summarizer *SummaryGenerator
	planner    *ActionPlanner
	fulfiller  *ActionFulfiller
	notifier   ports.Notifier
	logger     *slog.Logger
	now        func() time.Time
	newRunID   func() string
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	p := &Pipeline{
		ingester:   deps.Ingester,
		extractor:  deps.Extractor,
		summarizer: deps.Summarizer,
		planner:    deps.Planner,
		fulfiller:  deps.Fulfiller,
		notifier:   deps.Notifier,
		logger:     orDiscard(deps.Logger),
		now:        deps.Now,
		newRunID:   deps.NewRunID,
	}
	if p.extractor == nil {
		p.extractor = NewFieldExtractor(p.logger)
	}
	if p.now == nil {
		p.now = time.Now
	}
	if p.newRunID == nil {
		p.newRunID = func() string { return uuid.NewString() }
	}
	return p
}

// Run executes one pipeline run. Summary and action-point failures end the run
// in StateFailed; search and per-item fulfillment failures do not.
func (p *Pipeline) Run(ctx context.Context) (domain.RunReport, error) {
	if p.ingester == nil || p.summarizer == nil || p.planner == nil || p.fulfiller == nil {
		return domain.RunReport{State: domain.StateFailed}, fmt.Errorf("pipeline is not fully configured")
	}

	report := domain.RunReport{
		RunID:     p.newRunID(),
		StartedAt: p.now(),
		State:     domain.StateStart,
	}
	log := p.logger.With("run_id", report.RunID)
	log.Info("run started")

	results, snapshot := p.ingester.Ingest(ctx)
	report.SearchResults = len(results)
	report.Snapshot = snapshot
	p.advance(&report, log, domain.StateSearched)

	records := p.extractor.Records(results)
	report.Articles = len(records)
	p.advance(&report, log, domain.StateExtracted)

	summary, err := p.summarizer.Generate(ctx, records)
	if err != nil {
		return p.fail(report, log, fmt.Errorf("summarize: %w", err))
	}
	report.Summary = summary
	p.advance(&report, log, domain.StateSummarized)

	points, err := p.planner.Plan(ctx, summary)
	if err != nil {
		return p.fail(report, log, fmt.Errorf("plan actions: %w", err))
	}
	report.ActionPoints = points
	p.advance(&report, log, domain.StatePlanned)

	p.advance(&report, log, domain.StateFulfilling)
	report.Fulfillments = p.fulfiller.Fulfill(ctx, points)
	log.Info("actions fulfilled", "items", len(report.Fulfillments), "succeeded", report.FulfilledCount())

	report.FinishedAt = p.now()
	p.advance(&report, log, domain.StateDone)

	p.notify(ctx, log, report)
	return report, nil
}

func (p *Pipeline) advance(report *domain.RunReport, log *slog.Logger, state domain.RunState) {
	report.State = state
	log.Debug("stage reached", "state", string(state))
}

func (p *Pipeline) fail(report domain.RunReport, log *slog.Logger, err error) (domain.RunReport, error) {
	report.State = domain.StateFailed
	report.FinishedAt = p.now()
	log.Error("run failed", "error", err)
	return report, err
}

func (p *Pipeline) notify(ctx context.Context, log *slog.Logger, report domain.RunReport) {
	if p.notifier == nil {
		return
	}
	if err := p.notifier.PublishDigest(ctx, buildDigestMessage(report)); err != nil {
		log.Warn("publish digest", "error", err)
	}
}

func buildDigestMessage(report domain.RunReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Emerging risk briefing (%d articles)\n\n", report.Articles)
	b.WriteString(strings.TrimSpace(report.Summary))
	b.WriteString("\n\nAction points:\n")
	b.WriteString(strings.TrimSpace(report.ActionPoints))
	fmt.Fprintf(&b, "\n\nProject plans: %d of %d produced", report.FulfilledCount(), len(report.Fulfillments))
	return b.String()
}

func orDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return logger
}
