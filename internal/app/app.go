package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"NewsRisk/internal/config"
	"NewsRisk/internal/converter"
	"NewsRisk/internal/domain"
	"NewsRisk/internal/infrastructure/llm"
	"NewsRisk/internal/infrastructure/pdf"
	"NewsRisk/internal/infrastructure/scheduler"
	"NewsRisk/internal/infrastructure/search"
	"NewsRisk/internal/infrastructure/storage"
	"NewsRisk/internal/infrastructure/telegram"
	"NewsRisk/internal/logging"
	"NewsRisk/internal/ports"
	"NewsRisk/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg        config.Config
	logger     *slog.Logger
	store      *storage.FileStore
	completer  ports.Completer
	converters *converter.Registry
}

// New validates completion credentials and builds the shared adapters.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.Output)
	}
	if err := cfg.ValidateLLM(); err != nil {
		return nil, err
	}

	completer, err := llm.New(ctx, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("build completer: %w", err)
	}

	a := &Application{
		cfg:       cfg,
		logger:    baseLogger,
		store:     storage.NewFileStore(cfg.Artifacts.BaseDir),
		completer: completer,
	}
	a.converters = a.buildConverters()
	return a, nil
}

// Run performs a single pipeline execution.
func (a *Application) Run(ctx context.Context) (domain.RunReport, error) {
	pipeline, err := a.buildPipeline()
	if err != nil {
		return domain.RunReport{State: domain.StateFailed}, err
	}
	return pipeline.Run(ctx)
}

// Schedule runs the pipeline now and then every interval until ctx is cancelled.
func (a *Application) Schedule(ctx context.Context, interval time.Duration) error {
	pipeline, err := a.buildPipeline()
	if err != nil {
		return err
	}
	if interval <= 0 {
		interval = a.cfg.Scheduler.Interval
	}

	log := a.logger.With("component", "scheduler")
	sched := usecase.NewScheduler(scheduler.NewIntervalScheduler(interval), pipeline, log)
	if err := sched.Start(ctx); err != nil {
		return err
	}
	log.Info("schedule started", "interval", interval.String())

	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := sched.Stop(stopCtx); err != nil {
		return err
	}
	log.Info("schedule stopped")
	return nil
}

// Convert runs the named batch converter.
func (a *Application) Convert(ctx context.Context, name string) (int, error) {
	conv, err := a.converters.Resolve(name)
	if err != nil {
		return 0, err
	}
	return conv.Convert(ctx)
}

// Converters lists the registered converter names.
func (a *Application) Converters() []string {
	return a.converters.Names()
}

func (a *Application) buildPipeline() (*usecase.Pipeline, error) {
	if err := a.cfg.ValidateSearch(); err != nil {
		return nil, err
	}

	cfg := a.cfg
	prompts := usecase.PromptsFromConfig(cfg.Prompts)
	loc := cfg.Scheduler.Location()
	now := func() time.Time { return time.Now().In(loc) }

	req := domain.SearchRequest{
		Query:        domain.BuildQuery(cfg.Search.Terms),
		Country:      cfg.Search.Country,
		Language:     cfg.Search.Language,
		DateRestrict: cfg.Search.DateRestrict,
		Num:          cfg.Search.Num,
		Start:        cfg.Search.Start,
		Filter:       cfg.Search.FilterDuplicates(),
	}

	var notifier ports.Notifier
	if cfg.Notifications.Telegram.Enabled() {
		notifier = telegram.NewNotifier(cfg.Notifications.Telegram.BotToken, cfg.Notifications.Telegram.ChatID)
	}

	searchClient := search.NewCustomSearchClient(cfg.Search, nil)
	return usecase.NewPipeline(usecase.PipelineDeps{
		Ingester:   usecase.NewSearchIngester(searchClient, a.store, cfg.Artifacts.NewsDir, req, now, a.component("ingest")),
		Extractor:  usecase.NewFieldExtractor(a.component("extract")),
		Summarizer: usecase.NewSummaryGenerator(a.completer, a.store, cfg.Artifacts.OutputDir, prompts.Summary, a.component("summary")),
		Planner:    usecase.NewActionPlanner(a.completer, a.store, cfg.Artifacts.OutputDir, prompts.ActionPoints, a.component("planner")),
		Fulfiller:  usecase.NewActionFulfiller(a.completer, a.store, cfg.Artifacts.OutputDir, prompts.Fulfillment, cfg.Pipeline.FulfillConcurrency, a.component("fulfiller")),
		Notifier:   notifier,
		Logger:     a.component("pipeline"),
		Now:        now,
	}), nil
}

func (a *Application) buildConverters() *converter.Registry {
	cfg := a.cfg
	prompts := usecase.PromptsFromConfig(cfg.Prompts)

	registry := converter.NewRegistry()
	registry.Register(usecase.NewClaimAssessor(a.completer, a.store,
		cfg.Artifacts.ClaimsDir, cfg.Artifacts.AssessmentDir, prompts.Claims, a.component("converter.claims")))
	registry.Register(usecase.NewContractConverter(a.completer, a.store, pdf.Reader{},
		cfg.Artifacts.ContractsDir, cfg.Artifacts.JSONDir, prompts.Contracts, a.component("converter.contracts")))
	return registry
}

func (a *Application) component(name string) *slog.Logger {
	return a.logger.With("component", name)
}
