package main

import (
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/intern-match/internal/clients/gemini"
	"github.com/maxaizer/intern-match/internal/clients/scorer"
	"github.com/maxaizer/intern-match/internal/config"
	"github.com/maxaizer/intern-match/internal/logger"
	"github.com/maxaizer/intern-match/internal/metrics"
	"github.com/maxaizer/intern-match/internal/repositories"
	"github.com/maxaizer/intern-match/internal/server"
	"github.com/maxaizer/intern-match/internal/services"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return serve(cmd.Context(), cfg)
	},
}

func serve(ctx context.Context, cfg *config.Config) error {

	logger.Setup(ctx, cfg.Logger)
	defer logger.Cleanup()

	metrics.Register()

	dbContext, err := repositories.NewDbContext(cfg.DB.ConnectionString)
	if err != nil {
		return errors.Wrap(err, "can't create db context")
	}
	defer dbContext.Close()

	if err = dbContext.Migrate(); err != nil {
		return errors.Wrap(err, "can't migrate db context")
	}

	tx := repositories.NewTransactor(dbContext.DB)
	postingsRepo := repositories.NewPostingsRepository(dbContext.DB)
	postings := repositories.NewCachedPostings(postingsRepo, cfg.Catalog.CacheTTL)
	applications := repositories.NewApplicationsRepository(dbContext.DB)
	profiles := repositories.NewProfilesRepository(dbContext.DB)

	bus := EventBus.New()
	notifier, err := services.NewApplicationNotifier(bus)
	if err != nil {
		return errors.Wrap(err, "can't create notifier")
	}
	defer notifier.Stop()

	matchScorer, closeScorer, err := newScorer(ctx, cfg.Matcher)
	if err != nil {
		return errors.Wrap(err, "can't create scorer")
	}
	defer closeScorer()

	stats, err := services.NewApplicationStats(applications, cfg.Stats.Schedule)
	if err != nil {
		return errors.Wrap(err, "can't create application stats")
	}
	stats.Start()
	defer stats.Stop()

	srv := server.New(cfg.Server, server.Services{
		Applications: services.NewApplicationService(tx, applications, postingsRepo, profiles, bus),
		Matches:      services.NewMatchService(matchScorer, profiles, postings, cfg.Matcher.Timeout),
		Profiles:     services.NewProfileService(tx, profiles, applications),
		Catalog:      postings,
	})

	err = srv.Start(ctx)
	log.Info("services stopped")
	return err
}

func newScorer(ctx context.Context, cfg config.MatcherConfig) (services.Scorer, func(), error) {
	switch cfg.Provider {
	case config.ProviderProcess:
		log.Infof("using process scorer: %s %v", cfg.Command, cfg.Args)
		processScorer := scorer.NewProcessScorer(cfg.Command, cfg.Args...)
		if cfg.Dir != "" {
			processScorer.SetDir(cfg.Dir)
		}
		return processScorer, func() {}, nil

	case config.ProviderHTTP:
		log.Infof("using http scorer: %s", cfg.URL)
		httpScorer := scorer.NewHTTPScorer(cfg.URL)
		if cfg.MaxRequestsPerSecond > 0 {
			httpScorer.SetRateLimit(cfg.MaxRequestsPerSecond)
		}
		return httpScorer, func() {}, nil

	case config.ProviderGemini:
		client, err := gemini.NewClient(ctx, cfg.AIKey, gemini.Model(cfg.AiModel))
		if err != nil {
			return nil, nil, err
		}
		if cfg.AiMaxRequestsPerMinute > 0 {
			client.SetMinuteRateLimit(cfg.AiMaxRequestsPerMinute)
		}
		if cfg.AiMaxRequestsPerDay > 0 {
			client.SetDayRateLimit(cfg.AiMaxRequestsPerDay)
		}
		log.Infof("using gemini scorer, model %s", cfg.AiModel)
		geminiScorer := scorer.NewGeminiScorer(client)
		geminiScorer.SetLimit(cfg.AiLimit)
		geminiScorer.SetMinScore(cfg.AiMinScore)
		return geminiScorer, func() { _ = client.Close() }, nil

	default:
		return nil, nil, errors.Errorf("unknown matcher provider %q", cfg.Provider)
	}
}
