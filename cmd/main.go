package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/careerdock/jobportal/internal/api"
	"github.com/careerdock/jobportal/internal/api/handler"
	"github.com/careerdock/jobportal/internal/api/jwt"
	"github.com/careerdock/jobportal/internal/clients/engine"
	"github.com/careerdock/jobportal/internal/clients/scraper"
	"github.com/careerdock/jobportal/internal/config"
	"github.com/careerdock/jobportal/internal/logger"
	"github.com/careerdock/jobportal/internal/metrics"
	"github.com/careerdock/jobportal/internal/repositories"
	"github.com/careerdock/jobportal/internal/services"
	"github.com/careerdock/jobportal/internal/sessions"
	log "github.com/sirupsen/logrus"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(cfg.Logger)
	defer logger.Cleanup()

	metrics.StartMetricsServer(cfg.Server.MetricsPort)

	dbContext, err := repositories.NewDbContext(cfg.DB.ConnectionString)
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close()

	if err = dbContext.Migrate(); err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}

	postings := repositories.NewPostingsRepository(dbContext.DB)
	cachedPostings := repositories.NewCachedPostings(postings)
	decisions := repositories.NewDecisionsRepository(dbContext.DB)
	resumes := repositories.NewResumesRepository(dbContext.DB)
	engagements := repositories.NewEngagementsRepository(dbContext.DB)

	engineClient := engine.NewClient(cfg.Engine.BaseURL, cfg.Engine.RequestTimeout)
	engineClient.SetRateLimit(cfg.Engine.MaxRequestsPerSecond)

	bus := EventBus.New()

	if err = cachedPostings.Register(bus); err != nil {
		log.Fatalf("can't register posting cache: %v", err)
	}

	lifecycle := services.NewJobLifecycleManager(postings, decisions, bus)

	store := sessions.NewArtifactStore(cfg.Engine.SessionTTL)
	aggregator := services.NewScoreAggregator(cfg.Matching)
	reconciler := services.NewResultReconciler(cachedPostings)
	orchestrator := services.NewMatchOrchestrator(store, engineClient, aggregator, reconciler,
		resumes, cfg.Engine, cfg.Matching)

	engagementService := services.NewEngagementService(engagements, cachedPostings)

	catalogSync := services.NewCatalogSync(postings, engineClient, cfg.Engine.RequestTimeout)
	if err = catalogSync.Register(bus); err != nil {
		log.Fatalf("can't register catalog sync: %v", err)
	}

	cleaner := services.NewResumesCleaner(resumes, cfg.Engine.ResumeRetention)
	if err = cleaner.Start(); err != nil {
		log.Fatalf("can't start resumes cleaner: %v", err)
	}
	defer cleaner.Stop()

	if cfg.Scraper.Enabled {
		scraperClient := scraper.NewClient(cfg.Scraper.BaseURL, cfg.Scraper.RequestTimeout)
		ingest := services.NewScraperIngest(scraperClient, postings, cfg.Scraper)
		if err = ingest.Start(); err != nil {
			log.Fatalf("can't start scraper ingest: %v", err)
		}
		defer ingest.Stop()
	}

	jwtService := jwt.NewHMACService(cfg.Server.JWTSecret, 24*time.Hour)

	server := api.NewServer(cfg.Server, jwtService, api.Handlers{
		Jobs:        handler.NewJobsHandler(lifecycle, postings),
		Moderation:  handler.NewModerationHandler(lifecycle),
		Match:       handler.NewMatchHandler(orchestrator),
		Engagements: handler.NewEngagementHandler(engagementService),
	})

	go func() {
		if err := server.Listen(); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()

	log.Info("Shutting down services...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("shutdown error: %v", err)
	}
	log.Info("Services stopped.")
}
