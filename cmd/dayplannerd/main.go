package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"dayplanner/internal/classifier"
	"dayplanner/internal/clock"
	"dayplanner/internal/config"
	"dayplanner/internal/extract"
	"dayplanner/internal/google"
	"dayplanner/internal/repository"
	"dayplanner/internal/scheduler"
	"dayplanner/internal/service"
	"dayplanner/internal/util"
	"dayplanner/pkg/db"
	"dayplanner/pkg/logger"
	"dayplanner/pkg/redis"
)

const dedupTTL = 24 * time.Hour

func main() {
	cfg := config.Load()

	log := logger.NewLogger()
	defer log.Sync()

	log.Info("Starting dayplannerd...",
		zap.String("db_host", cfg.DB.Host),
		zap.Int("db_port", cfg.DB.Port),
		zap.String("metrics_addr", cfg.Server.MetricsAddr),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// DB
	dbConn, err := db.NewConnection(cfg.DB, log)
	if err != nil {
		log.Fatal("Failed to init DB", zap.Error(err))
	}
	defer dbConn.Close()

	if err := repository.EnsureSchema(ctx, dbConn); err != nil {
		log.Fatal("Failed to ensure schema", zap.Error(err))
	}
	log.Info("Database connection established successfully")

	// Redis (dedup only; the daemon runs without it)
	rdb := redis.NewRedisClient(cfg.Redis)
	defer rdb.Close()
	var seen *util.Deduper
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unavailable, message dedup disabled", zap.Error(err))
	} else {
		seen = util.NewDeduper(rdb, dedupTTL)
	}

	// Repositories
	taskRepo := repository.NewTaskRepository(dbConn, log)
	eventRepo := repository.NewCalendarEventRepository(dbConn, log)
	emailRepo := repository.NewEmailRepository(dbConn, log)
	contactRepo := repository.NewContactRepository(dbConn, log)
	reminderRepo := repository.NewReminderRepository(dbConn, log)
	dailyLogRepo := repository.NewDailyLogRepository(dbConn)

	// Domain services
	clk := clock.System()
	cls := classifier.New(clk)
	extractor := extract.New(extract.NewWhenResolver(), clk, log)

	sweeper := service.NewReminderSweeper(reminderRepo, clk, log)
	analyzer := service.NewDailyLogAnalyzer(taskRepo, eventRepo, dailyLogRepo, clk, log)
	calendarSync := service.NewCalendarTaskSync(eventRepo, taskRepo, extractor, cls, clk, log)

	// Jobs
	sched := scheduler.New(clk, log)
	sched.AddInterval("reminder_sweep", cfg.Jobs.ReminderSweepInterval, sweeper.Run)
	sched.AddInterval("calendar_sync", cfg.Jobs.CalendarSyncInterval, func(ctx context.Context) error {
		return errors.Join(calendarSync.Run(ctx), calendarSync.CheckDueSoon(ctx))
	})
	sched.AddDailyAt("daily_log", 23, 55, analyzer.Run)

	// Google ingestion is optional: without credentials the daemon still
	// sweeps reminders and processes whatever is already stored.
	if ingestor, err := buildIngestor(ctx, cfg, seen, taskRepo, eventRepo, emailRepo, contactRepo, extractor, cls, clk, log); err != nil {
		if errors.Is(err, google.ErrCredentialsUnavailable) {
			log.Warn("Google credentials not found, ingestion disabled", zap.Error(err))
		} else {
			log.Fatal("Failed to init Google clients", zap.Error(err))
		}
	} else {
		sched.AddInterval("ingest", cfg.Jobs.IngestInterval, ingestor.Run)
	}

	sched.Start(ctx)

	// Metrics endpoint
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	metricsSrv := &http.Server{Addr: cfg.Server.MetricsAddr, Handler: mux}
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Metrics server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down...")

	sched.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("Metrics server shutdown failed", zap.Error(err))
	}

	log.Info("Shutdown complete")
}

func buildIngestor(
	ctx context.Context,
	cfg *config.Config,
	seen *util.Deduper,
	tasks *repository.TaskRepository,
	events *repository.CalendarEventRepository,
	emails *repository.EmailRepository,
	contacts *repository.ContactRepository,
	extractor *extract.Extractor,
	cls *classifier.Classifier,
	clk clock.Clock,
	log *zap.Logger,
) (*service.Ingestor, error) {
	client, err := google.NewHTTPClient(ctx, cfg.Google)
	if err != nil {
		return nil, err
	}

	calendarClient, err := google.NewCalendarClient(ctx, client, cfg.Google, log)
	if err != nil {
		return nil, err
	}
	gmailClient, err := google.NewGmailClient(ctx, client, cfg.Google, seen, log)
	if err != nil {
		return nil, err
	}
	contactsClient, err := google.NewContactsClient(ctx, client, log)
	if err != nil {
		return nil, err
	}

	return service.NewIngestor(
		calendarClient, gmailClient, contactsClient,
		events, emails, contacts, tasks,
		extractor, cls, clk, log,
	), nil
}
