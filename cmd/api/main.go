package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/scolarite-api/internal/handler"
	"github.com/noah-isme/scolarite-api/internal/repository"
	"github.com/noah-isme/scolarite-api/internal/service"
	"github.com/noah-isme/scolarite-api/pkg/cache"
	"github.com/noah-isme/scolarite-api/pkg/config"
	"github.com/noah-isme/scolarite-api/pkg/database"
	"github.com/noah-isme/scolarite-api/pkg/export"
	"github.com/noah-isme/scolarite-api/pkg/jobs"
	"github.com/noah-isme/scolarite-api/pkg/logger"
	"github.com/noah-isme/scolarite-api/pkg/storage"
)

// @title Scolarité API
// @version 1.0.0
// @description Grades, results, certificates and tuition fees of a higher education school.
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, caching disabled", zap.Error(err))
	}
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck

	metrics := service.NewMetricsService()
	validate := service.NewValidator()

	programRepo := repository.NewProgramRepository(db)
	classRepo := repository.NewClassRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	registrationRepo := repository.NewRegistrationRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	evaluationRepo := repository.NewEvaluationRepository(db)
	scoreRepo := repository.NewScoreRepository(db)
	settingRepo := repository.NewResultSettingRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)
	certificateRepo := repository.NewCertificateRepository(db)
	feeRepo := repository.NewFeeRepository(db)
	statisticsRepo := repository.NewStatisticsRepository(db)

	resultCache := service.NewCacheService(cacheRepo, metrics, cfg.Results.CacheTTL, logr, redisClient != nil && cfg.Results.CacheEnabled)
	statisticsCache := service.NewCacheService(cacheRepo, metrics, cfg.Statistics.CacheTTL, logr, redisClient != nil)

	results := service.NewResultService(studentRepo, subjectRepo, sessionRepo, classRepo, scoreRepo, resultCache, cfg.Results.CacheTTL, logr)
	programs := service.NewProgramService(programRepo, classRepo, validate, logr)
	classes := service.NewClassService(classRepo, programRepo, validate, logr)
	subjects := service.NewSubjectService(subjectRepo, classRepo, results, validate, logr)
	sessions := service.NewSessionService(sessionRepo, validate, logr)
	evaluations := service.NewEvaluationService(evaluationRepo, subjectRepo, sessionRepo, results, validate, logr)
	students := service.NewStudentService(studentRepo, classRepo, results, validate, logr)
	registrations := service.NewRegistrationService(registrationRepo, programRepo, classRepo, studentRepo, validate, logr)
	scores := service.NewScoreService(scoreRepo, evaluations, studentRepo, results, metrics, validate, logr)
	settings := service.NewResultSettingService(settingRepo, sessionRepo, validate, logr)
	snapshots := service.NewSnapshotService(snapshotRepo, settingRepo, results, classRepo, studentRepo, metrics, logr)
	statistics := service.NewStatisticsService(statisticsRepo, statisticsCache, cfg.Statistics.CacheTTL)

	worker := service.NewNotificationWorker(service.NewLogNotifier(logr), metrics, logr)
	notifications := jobs.NewQueue("notifications", worker.Handle, jobs.QueueConfig{
		Workers:    cfg.Notifications.Workers,
		MaxRetries: cfg.Notifications.Retries,
		RetryDelay: 2 * time.Second,
		Logger:     logr,
		OnResult:   worker.OnResult,
	})
	notifications.Start(ctx)
	defer notifications.Stop()

	fees := service.NewFeeService(feeRepo, studentRepo, classRepo, service.NewFeeNotifier(notifications, logr), service.FeeConfig{
		MonthlyAmount: cfg.Fees.MonthlyAmount,
		LateThreshold: cfg.Fees.LateThreshold,
	}, validate, logr)

	store, err := storage.NewLocalStorage(cfg.Documents.StorageDir)
	if err != nil {
		logr.Fatal("failed to prepare document storage", zap.Error(err))
	}
	documents := service.NewDocumentService(
		results,
		studentRepo,
		classRepo,
		certificateRepo,
		store,
		storage.NewSignedURLSigner(cfg.Documents.SignedURLSecret, cfg.Documents.SignedURLTTL),
		export.NewPDFExporter(),
		metrics,
		service.DocumentConfig{
			SchoolName:        cfg.Documents.SchoolName,
			CertificateSuffix: cfg.Documents.CertificateTag,
			DownloadURL:       cfg.Documents.PublicBaseURL + cfg.APIPrefix + "/documents/download",
			TranscriptTTL:     cfg.Documents.SignedURLTTL,
		},
		validate,
		logr,
	)
	documents.StartCleanup(ctx, cfg.Documents.CleanupInterval)

	r := newRouter(cfg, logr, routes{
		verifier:      service.NewTokenVerifier(service.TokenConfig{Secret: cfg.JWT.Secret, Issuer: cfg.JWT.Issuer}),
		metrics:       metrics,
		health:        handler.NewMetricsHandler(metrics, db),
		programs:      handler.NewProgramHandler(programs),
		classes:       handler.NewClassHandler(classes),
		subjects:      handler.NewSubjectHandler(subjects),
		students:      handler.NewStudentHandler(students),
		registrations: handler.NewRegistrationHandler(registrations),
		sessions:      handler.NewSessionHandler(sessions),
		evaluations:   handler.NewEvaluationHandler(evaluations),
		scores:        handler.NewScoreHandler(scores),
		results:       handler.NewResultHandler(results),
		snapshots:     handler.NewSnapshotHandler(snapshots, settings),
		documents:     handler.NewDocumentHandler(documents),
		fees:          handler.NewFeeHandler(fees),
		statistics:    handler.NewStatisticsHandler(statistics),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
