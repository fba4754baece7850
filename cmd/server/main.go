package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"algolearn/internal/api"
	"algolearn/internal/api/middleware"
	"algolearn/internal/app/service"
	"algolearn/internal/common/security"
	"algolearn/internal/domain/repository"
	"algolearn/internal/platform/cache"
	"algolearn/internal/platform/config"
	"algolearn/internal/platform/database"
	"algolearn/internal/platform/metrics"

	log "github.com/sirupsen/logrus"
)

func main() {
	config.Load()
	security.InitJWT()

	database.Connect()
	defer database.Close()

	cache.Connect()
	defer cache.Close()

	m := metrics.New()

	// Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	moduleRepo := repository.NewPgModuleRepository(database.DB)
	problemRepo := repository.NewPgProblemRepository(database.DB)
	submissionRepo := repository.NewPgSubmissionRepository(database.DB)
	dailyRepo := repository.NewPgDailyChallengeRepository(database.DB)
	progressRepo := repository.NewPgProgressRepository(database.DB)
	auditRepo := repository.NewPgAuditLogRepository(database.DB)
	settingsRepo := repository.NewPgAppSettingsRepository(database.DB)

	// Services
	cfg := config.AppConfig
	svcs := api.Services{
		Auth:       service.NewAuthService(userRepo, cfg.AdminEmail),
		Module:     service.NewModuleService(moduleRepo),
		Problem:    service.NewProblemService(problemRepo, database.DB),
		Submission: service.NewSubmissionService(submissionRepo, problemRepo, userRepo, m, cfg.SubmitDelay, cfg.RunDelay),
		Daily:      service.NewDailyService(dailyRepo, problemRepo),
		Progress:   service.NewProgressService(progressRepo, submissionRepo),
		User:       service.NewUserService(userRepo),
		Admin:      service.NewAdminService(userRepo, submissionRepo, problemRepo, auditRepo, settingsRepo, cfg.AdminEmail),
	}

	adminLimiter := middleware.NewRateLimiter(cache.RDB, "ratelimit:admin", cfg.AdminRateLimit, cfg.AdminRateWindow)

	router := api.NewRouter(svcs, m, adminLimiter)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.WithField("port", cfg.APIPort).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Server failed")
		}
	}()

	<-stop

	log.Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Fatal("Server shutdown failed")
	}
	log.Info("Server stopped gracefully")
}
