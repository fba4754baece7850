package api

import (
	"net/http"
	"time"

	"algolearn/internal/api/handler"
	"algolearn/internal/api/middleware"
	"algolearn/internal/app/service"
	"algolearn/internal/common/security"
	"algolearn/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Services struct {
	Auth       *service.AuthService
	Module     *service.ModuleService
	Problem    *service.ProblemService
	Submission *service.SubmissionService
	Daily      *service.DailyService
	Progress   *service.ProgressService
	User       *service.UserService
	Admin      *service.AdminService
}

func NewRouter(svcs Services, m *metrics.Metrics, adminLimiter *middleware.RateLimiter) http.Handler {
	r := chi.NewRouter()

	// Base middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))
	r.Use(middleware.Monitor(m))

	// Verifies the Bearer token and puts claims in context; individual route
	// groups decide whether a valid token is required.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(v1 chi.Router) {
		// Auth routes (public)
		authHandler := handler.NewAuthHandler(svcs.Auth)
		v1.Group(func(publicAuth chi.Router) {
			authHandler.RegisterRoutes(publicAuth)
		})

		// Learning content (public)
		moduleHandler := handler.NewModuleHandler(svcs.Module)
		v1.Route("/modules", moduleHandler.RegisterRoutes)

		problemHandler := handler.NewProblemHandler(svcs.Problem)
		v1.Route("/problems", problemHandler.RegisterRoutes)

		dailyHandler := handler.NewDailyChallengeHandler(svcs.Daily)
		dailyHandler.RegisterRoutes(v1)

		// Authenticated routes
		submissionHandler := handler.NewSubmissionHandler(svcs.Submission)
		v1.Route("/submissions", submissionHandler.RegisterRoutes)

		progressHandler := handler.NewProgressHandler(svcs.Progress)
		v1.Route("/progress", progressHandler.RegisterRoutes)

		userHandler := handler.NewUserHandler(svcs.User)
		v1.Route("/users", userHandler.RegisterRoutes)

		// Admin back-office: auth + admin role + rate limit
		adminHandler := handler.NewAdminHandler(svcs.Admin)
		v1.Route("/admin", func(admin chi.Router) {
			admin.Use(middleware.Authenticator)
			admin.Use(middleware.AdminOnly)
			admin.Use(adminLimiter.Middleware)
			adminHandler.RegisterRoutes(admin)
			problemHandler.RegisterAdminRoutes(admin)
		})
	})

	return r
}
