// AngelaMos | 2026
// app.go

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	redis_rate "github.com/go-redis/redis_rate/v10"

	"github.com/carterperez-dev/surveys/internal/admin"
	"github.com/carterperez-dev/surveys/internal/answer"
	"github.com/carterperez-dev/surveys/internal/auth"
	"github.com/carterperez-dev/surveys/internal/config"
	"github.com/carterperez-dev/surveys/internal/core"
	"github.com/carterperez-dev/surveys/internal/health"
	"github.com/carterperez-dev/surveys/internal/middleware"
	"github.com/carterperez-dev/surveys/internal/results"
	"github.com/carterperez-dev/surveys/internal/survey"
	"github.com/carterperez-dev/surveys/internal/user"
	"github.com/carterperez-dev/surveys/internal/web"
)

const msgTooManyLogins = "Too many sign-in attempts, try again in %d seconds"

// application owns every handler and the services the process needs
// outside of HTTP (seeding, session purging).
type application struct {
	cfg    *config.Config
	logger *slog.Logger
	tel    *core.Telemetry

	flasher *web.Flasher
	views   *web.Renderer

	users   *user.Service
	auth    *auth.Service
	surveys *survey.Service
	answers *answer.Service

	healthHandler  *health.Handler
	authHandler    *auth.Handler
	userHandler    *user.Handler
	surveyHandler  *survey.Handler
	answerHandler  *answer.Handler
	resultsHandler *results.Handler
	adminHandler   *admin.Handler
	loginLimiter   *middleware.RateLimiter
}

func newApplication(
	cfg *config.Config,
	db *core.Database,
	rdb *core.Redis,
	tel *core.Telemetry,
	logger *slog.Logger,
) (*application, error) {
	flasher, err := web.NewFlasher(
		[]byte(cfg.Session.Secret),
		cfg.Session.FlashCookieName,
		cfg.Session.Secure,
	)
	if err != nil {
		return nil, err
	}

	views, err := web.NewRenderer(cfg.App.Name, flasher, logger)
	if err != nil {
		return nil, err
	}

	tokens, err := auth.NewTokenManager(cfg.Session)
	if err != nil {
		return nil, err
	}

	userSvc := user.NewService(user.NewRepository(db.DB))
	authSvc := auth.NewService(
		auth.NewRepository(db.DB),
		tokens,
		userSvc,
		cfg.Session.TTL,
	)
	surveySvc := survey.NewService(survey.NewRepository(db.DB))
	answerSvc := answer.NewService(db.DB, surveySvc)
	resultsSvc := results.NewService(results.NewRepository(db.DB), surveySvc)

	var (
		redisChecker health.Checker
		adminCfg     = admin.HandlerConfig{
			DBStats:      db.Stats,
			DBPing:       db.Ping,
			UserCount:    userSvc.CountUsers,
			SurveyCounts: surveySvc.Counts,
			AnswerCount:  answerSvc.Count,
			Sessions:     authSvc,
		}
	)
	if rdb.Configured() {
		redisChecker = rdb
		adminCfg.RedisStats = rdb.PoolStats
		adminCfg.RedisPing = rdb.Ping
	}

	loginLimiter := middleware.NewRateLimiter(rdb.Client(), middleware.RateLimitConfig{
		Limit: middleware.Per(
			cfg.RateLimit.LoginRequests,
			cfg.RateLimit.Burst,
			cfg.RateLimit.Window,
		),
		KeyFunc:  middleware.KeyByIPAndPath,
		FailOpen: true,
		OnLimited: func(w http.ResponseWriter, r *http.Request, res *redis_rate.Result) {
			logger.Warn("login rate limit exceeded",
				"key", middleware.KeyByIP(r),
				"request_id", chimw.GetReqID(r.Context()),
			)
			views.FlashRedirect(w, r, middleware.LoginPath, web.KindDanger,
				fmt.Sprintf(msgTooManyLogins, middleware.RetryAfterSeconds(res)))
		},
	})

	return &application{
		cfg:     cfg,
		logger:  logger,
		tel:     tel,
		flasher: flasher,
		views:   views,
		users:   userSvc,
		auth:    authSvc,
		surveys: surveySvc,
		answers: answerSvc,

		healthHandler:  health.NewHandler(cfg.App.Version, db, redisChecker),
		authHandler:    auth.NewHandler(authSvc, views, cfg.Session),
		userHandler:    user.NewHandler(userSvc, views),
		surveyHandler:  survey.NewHandler(surveySvc, views),
		answerHandler:  answer.NewHandler(answerSvc, views),
		resultsHandler: results.NewHandler(resultsSvc, views),
		adminHandler:   admin.NewHandler(adminCfg),
		loginLimiter:   loginLimiter,
	}, nil
}

// prepare seeds the default accounts and then reports the process ready.
func (a *application) prepare(ctx context.Context) error {
	seeded, err := a.users.SeedDefaults(ctx, a.cfg.Seed)
	if err != nil {
		return err
	}
	if seeded > 0 {
		a.logger.Info("seeded default accounts", "count", seeded)
	}

	a.healthHandler.SetReady(true)
	return nil
}

// routes mounts the middleware stack and every handler on r.
func (a *application) routes(r chi.Router) {
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Tracing(a.tel.Tracer, a.tel.Propagator))
	r.Use(middleware.Logger(a.logger))
	r.Use(middleware.Recoverer(a.logger))
	r.Use(middleware.SecurityHeaders(a.cfg.IsProduction()))

	a.healthHandler.RegisterRoutes(r)
	r.Handle(web.StaticPrefix+"*", web.StaticHandler())

	a.authHandler.RegisterRoutes(r, a.loginLimiter.Handler)

	adminOnly := middleware.RequireAdmin(a.flasher)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticator(a.auth, a.cfg.Session.CookieName))

		a.authHandler.RegisterSessionRoutes(r)

		a.surveyHandler.RegisterRoutes(r, adminOnly)
		a.answerHandler.RegisterRoutes(r)
		a.resultsHandler.RegisterRoutes(r, adminOnly)
		a.userHandler.RegisterRoutes(r, adminOnly)
		a.adminHandler.RegisterRoutes(r, adminOnly)
	})
}
