// AngelaMos | 2026
// handler.go

package admin

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"runtime"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/surveys/internal/core"
	"github.com/carterperez-dev/surveys/internal/survey"
	"github.com/carterperez-dev/surveys/internal/web"
)

// SessionRevoker signs a user out of every device.
type SessionRevoker interface {
	LogoutAll(ctx context.Context, userID int64) error
}

type Handler struct {
	dbStats      func() sql.DBStats
	dbPing       func(ctx context.Context) error
	redisStats   func() *redis.PoolStats
	redisPing    func(ctx context.Context) error
	userCount    func(ctx context.Context) (int, error)
	surveyCounts func(ctx context.Context) (*survey.Counts, error)
	answerCount  func(ctx context.Context) (int, error)
	sessions     SessionRevoker
}

// HandlerConfig wires the stats sources. Redis fields stay nil when no
// redis URL is configured.
type HandlerConfig struct {
	DBStats      func() sql.DBStats
	DBPing       func(ctx context.Context) error
	RedisStats   func() *redis.PoolStats
	RedisPing    func(ctx context.Context) error
	UserCount    func(ctx context.Context) (int, error)
	SurveyCounts func(ctx context.Context) (*survey.Counts, error)
	AnswerCount  func(ctx context.Context) (int, error)
	Sessions     SessionRevoker
}

func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		dbStats:      cfg.DBStats,
		dbPing:       cfg.DBPing,
		redisStats:   cfg.RedisStats,
		redisPing:    cfg.RedisPing,
		userCount:    cfg.UserCount,
		surveyCounts: cfg.SurveyCounts,
		answerCount:  cfg.AnswerCount,
		sessions:     cfg.Sessions,
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(adminOnly)

		r.Get("/stats", h.GetSystemStats)
		r.Get("/stats/content", h.GetContentStats)
		r.Get("/stats/db", h.GetDatabaseStats)
		r.Get("/stats/redis", h.GetRedisStats)
		r.Get("/stats/runtime", h.GetRuntimeStats)

		r.Post("/users/{id}/sessions/revoke", h.RevokeSessions)
	})
}

func (h *Handler) GetSystemStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	content, err := h.contentStats(ctx)
	if err != nil {
		writeError(w, r, err)
		return
	}

	dbHealthy := true
	if h.dbPing != nil {
		if err := h.dbPing(ctx); err != nil {
			dbHealthy = false
		}
	}

	redisStatus := RedisStatus{Configured: h.redisPing != nil}
	if redisStatus.Configured {
		redisStatus.Healthy = h.redisPing(ctx) == nil
		redisStatus.Stats = h.getRedisStats()
	}

	core.OK(w, SystemStatsResponse{
		Content: content,
		Database: DatabaseStatus{
			Healthy: dbHealthy,
			Stats:   h.getDBStats(),
		},
		Redis:   redisStatus,
		Runtime: readRuntimeStats(),
	})
}

func (h *Handler) GetContentStats(w http.ResponseWriter, r *http.Request) {
	content, err := h.contentStats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	core.OK(w, content)
}

func (h *Handler) GetDatabaseStats(w http.ResponseWriter, r *http.Request) {
	core.OK(w, h.getDBStats())
}

func (h *Handler) GetRedisStats(w http.ResponseWriter, r *http.Request) {
	stats := h.getRedisStats()
	if stats == nil {
		core.JSON(w, http.StatusNotFound, ErrorResponse{Error: "redis not configured"})
		return
	}
	core.OK(w, stats)
}

func (h *Handler) GetRuntimeStats(w http.ResponseWriter, r *http.Request) {
	core.OK(w, readRuntimeStats())
}

func (h *Handler) RevokeSessions(w http.ResponseWriter, r *http.Request) {
	userID, ok := web.IDParam(r, "id")
	if !ok {
		core.JSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid user id"})
		return
	}

	if h.sessions == nil {
		core.JSON(w, http.StatusNotImplemented, ErrorResponse{Error: "session revocation unavailable"})
		return
	}

	if err := h.sessions.LogoutAll(r.Context(), userID); err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info("sessions revoked by administrator", "user_id", userID)
	core.OK(w, RevokeResponse{UserID: userID, Revoked: true})
}

func (h *Handler) contentStats(ctx context.Context) (ContentStats, error) {
	var stats ContentStats

	if h.userCount != nil {
		n, err := h.userCount(ctx)
		if err != nil {
			return stats, err
		}
		stats.Users = n
	}

	if h.surveyCounts != nil {
		counts, err := h.surveyCounts(ctx)
		if err != nil {
			return stats, err
		}
		stats.Surveys = counts.Surveys
		stats.Questions = counts.Questions
	}

	if h.answerCount != nil {
		n, err := h.answerCount(ctx)
		if err != nil {
			return stats, err
		}
		stats.Answers = n
	}

	return stats, nil
}

func (h *Handler) getDBStats() *DBPoolStats {
	if h.dbStats == nil {
		return nil
	}

	stats := h.dbStats()
	return &DBPoolStats{
		MaxOpenConnections: stats.MaxOpenConnections,
		OpenConnections:    stats.OpenConnections,
		InUse:              stats.InUse,
		Idle:               stats.Idle,
		WaitCount:          stats.WaitCount,
		WaitDuration:       stats.WaitDuration.String(),
		MaxIdleClosed:      stats.MaxIdleClosed,
		MaxIdleTimeClosed:  stats.MaxIdleTimeClosed,
		MaxLifetimeClosed:  stats.MaxLifetimeClosed,
	}
}

func (h *Handler) getRedisStats() *RedisPoolStats {
	if h.redisStats == nil {
		return nil
	}

	stats := h.redisStats()
	return &RedisPoolStats{
		Hits:       stats.Hits,
		Misses:     stats.Misses,
		Timeouts:   stats.Timeouts,
		TotalConns: stats.TotalConns,
		IdleConns:  stats.IdleConns,
		StaleConns: stats.StaleConns,
	}
}

func readRuntimeStats() RuntimeStats {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return RuntimeStats{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		MemAlloc:     memStats.Alloc,
		MemSys:       memStats.Sys,
		NumGC:        memStats.NumGC,
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, core.ErrNotFound) {
		core.JSON(w, http.StatusNotFound, ErrorResponse{Error: "not found"})
		return
	}

	core.SetSpanError(r.Context(), err)
	slog.Error("admin request failed", "error", err, "path", r.URL.Path)
	core.JSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type RevokeResponse struct {
	UserID  int64 `json:"user_id"`
	Revoked bool  `json:"revoked"`
}

type SystemStatsResponse struct {
	Content  ContentStats   `json:"content"`
	Database DatabaseStatus `json:"database"`
	Redis    RedisStatus    `json:"redis"`
	Runtime  RuntimeStats   `json:"runtime"`
}

type ContentStats struct {
	Users     int `json:"users"`
	Surveys   int `json:"surveys"`
	Questions int `json:"questions"`
	Answers   int `json:"answers"`
}

type DatabaseStatus struct {
	Healthy bool         `json:"healthy"`
	Stats   *DBPoolStats `json:"stats,omitempty"`
}

type RedisStatus struct {
	Configured bool            `json:"configured"`
	Healthy    bool            `json:"healthy"`
	Stats      *RedisPoolStats `json:"stats,omitempty"`
}

type DBPoolStats struct {
	MaxOpenConnections int    `json:"max_open_connections"`
	OpenConnections    int    `json:"open_connections"`
	InUse              int    `json:"in_use"`
	Idle               int    `json:"idle"`
	WaitCount          int64  `json:"wait_count"`
	WaitDuration       string `json:"wait_duration"`
	MaxIdleClosed      int64  `json:"max_idle_closed"`
	MaxIdleTimeClosed  int64  `json:"max_idle_time_closed"`
	MaxLifetimeClosed  int64  `json:"max_lifetime_closed"`
}

type RedisPoolStats struct {
	Hits       uint32 `json:"hits"`
	Misses     uint32 `json:"misses"`
	Timeouts   uint32 `json:"timeouts"`
	TotalConns uint32 `json:"total_conns"`
	IdleConns  uint32 `json:"idle_conns"`
	StaleConns uint32 `json:"stale_conns"`
}

type RuntimeStats struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
	NumCPU       int    `json:"num_cpu"`
	MemAlloc     uint64 `json:"mem_alloc_bytes"`
	MemSys       uint64 `json:"mem_sys_bytes"`
	NumGC        uint32 `json:"num_gc"`
}
