package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/frozenbet/internal/metrics"
	"github.com/hitoshi/frozenbet/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	CORSAllowedOrigins []string
	RateLimiter        *middleware.RateLimiter
	Logger             *slog.Logger
	Metrics            metrics.MetricsCollector
	Gatherer           prometheus.Gatherer

	// サービス
	Catalog CatalogServiceInterface
	Reload  ReloadServiceInterface
	Health  HealthChecker
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → SecurityHeaders → CORS → Logging → Metrics → RateLimit(General)
//
// /reload にはさらにリロード専用のレート制限を重ねる。/health と /metrics はレート制限の外に置く。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(middleware.NewRecoveryMiddleware(logger))
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigins))
	r.Use(middleware.NewLoggingMiddleware(logger))
	if deps.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(deps.Metrics))
	}

	r.Get("/health", NewHealthHandler(deps.Health))
	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.Gatherer))
	}

	catalogHandler := NewCatalogHandler(deps.Catalog)
	reloadHandler := NewReloadHandler(deps.Reload)

	r.Group(func(r chi.Router) {
		r.Use(deps.RateLimiter.GeneralMiddleware())

		r.Route("/competitions", func(r chi.Router) {
			r.Get("/", catalogHandler.ListCompetitions)
			r.Get("/{id}", catalogHandler.GetCompetition)
		})

		r.Route("/teams", func(r chi.Router) {
			r.Get("/", catalogHandler.ListTeams)
			r.Get("/{id}", catalogHandler.GetTeam)
		})

		r.Route("/matches", func(r chi.Router) {
			r.Get("/", catalogHandler.ListMatches)
			r.Get("/{id}", catalogHandler.GetMatch)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", catalogHandler.ListUsers)
			r.Get("/{id}", catalogHandler.GetUser)
		})

		reload := r.With(deps.RateLimiter.ReloadMiddleware())
		reload.Get("/reload", reloadHandler.Reload)
		reload.Post("/reload", reloadHandler.Reload)
	})

	return r
}
