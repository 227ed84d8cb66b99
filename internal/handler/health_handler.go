package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/hitoshi/frozenbet/internal/catalog"
)

// ServiceName はヘルスチェックで返すサービス名。
const ServiceName = "frozenbet-ext-api"

// HealthChecker はヘルスチェックハンドラーが必要とするインターフェース。
type HealthChecker interface {
	Health(ctx context.Context) catalog.Health
}

type healthResponse struct {
	Status     string `json:"status"`
	Service    string `json:"service"`
	DataSource string `json:"data_source"`
	Version    uint64 `json:"version"`
	Seed       uint32 `json:"seed"`
}

// NewHealthHandler はGET /healthのハンドラーを返す。
// スナップショット未公開またはストアに接続できない場合は503を返す。
func NewHealthHandler(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := checker.Health(r.Context())

		resp := healthResponse{
			Status:     "ok",
			Service:    ServiceName,
			DataSource: h.DataSource,
			Version:    h.Version,
			Seed:       h.Seed,
		}
		status := http.StatusOK
		if h.Err != nil {
			slog.Warn("health check failed", slog.String("error", h.Err.Error()))
			resp.Status = "unavailable"
			status = http.StatusServiceUnavailable
		}

		writeJSON(w, status, resp)
	}
}
