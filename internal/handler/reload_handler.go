package handler

import (
	"context"
	"net/http"

	"github.com/hitoshi/frozenbet/internal/dataset"
)

// ReloadServiceInterface はリロードハンドラーが必要とするサービスインターフェース。
type ReloadServiceInterface interface {
	// Reload はシード文字列を検証し、データセットを再生成して公開する。
	Reload(ctx context.Context, rawSeed string) (*dataset.Snapshot, error)
	// Scope はリロードが置き換える範囲を返す。
	Scope() string
}

// ReloadHandler はデータセット再生成のHTTPハンドラー。
type ReloadHandler struct {
	service ReloadServiceInterface
}

// NewReloadHandler はReloadHandlerを生成する。
func NewReloadHandler(service ReloadServiceInterface) *ReloadHandler {
	return &ReloadHandler{service: service}
}

// reloadResponse はリロード結果のAPIレスポンス。
type reloadResponse struct {
	OK       bool   `json:"ok"`
	Seed     uint32 `json:"seed"`
	UserSeed uint32 `json:"user_seed"`
	Scope    string `json:"scope"`
	Version  uint64 `json:"version"`
	RunID    string `json:"run_id"`
}

// Reload はシードを指定してデータセットを作り直す。
// 失敗時は直前のデータセットが引き続き提供される。
// GET|POST /reload?seed=
func (h *ReloadHandler) Reload(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.Reload(r.Context(), r.URL.Query().Get("seed"))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, reloadResponse{
		OK:       true,
		Seed:     snap.Seed,
		UserSeed: snap.UserSeed,
		Scope:    h.service.Scope(),
		Version:  snap.Version,
		RunID:    snap.RunID.String(),
	})
}
