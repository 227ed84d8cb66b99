package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/frozenbet/internal/middleware"
	"github.com/hitoshi/frozenbet/internal/model"
)

// handleServiceError はサービス層のエラーを統一フォーマットのレスポンスに変換する。
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		middleware.WriteAPIError(w, apiErr)
		return
	}

	var storageErr *model.StorageError
	if errors.As(err, &storageErr) {
		slog.Error("storage failure",
			slog.String("op", storageErr.Op),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		middleware.WriteAPIError(w, model.NewStorageFailedError(storageErr.Op))
		return
	}

	// APIError以外のエラーは内部サーバーエラーとして扱う
	slog.Error("internal server error",
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)
	middleware.WriteInternalServerError(w)
}

// parseIDParam はURLパスのidを正の整数として解釈する。
func parseIDParam(r *http.Request) (int64, *model.APIError) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, model.NewInvalidParameterError("id", raw)
	}
	return id, nil
}

// parseOptionalIDQuery はクエリパラメータのIDを解釈する。未指定の場合はnilを返す。
func parseOptionalIDQuery(r *http.Request, name string) (*int64, *model.APIError) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, model.NewInvalidParameterError(name, raw)
	}
	return &id, nil
}
