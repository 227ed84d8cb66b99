package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/hitoshi/frozenbet/internal/catalog"
	"github.com/hitoshi/frozenbet/internal/dataset"
	"github.com/hitoshi/frozenbet/internal/model"
)

// mockReloadService はReloadServiceInterfaceのモック実装。
type mockReloadService struct {
	reloadFn func(ctx context.Context, rawSeed string) (*dataset.Snapshot, error)
	scope    string
}

func (m *mockReloadService) Reload(ctx context.Context, rawSeed string) (*dataset.Snapshot, error) {
	if m.reloadFn != nil {
		return m.reloadFn(ctx, rawSeed)
	}
	return nil, errors.New("not implemented")
}

func (m *mockReloadService) Scope() string { return m.scope }

func TestReload_Success(t *testing.T) {
	runID := uuid.New()
	var gotSeed string
	svc := &mockReloadService{
		scope: catalog.ScopeDatasetAndStore,
		reloadFn: func(ctx context.Context, rawSeed string) (*dataset.Snapshot, error) {
			gotSeed = rawSeed
			return &dataset.Snapshot{Version: 4, RunID: runID, Seed: 7, UserSeed: 42}, nil
		},
	}
	h := NewReloadHandler(svc)

	w := httptest.NewRecorder()
	h.Reload(w, httptest.NewRequest(http.MethodPost, "/reload?seed=7", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if gotSeed != "7" {
		t.Errorf("raw seed = %q, want %q", gotSeed, "7")
	}

	var body reloadResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	want := reloadResponse{OK: true, Seed: 7, UserSeed: 42, Scope: "dataset+store", Version: 4, RunID: runID.String()}
	if body != want {
		t.Errorf("body = %+v, want %+v", body, want)
	}
}

func TestReload_MissingSeedPassesEmptyString(t *testing.T) {
	gotSeed := "unset"
	svc := &mockReloadService{
		scope: catalog.ScopeDataset,
		reloadFn: func(ctx context.Context, rawSeed string) (*dataset.Snapshot, error) {
			gotSeed = rawSeed
			return &dataset.Snapshot{Version: 2, Seed: 42, UserSeed: 42}, nil
		},
	}

	w := httptest.NewRecorder()
	NewReloadHandler(svc).Reload(w, httptest.NewRequest(http.MethodGet, "/reload", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if gotSeed != "" {
		t.Errorf("raw seed = %q, want empty", gotSeed)
	}
}

func TestReload_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid seed", model.NewInvalidSeedError("abc"), http.StatusBadRequest, model.ErrCodeInvalidSeed},
		{"storage failure", &model.StorageError{Op: "insert teams", Err: errors.New("disk full")}, http.StatusServiceUnavailable, model.ErrCodeStorageFailed},
		{"generator misuse", model.ErrInvalidArgument, http.StatusInternalServerError, model.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockReloadService{
				reloadFn: func(ctx context.Context, rawSeed string) (*dataset.Snapshot, error) {
					return nil, tt.err
				},
			}

			w := httptest.NewRecorder()
			NewReloadHandler(svc).Reload(w, httptest.NewRequest(http.MethodGet, "/reload?seed=abc", nil))

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if body := parseAPIErrorResponse(t, w); body["code"] != tt.wantCode {
				t.Errorf("code = %q, want %q", body["code"], tt.wantCode)
			}
		})
	}
}
