package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/hitoshi/frozenbet/internal/dataset"
	"github.com/hitoshi/frozenbet/internal/model"
	"github.com/hitoshi/frozenbet/internal/seedgen"
)

var testNow = time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

func generate(t *testing.T, seed uint32) *model.Dataset {
	t.Helper()
	ds, err := seedgen.GenerateDataset(seed, testNow, seedgen.DefaultOptions())
	if err != nil {
		t.Fatalf("GenerateDataset(%d) error: %v", seed, err)
	}
	return ds
}

func openTestBolt(t *testing.T) *BoltCatalog {
	t.Helper()
	b, err := OpenBoltCatalog(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("OpenBoltCatalog error: %v", err)
	}
	t.Cleanup(func() { b.Close() })
	return b
}

func int64Ptr(v int64) *int64 { return &v }

func TestBoltCatalog_ImplementsInterface(t *testing.T) {
	var _ Catalog = (*BoltCatalog)(nil)
}

func TestBoltCatalog_EmptyStore(t *testing.T) {
	b := openTestBolt(t)
	ctx := context.Background()

	cs, err := b.ListCompetitions(ctx, model.CompetitionFilter{})
	if err != nil {
		t.Fatalf("ListCompetitions error: %v", err)
	}
	if cs == nil || len(cs) != 0 {
		t.Errorf("ListCompetitions on empty store = %v, want empty non-nil slice", cs)
	}
	if m, err := b.FindMatchByID(ctx, 1); err != nil || m != nil {
		t.Errorf("FindMatchByID on empty store = %v, %v; want nil, nil", m, err)
	}
	if err := b.Ping(ctx); err != nil {
		t.Errorf("Ping error: %v", err)
	}
	if seed, ok, err := b.StoredSeed(ctx); err != nil || ok {
		t.Errorf("StoredSeed on empty store = %d, %v, %v; want 0, false, nil", seed, ok, err)
	}
}

// 永続化して読み戻した結果がメモリ上のスナップショットと一致する。
func TestBoltCatalog_ReplaceDatasetMatchesSnapshot(t *testing.T) {
	b := openTestBolt(t)
	ctx := context.Background()
	ds := generate(t, 42)

	if err := b.ReplaceDataset(ctx, ds); err != nil {
		t.Fatalf("ReplaceDataset error: %v", err)
	}

	snap := dataset.NewSnapshot(42, 42, testNow, ds, nil)

	wantMatches, _ := snap.ListMatches(ctx, model.MatchFilter{TeamID: int64Ptr(3)})
	gotMatches, err := b.ListMatches(ctx, model.MatchFilter{TeamID: int64Ptr(3)})
	if err != nil {
		t.Fatalf("ListMatches error: %v", err)
	}
	if diff := cmp.Diff(wantMatches, gotMatches); diff != "" {
		t.Errorf("matches for team 3 mismatch (-snapshot +bolt):\n%s", diff)
	}

	wantComps, _ := snap.ListCompetitions(ctx, model.CompetitionFilter{})
	gotComps, err := b.ListCompetitions(ctx, model.CompetitionFilter{})
	if err != nil {
		t.Fatalf("ListCompetitions error: %v", err)
	}
	if diff := cmp.Diff(wantComps, gotComps); diff != "" {
		t.Errorf("competitions mismatch (-snapshot +bolt):\n%s", diff)
	}

	wantTeams, _ := snap.ListTeams(ctx, model.TeamFilter{CompetitionID: int64Ptr(2)})
	gotTeams, err := b.ListTeams(ctx, model.TeamFilter{CompetitionID: int64Ptr(2)})
	if err != nil {
		t.Fatalf("ListTeams error: %v", err)
	}
	if diff := cmp.Diff(wantTeams, gotTeams); diff != "" {
		t.Errorf("teams mismatch (-snapshot +bolt):\n%s", diff)
	}

	m, err := b.FindMatchByID(ctx, 1)
	if err != nil {
		t.Fatalf("FindMatchByID error: %v", err)
	}
	if m.HomeScore == nil || *m.HomeScore != 4 || *m.AwayScore != 6 {
		t.Errorf("match 1 score = %v-%v, want 4-6", m.HomeScore, m.AwayScore)
	}
}

// 2回目の置き換えで前回の行が残らない。
func TestBoltCatalog_ReplaceDatasetRemovesPreviousRows(t *testing.T) {
	b := openTestBolt(t)
	ctx := context.Background()

	if err := b.ReplaceDataset(ctx, generate(t, 1)); err != nil {
		t.Fatalf("first ReplaceDataset error: %v", err)
	}
	if seed, ok, _ := b.StoredSeed(ctx); !ok || seed != 1 {
		t.Errorf("StoredSeed after first replace = %d, %v; want 1, true", seed, ok)
	}

	opts := seedgen.DefaultOptions()
	opts.Competitions = 2
	smaller, err := seedgen.GenerateDataset(2, testNow, opts)
	if err != nil {
		t.Fatalf("GenerateDataset error: %v", err)
	}
	if err := b.ReplaceDataset(ctx, smaller); err != nil {
		t.Fatalf("second ReplaceDataset error: %v", err)
	}

	cs, _ := b.ListCompetitions(ctx, model.CompetitionFilter{})
	if len(cs) != 2 {
		t.Errorf("competitions after replace = %d, want 2", len(cs))
	}
	ms, _ := b.ListMatches(ctx, model.MatchFilter{})
	if len(ms) != 32 {
		t.Errorf("matches after replace = %d, want 32", len(ms))
	}
	if c, _ := b.FindCompetitionByID(ctx, 5); c != nil {
		t.Error("competition 5 from the previous dataset is still stored")
	}
	if seed, ok, _ := b.StoredSeed(ctx); !ok || seed != 2 {
		t.Errorf("StoredSeed after second replace = %d, %v; want 2, true", seed, ok)
	}
}

func TestBoltCatalog_ClosedStoreReturnsStorageError(t *testing.T) {
	b, err := OpenBoltCatalog(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("OpenBoltCatalog error: %v", err)
	}
	b.Close()

	err = b.ReplaceDataset(context.Background(), generate(t, 42))
	var storageErr *model.StorageError
	if !errors.As(err, &storageErr) {
		t.Fatalf("ReplaceDataset on closed store error = %v, want *model.StorageError", err)
	}
	if err := b.Ping(context.Background()); err == nil {
		t.Error("Ping on closed store should fail")
	}
}
