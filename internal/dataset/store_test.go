package dataset

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/hitoshi/frozenbet/internal/model"
	"github.com/hitoshi/frozenbet/internal/seedgen"
)

var testNow = time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

func newTestSnapshot(t *testing.T, seed uint32) *Snapshot {
	t.Helper()
	opts := seedgen.DefaultOptions()
	ds, err := seedgen.GenerateDataset(seed, testNow, opts)
	if err != nil {
		t.Fatalf("GenerateDataset(%d) error: %v", seed, err)
	}
	users, err := seedgen.GenerateUsers(42, testNow, opts)
	if err != nil {
		t.Fatalf("GenerateUsers error: %v", err)
	}
	return NewSnapshot(seed, 42, testNow, ds, users)
}

func TestStore_EmptyReturnsErrNoSnapshot(t *testing.T) {
	store := NewStore()

	if store.Current() != nil {
		t.Fatal("Current() should be nil before the first publish")
	}
	if _, err := store.ListCompetitions(context.Background(), model.CompetitionFilter{}); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("ListCompetitions error = %v, want ErrNoSnapshot", err)
	}
	if _, err := store.FindMatchByID(context.Background(), 1); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("FindMatchByID error = %v, want ErrNoSnapshot", err)
	}
}

func TestStore_PublishAssignsIncreasingVersions(t *testing.T) {
	store := NewStore()

	for want := uint64(1); want <= 3; want++ {
		snap := store.Publish(newTestSnapshot(t, uint32(want)))
		if snap.Version != want {
			t.Errorf("Publish version = %d, want %d", snap.Version, want)
		}
		if store.Current() != snap {
			t.Errorf("Current() did not return the published snapshot %d", want)
		}
	}
}

func TestStore_PublishReplacesWholeDataset(t *testing.T) {
	store := NewStore()
	first := store.Publish(newTestSnapshot(t, 1))
	second := store.Publish(newTestSnapshot(t, 2))

	got, err := store.FindMatchByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("FindMatchByID error: %v", err)
	}
	want, _ := second.FindMatchByID(context.Background(), 1)
	if got.HomeTeamID != want.HomeTeamID || !got.ScheduledDate.Equal(want.ScheduledDate) {
		t.Errorf("store served match from version %d data", first.Version)
	}
}

// 差し替え中の読み取りは常にどちらか一方の完全なスナップショットを見る。
func TestStore_ConcurrentReadersSeeCompleteSnapshots(t *testing.T) {
	store := NewStore()
	store.Publish(newTestSnapshot(t, 1))

	snaps := []*Snapshot{newTestSnapshot(t, 2), newTestSnapshot(t, 3), newTestSnapshot(t, 4)}

	var wg sync.WaitGroup
	stop := make(chan struct{})
	errs := make(chan error, 8)

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				snap := store.Current()
				ms, _ := snap.ListMatches(context.Background(), model.MatchFilter{})
				if len(ms) != 80 {
					errs <- errors.New("reader observed a partial match list")
					return
				}
				for _, m := range ms {
					if _, err := snap.FindTeamByID(context.Background(), m.HomeTeamID); err != nil {
						errs <- err
						return
					}
				}
			}
		}()
	}

	for _, s := range snaps {
		store.Publish(s)
	}
	close(stop)
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
	if v := store.Current().Version; v != 4 {
		t.Errorf("final version = %d, want 4", v)
	}
}
