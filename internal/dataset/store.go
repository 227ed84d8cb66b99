package dataset

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/hitoshi/frozenbet/internal/model"
)

// ErrNoSnapshot はまだ何も公開されていないStoreを読んだ場合のエラー。
var ErrNoSnapshot = errors.New("no dataset snapshot has been published")

// Store は現在アクティブなスナップショットへの参照を保持する。
// 書き込み（Publish）は単一のmutexで直列化し、読み取りはロックなしでatomicに参照する。
// 読み取り側は常に旧スナップショットか新スナップショットのどちらか完全なものを見る。
type Store struct {
	mu      sync.Mutex
	current atomic.Pointer[Snapshot]
	version uint64
}

// NewStore は空のStoreを生成する。
func NewStore() *Store {
	return &Store{}
}

// Current は現在のスナップショットを返す。未公開の場合はnil。
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Publish はスナップショットにバージョンを採番し、アクティブなスナップショットとして差し替える。
// snapはPublish前に他から参照されていてはならない。
func (s *Store) Publish(snap *Snapshot) *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.version++
	snap.Version = s.version
	s.current.Store(snap)

	return snap
}

func (s *Store) snapshot() (*Snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, ErrNoSnapshot
	}
	return snap, nil
}

// ListCompetitions は現在のスナップショットから大会一覧を返す。
func (s *Store) ListCompetitions(ctx context.Context, filter model.CompetitionFilter) ([]*model.Competition, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return snap.ListCompetitions(ctx, filter)
}

// FindCompetitionByID は現在のスナップショットから大会を返す。
func (s *Store) FindCompetitionByID(ctx context.Context, id int64) (*model.Competition, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return snap.FindCompetitionByID(ctx, id)
}

// ListTeams は現在のスナップショットからチーム一覧を返す。
func (s *Store) ListTeams(ctx context.Context, filter model.TeamFilter) ([]*model.Team, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return snap.ListTeams(ctx, filter)
}

// FindTeamByID は現在のスナップショットからチームを返す。
func (s *Store) FindTeamByID(ctx context.Context, id int64) (*model.Team, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return snap.FindTeamByID(ctx, id)
}

// ListMatches は現在のスナップショットから試合一覧を返す。
func (s *Store) ListMatches(ctx context.Context, filter model.MatchFilter) ([]*model.Match, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return snap.ListMatches(ctx, filter)
}

// FindMatchByID は現在のスナップショットから試合を返す。
func (s *Store) FindMatchByID(ctx context.Context, id int64) (*model.Match, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return snap.FindMatchByID(ctx, id)
}

// ListUsers は現在のスナップショットからユーザー一覧を返す。
func (s *Store) ListUsers(ctx context.Context, filter model.UserFilter) ([]*model.User, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return snap.ListUsers(ctx, filter)
}

// FindUserByID は現在のスナップショットからユーザーを返す。
func (s *Store) FindUserByID(ctx context.Context, id int64) (*model.User, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return snap.FindUserByID(ctx, id)
}
