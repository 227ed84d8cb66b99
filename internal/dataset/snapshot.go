// Package dataset は生成済みデータセットを不変のスナップショットとして保持し、
// 読み取り側に一貫したビューを提供する。
package dataset

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/frozenbet/internal/model"
)

// Snapshot は1回のランで生成されたデータセットとユーザーの不変ビュー。
// Publish後はどのフィールドも書き換えない。読み取りメソッドは複製を返す。
type Snapshot struct {
	Version     uint64
	RunID       uuid.UUID
	Seed        uint32
	UserSeed    uint32
	GeneratedAt time.Time

	competitions []*model.Competition
	teams        []*model.Team
	matches      []*model.Match
	users        []*model.User

	competitionByID map[int64]*model.Competition
	teamByID        map[int64]*model.Team
	matchByID       map[int64]*model.Match
	userByID        map[int64]*model.User
}

// NewSnapshot はデータセットとユーザーからスナップショットを構築する。
// Versionは Store.Publish で採番される。
func NewSnapshot(seed, userSeed uint32, generatedAt time.Time, ds *model.Dataset, users []*model.User) *Snapshot {
	s := &Snapshot{
		RunID:           uuid.New(),
		Seed:            seed,
		UserSeed:        userSeed,
		GeneratedAt:     generatedAt,
		competitions:    ds.Competitions,
		teams:           ds.Teams,
		matches:         ds.Matches,
		users:           users,
		competitionByID: make(map[int64]*model.Competition, len(ds.Competitions)),
		teamByID:        make(map[int64]*model.Team, len(ds.Teams)),
		matchByID:       make(map[int64]*model.Match, len(ds.Matches)),
		userByID:        make(map[int64]*model.User, len(users)),
	}

	for _, c := range ds.Competitions {
		s.competitionByID[c.ID] = c
	}
	for _, t := range ds.Teams {
		s.teamByID[t.ID] = t
	}
	for _, m := range ds.Matches {
		s.matchByID[m.ID] = m
	}
	for _, u := range users {
		s.userByID[u.ID] = u
	}

	return s
}

// Dataset はスナップショットのデータセット部分を返す。
// 永続化層への書き込み用で、呼び出し側は内容を変更してはならない。
func (s *Snapshot) Dataset() *model.Dataset {
	return &model.Dataset{
		Seed:         s.Seed,
		Competitions: s.competitions,
		Teams:        s.teams,
		Matches:      s.matches,
	}
}

// Counts はエンティティ種別ごとの件数を返す。
func (s *Snapshot) Counts() map[string]int {
	return map[string]int{
		"competitions": len(s.competitions),
		"teams":        len(s.teams),
		"matches":      len(s.matches),
		"users":        len(s.users),
	}
}

// ListCompetitions は条件に合う大会を開始日の降順（同日はID昇順）で返す。
func (s *Snapshot) ListCompetitions(_ context.Context, filter model.CompetitionFilter) ([]*model.Competition, error) {
	out := []*model.Competition{}
	for _, c := range s.competitions {
		if filter.Matches(c) {
			cc := *c
			out = append(out, &cc)
		}
	}
	model.SortCompetitions(out)
	return out, nil
}

// FindCompetitionByID は指定IDの大会を返す。見つからない場合はnilを返す。
func (s *Snapshot) FindCompetitionByID(_ context.Context, id int64) (*model.Competition, error) {
	c, ok := s.competitionByID[id]
	if !ok {
		return nil, nil
	}
	cc := *c
	return &cc, nil
}

// ListTeams は条件に合うチームを名前の昇順（同名はID昇順）で返す。
func (s *Snapshot) ListTeams(_ context.Context, filter model.TeamFilter) ([]*model.Team, error) {
	out := []*model.Team{}
	for _, t := range s.teams {
		if filter.Matches(t) {
			tt := *t
			out = append(out, &tt)
		}
	}
	model.SortTeams(out)
	return out, nil
}

// FindTeamByID は指定IDのチームを返す。見つからない場合はnilを返す。
func (s *Snapshot) FindTeamByID(_ context.Context, id int64) (*model.Team, error) {
	t, ok := s.teamByID[id]
	if !ok {
		return nil, nil
	}
	tt := *t
	return &tt, nil
}

// ListMatches は条件に合う試合を開催日の降順（同日時はID昇順）で返す。
func (s *Snapshot) ListMatches(_ context.Context, filter model.MatchFilter) ([]*model.Match, error) {
	out := []*model.Match{}
	for _, m := range s.matches {
		if filter.Matches(m) {
			out = append(out, m.Clone())
		}
	}
	model.SortMatches(out)
	return out, nil
}

// FindMatchByID は指定IDの試合を返す。見つからない場合はnilを返す。
func (s *Snapshot) FindMatchByID(_ context.Context, id int64) (*model.Match, error) {
	m, ok := s.matchByID[id]
	if !ok {
		return nil, nil
	}
	return m.Clone(), nil
}

// ListUsers は条件に合うユーザーをID順で返す。
func (s *Snapshot) ListUsers(_ context.Context, filter model.UserFilter) ([]*model.User, error) {
	out := []*model.User{}
	for _, u := range s.users {
		if filter.Matches(u) {
			uu := *u
			out = append(out, &uu)
		}
	}
	return out, nil
}

// FindUserByID は指定IDのユーザーを返す。見つからない場合はnilを返す。
func (s *Snapshot) FindUserByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := s.userByID[id]
	if !ok {
		return nil, nil
	}
	uu := *u
	return &uu, nil
}
