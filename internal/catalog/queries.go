package catalog

import (
	"context"
	"fmt"

	"github.com/hitoshi/frozenbet/internal/model"
)

// ListCompetitions は条件に合う大会の一覧を返す。
func (s *Service) ListCompetitions(ctx context.Context, filter model.CompetitionFilter) ([]*model.Competition, error) {
	cs, err := s.reader.ListCompetitions(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("大会一覧の取得に失敗しました: %w", err)
	}
	return cs, nil
}

// GetCompetition は指定IDの大会を返す。存在しない場合はCOMPETITION_NOT_FOUND。
func (s *Service) GetCompetition(ctx context.Context, id int64) (*model.Competition, error) {
	c, err := s.reader.FindCompetitionByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("大会の取得に失敗しました: %w", err)
	}
	if c == nil {
		return nil, model.NewCompetitionNotFoundError(id)
	}
	return c, nil
}

// ListTeams は条件に合うチームの一覧を返す。
func (s *Service) ListTeams(ctx context.Context, filter model.TeamFilter) ([]*model.Team, error) {
	ts, err := s.reader.ListTeams(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("チーム一覧の取得に失敗しました: %w", err)
	}
	return ts, nil
}

// GetTeam は指定IDのチームを返す。存在しない場合はTEAM_NOT_FOUND。
func (s *Service) GetTeam(ctx context.Context, id int64) (*model.Team, error) {
	t, err := s.reader.FindTeamByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("チームの取得に失敗しました: %w", err)
	}
	if t == nil {
		return nil, model.NewTeamNotFoundError(id)
	}
	return t, nil
}

// ListMatches は条件に合う試合の一覧を返す。
func (s *Service) ListMatches(ctx context.Context, filter model.MatchFilter) ([]*model.Match, error) {
	ms, err := s.reader.ListMatches(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("試合一覧の取得に失敗しました: %w", err)
	}
	return ms, nil
}

// GetMatch は指定IDの試合を返す。存在しない場合はMATCH_NOT_FOUND。
func (s *Service) GetMatch(ctx context.Context, id int64) (*model.Match, error) {
	m, err := s.reader.FindMatchByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("試合の取得に失敗しました: %w", err)
	}
	if m == nil {
		return nil, model.NewMatchNotFoundError(id)
	}
	return m, nil
}

// ListUsers は条件に合うユーザーの一覧を返す。ユーザーは常にメモリ上から返す。
func (s *Service) ListUsers(ctx context.Context, filter model.UserFilter) ([]*model.User, error) {
	us, err := s.store.ListUsers(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("ユーザー一覧の取得に失敗しました: %w", err)
	}
	return us, nil
}

// GetUser は指定IDのユーザーを返す。存在しない場合はUSER_NOT_FOUND。
func (s *Service) GetUser(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.store.FindUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if u == nil {
		return nil, model.NewUserNotFoundError(id)
	}
	return u, nil
}
