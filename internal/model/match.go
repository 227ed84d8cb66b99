package model

import (
	"fmt"
	"time"
)

// MatchStatus は試合の進行状態を表す。
type MatchStatus string

const (
	MatchScheduled MatchStatus = "scheduled"
	MatchLive      MatchStatus = "live"
	MatchFinished  MatchStatus = "finished"
)

// MatchStatuses は抽選順序を固定した試合ステータスの一覧。
var MatchStatuses = []MatchStatus{
	MatchScheduled,
	MatchLive,
	MatchFinished,
}

// Valid はステータスが定義済みの値かどうかを返す。
func (s MatchStatus) Valid() bool {
	switch s {
	case MatchScheduled, MatchLive, MatchFinished:
		return true
	}
	return false
}

// HasScore はこのステータスの試合がスコアを持つかどうかを返す。
// live と finished のみスコアを持つ。
func (s MatchStatus) HasScore() bool {
	return s == MatchLive || s == MatchFinished
}

// Match は大会内の1試合（フィクスチャ）を表す。
// HomeScore/AwayScore はスコアを持たないステータスではnil。
type Match struct {
	ID            int64
	CompetitionID int64
	HomeTeamID    int64
	AwayTeamID    int64
	ScheduledDate time.Time
	Status        MatchStatus
	HomeScore     *int
	AwayScore     *int
	Location      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewMatch は不変条件を検証したうえでMatchを生成する。
// ホームとアウェイが同一チームの場合、スコアの有無がステータスと矛盾する場合はErrInvalidArgumentを返す。
func NewMatch(m Match) (*Match, error) {
	if m.ID <= 0 {
		return nil, fmt.Errorf("%w: match id must be positive, got %d", ErrInvalidArgument, m.ID)
	}
	if m.CompetitionID <= 0 {
		return nil, fmt.Errorf("%w: match %d has no competition", ErrInvalidArgument, m.ID)
	}
	if m.HomeTeamID == m.AwayTeamID {
		return nil, fmt.Errorf("%w: match %d home and away team are both %d", ErrInvalidArgument, m.ID, m.HomeTeamID)
	}
	if !m.Status.Valid() {
		return nil, fmt.Errorf("%w: match %d has unknown status %q", ErrInvalidArgument, m.ID, m.Status)
	}

	hasScore := m.HomeScore != nil && m.AwayScore != nil
	noScore := m.HomeScore == nil && m.AwayScore == nil
	if m.Status.HasScore() && !hasScore {
		return nil, fmt.Errorf("%w: match %d is %s but has no score", ErrInvalidArgument, m.ID, m.Status)
	}
	if !m.Status.HasScore() && !noScore {
		return nil, fmt.Errorf("%w: match %d is %s but has a score", ErrInvalidArgument, m.ID, m.Status)
	}
	if hasScore && (*m.HomeScore < 0 || *m.AwayScore < 0) {
		return nil, fmt.Errorf("%w: match %d has a negative score", ErrInvalidArgument, m.ID)
	}

	return m.Clone(), nil
}

// Clone はスコアのポインタも含めて複製したMatchを返す。
// 公開済みスナップショットの値を呼び出し側から書き換えられないようにする。
func (m *Match) Clone() *Match {
	c := *m
	if m.HomeScore != nil {
		v := *m.HomeScore
		c.HomeScore = &v
	}
	if m.AwayScore != nil {
		v := *m.AwayScore
		c.AwayScore = &v
	}
	return &c
}

// InvolvesTeam はチームがホームまたはアウェイとして出場するかどうかを返す。
func (m *Match) InvolvesTeam(teamID int64) bool {
	return m.HomeTeamID == teamID || m.AwayTeamID == teamID
}

// MatchFilter は試合一覧の絞り込み条件。
// TeamID はホーム・アウェイのどちらかに一致すればよい。
type MatchFilter struct {
	CompetitionID *int64
	Status        string
	TeamID        *int64
}

// Matches は試合がフィルタ条件を満たすかどうかを返す。
func (f MatchFilter) Matches(m *Match) bool {
	if f.CompetitionID != nil && m.CompetitionID != *f.CompetitionID {
		return false
	}
	if f.Status != "" && string(m.Status) != f.Status {
		return false
	}
	if f.TeamID != nil && !m.InvolvesTeam(*f.TeamID) {
		return false
	}
	return true
}
