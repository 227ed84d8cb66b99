package model

import (
	"fmt"
	"time"
)

// CompetitionStatus は大会の進行状態を表す。
type CompetitionStatus string

const (
	CompetitionUpcoming CompetitionStatus = "upcoming"
	CompetitionOngoing  CompetitionStatus = "ongoing"
	CompetitionEnded    CompetitionStatus = "ended"
)

// CompetitionStatuses は抽選順序を固定した大会ステータスの一覧。
// 順序を変えると同一シードでも生成結果が変わる。
var CompetitionStatuses = []CompetitionStatus{
	CompetitionUpcoming,
	CompetitionOngoing,
	CompetitionEnded,
}

// Valid はステータスが定義済みの値かどうかを返す。
func (s CompetitionStatus) Valid() bool {
	switch s {
	case CompetitionUpcoming, CompetitionOngoing, CompetitionEnded:
		return true
	}
	return false
}

// Competition は大会（リーグ・トーナメント）を表す。
type Competition struct {
	ID          int64
	ThemeID     int64
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	Season      string
	Status      CompetitionStatus
	CreatedAt   time.Time
}

// NewCompetition は不変条件を検証したうえでCompetitionを生成する。
// EndDate > StartDate かつ CreatedAt <= StartDate でなければErrInvalidArgumentを返す。
func NewCompetition(c Competition) (*Competition, error) {
	if c.ID <= 0 {
		return nil, fmt.Errorf("%w: competition id must be positive, got %d", ErrInvalidArgument, c.ID)
	}
	if !c.EndDate.After(c.StartDate) {
		return nil, fmt.Errorf("%w: competition %d end date must be after start date", ErrInvalidArgument, c.ID)
	}
	if c.CreatedAt.After(c.StartDate) {
		return nil, fmt.Errorf("%w: competition %d created after its start date", ErrInvalidArgument, c.ID)
	}
	if !c.Status.Valid() {
		return nil, fmt.Errorf("%w: competition %d has unknown status %q", ErrInvalidArgument, c.ID, c.Status)
	}
	return &c, nil
}

// CompetitionFilter は大会一覧の絞り込み条件。空文字列は条件なしを意味する。
type CompetitionFilter struct {
	Status string
	Season string
}

// Matches は大会がフィルタ条件を満たすかどうかを返す。
func (f CompetitionFilter) Matches(c *Competition) bool {
	if f.Status != "" && string(c.Status) != f.Status {
		return false
	}
	if f.Season != "" && c.Season != f.Season {
		return false
	}
	return true
}
