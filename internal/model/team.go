package model

import (
	"fmt"
	"time"
)

// Team は大会に所属するチームを表す。
type Team struct {
	ID            int64
	CompetitionID int64
	Name          string
	ShortName     string
	LogoURL       string
	Country       string
	ExternalAPIID string
	CreatedAt     time.Time
}

// NewTeam は不変条件を検証したうえでTeamを生成する。
// 所属大会が実在するかどうかはDataset.Validateで検証する。
func NewTeam(t Team) (*Team, error) {
	if t.ID <= 0 {
		return nil, fmt.Errorf("%w: team id must be positive, got %d", ErrInvalidArgument, t.ID)
	}
	if t.CompetitionID <= 0 {
		return nil, fmt.Errorf("%w: team %d has no competition", ErrInvalidArgument, t.ID)
	}
	if t.ShortName == "" {
		return nil, fmt.Errorf("%w: team %d has empty short name", ErrInvalidArgument, t.ID)
	}
	return &t, nil
}

// TeamFilter はチーム一覧の絞り込み条件。
type TeamFilter struct {
	CompetitionID *int64
}

// Matches はチームがフィルタ条件を満たすかどうかを返す。
func (f TeamFilter) Matches(t *Team) bool {
	if f.CompetitionID != nil && t.CompetitionID != *f.CompetitionID {
		return false
	}
	return true
}
