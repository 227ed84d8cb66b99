package seedgen

import (
	"fmt"
	"time"

	"github.com/hitoshi/frozenbet/internal/model"
)

// generateMatches は大会ID順に、各大会 opts.MatchesPerCompetition 件の試合を生成する。
// ホーム・アウェイは必ずその大会のチームから選ぶ。IDは大会をまたいで1から連番。
func generateMatches(src Source, competitions []*model.Competition, teamsByCompetition map[int64][]*model.Team, now time.Time, opts Options) ([]*model.Match, error) {
	out := make([]*model.Match, 0, len(competitions)*opts.MatchesPerCompetition)
	var nextID int64 = 1

	for _, c := range competitions {
		teams := teamsByCompetition[c.ID]
		if len(teams) < 2 {
			return nil, fmt.Errorf("%w: competition %d has %d teams, need at least 2", model.ErrInvalidArgument, c.ID, len(teams))
		}

		for f := 0; f < opts.MatchesPerCompetition; f++ {
			id := nextID
			nextID++

			m, err := generateMatch(src, id, c.ID, teams, now, opts)
			if err != nil {
				return nil, err
			}
			out = append(out, m)
		}
	}

	return out, nil
}

// generateMatch は1試合を生成する。抽選順序はパッケージドキュメントの通り。
func generateMatch(src Source, id, competitionID int64, teams []*model.Team, now time.Time, opts Options) (*model.Match, error) {
	n := len(teams)

	homeIdx, err := IntInRange(src, 0, n-1)
	if err != nil {
		return nil, fmt.Errorf("match %d home team: %w", id, err)
	}
	awayIdx, err := IntInRange(src, 0, n-1)
	if err != nil {
		return nil, fmt.Errorf("match %d away team: %w", id, err)
	}
	// 唯一の非一様な補正: 同じチームを引いたら次のチームを使う
	if awayIdx == homeIdx {
		awayIdx = (homeIdx + 1) % n
	}

	dayOffset, err := intIn(src, opts.MatchDayWindow)
	if err != nil {
		return nil, fmt.Errorf("match %d day offset: %w", id, err)
	}
	status, err := PickOne(src, model.MatchStatuses)
	if err != nil {
		return nil, fmt.Errorf("match %d status: %w", id, err)
	}

	var homeScore, awayScore *int
	if status.HasScore() {
		h, err := IntInRange(src, 0, opts.MaxScore)
		if err != nil {
			return nil, fmt.Errorf("match %d home score: %w", id, err)
		}
		a, err := IntInRange(src, 0, opts.MaxScore)
		if err != nil {
			return nil, fmt.Errorf("match %d away score: %w", id, err)
		}
		homeScore, awayScore = &h, &a
	}

	home, away := teams[homeIdx], teams[awayIdx]

	var location string
	switch opts.LocationPolicy {
	case LocationFixedSet:
		location, err = PickOne(src, opts.Locations)
		if err != nil {
			return nil, fmt.Errorf("match %d location: %w", id, err)
		}
	default:
		location = home.ShortName + " Arena"
	}

	return model.NewMatch(model.Match{
		ID:            id,
		CompetitionID: competitionID,
		HomeTeamID:    home.ID,
		AwayTeamID:    away.ID,
		ScheduledDate: now.Add(time.Duration(dayOffset) * day),
		Status:        status,
		HomeScore:     homeScore,
		AwayScore:     awayScore,
		Location:      location,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
}
