package seedgen

import (
	"fmt"
	"time"

	"github.com/hitoshi/frozenbet/internal/model"
)

const day = 24 * time.Hour

// competitionNames は大会名のプール。IDから添字を決める（抽選しない）。
var competitionNames = []string{
	"Premier Hockey League",
	"Continental Cup",
	"Northern Championship",
	"Atlantic Series",
	"Pacific Trophy",
}

// themeCount はテーマ参照の種類数。themeId は 1..themeCount を巡回する。
const themeCount = 3

// generateCompetitions は大会を opts.Competitions 件生成する。IDは1から連番。
func generateCompetitions(src Source, now time.Time, opts Options) ([]*model.Competition, error) {
	out := make([]*model.Competition, 0, opts.Competitions)

	for i := 1; i <= opts.Competitions; i++ {
		id := int64(i)

		offset, err := intIn(src, opts.StartOffsetDays)
		if err != nil {
			return nil, fmt.Errorf("competition %d start offset: %w", id, err)
		}
		duration, err := intIn(src, opts.DurationDays)
		if err != nil {
			return nil, fmt.Errorf("competition %d duration: %w", id, err)
		}
		season, err := PickOne(src, opts.Seasons)
		if err != nil {
			return nil, fmt.Errorf("competition %d season: %w", id, err)
		}
		status, err := PickOne(src, model.CompetitionStatuses)
		if err != nil {
			return nil, fmt.Errorf("competition %d status: %w", id, err)
		}

		start := now.Add(-time.Duration(offset) * day)
		name := competitionNames[(i-1)%len(competitionNames)]

		c, err := model.NewCompetition(model.Competition{
			ID:          id,
			ThemeID:     int64((i-1)%themeCount + 1),
			Name:        name,
			Description: fmt.Sprintf("%s %s season", name, season),
			StartDate:   start,
			EndDate:     start.Add(time.Duration(duration) * day),
			Season:      season,
			Status:      status,
			CreatedAt:   start.Add(-day),
		})
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}

	return out, nil
}
