package seedgen

import (
	"fmt"
	"time"

	"github.com/hitoshi/frozenbet/internal/model"
)

// GenerateDataset はシードから大会・チーム・試合を生成する。
// 1つの乱数源を大会 → チーム → 試合の順に通して使うため、
// 同じ (seed, now, opts) からは常に同一のデータセットが得られる。
// 子レコードは親のIDを埋め込むので、この順序は変えられない。
func GenerateDataset(seed uint32, now time.Time, opts Options) (*model.Dataset, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	src := NewSource(seed)

	competitions, err := generateCompetitions(src, now, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to generate competitions: %w", err)
	}

	teams, err := generateTeams(src, competitions, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to generate teams: %w", err)
	}

	ds := &model.Dataset{
		Seed:         seed,
		Competitions: competitions,
		Teams:        teams,
	}

	matches, err := generateMatches(src, competitions, ds.TeamsByCompetition(), now, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to generate matches: %w", err)
	}
	ds.Matches = matches

	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("generated dataset is inconsistent: %w", err)
	}

	return ds, nil
}
