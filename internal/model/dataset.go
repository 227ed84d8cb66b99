package model

import "fmt"

// Dataset は1回の生成（ラン）で得られる大会・チーム・試合の集合。
// 生成後は不変として扱い、フィールドを書き換えてはならない。
type Dataset struct {
	// Seed はこのデータセットを生成したシード。永続ストアにも一緒に保存する。
	Seed uint32

	Competitions []*Competition
	Teams        []*Team
	Matches      []*Match
}

// Validate はデータセット全体の参照整合性を検証する。
//   - すべてのチームの所属大会が存在する
//   - すべての試合の大会・ホーム・アウェイが存在し、両チームが試合と同じ大会に所属する
//   - チームの略称がラン内で一意である
//
// 違反はErrInvalidArgumentとして返す。
func (d *Dataset) Validate() error {
	competitions := make(map[int64]struct{}, len(d.Competitions))
	for _, c := range d.Competitions {
		if _, dup := competitions[c.ID]; dup {
			return fmt.Errorf("%w: duplicate competition id %d", ErrInvalidArgument, c.ID)
		}
		competitions[c.ID] = struct{}{}
	}

	teamCompetition := make(map[int64]int64, len(d.Teams))
	shortNames := make(map[string]int64, len(d.Teams))
	for _, t := range d.Teams {
		if _, ok := competitions[t.CompetitionID]; !ok {
			return fmt.Errorf("%w: team %d references missing competition %d", ErrInvalidArgument, t.ID, t.CompetitionID)
		}
		if _, dup := teamCompetition[t.ID]; dup {
			return fmt.Errorf("%w: duplicate team id %d", ErrInvalidArgument, t.ID)
		}
		if other, dup := shortNames[t.ShortName]; dup {
			return fmt.Errorf("%w: teams %d and %d share short name %q", ErrInvalidArgument, other, t.ID, t.ShortName)
		}
		teamCompetition[t.ID] = t.CompetitionID
		shortNames[t.ShortName] = t.ID
	}

	matchIDs := make(map[int64]struct{}, len(d.Matches))
	for _, m := range d.Matches {
		if _, dup := matchIDs[m.ID]; dup {
			return fmt.Errorf("%w: duplicate match id %d", ErrInvalidArgument, m.ID)
		}
		matchIDs[m.ID] = struct{}{}

		if _, ok := competitions[m.CompetitionID]; !ok {
			return fmt.Errorf("%w: match %d references missing competition %d", ErrInvalidArgument, m.ID, m.CompetitionID)
		}
		for _, teamID := range []int64{m.HomeTeamID, m.AwayTeamID} {
			compID, ok := teamCompetition[teamID]
			if !ok {
				return fmt.Errorf("%w: match %d references missing team %d", ErrInvalidArgument, m.ID, teamID)
			}
			if compID != m.CompetitionID {
				return fmt.Errorf("%w: match %d team %d belongs to competition %d, not %d",
					ErrInvalidArgument, m.ID, teamID, compID, m.CompetitionID)
			}
		}
	}

	return nil
}

// TeamsByCompetition は大会IDごとのチーム一覧を生成順で返す。
func (d *Dataset) TeamsByCompetition() map[int64][]*Team {
	out := make(map[int64][]*Team, len(d.Competitions))
	for _, t := range d.Teams {
		out[t.CompetitionID] = append(out[t.CompetitionID], t)
	}
	return out
}
