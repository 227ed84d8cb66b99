package dataset

import (
	"context"
	"testing"

	"github.com/hitoshi/frozenbet/internal/model"
)

func int64Ptr(v int64) *int64 { return &v }

func TestSnapshot_ListCompetitionsOrderedByStartDateDesc(t *testing.T) {
	snap := newTestSnapshot(t, 42)

	cs, err := snap.ListCompetitions(context.Background(), model.CompetitionFilter{})
	if err != nil {
		t.Fatalf("ListCompetitions error: %v", err)
	}
	if len(cs) != 5 {
		t.Fatalf("len = %d, want 5", len(cs))
	}
	for i := 1; i < len(cs); i++ {
		prev, cur := cs[i-1], cs[i]
		if prev.StartDate.Before(cur.StartDate) {
			t.Errorf("competitions not ordered by start date desc at %d", i)
		}
		if prev.StartDate.Equal(cur.StartDate) && prev.ID > cur.ID {
			t.Errorf("competitions with equal start date not ordered by id at %d", i)
		}
	}
}

func TestSnapshot_ListCompetitionsFilterByStatus(t *testing.T) {
	snap := newTestSnapshot(t, 42)

	cs, err := snap.ListCompetitions(context.Background(), model.CompetitionFilter{Status: "ongoing"})
	if err != nil {
		t.Fatalf("ListCompetitions error: %v", err)
	}
	// seed 42: ended, ongoing, ended, ongoing, ongoing
	if len(cs) != 3 {
		t.Errorf("ongoing competitions = %d, want 3", len(cs))
	}
	for _, c := range cs {
		if c.Status != model.CompetitionOngoing {
			t.Errorf("competition %d status = %s, want ongoing", c.ID, c.Status)
		}
	}
}

func TestSnapshot_ListMatchesFilterByTeam(t *testing.T) {
	snap := newTestSnapshot(t, 42)

	ms, err := snap.ListMatches(context.Background(), model.MatchFilter{TeamID: int64Ptr(3)})
	if err != nil {
		t.Fatalf("ListMatches error: %v", err)
	}
	if len(ms) == 0 {
		t.Fatal("expected at least one match for team 3")
	}
	for _, m := range ms {
		if m.HomeTeamID != 3 && m.AwayTeamID != 3 {
			t.Errorf("match %d (%d vs %d) does not involve team 3", m.ID, m.HomeTeamID, m.AwayTeamID)
		}
	}

	all, _ := snap.ListMatches(context.Background(), model.MatchFilter{})
	want := 0
	for _, m := range all {
		if m.InvolvesTeam(3) {
			want++
		}
	}
	if len(ms) != want {
		t.Errorf("filtered matches = %d, want %d", len(ms), want)
	}
}

func TestSnapshot_ListMatchesOrderedByScheduledDateDesc(t *testing.T) {
	snap := newTestSnapshot(t, 42)

	ms, _ := snap.ListMatches(context.Background(), model.MatchFilter{CompetitionID: int64Ptr(1)})
	if len(ms) != 16 {
		t.Fatalf("matches in competition 1 = %d, want 16", len(ms))
	}
	for i := 1; i < len(ms); i++ {
		prev, cur := ms[i-1], ms[i]
		if prev.ScheduledDate.Before(cur.ScheduledDate) {
			t.Errorf("matches not ordered by scheduled date desc at %d", i)
		}
		if prev.ScheduledDate.Equal(cur.ScheduledDate) && prev.ID > cur.ID {
			t.Errorf("matches with equal date not ordered by id at %d", i)
		}
	}
}

func TestSnapshot_ListTeamsOrderedByName(t *testing.T) {
	snap := newTestSnapshot(t, 42)

	ts, _ := snap.ListTeams(context.Background(), model.TeamFilter{CompetitionID: int64Ptr(2)})
	if len(ts) != 8 {
		t.Fatalf("teams in competition 2 = %d, want 8", len(ts))
	}
	for i := 1; i < len(ts); i++ {
		if ts[i-1].Name > ts[i].Name {
			t.Errorf("teams not ordered by name at %d: %q > %q", i, ts[i-1].Name, ts[i].Name)
		}
	}
	for _, tm := range ts {
		if tm.CompetitionID != 2 {
			t.Errorf("team %d competition = %d, want 2", tm.ID, tm.CompetitionID)
		}
	}
}

func TestSnapshot_FindReturnsNilForUnknownID(t *testing.T) {
	snap := newTestSnapshot(t, 42)
	ctx := context.Background()

	if c, err := snap.FindCompetitionByID(ctx, 999); err != nil || c != nil {
		t.Errorf("FindCompetitionByID(999) = %v, %v; want nil, nil", c, err)
	}
	if tm, err := snap.FindTeamByID(ctx, 999); err != nil || tm != nil {
		t.Errorf("FindTeamByID(999) = %v, %v; want nil, nil", tm, err)
	}
	if m, err := snap.FindMatchByID(ctx, 999); err != nil || m != nil {
		t.Errorf("FindMatchByID(999) = %v, %v; want nil, nil", m, err)
	}
	if u, err := snap.FindUserByID(ctx, 999); err != nil || u != nil {
		t.Errorf("FindUserByID(999) = %v, %v; want nil, nil", u, err)
	}
}

func TestSnapshot_ReturnedValuesAreCopies(t *testing.T) {
	snap := newTestSnapshot(t, 42)
	ctx := context.Background()

	m, _ := snap.FindMatchByID(ctx, 1)
	if m.HomeScore == nil {
		t.Fatal("seed 42 match 1 should be live with a score")
	}
	*m.HomeScore = 99
	m.Location = "changed"

	again, _ := snap.FindMatchByID(ctx, 1)
	if *again.HomeScore == 99 || again.Location == "changed" {
		t.Error("mutating a returned match changed the snapshot")
	}

	c, _ := snap.FindCompetitionByID(ctx, 1)
	c.Name = "changed"
	if again, _ := snap.FindCompetitionByID(ctx, 1); again.Name == "changed" {
		t.Error("mutating a returned competition changed the snapshot")
	}
}

func TestSnapshot_EmptyListsAreNonNil(t *testing.T) {
	snap := newTestSnapshot(t, 42)

	ms, _ := snap.ListMatches(context.Background(), model.MatchFilter{Status: "postponed"})
	if ms == nil || len(ms) != 0 {
		t.Errorf("ListMatches with unmatched filter = %v, want empty non-nil slice", ms)
	}
}

func TestSnapshot_Counts(t *testing.T) {
	snap := newTestSnapshot(t, 42)
	counts := snap.Counts()

	want := map[string]int{"competitions": 5, "teams": 40, "matches": 80, "users": 10}
	for k, v := range want {
		if counts[k] != v {
			t.Errorf("Counts()[%q] = %d, want %d", k, counts[k], v)
		}
	}
}
