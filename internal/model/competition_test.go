package model

import (
	"errors"
	"testing"
	"time"
)

func validCompetition() Competition {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	return Competition{
		ID:        1,
		ThemeID:   1,
		Name:      "Frozen Cup",
		StartDate: start,
		EndDate:   start.AddDate(0, 3, 0),
		Season:    "2026/27",
		Status:    CompetitionOngoing,
		CreatedAt: start.AddDate(0, -1, 0),
	}
}

func TestNewCompetition(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Competition)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Competition) {}},
		{name: "created on start date", mutate: func(c *Competition) { c.CreatedAt = c.StartDate }},
		{name: "zero id", mutate: func(c *Competition) { c.ID = 0 }, wantErr: true},
		{name: "end equals start", mutate: func(c *Competition) { c.EndDate = c.StartDate }, wantErr: true},
		{name: "end before start", mutate: func(c *Competition) { c.EndDate = c.StartDate.Add(-time.Hour) }, wantErr: true},
		{name: "created after start", mutate: func(c *Competition) { c.CreatedAt = c.StartDate.Add(time.Second) }, wantErr: true},
		{name: "unknown status", mutate: func(c *Competition) { c.Status = "paused" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCompetition()
			tt.mutate(&c)

			got, err := NewCompetition(c)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidArgument) {
					t.Errorf("error = %v, want ErrInvalidArgument", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.ID != c.ID {
				t.Errorf("ID = %d, want %d", got.ID, c.ID)
			}
		})
	}
}

func TestCompetitionFilter_Matches(t *testing.T) {
	c := validCompetition()

	tests := []struct {
		name   string
		filter CompetitionFilter
		want   bool
	}{
		{"empty filter", CompetitionFilter{}, true},
		{"status match", CompetitionFilter{Status: "ongoing"}, true},
		{"status mismatch", CompetitionFilter{Status: "ended"}, false},
		{"season match", CompetitionFilter{Season: "2026/27"}, true},
		{"season mismatch", CompetitionFilter{Season: "2024/25"}, false},
		{"both must match", CompetitionFilter{Status: "ongoing", Season: "2024/25"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(&c); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}
