package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/frozenbet/internal/model"
)

const matchColumns = `id, competition_id, home_team_id, away_team_id, scheduled_date, status,
		home_score, away_score, location, created_at, updated_at`

var matchCopyColumns = []string{
	"id", "competition_id", "home_team_id", "away_team_id", "scheduled_date", "status",
	"home_score", "away_score", "location", "created_at", "updated_at",
}

// PostgresMatchRepo はPostgreSQLを使用した試合リポジトリ。
type PostgresMatchRepo struct {
	db *sql.DB
}

// NewPostgresMatchRepo はPostgresMatchRepoを生成する。
func NewPostgresMatchRepo(db *sql.DB) *PostgresMatchRepo {
	return &PostgresMatchRepo{db: db}
}

func scanMatch(row rowScanner) (*model.Match, error) {
	m := &model.Match{}
	var homeScore, awayScore sql.NullInt64
	err := row.Scan(
		&m.ID, &m.CompetitionID, &m.HomeTeamID, &m.AwayTeamID, &m.ScheduledDate, &m.Status,
		&homeScore, &awayScore, &m.Location, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.HomeScore = intPtr(homeScore)
	m.AwayScore = intPtr(awayScore)
	m.ScheduledDate = m.ScheduledDate.UTC()
	m.CreatedAt = m.CreatedAt.UTC()
	m.UpdatedAt = m.UpdatedAt.UTC()
	return m, nil
}

// FindMatchByID は指定IDの試合を取得する。見つからない場合はnilを返す。
func (r *PostgresMatchRepo) FindMatchByID(ctx context.Context, id int64) (*model.Match, error) {
	m, err := scanMatch(r.db.QueryRowContext(ctx,
		`SELECT `+matchColumns+` FROM matches WHERE id = $1`,
		id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find match by ID: %w", err)
	}
	return m, nil
}

// ListMatches は条件に合う試合を開催日の降順（同日時はID昇順）で返す。
func (r *PostgresMatchRepo) ListMatches(ctx context.Context, filter model.MatchFilter) ([]*model.Match, error) {
	var w whereBuilder
	if filter.CompetitionID != nil {
		w.add("competition_id = ?", *filter.CompetitionID)
	}
	if filter.Status != "" {
		w.add("status = ?", filter.Status)
	}
	if filter.TeamID != nil {
		w.add("(home_team_id = ? OR away_team_id = ?)", *filter.TeamID)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+matchColumns+` FROM matches`+w.clause()+` ORDER BY scheduled_date DESC, id ASC`,
		w.args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	out := []*model.Match{}
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate matches: %w", err)
	}
	return out, nil
}

// CreateMatch は試合を1件作成する。
func (r *PostgresMatchRepo) CreateMatch(ctx context.Context, m *model.Match) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO matches (`+matchColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		m.ID, m.CompetitionID, m.HomeTeamID, m.AwayTeamID, m.ScheduledDate, m.Status,
		nullInt(m.HomeScore), nullInt(m.AwayScore), m.Location, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create match: %w", err)
	}
	return nil
}

// InsertMatches は試合をCOPYで一括挿入する。exはトランザクションであること。
func (r *PostgresMatchRepo) InsertMatches(ctx context.Context, ex Executor, ms []*model.Match) error {
	rows := make([][]any, 0, len(ms))
	for _, m := range ms {
		rows = append(rows, []any{
			m.ID, m.CompetitionID, m.HomeTeamID, m.AwayTeamID, m.ScheduledDate, string(m.Status),
			nullableInt(m.HomeScore), nullableInt(m.AwayScore), m.Location, m.CreatedAt, m.UpdatedAt,
		})
	}
	return copyRows(ctx, ex, "matches", matchCopyColumns, rows)
}

// DeleteAllMatches は全ての試合を削除する。
func (r *PostgresMatchRepo) DeleteAllMatches(ctx context.Context, ex Executor) error {
	if _, err := ex.ExecContext(ctx, `DELETE FROM matches`); err != nil {
		return fmt.Errorf("failed to delete matches: %w", err)
	}
	return nil
}
