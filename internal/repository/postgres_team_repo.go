package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/frozenbet/internal/model"
)

const teamColumns = `id, competition_id, name, short_name, logo_url, country, external_api_id, created_at`

var teamCopyColumns = []string{
	"id", "competition_id", "name", "short_name", "logo_url", "country", "external_api_id", "created_at",
}

// PostgresTeamRepo はPostgreSQLを使用したチームリポジトリ。
type PostgresTeamRepo struct {
	db *sql.DB
}

// NewPostgresTeamRepo はPostgresTeamRepoを生成する。
func NewPostgresTeamRepo(db *sql.DB) *PostgresTeamRepo {
	return &PostgresTeamRepo{db: db}
}

func scanTeam(row rowScanner) (*model.Team, error) {
	t := &model.Team{}
	err := row.Scan(
		&t.ID, &t.CompetitionID, &t.Name, &t.ShortName,
		&t.LogoURL, &t.Country, &t.ExternalAPIID, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.CreatedAt = t.CreatedAt.UTC()
	return t, nil
}

// FindTeamByID は指定IDのチームを取得する。見つからない場合はnilを返す。
func (r *PostgresTeamRepo) FindTeamByID(ctx context.Context, id int64) (*model.Team, error) {
	t, err := scanTeam(r.db.QueryRowContext(ctx,
		`SELECT `+teamColumns+` FROM teams WHERE id = $1`,
		id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find team by ID: %w", err)
	}
	return t, nil
}

// ListTeams は条件に合うチームを名前の昇順（同名はID昇順）で返す。
func (r *PostgresTeamRepo) ListTeams(ctx context.Context, filter model.TeamFilter) ([]*model.Team, error) {
	var w whereBuilder
	if filter.CompetitionID != nil {
		w.add("competition_id = ?", *filter.CompetitionID)
	}

	// COLLATE "C" でGoの文字列比較と同じバイト順にする
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+teamColumns+` FROM teams`+w.clause()+` ORDER BY name COLLATE "C" ASC, id ASC`,
		w.args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	out := []*model.Team{}
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate teams: %w", err)
	}
	return out, nil
}

// CreateTeam はチームを1件作成する。
func (r *PostgresTeamRepo) CreateTeam(ctx context.Context, t *model.Team) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO teams (`+teamColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		t.ID, t.CompetitionID, t.Name, t.ShortName,
		t.LogoURL, t.Country, t.ExternalAPIID, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create team: %w", err)
	}
	return nil
}

// InsertTeams はチームをCOPYで一括挿入する。exはトランザクションであること。
func (r *PostgresTeamRepo) InsertTeams(ctx context.Context, ex Executor, ts []*model.Team) error {
	rows := make([][]any, 0, len(ts))
	for _, t := range ts {
		rows = append(rows, []any{
			t.ID, t.CompetitionID, t.Name, t.ShortName,
			t.LogoURL, t.Country, t.ExternalAPIID, t.CreatedAt,
		})
	}
	return copyRows(ctx, ex, "teams", teamCopyColumns, rows)
}

// DeleteAllTeams は全てのチームを削除する。
func (r *PostgresTeamRepo) DeleteAllTeams(ctx context.Context, ex Executor) error {
	if _, err := ex.ExecContext(ctx, `DELETE FROM teams`); err != nil {
		return fmt.Errorf("failed to delete teams: %w", err)
	}
	return nil
}
