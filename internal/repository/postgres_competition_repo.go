package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/frozenbet/internal/model"
)

const competitionColumns = `id, theme_id, name, description, start_date, end_date, season, status, created_at`

var competitionCopyColumns = []string{
	"id", "theme_id", "name", "description", "start_date", "end_date", "season", "status", "created_at",
}

// PostgresCompetitionRepo はPostgreSQLを使用した大会リポジトリ。
type PostgresCompetitionRepo struct {
	db *sql.DB
}

// NewPostgresCompetitionRepo はPostgresCompetitionRepoを生成する。
func NewPostgresCompetitionRepo(db *sql.DB) *PostgresCompetitionRepo {
	return &PostgresCompetitionRepo{db: db}
}

func scanCompetition(row rowScanner) (*model.Competition, error) {
	c := &model.Competition{}
	err := row.Scan(
		&c.ID, &c.ThemeID, &c.Name, &c.Description,
		&c.StartDate, &c.EndDate, &c.Season, &c.Status, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.StartDate = c.StartDate.UTC()
	c.EndDate = c.EndDate.UTC()
	c.CreatedAt = c.CreatedAt.UTC()
	return c, nil
}

// FindCompetitionByID は指定IDの大会を取得する。見つからない場合はnilを返す。
func (r *PostgresCompetitionRepo) FindCompetitionByID(ctx context.Context, id int64) (*model.Competition, error) {
	c, err := scanCompetition(r.db.QueryRowContext(ctx,
		`SELECT `+competitionColumns+` FROM competitions WHERE id = $1`,
		id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find competition by ID: %w", err)
	}
	return c, nil
}

// ListCompetitions は条件に合う大会を開始日の降順（同日はID昇順）で返す。
func (r *PostgresCompetitionRepo) ListCompetitions(ctx context.Context, filter model.CompetitionFilter) ([]*model.Competition, error) {
	var w whereBuilder
	if filter.Status != "" {
		w.add("status = ?", filter.Status)
	}
	if filter.Season != "" {
		w.add("season = ?", filter.Season)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+competitionColumns+` FROM competitions`+w.clause()+` ORDER BY start_date DESC, id ASC`,
		w.args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list competitions: %w", err)
	}
	defer rows.Close()

	out := []*model.Competition{}
	for rows.Next() {
		c, err := scanCompetition(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan competition: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate competitions: %w", err)
	}
	return out, nil
}

// CreateCompetition は大会を1件作成する。
func (r *PostgresCompetitionRepo) CreateCompetition(ctx context.Context, c *model.Competition) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO competitions (`+competitionColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		c.ID, c.ThemeID, c.Name, c.Description,
		c.StartDate, c.EndDate, c.Season, c.Status, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create competition: %w", err)
	}
	return nil
}

// InsertCompetitions は大会をCOPYで一括挿入する。exはトランザクションであること。
func (r *PostgresCompetitionRepo) InsertCompetitions(ctx context.Context, ex Executor, cs []*model.Competition) error {
	rows := make([][]any, 0, len(cs))
	for _, c := range cs {
		rows = append(rows, []any{
			c.ID, c.ThemeID, c.Name, c.Description,
			c.StartDate, c.EndDate, c.Season, string(c.Status), c.CreatedAt,
		})
	}
	return copyRows(ctx, ex, "competitions", competitionCopyColumns, rows)
}

// DeleteAllCompetitions は全ての大会を削除する。
// 参照しているチーム・試合は先に削除しておくこと。
func (r *PostgresCompetitionRepo) DeleteAllCompetitions(ctx context.Context, ex Executor) error {
	if _, err := ex.ExecContext(ctx, `DELETE FROM competitions`); err != nil {
		return fmt.Errorf("failed to delete competitions: %w", err)
	}
	return nil
}
