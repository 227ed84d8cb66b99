package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hitoshi/frozenbet/internal/model"
)

// PostgresCatalog は大会・チーム・試合の各リポジトリをまとめ、
// データセット全体の置き換えを1トランザクションで行う。
type PostgresCatalog struct {
	*PostgresCompetitionRepo
	*PostgresTeamRepo
	*PostgresMatchRepo

	db *sql.DB
}

// NewPostgresCatalog はPostgresCatalogを生成する。
func NewPostgresCatalog(db *sql.DB) *PostgresCatalog {
	return &PostgresCatalog{
		PostgresCompetitionRepo: NewPostgresCompetitionRepo(db),
		PostgresTeamRepo:        NewPostgresTeamRepo(db),
		PostgresMatchRepo:       NewPostgresMatchRepo(db),
		db:                      db,
	}
}

// Ping はデータベースへの接続を確認する。
func (c *PostgresCatalog) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// ReplaceDataset は既存の行を子から順に削除し、親から順にCOPYで挿入する。
// いずれかの段階で失敗した場合はロールバックし、*model.StorageError を返す。
func (c *PostgresCatalog) ReplaceDataset(ctx context.Context, ds *model.Dataset) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return &model.StorageError{Op: "begin transaction", Err: err}
	}
	defer tx.Rollback()

	if err := c.DeleteAllMatches(ctx, tx); err != nil {
		return &model.StorageError{Op: "delete matches", Err: err}
	}
	if err := c.DeleteAllTeams(ctx, tx); err != nil {
		return &model.StorageError{Op: "delete teams", Err: err}
	}
	if err := c.DeleteAllCompetitions(ctx, tx); err != nil {
		return &model.StorageError{Op: "delete competitions", Err: err}
	}

	if err := c.InsertCompetitions(ctx, tx, ds.Competitions); err != nil {
		return &model.StorageError{Op: "insert competitions", Err: err}
	}
	if err := c.InsertTeams(ctx, tx, ds.Teams); err != nil {
		return &model.StorageError{Op: "insert teams", Err: err}
	}
	if err := c.InsertMatches(ctx, tx, ds.Matches); err != nil {
		return &model.StorageError{Op: "insert matches", Err: err}
	}
	if err := writeSeed(ctx, tx, ds.Seed); err != nil {
		return &model.StorageError{Op: "write dataset seed", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return &model.StorageError{Op: "commit", Err: fmt.Errorf("failed to commit transaction: %w", err)}
	}

	return nil
}

// writeSeed はdataset_metaの唯一の行にシードを書き込む。
func writeSeed(ctx context.Context, ex Executor, seed uint32) error {
	_, err := ex.ExecContext(ctx, `
		INSERT INTO dataset_meta (id, seed, written_at) VALUES (1, $1, now())
		ON CONFLICT (id) DO UPDATE SET seed = EXCLUDED.seed, written_at = EXCLUDED.written_at`,
		int64(seed),
	)
	return err
}

// StoredSeed は最後に書き込まれたデータセットのシードを返す。
func (c *PostgresCatalog) StoredSeed(ctx context.Context) (uint32, bool, error) {
	var seed int64
	err := c.db.QueryRowContext(ctx, `SELECT seed FROM dataset_meta WHERE id = 1`).Scan(&seed)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read dataset seed: %w", err)
	}
	return uint32(seed), true, nil
}
