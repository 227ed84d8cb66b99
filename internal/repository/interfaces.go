// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"database/sql"

	"github.com/hitoshi/frozenbet/internal/model"
)

// CompetitionReader は大会データの読み取りインターフェース。
type CompetitionReader interface {
	// ListCompetitions は条件に合う大会を開始日の降順（同日はID昇順）で返す。
	ListCompetitions(ctx context.Context, filter model.CompetitionFilter) ([]*model.Competition, error)

	// FindCompetitionByID は指定IDの大会を取得する。見つからない場合はnilを返す。
	FindCompetitionByID(ctx context.Context, id int64) (*model.Competition, error)
}

// TeamReader はチームデータの読み取りインターフェース。
type TeamReader interface {
	// ListTeams は条件に合うチームを名前の昇順（同名はID昇順）で返す。
	ListTeams(ctx context.Context, filter model.TeamFilter) ([]*model.Team, error)

	// FindTeamByID は指定IDのチームを取得する。見つからない場合はnilを返す。
	FindTeamByID(ctx context.Context, id int64) (*model.Team, error)
}

// MatchReader は試合データの読み取りインターフェース。
type MatchReader interface {
	// ListMatches は条件に合う試合を開催日の降順（同日時はID昇順）で返す。
	// filter.TeamID はホーム・アウェイのどちらかに一致すればよい。
	ListMatches(ctx context.Context, filter model.MatchFilter) ([]*model.Match, error)

	// FindMatchByID は指定IDの試合を取得する。見つからない場合はnilを返す。
	FindMatchByID(ctx context.Context, id int64) (*model.Match, error)
}

// CatalogReader は大会・チーム・試合の読み取りをまとめたインターフェース。
// メモリ上のスナップショットと永続ストアの双方が満たす。
type CatalogReader interface {
	CompetitionReader
	TeamReader
	MatchReader
}

// UserReader は合成ユーザーの読み取りインターフェース。
// ユーザーは永続化せず、常にメモリ上のスナップショットから返す。
type UserReader interface {
	ListUsers(ctx context.Context, filter model.UserFilter) ([]*model.User, error)
	FindUserByID(ctx context.Context, id int64) (*model.User, error)
}

// DatasetWriter はデータセット全体の置き換えを行うインターフェース。
type DatasetWriter interface {
	// ReplaceDataset は既存の大会・チーム・試合をすべて削除し、dsを挿入する。
	// 全体が1トランザクションで行われ、失敗時は何も変更しない。
	ReplaceDataset(ctx context.Context, ds *model.Dataset) error
}

// SeedReader は永続ストアに書き込まれたデータセットのシードを返すインターフェース。
type SeedReader interface {
	// StoredSeed は最後にReplaceDatasetで書き込まれたシードを返す。
	// 一度も書き込まれていない場合はokがfalse。
	StoredSeed(ctx context.Context) (seed uint32, ok bool, err error)
}

// Catalog は読み書き両方を提供する永続ストア。
type Catalog interface {
	CatalogReader
	DatasetWriter
	SeedReader

	// Ping はストアに到達できるかを確認する。
	Ping(ctx context.Context) error
}

// Executor は*sql.DBと*sql.Txの共通部分。
// 一括挿入・全削除は呼び出し側のトランザクション上で実行する。
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}
